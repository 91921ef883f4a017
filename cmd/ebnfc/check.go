package main

import (
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/ava12/ebnf/compiler"
	"github.com/ava12/ebnf/langdef"
	"github.com/ava12/ebnf/refs"
)

func newCheckCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "check <file>",
		Short: "Report grammar errors and warnings",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runCheck(cmd.OutOrStdout(), args[0])
		},
	}
}

func (a *app) runCheck(w io.Writer, path string) error {
	src, err := readSource(path)
	if err != nil {
		return err
	}

	errColor := color.New(color.FgRed)
	g, err := langdef.Parse(src)
	if err != nil {
		errColor.Fprintf(w, "error: %v\n", err)
		return ErrCheckFailed
	}

	table, warnings, err := refs.Check(g)
	for _, warning := range warnings {
		color.New(color.FgYellow).Fprintf(w, "warning: %s\n", warning)
	}

	failed := false
	if err != nil {
		errColor.Fprintf(w, "error: %v\n", err)
		failed = true
	}

	if a.cfg.CompileOptions(nil).Duplicates == compiler.FailOnDuplicates {
		err = refs.ValidateUnique(table)
		if err != nil {
			errColor.Fprintf(w, "error: %v\n", err)
			failed = true
		}
	}

	if failed {
		return ErrCheckFailed
	}

	color.New(color.FgGreen).Fprintf(w, "%s: %d rules ok\n", path, len(table.Names()))
	return nil
}
