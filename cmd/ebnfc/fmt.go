package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/sergi/go-diff/diffmatchpatch"
	"github.com/spf13/cobra"

	"github.com/ava12/ebnf/ast"
	"github.com/ava12/ebnf/langdef"
)

func newFmtCommand(a *app) *cobra.Command {
	var showDiff bool

	cmd := &cobra.Command{
		Use:   "fmt <file>",
		Short: "Print grammar in canonical form",
		Long: `Print grammar in canonical form.
Comments are not preserved.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runFmt(cmd.OutOrStdout(), args[0], showDiff)
		},
	}

	cmd.Flags().BoolVarP(&showDiff, "diff", "d", false, "print line diff against the source instead")

	return cmd
}

func (a *app) runFmt(w io.Writer, path string, showDiff bool) error {
	src, err := readSource(path)
	if err != nil {
		return err
	}

	g, err := langdef.Parse(src)
	if err != nil {
		return fmt.Errorf("parse grammar: %w", err)
	}

	formatted := ast.Format(g) + "\n"
	if !showDiff {
		_, err = io.WriteString(w, formatted)
		return err
	}

	a.logger.Debug("diffing", "file", path, "source_bytes", src.Len(), "formatted_bytes", len(formatted))
	writeDiff(w, src.Text(), formatted)
	return nil
}

func writeDiff(w io.Writer, from, to string) {
	dmp := diffmatchpatch.New()
	src, dst, lines := dmp.DiffLinesToRunes(from, to)
	diffs := dmp.DiffCharsToLines(dmp.DiffMainRunes(src, dst, false), lines)

	added := color.New(color.FgGreen)
	removed := color.New(color.FgRed)
	for _, d := range diffs {
		for _, line := range strings.SplitAfter(d.Text, "\n") {
			if line == "" {
				continue
			}
			line = strings.TrimSuffix(line, "\n")

			switch d.Type {
			case diffmatchpatch.DiffDelete:
				removed.Fprintf(w, "-%s\n", line)
			case diffmatchpatch.DiffInsert:
				added.Fprintf(w, "+%s\n", line)
			case diffmatchpatch.DiffEqual:
				fmt.Fprintf(w, " %s\n", line)
			}
		}
	}
}
