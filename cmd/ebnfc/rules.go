package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/ava12/ebnf/langdef"
	"github.com/ava12/ebnf/refs"
)

func newRulesCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "rules <file>",
		Short: "Print rules table",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runRules(cmd.OutOrStdout(), args[0])
		},
	}
}

func (a *app) runRules(w io.Writer, path string) error {
	src, err := readSource(path)
	if err != nil {
		return err
	}

	g, err := langdef.Parse(src)
	if err != nil {
		return fmt.Errorf("parse grammar: %w", err)
	}

	rt := refs.Collect(g)
	usage := make(map[string]int)
	for _, name := range rt.Names() {
		for _, dep := range rt.DependsOn(name) {
			usage[dep]++
		}
	}

	tbl := table.NewWriter()
	tbl.SetStyle(table.StyleLight)
	tbl.AppendHeader(table.Row{"#", "Rule", "Definitions", "Used by", "Depends on"})

	for i, name := range rt.Names() {
		tbl.AppendRow(table.Row{i + 1, name, len(rt.Definitions(name)), usage[name], strings.Join(rt.DependsOn(name), ", ")})
	}
	for _, name := range rt.Undefined() {
		tbl.AppendRow(table.Row{"-", name, 0, usage[name], ""})
	}

	tbl.AppendFooter(table.Row{"", fmt.Sprintf("Total: %d rules", len(rt.Names()))})

	fmt.Fprintln(w, tbl.Render())
	return nil
}
