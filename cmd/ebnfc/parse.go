package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/ava12/ebnf/combinator"
	"github.com/ava12/ebnf/compiler"
	"github.com/ava12/ebnf/internal/config"
	"github.com/ava12/ebnf/source"
	"github.com/ava12/ebnf/tree"
)

var (
	// ErrNoInput is returned when neither --input nor --file is set.
	ErrNoInput = errors.New("input is required (use --input or --file)")
	// ErrUnknownFormat is returned for unsupported --format values.
	ErrUnknownFormat = errors.New("unknown output format")
)

type parseFlags struct {
	rule      string
	input     string
	inputFile string
	format    string
	partial   bool
	selected  []string
}

func newParseCommand(a *app) *cobra.Command {
	var flags parseFlags

	cmd := &cobra.Command{
		Use:   "parse <file>",
		Short: "Run a grammar rule against input and print the parse tree",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if flags.input == "" && flags.inputFile == "" {
				return ErrNoInput
			}

			flags.format = strings.ToLower(flags.format)
			if flags.format != "" && !slices.Contains(config.Formats, flags.format) {
				return fmt.Errorf("%w %q", ErrUnknownFormat, flags.format)
			}

			return a.runParse(cmd, args[0], flags)
		},
	}

	cmd.Flags().StringVarP(&flags.rule, "rule", "r", "", "rule name, default is the root rule")
	cmd.Flags().StringVarP(&flags.input, "input", "i", "", "input text")
	cmd.Flags().StringVarP(&flags.inputFile, "file", "f", "", "input file")
	cmd.Flags().StringVar(&flags.format, "format", "", "output format: json, yaml, or text, default from config")
	cmd.Flags().StringSliceVarP(&flags.selected, "select", "s", nil, "print only subtrees of listed rules")
	cmd.Flags().BoolVar(&flags.partial, "partial", false, "allow unconsumed input after the match")
	cmd.MarkFlagsMutuallyExclusive("input", "file")

	return cmd
}

func (a *app) runParse(cmd *cobra.Command, path string, flags parseFlags) error {
	grammarSrc, err := readSource(path)
	if err != nil {
		return err
	}

	table, err := compiler.CompileSource(grammarSrc, compiler.Tree{}, a.cfg.CompileOptions(a.logger))
	if err != nil {
		return fmt.Errorf("compile grammar: %w", err)
	}

	var input *source.Source
	if flags.inputFile != "" {
		input, err = readSource(flags.inputFile)
		if err != nil {
			return err
		}
	} else {
		input = source.NewString("input", flags.input)
	}

	var result combinator.Result
	if flags.partial {
		result, err = table.Parse(cmd.Context(), flags.rule, combinator.NewCursor(input))
	} else {
		result, err = table.Match(cmd.Context(), flags.rule, input)
	}
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.ErrOrStderr(), "matched %s of %s\n",
		humanize.Bytes(uint64(result.Len())), humanize.Bytes(uint64(input.Len())))

	format := flags.format
	if format == "" {
		format = a.cfg.Output.Format
	}

	root, _ := result.Value.(*tree.Node)
	if len(flags.selected) == 0 {
		return writeValue(cmd.OutOrStdout(), format, root)
	}

	found := tree.NewSelector().Search(tree.IsA(flags.selected...), false).Apply(root)
	a.logger.Debug("subtrees selected", "rules", flags.selected, "count", len(found))
	return writeValue(cmd.OutOrStdout(), format, found...)
}

func writeValue(w io.Writer, format string, nodes ...*tree.Node) error {
	var value any = nodes
	if len(nodes) == 1 {
		value = nodes[0]
	}

	switch format {
	case config.FormatJSON, "":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		err := enc.Encode(value)
		if err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
		return nil

	case config.FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		err := enc.Encode(value)
		if err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return enc.Close()

	case config.FormatText:
		for _, n := range nodes {
			writeOutline(w, n)
		}
		return nil
	}

	return fmt.Errorf("%w %q", ErrUnknownFormat, format)
}

// writeOutline prints one line per rule and token node, indented by rule depth.
func writeOutline(w io.Writer, root *tree.Node) {
	tree.Walk(root, tree.WalkLtr, func(n *tree.Node) (bool, bool) {
		if n.Rule() == "" && !n.IsToken() {
			return true, true
		}

		depth := 0
		for p := n; p != root; p = p.Parent() {
			if p.Parent().Rule() != "" {
				depth++
			}
		}

		indent := strings.Repeat("  ", depth)
		if n.IsToken() {
			fmt.Fprintf(w, "%s%q\n", indent, n.Text())
		} else {
			fmt.Fprintf(w, "%s%s [%d:%d]\n", indent, n.Rule(), n.Span().Start, n.Span().End)
		}
		return true, true
	})
}
