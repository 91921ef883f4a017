package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/ava12/ebnf/internal/config"
	"github.com/ava12/ebnf/source"
)

// ErrCheckFailed is returned when a grammar has errors.
var ErrCheckFailed = errors.New("grammar check failed")

type app struct {
	configPath string
	verbose    bool
	cfg        *config.Config
	logger     *slog.Logger
}

func newRootCommand() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:   "ebnfc",
		Short: "EBNF grammar checker and parser runner",
		Long: `ebnfc checks grammar descriptions written in EBNF-like notation
and runs compiled grammars against input text.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.load(cmd)
		},
	}

	rootCmd.PersistentFlags().StringVar(&a.configPath, "config", "", "config file (default .ebnfc.yaml in current or home directory)")
	rootCmd.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "log compilation progress")

	rootCmd.AddCommand(newCheckCommand(a))
	rootCmd.AddCommand(newRulesCommand(a))
	rootCmd.AddCommand(newParseCommand(a))
	rootCmd.AddCommand(newFmtCommand(a))
	rootCmd.AddCommand(newConfigCommand(a))

	return rootCmd
}

func (a *app) load(cmd *cobra.Command) error {
	cfg, err := config.LoadConfig(a.configPath)
	if err != nil {
		return err
	}

	if a.verbose {
		cfg.Logging.Level = "debug"
	}

	a.cfg = cfg
	a.logger = cfg.Logger(cmd.ErrOrStderr())

	switch cfg.Output.Color {
	case config.ColorNever:
		color.NoColor = true //nolint:reassign // intentional override of library global
	case config.ColorAlways:
		color.NoColor = false //nolint:reassign // intentional override of library global
	}

	return nil
}

func readSource(path string) (*source.Source, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	return source.New(path, content), nil
}
