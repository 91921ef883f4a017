// Package config loads ebnfc settings from file, environment, and defaults.
package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strings"

	"github.com/ava12/ebnf/compiler"
)

// Default values.
const (
	DefaultDuplicates   = DuplicatesWarn
	DefaultRoot         = ""
	DefaultCaseless     = false
	DefaultOutputFormat = FormatJSON
	DefaultOutputColor  = ColorAuto
	DefaultLogLevel     = "warn"
)

// Duplicate rule policies.
const (
	DuplicatesWarn = "warn"
	DuplicatesFail = "fail"
)

// Output formats.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
	FormatText = "text"
)

// Color modes.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

var (
	// ErrInvalidDuplicates indicates unknown compile.duplicates value.
	ErrInvalidDuplicates = errors.New("compile.duplicates must be warn or fail")
	// ErrInvalidFormat indicates unknown output.format value.
	ErrInvalidFormat = errors.New("output.format must be json, yaml, or text")
	// ErrInvalidColor indicates unknown output.color value.
	ErrInvalidColor = errors.New("output.color must be auto, always, or never")
	// ErrInvalidLogLevel indicates unknown logging.level value.
	ErrInvalidLogLevel = errors.New("logging.level must be debug, info, warn, or error")
)

// Config is the top-level configuration struct for ebnfc.
// Field tags use mapstructure for viper unmarshalling.
type Config struct {
	Compile CompileConfig `mapstructure:"compile" yaml:"compile"`
	Output  OutputConfig  `mapstructure:"output" yaml:"output"`
	Logging LoggingConfig `mapstructure:"logging" yaml:"logging"`
}

// CompileConfig holds grammar compilation settings.
type CompileConfig struct {
	Duplicates string `mapstructure:"duplicates" yaml:"duplicates"`
	Root       string `mapstructure:"root" yaml:"root"`
	Caseless   bool   `mapstructure:"caseless" yaml:"caseless"`
}

// OutputConfig holds result printing settings.
type OutputConfig struct {
	Format string `mapstructure:"format" yaml:"format"`
	Color  string `mapstructure:"color" yaml:"color"`
}

// LoggingConfig holds logger settings.
type LoggingConfig struct {
	Level string `mapstructure:"level" yaml:"level"`
}

// Formats lists supported output formats.
var Formats = []string{FormatJSON, FormatYAML, FormatText}

var logLevels = map[string]slog.Level{
	"debug": slog.LevelDebug,
	"info":  slog.LevelInfo,
	"warn":  slog.LevelWarn,
	"error": slog.LevelError,
}

// Validate checks enumerated settings. Empty values are allowed and mean defaults.
func (c *Config) Validate() error {
	if !oneOf(c.Compile.Duplicates, DuplicatesWarn, DuplicatesFail) {
		return fmt.Errorf("%w, got %q", ErrInvalidDuplicates, c.Compile.Duplicates)
	}

	if !oneOf(c.Output.Format, Formats...) {
		return fmt.Errorf("%w, got %q", ErrInvalidFormat, c.Output.Format)
	}

	if !oneOf(c.Output.Color, ColorAuto, ColorAlways, ColorNever) {
		return fmt.Errorf("%w, got %q", ErrInvalidColor, c.Output.Color)
	}

	_, known := logLevels[c.Logging.Level]
	if c.Logging.Level != "" && !known {
		return fmt.Errorf("%w, got %q", ErrInvalidLogLevel, c.Logging.Level)
	}

	return nil
}

func oneOf(value string, allowed ...string) bool {
	return value == "" || slices.Contains(allowed, value)
}

// Normalize converts enumerated settings to lower case.
// Validate and every consumer expect normalized values.
func (c *Config) Normalize() {
	c.Compile.Duplicates = strings.ToLower(c.Compile.Duplicates)
	c.Output.Format = strings.ToLower(c.Output.Format)
	c.Output.Color = strings.ToLower(c.Output.Color)
	c.Logging.Level = strings.ToLower(c.Logging.Level)
}

// LogLevel returns configured level, warn if empty.
func (c *Config) LogLevel() slog.Level {
	level, known := logLevels[c.Logging.Level]
	if !known {
		return slog.LevelWarn
	}
	return level
}

// Logger creates a text logger writing to w at configured level.
func (c *Config) Logger(w io.Writer) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: c.LogLevel()}))
}

// CompileOptions converts compile settings to compiler options.
func (c *Config) CompileOptions(logger *slog.Logger) compiler.Options {
	opts := compiler.Options{
		Logger:   logger,
		Caseless: c.Compile.Caseless,
		Root:     c.Compile.Root,
	}
	if c.Compile.Duplicates == DuplicatesFail {
		opts.Duplicates = compiler.FailOnDuplicates
	}
	return opts
}
