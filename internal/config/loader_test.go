package config_test

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ava12/ebnf/compiler"
	"github.com/ava12/ebnf/internal/config"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), ".ebnfc.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadConfig_EmptyFile_UsesDefaults(t *testing.T) {
	t.Parallel()

	cfg, err := config.LoadConfig(writeConfig(t, ""))
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, config.DefaultDuplicates, cfg.Compile.Duplicates)
	assert.Equal(t, config.DefaultRoot, cfg.Compile.Root)
	assert.Equal(t, config.DefaultCaseless, cfg.Compile.Caseless)
	assert.Equal(t, config.DefaultOutputFormat, cfg.Output.Format)
	assert.Equal(t, config.DefaultOutputColor, cfg.Output.Color)
	assert.Equal(t, config.DefaultLogLevel, cfg.Logging.Level)
	assert.Equal(t, slog.LevelWarn, cfg.LogLevel())
}

func TestLoadConfig_ValidFile_Unmarshals(t *testing.T) {
	t.Parallel()

	content := `compile:
  duplicates: fail
  root: expr
  caseless: true
output:
  format: yaml
  color: never
logging:
  level: debug
`
	cfg, err := config.LoadConfig(writeConfig(t, content))
	require.NoError(t, err)

	assert.Equal(t, config.DuplicatesFail, cfg.Compile.Duplicates)
	assert.Equal(t, "expr", cfg.Compile.Root)
	assert.True(t, cfg.Compile.Caseless)
	assert.Equal(t, config.FormatYAML, cfg.Output.Format)
	assert.Equal(t, config.ColorNever, cfg.Output.Color)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel())

	opts := cfg.CompileOptions(nil)
	assert.Equal(t, compiler.FailOnDuplicates, opts.Duplicates)
	assert.Equal(t, "expr", opts.Root)
	assert.True(t, opts.Caseless)
}

func TestLoadConfig_EnvOverridesFile(t *testing.T) {
	t.Setenv("EBNFC_OUTPUT_FORMAT", "yaml")
	t.Setenv("EBNFC_COMPILE_ROOT", "stmt")

	cfg, err := config.LoadConfig(writeConfig(t, "output:\n  format: json\n"))
	require.NoError(t, err)
	assert.Equal(t, config.FormatYAML, cfg.Output.Format)
	assert.Equal(t, "stmt", cfg.Compile.Root)
}

func TestLoadConfig_InvalidValue_ReturnsError(t *testing.T) {
	t.Parallel()

	_, err := config.LoadConfig(writeConfig(t, "output:\n  format: xml\n"))
	require.ErrorIs(t, err, config.ErrInvalidFormat)
	assert.Contains(t, err.Error(), "validate config")
}

func TestLoadConfig_UpperCaseValues_Normalized(t *testing.T) {
	t.Parallel()

	content := `compile:
  duplicates: FAIL
output:
  format: YAML
  color: Never
logging:
  level: Debug
`
	cfg, err := config.LoadConfig(writeConfig(t, content))
	require.NoError(t, err)

	assert.Equal(t, config.DuplicatesFail, cfg.Compile.Duplicates)
	assert.Equal(t, config.FormatYAML, cfg.Output.Format)
	assert.Equal(t, config.ColorNever, cfg.Output.Color)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel())
	assert.Equal(t, compiler.FailOnDuplicates, cfg.CompileOptions(nil).Duplicates)
}

func TestLoadConfig_MalformedFile_ReturnsError(t *testing.T) {
	t.Parallel()

	_, err := config.LoadConfig(writeConfig(t, "output: [unclosed\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read config")
}

func TestValidate(t *testing.T) {
	t.Parallel()

	samples := []struct {
		cfg      config.Config
		expected error
	}{
		{config.Config{}, nil},
		{config.Config{Compile: config.CompileConfig{Duplicates: "ignore"}}, config.ErrInvalidDuplicates},
		{config.Config{Output: config.OutputConfig{Color: "sometimes"}}, config.ErrInvalidColor},
		{config.Config{Logging: config.LoggingConfig{Level: "trace"}}, config.ErrInvalidLogLevel},
		{config.Config{Logging: config.LoggingConfig{Level: "error"}}, nil},
		{config.Config{Logging: config.LoggingConfig{Level: "ERROR"}}, config.ErrInvalidLogLevel},
		{config.Config{Output: config.OutputConfig{Format: "YAML"}}, config.ErrInvalidFormat},
		{config.Config{Output: config.OutputConfig{Format: config.FormatText}}, nil},
	}

	for _, s := range samples {
		err := s.cfg.Validate()
		if s.expected == nil {
			assert.NoError(t, err)
		} else {
			assert.ErrorIs(t, err, s.expected)
		}
	}
}

func TestLogger(t *testing.T) {
	t.Parallel()

	cfg := config.Config{Logging: config.LoggingConfig{Level: "info"}}
	var buf bytes.Buffer
	logger := cfg.Logger(&buf)
	logger.Debug("hidden")
	logger.Info("shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}
