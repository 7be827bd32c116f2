package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/schedline/pkg/config"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "schedline.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestLoadConfigDefaults(t *testing.T) {
	t.Parallel()

	cfg, err := config.LoadConfig(writeConfig(t, ""))
	require.NoError(t, err)

	assert.Equal(t, config.Default(), cfg)
	assert.True(t, cfg.HasFormat(config.FormatCSV))
	assert.False(t, cfg.HasFormat(config.FormatJSON))
}

func TestLoadConfigFromFile(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, `
selection:
  top: 2
output:
  dir: /tmp/schedline-out
  formats: [csv, JSON, yaml]
render:
  enabled: false
  max_segments: 500
  theme: Light
pipeline:
  parallelism: 8
logging:
  level: debug
  format: json
telemetry:
  metrics_file: /tmp/schedline.prom
`)

	cfg, err := config.LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 2, cfg.Selection.Top)
	assert.Equal(t, "/tmp/schedline-out", cfg.Output.Dir)
	assert.Equal(t, []string{"csv", "json", "yaml"}, cfg.Output.Formats)
	assert.False(t, cfg.Render.Enabled)
	assert.Equal(t, 500, cfg.Render.MaxSegments)
	assert.Equal(t, config.ThemeLight, cfg.Render.Theme)
	assert.Equal(t, 8, cfg.Pipeline.Parallelism)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, config.LogFormatJSON, cfg.Logging.Format)
	assert.Equal(t, "/tmp/schedline.prom", cfg.Telemetry.MetricsFile)
}

func TestLoadConfigFromEnvironment(t *testing.T) {
	t.Setenv("SCHEDLINE_SELECTION_TOP", "7")
	t.Setenv("SCHEDLINE_PIPELINE_PARALLELISM", "2")
	t.Setenv("SCHEDLINE_OUTPUT_FORMATS", "csv,yaml")

	cfg, err := config.LoadConfig(writeConfig(t, "selection:\n  top: 3\n"))
	require.NoError(t, err)

	assert.Equal(t, 7, cfg.Selection.Top, "environment overrides the file")
	assert.Equal(t, 2, cfg.Pipeline.Parallelism)
	assert.Equal(t, []string{"csv", "yaml"}, cfg.Output.Formats)
}

func TestLoadConfigMalformedFile(t *testing.T) {
	t.Parallel()

	_, err := config.LoadConfig(writeConfig(t, "selection: [unclosed\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read config")
}

func TestLoadConfigValidation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		want    error
	}{
		{"negative_top", "selection:\n  top: -1\n", config.ErrInvalidTop},
		{"zero_parallelism", "pipeline:\n  parallelism: 0\n", config.ErrInvalidParallelism},
		{"negative_segments", "render:\n  max_segments: -5\n", config.ErrInvalidMaxSegments},
		{"unknown_format", "output:\n  formats: [csv, xml]\n", config.ErrUnknownFormat},
		{"unknown_theme", "render:\n  theme: neon\n", config.ErrUnknownTheme},
		{"unknown_log_format", "logging:\n  format: logfmt\n", config.ErrUnknownLogFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := config.LoadConfig(writeConfig(t, tt.content))
			require.ErrorIs(t, err, tt.want)
		})
	}
}

func TestValidateOverrides(t *testing.T) {
	t.Parallel()

	cfg := config.Default()
	require.NoError(t, config.Validate(cfg))

	cfg.Pipeline.Parallelism = 0
	require.ErrorIs(t, config.Validate(cfg), config.ErrInvalidParallelism)
}
