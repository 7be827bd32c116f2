package observability_test

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/schedline/pkg/observability"
)

func TestInit_NoopWhenNothingConfigured(t *testing.T) {
	t.Parallel()

	providers, err := observability.Init(observability.DefaultConfig())
	require.NoError(t, err)

	assert.NotNil(t, providers.Tracer)
	assert.NotNil(t, providers.Meter)
	assert.NotNil(t, providers.Logger)

	ctx, span := providers.Tracer.Start(context.Background(), "noop")
	span.End()
	assert.NotNil(t, ctx)

	require.NoError(t, providers.Shutdown(context.Background()))
}

func TestInit_LoggerHonorsLevelAndFormat(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	cfg := observability.DefaultConfig()
	cfg.LogLevel = slog.LevelWarn
	cfg.LogJSON = true

	providers, err := observability.InitWithWriter(cfg, &buf)
	require.NoError(t, err)

	t.Cleanup(func() { require.NoError(t, providers.Shutdown(context.Background())) })

	providers.Logger.Info("hidden")
	providers.Logger.Warn("shown", slog.String("label", "baseline"))

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, `"msg":"shown"`)
	assert.Contains(t, out, `"service":"schedline"`)
}

func TestInit_WritesMetricsFileOnShutdown(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "schedline.prom")

	cfg := observability.DefaultConfig()
	cfg.MetricsFile = path

	providers, err := observability.InitWithWriter(cfg, &bytes.Buffer{})
	require.NoError(t, err)

	pm, err := observability.NewPipelineMetrics(providers.Meter)
	require.NoError(t, err)

	pm.RecordBatch(context.Background(), observability.BatchStats{
		Label:    "baseline",
		Events:   10,
		Duration: time.Millisecond,
	})

	require.NoError(t, providers.Shutdown(context.Background()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	assert.Contains(t, string(data), "schedline_events")
	assert.Contains(t, string(data), `label="baseline"`)
}

func TestParseLevel(t *testing.T) {
	t.Parallel()

	assert.Equal(t, slog.LevelDebug, observability.ParseLevel("debug"))
	assert.Equal(t, slog.LevelWarn, observability.ParseLevel("WARN"))
	assert.Equal(t, slog.LevelInfo, observability.ParseLevel("chatty"))
}

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	cfg := observability.DefaultConfig()

	assert.Equal(t, "schedline", cfg.ServiceName)
	assert.Equal(t, observability.ModeCLI, cfg.Mode)
	assert.Empty(t, cfg.OTLPEndpoint)
	assert.Empty(t, cfg.MetricsFile)
}
