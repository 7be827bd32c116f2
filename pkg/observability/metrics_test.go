package observability_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"

	"github.com/Sumatoshi-tech/schedline/pkg/observability"
)

func setupTestMeter(t *testing.T) (*observability.PipelineMetrics, *sdkmetric.ManualReader) {
	t.Helper()

	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))

	pm, err := observability.NewPipelineMetrics(mp.Meter("test"))
	require.NoError(t, err)

	return pm, reader
}

func collectMetrics(t *testing.T, reader *sdkmetric.ManualReader) metricdata.ResourceMetrics {
	t.Helper()

	var rm metricdata.ResourceMetrics

	require.NoError(t, reader.Collect(context.Background(), &rm))

	return rm
}

func findMetric(rm metricdata.ResourceMetrics, name string) *metricdata.Metrics {
	for idx := range rm.ScopeMetrics {
		for midx := range rm.ScopeMetrics[idx].Metrics {
			if rm.ScopeMetrics[idx].Metrics[midx].Name == name {
				return &rm.ScopeMetrics[idx].Metrics[midx]
			}
		}
	}

	return nil
}

func sumValue(t *testing.T, m *metricdata.Metrics, attrs ...attribute.KeyValue) int64 {
	t.Helper()
	require.NotNil(t, m)

	sum, ok := m.Data.(metricdata.Sum[int64])
	require.True(t, ok, "metric %s is not an int64 sum", m.Name)

	want := attribute.NewSet(attrs...)

	var total int64

	for _, dp := range sum.DataPoints {
		match := true

		for _, kv := range want.ToSlice() {
			got, found := dp.Attributes.Value(kv.Key)
			if !found || got != kv.Value {
				match = false

				break
			}
		}

		if match {
			total += dp.Value
		}
	}

	return total
}

func TestPipelineMetrics_RecordBatch(t *testing.T) {
	t.Parallel()

	pm, reader := setupTestMeter(t)

	pm.RecordBatch(context.Background(), observability.BatchStats{
		Label:     "baseline",
		Events:    120,
		Intervals: 40,
		Ticks:     9,
		Dropped:   map[string]int{"degenerate_interval": 3, "missing_identity": 1},
		Duration:  25 * time.Millisecond,
	})

	rm := collectMetrics(t, reader)
	label := attribute.String("label", "baseline")

	assert.Equal(t, int64(120), sumValue(t, findMetric(rm, "schedline.events.total"), label))
	assert.Equal(t, int64(40), sumValue(t, findMetric(rm, "schedline.intervals.total"), label))
	assert.Equal(t, int64(9), sumValue(t, findMetric(rm, "schedline.ticks.total"), label))
	assert.Equal(t, int64(3), sumValue(t, findMetric(rm, "schedline.records.dropped.total"),
		label, attribute.String("reason", "degenerate_interval")))
	assert.Equal(t, int64(1), sumValue(t, findMetric(rm, "schedline.batches.total"),
		label, attribute.String("status", "ok")))
	assert.NotNil(t, findMetric(rm, "schedline.batch.duration.seconds"))
}

func TestPipelineMetrics_ErrorBatchSkipsVolumes(t *testing.T) {
	t.Parallel()

	pm, reader := setupTestMeter(t)

	pm.RecordBatch(context.Background(), observability.BatchStats{
		Label:  "broken",
		Status: observability.StatusError,
		Events: 5,
	})

	rm := collectMetrics(t, reader)

	assert.Equal(t, int64(1), sumValue(t, findMetric(rm, "schedline.batches.total"),
		attribute.String("status", "error")))
	assert.Nil(t, findMetric(rm, "schedline.events.total"))
}

func TestPipelineMetrics_NilSafe(t *testing.T) {
	t.Parallel()

	var pm *observability.PipelineMetrics

	assert.NotPanics(t, func() {
		pm.RecordBatch(context.Background(), observability.BatchStats{Label: "x"})
	})
}
