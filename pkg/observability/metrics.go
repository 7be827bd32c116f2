package observability

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const (
	metricEventsTotal    = "schedline.events.total"
	metricIntervalsTotal = "schedline.intervals.total"
	metricTicksTotal     = "schedline.ticks.total"
	metricDroppedTotal   = "schedline.records.dropped.total"
	metricBatchDuration  = "schedline.batch.duration.seconds"
	metricBatchesTotal   = "schedline.batches.total"

	attrReason = "reason"
	attrStatus = "status"

	// StatusOK marks a batch that produced a result.
	StatusOK = "ok"
	// StatusError marks a batch that failed.
	StatusError = "error"
)

// durationBucketBoundaries covers 1ms to 120s; trace batches range from a
// few hundred rows to multi-gigabyte captures.
var durationBucketBoundaries = []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60, 120}

// BatchStats is the per-batch outcome reported to PipelineMetrics,
// decoupled from the timeline types.
type BatchStats struct {
	Label     string
	Status    string
	Events    int
	Intervals int
	Ticks     int
	Dropped   map[string]int
	Duration  time.Duration
}

// PipelineMetrics holds the OTel instruments for timeline reconstruction.
type PipelineMetrics struct {
	eventsTotal    metric.Int64Counter
	intervalsTotal metric.Int64Counter
	ticksTotal     metric.Int64Counter
	droppedTotal   metric.Int64Counter
	batchesTotal   metric.Int64Counter
	batchDuration  metric.Float64Histogram
}

// metricBuilder accumulates instrument creation errors so a group of
// instruments can be built with one error check.
type metricBuilder struct {
	meter metric.Meter
	err   error
}

func (b *metricBuilder) counter(name, desc, unit string) metric.Int64Counter {
	c, err := b.meter.Int64Counter(name, metric.WithDescription(desc), metric.WithUnit(unit))
	b.setErr(name, err)

	return c
}

func (b *metricBuilder) histogram(name, desc, unit string, bounds ...float64) metric.Float64Histogram {
	h, err := b.meter.Float64Histogram(name,
		metric.WithDescription(desc),
		metric.WithUnit(unit),
		metric.WithExplicitBucketBoundaries(bounds...),
	)
	b.setErr(name, err)

	return h
}

func (b *metricBuilder) setErr(name string, err error) {
	if err != nil && b.err == nil {
		b.err = fmt.Errorf("create %s: %w", name, err)
	}
}

// NewPipelineMetrics creates the pipeline instruments from the given meter.
func NewPipelineMetrics(mt metric.Meter) (*PipelineMetrics, error) {
	b := &metricBuilder{meter: mt}

	pm := &PipelineMetrics{
		eventsTotal:    b.counter(metricEventsTotal, "Scheduler events read", "{event}"),
		intervalsTotal: b.counter(metricIntervalsTotal, "Run intervals reconstructed", "{interval}"),
		ticksTotal:     b.counter(metricTicksTotal, "Wake ticks collected", "{tick}"),
		droppedTotal:   b.counter(metricDroppedTotal, "Records dropped by reason", "{record}"),
		batchesTotal:   b.counter(metricBatchesTotal, "Batches processed by status", "{batch}"),
		batchDuration: b.histogram(metricBatchDuration, "Per-batch processing duration in seconds", "s",
			durationBucketBoundaries...),
	}

	if b.err != nil {
		return nil, b.err
	}

	return pm, nil
}

// RecordBatch records one processed batch. Safe on a nil receiver.
func (pm *PipelineMetrics) RecordBatch(ctx context.Context, stats BatchStats) {
	if pm == nil {
		return
	}

	label := attribute.String(attrLabel, stats.Label)
	attrs := metric.WithAttributes(label)

	status := stats.Status
	if status == "" {
		status = StatusOK
	}

	pm.batchesTotal.Add(ctx, 1, metric.WithAttributes(label, attribute.String(attrStatus, status)))
	pm.batchDuration.Record(ctx, stats.Duration.Seconds(), attrs)

	if status == StatusError {
		return
	}

	pm.eventsTotal.Add(ctx, int64(stats.Events), attrs)
	pm.intervalsTotal.Add(ctx, int64(stats.Intervals), attrs)
	pm.ticksTotal.Add(ctx, int64(stats.Ticks), attrs)

	for reason, n := range stats.Dropped {
		pm.droppedTotal.Add(ctx, int64(n), metric.WithAttributes(label, attribute.String(attrReason, reason)))
	}
}
