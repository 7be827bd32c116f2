// Package compare runs the timeline pipeline over several labeled batches and
// lines their summaries up for side-by-side comparison.
package compare

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/Sumatoshi-tech/schedline/pkg/observability"
	"github.com/Sumatoshi-tech/schedline/pkg/schedlog"
	"github.com/Sumatoshi-tech/schedline/pkg/timeline"
)

// DefaultParallelism bounds concurrent batches when Options leaves it unset.
const DefaultParallelism = 4

// AlignmentLabel names the cross-label outputs and is not available to inputs.
const AlignmentLabel = "compare"

const tracerName = "schedline/compare"

// Options configures a multi-source run.
type Options struct {
	Timeline    timeline.Options
	Parallelism int

	Logger  *slog.Logger
	Tracer  trace.Tracer
	Metrics *observability.PipelineMetrics
}

// LabelResult is the outcome of one labeled batch. Exactly one of Result and
// Err is set.
type LabelResult struct {
	Label    string
	Source   string
	Result   *timeline.Result
	Err      error
	Duration time.Duration
}

// OK reports whether the batch produced a result.
func (lr LabelResult) OK() bool {
	return lr.Err == nil && lr.Result != nil
}

// Outcome holds per-label results in input order.
type Outcome struct {
	Results []LabelResult
}

// Succeeded returns the results that completed without a fatal error.
func (o *Outcome) Succeeded() []LabelResult {
	var out []LabelResult

	for _, lr := range o.Results {
		if lr.OK() {
			out = append(out, lr)
		}
	}

	return out
}

// Err joins the fatal errors of all failed batches, or returns nil.
func (o *Outcome) Err() error {
	var errs []error

	for _, lr := range o.Results {
		if lr.Err != nil {
			errs = append(errs, &BatchError{Label: lr.Label, Err: lr.Err})
		}
	}

	return errors.Join(errs...)
}

// Alignment builds the cross-batch view over the successful batches.
func (o *Outcome) Alignment() Alignment {
	return Align(o.Succeeded())
}

// Run processes each source under its label. Batches share no state and run
// concurrently up to opts.Parallelism; a fatal error in one batch is recorded
// in its LabelResult and does not stop the others.
//
// The returned error is non-nil only for invocation-level failures: a
// LabelMismatchError, an invalid or duplicate label, or context cancellation.
func Run(ctx context.Context, labels []string, sources []schedlog.Source, opts Options) (*Outcome, error) {
	if len(labels) != len(sources) {
		return nil, &LabelMismatchError{Labels: len(labels), Inputs: len(sources)}
	}

	seen := make(map[string]struct{}, len(labels))
	for _, label := range labels {
		err := ValidateLabel(label)
		if err != nil {
			return nil, err
		}

		if _, dup := seen[label]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateLabel, label)
		}

		seen[label] = struct{}{}
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	tracer := opts.Tracer
	if tracer == nil {
		tracer = otel.Tracer(tracerName)
	}

	limit := opts.Parallelism
	if limit <= 0 {
		limit = DefaultParallelism
	}

	results := make([]LabelResult, len(sources))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	for i, src := range sources {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			results[i] = runBatch(gctx, labels[i], src, opts, tracer, logger)

			return nil
		})
	}

	err := g.Wait()
	if err != nil {
		return nil, fmt.Errorf("compare: %w", err)
	}

	return &Outcome{Results: results}, nil
}

func runBatch(
	ctx context.Context, label string, src schedlog.Source, opts Options,
	tracer trace.Tracer, logger *slog.Logger,
) LabelResult {
	ctx = observability.ContextWithLabel(ctx, label)

	ctx, span := tracer.Start(ctx, "schedline.batch", trace.WithAttributes(
		attribute.String("label", label),
		attribute.String("source", src.Name()),
	))
	defer span.End()

	start := time.Now()
	lr := LabelResult{Label: label, Source: src.Name()}

	res, err := loadAndRun(ctx, tracer, src, opts.Timeline)
	lr.Duration = time.Since(start)

	stats := observability.BatchStats{Label: label, Duration: lr.Duration}

	if err != nil {
		lr.Err = err
		stats.Status = observability.StatusError

		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		logger.ErrorContext(ctx, "batch failed", "source", src.Name(), "error", err)
		opts.Metrics.RecordBatch(ctx, stats)

		return lr
	}

	lr.Result = res

	stats.Events = res.Events
	stats.Intervals = len(res.Intervals)
	stats.Ticks = len(res.Ticks)
	counts := res.Diagnostics.Counts()
	stats.Dropped = make(map[string]int, len(counts))

	for reason, n := range counts {
		stats.Dropped[string(reason)] = n
	}

	span.SetAttributes(
		attribute.Int("events", res.Events),
		attribute.Int("intervals", len(res.Intervals)),
		attribute.Int("ticks", len(res.Ticks)),
		attribute.String("identity", res.Identity.Source.String()),
	)

	res.Diagnostics.Emit(logger, label)
	opts.Metrics.RecordBatch(ctx, stats)

	logger.InfoContext(ctx, "batch reconstructed",
		"events", res.Events,
		"intervals", len(res.Intervals),
		"ticks", len(res.Ticks),
		"identity", res.Identity.Source.String(),
		"selection", res.Selection.IDs,
	)

	return lr
}

func loadAndRun(ctx context.Context, tracer trace.Tracer, src schedlog.Source, opts timeline.Options) (*timeline.Result, error) {
	_, loadSpan := tracer.Start(ctx, "schedline.load")
	raw, err := src.Load()
	loadSpan.End()

	if err != nil {
		return nil, err
	}

	_, runSpan := tracer.Start(ctx, "schedline.reconstruct")
	defer runSpan.End()

	res, err := timeline.Run(raw, opts)
	if err != nil {
		var schemaErr *schedlog.SchemaError
		if errors.As(err, &schemaErr) && schemaErr.Source == "" {
			schemaErr.Source = src.Name()
		}

		return nil, err
	}

	return res, nil
}

// DefaultLabels derives one label per input path from its file stem.
func DefaultLabels(paths []string) []string {
	labels := make([]string, len(paths))
	for i, p := range paths {
		labels[i] = schedlog.Stem(p)
	}

	return labels
}

// ValidateLabel rejects labels that would collide with the cross-label
// outputs or escape the output directory once joined into a file name.
func ValidateLabel(label string) error {
	switch {
	case label == "":
		return fmt.Errorf("%w: empty", ErrInvalidLabel)
	case label == AlignmentLabel:
		return fmt.Errorf("%w: %q is reserved for the comparison outputs", ErrInvalidLabel, label)
	case label == "." || label == "..", strings.ContainsAny(label, `/\`):
		return fmt.Errorf("%w: %q must not contain path elements", ErrInvalidLabel, label)
	}

	return nil
}
