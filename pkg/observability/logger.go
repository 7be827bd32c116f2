package observability

import (
	"context"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel/trace"
)

const (
	attrTraceID = "trace_id"
	attrSpanID  = "span_id"
	attrService = "service"
	attrVersion = "version"
	attrLabel   = "label"
)

type labelKey struct{}

// ContextWithLabel returns ctx carrying the batch label. Records logged with
// the returned context through a [TracingHandler] get a top-level label
// attribute, so concurrent batches stay apart in interleaved output.
func ContextWithLabel(ctx context.Context, label string) context.Context {
	return context.WithValue(ctx, labelKey{}, label)
}

// LabelFromContext returns the batch label stored by [ContextWithLabel].
func LabelFromContext(ctx context.Context) (string, bool) {
	label, ok := ctx.Value(labelKey{}).(string)

	return label, ok
}

// TracingHandler is an [slog.Handler] that tags records with the batch label
// and the active span from the context. Service name and version are attached
// once at construction so they stay top level when groups are used.
type TracingHandler struct {
	inner slog.Handler
}

// NewTracingHandler wraps inner, attaching service metadata to every record.
func NewTracingHandler(inner slog.Handler, service, version string) *TracingHandler {
	attrs := []slog.Attr{slog.String(attrService, service)}
	if version != "" {
		attrs = append(attrs, slog.String(attrVersion, version))
	}

	return &TracingHandler{inner: inner.WithAttrs(attrs)}
}

// Enabled delegates to the inner handler.
func (th *TracingHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return th.inner.Enabled(ctx, level)
}

// Handle adds the batch label and span identifiers found in ctx, then delegates.
func (th *TracingHandler) Handle(ctx context.Context, record slog.Record) error {
	if label, ok := LabelFromContext(ctx); ok {
		record.AddAttrs(slog.String(attrLabel, label))
	}

	if sc := trace.SpanContextFromContext(ctx); sc.IsValid() {
		record.AddAttrs(
			slog.String(attrTraceID, sc.TraceID().String()),
			slog.String(attrSpanID, sc.SpanID().String()),
		)
	}

	err := th.inner.Handle(ctx, record)
	if err != nil {
		return fmt.Errorf("tracing handler: %w", err)
	}

	return nil
}

// WithAttrs returns a new TracingHandler with additional attributes on the inner handler.
func (th *TracingHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &TracingHandler{inner: th.inner.WithAttrs(attrs)}
}

// WithGroup returns a new TracingHandler with a group prefix on the inner handler.
func (th *TracingHandler) WithGroup(name string) slog.Handler {
	return &TracingHandler{inner: th.inner.WithGroup(name)}
}
