package telemetry

import (
	"context"

	"go.opentelemetry.io/otel/trace"
)

// Span represents an operation that is in progress.
type Span struct {
	otel trace.Span
}

// StartSpan starts a new span representing an operation.
//
// It increments the "operations" metric. The span must be ended by calling
// [Span.End].
func (r *Recorder) StartSpan(
	ctx context.Context,
	name string,
	attrs ...Attr,
) (context.Context, *Span) {
	r.operationCount(ctx, 1)

	ctx, s := r.tracer.Start(
		ctx,
		name,
		trace.WithAttributes(asAttrKeyValues(attrs)...),
	)

	return ctx, &Span{otel: s}
}

// SetAttributes adds attributes to the span.
func (s *Span) SetAttributes(attrs ...Attr) {
	s.otel.SetAttributes(asAttrKeyValues(attrs)...)
}

// End completes the span.
func (s *Span) End() {
	s.otel.End()
}
