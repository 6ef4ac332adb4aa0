package telemetry

import (
	"context"

	"go.opentelemetry.io/otel/metric"
)

// Instrument is a function that records a value against a metric instrument.
type Instrument[T any] func(ctx context.Context, value T, attrs ...Attr)

// Counter returns an instrument that records monotonically increasing
// int64 values.
func (r *Recorder) Counter(name, unit, desc string) Instrument[int64] {
	c, err := r.meter.Int64Counter(
		name,
		metric.WithUnit(unit),
		metric.WithDescription(desc),
	)
	if err != nil {
		panic(err)
	}

	return func(ctx context.Context, v int64, attrs ...Attr) {
		c.Add(
			ctx,
			v,
			metric.WithAttributes(asAttrKeyValues(attrs)...),
		)
	}
}

// Histogram returns an instrument that records a distribution of int64
// values.
func (r *Recorder) Histogram(name, unit, desc string) Instrument[int64] {
	h, err := r.meter.Int64Histogram(
		name,
		metric.WithUnit(unit),
		metric.WithDescription(desc),
	)
	if err != nil {
		panic(err)
	}

	return func(ctx context.Context, v int64, attrs ...Attr) {
		h.Record(
			ctx,
			v,
			metric.WithAttributes(asAttrKeyValues(attrs)...),
		)
	}
}
