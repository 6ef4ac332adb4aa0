package slot

import (
	"context"

	"github.com/dogmatiq/slotkit/internal/telemetry"
	"github.com/dogmatiq/slotkit/internal/x/xtelemetry"
	"go.opentelemetry.io/otel/log"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

// WithTelemetry returns a wrapper around s that records traces, metrics and
// logs describing each operation.
//
// The context accepted by the wrapper's methods is used only to correlate
// telemetry with the caller's active span; it is never used for cancellation
// and the underlying operations remain non-blocking. The raw [Slot] carries
// no instrumentation overhead, and may still be used directly, including
// with the package-level [Read] and [Update] functions.
func WithTelemetry[T any](
	s *Slot[T],
	p trace.TracerProvider,
	m metric.MeterProvider,
	l log.LoggerProvider,
) *Instrumented[T] {
	var zero T

	telem := (&telemetry.Provider{
		TracerProvider: p,
		MeterProvider:  m,
		LoggerProvider: l,
	}).Recorder(
		"github.com/dogmatiq/slotkit/slot",
		telemetry.Type("slot.value", zero),
		telemetry.String("slot.handle", xtelemetry.HandleID()),
	)

	return &Instrumented[T]{
		next:      s,
		telemetry: telem,
		stores:    telem.Counter("stores", "{operation}", "The number of times a new snapshot has been published to the slot."),
		loads:     telem.Counter("loads", "{operation}", "The number of times the slot's value has been read."),
		misses:    telem.Counter("misses", "{operation}", "The number of times the slot was read while empty."),
		updates:   telem.Counter("updates", "{operation}", "The number of read-modify-write operations that have been applied to the slot."),
		conflicts: telem.Counter("conflicts", "{error}", "The number of times publishing an updated snapshot failed due to contention with another writer."),
		attempts:  telem.Histogram("update.attempts", "{attempt}", "The number of attempts needed to apply each read-modify-write operation."),
	}
}

// Instrumented is a decorator that adds instrumentation to a [Slot].
type Instrumented[T any] struct {
	next      *Slot[T]
	telemetry *telemetry.Recorder

	stores    telemetry.Instrument[int64]
	loads     telemetry.Instrument[int64]
	misses    telemetry.Instrument[int64]
	updates   telemetry.Instrument[int64]
	conflicts telemetry.Instrument[int64]
	attempts  telemetry.Instrument[int64]
}

// Store publishes a new snapshot of v, as [Slot.Store].
func (s *Instrumented[T]) Store(ctx context.Context, v T) {
	ctx, span := s.telemetry.StartSpan(ctx, "slot.store")
	defer span.End()

	s.next.Store(v)

	s.stores(ctx, 1)
	s.telemetry.Info(ctx, "slot.store.ok", "published a new snapshot")
}

// Load returns a copy of the slot's current value, as [Slot.Load].
func (s *Instrumented[T]) Load(ctx context.Context) T {
	ctx, span := s.telemetry.StartSpan(ctx, "slot.load")
	defer span.End()

	v, ok := s.next.TryLoad()
	s.recordLoad(ctx, span, "slot.load", ok)

	return v
}

// TryLoad returns a copy of the slot's current value, as [Slot.TryLoad].
func (s *Instrumented[T]) TryLoad(ctx context.Context) (T, bool) {
	ctx, span := s.telemetry.StartSpan(ctx, "slot.try_load")
	defer span.End()

	v, ok := s.next.TryLoad()
	s.recordLoad(ctx, span, "slot.try_load", ok)

	return v, ok
}

// Update atomically applies fn to the slot's value, as [Slot.Update].
func (s *Instrumented[T]) Update(ctx context.Context, fn func(*T)) {
	ctx, span := s.telemetry.StartSpan(ctx, "slot.update")
	defer span.End()

	var attempts int64
	s.next.Update(func(v *T) {
		attempts++
		fn(v)
	})

	s.updates(ctx, 1)
	s.stores(ctx, 1)
	s.attempts(ctx, attempts)

	span.SetAttributes(
		telemetry.Int("update.attempts", attempts),
	)

	if attempts > 1 {
		s.conflicts(ctx, attempts-1)
	}

	s.telemetry.Info(
		ctx,
		"slot.update.ok",
		"applied update and published a new snapshot",
		telemetry.Int("attempts", attempts),
	)
}

// Init publishes a snapshot of the zero-value of T, as [Slot.Init].
func (s *Instrumented[T]) Init(ctx context.Context) {
	ctx, span := s.telemetry.StartSpan(ctx, "slot.init")
	defer span.End()

	s.next.Init()

	s.stores(ctx, 1)
	s.telemetry.Info(ctx, "slot.init.ok", "published a snapshot of the zero-value")
}

// Reset empties the slot, as [Slot.Reset].
func (s *Instrumented[T]) Reset(ctx context.Context) {
	ctx, span := s.telemetry.StartSpan(ctx, "slot.reset")
	defer span.End()

	s.next.Reset()

	s.telemetry.Info(ctx, "slot.reset.ok", "emptied the slot")
}

// IsEmpty returns true if the slot does not currently hold a value.
//
// It is a passive observation and is not traced.
func (s *Instrumented[T]) IsEmpty() bool {
	return s.next.IsEmpty()
}

func (s *Instrumented[T]) recordLoad(
	ctx context.Context,
	span *telemetry.Span,
	op string,
	ok bool,
) {
	s.loads(ctx, 1)
	span.SetAttributes(telemetry.Bool("slot.empty", !ok))

	if ok {
		s.telemetry.Info(ctx, op+".ok", "returned a copy of the current snapshot")
	} else {
		s.misses(ctx, 1)
		s.telemetry.Info(ctx, op+".empty", "slot is empty")
	}
}
