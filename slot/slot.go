// Package slot provides a lock-free container for sharing a value of an
// arbitrary type between goroutines.
//
// A [Slot] holds at most one immutable snapshot of a value at a time. Writers
// publish whole new snapshots by swapping a single atomic pointer, so readers
// always observe a complete value from exactly one write, never a mixture of
// fields from two writes. Superseded snapshots remain valid for any reader
// that captured them and are reclaimed by the garbage collector once
// unreferenced.
//
// A successful publish happens-before any load that observes it, but the slot
// makes no ordering promises about unrelated shared memory, nor between two
// different slots. Callers that need such relationships must synchronize that
// memory themselves.
package slot

import (
	"sync/atomic"

	"github.com/dogmatiq/slotkit/internal/x/xclone"
)

// A Slot is a container that allows concurrent reads and updates of a value
// of type T without a mutex.
//
// The zero-value is an empty slot, ready for use. The zero-value of T serves
// as the value's default; an empty slot is distinguishable from one holding
// the default via [Slot.TryLoad] and [Slot.IsEmpty].
//
// Every write publishes a deep clone of the value, and every load returns
// one, so a snapshot can never be mutated through references retained by the
// caller. There is no operation that exposes a mutable alias of the current
// snapshot; all mutation goes through [Slot.Update] or [Update].
//
// A Slot must not be copied after first use.
type Slot[T any] struct {
	// BeforeSwap, if non-nil, is invoked immediately before each
	// compare-and-swap attempt made by an update operation. It exists so
	// that tests can deterministically induce contention. It must be set
	// before the slot is shared between goroutines.
	BeforeSwap func()

	snapshot atomic.Pointer[T]
}

// NewSlot returns a slot holding a snapshot of v.
func NewSlot[T any](v T) *Slot[T] {
	var s Slot[T]
	s.Store(v)
	return &s
}

// Store publishes a new snapshot of v, replacing the slot's current contents.
//
// It is wait-free: it performs exactly one atomic write regardless of
// contention.
func (s *Slot[T]) Store(v T) {
	v = xclone.Clone(v)
	s.snapshot.Store(&v)
}

// Load returns a copy of the slot's current value, or the zero-value of T if
// the slot is empty.
//
// Use [Slot.TryLoad] when an empty slot must be distinguishable from one
// holding the zero-value. It is wait-free.
func (s *Slot[T]) Load() T {
	if p := s.snapshot.Load(); p != nil {
		return xclone.Clone(*p)
	}

	var zero T
	return zero
}

// TryLoad returns a copy of the slot's current value. ok is false if the slot
// is empty, in which case v is the zero-value of T.
//
// It is wait-free.
func (s *Slot[T]) TryLoad() (v T, ok bool) {
	if p := s.snapshot.Load(); p != nil {
		return xclone.Clone(*p), true
	}

	var zero T
	return zero, false
}

// Init publishes a snapshot of the zero-value of T, making the slot
// non-empty.
//
// It is equivalent to storing the zero-value and is wait-free.
func (s *Slot[T]) Init() {
	var zero T
	s.snapshot.Store(&zero)
}

// Reset empties the slot.
//
// Readers that captured a snapshot before the reset are unaffected; the
// snapshot remains valid until they release it. Subsequent loads observe the
// empty state until the next store, update or init. It is wait-free.
func (s *Slot[T]) Reset() {
	s.snapshot.Store(nil)
}

// IsEmpty returns true if the slot does not currently hold a value.
//
// It inspects the slot's pointer without copying the value and is wait-free.
func (s *Slot[T]) IsEmpty() bool {
	return s.snapshot.Load() == nil
}
