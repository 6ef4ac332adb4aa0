package slot

import "github.com/dogmatiq/slotkit/internal/x/xclone"

// Update atomically applies fn to the slot's value.
//
// fn receives a private, mutable deep clone of the current snapshot, or the
// zero-value of T if the slot is empty. It may modify the clone in place. A
// new snapshot cloned from the modified value is then published, but only if
// no other writer has replaced the slot's contents in the meantime; otherwise
// it is discarded and the whole sequence is retried against the now current
// snapshot.
//
// Because of these retries fn may be invoked more than once per call. It must
// not have externally observable side effects unless they are safe to repeat.
// The published snapshot is itself a clone of the private copy, so references
// to the copy retained by fn cannot be used to mutate the snapshot.
//
// Update is lock-free but not wait-free: some writer always makes progress,
// but an individual call may retry indefinitely under sustained contention.
// There is no retry bound and no cancellation; a caller that needs either
// must impose it from outside.
func (s *Slot[T]) Update(fn func(*T)) {
	Update(s, func(v *T) struct{} {
		fn(v)
		return struct{}{}
	})
}

// Update atomically applies fn to the value in s and returns fn's result.
//
// It behaves identically to [Slot.Update], with the addition that the result
// of the invocation whose snapshot is successfully published is returned.
// Results produced by invocations that lose the publish race are discarded
// along with their snapshots.
//
// It is a package-level function because Go methods cannot introduce the
// result type parameter R.
func Update[T, R any](s *Slot[T], fn func(*T) R) R {
	for {
		current := s.snapshot.Load()

		var private T
		if current != nil {
			private = xclone.Clone(*current)
		}

		result := fn(&private)

		// Publish a fresh clone rather than the private copy itself, so
		// that any alias of the copy retained by fn does not reach the
		// published snapshot.
		snapshot := xclone.Clone(private)

		if s.BeforeSwap != nil {
			s.BeforeSwap()
		}

		if s.snapshot.CompareAndSwap(current, &snapshot) {
			return result
		}
	}
}
