package slot

// Read invokes fn with the slot's current value, or the zero-value of T if
// the slot is empty, and returns fn's result.
//
// Unlike [Slot.Load], Read does not deep-clone the snapshot before handing it
// to fn; it exists precisely to avoid that clone when fn can compute its
// result in place. The snapshot is guaranteed to remain valid and unmodified
// for the duration of the call, even if a concurrent writer replaces the
// slot's contents mid-call.
//
// fn receives the value by copy, so assigning to it or its fields has no
// effect on the slot. fn must not mutate memory reachable through
// reference-typed fields of its argument, and must not retain such references
// after returning; doing either would alter a published snapshot that other
// readers may share. It is wait-free.
//
// It is a package-level function because Go methods cannot introduce the
// result type parameter R.
func Read[T, R any](s *Slot[T], fn func(T) R) R {
	if p := s.snapshot.Load(); p != nil {
		return fn(*p)
	}

	var zero T
	return fn(zero)
}
