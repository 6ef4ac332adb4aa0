package slot

import "testing"

// RunBenchmarks runs benchmarks against a [Slot] holding values of type T.
//
// gen is called to produce representative values to publish. It allows
// callers to benchmark the slot with their own value types, since clone and
// copy costs dominate and vary with the shape of T.
func RunBenchmarks[T any](
	b *testing.B,
	gen func() T,
) {
	b.Run("Store", func(b *testing.B) {
		var s Slot[T]
		v := gen()

		b.ReportAllocs()
		for b.Loop() {
			s.Store(v)
		}
	})

	b.Run("Load", func(b *testing.B) {
		b.Run("empty slot", func(b *testing.B) {
			var s Slot[T]

			b.ReportAllocs()
			for b.Loop() {
				s.Load()
			}
		})

		b.Run("populated slot", func(b *testing.B) {
			s := NewSlot(gen())

			b.ReportAllocs()
			for b.Loop() {
				s.Load()
			}
		})
	})

	b.Run("TryLoad", func(b *testing.B) {
		s := NewSlot(gen())

		b.ReportAllocs()
		for b.Loop() {
			s.TryLoad()
		}
	})

	b.Run("Read", func(b *testing.B) {
		s := NewSlot(gen())

		b.ReportAllocs()
		for b.Loop() {
			Read(
				s,
				func(T) struct{} {
					return struct{}{}
				},
			)
		}
	})

	b.Run("Update", func(b *testing.B) {
		b.Run("single writer", func(b *testing.B) {
			s := NewSlot(gen())

			b.ReportAllocs()
			for b.Loop() {
				s.Update(func(*T) {})
			}
		})

		b.Run("contended", func(b *testing.B) {
			s := NewSlot(gen())

			b.ReportAllocs()
			b.RunParallel(func(pb *testing.PB) {
				for pb.Next() {
					s.Update(func(*T) {})
				}
			})
		})
	})

	b.Run("Load concurrent with writers", func(b *testing.B) {
		s := NewSlot(gen())

		stop := make(chan struct{})
		defer close(stop)

		go func() {
			v := gen()
			for {
				select {
				case <-stop:
					return
				default:
					s.Store(v)
				}
			}
		}()

		b.ReportAllocs()
		for b.Loop() {
			s.Load()
		}
	})
}
