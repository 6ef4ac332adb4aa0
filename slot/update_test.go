package slot_test

import (
	"fmt"
	"sync"
	"testing"

	. "github.com/dogmatiq/slotkit/slot"
	"github.com/google/go-cmp/cmp"
)

func TestUpdate(t *testing.T) {
	t.Parallel()

	t.Run("it applies the mutation to the current value", func(t *testing.T) {
		t.Parallel()

		var s Slot[profile]
		s.Store(newProfile(1))

		s.Update(func(v *profile) {
			v.ID = 2
			v.Tags = append(v.Tags, "<tag-3>")
		})

		expect := newProfile(1)
		expect.ID = 2
		expect.Tags = append(expect.Tags, "<tag-3>")

		if diff := cmp.Diff(expect, s.Load()); diff != "" {
			t.Fatal(diff)
		}
	})

	t.Run("it treats an empty slot as holding the zero-value", func(t *testing.T) {
		t.Parallel()

		var s Slot[profile]

		s.Update(func(v *profile) {
			v.ID = 1
		})

		if s.IsEmpty() {
			t.Fatal("expected the slot to be non-empty after an update")
		}

		if diff := cmp.Diff(profile{ID: 1}, s.Load()); diff != "" {
			t.Fatal(diff)
		}
	})

	t.Run("it returns the result of the successful invocation", func(t *testing.T) {
		t.Parallel()

		s := NewSlot(profile{ID: 41})

		id := Update(
			s,
			func(v *profile) int {
				v.ID++
				return v.ID
			},
		)

		if id != 42 {
			t.Fatalf("unexpected result: got %d, want %d", id, 42)
		}

		if v := s.Load(); v.ID != 42 {
			t.Fatalf("unexpected stored value: got %d, want %d", v.ID, 42)
		}
	})

	t.Run("it does not publish mutations through the private copy before the swap", func(t *testing.T) {
		t.Parallel()

		var s Slot[profile]
		s.Store(newProfile(1))

		s.Update(func(v *profile) {
			v.Tags[0] = "<mutated>"

			// The published snapshot must be untouched while the private
			// copy is being modified.
			if got := s.Load().Tags[0]; got != "<tag-1>" {
				t.Fatalf("published snapshot was mutated: got %q", got)
			}
		})

		if got := s.Load().Tags[0]; got != "<mutated>" {
			t.Fatalf("update was not published: got %q", got)
		}
	})

	t.Run("it does not publish the private copy handed to the mutate function", func(t *testing.T) {
		t.Parallel()

		var s Slot[profile]
		s.Store(newProfile(1))

		var retained *profile
		s.Update(func(v *profile) {
			retained = v
			v.ID = 2
		})

		// Mutating the retained copy after the update completes must not
		// reach the published snapshot.
		retained.ID = 999
		retained.Tags[0] = "<mutated>"

		expect := newProfile(1)
		expect.ID = 2

		if diff := cmp.Diff(expect, s.Load()); diff != "" {
			t.Fatal(diff)
		}
	})

	t.Run("it retries when another writer intervenes", func(t *testing.T) {
		t.Parallel()

		var s Slot[profile]
		s.Store(newProfile(1))

		// Induce contention by replacing the snapshot from inside the hook
		// on the first two publish attempts.
		interferences := 2
		s.BeforeSwap = func() {
			if interferences > 0 {
				interferences--
				s.Store(newProfile(100 + interferences))
			}
		}

		invocations := 0
		s.Update(func(v *profile) {
			invocations++
			v.Tags = append(v.Tags, "<appended>")
		})

		if invocations != 3 {
			t.Fatalf("unexpected number of invocations: got %d, want %d", invocations, 3)
		}

		// Despite three invocations, the final value must reflect exactly
		// one application of the mutation, applied to the snapshot that won
		// the race.
		expect := newProfile(100)
		expect.Tags = append(expect.Tags, "<appended>")

		if diff := cmp.Diff(expect, s.Load()); diff != "" {
			t.Fatal(diff)
		}
	})
}

func TestUpdate_concurrency(t *testing.T) {
	t.Parallel()

	for _, writers := range []int{1, 8, 64} {
		t.Run(fmt.Sprintf("%d writers", writers), func(t *testing.T) {
			t.Parallel()

			type counter struct {
				Count int
				Label string
			}

			var s Slot[counter]
			s.Store(counter{Label: "<label>"})

			var g sync.WaitGroup
			for range writers {
				g.Add(1)
				go func() {
					defer g.Done()

					s.Update(func(v *counter) {
						v.Count++
					})
				}()
			}
			g.Wait()

			expect := counter{Count: writers, Label: "<label>"}
			if diff := cmp.Diff(expect, s.Load()); diff != "" {
				t.Fatal(diff)
			}
		})
	}
}
