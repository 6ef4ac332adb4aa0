package slot_test

import (
	"testing"

	. "github.com/dogmatiq/slotkit/slot"
	"github.com/google/go-cmp/cmp"
	"pgregory.net/rapid"
)

func TestSlot_propertyBased(t *testing.T) {
	t.Parallel()

	type record struct {
		Count int
		Label string
	}

	rapid.Check(t, func(t *rapid.T) {
		var s Slot[record]

		// Model of the slot's state: a plain value plus a presence flag.
		var (
			model   record
			present bool
		)

		draw := func(t *rapid.T) record {
			return record{
				Count: rapid.Int().Draw(t, "count"),
				Label: rapid.String().Draw(t, "label"),
			}
		}

		t.Repeat(map[string]func(*rapid.T){
			"Store": func(t *rapid.T) {
				v := draw(t)
				s.Store(v)
				model, present = v, true
			},
			"Load": func(t *rapid.T) {
				expect := record{}
				if present {
					expect = model
				}

				if diff := cmp.Diff(expect, s.Load()); diff != "" {
					t.Fatal(diff)
				}
			},
			"TryLoad": func(t *rapid.T) {
				v, ok := s.TryLoad()
				if ok != present {
					t.Fatalf("unexpected ok: got %t, want %t", ok, present)
				}

				expect := record{}
				if present {
					expect = model
				}

				if diff := cmp.Diff(expect, v); diff != "" {
					t.Fatal(diff)
				}
			},
			"Update": func(t *rapid.T) {
				delta := rapid.IntRange(1, 10).Draw(t, "delta")

				s.Update(func(v *record) {
					v.Count += delta
				})

				if !present {
					model = record{}
				}
				model.Count += delta
				present = true
			},
			"Init": func(t *rapid.T) {
				s.Init()
				model, present = record{}, true
			},
			"Reset": func(t *rapid.T) {
				s.Reset()
				model, present = record{}, false
			},
			"IsEmpty": func(t *rapid.T) {
				if empty := s.IsEmpty(); empty == present {
					t.Fatalf("unexpected emptiness: got %t, want %t", empty, !present)
				}
			},
		})
	})
}
