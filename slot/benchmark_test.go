package slot_test

import (
	"testing"

	. "github.com/dogmatiq/slotkit/slot"
)

func BenchmarkSlot(b *testing.B) {
	RunBenchmarks(
		b,
		func() profile {
			return newProfile(1)
		},
	)
}
