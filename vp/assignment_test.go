package vp_test

import (
	"testing"

	"github.com/nervasim/nerva/vp"
)

// The element assignment is a pure function of (globalID, totalVPs); repeated
// calls and differing physical layouts cannot change it.
func TestAssignmentIsDeterministic(t *testing.T) {
	for globalID := uint64(1); globalID <= 100; globalID++ {
		first := vp.Of(globalID, 7)
		for i := 0; i < 3; i++ {
			if got := vp.Of(globalID, 7); got != first {
				t.Fatalf("Of(%d, 7) changed between calls: %d then %d",
					globalID, first, got)
			}
		}

		if first < 0 || first >= 7 {
			t.Fatalf("Of(%d, 7) = %d, outside [0, 7)", globalID, first)
		}
	}
}

func TestAssignmentSpreadsRoundRobin(t *testing.T) {
	counts := make([]int, 4)
	for globalID := uint64(1); globalID <= 40; globalID++ {
		counts[vp.Of(globalID, 4)]++
	}

	for vpID, count := range counts {
		if count != 10 {
			t.Fatalf("VP %d received %d of 40 elements, want 10", vpID, count)
		}
	}
}

func TestAssignmentPanicsOnNonPositiveVPCount(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("Of with a non-positive VP count should panic")
		}
	}()

	vp.Of(1, 0)
}
