package vp

import "fmt"

// Of maps a global element ID to the virtual process that simulates it.
//
// The assignment is round-robin over the VP space, vp = globalID % totalVPs.
// It is a pure function of its two arguments: elements created in any order,
// on any rank, under any physical layout receive the same VP. This is the
// property that keeps simulation results independent of the machine shape.
func Of(globalID uint64, totalVPs int) int {
	if totalVPs <= 0 {
		panic(fmt.Sprintf(
			"vp: cannot assign element %d, total VP count %d is not positive",
			globalID, totalVPs))
	}

	return int(globalID % uint64(totalVPs))
}
