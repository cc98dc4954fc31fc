// Package vp defines the virtual-process space of a run and its deterministic
// mapping onto physical execution resources. The number of virtual processes
// is a run configuration value, decoupled from the number of processes and
// threads actually executing the simulation, so that the same network produces
// the same results on any machine shape.
package vp

import "fmt"

// A Unit identifies one physical execution unit as a (rank, thread) pair.
type Unit struct {
	Rank   int
	Thread int
}

// A Layout describes the physical resource configuration of a run: how many
// ranks participate and how many worker threads each rank drives. A Layout is
// immutable for the lifetime of the run.
type Layout struct {
	numRanks       int
	threadsPerRank int
}

// MakeLayout creates a Layout. Both dimensions must be positive.
func MakeLayout(numRanks, threadsPerRank int) (Layout, error) {
	if numRanks <= 0 || threadsPerRank <= 0 {
		return Layout{}, fmt.Errorf(
			"vp: layout must be positive in both dimensions, got %d ranks x %d threads",
			numRanks, threadsPerRank)
	}

	return Layout{numRanks: numRanks, threadsPerRank: threadsPerRank}, nil
}

// NumRanks returns the number of ranks in the layout.
func (l Layout) NumRanks() int {
	return l.numRanks
}

// ThreadsPerRank returns the number of worker threads each rank drives.
func (l Layout) ThreadsPerRank() int {
	return l.threadsPerRank
}

// NumUnits returns the total number of physical units in the layout.
func (l Layout) NumUnits() int {
	return l.numRanks * l.threadsPerRank
}

// UnitIndex returns the global index of a unit, enumerated rank-major: all
// threads of rank 0 first, then all threads of rank 1, and so on.
func (l Layout) UnitIndex(u Unit) int {
	if u.Rank < 0 || u.Rank >= l.numRanks ||
		u.Thread < 0 || u.Thread >= l.threadsPerRank {
		panic(fmt.Sprintf(
			"vp: unit (rank %d, thread %d) is outside layout %dx%d",
			u.Rank, u.Thread, l.numRanks, l.threadsPerRank))
	}

	return u.Rank*l.threadsPerRank + u.Thread
}

// UnitAt is the inverse of UnitIndex.
func (l Layout) UnitAt(index int) Unit {
	if index < 0 || index >= l.NumUnits() {
		panic(fmt.Sprintf(
			"vp: unit index %d is outside layout %dx%d",
			index, l.numRanks, l.threadsPerRank))
	}

	return Unit{
		Rank:   index / l.threadsPerRank,
		Thread: index % l.threadsPerRank,
	}
}

// Units enumerates every unit in the layout in index order.
func (l Layout) Units() []Unit {
	units := make([]Unit, 0, l.NumUnits())
	for i := 0; i < l.NumUnits(); i++ {
		units = append(units, l.UnitAt(i))
	}

	return units
}
