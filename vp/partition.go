package vp

import "fmt"

// A Partition fixes the number of virtual processes of a run and maps each VP
// onto the physical unit that hosts it. The mapping is round-robin over the
// unit index, so it can be re-derived on every rank without communication and
// never depends on runtime load.
//
// A layout with more units than VPs is a supported degenerate case: the extra
// units simply own no VP.
type Partition struct {
	totalVPs int
	layout   Layout
}

// MakePartition creates a Partition of totalVPs virtual processes over the
// given layout. totalVPs must be positive.
func MakePartition(totalVPs int, layout Layout) (Partition, error) {
	if totalVPs <= 0 {
		return Partition{}, fmt.Errorf(
			"vp: total VP count must be positive, got %d", totalVPs)
	}

	return Partition{totalVPs: totalVPs, layout: layout}, nil
}

// TotalVPs returns the number of virtual processes in the partition.
func (p Partition) TotalVPs() int {
	return p.totalVPs
}

// Layout returns the physical layout the partition distributes over.
func (p Partition) Layout() Layout {
	return p.layout
}

// OwnerOf returns the index of the unit that owns a VP.
func (p Partition) OwnerOf(vpID int) int {
	p.mustContain(vpID)
	return vpID % p.layout.NumUnits()
}

// OwnedBy returns the VPs owned by the unit at the given index, in ascending
// order. The sets returned for all units are disjoint and together cover
// [0, TotalVPs).
func (p Partition) OwnedBy(unitIndex int) []int {
	if unitIndex < 0 || unitIndex >= p.layout.NumUnits() {
		panic(fmt.Sprintf(
			"vp: unit index %d is outside layout %dx%d",
			unitIndex, p.layout.NumRanks(), p.layout.ThreadsPerRank()))
	}

	var owned []int
	for vpID := unitIndex; vpID < p.totalVPs; vpID += p.layout.NumUnits() {
		owned = append(owned, vpID)
	}

	return owned
}

// IsOwnedBy reports whether the given unit owns the VP.
func (p Partition) IsOwnedBy(vpID int, u Unit) bool {
	return p.OwnerOf(vpID) == p.layout.UnitIndex(u)
}

func (p Partition) mustContain(vpID int) {
	if vpID < 0 || vpID >= p.totalVPs {
		panic(fmt.Sprintf(
			"vp: VP %d is outside [0, %d)", vpID, p.totalVPs))
	}
}
