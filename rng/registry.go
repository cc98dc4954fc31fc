package rng

import "fmt"

// A Registry owns one Stream per virtual process for a run. Streams are
// created lazily on first request; the n-th value drawn from VP v's stream
// depends only on (runSeed, v, n), never on which unit hosts the VP or how
// many streams were requested before it.
//
// Stream creation happens during single-threaded configuration or from the
// sole unit that owns the VP, so the Registry does not lock.
type Registry struct {
	runSeed  uint64
	totalVPs int
	streams  []*Stream
}

// NewRegistry creates a Registry covering VPs [0, totalVPs).
func NewRegistry(totalVPs int, runSeed uint64) *Registry {
	if totalVPs <= 0 {
		panic(fmt.Sprintf(
			"rng: total VP count must be positive, got %d", totalVPs))
	}

	return &Registry{
		runSeed:  runSeed,
		totalVPs: totalVPs,
		streams:  make([]*Stream, totalVPs),
	}
}

// RunSeed returns the run seed all streams derive from.
func (r *Registry) RunSeed() uint64 {
	return r.runSeed
}

// TotalVPs returns the number of VPs the registry covers.
func (r *Registry) TotalVPs() int {
	return r.totalVPs
}

// StreamFor returns the stream of the given VP, creating it on first use.
func (r *Registry) StreamFor(vpID int) *Stream {
	if vpID < 0 || vpID >= r.totalVPs {
		panic(fmt.Sprintf(
			"rng: VP %d is outside [0, %d), run seed %d",
			vpID, r.totalVPs, r.runSeed))
	}

	if r.streams[vpID] == nil {
		r.streams[vpID] = newStream(vpID, r.runSeed)
	}

	return r.streams[vpID]
}
