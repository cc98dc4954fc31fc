// Package rng provides the per-virtual-process random-number streams that make
// simulation results reproducible. Each VP owns one stream whose seed is a
// pure function of the run seed and the VP ID, so the sequence a VP draws is
// the same no matter how many ranks or threads execute the run.
package rng

import "math/rand/v2"

// A Stream is the deterministic pseudo-random sequence bound to one VP. It is
// advanced only by draws, and only the physical unit that owns the VP may
// issue them, so no locking is needed.
//
// A Stream is not safe for concurrent use. Ownership, enforced by the kernel,
// is what makes lock-free draws sound.
type Stream struct {
	vpID  int
	src   *rand.Rand
	draws uint64
}

func newStream(vpID int, runSeed uint64) *Stream {
	// PCG seeded with (runSeed, vpID+1): a pure function of the run
	// configuration. The +1 keeps VP 0 off the all-zero stream selector.
	return &Stream{
		vpID: vpID,
		src:  rand.New(rand.NewPCG(runSeed, uint64(vpID)+1)),
	}
}

// VP returns the ID of the virtual process the stream belongs to.
func (s *Stream) VP() int {
	return s.vpID
}

// Draws returns the number of values drawn from the stream so far.
func (s *Stream) Draws() uint64 {
	return s.draws
}

// Float64 draws the next value in the stream's canonical sequence,
// uniformly distributed in [0, 1).
func (s *Stream) Float64() float64 {
	s.draws++
	return s.src.Float64()
}

// Uint64 draws the next raw 64-bit value from the stream.
func (s *Stream) Uint64() uint64 {
	s.draws++
	return s.src.Uint64()
}

// IntN draws the next value in [0, n).
func (s *Stream) IntN(n int) int {
	s.draws++
	return s.src.IntN(n)
}
