// Package idgen issues the creation-order global IDs that identify network
// elements for the lifetime of a run.
package idgen

import "sync/atomic"

// ID is a run-wide unique element identifier. IDs reflect creation order
// across the whole run, independent of which unit issues the creation call.
type ID uint64

// Generator produces unique identifiers.
type Generator interface {
	Generate() ID
}

// Sequential is a Generator whose first emitted ID is 1. It is safe for
// concurrent use.
type Sequential struct {
	next uint64
}

// New returns a Sequential generator.
func New() *Sequential {
	return &Sequential{}
}

// Generate returns the next ID.
func (g *Sequential) Generate() ID {
	return ID(atomic.AddUint64(&g.next, 1))
}

// Count returns the number of IDs generated so far.
func (g *Sequential) Count() uint64 {
	return atomic.LoadUint64(&g.next)
}

// Reset restarts the sequence from 1. Only the kernel's full reset may call
// this; resetting while elements exist would alias their IDs.
func (g *Sequential) Reset() {
	atomic.StoreUint64(&g.next, 0)
}

var _ Generator = (*Sequential)(nil)
