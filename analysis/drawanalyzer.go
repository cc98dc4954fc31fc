// Package analysis aggregates per-VP draw statistics. Rescaling a run to a
// different number of units must leave every VP's draw sequence untouched, so
// comparing these summaries across layouts is a cheap audit of that property.
package analysis

import (
	"sort"
	"sync"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/nervasim/nerva/hooking"
	"github.com/nervasim/nerva/kernel"
)

// A VPSummary describes the values drawn from one VP's stream.
type VPSummary struct {
	VP       int
	Count    int
	Mean     float64
	Variance float64
	Min      float64
	Max      float64
}

// A DrawAnalyzer collects draw values per VP. It implements hooking.Hook, so
// it can be attached to a kernel directly and fed by the draw hook.
type DrawAnalyzer struct {
	lock    sync.Mutex
	samples map[int][]float64
}

// NewDrawAnalyzer creates an empty DrawAnalyzer.
func NewDrawAnalyzer() *DrawAnalyzer {
	return &DrawAnalyzer{samples: make(map[int][]float64)}
}

// Add records one value drawn from the given VP's stream.
func (a *DrawAnalyzer) Add(vpID int, value float64) {
	a.lock.Lock()
	defer a.lock.Unlock()

	a.samples[vpID] = append(a.samples[vpID], value)
}

// Func implements hooking.Hook, recording kernel draw hooks.
func (a *DrawAnalyzer) Func(ctx hooking.HookCtx) {
	if ctx.Pos != kernel.HookPosDraw {
		return
	}

	record := ctx.Item.(kernel.DrawRecord)
	a.Add(record.Element.VP, record.Value)
}

// Summary returns the statistics of one VP's recorded draws.
func (a *DrawAnalyzer) Summary(vpID int) VPSummary {
	a.lock.Lock()
	defer a.lock.Unlock()

	return a.summarize(vpID)
}

// Summaries returns the statistics of every VP with recorded draws, in
// ascending VP order.
func (a *DrawAnalyzer) Summaries() []VPSummary {
	a.lock.Lock()
	defer a.lock.Unlock()

	vps := make([]int, 0, len(a.samples))
	for vpID := range a.samples {
		vps = append(vps, vpID)
	}
	sort.Ints(vps)

	summaries := make([]VPSummary, 0, len(vps))
	for _, vpID := range vps {
		summaries = append(summaries, a.summarize(vpID))
	}

	return summaries
}

func (a *DrawAnalyzer) summarize(vpID int) VPSummary {
	values := a.samples[vpID]
	if len(values) == 0 {
		return VPSummary{VP: vpID}
	}

	return VPSummary{
		VP:       vpID,
		Count:    len(values),
		Mean:     stat.Mean(values, nil),
		Variance: stat.Variance(values, nil),
		Min:      floats.Min(values),
		Max:      floats.Max(values),
	}
}

var _ hooking.Hook = (*DrawAnalyzer)(nil)
