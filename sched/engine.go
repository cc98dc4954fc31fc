// Package sched drives simulation steps across physical units. One worker per
// unit executes the units' owned VPs in parallel; a barrier at every step
// boundary is the only cross-unit synchronization. Each worker touches only
// the streams of the VPs it owns, so step handlers never contend on RNG state
// and the drawn sequences do not depend on scheduling order.
package sched

import (
	"github.com/nervasim/nerva/hooking"
	"github.com/nervasim/nerva/rng"
	"github.com/nervasim/nerva/vp"
)

// VPContext is handed to a Handler for every (VP, step) pair. Stream is the
// private stream of the VP being stepped; it must not be retained past the
// call.
type VPContext struct {
	VP     int
	Unit   vp.Unit
	Step   int
	Stream *rng.Stream
}

// Handler advances the model state of one virtual process by one step.
//
// Handlers run concurrently for VPs owned by different units. A handler may
// freely use ctx.Stream; any other shared state it touches must be
// synchronized by the handler itself.
type Handler interface {
	Step(ctx VPContext) error
}

// Engine runs simulation steps over the kernel's partition.
type Engine interface {
	hooking.Hookable

	// Run executes the given number of steps, dispatching every owned VP of
	// every unit once per step. It stops at the first handler error.
	Run(steps int) error

	// Pause prevents the engine from starting the next step.
	Pause()

	// Continue resumes stepping after a Pause.
	Continue()

	// CurrentStep returns the number of completed steps.
	CurrentStep() int
}

// Hook positions raised by the engines.
var (
	HookPosStepStart = &hooking.HookPos{Name: "StepStart"}
	HookPosStepEnd   = &hooking.HookPos{Name: "StepEnd"}
)
