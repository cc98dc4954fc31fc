package sched

import (
	"sync"

	"github.com/nervasim/nerva/hooking"
	"github.com/nervasim/nerva/kernel"
)

// SerialEngine executes units one after another in index order, and each
// unit's VPs in ascending order. Because every VP draws only from its private
// stream, a run produces the same draw sequences under SerialEngine and
// StepEngine; the serial variant exists for debugging and deterministic
// handler-side ordering.
type SerialEngine struct {
	*hooking.HookableBase

	kernel  *kernel.Kernel
	handler Handler

	pauseLock sync.Mutex

	stepLock sync.RWMutex
	step     int
}

// NewSerialEngine creates a SerialEngine stepping the given handler over the
// kernel's partition.
func NewSerialEngine(k *kernel.Kernel, h Handler) *SerialEngine {
	return &SerialEngine{
		HookableBase: hooking.NewHookableBase(),
		kernel:       k,
		handler:      h,
	}
}

// Run executes the given number of steps.
func (e *SerialEngine) Run(steps int) error {
	for i := 0; i < steps; i++ {
		e.pauseLock.Lock()
		err := e.runStep()
		e.pauseLock.Unlock()

		if err != nil {
			return err
		}
	}

	return nil
}

func (e *SerialEngine) runStep() error {
	step := e.CurrentStep()

	e.InvokeHook(hooking.HookCtx{
		Domain: e,
		Pos:    HookPosStepStart,
		Item:   step,
	})

	partition := e.kernel.Partition()
	layout := partition.Layout()

	for index := 0; index < layout.NumUnits(); index++ {
		unit := layout.UnitAt(index)

		for _, vpID := range partition.OwnedBy(index) {
			ctx := VPContext{
				VP:     vpID,
				Unit:   unit,
				Step:   step,
				Stream: e.kernel.LocalStream(vpID, unit),
			}

			if err := e.handler.Step(ctx); err != nil {
				return err
			}
		}
	}

	e.writeStep(step + 1)

	e.InvokeHook(hooking.HookCtx{
		Domain: e,
		Pos:    HookPosStepEnd,
		Item:   step,
	})

	return nil
}

func (e *SerialEngine) writeStep(step int) {
	e.stepLock.Lock()
	e.step = step
	e.stepLock.Unlock()
}

// Pause prevents the engine from starting the next step.
func (e *SerialEngine) Pause() {
	e.pauseLock.Lock()
}

// Continue resumes stepping after a Pause.
func (e *SerialEngine) Continue() {
	e.pauseLock.Unlock()
}

// CurrentStep returns the number of completed steps.
func (e *SerialEngine) CurrentStep() int {
	e.stepLock.RLock()
	defer e.stepLock.RUnlock()

	return e.step
}

var _ Engine = (*SerialEngine)(nil)
