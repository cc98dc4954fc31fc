package sched

import (
	"sync"

	"github.com/nervasim/nerva/hooking"
	"github.com/nervasim/nerva/kernel"
)

// StepEngine executes each step with one goroutine per physical unit, joining
// them at the step boundary.
type StepEngine struct {
	*hooking.HookableBase

	kernel  *kernel.Kernel
	handler Handler

	pauseLock sync.Mutex

	stepLock sync.RWMutex
	step     int

	waitGroup sync.WaitGroup

	errLock  sync.Mutex
	firstErr error
}

// NewStepEngine creates a StepEngine stepping the given handler over the
// kernel's partition.
func NewStepEngine(k *kernel.Kernel, h Handler) *StepEngine {
	return &StepEngine{
		HookableBase: hooking.NewHookableBase(),
		kernel:       k,
		handler:      h,
	}
}

// Run executes the given number of steps.
func (e *StepEngine) Run(steps int) error {
	for i := 0; i < steps; i++ {
		e.pauseLock.Lock()
		e.runStep()
		e.pauseLock.Unlock()

		if err := e.err(); err != nil {
			return err
		}
	}

	return nil
}

func (e *StepEngine) runStep() {
	step := e.CurrentStep()

	e.InvokeHook(hooking.HookCtx{
		Domain: e,
		Pos:    HookPosStepStart,
		Item:   step,
	})

	partition := e.kernel.Partition()
	layout := partition.Layout()

	for index := 0; index < layout.NumUnits(); index++ {
		e.waitGroup.Add(1)
		go e.unitWorker(index, step)
	}

	e.waitGroup.Wait()

	e.writeStep(step + 1)

	e.InvokeHook(hooking.HookCtx{
		Domain: e,
		Pos:    HookPosStepEnd,
		Item:   step,
	})
}

func (e *StepEngine) unitWorker(unitIndex, step int) {
	defer e.waitGroup.Done()

	partition := e.kernel.Partition()
	unit := partition.Layout().UnitAt(unitIndex)

	for _, vpID := range partition.OwnedBy(unitIndex) {
		ctx := VPContext{
			VP:     vpID,
			Unit:   unit,
			Step:   step,
			Stream: e.kernel.LocalStream(vpID, unit),
		}

		if err := e.handler.Step(ctx); err != nil {
			e.recordErr(err)
			return
		}
	}
}

func (e *StepEngine) recordErr(err error) {
	e.errLock.Lock()
	defer e.errLock.Unlock()

	if e.firstErr == nil {
		e.firstErr = err
	}
}

func (e *StepEngine) err() error {
	e.errLock.Lock()
	defer e.errLock.Unlock()

	return e.firstErr
}

func (e *StepEngine) writeStep(step int) {
	e.stepLock.Lock()
	e.step = step
	e.stepLock.Unlock()
}

// Pause prevents the engine from starting the next step.
func (e *StepEngine) Pause() {
	e.pauseLock.Lock()
}

// Continue resumes stepping after a Pause.
func (e *StepEngine) Continue() {
	e.pauseLock.Unlock()
}

// CurrentStep returns the number of completed steps.
func (e *StepEngine) CurrentStep() int {
	e.stepLock.RLock()
	defer e.stepLock.RUnlock()

	return e.step
}

var _ Engine = (*StepEngine)(nil)
