package datarecording

import (
	"sync"

	"github.com/nervasim/nerva/hooking"
	"github.com/nervasim/nerva/kernel"
)

// AssignmentEntry records one element-to-VP assignment.
type AssignmentEntry struct {
	GlobalID uint64
	VP       int
}

// DrawEntry records one local draw.
type DrawEntry struct {
	GlobalID uint64
	VP       int
	Rank     int
	Thread   int
	Seq      uint64
	Value    float64
}

// KernelTraceHook records element creations and draws raised by a kernel into
// a DataRecorder. Attach it with AcceptHook before the run starts. Draw hooks
// fire concurrently from unit workers, so inserts are serialized here.
type KernelTraceHook struct {
	lock     sync.Mutex
	recorder DataRecorder
}

// NewKernelTraceHook creates the hook and its two trace tables.
func NewKernelTraceHook(recorder DataRecorder) *KernelTraceHook {
	recorder.CreateTable("assignments", AssignmentEntry{})
	recorder.CreateTable("draws", DrawEntry{})

	return &KernelTraceHook{recorder: recorder}
}

// Func implements hooking.Hook.
func (h *KernelTraceHook) Func(ctx hooking.HookCtx) {
	h.lock.Lock()
	defer h.lock.Unlock()

	switch ctx.Pos {
	case kernel.HookPosCreate:
		elem := ctx.Item.(kernel.Element)
		h.recorder.InsertData("assignments", AssignmentEntry{
			GlobalID: uint64(elem.GlobalID),
			VP:       elem.VP,
		})
	case kernel.HookPosDraw:
		record := ctx.Item.(kernel.DrawRecord)
		h.recorder.InsertData("draws", DrawEntry{
			GlobalID: uint64(record.Element.GlobalID),
			VP:       record.Element.VP,
			Rank:     record.Unit.Rank,
			Thread:   record.Unit.Thread,
			Seq:      record.Seq,
			Value:    record.Value,
		})
	}
}

var _ hooking.Hook = (*KernelTraceHook)(nil)
