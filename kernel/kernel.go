// Package kernel implements the run-scoped state machine that ties the
// physical layout, the virtual-process partition, and the per-VP random
// streams together. It is the only sanctioned access path to a VP's stream,
// which is what upholds the guarantee that results are independent of the
// number of ranks and threads used to run a model.
package kernel

import (
	"fmt"
	"sync"

	"github.com/nervasim/nerva/hooking"
	"github.com/nervasim/nerva/idgen"
	"github.com/nervasim/nerva/rng"
	"github.com/nervasim/nerva/vp"
)

// Config carries the run-scoped configuration every physical unit must agree
// on before any element is created or any draw issued.
type Config struct {
	TotalVPs int
	RunSeed  uint64
}

// State enumerates the kernel lifecycle states.
type State int

// The kernel cycles Unconfigured -> Configured -> (Reset) -> Unconfigured.
const (
	Unconfigured State = iota
	Configured
)

// An Element is a simulated network element. Its GlobalID reflects creation
// order across the run; its VP is fixed for the element's lifetime.
type Element struct {
	GlobalID idgen.ID
	VP       int
}

// Hook positions raised by the kernel.
var (
	HookPosConfigure = &hooking.HookPos{Name: "Configure"}
	HookPosReset     = &hooking.HookPos{Name: "Reset"}
	HookPosCreate    = &hooking.HookPos{Name: "CreateElement"}
	HookPosDraw      = &hooking.HookPos{Name: "Draw"}
)

// A DrawRecord is the hook payload describing one successful local draw.
type DrawRecord struct {
	Element Element
	Unit    vp.Unit
	Value   float64
	Seq     uint64
}

// A Kernel owns the deterministic machinery of one run. Configure and Reset
// are collective operations: all units must observe them before any unit
// proceeds, which is what lets the query and draw paths run without locks on
// stream state.
type Kernel struct {
	*hooking.HookableBase

	layout vp.Layout

	stateLock sync.RWMutex
	state     State
	cfg       Config
	partition vp.Partition
	registry  *rng.Registry
	ids       *idgen.Sequential
}

// New creates an unconfigured Kernel over the given physical layout.
func New(layout vp.Layout) *Kernel {
	return &Kernel{
		HookableBase: hooking.NewHookableBase(),
		layout:       layout,
		ids:          idgen.New(),
	}
}

// Configure fixes the VP count and run seed for the run. It fails with a
// ConfigurationError if the kernel is already configured (an intervening
// Reset is required) or if the configuration itself is invalid. A layout with
// more units than VPs is accepted; the extra units own no VP.
func (k *Kernel) Configure(cfg Config) error {
	k.stateLock.Lock()
	defer k.stateLock.Unlock()

	if k.state == Configured {
		return &ConfigurationError{
			Reason: "already configured, reset before reconfiguring",
			Config: cfg,
		}
	}

	partition, err := vp.MakePartition(cfg.TotalVPs, k.layout)
	if err != nil {
		return &ConfigurationError{Reason: err.Error(), Config: cfg}
	}

	k.cfg = cfg
	k.partition = partition
	k.registry = rng.NewRegistry(cfg.TotalVPs, cfg.RunSeed)
	k.state = Configured

	k.InvokeHook(hooking.HookCtx{
		Domain: k,
		Pos:    HookPosConfigure,
		Item:   cfg,
	})

	return nil
}

// Reset atomically tears down all streams, element assignments, and the ID
// sequence, returning the kernel to Unconfigured. It is usable at any time,
// including before the first Configure.
func (k *Kernel) Reset() {
	k.stateLock.Lock()

	k.state = Unconfigured
	k.cfg = Config{}
	k.partition = vp.Partition{}
	k.registry = nil
	k.ids.Reset()

	k.stateLock.Unlock()

	k.InvokeHook(hooking.HookCtx{
		Domain: k,
		Pos:    HookPosReset,
	})
}

// State returns the current lifecycle state.
func (k *Kernel) State() State {
	k.stateLock.RLock()
	defer k.stateLock.RUnlock()

	return k.state
}

// Config returns the active run configuration.
func (k *Kernel) Config() Config {
	k.stateLock.RLock()
	defer k.stateLock.RUnlock()

	return k.cfg
}

// Layout returns the physical layout the kernel runs on.
func (k *Kernel) Layout() vp.Layout {
	return k.layout
}

// Partition returns the active VP partition.
func (k *Kernel) Partition() vp.Partition {
	k.stateLock.RLock()
	defer k.stateLock.RUnlock()

	k.mustBeConfigured("Partition")

	return k.partition
}

// NumElements returns the number of elements created since the last reset.
func (k *Kernel) NumElements() uint64 {
	return k.ids.Count()
}

// CreateElement assigns the next global ID and returns the new element with
// its VP. The assignment depends only on the ID and the configured VP count,
// so construction is reproducible under any physical layout.
func (k *Kernel) CreateElement() Element {
	k.stateLock.RLock()
	k.mustBeConfigured("CreateElement")
	totalVPs := k.cfg.TotalVPs
	k.stateLock.RUnlock()

	id := k.ids.Generate()
	elem := Element{
		GlobalID: id,
		VP:       vp.Of(uint64(id), totalVPs),
	}

	k.InvokeHook(hooking.HookCtx{
		Domain: k,
		Pos:    HookPosCreate,
		Item:   elem,
	})

	return elem
}

func (k *Kernel) mustBeConfigured(op string) {
	if k.state != Configured {
		panic(fmt.Sprintf("kernel: %s called while unconfigured", op))
	}
}
