// Package hooking lets instrumentation observe kernel and engine activity
// without the observed code knowing who is listening.
package hooking

// HookPos identifies the lifecycle point a hook fires from.
type HookPos struct {
	Name string
}

// HookCtx carries the information about the site that triggered a hook.
type HookCtx struct {
	// Domain is the hookable object raising the hook.
	Domain Hookable

	// Pos identifies the lifecycle point the hook fires from.
	Pos *HookPos

	// Item is the primary subject of the hook (an element, a draw, a step).
	Item any

	// Detail holds optional auxiliary data; hook sites may leave it nil.
	Detail any
}

// Hookable is an object that accepts Hooks.
type Hookable interface {
	// AcceptHook registers a hook. Hooks must be registered during
	// single-threaded setup, before the domain starts running, and stay
	// attached for the domain's lifetime.
	AcceptHook(hook Hook)

	// Hooks returns all registered hooks.
	Hooks() []Hook

	// InvokeHook triggers the registered hooks.
	InvokeHook(ctx HookCtx)
}

// A Hook is a short piece of program invoked by a hookable object.
type Hook interface {
	Func(ctx HookCtx)
}

// HookableBase provides the hook bookkeeping for types that embed it.
type HookableBase struct {
	hooks []Hook
}

// NewHookableBase creates a HookableBase.
func NewHookableBase() *HookableBase {
	return &HookableBase{}
}

// AcceptHook registers a hook. Registering the same hook twice is a
// programming error.
func (h *HookableBase) AcceptHook(hook Hook) {
	for _, existing := range h.hooks {
		if existing == hook {
			panic("hooking: duplicated hook")
		}
	}

	h.hooks = append(h.hooks, hook)
}

// Hooks returns all registered hooks.
func (h *HookableBase) Hooks() []Hook {
	return h.hooks
}

// InvokeHook triggers the registered hooks in registration order.
func (h *HookableBase) InvokeHook(ctx HookCtx) {
	for _, hook := range h.hooks {
		hook.Func(ctx)
	}
}

var _ Hookable = (*HookableBase)(nil)
