package kernel

import (
	"fmt"

	"github.com/nervasim/nerva/hooking"
	"github.com/nervasim/nerva/rng"
	"github.com/nervasim/nerva/vp"
)

// IsLocal reports whether the calling unit owns the element's VP. "Not local"
// is the expected, frequent outcome for most elements; callers skip those.
func (k *Kernel) IsLocal(e Element, caller vp.Unit) bool {
	k.stateLock.RLock()
	defer k.stateLock.RUnlock()

	k.mustBeConfigured("IsLocal")

	return k.partition.IsOwnedBy(e.VP, caller)
}

// RNGIfLocal returns the element's VP stream if the calling unit owns it.
// When the element is remote the second return is false and the VP's stream
// is neither created nor advanced.
func (k *Kernel) RNGIfLocal(e Element, caller vp.Unit) (*rng.Stream, bool) {
	k.stateLock.RLock()
	k.mustBeConfigured("RNGIfLocal")
	local := k.partition.IsOwnedBy(e.VP, caller)
	registry := k.registry
	k.stateLock.RUnlock()

	if !local {
		return nil, false
	}

	return registry.StreamFor(e.VP), true
}

// Draw advances the element's VP stream by one step and returns the drawn
// value, if the calling unit owns the VP. For remote elements it returns
// (0, false) without touching the stream.
func (k *Kernel) Draw(e Element, caller vp.Unit) (float64, bool) {
	stream, ok := k.RNGIfLocal(e, caller)
	if !ok {
		return 0, false
	}

	value := stream.Float64()

	k.InvokeHook(hooking.HookCtx{
		Domain: k,
		Pos:    HookPosDraw,
		Item: DrawRecord{
			Element: e,
			Unit:    caller,
			Value:   value,
			Seq:     stream.Draws(),
		},
	})

	return value, true
}

// LocalStream returns the stream of a VP the calling unit owns. Requesting a
// VP owned by another unit is a fatal programming error: a tolerated
// cross-unit draw would silently break reproducibility.
func (k *Kernel) LocalStream(vpID int, caller vp.Unit) *rng.Stream {
	k.stateLock.RLock()
	k.mustBeConfigured("LocalStream")
	partition := k.partition
	registry := k.registry
	k.stateLock.RUnlock()

	if !partition.IsOwnedBy(vpID, caller) {
		panic(fmt.Sprintf(
			"kernel: unit (rank %d, thread %d) requested stream of VP %d "+
				"owned by unit %d (totalVPs %d, %d units)",
			caller.Rank, caller.Thread, vpID, partition.OwnerOf(vpID),
			partition.TotalVPs(), k.layout.NumUnits()))
	}

	return registry.StreamFor(vpID)
}
