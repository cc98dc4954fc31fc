package rng_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nervasim/nerva/rng"
)

func TestStreamsAreReproducible(t *testing.T) {
	first := rng.NewRegistry(4, 1234)
	second := rng.NewRegistry(4, 1234)

	for vpID := 0; vpID < 4; vpID++ {
		a := first.StreamFor(vpID)
		b := second.StreamFor(vpID)

		for n := 0; n < 10; n++ {
			require.Equal(t, a.Float64(), b.Float64(),
				"draw %d of VP %d differs between identical registries", n+1, vpID)
		}
	}
}

func TestSeedingIgnoresRequestOrder(t *testing.T) {
	forward := rng.NewRegistry(3, 99)
	backward := rng.NewRegistry(3, 99)

	forwardValues := make(map[int]float64)
	for vpID := 0; vpID < 3; vpID++ {
		forwardValues[vpID] = forward.StreamFor(vpID).Float64()
	}

	for vpID := 2; vpID >= 0; vpID-- {
		require.Equal(t, forwardValues[vpID],
			backward.StreamFor(vpID).Float64(),
			"VP %d's stream depends on stream creation order", vpID)
	}
}

func TestStreamsAreIndependent(t *testing.T) {
	registry := rng.NewRegistry(2, 7)

	a := registry.StreamFor(0)
	b := registry.StreamFor(1)

	require.NotEqual(t, a.Uint64(), b.Uint64(),
		"VPs 0 and 1 drew the same first value; streams are correlated")
}

func TestDifferentSeedsDifferentSequences(t *testing.T) {
	a := rng.NewRegistry(1, 1).StreamFor(0)
	b := rng.NewRegistry(1, 2).StreamFor(0)

	require.NotEqual(t, a.Uint64(), b.Uint64())
}

func TestStreamCountsDraws(t *testing.T) {
	stream := rng.NewRegistry(1, 5).StreamFor(0)

	require.EqualValues(t, 0, stream.Draws())

	stream.Float64()
	stream.Uint64()
	stream.IntN(10)

	require.EqualValues(t, 3, stream.Draws())
}

func TestStreamForSameStreamTwice(t *testing.T) {
	registry := rng.NewRegistry(2, 11)

	first := registry.StreamFor(1)
	first.Float64()

	second := registry.StreamFor(1)
	require.Same(t, first, second)
	require.EqualValues(t, 1, second.Draws())
}

func TestStreamForPanicsOutOfRange(t *testing.T) {
	registry := rng.NewRegistry(4, 1)

	require.Panics(t, func() { registry.StreamFor(4) })
	require.Panics(t, func() { registry.StreamFor(-1) })
}

func TestRegistryRejectsNonPositiveVPCount(t *testing.T) {
	require.Panics(t, func() { rng.NewRegistry(0, 1) })
}
