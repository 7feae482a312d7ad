package testutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignatures_Deterministic(t *testing.T) {
	a := NewRNG(4711).Signatures(64)
	b := NewRNG(4711).Signatures(64)

	assert.Equal(t, a, b)

	seen := make(map[uint64]struct{}, len(a))
	for _, sig := range a {
		seen[sig] = struct{}{}
	}
	assert.Len(t, seen, len(a))
}

func TestRNG_Reset(t *testing.T) {
	rng := NewRNG(1337)
	first := rng.Uint64()

	rng.Reset()
	assert.Equal(t, first, rng.Uint64())
	assert.Equal(t, int64(1337), rng.Seed())
}

func TestZipf_Skew(t *testing.T) {
	rng := NewRNG(42)

	const n = 100
	const draws = 10000

	counts := make([]int, n)
	for i := 0; i < draws; i++ {
		k := rng.Zipf(n, 1.2)
		require.GreaterOrEqual(t, k, 0)
		require.Less(t, k, n)
		counts[k]++
	}

	// Rank 0 must dominate the tail.
	assert.Greater(t, counts[0], counts[n-1]*10)
}

func TestZipfProbes_DrawsFromSignatureSet(t *testing.T) {
	rng := NewRNG(7)
	sigs := rng.Signatures(32)

	probes := rng.ZipfProbes(sigs, 500, 1.0)
	require.Len(t, probes, 500)

	valid := make(map[uint64]struct{}, len(sigs))
	for _, sig := range sigs {
		valid[sig] = struct{}{}
	}
	for _, p := range probes {
		_, ok := valid[p]
		require.True(t, ok)
	}
}

func TestPositionSignature(t *testing.T) {
	start := PositionSignature("rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1")

	assert.Equal(t, start, PositionSignature("rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"))
	assert.NotEqual(t, start, PositionSignature("rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq - 0 1"))
	assert.NotZero(t, start)
}
