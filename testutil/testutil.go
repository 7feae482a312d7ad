// Package testutil provides deterministic workload generators for
// table tests and benchmarks.
package testutil

import (
	"encoding/binary"
	"math"
	"math/rand"
	"sync"

	"github.com/cespare/xxhash/v2"
)

// RNG is a seeded random number generator. It is thread-safe, so
// concurrent table workloads can share one instance.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)),
		seed: seed,
	}
}

// Reset resets the RNG to its initial seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand.Seed(r.seed)
}

// Seed returns the initial seed.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Intn returns a non-negative pseudo-random number in [0,n).
func (r *RNG) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Intn(n)
}

// Uint64 returns a pseudo-random uint64.
func (r *RNG) Uint64() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Uint64()
}

// Signatures generates n distinct-looking position signatures. Each
// signature is an xxhash of its index, so the same seed and count
// always produce the same workload.
func (r *RNG) Signatures(n int) []uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()

	sigs := make([]uint64, n)
	var buf [16]byte
	binary.LittleEndian.PutUint64(buf[0:8], uint64(r.seed))
	for i := range sigs {
		binary.LittleEndian.PutUint64(buf[8:16], r.rand.Uint64())
		sigs[i] = xxhash.Sum64(buf[:])
	}
	return sigs
}

// Zipf returns a Zipfian-distributed value in [0, n). Real search
// workloads revisit a small set of hot positions far more often than
// the long tail, which is exactly what s around 1.0-1.5 models.
func (r *RNG) Zipf(n int, s float64) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.zipfLocked(n, s)
}

func (r *RNG) zipfLocked(n int, s float64) int {
	if n <= 1 {
		return 0
	}

	var hns float64
	for i := 1; i <= n; i++ {
		hns += 1.0 / math.Pow(float64(i), s)
	}

	u := r.rand.Float64() * hns
	var cumulative float64
	for k := 1; k <= n; k++ {
		cumulative += 1.0 / math.Pow(float64(k), s)
		if u <= cumulative {
			return k - 1
		}
	}

	return n - 1
}

// ZipfProbes maps a Zipfian index stream onto the given signature set.
// The result is a probe sequence with realistic hot-position skew.
func (r *RNG) ZipfProbes(sigs []uint64, n int, s float64) []uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()

	probes := make([]uint64, n)
	for i := range probes {
		probes[i] = sigs[r.zipfLocked(len(sigs), s)]
	}
	return probes
}

// PositionSignature hashes a position string (e.g. a FEN) into a
// 64-bit signature.
func PositionSignature(position string) uint64 {
	return xxhash.Sum64String(position)
}
