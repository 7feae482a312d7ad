// Package ttgo provides a fixed-capacity, set-associative transposition
// table for game-tree search engines.
//
// A transposition table memoizes search results by 64-bit position
// signature so that positions reached through different move orders are
// evaluated once. The table is allocated once from a byte budget (or an
// explicit entry count), never grows, and replaces entries with a
// bucketed worst-of-window policy when a probe window is full.
//
// # Quick Start
//
// Single-threaded search:
//
//	tt, _ := ttgo.New(myCodec, ttgo.WithMemoryBudget(256<<20))
//	if e, ok := tt.Lookup(pos.Hash()); ok {
//	    // reuse e instead of re-searching
//	}
//	tt.Store(result)
//
// Parallel search, one handle per worker:
//
//	ct, _ := ttgo.NewConcurrent(myCodec, ttgo.WithMemoryBudget(1<<30))
//	h := ct.Handle()
//	defer h.Close() // merges the handle's counters into the table
//	e, ok := h.Lookup(pos.Hash())
//
// # Record Contract
//
// The table stores opaque records satisfying Entry: a 64-bit Signature,
// a Valid flag, and a Better ordering used only when two candidates
// compete for the same probe window. The search layer owns the meaning
// of both the signature (position hashing) and the priority (typically
// deeper searches beat shallower ones). A Codec describes the fixed
// binary layout used for snapshots and for deriving a capacity from a
// memory budget.
//
// # Concurrency
//
// ConcurrentTable serves lock-free lookups through an optimistic,
// seqlock-style read protocol: one version counter guards each group of
// 16 slots, writers flip it odd before mutating and even after, and a
// reader retries whenever it catches a counter odd or changed. Stores
// serialize through a single table-wide lock; in search workloads
// lookups outnumber stores by orders of magnitude, so the coarse lock
// is not a bottleneck.
//
// # Snapshots
//
// Dump and Restore serialize the table to an explicit little-endian
// binary format for reuse across sessions. The persistence package adds
// compression, checksums and pluggable storage backends (local files,
// S3, MinIO) on top of the core format.
package ttgo
