package ttgo

import (
	"io"
	"runtime"
	"sync"
	"sync/atomic"
)

// slotsPerCounter is the number of contiguous slots sharing one
// sequence counter. Coarser than per-slot versioning: a 16th of the
// counter memory in exchange for occasional false retries when a write
// lands in a neighbouring slot of the same group.
const slotsPerCounter = 16

// ConcurrentTable is the parallel-search variant of Table: identical
// memory layout and eviction policy, plus an optimistic seqlock-style
// read protocol and a globally serialized write path.
//
// Lookups are lock-free: a reader snapshots a slot between two loads of
// the slot group's sequence counter and retries whenever the counter is
// odd (a write is in progress) or changed between the loads (the
// snapshot may be torn). Retries are unbounded only by contention;
// readers never block writers and writers never block readers.
//
// Stores serialize through one table-wide mutex, held for a single
// victim scan plus one slot mutation. In game-tree search lookups
// outnumber stores heavily, so the coarse lock is an acceptable
// simplification over per-group locking.
//
// Callers interact through per-worker handles, not the table directly;
// see Handle.
type ConcurrentTable[E Entry[E]] struct {
	tags     []uint8
	slots    []E
	counters []atomic.Uint32
	assoc    int
	codec    Codec[E]

	writeMu sync.Mutex

	handles atomic.Int64
	statsMu sync.Mutex
	stats   Stats

	logger  *Logger
	metrics MetricsCollector
}

// NewConcurrent creates a concurrent table. Sizing works exactly as in
// New.
func NewConcurrent[E Entry[E]](codec Codec[E], optFns ...Option) (*ConcurrentTable[E], error) {
	opts := applyOptions(optFns)
	t, err := newTable(codec, opts)
	if err != nil {
		return nil, err
	}
	return fromTable(t, opts), nil
}

// RestoreConcurrent reads a snapshot from r, as Restore, and returns a
// concurrent table over the restored slots.
func RestoreConcurrent[E Entry[E]](r io.Reader, codec Codec[E], optFns ...Option) (*ConcurrentTable[E], error) {
	t, err := Restore(r, codec, optFns...)
	if err != nil {
		return nil, err
	}
	return fromTable(t, applyOptions(optFns)), nil
}

func fromTable[E Entry[E]](t *Table[E], opts options) *ConcurrentTable[E] {
	groups := (len(t.slots) + slotsPerCounter - 1) / slotsPerCounter
	return &ConcurrentTable[E]{
		tags:     t.tags,
		slots:    t.slots,
		counters: make([]atomic.Uint32, groups),
		assoc:    t.assoc,
		codec:    t.codec,
		logger:   t.logger,
		metrics:  opts.metricsCollector,
	}
}

// Len returns the fixed number of slots.
func (t *ConcurrentTable[E]) Len() int {
	return len(t.slots)
}

// Associativity returns the probe window size.
func (t *ConcurrentTable[E]) Associativity() int {
	return t.assoc
}

// Handles returns the number of live handles.
func (t *ConcurrentTable[E]) Handles() int {
	return int(t.handles.Load())
}

func (t *ConcurrentTable[E]) probe(h uint64, j int) int {
	return int((h + uint64(j)) % uint64(len(t.slots)))
}

func (t *ConcurrentTable[E]) lookup(stats *Stats, h uint64) (E, bool) {
	stats.Lookups++
	for j := 0; j < t.assoc; j++ {
		i := t.probe(h, j)
		// The tag read is unsynchronized; a stale or torn tag costs at
		// most one wasted slot snapshot, since the full signature is
		// re-verified on the snapshot below.
		if t.tags[i] != uint8(h) {
			continue
		}
		e := t.snapshotSlot(i)
		if e.Valid() && e.Signature() == h {
			stats.Hits++
			return e, true
		}
	}
	var zero E
	return zero, false
}

// snapshotSlot copies slot i under the optimistic read protocol. The
// returned record is either the fully-pre-write or fully-post-write
// state of the slot, never a mix.
func (t *ConcurrentTable[E]) snapshotSlot(i int) E {
	c := &t.counters[i/slotsPerCounter]
	for {
		seq1 := c.Load()
		if seq1&1 == 1 {
			// A writer is inside this slot group.
			runtime.Gosched()
			continue
		}
		e := t.slots[i]
		if c.Load() == seq1 {
			return e
		}
	}
}

func (t *ConcurrentTable[E]) store(stats *Stats, e E) bool {
	debugAssert(e.Valid(), "store of invalid entry")

	t.writeMu.Lock()
	defer t.writeMu.Unlock()

	// The victim scan reads live slots guarded only by the write lock,
	// which orders it against other writers. A concurrently in-flight
	// reader may observe these slots mid-scan; its own retry protocol
	// protects the data it returns.
	worst := -1
	h := e.Signature()
	for j := 0; j < t.assoc; j++ {
		i := t.probe(h, j)
		if !t.slots[i].Valid() || t.slots[i].Signature() == h {
			worst = i
			break
		}
		if worst < 0 || t.slots[worst].Better(t.slots[i]) {
			worst = i
		}
	}

	if t.slots[worst].Valid() && !e.Better(t.slots[worst]) {
		return false
	}

	c := &t.counters[worst/slotsPerCounter]
	c.Add(1) // odd: write in progress
	t.tags[worst] = uint8(h)
	t.slots[worst] = e
	c.Add(1) // even: write published

	stats.Stores++
	return true
}

// Dump writes the table to w in the snapshot format. The write lock is
// held for the duration, so the snapshot is consistent and stores block
// until the dump finishes; lookups proceed normally.
func (t *ConcurrentTable[E]) Dump(w io.Writer) error {
	t.writeMu.Lock()
	defer t.writeMu.Unlock()

	err := dumpSnapshot(w, t.codec, t.tags, t.slots)
	t.logger.LogSnapshotDump(len(t.slots), err)
	return err
}

// Stats returns the counters merged from released handles so far.
// Counters still buffered in live handles are not included until those
// handles close.
func (t *ConcurrentTable[E]) Stats() Stats {
	t.statsMu.Lock()
	defer t.statsMu.Unlock()
	return t.stats
}

func (t *ConcurrentTable[E]) mergeStats(s Stats) {
	t.statsMu.Lock()
	defer t.statsMu.Unlock()
	t.stats = t.stats.Merge(s)
}
