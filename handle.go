package ttgo

// Handle is the per-worker façade over a ConcurrentTable. Each search
// worker takes its own handle; lookups and stores delegate to the
// shared table while counting into the handle's private statistics, so
// the hot loop never touches shared counters.
//
// A handle is confined to one goroutine. Close it on every exit path;
// Close merges the buffered statistics into the table exactly once and
// deregisters the handle.
type Handle[E Entry[E]] struct {
	table  *ConcurrentTable[E]
	stats  Stats
	closed bool
}

// Handle registers a new handle with the table. The live-handle count
// goes up by one and the handle starts with zeroed statistics.
func (t *ConcurrentTable[E]) Handle() *Handle[E] {
	t.handles.Add(1)
	t.metrics.RecordHandleOpen()
	t.logger.Debug("handle opened", "live_handles", t.handles.Load())
	return &Handle[E]{table: t}
}

// Lookup probes the shared table for h. It never blocks.
func (h *Handle[E]) Lookup(hash uint64) (E, bool) {
	return h.table.lookup(&h.stats, hash)
}

// Store offers e to the shared table, serialized against other stores
// by the table's write lock. See Table.Store for the replacement
// policy and the meaning of a false return.
func (h *Handle[E]) Store(e E) bool {
	return h.table.store(&h.stats, e)
}

// Stats returns a copy of the counters buffered in this handle.
func (h *Handle[E]) Stats() Stats {
	return h.stats
}

// Clone registers and returns a brand-new handle on the same table,
// with fresh zeroed statistics. It never copies accumulated counters.
func (h *Handle[E]) Clone() *Handle[E] {
	return h.table.Handle()
}

// Close merges the handle's buffered statistics into the table's shared
// statistics and deregisters the handle. Calling Close again is a
// no-op, so deferred and explicit closes compose safely.
func (h *Handle[E]) Close() error {
	if h.closed {
		return nil
	}
	h.closed = true

	h.table.mergeStats(h.stats)
	h.table.metrics.RecordHandleClose(h.stats)
	h.table.handles.Add(-1)
	h.table.logger.Debug("handle closed",
		"live_handles", h.table.handles.Load(),
		"lookups", h.stats.Lookups,
		"hits", h.stats.Hits,
		"stores", h.stats.Stores,
	)
	return nil
}
