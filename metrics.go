package ttgo

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational
// metrics. Implement this interface to integrate with monitoring
// systems like Prometheus.
//
// The collector sees handle lifecycle and snapshot events only. The
// hot lookup/store path reports through the buffered per-handle Stats
// instead, so collectors never add contention to the search loop.
type MetricsCollector interface {
	// RecordHandleOpen is called when a handle is registered with a
	// concurrent table.
	RecordHandleOpen()

	// RecordHandleClose is called when a handle is released. stats
	// holds the counters the handle accumulated over its lifetime.
	RecordHandleClose(stats Stats)

	// RecordSnapshotDump is called after each snapshot dump.
	// duration is the total time taken, err is nil if successful.
	RecordSnapshotDump(duration time.Duration, err error)

	// RecordSnapshotRestore is called after each snapshot restore.
	RecordSnapshotRestore(duration time.Duration, err error)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordHandleOpen()                          {}
func (NoopMetricsCollector) RecordHandleClose(Stats)                    {}
func (NoopMetricsCollector) RecordSnapshotDump(time.Duration, error)    {}
func (NoopMetricsCollector) RecordSnapshotRestore(time.Duration, error) {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external
// dependencies.
type BasicMetricsCollector struct {
	HandleOpens        atomic.Int64
	HandleCloses       atomic.Int64
	HandleLookups      atomic.Int64
	HandleHits         atomic.Int64
	HandleStores       atomic.Int64
	DumpCount          atomic.Int64
	DumpErrors         atomic.Int64
	DumpTotalNanos     atomic.Int64
	RestoreCount       atomic.Int64
	RestoreErrors      atomic.Int64
	RestoreTotalNanos  atomic.Int64
}

// RecordHandleOpen implements MetricsCollector.
func (b *BasicMetricsCollector) RecordHandleOpen() {
	b.HandleOpens.Add(1)
}

// RecordHandleClose implements MetricsCollector.
func (b *BasicMetricsCollector) RecordHandleClose(stats Stats) {
	b.HandleCloses.Add(1)
	b.HandleLookups.Add(int64(stats.Lookups))
	b.HandleHits.Add(int64(stats.Hits))
	b.HandleStores.Add(int64(stats.Stores))
}

// RecordSnapshotDump implements MetricsCollector.
func (b *BasicMetricsCollector) RecordSnapshotDump(duration time.Duration, err error) {
	b.DumpCount.Add(1)
	b.DumpTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.DumpErrors.Add(1)
	}
}

// RecordSnapshotRestore implements MetricsCollector.
func (b *BasicMetricsCollector) RecordSnapshotRestore(duration time.Duration, err error) {
	b.RestoreCount.Add(1)
	b.RestoreTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.RestoreErrors.Add(1)
	}
}
