package persistence

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/hupe1980/ttgo"
	"github.com/hupe1980/ttgo/blobstore"
	"github.com/hupe1980/ttgo/resource"
)

// Options configures the persistence manager.
type Options struct {
	// Compression selects the payload compression algorithm.
	Compression Compression

	// Limiter throttles snapshot I/O so background saves do not
	// starve foreground work. Nil means unlimited.
	Limiter *resource.Limiter

	// Logger receives structured logs for save and load operations.
	Logger *ttgo.Logger

	// Metrics receives snapshot dump and restore timings.
	Metrics ttgo.MetricsCollector
}

// Manager moves enveloped snapshots in and out of blob storage.
// A snapshot travels as a plain header followed by the compressed
// payload, with a checksum trailer inside the compressed stream.
//
// The Manager is safe for concurrent use as long as the underlying
// store is.
type Manager struct {
	store       blobstore.Store
	compression Compression
	limiter     *resource.Limiter
	logger      *ttgo.Logger
	metrics     ttgo.MetricsCollector
}

// NewManager creates a persistence manager on top of the given store.
func NewManager(store blobstore.Store, optFns ...func(*Options)) *Manager {
	opts := Options{
		Compression: CompressionZstd,
		Logger:      ttgo.NoopLogger(),
		Metrics:     ttgo.NoopMetricsCollector{},
	}
	for _, fn := range optFns {
		fn(&opts)
	}

	return &Manager{
		store:       store,
		compression: opts.Compression,
		limiter:     opts.Limiter,
		logger:      opts.Logger,
		metrics:     opts.Metrics,
	}
}

// Save writes one snapshot under the given name. The write callback
// receives the payload writer and is expected to stream the snapshot
// into it, typically Table.Dump or ConcurrentTable.Dump.
func (m *Manager) Save(ctx context.Context, name string, write func(w io.Writer) error) error {
	start := time.Now()
	err := m.save(ctx, name, write)
	m.metrics.RecordSnapshotDump(time.Since(start), err)

	if err != nil {
		m.logger.Error("snapshot save failed", "name", name, "error", err)
		return err
	}

	m.logger.Info("snapshot saved",
		"name", name,
		"compression", m.compression.String(),
		"duration", time.Since(start),
	)
	return nil
}

func (m *Manager) save(ctx context.Context, name string, write func(w io.Writer) error) error {
	blob, err := m.store.Create(ctx, name)
	if err != nil {
		return fmt.Errorf("persistence: create %q: %w", name, err)
	}

	if err := writeEnvelope(m.limiter.ThrottledWriter(ctx, blob), m.compression, write); err != nil {
		_ = blob.Close()
		return err
	}

	if err := blob.Close(); err != nil {
		return fmt.Errorf("persistence: commit %q: %w", name, err)
	}
	return nil
}

// Load reads the snapshot stored under the given name. The read
// callback receives the decompressed payload stream and must consume
// exactly the snapshot bytes, leaving the checksum trailer in place.
func (m *Manager) Load(ctx context.Context, name string, read func(r io.Reader) error) error {
	start := time.Now()
	err := m.load(ctx, name, read)
	m.metrics.RecordSnapshotRestore(time.Since(start), err)

	if err != nil {
		m.logger.Error("snapshot load failed", "name", name, "error", err)
		return err
	}

	m.logger.Info("snapshot loaded", "name", name, "duration", time.Since(start))
	return nil
}

func (m *Manager) load(ctx context.Context, name string, read func(r io.Reader) error) error {
	blob, err := m.store.Open(ctx, name)
	if err != nil {
		return fmt.Errorf("persistence: open %q: %w", name, err)
	}
	defer func() { _ = blob.Close() }()

	rc, err := blob.Reader(ctx)
	if err != nil {
		return fmt.Errorf("persistence: read %q: %w", name, err)
	}
	defer func() { _ = rc.Close() }()

	return readEnvelope(m.limiter.ThrottledReader(ctx, rc), read)
}

// Delete removes the snapshot stored under the given name.
func (m *Manager) Delete(ctx context.Context, name string) error {
	return m.store.Delete(ctx, name)
}

// List returns the names of stored snapshots with the given prefix.
func (m *Manager) List(ctx context.Context, prefix string) ([]string, error) {
	return m.store.List(ctx, prefix)
}

// LoadTable restores a single-threaded table from the named snapshot.
func LoadTable[E ttgo.Entry[E]](ctx context.Context, m *Manager, name string, codec ttgo.Codec[E], optFns ...ttgo.Option) (*ttgo.Table[E], error) {
	var t *ttgo.Table[E]
	err := m.Load(ctx, name, func(r io.Reader) error {
		var err error
		t, err = ttgo.Restore(r, codec, optFns...)
		return err
	})
	if err != nil {
		return nil, err
	}
	return t, nil
}

// LoadConcurrentTable restores a concurrent table from the named
// snapshot.
func LoadConcurrentTable[E ttgo.Entry[E]](ctx context.Context, m *Manager, name string, codec ttgo.Codec[E], optFns ...ttgo.Option) (*ttgo.ConcurrentTable[E], error) {
	var t *ttgo.ConcurrentTable[E]
	err := m.Load(ctx, name, func(r io.Reader) error {
		var err error
		t, err = ttgo.RestoreConcurrent(r, codec, optFns...)
		return err
	})
	if err != nil {
		return nil, err
	}
	return t, nil
}
