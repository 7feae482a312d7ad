package persistence

import (
	"bufio"
	"bytes"
	"io"
	"os"
	"path/filepath"

	"github.com/hupe1980/ttgo/internal/mmap"
)

const fileBufferSize = 256 * 1024

// SaveToFile writes one enveloped snapshot to path. The data lands in
// a temp file first and is renamed over the final name, so a crash
// mid-save never leaves a truncated snapshot behind.
func SaveToFile(path string, c Compression, write func(w io.Writer) error) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}

	cleanup := func() {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
	}

	bw := bufio.NewWriterSize(tmp, fileBufferSize)
	if err := writeEnvelope(bw, c, write); err != nil {
		cleanup()
		return err
	}
	if err := bw.Flush(); err != nil {
		cleanup()
		return err
	}
	if err := tmp.Sync(); err != nil {
		cleanup()
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return err
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		_ = os.Remove(tmp.Name())
		return err
	}

	// Best-effort: fsync the directory so the rename is durable on POSIX.
	if d, err := os.Open(dir); err == nil {
		_ = d.Sync()
		_ = d.Close()
	}
	return nil
}

// LoadFromFile reads one enveloped snapshot from path.
func LoadFromFile(path string, read func(r io.Reader) error) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	return readEnvelope(bufio.NewReaderSize(f, fileBufferSize), read)
}

// LoadFromFileMmap reads one enveloped snapshot through a read-only
// memory mapping, decoding straight out of the page cache.
func LoadFromFileMmap(path string, read func(r io.Reader) error) error {
	m, err := mmap.Open(path)
	if err != nil {
		return err
	}
	defer func() { _ = m.Close() }()

	return readEnvelope(bytes.NewReader(m.Bytes()), read)
}
