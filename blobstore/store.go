package blobstore

import (
	"context"
	"io"
	"os"
)

// ErrNotFound is returned when a blob does not exist.
//
// Implementations should return an error that satisfies
// `errors.Is(err, ErrNotFound)`. The default maps to `os.ErrNotExist`.
var ErrNotFound = os.ErrNotExist

// Store is an abstraction for reading and writing named snapshot blobs.
type Store interface {
	// Open opens a blob for reading.
	Open(ctx context.Context, name string) (Blob, error)

	// Create creates a blob for streaming writes. The blob's contents
	// become visible under name when Close returns nil; a failed or
	// abandoned write must not leave a partial blob behind.
	Create(ctx context.Context, name string) (WritableBlob, error)

	// Put writes a blob atomically from an in-memory payload.
	Put(ctx context.Context, name string, data []byte) error

	// Delete removes a blob. Deleting a missing blob is not an error.
	Delete(ctx context.Context, name string) error

	// List returns the blob names with the given prefix, sorted.
	List(ctx context.Context, prefix string) ([]string, error)
}

// Blob is a read-only handle to a stored snapshot.
type Blob interface {
	io.Closer

	// Size returns the size of the blob in bytes.
	Size() int64

	// Reader opens a sequential reader over the blob's contents.
	Reader(ctx context.Context) (io.ReadCloser, error)
}

// WritableBlob is a streaming write handle. Close finalizes the write.
type WritableBlob interface {
	io.WriteCloser
}

// Mappable is an optional interface for Blobs whose contents are
// available as a byte slice without copying. The slice is valid until
// the Blob is closed.
type Mappable interface {
	Bytes() ([]byte, error)
}
