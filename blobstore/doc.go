// Package blobstore provides the storage abstraction behind snapshot
// persistence.
//
// Store is the interface for reading and writing named snapshot blobs.
// Implementations must be safe for concurrent use.
//
// # Built-in Implementations
//
//   - LocalStore: local filesystem with atomic writes and mmap reads
//   - MemoryStore: in-memory store for tests
//   - s3.Store: Amazon S3 with streaming multipart uploads
//   - minio.Store: MinIO and other S3-compatible object stores
//
// # Custom Implementations
//
// Implement the Store interface to support custom backends:
//
//	type Store interface {
//	    Open(ctx, name) (Blob, error)            // open for reading
//	    Create(ctx, name) (WritableBlob, error)  // create for streaming writes
//	    Put(ctx, name, data) error               // atomic write
//	    Delete(ctx, name) error
//	    List(ctx, prefix) ([]string, error)
//	}
//
// Snapshots are written and read as a single sequential stream, so a
// backend only needs streaming reads and writes, not random access.
package blobstore
