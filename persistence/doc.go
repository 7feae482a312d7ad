// Package persistence wraps table snapshots in a durable envelope and
// moves them in and out of blob storage.
//
// The on-disk layout is a small plain header (magic, format version,
// compression algorithm) followed by the compressed snapshot payload.
// A CRC32-Castagnoli checksum of the payload travels inside the
// compressed stream, right after the snapshot bytes, so corruption is
// detected before a restored table is handed to the caller.
//
// The Manager streams snapshots through any blobstore.Store (local
// disk, S3, MinIO, in-memory), optionally throttled by a
// resource.Limiter so background saves do not starve the search
// threads. SaveToFile and LoadFromFile are shortcuts for the common
// local-file case.
package persistence
