// Package minio provides a blobstore.Store for MinIO and other
// S3-compatible object stores, suitable for self-hosted snapshot
// storage.
package minio
