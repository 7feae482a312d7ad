// Package s3 provides an S3 backed blobstore.Store for snapshot
// storage, plus a DynamoDB backed checkpoint store that tracks the
// latest committed snapshot with compare-and-swap semantics.
package s3
