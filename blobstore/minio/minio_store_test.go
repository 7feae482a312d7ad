package minio

import (
	"context"
	"io"
	"testing"

	"github.com/hupe1980/ttgo/blobstore"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestMinioStore_Integration requires a running MinIO instance and is
// skipped otherwise.
func TestMinioStore_Integration(t *testing.T) {
	endpoint := "localhost:9000"
	accessKey := "minioadmin"
	secretKey := "minioadmin"
	bucket := "test-ttgo"

	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: false,
	})
	if err != nil {
		t.Skipf("MinIO client creation failed: %v", err)
	}

	ctx := context.Background()

	if _, err := client.ListBuckets(ctx); err != nil {
		t.Skipf("MinIO not available: %v", err)
	}

	exists, err := client.BucketExists(ctx, bucket)
	require.NoError(t, err)
	if !exists {
		require.NoError(t, client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}))
	}

	store := NewStore(client, bucket, "test-prefix/")

	// Put and Open
	data := []byte("transposition table snapshot payload")
	require.NoError(t, store.Put(ctx, "table.snap", data))

	blob, err := store.Open(ctx, "table.snap")
	require.NoError(t, err)
	require.Equal(t, int64(len(data)), blob.Size())

	r, err := blob.Reader(ctx)
	require.NoError(t, err)
	got, err := io.ReadAll(r)
	require.NoError(t, err)
	require.NoError(t, r.Close())
	require.NoError(t, blob.Close())
	assert.Equal(t, data, got)

	// Streaming create
	w, err := store.Create(ctx, "streamed.snap")
	require.NoError(t, err)
	_, err = w.Write([]byte("streamed "))
	require.NoError(t, err)
	_, err = w.Write([]byte("snapshot"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	names, err := store.List(ctx, "")
	require.NoError(t, err)
	assert.Contains(t, names, "table.snap")
	assert.Contains(t, names, "streamed.snap")

	// Delete and verify
	require.NoError(t, store.Delete(ctx, "table.snap"))
	require.NoError(t, store.Delete(ctx, "streamed.snap"))

	_, err = store.Open(ctx, "table.snap")
	assert.ErrorIs(t, err, blobstore.ErrNotFound)
}
