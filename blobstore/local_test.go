package blobstore

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStore_PutOpen(t *testing.T) {
	ctx := context.Background()
	store, err := NewLocalStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Put(ctx, "table.snap", []byte("payload")))

	blob, err := store.Open(ctx, "table.snap")
	require.NoError(t, err)
	defer blob.Close()

	assert.Equal(t, int64(7), blob.Size())

	r, err := blob.Reader(ctx)
	require.NoError(t, err)
	data, err := io.ReadAll(r)
	require.NoError(t, err)
	require.NoError(t, r.Close())

	assert.Equal(t, []byte("payload"), data)
}

func TestLocalStore_OpenMissing(t *testing.T) {
	store, err := NewLocalStore(t.TempDir())
	require.NoError(t, err)

	_, err = store.Open(context.Background(), "missing.snap")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLocalStore_Mappable(t *testing.T) {
	ctx := context.Background()
	store, err := NewLocalStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Put(ctx, "table.snap", []byte("mapped")))

	blob, err := store.Open(ctx, "table.snap")
	require.NoError(t, err)
	defer blob.Close()

	m, ok := blob.(Mappable)
	require.True(t, ok)

	data, err := m.Bytes()
	require.NoError(t, err)
	assert.Equal(t, []byte("mapped"), data)
}

func TestLocalStore_CreateAtomicOnClose(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	store, err := NewLocalStore(dir)
	require.NoError(t, err)

	w, err := store.Create(ctx, "table.snap")
	require.NoError(t, err)

	_, err = w.Write([]byte("half "))
	require.NoError(t, err)

	// The final name must not exist before Close.
	_, statErr := os.Stat(filepath.Join(dir, "table.snap"))
	assert.True(t, os.IsNotExist(statErr))

	_, err = w.Write([]byte("done"))
	require.NoError(t, err)
	require.NoError(t, w.Close())
	require.NoError(t, w.Close()) // idempotent

	data, err := os.ReadFile(filepath.Join(dir, "table.snap"))
	require.NoError(t, err)
	assert.Equal(t, []byte("half done"), data)

	// No temp files left behind.
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "table.snap", entries[0].Name())
}

func TestLocalStore_DeleteList(t *testing.T) {
	ctx := context.Background()
	store, err := NewLocalStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Put(ctx, "snap-001", []byte("a")))
	require.NoError(t, store.Put(ctx, "snap-002", []byte("b")))
	require.NoError(t, store.Put(ctx, "other", []byte("c")))

	names, err := store.List(ctx, "snap-")
	require.NoError(t, err)
	assert.Equal(t, []string{"snap-001", "snap-002"}, names)

	require.NoError(t, store.Delete(ctx, "snap-001"))
	require.NoError(t, store.Delete(ctx, "snap-001")) // missing is fine

	names, err = store.List(ctx, "snap-")
	require.NoError(t, err)
	assert.Equal(t, []string{"snap-002"}, names)
}
