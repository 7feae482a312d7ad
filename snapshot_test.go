package ttgo

import (
	"bytes"
	"encoding/binary"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshot_RoundTrip(t *testing.T) {
	orig := newTestTable(t, 1024, 4)
	stored := make([]searchResult, 0, 300)
	for sig := uint64(0); sig < 300; sig++ {
		e := result(sig*31, int8(sig%12))
		if orig.Store(e) {
			stored = append(stored, e)
		}
	}

	var buf bytes.Buffer
	require.NoError(t, orig.Dump(&buf))

	restored, err := Restore[searchResult](&buf, searchResultCodec{}, WithAssociativity(4))
	require.NoError(t, err)
	require.Equal(t, orig.Len(), restored.Len())

	// Slot-for-slot identical lookup behaviour for every stored key.
	for _, e := range stored {
		want, wantOK := orig.Lookup(e.Signature())
		got, gotOK := restored.Lookup(e.Signature())
		assert.Equal(t, wantOK, gotOK, "sig %d", e.Signature())
		assert.Equal(t, want, got, "sig %d", e.Signature())
	}
}

func TestSnapshot_HeaderLayout(t *testing.T) {
	tt := newTestTable(t, 64, 4)
	require.True(t, tt.Store(result(7, 3)))

	var buf bytes.Buffer
	require.NoError(t, tt.Dump(&buf))

	raw := buf.Bytes()
	// version, entryCount, tags, then fixed-width records.
	require.Len(t, raw, 16+64+64*searchResultCodec{}.EncodedSize())
	assert.Equal(t, SnapshotVersion, binary.LittleEndian.Uint64(raw[0:8]))
	assert.Equal(t, uint64(64), binary.LittleEndian.Uint64(raw[8:16]))
	assert.Equal(t, uint8(7), raw[16+7], "tag byte of the stored slot")
}

func TestRestore_VersionMismatch(t *testing.T) {
	tt := newTestTable(t, 64, 4)
	var buf bytes.Buffer
	require.NoError(t, tt.Dump(&buf))

	raw := buf.Bytes()
	binary.LittleEndian.PutUint64(raw[0:8], 99)

	_, err := Restore[searchResult](bytes.NewReader(raw), searchResultCodec{})
	var vErr *ErrSnapshotVersion
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, SnapshotVersion, vErr.Expected)
	assert.Equal(t, uint64(99), vErr.Observed)
	assert.Contains(t, err.Error(), "expected 1")
	assert.Contains(t, err.Error(), "got 99")
}

func TestRestore_TruncatedPayload(t *testing.T) {
	tt := newTestTable(t, 64, 4)
	var buf bytes.Buffer
	require.NoError(t, tt.Dump(&buf))

	raw := buf.Bytes()[:buf.Len()/2]
	_, err := Restore[searchResult](bytes.NewReader(raw), searchResultCodec{})
	assert.ErrorIs(t, err, io.ErrUnexpectedEOF)
}

// Restore must consume exactly the payload so outer formats can frame
// trailing data after the snapshot.
func TestRestore_LeavesTrailingBytes(t *testing.T) {
	tt := newTestTable(t, 32, 4)
	require.True(t, tt.Store(result(3, 5)))

	var buf bytes.Buffer
	require.NoError(t, tt.Dump(&buf))
	buf.WriteString("TRAILER")

	r := bytes.NewReader(buf.Bytes())
	_, err := Restore[searchResult](r, searchResultCodec{})
	require.NoError(t, err)

	rest, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, "TRAILER", string(rest))
}

func TestRestoreConcurrent_RoundTrip(t *testing.T) {
	tt := newTestTable(t, 256, 4)
	for sig := uint64(0); sig < 100; sig++ {
		tt.Store(result(sig*17, int8(sig%10)))
	}

	var buf bytes.Buffer
	require.NoError(t, tt.Dump(&buf))

	ct, err := RestoreConcurrent[searchResult](&buf, searchResultCodec{}, WithAssociativity(4))
	require.NoError(t, err)
	require.Equal(t, tt.Len(), ct.Len())

	h := ct.Handle()
	defer h.Close()
	for sig := uint64(0); sig < 100; sig++ {
		want, wantOK := tt.Lookup(sig * 17)
		got, gotOK := h.Lookup(sig * 17)
		require.Equal(t, wantOK, gotOK, "sig %d", sig*17)
		assert.Equal(t, want, got)
	}
}
