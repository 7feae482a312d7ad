package ttgo

import (
	"bufio"
	"encoding/binary"
	"io"
)

// SnapshotVersion is the format version written into every snapshot
// header. Restore rejects any other value.
const SnapshotVersion uint64 = 1

const (
	snapshotHeaderSize = 16
	snapshotBufferSize = 256 * 1024
)

// Snapshot layout, all fields little-endian:
//
//	version    uint64
//	entryCount uint64
//	tags       entryCount bytes
//	records    entryCount fixed-width record encodings
//
// The format carries no record schema: it assumes a single fixed codec
// and is not portable across differing record layouts. Callers owning
// differing record definitions must not cross-load snapshots.

func dumpSnapshot[E any](w io.Writer, codec Codec[E], tags []uint8, slots []E) error {
	bw := bufio.NewWriterSize(w, snapshotBufferSize)

	var hdr [snapshotHeaderSize]byte
	binary.LittleEndian.PutUint64(hdr[0:8], SnapshotVersion)
	binary.LittleEndian.PutUint64(hdr[8:16], uint64(len(slots)))
	if _, err := bw.Write(hdr[:]); err != nil {
		return err
	}
	if _, err := bw.Write(tags); err != nil {
		return err
	}

	buf := make([]byte, codec.EncodedSize())
	for i := range slots {
		codec.Encode(buf, slots[i])
		if _, err := bw.Write(buf); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// Dump writes the table to w in the snapshot format. I/O errors are
// returned verbatim. Output is buffered internally, so w does not need
// its own buffering.
func (t *Table[E]) Dump(w io.Writer) error {
	err := dumpSnapshot(w, t.codec, t.tags, t.slots)
	t.logger.LogSnapshotDump(len(t.slots), err)
	return err
}

// Restore reads a snapshot from r and returns a table sized to the
// stored entry count. The version tag is validated before anything else
// is read; a mismatch yields *ErrSnapshotVersion. Options other than
// capacity (which the snapshot dictates) apply as in New.
//
// Restore consumes exactly the snapshot payload and never reads ahead,
// so callers may continue reading the same stream afterwards. Wrap r in
// a bufio.Reader when reading from an unbuffered source.
func Restore[E Entry[E]](r io.Reader, codec Codec[E], optFns ...Option) (*Table[E], error) {
	if codec == nil {
		return nil, ErrNilCodec
	}

	opts := applyOptions(optFns)

	var hdr [snapshotHeaderSize]byte
	if _, err := io.ReadFull(r, hdr[:]); err != nil {
		return nil, err
	}
	version := binary.LittleEndian.Uint64(hdr[0:8])
	count := binary.LittleEndian.Uint64(hdr[8:16])
	if version != SnapshotVersion {
		err := &ErrSnapshotVersion{Expected: SnapshotVersion, Observed: version}
		opts.logger.LogSnapshotRestore(0, err)
		return nil, err
	}

	opts.capacity = int(count)
	t, err := newTable(codec, opts)
	if err != nil {
		return nil, err
	}

	if _, err := io.ReadFull(r, t.tags); err != nil {
		opts.logger.LogSnapshotRestore(0, err)
		return nil, err
	}
	buf := make([]byte, codec.EncodedSize())
	for i := range t.slots {
		if _, err := io.ReadFull(r, buf); err != nil {
			opts.logger.LogSnapshotRestore(0, err)
			return nil, err
		}
		t.slots[i] = codec.Decode(buf)
	}

	opts.logger.LogSnapshotRestore(len(t.slots), nil)
	return t, nil
}
