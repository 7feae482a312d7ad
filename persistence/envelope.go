package persistence

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

// writeEnvelope frames one snapshot payload: plain header, then the
// compressed payload followed by a checksum trailer inside the
// compressed stream.
func writeEnvelope(w io.Writer, c Compression, write func(w io.Writer) error) error {
	header := fileHeader{
		Magic:       MagicNumber,
		Version:     FormatVersion,
		Compression: c,
	}.encode()
	if _, err := w.Write(header[:]); err != nil {
		return fmt.Errorf("persistence: write header: %w", err)
	}

	cw, err := newCompressWriter(w, c)
	if err != nil {
		return fmt.Errorf("persistence: init compressor: %w", err)
	}

	checksum := NewChecksumWriter(cw)
	if err := write(checksum); err != nil {
		_ = cw.Close()
		return fmt.Errorf("persistence: write payload: %w", err)
	}

	// The trailer bypasses the checksum writer so it covers only the
	// payload bytes before it.
	var trailer [trailerSize]byte
	binary.LittleEndian.PutUint32(trailer[:], checksum.Sum())
	if _, err := cw.Write(trailer[:]); err != nil {
		_ = cw.Close()
		return fmt.Errorf("persistence: write trailer: %w", err)
	}

	if err := cw.Close(); err != nil {
		return fmt.Errorf("persistence: flush compressor: %w", err)
	}
	return nil
}

// readEnvelope unframes one snapshot payload. The read callback must
// consume exactly the snapshot bytes, leaving the trailer in place.
func readEnvelope(r io.Reader, read func(r io.Reader) error) error {
	header, err := readHeader(r)
	if err != nil {
		return fmt.Errorf("persistence: read header: %w", err)
	}

	dr, err := newCompressReader(r, header.Compression)
	if err != nil {
		return fmt.Errorf("persistence: init decompressor: %w", err)
	}
	defer func() { _ = dr.Close() }()

	checksum := NewChecksumReader(dr)
	if err := read(checksum); err != nil {
		return fmt.Errorf("persistence: read payload: %w", err)
	}

	// The trailer is read from the raw decompressed stream so it does
	// not feed into the running checksum.
	var trailer [trailerSize]byte
	if _, err := io.ReadFull(dr, trailer[:]); err != nil {
		if errors.Is(err, io.EOF) {
			err = io.ErrUnexpectedEOF
		}
		return fmt.Errorf("persistence: read trailer: %w", err)
	}

	return checksum.Verify(binary.LittleEndian.Uint32(trailer[:]))
}
