package persistence

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

const (
	// MagicNumber identifies snapshot envelope files. It is stored
	// big-endian, so an envelope starts with the ASCII bytes "TTSN".
	MagicNumber = 0x5454534E

	// FormatVersion is the current envelope format version.
	FormatVersion = 1

	headerSize  = 8
	trailerSize = 4
)

var (
	ErrInvalidMagic       = errors.New("invalid magic number")
	ErrInvalidVersion     = errors.New("unsupported envelope version")
	ErrUnknownCompression = errors.New("unknown compression algorithm")
)

// ChecksumMismatchError is returned when payload verification fails.
type ChecksumMismatchError struct {
	Expected uint32
	Actual   uint32
}

func (e *ChecksumMismatchError) Error() string {
	return fmt.Sprintf("checksum mismatch: expected 0x%08x, got 0x%08x", e.Expected, e.Actual)
}

// fileHeader is the plain 8-byte prefix of every envelope. It stays
// uncompressed so a reader can pick the decompressor before touching
// the payload.
type fileHeader struct {
	Magic       uint32
	Version     uint16
	Compression Compression
}

func (h fileHeader) encode() [headerSize]byte {
	var buf [headerSize]byte
	binary.BigEndian.PutUint32(buf[0:4], h.Magic)
	binary.LittleEndian.PutUint16(buf[4:6], h.Version)
	buf[6] = uint8(h.Compression)
	return buf
}

func readHeader(r io.Reader) (fileHeader, error) {
	var buf [headerSize]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		if errors.Is(err, io.EOF) {
			return fileHeader{}, io.ErrUnexpectedEOF
		}
		return fileHeader{}, err
	}

	h := fileHeader{
		Magic:       binary.BigEndian.Uint32(buf[0:4]),
		Version:     binary.LittleEndian.Uint16(buf[4:6]),
		Compression: Compression(buf[6]),
	}

	if h.Magic != MagicNumber {
		return fileHeader{}, fmt.Errorf("%w: 0x%08x", ErrInvalidMagic, h.Magic)
	}
	if h.Version != FormatVersion {
		return fileHeader{}, fmt.Errorf("%w: %d", ErrInvalidVersion, h.Version)
	}
	if !h.Compression.valid() {
		return fileHeader{}, fmt.Errorf("%w: %d", ErrUnknownCompression, h.Compression)
	}

	return h, nil
}
