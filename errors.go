package ttgo

import (
	"errors"
	"fmt"
)

var (
	// ErrNilCodec is returned by constructors when no codec is given.
	ErrNilCodec = errors.New("codec must not be nil")

	// ErrInvalidCapacity is returned when the configured entry count,
	// or the count derived from a memory budget, is not positive.
	ErrInvalidCapacity = errors.New("table capacity must be positive")

	// ErrInvalidAssociativity is returned when the probe window size is
	// not positive.
	ErrInvalidAssociativity = errors.New("associativity must be positive")
)

// ErrSnapshotVersion indicates that a snapshot was written by an
// incompatible format version. Restore never attempts to read past the
// header once the version check fails.
type ErrSnapshotVersion struct {
	Expected uint64
	Observed uint64
}

func (e *ErrSnapshotVersion) Error() string {
	return fmt.Sprintf("snapshot version mismatch: expected %d, got %d", e.Expected, e.Observed)
}
