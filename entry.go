package ttgo

// Entry is the capability contract every cached record must satisfy.
// The table treats records as opaque: it never interprets the signature
// or the priority beyond the three methods below.
//
// The self-referential constraint (E Entry[E]) lets tables specialize
// statically on the concrete record type, keeping the probe loop free
// of interface dispatch.
type Entry[E any] interface {
	// Signature returns the 64-bit position signature the record was
	// computed for. It selects the probe window and disambiguates tag
	// collisions.
	Signature() uint64

	// Valid reports whether the record holds a real search result.
	// The zero value of a record type must be invalid; freshly
	// allocated tables rely on that to mean "empty slot".
	Valid() bool

	// Better reports whether the receiver should displace rhs when the
	// two compete for the same probe window. It must be a strict
	// ordering between any two candidates of one window; it need not
	// be total across the whole table.
	Better(rhs E) bool
}

// Codec describes the fixed-width binary layout of a record. It is used
// by Dump/Restore and to derive a table capacity from a byte budget.
//
// Encode and Decode must round-trip: Decode(Encode(e)) is equivalent to
// e for every valid record. Decoding EncodedSize zero bytes must yield
// an invalid record, since snapshots serialize empty slots as whatever
// the zero record encodes to.
type Codec[E any] interface {
	// EncodedSize returns the exact number of bytes Encode writes.
	// It must be constant for the lifetime of the codec.
	EncodedSize() int

	// Encode writes e into dst, which is at least EncodedSize bytes.
	Encode(dst []byte, e E)

	// Decode reads a record from src, which is at least EncodedSize
	// bytes.
	Decode(src []byte) E
}
