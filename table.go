package ttgo

// Table is a fixed-capacity, set-associative transposition table for
// single-threaded search. Capacity and associativity are fixed at
// construction; the backing arrays live for the table's whole lifetime
// and are never resized or reclaimed slot-by-slot.
//
// Each slot carries a one-byte tag holding the low byte of the stored
// record's signature. The tag is a cheap pre-filter: lookups skip slots
// whose tag cannot match before paying for the full record comparison.
// For invalid slots the tag is meaningless.
type Table[E Entry[E]] struct {
	tags  []uint8
	slots []E
	assoc int
	codec Codec[E]
	stats Stats

	logger *Logger
}

// New creates a table sized from the configured memory budget or entry
// count. The per-record footprint used for budget sizing is one tag
// byte plus the codec's encoded size.
func New[E Entry[E]](codec Codec[E], optFns ...Option) (*Table[E], error) {
	opts := applyOptions(optFns)
	return newTable(codec, opts)
}

func newTable[E Entry[E]](codec Codec[E], opts options) (*Table[E], error) {
	if codec == nil {
		return nil, ErrNilCodec
	}
	if opts.associativity <= 0 {
		return nil, ErrInvalidAssociativity
	}

	capacity := opts.capacity
	if capacity == 0 {
		capacity = int(opts.memoryBudget / int64(1+codec.EncodedSize()))
	}
	if capacity <= 0 {
		return nil, ErrInvalidCapacity
	}

	t := &Table[E]{
		tags:   make([]uint8, capacity),
		slots:  make([]E, capacity),
		assoc:  opts.associativity,
		codec:  codec,
		logger: opts.logger.WithTable(capacity, opts.associativity),
	}

	t.logger.Debug("table created", "slot_bytes", codec.EncodedSize())

	return t, nil
}

// Len returns the fixed number of slots.
func (t *Table[E]) Len() int {
	return len(t.slots)
}

// Associativity returns the probe window size.
func (t *Table[E]) Associativity() int {
	return t.assoc
}

// probe returns the index of the j-th candidate slot for signature h.
func (t *Table[E]) probe(h uint64, j int) int {
	return int((h + uint64(j)) % uint64(len(t.slots)))
}

// Lookup scans the probe window for h and returns a copy of the first
// record whose full signature matches. Cost is bounded by the
// associativity, independent of table size.
func (t *Table[E]) Lookup(h uint64) (E, bool) {
	t.stats.Lookups++
	for j := 0; j < t.assoc; j++ {
		i := t.probe(h, j)
		if t.tags[i] != uint8(h) {
			continue
		}
		// Tag collisions on the low byte are expected; the full
		// signature decides.
		if t.slots[i].Valid() && t.slots[i].Signature() == h {
			t.stats.Hits++
			return t.slots[i], true
		}
	}
	var zero E
	return zero, false
}

// Store offers e to its probe window. The victim is the first invalid
// or same-signature slot, or failing that the least valuable occupant
// of the window. The write happens only if the victim slot is invalid
// or e beats its occupant; otherwise Store reports false, meaning the
// window already holds something at least as good. A false return is
// an outcome, not an error.
//
// e must be valid; that is a caller contract checked only under the
// debug build tag.
func (t *Table[E]) Store(e E) bool {
	debugAssert(e.Valid(), "store of invalid entry")

	worst := -1
	h := e.Signature()
	for j := 0; j < t.assoc; j++ {
		i := t.probe(h, j)
		if !t.slots[i].Valid() || t.slots[i].Signature() == h {
			worst = i
			break
		}
		if worst < 0 || t.slots[worst].Better(t.slots[i]) {
			worst = i
		}
	}

	if t.slots[worst].Valid() && !e.Better(t.slots[worst]) {
		return false
	}

	t.tags[worst] = uint8(h)
	t.slots[worst] = e
	t.stats.Stores++
	return true
}

// Stats returns a copy of the table's operation counters.
func (t *Table[E]) Stats() Stats {
	return t.stats
}
