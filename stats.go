package ttgo

// Stats counts table operations. All counters are monotone.
//
// Hits never exceeds Lookups; Stores counts accepted stores only,
// rejected stores leave every counter untouched except none.
type Stats struct {
	Lookups uint64 `json:"lookups"`
	Hits    uint64 `json:"hits"`
	Stores  uint64 `json:"stores"`
}

// Merge returns the field-wise sum of s and other. Merge is associative
// and commutative, so independently accumulated statistics can be
// combined in any order.
func (s Stats) Merge(other Stats) Stats {
	return Stats{
		Lookups: s.Lookups + other.Lookups,
		Hits:    s.Hits + other.Hits,
		Stores:  s.Stores + other.Stores,
	}
}

// HitRate returns Hits/Lookups, or 0 for a table that has never been
// probed.
func (s Stats) HitRate() float64 {
	if s.Lookups == 0 {
		return 0
	}
	return float64(s.Hits) / float64(s.Lookups)
}
