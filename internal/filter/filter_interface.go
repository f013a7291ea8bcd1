package filter

// Filter is a probabilistic set of byte-string keys. It can definitively say
// a key is NOT present, but can only say a key MIGHT be present (false
// positives possible, false negatives not).
type Filter interface {
	// Insert adds key to the set.
	Insert(key []byte)

	// Contains returns true if the key might be in the set.
	// Returns false if the key is definitely NOT in the set.
	Contains(key []byte) bool

	// Size returns the number of bits in the filter.
	Size() uint64

	// HashCount returns the number of positions derived per key.
	HashCount() uint32

	// Stats summarizes the current load of the filter.
	Stats() Stats
}

// Stats is a point-in-time view of a filter's occupancy.
type Stats struct {
	Size      uint64
	HashCount uint32
	BitsSet   uint64

	// FillRatio is BitsSet / Size.
	FillRatio float64

	// EstimatedCount approximates the number of distinct keys inserted.
	// It is +Inf once every bit is set.
	EstimatedCount float64

	// EstimatedFalsePositiveRate is FillRatio^HashCount, the probability
	// that a key never inserted is reported present right now.
	EstimatedFalsePositiveRate float64
}
