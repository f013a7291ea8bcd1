package bitmap

// Bitmap is a fixed-length, bit-packed array of flags. Bits can be set but
// never cleared.
type Bitmap interface {
	// Len returns the number of bits, fixed at construction.
	Len() uint64

	// Get reports whether bit i is set.
	Get(i uint64) (bool, error)

	// Set sets bit i to 1. Setting an already-set bit is a no-op.
	Set(i uint64) error

	// Count returns the number of set bits.
	Count() uint64
}
