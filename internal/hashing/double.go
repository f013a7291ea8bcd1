package hashing

import "github.com/spaolacci/murmur3"

// doubleHash derives every position from a single 128-bit MurmurHash3:
//
//	loc_i = (h1 + i*h2) mod m
//
// The two 64-bit halves serve as h1 and h2, so the cost per key is one hash
// invocation regardless of k.
type doubleHash struct {
	seed uint32
}

var _ Hasher = (*doubleHash)(nil)

// NewDoubleHash returns the double-hashing strategy keyed by seed.
func NewDoubleHash(seed uint32) Hasher {
	return &doubleHash{seed: seed}
}

func (h *doubleHash) Name() string { return DoubleHashName }

func (h *doubleHash) Locations(dst []uint64, key []byte, k uint32, m uint64) []uint64 {
	h.Each(key, k, m, func(loc uint64) bool {
		dst = append(dst, loc)
		return true
	})
	return dst
}

func (h *doubleHash) Each(key []byte, k uint32, m uint64, yield func(uint64) bool) {
	h1, h2 := murmur3.Sum128WithSeed(key, h.seed)

	// Reduce both terms first so the running sum never exceeds 2m and the
	// stride never depends on wrapped 64-bit products.
	loc := h1 % m
	step := h2 % m
	if step == 0 && m > 1 {
		step = 1
	}

	for i := uint32(0); i < k; i++ {
		if !yield(loc) {
			return
		}
		loc = addMod(loc, step, m)
	}
}

// addMod returns (a + b) mod m for a, b < m without overflowing uint64.
func addMod(a, b, m uint64) uint64 {
	if a >= m-b {
		return a - (m - b)
	}
	return a + b
}
