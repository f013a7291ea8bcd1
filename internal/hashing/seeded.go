package hashing

import "github.com/spaolacci/murmur3"

// seeded runs a 64-bit MurmurHash3 once per round, using seed+i as the
// round's seed.
type seeded struct {
	seed uint32
}

var _ Hasher = (*seeded)(nil)

// NewSeeded returns the per-round seeded strategy. Rounds use seeds
// seed, seed+1, ..., seed+k-1 (wrapping at 2^32).
func NewSeeded(seed uint32) Hasher {
	return &seeded{seed: seed}
}

func (h *seeded) Name() string { return SeededName }

func (h *seeded) Locations(dst []uint64, key []byte, k uint32, m uint64) []uint64 {
	for i := uint32(0); i < k; i++ {
		dst = append(dst, h.round(key, i, m))
	}
	return dst
}

func (h *seeded) Each(key []byte, k uint32, m uint64, yield func(uint64) bool) {
	for i := uint32(0); i < k; i++ {
		if !yield(h.round(key, i, m)) {
			return
		}
	}
}

func (h *seeded) round(key []byte, i uint32, m uint64) uint64 {
	return murmur3.Sum64WithSeed(key, h.seed+i) % m
}
