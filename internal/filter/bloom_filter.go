package filter

import (
	"errors"
	"fmt"
	"math"

	"bloomset/internal/bitmap"
	"bloomset/internal/hashing"
)

var ErrInvalidConfiguration = errors.New("filter: invalid configuration")

// Locations for filters with up to this many hash functions are computed in
// a stack buffer.
const inlineLocations = 16

// bloomFilter implements a space-efficient probabilistic data structure
// for set membership testing with no false negatives.
type bloomFilter struct {
	bitmap bitmap.Bitmap
	hasher hashing.Hasher
	k      uint32 // number of hash functions
	m      uint64 // number of bits in bitmap
}

var _ Filter = (*bloomFilter)(nil)

// NewBloomFilter creates a new bloom filter.
// size: number of bits in the bitmap
// hashCount: number of positions derived per key
func NewBloomFilter(size int64, hashCount int, opts ...Option) (Filter, error) {
	if size <= 0 {
		return nil, fmt.Errorf("%w: size must be positive, got %d", ErrInvalidConfiguration, size)
	}
	if hashCount <= 0 || uint64(hashCount) > math.MaxUint32 {
		return nil, fmt.Errorf("%w: hash count must be in [1, %d], got %d", ErrInvalidConfiguration, uint32(math.MaxUint32), hashCount)
	}

	bm, err := bitmap.NewBitmap(size)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfiguration, err)
	}

	o := buildOptions(opts)
	return &bloomFilter{
		bitmap: bm,
		hasher: o.Hasher,
		k:      uint32(hashCount),
		m:      uint64(size),
	}, nil
}

// Insert adds a key to the bloom filter. Every position is validated
// before any bit is set.
func (bf *bloomFilter) Insert(key []byte) {
	var buf [inlineLocations]uint64
	locs := bf.locations(buf[:0], key)
	for _, pos := range locs {
		if pos >= bf.m {
			panic(fmt.Errorf("filter: %s hasher produced position %d for size %d: %w",
				bf.hasher.Name(), pos, bf.m, bitmap.ErrIndexOutOfBounds))
		}
	}
	for _, pos := range locs {
		if err := bf.bitmap.Set(pos); err != nil {
			panic(err)
		}
	}
}

// Contains returns true if the key might be in the set.
// Returns false if the key is definitely NOT in the set.
// Positions are derived one at a time and derivation stops at the first
// unset bit.
func (bf *bloomFilter) Contains(key []byte) bool {
	found := true
	bf.hasher.Each(key, bf.k, bf.m, func(pos uint64) bool {
		set, err := bf.bitmap.Get(pos)
		if err != nil {
			panic(fmt.Errorf("filter: %s hasher: %w", bf.hasher.Name(), err))
		}
		found = set
		return set
	})
	return found
}

func (bf *bloomFilter) Size() uint64 { return bf.m }

func (bf *bloomFilter) HashCount() uint32 { return bf.k }

func (bf *bloomFilter) Stats() Stats {
	bitsSet := bf.bitmap.Count()
	fill := float64(bitsSet) / float64(bf.m)

	estimated := math.Inf(1)
	if bitsSet < bf.m {
		// Swamidass & Baldi: n ≈ -(m/k) ln(1 - X/m)
		estimated = -float64(bf.m) / float64(bf.k) * math.Log1p(-fill)
	}

	return Stats{
		Size:                       bf.m,
		HashCount:                  bf.k,
		BitsSet:                    bitsSet,
		FillRatio:                  fill,
		EstimatedCount:             estimated,
		EstimatedFalsePositiveRate: math.Pow(fill, float64(bf.k)),
	}
}

func (bf *bloomFilter) locations(dst []uint64, key []byte) []uint64 {
	return bf.hasher.Locations(dst, key, bf.k, bf.m)
}
