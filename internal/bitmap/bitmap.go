package bitmap

import (
	"errors"
	"fmt"
	"math"

	"github.com/bits-and-blooms/bitset"
)

var (
	ErrInvalidSize      = errors.New("bitmap: length must be positive")
	ErrIndexOutOfBounds = errors.New("bitmap: index out of bounds")
)

// bitmapImpl is a concrete implementation of the Bitmap interface.
type bitmapImpl struct {
	bits    *bitset.BitSet // Backing storage: each word stores 64 bits
	numBits uint64         // Total number of bits in the bitmap
}

var _ Bitmap = (*bitmapImpl)(nil)

// NewBitmap creates a new bitmap with the specified number of bits.
// All bits are initialized to 0.
func NewBitmap(numBits int64) (Bitmap, error) {
	if numBits <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidSize, numBits)
	}
	// Indexes are converted to uint for every access.
	if uint64(numBits) > math.MaxUint {
		return nil, fmt.Errorf("%w: %d bits exceeds platform limit %d", ErrInvalidSize, numBits, uint64(math.MaxUint))
	}

	// bitset.New recovers from a failed allocation and returns an empty set.
	bits := bitset.New(uint(numBits))
	if bits.Len() != uint(numBits) {
		return nil, fmt.Errorf("%w: cannot allocate %d bits", ErrInvalidSize, numBits)
	}
	return &bitmapImpl{
		bits:    bits,
		numBits: uint64(numBits),
	}, nil
}

func (b *bitmapImpl) Len() uint64 {
	return b.numBits
}

// Get returns true if bit at position i is set.
func (b *bitmapImpl) Get(i uint64) (bool, error) {
	if err := b.check(i); err != nil {
		return false, err
	}
	return b.bits.Test(uint(i)), nil
}

// Set sets the bit at position i to 1.
func (b *bitmapImpl) Set(i uint64) error {
	// bitset grows on out-of-range Set, so bounds must be checked first.
	if err := b.check(i); err != nil {
		return err
	}
	b.bits.Set(uint(i))
	return nil
}

func (b *bitmapImpl) Count() uint64 {
	return uint64(b.bits.Count())
}

func (b *bitmapImpl) check(i uint64) error {
	if i >= b.numBits {
		return fmt.Errorf("%w: index %d not in [0, %d)", ErrIndexOutOfBounds, i, b.numBits)
	}
	return nil
}
