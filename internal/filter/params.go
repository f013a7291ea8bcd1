package filter

import (
	"fmt"
	"math"
)

// OptimalParams computes bloom filter parameters for an expected number of
// elements n and a target false positive rate p (e.g. 0.01 for 1%).
//
//	size      = ceil(-n * ln(p) / ln(2)^2)
//	hashCount = ceil(ln(2) * size / n)
func OptimalParams(n uint64, p float64) (size uint64, hashCount uint32, err error) {
	if n == 0 {
		return 0, 0, fmt.Errorf("%w: expected element count must be positive", ErrInvalidConfiguration)
	}
	if !(p > 0 && p < 1) {
		return 0, 0, fmt.Errorf("%w: false positive rate must be in (0, 1), got %v", ErrInvalidConfiguration, p)
	}

	m := math.Ceil(-1 * float64(n) * math.Log(p) / math.Pow(math.Log(2), 2))
	// float64(MaxInt64) rounds up to 2^63, which does not fit in int64.
	if m >= math.MaxInt64 {
		return 0, 0, fmt.Errorf("%w: n=%d p=%v needs more than %d bits", ErrInvalidConfiguration, n, p, int64(math.MaxInt64))
	}
	size = uint64(m)

	k := math.Ceil(math.Log(2) * float64(size) / float64(n))
	// Ensure at least 1 hash function
	if k < 1 {
		k = 1
	}
	if k > math.MaxUint32 {
		k = math.MaxUint32
	}

	return size, uint32(k), nil
}

// NewWithEstimates creates a bloom filter sized for n elements at false
// positive rate p.
func NewWithEstimates(n uint64, p float64, opts ...Option) (Filter, error) {
	size, hashCount, err := OptimalParams(n, p)
	if err != nil {
		return nil, err
	}
	return NewBloomFilter(int64(size), int(hashCount), opts...)
}

// TheoreticalFalsePositiveRate returns (1 - e^(-k*n/m))^k, the expected
// false positive rate after inserting n distinct keys.
func TheoreticalFalsePositiveRate(size uint64, hashCount uint32, n uint64) float64 {
	if size == 0 {
		return 1
	}
	k := float64(hashCount)
	return math.Pow(-math.Expm1(-k*float64(n)/float64(size)), k)
}
