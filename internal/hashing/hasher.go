// Package hashing derives the bit positions a key occupies in a filter.
package hashing

import (
	"errors"
	"fmt"
)

var ErrUnknownHasher = errors.New("hashing: unknown hasher")

// Hasher maps a key to k positions in a bit array of length m.
//
// Implementations must be deterministic and must return positions already
// reduced into [0, m). Callers rely on the same reduction being applied on
// every call for the same (key, k, m).
type Hasher interface {
	// Name identifies the strategy in configuration and diagnostics.
	Name() string

	// Locations appends the k positions for key to dst and returns the
	// extended slice. m must be positive.
	Locations(dst []uint64, key []byte, k uint32, m uint64) []uint64

	// Each calls yield with the same k positions, in the same order, and
	// stops early once yield returns false. Rounds after that point are
	// never computed.
	Each(key []byte, k uint32, m uint64, yield func(uint64) bool)
}

const (
	DoubleHashName = "double"
	SeededName     = "seeded"
)

// Names lists the built-in strategies.
var Names = []string{DoubleHashName, SeededName}

// ByName returns the built-in hasher registered under name.
func ByName(name string, seed uint32) (Hasher, error) {
	switch name {
	case DoubleHashName:
		return NewDoubleHash(seed), nil
	case SeededName:
		return NewSeeded(seed), nil
	default:
		return nil, fmt.Errorf("%w: %q (want one of %v)", ErrUnknownHasher, name, Names)
	}
}
