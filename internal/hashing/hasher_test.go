package hashing

import (
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func allHashers(seed uint32) []Hasher {
	return []Hasher{NewDoubleHash(seed), NewSeeded(seed)}
}

func TestByName(t *testing.T) {
	for _, name := range Names {
		h, err := ByName(name, 7)
		require.NoError(t, err)
		require.Equal(t, name, h.Name())
	}

	_, err := ByName("fnv", 0)
	require.ErrorIs(t, err, ErrUnknownHasher)
}

func TestLocationsInRange(t *testing.T) {
	sizes := []uint64{
		1, 2, 3, 7, 64, 1000, 1 << 20, 1_000_003,
		math.MaxUint64 / 2, math.MaxUint64 - 1, math.MaxUint64,
	}

	for _, h := range allHashers(0) {
		for _, m := range sizes {
			for i := 0; i < 200; i++ {
				key := []byte(fmt.Sprintf("key-%d", i))
				locs := h.Locations(nil, key, 16, m)
				require.Len(t, locs, 16)
				for _, loc := range locs {
					require.Less(t, loc, m, "%s: m=%d key=%s", h.Name(), m, key)
				}
			}
		}
	}
}

func TestLocationsDeterministic(t *testing.T) {
	key := []byte("username1")
	for _, h := range allHashers(42) {
		a := h.Locations(nil, key, 8, 1_000_000)
		b := h.Locations(nil, key, 8, 1_000_000)
		require.Equal(t, a, b, "%s should be deterministic", h.Name())

		// A fresh instance with the same seed agrees with the first.
		again, err := ByName(h.Name(), 42)
		require.NoError(t, err)
		require.Equal(t, a, again.Locations(nil, key, 8, 1_000_000))
	}
}

func TestLocationsAppendToDst(t *testing.T) {
	for _, h := range allHashers(0) {
		dst := []uint64{99}
		out := h.Locations(dst, []byte("k"), 3, 50)
		require.Len(t, out, 4)
		require.Equal(t, uint64(99), out[0])
		require.Equal(t, h.Locations(nil, []byte("k"), 3, 50), out[1:])
	}
}

func TestLocationsPrefixStable(t *testing.T) {
	// Raising k only appends positions; existing ones do not move.
	key := []byte("prefix")
	for _, h := range allHashers(0) {
		short := h.Locations(nil, key, 3, 4096)
		long := h.Locations(nil, key, 9, 4096)
		require.Equal(t, short, long[:3], h.Name())
	}
}

func TestSeedChangesLocations(t *testing.T) {
	key := []byte("seeded-key")
	for _, name := range Names {
		a, err := ByName(name, 1)
		require.NoError(t, err)
		b, err := ByName(name, 2)
		require.NoError(t, err)
		require.NotEqual(t, a.Locations(nil, key, 4, 1<<32), b.Locations(nil, key, 4, 1<<32), name)
	}
}

func TestDoubleHashStride(t *testing.T) {
	// With m > 1 the stride is never zero, so k <= m probes hit k distinct
	// positions when m is prime.
	h := NewDoubleHash(0)
	const m = 101
	for i := 0; i < 500; i++ {
		locs := h.Locations(nil, []byte(fmt.Sprintf("stride-%d", i)), 10, m)
		seen := make(map[uint64]struct{}, len(locs))
		for _, loc := range locs {
			seen[loc] = struct{}{}
		}
		require.Len(t, seen, 10, "key stride-%d", i)
	}
}

func TestAddMod(t *testing.T) {
	tests := []struct {
		a, b, m, expected uint64
	}{
		{0, 0, 1, 0},
		{3, 4, 10, 7},
		{6, 4, 10, 0},
		{9, 9, 10, 8},
		{math.MaxUint64 - 1, math.MaxUint64 - 1, math.MaxUint64, math.MaxUint64 - 2},
		{math.MaxUint64 - 1, 1, math.MaxUint64, 0},
	}

	for _, tt := range tests {
		require.Equal(t, tt.expected, addMod(tt.a, tt.b, tt.m), "addMod(%d, %d, %d)", tt.a, tt.b, tt.m)
	}
}

func TestLocationsSpread(t *testing.T) {
	// A coarse uniformity check: 64 buckets, 64k samples, no bucket far
	// from the mean of 1024.
	const buckets = 64
	for _, h := range allHashers(0) {
		counts := make([]int, buckets)
		for i := 0; i < 16384; i++ {
			for _, loc := range h.Locations(nil, []byte(fmt.Sprintf("spread-%d", i)), 4, buckets) {
				counts[loc]++
			}
		}
		for b, c := range counts {
			require.InDelta(t, 1024, c, 200, "%s bucket %d", h.Name(), b)
		}
	}
}

func TestEachMatchesLocations(t *testing.T) {
	for _, h := range allHashers(3) {
		for _, m := range []uint64{1, 97, 1 << 20, math.MaxUint64} {
			key := []byte(fmt.Sprintf("each-%d", m))
			var got []uint64
			h.Each(key, 9, m, func(loc uint64) bool {
				got = append(got, loc)
				return true
			})
			require.Equal(t, h.Locations(nil, key, 9, m), got, "%s m=%d", h.Name(), m)
		}
	}
}

func TestEachStopsEarly(t *testing.T) {
	tests := []struct {
		k, stopAfter uint32
	}{
		{1, 1},
		{8, 1},
		{8, 3},
		{8, 8},
	}

	for _, h := range allHashers(0) {
		for _, tt := range tests {
			want := h.Locations(nil, []byte("early"), tt.k, 4096)[:tt.stopAfter]
			var got []uint64
			h.Each([]byte("early"), tt.k, 4096, func(loc uint64) bool {
				got = append(got, loc)
				return uint32(len(got)) < tt.stopAfter
			})
			require.Equal(t, want, got, "%s k=%d stop=%d", h.Name(), tt.k, tt.stopAfter)
		}
	}
}
