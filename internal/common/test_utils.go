package common

import "testing"

// RequireAllPresent checks every key against contains and fails immediately
// on the first key reported absent.
func RequireAllPresent(t testing.TB, contains func([]byte) bool, keys [][]byte) {
	t.Helper()

	for i, key := range keys {
		if !contains(key) {
			t.Fatalf("false negative at index %d: key %q reported absent", i, key)
		}
	}
}

// CountPresent returns how many keys contains reports present.
func CountPresent(contains func([]byte) bool, keys [][]byte) int {
	n := 0
	for _, key := range keys {
		if contains(key) {
			n++
		}
	}
	return n
}
