package common

import "strconv"

// SequentialKeys returns n keys of the form "<prefix>-<i>" for
// i in [start, start+n), encoded as UTF-8 bytes.
func SequentialKeys(prefix string, start, n int) [][]byte {
	keys := make([][]byte, 0, n)
	for i := start; i < start+n; i++ {
		keys = append(keys, Key(prefix, i))
	}
	return keys
}

// Key returns the single key "<prefix>-<i>".
func Key(prefix string, i int) []byte {
	buf := make([]byte, 0, len(prefix)+1+20)
	buf = append(buf, prefix...)
	buf = append(buf, '-')
	return strconv.AppendInt(buf, int64(i), 10)
}
