package main

import (
	"fmt"
	"math/rand"
	"time"

	"bloomset/internal/common"
	"bloomset/internal/filter"
)

var fruits = []string{
	"apple", "banana", "cherry", "durian", "elderberry", "fig",
	"grapefruit", "honeydew", "imbe", "jackfruit", "kiwi", "lime",
	"mango", "nectarine", "orange", "peach", "quince", "raspberry",
	"strawberry", "tangerine", "ugni", "voavanga", "watermelon",
	"ximenia", "yuzu", "zarzamora",
}

// seedKey returns the key inserted for fruit at the given seed index.
func seedKey(fruit string, index int) []byte {
	return []byte(fmt.Sprintf("%s%d", fruit, index))
}

// runSeed inserts len(fruits) keys for each of the next x seed indexes and
// returns how many keys were inserted.
func runSeed(f filter.Filter, x int, seedIndex *int) int {
	start := time.Now()
	count := 0
	startIndex := *seedIndex

	// Randomize the order of fruits for more realistic workload
	shuffled := make([]string, len(fruits))
	copy(shuffled, fruits)
	rand.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	for i := 0; i < x; i++ {
		for _, fruit := range shuffled {
			f.Insert(seedKey(fruit, *seedIndex))
			count++
		}
		*seedIndex++
	}

	avgPerEntry := time.Since(start) / time.Duration(count)
	common.LogDuration(start, "seeded %d keys (%d * %d, index %d-%d) - %v/key",
		count, len(fruits), x, startIndex, *seedIndex-1, avgPerEntry)
	return count
}
