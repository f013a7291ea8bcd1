package main

import (
	"fmt"
	"io"

	"bloomset/internal/common"
	"bloomset/internal/filter"
)

func printStats(w io.Writer, f filter.Filter, inserted int) {
	s := f.Stats()
	fmt.Fprintf(w, "%-22s %d\n", "size (bits)", s.Size)
	fmt.Fprintf(w, "%-22s %d\n", "hash count", s.HashCount)
	fmt.Fprintf(w, "%-22s %d\n", "bits set", s.BitsSet)
	fmt.Fprintf(w, "%-22s %.4f\n", "fill ratio", s.FillRatio)
	fmt.Fprintf(w, "%-22s %d\n", "inserted (calls)", inserted)
	fmt.Fprintf(w, "%-22s %.1f\n", "estimated count", s.EstimatedCount)
	fmt.Fprintf(w, "%-22s %s\n", "current fp rate", common.FormatRate(s.EstimatedFalsePositiveRate))
	fmt.Fprintf(w, "%-22s %s\n", "theoretical fp rate",
		common.FormatRate(filter.TheoreticalFalsePositiveRate(s.Size, s.HashCount, uint64(inserted))))
}
