// Package evaluate measures how often a filter reports keys it never saw.
package evaluate

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"bloomset/internal/common"
	"bloomset/internal/filter"
)

var (
	ErrInvalidConfig = errors.New("evaluate: invalid config")
	ErrFalseNegative = errors.New("evaluate: inserted key reported absent")
)

const (
	memberPrefix = "member"
	probePrefix  = "probe"

	// Probes between context checks.
	chunkSize = 4096
)

type Config struct {
	Inserted int
	Probes   int
	Workers  int
}

var DefaultConfig = Config{
	Inserted: 10_000,
	Probes:   100_000,
	Workers:  4,
}

func (c Config) Validate() error {
	if c.Inserted <= 0 {
		return fmt.Errorf("%w: inserted must be positive, got %d", ErrInvalidConfig, c.Inserted)
	}
	if c.Probes <= 0 {
		return fmt.Errorf("%w: probes must be positive, got %d", ErrInvalidConfig, c.Probes)
	}
	if c.Workers <= 0 {
		return fmt.Errorf("%w: workers must be positive, got %d", ErrInvalidConfig, c.Workers)
	}
	return nil
}

// Report is the outcome of a single measurement.
type Report struct {
	Inserted       int
	Probes         int
	FalsePositives int

	// Observed is FalsePositives / Probes.
	Observed float64
	// Expected is the theoretical rate for the filter's size, hash count,
	// and Inserted.
	Expected float64
}

// MemberKey returns the i-th key inserted by FalsePositiveRate.
func MemberKey(i int) []byte { return common.Key(memberPrefix, i) }

// ProbeKey returns the i-th key probed by FalsePositiveRate. Probe keys
// never collide with member keys.
func ProbeKey(i int) []byte { return common.Key(probePrefix, i) }

// FalsePositiveRate inserts cfg.Inserted member keys into f, checks that all
// of them are found, then probes cfg.Probes keys that were never inserted
// using cfg.Workers goroutines. f should be empty; keys already present
// inflate the observed rate.
//
// Lookups run concurrently, so f must not be written to by anyone else
// while this runs.
func FalsePositiveRate(ctx context.Context, f filter.Filter, cfg Config) (Report, error) {
	if err := cfg.Validate(); err != nil {
		return Report{}, err
	}

	for i := 0; i < cfg.Inserted; i++ {
		f.Insert(MemberKey(i))
	}
	for i := 0; i < cfg.Inserted; i++ {
		if !f.Contains(MemberKey(i)) {
			return Report{}, fmt.Errorf("%w: %q", ErrFalseNegative, MemberKey(i))
		}
	}

	counts := make([]int, cfg.Workers)
	g, ctx := errgroup.WithContext(ctx)
	for w := 0; w < cfg.Workers; w++ {
		w := w
		lo, hi := span(cfg.Probes, cfg.Workers, w)
		g.Go(func() error {
			for start := lo; start < hi; start += chunkSize {
				if err := ctx.Err(); err != nil {
					return err
				}
				end := min(start+chunkSize, hi)
				for i := start; i < end; i++ {
					if f.Contains(ProbeKey(i)) {
						counts[w]++
					}
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Report{}, err
	}

	fp := 0
	for _, c := range counts {
		fp += c
	}

	return Report{
		Inserted:       cfg.Inserted,
		Probes:         cfg.Probes,
		FalsePositives: fp,
		Observed:       float64(fp) / float64(cfg.Probes),
		Expected:       filter.TheoreticalFalsePositiveRate(f.Size(), f.HashCount(), uint64(cfg.Inserted)),
	}, nil
}

// span returns the half-open probe range owned by worker w.
func span(total, workers, w int) (int, int) {
	per := total / workers
	extra := total % workers
	lo := w*per + min(w, extra)
	hi := lo + per
	if w < extra {
		hi++
	}
	return lo, hi
}
