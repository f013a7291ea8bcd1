package main

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"bloomset/internal/common"
	"bloomset/internal/evaluate"
	"bloomset/internal/filter"
)

var commandNames = []string{"insert", "contains", "seed", "stats", "fprate", "new", "estimate", "history", "exit", "quit"}

var commandUsages = []string{
	"insert <key>",
	"contains <key>",
	"seed <x>",
	"stats",
	"fprate <probes>",
	"new <size> <k>",
	"estimate <n> <p>",
	"history [n]",
	"exit",
}

// shell executes one command line at a time against a filter.
type shell struct {
	out       io.Writer
	filter    filter.Filter
	inserted  int
	seedIndex int
	history   *History
}

func newShell(out io.Writer, n uint64, p float64) (*shell, error) {
	f, err := filter.NewWithEstimates(n, p)
	if err != nil {
		return nil, err
	}
	return &shell{out: out, filter: f}, nil
}

func (s *shell) printf(format string, args ...interface{}) {
	fmt.Fprintf(s.out, format, args...)
}

func (s *shell) printConfig() {
	s.printf("config: size=%d hash_count=%d (%d KiB)\n",
		s.filter.Size(), s.filter.HashCount(), (s.filter.Size()+8*1024-1)/(8*1024))
}

// exec runs a single command line. It returns true when the shell should exit.
func (s *shell) exec(line string) bool {
	line = strings.TrimSpace(line)
	if line == "" {
		return false
	}

	// Keys are everything after the command word, so they may contain spaces.
	cmd, rest, _ := strings.Cut(line, " ")
	rest = strings.TrimSpace(rest)
	parts := strings.Fields(line)

	switch strings.ToLower(cmd) {
	case "insert":
		if rest == "" {
			s.printf("usage: insert <key>\n")
			return false
		}
		s.filter.Insert([]byte(rest))
		s.inserted++
		s.printf("ok\n")
	case "contains":
		if rest == "" {
			s.printf("usage: contains <key>\n")
			return false
		}
		if s.filter.Contains([]byte(rest)) {
			s.printf("maybe\n")
		} else {
			s.printf("no\n")
		}
	case "seed":
		if len(parts) != 2 {
			s.printf("usage: seed <x>\n")
			return false
		}
		x, err := strconv.Atoi(parts[1])
		if err != nil || x < 1 {
			s.printf("seed: x must be a positive integer\n")
			return false
		}
		s.inserted += runSeed(s.filter, x, &s.seedIndex)
	case "stats":
		printStats(s.out, s.filter, s.inserted)
	case "fprate":
		if len(parts) != 2 {
			s.printf("usage: fprate <probes>\n")
			return false
		}
		probes, err := strconv.Atoi(parts[1])
		if err != nil || probes < 1 {
			s.printf("fprate: probes must be a positive integer\n")
			return false
		}
		s.runFPRate(probes)
	case "new":
		if len(parts) != 3 {
			s.printf("usage: new <size> <k>\n")
			return false
		}
		size, err1 := strconv.ParseInt(parts[1], 10, 64)
		k, err2 := strconv.Atoi(parts[2])
		if err1 != nil || err2 != nil {
			s.printf("new: size and k must be integers\n")
			return false
		}
		f, err := filter.NewBloomFilter(size, k)
		if err != nil {
			s.printf("new error: %v\n", err)
			return false
		}
		s.reset(f)
	case "estimate":
		if len(parts) != 3 {
			s.printf("usage: estimate <n> <p>\n")
			return false
		}
		n, err1 := strconv.ParseUint(parts[1], 10, 64)
		p, err2 := strconv.ParseFloat(parts[2], 64)
		if err1 != nil || err2 != nil {
			s.printf("estimate: n must be an integer and p a float\n")
			return false
		}
		f, err := filter.NewWithEstimates(n, p)
		if err != nil {
			s.printf("estimate error: %v\n", err)
			return false
		}
		s.reset(f)
	case "history":
		if s.history == nil {
			s.printf("history unavailable\n")
			return false
		}
		if len(parts) > 2 {
			s.printf("usage: history [n]\n")
			return false
		}
		n := 0
		if len(parts) == 2 {
			var err error
			n, err = strconv.Atoi(parts[1])
			if err != nil || n < 1 {
				s.printf("history: n must be a positive integer\n")
				return false
			}
		}
		for i, c := range s.history.list(n) {
			s.printf("%4d  %s\n", i+1, c)
		}
	case "exit", "quit":
		return true
	default:
		s.printf("unknown command\n")
	}
	return false
}

func (s *shell) reset(f filter.Filter) {
	s.filter = f
	s.inserted = 0
	s.seedIndex = 0
	s.printConfig()
}

// runFPRate measures against a fresh filter with the same parameters and
// as many keys as the current one holds, leaving the current one untouched.
func (s *shell) runFPRate(probes int) {
	inserted := s.inserted
	if inserted == 0 {
		inserted = 1
	}
	scratch, err := filter.NewBloomFilter(int64(s.filter.Size()), int(s.filter.HashCount()))
	if err != nil {
		s.printf("fprate error: %v\n", err)
		return
	}

	start := time.Now()
	report, err := evaluate.FalsePositiveRate(context.Background(), scratch, evaluate.Config{
		Inserted: inserted,
		Probes:   probes,
		Workers:  evaluate.DefaultConfig.Workers,
	})
	if err != nil {
		s.printf("fprate error: %v\n", err)
		return
	}
	common.LogDuration(start, "measured %d probes against %d keys", report.Probes, report.Inserted)
	s.printf("false positives: %d/%d observed=%s expected=%s\n",
		report.FalsePositives, report.Probes, common.FormatRate(report.Observed), common.FormatRate(report.Expected))
}
