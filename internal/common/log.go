package common

import (
	"fmt"
	"io"
	"os"
	"time"
)

var (
	// LoggingEnabled controls whether Logf produces output.
	LoggingEnabled = true

	// Output receives everything written by Logf.
	Output io.Writer = os.Stdout
)

// Logf prints a formatted message if logging is enabled.
func Logf(format string, args ...interface{}) {
	if LoggingEnabled {
		fmt.Fprintf(Output, format, args...)
	}
}

// formatDuration formats a duration with 2 decimal places.
// Returns a string like "1.23 ms" (no padding).
func formatDuration(d time.Duration) string {
	ms := float64(d) / float64(time.Millisecond)

	if ms >= 1000 {
		return fmt.Sprintf("%.2f s", ms/1000)
	} else if ms < 0.01 {
		return fmt.Sprintf("%.2f us", ms*1000)
	}
	return fmt.Sprintf("%.2f ms", ms)
}

// LogDuration prints a message with the elapsed time since start.
// The duration is formatted with tight parens and right-padded to align messages.
func LogDuration(start time.Time, format string, args ...interface{}) {
	elapsed := time.Since(start)
	msg := fmt.Sprintf(format, args...)
	durStr := fmt.Sprintf("(%s)", formatDuration(elapsed))
	Logf("%-10s%s\n", durStr, msg)
}

// FormatRate renders a probability as a percentage, switching to
// scientific notation for very small values.
func FormatRate(p float64) string {
	pct := p * 100
	if pct != 0 && pct < 0.001 {
		return fmt.Sprintf("%.3e%%", pct)
	}
	return fmt.Sprintf("%.3f%%", pct)
}
