// Package formatter renders resolved trees, resource details and focus
// documents for the terminal.
package formatter

import (
	"fmt"
	"io"
	"time"
)

// PrintTimestamp prints when resolution finished and how long it took
func PrintTimestamp(w io.Writer, startTime time.Time, duration time.Duration) {
	timeStr := startTime.Format("2006-01-02 15:04:05")
	durationStr := fmt.Sprintf("%.2fs", duration.Seconds())

	fmt.Fprintf(w, "Resolved at %s (took %s)\n", timeStr, durationStr)
}

// truncateString truncates s to maxWidth display columns, ending in "..."
func truncateString(s string, maxWidth int) string {
	if StringWidth(s) <= maxWidth {
		return s
	}
	if maxWidth <= 3 {
		return "..."
	}

	width := 0
	for i, r := range s {
		rw := RuneWidth(r)
		if width+rw > maxWidth-3 {
			return s[:i] + "..."
		}
		width += rw
	}
	return s
}
