package utils

import (
	"strconv"
	"time"
)

// FormatISOTime renders t as an ISO-8601 UTC timestamp with milliseconds,
// "N/A" when t is nil or zero
func FormatISOTime(t *time.Time) string {
	if t == nil || t.IsZero() {
		return "N/A"
	}
	return t.UTC().Format("2006-01-02T15:04:05.000Z")
}

// FormatEpochMillis converts an epoch-milliseconds string (as returned by
// SQS attributes) to an ISO-8601 timestamp. Unparsable input is returned
// unchanged.
func FormatEpochMillis(s string) string {
	ms, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return s
	}
	t := time.UnixMilli(ms)
	return FormatISOTime(&t)
}

// FormatEpochSeconds is like FormatEpochMillis for epoch seconds
func FormatEpochSeconds(s string) string {
	sec, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return s
	}
	t := time.Unix(sec, 0)
	return FormatISOTime(&t)
}

// CalculateElapsedDays calculates the number of days elapsed since a given time
func CalculateElapsedDays(since time.Time) int {
	return int(time.Since(since).Hours() / 24)
}
