// Package common holds small utilities used across the project:
// pluralization for user-facing counts, time helpers for the scheduler.
package common

import (
	"fmt"
	"time"
)

// PluralizeDays returns "day" or "days" for n.
func PluralizeDays(n int) string {
	if n == 1 || n == -1 {
		return "day"
	}
	return "days"
}

// FormatDays formats a day count with its unit.
// Example: FormatDays(3) → "3 days"
func FormatDays(n int) string {
	return fmt.Sprintf("%d %s", n, PluralizeDays(n))
}

// PluralizeReadings returns "reading" or "readings" for n.
func PluralizeReadings(n int) string {
	if n == 1 || n == -1 {
		return "reading"
	}
	return "readings"
}

// Truncate cuts s to at most n runes, appending "..." when cut.
// Used for logging user text without flooding the log.
func Truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "..."
}

// LocationOrFixed loads the named timezone, falling back to a fixed offset
// when the tzdata is missing (minimal containers).
func LocationOrFixed(name string, fallbackName string, fallbackOffsetHours int) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		return time.FixedZone(fallbackName, fallbackOffsetHours*60*60)
	}
	return loc
}
