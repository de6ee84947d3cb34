// Package journey — streak.go holds the pure streak-transition rule.
// Everything here is a function of its arguments only; the service layer
// supplies "today" from the caller so these stay deterministic and
// exhaustively testable.
package journey

// NextStreak applies the streak-transition rule:
//
//	no previous reading        → 1
//	same day (re-entry)        → unchanged, no double counting
//	previous day (consecutive) → current + 1
//	gap of 2+ days, or a last date in the future (clock skew) → 1
//
// Comparisons are calendar-day based, never 24h durations: a reading at
// 23:59 followed by one at 00:01 continues the streak.
func NextStreak(last *Day, today Day, current int) int {
	switch {
	case last == nil:
		return 1
	case last.Equal(today):
		return current
	case today.DaysSince(*last) == 1:
		return current + 1
	default:
		// Broken streak. A future last date is treated the same way:
		// resetting is self-healing, ignoring would wedge the streak
		// until the device clock catches up.
		return 1
	}
}

// DaysSinceLast returns the whole days elapsed since the last reading,
// 0 when there has never been one, clamped at 0 under clock skew.
func DaysSinceLast(last *Day, today Day) int {
	if last == nil {
		return 0
	}
	d := today.DaysSince(*last)
	if d < 0 {
		return 0
	}
	return d
}

// IsAtRisk reports whether an active streak will break unless the user
// reads today: true iff currentStreak > 0 and the last reading is not
// from today.
func IsAtRisk(last *Day, today Day, current int) bool {
	if current <= 0 {
		return false
	}
	return last == nil || !last.Equal(today)
}
