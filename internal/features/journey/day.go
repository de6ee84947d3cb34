// Package journey — day.go implements the calendar-day value the engine
// runs on. A Day is a year/month/day triple with no time-of-day and no
// timezone: the caller supplies its local calendar date as "YYYY-MM-DD"
// and the engine treats it as opaque.
//
// Internally a Day is stored as midnight UTC, so differences between two
// Days are always exact multiples of 24h — no DST transitions exist in UTC.
// Day arithmetic therefore handles month, year and leap-day rollover for
// free via the time package.
package journey

import (
	"fmt"
	"time"

	"github.com/noctua-labs/arcana-bot/internal/common"
)

// DayLayout is the canonical wire format for calendar dates.
const DayLayout = "2006-01-02"

// Day is a single calendar date. The zero value is invalid; construct
// through ParseDay or DayOf.
type Day struct {
	t time.Time // always midnight UTC
}

// ParseDay parses a canonical "YYYY-MM-DD" string.
// Malformed input fails with common.ErrInvalidDate — never coerced.
func ParseDay(s string) (Day, error) {
	t, err := time.Parse(DayLayout, s)
	if err != nil {
		return Day{}, fmt.Errorf("%w: %q", common.ErrInvalidDate, s)
	}
	return Day{t}, nil
}

// DayOf truncates any instant to its calendar date, dropping the
// time-of-day and the zone. DayOf(now.In(userLocation)) is how callers
// turn "the user's wall clock" into the engine's "today".
func DayOf(t time.Time) Day {
	return Day{time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)}
}

// IsZero reports whether d was never set.
func (d Day) IsZero() bool { return d.t.IsZero() }

// String renders the canonical "YYYY-MM-DD" form.
func (d Day) String() string { return d.t.Format(DayLayout) }

// Time exposes the underlying UTC midnight, for persistence as a DATE.
func (d Day) Time() time.Time { return d.t }

// AddDays returns the date n calendar days later (negative n goes back).
func (d Day) AddDays(n int) Day { return Day{d.t.AddDate(0, 0, n)} }

// Equal reports whether two Days are the same calendar date.
func (d Day) Equal(o Day) bool { return d.t.Equal(o.t) }

// After reports whether d is a later calendar date than o.
func (d Day) After(o Day) bool { return d.t.After(o.t) }

// DaysSince returns the whole-day distance d - o. Negative when o is
// later than d (clock skew on the caller's side).
func (d Day) DaysSince(o Day) int {
	return int(d.t.Sub(o.t) / (24 * time.Hour))
}
