package journey

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustDay(t *testing.T, s string) Day {
	t.Helper()
	d, err := ParseDay(s)
	require.NoError(t, err)
	return d
}

func dayPtr(t *testing.T, s string) *Day {
	t.Helper()
	d := mustDay(t, s)
	return &d
}

func TestNextStreak(t *testing.T) {
	tests := []struct {
		name    string
		last    string // "" means never read
		today   string
		current int
		want    int
	}{
		{"first ever reading", "", "2024-03-11", 0, 1},
		{"same-day re-entry keeps streak", "2024-03-11", "2024-03-11", 3, 3},
		{"consecutive day increments", "2024-03-10", "2024-03-11", 3, 4},
		{"two-day gap resets", "2024-03-09", "2024-03-11", 3, 1},
		{"long gap resets", "2024-02-01", "2024-03-11", 30, 1},
		{"clock skew resets", "2024-03-12", "2024-03-11", 3, 1},
		{"month rollover is consecutive", "2024-01-31", "2024-02-01", 5, 6},
		{"year rollover is consecutive", "2023-12-31", "2024-01-01", 5, 6},
		{"leap day is consecutive", "2024-02-28", "2024-02-29", 2, 3},
		{"non-leap feb to march is consecutive", "2023-02-28", "2023-03-01", 2, 3},
		{"leap feb 28 to march 1 is a gap", "2024-02-28", "2024-03-01", 2, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var last *Day
			if tt.last != "" {
				last = dayPtr(t, tt.last)
			}
			got := NextStreak(last, mustDay(t, tt.today), tt.current)
			assert.Equal(t, tt.want, got)
		})
	}
}

// Applying the rule twice with the same day must give the same streak as
// applying it once, whatever the starting state.
func TestNextStreakSameDayIdempotent(t *testing.T) {
	today := mustDay(t, "2024-03-11")
	for _, last := range []*Day{nil, dayPtr(t, "2024-03-10"), dayPtr(t, "2024-03-01")} {
		first := NextStreak(last, today, 7)
		second := NextStreak(&today, today, first)
		assert.Equal(t, first, second)
	}
}

func TestDaysSinceLast(t *testing.T) {
	today := mustDay(t, "2024-03-11")

	assert.Equal(t, 0, DaysSinceLast(nil, today))
	assert.Equal(t, 0, DaysSinceLast(dayPtr(t, "2024-03-11"), today))
	assert.Equal(t, 1, DaysSinceLast(dayPtr(t, "2024-03-10"), today))
	assert.Equal(t, 40, DaysSinceLast(dayPtr(t, "2024-01-31"), today))
	// Clock skew clamps to zero instead of going negative.
	assert.Equal(t, 0, DaysSinceLast(dayPtr(t, "2024-03-12"), today))
}

func TestIsAtRisk(t *testing.T) {
	today := mustDay(t, "2024-03-11")

	// At risk iff streak > 0 and last reading is not today.
	assert.True(t, IsAtRisk(dayPtr(t, "2024-03-10"), today, 3))
	assert.False(t, IsAtRisk(dayPtr(t, "2024-03-11"), today, 3))
	assert.False(t, IsAtRisk(dayPtr(t, "2024-03-10"), today, 0))
	assert.False(t, IsAtRisk(nil, today, 0))
}
