package journey

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noctua-labs/arcana-bot/internal/common"
)

func TestParseDay(t *testing.T) {
	d, err := ParseDay("2024-03-11")
	require.NoError(t, err)
	assert.Equal(t, "2024-03-11", d.String())
}

func TestParseDayInvalid(t *testing.T) {
	cases := []string{"", "2024-3-11", "11.03.2024", "2024-03-32", "2024-13-01", "not a date", "2024-03-11T00:00:00Z"}
	for _, in := range cases {
		_, err := ParseDay(in)
		assert.ErrorIs(t, err, common.ErrInvalidDate, "input %q", in)
	}
}

func TestDayOfDropsTimeAndZone(t *testing.T) {
	loc := time.FixedZone("UTC+13", 13*60*60)
	late := time.Date(2024, 3, 11, 23, 59, 59, 0, loc)
	assert.Equal(t, "2024-03-11", DayOf(late).String())
}

func TestDaysSince(t *testing.T) {
	day := func(s string) Day {
		d, err := ParseDay(s)
		require.NoError(t, err)
		return d
	}

	tests := []struct {
		name string
		from string
		to   string
		want int
	}{
		{"same day", "2024-03-11", "2024-03-11", 0},
		{"next day", "2024-03-11", "2024-03-12", 1},
		{"month rollover", "2024-01-31", "2024-02-01", 1},
		{"year rollover", "2023-12-31", "2024-01-01", 1},
		{"leap day", "2024-02-28", "2024-02-29", 1},
		{"non-leap february", "2023-02-28", "2023-03-01", 1},
		{"three days", "2024-03-10", "2024-03-13", 3},
		{"backwards", "2024-03-12", "2024-03-11", -1},
		{"across a year", "2023-03-11", "2024-03-11", 366}, // 2024 is a leap year
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, day(tt.to).DaysSince(day(tt.from)))
		})
	}
}

func TestAddDaysRollsOver(t *testing.T) {
	d, err := ParseDay("2024-02-28")
	require.NoError(t, err)
	assert.Equal(t, "2024-02-29", d.AddDays(1).String())
	assert.Equal(t, "2024-03-01", d.AddDays(2).String())
	assert.Equal(t, "2024-02-27", d.AddDays(-1).String())
}
