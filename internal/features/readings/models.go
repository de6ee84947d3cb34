// Package readings owns the daily card draw: the deck, the persisted
// reading records and the lookup the journey engine consults.
// models.go describes the readings table rows.
package readings

import (
	"time"

	"github.com/noctua-labs/arcana-bot/internal/features/journey"
)

// Reading is one completed daily reading. At most one exists per
// (user, day) — the table enforces it with a unique index, which is
// what makes a reading "qualifying" exactly once.
type Reading struct {
	ID             int64       `db:"id"`
	UserID         int64       `db:"user_id"`
	ReadingDate    journey.Day `db:"reading_date"`
	Card           string      `db:"card"`
	Orientation    string      `db:"orientation"` // upright | reversed
	Interpretation string      `db:"interpretation"`
	CreatedAt      time.Time   `db:"created_at"`
}
