// Package readings — repository.go runs the SQL against the readings
// table. It doubles as the journey engine's ReadingLookup.
package readings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/noctua-labs/arcana-bot/internal/common"
	"github.com/noctua-labs/arcana-bot/internal/features/journey"
)

type Repository struct {
	db *pgxpool.Pool
}

var _ journey.ReadingLookup = (*Repository)(nil)

func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// Insert records a completed reading. The unique (user_id, reading_date)
// index makes double inserts impossible; on conflict the existing row
// wins and no error is returned.
func (r *Repository) Insert(ctx context.Context, reading *Reading) error {
	query := `
		INSERT INTO readings (user_id, reading_date, card, orientation, interpretation)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (user_id, reading_date) DO NOTHING
	`
	_, err := r.db.Exec(ctx, query,
		reading.UserID, reading.ReadingDate.Time(),
		reading.Card, reading.Orientation, reading.Interpretation,
	)
	if err != nil {
		return fmt.Errorf("insert reading (user_id=%d): %w: %w", reading.UserID, common.ErrStoreUnavailable, err)
	}
	return nil
}

// GetForDay returns the reading for (user, day), or nil when none exists.
func (r *Repository) GetForDay(ctx context.Context, userID int64, day journey.Day) (*Reading, error) {
	query := `
		SELECT id, user_id, reading_date, card, orientation, interpretation, created_at
		FROM readings
		WHERE user_id = $1 AND reading_date = $2
	`
	var (
		reading Reading
		date    time.Time
	)
	err := r.db.QueryRow(ctx, query, userID, day.Time()).Scan(
		&reading.ID, &reading.UserID, &date,
		&reading.Card, &reading.Orientation, &reading.Interpretation, &reading.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("load reading (user_id=%d): %w: %w", userID, common.ErrStoreUnavailable, err)
	}
	reading.ReadingDate = journey.DayOf(date)
	return &reading, nil
}

// HasReadOn implements journey.ReadingLookup.
func (r *Repository) HasReadOn(ctx context.Context, userID int64, day journey.Day) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM readings WHERE user_id = $1 AND reading_date = $2)`
	var exists bool
	if err := r.db.QueryRow(ctx, query, userID, day.Time()).Scan(&exists); err != nil {
		return false, fmt.Errorf("reading lookup (user_id=%d): %w: %w", userID, common.ErrStoreUnavailable, err)
	}
	return exists, nil
}
