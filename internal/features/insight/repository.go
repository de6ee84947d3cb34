// Package insight — repository.go persists palm readings. Features go
// into a JSONB column so the schema survives prompt evolution.
package insight

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/noctua-labs/arcana-bot/internal/common"
)

type Repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// Insert stores a completed palm reading.
func (r *Repository) Insert(ctx context.Context, reading *PalmReading) error {
	features, err := json.Marshal(reading.Features)
	if err != nil {
		return fmt.Errorf("marshal palm features: %w", err)
	}

	query := `
		INSERT INTO palm_readings (user_id, features, narrative)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`
	err = r.db.QueryRow(ctx, query, reading.UserID, features, reading.Narrative).
		Scan(&reading.ID, &reading.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert palm reading (user_id=%d): %w: %w", reading.UserID, common.ErrStoreUnavailable, err)
	}
	return nil
}

// CountForUser returns how many palm readings the user has had.
func (r *Repository) CountForUser(ctx context.Context, userID int64) (int, error) {
	query := `SELECT COUNT(*) FROM palm_readings WHERE user_id = $1`
	var count int
	if err := r.db.QueryRow(ctx, query, userID).Scan(&count); err != nil {
		return 0, fmt.Errorf("count palm readings (user_id=%d): %w: %w", userID, common.ErrStoreUnavailable, err)
	}
	return count, nil
}
