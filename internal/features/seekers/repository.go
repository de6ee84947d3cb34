// Package seekers — repository.go runs the SQL against the seekers
// table. One query per function.
package seekers

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/noctua-labs/arcana-bot/internal/common"
)

type Repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// Upsert inserts a seeker, refreshing only the identity fields on
// conflict (never the admin/blocked flags).
func (r *Repository) Upsert(ctx context.Context, s *Seeker) error {
	query := `
		INSERT INTO seekers (user_id, username, first_name, last_name, is_admin, is_blocked)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (user_id) DO UPDATE
		SET username = EXCLUDED.username,
		    first_name = EXCLUDED.first_name,
		    last_name = EXCLUDED.last_name,
		    updated_at = NOW()
	`
	_, err := r.db.Exec(ctx, query,
		s.UserID, s.Username, s.FirstName, s.LastName, s.IsAdmin, s.IsBlocked,
	)
	if err != nil {
		return fmt.Errorf("upsert seeker (user_id=%d): %w: %w", s.UserID, common.ErrStoreUnavailable, err)
	}
	return nil
}

// GetByUserID loads one seeker; common.ErrProfileNotFound when unknown.
func (r *Repository) GetByUserID(ctx context.Context, userID int64) (*Seeker, error) {
	query := `
		SELECT id, user_id, username, first_name, last_name, is_admin, is_blocked,
		       created_at, updated_at
		FROM seekers
		WHERE user_id = $1
	`
	var s Seeker
	err := r.db.QueryRow(ctx, query, userID).Scan(
		&s.ID, &s.UserID, &s.Username, &s.FirstName, &s.LastName,
		&s.IsAdmin, &s.IsBlocked, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("seeker (user_id=%d): %w", userID, common.ErrProfileNotFound)
		}
		return nil, fmt.Errorf("load seeker (user_id=%d): %w: %w", userID, common.ErrStoreUnavailable, err)
	}
	return &s, nil
}

// List returns all non-blocked seekers ordered by first name.
// Used by the admin override dialog.
func (r *Repository) List(ctx context.Context) ([]*Seeker, error) {
	query := `
		SELECT id, user_id, username, first_name, last_name, is_admin, is_blocked,
		       created_at, updated_at
		FROM seekers
		WHERE is_blocked = FALSE
		ORDER BY first_name
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list seekers: %w: %w", common.ErrStoreUnavailable, err)
	}
	defer rows.Close()

	var out []*Seeker
	for rows.Next() {
		var s Seeker
		if err := rows.Scan(
			&s.ID, &s.UserID, &s.Username, &s.FirstName, &s.LastName,
			&s.IsAdmin, &s.IsBlocked, &s.CreatedAt, &s.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan seeker: %w: %w", common.ErrStoreUnavailable, err)
		}
		out = append(out, &s)
	}
	return out, rows.Err()
}
