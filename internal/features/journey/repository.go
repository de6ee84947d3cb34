// Package journey — repository.go persists profiles in the
// journey_profiles table. It is the ProfileStore the engine runs
// against in production and owns the error translation: pgx.ErrNoRows
// becomes ErrProfileNotFound, anything else the driver reports becomes
// ErrStoreUnavailable.
package journey

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/noctua-labs/arcana-bot/internal/common"
)

// Repository provides journey_profiles access.
type Repository struct {
	db *pgxpool.Pool
}

var _ ProfileStore = (*Repository)(nil)

// NewRepository creates a journey repository.
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// Create inserts the initial zeroed profile for a new seeker.
// Safe to call repeatedly: an existing row is left untouched.
func (r *Repository) Create(ctx context.Context, userID int64) error {
	query := `
		INSERT INTO journey_profiles (user_id, total_readings, current_streak, level)
		VALUES ($1, 0, 0, $2)
		ON CONFLICT (user_id) DO NOTHING
	`
	if _, err := r.db.Exec(ctx, query, userID, BaseLevel); err != nil {
		return fmt.Errorf("create profile (user_id=%d): %w: %w", userID, common.ErrStoreUnavailable, err)
	}
	return nil
}

// Get loads one profile by user id.
func (r *Repository) Get(ctx context.Context, userID int64) (*Profile, error) {
	query := `
		SELECT id, user_id, total_readings, current_streak, last_reading_date,
		       level, reminder_sent_on, created_at, updated_at
		FROM journey_profiles
		WHERE user_id = $1
	`
	p, err := scanProfile(r.db.QueryRow(ctx, query, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("user_id=%d: %w", userID, common.ErrProfileNotFound)
		}
		return nil, fmt.Errorf("load profile (user_id=%d): %w: %w", userID, common.ErrStoreUnavailable, err)
	}
	return p, nil
}

// Save writes the whole profile row back. One UPDATE, so a failure
// never leaves a torn row.
func (r *Repository) Save(ctx context.Context, p *Profile) error {
	query := `
		UPDATE journey_profiles
		SET total_readings = $2, current_streak = $3, last_reading_date = $4,
		    level = $5, reminder_sent_on = $6, updated_at = NOW()
		WHERE user_id = $1
	`
	tag, err := r.db.Exec(ctx, query,
		p.UserID, p.TotalReadings, p.CurrentStreak, dayToTime(p.LastReadingDate),
		p.Level, dayToTime(p.ReminderSentOn),
	)
	if err != nil {
		return fmt.Errorf("save profile (user_id=%d): %w: %w", p.UserID, common.ErrStoreUnavailable, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("user_id=%d: %w", p.UserID, common.ErrProfileNotFound)
	}
	return nil
}

// ListActiveStreaks returns every profile with an active streak.
// Used by the scheduler for the midnight reconcile sweep and the
// at-risk reminders.
func (r *Repository) ListActiveStreaks(ctx context.Context) ([]*Profile, error) {
	query := `
		SELECT id, user_id, total_readings, current_streak, last_reading_date,
		       level, reminder_sent_on, created_at, updated_at
		FROM journey_profiles
		WHERE current_streak > 0
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list active streaks: %w: %w", common.ErrStoreUnavailable, err)
	}
	defer rows.Close()

	var profiles []*Profile
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, fmt.Errorf("scan profile: %w: %w", common.ErrStoreUnavailable, err)
		}
		profiles = append(profiles, p)
	}
	return profiles, rows.Err()
}

// MarkReminderSent records that the at-risk reminder went out on day,
// so the hourly job sends at most one per user per day.
func (r *Repository) MarkReminderSent(ctx context.Context, userID int64, day Day) error {
	query := `UPDATE journey_profiles SET reminder_sent_on = $2, updated_at = NOW() WHERE user_id = $1`
	_, err := r.db.Exec(ctx, query, userID, day.Time())
	if err != nil {
		return fmt.Errorf("mark reminder (user_id=%d): %w: %w", userID, common.ErrStoreUnavailable, err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProfile(row rowScanner) (*Profile, error) {
	var (
		p        Profile
		lastRead *time.Time
		reminded *time.Time
	)
	err := row.Scan(
		&p.ID, &p.UserID, &p.TotalReadings, &p.CurrentStreak, &lastRead,
		&p.Level, &reminded, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	p.LastReadingDate = timeToDay(lastRead)
	p.ReminderSentOn = timeToDay(reminded)
	return &p, nil
}

func timeToDay(t *time.Time) *Day {
	if t == nil {
		return nil
	}
	d := DayOf(*t)
	return &d
}

func dayToTime(d *Day) *time.Time {
	if d == nil {
		return nil
	}
	t := d.Time()
	return &t
}
