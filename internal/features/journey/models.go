// Package journey tracks each seeker's reading journey: how many
// consecutive days they have drawn a card (the streak), their lifetime
// reading count and the level derived from it.
// models.go describes the persisted profile, the ephemeral status report
// and the collaborator interfaces the engine runs against.
package journey

import (
	"context"
	"time"
)

// Profile is one user's journey state, persisted in journey_profiles.
// The engine only ever reads a profile and writes the whole row back;
// it never deletes one.
//
// Invariants: CurrentStreak >= 0; CurrentStreak > 0 implies
// LastReadingDate != nil; LastReadingDate is never moved backward.
// TotalReadings and CurrentStreak are otherwise unlinked — the streak
// resets while the total keeps growing.
type Profile struct {
	ID              int64     `db:"id"`
	UserID          int64     `db:"user_id"`
	TotalReadings   int       `db:"total_readings"`   // lifetime count, monotonic
	CurrentStreak   int       `db:"current_streak"`   // consecutive qualifying days
	LastReadingDate *Day      `db:"last_reading_date"`
	Level           string    `db:"level"`            // derived via LevelFunc
	ReminderSentOn  *Day      `db:"reminder_sent_on"` // at-risk reminder dedup
	CreatedAt       time.Time `db:"created_at"`
	UpdatedAt       time.Time `db:"updated_at"`
}

// StreakStatus is a computed report for display. Never persisted.
type StreakStatus struct {
	CurrentStreak        int
	IsStreakAtRisk       bool // active streak, but no reading yet today
	DaysSinceLastReading int  // whole calendar days; 0 when never read
	LastReadingDate      *Day
}

// ProfileStore is the external profile store the engine delegates all
// persistence to. Get fails with common.ErrProfileNotFound when the user
// has no profile; both operations fail with common.ErrStoreUnavailable
// on transient store trouble.
type ProfileStore interface {
	Get(ctx context.Context, userID int64) (*Profile, error)
	Save(ctx context.Context, profile *Profile) error
}

// ReadingLookup answers whether the user has a qualifying reading
// recorded for the given day. Supplied by the readings feature.
type ReadingLookup interface {
	HasReadOn(ctx context.Context, userID int64, day Day) (bool, error)
}
