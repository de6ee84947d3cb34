// Package journey — service.go is the streak engine itself.
//
// Every operation is one logical transaction: a single read and at most
// one write against the ProfileStore. The engine holds no state of its
// own and never reads a clock — "today" arrives as an explicit
// YYYY-MM-DD argument, which keeps every code path reproducible in
// tests without wall-clock mocking.
//
// Known limitation: the read-modify-write against the store is not
// synchronized, so two concurrent RecordReading calls for the same user
// can lose one TotalReadings increment. The Telegram update flow
// processes a user's actions serially, which is the discipline this
// relies on; a store-side conditional write would lift it.
package journey

import (
	"context"

	log "github.com/sirupsen/logrus"

	"github.com/noctua-labs/arcana-bot/internal/common"
)

// Service computes streak transitions and journey progression.
type Service struct {
	store    ProfileStore
	lookup   ReadingLookup
	levelFor LevelFunc
}

// NewService creates the engine. A nil levelFor falls back to the
// built-in DefaultLevel policy.
func NewService(store ProfileStore, lookup ReadingLookup, levelFor LevelFunc) *Service {
	if levelFor == nil {
		levelFor = DefaultLevel
	}
	return &Service{store: store, lookup: lookup, levelFor: levelFor}
}

// RecordReading processes a completed reading for the given calendar
// date and returns the updated profile.
//
// Steps:
//  1. Load the profile (ErrProfileNotFound / ErrStoreUnavailable).
//  2. Apply the streak-transition rule against today.
//  3. TotalReadings++ — note this is NOT same-day idempotent, only the
//     streak is; callers must not re-submit an already-counted reading.
//  4. Recompute the level from the new total.
//  5. LastReadingDate = today, save the whole profile back.
//
// A failed save discards the computed update and surfaces
// ErrStoreUnavailable: the caller retries the whole operation, there is
// never a half-committed profile.
func (s *Service) RecordReading(ctx context.Context, userID int64, today string) (*Profile, error) {
	day, err := ParseDay(today)
	if err != nil {
		return nil, err
	}
	return s.recordReading(ctx, userID, day)
}

func (s *Service) recordReading(ctx context.Context, userID int64, day Day) (*Profile, error) {
	profile, err := s.store.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	profile.CurrentStreak = NextStreak(profile.LastReadingDate, day, profile.CurrentStreak)
	profile.TotalReadings++
	profile.Level = s.levelFor(profile.TotalReadings)
	d := day
	profile.LastReadingDate = &d

	if err := s.store.Save(ctx, profile); err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{
		"user_id": userID,
		"day":     day.String(),
		"streak":  profile.CurrentStreak,
		"total":   profile.TotalReadings,
		"level":   profile.Level,
	}).Debug("reading recorded")

	return profile, nil
}

// Reconcile brings a profile up to date without a fresh reading event,
// e.g. on app-open. Two cases:
//
//   - Today's reading exists but the engine hasn't processed it yet
//     (LastReadingDate != today): delegate to the record path so the
//     streak and level catch up.
//   - No reading today, and the last one is 2+ days old with an active
//     streak: zero the streak silently. TotalReadings and Level stay.
//
// Everything else returns the profile unchanged.
func (s *Service) Reconcile(ctx context.Context, userID int64, today string) (*Profile, error) {
	day, err := ParseDay(today)
	if err != nil {
		return nil, err
	}

	profile, err := s.store.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	done, err := s.lookup.HasReadOn(ctx, userID, day)
	if err != nil {
		return nil, err
	}
	if done {
		if profile.LastReadingDate != nil && profile.LastReadingDate.Equal(day) {
			// Already processed; re-recording would double-count the total.
			return profile, nil
		}
		return s.recordReading(ctx, userID, day)
	}

	if profile.CurrentStreak > 0 && profile.LastReadingDate != nil &&
		day.DaysSince(*profile.LastReadingDate) > 1 {
		profile.CurrentStreak = 0
		if err := s.store.Save(ctx, profile); err != nil {
			return nil, err
		}
		log.WithFields(log.Fields{
			"user_id":   userID,
			"last_read": profile.LastReadingDate.String(),
			"day":       day.String(),
		}).Info("streak lapsed, reset to zero")
	}

	return profile, nil
}

// Status computes the read-only streak report for display. Never
// mutates or persists.
func (s *Service) Status(ctx context.Context, userID int64, today string) (*StreakStatus, error) {
	day, err := ParseDay(today)
	if err != nil {
		return nil, err
	}

	profile, err := s.store.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &StreakStatus{
		CurrentStreak:        profile.CurrentStreak,
		IsStreakAtRisk:       IsAtRisk(profile.LastReadingDate, day, profile.CurrentStreak),
		DaysSinceLastReading: DaysSinceLast(profile.LastReadingDate, day),
		LastReadingDate:      profile.LastReadingDate,
	}, nil
}

// Override overwrites the progression counters directly, bypassing the
// transition rule. Admin tooling only: no validation beyond
// non-negativity, the operator owns consistency.
func (s *Service) Override(ctx context.Context, userID int64, totalReadings, currentStreak int, level string) error {
	if totalReadings < 0 || currentStreak < 0 {
		return common.ErrNegativeValue
	}

	profile, err := s.store.Get(ctx, userID)
	if err != nil {
		return err
	}

	profile.TotalReadings = totalReadings
	profile.CurrentStreak = currentStreak
	profile.Level = level

	if err := s.store.Save(ctx, profile); err != nil {
		return err
	}

	log.WithFields(log.Fields{
		"user_id": userID,
		"total":   totalReadings,
		"streak":  currentStreak,
		"level":   level,
	}).Warn("journey overridden manually")

	return nil
}

// GetProfile loads a profile without touching it.
func (s *Service) GetProfile(ctx context.Context, userID int64) (*Profile, error) {
	return s.store.Get(ctx, userID)
}
