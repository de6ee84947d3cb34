// Package readings — service.go orchestrates the daily draw: dedup,
// deck draw, interpretation, persistence, then the journey engine.
package readings

import (
	"context"

	log "github.com/sirupsen/logrus"

	"github.com/noctua-labs/arcana-bot/internal/features/journey"
)

// readingStore is what the service needs from the repository.
type readingStore interface {
	Insert(ctx context.Context, reading *Reading) error
	GetForDay(ctx context.Context, userID int64, day journey.Day) (*Reading, error)
}

// journeyRecorder is the slice of the journey engine the draw drives.
type journeyRecorder interface {
	RecordReading(ctx context.Context, userID int64, today string) (*journey.Profile, error)
}

// Interpreter produces the personalized card interpretation.
// Implemented by the insight feature; nil disables it.
type Interpreter interface {
	InterpretCard(ctx context.Context, card, orientation, meaning string) (string, error)
}

// DrawResult is what a draw hands back to the handler.
type DrawResult struct {
	Reading *Reading
	Profile *journey.Profile // nil when the reading already existed
	Reused  bool             // true on same-day re-draw
}

// Service runs daily readings.
type Service struct {
	store       readingStore
	journey     journeyRecorder
	interpreter Interpreter
}

// NewService creates the readings service. interpreter may be nil; the
// deck's keyword meaning is used as the interpretation then.
func NewService(store readingStore, journeySvc journeyRecorder, interpreter Interpreter) *Service {
	return &Service{store: store, journey: journeySvc, interpreter: interpreter}
}

// DrawDaily performs (or replays) the reading of the day.
//
// Steps:
//  1. If today's reading exists, return it unchanged — the deck does not
//     reshuffle, and the journey engine is not touched again.
//  2. Draw the deterministic card for (user, today).
//  3. Ask the interpreter for a personalized text; on failure fall back
//     to the card's keyword meaning, the draw itself must not fail
//     because the model is down.
//  4. Persist the reading, then record it with the journey engine.
func (s *Service) DrawDaily(ctx context.Context, userID int64, today string) (*DrawResult, error) {
	day, err := journey.ParseDay(today)
	if err != nil {
		return nil, err
	}

	existing, err := s.store.GetForDay(ctx, userID, day)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return &DrawResult{Reading: existing, Reused: true}, nil
	}

	card, orientation := Draw(userID, day)

	interpretation := card.Meaning(orientation)
	if s.interpreter != nil {
		text, err := s.interpreter.InterpretCard(ctx, card.Name, orientation, card.Meaning(orientation))
		if err != nil {
			log.WithError(err).WithField("user_id", userID).Warn("interpretation failed, using card meaning")
		} else if text != "" {
			interpretation = text
		}
	}

	reading := &Reading{
		UserID:         userID,
		ReadingDate:    day,
		Card:           card.Name,
		Orientation:    orientation,
		Interpretation: interpretation,
	}
	if err := s.store.Insert(ctx, reading); err != nil {
		return nil, err
	}

	profile, err := s.journey.RecordReading(ctx, userID, day.String())
	if err != nil {
		// The reading row is in; the engine will catch up on the next
		// reconcile. Surface the error so the user sees the honest state.
		return nil, err
	}

	log.WithFields(log.Fields{
		"user_id":     userID,
		"card":        card.Name,
		"orientation": orientation,
		"streak":      profile.CurrentStreak,
	}).Info("daily card drawn")

	return &DrawResult{Reading: reading, Profile: profile}, nil
}

// GetForDay exposes the stored reading for handlers.
func (s *Service) GetForDay(ctx context.Context, userID int64, day journey.Day) (*Reading, error) {
	return s.store.GetForDay(ctx, userID, day)
}
