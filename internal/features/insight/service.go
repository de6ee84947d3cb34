// Package insight — service.go orchestrates the model calls.
//
// The palm reading is two sequential calls: stage one looks at the
// photo and reports the visible lines as JSON, stage two turns those
// observations into the narrative. Splitting the stages keeps the
// vision step auditable (the features are persisted next to the text)
// and lets stage two run on the cheaper text path.
package insight

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"
)

// ErrPalmUnreadable — stage one could not produce usable features.
var ErrPalmUnreadable = errors.New("could not read the palm photo")

// palmStore is what the service needs from the repository.
type palmStore interface {
	Insert(ctx context.Context, reading *PalmReading) error
}

// Service generates interpretations.
type Service struct {
	client Client
	store  palmStore
}

// NewService creates the insight service.
func NewService(client Client, store palmStore) *Service {
	return &Service{client: client, store: store}
}

// InterpretCard writes the daily reading for a drawn card.
// Satisfies readings.Interpreter.
func (s *Service) InterpretCard(ctx context.Context, card, orientation, meaning string) (string, error) {
	text, err := s.client.Generate(ctx, buildCardPrompt(card, orientation, meaning))
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(text), nil
}

// ReadPalm runs the two-stage palm reading over a photo and persists
// the result.
func (s *Service) ReadPalm(ctx context.Context, userID int64, image []byte, mimeType string) (*PalmReading, error) {
	// Stage 1: extract structured features from the photo.
	raw, err := s.client.GenerateWithImage(ctx, palmFeaturesPrompt, image, mimeType)
	if err != nil {
		return nil, fmt.Errorf("palm stage one: %w", err)
	}

	blob, err := ExtractJSON(raw)
	if err != nil {
		log.WithField("user_id", userID).WithField("response", strings.TrimSpace(raw)).
			Warn("palm stage one returned no JSON")
		return nil, fmt.Errorf("%w: %w", ErrPalmUnreadable, err)
	}

	var features PalmFeatures
	if err := json.Unmarshal([]byte(blob), &features); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPalmUnreadable, err)
	}

	// Stage 2: narrate from the extracted features only — the photo is
	// never sent twice.
	narrative, err := s.client.Generate(ctx, buildPalmNarrativePrompt(features))
	if err != nil {
		return nil, fmt.Errorf("palm stage two: %w", err)
	}

	reading := &PalmReading{
		UserID:    userID,
		Features:  features,
		Narrative: strings.TrimSpace(narrative),
	}
	if err := s.store.Insert(ctx, reading); err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{
		"user_id": userID,
		"id":      reading.ID,
	}).Info("palm reading completed")

	return reading, nil
}
