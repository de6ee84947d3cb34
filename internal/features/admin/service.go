// Package admin — service.go holds authentication, session management
// and the state machine for stepwise admin actions.
package admin

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"strings"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
	"golang.org/x/crypto/argon2"

	"github.com/noctua-labs/arcana-bot/internal/common"
	"github.com/noctua-labs/arcana-bot/internal/features/journey"
	"github.com/noctua-labs/arcana-bot/internal/features/seekers"
)

const (
	maxLoginAttempts = 3
	lockoutWindow    = 1 * time.Hour
	sessionTTL       = 24 * time.Hour
	stateTTL         = 5 * time.Minute
)

// Service runs the admin panel.
type Service struct {
	repo         *Repository
	seekerSvc    *seekers.Service
	journeySvc   *journey.Service
	passwordHash string
	states       map[int64]*AdminState
	statesMu     sync.RWMutex
}

// NewService creates the admin service. passwordHash is the Argon2id
// encoded hash from config.
func NewService(repo *Repository, seekerSvc *seekers.Service, journeySvc *journey.Service, passwordHash string) *Service {
	return &Service{
		repo:         repo,
		seekerSvc:    seekerSvc,
		journeySvc:   journeySvc,
		passwordHash: passwordHash,
		states:       make(map[int64]*AdminState),
	}
}

// VerifyPassword checks the admin password against the Argon2id hash.
// Three failed attempts within an hour lock the user out for the rest
// of the hour.
func (s *Service) VerifyPassword(ctx context.Context, userID int64, password string) error {
	attempts, err := s.repo.GetRecentAttempts(ctx, userID, lockoutWindow)
	if err != nil {
		return err
	}
	if attempts >= maxLoginAttempts {
		return common.ErrTooManyAttempts
	}

	match := verifyArgon2id(password, s.passwordHash)

	if err := s.repo.LogAttempt(ctx, userID, match); err != nil {
		log.WithError(err).Warn("failed to log login attempt")
	}

	if !match {
		return common.ErrWrongPassword
	}

	session := &AdminSession{
		UserID:       userID,
		SessionToken: generateSecureToken(),
		ExpiresAt:    time.Now().Add(sessionTTL),
	}
	return s.repo.CreateSession(ctx, session)
}

// HasActiveSession reports whether the user has an unexpired session.
func (s *Service) HasActiveSession(ctx context.Context, userID int64) bool {
	session, err := s.repo.GetActiveSession(ctx, userID)
	return err == nil && session != nil
}

// Logout ends the user's admin sessions.
func (s *Service) Logout(ctx context.Context, userID int64) error {
	s.ClearState(userID)
	return s.repo.DeactivateSession(ctx, userID)
}

// GetState returns the current dialog state, or nil if none or expired.
func (s *Service) GetState(userID int64) *AdminState {
	s.statesMu.RLock()
	defer s.statesMu.RUnlock()

	state, ok := s.states[userID]
	if !ok {
		return nil
	}
	if time.Now().After(state.ExpiresAt) {
		return nil
	}
	return state
}

// SetState stores the dialog state with the standard timeout.
func (s *Service) SetState(userID int64, stateName string, data interface{}) {
	s.statesMu.Lock()
	defer s.statesMu.Unlock()

	s.states[userID] = &AdminState{
		State:     stateName,
		Data:      data,
		ExpiresAt: time.Now().Add(stateTTL),
	}
}

// ClearState drops the dialog state.
func (s *Service) ClearState(userID int64) {
	s.statesMu.Lock()
	defer s.statesMu.Unlock()
	delete(s.states, userID)
}

// ListSeekers returns all registered seekers for the selection step.
func (s *Service) ListSeekers(ctx context.Context) ([]*seekers.Seeker, error) {
	return s.seekerSvc.List(ctx)
}

// OverrideJourney overwrites a seeker's progression counters. The level
// is recomputed from the new total so the display stays consistent.
func (s *Service) OverrideJourney(ctx context.Context, userID int64, totalReadings, currentStreak int) error {
	level := journey.DefaultLevel(totalReadings)
	return s.journeySvc.Override(ctx, userID, totalReadings, currentStreak, level)
}

// --- Crypto helpers ---

// verifyArgon2id checks a password against an encoded Argon2id hash.
// Hash format: $argon2id$v=19$m=65536,t=3,p=2$<salt_base64>$<hash_base64>
func verifyArgon2id(password, encodedHash string) bool {
	parts := strings.Split(encodedHash, "$")
	if len(parts) != 6 {
		log.Error("malformed Argon2id hash")
		return false
	}

	var memory uint32
	var iterations uint32
	var parallelism uint8
	_, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &memory, &iterations, &parallelism)
	if err != nil {
		log.WithError(err).Error("failed to parse Argon2id parameters")
		return false
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		log.WithError(err).Error("failed to decode Argon2id salt")
		return false
	}

	expectedHash, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil {
		log.WithError(err).Error("failed to decode Argon2id hash")
		return false
	}

	computedHash := argon2.IDKey([]byte(password), salt, iterations, memory, parallelism, uint32(len(expectedHash)))

	return subtle.ConstantTimeCompare(computedHash, expectedHash) == 1
}

// generateSecureToken makes a cryptographically random session token.
func generateSecureToken() string {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return fmt.Sprintf("fallback-%d", time.Now().UnixNano())
	}
	return base64.URLEncoding.EncodeToString(b)
}
