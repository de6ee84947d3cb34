// Package seekers — service.go bootstraps identities. Account creation
// is the one place a journey profile comes into existence; the engine
// itself never creates profiles.
package seekers

import (
	"context"

	log "github.com/sirupsen/logrus"

	"github.com/noctua-labs/arcana-bot/internal/features/journey"
)

// Service manages seeker registration.
type Service struct {
	repo        *Repository
	journeyRepo *journey.Repository
	adminIDs    map[int64]bool
}

// NewService creates the seekers service. adminIDs come from config and
// are stamped onto rows at registration time.
func NewService(repo *Repository, journeyRepo *journey.Repository, adminIDs []int64) *Service {
	ids := make(map[int64]bool, len(adminIDs))
	for _, id := range adminIDs {
		ids[id] = true
	}
	return &Service{repo: repo, journeyRepo: journeyRepo, adminIDs: ids}
}

// EnsureSeeker registers the user on first contact and refreshes their
// identity on later ones. Also guarantees the zeroed journey profile
// exists, so every engine operation after this can assume one.
func (s *Service) EnsureSeeker(ctx context.Context, userID int64, username, firstName, lastName string) error {
	seeker := &Seeker{
		UserID:    userID,
		Username:  username,
		FirstName: firstName,
		LastName:  lastName,
		IsAdmin:   s.adminIDs[userID],
	}
	if err := s.repo.Upsert(ctx, seeker); err != nil {
		return err
	}
	if err := s.journeyRepo.Create(ctx, userID); err != nil {
		return err
	}

	log.WithFields(log.Fields{
		"user_id":  userID,
		"username": username,
	}).Debug("seeker ensured")
	return nil
}

// GetByUserID loads one seeker.
func (s *Service) GetByUserID(ctx context.Context, userID int64) (*Seeker, error) {
	return s.repo.GetByUserID(ctx, userID)
}

// IsAdmin reports whether the user is flagged as an administrator.
func (s *Service) IsAdmin(ctx context.Context, userID int64) bool {
	seeker, err := s.repo.GetByUserID(ctx, userID)
	return err == nil && seeker.IsAdmin
}

// List returns all non-blocked seekers.
func (s *Service) List(ctx context.Context) ([]*Seeker, error) {
	return s.repo.List(ctx)
}
