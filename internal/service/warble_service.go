package service

import (
	"context"
	"strings"

	"warbler/internal/models"
	"warbler/internal/repository"
)

// WarbleService provides warble business logic.
type WarbleService struct {
	warbleRepo repository.WarbleRepository
	userRepo   repository.UserRepository
}

// NewWarbleService returns a new WarbleService.
func NewWarbleService(warbleRepo repository.WarbleRepository, userRepo repository.UserRepository) *WarbleService {
	return &WarbleService{warbleRepo: warbleRepo, userRepo: userRepo}
}

// Post creates a warble authored by userID.
func (s *WarbleService) Post(ctx context.Context, userID uint, text string) (*models.Warble, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, models.NewValidationError("Warble text must not be empty")
	}
	if len(text) > models.MaxWarbleLength {
		return nil, models.NewValidationError("Warble text must be 140 characters or fewer")
	}

	warble := &models.Warble{Text: text, UserID: userID}
	if err := s.warbleRepo.Create(ctx, warble); err != nil {
		return nil, err
	}
	return s.warbleRepo.GetByID(ctx, warble.ID, userID)
}

// Get returns the warble with like details as seen by currentUserID.
// currentUserID is zero for anonymous viewers.
func (s *WarbleService) Get(ctx context.Context, id, currentUserID uint) (*models.Warble, error) {
	return s.warbleRepo.GetByID(ctx, id, currentUserID)
}

// Delete removes a warble. Only the author may delete it.
func (s *WarbleService) Delete(ctx context.Context, actorID, warbleID uint) error {
	warble, err := s.warbleRepo.GetByID(ctx, warbleID, actorID)
	if err != nil {
		return err
	}
	if warble.UserID != actorID {
		return models.NewForbiddenError("You can only delete your own warbles")
	}
	return s.warbleRepo.Delete(ctx, warbleID)
}

// Feed returns the newest warbles from users followed by userID plus the
// user's own, at most 100.
func (s *WarbleService) Feed(ctx context.Context, userID uint) ([]*models.Warble, error) {
	return s.warbleRepo.Feed(ctx, userID, 100)
}

// RecentByUser returns the user's newest warbles, at most 100, with like
// details as seen by viewerID.
func (s *WarbleService) RecentByUser(ctx context.Context, userID, viewerID uint) ([]*models.Warble, error) {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return nil, err
	}
	return s.warbleRepo.GetByUserID(ctx, userID, 100, viewerID)
}
