package service

import (
	"context"

	"warbler/internal/models"
	"warbler/internal/repository"
)

// LikeService provides like-edge business logic.
type LikeService struct {
	likeRepo   repository.LikeRepository
	warbleRepo repository.WarbleRepository
}

// NewLikeService returns a new LikeService.
func NewLikeService(likeRepo repository.LikeRepository, warbleRepo repository.WarbleRepository) *LikeService {
	return &LikeService{likeRepo: likeRepo, warbleRepo: warbleRepo}
}

// Toggle flips actorID's like on warbleID and reports the resulting state.
// Users cannot like their own warbles.
func (s *LikeService) Toggle(ctx context.Context, actorID, warbleID uint) (bool, error) {
	warble, err := s.warbleRepo.GetByID(ctx, warbleID, actorID)
	if err != nil {
		return false, err
	}
	if warble.UserID == actorID {
		return false, models.NewForbiddenError("You cannot like your own warble")
	}
	return s.likeRepo.Toggle(ctx, actorID, warbleID)
}

// LikedBy returns the warbles userID has liked, most recently liked first.
func (s *LikeService) LikedBy(ctx context.Context, userID uint) ([]*models.Warble, error) {
	return s.likeRepo.LikedWarbles(ctx, userID)
}
