package service

import (
	"context"

	"warbler/internal/models"
	"warbler/internal/repository"
)

// FollowService provides follow-edge business logic.
type FollowService struct {
	followRepo repository.FollowRepository
	userRepo   repository.UserRepository
}

// NewFollowService returns a new FollowService.
func NewFollowService(followRepo repository.FollowRepository, userRepo repository.UserRepository) *FollowService {
	return &FollowService{followRepo: followRepo, userRepo: userRepo}
}

// Follow makes actorID follow targetID. Following an already-followed user is
// a no-op; following yourself is rejected.
func (s *FollowService) Follow(ctx context.Context, actorID, targetID uint) error {
	if actorID == targetID {
		return models.NewForbiddenError("You cannot follow yourself")
	}
	if _, err := s.userRepo.GetByID(ctx, targetID); err != nil {
		return err
	}
	return s.followRepo.Create(ctx, actorID, targetID)
}

// Unfollow removes the follow edge from actorID to targetID. Removing a
// missing edge is a no-op.
func (s *FollowService) Unfollow(ctx context.Context, actorID, targetID uint) error {
	if _, err := s.userRepo.GetByID(ctx, targetID); err != nil {
		return err
	}
	return s.followRepo.Delete(ctx, actorID, targetID)
}

// IsFollowing reports whether followerID follows followedID.
func (s *FollowService) IsFollowing(ctx context.Context, followerID, followedID uint) (bool, error) {
	return s.followRepo.Exists(ctx, followerID, followedID)
}

// Following lists the users that userID follows.
func (s *FollowService) Following(ctx context.Context, userID uint) ([]models.User, error) {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return nil, err
	}
	return s.followRepo.Following(ctx, userID)
}

// Followers lists the users following userID.
func (s *FollowService) Followers(ctx context.Context, userID uint) ([]models.User, error) {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return nil, err
	}
	return s.followRepo.Followers(ctx, userID)
}
