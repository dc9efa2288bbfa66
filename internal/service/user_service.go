package service

import (
	"context"

	"warbler/internal/models"
	"warbler/internal/repository"
)

// UserService provides read-side user operations.
type UserService struct {
	userRepo repository.UserRepository
}

// NewUserService returns a new UserService.
func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// Search lists users whose username contains query; an empty query lists all.
func (s *UserService) Search(ctx context.Context, query string, limit, offset int) ([]models.User, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	return s.userRepo.Search(ctx, query, limit, offset)
}

// GetByID returns the bare user record.
func (s *UserService) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.userRepo.GetByID(ctx, id)
}
