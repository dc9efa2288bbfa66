// Package service contains the business logic for the Warbler application.
package service

import (
	"context"

	"warbler/internal/models"
	"warbler/internal/repository"
	"warbler/internal/validation"

	"golang.org/x/crypto/bcrypt"
)

// SessionManager is the subset of the session store the auth service needs.
type SessionManager interface {
	DestroyAllForUser(ctx context.Context, userID uint) error
}

// AuthService handles signup, credential checks and account lifecycle.
type AuthService struct {
	userRepo repository.UserRepository
	sessions SessionManager
}

// NewAuthService returns a new AuthService.
func NewAuthService(userRepo repository.UserRepository, sessions SessionManager) *AuthService {
	return &AuthService{userRepo: userRepo, sessions: sessions}
}

// SignupInput carries the fields accepted at registration.
type SignupInput struct {
	Username string
	Email    string
	Password string
	ImageURL string
}

// EditProfileInput carries the profile fields a user may change. Password is
// the user's current password, required to confirm the edit.
type EditProfileInput struct {
	UserID         uint
	Username       string
	Email          string
	ImageURL       string
	HeaderImageURL string
	Bio            string
	Location       string
	Password       string
}

// Signup registers a new user with a hashed password and returns it.
func (s *AuthService) Signup(ctx context.Context, in SignupInput) (*models.User, error) {
	if err := validation.ValidateUsername(in.Username); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidateEmail(in.Email); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidatePassword(in.Password); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	user := &models.User{
		Username: in.Username,
		Email:    in.Email,
		Password: string(hash),
		ImageURL: in.ImageURL,
	}
	if user.ImageURL == "" {
		user.ImageURL = models.DefaultImageURL
	}
	user.HeaderImageURL = models.DefaultHeaderImageURL

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Authenticate verifies username and password and returns the matching user.
// Unknown usernames and wrong passwords are indistinguishable to the caller.
func (s *AuthService) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, models.NewUnauthorizedError("Invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, models.NewUnauthorizedError("Invalid credentials")
	}
	return user, nil
}

// EditProfile updates the user's profile after re-checking their password.
func (s *AuthService) EditProfile(ctx context.Context, in EditProfileInput) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, in.UserID)
	if err != nil {
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(in.Password)); err != nil {
		return nil, models.NewUnauthorizedError("Invalid password")
	}

	if in.Username != "" {
		if err := validation.ValidateUsername(in.Username); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		user.Username = in.Username
	}
	if in.Email != "" {
		if err := validation.ValidateEmail(in.Email); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		user.Email = in.Email
	}
	if in.ImageURL != "" {
		user.ImageURL = in.ImageURL
	}
	if in.HeaderImageURL != "" {
		user.HeaderImageURL = in.HeaderImageURL
	}
	user.Bio = in.Bio
	user.Location = in.Location

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// ChangePassword replaces the user's password after verifying the current one.
func (s *AuthService) ChangePassword(ctx context.Context, userID uint, current, newPassword, confirm string) error {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(current)); err != nil {
		return models.NewUnauthorizedError("Current password is incorrect")
	}
	if newPassword != confirm {
		return models.NewValidationError("New passwords do not match")
	}
	if err := validation.ValidatePassword(newPassword); err != nil {
		return models.NewValidationError(err.Error())
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return models.NewInternalError(err)
	}

	user.Password = string(hash)
	return s.userRepo.Update(ctx, user)
}

// DeleteAccount removes the user and everything referencing it, then revokes
// every live session so stale cookies stop resolving.
func (s *AuthService) DeleteAccount(ctx context.Context, userID uint) error {
	if err := s.userRepo.DeleteCascade(ctx, userID); err != nil {
		return err
	}
	return s.sessions.DestroyAllForUser(ctx, userID)
}
