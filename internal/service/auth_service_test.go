package service

import (
	"context"
	"errors"
	"testing"

	"warbler/internal/models"

	"golang.org/x/crypto/bcrypt"
)

func mustHash(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatal(err)
	}
	return string(hash)
}

func assertCode(t *testing.T, err error, code string) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %s error, got nil", code)
	}
	var appErr *models.AppError
	if !errors.As(err, &appErr) || appErr.Code != code {
		t.Fatalf("expected %s app error, got %#v", code, err)
	}
}

func TestAuthServiceSignupHashesPassword(t *testing.T) {
	var created *models.User
	repo := noopUserRepo()
	repo.createFn = func(_ context.Context, user *models.User) error {
		created = user
		return nil
	}

	svc := NewAuthService(repo, noopSessionManager())
	user, err := svc.Signup(context.Background(), SignupInput{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "hunter22",
	})
	if err != nil {
		t.Fatal(err)
	}
	if created == nil {
		t.Fatal("user was not persisted")
	}
	if user.Password == "hunter22" {
		t.Fatal("password stored in plaintext")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("hunter22")); err != nil {
		t.Fatalf("stored hash does not verify: %v", err)
	}
	if user.ImageURL != models.DefaultImageURL {
		t.Fatalf("expected default image, got %q", user.ImageURL)
	}
	if user.HeaderImageURL != models.DefaultHeaderImageURL {
		t.Fatalf("expected default header image, got %q", user.HeaderImageURL)
	}
}

func TestAuthServiceSignupValidation(t *testing.T) {
	svc := NewAuthService(noopUserRepo(), noopSessionManager())

	tests := []struct {
		name string
		in   SignupInput
	}{
		{"short password", SignupInput{Username: "alice", Email: "a@example.com", Password: "abc"}},
		{"bad username", SignupInput{Username: "a!", Email: "a@example.com", Password: "hunter22"}},
		{"bad email", SignupInput{Username: "alice", Email: "not-an-email", Password: "hunter22"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Signup(context.Background(), tt.in)
			assertCode(t, err, models.CodeValidation)
		})
	}
}

func TestAuthServiceSignupDuplicateSurfacesConflict(t *testing.T) {
	repo := noopUserRepo()
	repo.createFn = func(context.Context, *models.User) error {
		return models.NewConflictError("Username or email already taken")
	}

	svc := NewAuthService(repo, noopSessionManager())
	_, err := svc.Signup(context.Background(), SignupInput{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "hunter22",
	})
	assertCode(t, err, models.CodeConflict)
}

func TestAuthServiceAuthenticate(t *testing.T) {
	repo := noopUserRepo()
	repo.getByUsernameFn = func(_ context.Context, username string) (*models.User, error) {
		if username != "alice" {
			return nil, nil
		}
		return &models.User{ID: 1, Username: "alice", Password: mustHash(t, "hunter22")}, nil
	}

	svc := NewAuthService(repo, noopSessionManager())

	user, err := svc.Authenticate(context.Background(), "alice", "hunter22")
	if err != nil {
		t.Fatal(err)
	}
	if user.ID != 1 {
		t.Fatalf("expected user 1, got %d", user.ID)
	}

	_, err = svc.Authenticate(context.Background(), "alice", "wrong")
	assertCode(t, err, models.CodeUnauthorized)

	// Unknown user looks identical to a wrong password.
	_, err = svc.Authenticate(context.Background(), "nobody", "hunter22")
	assertCode(t, err, models.CodeUnauthorized)
}

func TestAuthServiceEditProfileRequiresPassword(t *testing.T) {
	repo := noopUserRepo()
	repo.getByIDFn = func(_ context.Context, id uint) (*models.User, error) {
		return &models.User{ID: id, Username: "alice", Password: mustHash(t, "hunter22")}, nil
	}

	svc := NewAuthService(repo, noopSessionManager())
	_, err := svc.EditProfile(context.Background(), EditProfileInput{
		UserID:   1,
		Bio:      "new bio",
		Password: "wrong",
	})
	assertCode(t, err, models.CodeUnauthorized)
}

func TestAuthServiceEditProfileUpdatesFields(t *testing.T) {
	repo := noopUserRepo()
	repo.getByIDFn = func(_ context.Context, id uint) (*models.User, error) {
		return &models.User{
			ID:       id,
			Username: "alice",
			Email:    "alice@example.com",
			Bio:      "old bio",
			Password: mustHash(t, "hunter22"),
		}, nil
	}
	var saved *models.User
	repo.updateFn = func(_ context.Context, user *models.User) error {
		saved = user
		return nil
	}

	svc := NewAuthService(repo, noopSessionManager())
	user, err := svc.EditProfile(context.Background(), EditProfileInput{
		UserID:   1,
		Username: "alice2",
		Bio:      "new bio",
		Location: "the marsh",
		Password: "hunter22",
	})
	if err != nil {
		t.Fatal(err)
	}
	if saved == nil {
		t.Fatal("profile was not persisted")
	}
	if user.Username != "alice2" || user.Bio != "new bio" || user.Location != "the marsh" {
		t.Fatalf("unexpected profile state: %#v", user)
	}
	// Untouched fields survive.
	if user.Email != "alice@example.com" {
		t.Fatalf("email changed unexpectedly: %q", user.Email)
	}
}

func TestAuthServiceChangePassword(t *testing.T) {
	repo := noopUserRepo()
	repo.getByIDFn = func(_ context.Context, id uint) (*models.User, error) {
		return &models.User{ID: id, Password: mustHash(t, "hunter22")}, nil
	}
	var saved *models.User
	repo.updateFn = func(_ context.Context, user *models.User) error {
		saved = user
		return nil
	}

	svc := NewAuthService(repo, noopSessionManager())

	err := svc.ChangePassword(context.Background(), 1, "wrong", "newpassword", "newpassword")
	assertCode(t, err, models.CodeUnauthorized)

	err = svc.ChangePassword(context.Background(), 1, "hunter22", "newpassword", "different")
	assertCode(t, err, models.CodeValidation)

	err = svc.ChangePassword(context.Background(), 1, "hunter22", "abc", "abc")
	assertCode(t, err, models.CodeValidation)

	if err := svc.ChangePassword(context.Background(), 1, "hunter22", "newpassword", "newpassword"); err != nil {
		t.Fatal(err)
	}
	if saved == nil {
		t.Fatal("password change was not persisted")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(saved.Password), []byte("newpassword")); err != nil {
		t.Fatalf("new hash does not verify: %v", err)
	}
}

func TestAuthServiceDeleteAccountRevokesSessions(t *testing.T) {
	repo := noopUserRepo()
	var deleted uint
	repo.deleteCascadeFn = func(_ context.Context, id uint) error {
		deleted = id
		return nil
	}
	sessions := noopSessionManager()
	var revoked uint
	sessions.destroyAllFn = func(_ context.Context, userID uint) error {
		revoked = userID
		return nil
	}

	svc := NewAuthService(repo, sessions)
	if err := svc.DeleteAccount(context.Background(), 7); err != nil {
		t.Fatal(err)
	}
	if deleted != 7 || revoked != 7 {
		t.Fatalf("expected cascade delete and session revocation for user 7, got %d and %d", deleted, revoked)
	}
}

func TestAuthServiceDeleteAccountMissingUser(t *testing.T) {
	repo := noopUserRepo()
	repo.deleteCascadeFn = func(_ context.Context, id uint) error {
		return models.NewNotFoundError("User", id)
	}
	sessions := noopSessionManager()
	sessions.destroyAllFn = func(context.Context, uint) error {
		t.Fatal("sessions must not be touched when delete fails")
		return nil
	}

	svc := NewAuthService(repo, sessions)
	err := svc.DeleteAccount(context.Background(), 7)
	assertCode(t, err, models.CodeNotFound)
}
