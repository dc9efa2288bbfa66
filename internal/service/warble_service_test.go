package service

import (
	"context"
	"strings"
	"testing"

	"warbler/internal/models"
)

func TestWarbleServicePost(t *testing.T) {
	repo := noopWarbleRepo()
	var created *models.Warble
	repo.createFn = func(_ context.Context, warble *models.Warble) error {
		warble.ID = 42
		created = warble
		return nil
	}

	svc := NewWarbleService(repo, noopUserRepo())
	warble, err := svc.Post(context.Background(), 1, "  hello marsh  ")
	if err != nil {
		t.Fatal(err)
	}
	if created == nil {
		t.Fatal("warble was not persisted")
	}
	if created.Text != "hello marsh" {
		t.Fatalf("expected trimmed text, got %q", created.Text)
	}
	if created.UserID != 1 {
		t.Fatalf("expected author 1, got %d", created.UserID)
	}
	if warble.ID != 42 {
		t.Fatalf("expected reloaded warble, got %#v", warble)
	}
}

func TestWarbleServicePostRejectsEmpty(t *testing.T) {
	svc := NewWarbleService(noopWarbleRepo(), noopUserRepo())

	for _, text := range []string{"", "   ", "\n\t"} {
		_, err := svc.Post(context.Background(), 1, text)
		assertCode(t, err, models.CodeValidation)
	}
}

func TestWarbleServicePostRejectsOverlong(t *testing.T) {
	svc := NewWarbleService(noopWarbleRepo(), noopUserRepo())

	_, err := svc.Post(context.Background(), 1, strings.Repeat("x", models.MaxWarbleLength+1))
	assertCode(t, err, models.CodeValidation)

	// Exactly at the limit is fine.
	if _, err := svc.Post(context.Background(), 1, strings.Repeat("x", models.MaxWarbleLength)); err != nil {
		t.Fatal(err)
	}
}

func TestWarbleServiceDeleteOwnerOnly(t *testing.T) {
	repo := noopWarbleRepo()
	repo.getByIDFn = func(_ context.Context, id, _ uint) (*models.Warble, error) {
		return &models.Warble{ID: id, UserID: 1}, nil
	}
	deleted := false
	repo.deleteFn = func(context.Context, uint) error {
		deleted = true
		return nil
	}

	svc := NewWarbleService(repo, noopUserRepo())

	err := svc.Delete(context.Background(), 2, 10)
	assertCode(t, err, models.CodeForbidden)
	if deleted {
		t.Fatal("warble deleted by a non-owner")
	}

	if err := svc.Delete(context.Background(), 1, 10); err != nil {
		t.Fatal(err)
	}
	if !deleted {
		t.Fatal("owner delete did not reach the repository")
	}
}

func TestWarbleServiceDeleteMissing(t *testing.T) {
	repo := noopWarbleRepo()
	repo.getByIDFn = func(_ context.Context, id, _ uint) (*models.Warble, error) {
		return nil, models.NewNotFoundError("Warble", id)
	}

	svc := NewWarbleService(repo, noopUserRepo())
	err := svc.Delete(context.Background(), 1, 10)
	assertCode(t, err, models.CodeNotFound)
}

func TestWarbleServiceFeedCapsAtHundred(t *testing.T) {
	repo := noopWarbleRepo()
	var gotLimit int
	repo.feedFn = func(_ context.Context, _ uint, limit int) ([]*models.Warble, error) {
		gotLimit = limit
		return nil, nil
	}

	svc := NewWarbleService(repo, noopUserRepo())
	if _, err := svc.Feed(context.Background(), 1); err != nil {
		t.Fatal(err)
	}
	if gotLimit != 100 {
		t.Fatalf("expected feed limit 100, got %d", gotLimit)
	}
}

func TestWarbleServiceRecentByUserChecksExistence(t *testing.T) {
	userRepo := noopUserRepo()
	userRepo.getByIDFn = func(_ context.Context, id uint) (*models.User, error) {
		return nil, models.NewNotFoundError("User", id)
	}

	svc := NewWarbleService(noopWarbleRepo(), userRepo)
	_, err := svc.RecentByUser(context.Background(), 99, 1)
	assertCode(t, err, models.CodeNotFound)
}
