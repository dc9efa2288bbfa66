package repository

import (
	"context"
	"errors"

	"warbler/internal/models"
	"warbler/internal/observability"

	"gorm.io/gorm"
)

// WarbleRepository defines the interface for warble data operations
type WarbleRepository interface {
	Create(ctx context.Context, warble *models.Warble) error
	GetByID(ctx context.Context, id uint, currentUserID uint) (*models.Warble, error)
	GetByUserID(ctx context.Context, userID uint, limit int, currentUserID uint) ([]*models.Warble, error)
	Feed(ctx context.Context, userID uint, limit int) ([]*models.Warble, error)
	Delete(ctx context.Context, id uint) error
}

// warbleRepository implements WarbleRepository
type warbleRepository struct {
	db *gorm.DB
}

// NewWarbleRepository creates a new warble repository
func NewWarbleRepository(db *gorm.DB) WarbleRepository {
	return &warbleRepository{db: db}
}

// applyWarbleDetails adds subqueries to fetch the like count and liked status
// in a single query.
func (r *warbleRepository) applyWarbleDetails(db *gorm.DB, currentUserID uint) *gorm.DB {
	selectQuery := "warbles.*, " +
		"(SELECT COUNT(*) FROM likes WHERE likes.warble_id = warbles.id) as likes_count"

	if currentUserID != 0 {
		return db.Select(selectQuery+", EXISTS(SELECT 1 FROM likes WHERE likes.warble_id = warbles.id AND likes.user_id = ?) as liked", currentUserID)
	}
	return db.Select(selectQuery)
}

func (r *warbleRepository) Create(ctx context.Context, warble *models.Warble) error {
	defer observability.TrackQuery("create", "warbles")()
	if err := r.db.WithContext(ctx).Create(warble).Error; err != nil {
		return models.NewInternalError(err)
	}
	observability.WarblesPosted.Inc()
	return nil
}

// GetByID loads a warble with its like details. The liked flag depends on the
// viewer, so the row is never cached.
func (r *warbleRepository) GetByID(ctx context.Context, id uint, currentUserID uint) (*models.Warble, error) {
	var warble models.Warble

	if err := r.applyWarbleDetails(r.db.WithContext(ctx), currentUserID).
		Preload("User").
		First(&warble, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Warble", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &warble, nil
}

func (r *warbleRepository) GetByUserID(ctx context.Context, userID uint, limit int, currentUserID uint) ([]*models.Warble, error) {
	var warbles []*models.Warble
	if limit <= 0 || limit > 100 {
		limit = 100
	}

	if err := r.applyWarbleDetails(r.db.WithContext(ctx), currentUserID).
		Preload("User").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&warbles).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return warbles, nil
}

// Feed returns the newest warbles authored by users that userID follows,
// plus userID's own, newest first.
func (r *warbleRepository) Feed(ctx context.Context, userID uint, limit int) ([]*models.Warble, error) {
	defer observability.TrackQuery("feed", "warbles")()

	var warbles []*models.Warble
	if limit <= 0 || limit > 100 {
		limit = 100
	}

	followed := r.db.Model(&models.Follow{}).
		Select("followed_id").
		Where("follower_id = ?", userID)

	if err := r.applyWarbleDetails(r.db.WithContext(ctx), userID).
		Preload("User").
		Where("user_id IN (?) OR user_id = ?", followed, userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&warbles).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return warbles, nil
}

func (r *warbleRepository) Delete(ctx context.Context, id uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Like edges go with the warble so no orphans remain.
		if err := tx.Where("warble_id = ?", id).Delete(&models.Like{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Warble{}, id).Error
	})
	if err != nil {
		return models.NewInternalError(err)
	}
	return nil
}
