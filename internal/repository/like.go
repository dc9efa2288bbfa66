package repository

import (
	"context"

	"warbler/internal/models"
	"warbler/internal/observability"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// LikeRepository defines the interface for like-edge data operations
type LikeRepository interface {
	Toggle(ctx context.Context, userID, warbleID uint) (bool, error)
	Exists(ctx context.Context, userID, warbleID uint) (bool, error)
	LikedWarbles(ctx context.Context, userID uint) ([]*models.Warble, error)
}

// likeRepository implements LikeRepository
type likeRepository struct {
	db *gorm.DB
}

// NewLikeRepository creates a new like repository
func NewLikeRepository(db *gorm.DB) LikeRepository {
	return &likeRepository{db: db}
}

// Toggle flips the like state of (userID, warbleID) in a single transaction
// and reports whether the warble is liked afterwards. The delete-then-insert
// order plus the composite primary key keeps concurrent toggles from the same
// user from ever producing a duplicate edge.
func (r *likeRepository) Toggle(ctx context.Context, userID, warbleID uint) (bool, error) {
	defer observability.TrackQuery("toggle", "likes")()

	var liked bool
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("user_id = ? AND warble_id = ?", userID, warbleID).
			Delete(&models.Like{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected > 0 {
			liked = false
			return nil
		}

		like := models.Like{UserID: userID, WarbleID: warbleID}
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&like).Error; err != nil {
			return err
		}
		liked = true
		return nil
	})
	if err != nil {
		return false, models.NewInternalError(err)
	}

	if liked {
		observability.LikeToggles.WithLabelValues("liked").Inc()
	} else {
		observability.LikeToggles.WithLabelValues("unliked").Inc()
	}
	return liked, nil
}

func (r *likeRepository) Exists(ctx context.Context, userID, warbleID uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Like{}).
		Where("user_id = ? AND warble_id = ?", userID, warbleID).
		Count(&count).Error; err != nil {
		return false, models.NewInternalError(err)
	}
	return count > 0, nil
}

// LikedWarbles returns the warbles liked by userID, most recently liked first.
func (r *likeRepository) LikedWarbles(ctx context.Context, userID uint) ([]*models.Warble, error) {
	var warbles []*models.Warble
	if err := r.db.WithContext(ctx).
		Model(&models.Warble{}).
		Select("warbles.*, "+
			"(SELECT COUNT(*) FROM likes WHERE likes.warble_id = warbles.id) as likes_count").
		Joins("JOIN likes l ON l.warble_id = warbles.id").
		Where("l.user_id = ?", userID).
		Preload("User").
		Order("l.created_at DESC").
		Find(&warbles).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	for _, w := range warbles {
		w.Liked = true
	}
	return warbles, nil
}
