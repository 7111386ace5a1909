package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

var ErrRatingNotFound = errors.New("rating not found")

type UserRating struct {
	ID uint `gorm:"primaryKey"`

	RatedUserID uint `gorm:"index;not null"`
	RatedByID   uint `gorm:"index;not null"`
	RatedBy     User `gorm:"foreignKey:RatedByID"`

	Rating int `gorm:"not null"`
	Reason string

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type RatingDAO struct {
	db *gorm.DB
}

func NewRatingDAO(db *gorm.DB) *RatingDAO {
	return &RatingDAO{
		db: db,
	}
}

// FindByRatedUser returns ratings received by a user with the rater
// preloaded, best first. Ratings by soft-deleted raters are excluded.
func (d *RatingDAO) FindByRatedUser(ctx context.Context, ratedUserID uint) ([]UserRating, error) {
	var ratings []UserRating

	result := d.db.WithContext(ctx).Preload("RatedBy").
		Joins("JOIN users ON users.id = user_ratings.rated_by_id AND users.deleted_at IS NULL").
		Where("user_ratings.rated_user_id = ?", ratedUserID).
		Order("user_ratings.rating DESC").
		Find(&ratings)
	if result.Error != nil {
		return nil, result.Error
	}

	return ratings, nil
}

func (d *RatingDAO) Insert(ctx context.Context, rating UserRating) (UserRating, error) {
	result := d.db.WithContext(ctx).Create(&rating)
	if result.Error != nil {
		return UserRating{}, result.Error
	}

	return rating, nil
}

func (d *RatingDAO) Update(ctx context.Context, ratedUserID, ratedByID uint, rating int, reason string) (UserRating, error) {
	result := d.db.WithContext(ctx).Model(&UserRating{}).
		Where("rated_user_id = ? AND rated_by_id = ?", ratedUserID, ratedByID).
		Updates(map[string]interface{}{
			"rating": rating,
			"reason": reason,
		})
	if result.Error != nil {
		return UserRating{}, result.Error
	}
	if result.RowsAffected == 0 {
		return UserRating{}, ErrRatingNotFound
	}

	var updated UserRating
	if err := d.db.WithContext(ctx).
		First(&updated, "rated_user_id = ? AND rated_by_id = ?", ratedUserID, ratedByID).Error; err != nil {
		return UserRating{}, err
	}

	return updated, nil
}

func (d *RatingDAO) Delete(ctx context.Context, ratedUserID, ratedByID uint) error {
	result := d.db.WithContext(ctx).
		Where("rated_user_id = ? AND rated_by_id = ?", ratedUserID, ratedByID).
		Delete(&UserRating{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrRatingNotFound
	}

	return nil
}
