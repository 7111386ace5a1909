package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

var ErrFeedbackNotFound = errors.New("feedback not found")

type EventFeedback struct {
	ID uint `gorm:"primaryKey"`

	EventID uint `gorm:"index;not null"`
	UserID  uint `gorm:"index;not null"`
	User    User `gorm:"foreignKey:UserID"`

	Rating   int `gorm:"not null"`
	Comments string

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type FeedbackDAO struct {
	db *gorm.DB
}

func NewFeedbackDAO(db *gorm.DB) *FeedbackDAO {
	return &FeedbackDAO{
		db: db,
	}
}

// FindByEventID returns feedback for an event with the author preloaded,
// best first. Feedback by soft-deleted users is excluded.
func (d *FeedbackDAO) FindByEventID(ctx context.Context, eventID uint) ([]EventFeedback, error) {
	var feedbacks []EventFeedback

	result := d.db.WithContext(ctx).Preload("User").
		Joins("JOIN users ON users.id = event_feedbacks.user_id AND users.deleted_at IS NULL").
		Where("event_feedbacks.event_id = ?", eventID).
		Order("event_feedbacks.rating DESC").
		Find(&feedbacks)
	if result.Error != nil {
		return nil, result.Error
	}

	return feedbacks, nil
}

func (d *FeedbackDAO) Insert(ctx context.Context, feedback EventFeedback) (EventFeedback, error) {
	result := d.db.WithContext(ctx).Create(&feedback)
	if result.Error != nil {
		return EventFeedback{}, result.Error
	}

	return feedback, nil
}

func (d *FeedbackDAO) Update(ctx context.Context, eventID, userID uint, rating int, comments string) (EventFeedback, error) {
	result := d.db.WithContext(ctx).Model(&EventFeedback{}).
		Where("event_id = ? AND user_id = ?", eventID, userID).
		Updates(map[string]interface{}{
			"rating":   rating,
			"comments": comments,
		})
	if result.Error != nil {
		return EventFeedback{}, result.Error
	}
	if result.RowsAffected == 0 {
		return EventFeedback{}, ErrFeedbackNotFound
	}

	var updated EventFeedback
	if err := d.db.WithContext(ctx).
		First(&updated, "event_id = ? AND user_id = ?", eventID, userID).Error; err != nil {
		return EventFeedback{}, err
	}

	return updated, nil
}

func (d *FeedbackDAO) Delete(ctx context.Context, eventID, userID uint) error {
	result := d.db.WithContext(ctx).
		Where("event_id = ? AND user_id = ?", eventID, userID).
		Delete(&EventFeedback{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrFeedbackNotFound
	}

	return nil
}
