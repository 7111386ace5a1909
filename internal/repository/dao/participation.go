package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

var ErrNotParticipant = errors.New("user is not a participant")

type EventParticipant struct {
	ID uint `gorm:"primaryKey"`

	EventID uint `gorm:"index;not null"`
	UserID  uint `gorm:"index;not null"`

	DidAttend *bool

	CreatedAt time.Time `gorm:"not null"`
}

type ParticipationDAO struct {
	db *gorm.DB
}

func NewParticipationDAO(db *gorm.DB) *ParticipationDAO {
	return &ParticipationDAO{
		db: db,
	}
}

func (d *ParticipationDAO) FindByEventID(ctx context.Context, eventID uint) ([]EventParticipant, error) {
	var participants []EventParticipant

	result := d.db.WithContext(ctx).Where("event_id = ?", eventID).Find(&participants)
	if result.Error != nil {
		return nil, result.Error
	}

	return participants, nil
}

func (d *ParticipationDAO) CountByEventID(ctx context.Context, eventID uint) (int64, error) {
	var count int64

	result := d.db.WithContext(ctx).Model(&EventParticipant{}).
		Where("event_id = ?", eventID).
		Count(&count)
	if result.Error != nil {
		return 0, result.Error
	}

	return count, nil
}

func (d *ParticipationDAO) Exists(ctx context.Context, eventID, userID uint) (bool, error) {
	var count int64

	result := d.db.WithContext(ctx).Model(&EventParticipant{}).
		Where("event_id = ? AND user_id = ?", eventID, userID).
		Count(&count)
	if result.Error != nil {
		return false, result.Error
	}

	return count > 0, nil
}

func (d *ParticipationDAO) Insert(ctx context.Context, participant EventParticipant) (EventParticipant, error) {
	result := d.db.WithContext(ctx).Create(&participant)
	if result.Error != nil {
		return EventParticipant{}, result.Error
	}

	return participant, nil
}

func (d *ParticipationDAO) UpdateDidAttend(ctx context.Context, eventID, userID uint, didAttend bool) (EventParticipant, error) {
	result := d.db.WithContext(ctx).Model(&EventParticipant{}).
		Where("event_id = ? AND user_id = ?", eventID, userID).
		Update("did_attend", didAttend)
	if result.Error != nil {
		return EventParticipant{}, result.Error
	}
	if result.RowsAffected == 0 {
		return EventParticipant{}, ErrNotParticipant
	}

	var updated EventParticipant
	if err := d.db.WithContext(ctx).
		First(&updated, "event_id = ? AND user_id = ?", eventID, userID).Error; err != nil {
		return EventParticipant{}, err
	}

	return updated, nil
}

func (d *ParticipationDAO) Delete(ctx context.Context, eventID, userID uint) error {
	result := d.db.WithContext(ctx).
		Where("event_id = ? AND user_id = ?", eventID, userID).
		Delete(&EventParticipant{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotParticipant
	}

	return nil
}

// FindPendingEventStartTimes returns start times of non-deleted events the
// user joined whose attendance is still unset. Used for the same-day join
// check.
func (d *ParticipationDAO) FindPendingEventStartTimes(ctx context.Context, userID uint) ([]time.Time, error) {
	var startTimes []time.Time

	result := d.db.WithContext(ctx).Model(&Event{}).
		Joins("JOIN event_participants ON event_participants.event_id = events.id").
		Where("event_participants.user_id = ? AND event_participants.did_attend IS NULL", userID).
		Pluck("events.start_time", &startTimes)
	if result.Error != nil {
		return nil, result.Error
	}

	return startTimes, nil
}
