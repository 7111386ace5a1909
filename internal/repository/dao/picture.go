package dao

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

var ErrPictureNotFound = errors.New("picture not found")

type PictureDAO struct {
	db *gorm.DB
}

func NewPictureDAO(db *gorm.DB) *PictureDAO {
	return &PictureDAO{
		db: db,
	}
}

func (d *PictureDAO) FindByEventID(ctx context.Context, eventID uint) ([]EventPicture, error) {
	var pictures []EventPicture

	result := d.db.WithContext(ctx).Where("event_id = ?", eventID).Find(&pictures)
	if result.Error != nil {
		return nil, result.Error
	}

	return pictures, nil
}

func (d *PictureDAO) FindByID(ctx context.Context, id uint) (EventPicture, error) {
	var picture EventPicture

	result := d.db.WithContext(ctx).First(&picture, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return EventPicture{}, ErrPictureNotFound
		}

		return EventPicture{}, result.Error
	}

	return picture, nil
}

func (d *PictureDAO) Insert(ctx context.Context, pictures []EventPicture) ([]EventPicture, error) {
	result := d.db.WithContext(ctx).Create(&pictures)
	if result.Error != nil {
		return nil, result.Error
	}

	return pictures, nil
}

func (d *PictureDAO) Delete(ctx context.Context, id uint) error {
	return d.db.WithContext(ctx).Delete(&EventPicture{}, id).Error
}
