package repository

import (
	"context"
	"fmt"

	"github.com/gatherly/gatherly-api/internal/domain"
	"github.com/gatherly/gatherly-api/internal/repository/dao"
)

var ErrPictureNotFound = dao.ErrPictureNotFound

type PictureDAO interface {
	FindByEventID(ctx context.Context, eventID uint) ([]dao.EventPicture, error)
	FindByID(ctx context.Context, id uint) (dao.EventPicture, error)
	Insert(ctx context.Context, pictures []dao.EventPicture) ([]dao.EventPicture, error)
	Delete(ctx context.Context, id uint) error
}

type PictureRepository struct {
	dao PictureDAO
}

func NewPictureRepository(dao PictureDAO) *PictureRepository {
	return &PictureRepository{
		dao: dao,
	}
}

func (r *PictureRepository) FindByEventID(ctx context.Context, eventID uint) ([]domain.EventPicture, error) {
	found, err := r.dao.FindByEventID(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindByEventID -> %w", err)
	}

	return picturesDaoToDomain(found), nil
}

func (r *PictureRepository) FindByID(ctx context.Context, id uint) (domain.EventPicture, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.EventPicture{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return domain.EventPicture{ID: found.ID, EventID: found.EventID, PicturePath: found.PicturePath}, nil
}

func (r *PictureRepository) Create(ctx context.Context, eventID uint, keys []string) ([]domain.EventPicture, error) {
	rows := make([]dao.EventPicture, 0, len(keys))
	for _, key := range keys {
		rows = append(rows, dao.EventPicture{EventID: eventID, PicturePath: key})
	}

	created, err := r.dao.Insert(ctx, rows)
	if err != nil {
		return nil, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return picturesDaoToDomain(created), nil
}

func (r *PictureRepository) Delete(ctx context.Context, id uint) error {
	if err := r.dao.Delete(ctx, id); err != nil {
		return fmt.Errorf("r.dao.Delete -> %w", err)
	}

	return nil
}
