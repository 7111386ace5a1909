package repository

import (
	"context"
	"fmt"

	"github.com/gatherly/gatherly-api/internal/domain"
	"github.com/gatherly/gatherly-api/internal/repository/dao"
)

var ErrRatingNotFound = dao.ErrRatingNotFound

type RatingDAO interface {
	FindByRatedUser(ctx context.Context, ratedUserID uint) ([]dao.UserRating, error)
	Insert(ctx context.Context, rating dao.UserRating) (dao.UserRating, error)
	Update(ctx context.Context, ratedUserID, ratedByID uint, rating int, reason string) (dao.UserRating, error)
	Delete(ctx context.Context, ratedUserID, ratedByID uint) error
}

type RatingRepository struct {
	dao RatingDAO
}

func NewRatingRepository(dao RatingDAO) *RatingRepository {
	return &RatingRepository{
		dao: dao,
	}
}

func (r *RatingRepository) FindByRatedUser(ctx context.Context, ratedUserID uint) ([]domain.Rating, error) {
	found, err := r.dao.FindByRatedUser(ctx, ratedUserID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindByRatedUser -> %w", err)
	}

	ratings := make([]domain.Rating, 0, len(found))
	for _, rating := range found {
		ratings = append(ratings, ratingDaoToDomain(rating))
	}

	return ratings, nil
}

func (r *RatingRepository) Create(ctx context.Context, rating domain.Rating) (domain.Rating, error) {
	created, err := r.dao.Insert(ctx, dao.UserRating{
		RatedUserID: rating.RatedUserID,
		RatedByID:   rating.RatedByID,
		Rating:      rating.Rating,
		Reason:      rating.Reason,
	})
	if err != nil {
		return domain.Rating{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return ratingDaoToDomain(created), nil
}

func (r *RatingRepository) Update(ctx context.Context, ratedUserID, ratedByID uint, rating int, reason string) (domain.Rating, error) {
	updated, err := r.dao.Update(ctx, ratedUserID, ratedByID, rating, reason)
	if err != nil {
		return domain.Rating{}, fmt.Errorf("r.dao.Update -> %w", err)
	}

	return ratingDaoToDomain(updated), nil
}

func (r *RatingRepository) Delete(ctx context.Context, ratedUserID, ratedByID uint) error {
	if err := r.dao.Delete(ctx, ratedUserID, ratedByID); err != nil {
		return fmt.Errorf("r.dao.Delete -> %w", err)
	}

	return nil
}

func ratingDaoToDomain(r dao.UserRating) domain.Rating {
	return domain.Rating{
		RatedUserID: r.RatedUserID,
		RatedByID:   r.RatedByID,
		Rating:      r.Rating,
		Reason:      r.Reason,
		RatedBy:     userDaoToDomain(r.RatedBy),
	}
}
