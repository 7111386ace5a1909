package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/gatherly/gatherly-api/internal/domain"
	"github.com/gatherly/gatherly-api/internal/repository"
)

var (
	ErrRatingNotFound  = repository.ErrRatingNotFound
	ErrRatingOutOfBand = errors.New("rating must be between 1 and 5")
	ErrSelfRating      = errors.New("a user cannot rate themselves")
)

type RatingRepository interface {
	FindByRatedUser(ctx context.Context, ratedUserID uint) ([]domain.Rating, error)
	Create(ctx context.Context, rating domain.Rating) (domain.Rating, error)
	Update(ctx context.Context, ratedUserID, ratedByID uint, rating int, reason string) (domain.Rating, error)
	Delete(ctx context.Context, ratedUserID, ratedByID uint) error
}

type RatingUserRepository interface {
	FindByID(ctx context.Context, id uint) (domain.User, error)
}

type RatingService struct {
	repo     RatingRepository
	userRepo RatingUserRepository
}

func NewRatingService(repo RatingRepository, userRepo RatingUserRepository) *RatingService {
	return &RatingService{
		repo:     repo,
		userRepo: userRepo,
	}
}

func (s *RatingService) ListForUser(ctx context.Context, ratedUserID uint) ([]domain.Rating, error) {
	if _, err := s.userRepo.FindByID(ctx, ratedUserID); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) || errors.Is(err, repository.ErrUserDeleted) {
			return nil, err
		}

		return nil, fmt.Errorf("s.userRepo.FindByID -> %w", err)
	}

	ratings, err := s.repo.FindByRatedUser(ctx, ratedUserID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindByRatedUser -> %w", err)
	}

	return ratings, nil
}

// Rate records a 1..5 rating of one user by another. Self-rating and
// rating missing or deleted users are rejected.
func (s *RatingService) Rate(ctx context.Context, rating domain.Rating) (domain.Rating, error) {
	if rating.Rating < 1 || rating.Rating > 5 {
		return domain.Rating{}, ErrRatingOutOfBand
	}
	if rating.RatedUserID == rating.RatedByID {
		return domain.Rating{}, ErrSelfRating
	}

	if _, err := s.userRepo.FindByID(ctx, rating.RatedUserID); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) || errors.Is(err, repository.ErrUserDeleted) {
			return domain.Rating{}, err
		}

		return domain.Rating{}, fmt.Errorf("s.userRepo.FindByID -> %w", err)
	}

	created, err := s.repo.Create(ctx, rating)
	if err != nil {
		return domain.Rating{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}

func (s *RatingService) Update(ctx context.Context, ratedUserID, ratedByID uint, rating int, reason string) (domain.Rating, error) {
	if rating < 1 || rating > 5 {
		return domain.Rating{}, ErrRatingOutOfBand
	}

	updated, err := s.repo.Update(ctx, ratedUserID, ratedByID, rating, reason)
	if err != nil {
		if errors.Is(err, repository.ErrRatingNotFound) {
			return domain.Rating{}, ErrRatingNotFound
		}

		return domain.Rating{}, fmt.Errorf("s.repo.Update -> %w", err)
	}

	return updated, nil
}

func (s *RatingService) Delete(ctx context.Context, ratedUserID, ratedByID uint) error {
	if err := s.repo.Delete(ctx, ratedUserID, ratedByID); err != nil {
		if errors.Is(err, repository.ErrRatingNotFound) {
			return ErrRatingNotFound
		}

		return fmt.Errorf("s.repo.Delete -> %w", err)
	}

	return nil
}
