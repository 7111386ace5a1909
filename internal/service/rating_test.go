package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gatherly/gatherly-api/internal/domain"
	"github.com/gatherly/gatherly-api/internal/repository"
)

type fakeRatingRepo struct {
	created *domain.Rating
}

func (f *fakeRatingRepo) FindByRatedUser(context.Context, uint) ([]domain.Rating, error) {
	return []domain.Rating{}, nil
}

func (f *fakeRatingRepo) Create(_ context.Context, rating domain.Rating) (domain.Rating, error) {
	f.created = &rating

	return rating, nil
}

func (f *fakeRatingRepo) Update(_ context.Context, ratedUserID, ratedByID uint, rating int, reason string) (domain.Rating, error) {
	return domain.Rating{RatedUserID: ratedUserID, RatedByID: ratedByID, Rating: rating, Reason: reason}, nil
}

func (f *fakeRatingRepo) Delete(context.Context, uint, uint) error { return nil }

type fakeRatingUserRepo struct {
	deletedIDs map[uint]bool
	missingIDs map[uint]bool
}

func (f *fakeRatingUserRepo) FindByID(_ context.Context, id uint) (domain.User, error) {
	if f.deletedIDs[id] {
		return domain.User{}, repository.ErrUserDeleted
	}
	if f.missingIDs[id] {
		return domain.User{}, repository.ErrUserNotFound
	}

	return domain.User{ID: id}, nil
}

func TestRatingServiceRate(t *testing.T) {
	t.Run("rejects ratings outside 1..5", func(t *testing.T) {
		svc := NewRatingService(&fakeRatingRepo{}, &fakeRatingUserRepo{})

		for _, rating := range []int{0, 6, -1} {
			_, err := svc.Rate(context.Background(), domain.Rating{RatedUserID: 1, RatedByID: 2, Rating: rating})
			assert.ErrorIs(t, err, ErrRatingOutOfBand)
		}
	})

	t.Run("rejects self-rating", func(t *testing.T) {
		svc := NewRatingService(&fakeRatingRepo{}, &fakeRatingUserRepo{})

		_, err := svc.Rate(context.Background(), domain.Rating{RatedUserID: 5, RatedByID: 5, Rating: 4})

		assert.ErrorIs(t, err, ErrSelfRating)
	})

	t.Run("rejects rating a missing user", func(t *testing.T) {
		users := &fakeRatingUserRepo{missingIDs: map[uint]bool{9: true}}
		svc := NewRatingService(&fakeRatingRepo{}, users)

		_, err := svc.Rate(context.Background(), domain.Rating{RatedUserID: 9, RatedByID: 2, Rating: 4})

		assert.ErrorIs(t, err, ErrUserNotFound)
	})

	t.Run("rejects rating a deleted user", func(t *testing.T) {
		users := &fakeRatingUserRepo{deletedIDs: map[uint]bool{9: true}}
		svc := NewRatingService(&fakeRatingRepo{}, users)

		_, err := svc.Rate(context.Background(), domain.Rating{RatedUserID: 9, RatedByID: 2, Rating: 4})

		assert.ErrorIs(t, err, ErrUserDeleted)
	})

	t.Run("persists a valid rating", func(t *testing.T) {
		repo := &fakeRatingRepo{}
		svc := NewRatingService(repo, &fakeRatingUserRepo{})

		created, err := svc.Rate(context.Background(), domain.Rating{
			RatedUserID: 1,
			RatedByID:   2,
			Rating:      5,
			Reason:      "great organizer",
		})

		require.NoError(t, err)
		require.NotNil(t, repo.created)
		assert.Equal(t, 5, created.Rating)
	})
}

func TestRatingServiceUpdate(t *testing.T) {
	svc := NewRatingService(&fakeRatingRepo{}, &fakeRatingUserRepo{})

	_, err := svc.Update(context.Background(), 1, 2, 0, "")
	assert.ErrorIs(t, err, ErrRatingOutOfBand)

	updated, err := svc.Update(context.Background(), 1, 2, 3, "changed my mind")
	require.NoError(t, err)
	assert.Equal(t, 3, updated.Rating)
}
