package repository

import (
	"context"
	"fmt"

	"github.com/gatherly/gatherly-api/internal/domain"
	"github.com/gatherly/gatherly-api/internal/repository/dao"
)

var (
	ErrUserExists   = dao.ErrUserExists
	ErrUserNotFound = dao.ErrUserNotFound
	ErrUserDeleted  = dao.ErrUserDeleted
)

type UserDAO interface {
	Insert(ctx context.Context, user dao.User) (dao.User, error)
	FindByID(ctx context.Context, id uint) (dao.User, error)
	FindByUsername(ctx context.Context, username string) (dao.User, error)
	FindActiveNonAdmins(ctx context.Context) ([]dao.User, error)
	UpdateFields(ctx context.Context, id uint, changes map[string]interface{}) (dao.User, error)
	UpdatePassword(ctx context.Context, id uint, hashedPassword string) error
	SoftDelete(ctx context.Context, id uint) error
	CountActive(ctx context.Context) (int64, error)
	FindEventsCounts(ctx context.Context, ids []uint) (map[uint]int64, error)
	FindAverageRatings(ctx context.Context, ids []uint) (map[uint]float64, error)
}

type UserRepository struct {
	dao UserDAO
}

func NewUserRepository(dao UserDAO) *UserRepository {
	return &UserRepository{
		dao: dao,
	}
}

func (r *UserRepository) Create(ctx context.Context, user domain.User) (domain.User, error) {
	created, err := r.dao.Insert(ctx, dao.User{
		Username:  user.Username,
		Email:     user.Email,
		Password:  user.Password,
		FirstName: user.FirstName,
		IsAdmin:   false,
	})
	if err != nil {
		return domain.User{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return userDaoToDomain(created), nil
}

func (r *UserRepository) FindByID(ctx context.Context, id uint) (domain.User, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.User{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return userDaoToDomain(found), nil
}

func (r *UserRepository) FindByUsername(ctx context.Context, username string) (domain.User, error) {
	found, err := r.dao.FindByUsername(ctx, username)
	if err != nil {
		return domain.User{}, fmt.Errorf("r.dao.FindByUsername -> %w", err)
	}

	return userDaoToDomain(found), nil
}

// FindProfiles enriches users with their derived aggregates.
func (r *UserRepository) FindProfiles(ctx context.Context, ids []uint) ([]domain.Profile, error) {
	profiles := make([]domain.Profile, 0, len(ids))
	if len(ids) == 0 {
		return profiles, nil
	}

	eventsCounts, err := r.dao.FindEventsCounts(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindEventsCounts -> %w", err)
	}

	averageRatings, err := r.dao.FindAverageRatings(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindAverageRatings -> %w", err)
	}

	for _, id := range ids {
		user, err := r.dao.FindByID(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("r.dao.FindByID -> %w", err)
		}

		profiles = append(profiles, domain.Profile{
			User:          userDaoToDomain(user),
			EventsCount:   eventsCounts[id],
			AverageRating: averageRatings[id],
		})
	}

	return profiles, nil
}

func (r *UserRepository) FindActiveNonAdmins(ctx context.Context) ([]domain.User, error) {
	found, err := r.dao.FindActiveNonAdmins(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindActiveNonAdmins -> %w", err)
	}

	users := make([]domain.User, 0, len(found))
	for _, u := range found {
		users = append(users, userDaoToDomain(u))
	}

	return users, nil
}

func (r *UserRepository) UpdateFields(ctx context.Context, id uint, changes map[string]interface{}) (domain.User, error) {
	updated, err := r.dao.UpdateFields(ctx, id, changes)
	if err != nil {
		return domain.User{}, fmt.Errorf("r.dao.UpdateFields -> %w", err)
	}

	return userDaoToDomain(updated), nil
}

func (r *UserRepository) UpdatePassword(ctx context.Context, id uint, hashedPassword string) error {
	if err := r.dao.UpdatePassword(ctx, id, hashedPassword); err != nil {
		return fmt.Errorf("r.dao.UpdatePassword -> %w", err)
	}

	return nil
}

func (r *UserRepository) SoftDelete(ctx context.Context, id uint) error {
	if err := r.dao.SoftDelete(ctx, id); err != nil {
		return fmt.Errorf("r.dao.SoftDelete -> %w", err)
	}

	return nil
}

func (r *UserRepository) CountActive(ctx context.Context) (int64, error) {
	count, err := r.dao.CountActive(ctx)
	if err != nil {
		return 0, fmt.Errorf("r.dao.CountActive -> %w", err)
	}

	return count, nil
}

func userDaoToDomain(u dao.User) domain.User {
	return domain.User{
		ID:            u.ID,
		Username:      u.Username,
		Email:         u.Email,
		Password:      u.Password,
		FirstName:     u.FirstName,
		Bio:           u.Bio,
		ProfilePicKey: u.ProfilePicKey,
		IsAdmin:       u.IsAdmin,
		CreatedAt:     u.CreatedAt,
		UpdatedAt:     u.UpdatedAt,
	}
}
