package service

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
	"golang.org/x/sync/errgroup"

	"github.com/gatherly/gatherly-api/internal/domain"
	"github.com/gatherly/gatherly-api/internal/repository"
)

// Columns a profile update may never touch.
var protectedUserColumns = []string{"id", "password", "is_admin", "created_at", "deleted_at"}

type UserRepository interface {
	FindByID(ctx context.Context, id uint) (domain.User, error)
	FindByUsername(ctx context.Context, username string) (domain.User, error)
	FindProfiles(ctx context.Context, ids []uint) ([]domain.Profile, error)
	FindActiveNonAdmins(ctx context.Context) ([]domain.User, error)
	UpdateFields(ctx context.Context, id uint, changes map[string]interface{}) (domain.User, error)
	UpdatePassword(ctx context.Context, id uint, hashedPassword string) error
	SoftDelete(ctx context.Context, id uint) error
	CountActive(ctx context.Context) (int64, error)
}

type UserService struct {
	repo  UserRepository
	store ImageStore
}

func NewUserService(repo UserRepository, store ImageStore) *UserService {
	return &UserService{
		repo:  repo,
		store: store,
	}
}

func (s *UserService) GetUser(ctx context.Context, id uint) (domain.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) || errors.Is(err, repository.ErrUserDeleted) {
			return domain.User{}, err
		}

		return domain.User{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	return user, nil
}

// GetProfile returns a user enriched with events count and average rating.
func (s *UserService) GetProfile(ctx context.Context, id uint) (domain.Profile, error) {
	profiles, err := s.repo.FindProfiles(ctx, []uint{id})
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) || errors.Is(err, repository.ErrUserDeleted) {
			return domain.Profile{}, err
		}

		return domain.Profile{}, fmt.Errorf("s.repo.FindProfiles -> %w", err)
	}
	if len(profiles) == 0 {
		return domain.Profile{}, ErrUserNotFound
	}

	return profiles[0], nil
}

// GetProfileByUsername resolves a non-admin user by username. Admin
// accounts are invisible here.
func (s *UserService) GetProfileByUsername(ctx context.Context, username string) (domain.Profile, error) {
	user, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) || errors.Is(err, repository.ErrUserDeleted) {
			return domain.Profile{}, err
		}

		return domain.Profile{}, fmt.Errorf("s.repo.FindByUsername -> %w", err)
	}
	if user.IsAdmin {
		return domain.Profile{}, ErrUserNotFound
	}

	return s.GetProfile(ctx, user.ID)
}

// UpdateProfile applies partial profile changes. A base64 picture payload
// replaces the current profile picture: the new object is stored and the
// old one deleted concurrently, as neither depends on the other.
func (s *UserService) UpdateProfile(ctx context.Context, userID uint, changes map[string]interface{}, picPayload string) (domain.User, error) {
	for _, column := range protectedUserColumns {
		delete(changes, column)
	}

	if picPayload != "" {
		current, err := s.repo.FindByID(ctx, userID)
		if err != nil {
			return domain.User{}, fmt.Errorf("s.repo.FindByID -> %w", err)
		}

		var newKey string
		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			var err error
			newKey, err = s.store.PutBase64(gctx, picPayload)

			return err
		})
		if current.ProfilePicKey != "" {
			oldKey := current.ProfilePicKey
			g.Go(func() error {
				return s.store.Delete(gctx, oldKey)
			})
		}
		if err := g.Wait(); err != nil {
			return domain.User{}, fmt.Errorf("replacing profile picture -> %w", err)
		}

		changes["profile_pic_key"] = newKey
	}

	if len(changes) == 0 {
		return s.repo.FindByID(ctx, userID)
	}

	updated, err := s.repo.UpdateFields(ctx, userID, changes)
	if err != nil {
		return domain.User{}, fmt.Errorf("s.repo.UpdateFields -> %w", err)
	}

	return updated, nil
}

func (s *UserService) ChangePassword(ctx context.Context, userID uint, oldPassword, newPassword string) error {
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	if err = bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(oldPassword)); err != nil {
		return ErrWrongPassword
	}

	hashed, err := hashPassword(newPassword)
	if err != nil {
		return err
	}

	if err = s.repo.UpdatePassword(ctx, userID, hashed); err != nil {
		return fmt.Errorf("s.repo.UpdatePassword -> %w", err)
	}

	return nil
}

// DeleteAccount soft-deletes the user; the row is retained but login and
// discovery are disabled.
func (s *UserService) DeleteAccount(ctx context.Context, userID uint) error {
	if err := s.repo.SoftDelete(ctx, userID); err != nil {
		return fmt.Errorf("s.repo.SoftDelete -> %w", err)
	}

	return nil
}
