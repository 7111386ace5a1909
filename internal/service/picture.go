package service

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/gatherly/gatherly-api/internal/domain"
	"github.com/gatherly/gatherly-api/internal/repository"
)

var ErrPictureNotFound = repository.ErrPictureNotFound

type PictureRepository interface {
	FindByEventID(ctx context.Context, eventID uint) ([]domain.EventPicture, error)
	FindByID(ctx context.Context, id uint) (domain.EventPicture, error)
	Create(ctx context.Context, eventID uint, keys []string) ([]domain.EventPicture, error)
	Delete(ctx context.Context, id uint) error
}

type PictureService struct {
	repo      PictureRepository
	eventRepo EventRepository
	store     ImageStore
}

func NewPictureService(repo PictureRepository, eventRepo EventRepository, store ImageStore) *PictureService {
	return &PictureService{
		repo:      repo,
		eventRepo: eventRepo,
		store:     store,
	}
}

func (s *PictureService) ListByEvent(ctx context.Context, eventID uint) ([]domain.EventPicture, error) {
	pictures, err := s.repo.FindByEventID(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindByEventID -> %w", err)
	}

	return pictures, nil
}

// Add stores each base64 payload and inserts the resulting keys as picture
// rows of the event. The event must exist.
func (s *PictureService) Add(ctx context.Context, eventID uint, payloads []string) ([]domain.EventPicture, error) {
	if _, err := s.eventRepo.FindCreatorID(ctx, eventID); err != nil {
		if errors.Is(err, repository.ErrEventNotFound) {
			return nil, ErrEventNotFound
		}

		return nil, fmt.Errorf("s.eventRepo.FindCreatorID -> %w", err)
	}

	keys := make([]string, 0, len(payloads))
	for _, payload := range payloads {
		key, err := s.store.PutBase64(ctx, payload)
		if err != nil {
			return nil, fmt.Errorf("s.store.PutBase64 -> %w", err)
		}
		keys = append(keys, key)
	}

	created, err := s.repo.Create(ctx, eventID, keys)
	if err != nil {
		return nil, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}

// Delete removes the picture row and its stored object concurrently.
func (s *PictureService) Delete(ctx context.Context, pictureID uint) error {
	picture, err := s.repo.FindByID(ctx, pictureID)
	if err != nil {
		if errors.Is(err, repository.ErrPictureNotFound) {
			return ErrPictureNotFound
		}

		return fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return s.repo.Delete(gctx, pictureID)
	})
	g.Go(func() error {
		return s.store.Delete(gctx, picture.PicturePath)
	})
	if err = g.Wait(); err != nil {
		return fmt.Errorf("deleting picture -> %w", err)
	}

	return nil
}
