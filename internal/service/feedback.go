package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/gatherly/gatherly-api/internal/domain"
	"github.com/gatherly/gatherly-api/internal/repository"
)

var ErrFeedbackNotFound = repository.ErrFeedbackNotFound

type FeedbackRepository interface {
	FindByEventID(ctx context.Context, eventID uint) ([]domain.Feedback, error)
	Create(ctx context.Context, feedback domain.Feedback) (domain.Feedback, error)
	Update(ctx context.Context, eventID, userID uint, rating int, comments string) (domain.Feedback, error)
	Delete(ctx context.Context, eventID, userID uint) error
}

type FeedbackService struct {
	repo      FeedbackRepository
	eventRepo EventRepository
}

func NewFeedbackService(repo FeedbackRepository, eventRepo EventRepository) *FeedbackService {
	return &FeedbackService{
		repo:      repo,
		eventRepo: eventRepo,
	}
}

func (s *FeedbackService) ListByEvent(ctx context.Context, eventID uint) ([]domain.Feedback, error) {
	if _, err := s.eventRepo.FindCreatorID(ctx, eventID); err != nil {
		if errors.Is(err, repository.ErrEventNotFound) {
			return nil, ErrEventNotFound
		}

		return nil, fmt.Errorf("s.eventRepo.FindCreatorID -> %w", err)
	}

	feedbacks, err := s.repo.FindByEventID(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindByEventID -> %w", err)
	}

	return feedbacks, nil
}

func (s *FeedbackService) Give(ctx context.Context, feedback domain.Feedback) (domain.Feedback, error) {
	if feedback.Rating < 1 || feedback.Rating > 5 {
		return domain.Feedback{}, ErrRatingOutOfBand
	}

	if _, err := s.eventRepo.FindCreatorID(ctx, feedback.EventID); err != nil {
		if errors.Is(err, repository.ErrEventNotFound) {
			return domain.Feedback{}, ErrEventNotFound
		}

		return domain.Feedback{}, fmt.Errorf("s.eventRepo.FindCreatorID -> %w", err)
	}

	created, err := s.repo.Create(ctx, feedback)
	if err != nil {
		return domain.Feedback{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}

func (s *FeedbackService) Update(ctx context.Context, eventID, userID uint, rating int, comments string) (domain.Feedback, error) {
	if rating < 1 || rating > 5 {
		return domain.Feedback{}, ErrRatingOutOfBand
	}

	updated, err := s.repo.Update(ctx, eventID, userID, rating, comments)
	if err != nil {
		if errors.Is(err, repository.ErrFeedbackNotFound) {
			return domain.Feedback{}, ErrFeedbackNotFound
		}

		return domain.Feedback{}, fmt.Errorf("s.repo.Update -> %w", err)
	}

	return updated, nil
}

func (s *FeedbackService) Delete(ctx context.Context, eventID, userID uint) error {
	if err := s.repo.Delete(ctx, eventID, userID); err != nil {
		if errors.Is(err, repository.ErrFeedbackNotFound) {
			return ErrFeedbackNotFound
		}

		return fmt.Errorf("s.repo.Delete -> %w", err)
	}

	return nil
}
