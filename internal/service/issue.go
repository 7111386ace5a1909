package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/gatherly/gatherly-api/internal/domain"
	"github.com/gatherly/gatherly-api/internal/repository"
)

var ErrIssueCapReached = fmt.Errorf("an event addresses at most %v issue types", maxIssuesPerEvent)

type IssueRepository interface {
	FindAllTypes(ctx context.Context) ([]domain.IssueType, error)
	FindNamesByEventID(ctx context.Context, eventID uint) ([]string, error)
	CountByEventID(ctx context.Context, eventID uint) (int64, error)
	Associate(ctx context.Context, eventID, issueTypeID uint) error
	Dissociate(ctx context.Context, eventID, issueTypeID uint) error
}

type IssueService struct {
	repo      IssueRepository
	eventRepo EventRepository
}

func NewIssueService(repo IssueRepository, eventRepo EventRepository) *IssueService {
	return &IssueService{
		repo:      repo,
		eventRepo: eventRepo,
	}
}

func (s *IssueService) ListTypes(ctx context.Context) ([]domain.IssueType, error) {
	types, err := s.repo.FindAllTypes(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindAllTypes -> %w", err)
	}

	return types, nil
}

func (s *IssueService) NamesByEvent(ctx context.Context, eventID uint) ([]string, error) {
	if _, err := s.eventRepo.FindCreatorID(ctx, eventID); err != nil {
		if errors.Is(err, repository.ErrEventNotFound) {
			return nil, ErrEventNotFound
		}

		return nil, fmt.Errorf("s.eventRepo.FindCreatorID -> %w", err)
	}

	names, err := s.repo.FindNamesByEventID(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindNamesByEventID -> %w", err)
	}

	return names, nil
}

// Associate attaches an issue type to an event, enforcing the per-event cap.
func (s *IssueService) Associate(ctx context.Context, eventID, issueTypeID uint) error {
	count, err := s.repo.CountByEventID(ctx, eventID)
	if err != nil {
		return fmt.Errorf("s.repo.CountByEventID -> %w", err)
	}
	if count >= maxIssuesPerEvent {
		return ErrIssueCapReached
	}

	if err = s.repo.Associate(ctx, eventID, issueTypeID); err != nil {
		return fmt.Errorf("s.repo.Associate -> %w", err)
	}

	return nil
}

func (s *IssueService) Dissociate(ctx context.Context, eventID, issueTypeID uint) error {
	if err := s.repo.Dissociate(ctx, eventID, issueTypeID); err != nil {
		return fmt.Errorf("s.repo.Dissociate -> %w", err)
	}

	return nil
}
