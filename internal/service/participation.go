package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gatherly/gatherly-api/internal/domain"
	"github.com/gatherly/gatherly-api/internal/repository"
)

var (
	ErrNotParticipant     = repository.ErrNotParticipant
	ErrAlreadyParticipant = errors.New("user already joined this event")
	ErrEventFull          = errors.New("event has reached its capacity")
	ErrSameDayConflict    = errors.New("user has another pending event on the same day")
)

type ParticipationRepository interface {
	FindByEventID(ctx context.Context, eventID uint) ([]domain.Participation, error)
	CountByEventID(ctx context.Context, eventID uint) (int64, error)
	IsParticipant(ctx context.Context, eventID, userID uint) (bool, error)
	Create(ctx context.Context, eventID, userID uint) (domain.Participation, error)
	UpdateDidAttend(ctx context.Context, eventID, userID uint, didAttend bool) (domain.Participation, error)
	Delete(ctx context.Context, eventID, userID uint) error
	FindPendingEventStartTimes(ctx context.Context, userID uint) ([]time.Time, error)
}

type ParticipationService struct {
	repo      ParticipationRepository
	eventRepo EventRepository
}

func NewParticipationService(repo ParticipationRepository, eventRepo EventRepository) *ParticipationService {
	return &ParticipationService{
		repo:      repo,
		eventRepo: eventRepo,
	}
}

func (s *ParticipationService) ListByEvent(ctx context.Context, eventID uint) ([]domain.Participation, error) {
	participants, err := s.repo.FindByEventID(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindByEventID -> %w", err)
	}

	return participants, nil
}

func (s *ParticipationService) CountByEvent(ctx context.Context, eventID uint) (int64, error) {
	count, err := s.repo.CountByEventID(ctx, eventID)
	if err != nil {
		return 0, fmt.Errorf("s.repo.CountByEventID -> %w", err)
	}

	return count, nil
}

func (s *ParticipationService) IsParticipant(ctx context.Context, eventID, userID uint) (bool, error) {
	return s.repo.IsParticipant(ctx, eventID, userID)
}

// Join registers the user on the event. A user cannot join twice, cannot
// join a full event, and cannot hold two pending events on the same
// calendar day.
func (s *ParticipationService) Join(ctx context.Context, eventID, userID uint) (domain.Participation, error) {
	event, err := s.eventRepo.FindAggregate(ctx, eventID)
	if err != nil {
		if errors.Is(err, repository.ErrEventNotFound) {
			return domain.Participation{}, ErrEventNotFound
		}

		return domain.Participation{}, fmt.Errorf("s.eventRepo.FindAggregate -> %w", err)
	}

	joined, err := s.repo.IsParticipant(ctx, eventID, userID)
	if err != nil {
		return domain.Participation{}, fmt.Errorf("s.repo.IsParticipant -> %w", err)
	}
	if joined {
		return domain.Participation{}, ErrAlreadyParticipant
	}

	if event.Capacity > 0 && event.ParticipantsCount >= int64(event.Capacity) {
		return domain.Participation{}, ErrEventFull
	}

	conflict, err := s.hasSameDayConflict(ctx, userID, event.StartTime)
	if err != nil {
		return domain.Participation{}, err
	}
	if conflict {
		return domain.Participation{}, ErrSameDayConflict
	}

	created, err := s.repo.Create(ctx, eventID, userID)
	if err != nil {
		return domain.Participation{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}

// JoinStatus reports whether the user already joined the event and whether
// joining would collide with another pending event on the same day.
func (s *ParticipationService) JoinStatus(ctx context.Context, eventID, userID uint) (joined, conflict bool, err error) {
	event, err := s.eventRepo.FindAggregate(ctx, eventID)
	if err != nil {
		if errors.Is(err, repository.ErrEventNotFound) {
			return false, false, ErrEventNotFound
		}

		return false, false, fmt.Errorf("s.eventRepo.FindAggregate -> %w", err)
	}

	joined, err = s.repo.IsParticipant(ctx, eventID, userID)
	if err != nil {
		return false, false, fmt.Errorf("s.repo.IsParticipant -> %w", err)
	}

	conflict, err = s.hasSameDayConflict(ctx, userID, event.StartTime)
	if err != nil {
		return false, false, err
	}

	return joined, conflict, nil
}

// hasSameDayConflict compares calendar dates, not instants: two pending
// events on the same day conflict regardless of their hours.
func (s *ParticipationService) hasSameDayConflict(ctx context.Context, userID uint, startTime time.Time) (bool, error) {
	pending, err := s.repo.FindPendingEventStartTimes(ctx, userID)
	if err != nil {
		return false, fmt.Errorf("s.repo.FindPendingEventStartTimes -> %w", err)
	}

	y, m, d := startTime.UTC().Date()
	for _, t := range pending {
		py, pm, pd := t.UTC().Date()
		if py == y && pm == m && pd == d {
			return true, nil
		}
	}

	return false, nil
}

func (s *ParticipationService) MarkAttendance(ctx context.Context, eventID, userID uint, didAttend bool) (domain.Participation, error) {
	updated, err := s.repo.UpdateDidAttend(ctx, eventID, userID, didAttend)
	if err != nil {
		if errors.Is(err, repository.ErrNotParticipant) {
			return domain.Participation{}, ErrNotParticipant
		}

		return domain.Participation{}, fmt.Errorf("s.repo.UpdateDidAttend -> %w", err)
	}

	return updated, nil
}

func (s *ParticipationService) Leave(ctx context.Context, eventID, userID uint) error {
	if err := s.repo.Delete(ctx, eventID, userID); err != nil {
		if errors.Is(err, repository.ErrNotParticipant) {
			return ErrNotParticipant
		}

		return fmt.Errorf("s.repo.Delete -> %w", err)
	}

	return nil
}
