package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/gatherly/gatherly-api/internal/domain"
	"github.com/gatherly/gatherly-api/internal/repository/dao"
)

var ErrNotParticipant = dao.ErrNotParticipant

type ParticipationDAO interface {
	FindByEventID(ctx context.Context, eventID uint) ([]dao.EventParticipant, error)
	CountByEventID(ctx context.Context, eventID uint) (int64, error)
	Exists(ctx context.Context, eventID, userID uint) (bool, error)
	Insert(ctx context.Context, participant dao.EventParticipant) (dao.EventParticipant, error)
	UpdateDidAttend(ctx context.Context, eventID, userID uint, didAttend bool) (dao.EventParticipant, error)
	Delete(ctx context.Context, eventID, userID uint) error
	FindPendingEventStartTimes(ctx context.Context, userID uint) ([]time.Time, error)
}

type ParticipationRepository struct {
	dao ParticipationDAO
}

func NewParticipationRepository(dao ParticipationDAO) *ParticipationRepository {
	return &ParticipationRepository{
		dao: dao,
	}
}

func (r *ParticipationRepository) FindByEventID(ctx context.Context, eventID uint) ([]domain.Participation, error) {
	found, err := r.dao.FindByEventID(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindByEventID -> %w", err)
	}

	participations := make([]domain.Participation, 0, len(found))
	for _, p := range found {
		participations = append(participations, participationDaoToDomain(p))
	}

	return participations, nil
}

func (r *ParticipationRepository) CountByEventID(ctx context.Context, eventID uint) (int64, error) {
	count, err := r.dao.CountByEventID(ctx, eventID)
	if err != nil {
		return 0, fmt.Errorf("r.dao.CountByEventID -> %w", err)
	}

	return count, nil
}

func (r *ParticipationRepository) IsParticipant(ctx context.Context, eventID, userID uint) (bool, error) {
	exists, err := r.dao.Exists(ctx, eventID, userID)
	if err != nil {
		return false, fmt.Errorf("r.dao.Exists -> %w", err)
	}

	return exists, nil
}

func (r *ParticipationRepository) Create(ctx context.Context, eventID, userID uint) (domain.Participation, error) {
	created, err := r.dao.Insert(ctx, dao.EventParticipant{EventID: eventID, UserID: userID})
	if err != nil {
		return domain.Participation{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return participationDaoToDomain(created), nil
}

func (r *ParticipationRepository) UpdateDidAttend(ctx context.Context, eventID, userID uint, didAttend bool) (domain.Participation, error) {
	updated, err := r.dao.UpdateDidAttend(ctx, eventID, userID, didAttend)
	if err != nil {
		return domain.Participation{}, fmt.Errorf("r.dao.UpdateDidAttend -> %w", err)
	}

	return participationDaoToDomain(updated), nil
}

func (r *ParticipationRepository) Delete(ctx context.Context, eventID, userID uint) error {
	if err := r.dao.Delete(ctx, eventID, userID); err != nil {
		return fmt.Errorf("r.dao.Delete -> %w", err)
	}

	return nil
}

func (r *ParticipationRepository) FindPendingEventStartTimes(ctx context.Context, userID uint) ([]time.Time, error) {
	startTimes, err := r.dao.FindPendingEventStartTimes(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindPendingEventStartTimes -> %w", err)
	}

	return startTimes, nil
}

func participationDaoToDomain(p dao.EventParticipant) domain.Participation {
	return domain.Participation{
		EventID:   p.EventID,
		UserID:    p.UserID,
		DidAttend: p.DidAttend,
		CreatedAt: p.CreatedAt,
	}
}
