package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gatherly/gatherly-api/internal/domain"
	"github.com/gatherly/gatherly-api/internal/repository"
)

type fakeParticipationRepo struct {
	participants map[uint]bool
	pending      []time.Time
	created      bool
}

func (f *fakeParticipationRepo) FindByEventID(context.Context, uint) ([]domain.Participation, error) {
	return []domain.Participation{}, nil
}

func (f *fakeParticipationRepo) CountByEventID(context.Context, uint) (int64, error) {
	return int64(len(f.participants)), nil
}

func (f *fakeParticipationRepo) IsParticipant(_ context.Context, _ uint, userID uint) (bool, error) {
	return f.participants[userID], nil
}

func (f *fakeParticipationRepo) Create(_ context.Context, eventID, userID uint) (domain.Participation, error) {
	f.created = true

	return domain.Participation{EventID: eventID, UserID: userID}, nil
}

func (f *fakeParticipationRepo) UpdateDidAttend(_ context.Context, eventID, userID uint, didAttend bool) (domain.Participation, error) {
	if !f.participants[userID] {
		return domain.Participation{}, repository.ErrNotParticipant
	}

	return domain.Participation{EventID: eventID, UserID: userID, DidAttend: &didAttend}, nil
}

func (f *fakeParticipationRepo) Delete(_ context.Context, _ uint, userID uint) error {
	if !f.participants[userID] {
		return repository.ErrNotParticipant
	}

	return nil
}

func (f *fakeParticipationRepo) FindPendingEventStartTimes(context.Context, uint) ([]time.Time, error) {
	return f.pending, nil
}

type fakeJoinEventRepo struct {
	fakeEventRepo
	event domain.Event
}

func (f *fakeJoinEventRepo) FindAggregate(context.Context, uint) (domain.Event, error) {
	return f.event, nil
}

func TestParticipationServiceJoin(t *testing.T) {
	nextWeek := time.Now().Add(7 * 24 * time.Hour)

	t.Run("joins an open event", func(t *testing.T) {
		repo := &fakeParticipationRepo{participants: map[uint]bool{}}
		events := &fakeJoinEventRepo{event: domain.Event{ID: 42, StartTime: nextWeek, Capacity: 10}}
		svc := NewParticipationService(repo, events)

		p, err := svc.Join(context.Background(), 42, 7)

		require.NoError(t, err)
		assert.True(t, repo.created)
		assert.Equal(t, uint(7), p.UserID)
	})

	t.Run("rejects joining twice", func(t *testing.T) {
		repo := &fakeParticipationRepo{participants: map[uint]bool{7: true}}
		events := &fakeJoinEventRepo{event: domain.Event{ID: 42, StartTime: nextWeek}}
		svc := NewParticipationService(repo, events)

		_, err := svc.Join(context.Background(), 42, 7)

		assert.ErrorIs(t, err, ErrAlreadyParticipant)
	})

	t.Run("rejects a full event", func(t *testing.T) {
		repo := &fakeParticipationRepo{participants: map[uint]bool{}}
		events := &fakeJoinEventRepo{
			event: domain.Event{ID: 42, StartTime: nextWeek, Capacity: 2, ParticipantsCount: 2},
		}
		svc := NewParticipationService(repo, events)

		_, err := svc.Join(context.Background(), 42, 7)

		assert.ErrorIs(t, err, ErrEventFull)
	})

	t.Run("zero capacity means unlimited", func(t *testing.T) {
		repo := &fakeParticipationRepo{participants: map[uint]bool{}}
		events := &fakeJoinEventRepo{
			event: domain.Event{ID: 42, StartTime: nextWeek, Capacity: 0, ParticipantsCount: 500},
		}
		svc := NewParticipationService(repo, events)

		_, err := svc.Join(context.Background(), 42, 7)

		assert.NoError(t, err)
	})

	t.Run("rejects a same-day pending event", func(t *testing.T) {
		sameDay := time.Date(nextWeek.Year(), nextWeek.Month(), nextWeek.Day(), 3, 0, 0, 0, time.UTC)
		repo := &fakeParticipationRepo{
			participants: map[uint]bool{},
			pending:      []time.Time{sameDay},
		}
		events := &fakeJoinEventRepo{event: domain.Event{ID: 42, StartTime: nextWeek.UTC()}}
		svc := NewParticipationService(repo, events)

		_, err := svc.Join(context.Background(), 42, 7)

		assert.ErrorIs(t, err, ErrSameDayConflict)
	})

	t.Run("a pending event on another day does not conflict", func(t *testing.T) {
		repo := &fakeParticipationRepo{
			participants: map[uint]bool{},
			pending:      []time.Time{nextWeek.Add(48 * time.Hour)},
		}
		events := &fakeJoinEventRepo{event: domain.Event{ID: 42, StartTime: nextWeek}}
		svc := NewParticipationService(repo, events)

		_, err := svc.Join(context.Background(), 42, 7)

		assert.NoError(t, err)
	})
}

func TestParticipationServiceLeave(t *testing.T) {
	repo := &fakeParticipationRepo{participants: map[uint]bool{7: true}}
	svc := NewParticipationService(repo, &fakeJoinEventRepo{})

	assert.NoError(t, svc.Leave(context.Background(), 42, 7))
	assert.ErrorIs(t, svc.Leave(context.Background(), 42, 8), ErrNotParticipant)
}

func TestParticipationServiceMarkAttendance(t *testing.T) {
	repo := &fakeParticipationRepo{participants: map[uint]bool{7: true}}
	svc := NewParticipationService(repo, &fakeJoinEventRepo{})

	p, err := svc.MarkAttendance(context.Background(), 42, 7, true)
	require.NoError(t, err)
	require.NotNil(t, p.DidAttend)
	assert.True(t, *p.DidAttend)

	_, err = svc.MarkAttendance(context.Background(), 42, 8, true)
	assert.ErrorIs(t, err, ErrNotParticipant)
}
