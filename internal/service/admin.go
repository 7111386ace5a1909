package service

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/gatherly/gatherly-api/internal/domain"
)

// PlatformCounts is the admin dashboard snapshot.
type PlatformCounts struct {
	Users          int64 `json:"users"`
	TotalEvents    int64 `json:"totalEvents"`
	UpcomingEvents int64 `json:"upcomingEvents"`
	PastEvents     int64 `json:"pastEvents"`
}

type AdminEventRepository interface {
	CountByStatus(ctx context.Context) (total, upcoming, past int64, err error)
}

type AdminService struct {
	userRepo  UserRepository
	eventRepo AdminEventRepository
}

func NewAdminService(userRepo UserRepository, eventRepo AdminEventRepository) *AdminService {
	return &AdminService{
		userRepo:  userRepo,
		eventRepo: eventRepo,
	}
}

// Counts gathers the user and event counters concurrently.
func (s *AdminService) Counts(ctx context.Context) (PlatformCounts, error) {
	var counts PlatformCounts

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		counts.Users, err = s.userRepo.CountActive(gctx)

		return err
	})
	g.Go(func() error {
		var err error
		counts.TotalEvents, counts.UpcomingEvents, counts.PastEvents, err = s.eventRepo.CountByStatus(gctx)

		return err
	})
	if err := g.Wait(); err != nil {
		return PlatformCounts{}, fmt.Errorf("gathering platform counts -> %w", err)
	}

	return counts, nil
}

// ActiveUsers lists every active non-admin account with profile stats.
func (s *AdminService) ActiveUsers(ctx context.Context) ([]domain.Profile, error) {
	users, err := s.userRepo.FindActiveNonAdmins(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.userRepo.FindActiveNonAdmins -> %w", err)
	}
	if len(users) == 0 {
		return []domain.Profile{}, nil
	}

	ids := make([]uint, 0, len(users))
	for _, u := range users {
		ids = append(ids, u.ID)
	}

	profiles, err := s.userRepo.FindProfiles(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("s.userRepo.FindProfiles -> %w", err)
	}

	return profiles, nil
}
