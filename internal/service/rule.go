package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/gatherly/gatherly-api/internal/domain"
	"github.com/gatherly/gatherly-api/internal/repository"
)

var (
	ErrRuleNotFound = repository.ErrRuleNotFound
	ErrEmptyRule    = errors.New("rule text must not be empty")
)

type RuleRepository interface {
	FindByEventID(ctx context.Context, eventID uint) ([]domain.Rule, error)
	Create(ctx context.Context, eventID uint, rule string) (domain.Rule, error)
	Update(ctx context.Context, id uint, rule string) (domain.Rule, error)
	Delete(ctx context.Context, id uint) error
}

type RuleService struct {
	repo      RuleRepository
	eventRepo EventRepository
}

func NewRuleService(repo RuleRepository, eventRepo EventRepository) *RuleService {
	return &RuleService{
		repo:      repo,
		eventRepo: eventRepo,
	}
}

func (s *RuleService) ListByEvent(ctx context.Context, eventID uint) ([]domain.Rule, error) {
	if _, err := s.eventRepo.FindCreatorID(ctx, eventID); err != nil {
		if errors.Is(err, repository.ErrEventNotFound) {
			return nil, ErrEventNotFound
		}

		return nil, fmt.Errorf("s.eventRepo.FindCreatorID -> %w", err)
	}

	rules, err := s.repo.FindByEventID(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindByEventID -> %w", err)
	}

	return rules, nil
}

func (s *RuleService) Add(ctx context.Context, eventID uint, rule string) (domain.Rule, error) {
	if rule == "" {
		return domain.Rule{}, ErrEmptyRule
	}

	created, err := s.repo.Create(ctx, eventID, rule)
	if err != nil {
		return domain.Rule{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}

func (s *RuleService) Update(ctx context.Context, ruleID uint, rule string) (domain.Rule, error) {
	if rule == "" {
		return domain.Rule{}, ErrEmptyRule
	}

	updated, err := s.repo.Update(ctx, ruleID, rule)
	if err != nil {
		if errors.Is(err, repository.ErrRuleNotFound) {
			return domain.Rule{}, ErrRuleNotFound
		}

		return domain.Rule{}, fmt.Errorf("s.repo.Update -> %w", err)
	}

	return updated, nil
}

func (s *RuleService) Delete(ctx context.Context, ruleID uint) error {
	if err := s.repo.Delete(ctx, ruleID); err != nil {
		if errors.Is(err, repository.ErrRuleNotFound) {
			return ErrRuleNotFound
		}

		return fmt.Errorf("s.repo.Delete -> %w", err)
	}

	return nil
}
