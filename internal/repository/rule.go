package repository

import (
	"context"
	"fmt"

	"github.com/gatherly/gatherly-api/internal/domain"
	"github.com/gatherly/gatherly-api/internal/repository/dao"
)

var ErrRuleNotFound = dao.ErrRuleNotFound

type RuleDAO interface {
	FindByEventID(ctx context.Context, eventID uint) ([]dao.EventRule, error)
	Insert(ctx context.Context, rule dao.EventRule) (dao.EventRule, error)
	Update(ctx context.Context, id uint, rule string) (dao.EventRule, error)
	Delete(ctx context.Context, id uint) error
}

type RuleRepository struct {
	dao RuleDAO
}

func NewRuleRepository(dao RuleDAO) *RuleRepository {
	return &RuleRepository{
		dao: dao,
	}
}

func (r *RuleRepository) FindByEventID(ctx context.Context, eventID uint) ([]domain.Rule, error) {
	found, err := r.dao.FindByEventID(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindByEventID -> %w", err)
	}

	return rulesDaoToDomain(found), nil
}

func (r *RuleRepository) Create(ctx context.Context, eventID uint, rule string) (domain.Rule, error) {
	created, err := r.dao.Insert(ctx, dao.EventRule{EventID: eventID, Rule: rule})
	if err != nil {
		return domain.Rule{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return domain.Rule{ID: created.ID, EventID: created.EventID, Rule: created.Rule}, nil
}

func (r *RuleRepository) Update(ctx context.Context, id uint, rule string) (domain.Rule, error) {
	updated, err := r.dao.Update(ctx, id, rule)
	if err != nil {
		return domain.Rule{}, fmt.Errorf("r.dao.Update -> %w", err)
	}

	return domain.Rule{ID: updated.ID, EventID: updated.EventID, Rule: updated.Rule}, nil
}

func (r *RuleRepository) Delete(ctx context.Context, id uint) error {
	if err := r.dao.Delete(ctx, id); err != nil {
		return fmt.Errorf("r.dao.Delete -> %w", err)
	}

	return nil
}
