package dao

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

var ErrRuleNotFound = errors.New("rule not found")

type RuleDAO struct {
	db *gorm.DB
}

func NewRuleDAO(db *gorm.DB) *RuleDAO {
	return &RuleDAO{
		db: db,
	}
}

func (d *RuleDAO) FindByEventID(ctx context.Context, eventID uint) ([]EventRule, error) {
	var rules []EventRule

	result := d.db.WithContext(ctx).Where("event_id = ?", eventID).Find(&rules)
	if result.Error != nil {
		return nil, result.Error
	}

	return rules, nil
}

func (d *RuleDAO) Insert(ctx context.Context, rule EventRule) (EventRule, error) {
	result := d.db.WithContext(ctx).Create(&rule)
	if result.Error != nil {
		return EventRule{}, result.Error
	}

	return rule, nil
}

func (d *RuleDAO) Update(ctx context.Context, id uint, rule string) (EventRule, error) {
	result := d.db.WithContext(ctx).Model(&EventRule{}).Where("id = ?", id).
		Update("rule", rule)
	if result.Error != nil {
		return EventRule{}, result.Error
	}
	if result.RowsAffected == 0 {
		return EventRule{}, ErrRuleNotFound
	}

	var updated EventRule
	if err := d.db.WithContext(ctx).First(&updated, id).Error; err != nil {
		return EventRule{}, err
	}

	return updated, nil
}

func (d *RuleDAO) Delete(ctx context.Context, id uint) error {
	return d.db.WithContext(ctx).Delete(&EventRule{}, id).Error
}
