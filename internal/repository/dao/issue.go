package dao

import (
	"context"

	"gorm.io/gorm"
)

type IssueDAO struct {
	db *gorm.DB
}

func NewIssueDAO(db *gorm.DB) *IssueDAO {
	return &IssueDAO{
		db: db,
	}
}

func (d *IssueDAO) FindAllTypes(ctx context.Context) ([]IssueType, error) {
	var types []IssueType

	result := d.db.WithContext(ctx).Find(&types)
	if result.Error != nil {
		return nil, result.Error
	}

	return types, nil
}

// FindNamesByEventID returns the issue-type names addressed by an event.
func (d *IssueDAO) FindNamesByEventID(ctx context.Context, eventID uint) ([]string, error) {
	var names []string

	result := d.db.WithContext(ctx).Model(&AddressedIssue{}).
		Joins("JOIN issue_types ON issue_types.id = addressed_issues.issue_type_id").
		Where("addressed_issues.event_id = ?", eventID).
		Pluck("issue_types.name", &names)
	if result.Error != nil {
		return nil, result.Error
	}

	return names, nil
}

func (d *IssueDAO) CountByEventID(ctx context.Context, eventID uint) (int64, error) {
	var count int64

	result := d.db.WithContext(ctx).Model(&AddressedIssue{}).
		Where("event_id = ?", eventID).
		Count(&count)
	if result.Error != nil {
		return 0, result.Error
	}

	return count, nil
}

func (d *IssueDAO) Insert(ctx context.Context, association AddressedIssue) (AddressedIssue, error) {
	result := d.db.WithContext(ctx).Create(&association)
	if result.Error != nil {
		return AddressedIssue{}, result.Error
	}

	return association, nil
}

func (d *IssueDAO) Delete(ctx context.Context, eventID, issueTypeID uint) error {
	return d.db.WithContext(ctx).
		Where("event_id = ? AND issue_type_id = ?", eventID, issueTypeID).
		Delete(&AddressedIssue{}).Error
}
