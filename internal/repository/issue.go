package repository

import (
	"context"
	"fmt"

	"github.com/gatherly/gatherly-api/internal/domain"
	"github.com/gatherly/gatherly-api/internal/repository/dao"
)

type IssueDAO interface {
	FindAllTypes(ctx context.Context) ([]dao.IssueType, error)
	FindNamesByEventID(ctx context.Context, eventID uint) ([]string, error)
	CountByEventID(ctx context.Context, eventID uint) (int64, error)
	Insert(ctx context.Context, association dao.AddressedIssue) (dao.AddressedIssue, error)
	Delete(ctx context.Context, eventID, issueTypeID uint) error
}

type IssueRepository struct {
	dao IssueDAO
}

func NewIssueRepository(dao IssueDAO) *IssueRepository {
	return &IssueRepository{
		dao: dao,
	}
}

func (r *IssueRepository) FindAllTypes(ctx context.Context) ([]domain.IssueType, error) {
	found, err := r.dao.FindAllTypes(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindAllTypes -> %w", err)
	}

	return issueTypesDaoToDomain(found), nil
}

func (r *IssueRepository) FindNamesByEventID(ctx context.Context, eventID uint) ([]string, error) {
	names, err := r.dao.FindNamesByEventID(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindNamesByEventID -> %w", err)
	}

	return names, nil
}

func (r *IssueRepository) CountByEventID(ctx context.Context, eventID uint) (int64, error) {
	count, err := r.dao.CountByEventID(ctx, eventID)
	if err != nil {
		return 0, fmt.Errorf("r.dao.CountByEventID -> %w", err)
	}

	return count, nil
}

func (r *IssueRepository) Associate(ctx context.Context, eventID, issueTypeID uint) error {
	_, err := r.dao.Insert(ctx, dao.AddressedIssue{EventID: eventID, IssueTypeID: issueTypeID})
	if err != nil {
		return fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return nil
}

func (r *IssueRepository) Dissociate(ctx context.Context, eventID, issueTypeID uint) error {
	if err := r.dao.Delete(ctx, eventID, issueTypeID); err != nil {
		return fmt.Errorf("r.dao.Delete -> %w", err)
	}

	return nil
}
