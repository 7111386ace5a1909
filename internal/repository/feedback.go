package repository

import (
	"context"
	"fmt"

	"github.com/gatherly/gatherly-api/internal/domain"
	"github.com/gatherly/gatherly-api/internal/repository/dao"
)

var ErrFeedbackNotFound = dao.ErrFeedbackNotFound

type FeedbackDAO interface {
	FindByEventID(ctx context.Context, eventID uint) ([]dao.EventFeedback, error)
	Insert(ctx context.Context, feedback dao.EventFeedback) (dao.EventFeedback, error)
	Update(ctx context.Context, eventID, userID uint, rating int, comments string) (dao.EventFeedback, error)
	Delete(ctx context.Context, eventID, userID uint) error
}

type FeedbackRepository struct {
	dao FeedbackDAO
}

func NewFeedbackRepository(dao FeedbackDAO) *FeedbackRepository {
	return &FeedbackRepository{
		dao: dao,
	}
}

func (r *FeedbackRepository) FindByEventID(ctx context.Context, eventID uint) ([]domain.Feedback, error) {
	found, err := r.dao.FindByEventID(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindByEventID -> %w", err)
	}

	feedbacks := make([]domain.Feedback, 0, len(found))
	for _, f := range found {
		feedbacks = append(feedbacks, feedbackDaoToDomain(f))
	}

	return feedbacks, nil
}

func (r *FeedbackRepository) Create(ctx context.Context, feedback domain.Feedback) (domain.Feedback, error) {
	created, err := r.dao.Insert(ctx, dao.EventFeedback{
		EventID:  feedback.EventID,
		UserID:   feedback.UserID,
		Rating:   feedback.Rating,
		Comments: feedback.Comments,
	})
	if err != nil {
		return domain.Feedback{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return feedbackDaoToDomain(created), nil
}

func (r *FeedbackRepository) Update(ctx context.Context, eventID, userID uint, rating int, comments string) (domain.Feedback, error) {
	updated, err := r.dao.Update(ctx, eventID, userID, rating, comments)
	if err != nil {
		return domain.Feedback{}, fmt.Errorf("r.dao.Update -> %w", err)
	}

	return feedbackDaoToDomain(updated), nil
}

func (r *FeedbackRepository) Delete(ctx context.Context, eventID, userID uint) error {
	if err := r.dao.Delete(ctx, eventID, userID); err != nil {
		return fmt.Errorf("r.dao.Delete -> %w", err)
	}

	return nil
}

func feedbackDaoToDomain(f dao.EventFeedback) domain.Feedback {
	return domain.Feedback{
		EventID:  f.EventID,
		UserID:   f.UserID,
		Rating:   f.Rating,
		Comments: f.Comments,
		User:     userDaoToDomain(f.User),
	}
}
