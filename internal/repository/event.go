package repository

import (
	"context"
	"fmt"

	"github.com/gatherly/gatherly-api/internal/domain"
	"github.com/gatherly/gatherly-api/internal/repository/dao"
)

var ErrEventNotFound = dao.ErrEventNotFound

type EventDAO interface {
	Insert(ctx context.Context, event dao.Event) (dao.Event, error)
	FindByID(ctx context.Context, id uint) (dao.Event, error)
	FindCreatorID(ctx context.Context, id uint) (uint, error)
	FindCandidates(ctx context.Context, filters dao.EventFilters) ([]dao.EventCandidate, error)
	FindSuggestedIDs(ctx context.Context, eventID uint) ([]uint, error)
	UpdateScalars(ctx context.Context, id uint, changes map[string]interface{}) error
	UpdateCover(ctx context.Context, id uint, key string) error
	SoftDelete(ctx context.Context, id uint) error
	FindChildState(ctx context.Context, id uint) (string, []uint, []string, []string, error)
	InsertRules(ctx context.Context, eventID uint, rules []string) ([]dao.EventRule, error)
	InsertPictures(ctx context.Context, eventID uint, keys []string) ([]dao.EventPicture, error)
	InsertIssues(ctx context.Context, eventID uint, issueIDs []uint) error
	ReplaceRules(ctx context.Context, eventID uint, rules []string) error
	ReplaceIssues(ctx context.Context, eventID uint, issueIDs []uint) error
	ReplacePictures(ctx context.Context, eventID uint, keys []string) error
	DeleteRules(ctx context.Context, eventID uint) error
	DeletePictures(ctx context.Context, eventID uint) error
	DeleteIssues(ctx context.Context, eventID uint) error
	DeleteParticipants(ctx context.Context, eventID uint) error
	FindIssueTypesByIDs(ctx context.Context, ids []uint) ([]dao.IssueType, error)
	FindAggregates(ctx context.Context, ids []uint) ([]dao.Event, map[uint][]dao.IssueType, map[uint][]dao.EventRule, map[uint][]dao.EventPicture, map[uint]int64, map[uint]float64, error)
	FindParticipatedIDs(ctx context.Context, userID uint) ([]uint, error)
	FindCreatedIDs(ctx context.Context, userID uint) ([]uint, error)
	CountByStatus(ctx context.Context) (total, upcoming, past int64, err error)
}

type EventRepository struct {
	dao EventDAO
}

func NewEventRepository(dao EventDAO) *EventRepository {
	return &EventRepository{
		dao: dao,
	}
}

func (r *EventRepository) Create(ctx context.Context, event domain.Event) (domain.Event, error) {
	created, err := r.dao.Insert(ctx, dao.Event{
		CreatorID:         event.CreatorID,
		Name:              event.Name,
		Description:       event.Description,
		Type:              event.Type,
		StartTime:         event.StartTime,
		EndTime:           event.EndTime,
		Capacity:          event.Capacity,
		Latitude:          event.Latitude,
		Longitude:         event.Longitude,
		IsDonationEnabled: event.IsDonationEnabled,
		CoverPicKey:       event.CoverPicKey,
	})
	if err != nil {
		return domain.Event{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return eventDaoToDomain(created), nil
}

func (r *EventRepository) FindCreatorID(ctx context.Context, id uint) (uint, error) {
	creatorID, err := r.dao.FindCreatorID(ctx, id)
	if err != nil {
		return 0, fmt.Errorf("r.dao.FindCreatorID -> %w", err)
	}

	return creatorID, nil
}

// FindAggregate returns the fully composed aggregate for one event.
func (r *EventRepository) FindAggregate(ctx context.Context, id uint) (domain.Event, error) {
	aggregates, err := r.FindAggregates(ctx, []uint{id})
	if err != nil {
		return domain.Event{}, err
	}
	if len(aggregates) == 0 {
		return domain.Event{}, ErrEventNotFound
	}

	return aggregates[0], nil
}

func (r *EventRepository) FindAggregates(ctx context.Context, ids []uint) ([]domain.Event, error) {
	events, issues, rules, pictures, counts, ratings, err := r.dao.FindAggregates(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindAggregates -> %w", err)
	}

	aggregates := make([]domain.Event, 0, len(events))
	for _, e := range events {
		aggregate := eventDaoToDomain(e)
		aggregate.Creator = userDaoToDomain(e.Creator)
		aggregate.Issues = issueTypesDaoToDomain(issues[e.ID])
		aggregate.Rules = rulesDaoToDomain(rules[e.ID])
		aggregate.Pictures = picturesDaoToDomain(pictures[e.ID])
		aggregate.ParticipantsCount = counts[e.ID]
		aggregate.AverageRating = ratings[e.ID]
		aggregates = append(aggregates, aggregate)
	}

	return aggregates, nil
}

func (r *EventRepository) FindCandidates(ctx context.Context, filters domain.EventFilters) ([]domain.EventCandidate, error) {
	daoFilters := dao.EventFilters{
		Name:         filters.Name,
		Description:  filters.Description,
		Type:         filters.Type,
		DonationOnly: filters.DonationOnly,
		Completed:    filters.Status == domain.EventStatusCompleted,
		Upcoming:     filters.Status == domain.EventStatusUpcoming,
		IssueIDs:     filters.IssueIDs,
	}

	found, err := r.dao.FindCandidates(ctx, daoFilters)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindCandidates -> %w", err)
	}

	candidates := make([]domain.EventCandidate, 0, len(found))
	for _, c := range found {
		candidates = append(candidates, domain.EventCandidate{
			ID:        c.ID,
			Latitude:  c.Latitude,
			Longitude: c.Longitude,
		})
	}

	return candidates, nil
}

func (r *EventRepository) FindSuggested(ctx context.Context, eventID uint) ([]domain.Event, error) {
	ids, err := r.dao.FindSuggestedIDs(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindSuggestedIDs -> %w", err)
	}

	return r.FindAggregates(ctx, ids)
}

func (r *EventRepository) UpdateScalars(ctx context.Context, id uint, changes map[string]interface{}) error {
	if err := r.dao.UpdateScalars(ctx, id, changes); err != nil {
		return fmt.Errorf("r.dao.UpdateScalars -> %w", err)
	}

	return nil
}

func (r *EventRepository) UpdateCover(ctx context.Context, id uint, key string) error {
	if err := r.dao.UpdateCover(ctx, id, key); err != nil {
		return fmt.Errorf("r.dao.UpdateCover -> %w", err)
	}

	return nil
}

func (r *EventRepository) SoftDelete(ctx context.Context, id uint) error {
	if err := r.dao.SoftDelete(ctx, id); err != nil {
		return fmt.Errorf("r.dao.SoftDelete -> %w", err)
	}

	return nil
}

func (r *EventRepository) FindChildState(ctx context.Context, id uint) (domain.EventChildState, error) {
	cover, issueIDs, rules, pictureKeys, err := r.dao.FindChildState(ctx, id)
	if err != nil {
		return domain.EventChildState{}, fmt.Errorf("r.dao.FindChildState -> %w", err)
	}

	return domain.EventChildState{
		CoverPicKey: cover,
		IssueIDs:    issueIDs,
		Rules:       rules,
		PictureKeys: pictureKeys,
	}, nil
}

func (r *EventRepository) InsertRules(ctx context.Context, eventID uint, rules []string) ([]domain.Rule, error) {
	created, err := r.dao.InsertRules(ctx, eventID, rules)
	if err != nil {
		return nil, fmt.Errorf("r.dao.InsertRules -> %w", err)
	}

	return rulesDaoToDomain(created), nil
}

func (r *EventRepository) InsertPictures(ctx context.Context, eventID uint, keys []string) ([]domain.EventPicture, error) {
	created, err := r.dao.InsertPictures(ctx, eventID, keys)
	if err != nil {
		return nil, fmt.Errorf("r.dao.InsertPictures -> %w", err)
	}

	return picturesDaoToDomain(created), nil
}

func (r *EventRepository) InsertIssues(ctx context.Context, eventID uint, issueIDs []uint) error {
	if err := r.dao.InsertIssues(ctx, eventID, issueIDs); err != nil {
		return fmt.Errorf("r.dao.InsertIssues -> %w", err)
	}

	return nil
}

func (r *EventRepository) ReplaceRules(ctx context.Context, eventID uint, rules []string) error {
	if err := r.dao.ReplaceRules(ctx, eventID, rules); err != nil {
		return fmt.Errorf("r.dao.ReplaceRules -> %w", err)
	}

	return nil
}

func (r *EventRepository) ReplaceIssues(ctx context.Context, eventID uint, issueIDs []uint) error {
	if err := r.dao.ReplaceIssues(ctx, eventID, issueIDs); err != nil {
		return fmt.Errorf("r.dao.ReplaceIssues -> %w", err)
	}

	return nil
}

func (r *EventRepository) ReplacePictures(ctx context.Context, eventID uint, keys []string) error {
	if err := r.dao.ReplacePictures(ctx, eventID, keys); err != nil {
		return fmt.Errorf("r.dao.ReplacePictures -> %w", err)
	}

	return nil
}

func (r *EventRepository) DeleteRules(ctx context.Context, eventID uint) error {
	return r.dao.DeleteRules(ctx, eventID)
}

func (r *EventRepository) DeletePictures(ctx context.Context, eventID uint) error {
	return r.dao.DeletePictures(ctx, eventID)
}

func (r *EventRepository) DeleteIssues(ctx context.Context, eventID uint) error {
	return r.dao.DeleteIssues(ctx, eventID)
}

func (r *EventRepository) DeleteParticipants(ctx context.Context, eventID uint) error {
	return r.dao.DeleteParticipants(ctx, eventID)
}

func (r *EventRepository) FindIssueTypes(ctx context.Context, ids []uint) ([]domain.IssueType, error) {
	found, err := r.dao.FindIssueTypesByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindIssueTypesByIDs -> %w", err)
	}

	return issueTypesDaoToDomain(found), nil
}

func (r *EventRepository) FindParticipated(ctx context.Context, userID uint) ([]domain.Event, error) {
	ids, err := r.dao.FindParticipatedIDs(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindParticipatedIDs -> %w", err)
	}

	return r.FindAggregates(ctx, ids)
}

func (r *EventRepository) FindCreated(ctx context.Context, userID uint) ([]domain.Event, error) {
	ids, err := r.dao.FindCreatedIDs(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindCreatedIDs -> %w", err)
	}

	return r.FindAggregates(ctx, ids)
}

func (r *EventRepository) CountByStatus(ctx context.Context) (total, upcoming, past int64, err error) {
	total, upcoming, past, err = r.dao.CountByStatus(ctx)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("r.dao.CountByStatus -> %w", err)
	}

	return total, upcoming, past, nil
}

func eventDaoToDomain(e dao.Event) domain.Event {
	return domain.Event{
		ID:                e.ID,
		CreatorID:         e.CreatorID,
		Name:              e.Name,
		Description:       e.Description,
		Type:              e.Type,
		StartTime:         e.StartTime,
		EndTime:           e.EndTime,
		Capacity:          e.Capacity,
		Latitude:          e.Latitude,
		Longitude:         e.Longitude,
		IsDonationEnabled: e.IsDonationEnabled,
		CoverPicKey:       e.CoverPicKey,
		CreatedAt:         e.CreatedAt,
		UpdatedAt:         e.UpdatedAt,
	}
}

func rulesDaoToDomain(rules []dao.EventRule) []domain.Rule {
	out := make([]domain.Rule, 0, len(rules))
	for _, r := range rules {
		out = append(out, domain.Rule{ID: r.ID, EventID: r.EventID, Rule: r.Rule})
	}

	return out
}

func picturesDaoToDomain(pictures []dao.EventPicture) []domain.EventPicture {
	out := make([]domain.EventPicture, 0, len(pictures))
	for _, p := range pictures {
		out = append(out, domain.EventPicture{ID: p.ID, EventID: p.EventID, PicturePath: p.PicturePath})
	}

	return out
}

func issueTypesDaoToDomain(issues []dao.IssueType) []domain.IssueType {
	out := make([]domain.IssueType, 0, len(issues))
	for _, i := range issues {
		out = append(out, domain.IssueType{ID: i.ID, Name: i.Name})
	}

	return out
}
