package service

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/gatherly/gatherly-api/internal/domain"
	"github.com/gatherly/gatherly-api/internal/pkg/geo"
	"github.com/gatherly/gatherly-api/internal/pkg/setdiff"
	"github.com/gatherly/gatherly-api/internal/repository"
)

const maxIssuesPerEvent = 3

var (
	ErrEventNotFound     = repository.ErrEventNotFound
	ErrInvalidIssueCount = fmt.Errorf("an event must address between 1 and %v issue types", maxIssuesPerEvent)
	ErrNoRules           = errors.New("an event must have at least one rule")
	ErrPartialGeoFilter  = errors.New("latitude, longitude and radius must be supplied together")
)

// Columns an event update may never touch.
var protectedEventColumns = []string{"id", "creator_id", "created_at", "deleted_at"}

type EventRepository interface {
	Create(ctx context.Context, event domain.Event) (domain.Event, error)
	FindCreatorID(ctx context.Context, id uint) (uint, error)
	FindAggregate(ctx context.Context, id uint) (domain.Event, error)
	FindAggregates(ctx context.Context, ids []uint) ([]domain.Event, error)
	FindCandidates(ctx context.Context, filters domain.EventFilters) ([]domain.EventCandidate, error)
	FindSuggested(ctx context.Context, eventID uint) ([]domain.Event, error)
	UpdateScalars(ctx context.Context, id uint, changes map[string]interface{}) error
	UpdateCover(ctx context.Context, id uint, key string) error
	SoftDelete(ctx context.Context, id uint) error
	FindChildState(ctx context.Context, id uint) (domain.EventChildState, error)
	InsertRules(ctx context.Context, eventID uint, rules []string) ([]domain.Rule, error)
	InsertPictures(ctx context.Context, eventID uint, keys []string) ([]domain.EventPicture, error)
	InsertIssues(ctx context.Context, eventID uint, issueIDs []uint) error
	ReplaceRules(ctx context.Context, eventID uint, rules []string) error
	ReplaceIssues(ctx context.Context, eventID uint, issueIDs []uint) error
	ReplacePictures(ctx context.Context, eventID uint, keys []string) error
	DeleteRules(ctx context.Context, eventID uint) error
	DeletePictures(ctx context.Context, eventID uint) error
	DeleteIssues(ctx context.Context, eventID uint) error
	DeleteParticipants(ctx context.Context, eventID uint) error
	FindIssueTypes(ctx context.Context, ids []uint) ([]domain.IssueType, error)
	FindParticipated(ctx context.Context, userID uint) ([]domain.Event, error)
	FindCreated(ctx context.Context, userID uint) ([]domain.Event, error)
}

// EventUpdate is the desired target state of a PATCH. Nil collection
// pointers mean "leave unchanged"; Pictures entries are either keys of
// already-stored objects or fresh base64 payloads.
type EventUpdate struct {
	Changes      map[string]interface{}
	CoverPayload string
	IssueIDs     *[]uint
	Rules        *[]string
	Pictures     *[]string
}

type EventService struct {
	repo  EventRepository
	store ImageStore
}

func NewEventService(repo EventRepository, store ImageStore) *EventService {
	return &EventService{
		repo:  repo,
		store: store,
	}
}

// CanMutate reports whether the user may mutate the event: admins always,
// otherwise only the creator.
func (s *EventService) CanMutate(ctx context.Context, user domain.User, eventID uint) (bool, error) {
	if user.IsAdmin {
		return true, nil
	}

	creatorID, err := s.repo.FindCreatorID(ctx, eventID)
	if err != nil {
		return false, err
	}

	return user.ID == creatorID, nil
}

// Create validates the target aggregate, stores the cover first so its key
// lands on the event row, then fans the independent child inserts out
// concurrently. There is no transaction: a failed child insert after the
// row committed leaves a partial aggregate behind.
func (s *EventService) Create(ctx context.Context, event domain.Event, issueIDs []uint, rules []string, coverPayload string, picturePayloads []string) (domain.Event, error) {
	if len(issueIDs) == 0 || len(issueIDs) > maxIssuesPerEvent {
		return domain.Event{}, ErrInvalidIssueCount
	}
	if len(rules) == 0 {
		return domain.Event{}, ErrNoRules
	}

	if coverPayload != "" {
		key, err := s.store.PutBase64(ctx, coverPayload)
		if err != nil {
			return domain.Event{}, fmt.Errorf("s.store.PutBase64 -> %w", err)
		}
		event.CoverPicKey = key
	}

	creator := event.Creator
	created, err := s.repo.Create(ctx, event)
	if err != nil {
		return domain.Event{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	var (
		issues       []domain.IssueType
		createdRules []domain.Rule
		pictures     []domain.EventPicture
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		issues, err = s.repo.FindIssueTypes(gctx, issueIDs)

		return err
	})
	g.Go(func() error {
		var err error
		createdRules, err = s.repo.InsertRules(gctx, created.ID, rules)

		return err
	})
	g.Go(func() error {
		return s.repo.InsertIssues(gctx, created.ID, issueIDs)
	})
	if len(picturePayloads) > 0 {
		g.Go(func() error {
			keys := make([]string, 0, len(picturePayloads))
			for _, payload := range picturePayloads {
				key, err := s.store.PutBase64(gctx, payload)
				if err != nil {
					return err
				}
				keys = append(keys, key)
			}

			var err error
			pictures, err = s.repo.InsertPictures(gctx, created.ID, keys)

			return err
		})
	}
	if err = g.Wait(); err != nil {
		return domain.Event{}, fmt.Errorf("composing event children -> %w", err)
	}

	created.Creator = creator
	created.Issues = issues
	created.Rules = createdRules
	created.Pictures = pictures
	created.ParticipantsCount = 0

	return created, nil
}

// Update applies scalar changes, then reconciles each child collection
// against its desired set. Collections that differ (unordered comparison,
// both directions) are fully replaced: delete all current rows, insert the
// desired set. Event mutation is low-frequency; the redundant delete+insert
// keeps the reconciliation trivially idempotent.
func (s *EventService) Update(ctx context.Context, eventID uint, update EventUpdate) (domain.Event, error) {
	for _, column := range protectedEventColumns {
		delete(update.Changes, column)
	}

	if update.IssueIDs != nil && (len(*update.IssueIDs) == 0 || len(*update.IssueIDs) > maxIssuesPerEvent) {
		return domain.Event{}, ErrInvalidIssueCount
	}
	if update.Rules != nil && len(*update.Rules) == 0 {
		return domain.Event{}, ErrNoRules
	}

	if len(update.Changes) > 0 {
		if err := s.repo.UpdateScalars(ctx, eventID, update.Changes); err != nil {
			return domain.Event{}, fmt.Errorf("s.repo.UpdateScalars -> %w", err)
		}
	}

	state, err := s.repo.FindChildState(ctx, eventID)
	if err != nil {
		return domain.Event{}, fmt.Errorf("s.repo.FindChildState -> %w", err)
	}

	if update.IssueIDs != nil && setdiff.Different(state.IssueIDs, *update.IssueIDs) {
		if err = s.repo.ReplaceIssues(ctx, eventID, *update.IssueIDs); err != nil {
			return domain.Event{}, fmt.Errorf("s.repo.ReplaceIssues -> %w", err)
		}
	}

	if update.Rules != nil && setdiff.Different(state.Rules, *update.Rules) {
		if err = s.repo.ReplaceRules(ctx, eventID, *update.Rules); err != nil {
			return domain.Event{}, fmt.Errorf("s.repo.ReplaceRules -> %w", err)
		}
	}

	if update.Pictures != nil && setdiff.Different(state.PictureKeys, *update.Pictures) {
		if err = s.reconcilePictures(ctx, eventID, state.PictureKeys, *update.Pictures); err != nil {
			return domain.Event{}, err
		}
	}

	if update.CoverPayload != "" {
		if err = s.replaceCover(ctx, eventID, state.CoverPicKey, update.CoverPayload); err != nil {
			return domain.Event{}, err
		}
	}

	aggregate, err := s.repo.FindAggregate(ctx, eventID)
	if err != nil {
		return domain.Event{}, fmt.Errorf("s.repo.FindAggregate -> %w", err)
	}

	return aggregate, nil
}

// reconcilePictures converges the stored picture set onto desired. Desired
// entries that are not current keys are payloads: they are stored first so
// their keys can be inserted. Removed keys leave storage only after their
// rows are gone, so a failed row delete never strands a dangling reference.
func (s *EventService) reconcilePictures(ctx context.Context, eventID uint, current, desired []string) error {
	plan := setdiff.Reconcile(current, desired)

	kept := setdiff.Difference(desired, plan.ToAdd)
	keys := make([]string, 0, len(desired))
	keys = append(keys, kept...)
	for _, payload := range plan.ToAdd {
		key, err := s.store.PutBase64(ctx, payload)
		if err != nil {
			return fmt.Errorf("s.store.PutBase64 -> %w", err)
		}
		keys = append(keys, key)
	}

	if err := s.repo.ReplacePictures(ctx, eventID, keys); err != nil {
		return fmt.Errorf("s.repo.ReplacePictures -> %w", err)
	}

	for _, key := range plan.ToRemove {
		if err := s.store.Delete(ctx, key); err != nil {
			return fmt.Errorf("s.store.Delete -> %w", err)
		}
	}

	return nil
}

func (s *EventService) replaceCover(ctx context.Context, eventID uint, oldKey, payload string) error {
	newKey, err := s.store.PutBase64(ctx, payload)
	if err != nil {
		return fmt.Errorf("s.store.PutBase64 -> %w", err)
	}

	if oldKey != "" {
		if err = s.store.Delete(ctx, oldKey); err != nil {
			return fmt.Errorf("s.store.Delete -> %w", err)
		}
	}

	if err = s.repo.UpdateCover(ctx, eventID, newKey); err != nil {
		return fmt.Errorf("s.repo.UpdateCover -> %w", err)
	}

	return nil
}

// Delete tears an event down: its storage objects go first, then the four
// child-row deletions and the soft-delete of the event row run concurrently
// and are awaited together. Partial failure is not rolled back.
func (s *EventService) Delete(ctx context.Context, eventID uint) error {
	state, err := s.repo.FindChildState(ctx, eventID)
	if err != nil {
		return fmt.Errorf("s.repo.FindChildState -> %w", err)
	}

	keys := make([]string, 0, len(state.PictureKeys)+1)
	keys = append(keys, state.PictureKeys...)
	if state.CoverPicKey != "" {
		keys = append(keys, state.CoverPicKey)
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, key := range keys {
		key := key
		g.Go(func() error {
			return s.store.Delete(gctx, key)
		})
	}
	if err = g.Wait(); err != nil {
		return fmt.Errorf("deleting storage objects -> %w", err)
	}

	g, gctx = errgroup.WithContext(ctx)
	g.Go(func() error { return s.repo.DeletePictures(gctx, eventID) })
	g.Go(func() error { return s.repo.DeleteRules(gctx, eventID) })
	g.Go(func() error { return s.repo.DeleteIssues(gctx, eventID) })
	g.Go(func() error { return s.repo.DeleteParticipants(gctx, eventID) })
	g.Go(func() error { return s.repo.SoftDelete(gctx, eventID) })
	if err = g.Wait(); err != nil {
		return fmt.Errorf("tearing down event -> %w", err)
	}

	return nil
}

func (s *EventService) GetEvent(ctx context.Context, id uint) (domain.Event, error) {
	aggregate, err := s.repo.FindAggregate(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrEventNotFound) {
			return domain.Event{}, ErrEventNotFound
		}

		return domain.Event{}, fmt.Errorf("s.repo.FindAggregate -> %w", err)
	}

	return aggregate, nil
}

// Discover runs the filter pipeline. Geo filtering is two-phase: the
// candidate query returns ids plus coordinates, the point-in-circle test
// prunes in-process, and only survivors pay for aggregate assembly. With a
// geo filter active the results come back closest to the center first;
// otherwise they keep the newest-first query order.
func (s *EventService) Discover(ctx context.Context, filters domain.EventFilters) ([]domain.Event, error) {
	geoSupplied := 0
	for _, v := range []*float64{filters.Latitude, filters.Longitude, filters.Radius} {
		if v != nil {
			geoSupplied++
		}
	}
	if geoSupplied != 0 && geoSupplied != 3 {
		return nil, ErrPartialGeoFilter
	}

	candidates, err := s.repo.FindCandidates(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindCandidates -> %w", err)
	}

	if filters.HasGeo() {
		center := geo.Point{Latitude: *filters.Latitude, Longitude: *filters.Longitude}
		inside := candidates[:0]
		distances := make(map[uint]float64, len(candidates))
		for _, c := range candidates {
			d := geo.DistanceMeters(geo.Point{Latitude: c.Latitude, Longitude: c.Longitude}, center)
			if d <= *filters.Radius {
				inside = append(inside, c)
				distances[c.ID] = d
			}
		}
		candidates = inside
		sort.Slice(candidates, func(i, j int) bool {
			return distances[candidates[i].ID] < distances[candidates[j].ID]
		})
	}

	if len(candidates) == 0 {
		return []domain.Event{}, nil
	}

	ids := make([]uint, 0, len(candidates))
	for _, c := range candidates {
		ids = append(ids, c.ID)
	}

	aggregates, err := s.repo.FindAggregates(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindAggregates -> %w", err)
	}

	// The aggregate query sorts by creation time; reapply the distance
	// ranking when one was computed.
	if filters.HasGeo() {
		byID := make(map[uint]domain.Event, len(aggregates))
		for _, event := range aggregates {
			byID[event.ID] = event
		}
		ordered := make([]domain.Event, 0, len(aggregates))
		for _, id := range ids {
			if event, ok := byID[id]; ok {
				ordered = append(ordered, event)
			}
		}
		aggregates = ordered
	}

	return aggregates, nil
}

// Suggested returns other events sharing at least one issue type with the
// source event, newest first.
func (s *EventService) Suggested(ctx context.Context, eventID uint) ([]domain.Event, error) {
	if _, err := s.repo.FindCreatorID(ctx, eventID); err != nil {
		if errors.Is(err, repository.ErrEventNotFound) {
			return nil, ErrEventNotFound
		}

		return nil, fmt.Errorf("s.repo.FindCreatorID -> %w", err)
	}

	suggested, err := s.repo.FindSuggested(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindSuggested -> %w", err)
	}

	return suggested, nil
}

func (s *EventService) Participated(ctx context.Context, userID uint) ([]domain.Event, error) {
	events, err := s.repo.FindParticipated(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindParticipated -> %w", err)
	}

	return events, nil
}

func (s *EventService) Created(ctx context.Context, userID uint) ([]domain.Event, error) {
	events, err := s.repo.FindCreated(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindCreated -> %w", err)
	}

	return events, nil
}
