package service

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gatherly/gatherly-api/internal/domain"
)

type fakeImageStore struct {
	mu      sync.Mutex
	puts    []string
	deletes []string
	nextKey int
}

func (f *fakeImageStore) PutBase64(_ context.Context, payload string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.puts = append(f.puts, payload)
	f.nextKey++

	return fmt.Sprintf("key-%d", f.nextKey), nil
}

func (f *fakeImageStore) Get(context.Context, string) (io.ReadCloser, string, error) {
	return io.NopCloser(strings.NewReader("")), "image/jpeg", nil
}

func (f *fakeImageStore) Delete(_ context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deletes = append(f.deletes, key)

	return nil
}

type fakeEventRepo struct {
	mu sync.Mutex

	childState domain.EventChildState
	aggregate  domain.Event

	scalarChanges    map[string]interface{}
	replacedIssues   *[]uint
	replacedRules    *[]string
	replacedPictures *[]string
	coverKey         string

	insertedRules    []string
	insertedPictures []string
	insertedIssues   []uint

	deletedChildren []string
	softDeleted     bool
}

func (f *fakeEventRepo) Create(_ context.Context, event domain.Event) (domain.Event, error) {
	event.ID = 42

	return event, nil
}

func (f *fakeEventRepo) FindCreatorID(context.Context, uint) (uint, error) { return 7, nil }

func (f *fakeEventRepo) FindAggregate(context.Context, uint) (domain.Event, error) {
	return f.aggregate, nil
}

// FindAggregates returns rows in descending id order regardless of the
// requested order, like the creation-time sort of the real query.
func (f *fakeEventRepo) FindAggregates(_ context.Context, ids []uint) ([]domain.Event, error) {
	sorted := append([]uint(nil), ids...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] > sorted[j] })

	events := make([]domain.Event, 0, len(sorted))
	for _, id := range sorted {
		events = append(events, domain.Event{ID: id})
	}

	return events, nil
}

func (f *fakeEventRepo) FindCandidates(context.Context, domain.EventFilters) ([]domain.EventCandidate, error) {
	return []domain.EventCandidate{
		{ID: 1, Latitude: 48.8566, Longitude: 2.3522}, // Paris
		{ID: 2, Latitude: 45.7640, Longitude: 4.8357}, // Lyon
		{ID: 3, Latitude: 48.8606, Longitude: 2.3376}, // Paris, the Louvre
	}, nil
}

func (f *fakeEventRepo) FindSuggested(context.Context, uint) ([]domain.Event, error) {
	return []domain.Event{}, nil
}

func (f *fakeEventRepo) UpdateScalars(_ context.Context, _ uint, changes map[string]interface{}) error {
	f.scalarChanges = changes

	return nil
}

func (f *fakeEventRepo) UpdateCover(_ context.Context, _ uint, key string) error {
	f.coverKey = key

	return nil
}

func (f *fakeEventRepo) SoftDelete(context.Context, uint) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.softDeleted = true

	return nil
}

func (f *fakeEventRepo) FindChildState(context.Context, uint) (domain.EventChildState, error) {
	return f.childState, nil
}

func (f *fakeEventRepo) InsertRules(_ context.Context, eventID uint, rules []string) ([]domain.Rule, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.insertedRules = rules
	created := make([]domain.Rule, 0, len(rules))
	for i, r := range rules {
		created = append(created, domain.Rule{ID: uint(i + 1), EventID: eventID, Rule: r})
	}

	return created, nil
}

func (f *fakeEventRepo) InsertPictures(_ context.Context, eventID uint, keys []string) ([]domain.EventPicture, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.insertedPictures = keys
	created := make([]domain.EventPicture, 0, len(keys))
	for i, k := range keys {
		created = append(created, domain.EventPicture{ID: uint(i + 1), EventID: eventID, PicturePath: k})
	}

	return created, nil
}

func (f *fakeEventRepo) InsertIssues(_ context.Context, _ uint, issueIDs []uint) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.insertedIssues = issueIDs

	return nil
}

func (f *fakeEventRepo) ReplaceRules(_ context.Context, _ uint, rules []string) error {
	f.replacedRules = &rules

	return nil
}

func (f *fakeEventRepo) ReplaceIssues(_ context.Context, _ uint, issueIDs []uint) error {
	f.replacedIssues = &issueIDs

	return nil
}

func (f *fakeEventRepo) ReplacePictures(_ context.Context, _ uint, keys []string) error {
	f.replacedPictures = &keys

	return nil
}

func (f *fakeEventRepo) deletedChild(name string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deletedChildren = append(f.deletedChildren, name)

	return nil
}

func (f *fakeEventRepo) DeleteRules(context.Context, uint) error { return f.deletedChild("rules") }
func (f *fakeEventRepo) DeletePictures(context.Context, uint) error {
	return f.deletedChild("pictures")
}
func (f *fakeEventRepo) DeleteIssues(context.Context, uint) error { return f.deletedChild("issues") }
func (f *fakeEventRepo) DeleteParticipants(context.Context, uint) error {
	return f.deletedChild("participants")
}

func (f *fakeEventRepo) FindIssueTypes(_ context.Context, ids []uint) ([]domain.IssueType, error) {
	types := make([]domain.IssueType, 0, len(ids))
	for _, id := range ids {
		types = append(types, domain.IssueType{ID: id, Name: fmt.Sprintf("issue-%d", id)})
	}

	return types, nil
}

func (f *fakeEventRepo) FindParticipated(context.Context, uint) ([]domain.Event, error) {
	return []domain.Event{}, nil
}

func (f *fakeEventRepo) FindCreated(context.Context, uint) ([]domain.Event, error) {
	return []domain.Event{}, nil
}

func TestEventServiceCreate(t *testing.T) {
	t.Run("rejects an empty issue list", func(t *testing.T) {
		svc := NewEventService(&fakeEventRepo{}, &fakeImageStore{})

		_, err := svc.Create(context.Background(), domain.Event{}, nil, []string{"no smoking"}, "", nil)

		assert.ErrorIs(t, err, ErrInvalidIssueCount)
	})

	t.Run("rejects more than three issues", func(t *testing.T) {
		svc := NewEventService(&fakeEventRepo{}, &fakeImageStore{})

		_, err := svc.Create(context.Background(), domain.Event{}, []uint{1, 2, 3, 4}, []string{"no smoking"}, "", nil)

		assert.ErrorIs(t, err, ErrInvalidIssueCount)
	})

	t.Run("rejects an empty rule list", func(t *testing.T) {
		svc := NewEventService(&fakeEventRepo{}, &fakeImageStore{})

		_, err := svc.Create(context.Background(), domain.Event{}, []uint{1}, nil, "", nil)

		assert.ErrorIs(t, err, ErrNoRules)
	})

	t.Run("stores cover and inserts all children", func(t *testing.T) {
		repo := &fakeEventRepo{}
		store := &fakeImageStore{}
		svc := NewEventService(repo, store)

		created, err := svc.Create(
			context.Background(),
			domain.Event{Name: "Beach Cleanup"},
			[]uint{1, 2},
			[]string{"bring gloves", "no littering"},
			"/9j/cover",
			[]string{"iVBORpic"},
		)

		require.NoError(t, err)
		assert.Equal(t, uint(42), created.ID)
		assert.NotEmpty(t, created.CoverPicKey)
		assert.Len(t, created.Issues, 2)
		assert.Len(t, created.Rules, 2)
		assert.Len(t, created.Pictures, 1)
		assert.EqualValues(t, 0, created.ParticipantsCount)
		assert.Len(t, store.puts, 2, "cover plus one picture")
		assert.Equal(t, []uint{1, 2}, repo.insertedIssues)
	})
}

func TestEventServiceUpdate(t *testing.T) {
	t.Run("strips protected columns", func(t *testing.T) {
		repo := &fakeEventRepo{}
		svc := NewEventService(repo, &fakeImageStore{})

		_, err := svc.Update(context.Background(), 42, EventUpdate{
			Changes: map[string]interface{}{"name": "New Name", "creator_id": 99, "id": 1},
		})

		require.NoError(t, err)
		assert.Equal(t, map[string]interface{}{"name": "New Name"}, repo.scalarChanges)
	})

	t.Run("skips replacement when the collection is unchanged", func(t *testing.T) {
		repo := &fakeEventRepo{
			childState: domain.EventChildState{
				IssueIDs: []uint{1, 2},
				Rules:    []string{"a", "b"},
			},
		}
		svc := NewEventService(repo, &fakeImageStore{})

		sameIssues := []uint{2, 1} // order must not matter
		sameRules := []string{"b", "a"}
		_, err := svc.Update(context.Background(), 42, EventUpdate{
			IssueIDs: &sameIssues,
			Rules:    &sameRules,
		})

		require.NoError(t, err)
		assert.Nil(t, repo.replacedIssues)
		assert.Nil(t, repo.replacedRules)
	})

	t.Run("replaces a changed collection wholesale", func(t *testing.T) {
		repo := &fakeEventRepo{
			childState: domain.EventChildState{IssueIDs: []uint{1, 2}},
		}
		svc := NewEventService(repo, &fakeImageStore{})

		desired := []uint{2, 3}
		_, err := svc.Update(context.Background(), 42, EventUpdate{IssueIDs: &desired})

		require.NoError(t, err)
		require.NotNil(t, repo.replacedIssues)
		assert.Equal(t, []uint{2, 3}, *repo.replacedIssues)
	})

	t.Run("picture reconciliation stores new payloads and deletes removed keys", func(t *testing.T) {
		repo := &fakeEventRepo{
			childState: domain.EventChildState{PictureKeys: []string{"old-1", "old-2"}},
		}
		store := &fakeImageStore{}
		svc := NewEventService(repo, store)

		desired := []string{"old-1", "/9j/newpayload"}
		_, err := svc.Update(context.Background(), 42, EventUpdate{Pictures: &desired})

		require.NoError(t, err)
		assert.Equal(t, []string{"/9j/newpayload"}, store.puts)
		assert.Equal(t, []string{"old-2"}, store.deletes)
		require.NotNil(t, repo.replacedPictures)
		assert.Len(t, *repo.replacedPictures, 2)
		assert.Contains(t, *repo.replacedPictures, "old-1")
	})

	t.Run("cover replacement deletes the previous object", func(t *testing.T) {
		repo := &fakeEventRepo{
			childState: domain.EventChildState{CoverPicKey: "old-cover"},
		}
		store := &fakeImageStore{}
		svc := NewEventService(repo, store)

		_, err := svc.Update(context.Background(), 42, EventUpdate{CoverPayload: "/9j/cover"})

		require.NoError(t, err)
		assert.Equal(t, []string{"old-cover"}, store.deletes)
		assert.NotEmpty(t, repo.coverKey)
	})

	t.Run("rejects clearing all issues", func(t *testing.T) {
		svc := NewEventService(&fakeEventRepo{}, &fakeImageStore{})

		empty := []uint{}
		_, err := svc.Update(context.Background(), 42, EventUpdate{IssueIDs: &empty})

		assert.ErrorIs(t, err, ErrInvalidIssueCount)
	})
}

func TestEventServiceDelete(t *testing.T) {
	repo := &fakeEventRepo{
		childState: domain.EventChildState{
			CoverPicKey: "cover",
			PictureKeys: []string{"pic-1", "pic-2"},
		},
	}
	store := &fakeImageStore{}
	svc := NewEventService(repo, store)

	err := svc.Delete(context.Background(), 42)

	require.NoError(t, err)
	sort.Strings(store.deletes)
	assert.Equal(t, []string{"cover", "pic-1", "pic-2"}, store.deletes)
	assert.True(t, repo.softDeleted)
	sort.Strings(repo.deletedChildren)
	assert.Equal(t, []string{"issues", "participants", "pictures", "rules"}, repo.deletedChildren)
}

func TestEventServiceDiscover(t *testing.T) {
	lat, lon, radius := 48.8566, 2.3522, 5000.0

	t.Run("rejects a partial geo filter", func(t *testing.T) {
		svc := NewEventService(&fakeEventRepo{}, &fakeImageStore{})

		_, err := svc.Discover(context.Background(), domain.EventFilters{Latitude: &lat})

		assert.ErrorIs(t, err, ErrPartialGeoFilter)
	})

	t.Run("prunes candidates outside the circle", func(t *testing.T) {
		svc := NewEventService(&fakeEventRepo{}, &fakeImageStore{})

		events, err := svc.Discover(context.Background(), domain.EventFilters{
			Latitude:  &lat,
			Longitude: &lon,
			Radius:    &radius,
		})

		require.NoError(t, err)
		ids := make([]uint, 0, len(events))
		for _, e := range events {
			ids = append(ids, e.ID)
		}
		assert.Equal(t, []uint{1, 3}, ids, "Lyon is outside a 5km circle around Paris")
	})

	t.Run("geo results come back closest first", func(t *testing.T) {
		svc := NewEventService(&fakeEventRepo{}, &fakeImageStore{})

		louvreLat, louvreLon := 48.8606, 2.3376
		events, err := svc.Discover(context.Background(), domain.EventFilters{
			Latitude:  &louvreLat,
			Longitude: &louvreLon,
			Radius:    &radius,
		})

		require.NoError(t, err)
		ids := make([]uint, 0, len(events))
		for _, e := range events {
			ids = append(ids, e.ID)
		}
		assert.Equal(t, []uint{3, 1}, ids, "the Louvre event is nearer this center than the Paris one")
	})

	t.Run("no geo filter keeps every candidate", func(t *testing.T) {
		svc := NewEventService(&fakeEventRepo{}, &fakeImageStore{})

		events, err := svc.Discover(context.Background(), domain.EventFilters{})

		require.NoError(t, err)
		assert.Len(t, events, 3)
	})
}

func TestEventServiceCanMutate(t *testing.T) {
	svc := NewEventService(&fakeEventRepo{}, &fakeImageStore{})

	ok, err := svc.CanMutate(context.Background(), domain.User{ID: 7}, 42)
	require.NoError(t, err)
	assert.True(t, ok, "creator may mutate")

	ok, err = svc.CanMutate(context.Background(), domain.User{ID: 8}, 42)
	require.NoError(t, err)
	assert.False(t, ok, "stranger may not")

	ok, err = svc.CanMutate(context.Background(), domain.User{ID: 8, IsAdmin: true}, 42)
	require.NoError(t, err)
	assert.True(t, ok, "admin bypasses ownership")
}
