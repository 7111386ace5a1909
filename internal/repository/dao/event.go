package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

var ErrEventNotFound = errors.New("event not found")

type Event struct {
	ID uint `gorm:"primaryKey"`

	CreatorID uint `gorm:"index;not null"`
	Creator   User `gorm:"foreignKey:CreatorID"`

	Name              string `gorm:"not null"`
	Description       string
	Type              string
	StartTime         time.Time `gorm:"not null"`
	EndTime           time.Time `gorm:"not null"`
	Capacity          int
	Latitude          float64
	Longitude         float64
	IsDonationEnabled bool `gorm:"not null;default:false"`
	CoverPicKey       string

	CreatedAt time.Time      `gorm:"not null"`
	UpdatedAt time.Time      `gorm:"not null"`
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

type EventRule struct {
	ID      uint   `gorm:"primaryKey"`
	EventID uint   `gorm:"index;not null"`
	Rule    string `gorm:"not null"`
}

type EventPicture struct {
	ID          uint   `gorm:"primaryKey"`
	EventID     uint   `gorm:"index;not null"`
	PicturePath string `gorm:"not null"`
}

type IssueType struct {
	ID   uint   `gorm:"primaryKey"`
	Name string `gorm:"unique;not null"`
}

type AddressedIssue struct {
	ID          uint `gorm:"primaryKey"`
	EventID     uint `gorm:"index;not null"`
	IssueTypeID uint `gorm:"not null"`
}

// EventFilters mirrors the optional discovery predicates. Geo filtering is
// not part of the SQL phase; candidates are narrowed in-process.
type EventFilters struct {
	Name         string
	Description  string
	Type         string
	DonationOnly bool
	Completed    bool
	Upcoming     bool
	IssueIDs     []uint
}

// scopes folds the supplied filters into gorm predicates. Absent filters
// contribute nothing; composition is pure AND and order-independent.
func (f EventFilters) scopes() []func(*gorm.DB) *gorm.DB {
	var scopes []func(*gorm.DB) *gorm.DB

	if f.Name != "" {
		scopes = append(scopes, func(tx *gorm.DB) *gorm.DB {
			return tx.Where("events.name ILIKE ?", "%"+f.Name+"%")
		})
	}
	if f.Description != "" {
		scopes = append(scopes, func(tx *gorm.DB) *gorm.DB {
			return tx.Where("events.description ILIKE ?", "%"+f.Description+"%")
		})
	}
	if f.Type != "" {
		scopes = append(scopes, func(tx *gorm.DB) *gorm.DB {
			return tx.Where("events.type = ?", f.Type)
		})
	}
	if f.DonationOnly {
		scopes = append(scopes, func(tx *gorm.DB) *gorm.DB {
			return tx.Where("events.is_donation_enabled = true")
		})
	}
	if f.Completed {
		scopes = append(scopes, func(tx *gorm.DB) *gorm.DB {
			return tx.Where("events.end_time < NOW()")
		})
	}
	if f.Upcoming {
		scopes = append(scopes, func(tx *gorm.DB) *gorm.DB {
			return tx.Where("events.start_time > NOW()")
		})
	}
	if len(f.IssueIDs) > 0 {
		scopes = append(scopes, func(tx *gorm.DB) *gorm.DB {
			return tx.Where(
				"events.id IN (?)",
				tx.Session(&gorm.Session{NewDB: true}).
					Model(&AddressedIssue{}).
					Select("event_id").
					Where("issue_type_id IN ?", f.IssueIDs),
			)
		})
	}

	return scopes
}

// EventCandidate is the first-phase discovery row: id plus coordinates.
type EventCandidate struct {
	ID        uint
	Latitude  float64
	Longitude float64
}

type EventDAO struct {
	db *gorm.DB
}

func NewEventDAO(db *gorm.DB) *EventDAO {
	return &EventDAO{
		db: db,
	}
}

func (d *EventDAO) Insert(ctx context.Context, event Event) (Event, error) {
	result := d.db.WithContext(ctx).Create(&event)
	if result.Error != nil {
		return Event{}, result.Error
	}

	return event, nil
}

func (d *EventDAO) FindByID(ctx context.Context, id uint) (Event, error) {
	var event Event

	result := d.db.WithContext(ctx).First(&event, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Event{}, ErrEventNotFound
		}

		return Event{}, result.Error
	}

	return event, nil
}

// FindCreatorID returns the creator of a non-deleted event.
func (d *EventDAO) FindCreatorID(ctx context.Context, id uint) (uint, error) {
	event, err := d.FindByID(ctx, id)
	if err != nil {
		return 0, err
	}

	return event.CreatorID, nil
}

// FindCandidates runs the lightweight filter query returning ids and
// coordinates only.
func (d *EventDAO) FindCandidates(ctx context.Context, filters EventFilters) ([]EventCandidate, error) {
	var candidates []EventCandidate

	result := d.db.WithContext(ctx).Model(&Event{}).
		Select("events.id, events.latitude, events.longitude").
		Scopes(filters.scopes()...).
		Order("events.created_at DESC").
		Scan(&candidates)
	if result.Error != nil {
		return nil, result.Error
	}

	return candidates, nil
}

// FindSuggestedIDs returns non-deleted events sharing at least one issue
// type with the source event, excluding the source, newest first.
func (d *EventDAO) FindSuggestedIDs(ctx context.Context, eventID uint) ([]uint, error) {
	sourceIssues := d.db.Model(&AddressedIssue{}).
		Select("issue_type_id").
		Where("event_id = ?", eventID)

	// created_at rides along for the ORDER BY under DISTINCT, so the scan
	// target carries both columns.
	var rows []struct {
		ID        uint
		CreatedAt time.Time
	}
	result := d.db.WithContext(ctx).Model(&Event{}).
		Select("DISTINCT events.id, events.created_at").
		Joins("JOIN addressed_issues ON addressed_issues.event_id = events.id").
		Where("addressed_issues.issue_type_id IN (?)", sourceIssues).
		Where("events.id <> ?", eventID).
		Order("events.created_at DESC").
		Scan(&rows)
	if result.Error != nil {
		return nil, result.Error
	}

	ids := make([]uint, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.ID)
	}

	return ids, nil
}

// UpdateScalars applies a partial attribute update. Protected columns
// (creator_id, created_at, deleted_at) are stripped upstream.
func (d *EventDAO) UpdateScalars(ctx context.Context, id uint, changes map[string]interface{}) error {
	result := d.db.WithContext(ctx).Model(&Event{}).Where("id = ?", id).Updates(changes)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrEventNotFound
	}

	return nil
}

func (d *EventDAO) UpdateCover(ctx context.Context, id uint, key string) error {
	result := d.db.WithContext(ctx).Model(&Event{}).Where("id = ?", id).
		Update("cover_pic_key", key)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrEventNotFound
	}

	return nil
}

// SoftDelete marks the event deleted and clears its cover key in one update.
func (d *EventDAO) SoftDelete(ctx context.Context, id uint) error {
	result := d.db.WithContext(ctx).Model(&Event{}).Where("id = ?", id).
		Updates(map[string]interface{}{
			"cover_pic_key": "",
			"deleted_at":    time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrEventNotFound
	}

	return nil
}

// FindChildState reads the event's current cover key and child collections
// ahead of reconciliation.
func (d *EventDAO) FindChildState(ctx context.Context, id uint) (string, []uint, []string, []string, error) {
	event, err := d.FindByID(ctx, id)
	if err != nil {
		return "", nil, nil, nil, err
	}

	var issueIDs []uint
	if err := d.db.WithContext(ctx).Model(&AddressedIssue{}).
		Where("event_id = ?", id).
		Pluck("issue_type_id", &issueIDs).Error; err != nil {
		return "", nil, nil, nil, err
	}

	var rules []string
	if err := d.db.WithContext(ctx).Model(&EventRule{}).
		Where("event_id = ?", id).
		Pluck("rule", &rules).Error; err != nil {
		return "", nil, nil, nil, err
	}

	var pictureKeys []string
	if err := d.db.WithContext(ctx).Model(&EventPicture{}).
		Where("event_id = ?", id).
		Pluck("picture_path", &pictureKeys).Error; err != nil {
		return "", nil, nil, nil, err
	}

	return event.CoverPicKey, issueIDs, rules, pictureKeys, nil
}

func (d *EventDAO) InsertRules(ctx context.Context, eventID uint, rules []string) ([]EventRule, error) {
	rows := make([]EventRule, 0, len(rules))
	for _, rule := range rules {
		rows = append(rows, EventRule{EventID: eventID, Rule: rule})
	}

	result := d.db.WithContext(ctx).Create(&rows)
	if result.Error != nil {
		return nil, result.Error
	}

	return rows, nil
}

func (d *EventDAO) InsertPictures(ctx context.Context, eventID uint, keys []string) ([]EventPicture, error) {
	rows := make([]EventPicture, 0, len(keys))
	for _, key := range keys {
		rows = append(rows, EventPicture{EventID: eventID, PicturePath: key})
	}

	result := d.db.WithContext(ctx).Create(&rows)
	if result.Error != nil {
		return nil, result.Error
	}

	return rows, nil
}

func (d *EventDAO) InsertIssues(ctx context.Context, eventID uint, issueIDs []uint) error {
	rows := make([]AddressedIssue, 0, len(issueIDs))
	for _, issueID := range issueIDs {
		rows = append(rows, AddressedIssue{EventID: eventID, IssueTypeID: issueID})
	}

	result := d.db.WithContext(ctx).Create(&rows)
	if result.Error != nil {
		return result.Error
	}

	return nil
}

// ReplaceRules deletes all current rule rows and inserts the desired set.
func (d *EventDAO) ReplaceRules(ctx context.Context, eventID uint, rules []string) error {
	if err := d.DeleteRules(ctx, eventID); err != nil {
		return err
	}
	if len(rules) == 0 {
		return nil
	}

	_, err := d.InsertRules(ctx, eventID, rules)

	return err
}

// ReplaceIssues deletes all current associations and inserts the desired set.
func (d *EventDAO) ReplaceIssues(ctx context.Context, eventID uint, issueIDs []uint) error {
	if err := d.DeleteIssues(ctx, eventID); err != nil {
		return err
	}
	if len(issueIDs) == 0 {
		return nil
	}

	return d.InsertIssues(ctx, eventID, issueIDs)
}

// ReplacePictures deletes all current picture rows and inserts the desired
// key set.
func (d *EventDAO) ReplacePictures(ctx context.Context, eventID uint, keys []string) error {
	if err := d.DeletePictures(ctx, eventID); err != nil {
		return err
	}
	if len(keys) == 0 {
		return nil
	}

	_, err := d.InsertPictures(ctx, eventID, keys)

	return err
}

func (d *EventDAO) DeleteRules(ctx context.Context, eventID uint) error {
	return d.db.WithContext(ctx).Where("event_id = ?", eventID).Delete(&EventRule{}).Error
}

func (d *EventDAO) DeletePictures(ctx context.Context, eventID uint) error {
	return d.db.WithContext(ctx).Where("event_id = ?", eventID).Delete(&EventPicture{}).Error
}

func (d *EventDAO) DeleteIssues(ctx context.Context, eventID uint) error {
	return d.db.WithContext(ctx).Where("event_id = ?", eventID).Delete(&AddressedIssue{}).Error
}

func (d *EventDAO) DeleteParticipants(ctx context.Context, eventID uint) error {
	return d.db.WithContext(ctx).Where("event_id = ?", eventID).Delete(&EventParticipant{}).Error
}

func (d *EventDAO) FindIssueTypesByIDs(ctx context.Context, ids []uint) ([]IssueType, error) {
	var issues []IssueType

	result := d.db.WithContext(ctx).Where("id IN ?", ids).Find(&issues)
	if result.Error != nil {
		return nil, result.Error
	}

	return issues, nil
}

// FindAggregates assembles full event aggregates for the given ids,
// ordered newest first.
func (d *EventDAO) FindAggregates(ctx context.Context, ids []uint) ([]Event, map[uint][]IssueType, map[uint][]EventRule, map[uint][]EventPicture, map[uint]int64, map[uint]float64, error) {
	if len(ids) == 0 {
		return nil, nil, nil, nil, nil, nil, nil
	}

	var events []Event
	if err := d.db.WithContext(ctx).Preload("Creator").
		Where("events.id IN ?", ids).
		Order("events.created_at DESC").
		Find(&events).Error; err != nil {
		return nil, nil, nil, nil, nil, nil, err
	}

	issues := make(map[uint][]IssueType)
	type issueRow struct {
		EventID uint
		ID      uint
		Name    string
	}
	var issueRows []issueRow
	if err := d.db.WithContext(ctx).Model(&AddressedIssue{}).
		Select("addressed_issues.event_id, issue_types.id, issue_types.name").
		Joins("JOIN issue_types ON issue_types.id = addressed_issues.issue_type_id").
		Where("addressed_issues.event_id IN ?", ids).
		Scan(&issueRows).Error; err != nil {
		return nil, nil, nil, nil, nil, nil, err
	}
	for _, r := range issueRows {
		issues[r.EventID] = append(issues[r.EventID], IssueType{ID: r.ID, Name: r.Name})
	}

	rules := make(map[uint][]EventRule)
	var ruleRows []EventRule
	if err := d.db.WithContext(ctx).Where("event_id IN ?", ids).Find(&ruleRows).Error; err != nil {
		return nil, nil, nil, nil, nil, nil, err
	}
	for _, r := range ruleRows {
		rules[r.EventID] = append(rules[r.EventID], r)
	}

	pictures := make(map[uint][]EventPicture)
	var pictureRows []EventPicture
	if err := d.db.WithContext(ctx).Where("event_id IN ?", ids).Find(&pictureRows).Error; err != nil {
		return nil, nil, nil, nil, nil, nil, err
	}
	for _, p := range pictureRows {
		pictures[p.EventID] = append(pictures[p.EventID], p)
	}

	counts := make(map[uint]int64)
	type countRow struct {
		EventID uint
		Count   int64
	}
	var countRows []countRow
	if err := d.db.WithContext(ctx).Model(&EventParticipant{}).
		Select("event_id, COUNT(*) AS count").
		Where("event_id IN ?", ids).
		Group("event_id").
		Scan(&countRows).Error; err != nil {
		return nil, nil, nil, nil, nil, nil, err
	}
	for _, c := range countRows {
		counts[c.EventID] = c.Count
	}

	ratings := make(map[uint]float64)
	type ratingRow struct {
		EventID uint
		Average float64
	}
	var ratingRows []ratingRow
	if err := d.db.WithContext(ctx).Model(&EventFeedback{}).
		Select("event_id, ROUND(AVG(rating)::numeric, 2) AS average").
		Where("event_id IN ?", ids).
		Group("event_id").
		Scan(&ratingRows).Error; err != nil {
		return nil, nil, nil, nil, nil, nil, err
	}
	for _, r := range ratingRows {
		ratings[r.EventID] = r.Average
	}

	return events, issues, rules, pictures, counts, ratings, nil
}

// FindParticipatedIDs returns non-deleted events the user has joined,
// newest first.
func (d *EventDAO) FindParticipatedIDs(ctx context.Context, userID uint) ([]uint, error) {
	var ids []uint

	result := d.db.WithContext(ctx).Model(&Event{}).
		Joins("JOIN event_participants ON event_participants.event_id = events.id").
		Where("event_participants.user_id = ?", userID).
		Order("events.created_at DESC").
		Pluck("events.id", &ids)
	if result.Error != nil {
		return nil, result.Error
	}

	return ids, nil
}

// FindCreatedIDs returns non-deleted events created by the user, newest first.
func (d *EventDAO) FindCreatedIDs(ctx context.Context, userID uint) ([]uint, error) {
	var ids []uint

	result := d.db.WithContext(ctx).Model(&Event{}).
		Where("creator_id = ?", userID).
		Order("created_at DESC").
		Pluck("id", &ids)
	if result.Error != nil {
		return nil, result.Error
	}

	return ids, nil
}

// CountByStatus returns total, upcoming and past counts of non-deleted events.
func (d *EventDAO) CountByStatus(ctx context.Context) (total, upcoming, past int64, err error) {
	tx := d.db.WithContext(ctx).Model(&Event{})

	if err = tx.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return 0, 0, 0, err
	}
	if err = tx.Session(&gorm.Session{}).Where("end_time > NOW()").Count(&upcoming).Error; err != nil {
		return 0, 0, 0, err
	}
	if err = tx.Session(&gorm.Session{}).Where("end_time < NOW()").Count(&past).Error; err != nil {
		return 0, 0, 0, err
	}

	return total, upcoming, past, nil
}
