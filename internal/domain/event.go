package domain

import "time"

type Event struct {
	ID                uint      `json:"id"`
	CreatorID         uint      `json:"creatorId"`
	Name              string    `json:"name"`
	Description       string    `json:"description"`
	Type              string    `json:"type"`
	StartTime         time.Time `json:"startTime"`
	EndTime           time.Time `json:"endTime"`
	Capacity          int       `json:"capacity"`
	Latitude          float64   `json:"latitude"`
	Longitude         float64   `json:"longitude"`
	IsDonationEnabled bool      `json:"isDonationEnabled"`
	CoverPicKey       string    `json:"coverPicPath"`
	CreatedAt         time.Time `json:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt"`

	// Aggregate fields, assembled per response.
	Creator           User           `json:"user"`
	Issues            []IssueType    `json:"issues"`
	Rules             []Rule         `json:"rules"`
	Pictures          []EventPicture `json:"pictures"`
	ParticipantsCount int64          `json:"participantsCount"`
	AverageRating     float64        `json:"averageRating"`
}

type Rule struct {
	ID      uint   `json:"id"`
	EventID uint   `json:"eventId"`
	Rule    string `json:"rule"`
}

type EventPicture struct {
	ID          uint   `json:"id"`
	EventID     uint   `json:"eventId"`
	PicturePath string `json:"picturePath"`
}

// EventFilters carries the optional discovery predicates. Zero values mean
// "no predicate"; geo fields are all-or-none (validated upstream).
type EventFilters struct {
	Name         string
	Description  string
	Type         string
	DonationOnly bool
	Status       EventStatus
	IssueIDs     []uint

	Latitude  *float64
	Longitude *float64
	Radius    *float64
}

// HasGeo reports whether the geo filter is fully supplied.
func (f EventFilters) HasGeo() bool {
	return f.Latitude != nil && f.Longitude != nil && f.Radius != nil
}

type EventStatus string

const (
	EventStatusAll       EventStatus = "all"
	EventStatusCompleted EventStatus = "completed"
	EventStatusUpcoming  EventStatus = "upcoming"
)

// EventCandidate is the lightweight first-phase row of a geo-filtered
// discovery query: enough to run the point-in-circle test without
// fetching the full aggregate.
type EventCandidate struct {
	ID        uint
	Latitude  float64
	Longitude float64
}

// EventChildState is the current persisted state of an event's child
// collections, read in one shot before reconciliation.
type EventChildState struct {
	CoverPicKey string
	IssueIDs    []uint
	Rules       []string
	PictureKeys []string
}
