package request

import (
	"errors"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
)

type CreateEventRequest struct {
	Name              string    `json:"name"`
	Description       string    `json:"description"`
	Type              string    `json:"type"`
	StartTime         time.Time `json:"startTime"`
	EndTime           time.Time `json:"endTime"`
	Capacity          int       `json:"capacity"`
	Latitude          float64   `json:"latitude"`
	Longitude         float64   `json:"longitude"`
	IsDonationEnabled bool      `json:"isDonationEnabled"`
	IssueIDs          []uint    `json:"issueIds"`
	Rules             []string  `json:"rules"`
	CoverPicture      string    `json:"coverPicture"`
	Pictures          []string  `json:"pictures"`
}

func (req *CreateEventRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Name, validation.Required, validation.Length(2, 100)),
		validation.Field(&req.Description, validation.Length(0, 2000)),
		validation.Field(&req.Type, validation.Required, validation.Length(2, 50)),
		validation.Field(&req.StartTime, validation.Required),
		validation.Field(&req.EndTime, validation.Required),
		validation.Field(&req.Capacity, validation.Min(0)),
		validation.Field(&req.IssueIDs, validation.Required, validation.Length(1, 3)),
		validation.Field(&req.Rules, validation.Required, validation.Length(1, 0)),
	)
}

type UpdateEventRequest struct {
	EventID           uint       `json:"eventId"`
	Name              *string    `json:"name"`
	Description       *string    `json:"description"`
	Type              *string    `json:"type"`
	StartTime         *time.Time `json:"startTime"`
	EndTime           *time.Time `json:"endTime"`
	Capacity          *int       `json:"capacity"`
	Latitude          *float64   `json:"latitude"`
	Longitude         *float64   `json:"longitude"`
	IsDonationEnabled *bool      `json:"isDonationEnabled"`
	IssueIDs          *[]uint    `json:"issueIds"`
	Rules             *[]string  `json:"rules"`
	CoverPicture      string     `json:"coverPicture"`
	Pictures          *[]string  `json:"pictures"`
}

func (req *UpdateEventRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.EventID, validation.Required, validation.Min(uint(1))),
		validation.Field(&req.Name, validation.NilOrNotEmpty, validation.Length(2, 100)),
		validation.Field(&req.Type, validation.NilOrNotEmpty, validation.Length(2, 50)),
	)
}

// Changes folds the non-nil scalar fields into a column change map. The
// child collections and cover are reconciled separately.
func (req *UpdateEventRequest) Changes() map[string]interface{} {
	changes := map[string]interface{}{}
	if req.Name != nil {
		changes["name"] = *req.Name
	}
	if req.Description != nil {
		changes["description"] = *req.Description
	}
	if req.Type != nil {
		changes["type"] = *req.Type
	}
	if req.StartTime != nil {
		changes["start_time"] = *req.StartTime
	}
	if req.EndTime != nil {
		changes["end_time"] = *req.EndTime
	}
	if req.Capacity != nil {
		changes["capacity"] = *req.Capacity
	}
	if req.Latitude != nil {
		changes["latitude"] = *req.Latitude
	}
	if req.Longitude != nil {
		changes["longitude"] = *req.Longitude
	}
	if req.IsDonationEnabled != nil {
		changes["is_donation_enabled"] = *req.IsDonationEnabled
	}

	return changes
}

// ListEventsRequest carries the discovery filters, bound from the query
// string. Geo fields are all-or-none.
type ListEventsRequest struct {
	Name              string   `form:"name"`
	Description       string   `form:"description"`
	Type              string   `form:"type"`
	IsDonationEnabled bool     `form:"isDonationEnabled"`
	Issues            []uint   `form:"issues"`
	Status            string   `form:"status"`
	Latitude          *float64 `form:"latitude"`
	Longitude         *float64 `form:"longitude"`
	Radius            *float64 `form:"radius"`
}

var errPartialGeoFilter = errors.New("latitude, longitude and radius must be supplied together")

func (req *ListEventsRequest) Validate() error {
	err := validation.ValidateStruct(
		req,
		validation.Field(&req.Status, validation.In("", "all", "completed", "upcoming")),
		validation.Field(&req.Radius, validation.Min(0.0)),
	)
	if err != nil {
		return err
	}

	supplied := 0
	for _, v := range []*float64{req.Latitude, req.Longitude, req.Radius} {
		if v != nil {
			supplied++
		}
	}
	if supplied != 0 && supplied != 3 {
		return errPartialGeoFilter
	}

	return nil
}
