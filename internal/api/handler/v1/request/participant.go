package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
)

type JoinEventRequest struct {
	EventID uint `json:"eventId"`
}

func (req *JoinEventRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.EventID, validation.Required, validation.Min(uint(1))),
	)
}

type DidAttendRequest struct {
	EventID   uint  `json:"eventId"`
	UserID    uint  `json:"userId"`
	DidAttend *bool `json:"didAttend"`
}

func (req *DidAttendRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.EventID, validation.Required, validation.Min(uint(1))),
		validation.Field(&req.UserID, validation.Required, validation.Min(uint(1))),
		validation.Field(&req.DidAttend, validation.NotNil),
	)
}
