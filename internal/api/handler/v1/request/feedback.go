package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
)

type CreateFeedbackRequest struct {
	EventID  uint   `json:"eventId"`
	Rating   int    `json:"rating"`
	Comments string `json:"comments"`
}

func (req *CreateFeedbackRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.EventID, validation.Required, validation.Min(uint(1))),
		validation.Field(&req.Rating, validation.Required, validation.Min(1), validation.Max(5)),
		validation.Field(&req.Comments, validation.Length(0, 1000)),
	)
}

type UpdateFeedbackRequest struct {
	EventID  uint   `json:"eventId"`
	Rating   int    `json:"rating"`
	Comments string `json:"comments"`
}

func (req *UpdateFeedbackRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.EventID, validation.Required, validation.Min(uint(1))),
		validation.Field(&req.Rating, validation.Required, validation.Min(1), validation.Max(5)),
		validation.Field(&req.Comments, validation.Length(0, 1000)),
	)
}
