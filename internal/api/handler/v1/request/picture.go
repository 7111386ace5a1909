package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
)

type AddPicturesRequest struct {
	EventID  uint     `json:"eventId"`
	Pictures []string `json:"pictures"`
}

func (req *AddPicturesRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.EventID, validation.Required, validation.Min(uint(1))),
		validation.Field(&req.Pictures, validation.Required, validation.Length(1, 0)),
	)
}
