package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
)

type CreateRatingRequest struct {
	RatedUserID uint   `json:"ratedUserId"`
	Rating      int    `json:"rating"`
	Reason      string `json:"reason"`
}

func (req *CreateRatingRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.RatedUserID, validation.Required, validation.Min(uint(1))),
		validation.Field(&req.Rating, validation.Required, validation.Min(1), validation.Max(5)),
		validation.Field(&req.Reason, validation.Length(0, 500)),
	)
}

type UpdateRatingRequest struct {
	RatedUserID uint   `json:"ratedUserId"`
	Rating      int    `json:"rating"`
	Reason      string `json:"reason"`
}

func (req *UpdateRatingRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.RatedUserID, validation.Required, validation.Min(uint(1))),
		validation.Field(&req.Rating, validation.Required, validation.Min(1), validation.Max(5)),
		validation.Field(&req.Reason, validation.Length(0, 500)),
	)
}
