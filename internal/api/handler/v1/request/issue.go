package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
)

type AssociateIssueRequest struct {
	EventID     uint `json:"eventId"`
	IssueTypeID uint `json:"issueTypeId"`
}

func (req *AssociateIssueRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.EventID, validation.Required, validation.Min(uint(1))),
		validation.Field(&req.IssueTypeID, validation.Required, validation.Min(uint(1))),
	)
}
