package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
)

type AddRuleRequest struct {
	EventID uint   `json:"eventId"`
	Rule    string `json:"rule"`
}

func (req *AddRuleRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.EventID, validation.Required, validation.Min(uint(1))),
		validation.Field(&req.Rule, validation.Required, validation.Length(1, 500)),
	)
}

type UpdateRuleRequest struct {
	RuleID  uint   `json:"ruleId"`
	EventID uint   `json:"eventId"`
	Rule    string `json:"rule"`
}

func (req *UpdateRuleRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.RuleID, validation.Required, validation.Min(uint(1))),
		validation.Field(&req.EventID, validation.Required, validation.Min(uint(1))),
		validation.Field(&req.Rule, validation.Required, validation.Length(1, 500)),
	)
}
