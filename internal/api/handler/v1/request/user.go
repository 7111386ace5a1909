package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

type UpdateUserRequest struct {
	Username   *string `json:"username"`
	Email      *string `json:"email"`
	FirstName  *string `json:"firstName"`
	Bio        *string `json:"bio"`
	ProfilePic string  `json:"profilePic"`
}

func (req *UpdateUserRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Username, validation.NilOrNotEmpty, validation.Length(3, 30)),
		validation.Field(&req.Email, validation.NilOrNotEmpty, is.Email),
		validation.Field(&req.Bio, validation.Length(0, 500)),
	)
}

// Changes folds the non-nil scalar fields into a column change map.
func (req *UpdateUserRequest) Changes() map[string]interface{} {
	changes := map[string]interface{}{}
	if req.Username != nil {
		changes["username"] = *req.Username
	}
	if req.Email != nil {
		changes["email"] = *req.Email
	}
	if req.FirstName != nil {
		changes["first_name"] = *req.FirstName
	}
	if req.Bio != nil {
		changes["bio"] = *req.Bio
	}

	return changes
}

type ChangePasswordRequest struct {
	OldPassword string `json:"oldPassword"`
	NewPassword string `json:"newPassword"`
}

func (req *ChangePasswordRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.OldPassword, validation.Required),
		validation.Field(&req.NewPassword, validation.Required, validation.Length(6, 64)),
	)
}
