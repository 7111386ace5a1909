package response

import (
	"github.com/gatherly/gatherly-api/internal/domain"
)

type LoginResponse struct {
	Token string      `json:"token"`
	User  domain.User `json:"user"`
}

type LoginStatusResponse struct {
	LoggedIn bool         `json:"loggedIn"`
	User     *domain.User `json:"user,omitempty"`
}

type JoinStatusResponse struct {
	IsParticipant   bool `json:"isParticipant"`
	SameDayConflict bool `json:"sameDayConflict"`
}
