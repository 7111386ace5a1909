package v1

import (
	"context"
	"errors"
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/gatherly/gatherly-api/internal/api/handler/v1/request"
	"github.com/gatherly/gatherly-api/internal/api/handler/v1/response"
	"github.com/gatherly/gatherly-api/internal/domain"
	"github.com/gatherly/gatherly-api/internal/service"
)

type UserService interface {
	GetUser(ctx context.Context, id uint) (domain.User, error)
	GetProfile(ctx context.Context, id uint) (domain.Profile, error)
	GetProfileByUsername(ctx context.Context, username string) (domain.Profile, error)
	UpdateProfile(ctx context.Context, userID uint, changes map[string]interface{}, picPayload string) (domain.User, error)
	ChangePassword(ctx context.Context, userID uint, oldPassword, newPassword string) error
	DeleteAccount(ctx context.Context, userID uint) error
}

type JoinStatusService interface {
	JoinStatus(ctx context.Context, eventID, userID uint) (joined, conflict bool, err error)
}

type PastEventsService interface {
	Participated(ctx context.Context, userID uint) ([]domain.Event, error)
	Created(ctx context.Context, userID uint) ([]domain.Event, error)
}

type UserHandler struct {
	svc        UserService
	joinStatus JoinStatusService
	pastEvents PastEventsService
}

func NewUserHandler(svc UserService, joinStatus JoinStatusService, pastEvents PastEventsService) *UserHandler {
	return &UserHandler{
		svc:        svc,
		joinStatus: joinStatus,
		pastEvents: pastEvents,
	}
}

func renderUserErr(ctx *gin.Context, err error, caller string) {
	if errors.Is(err, service.ErrUserNotFound) || errors.Is(err, service.ErrUserDeleted) {
		response.RenderErr(ctx, response.ErrNotFound(err))

		return
	}

	err = fmt.Errorf("%v -> %w", caller, err)
	response.RenderErr(ctx, response.ErrInternalServerError(err))
}

// HandleGetUser godoc
// @Summary      Get a user profile by id
// @Tags         users
// @Produce      json
// @Param        userId   path       integer true "user ID"
// @Success      200      {object}   response.Envelope
// @Failure      404      {object}   response.Err
// @Router       /user/{userId} [get]
func (h *UserHandler) HandleGetUser(ctx *gin.Context) {
	userID, err := parseIDParam(ctx, "userId")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	profile, err := h.svc.GetProfile(ctx.Request.Context(), userID)
	if err != nil {
		renderUserErr(ctx, err, "v1.HandleGetUser -> h.svc.GetProfile")

		return
	}

	response.OK(ctx, profile)
}

// HandleGetUserByUsername godoc
// @Summary      Get a user profile by username
// @Tags         users
// @Produce      json
// @Param        username path       string true "username"
// @Success      200      {object}   response.Envelope
// @Failure      404      {object}   response.Err
// @Router       /user/uname/{username} [get]
func (h *UserHandler) HandleGetUserByUsername(ctx *gin.Context) {
	username := ctx.Param("username")

	profile, err := h.svc.GetProfileByUsername(ctx.Request.Context(), username)
	if err != nil {
		renderUserErr(ctx, err, "v1.HandleGetUserByUsername -> h.svc.GetProfileByUsername")

		return
	}

	response.OK(ctx, profile)
}

// HandleCheckEvent godoc
// @Summary      Check join status for an event
// @Tags         users
// @Produce      json
// @Param        eventId  path       integer true "event ID"
// @Success      200      {object}   response.Envelope
// @Failure      400      {object}   response.Err
// @Router       /user/check-event/{eventId} [get]
func (h *UserHandler) HandleCheckEvent(ctx *gin.Context) {
	user, err := getUserFromContext(ctx)
	if err != nil {
		response.RenderErr(ctx, response.ErrUnauthorized(err))

		return
	}

	eventID, err := parseIDParam(ctx, "eventId")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	joined, conflict, err := h.joinStatus.JoinStatus(ctx.Request.Context(), eventID, user.ID)
	if err != nil {
		if errors.Is(err, service.ErrEventNotFound) {
			response.RenderErr(ctx, response.ErrNotFound(err))

			return
		}

		err = fmt.Errorf("v1.HandleCheckEvent -> h.joinStatus.JoinStatus -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	response.OK(ctx, response.JoinStatusResponse{
		IsParticipant:   joined,
		SameDayConflict: conflict,
	})
}

// HandleUpdateUser godoc
// @Summary      Update the authenticated user's profile
// @Tags         users
// @Produce      json
// @Param        request  body       request.UpdateUserRequest true "request body"
// @Success      200      {object}   response.Envelope
// @Failure      400      {object}   response.Err
// @Router       /user [patch]
func (h *UserHandler) HandleUpdateUser(ctx *gin.Context) {
	user, err := getUserFromContext(ctx)
	if err != nil {
		response.RenderErr(ctx, response.ErrUnauthorized(err))

		return
	}

	var req request.UpdateUserRequest
	if err = ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err = req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	updated, err := h.svc.UpdateProfile(ctx.Request.Context(), user.ID, req.Changes(), req.ProfilePic)
	if err != nil {
		err = fmt.Errorf("v1.HandleUpdateUser -> h.svc.UpdateProfile -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	response.OK(ctx, updated)
}

// HandleChangePassword godoc
// @Summary      Change the authenticated user's password
// @Tags         users
// @Produce      json
// @Param        request  body       request.ChangePasswordRequest true "request body"
// @Success      204
// @Failure      400      {object}   response.Err
// @Router       /user/change-password [patch]
func (h *UserHandler) HandleChangePassword(ctx *gin.Context) {
	user, err := getUserFromContext(ctx)
	if err != nil {
		response.RenderErr(ctx, response.ErrUnauthorized(err))

		return
	}

	var req request.ChangePasswordRequest
	if err = ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err = req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err = h.svc.ChangePassword(ctx.Request.Context(), user.ID, req.OldPassword, req.NewPassword); err != nil {
		if errors.Is(err, service.ErrWrongPassword) {
			response.RenderErr(ctx, response.ErrBadRequest(err))

			return
		}

		err = fmt.Errorf("v1.HandleChangePassword -> h.svc.ChangePassword -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	response.NoContent(ctx)
}

// HandleDeleteUser godoc
// @Summary      Soft-delete the authenticated user's account
// @Tags         users
// @Produce      json
// @Success      204
// @Failure      401      {object}   response.Err
// @Router       /user [delete]
func (h *UserHandler) HandleDeleteUser(ctx *gin.Context) {
	user, err := getUserFromContext(ctx)
	if err != nil {
		response.RenderErr(ctx, response.ErrUnauthorized(err))

		return
	}

	if err = h.svc.DeleteAccount(ctx.Request.Context(), user.ID); err != nil {
		err = fmt.Errorf("v1.HandleDeleteUser -> h.svc.DeleteAccount -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	response.NoContent(ctx)
}

// HandleParticipatedEvents godoc
// @Summary      List past events the user participated in
// @Tags         users
// @Produce      json
// @Success      200      {object}   response.Envelope
// @Failure      401      {object}   response.Err
// @Router       /userPastEvents/participated [get]
func (h *UserHandler) HandleParticipatedEvents(ctx *gin.Context) {
	user, err := getUserFromContext(ctx)
	if err != nil {
		response.RenderErr(ctx, response.ErrUnauthorized(err))

		return
	}

	events, err := h.pastEvents.Participated(ctx.Request.Context(), user.ID)
	if err != nil {
		err = fmt.Errorf("v1.HandleParticipatedEvents -> h.pastEvents.Participated -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	response.OK(ctx, events)
}

// HandleCreatedEvents godoc
// @Summary      List past events the user created
// @Tags         users
// @Produce      json
// @Success      200      {object}   response.Envelope
// @Failure      401      {object}   response.Err
// @Router       /userPastEvents/created [get]
func (h *UserHandler) HandleCreatedEvents(ctx *gin.Context) {
	user, err := getUserFromContext(ctx)
	if err != nil {
		response.RenderErr(ctx, response.ErrUnauthorized(err))

		return
	}

	events, err := h.pastEvents.Created(ctx.Request.Context(), user.ID)
	if err != nil {
		err = fmt.Errorf("v1.HandleCreatedEvents -> h.pastEvents.Created -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	response.OK(ctx, events)
}
