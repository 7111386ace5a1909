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

type ParticipationService interface {
	ListByEvent(ctx context.Context, eventID uint) ([]domain.Participation, error)
	CountByEvent(ctx context.Context, eventID uint) (int64, error)
	IsParticipant(ctx context.Context, eventID, userID uint) (bool, error)
	Join(ctx context.Context, eventID, userID uint) (domain.Participation, error)
	MarkAttendance(ctx context.Context, eventID, userID uint, didAttend bool) (domain.Participation, error)
	Leave(ctx context.Context, eventID, userID uint) error
}

type ParticipantHandler struct {
	svc ParticipationService
}

func NewParticipantHandler(svc ParticipationService) *ParticipantHandler {
	return &ParticipantHandler{
		svc: svc,
	}
}

// HandleListParticipants godoc
// @Summary      List an event's participants
// @Tags         participants
// @Produce      json
// @Param        eventId  path       integer true "event ID"
// @Success      200      {object}   response.Envelope
// @Failure      400      {object}   response.Err
// @Router       /eventParticipants/{eventId} [get]
func (h *ParticipantHandler) HandleListParticipants(ctx *gin.Context) {
	eventID, err := parseIDParam(ctx, "eventId")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	participants, err := h.svc.ListByEvent(ctx.Request.Context(), eventID)
	if err != nil {
		err = fmt.Errorf("v1.HandleListParticipants -> h.svc.ListByEvent -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	response.OK(ctx, participants)
}

// HandleCountParticipants godoc
// @Summary      Count an event's participants
// @Tags         participants
// @Produce      json
// @Param        eventId  path       integer true "event ID"
// @Success      200      {object}   response.Envelope
// @Failure      400      {object}   response.Err
// @Router       /eventParticipants/count/{eventId} [get]
func (h *ParticipantHandler) HandleCountParticipants(ctx *gin.Context) {
	eventID, err := parseIDParam(ctx, "eventId")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	count, err := h.svc.CountByEvent(ctx.Request.Context(), eventID)
	if err != nil {
		err = fmt.Errorf("v1.HandleCountParticipants -> h.svc.CountByEvent -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	response.OK(ctx, gin.H{"count": count})
}

// HandleIsParticipant godoc
// @Summary      Report whether the authenticated user joined the event
// @Tags         participants
// @Produce      json
// @Param        eventId  path       integer true "event ID"
// @Success      200      {object}   response.Envelope
// @Failure      401      {object}   response.Err
// @Router       /eventParticipants/isParticipant/{eventId} [get]
func (h *ParticipantHandler) HandleIsParticipant(ctx *gin.Context) {
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

	joined, err := h.svc.IsParticipant(ctx.Request.Context(), eventID, user.ID)
	if err != nil {
		err = fmt.Errorf("v1.HandleIsParticipant -> h.svc.IsParticipant -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	response.OK(ctx, gin.H{"isParticipant": joined})
}

// HandleJoinEvent godoc
// @Summary      Join an event
// @Tags         participants
// @Produce      json
// @Param        request  body       request.JoinEventRequest true "request body"
// @Success      201      {object}   response.Envelope
// @Failure      400      {object}   response.Err
// @Router       /eventParticipants [post]
func (h *ParticipantHandler) HandleJoinEvent(ctx *gin.Context) {
	user, err := getUserFromContext(ctx)
	if err != nil {
		response.RenderErr(ctx, response.ErrUnauthorized(err))

		return
	}

	var req request.JoinEventRequest
	if err = ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err = req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	participation, err := h.svc.Join(ctx.Request.Context(), req.EventID, user.ID)
	if err != nil {
		if errors.Is(err, service.ErrEventNotFound) {
			response.RenderErr(ctx, response.ErrNotFound(err))

			return
		}
		if errors.Is(err, service.ErrAlreadyParticipant) ||
			errors.Is(err, service.ErrEventFull) ||
			errors.Is(err, service.ErrSameDayConflict) {
			response.RenderErr(ctx, response.ErrBadRequest(err))

			return
		}

		err = fmt.Errorf("v1.HandleJoinEvent -> h.svc.Join -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	response.Created(ctx, participation)
}

// HandleDidAttend godoc
// @Summary      Mark a participant's attendance
// @Tags         participants
// @Produce      json
// @Param        request  body       request.DidAttendRequest true "request body"
// @Success      200      {object}   response.Envelope
// @Failure      400      {object}   response.Err
// @Router       /eventParticipants/didAttend [patch]
func (h *ParticipantHandler) HandleDidAttend(ctx *gin.Context) {
	var req request.DidAttendRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	participation, err := h.svc.MarkAttendance(ctx.Request.Context(), req.EventID, req.UserID, *req.DidAttend)
	if err != nil {
		if errors.Is(err, service.ErrNotParticipant) {
			response.RenderErr(ctx, response.ErrNotFound(err))

			return
		}

		err = fmt.Errorf("v1.HandleDidAttend -> h.svc.MarkAttendance -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	response.OK(ctx, participation)
}

// HandleLeaveEvent godoc
// @Summary      Leave an event
// @Tags         participants
// @Produce      json
// @Param        eventId  path       integer true "event ID"
// @Success      204
// @Failure      400      {object}   response.Err
// @Router       /eventParticipants/{eventId} [delete]
func (h *ParticipantHandler) HandleLeaveEvent(ctx *gin.Context) {
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

	if err = h.svc.Leave(ctx.Request.Context(), eventID, user.ID); err != nil {
		if errors.Is(err, service.ErrNotParticipant) {
			response.RenderErr(ctx, response.ErrNotFound(err))

			return
		}

		err = fmt.Errorf("v1.HandleLeaveEvent -> h.svc.Leave -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	response.NoContent(ctx)
}
