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

type FeedbackService interface {
	ListByEvent(ctx context.Context, eventID uint) ([]domain.Feedback, error)
	Give(ctx context.Context, feedback domain.Feedback) (domain.Feedback, error)
	Update(ctx context.Context, eventID, userID uint, rating int, comments string) (domain.Feedback, error)
	Delete(ctx context.Context, eventID, userID uint) error
}

type FeedbackHandler struct {
	svc FeedbackService
}

func NewFeedbackHandler(svc FeedbackService) *FeedbackHandler {
	return &FeedbackHandler{
		svc: svc,
	}
}

// HandleListFeedbacks godoc
// @Summary      List an event's feedback entries
// @Tags         feedbacks
// @Produce      json
// @Param        eventId  path       integer true "event ID"
// @Success      200      {object}   response.Envelope
// @Failure      404      {object}   response.Err
// @Router       /eventFeedbacks/{eventId} [get]
func (h *FeedbackHandler) HandleListFeedbacks(ctx *gin.Context) {
	eventID, err := parseIDParam(ctx, "eventId")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	feedbacks, err := h.svc.ListByEvent(ctx.Request.Context(), eventID)
	if err != nil {
		if errors.Is(err, service.ErrEventNotFound) {
			response.RenderErr(ctx, response.ErrNotFound(err))

			return
		}

		err = fmt.Errorf("v1.HandleListFeedbacks -> h.svc.ListByEvent -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	response.OK(ctx, feedbacks)
}

// HandleCreateFeedback godoc
// @Summary      Give feedback on an event
// @Tags         feedbacks
// @Produce      json
// @Param        request  body       request.CreateFeedbackRequest true "request body"
// @Success      201      {object}   response.Envelope
// @Failure      400      {object}   response.Err
// @Router       /eventFeedbacks [post]
func (h *FeedbackHandler) HandleCreateFeedback(ctx *gin.Context) {
	user, err := getUserFromContext(ctx)
	if err != nil {
		response.RenderErr(ctx, response.ErrUnauthorized(err))

		return
	}

	var req request.CreateFeedbackRequest
	if err = ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err = req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	feedback, err := h.svc.Give(ctx.Request.Context(), domain.Feedback{
		EventID:  req.EventID,
		UserID:   user.ID,
		Rating:   req.Rating,
		Comments: req.Comments,
	})
	if err != nil {
		if errors.Is(err, service.ErrEventNotFound) {
			response.RenderErr(ctx, response.ErrNotFound(err))

			return
		}
		if errors.Is(err, service.ErrRatingOutOfBand) {
			response.RenderErr(ctx, response.ErrBadRequest(err))

			return
		}

		err = fmt.Errorf("v1.HandleCreateFeedback -> h.svc.Give -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	response.Created(ctx, feedback)
}

// HandleUpdateFeedback godoc
// @Summary      Update the user's feedback on an event
// @Tags         feedbacks
// @Produce      json
// @Param        request  body       request.UpdateFeedbackRequest true "request body"
// @Success      200      {object}   response.Envelope
// @Failure      400      {object}   response.Err
// @Router       /eventFeedbacks [patch]
func (h *FeedbackHandler) HandleUpdateFeedback(ctx *gin.Context) {
	user, err := getUserFromContext(ctx)
	if err != nil {
		response.RenderErr(ctx, response.ErrUnauthorized(err))

		return
	}

	var req request.UpdateFeedbackRequest
	if err = ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err = req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	feedback, err := h.svc.Update(ctx.Request.Context(), req.EventID, user.ID, req.Rating, req.Comments)
	if err != nil {
		if errors.Is(err, service.ErrFeedbackNotFound) {
			response.RenderErr(ctx, response.ErrNotFound(err))

			return
		}
		if errors.Is(err, service.ErrRatingOutOfBand) {
			response.RenderErr(ctx, response.ErrBadRequest(err))

			return
		}

		err = fmt.Errorf("v1.HandleUpdateFeedback -> h.svc.Update -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	response.OK(ctx, feedback)
}

// HandleDeleteFeedback godoc
// @Summary      Remove the user's feedback on an event
// @Tags         feedbacks
// @Produce      json
// @Param        eventId  path       integer true "event ID"
// @Success      204
// @Failure      400      {object}   response.Err
// @Router       /eventFeedbacks/{eventId} [delete]
func (h *FeedbackHandler) HandleDeleteFeedback(ctx *gin.Context) {
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

	if err = h.svc.Delete(ctx.Request.Context(), eventID, user.ID); err != nil {
		if errors.Is(err, service.ErrFeedbackNotFound) {
			response.RenderErr(ctx, response.ErrNotFound(err))

			return
		}

		err = fmt.Errorf("v1.HandleDeleteFeedback -> h.svc.Delete -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	response.NoContent(ctx)
}
