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

type EventService interface {
	Create(ctx context.Context, event domain.Event, issueIDs []uint, rules []string, coverPayload string, picturePayloads []string) (domain.Event, error)
	Update(ctx context.Context, eventID uint, update service.EventUpdate) (domain.Event, error)
	Delete(ctx context.Context, eventID uint) error
	GetEvent(ctx context.Context, id uint) (domain.Event, error)
	Discover(ctx context.Context, filters domain.EventFilters) ([]domain.Event, error)
	Suggested(ctx context.Context, eventID uint) ([]domain.Event, error)
}

type EventHandler struct {
	svc EventService
}

func NewEventHandler(svc EventService) *EventHandler {
	return &EventHandler{
		svc: svc,
	}
}

// HandleListEvents godoc
// @Summary      Discover events with optional filters
// @Tags         events
// @Produce      json
// @Param        name              query     string  false "substring match on name"
// @Param        description       query     string  false "substring match on description"
// @Param        type              query     string  false "exact event type"
// @Param        isDonationEnabled query     boolean false "donation-enabled only"
// @Param        issues            query     []integer false "issue type ids"
// @Param        status            query     string  false "all | completed | upcoming"
// @Param        latitude          query     number  false "geo filter center latitude"
// @Param        longitude         query     number  false "geo filter center longitude"
// @Param        radius            query     number  false "geo filter radius in meters"
// @Success      200      {object}   response.Envelope
// @Failure      400      {object}   response.Err
// @Router       /events [get]
func (h *EventHandler) HandleListEvents(ctx *gin.Context) {
	var req request.ListEventsRequest
	if err := ctx.ShouldBindQuery(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	filters := domain.EventFilters{
		Name:         req.Name,
		Description:  req.Description,
		Type:         req.Type,
		DonationOnly: req.IsDonationEnabled,
		Status:       domain.EventStatus(req.Status),
		IssueIDs:     req.Issues,
		Latitude:     req.Latitude,
		Longitude:    req.Longitude,
		Radius:       req.Radius,
	}

	events, err := h.svc.Discover(ctx.Request.Context(), filters)
	if err != nil {
		if errors.Is(err, service.ErrPartialGeoFilter) {
			response.RenderErr(ctx, response.ErrBadRequest(err))

			return
		}

		err = fmt.Errorf("v1.HandleListEvents -> h.svc.Discover -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	response.OK(ctx, events)
}

// HandleGetEvent godoc
// @Summary      Get an event aggregate by id
// @Tags         events
// @Produce      json
// @Param        eventId  path       integer true "event ID"
// @Success      200      {object}   response.Envelope
// @Failure      404      {object}   response.Err
// @Router       /events/{eventId} [get]
func (h *EventHandler) HandleGetEvent(ctx *gin.Context) {
	eventID, err := parseIDParam(ctx, "eventId")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	event, err := h.svc.GetEvent(ctx.Request.Context(), eventID)
	if err != nil {
		if errors.Is(err, service.ErrEventNotFound) {
			response.RenderErr(ctx, response.ErrNotFound(err))

			return
		}

		err = fmt.Errorf("v1.HandleGetEvent -> h.svc.GetEvent -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	response.OK(ctx, event)
}

// HandleSuggestedEvents godoc
// @Summary      List events sharing an issue type with the given event
// @Tags         events
// @Produce      json
// @Param        eventId  path       integer true "event ID"
// @Success      200      {object}   response.Envelope
// @Failure      404      {object}   response.Err
// @Router       /events/suggested/{eventId} [get]
func (h *EventHandler) HandleSuggestedEvents(ctx *gin.Context) {
	eventID, err := parseIDParam(ctx, "eventId")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	events, err := h.svc.Suggested(ctx.Request.Context(), eventID)
	if err != nil {
		if errors.Is(err, service.ErrEventNotFound) {
			response.RenderErr(ctx, response.ErrNotFound(err))

			return
		}

		err = fmt.Errorf("v1.HandleSuggestedEvents -> h.svc.Suggested -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	response.OK(ctx, events)
}

// HandleCreateEvent godoc
// @Summary      Create an event with rules, issues and pictures
// @Tags         events
// @Produce      json
// @Param        request  body       request.CreateEventRequest true "request body"
// @Success      201      {object}   response.Envelope
// @Failure      400      {object}   response.Err
// @Router       /events [post]
func (h *EventHandler) HandleCreateEvent(ctx *gin.Context) {
	user, err := getUserFromContext(ctx)
	if err != nil {
		response.RenderErr(ctx, response.ErrUnauthorized(err))

		return
	}

	var req request.CreateEventRequest
	if err = ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err = req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	event := domain.Event{
		CreatorID:         user.ID,
		Name:              req.Name,
		Description:       req.Description,
		Type:              req.Type,
		StartTime:         req.StartTime,
		EndTime:           req.EndTime,
		Capacity:          req.Capacity,
		Latitude:          req.Latitude,
		Longitude:         req.Longitude,
		IsDonationEnabled: req.IsDonationEnabled,
		Creator:           user,
	}

	created, err := h.svc.Create(ctx.Request.Context(), event, req.IssueIDs, req.Rules, req.CoverPicture, req.Pictures)
	if err != nil {
		if errors.Is(err, service.ErrInvalidIssueCount) || errors.Is(err, service.ErrNoRules) {
			response.RenderErr(ctx, response.ErrBadRequest(err))

			return
		}

		err = fmt.Errorf("v1.HandleCreateEvent -> h.svc.Create -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	response.Created(ctx, created)
}

// HandleUpdateEvent godoc
// @Summary      Update event attributes and child collections
// @Tags         events
// @Produce      json
// @Param        request  body       request.UpdateEventRequest true "request body"
// @Success      200      {object}   response.Envelope
// @Failure      400      {object}   response.Err
// @Router       /events [patch]
func (h *EventHandler) HandleUpdateEvent(ctx *gin.Context) {
	var req request.UpdateEventRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	updated, err := h.svc.Update(ctx.Request.Context(), req.EventID, service.EventUpdate{
		Changes:      req.Changes(),
		CoverPayload: req.CoverPicture,
		IssueIDs:     req.IssueIDs,
		Rules:        req.Rules,
		Pictures:     req.Pictures,
	})
	if err != nil {
		if errors.Is(err, service.ErrInvalidIssueCount) || errors.Is(err, service.ErrNoRules) {
			response.RenderErr(ctx, response.ErrBadRequest(err))

			return
		}
		if errors.Is(err, service.ErrEventNotFound) {
			response.RenderErr(ctx, response.ErrNotFound(err))

			return
		}

		err = fmt.Errorf("v1.HandleUpdateEvent -> h.svc.Update -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	response.OK(ctx, updated)
}

// HandleDeleteEvent godoc
// @Summary      Soft-delete an event and tear down its children
// @Tags         events
// @Produce      json
// @Param        eventId  path       integer true "event ID"
// @Success      204
// @Failure      400      {object}   response.Err
// @Router       /events/{eventId} [delete]
func (h *EventHandler) HandleDeleteEvent(ctx *gin.Context) {
	eventID, err := parseIDParam(ctx, "eventId")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err = h.svc.Delete(ctx.Request.Context(), eventID); err != nil {
		if errors.Is(err, service.ErrEventNotFound) {
			response.RenderErr(ctx, response.ErrNotFound(err))

			return
		}

		err = fmt.Errorf("v1.HandleDeleteEvent -> h.svc.Delete -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	response.NoContent(ctx)
}
