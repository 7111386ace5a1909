package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/gatherly/gatherly-api/internal/api/handler/v1/response"
	"github.com/gatherly/gatherly-api/internal/domain"
)

var (
	errMissingEventID = errors.New("eventId is required")
	errNotCreator     = errors.New("user is not the event creator")
	errIsCreator      = errors.New("event creator cannot perform this action")
)

type EventMutationChecker interface {
	CanMutate(ctx context.Context, user domain.User, eventID uint) (bool, error)
}

type EventGuard struct {
	events EventMutationChecker
}

func NewEventGuard(events EventMutationChecker) *EventGuard {
	return &EventGuard{
		events: events,
	}
}

// eventIDFromRequest resolves the target event from the eventId path
// parameter, falling back to an eventId field in the JSON body. The body
// is restored so the handler can bind it again.
func eventIDFromRequest(ctx *gin.Context) (uint, bool) {
	if raw := ctx.Param("eventId"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil || id == 0 {
			return 0, false
		}

		return uint(id), true
	}

	if ctx.Request.Body == nil {
		return 0, false
	}

	body, err := io.ReadAll(ctx.Request.Body)
	if err != nil {
		return 0, false
	}
	ctx.Request.Body = io.NopCloser(bytes.NewBuffer(body))

	var probe struct {
		EventID uint `json:"eventId"`
	}
	if err = json.Unmarshal(body, &probe); err != nil || probe.EventID == 0 {
		return 0, false
	}

	return probe.EventID, true
}

// RequireEventCreator admits the event's creator and admins.
func (g *EventGuard) RequireEventCreator() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		user, ok := UserFromContext(ctx)
		if !ok {
			response.RenderErr(ctx, response.ErrUnauthorized(errMissingToken))
			return
		}

		eventID, ok := eventIDFromRequest(ctx)
		if !ok {
			response.RenderErr(ctx, response.ErrBadRequest(errMissingEventID))
			return
		}

		allowed, err := g.events.CanMutate(ctx.Request.Context(), user, eventID)
		if err != nil {
			response.RenderErr(ctx, response.ErrBadRequest(err))
			return
		}
		if !allowed {
			response.RenderErr(ctx, response.ErrBadRequest(errNotCreator))
			return
		}

		ctx.Next()
	}
}

// RequireNotEventCreator admits everyone except the event's creator;
// admins still pass.
func (g *EventGuard) RequireNotEventCreator() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		user, ok := UserFromContext(ctx)
		if !ok {
			response.RenderErr(ctx, response.ErrUnauthorized(errMissingToken))
			return
		}

		if user.IsAdmin {
			ctx.Next()
			return
		}

		eventID, ok := eventIDFromRequest(ctx)
		if !ok {
			response.RenderErr(ctx, response.ErrBadRequest(errMissingEventID))
			return
		}

		isCreator, err := g.events.CanMutate(ctx.Request.Context(), user, eventID)
		if err != nil {
			response.RenderErr(ctx, response.ErrBadRequest(err))
			return
		}
		if isCreator {
			response.RenderErr(ctx, response.ErrBadRequest(errIsCreator))
			return
		}

		ctx.Next()
	}
}
