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

type RuleService interface {
	ListByEvent(ctx context.Context, eventID uint) ([]domain.Rule, error)
	Add(ctx context.Context, eventID uint, rule string) (domain.Rule, error)
	Update(ctx context.Context, ruleID uint, rule string) (domain.Rule, error)
	Delete(ctx context.Context, ruleID uint) error
}

type RuleHandler struct {
	svc RuleService
}

func NewRuleHandler(svc RuleService) *RuleHandler {
	return &RuleHandler{
		svc: svc,
	}
}

// HandleListRules godoc
// @Summary      List an event's rules
// @Tags         rules
// @Produce      json
// @Param        eventId  path       integer true "event ID"
// @Success      200      {object}   response.Envelope
// @Failure      404      {object}   response.Err
// @Router       /eventRules/{eventId} [get]
func (h *RuleHandler) HandleListRules(ctx *gin.Context) {
	eventID, err := parseIDParam(ctx, "eventId")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	rules, err := h.svc.ListByEvent(ctx.Request.Context(), eventID)
	if err != nil {
		if errors.Is(err, service.ErrEventNotFound) {
			response.RenderErr(ctx, response.ErrNotFound(err))

			return
		}

		err = fmt.Errorf("v1.HandleListRules -> h.svc.ListByEvent -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	response.OK(ctx, rules)
}

// HandleAddRule godoc
// @Summary      Add a rule to an event
// @Tags         rules
// @Produce      json
// @Param        request  body       request.AddRuleRequest true "request body"
// @Success      201      {object}   response.Envelope
// @Failure      400      {object}   response.Err
// @Router       /eventRules [post]
func (h *RuleHandler) HandleAddRule(ctx *gin.Context) {
	var req request.AddRuleRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	rule, err := h.svc.Add(ctx.Request.Context(), req.EventID, req.Rule)
	if err != nil {
		err = fmt.Errorf("v1.HandleAddRule -> h.svc.Add -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	response.Created(ctx, rule)
}

// HandleUpdateRule godoc
// @Summary      Update an event rule
// @Tags         rules
// @Produce      json
// @Param        request  body       request.UpdateRuleRequest true "request body"
// @Success      200      {object}   response.Envelope
// @Failure      400      {object}   response.Err
// @Router       /eventRules [patch]
func (h *RuleHandler) HandleUpdateRule(ctx *gin.Context) {
	var req request.UpdateRuleRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	rule, err := h.svc.Update(ctx.Request.Context(), req.RuleID, req.Rule)
	if err != nil {
		if errors.Is(err, service.ErrRuleNotFound) {
			response.RenderErr(ctx, response.ErrNotFound(err))

			return
		}

		err = fmt.Errorf("v1.HandleUpdateRule -> h.svc.Update -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	response.OK(ctx, rule)
}

// HandleDeleteRule godoc
// @Summary      Delete an event rule
// @Tags         rules
// @Produce      json
// @Param        ruleId   path       integer true "rule ID"
// @Param        eventId  path       integer true "event ID"
// @Success      204
// @Failure      400      {object}   response.Err
// @Router       /eventRules/{ruleId}/event/{eventId} [delete]
func (h *RuleHandler) HandleDeleteRule(ctx *gin.Context) {
	ruleID, err := parseIDParam(ctx, "ruleId")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err = h.svc.Delete(ctx.Request.Context(), ruleID); err != nil {
		if errors.Is(err, service.ErrRuleNotFound) {
			response.RenderErr(ctx, response.ErrNotFound(err))

			return
		}

		err = fmt.Errorf("v1.HandleDeleteRule -> h.svc.Delete -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	response.NoContent(ctx)
}
