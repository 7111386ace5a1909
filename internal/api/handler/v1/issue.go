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

type IssueService interface {
	ListTypes(ctx context.Context) ([]domain.IssueType, error)
	NamesByEvent(ctx context.Context, eventID uint) ([]string, error)
	Associate(ctx context.Context, eventID, issueTypeID uint) error
	Dissociate(ctx context.Context, eventID, issueTypeID uint) error
}

type IssueHandler struct {
	svc IssueService
}

func NewIssueHandler(svc IssueService) *IssueHandler {
	return &IssueHandler{
		svc: svc,
	}
}

// HandleListIssueTypes godoc
// @Summary      List all issue types
// @Tags         issues
// @Produce      json
// @Success      200      {object}   response.Envelope
// @Router       /issueTypes [get]
func (h *IssueHandler) HandleListIssueTypes(ctx *gin.Context) {
	types, err := h.svc.ListTypes(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("v1.HandleListIssueTypes -> h.svc.ListTypes -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	response.OK(ctx, types)
}

// HandleListAddressedIssues godoc
// @Summary      List the issue type names an event addresses
// @Tags         issues
// @Produce      json
// @Param        eventId  path       integer true "event ID"
// @Success      200      {object}   response.Envelope
// @Failure      404      {object}   response.Err
// @Router       /addressedIssues/{eventId} [get]
func (h *IssueHandler) HandleListAddressedIssues(ctx *gin.Context) {
	eventID, err := parseIDParam(ctx, "eventId")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	names, err := h.svc.NamesByEvent(ctx.Request.Context(), eventID)
	if err != nil {
		if errors.Is(err, service.ErrEventNotFound) {
			response.RenderErr(ctx, response.ErrNotFound(err))

			return
		}

		err = fmt.Errorf("v1.HandleListAddressedIssues -> h.svc.NamesByEvent -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	response.OK(ctx, names)
}

// HandleAssociateIssue godoc
// @Summary      Associate an issue type with an event
// @Tags         issues
// @Produce      json
// @Param        request  body       request.AssociateIssueRequest true "request body"
// @Success      201      {object}   response.Envelope
// @Failure      400      {object}   response.Err
// @Router       /addressedIssues [post]
func (h *IssueHandler) HandleAssociateIssue(ctx *gin.Context) {
	var req request.AssociateIssueRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := h.svc.Associate(ctx.Request.Context(), req.EventID, req.IssueTypeID); err != nil {
		if errors.Is(err, service.ErrIssueCapReached) {
			response.RenderErr(ctx, response.ErrBadRequest(err))

			return
		}

		err = fmt.Errorf("v1.HandleAssociateIssue -> h.svc.Associate -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	response.Created(ctx, nil)
}

// HandleDissociateIssue godoc
// @Summary      Remove an issue type association from an event
// @Tags         issues
// @Produce      json
// @Param        issueId  path       integer true "issue type ID"
// @Param        eventId  path       integer true "event ID"
// @Success      204
// @Failure      400      {object}   response.Err
// @Router       /addressedIssues/{issueId}/event/{eventId} [delete]
func (h *IssueHandler) HandleDissociateIssue(ctx *gin.Context) {
	issueID, err := parseIDParam(ctx, "issueId")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	eventID, err := parseIDParam(ctx, "eventId")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err = h.svc.Dissociate(ctx.Request.Context(), eventID, issueID); err != nil {
		err = fmt.Errorf("v1.HandleDissociateIssue -> h.svc.Dissociate -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	response.NoContent(ctx)
}
