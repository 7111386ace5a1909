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

type PictureService interface {
	ListByEvent(ctx context.Context, eventID uint) ([]domain.EventPicture, error)
	Add(ctx context.Context, eventID uint, payloads []string) ([]domain.EventPicture, error)
	Delete(ctx context.Context, pictureID uint) error
}

type PictureHandler struct {
	svc PictureService
}

func NewPictureHandler(svc PictureService) *PictureHandler {
	return &PictureHandler{
		svc: svc,
	}
}

// HandleListPictures godoc
// @Summary      List an event's pictures
// @Tags         pictures
// @Produce      json
// @Param        eventId  path       integer true "event ID"
// @Success      200      {object}   response.Envelope
// @Failure      400      {object}   response.Err
// @Router       /eventPictures/{eventId} [get]
func (h *PictureHandler) HandleListPictures(ctx *gin.Context) {
	eventID, err := parseIDParam(ctx, "eventId")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	pictures, err := h.svc.ListByEvent(ctx.Request.Context(), eventID)
	if err != nil {
		err = fmt.Errorf("v1.HandleListPictures -> h.svc.ListByEvent -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	response.OK(ctx, pictures)
}

// HandleAddPictures godoc
// @Summary      Add base64 pictures to an event
// @Tags         pictures
// @Produce      json
// @Param        request  body       request.AddPicturesRequest true "request body"
// @Success      201      {object}   response.Envelope
// @Failure      400      {object}   response.Err
// @Router       /eventPictures [post]
func (h *PictureHandler) HandleAddPictures(ctx *gin.Context) {
	var req request.AddPicturesRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	pictures, err := h.svc.Add(ctx.Request.Context(), req.EventID, req.Pictures)
	if err != nil {
		if errors.Is(err, service.ErrEventNotFound) {
			response.RenderErr(ctx, response.ErrNotFound(err))

			return
		}

		err = fmt.Errorf("v1.HandleAddPictures -> h.svc.Add -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	response.Created(ctx, pictures)
}

// HandleDeletePicture godoc
// @Summary      Delete an event picture
// @Tags         pictures
// @Produce      json
// @Param        id       path       integer true "picture ID"
// @Param        eventId  path       integer true "event ID"
// @Success      204
// @Failure      400      {object}   response.Err
// @Router       /eventPictures/{id}/event/{eventId} [delete]
func (h *PictureHandler) HandleDeletePicture(ctx *gin.Context) {
	pictureID, err := parseIDParam(ctx, "id")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err = h.svc.Delete(ctx.Request.Context(), pictureID); err != nil {
		if errors.Is(err, service.ErrPictureNotFound) {
			response.RenderErr(ctx, response.ErrNotFound(err))

			return
		}

		err = fmt.Errorf("v1.HandleDeletePicture -> h.svc.Delete -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	response.NoContent(ctx)
}
