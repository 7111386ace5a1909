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

type RatingService interface {
	ListForUser(ctx context.Context, ratedUserID uint) ([]domain.Rating, error)
	Rate(ctx context.Context, rating domain.Rating) (domain.Rating, error)
	Update(ctx context.Context, ratedUserID, ratedByID uint, rating int, reason string) (domain.Rating, error)
	Delete(ctx context.Context, ratedUserID, ratedByID uint) error
}

type RatingHandler struct {
	svc RatingService
}

func NewRatingHandler(svc RatingService) *RatingHandler {
	return &RatingHandler{
		svc: svc,
	}
}

// HandleListRatings godoc
// @Summary      List ratings received by a user
// @Tags         ratings
// @Produce      json
// @Param        userId   path       integer true "rated user ID"
// @Success      200      {object}   response.Envelope
// @Failure      404      {object}   response.Err
// @Router       /userRatings/{userId} [get]
func (h *RatingHandler) HandleListRatings(ctx *gin.Context) {
	userID, err := parseIDParam(ctx, "userId")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	ratings, err := h.svc.ListForUser(ctx.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) || errors.Is(err, service.ErrUserDeleted) {
			response.RenderErr(ctx, response.ErrNotFound(err))

			return
		}

		err = fmt.Errorf("v1.HandleListRatings -> h.svc.ListForUser -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	response.OK(ctx, ratings)
}

// HandleCreateRating godoc
// @Summary      Rate another user
// @Tags         ratings
// @Produce      json
// @Param        request  body       request.CreateRatingRequest true "request body"
// @Success      201      {object}   response.Envelope
// @Failure      400      {object}   response.Err
// @Router       /userRatings [post]
func (h *RatingHandler) HandleCreateRating(ctx *gin.Context) {
	user, err := getUserFromContext(ctx)
	if err != nil {
		response.RenderErr(ctx, response.ErrUnauthorized(err))

		return
	}

	var req request.CreateRatingRequest
	if err = ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err = req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	rating, err := h.svc.Rate(ctx.Request.Context(), domain.Rating{
		RatedUserID: req.RatedUserID,
		RatedByID:   user.ID,
		Rating:      req.Rating,
		Reason:      req.Reason,
	})
	if err != nil {
		if errors.Is(err, service.ErrSelfRating) || errors.Is(err, service.ErrRatingOutOfBand) {
			response.RenderErr(ctx, response.ErrBadRequest(err))

			return
		}
		if errors.Is(err, service.ErrUserNotFound) || errors.Is(err, service.ErrUserDeleted) {
			response.RenderErr(ctx, response.ErrNotFound(err))

			return
		}

		err = fmt.Errorf("v1.HandleCreateRating -> h.svc.Rate -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	response.Created(ctx, rating)
}

// HandleUpdateRating godoc
// @Summary      Update a rating the user previously gave
// @Tags         ratings
// @Produce      json
// @Param        request  body       request.UpdateRatingRequest true "request body"
// @Success      200      {object}   response.Envelope
// @Failure      400      {object}   response.Err
// @Router       /userRatings [patch]
func (h *RatingHandler) HandleUpdateRating(ctx *gin.Context) {
	user, err := getUserFromContext(ctx)
	if err != nil {
		response.RenderErr(ctx, response.ErrUnauthorized(err))

		return
	}

	var req request.UpdateRatingRequest
	if err = ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err = req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	rating, err := h.svc.Update(ctx.Request.Context(), req.RatedUserID, user.ID, req.Rating, req.Reason)
	if err != nil {
		if errors.Is(err, service.ErrRatingNotFound) {
			response.RenderErr(ctx, response.ErrNotFound(err))

			return
		}
		if errors.Is(err, service.ErrRatingOutOfBand) {
			response.RenderErr(ctx, response.ErrBadRequest(err))

			return
		}

		err = fmt.Errorf("v1.HandleUpdateRating -> h.svc.Update -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	response.OK(ctx, rating)
}

// HandleDeleteRating godoc
// @Summary      Remove a rating the user previously gave
// @Tags         ratings
// @Produce      json
// @Param        ratedUserId path    integer true "rated user ID"
// @Success      204
// @Failure      400      {object}   response.Err
// @Router       /userRatings/{ratedUserId} [delete]
func (h *RatingHandler) HandleDeleteRating(ctx *gin.Context) {
	user, err := getUserFromContext(ctx)
	if err != nil {
		response.RenderErr(ctx, response.ErrUnauthorized(err))

		return
	}

	ratedUserID, err := parseIDParam(ctx, "ratedUserId")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err = h.svc.Delete(ctx.Request.Context(), ratedUserID, user.ID); err != nil {
		if errors.Is(err, service.ErrRatingNotFound) {
			response.RenderErr(ctx, response.ErrNotFound(err))

			return
		}

		err = fmt.Errorf("v1.HandleDeleteRating -> h.svc.Delete -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	response.NoContent(ctx)
}
