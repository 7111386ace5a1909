package v1

import (
	"context"
	"errors"
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/gatherly/gatherly-api/internal/api/handler/v1/request"
	"github.com/gatherly/gatherly-api/internal/api/handler/v1/response"
	"github.com/gatherly/gatherly-api/internal/config"
	"github.com/gatherly/gatherly-api/internal/domain"
	"github.com/gatherly/gatherly-api/internal/pkg/jwthelper"
	"github.com/gatherly/gatherly-api/internal/service"
)

type AdminAuthService interface {
	AdminLogin(ctx context.Context, username, password string) (domain.User, error)
}

type AdminService interface {
	Counts(ctx context.Context) (service.PlatformCounts, error)
	ActiveUsers(ctx context.Context) ([]domain.Profile, error)
}

type AdminHandler struct {
	conf *config.APIConfig
	auth AdminAuthService
	svc  AdminService
}

func NewAdminHandler(conf *config.APIConfig, auth AdminAuthService, svc AdminService) *AdminHandler {
	return &AdminHandler{
		conf: conf,
		auth: auth,
		svc:  svc,
	}
}

// HandleAdminLogin godoc
// @Summary      Login as an admin
// @Tags         admin
// @Produce      json
// @Param        request  body       request.LoginRequest true "request body"
// @Success      200      {object}   response.Envelope
// @Failure      401      {object}   response.Err
// @Router       /admin/login [post]
func (h *AdminHandler) HandleAdminLogin(ctx *gin.Context) {
	var req request.LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	user, err := h.auth.AdminLogin(ctx.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) ||
			errors.Is(err, service.ErrUserDeleted) ||
			errors.Is(err, service.ErrWrongPassword) ||
			errors.Is(err, service.ErrNotAdmin) {
			response.RenderErr(ctx, response.ErrUnauthorized(err))

			return
		}

		err = fmt.Errorf("v1.HandleAdminLogin -> h.auth.AdminLogin -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	token, err := jwthelper.GenerateToken([]byte(h.conf.JWTSigningKey), user.ID, ctx.Request.UserAgent())
	if err != nil {
		err = fmt.Errorf("v1.HandleAdminLogin -> jwthelper.GenerateToken -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	response.OK(ctx, response.LoginResponse{
		Token: token,
		User:  user,
	})
}

// HandleAllCounts godoc
// @Summary      Platform-wide user and event counters
// @Tags         admin
// @Produce      json
// @Success      200      {object}   response.Envelope
// @Failure      401      {object}   response.Err
// @Router       /admin/allCounts [get]
func (h *AdminHandler) HandleAllCounts(ctx *gin.Context) {
	counts, err := h.svc.Counts(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("v1.HandleAllCounts -> h.svc.Counts -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	response.OK(ctx, counts)
}

// HandleActiveUsers godoc
// @Summary      List all active non-admin users with profile stats
// @Tags         admin
// @Produce      json
// @Success      200      {object}   response.Envelope
// @Failure      401      {object}   response.Err
// @Router       /admin/activeUsers [get]
func (h *AdminHandler) HandleActiveUsers(ctx *gin.Context) {
	profiles, err := h.svc.ActiveUsers(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("v1.HandleActiveUsers -> h.svc.ActiveUsers -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	response.OK(ctx, profiles)
}
