package v1

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/gatherly/gatherly-api/internal/api/middleware"
	"github.com/gatherly/gatherly-api/internal/domain"
)

var errNotAuthenticated = errors.New("authentication required")

func getUserFromContext(ctx *gin.Context) (domain.User, error) {
	user, ok := middleware.UserFromContext(ctx)
	if !ok {
		return domain.User{}, errNotAuthenticated
	}

	return user, nil
}

func parseIDParam(ctx *gin.Context, name string) (uint, error) {
	raw := ctx.Param(name)

	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, errors.New(name + " must be a positive integer")
	}

	return uint(id), nil
}
