package middleware

import (
	"context"
	"errors"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/gatherly/gatherly-api/internal/api/handler/v1/response"
	"github.com/gatherly/gatherly-api/internal/domain"
	"github.com/gatherly/gatherly-api/internal/pkg/jwthelper"
)

// ContextUserKey is where the authenticator stores the authenticated
// domain.User on the gin context.
const ContextUserKey = "authedUser"

var (
	errMissingToken         = errors.New("authorization token required")
	errInvalidToken         = errors.New("invalid or expired token")
	errAlreadyAuthenticated = errors.New("already authenticated")
	errAdminOnly            = errors.New("admin access required")
)

type UserGetter interface {
	GetUser(ctx context.Context, id uint) (domain.User, error)
}

type Authenticator struct {
	signingKey []byte
	users      UserGetter
}

func NewAuthenticator(signingKey string, users UserGetter) *Authenticator {
	return &Authenticator{
		signingKey: []byte(signingKey),
		users:      users,
	}
}

func bearerToken(ctx *gin.Context) string {
	header := ctx.GetHeader("Authorization")
	if header == "" {
		return ""
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}

	return parts[1]
}

// VerifyJWT authenticates the request and loads the full user onto the
// context. Fails closed with 401.
func (a *Authenticator) VerifyJWT() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		token := bearerToken(ctx)
		if token == "" {
			response.RenderErr(ctx, response.ErrUnauthorized(errMissingToken))
			return
		}

		claims, err := jwthelper.ParseToken(a.signingKey, token)
		if err != nil {
			response.RenderErr(ctx, response.ErrUnauthorized(errInvalidToken))
			return
		}

		user, err := a.users.GetUser(ctx.Request.Context(), claims.UserID)
		if err != nil {
			response.RenderErr(ctx, response.ErrUnauthorized(errInvalidToken))
			return
		}

		ctx.Set(ContextUserKey, user)
		ctx.Next()
	}
}

// OptionalJWT loads the user when a valid token is presented and lets the
// request through either way.
func (a *Authenticator) OptionalJWT() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		token := bearerToken(ctx)
		if token != "" {
			if claims, err := jwthelper.ParseToken(a.signingKey, token); err == nil {
				if user, err := a.users.GetUser(ctx.Request.Context(), claims.UserID); err == nil {
					ctx.Set(ContextUserKey, user)
				}
			}
		}

		ctx.Next()
	}
}

// RequireGuest rejects requests that present a valid token. Guards the
// register and login routes.
func (a *Authenticator) RequireGuest() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		token := bearerToken(ctx)
		if token != "" {
			if _, err := jwthelper.ParseToken(a.signingKey, token); err == nil {
				response.RenderErr(ctx, response.ErrBadRequest(errAlreadyAuthenticated))
				return
			}
		}

		ctx.Next()
	}
}

// RequireAdmin must run after VerifyJWT.
func RequireAdmin() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		user, ok := UserFromContext(ctx)
		if !ok || !user.IsAdmin {
			response.RenderErr(ctx, response.ErrUnauthorized(errAdminOnly))
			return
		}

		ctx.Next()
	}
}

// UserFromContext returns the user stored by VerifyJWT.
func UserFromContext(ctx *gin.Context) (domain.User, bool) {
	value, exists := ctx.Get(ContextUserKey)
	if !exists {
		return domain.User{}, false
	}

	user, ok := value.(domain.User)

	return user, ok
}
