package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/gatherly/gatherly-api/internal/domain"
)

type fakeMutationChecker struct {
	creatorID uint
}

func (f *fakeMutationChecker) CanMutate(_ context.Context, user domain.User, _ uint) (bool, error) {
	return user.IsAdmin || user.ID == f.creatorID, nil
}

func guardTestRouter(guard gin.HandlerFunc, user *domain.User, route string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST(route, func(ctx *gin.Context) {
		if user != nil {
			ctx.Set(ContextUserKey, *user)
		}
		ctx.Next()
	}, guard, func(ctx *gin.Context) {
		ctx.Status(http.StatusOK)
	})

	return router
}

func TestRequireEventCreator(t *testing.T) {
	guard := NewEventGuard(&fakeMutationChecker{creatorID: 7}).RequireEventCreator()

	tests := []struct {
		name       string
		user       *domain.User
		body       string
		wantStatus int
	}{
		{
			name:       "creator passes",
			user:       &domain.User{ID: 7},
			body:       `{"eventId":42}`,
			wantStatus: http.StatusOK,
		},
		{
			name:       "admin passes without ownership",
			user:       &domain.User{ID: 99, IsAdmin: true},
			body:       `{"eventId":42}`,
			wantStatus: http.StatusOK,
		},
		{
			name:       "stranger rejected",
			user:       &domain.User{ID: 8},
			body:       `{"eventId":42}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "missing eventId rejected",
			user:       &domain.User{ID: 7},
			body:       `{}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "unauthenticated rejected",
			user:       nil,
			body:       `{"eventId":42}`,
			wantStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := guardTestRouter(guard, tt.user, "/events")

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/events", strings.NewReader(tt.body))
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}

func TestRequireNotEventCreator(t *testing.T) {
	guard := NewEventGuard(&fakeMutationChecker{creatorID: 7}).RequireNotEventCreator()

	tests := []struct {
		name       string
		user       domain.User
		wantStatus int
	}{
		{name: "stranger passes", user: domain.User{ID: 8}, wantStatus: http.StatusOK},
		{name: "creator rejected", user: domain.User{ID: 7}, wantStatus: http.StatusBadRequest},
		{name: "admin short-circuits", user: domain.User{ID: 7, IsAdmin: true}, wantStatus: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user := tt.user
			router := guardTestRouter(guard, &user, "/eventParticipants")

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/eventParticipants", strings.NewReader(`{"eventId":42}`))
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}

func TestEventIDFromPathParam(t *testing.T) {
	guard := NewEventGuard(&fakeMutationChecker{creatorID: 7}).RequireEventCreator()

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.DELETE("/events/:eventId", func(ctx *gin.Context) {
		ctx.Set(ContextUserKey, domain.User{ID: 7})
		ctx.Next()
	}, guard, func(ctx *gin.Context) {
		ctx.Status(http.StatusNoContent)
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/events/42", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
}
