package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"calixo/internal/model"
	"calixo/internal/service"
	"calixo/pkg/auth"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockUserLookup struct {
	mock.Mock
}

func (m *mockUserLookup) GetUserByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func TestAuthorization_RequireRole(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tokens := auth.NewTokenAuth("secret", "")
	users := &mockUserLookup{}
	authz := NewAuthorization(users)

	admin := &model.User{ID: uuid.New(), Role: model.RoleAdmin}
	moderator := &model.User{ID: uuid.New(), Role: model.RoleModerator}
	member := &model.User{ID: uuid.New(), Role: model.RoleUser}
	unregistered := uuid.New()

	for _, u := range []*model.User{admin, moderator, member} {
		users.On("GetUserByID", mock.Anything, u.ID).Return(u, nil)
	}
	users.On("GetUserByID", mock.Anything, unregistered).Return(nil, service.ErrUserNotFound)

	router := gin.New()
	router.Use(tokens.Middleware())
	router.GET("/moderation", authz.RequireRole(model.RoleModerator), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})

	tests := []struct {
		name           string
		userID         uuid.UUID
		expectedStatus int
	}{
		{name: "Admin", userID: admin.ID, expectedStatus: http.StatusNoContent},
		{name: "Moderator", userID: moderator.ID, expectedStatus: http.StatusNoContent},
		{name: "Regular user", userID: member.ID, expectedStatus: http.StatusForbidden},
		{name: "No profile", userID: unregistered, expectedStatus: http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, err := tokens.Issue(tt.userID, "", time.Hour)
			require.NoError(t, err)

			req := httptest.NewRequest(http.MethodGet, "/moderation", nil)
			req.Header.Set("Authorization", "Bearer "+token)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
		})
	}
}

func TestRateLimiter(t *testing.T) {
	gin.SetMode(gin.TestMode)

	rl := NewRateLimiter(0.001, 2)
	router := gin.New()
	router.Use(rl.Middleware())
	router.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	do := func(ip string) int {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = ip + ":1234"
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w.Code
	}

	assert.Equal(t, http.StatusOK, do("10.0.0.1"))
	assert.Equal(t, http.StatusOK, do("10.0.0.1"))
	assert.Equal(t, http.StatusTooManyRequests, do("10.0.0.1"))
	assert.Equal(t, http.StatusOK, do("10.0.0.2"))

	rl.evict(time.Now().Add(time.Minute))
	assert.Empty(t, rl.visitors)
	assert.Equal(t, http.StatusOK, do("10.0.0.1"))
}

func TestMetricsAuth(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.GET("/metrics", MetricsAuth("prom", "pw"), func(c *gin.Context) { c.Status(http.StatusOK) })
	router.GET("/closed", MetricsAuth("", ""), func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	req = httptest.NewRequest(http.MethodGet, "/metrics", nil)
	req.SetBasicAuth("prom", "pw")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	req = httptest.NewRequest(http.MethodGet, "/closed", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
