package api

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"calixo/internal/api/mocks"
	"calixo/internal/middleware"
	"calixo/pkg/auth"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

type testServer struct {
	router        *gin.Engine
	tokens        *auth.TokenAuth
	challenges    *mocks.MockChallengeService
	catalog       *mocks.MockCatalogService
	social        *mocks.MockSocialChallengeService
	reports       *mocks.MockReportService
	notifications *mocks.MockNotificationService
	users         *mocks.MockUserService
	feed          *mocks.MockFeedService
	stream        *mocks.MockStream
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	s := &testServer{
		router:        gin.New(),
		tokens:        auth.NewTokenAuth("test-secret", "calixo-test"),
		challenges:    &mocks.MockChallengeService{},
		catalog:       &mocks.MockCatalogService{},
		social:        &mocks.MockSocialChallengeService{},
		reports:       &mocks.MockReportService{},
		notifications: &mocks.MockNotificationService{},
		users:         &mocks.MockUserService{},
		feed:          &mocks.MockFeedService{},
		stream:        &mocks.MockStream{},
	}

	RegisterRoutes(s.router.Group("/api/v1"), Services{
		Challenges:    s.challenges,
		Catalog:       s.catalog,
		Social:        s.social,
		Reports:       s.reports,
		Notifications: s.notifications,
		Users:         s.users,
		Feed:          s.feed,
		Stream:        s.stream,
	}, s.tokens.Middleware(), middleware.NewAuthorization(s.users))

	t.Cleanup(func() {
		s.challenges.AssertExpectations(t)
		s.catalog.AssertExpectations(t)
		s.social.AssertExpectations(t)
		s.reports.AssertExpectations(t)
		s.notifications.AssertExpectations(t)
		s.users.AssertExpectations(t)
		s.feed.AssertExpectations(t)
	})

	return s
}

// do sends body as JSON on behalf of userID. A nil userID sends no token.
func (s *testServer) do(t *testing.T, method, path string, userID *uuid.UUID, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if userID != nil {
		token, err := s.tokens.Issue(*userID, "tester", time.Hour)
		require.NoError(t, err)
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()

	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}
