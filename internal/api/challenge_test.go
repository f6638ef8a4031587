package api

import (
	"net/http"
	"testing"
	"time"

	"calixo/internal/model"
	"calixo/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestChallengeRoutes_RequireToken(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodGet, "/api/v1/challenges/active", nil, nil)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestChallengeRoutes_GetActive(t *testing.T) {
	userID := uuid.New()
	duration := 30
	challenge := &model.Challenge{ID: uuid.New(), Type: model.ChallengeTypeDaily, Title: "No social media", Reward: 5, DurationMinutes: &duration, IsActive: true}
	attempt := &model.UserChallenge{ID: uuid.New(), UserID: userID, ChallengeID: challenge.ID, Status: model.StatusInProgress, StartedAt: time.Now()}

	t.Run("Nothing active returns null", func(t *testing.T) {
		s := newTestServer(t)
		s.challenges.On("GetActive", mock.Anything, userID).Return(nil, nil).Once()

		w := s.do(t, http.MethodGet, "/api/v1/challenges/active", &userID, nil)

		assert.Equal(t, http.StatusOK, w.Code)
		body := decodeBody(t, w)
		v, ok := body["activeChallenge"]
		assert.True(t, ok)
		assert.Nil(t, v)
	})

	t.Run("Active attempt is flattened", func(t *testing.T) {
		s := newTestServer(t)
		s.challenges.On("GetActive", mock.Anything, userID).
			Return(model.NewActiveChallenge(attempt, challenge), nil).Once()

		w := s.do(t, http.MethodGet, "/api/v1/challenges/active", &userID, nil)

		assert.Equal(t, http.StatusOK, w.Code)
		active := decodeBody(t, w)["activeChallenge"].(map[string]interface{})
		assert.Equal(t, attempt.ID.String(), active["id"])
		assert.Equal(t, "in_progress", active["status"])
		assert.Equal(t, float64(5), active["reward"])
		assert.Equal(t, float64(30), active["durationMinutes"])
		assert.Equal(t, "No social media", active["challenge"].(map[string]interface{})["title"])
	})
}

func TestChallengeRoutes_Start(t *testing.T) {
	userID := uuid.New()
	challenge := &model.Challenge{ID: uuid.New(), Type: model.ChallengeTypeFocus, Title: "Deep work", Reward: 3, IsActive: true}

	tests := []struct {
		name           string
		body           interface{}
		mockSetup      func(s *testServer)
		expectedStatus int
	}{
		{
			name:           "Missing challenge id",
			body:           map[string]interface{}{},
			mockSetup:      func(*testServer) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "Unknown session kind",
			body:           map[string]interface{}{"challengeId": challenge.ID, "sessionData": map[string]interface{}{"kind": "sleep"}},
			mockSetup:      func(*testServer) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "Another challenge already active",
			body: map[string]interface{}{"challengeId": challenge.ID},
			mockSetup: func(s *testServer) {
				s.challenges.On("Start", mock.Anything, userID, challenge.ID, nil).
					Return(nil, service.ErrActiveChallengeExists).Once()
			},
			expectedStatus: http.StatusConflict,
		},
		{
			name: "Started with focus override",
			body: map[string]interface{}{
				"challengeId": challenge.ID,
				"sessionData": map[string]interface{}{"kind": "focus", "durationMinutes": 125},
			},
			mockSetup: func(s *testServer) {
				s.challenges.On("Start", mock.Anything, userID, challenge.ID, mock.MatchedBy(func(sd model.SessionData) bool {
					fs, ok := sd.(model.FocusSession)
					return ok && fs.DurationMinutes != nil && *fs.DurationMinutes == 125
				})).Return(func() *model.ActiveChallenge {
					duration := 125
					uc := &model.UserChallenge{
						ID: uuid.New(), UserID: userID, ChallengeID: challenge.ID, Status: model.StatusInProgress,
						StartedAt: time.Now(), SessionData: model.FocusSession{DurationMinutes: &duration},
					}
					return model.NewActiveChallenge(uc, challenge)
				}(), nil).Once()
			},
			expectedStatus: http.StatusCreated,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServer(t)
			tt.mockSetup(s)

			w := s.do(t, http.MethodPost, "/api/v1/challenges/start", &userID, tt.body)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedStatus == http.StatusCreated {
				body := decodeBody(t, w)
				assert.Equal(t, true, body["success"])
				uc := body["userChallenge"].(map[string]interface{})
				assert.Equal(t, float64(125), uc["durationMinutes"])
			}
		})
	}
}

func TestChallengeRoutes_Finish(t *testing.T) {
	userID := uuid.New()
	attemptID := uuid.New()
	challenge := &model.Challenge{ID: uuid.New(), Type: model.ChallengeTypeDaily, Title: "Offline evening", Reward: 4, IsActive: true}

	tests := []struct {
		name           string
		serviceErr     error
		expectedStatus int
	}{
		{name: "Unknown attempt", serviceErr: service.ErrAttemptNotFound, expectedStatus: http.StatusNotFound},
		{name: "Not in progress", serviceErr: service.ErrNotInProgress, expectedStatus: http.StatusBadRequest},
		{name: "Unexpected failure", serviceErr: assert.AnError, expectedStatus: http.StatusInternalServerError},
		{name: "Finished", expectedStatus: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServer(t)

			if tt.serviceErr != nil {
				s.challenges.On("Finish", mock.Anything, userID, attemptID, nil).Return(nil, tt.serviceErr).Once()
			} else {
				finishedAt := time.Now()
				uc := &model.UserChallenge{ID: attemptID, UserID: userID, ChallengeID: challenge.ID, Status: model.StatusFinished, StartedAt: finishedAt.Add(-time.Hour), FinishedAt: &finishedAt}
				s.challenges.On("Finish", mock.Anything, userID, attemptID, nil).
					Return(model.NewActiveChallenge(uc, challenge), nil).Once()
			}

			w := s.do(t, http.MethodPost, "/api/v1/challenges/finish", &userID, map[string]interface{}{"userChallengeId": attemptID})

			assert.Equal(t, tt.expectedStatus, w.Code)
			body := decodeBody(t, w)
			if tt.expectedStatus == http.StatusOK {
				assert.Equal(t, "finished", body["userChallenge"].(map[string]interface{})["status"])
				assert.Equal(t, "Offline evening", body["challenge"].(map[string]interface{})["title"])
			} else if tt.expectedStatus == http.StatusInternalServerError {
				assert.Equal(t, "internal server error", body["error"])
			}
		})
	}
}

func TestChallengeRoutes_FinishReportsFocusReward(t *testing.T) {
	s := newTestServer(t)
	userID := uuid.New()
	attemptID := uuid.New()
	catalogDuration := 60
	challenge := &model.Challenge{ID: uuid.New(), Type: model.ChallengeTypeFocus, Title: "Focus block", Reward: 10, DurationMinutes: &catalogDuration, IsActive: true}

	override := 150
	finishedAt := time.Now()
	uc := &model.UserChallenge{
		ID: attemptID, UserID: userID, ChallengeID: challenge.ID, Status: model.StatusFinished,
		StartedAt: finishedAt.Add(-150 * time.Minute), FinishedAt: &finishedAt,
		SessionData: model.FocusSession{DurationMinutes: &override},
	}
	s.challenges.On("Finish", mock.Anything, userID, attemptID, nil).
		Return(model.NewActiveChallenge(uc, challenge), nil).Once()

	w := s.do(t, http.MethodPost, "/api/v1/challenges/finish", &userID, map[string]interface{}{"userChallengeId": attemptID})

	assert.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, float64(2), body["reward"])
	assert.Equal(t, float64(150), body["durationMinutes"])
	assert.Equal(t, float64(2), body["challenge"].(map[string]interface{})["reward"])
	assert.Equal(t, "focus", body["userChallenge"].(map[string]interface{})["sessionData"].(map[string]interface{})["kind"])
}

func TestChallengeRoutes_FinishRejectsMalformedID(t *testing.T) {
	s := newTestServer(t)
	userID := uuid.New()

	w := s.do(t, http.MethodPost, "/api/v1/challenges/finish", &userID, map[string]interface{}{"userChallengeId": "not-a-uuid"})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestChallengeRoutes_Claim(t *testing.T) {
	userID := uuid.New()
	attemptID := uuid.New()

	t.Run("Reward paid", func(t *testing.T) {
		s := newTestServer(t)
		claimedAt := time.Now()
		s.challenges.On("Claim", mock.Anything, userID, attemptID).Return(&model.ClaimResult{
			UserChallenge: &model.UserChallenge{ID: attemptID, UserID: userID, Status: model.StatusClaimed, ClaimedAt: &claimedAt},
			Reward:        2,
			Coins:         12,
		}, nil).Once()

		w := s.do(t, http.MethodPost, "/api/v1/challenges/claim", &userID, map[string]interface{}{"userChallengeId": attemptID})

		assert.Equal(t, http.StatusOK, w.Code)
		body := decodeBody(t, w)
		assert.Equal(t, float64(2), body["reward"])
		assert.Equal(t, float64(12), body["coins"])
		assert.Equal(t, "claimed", body["userChallenge"].(map[string]interface{})["status"])
	})

	t.Run("Second claim conflicts", func(t *testing.T) {
		s := newTestServer(t)
		s.challenges.On("Claim", mock.Anything, userID, attemptID).Return(nil, service.ErrAlreadyClaimed).Once()

		w := s.do(t, http.MethodPost, "/api/v1/challenges/claim", &userID, map[string]interface{}{"userChallengeId": attemptID})

		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("Expired before claim", func(t *testing.T) {
		s := newTestServer(t)
		s.challenges.On("Claim", mock.Anything, userID, attemptID).Return(nil, service.ErrChallengeExpired).Once()

		w := s.do(t, http.MethodPost, "/api/v1/challenges/claim", &userID, map[string]interface{}{"userChallengeId": attemptID})

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestChallengeRoutes_HistoryPaging(t *testing.T) {
	userID := uuid.New()

	t.Run("Limit is capped", func(t *testing.T) {
		s := newTestServer(t)
		s.challenges.On("History", mock.Anything, userID, uint64(100), uint64(40)).
			Return([]*model.UserChallenge{}, nil).Once()

		w := s.do(t, http.MethodGet, "/api/v1/challenges/history?limit=500&offset=40", &userID, nil)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("Zero limit rejected", func(t *testing.T) {
		s := newTestServer(t)

		w := s.do(t, http.MethodGet, "/api/v1/challenges/history?limit=0", &userID, nil)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
