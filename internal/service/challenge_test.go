package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"calixo/internal/model"
	"calixo/internal/repository"
	"calixo/internal/service/mocks"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func intPtr(v int) *int { return &v }

func timePtr(t time.Time) *time.Time { return &t }

var (
	// 21:00 in Madrid on 2026-03-10.
	finishedEvening = time.Date(2026, 3, 10, 20, 0, 0, 0, time.UTC)
	// 01:30 in Madrid, still the 2026-03-10 challenge day.
	beforeRollover = time.Date(2026, 3, 11, 0, 30, 0, 0, time.UTC)
	// 02:30 in Madrid, the 2026-03-11 challenge day.
	afterRollover = time.Date(2026, 3, 11, 1, 30, 0, 0, time.UTC)
)

func TestChallengeService_GetActive(t *testing.T) {
	userID := uuid.New()
	challengeID := uuid.New()
	ch := &model.Challenge{ID: challengeID, Type: model.ChallengeTypeDaily, Title: "No phone lunch", Reward: 5, IsActive: true}

	tests := []struct {
		name          string
		now           time.Time
		mockSetup     func(repo *mocks.MockChallengeRepository)
		expectNil     bool
		expectedError error
		check         func(t *testing.T, ac *model.ActiveChallenge)
	}{
		{
			name: "No active challenge",
			now:  beforeRollover,
			mockSetup: func(repo *mocks.MockChallengeRepository) {
				repo.On("GetLatestActiveAttempt", mock.Anything, userID).
					Return(nil, repository.ErrNotFound)
			},
			expectNil: true,
		},
		{
			name: "In progress",
			now:  afterRollover,
			mockSetup: func(repo *mocks.MockChallengeRepository) {
				repo.On("GetLatestActiveAttempt", mock.Anything, userID).
					Return(&model.UserChallenge{
						ID:          uuid.New(),
						UserID:      userID,
						ChallengeID: challengeID,
						Status:      model.StatusInProgress,
						StartedAt:   finishedEvening.Add(-time.Hour),
					}, nil)
				repo.On("GetChallenge", mock.Anything, challengeID).Return(ch, nil)
			},
			check: func(t *testing.T, ac *model.ActiveChallenge) {
				assert.Equal(t, model.StatusInProgress, ac.UserChallenge.Status)
				assert.Equal(t, 5, ac.Reward)
				assert.Equal(t, model.DefaultDurationMinutes, ac.DurationMinutes)
			},
		},
		{
			name: "Finished before rollover stays claimable",
			now:  beforeRollover,
			mockSetup: func(repo *mocks.MockChallengeRepository) {
				repo.On("GetLatestActiveAttempt", mock.Anything, userID).
					Return(&model.UserChallenge{
						ID:          uuid.New(),
						UserID:      userID,
						ChallengeID: challengeID,
						Status:      model.StatusFinished,
						FinishedAt:  timePtr(finishedEvening),
					}, nil)
				repo.On("GetChallenge", mock.Anything, challengeID).Return(ch, nil)
			},
			check: func(t *testing.T, ac *model.ActiveChallenge) {
				assert.Equal(t, model.StatusFinished, ac.UserChallenge.Status)
			},
		},
		{
			name: "Finished yesterday is expired",
			now:  afterRollover,
			mockSetup: func(repo *mocks.MockChallengeRepository) {
				attemptID := uuid.New()
				repo.On("GetLatestActiveAttempt", mock.Anything, userID).
					Return(&model.UserChallenge{
						ID:          attemptID,
						UserID:      userID,
						ChallengeID: challengeID,
						Status:      model.StatusFinished,
						FinishedAt:  timePtr(finishedEvening),
					}, nil)
				repo.On("ExpireAttempt", mock.Anything, attemptID).Return(nil).Once()
			},
			expectNil: true,
		},
		{
			name: "Expire failure is returned",
			now:  afterRollover,
			mockSetup: func(repo *mocks.MockChallengeRepository) {
				attemptID := uuid.New()
				repo.On("GetLatestActiveAttempt", mock.Anything, userID).
					Return(&model.UserChallenge{
						ID:         attemptID,
						UserID:     userID,
						Status:     model.StatusFinished,
						FinishedAt: timePtr(finishedEvening),
					}, nil)
				repo.On("ExpireAttempt", mock.Anything, attemptID).Return(errors.New("db down"))
			},
			expectedError: errors.New("failed to expire challenge"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &mocks.MockChallengeRepository{}
			tt.mockSetup(repo)

			svc := NewChallengeService(repo)
			svc.now = fixedClock(tt.now)

			ac, err := svc.GetActive(context.Background(), userID)

			if tt.expectedError != nil {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.expectedError.Error())
				return
			}

			require.NoError(t, err)
			if tt.expectNil {
				assert.Nil(t, ac)
			} else {
				require.NotNil(t, ac)
				tt.check(t, ac)
			}
			repo.AssertExpectations(t)
		})
	}
}

func TestChallengeService_Start(t *testing.T) {
	userID := uuid.New()
	challengeID := uuid.New()
	active := &model.Challenge{ID: challengeID, Type: model.ChallengeTypeFocus, Title: "Deep work", Reward: 3, IsActive: true}

	tests := []struct {
		name          string
		sessionData   model.SessionData
		mockSetup     func(repo *mocks.MockChallengeRepository)
		expectedError error
	}{
		{
			name:          "Non-positive duration",
			sessionData:   model.FocusSession{DurationMinutes: intPtr(0)},
			mockSetup:     func(repo *mocks.MockChallengeRepository) {},
			expectedError: ErrInvalidInput,
		},
		{
			name: "Unknown challenge",
			mockSetup: func(repo *mocks.MockChallengeRepository) {
				repo.On("GetChallenge", mock.Anything, challengeID).Return(nil, repository.ErrNotFound)
			},
			expectedError: ErrChallengeNotFound,
		},
		{
			name: "Inactive challenge",
			mockSetup: func(repo *mocks.MockChallengeRepository) {
				repo.On("GetChallenge", mock.Anything, challengeID).
					Return(&model.Challenge{ID: challengeID, Type: model.ChallengeTypeDaily, IsActive: false}, nil)
			},
			expectedError: ErrChallengeInactive,
		},
		{
			name: "Another challenge in progress",
			mockSetup: func(repo *mocks.MockChallengeRepository) {
				repo.On("GetChallenge", mock.Anything, challengeID).Return(active, nil)
				repo.On("GetLatestActiveAttempt", mock.Anything, userID).
					Return(&model.UserChallenge{ID: uuid.New(), UserID: userID, Status: model.StatusInProgress}, nil)
			},
			expectedError: ErrActiveChallengeExists,
		},
		{
			name: "Concurrent start loses the race",
			mockSetup: func(repo *mocks.MockChallengeRepository) {
				repo.On("GetChallenge", mock.Anything, challengeID).Return(active, nil)
				repo.On("GetLatestActiveAttempt", mock.Anything, userID).Return(nil, repository.ErrNotFound)
				repo.On("CreateAttempt", mock.Anything, mock.Anything).Return(repository.ErrConflict)
			},
			expectedError: ErrActiveChallengeExists,
		},
		{
			name:        "Stale finished attempt is expired first",
			sessionData: model.FocusSession{DurationMinutes: intPtr(90), BlockedApps: []string{"instagram"}},
			mockSetup: func(repo *mocks.MockChallengeRepository) {
				staleID := uuid.New()
				repo.On("GetChallenge", mock.Anything, challengeID).Return(active, nil)
				repo.On("GetLatestActiveAttempt", mock.Anything, userID).
					Return(&model.UserChallenge{
						ID:         staleID,
						UserID:     userID,
						Status:     model.StatusFinished,
						FinishedAt: timePtr(finishedEvening),
					}, nil)
				repo.On("ExpireAttempt", mock.Anything, staleID).Return(nil).Once()
				repo.On("CreateAttempt", mock.Anything, mock.MatchedBy(func(uc *model.UserChallenge) bool {
					return uc.UserID == userID &&
						uc.ChallengeID == challengeID &&
						uc.Status == model.StatusInProgress &&
						uc.StartedAt.Equal(afterRollover) &&
						uc.SessionData.Kind() == model.SessionKindFocus
				})).Return(nil).Once()
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &mocks.MockChallengeRepository{}
			tt.mockSetup(repo)

			svc := NewChallengeService(repo)
			svc.now = fixedClock(afterRollover)

			ac, err := svc.Start(context.Background(), userID, challengeID, tt.sessionData)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, ac)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, model.StatusInProgress, ac.UserChallenge.Status)
			assert.Equal(t, 90, ac.DurationMinutes)
			assert.Equal(t, 1, ac.Reward)
			repo.AssertExpectations(t)
		})
	}
}

func TestChallengeService_Finish(t *testing.T) {
	userID := uuid.New()
	attemptID := uuid.New()
	challengeID := uuid.New()

	tests := []struct {
		name          string
		mockSetup     func(repo *mocks.MockChallengeRepository)
		expectedError error
	}{
		{
			name: "Attempt of another user",
			mockSetup: func(repo *mocks.MockChallengeRepository) {
				repo.On("FinishAttempt", mock.Anything, userID, attemptID, finishedEvening, nil).
					Return(nil, repository.ErrNotFound)
			},
			expectedError: ErrAttemptNotFound,
		},
		{
			name: "Already finished",
			mockSetup: func(repo *mocks.MockChallengeRepository) {
				repo.On("FinishAttempt", mock.Anything, userID, attemptID, finishedEvening, nil).
					Return(nil, repository.ErrInvalidState)
			},
			expectedError: ErrNotInProgress,
		},
		{
			name: "Finished",
			mockSetup: func(repo *mocks.MockChallengeRepository) {
				repo.On("FinishAttempt", mock.Anything, userID, attemptID, finishedEvening, nil).
					Return(&model.UserChallenge{
						ID:          attemptID,
						UserID:      userID,
						ChallengeID: challengeID,
						Status:      model.StatusFinished,
						FinishedAt:  timePtr(finishedEvening),
					}, nil)
				repo.On("GetChallenge", mock.Anything, challengeID).
					Return(&model.Challenge{ID: challengeID, Type: model.ChallengeTypeDaily, Reward: 4, IsActive: true}, nil)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &mocks.MockChallengeRepository{}
			tt.mockSetup(repo)

			svc := NewChallengeService(repo)
			svc.now = fixedClock(finishedEvening)

			ac, err := svc.Finish(context.Background(), userID, attemptID, nil)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, model.StatusFinished, ac.UserChallenge.Status)
			assert.Equal(t, 4, ac.Reward)
			repo.AssertExpectations(t)
		})
	}
}

func TestChallengeService_FinishFocusOverride(t *testing.T) {
	userID := uuid.New()
	attemptID := uuid.New()
	challengeID := uuid.New()
	override := model.FocusSession{DurationMinutes: intPtr(150)}

	repo := &mocks.MockChallengeRepository{}
	repo.On("FinishAttempt", mock.Anything, userID, attemptID, finishedEvening, override).
		Return(&model.UserChallenge{
			ID:          attemptID,
			UserID:      userID,
			ChallengeID: challengeID,
			Status:      model.StatusFinished,
			FinishedAt:  timePtr(finishedEvening),
			SessionData: override,
		}, nil)
	repo.On("GetChallenge", mock.Anything, challengeID).
		Return(&model.Challenge{ID: challengeID, Type: model.ChallengeTypeFocus, Reward: 10, IsActive: true}, nil)

	svc := NewChallengeService(repo)
	svc.now = fixedClock(finishedEvening)

	ac, err := svc.Finish(context.Background(), userID, attemptID, override)

	require.NoError(t, err)
	assert.Equal(t, 2, ac.Reward)
	assert.Equal(t, 150, ac.DurationMinutes)
	repo.AssertExpectations(t)
}

func TestChallengeService_Claim(t *testing.T) {
	userID := uuid.New()
	attemptID := uuid.New()
	challengeID := uuid.New()
	focus := &model.Challenge{ID: challengeID, Type: model.ChallengeTypeFocus, Title: "Focus", Reward: 10, IsActive: true}

	finished := func(sd model.SessionData) *model.UserChallenge {
		return &model.UserChallenge{
			ID:          attemptID,
			UserID:      userID,
			ChallengeID: challengeID,
			Status:      model.StatusFinished,
			FinishedAt:  timePtr(finishedEvening),
			SessionData: sd,
		}
	}

	tests := []struct {
		name           string
		now            time.Time
		mockSetup      func(repo *mocks.MockChallengeRepository)
		expectedError  error
		expectedReward int
		expectedCoins  int
	}{
		{
			name: "Unknown attempt",
			now:  beforeRollover,
			mockSetup: func(repo *mocks.MockChallengeRepository) {
				repo.On("GetAttempt", mock.Anything, userID, attemptID).Return(nil, repository.ErrNotFound)
			},
			expectedError: ErrAttemptNotFound,
		},
		{
			name: "Still in progress",
			now:  beforeRollover,
			mockSetup: func(repo *mocks.MockChallengeRepository) {
				repo.On("GetAttempt", mock.Anything, userID, attemptID).
					Return(&model.UserChallenge{ID: attemptID, UserID: userID, Status: model.StatusInProgress}, nil)
			},
			expectedError: ErrNotFinished,
		},
		{
			name: "Already claimed",
			now:  beforeRollover,
			mockSetup: func(repo *mocks.MockChallengeRepository) {
				repo.On("GetAttempt", mock.Anything, userID, attemptID).
					Return(&model.UserChallenge{ID: attemptID, UserID: userID, Status: model.StatusClaimed}, nil)
			},
			expectedError: ErrAlreadyClaimed,
		},
		{
			name: "Already expired",
			now:  beforeRollover,
			mockSetup: func(repo *mocks.MockChallengeRepository) {
				repo.On("GetAttempt", mock.Anything, userID, attemptID).
					Return(&model.UserChallenge{ID: attemptID, UserID: userID, Status: model.StatusNotClaimed}, nil)
			},
			expectedError: ErrChallengeExpired,
		},
		{
			name: "Claimed after rollover expires the attempt",
			now:  afterRollover,
			mockSetup: func(repo *mocks.MockChallengeRepository) {
				repo.On("GetAttempt", mock.Anything, userID, attemptID).Return(finished(nil), nil)
				repo.On("ExpireAttempt", mock.Anything, attemptID).Return(nil).Once()
			},
			expectedError: ErrChallengeExpired,
		},
		{
			name: "Lost a concurrent claim",
			now:  beforeRollover,
			mockSetup: func(repo *mocks.MockChallengeRepository) {
				repo.On("GetAttempt", mock.Anything, userID, attemptID).Return(finished(nil), nil)
				repo.On("GetChallenge", mock.Anything, challengeID).Return(focus, nil)
				repo.On("ClaimAttempt", mock.Anything, userID, attemptID, 10, mock.Anything).
					Return(0, repository.ErrInvalidState)
			},
			expectedError: ErrAlreadyClaimed,
		},
		{
			name: "Catalog reward without override",
			now:  beforeRollover,
			mockSetup: func(repo *mocks.MockChallengeRepository) {
				repo.On("GetAttempt", mock.Anything, userID, attemptID).Return(finished(nil), nil)
				repo.On("GetChallenge", mock.Anything, challengeID).Return(focus, nil)
				repo.On("ClaimAttempt", mock.Anything, userID, attemptID, 10, beforeRollover).
					Return(110, nil).Once()
			},
			expectedReward: 10,
			expectedCoins:  110,
		},
		{
			name: "Focus override pays full hours",
			now:  beforeRollover,
			mockSetup: func(repo *mocks.MockChallengeRepository) {
				repo.On("GetAttempt", mock.Anything, userID, attemptID).
					Return(finished(model.FocusSession{DurationMinutes: intPtr(150)}), nil)
				repo.On("GetChallenge", mock.Anything, challengeID).Return(focus, nil)
				repo.On("ClaimAttempt", mock.Anything, userID, attemptID, 2, beforeRollover).
					Return(2, nil).Once()
			},
			expectedReward: 2,
			expectedCoins:  2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &mocks.MockChallengeRepository{}
			tt.mockSetup(repo)

			svc := NewChallengeService(repo)
			svc.now = fixedClock(tt.now)

			res, err := svc.Claim(context.Background(), userID, attemptID)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, res)
				repo.AssertExpectations(t)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.expectedReward, res.Reward)
			assert.Equal(t, tt.expectedCoins, res.Coins)
			assert.Equal(t, model.StatusClaimed, res.UserChallenge.Status)
			require.NotNil(t, res.UserChallenge.ClaimedAt)
			repo.AssertExpectations(t)
		})
	}
}

func TestChallengeService_History(t *testing.T) {
	userID := uuid.New()
	repo := &mocks.MockChallengeRepository{}
	repo.On("ListAttempts", mock.Anything, userID, uint64(20), uint64(40)).
		Return([]*model.UserChallenge{{ID: uuid.New(), Status: model.StatusClaimed}}, nil)

	attempts, err := NewChallengeService(repo).History(context.Background(), userID, 20, 40)
	require.NoError(t, err)
	assert.Len(t, attempts, 1)
}
