package mocks

import (
	"context"
	"time"

	"calixo/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type MockChallengeRepository struct {
	mock.Mock
}

func (m *MockChallengeRepository) GetChallenge(ctx context.Context, id uuid.UUID) (*model.Challenge, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Challenge), args.Error(1)
}

func (m *MockChallengeRepository) GetLatestActiveAttempt(ctx context.Context, userID uuid.UUID) (*model.UserChallenge, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.UserChallenge), args.Error(1)
}

func (m *MockChallengeRepository) GetAttempt(ctx context.Context, userID, attemptID uuid.UUID) (*model.UserChallenge, error) {
	args := m.Called(ctx, userID, attemptID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.UserChallenge), args.Error(1)
}

func (m *MockChallengeRepository) ListAttempts(ctx context.Context, userID uuid.UUID, limit, offset uint64) ([]*model.UserChallenge, error) {
	args := m.Called(ctx, userID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.UserChallenge), args.Error(1)
}

func (m *MockChallengeRepository) CreateAttempt(ctx context.Context, uc *model.UserChallenge) error {
	args := m.Called(ctx, uc)
	return args.Error(0)
}

func (m *MockChallengeRepository) FinishAttempt(ctx context.Context, userID, attemptID uuid.UUID, finishedAt time.Time, sessionData model.SessionData) (*model.UserChallenge, error) {
	args := m.Called(ctx, userID, attemptID, finishedAt, sessionData)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.UserChallenge), args.Error(1)
}

func (m *MockChallengeRepository) ExpireAttempt(ctx context.Context, attemptID uuid.UUID) error {
	args := m.Called(ctx, attemptID)
	return args.Error(0)
}

func (m *MockChallengeRepository) ClaimAttempt(ctx context.Context, userID, attemptID uuid.UUID, reward int, claimedAt time.Time) (int, error) {
	args := m.Called(ctx, userID, attemptID, reward, claimedAt)
	return args.Int(0), args.Error(1)
}

type MockCatalogRepository struct {
	mock.Mock
}

func (m *MockCatalogRepository) ListChallenges(ctx context.Context, includeInactive bool) ([]*model.Challenge, error) {
	args := m.Called(ctx, includeInactive)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Challenge), args.Error(1)
}

func (m *MockCatalogRepository) GetChallenge(ctx context.Context, id uuid.UUID) (*model.Challenge, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Challenge), args.Error(1)
}

func (m *MockCatalogRepository) CreateChallenge(ctx context.Context, ch *model.Challenge) error {
	args := m.Called(ctx, ch)
	return args.Error(0)
}

func (m *MockCatalogRepository) UpdateChallenge(ctx context.Context, ch *model.Challenge) error {
	args := m.Called(ctx, ch)
	return args.Error(0)
}

func (m *MockCatalogRepository) SetChallengeActive(ctx context.Context, id uuid.UUID, active bool) error {
	args := m.Called(ctx, id, active)
	return args.Error(0)
}
