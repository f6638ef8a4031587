package mocks

import (
	"context"

	"calixo/internal/model"
	"calixo/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type MockChallengeService struct {
	mock.Mock
}

func (m *MockChallengeService) GetActive(ctx context.Context, userID uuid.UUID) (*model.ActiveChallenge, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ActiveChallenge), args.Error(1)
}

func (m *MockChallengeService) Start(ctx context.Context, userID, challengeID uuid.UUID, sessionData model.SessionData) (*model.ActiveChallenge, error) {
	args := m.Called(ctx, userID, challengeID, sessionData)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ActiveChallenge), args.Error(1)
}

func (m *MockChallengeService) Finish(ctx context.Context, userID, attemptID uuid.UUID, sessionData model.SessionData) (*model.ActiveChallenge, error) {
	args := m.Called(ctx, userID, attemptID, sessionData)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ActiveChallenge), args.Error(1)
}

func (m *MockChallengeService) Claim(ctx context.Context, userID, attemptID uuid.UUID) (*model.ClaimResult, error) {
	args := m.Called(ctx, userID, attemptID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ClaimResult), args.Error(1)
}

func (m *MockChallengeService) History(ctx context.Context, userID uuid.UUID, limit, offset uint64) ([]*model.UserChallenge, error) {
	args := m.Called(ctx, userID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.UserChallenge), args.Error(1)
}

type MockCatalogService struct {
	mock.Mock
}

func (m *MockCatalogService) List(ctx context.Context, includeInactive bool) ([]*model.Challenge, error) {
	args := m.Called(ctx, includeInactive)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Challenge), args.Error(1)
}

func (m *MockCatalogService) Get(ctx context.Context, id uuid.UUID) (*model.Challenge, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Challenge), args.Error(1)
}

func (m *MockCatalogService) Create(ctx context.Context, input service.ChallengeInput) (*model.Challenge, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Challenge), args.Error(1)
}

func (m *MockCatalogService) Update(ctx context.Context, id uuid.UUID, input service.ChallengeInput) (*model.Challenge, error) {
	args := m.Called(ctx, id, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Challenge), args.Error(1)
}

func (m *MockCatalogService) Deactivate(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
