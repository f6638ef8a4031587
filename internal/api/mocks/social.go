package mocks

import (
	"context"

	"calixo/internal/model"
	"calixo/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type MockSocialChallengeService struct {
	mock.Mock
}

func (m *MockSocialChallengeService) List(ctx context.Context, userID uuid.UUID) ([]*model.SocialChallenge, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.SocialChallenge), args.Error(1)
}

func (m *MockSocialChallengeService) Get(ctx context.Context, userID, sessionID uuid.UUID) (*model.SocialChallenge, error) {
	args := m.Called(ctx, userID, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.SocialChallenge), args.Error(1)
}

func (m *MockSocialChallengeService) Invite(ctx context.Context, inviterID uuid.UUID, invite service.Invite) (*model.SocialChallenge, error) {
	args := m.Called(ctx, inviterID, invite)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.SocialChallenge), args.Error(1)
}

func (m *MockSocialChallengeService) Accept(ctx context.Context, userID, sessionID uuid.UUID) (*model.SocialChallenge, error) {
	args := m.Called(ctx, userID, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.SocialChallenge), args.Error(1)
}

func (m *MockSocialChallengeService) Decline(ctx context.Context, userID, sessionID uuid.UUID) (*model.SocialChallenge, error) {
	args := m.Called(ctx, userID, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.SocialChallenge), args.Error(1)
}
