package mocks

import (
	"context"
	"time"

	"calixo/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type MockSocialChallengeRepository struct {
	mock.Mock
}

func (m *MockSocialChallengeRepository) GetSocialChallenge(ctx context.Context, id uuid.UUID) (*model.SocialChallenge, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.SocialChallenge), args.Error(1)
}

func (m *MockSocialChallengeRepository) ListSocialChallenges(ctx context.Context, userID uuid.UUID) ([]*model.SocialChallenge, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.SocialChallenge), args.Error(1)
}

func (m *MockSocialChallengeRepository) CreateSocialChallenge(ctx context.Context, s *model.SocialChallenge) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockSocialChallengeRepository) RespondSocialChallenge(ctx context.Context, id, inviteeID uuid.UUID, status model.SocialStatus, at time.Time) (*model.SocialChallenge, error) {
	args := m.Called(ctx, id, inviteeID, status, at)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.SocialChallenge), args.Error(1)
}

func (m *MockSocialChallengeRepository) GetUserByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockSocialChallengeRepository) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockSocialChallengeRepository) GetChallenge(ctx context.Context, id uuid.UUID) (*model.Challenge, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Challenge), args.Error(1)
}
