package mocks

import (
	"context"

	"calixo/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type MockFeedService struct {
	mock.Mock
}

func (m *MockFeedService) CreatePost(ctx context.Context, userID uuid.UUID, content string) (*model.FeedItem, error) {
	args := m.Called(ctx, userID, content)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.FeedItem), args.Error(1)
}

func (m *MockFeedService) ListFeed(ctx context.Context, userID uuid.UUID, limit, offset uint64) ([]*model.FeedItem, error) {
	args := m.Called(ctx, userID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.FeedItem), args.Error(1)
}

func (m *MockFeedService) DeletePost(ctx context.Context, userID, id uuid.UUID) error {
	args := m.Called(ctx, userID, id)
	return args.Error(0)
}

func (m *MockFeedService) AddComment(ctx context.Context, userID, feedItemID uuid.UUID, content string) (*model.Comment, error) {
	args := m.Called(ctx, userID, feedItemID, content)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Comment), args.Error(1)
}

func (m *MockFeedService) ListComments(ctx context.Context, feedItemID uuid.UUID) ([]*model.Comment, error) {
	args := m.Called(ctx, feedItemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Comment), args.Error(1)
}

func (m *MockFeedService) DeleteComment(ctx context.Context, userID, id uuid.UUID) error {
	args := m.Called(ctx, userID, id)
	return args.Error(0)
}
