package mocks

import (
	"context"

	"calixo/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type MockFeedRepository struct {
	mock.Mock
}

func (m *MockFeedRepository) CreateFeedItem(ctx context.Context, item *model.FeedItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockFeedRepository) GetFeedItem(ctx context.Context, id uuid.UUID) (*model.FeedItem, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.FeedItem), args.Error(1)
}

func (m *MockFeedRepository) ListFeed(ctx context.Context, userID uuid.UUID, limit, offset uint64) ([]*model.FeedItem, error) {
	args := m.Called(ctx, userID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.FeedItem), args.Error(1)
}

func (m *MockFeedRepository) DeleteFeedItem(ctx context.Context, userID, id uuid.UUID) error {
	args := m.Called(ctx, userID, id)
	return args.Error(0)
}

func (m *MockFeedRepository) CreateComment(ctx context.Context, c *model.Comment) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockFeedRepository) GetComment(ctx context.Context, id uuid.UUID) (*model.Comment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Comment), args.Error(1)
}

func (m *MockFeedRepository) ListComments(ctx context.Context, feedItemID uuid.UUID) ([]*model.Comment, error) {
	args := m.Called(ctx, feedItemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Comment), args.Error(1)
}

func (m *MockFeedRepository) DeleteComment(ctx context.Context, userID, id uuid.UUID) error {
	args := m.Called(ctx, userID, id)
	return args.Error(0)
}
