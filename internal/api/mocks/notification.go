package mocks

import (
	"context"
	"net/http"

	"calixo/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type MockNotificationService struct {
	mock.Mock
}

func (m *MockNotificationService) Notify(ctx context.Context, n *model.Notification) error {
	args := m.Called(ctx, n)
	return args.Error(0)
}

func (m *MockNotificationService) List(ctx context.Context, userID uuid.UUID, unseenOnly bool, limit, offset uint64) ([]*model.Notification, int, error) {
	args := m.Called(ctx, userID, unseenOnly, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]*model.Notification), args.Int(1), args.Error(2)
}

func (m *MockNotificationService) MarkSeen(ctx context.Context, userID, id uuid.UUID) error {
	args := m.Called(ctx, userID, id)
	return args.Error(0)
}

func (m *MockNotificationService) MarkAllSeen(ctx context.Context, userID uuid.UUID) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *MockNotificationService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	args := m.Called(ctx, userID, id)
	return args.Error(0)
}

type MockStream struct {
	mock.Mock
}

func (m *MockStream) Serve(w http.ResponseWriter, r *http.Request, userID uuid.UUID) error {
	args := m.Called(w, r, userID)
	return args.Error(0)
}
