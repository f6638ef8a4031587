package service

import (
	"context"
	"errors"
	"testing"

	"calixo/internal/model"
	"calixo/internal/repository"
	"calixo/internal/service/mocks"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestNotificationService_Notify(t *testing.T) {
	userID := uuid.New()

	t.Run("Stored and published", func(t *testing.T) {
		repo := &mocks.MockNotificationRepository{}
		publisher := &mocks.MockPublisher{}
		repo.On("CreateNotification", mock.Anything, mock.MatchedBy(func(n *model.Notification) bool {
			return n.ID != uuid.Nil && n.CreatedAt.Equal(finishedEvening)
		})).Return(nil).Once()
		publisher.On("Publish", userID, mock.Anything).Return().Once()

		svc := NewNotificationService(repo, publisher)
		svc.now = fixedClock(finishedEvening)

		err := svc.Notify(context.Background(), &model.Notification{
			UserID:  userID,
			Type:    model.NotificationFollow,
			Payload: model.NewFollowerPayload{FollowerID: uuid.New(), FollowerUsername: "ana"},
		})
		require.NoError(t, err)
		repo.AssertExpectations(t)
		publisher.AssertExpectations(t)
	})

	t.Run("Not published when the insert fails", func(t *testing.T) {
		repo := &mocks.MockNotificationRepository{}
		publisher := &mocks.MockPublisher{}
		repo.On("CreateNotification", mock.Anything, mock.Anything).Return(errors.New("db down"))

		err := NewNotificationService(repo, publisher).Notify(context.Background(), &model.Notification{UserID: userID})
		assert.Error(t, err)
		publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
	})

	t.Run("Nil publisher", func(t *testing.T) {
		repo := &mocks.MockNotificationRepository{}
		repo.On("CreateNotification", mock.Anything, mock.Anything).Return(nil)

		err := NewNotificationService(repo, nil).Notify(context.Background(), &model.Notification{UserID: userID})
		assert.NoError(t, err)
	})
}

func TestNotificationService_Inbox(t *testing.T) {
	userID := uuid.New()
	id := uuid.New()

	repo := &mocks.MockNotificationRepository{}
	repo.On("ListNotifications", mock.Anything, userID, true, uint64(50), uint64(0)).
		Return([]*model.Notification{{ID: id, UserID: userID}}, nil)
	repo.On("CountUnseenNotifications", mock.Anything, userID).Return(3, nil)
	repo.On("MarkNotificationSeen", mock.Anything, userID, id).Return(nil)
	repo.On("MarkNotificationSeen", mock.Anything, userID, mock.Anything).Return(repository.ErrNotFound)
	repo.On("MarkAllNotificationsSeen", mock.Anything, userID).Return(nil)
	repo.On("DeleteNotification", mock.Anything, userID, id).Return(repository.ErrNotFound)

	svc := NewNotificationService(repo, nil)
	ctx := context.Background()

	list, unseen, err := svc.List(ctx, userID, true, 50, 0)
	require.NoError(t, err)
	assert.Len(t, list, 1)
	assert.Equal(t, 3, unseen)

	assert.NoError(t, svc.MarkSeen(ctx, userID, id))
	assert.ErrorIs(t, svc.MarkSeen(ctx, userID, uuid.New()), ErrNotificationNotFound)
	assert.NoError(t, svc.MarkAllSeen(ctx, userID))
	assert.ErrorIs(t, svc.Delete(ctx, userID, id), ErrNotificationNotFound)
}
