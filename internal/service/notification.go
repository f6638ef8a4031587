package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"calixo/internal/model"
	"calixo/internal/repository"
	"calixo/pkg/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type NotificationService struct {
	repo      NotificationRepository
	publisher Publisher
	now       func() time.Time
}

func NewNotificationService(repo NotificationRepository, publisher Publisher) *NotificationService {
	return &NotificationService{
		repo:      repo,
		publisher: publisher,
		now:       time.Now,
	}
}

// Notify stores n and pushes it to the owner's live connections.
func (s *NotificationService) Notify(ctx context.Context, n *model.Notification) error {
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	if n.CreatedAt.IsZero() {
		n.CreatedAt = s.now().UTC()
	}

	if err := s.repo.CreateNotification(ctx, n); err != nil {
		return fmt.Errorf("failed to create notification: %w", err)
	}

	if s.publisher != nil {
		s.publisher.Publish(n.UserID, n)
	}

	return nil
}

func (s *NotificationService) List(ctx context.Context, userID uuid.UUID, unseenOnly bool, limit, offset uint64) ([]*model.Notification, int, error) {
	notifications, err := s.repo.ListNotifications(ctx, userID, unseenOnly, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list notifications: %w", err)
	}

	unseen, err := s.repo.CountUnseenNotifications(ctx, userID)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count notifications: %w", err)
	}

	return notifications, unseen, nil
}

func (s *NotificationService) MarkSeen(ctx context.Context, userID, id uuid.UUID) error {
	if err := s.repo.MarkNotificationSeen(ctx, userID, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotificationNotFound
		}
		return fmt.Errorf("failed to mark notification seen: %w", err)
	}
	return nil
}

func (s *NotificationService) MarkAllSeen(ctx context.Context, userID uuid.UUID) error {
	if err := s.repo.MarkAllNotificationsSeen(ctx, userID); err != nil {
		return fmt.Errorf("failed to mark notifications seen: %w", err)
	}
	return nil
}

// Delete removes a notification owned by userID.
func (s *NotificationService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	if err := s.repo.DeleteNotification(ctx, userID, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotificationNotFound
		}
		return fmt.Errorf("failed to delete notification: %w", err)
	}
	return nil
}

// notify is used for side-effect notifications. A delivery failure is logged
// and never fails the operation that triggered it.
func notify(ctx context.Context, notifier Notifier, n *model.Notification) {
	if notifier == nil {
		return
	}
	if err := notifier.Notify(ctx, n); err != nil {
		logger.Logger().Error("failed to send notification",
			zap.String("user_id", n.UserID.String()),
			zap.String("type", string(n.Type)),
			zap.Error(err))
	}
}
