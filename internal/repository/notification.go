package repository

import (
	"context"
	"fmt"
	"time"

	"calixo/internal/model"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
)

type notification struct {
	ID        uuid.UUID `db:"id"`
	UserID    uuid.UUID `db:"user_id"`
	Type      string    `db:"type"`
	Title     string    `db:"title"`
	Message   string    `db:"message"`
	Payload   []byte    `db:"payload"`
	Seen      bool      `db:"seen"`
	CreatedAt time.Time `db:"created_at"`
}

func (n *notification) toModel() (*model.Notification, error) {
	payload, err := model.DecodePayload(n.Payload)
	if err != nil {
		return nil, err
	}

	return &model.Notification{
		ID:        n.ID,
		UserID:    n.UserID,
		Type:      model.NotificationType(n.Type),
		Title:     n.Title,
		Message:   n.Message,
		Payload:   payload,
		Seen:      n.Seen,
		CreatedAt: n.CreatedAt,
	}, nil
}

func (r *Repository) CreateNotification(ctx context.Context, n *model.Notification) error {
	payload, err := model.EncodePayload(n.Payload)
	if err != nil {
		return fmt.Errorf("failed to encode payload: %w", err)
	}

	query, args, err := squirrel.
		Insert("notifications").
		SetMap(map[string]interface{}{
			"id":         n.ID,
			"user_id":    n.UserID,
			"type":       string(n.Type),
			"title":      n.Title,
			"message":    n.Message,
			"payload":    nullableJSON(payload),
			"seen":       n.Seen,
			"created_at": n.CreatedAt,
		}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build notification insert query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to insert notification: %w", err)
	}

	return nil
}

func (r *Repository) ListNotifications(ctx context.Context, userID uuid.UUID, unseenOnly bool, limit, offset uint64) ([]*model.Notification, error) {
	where := squirrel.Eq{"user_id": userID}
	if unseenOnly {
		where["seen"] = false
	}

	query, args, err := squirrel.
		Select("id", "user_id", "type", "title", "message", "payload", "seen", "created_at").
		From("notifications").
		Where(where).
		OrderBy("created_at DESC").
		Limit(limit).
		Offset(offset).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	var rows []notification
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}

	notifications := make([]*model.Notification, 0, len(rows))
	for i := range rows {
		n, err := rows[i].toModel()
		if err != nil {
			return nil, err
		}
		notifications = append(notifications, n)
	}

	return notifications, nil
}

func (r *Repository) CountUnseenNotifications(ctx context.Context, userID uuid.UUID) (int, error) {
	query, args, err := squirrel.
		Select("COUNT(*)").
		From("notifications").
		Where(squirrel.Eq{"user_id": userID, "seen": false}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build query: %w", err)
	}

	var count int
	if err := r.db.GetContext(ctx, &count, query, args...); err != nil {
		return 0, fmt.Errorf("failed to count notifications: %w", err)
	}

	return count, nil
}

func (r *Repository) MarkNotificationSeen(ctx context.Context, userID, id uuid.UUID) error {
	query, args, err := squirrel.
		Update("notifications").
		Set("seen", true).
		Where(squirrel.Eq{"id": id, "user_id": userID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to mark notification seen: %w", err)
	}

	return checkAffected(result)
}

func (r *Repository) MarkAllNotificationsSeen(ctx context.Context, userID uuid.UUID) error {
	query, args, err := squirrel.
		Update("notifications").
		Set("seen", true).
		Where(squirrel.Eq{"user_id": userID, "seen": false}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to mark notifications seen: %w", err)
	}

	return nil
}

func (r *Repository) DeleteNotification(ctx context.Context, userID, id uuid.UUID) error {
	query, args, err := squirrel.
		Delete("notifications").
		Where(squirrel.Eq{"id": id, "user_id": userID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to delete notification: %w", err)
	}

	return checkAffected(result)
}
