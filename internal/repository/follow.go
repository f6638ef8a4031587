package repository

import (
	"context"
	"fmt"
	"time"

	"calixo/internal/model"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
)

// Follow is idempotent; following twice keeps the original row.
func (r *Repository) Follow(ctx context.Context, followerID, followeeID uuid.UUID, at time.Time) (bool, error) {
	query, args, err := squirrel.
		Insert("follows").
		Columns("follower_id", "followee_id", "created_at").
		Values(followerID, followeeID, at).
		Suffix("ON CONFLICT (follower_id, followee_id) DO NOTHING").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("failed to build follow query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("failed to follow: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get affected rows: %w", err)
	}

	return rows > 0, nil
}

func (r *Repository) Unfollow(ctx context.Context, followerID, followeeID uuid.UUID) error {
	query, args, err := squirrel.
		Delete("follows").
		Where(squirrel.Eq{
			"follower_id": followerID,
			"followee_id": followeeID,
		}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build unfollow query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to unfollow: %w", err)
	}

	return checkAffected(result)
}

func (r *Repository) ListFollowers(ctx context.Context, userID uuid.UUID) ([]*model.User, error) {
	return r.listFollowUsers(ctx, "f.follower_id", "f.followee_id", userID)
}

func (r *Repository) ListFollowing(ctx context.Context, userID uuid.UUID) ([]*model.User, error) {
	return r.listFollowUsers(ctx, "f.followee_id", "f.follower_id", userID)
}

func (r *Repository) listFollowUsers(ctx context.Context, joinColumn, filterColumn string, userID uuid.UUID) ([]*model.User, error) {
	query, args, err := userSelect().
		Join("follows f ON " + joinColumn + " = u.id").
		Where(squirrel.Eq{filterColumn: userID}).
		OrderBy("f.created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	var rows []User
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list follows: %w", err)
	}

	users := make([]*model.User, len(rows))
	for i := range rows {
		users[i] = rows[i].toModel()
	}

	return users, nil
}
