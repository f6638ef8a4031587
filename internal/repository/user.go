package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"calixo/internal/model"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/lib/pq"
)

type User struct {
	ID          uuid.UUID      `db:"id"`
	Username    string         `db:"username"`
	DisplayName string         `db:"display_name"`
	Role        string         `db:"role"`
	Coins       int            `db:"coins"`
	AvatarItems pq.StringArray `db:"avatar_items"`
	CreatedAt   time.Time      `db:"created_at"`
	Followers   int            `db:"followers"`
	Following   int            `db:"following"`
}

func (u *User) toModel() *model.User {
	items := []string(u.AvatarItems)
	if items == nil {
		items = []string{}
	}

	return &model.User{
		ID:          u.ID,
		Username:    u.Username,
		DisplayName: u.DisplayName,
		Role:        model.Role(u.Role),
		Coins:       u.Coins,
		AvatarItems: items,
		CreatedAt:   u.CreatedAt,
		Followers:   u.Followers,
		Following:   u.Following,
	}
}

func userSelect() squirrel.SelectBuilder {
	return squirrel.Select(
		"u.id",
		"u.username",
		"u.display_name",
		"u.role",
		"u.coins",
		"u.avatar_items",
		"u.created_at",
		"(SELECT COUNT(*) FROM follows f WHERE f.followee_id = u.id) AS followers",
		"(SELECT COUNT(*) FROM follows f WHERE f.follower_id = u.id) AS following",
	).
		From("users u").
		PlaceholderFormat(squirrel.Dollar)
}

// CreateUser registers a profile for an authenticated subject. A taken id or
// username yields ErrConflict.
func (r *Repository) CreateUser(ctx context.Context, user *model.User) error {
	query, args, err := squirrel.
		Insert("users").
		SetMap(map[string]interface{}{
			"id":           user.ID,
			"username":     user.Username,
			"display_name": user.DisplayName,
			"role":         string(user.Role),
			"coins":        user.Coins,
			"avatar_items": pq.StringArray(user.AvatarItems),
			"created_at":   user.CreatedAt,
		}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build user insert query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		if isUniqueViolation(err) {
			return ErrConflict
		}
		return fmt.Errorf("failed to insert user: %w", err)
	}

	return nil
}

func (r *Repository) GetUserByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	return r.getUser(ctx, squirrel.Eq{"u.id": id})
}

func (r *Repository) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	return r.getUser(ctx, squirrel.Eq{"u.username": username})
}

func (r *Repository) getUser(ctx context.Context, where squirrel.Eq) (*model.User, error) {
	query, args, err := userSelect().Where(where).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	var user User
	if err := r.db.GetContext(ctx, &user, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return user.toModel(), nil
}

func (r *Repository) UpdateUserDisplayName(ctx context.Context, id uuid.UUID, displayName string) error {
	return r.updateUser(ctx, id, map[string]interface{}{"display_name": displayName})
}

func (r *Repository) UpdateUserAvatar(ctx context.Context, id uuid.UUID, items []string) error {
	return r.updateUser(ctx, id, map[string]interface{}{"avatar_items": pq.StringArray(items)})
}

func (r *Repository) UpdateUserRole(ctx context.Context, id uuid.UUID, role model.Role) error {
	return r.updateUser(ctx, id, map[string]interface{}{"role": string(role)})
}

func (r *Repository) updateUser(ctx context.Context, id uuid.UUID, values map[string]interface{}) error {
	query, args, err := squirrel.
		Update("users").
		SetMap(values).
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build user update query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}

	return checkAffected(result)
}

func (r *Repository) GetTopUsers(ctx context.Context, limit int) ([]*model.User, error) {
	query, args, err := userSelect().
		OrderBy("u.coins DESC", "u.created_at ASC").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	var rows []User
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("failed to get top users: %w", err)
	}

	users := make([]*model.User, len(rows))
	for i := range rows {
		users[i] = rows[i].toModel()
	}

	return users, nil
}
