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
)

type feedItem struct {
	ID        uuid.UUID `db:"id"`
	UserID    uuid.UUID `db:"user_id"`
	Username  string    `db:"username"`
	Content   string    `db:"content"`
	CreatedAt time.Time `db:"created_at"`
	Comments  int       `db:"comments"`
}

func (f *feedItem) toModel() *model.FeedItem {
	return &model.FeedItem{
		ID:        f.ID,
		UserID:    f.UserID,
		Username:  f.Username,
		Content:   f.Content,
		CreatedAt: f.CreatedAt,
		Comments:  f.Comments,
	}
}

type comment struct {
	ID         uuid.UUID `db:"id"`
	FeedItemID uuid.UUID `db:"feed_item_id"`
	UserID     uuid.UUID `db:"user_id"`
	Username   string    `db:"username"`
	Content    string    `db:"content"`
	CreatedAt  time.Time `db:"created_at"`
}

func (c *comment) toModel() *model.Comment {
	return &model.Comment{
		ID:         c.ID,
		FeedItemID: c.FeedItemID,
		UserID:     c.UserID,
		Username:   c.Username,
		Content:    c.Content,
		CreatedAt:  c.CreatedAt,
	}
}

func feedSelect() squirrel.SelectBuilder {
	return squirrel.Select(
		"fi.id",
		"fi.user_id",
		"u.username",
		"fi.content",
		"fi.created_at",
		"(SELECT COUNT(*) FROM comments c WHERE c.feed_item_id = fi.id) AS comments",
	).
		From("feed_items fi").
		Join("users u ON u.id = fi.user_id").
		PlaceholderFormat(squirrel.Dollar)
}

func (r *Repository) CreateFeedItem(ctx context.Context, item *model.FeedItem) error {
	query, args, err := squirrel.
		Insert("feed_items").
		Columns("id", "user_id", "content", "created_at").
		Values(item.ID, item.UserID, item.Content, item.CreatedAt).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build feed insert query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to insert feed item: %w", err)
	}

	return nil
}

func (r *Repository) GetFeedItem(ctx context.Context, id uuid.UUID) (*model.FeedItem, error) {
	query, args, err := feedSelect().Where(squirrel.Eq{"fi.id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	var row feedItem
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get feed item: %w", err)
	}

	return row.toModel(), nil
}

// ListFeed returns the posts of userID and everyone userID follows.
func (r *Repository) ListFeed(ctx context.Context, userID uuid.UUID, limit, offset uint64) ([]*model.FeedItem, error) {
	query, args, err := feedSelect().
		Where(squirrel.Or{
			squirrel.Eq{"fi.user_id": userID},
			squirrel.Expr("fi.user_id IN (SELECT followee_id FROM follows WHERE follower_id = ?)", userID),
		}).
		OrderBy("fi.created_at DESC").
		Limit(limit).
		Offset(offset).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	var rows []feedItem
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list feed: %w", err)
	}

	items := make([]*model.FeedItem, len(rows))
	for i := range rows {
		items[i] = rows[i].toModel()
	}

	return items, nil
}

func (r *Repository) DeleteFeedItem(ctx context.Context, userID, id uuid.UUID) error {
	query, args, err := squirrel.
		Delete("feed_items").
		Where(squirrel.Eq{"id": id, "user_id": userID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to delete feed item: %w", err)
	}

	return checkAffected(result)
}

func (r *Repository) CreateComment(ctx context.Context, c *model.Comment) error {
	query, args, err := squirrel.
		Insert("comments").
		Columns("id", "feed_item_id", "user_id", "content", "created_at").
		Values(c.ID, c.FeedItemID, c.UserID, c.Content, c.CreatedAt).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build comment insert query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to insert comment: %w", err)
	}

	return nil
}

func commentSelect() squirrel.SelectBuilder {
	return squirrel.Select(
		"c.id", "c.feed_item_id", "c.user_id", "u.username", "c.content", "c.created_at",
	).
		From("comments c").
		Join("users u ON u.id = c.user_id").
		PlaceholderFormat(squirrel.Dollar)
}

func (r *Repository) GetComment(ctx context.Context, id uuid.UUID) (*model.Comment, error) {
	query, args, err := commentSelect().Where(squirrel.Eq{"c.id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	var row comment
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get comment: %w", err)
	}

	return row.toModel(), nil
}

func (r *Repository) ListComments(ctx context.Context, feedItemID uuid.UUID) ([]*model.Comment, error) {
	query, args, err := commentSelect().
		Where(squirrel.Eq{"c.feed_item_id": feedItemID}).
		OrderBy("c.created_at ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	var rows []comment
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}

	comments := make([]*model.Comment, len(rows))
	for i := range rows {
		comments[i] = rows[i].toModel()
	}

	return comments, nil
}

func (r *Repository) DeleteComment(ctx context.Context, userID, id uuid.UUID) error {
	query, args, err := squirrel.
		Delete("comments").
		Where(squirrel.Eq{"id": id, "user_id": userID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to delete comment: %w", err)
	}

	return checkAffected(result)
}
