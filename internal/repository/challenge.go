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

type challenge struct {
	ID              uuid.UUID `db:"id"`
	Type            string    `db:"type"`
	Title           string    `db:"title"`
	Description     string    `db:"description"`
	Reward          int       `db:"reward"`
	DurationMinutes *int      `db:"duration_minutes"`
	IsActive        bool      `db:"is_active"`
	CreatedAt       time.Time `db:"created_at"`
	UpdatedAt       time.Time `db:"updated_at"`
}

func (c *challenge) toModel() *model.Challenge {
	return &model.Challenge{
		ID:              c.ID,
		Type:            model.ChallengeType(c.Type),
		Title:           c.Title,
		Description:     c.Description,
		Reward:          c.Reward,
		DurationMinutes: c.DurationMinutes,
		IsActive:        c.IsActive,
		CreatedAt:       c.CreatedAt,
		UpdatedAt:       c.UpdatedAt,
	}
}

var challengeColumns = []string{
	"id", "type", "title", "description", "reward",
	"duration_minutes", "is_active", "created_at", "updated_at",
}

func (r *Repository) ListChallenges(ctx context.Context, includeInactive bool) ([]*model.Challenge, error) {
	builder := squirrel.
		Select(challengeColumns...).
		From("challenges").
		OrderBy("type", "created_at").
		PlaceholderFormat(squirrel.Dollar)
	if !includeInactive {
		builder = builder.Where(squirrel.Eq{"is_active": true})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	var rows []challenge
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list challenges: %w", err)
	}

	challenges := make([]*model.Challenge, len(rows))
	for i := range rows {
		challenges[i] = rows[i].toModel()
	}

	return challenges, nil
}

func (r *Repository) GetChallenge(ctx context.Context, id uuid.UUID) (*model.Challenge, error) {
	query, args, err := squirrel.
		Select(challengeColumns...).
		From("challenges").
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	var row challenge
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get challenge: %w", err)
	}

	return row.toModel(), nil
}

func (r *Repository) CreateChallenge(ctx context.Context, ch *model.Challenge) error {
	query, args, err := squirrel.
		Insert("challenges").
		SetMap(map[string]interface{}{
			"id":               ch.ID,
			"type":             string(ch.Type),
			"title":            ch.Title,
			"description":      ch.Description,
			"reward":           ch.Reward,
			"duration_minutes": ch.DurationMinutes,
			"is_active":        ch.IsActive,
			"created_at":       ch.CreatedAt,
			"updated_at":       ch.UpdatedAt,
		}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build challenge insert query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to insert challenge: %w", err)
	}

	return nil
}

func (r *Repository) UpdateChallenge(ctx context.Context, ch *model.Challenge) error {
	query, args, err := squirrel.
		Update("challenges").
		SetMap(map[string]interface{}{
			"type":             string(ch.Type),
			"title":            ch.Title,
			"description":      ch.Description,
			"reward":           ch.Reward,
			"duration_minutes": ch.DurationMinutes,
			"is_active":        ch.IsActive,
			"updated_at":       ch.UpdatedAt,
		}).
		Where(squirrel.Eq{"id": ch.ID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build challenge update query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update challenge: %w", err)
	}

	return checkAffected(result)
}

// SetChallengeActive toggles the soft-delete flag. Catalog rows are never removed.
func (r *Repository) SetChallengeActive(ctx context.Context, id uuid.UUID, active bool) error {
	query, args, err := squirrel.
		Update("challenges").
		Set("is_active", active).
		Set("updated_at", time.Now().UTC()).
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update challenge: %w", err)
	}

	return checkAffected(result)
}
