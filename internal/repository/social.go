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
	"github.com/jmoiron/sqlx"
)

type socialChallenge struct {
	ID              uuid.UUID  `db:"id"`
	InviterID       uuid.UUID  `db:"inviter_id"`
	InviteeID       uuid.UUID  `db:"invitee_id"`
	ChallengeID     uuid.UUID  `db:"challenge_id"`
	Status          string     `db:"status"`
	CreatedAt       time.Time  `db:"created_at"`
	AcceptedAt      *time.Time `db:"accepted_at"`
	ChallengeTitle  string     `db:"challenge_title"`
	InviterUsername string     `db:"inviter_username"`
	InviteeUsername string     `db:"invitee_username"`
}

func (s *socialChallenge) toModel() *model.SocialChallenge {
	return &model.SocialChallenge{
		ID:              s.ID,
		InviterID:       s.InviterID,
		InviteeID:       s.InviteeID,
		ChallengeID:     s.ChallengeID,
		Status:          model.SocialStatus(s.Status),
		CreatedAt:       s.CreatedAt,
		AcceptedAt:      s.AcceptedAt,
		ChallengeTitle:  s.ChallengeTitle,
		InviterUsername: s.InviterUsername,
		InviteeUsername: s.InviteeUsername,
	}
}

func socialSelect() squirrel.SelectBuilder {
	return squirrel.Select(
		"sc.id",
		"sc.inviter_id",
		"sc.invitee_id",
		"sc.challenge_id",
		"sc.status",
		"sc.created_at",
		"sc.accepted_at",
		"c.title AS challenge_title",
		"inviter.username AS inviter_username",
		"invitee.username AS invitee_username",
	).
		From("social_challenges sc").
		Join("challenges c ON c.id = sc.challenge_id").
		Join("users inviter ON inviter.id = sc.inviter_id").
		Join("users invitee ON invitee.id = sc.invitee_id").
		PlaceholderFormat(squirrel.Dollar)
}

// ListSocialChallenges returns sessions where userID is either party.
func (r *Repository) ListSocialChallenges(ctx context.Context, userID uuid.UUID) ([]*model.SocialChallenge, error) {
	query, args, err := socialSelect().
		Where(squirrel.Or{
			squirrel.Eq{"sc.inviter_id": userID},
			squirrel.Eq{"sc.invitee_id": userID},
		}).
		OrderBy("sc.created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	var rows []socialChallenge
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list social challenges: %w", err)
	}

	sessions := make([]*model.SocialChallenge, len(rows))
	for i := range rows {
		sessions[i] = rows[i].toModel()
	}

	return sessions, nil
}

func (r *Repository) GetSocialChallenge(ctx context.Context, id uuid.UUID) (*model.SocialChallenge, error) {
	return r.getSocialChallenge(ctx, r.db, id)
}

func (r *Repository) getSocialChallenge(ctx context.Context, q sqlx.QueryerContext, id uuid.UUID) (*model.SocialChallenge, error) {
	query, args, err := socialSelect().
		Where(squirrel.Eq{"sc.id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	var row socialChallenge
	if err := sqlx.GetContext(ctx, q, &row, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get social challenge: %w", err)
	}

	return row.toModel(), nil
}

func (r *Repository) CreateSocialChallenge(ctx context.Context, s *model.SocialChallenge) error {
	query, args, err := squirrel.
		Insert("social_challenges").
		SetMap(map[string]interface{}{
			"id":           s.ID,
			"inviter_id":   s.InviterID,
			"invitee_id":   s.InviteeID,
			"challenge_id": s.ChallengeID,
			"status":       string(s.Status),
			"created_at":   s.CreatedAt,
		}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build social challenge insert query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to insert social challenge: %w", err)
	}

	return nil
}

// RespondSocialChallenge moves a pending session addressed to inviteeID to
// status. ErrNotFound covers both a missing session and one addressed to
// someone else; ErrInvalidState means it was already responded to.
func (r *Repository) RespondSocialChallenge(ctx context.Context, id, inviteeID uuid.UUID, status model.SocialStatus, at time.Time) (*model.SocialChallenge, error) {
	var updated *model.SocialChallenge

	err := r.Transaction(ctx, func(tx *sqlx.Tx) error {
		values := map[string]interface{}{
			"status": string(status),
		}
		if status == model.SocialStatusInProgress {
			values["accepted_at"] = at
		}

		query, args, err := respondSocialUpdate(id, inviteeID, values).ToSql()
		if err != nil {
			return fmt.Errorf("failed to build update query: %w", err)
		}

		result, err := tx.ExecContext(ctx, query, args...)
		if err != nil {
			return fmt.Errorf("failed to update social challenge: %w", err)
		}

		rows, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to get affected rows: %w", err)
		}

		session, err := r.getSocialChallenge(ctx, tx, id)
		if err != nil {
			return err
		}
		if session.InviteeID != inviteeID {
			return ErrNotFound
		}
		if rows == 0 {
			return ErrInvalidState
		}

		updated = session
		return nil
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}

// respondSocialUpdate only matches a pending session addressed to inviteeID.
func respondSocialUpdate(id, inviteeID uuid.UUID, values map[string]interface{}) squirrel.UpdateBuilder {
	return squirrel.
		Update("social_challenges").
		SetMap(values).
		Where(squirrel.Eq{
			"id":         id,
			"invitee_id": inviteeID,
			"status":     string(model.SocialStatusPending),
		}).
		PlaceholderFormat(squirrel.Dollar)
}
