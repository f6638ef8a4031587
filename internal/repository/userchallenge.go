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

type userChallenge struct {
	ID          uuid.UUID  `db:"id"`
	UserID      uuid.UUID  `db:"user_id"`
	ChallengeID uuid.UUID  `db:"challenge_id"`
	Status      string     `db:"status"`
	StartedAt   time.Time  `db:"started_at"`
	FinishedAt  *time.Time `db:"finished_at"`
	ClaimedAt   *time.Time `db:"claimed_at"`
	SessionData []byte     `db:"session_data"`
}

func (u *userChallenge) toModel() (*model.UserChallenge, error) {
	sd, err := model.DecodeSessionData(u.SessionData)
	if err != nil {
		return nil, err
	}

	return &model.UserChallenge{
		ID:          u.ID,
		UserID:      u.UserID,
		ChallengeID: u.ChallengeID,
		Status:      model.ChallengeStatus(u.Status),
		StartedAt:   u.StartedAt,
		FinishedAt:  u.FinishedAt,
		ClaimedAt:   u.ClaimedAt,
		SessionData: sd,
	}, nil
}

var userChallengeColumns = []string{
	"id", "user_id", "challenge_id", "status",
	"started_at", "finished_at", "claimed_at", "session_data",
}

// GetLatestActiveAttempt returns the most recently started attempt that is
// in progress or finished.
func (r *Repository) GetLatestActiveAttempt(ctx context.Context, userID uuid.UUID) (*model.UserChallenge, error) {
	query, args, err := squirrel.
		Select(userChallengeColumns...).
		From("user_challenges").
		Where(squirrel.Eq{
			"user_id": userID,
			"status":  []string{string(model.StatusInProgress), string(model.StatusFinished)},
		}).
		OrderBy("started_at DESC").
		Limit(1).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	var row userChallenge
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get active attempt: %w", err)
	}

	return row.toModel()
}

// GetAttempt returns an attempt only if it belongs to userID.
func (r *Repository) GetAttempt(ctx context.Context, userID, attemptID uuid.UUID) (*model.UserChallenge, error) {
	return r.getAttempt(ctx, r.db, userID, attemptID)
}

func (r *Repository) getAttempt(ctx context.Context, q sqlx.QueryerContext, userID, attemptID uuid.UUID) (*model.UserChallenge, error) {
	query, args, err := squirrel.
		Select(userChallengeColumns...).
		From("user_challenges").
		Where(squirrel.Eq{
			"id":      attemptID,
			"user_id": userID,
		}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	var row userChallenge
	if err := sqlx.GetContext(ctx, q, &row, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get attempt: %w", err)
	}

	return row.toModel()
}

func (r *Repository) ListAttempts(ctx context.Context, userID uuid.UUID, limit, offset uint64) ([]*model.UserChallenge, error) {
	query, args, err := squirrel.
		Select(userChallengeColumns...).
		From("user_challenges").
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("started_at DESC").
		Limit(limit).
		Offset(offset).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	var rows []userChallenge
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list attempts: %w", err)
	}

	attempts := make([]*model.UserChallenge, 0, len(rows))
	for i := range rows {
		uc, err := rows[i].toModel()
		if err != nil {
			return nil, err
		}
		attempts = append(attempts, uc)
	}

	return attempts, nil
}

// CreateAttempt inserts a new attempt. A second active attempt for the same
// user violates user_challenges_one_active and yields ErrConflict.
func (r *Repository) CreateAttempt(ctx context.Context, uc *model.UserChallenge) error {
	sessionData, err := model.EncodeSessionData(uc.SessionData)
	if err != nil {
		return err
	}

	query, args, err := squirrel.
		Insert("user_challenges").
		SetMap(map[string]interface{}{
			"id":           uc.ID,
			"user_id":      uc.UserID,
			"challenge_id": uc.ChallengeID,
			"status":       string(uc.Status),
			"started_at":   uc.StartedAt,
			"session_data": nullableJSON(sessionData),
		}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build attempt insert query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		if isUniqueViolation(err) {
			return ErrConflict
		}
		return fmt.Errorf("failed to insert attempt: %w", err)
	}

	return nil
}

// FinishAttempt moves an owned in-progress attempt to finished in a single
// conditional update. When nothing matched, it reports ErrNotFound for a
// missing or foreign attempt and ErrInvalidState for one in another status.
// A nil sessionData keeps the stored bag.
func (r *Repository) FinishAttempt(ctx context.Context, userID, attemptID uuid.UUID, finishedAt time.Time, sessionData model.SessionData) (*model.UserChallenge, error) {
	var finished *model.UserChallenge

	err := r.Transaction(ctx, func(tx *sqlx.Tx) error {
		values := map[string]interface{}{
			"status":      string(model.StatusFinished),
			"finished_at": finishedAt,
		}
		if sessionData != nil {
			encoded, err := model.EncodeSessionData(sessionData)
			if err != nil {
				return err
			}
			values["session_data"] = nullableJSON(encoded)
		}

		query, args, err := finishAttemptUpdate(userID, attemptID, values).ToSql()
		if err != nil {
			return fmt.Errorf("failed to build update query: %w", err)
		}

		result, err := tx.ExecContext(ctx, query, args...)
		if err != nil {
			return fmt.Errorf("failed to finish attempt: %w", err)
		}

		rows, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to get affected rows: %w", err)
		}

		uc, err := r.getAttempt(ctx, tx, userID, attemptID)
		if err != nil {
			return err
		}
		if rows == 0 {
			return ErrInvalidState
		}

		finished = uc
		return nil
	})
	if err != nil {
		return nil, err
	}

	return finished, nil
}

// ExpireAttempt marks a finished attempt as not claimed. It is a no-op when
// the attempt already left the finished status.
func (r *Repository) ExpireAttempt(ctx context.Context, attemptID uuid.UUID) error {
	query, args, err := expireAttemptUpdate(attemptID).ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to expire attempt: %w", err)
	}

	return nil
}

// ClaimAttempt moves a finished attempt to claimed and credits reward coins in
// one transaction. Only the caller that flips the status credits, so a repeated
// claim returns ErrInvalidState and leaves the balance untouched.
func (r *Repository) ClaimAttempt(ctx context.Context, userID, attemptID uuid.UUID, reward int, claimedAt time.Time) (int, error) {
	var balance int

	err := r.Transaction(ctx, func(tx *sqlx.Tx) error {
		query, args, err := claimAttemptUpdate(userID, attemptID, claimedAt).ToSql()
		if err != nil {
			return fmt.Errorf("failed to build claim query: %w", err)
		}

		result, err := tx.ExecContext(ctx, query, args...)
		if err != nil {
			return fmt.Errorf("failed to claim attempt: %w", err)
		}

		rows, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to get affected rows: %w", err)
		}
		if rows == 0 {
			return ErrInvalidState
		}

		balanceQuery, balanceArgs, err := creditCoinsUpdate(userID, reward).ToSql()
		if err != nil {
			return fmt.Errorf("failed to build balance query: %w", err)
		}

		if err := tx.GetContext(ctx, &balance, balanceQuery, balanceArgs...); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrNotFound
			}
			return fmt.Errorf("failed to credit reward: %w", err)
		}

		return nil
	})
	if err != nil {
		return 0, err
	}

	return balance, nil
}

// finishAttemptUpdate only matches the owner's attempt while it is in progress.
func finishAttemptUpdate(userID, attemptID uuid.UUID, values map[string]interface{}) squirrel.UpdateBuilder {
	return squirrel.
		Update("user_challenges").
		SetMap(values).
		Where(squirrel.Eq{
			"id":      attemptID,
			"user_id": userID,
			"status":  string(model.StatusInProgress),
		}).
		PlaceholderFormat(squirrel.Dollar)
}

func expireAttemptUpdate(attemptID uuid.UUID) squirrel.UpdateBuilder {
	return squirrel.
		Update("user_challenges").
		Set("status", string(model.StatusNotClaimed)).
		Where(squirrel.Eq{
			"id":     attemptID,
			"status": string(model.StatusFinished),
		}).
		PlaceholderFormat(squirrel.Dollar)
}

// claimAttemptUpdate matches a finished attempt only, so at most one claim
// flips the row.
func claimAttemptUpdate(userID, attemptID uuid.UUID, claimedAt time.Time) squirrel.UpdateBuilder {
	return squirrel.
		Update("user_challenges").
		Set("status", string(model.StatusClaimed)).
		Set("claimed_at", claimedAt).
		Where(squirrel.Eq{
			"id":      attemptID,
			"user_id": userID,
			"status":  string(model.StatusFinished),
		}).
		PlaceholderFormat(squirrel.Dollar)
}

func creditCoinsUpdate(userID uuid.UUID, reward int) squirrel.UpdateBuilder {
	return squirrel.
		Update("users").
		Set("coins", squirrel.Expr("coins + ?", reward)).
		Where(squirrel.Eq{"id": userID}).
		Suffix("RETURNING coins").
		PlaceholderFormat(squirrel.Dollar)
}
