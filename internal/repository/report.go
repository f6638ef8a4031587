package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"calixo/internal/model"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type report struct {
	ID         uuid.UUID  `db:"id"`
	ReporterID uuid.UUID  `db:"reporter_id"`
	TargetType string     `db:"target_type"`
	TargetID   uuid.UUID  `db:"target_id"`
	Reason     string     `db:"reason"`
	Details    string     `db:"details"`
	Status     string     `db:"status"`
	CreatedAt  time.Time  `db:"created_at"`
	ResolvedAt *time.Time `db:"resolved_at"`
	ResolvedBy *uuid.UUID `db:"resolved_by"`
}

func (r *report) toModel() *model.Report {
	return &model.Report{
		ID:         r.ID,
		ReporterID: r.ReporterID,
		TargetType: model.ReportTargetType(r.TargetType),
		TargetID:   r.TargetID,
		Reason:     r.Reason,
		Details:    r.Details,
		Status:     model.ReportStatus(r.Status),
		CreatedAt:  r.CreatedAt,
		ResolvedAt: r.ResolvedAt,
		ResolvedBy: r.ResolvedBy,
	}
}

var reportColumns = []string{
	"id", "reporter_id", "target_type", "target_id", "reason",
	"details", "status", "created_at", "resolved_at", "resolved_by",
}

func (r *Repository) ReportExists(ctx context.Context, reporterID uuid.UUID, targetType model.ReportTargetType, targetID uuid.UUID, reason string) (bool, error) {
	query, args, err := squirrel.
		Select("1").
		From("reports").
		Where(squirrel.Eq{
			"reporter_id": reporterID,
			"target_type": string(targetType),
			"target_id":   targetID,
			"reason":      reason,
		}).
		Limit(1).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("failed to build query: %w", err)
	}

	var exists int
	err = r.db.GetContext(ctx, &exists, query, args...)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("failed to look up report: %w", err)
	}

	return true, nil
}

// CreateReport relies on reports_no_duplicates to reject a duplicate that
// raced past ReportExists.
func (r *Repository) CreateReport(ctx context.Context, rep *model.Report) error {
	query, args, err := squirrel.
		Insert("reports").
		SetMap(map[string]interface{}{
			"id":          rep.ID,
			"reporter_id": rep.ReporterID,
			"target_type": string(rep.TargetType),
			"target_id":   rep.TargetID,
			"reason":      rep.Reason,
			"details":     rep.Details,
			"status":      string(rep.Status),
			"created_at":  rep.CreatedAt,
		}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build report insert query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		if isUniqueViolation(err) {
			return ErrConflict
		}
		return fmt.Errorf("failed to insert report: %w", err)
	}

	return nil
}

func (r *Repository) GetReport(ctx context.Context, id uuid.UUID) (*model.Report, error) {
	query, args, err := squirrel.
		Select(reportColumns...).
		From("reports").
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	var row report
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get report: %w", err)
	}

	return row.toModel(), nil
}

func (r *Repository) ListReports(ctx context.Context, status model.ReportStatus, limit, offset uint64) ([]*model.Report, error) {
	builder := squirrel.
		Select(reportColumns...).
		From("reports").
		OrderBy("created_at ASC").
		Limit(limit).
		Offset(offset).
		PlaceholderFormat(squirrel.Dollar)
	if status != "" {
		builder = builder.Where(squirrel.Eq{"status": string(status)})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	var rows []report
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list reports: %w", err)
	}

	reports := make([]*model.Report, len(rows))
	for i := range rows {
		reports[i] = rows[i].toModel()
	}

	return reports, nil
}

// ResolveReport closes a pending report and, when deleteContent is set,
// removes the reported feed item or comment in the same transaction.
func (r *Repository) ResolveReport(ctx context.Context, id, moderatorID uuid.UUID, status model.ReportStatus, deleteContent bool, at time.Time) (*model.Report, error) {
	var resolved *model.Report

	err := r.Transaction(ctx, func(tx *sqlx.Tx) error {
		query, args, err := squirrel.
			Update("reports").
			SetMap(map[string]interface{}{
				"status":      string(status),
				"resolved_at": at,
				"resolved_by": moderatorID,
			}).
			Where(squirrel.Eq{
				"id":     id,
				"status": string(model.ReportPending),
			}).
			Suffix("RETURNING " + strings.Join(reportColumns, ", ")).
			PlaceholderFormat(squirrel.Dollar).
			ToSql()
		if err != nil {
			return fmt.Errorf("failed to build update query: %w", err)
		}

		var row report
		if err := tx.GetContext(ctx, &row, query, args...); err != nil {
			if !errors.Is(err, sql.ErrNoRows) {
				return fmt.Errorf("failed to resolve report: %w", err)
			}

			var exists int
			existsQuery, existsArgs, err := squirrel.
				Select("1").
				From("reports").
				Where(squirrel.Eq{"id": id}).
				PlaceholderFormat(squirrel.Dollar).
				ToSql()
			if err != nil {
				return fmt.Errorf("failed to build query: %w", err)
			}
			if err := tx.GetContext(ctx, &exists, existsQuery, existsArgs...); err != nil {
				if errors.Is(err, sql.ErrNoRows) {
					return ErrNotFound
				}
				return fmt.Errorf("failed to check report: %w", err)
			}
			return ErrInvalidState
		}

		if deleteContent {
			var table string
			switch model.ReportTargetType(row.TargetType) {
			case model.ReportTargetFeedItem:
				table = "feed_items"
			case model.ReportTargetComment:
				table = "comments"
			}

			if table != "" {
				deleteQuery, deleteArgs, err := squirrel.
					Delete(table).
					Where(squirrel.Eq{"id": row.TargetID}).
					PlaceholderFormat(squirrel.Dollar).
					ToSql()
				if err != nil {
					return fmt.Errorf("failed to build delete query: %w", err)
				}
				if _, err := tx.ExecContext(ctx, deleteQuery, deleteArgs...); err != nil {
					return fmt.Errorf("failed to delete reported content: %w", err)
				}
			}
		}

		resolved = row.toModel()
		return nil
	})
	if err != nil {
		return nil, err
	}

	return resolved, nil
}
