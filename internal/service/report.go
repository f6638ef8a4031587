package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"calixo/internal/model"
	"calixo/internal/repository"

	"github.com/google/uuid"
)

const (
	maxReasonLength  = 100
	maxDetailsLength = 1000
)

type ReportInput struct {
	TargetType model.ReportTargetType
	TargetID   uuid.UUID
	Reason     string
	Details    string
}

type ReportService struct {
	repo     ReportRepository
	notifier Notifier
	now      func() time.Time
}

func NewReportService(repo ReportRepository, notifier Notifier) *ReportService {
	return &ReportService{
		repo:     repo,
		notifier: notifier,
		now:      time.Now,
	}
}

// Submit files a report. A reporter may only report the same target for the
// same reason once.
func (s *ReportService) Submit(ctx context.Context, reporterID uuid.UUID, input ReportInput) (*model.Report, error) {
	reason := strings.TrimSpace(input.Reason)
	switch {
	case !input.TargetType.Valid():
		return nil, fmt.Errorf("%w: unknown target type %q", ErrInvalidInput, input.TargetType)
	case reason == "":
		return nil, fmt.Errorf("%w: reason is required", ErrInvalidInput)
	case utf8.RuneCountInString(reason) > maxReasonLength:
		return nil, fmt.Errorf("%w: reason is too long", ErrInvalidInput)
	case utf8.RuneCountInString(input.Details) > maxDetailsLength:
		return nil, fmt.Errorf("%w: details are too long", ErrInvalidInput)
	}

	if err := s.checkTarget(ctx, input.TargetType, input.TargetID); err != nil {
		return nil, err
	}

	exists, err := s.repo.ReportExists(ctx, reporterID, input.TargetType, input.TargetID, reason)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing reports: %w", err)
	}
	if exists {
		return nil, ErrDuplicateReport
	}

	rep := &model.Report{
		ID:         uuid.New(),
		ReporterID: reporterID,
		TargetType: input.TargetType,
		TargetID:   input.TargetID,
		Reason:     reason,
		Details:    input.Details,
		Status:     model.ReportPending,
		CreatedAt:  s.now().UTC(),
	}

	if err := s.repo.CreateReport(ctx, rep); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return nil, ErrDuplicateReport
		}
		return nil, fmt.Errorf("failed to create report: %w", err)
	}

	reportsSubmitted.WithLabelValues(string(rep.TargetType)).Inc()
	return rep, nil
}

func (s *ReportService) checkTarget(ctx context.Context, targetType model.ReportTargetType, id uuid.UUID) error {
	var err error
	switch targetType {
	case model.ReportTargetUser:
		_, err = s.repo.GetUserByID(ctx, id)
	case model.ReportTargetFeedItem:
		_, err = s.repo.GetFeedItem(ctx, id)
	case model.ReportTargetComment:
		_, err = s.repo.GetComment(ctx, id)
	}
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrTargetNotFound
		}
		return fmt.Errorf("failed to get report target: %w", err)
	}
	return nil
}

func (s *ReportService) List(ctx context.Context, status model.ReportStatus, limit, offset uint64) ([]*model.Report, error) {
	reports, err := s.repo.ListReports(ctx, status, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list reports: %w", err)
	}
	return reports, nil
}

func (s *ReportService) Get(ctx context.Context, id uuid.UUID) (*model.Report, error) {
	rep, err := s.repo.GetReport(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrReportNotFound
		}
		return nil, fmt.Errorf("failed to get report: %w", err)
	}
	return rep, nil
}

// Resolve closes a pending report as resolved or dismissed. Resolving may also
// delete the reported feed item or comment.
func (s *ReportService) Resolve(ctx context.Context, moderatorID, reportID uuid.UUID, status model.ReportStatus, deleteContent bool) (*model.Report, error) {
	switch status {
	case model.ReportResolved:
	case model.ReportDismissed:
		if deleteContent {
			return nil, fmt.Errorf("%w: a dismissed report cannot delete content", ErrInvalidInput)
		}
	default:
		return nil, fmt.Errorf("%w: status must be resolved or dismissed", ErrInvalidInput)
	}

	rep, err := s.repo.ResolveReport(ctx, reportID, moderatorID, status, deleteContent, s.now().UTC())
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return nil, ErrReportNotFound
		case errors.Is(err, repository.ErrInvalidState):
			return nil, ErrReportAlreadyResolved
		default:
			return nil, fmt.Errorf("failed to resolve report: %w", err)
		}
	}

	notify(ctx, s.notifier, &model.Notification{
		UserID:  rep.ReporterID,
		Type:    model.NotificationReport,
		Title:   "Report reviewed",
		Message: "A moderator reviewed your report",
		Payload: model.ReportResolvedPayload{
			ReportID: rep.ID,
			Status:   rep.Status,
		},
	})

	return rep, nil
}
