package mocks

import (
	"context"
	"time"

	"calixo/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type MockReportRepository struct {
	mock.Mock
}

func (m *MockReportRepository) ReportExists(ctx context.Context, reporterID uuid.UUID, targetType model.ReportTargetType, targetID uuid.UUID, reason string) (bool, error) {
	args := m.Called(ctx, reporterID, targetType, targetID, reason)
	return args.Bool(0), args.Error(1)
}

func (m *MockReportRepository) CreateReport(ctx context.Context, rep *model.Report) error {
	args := m.Called(ctx, rep)
	return args.Error(0)
}

func (m *MockReportRepository) GetReport(ctx context.Context, id uuid.UUID) (*model.Report, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Report), args.Error(1)
}

func (m *MockReportRepository) ListReports(ctx context.Context, status model.ReportStatus, limit, offset uint64) ([]*model.Report, error) {
	args := m.Called(ctx, status, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Report), args.Error(1)
}

func (m *MockReportRepository) ResolveReport(ctx context.Context, id, moderatorID uuid.UUID, status model.ReportStatus, deleteContent bool, at time.Time) (*model.Report, error) {
	args := m.Called(ctx, id, moderatorID, status, deleteContent, at)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Report), args.Error(1)
}

func (m *MockReportRepository) GetUserByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockReportRepository) GetFeedItem(ctx context.Context, id uuid.UUID) (*model.FeedItem, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.FeedItem), args.Error(1)
}

func (m *MockReportRepository) GetComment(ctx context.Context, id uuid.UUID) (*model.Comment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Comment), args.Error(1)
}
