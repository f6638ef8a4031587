package mocks

import (
	"context"

	"calixo/internal/model"
	"calixo/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type MockReportService struct {
	mock.Mock
}

func (m *MockReportService) Submit(ctx context.Context, reporterID uuid.UUID, input service.ReportInput) (*model.Report, error) {
	args := m.Called(ctx, reporterID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Report), args.Error(1)
}

func (m *MockReportService) List(ctx context.Context, status model.ReportStatus, limit, offset uint64) ([]*model.Report, error) {
	args := m.Called(ctx, status, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Report), args.Error(1)
}

func (m *MockReportService) Get(ctx context.Context, id uuid.UUID) (*model.Report, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Report), args.Error(1)
}

func (m *MockReportService) Resolve(ctx context.Context, moderatorID, reportID uuid.UUID, status model.ReportStatus, deleteContent bool) (*model.Report, error) {
	args := m.Called(ctx, moderatorID, reportID, status, deleteContent)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Report), args.Error(1)
}
