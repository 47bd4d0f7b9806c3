package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"sitrack/internal/model"
)

type MockHistoryRepository struct {
	mock.Mock
}

func (m *MockHistoryRepository) Append(ctx context.Context, h *model.WorkflowHistory) (*model.WorkflowHistory, error) {
	args := m.Called(ctx, h)
	if f, ok := args.Get(0).(func(context.Context, *model.WorkflowHistory) *model.WorkflowHistory); ok {
		return f(ctx, h), args.Error(1)
	}
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.WorkflowHistory), args.Error(1)
}

func (m *MockHistoryRepository) ListByReport(ctx context.Context, reportID string) ([]model.WorkflowHistory, error) {
	args := m.Called(ctx, reportID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.WorkflowHistory), args.Error(1)
}
