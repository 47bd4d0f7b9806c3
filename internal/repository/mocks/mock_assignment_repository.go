package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"sitrack/internal/model"
)

type MockAssignmentRepository struct {
	mock.Mock
}

func (m *MockAssignmentRepository) Create(ctx context.Context, a *model.TaskAssignment) (*model.TaskAssignment, error) {
	args := m.Called(ctx, a)
	if f, ok := args.Get(0).(func(context.Context, *model.TaskAssignment) *model.TaskAssignment); ok {
		return f(ctx, a), args.Error(1)
	}
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.TaskAssignment), args.Error(1)
}

func (m *MockAssignmentRepository) FindByID(ctx context.Context, id string) (*model.TaskAssignment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.TaskAssignment), args.Error(1)
}

func (m *MockAssignmentRepository) FindByIDForUpdate(ctx context.Context, id string) (*model.TaskAssignment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.TaskAssignment), args.Error(1)
}

func (m *MockAssignmentRepository) ListByReport(ctx context.Context, reportID string) ([]model.TaskAssignment, error) {
	args := m.Called(ctx, reportID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.TaskAssignment), args.Error(1)
}

func (m *MockAssignmentRepository) ListForStaff(ctx context.Context, staffID string, statuses []model.Status) ([]model.TaskAssignment, error) {
	args := m.Called(ctx, staffID, statuses)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.TaskAssignment), args.Error(1)
}

func (m *MockAssignmentRepository) Update(ctx context.Context, a *model.TaskAssignment) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}
