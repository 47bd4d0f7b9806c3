package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"sitrack/internal/model"
	"sitrack/internal/repository"
)

// MockReportRepository is a testify mock of repository.ReportRepository.
// Create and Update accept a func computing the stored report from the call.
type MockReportRepository struct {
	mock.Mock
}

func (m *MockReportRepository) Create(ctx context.Context, r *model.Report) (*model.Report, error) {
	args := m.Called(ctx, r)
	if f, ok := args.Get(0).(func(context.Context, *model.Report) *model.Report); ok {
		return f(ctx, r), args.Error(1)
	}
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Report), args.Error(1)
}

func (m *MockReportRepository) Update(ctx context.Context, r *model.Report) (*model.Report, error) {
	args := m.Called(ctx, r)
	if f, ok := args.Get(0).(func(context.Context, *model.Report) *model.Report); ok {
		return f(ctx, r), args.Error(1)
	}
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Report), args.Error(1)
}

func (m *MockReportRepository) UpdateStatus(ctx context.Context, id string, status model.Status, holder *string, at time.Time) error {
	args := m.Called(ctx, id, status, holder, at)
	return args.Error(0)
}

func (m *MockReportRepository) FindByID(ctx context.Context, id string) (*model.Report, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Report), args.Error(1)
}

func (m *MockReportRepository) FindByIDForUpdate(ctx context.Context, id string) (*model.Report, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Report), args.Error(1)
}

func (m *MockReportRepository) FindByNoSurat(ctx context.Context, noSurat string) (*model.Report, error) {
	args := m.Called(ctx, noSurat)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Report), args.Error(1)
}

func (m *MockReportRepository) List(ctx context.Context, f repository.ReportFilter) (*repository.PageResult[model.Report], error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.PageResult[model.Report]), args.Error(1)
}

func (m *MockReportRepository) CountByStatus(ctx context.Context) (map[model.Status]int, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[model.Status]int), args.Error(1)
}

func (m *MockReportRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
