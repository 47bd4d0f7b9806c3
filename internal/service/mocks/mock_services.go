package mocks

import (
	"context"
	"io"

	"github.com/stretchr/testify/mock"

	"sitrack/internal/model"
	"sitrack/internal/service"
)

type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Login(ctx context.Context, username, password string) (*service.LoginResult, error) {
	args := m.Called(ctx, username, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.LoginResult), args.Error(1)
}

func (m *MockAuthService) Me(ctx context.Context, id string) (*model.Profile, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Profile), args.Error(1)
}

type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) List(ctx context.Context, query string) ([]model.Profile, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Profile), args.Error(1)
}

func (m *MockUserService) Staff(ctx context.Context) ([]model.Profile, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Profile), args.Error(1)
}

func (m *MockUserService) Create(ctx context.Context, in service.UserInput) (*model.Profile, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Profile), args.Error(1)
}

func (m *MockUserService) Update(ctx context.Context, id string, in service.UserInput) (*model.Profile, error) {
	args := m.Called(ctx, id, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Profile), args.Error(1)
}

func (m *MockUserService) Delete(ctx context.Context, actor service.Actor, id string) error {
	return m.Called(ctx, actor, id).Error(0)
}

type MockReportService struct {
	mock.Mock
}

func (m *MockReportService) Create(ctx context.Context, actor service.Actor, in service.ReportInput) (*model.Report, error) {
	args := m.Called(ctx, actor, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Report), args.Error(1)
}

func (m *MockReportService) Update(ctx context.Context, actor service.Actor, id string, in service.ReportInput) (*model.Report, error) {
	args := m.Called(ctx, actor, id, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Report), args.Error(1)
}

func (m *MockReportService) Delete(ctx context.Context, actor service.Actor, id string) error {
	return m.Called(ctx, actor, id).Error(0)
}

func (m *MockReportService) Get(ctx context.Context, actor service.Actor, id string) (*model.ReportDetail, error) {
	args := m.Called(ctx, actor, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ReportDetail), args.Error(1)
}

func (m *MockReportService) List(ctx context.Context, actor service.Actor, q service.ReportListQuery) (*service.ReportListResult, error) {
	args := m.Called(ctx, actor, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ReportListResult), args.Error(1)
}

func (m *MockReportService) Stats(ctx context.Context) (*service.ReportStats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ReportStats), args.Error(1)
}

type MockWorkflowService struct {
	mock.Mock
}

func (m *MockWorkflowService) report(args mock.Arguments) (*model.Report, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Report), args.Error(1)
}

func (m *MockWorkflowService) assignment(args mock.Arguments) (*model.TaskAssignment, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.TaskAssignment), args.Error(1)
}

func (m *MockWorkflowService) Forward(ctx context.Context, actor service.Actor, reportID, coordinatorID, notes string) (*model.Report, error) {
	return m.report(m.Called(ctx, actor, reportID, coordinatorID, notes))
}

func (m *MockWorkflowService) Assign(ctx context.Context, actor service.Actor, reportID string, in service.AssignInput) ([]model.TaskAssignment, error) {
	args := m.Called(ctx, actor, reportID, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.TaskAssignment), args.Error(1)
}

func (m *MockWorkflowService) Submit(ctx context.Context, actor service.Actor, assignmentID string, completed []string, notes string) (*model.TaskAssignment, error) {
	return m.assignment(m.Called(ctx, actor, assignmentID, completed, notes))
}

func (m *MockWorkflowService) RequestRevision(ctx context.Context, actor service.Actor, assignmentID, notes string) (*model.TaskAssignment, error) {
	return m.assignment(m.Called(ctx, actor, assignmentID, notes))
}

func (m *MockWorkflowService) ForwardToTU(ctx context.Context, actor service.Actor, reportID, notes string) (*model.Report, error) {
	return m.report(m.Called(ctx, actor, reportID, notes))
}

func (m *MockWorkflowService) ReturnToCoordinator(ctx context.Context, actor service.Actor, reportID, notes string) (*model.Report, error) {
	return m.report(m.Called(ctx, actor, reportID, notes))
}

func (m *MockWorkflowService) Finalize(ctx context.Context, actor service.Actor, reportID, notes string) (*model.Report, error) {
	return m.report(m.Called(ctx, actor, reportID, notes))
}

func (m *MockWorkflowService) MyTasks(ctx context.Context, actor service.Actor) ([]model.TaskAssignment, error) {
	args := m.Called(ctx, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.TaskAssignment), args.Error(1)
}

type MockAttachmentService struct {
	mock.Mock
}

func (m *MockAttachmentService) Upload(ctx context.Context, actor service.Actor, reportID string, in service.UploadInput) (*model.FileAttachment, error) {
	args := m.Called(ctx, actor, reportID, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.FileAttachment), args.Error(1)
}

func (m *MockAttachmentService) List(ctx context.Context, actor service.Actor, reportID string) ([]model.FileAttachment, error) {
	args := m.Called(ctx, actor, reportID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.FileAttachment), args.Error(1)
}

func (m *MockAttachmentService) Get(ctx context.Context, actor service.Actor, id string) (*model.FileAttachment, error) {
	args := m.Called(ctx, actor, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.FileAttachment), args.Error(1)
}

func (m *MockAttachmentService) Open(ctx context.Context, actor service.Actor, id string) (io.ReadCloser, *model.FileAttachment, error) {
	args := m.Called(ctx, actor, id)
	rc, _ := args.Get(0).(io.ReadCloser)
	a, _ := args.Get(1).(*model.FileAttachment)
	return rc, a, args.Error(2)
}

func (m *MockAttachmentService) Delete(ctx context.Context, actor service.Actor, id string) error {
	return m.Called(ctx, actor, id).Error(0)
}

type MockTrackingService struct {
	mock.Mock
}

func (m *MockTrackingService) Track(ctx context.Context, search string) (*service.TrackingResult, error) {
	args := m.Called(ctx, search)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.TrackingResult), args.Error(1)
}
