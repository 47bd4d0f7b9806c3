package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"sitrack/internal/repository"
)

// MockStore hands out the embedded repository mocks. WithinTx runs fn
// against the same store so expectations set on the mocks apply inside
// the transaction too; TxErr, when set, is returned instead of calling fn.
type MockStore struct {
	ReportRepo     *MockReportRepository
	AssignmentRepo *MockAssignmentRepository
	HistoryRepo    *MockHistoryRepository
	ProfileRepo    *MockProfileRepository
	AttachmentRepo *MockAttachmentRepository

	TxErr   error
	TxCalls int
}

// NewMockStore returns a MockStore with fresh repository mocks.
func NewMockStore() *MockStore {
	return &MockStore{
		ReportRepo:     new(MockReportRepository),
		AssignmentRepo: new(MockAssignmentRepository),
		HistoryRepo:    new(MockHistoryRepository),
		ProfileRepo:    new(MockProfileRepository),
		AttachmentRepo: new(MockAttachmentRepository),
	}
}

var _ repository.Store = (*MockStore)(nil)

func (m *MockStore) Reports() repository.ReportRepository         { return m.ReportRepo }
func (m *MockStore) Assignments() repository.AssignmentRepository { return m.AssignmentRepo }
func (m *MockStore) History() repository.HistoryRepository         { return m.HistoryRepo }
func (m *MockStore) Profiles() repository.ProfileRepository       { return m.ProfileRepo }
func (m *MockStore) Attachments() repository.AttachmentRepository { return m.AttachmentRepo }

func (m *MockStore) WithinTx(_ context.Context, fn func(repository.Store) error) error {
	m.TxCalls++
	if m.TxErr != nil {
		return m.TxErr
	}
	return fn(m)
}

// AssertExpectations checks every repository mock.
func (m *MockStore) AssertExpectations(t mock.TestingT) {
	m.ReportRepo.AssertExpectations(t)
	m.AssignmentRepo.AssertExpectations(t)
	m.HistoryRepo.AssertExpectations(t)
	m.ProfileRepo.AssertExpectations(t)
	m.AttachmentRepo.AssertExpectations(t)
}
