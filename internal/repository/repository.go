// Package repository contains data access layer abstractions.
// Implementations live in subpackages (postgres) and contain no business logic.
package repository

import (
	"context"
	"errors"
	"time"

	"sitrack/internal/model"
)

// ErrDuplicate is returned when an insert or update violates a unique constraint.
var ErrDuplicate = errors.New("duplicate key")

// PageQuery holds limit/offset pagination parameters.
type PageQuery struct {
	Limit  int
	Offset int
}

// PageResult is a generic pagination result wrapper.
// T is typically a model type.
type PageResult[T any] struct {
	Items []T
	Total int
}

// ReportFilter narrows a report listing. Empty fields do not filter.
// When both HolderID and Statuses are set a report matches if it is held by
// HolderID or has one of Statuses.
type ReportFilter struct {
	Layanan  string
	Status   model.Status
	Query    string
	HolderID string
	Statuses []model.Status
	StaffID  string
	PageQuery
}

// ReportRepository persists reports.
type ReportRepository interface {
	Create(ctx context.Context, r *model.Report) (*model.Report, error)
	// Update writes the editable fields: no_surat, hal, layanan, document_verification, updated_at.
	Update(ctx context.Context, r *model.Report) (*model.Report, error)
	// UpdateStatus moves a report and sets its holder in one statement.
	UpdateStatus(ctx context.Context, id string, status model.Status, holder *string, at time.Time) error
	FindByID(ctx context.Context, id string) (*model.Report, error)
	// FindByIDForUpdate reads the report and locks its row until the transaction ends.
	FindByIDForUpdate(ctx context.Context, id string) (*model.Report, error)
	// FindByNoSurat matches the letter number case-insensitively.
	FindByNoSurat(ctx context.Context, noSurat string) (*model.Report, error)
	List(ctx context.Context, f ReportFilter) (*PageResult[model.Report], error)
	CountByStatus(ctx context.Context) (map[model.Status]int, error)
	Delete(ctx context.Context, id string) error
}

// AssignmentRepository persists staff task assignments.
type AssignmentRepository interface {
	Create(ctx context.Context, a *model.TaskAssignment) (*model.TaskAssignment, error)
	FindByID(ctx context.Context, id string) (*model.TaskAssignment, error)
	// FindByIDForUpdate reads the assignment and locks its row until the transaction ends.
	FindByIDForUpdate(ctx context.Context, id string) (*model.TaskAssignment, error)
	// ListByReport returns the report's assignments oldest first with StaffName filled.
	ListByReport(ctx context.Context, reportID string) ([]model.TaskAssignment, error)
	// ListForStaff returns a staff member's assignments newest first with Report filled.
	ListForStaff(ctx context.Context, staffID string, statuses []model.Status) ([]model.TaskAssignment, error)
	// Update writes status, completed_tasks, revision_notes, progress and completed_at.
	Update(ctx context.Context, a *model.TaskAssignment) error
}

// HistoryRepository appends to and reads the workflow log.
type HistoryRepository interface {
	Append(ctx context.Context, h *model.WorkflowHistory) (*model.WorkflowHistory, error)
	// ListByReport returns entries oldest first with ActorName filled.
	ListByReport(ctx context.Context, reportID string) ([]model.WorkflowHistory, error)
}

// ProfileRepository persists users.
type ProfileRepository interface {
	Create(ctx context.Context, p *model.Profile) (*model.Profile, error)
	// Update writes name, full_name, email, role and updated_at.
	Update(ctx context.Context, p *model.Profile) (*model.Profile, error)
	UpdatePassword(ctx context.Context, id, hash string, at time.Time) error
	FindByID(ctx context.Context, id string) (*model.Profile, error)
	// FindByIDForUpdate reads the profile and locks its row until the transaction ends.
	FindByIDForUpdate(ctx context.Context, id string) (*model.Profile, error)
	FindByName(ctx context.Context, name string) (*model.Profile, error)
	// List returns profiles newest first, optionally matching query against name or full name.
	List(ctx context.Context, query string) ([]model.Profile, error)
	Delete(ctx context.Context, id string) error
}

// AttachmentRepository persists file attachment metadata.
type AttachmentRepository interface {
	Create(ctx context.Context, a *model.FileAttachment) (*model.FileAttachment, error)
	FindByID(ctx context.Context, id string) (*model.FileAttachment, error)
	ListByReport(ctx context.Context, reportID string) ([]model.FileAttachment, error)
	Delete(ctx context.Context, id string) error
}

// Store groups the repositories and runs units of work atomically.
type Store interface {
	Reports() ReportRepository
	Assignments() AssignmentRepository
	History() HistoryRepository
	Profiles() ProfileRepository
	Attachments() AttachmentRepository

	// WithinTx runs fn against a Store bound to a single transaction. The
	// transaction commits when fn returns nil and rolls back otherwise.
	WithinTx(ctx context.Context, fn func(Store) error) error
}
