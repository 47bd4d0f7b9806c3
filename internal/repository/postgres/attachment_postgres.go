package postgres

import (
	"context"
	"database/sql"

	"sitrack/internal/model"
	"sitrack/internal/repository"
)

// AttachmentPostgres is a PostgreSQL implementation of repository.AttachmentRepository.
// It uses database/sql with parameterized queries and contains no business logic.
type AttachmentPostgres struct {
	db DBTX
}

// NewAttachmentPostgres creates a new AttachmentPostgres repository.
func NewAttachmentPostgres(db DBTX) *AttachmentPostgres {
	return &AttachmentPostgres{db: db}
}

var _ repository.AttachmentRepository = (*AttachmentPostgres)(nil)

const attachmentColumns = `id, report_id, file_name, storage_path, size, content_type, uploaded_by, created_at`

func scanAttachment(s rowScanner) (*model.FileAttachment, error) {
	var (
		a          model.FileAttachment
		uploadedBy sql.NullString
	)
	if err := s.Scan(
		&a.ID,
		&a.ReportID,
		&a.FileName,
		&a.StoragePath,
		&a.Size,
		&a.ContentType,
		&uploadedBy,
		&a.CreatedAt,
	); err != nil {
		return nil, err
	}
	a.UploadedBy = uploadedBy.String
	return &a, nil
}

// Create inserts a new attachment row and returns the stored record.
func (r *AttachmentPostgres) Create(ctx context.Context, a *model.FileAttachment) (*model.FileAttachment, error) {
	const q = `
		INSERT INTO file_attachments (id, report_id, file_name, storage_path, size, content_type, uploaded_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING ` + attachmentColumns
	row := r.db.QueryRowContext(ctx, q,
		a.ID,
		a.ReportID,
		a.FileName,
		a.StoragePath,
		a.Size,
		a.ContentType,
		nullable(a.UploadedBy),
		a.CreatedAt,
	)
	out, err := scanAttachment(row)
	if err != nil {
		return nil, mapError(err)
	}
	return out, nil
}

// FindByID fetches a single attachment by its ID.
func (r *AttachmentPostgres) FindByID(ctx context.Context, id string) (*model.FileAttachment, error) {
	const q = `SELECT ` + attachmentColumns + ` FROM file_attachments WHERE id = $1`
	return scanAttachment(r.db.QueryRowContext(ctx, q, id))
}

// ListByReport returns a report's attachments newest first.
func (r *AttachmentPostgres) ListByReport(ctx context.Context, reportID string) ([]model.FileAttachment, error) {
	const q = `SELECT ` + attachmentColumns + ` FROM file_attachments WHERE report_id = $1 ORDER BY created_at DESC, id DESC`
	rows, err := r.db.QueryContext(ctx, q, reportID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.FileAttachment, 0)
	for rows.Next() {
		a, err := scanAttachment(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

// Delete removes an attachment row. A missing row is not an error.
func (r *AttachmentPostgres) Delete(ctx context.Context, id string) error {
	const q = `DELETE FROM file_attachments WHERE id = $1`
	_, err := r.db.ExecContext(ctx, q, id)
	return err
}
