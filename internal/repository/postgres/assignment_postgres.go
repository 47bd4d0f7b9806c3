package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"sitrack/internal/model"
	"sitrack/internal/repository"
)

// AssignmentPostgres is a PostgreSQL implementation of repository.AssignmentRepository.
type AssignmentPostgres struct {
	db DBTX
}

// NewAssignmentPostgres creates a new AssignmentPostgres repository.
func NewAssignmentPostgres(db DBTX) *AssignmentPostgres {
	return &AssignmentPostgres{db: db}
}

var _ repository.AssignmentRepository = (*AssignmentPostgres)(nil)

const assignmentColumns = `ta.id, ta.report_id, ta.staff_id, ta.coordinator_id, ta.todo_list, ta.completed_tasks, ta.notes, ta.revision_notes, ta.status, ta.progress, ta.created_at, ta.completed_at`

// scanAssignment scans assignmentColumns followed by extra destinations.
func scanAssignment(s rowScanner, extra ...any) (*model.TaskAssignment, error) {
	var (
		a           model.TaskAssignment
		coordinator sql.NullString
		todo        []byte
		completed   []byte
	)
	dest := []any{
		&a.ID,
		&a.ReportID,
		&a.StaffID,
		&coordinator,
		&todo,
		&completed,
		&a.Notes,
		&a.RevisionNotes,
		&a.Status,
		&a.Progress,
		&a.CreatedAt,
		&a.CompletedAt,
	}
	if err := s.Scan(append(dest, extra...)...); err != nil {
		return nil, err
	}
	a.CoordinatorID = coordinator.String
	var err error
	if a.TodoList, err = decodeList(todo); err != nil {
		return nil, fmt.Errorf("decode todo_list: %w", err)
	}
	if a.CompletedTasks, err = decodeList(completed); err != nil {
		return nil, fmt.Errorf("decode completed_tasks: %w", err)
	}
	return &a, nil
}

func decodeList(b []byte) ([]string, error) {
	out := []string{}
	if len(b) == 0 {
		return out, nil
	}
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func encodeList(l []string) (string, error) {
	if l == nil {
		l = []string{}
	}
	b, err := json.Marshal(l)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Create inserts a new assignment and returns the stored record.
func (p *AssignmentPostgres) Create(ctx context.Context, a *model.TaskAssignment) (*model.TaskAssignment, error) {
	todo, err := encodeList(a.TodoList)
	if err != nil {
		return nil, fmt.Errorf("encode todo_list: %w", err)
	}
	completed, err := encodeList(a.CompletedTasks)
	if err != nil {
		return nil, fmt.Errorf("encode completed_tasks: %w", err)
	}
	const q = `
		INSERT INTO task_assignments AS ta (id, report_id, staff_id, coordinator_id, todo_list, completed_tasks, notes, revision_notes, status, progress, created_at, completed_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING ` + assignmentColumns
	row := p.db.QueryRowContext(ctx, q,
		a.ID,
		a.ReportID,
		a.StaffID,
		nullable(a.CoordinatorID),
		todo,
		completed,
		a.Notes,
		a.RevisionNotes,
		a.Status,
		a.Progress,
		a.CreatedAt,
		a.CompletedAt,
	)
	out, err := scanAssignment(row)
	if err != nil {
		return nil, mapError(err)
	}
	return out, nil
}

// FindByID fetches one assignment.
func (p *AssignmentPostgres) FindByID(ctx context.Context, id string) (*model.TaskAssignment, error) {
	q := `SELECT ` + assignmentColumns + ` FROM task_assignments ta WHERE ta.id = $1`
	return scanAssignment(p.db.QueryRowContext(ctx, q, id))
}

// FindByIDForUpdate fetches one assignment and holds a row lock on it.
func (p *AssignmentPostgres) FindByIDForUpdate(ctx context.Context, id string) (*model.TaskAssignment, error) {
	q := `SELECT ` + assignmentColumns + ` FROM task_assignments ta WHERE ta.id = $1 FOR UPDATE`
	return scanAssignment(p.db.QueryRowContext(ctx, q, id))
}

// ListByReport returns a report's assignments with the staff display name.
func (p *AssignmentPostgres) ListByReport(ctx context.Context, reportID string) ([]model.TaskAssignment, error) {
	q := `SELECT ` + assignmentColumns + `, COALESCE(NULLIF(pr.full_name, ''), pr.name, '')
		FROM task_assignments ta
		LEFT JOIN profiles pr ON pr.id = ta.staff_id
		WHERE ta.report_id = $1
		ORDER BY ta.created_at ASC, ta.id ASC`
	rows, err := p.db.QueryContext(ctx, q, reportID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.TaskAssignment, 0)
	for rows.Next() {
		var name string
		a, err := scanAssignment(rows, &name)
		if err != nil {
			return nil, err
		}
		a.StaffName = name
		items = append(items, *a)
	}
	return items, rows.Err()
}

// ListForStaff returns a staff member's assignments in the given statuses with their report.
func (p *AssignmentPostgres) ListForStaff(ctx context.Context, staffID string, statuses []model.Status) ([]model.TaskAssignment, error) {
	args := []any{staffID}
	q := `SELECT ` + assignmentColumns + `, ` + reportColumns + `
		FROM task_assignments ta
		JOIN reports r ON r.id = ta.report_id
		WHERE ta.staff_id = $1`
	if len(statuses) > 0 {
		phs := make([]string, len(statuses))
		for i, s := range statuses {
			args = append(args, string(s))
			phs[i] = fmt.Sprintf("$%d", len(args))
		}
		q += ` AND ta.status IN (` + strings.Join(phs, ", ") + `)`
	}
	q += ` ORDER BY ta.created_at DESC, ta.id DESC`

	rows, err := p.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.TaskAssignment, 0)
	for rows.Next() {
		var (
			rep          model.Report
			createdBy    sql.NullString
			verification []byte
		)
		a, err := scanAssignment(rows,
			&rep.ID, &rep.NoSurat, &rep.Hal, &rep.Layanan, &rep.Dari, &rep.Status,
			&createdBy, &rep.CurrentHolder, &verification, &rep.CreatedAt, &rep.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		rep.CreatedBy = createdBy.String
		rep.DocumentVerification = map[string]string{}
		if len(verification) > 0 {
			if err := json.Unmarshal(verification, &rep.DocumentVerification); err != nil {
				return nil, fmt.Errorf("decode document_verification: %w", err)
			}
		}
		a.Report = &rep
		items = append(items, *a)
	}
	return items, rows.Err()
}

// Update writes the mutable workflow fields of an assignment.
func (p *AssignmentPostgres) Update(ctx context.Context, a *model.TaskAssignment) error {
	completed, err := encodeList(a.CompletedTasks)
	if err != nil {
		return fmt.Errorf("encode completed_tasks: %w", err)
	}
	const q = `
		UPDATE task_assignments
		SET status = $2, completed_tasks = $3, revision_notes = $4, progress = $5, completed_at = $6
		WHERE id = $1`
	res, err := p.db.ExecContext(ctx, q, a.ID, a.Status, completed, a.RevisionNotes, a.Progress, a.CompletedAt)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
