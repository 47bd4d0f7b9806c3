package postgres

import (
	"context"
	"database/sql"

	"sitrack/internal/model"
	"sitrack/internal/repository"
)

// HistoryPostgres is a PostgreSQL implementation of repository.HistoryRepository.
// Rows are never updated or deleted here.
type HistoryPostgres struct {
	db DBTX
}

// NewHistoryPostgres creates a new HistoryPostgres repository.
func NewHistoryPostgres(db DBTX) *HistoryPostgres {
	return &HistoryPostgres{db: db}
}

var _ repository.HistoryRepository = (*HistoryPostgres)(nil)

// Append inserts a history entry.
func (p *HistoryPostgres) Append(ctx context.Context, h *model.WorkflowHistory) (*model.WorkflowHistory, error) {
	const q = `
		INSERT INTO workflow_history (id, report_id, action, notes, user_id, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, report_id, action, notes, user_id, status, created_at`
	row := p.db.QueryRowContext(ctx, q,
		h.ID,
		h.ReportID,
		h.Action,
		h.Notes,
		nullablePtr(h.UserID),
		h.Status,
		h.CreatedAt,
	)
	var out model.WorkflowHistory
	if err := row.Scan(
		&out.ID,
		&out.ReportID,
		&out.Action,
		&out.Notes,
		&out.UserID,
		&out.Status,
		&out.CreatedAt,
	); err != nil {
		return nil, err
	}
	out.ActorName = h.ActorName
	return &out, nil
}

// ListByReport returns a report's history oldest first with the actor's display name.
func (p *HistoryPostgres) ListByReport(ctx context.Context, reportID string) ([]model.WorkflowHistory, error) {
	const q = `
		SELECT h.id, h.report_id, h.action, h.notes, h.user_id, h.status, h.created_at,
		       COALESCE(NULLIF(pr.full_name, ''), pr.name)
		FROM workflow_history h
		LEFT JOIN profiles pr ON pr.id = h.user_id
		WHERE h.report_id = $1
		ORDER BY h.created_at ASC, h.id ASC`
	rows, err := p.db.QueryContext(ctx, q, reportID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.WorkflowHistory, 0)
	for rows.Next() {
		var (
			h     model.WorkflowHistory
			actor sql.NullString
		)
		if err := rows.Scan(
			&h.ID,
			&h.ReportID,
			&h.Action,
			&h.Notes,
			&h.UserID,
			&h.Status,
			&h.CreatedAt,
			&actor,
		); err != nil {
			return nil, err
		}
		h.ActorName = actor.String
		items = append(items, h)
	}
	return items, rows.Err()
}
