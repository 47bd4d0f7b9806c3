package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"sitrack/internal/model"
	"sitrack/internal/repository"
)

// ReportPostgres is a PostgreSQL implementation of repository.ReportRepository.
type ReportPostgres struct {
	db DBTX
}

// NewReportPostgres creates a new ReportPostgres repository.
func NewReportPostgres(db DBTX) *ReportPostgres {
	return &ReportPostgres{db: db}
}

var _ repository.ReportRepository = (*ReportPostgres)(nil)

const reportColumns = `r.id, r.no_surat, r.hal, r.layanan, r.dari, r.status, r.created_by, r.current_holder, r.document_verification, r.created_at, r.updated_at`

func scanReport(s rowScanner) (*model.Report, error) {
	var (
		r            model.Report
		createdBy    sql.NullString
		verification []byte
	)
	if err := s.Scan(
		&r.ID,
		&r.NoSurat,
		&r.Hal,
		&r.Layanan,
		&r.Dari,
		&r.Status,
		&createdBy,
		&r.CurrentHolder,
		&verification,
		&r.CreatedAt,
		&r.UpdatedAt,
	); err != nil {
		return nil, err
	}
	r.CreatedBy = createdBy.String
	r.DocumentVerification = map[string]string{}
	if len(verification) > 0 {
		if err := json.Unmarshal(verification, &r.DocumentVerification); err != nil {
			return nil, fmt.Errorf("decode document_verification: %w", err)
		}
	}
	return &r, nil
}

func encodeVerification(v map[string]string) (string, error) {
	if v == nil {
		v = map[string]string{}
	}
	b, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("encode document_verification: %w", err)
	}
	return string(b), nil
}

// Create inserts a new report row and returns the stored record.
func (p *ReportPostgres) Create(ctx context.Context, r *model.Report) (*model.Report, error) {
	verification, err := encodeVerification(r.DocumentVerification)
	if err != nil {
		return nil, err
	}
	const q = `
		INSERT INTO reports AS r (id, no_surat, hal, layanan, dari, status, created_by, current_holder, document_verification, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING ` + reportColumns
	row := p.db.QueryRowContext(ctx, q,
		r.ID,
		r.NoSurat,
		r.Hal,
		r.Layanan,
		r.Dari,
		r.Status,
		nullable(r.CreatedBy),
		nullablePtr(r.CurrentHolder),
		verification,
		r.CreatedAt,
		r.UpdatedAt,
	)
	out, err := scanReport(row)
	if err != nil {
		return nil, mapError(err)
	}
	return out, nil
}

// Update writes the editable fields of a report.
func (p *ReportPostgres) Update(ctx context.Context, r *model.Report) (*model.Report, error) {
	verification, err := encodeVerification(r.DocumentVerification)
	if err != nil {
		return nil, err
	}
	const q = `
		UPDATE reports AS r
		SET no_surat = $2, hal = $3, layanan = $4, document_verification = $5, updated_at = $6
		WHERE r.id = $1
		RETURNING ` + reportColumns
	row := p.db.QueryRowContext(ctx, q, r.ID, r.NoSurat, r.Hal, r.Layanan, verification, r.UpdatedAt)
	out, err := scanReport(row)
	if err != nil {
		return nil, mapError(err)
	}
	return out, nil
}

// UpdateStatus sets status and current holder. It returns sql.ErrNoRows when the report does not exist.
func (p *ReportPostgres) UpdateStatus(ctx context.Context, id string, status model.Status, holder *string, at time.Time) error {
	const q = `UPDATE reports SET status = $2, current_holder = $3, updated_at = $4 WHERE id = $1`
	res, err := p.db.ExecContext(ctx, q, id, status, nullablePtr(holder), at)
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

// FindByID fetches a single report by its ID.
func (p *ReportPostgres) FindByID(ctx context.Context, id string) (*model.Report, error) {
	q := `SELECT ` + reportColumns + ` FROM reports r WHERE r.id = $1`
	return scanReport(p.db.QueryRowContext(ctx, q, id))
}

// FindByIDForUpdate fetches a report and holds a row lock on it.
// Outside a transaction the lock is released as soon as the statement ends.
func (p *ReportPostgres) FindByIDForUpdate(ctx context.Context, id string) (*model.Report, error) {
	q := `SELECT ` + reportColumns + ` FROM reports r WHERE r.id = $1 FOR UPDATE`
	return scanReport(p.db.QueryRowContext(ctx, q, id))
}

// FindByNoSurat fetches a report by letter number, ignoring case.
func (p *ReportPostgres) FindByNoSurat(ctx context.Context, noSurat string) (*model.Report, error) {
	q := `SELECT ` + reportColumns + ` FROM reports r WHERE lower(r.no_surat) = lower($1)`
	return scanReport(p.db.QueryRowContext(ctx, q, noSurat))
}

// buildReportWhere renders f as a WHERE clause with positional arguments.
func buildReportWhere(f repository.ReportFilter) (string, []any) {
	var (
		conds []string
		args  []any
	)
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if f.Layanan != "" {
		conds = append(conds, "r.layanan = "+arg(f.Layanan))
	}
	if f.Status != "" {
		conds = append(conds, "r.status = "+arg(string(f.Status)))
	}
	if q := strings.TrimSpace(f.Query); q != "" {
		ph := arg("%" + escapeLike(q) + "%")
		conds = append(conds, fmt.Sprintf("(r.hal ILIKE %s OR r.no_surat ILIKE %s)", ph, ph))
	}

	var holder, statuses string
	if f.HolderID != "" {
		holder = "r.current_holder = " + arg(f.HolderID)
	}
	if len(f.Statuses) > 0 {
		phs := make([]string, len(f.Statuses))
		for i, s := range f.Statuses {
			phs[i] = arg(string(s))
		}
		statuses = "r.status IN (" + strings.Join(phs, ", ") + ")"
	}
	switch {
	case holder != "" && statuses != "":
		conds = append(conds, "("+holder+" OR "+statuses+")")
	case holder != "":
		conds = append(conds, holder)
	case statuses != "":
		conds = append(conds, statuses)
	}

	if f.StaffID != "" {
		conds = append(conds, "EXISTS (SELECT 1 FROM task_assignments ta WHERE ta.report_id = r.id AND ta.staff_id = "+arg(f.StaffID)+")")
	}

	if len(conds) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

// List returns reports matching f, newest first, with a total count.
func (p *ReportPostgres) List(ctx context.Context, f repository.ReportFilter) (*repository.PageResult[model.Report], error) {
	where, args := buildReportWhere(f)

	var total int
	if err := p.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM reports r`+where, args...).Scan(&total); err != nil {
		return nil, err
	}

	n := len(args)
	qList := `SELECT ` + reportColumns + ` FROM reports r` + where +
		fmt.Sprintf(` ORDER BY r.created_at DESC, r.id DESC LIMIT $%d OFFSET $%d`, n+1, n+2)
	rows, err := p.db.QueryContext(ctx, qList, append(args, f.Limit, f.Offset)...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Report, 0)
	for rows.Next() {
		r, err := scanReport(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &repository.PageResult[model.Report]{
		Items: items,
		Total: total,
	}, nil
}

// CountByStatus returns the number of reports in each status.
func (p *ReportPostgres) CountByStatus(ctx context.Context) (map[model.Status]int, error) {
	rows, err := p.db.QueryContext(ctx, `SELECT status, COUNT(*) FROM reports GROUP BY status`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[model.Status]int)
	for rows.Next() {
		var (
			s model.Status
			n int
		)
		if err := rows.Scan(&s, &n); err != nil {
			return nil, err
		}
		out[s] = n
	}
	return out, rows.Err()
}

// Delete removes a report by ID. Assignments, history and attachment rows cascade.
func (p *ReportPostgres) Delete(ctx context.Context, id string) error {
	_, err := p.db.ExecContext(ctx, `DELETE FROM reports WHERE id = $1`, id)
	return err
}
