package postgres

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"sitrack/internal/model"
	"sitrack/internal/repository"
)

// ProfilePostgres is a PostgreSQL implementation of repository.ProfileRepository.
type ProfilePostgres struct {
	db DBTX
}

// NewProfilePostgres creates a new ProfilePostgres repository.
func NewProfilePostgres(db DBTX) *ProfilePostgres {
	return &ProfilePostgres{db: db}
}

var _ repository.ProfileRepository = (*ProfilePostgres)(nil)

const profileColumns = `id, name, full_name, email, role, password_hash, created_at, updated_at`

func scanProfile(s rowScanner) (*model.Profile, error) {
	var p model.Profile
	if err := s.Scan(
		&p.ID,
		&p.Name,
		&p.FullName,
		&p.Email,
		&p.Role,
		&p.PasswordHash,
		&p.CreatedAt,
		&p.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &p, nil
}

// Create inserts a new profile and returns the stored record.
func (r *ProfilePostgres) Create(ctx context.Context, p *model.Profile) (*model.Profile, error) {
	const q = `
		INSERT INTO profiles (id, name, full_name, email, role, password_hash, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING ` + profileColumns
	row := r.db.QueryRowContext(ctx, q,
		p.ID,
		p.Name,
		p.FullName,
		p.Email,
		p.Role,
		p.PasswordHash,
		p.CreatedAt,
		p.UpdatedAt,
	)
	out, err := scanProfile(row)
	if err != nil {
		return nil, mapError(err)
	}
	return out, nil
}

// Update writes the editable fields of a profile.
func (r *ProfilePostgres) Update(ctx context.Context, p *model.Profile) (*model.Profile, error) {
	const q = `
		UPDATE profiles
		SET name = $2, full_name = $3, email = $4, role = $5, updated_at = $6
		WHERE id = $1
		RETURNING ` + profileColumns
	out, err := scanProfile(r.db.QueryRowContext(ctx, q, p.ID, p.Name, p.FullName, p.Email, p.Role, p.UpdatedAt))
	if err != nil {
		return nil, mapError(err)
	}
	return out, nil
}

// UpdatePassword replaces the stored password hash.
func (r *ProfilePostgres) UpdatePassword(ctx context.Context, id, hash string, at time.Time) error {
	const q = `UPDATE profiles SET password_hash = $2, updated_at = $3 WHERE id = $1`
	res, err := r.db.ExecContext(ctx, q, id, hash, at)
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

// FindByID fetches a single profile by its ID.
func (r *ProfilePostgres) FindByID(ctx context.Context, id string) (*model.Profile, error) {
	const q = `SELECT ` + profileColumns + ` FROM profiles WHERE id = $1`
	return scanProfile(r.db.QueryRowContext(ctx, q, id))
}

// FindByIDForUpdate fetches a profile and holds a row lock on it. Inserts that
// reference the profile wait for the lock.
func (r *ProfilePostgres) FindByIDForUpdate(ctx context.Context, id string) (*model.Profile, error) {
	const q = `SELECT ` + profileColumns + ` FROM profiles WHERE id = $1 FOR UPDATE`
	return scanProfile(r.db.QueryRowContext(ctx, q, id))
}

// FindByName fetches a profile by username, ignoring case.
func (r *ProfilePostgres) FindByName(ctx context.Context, name string) (*model.Profile, error) {
	const q = `SELECT ` + profileColumns + ` FROM profiles WHERE lower(name) = lower($1)`
	return scanProfile(r.db.QueryRowContext(ctx, q, name))
}

// List returns profiles newest first.
func (r *ProfilePostgres) List(ctx context.Context, query string) ([]model.Profile, error) {
	q := `SELECT ` + profileColumns + ` FROM profiles`
	var args []any
	if s := strings.TrimSpace(query); s != "" {
		args = append(args, "%"+escapeLike(s)+"%")
		q += ` WHERE name ILIKE $1 OR full_name ILIKE $1`
	}
	q += ` ORDER BY created_at DESC, id DESC`

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Profile, 0)
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *p)
	}
	return items, rows.Err()
}

// Delete removes a profile by ID.
func (r *ProfilePostgres) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM profiles WHERE id = $1`, id)
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
