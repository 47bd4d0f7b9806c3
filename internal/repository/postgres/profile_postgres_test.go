package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sitrack/internal/model"
	"sitrack/internal/repository"
)

var profileRowColumns = []string{"id", "name", "full_name", "email", "role", "password_hash", "created_at", "updated_at"}

func TestProfilePostgres_Create(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewProfilePostgres(db)
	ctx := context.Background()

	now := time.Now().UTC()
	p := &model.Profile{
		ID:           "u-1",
		Name:         "budi",
		FullName:     "Budi Santoso",
		Email:        "budi@sitrack.gov.id",
		Role:         model.RoleStaff,
		PasswordHash: "hash",
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	t.Run("success", func(t *testing.T) {
		mock.ExpectQuery("INSERT INTO profiles").
			WithArgs(p.ID, p.Name, p.FullName, p.Email, model.RoleStaff, p.PasswordHash, now, now).
			WillReturnRows(sqlmock.NewRows(profileRowColumns).
				AddRow(p.ID, p.Name, p.FullName, p.Email, "Staff", p.PasswordHash, now, now))

		out, err := repo.Create(ctx, p)

		require.NoError(t, err)
		assert.Equal(t, model.RoleStaff, out.Role)
	})

	t.Run("duplicate name", func(t *testing.T) {
		mock.ExpectQuery("INSERT INTO profiles").
			WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "profiles_name_key"})

		_, err := repo.Create(ctx, p)

		assert.ErrorIs(t, err, repository.ErrDuplicate)
	})
}

func TestProfilePostgres_FindByName(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewProfilePostgres(db)

	mock.ExpectQuery(`WHERE lower\(name\) = lower\(\$1\)`).
		WithArgs("Budi").
		WillReturnRows(sqlmock.NewRows(profileRowColumns).
			AddRow("u-1", "budi", "", "budi@sitrack.gov.id", "TU", "hash", time.Now(), time.Now()))

	out, err := repo.FindByName(context.Background(), "Budi")

	require.NoError(t, err)
	assert.Equal(t, "budi", out.DisplayName())
	assert.Equal(t, model.RoleTU, out.Role)
}

func TestProfilePostgres_List(t *testing.T) {
	ctx := context.Background()

	t.Run("all", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewProfilePostgres(db)

		mock.ExpectQuery("SELECT (.+) FROM profiles ORDER BY created_at DESC").
			WillReturnRows(sqlmock.NewRows(profileRowColumns).
				AddRow("u-1", "a", "", "a@x", "Admin", "h", time.Now(), time.Now()).
				AddRow("u-2", "b", "", "b@x", "Staff", "h", time.Now(), time.Now()))

		items, err := repo.List(ctx, "")

		require.NoError(t, err)
		assert.Len(t, items, 2)
	})

	t.Run("search", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewProfilePostgres(db)

		mock.ExpectQuery(`WHERE name ILIKE \$1 OR full_name ILIKE \$1`).
			WithArgs("%siti%").
			WillReturnRows(sqlmock.NewRows(profileRowColumns))

		items, err := repo.List(ctx, "  siti ")

		require.NoError(t, err)
		assert.Empty(t, items)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestProfilePostgres_UpdatePassword(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewProfilePostgres(db)
	at := time.Now()

	mock.ExpectExec("UPDATE profiles SET password_hash").
		WithArgs("u-1", "new-hash", at).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE profiles SET password_hash").
		WithArgs("u-2", "new-hash", at).
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.NoError(t, repo.UpdatePassword(context.Background(), "u-1", "new-hash", at))
	assert.True(t, IsNoRowsError(repo.UpdatePassword(context.Background(), "u-2", "new-hash", at)))
}

func TestProfilePostgres_FindByIDForUpdate(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewProfilePostgres(db)
	at := time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`FROM profiles WHERE id = \$1 FOR UPDATE`).
		WithArgs("u-1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "full_name", "email", "role", "password_hash", "created_at", "updated_at"}).
			AddRow("u-1", "siti", "Siti Aminah", "siti@sitrack.gov.id", "Staff", "hash", at, at))

	p, err := repo.FindByIDForUpdate(context.Background(), "u-1")

	require.NoError(t, err)
	assert.Equal(t, model.RoleStaff, p.Role)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProfilePostgres_Delete(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewProfilePostgres(db)

	mock.ExpectExec("DELETE FROM profiles WHERE id = ?").
		WithArgs("u-1").
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.True(t, IsNoRowsError(repo.Delete(context.Background(), "u-1")))
}
