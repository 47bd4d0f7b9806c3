package migration

import (
	"bytes"
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sitrack/internal/logging"
)

func TestEnsureMigrated_FreshDatabase(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	var buf bytes.Buffer
	log := logging.New(&buf, time.UTC)

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS schema_migrations").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT name FROM schema_migrations").WillReturnRows(sqlmock.NewRows([]string{"name"}))
	for _, step := range steps {
		mock.ExpectExec(regexp.QuoteMeta(step.SQL)).WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectExec("INSERT INTO schema_migrations").WithArgs(step.Name).WillReturnResult(sqlmock.NewResult(0, 1))
	}

	err = EnsureMigrated(context.Background(), db, log, "localhost")

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
	assert.Contains(t, buf.String(), `"event":"db_migration_success"`)
}

func TestEnsureMigrated_SkipsAppliedSteps(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	var buf bytes.Buffer
	log := logging.New(&buf, time.UTC)

	rows := sqlmock.NewRows([]string{"name"})
	for _, name := range Steps() {
		rows.AddRow(name)
	}
	mock.ExpectExec("CREATE TABLE IF NOT EXISTS schema_migrations").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT name FROM schema_migrations").WillReturnRows(rows)

	err = EnsureMigrated(context.Background(), db, log, "localhost")

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
	assert.Contains(t, buf.String(), `"event":"db_migration_skip"`)
}

func TestEnsureMigrated_StepFailure(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	var buf bytes.Buffer
	log := logging.New(&buf, time.UTC)

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS schema_migrations").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT name FROM schema_migrations").WillReturnRows(sqlmock.NewRows([]string{"name"}))
	mock.ExpectExec(regexp.QuoteMeta(steps[0].SQL)).WillReturnError(errors.New("permission denied"))

	err = EnsureMigrated(context.Background(), db, log, "localhost")

	assert.ErrorContains(t, err, "migration step create_extension_uuid_ossp failed: permission denied")
	assert.NoError(t, mock.ExpectationsWereMet())
	assert.Contains(t, buf.String(), `"level":"error"`)
	assert.Contains(t, buf.String(), `"migration_step":"create_extension_uuid_ossp"`)
}

func TestSteps(t *testing.T) {
	names := Steps()
	assert.Len(t, names, len(steps))

	seen := make(map[string]bool)
	for _, n := range names {
		assert.False(t, seen[n], "duplicate step %s", n)
		seen[n] = true
	}
}
