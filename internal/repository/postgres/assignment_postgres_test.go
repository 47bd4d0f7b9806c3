package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sitrack/internal/model"
)

var assignmentRowColumns = []string{"id", "report_id", "staff_id", "coordinator_id", "todo_list", "completed_tasks", "notes", "revision_notes", "status", "progress", "created_at", "completed_at"}

func TestAssignmentPostgres_Create(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAssignmentPostgres(db)

	now := time.Now().UTC()
	a := &model.TaskAssignment{
		ID:            "a-1",
		ReportID:      "r-1",
		StaffID:       "s-1",
		CoordinatorID: "k-1",
		TodoList:      []string{"Cek berkas", "Input data"},
		Notes:         "segera",
		Status:        model.StatusInProgress,
		CreatedAt:     now,
	}

	mock.ExpectQuery("INSERT INTO task_assignments").
		WithArgs("a-1", "r-1", "s-1", "k-1", `["Cek berkas","Input data"]`, `[]`, "segera", "", model.StatusInProgress, 0, now, nil).
		WillReturnRows(sqlmock.NewRows(assignmentRowColumns).
			AddRow("a-1", "r-1", "s-1", "k-1", []byte(`["Cek berkas","Input data"]`), []byte(`[]`), "segera", "", "in-progress", 0, now, nil))

	out, err := repo.Create(context.Background(), a)

	require.NoError(t, err)
	assert.Equal(t, []string{"Cek berkas", "Input data"}, out.TodoList)
	assert.Equal(t, []string{}, out.CompletedTasks)
	assert.Nil(t, out.CompletedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAssignmentPostgres_FindByIDForUpdate(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAssignmentPostgres(db)

	mock.ExpectQuery(`FROM task_assignments ta WHERE ta.id = \$1 FOR UPDATE`).
		WithArgs("a-1").
		WillReturnRows(sqlmock.NewRows(assignmentRowColumns).
			AddRow("a-1", "r-1", "s-1", "k-1", []byte(`["x"]`), []byte(`[]`), "", "", "in-progress", 0, time.Now(), nil))

	a, err := repo.FindByIDForUpdate(context.Background(), "a-1")

	require.NoError(t, err)
	assert.Equal(t, model.StatusInProgress, a.Status)
	assert.Equal(t, "r-1", a.ReportID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAssignmentPostgres_ListByReport(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAssignmentPostgres(db)

	done := time.Now()
	cols := append(append([]string{}, assignmentRowColumns...), "staff_name")
	mock.ExpectQuery("FROM task_assignments ta LEFT JOIN profiles pr (.+) WHERE ta.report_id = ?").
		WithArgs("r-1").
		WillReturnRows(sqlmock.NewRows(cols).
			AddRow("a-1", "r-1", "s-1", nil, []byte(`["x"]`), []byte(`["x"]`), "", "", "completed", 100, done, done, "Siti Aminah"))

	items, err := repo.ListByReport(context.Background(), "r-1")

	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Siti Aminah", items[0].StaffName)
	assert.Empty(t, items[0].CoordinatorID)
	require.NotNil(t, items[0].CompletedAt)
	assert.Equal(t, 100, items[0].Progress)
}

func TestAssignmentPostgres_ListForStaff(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAssignmentPostgres(db)

	now := time.Now()
	cols := append(append([]string{}, assignmentRowColumns...), reportRowColumns...)
	mock.ExpectQuery(`WHERE ta.staff_id = \$1 AND ta.status IN \(\$2, \$3\) ORDER BY ta.created_at DESC`).
		WithArgs("s-1", "in-progress", "revision-required").
		WillReturnRows(sqlmock.NewRows(cols).
			AddRow("a-1", "r-1", "s-1", "k-1", []byte(`["x"]`), []byte(`[]`), "", "ulang", "revision-required", 0, now, nil,
				"r-1", "NS-1", "Hal", "Perizinan", "TU", "revision-required", "u-1", "k-1", []byte(`{"KTP":"Ada"}`), now, now))

	items, err := repo.ListForStaff(context.Background(), "s-1", []model.Status{model.StatusInProgress, model.StatusRevisionRequired})

	require.NoError(t, err)
	require.Len(t, items, 1)
	require.NotNil(t, items[0].Report)
	assert.Equal(t, "NS-1", items[0].Report.NoSurat)
	assert.Equal(t, "Ada", items[0].Report.DocumentVerification["KTP"])
	assert.Equal(t, "ulang", items[0].RevisionNotes)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAssignmentPostgres_Update(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAssignmentPostgres(db)
	ctx := context.Background()

	done := time.Now()
	a := &model.TaskAssignment{
		ID:             "a-1",
		Status:         model.StatusCompleted,
		CompletedTasks: []string{"x"},
		Progress:       100,
		CompletedAt:    &done,
	}

	t.Run("success", func(t *testing.T) {
		mock.ExpectExec("UPDATE task_assignments").
			WithArgs("a-1", model.StatusCompleted, `["x"]`, "", 100, done).
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.Update(ctx, a))
	})

	t.Run("missing", func(t *testing.T) {
		mock.ExpectExec("UPDATE task_assignments").
			WillReturnResult(sqlmock.NewResult(0, 0))

		assert.True(t, IsNoRowsError(repo.Update(ctx, a)))
	})
}

func TestDecodeList(t *testing.T) {
	out, err := decodeList(nil)
	require.NoError(t, err)
	assert.Equal(t, []string{}, out)

	_, err = decodeList([]byte(`{`))
	assert.Error(t, err)

	s, err := encodeList(nil)
	require.NoError(t, err)
	assert.Equal(t, "[]", s)
}
