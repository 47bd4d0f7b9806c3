package workflow

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"sitrack/internal/model"
)

func TestTransition(t *testing.T) {
	tests := []struct {
		name    string
		from    model.Status
		action  Action
		role    model.Role
		want    model.Status
		wantErr error
	}{
		{"tu forwards draft", model.StatusDraft, ActionForward, model.RoleTU, model.StatusInProgress, nil},
		{"staff cannot forward", model.StatusDraft, ActionForward, model.RoleStaff, model.StatusDraft, ErrForbidden},
		{"forward twice", model.StatusInProgress, ActionForward, model.RoleTU, model.StatusInProgress, ErrInvalidTransition},
		{"coordinator assigns keeps status", model.StatusInProgress, ActionAssign, model.RoleKoordinator, model.StatusInProgress, nil},
		{"assign during revision", model.StatusRevisionRequired, ActionAssign, model.RoleKoordinator, model.StatusRevisionRequired, nil},
		{"assign a draft", model.StatusDraft, ActionAssign, model.RoleKoordinator, model.StatusDraft, ErrInvalidTransition},
		{"request revision", model.StatusInProgress, ActionRequestRevision, model.RoleKoordinator, model.StatusRevisionRequired, nil},
		{"forward to tu", model.StatusInProgress, ActionForwardToTU, model.RoleKoordinator, model.StatusPendingApprovalTU, nil},
		{"forward to tu while revising", model.StatusRevisionRequired, ActionForwardToTU, model.RoleKoordinator, model.StatusRevisionRequired, ErrInvalidTransition},
		{"tu finalizes", model.StatusPendingApprovalTU, ActionFinalize, model.RoleTU, model.StatusCompleted, nil},
		{"finalize in progress", model.StatusInProgress, ActionFinalize, model.RoleTU, model.StatusInProgress, ErrInvalidTransition},
		{"coordinator cannot finalize", model.StatusPendingApprovalTU, ActionFinalize, model.RoleKoordinator, model.StatusPendingApprovalTU, ErrForbidden},
		{"tu returns to coordinator", model.StatusPendingApprovalTU, ActionReturn, model.RoleTU, model.StatusInProgress, nil},
		{"admin finalizes", model.StatusPendingApprovalTU, ActionFinalize, model.RoleAdmin, model.StatusCompleted, nil},
		{"admin cannot submit", model.StatusInProgress, ActionSubmit, model.RoleAdmin, model.StatusInProgress, ErrForbidden},
		{"admin deletes completed", model.StatusCompleted, ActionDelete, model.RoleAdmin, model.StatusCompleted, nil},
		{"tu deletes completed", model.StatusCompleted, ActionDelete, model.RoleTU, model.StatusCompleted, ErrInvalidTransition},
		{"tu edits draft", model.StatusDraft, ActionEdit, model.RoleTU, model.StatusDraft, nil},
		{"unknown action", model.StatusDraft, Action("archive"), model.RoleTU, model.StatusDraft, ErrInvalidTransition},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Transition(tt.from, tt.action, tt.role)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAvailable(t *testing.T) {
	assert.Equal(t, []Action{ActionEdit, ActionDelete, ActionForward}, Available(model.StatusDraft, model.RoleTU))
	assert.Equal(t, []Action{ActionReturn, ActionFinalize}, Available(model.StatusPendingApprovalTU, model.RoleTU))
	assert.Equal(t, []Action{ActionAssign, ActionRequestRevision, ActionForwardToTU}, Available(model.StatusInProgress, model.RoleKoordinator))
	assert.Empty(t, Available(model.StatusCompleted, model.RoleStaff))
}

func TestAssignmentTransition(t *testing.T) {
	got, err := AssignmentTransition(model.StatusInProgress, ActionSubmit)
	assert.NoError(t, err)
	assert.Equal(t, model.StatusCompleted, got)

	got, err = AssignmentTransition(model.StatusCompleted, ActionRequestRevision)
	assert.NoError(t, err)
	assert.Equal(t, model.StatusRevisionRequired, got)

	got, err = AssignmentTransition(model.StatusRevisionRequired, ActionSubmit)
	assert.NoError(t, err)
	assert.Equal(t, model.StatusCompleted, got)

	_, err = AssignmentTransition(model.StatusCompleted, ActionSubmit)
	assert.ErrorIs(t, err, ErrInvalidTransition)

	_, err = AssignmentTransition(model.StatusInProgress, ActionFinalize)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestStatusAfterSubmit(t *testing.T) {
	assert.Equal(t, model.StatusInProgress, StatusAfterSubmit([]model.TaskAssignment{
		{Status: model.StatusCompleted},
		{Status: model.StatusInProgress},
	}))
	assert.Equal(t, model.StatusRevisionRequired, StatusAfterSubmit([]model.TaskAssignment{
		{Status: model.StatusCompleted},
		{Status: model.StatusRevisionRequired},
	}))
}

func TestProgress(t *testing.T) {
	assert.Equal(t, 0, Progress(model.StatusInProgress, nil))
	assert.Equal(t, 100, Progress(model.StatusCompleted, nil))
	assert.Equal(t, 67, Progress(model.StatusInProgress, []model.TaskAssignment{
		{Status: model.StatusCompleted},
		{Status: model.StatusCompleted},
		{Status: model.StatusRevisionRequired},
	}))
}

func TestAllCompleted(t *testing.T) {
	assert.False(t, AllCompleted(nil))
	assert.True(t, AllCompleted([]model.TaskAssignment{{Status: model.StatusCompleted}}))
	assert.False(t, AllCompleted([]model.TaskAssignment{{Status: model.StatusCompleted}, {Status: model.StatusInProgress}}))
}

func TestLabels(t *testing.T) {
	assert.Equal(t, "Dalam Proses", StatusLabel(model.StatusInProgress))
	assert.Equal(t, "unknown", StatusLabel(model.Status("unknown")))

	assert.Equal(t, StepAssignment, StepOf(ActionLabel(ActionAssign)))
	assert.Equal(t, StepDone, StepOf(ActionLabel(ActionFinalize)))
	assert.Equal(t, StepVerification, StepOf("Verifikasi Dokumen"))
	assert.Equal(t, "", StepOf("laporan di teruskan"))
}
