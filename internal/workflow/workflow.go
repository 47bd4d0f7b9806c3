// Package workflow holds the report state machine: which role may move a
// report from which status, and where the move leads.
package workflow

import (
	"errors"
	"fmt"
	"math"

	"sitrack/internal/model"
)

var (
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrForbidden         = errors.New("action not permitted for role")
)

// Action is something a user does to a report.
type Action string

const (
	ActionCreate          Action = "create"
	ActionEdit            Action = "edit"
	ActionDelete          Action = "delete"
	ActionForward         Action = "forward"
	ActionAssign          Action = "assign"
	ActionSubmit          Action = "submit"
	ActionRequestRevision Action = "request-revision"
	ActionForwardToTU     Action = "forward-to-tu"
	ActionReturn          Action = "return-to-coordinator"
	ActionFinalize        Action = "finalize"
)

// Public tracking steps, in order.
const (
	StepReceived     = "Surat Diterima"
	StepVerification = "Verifikasi Dokumen"
	StepAssignment   = "Penugasan Staff"
	StepService      = "Proses Pelayanan"
	StepDone         = "Selesai"
)

// Steps lists the public tracking steps with their descriptions.
var Steps = []struct {
	Title       string
	Description string
}{
	{StepReceived, "Surat masuk dan didaftarkan dalam sistem"},
	{StepVerification, "Pemeriksaan kelengkapan dan validitas dokumen"},
	{StepAssignment, "Surat diagendakan kepada staff untuk diproses"},
	{StepService, "Pelaksanaan layanan sesuai jenis permohonan"},
	{StepDone, "Surat telah selesai diproses dan siap diambil"},
}

type rule struct {
	roles []model.Role
	from  []model.Status
	// to is empty when the action keeps the current status.
	to model.Status
}

var reportRules = map[Action]rule{
	ActionEdit: {
		roles: []model.Role{model.RoleTU},
		from:  []model.Status{model.StatusDraft},
	},
	ActionDelete: {
		roles: []model.Role{model.RoleTU},
		from:  []model.Status{model.StatusDraft},
	},
	ActionForward: {
		roles: []model.Role{model.RoleTU},
		from:  []model.Status{model.StatusDraft},
		to:    model.StatusInProgress,
	},
	ActionAssign: {
		roles: []model.Role{model.RoleKoordinator},
		from:  []model.Status{model.StatusInProgress, model.StatusRevisionRequired},
	},
	ActionSubmit: {
		roles: []model.Role{model.RoleStaff},
		from:  []model.Status{model.StatusInProgress, model.StatusRevisionRequired},
	},
	ActionRequestRevision: {
		roles: []model.Role{model.RoleKoordinator},
		from:  []model.Status{model.StatusInProgress, model.StatusRevisionRequired},
		to:    model.StatusRevisionRequired,
	},
	ActionForwardToTU: {
		roles: []model.Role{model.RoleKoordinator},
		from:  []model.Status{model.StatusInProgress},
		to:    model.StatusPendingApprovalTU,
	},
	ActionReturn: {
		roles: []model.Role{model.RoleTU},
		from:  []model.Status{model.StatusPendingApprovalTU},
		to:    model.StatusInProgress,
	},
	ActionFinalize: {
		roles: []model.Role{model.RoleTU},
		from:  []model.Status{model.StatusPendingApprovalTU},
		to:    model.StatusCompleted,
	},
}

// actionOrder fixes the order Available reports actions in.
var actionOrder = []Action{
	ActionEdit,
	ActionDelete,
	ActionForward,
	ActionAssign,
	ActionSubmit,
	ActionRequestRevision,
	ActionForwardToTU,
	ActionReturn,
	ActionFinalize,
}

var assignmentRules = map[Action]rule{
	ActionSubmit: {
		from: []model.Status{model.StatusInProgress, model.StatusRevisionRequired},
		to:   model.StatusCompleted,
	},
	ActionRequestRevision: {
		from: []model.Status{model.StatusInProgress, model.StatusCompleted, model.StatusRevisionRequired},
		to:   model.StatusRevisionRequired,
	},
}

// Transition returns the status a report in status from ends up in when role performs a.
// Admin may do anything except submit staff work; it may also delete in any status.
func Transition(from model.Status, a Action, role model.Role) (model.Status, error) {
	r, ok := reportRules[a]
	if !ok {
		return from, fmt.Errorf("%w: unknown action %q", ErrInvalidTransition, a)
	}
	if !permitted(r, a, role) {
		return from, fmt.Errorf("%w: %s cannot %s", ErrForbidden, role, a)
	}
	if a == ActionDelete && role == model.RoleAdmin {
		return from, nil
	}
	if !contains(r.from, from) {
		return from, fmt.Errorf("%w: cannot %s a report in status %s", ErrInvalidTransition, a, from)
	}
	if r.to == "" {
		return from, nil
	}
	return r.to, nil
}

// Available lists the actions role may currently take on a report in status s.
func Available(s model.Status, role model.Role) []Action {
	out := make([]Action, 0, len(actionOrder))
	for _, a := range actionOrder {
		if _, err := Transition(s, a, role); err == nil {
			out = append(out, a)
		}
	}
	return out
}

// AssignmentTransition is Transition for a single task assignment. Role checks
// happen on the report.
func AssignmentTransition(from model.Status, a Action) (model.Status, error) {
	r, ok := assignmentRules[a]
	if !ok {
		return from, fmt.Errorf("%w: %q does not apply to assignments", ErrInvalidTransition, a)
	}
	if !contains(r.from, from) {
		return from, fmt.Errorf("%w: cannot %s an assignment in status %s", ErrInvalidTransition, a, from)
	}
	return r.to, nil
}

// StatusAfterSubmit is the report status once a staff submission has been applied
// to assignments.
func StatusAfterSubmit(assignments []model.TaskAssignment) model.Status {
	for _, a := range assignments {
		if a.Status == model.StatusRevisionRequired {
			return model.StatusRevisionRequired
		}
	}
	return model.StatusInProgress
}

// Progress is the share of completed assignments as a percentage.
func Progress(status model.Status, assignments []model.TaskAssignment) int {
	if len(assignments) == 0 {
		if status == model.StatusCompleted {
			return 100
		}
		return 0
	}
	done := 0
	for _, a := range assignments {
		if a.Status == model.StatusCompleted {
			done++
		}
	}
	return int(math.Round(float64(done) / float64(len(assignments)) * 100))
}

// AllCompleted reports whether there is at least one assignment and all are completed.
func AllCompleted(assignments []model.TaskAssignment) bool {
	if len(assignments) == 0 {
		return false
	}
	for _, a := range assignments {
		if a.Status != model.StatusCompleted {
			return false
		}
	}
	return true
}

func permitted(r rule, a Action, role model.Role) bool {
	if role == model.RoleAdmin {
		return a != ActionSubmit
	}
	for _, allowed := range r.roles {
		if allowed == role {
			return true
		}
	}
	return false
}

func contains(list []model.Status, s model.Status) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
