package model

import "time"

// Status is the workflow state of a report. Task assignments reuse the
// in-progress, completed and revision-required values.
type Status string

const (
	StatusDraft             Status = "draft"
	StatusInProgress        Status = "in-progress"
	StatusRevisionRequired  Status = "revision-required"
	StatusPendingApprovalTU Status = "pending-approval-tu"
	StatusCompleted         Status = "completed"
)

// Statuses lists the report statuses in workflow order.
var Statuses = []Status{
	StatusDraft,
	StatusInProgress,
	StatusRevisionRequired,
	StatusPendingApprovalTU,
	StatusCompleted,
}

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	for _, known := range Statuses {
		if s == known {
			return true
		}
	}
	return false
}

// Document verification values.
const (
	DocumentPresent = "Ada"
	DocumentMissing = "Tidak Ada"
)

// Report is a tracked letter.
type Report struct {
	ID                   string            `json:"id"`
	NoSurat              string            `json:"no_surat"`
	Hal                  string            `json:"hal"`
	Layanan              string            `json:"layanan"`
	Dari                 string            `json:"dari"`
	Status               Status            `json:"status"`
	CreatedBy            string            `json:"created_by"`
	CurrentHolder        *string           `json:"current_holder"`
	DocumentVerification map[string]string `json:"document_verification"`
	CreatedAt            time.Time         `json:"created_at"`
	UpdatedAt            time.Time         `json:"updated_at"`
}

// ReportDetail is a report together with everything attached to it.
type ReportDetail struct {
	Report
	Progress    int               `json:"progress"`
	Assignments []TaskAssignment  `json:"task_assignments"`
	History     []WorkflowHistory `json:"workflow_history"`
	Attachments []FileAttachment  `json:"file_attachments"`
}
