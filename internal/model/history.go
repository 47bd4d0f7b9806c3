package model

import "time"

// WorkflowHistory is an append-only log entry of something that happened to a report.
// A nil UserID means the entry was written by the system.
type WorkflowHistory struct {
	ID        string    `json:"id"`
	ReportID  string    `json:"report_id"`
	Action    string    `json:"action"`
	Notes     string    `json:"notes"`
	UserID    *string   `json:"user_id"`
	ActorName string    `json:"actor_name,omitempty"`
	Status    Status    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}
