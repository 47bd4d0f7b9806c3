package model

import "time"

// TaskAssignment links a report to a staff member.
type TaskAssignment struct {
	ID             string     `json:"id"`
	ReportID       string     `json:"report_id"`
	StaffID        string     `json:"staff_id"`
	StaffName      string     `json:"staff_name,omitempty"`
	CoordinatorID  string     `json:"coordinator_id"`
	TodoList       []string   `json:"todo_list"`
	CompletedTasks []string   `json:"completed_tasks"`
	Notes          string     `json:"notes"`
	RevisionNotes  string     `json:"revision_notes"`
	Status         Status     `json:"status"`
	Progress       int        `json:"progress"`
	CreatedAt      time.Time  `json:"created_at"`
	CompletedAt    *time.Time `json:"completed_at"`

	Report *Report `json:"reports,omitempty"`
}
