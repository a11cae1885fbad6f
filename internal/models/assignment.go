package models

import "time"

// TaskStatus is the progression status of a single assignment.
type TaskStatus string

const (
	TaskDispatched TaskStatus = "dispatched"
	TaskAccepted   TaskStatus = "accepted"
	TaskInProgress TaskStatus = "in_progress"
	TaskCompleted  TaskStatus = "completed"
	TaskReleased   TaskStatus = "released"
)

// Terminal reports whether the assignment can no longer progress.
func (s TaskStatus) Terminal() bool {
	return s == TaskCompleted || s == TaskReleased
}

// Assignment links one officer to one report for a bounded period of
// active work. Completed and released rows are retained as history.
type Assignment struct {
	AssignmentID string     `json:"assignment_id" gorm:"primaryKey;column:assignment_id;size:36"`
	OfficerID    string     `json:"officer_id" gorm:"size:36;not null;index"`
	Officer      Officer    `json:"officer" gorm:"foreignKey:OfficerID"`
	ReportID     string     `json:"report_id" gorm:"size:36;not null;index"`
	Report       Report     `json:"report" gorm:"foreignKey:ReportID"`
	TaskStatus   TaskStatus `json:"task_status" gorm:"size:20;not null"`
	Active       bool       `json:"active" gorm:"not null;index"`
	DispatchedAt time.Time  `json:"dispatched_at" gorm:"not null"`
	CompletedAt  *time.Time `json:"completed_at,omitempty"`
	Notes        string     `json:"notes" gorm:"size:512"`
	CreatedAt    time.Time  `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt    time.Time  `json:"updated_at" gorm:"autoUpdateTime"`
}
