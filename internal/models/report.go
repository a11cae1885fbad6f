package models

import "time"

// ReportStatus is the lifecycle status of a citizen report.
type ReportStatus string

const (
	StatusPending    ReportStatus = "pending"
	StatusValidated  ReportStatus = "validated"
	StatusInProgress ReportStatus = "in_progress"
	StatusCompleted  ReportStatus = "completed"
	StatusRejected   ReportStatus = "rejected"
)

// Valid reports whether s is one of the defined statuses.
func (s ReportStatus) Valid() bool {
	switch s {
	case StatusPending, StatusValidated, StatusInProgress, StatusCompleted, StatusRejected:
		return true
	}
	return false
}

// Terminal reports whether no further transitions are accepted from s.
func (s ReportStatus) Terminal() bool {
	return s == StatusCompleted || s == StatusRejected
}

// Report represents a citizen-submitted facility-damage report.
type Report struct {
	ReportID        string       `json:"report_id" gorm:"primaryKey;column:report_id;size:36"`
	Title           string       `json:"title" gorm:"size:255;not null"`
	Location        string       `json:"location" gorm:"size:255;not null"`
	Description     string       `json:"description" gorm:"type:text"`
	Category        string       `json:"category" gorm:"size:100"`
	ReporterID      string       `json:"reporter_id" gorm:"size:36;not null;index"`
	ReporterName    string       `json:"reporter_name" gorm:"size:255;not null"`
	ReporterContact string       `json:"reporter_contact" gorm:"size:255"`
	PhotoURL        string       `json:"photo_url" gorm:"size:512"`
	Status          ReportStatus `json:"status" gorm:"size:20;not null;index"`
	RejectReason    string       `json:"reject_reason,omitempty" gorm:"size:255"`
	CreatedAt       time.Time    `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt       time.Time    `json:"updated_at" gorm:"autoUpdateTime"`
}
