package models

import "time"

// OfficerStatus is the account status of a field officer.
type OfficerStatus string

const (
	OfficerActive   OfficerStatus = "active"
	OfficerInactive OfficerStatus = "inactive"
)

// Officer represents a field worker eligible for dispatch to reports.
type Officer struct {
	OfficerID     string        `json:"officer_id" gorm:"primaryKey;column:officer_id;size:36"`
	Name          string        `json:"name" gorm:"size:255;not null"`
	Address       string        `json:"address" gorm:"size:255"`
	Phone         string        `json:"phone" gorm:"size:32"`
	AccountStatus OfficerStatus `json:"account_status" gorm:"size:20;not null"`
	CreatedAt     time.Time     `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt     time.Time     `json:"updated_at" gorm:"autoUpdateTime"`
}
