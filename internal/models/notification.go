package models

import "time"

// Notification is a status-change message addressed to the user who
// submitted the linked report. Rows are only ever marked read, never deleted.
type Notification struct {
	NotificationID uint      `json:"notification_id" gorm:"primaryKey;autoIncrement;column:notification_id"`
	UserID         string    `json:"user_id" gorm:"size:36;not null;index"`
	ReportID       string    `json:"report_id" gorm:"size:36;not null;index"`
	Message        string    `json:"message" gorm:"size:512;not null"`
	Read           bool      `json:"read" gorm:"not null;default:false"`
	CreatedAt      time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt      time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}
