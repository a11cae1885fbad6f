package services

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/Iwakk225/SIP-FAS-sub000/internal/apperr"
	"github.com/Iwakk225/SIP-FAS-sub000/internal/logger"
	"github.com/Iwakk225/SIP-FAS-sub000/internal/models"
)

// NotificationService exposes the read surface over notification rows.
type NotificationService interface {
	ListForUser(ctx context.Context, userID string) ([]models.Notification, error)
	MarkRead(ctx context.Context, notificationID uint, userID string) error
}

type notificationService struct {
	db *gorm.DB
}

// NewNotificationService injects the *gorm.DB dependency and returns a
// NotificationService instance ready for use.
func NewNotificationService(db *gorm.DB) NotificationService {
	return &notificationService{db: db}
}

func (s *notificationService) ListForUser(ctx context.Context, userID string) ([]models.Notification, error) {
	var notifications []models.Notification
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&notifications).Error
	if err != nil {
		return nil, err
	}
	return notifications, nil
}

func (s *notificationService) MarkRead(ctx context.Context, notificationID uint, userID string) error {
	res := s.db.WithContext(ctx).
		Model(&models.Notification{}).
		Where("notification_id = ? AND user_id = ?", notificationID, userID).
		Update("read", true)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperr.New(apperr.CodeNotFound, "notification %d not found for user %s", notificationID, userID)
	}
	return nil
}

// NotificationDeriver turns status events into notification rows for the
// report's submitter. One row per event; write failures are retried by the
// dispatcher and never affect the transition that produced the event.
type NotificationDeriver struct {
	db  *gorm.DB
	log logger.Logger
}

// NewNotificationDeriver creates a deriver ready to be subscribed to a
// StatusDispatcher.
func NewNotificationDeriver(db *gorm.DB, log logger.Logger) *NotificationDeriver {
	return &NotificationDeriver{db: db, log: log}
}

// HandleStatusEvent implements StatusHandler.
func (d *NotificationDeriver) HandleStatusEvent(ctx context.Context, ev StatusEvent) error {
	var report models.Report
	err := d.db.WithContext(ctx).First(&report, "report_id = ?", ev.ReportID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		// Nothing to notify about; do not retry.
		return nil
	}
	if err != nil {
		return err
	}

	notification := &models.Notification{
		UserID:   report.ReporterID,
		ReportID: report.ReportID,
		Message:  messageFor(ev.New, report.RejectReason),
		Read:     false,
	}
	return d.db.WithContext(ctx).Create(notification).Error
}

// messageFor maps the new status to the user-facing message text.
func messageFor(status models.ReportStatus, rejectReason string) string {
	switch status {
	case models.StatusValidated:
		return "report validated"
	case models.StatusInProgress:
		return "officer dispatched"
	case models.StatusCompleted:
		return "report completed"
	case models.StatusRejected:
		if rejectReason != "" {
			return fmt.Sprintf("report rejected: %s", rejectReason)
		}
		return "report rejected"
	default:
		return fmt.Sprintf("report status changed to %s", status)
	}
}
