package services

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Iwakk225/SIP-FAS-sub000/internal/apperr"
	"github.com/Iwakk225/SIP-FAS-sub000/internal/logger"
	"github.com/Iwakk225/SIP-FAS-sub000/internal/models"
)

// ReportService defines business operations on citizen reports: intake and
// the validated lifecycle transitions reachable by administrators.
//
// Transitions into and out of in_progress are owned by AssignmentService;
// they are not part of this interface.
type ReportService interface {
	// Submit validates the intake payload and creates a pending report.
	Submit(ctx context.Context, req *models.ReportRequest) (*models.Report, error)
	GetReport(ctx context.Context, id string) (*models.Report, error)
	// ListReports returns reports, optionally filtered by status ("" = all).
	ListReports(ctx context.Context, status models.ReportStatus) ([]models.Report, error)
	// Validate confirms a pending report for dispatch.
	Validate(ctx context.Context, id string) (*models.Report, error)
	// Reject closes a pending or validated report with a reason. Terminal.
	Reject(ctx context.Context, id, reason string) (*models.Report, error)
	// Override sets the status directly, skipping transition checks. It
	// still emits the status event so notifications stay consistent.
	// Callers accept the bypass risk.
	Override(ctx context.Context, id string, status models.ReportStatus) (*models.Report, error)
}

// reportService is the concrete implementation of ReportService.
// It has the GORM instance to persist data in the database.
type reportService struct {
	db     *gorm.DB
	events *StatusDispatcher
	log    logger.Logger
}

// NewReportService injects the *gorm.DB dependency and the event dispatcher
// and returns a ReportService instance ready for use.
func NewReportService(db *gorm.DB, events *StatusDispatcher, log logger.Logger) ReportService {
	return &reportService{db: db, events: events, log: log}
}

func (s *reportService) Submit(ctx context.Context, req *models.ReportRequest) (*models.Report, error) {
	if err := validateSubmission(req); err != nil {
		return nil, err
	}

	report := &models.Report{
		ReportID:        uuid.NewString(),
		Title:           strings.TrimSpace(req.Title),
		Location:        strings.TrimSpace(req.Location),
		Description:     req.Description,
		Category:        req.Category,
		ReporterID:      req.ReporterID,
		ReporterName:    strings.TrimSpace(req.ReporterName),
		ReporterContact: req.ReporterContact,
		PhotoURL:        req.PhotoURL,
		Status:          models.StatusPending,
	}

	if err := s.db.WithContext(ctx).Create(report).Error; err != nil {
		return nil, err
	}
	return report, nil
}

func (s *reportService) GetReport(ctx context.Context, id string) (*models.Report, error) {
	var report models.Report
	err := s.db.WithContext(ctx).First(&report, "report_id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.New(apperr.CodeNotFound, "report %s not found", id)
	}
	if err != nil {
		return nil, err
	}
	return &report, nil
}

func (s *reportService) ListReports(ctx context.Context, status models.ReportStatus) ([]models.Report, error) {
	var reports []models.Report
	q := s.db.WithContext(ctx)
	if status != "" {
		q = q.Where("status = ?", status)
	}
	if err := q.Order("created_at DESC").Find(&reports).Error; err != nil {
		return nil, err
	}
	return reports, nil
}

func (s *reportService) Validate(ctx context.Context, id string) (*models.Report, error) {
	return s.doTransition(ctx, id, models.StatusValidated, nil, models.StatusPending)
}

func (s *reportService) Reject(ctx context.Context, id, reason string) (*models.Report, error) {
	updates := map[string]interface{}{"reject_reason": reason}
	return s.doTransition(ctx, id, models.StatusRejected, updates,
		models.StatusPending, models.StatusValidated)
}

func (s *reportService) Override(ctx context.Context, id string, status models.ReportStatus) (*models.Report, error) {
	if !status.Valid() {
		return nil, apperr.New(apperr.CodeValidation, "unknown status %q", status)
	}

	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return nil, tx.Error
	}

	var report models.Report
	err := lockForUpdate(tx).First(&report, "report_id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		tx.Rollback()
		return nil, apperr.New(apperr.CodeNotFound, "report %s not found", id)
	}
	if err != nil {
		tx.Rollback()
		return nil, err
	}

	previous := report.Status
	if err := tx.Model(&report).Update("status", status).Error; err != nil {
		tx.Rollback()
		return nil, err
	}
	report.Status = status

	if err := commitAndPublish(tx, s.events, report.ReportID, previous, status); err != nil {
		return nil, err
	}
	return &report, nil
}

// doTransition runs one validated transition inside a transaction: load and
// lock the row, check the source state, write, then commit and emit the
// event as one sequenced step.
func (s *reportService) doTransition(ctx context.Context, id string, to models.ReportStatus, updates map[string]interface{}, from ...models.ReportStatus) (*models.Report, error) {
	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return nil, tx.Error
	}

	var report models.Report
	err := lockForUpdate(tx).First(&report, "report_id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		tx.Rollback()
		return nil, apperr.New(apperr.CodeNotFound, "report %s not found", id)
	}
	if err != nil {
		tx.Rollback()
		return nil, err
	}

	previous := report.Status
	if err := transitionReport(tx, &report, to, from...); err != nil {
		tx.Rollback()
		return nil, err
	}

	if len(updates) > 0 {
		if err := tx.Model(&report).Updates(updates).Error; err != nil {
			tx.Rollback()
			return nil, err
		}
		if reason, ok := updates["reject_reason"].(string); ok {
			report.RejectReason = reason
		}
	}

	if err := commitAndPublish(tx, s.events, report.ReportID, previous, to); err != nil {
		return nil, err
	}
	return &report, nil
}

func validateSubmission(req *models.ReportRequest) error {
	if req == nil {
		return apperr.New(apperr.CodeValidation, "empty request body")
	}
	if strings.TrimSpace(req.Location) == "" {
		return apperr.New(apperr.CodeValidation, "location must not be empty")
	}
	if strings.TrimSpace(req.Title) == "" {
		return apperr.New(apperr.CodeValidation, "title must not be empty")
	}
	if strings.TrimSpace(req.ReporterID) == "" {
		return apperr.New(apperr.CodeValidation, "reporter_id must not be empty")
	}
	if strings.TrimSpace(req.ReporterName) == "" {
		return apperr.New(apperr.CodeValidation, "reporter_name must not be empty")
	}
	return nil
}
