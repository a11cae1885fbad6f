package services

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Iwakk225/SIP-FAS-sub000/internal/apperr"
	"github.com/Iwakk225/SIP-FAS-sub000/internal/logger"
	"github.com/Iwakk225/SIP-FAS-sub000/internal/metrics"
	"github.com/Iwakk225/SIP-FAS-sub000/internal/models"
)

// AssignmentService owns the officer-report relation and its two
// exclusivity invariants: at most one active assignment per officer, and at
// most one active assignment per report. All writes to assignment rows and
// to the in_progress side of the report lifecycle go through here.
type AssignmentService interface {
	// Assign dispatches an active officer to a validated report. The
	// precondition checks and the insert are atomic with respect to
	// concurrent Assign calls: of two racing dispatches for the same
	// officer or report, exactly one succeeds.
	Assign(ctx context.Context, officerID, reportID, note string) (*models.Assignment, error)
	// Advance moves the task status one step forward
	// (dispatched -> accepted -> in_progress).
	Advance(ctx context.Context, assignmentID string, to models.TaskStatus) (*models.Assignment, error)
	// Complete finishes an in-progress assignment and completes the report.
	Complete(ctx context.Context, assignmentID string) (*models.Assignment, error)
	// Release frees the officer without completing; the report re-enters
	// the dispatch pool as validated.
	Release(ctx context.Context, assignmentID, note string) (*models.Assignment, error)
	ActiveForOfficer(ctx context.Context, officerID string) (*models.Assignment, error)
	ActiveForReport(ctx context.Context, reportID string) (*models.Assignment, error)
}

// assignmentService is the concrete implementation of AssignmentService.
type assignmentService struct {
	db     *gorm.DB
	events *StatusDispatcher
	log    logger.Logger

	// mu serializes the check-then-create sequence in Assign within this
	// process; row locks cover concurrent instances on postgres.
	mu sync.Mutex
}

// NewAssignmentService injects the *gorm.DB dependency and the event
// dispatcher and returns an AssignmentService instance ready for use.
func NewAssignmentService(db *gorm.DB, events *StatusDispatcher, log logger.Logger) AssignmentService {
	return &assignmentService{db: db, events: events, log: log}
}

func (s *assignmentService) Assign(ctx context.Context, officerID, reportID, note string) (*models.Assignment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return nil, tx.Error
	}

	var officer models.Officer
	err := lockForUpdate(tx).First(&officer, "officer_id = ?", officerID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		tx.Rollback()
		return nil, apperr.New(apperr.CodeNotFound, "officer %s not found", officerID)
	}
	if err != nil {
		tx.Rollback()
		return nil, err
	}
	if officer.AccountStatus != models.OfficerActive {
		tx.Rollback()
		metrics.AssignConflictsTotal.WithLabelValues("officer_inactive").Inc()
		return nil, apperr.New(apperr.CodeOfficerUnavailable,
			"officer %s account is inactive", officerID)
	}

	var busy models.Assignment
	err = tx.Where("officer_id = ? AND active = ?", officerID, true).First(&busy).Error
	if err == nil {
		tx.Rollback()
		metrics.AssignConflictsTotal.WithLabelValues("officer_busy").Inc()
		return nil, apperr.New(apperr.CodeOfficerUnavailable,
			"officer %s already has active assignment %s", officerID, busy.AssignmentID)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		tx.Rollback()
		return nil, err
	}

	var report models.Report
	err = lockForUpdate(tx).First(&report, "report_id = ?", reportID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		tx.Rollback()
		return nil, apperr.New(apperr.CodeNotFound, "report %s not found", reportID)
	}
	if err != nil {
		tx.Rollback()
		return nil, err
	}
	if report.Status != models.StatusValidated {
		tx.Rollback()
		metrics.AssignConflictsTotal.WithLabelValues("report_status").Inc()
		return nil, apperr.New(apperr.CodeReportNotAssignable,
			"report %s is %s, only validated reports can be dispatched", reportID, report.Status)
	}

	var taken models.Assignment
	err = tx.Where("report_id = ? AND active = ?", reportID, true).First(&taken).Error
	if err == nil {
		tx.Rollback()
		metrics.AssignConflictsTotal.WithLabelValues("report_taken").Inc()
		return nil, apperr.New(apperr.CodeReportNotAssignable,
			"report %s already has active assignment %s", reportID, taken.AssignmentID)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		tx.Rollback()
		return nil, err
	}

	assignment := &models.Assignment{
		AssignmentID: uuid.NewString(),
		OfficerID:    officerID,
		ReportID:     reportID,
		TaskStatus:   models.TaskDispatched,
		Active:       true,
		DispatchedAt: time.Now(),
		Notes:        note,
	}
	if err := tx.Create(assignment).Error; err != nil {
		tx.Rollback()
		return nil, err
	}

	if err := transitionReport(tx, &report, models.StatusInProgress, models.StatusValidated); err != nil {
		tx.Rollback()
		return nil, err
	}

	if err := commitAndPublish(tx, s.events, reportID, models.StatusValidated, models.StatusInProgress); err != nil {
		return nil, err
	}

	s.log.Info("officer dispatched",
		zap.String("assignment_id", assignment.AssignmentID),
		zap.String("officer_id", officerID),
		zap.String("report_id", reportID))
	return assignment, nil
}

func (s *assignmentService) Advance(ctx context.Context, assignmentID string, to models.TaskStatus) (*models.Assignment, error) {
	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return nil, tx.Error
	}

	assignment, err := loadAssignment(tx, assignmentID)
	if err != nil {
		tx.Rollback()
		return nil, err
	}

	if !assignment.Active {
		tx.Rollback()
		return nil, apperr.New(apperr.CodeInvalidTaskTransition,
			"assignment %s is no longer active", assignmentID)
	}
	if next, ok := nextTaskStatus[assignment.TaskStatus]; !ok || next != to {
		tx.Rollback()
		return nil, apperr.New(apperr.CodeInvalidTaskTransition,
			"assignment %s is %s, cannot advance to %s", assignmentID, assignment.TaskStatus, to)
	}

	if err := tx.Model(assignment).Update("task_status", to).Error; err != nil {
		tx.Rollback()
		return nil, err
	}
	assignment.TaskStatus = to

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}
	return assignment, nil
}

func (s *assignmentService) Complete(ctx context.Context, assignmentID string) (*models.Assignment, error) {
	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return nil, tx.Error
	}

	assignment, err := loadAssignment(tx, assignmentID)
	if err != nil {
		tx.Rollback()
		return nil, err
	}
	if !assignment.Active || assignment.TaskStatus != models.TaskInProgress {
		tx.Rollback()
		return nil, apperr.New(apperr.CodeInvalidTaskTransition,
			"assignment %s is %s, only in_progress work can be completed", assignmentID, assignment.TaskStatus)
	}

	now := time.Now()
	updates := map[string]interface{}{
		"active":       false,
		"task_status":  models.TaskCompleted,
		"completed_at": now,
	}
	if err := tx.Model(assignment).Updates(updates).Error; err != nil {
		tx.Rollback()
		return nil, err
	}
	assignment.Active = false
	assignment.TaskStatus = models.TaskCompleted
	assignment.CompletedAt = &now

	var report models.Report
	if err := lockForUpdate(tx).First(&report, "report_id = ?", assignment.ReportID).Error; err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := transitionReport(tx, &report, models.StatusCompleted, models.StatusInProgress); err != nil {
		tx.Rollback()
		return nil, err
	}

	if err := commitAndPublish(tx, s.events, report.ReportID, models.StatusInProgress, models.StatusCompleted); err != nil {
		return nil, err
	}
	return assignment, nil
}

func (s *assignmentService) Release(ctx context.Context, assignmentID, note string) (*models.Assignment, error) {
	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return nil, tx.Error
	}

	assignment, err := loadAssignment(tx, assignmentID)
	if err != nil {
		tx.Rollback()
		return nil, err
	}
	if !assignment.Active || assignment.TaskStatus.Terminal() {
		tx.Rollback()
		return nil, apperr.New(apperr.CodeInvalidTaskTransition,
			"assignment %s is %s, cannot be released", assignmentID, assignment.TaskStatus)
	}

	notes := assignment.Notes
	if note != "" {
		notes = strings.TrimSpace(notes + "\n" + note)
	}
	updates := map[string]interface{}{
		"active":      false,
		"task_status": models.TaskReleased,
		"notes":       notes,
	}
	if err := tx.Model(assignment).Updates(updates).Error; err != nil {
		tx.Rollback()
		return nil, err
	}
	assignment.Active = false
	assignment.TaskStatus = models.TaskReleased
	assignment.Notes = notes

	var report models.Report
	if err := lockForUpdate(tx).First(&report, "report_id = ?", assignment.ReportID).Error; err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := transitionReport(tx, &report, models.StatusValidated, models.StatusInProgress); err != nil {
		tx.Rollback()
		return nil, err
	}

	if err := commitAndPublish(tx, s.events, report.ReportID, models.StatusInProgress, models.StatusValidated); err != nil {
		return nil, err
	}

	s.log.Info("assignment released",
		zap.String("assignment_id", assignmentID),
		zap.String("report_id", report.ReportID))
	return assignment, nil
}

func (s *assignmentService) ActiveForOfficer(ctx context.Context, officerID string) (*models.Assignment, error) {
	return s.findActive(ctx, "officer_id = ? AND active = ?", officerID)
}

func (s *assignmentService) ActiveForReport(ctx context.Context, reportID string) (*models.Assignment, error) {
	return s.findActive(ctx, "report_id = ? AND active = ?", reportID)
}

func (s *assignmentService) findActive(ctx context.Context, cond, id string) (*models.Assignment, error) {
	var assignment models.Assignment
	err := s.db.WithContext(ctx).Where(cond, id, true).First(&assignment).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.New(apperr.CodeNotFound, "no active assignment for %s", id)
	}
	if err != nil {
		return nil, err
	}
	return &assignment, nil
}

func loadAssignment(tx *gorm.DB, id string) (*models.Assignment, error) {
	var assignment models.Assignment
	err := lockForUpdate(tx).First(&assignment, "assignment_id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.New(apperr.CodeNotFound, "assignment %s not found", id)
	}
	if err != nil {
		return nil, err
	}
	return &assignment, nil
}
