package services

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Iwakk225/SIP-FAS-sub000/internal/apperr"
	"github.com/Iwakk225/SIP-FAS-sub000/internal/models"
)

// lockForUpdate applies a row-level lock on stores that support it. The
// sqlite used in tests serializes writes on its own.
func lockForUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "postgres" {
		return tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return tx
}

// transitionReport moves a report to a new status after checking it is in
// one of the allowed source states. The caller owns the transaction and is
// responsible for publishing the resulting event after commit.
func transitionReport(tx *gorm.DB, report *models.Report, to models.ReportStatus, from ...models.ReportStatus) error {
	allowed := false
	for _, f := range from {
		if report.Status == f {
			allowed = true
			break
		}
	}
	if !allowed {
		return apperr.New(apperr.CodeInvalidTransition,
			"report %s is %s, cannot transition to %s", report.ReportID, report.Status, to)
	}

	if err := tx.Model(report).Update("status", to).Error; err != nil {
		return err
	}
	report.Status = to
	return nil
}

// nextTaskStatus fixes the monotonic assignment progression.
var nextTaskStatus = map[models.TaskStatus]models.TaskStatus{
	models.TaskDispatched: models.TaskAccepted,
	models.TaskAccepted:   models.TaskInProgress,
}
