package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/Iwakk225/SIP-FAS-sub000/internal/apperr"
	"github.com/Iwakk225/SIP-FAS-sub000/internal/models"
)

// TestAssign_DispatchesOfficer covers the happy path: validated report,
// active officer, assignment created, report in progress, submitter
// notified.
func TestAssign_DispatchesOfficer(t *testing.T) {
	env := setupTestEnv(t)
	officer := env.seedOfficer(t, "Pak Slamet")
	report := env.validatedReport(t, "Jalan Kertajaya")

	assignment, err := env.assignments.Assign(context.Background(), officer.OfficerID, report.ReportID, "bring ladder")
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if !assignment.Active {
		t.Error("new assignment must be active")
	}
	if assignment.TaskStatus != models.TaskDispatched {
		t.Errorf("expected task status dispatched, got: %s", assignment.TaskStatus)
	}
	if assignment.DispatchedAt.IsZero() {
		t.Error("dispatched_at must be set")
	}

	updated, err := env.reports.GetReport(context.Background(), report.ReportID)
	if err != nil {
		t.Fatalf("failed reloading report: %v", err)
	}
	if updated.Status != models.StatusInProgress {
		t.Errorf("expected report in_progress, got: %s", updated.Status)
	}

	env.waitEvents()
	notifications, err := env.notifications.ListForUser(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("expected no error listing notifications, got: %v", err)
	}
	// One for validate, one for dispatch; newest first.
	if len(notifications) != 2 {
		t.Fatalf("expected 2 notifications, got: %d", len(notifications))
	}
	found := false
	for _, n := range notifications {
		if n.Message == "officer dispatched" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected an 'officer dispatched' notification, got: %+v", notifications)
	}
}

// TestAssign_FailureModes checks each distinct precondition error.
func TestAssign_FailureModes(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()

	t.Run("inactive officer", func(t *testing.T) {
		officer := env.seedOfficer(t, "Nonaktif")
		if _, err := env.officers.SetAccountStatus(ctx, officer.OfficerID, models.OfficerInactive); err != nil {
			t.Fatalf("failed deactivating officer: %v", err)
		}
		report := env.validatedReport(t, "Gubeng")

		_, err := env.assignments.Assign(ctx, officer.OfficerID, report.ReportID, "")
		if !apperr.Is(err, apperr.CodeOfficerUnavailable) {
			t.Errorf("expected officer_unavailable, got: %v", err)
		}
	})

	t.Run("report not validated", func(t *testing.T) {
		officer := env.seedOfficer(t, "Siaga")
		report := env.submitReport(t, "Tambaksari")

		_, err := env.assignments.Assign(ctx, officer.OfficerID, report.ReportID, "")
		if !apperr.Is(err, apperr.CodeReportNotAssignable) {
			t.Errorf("expected report_not_assignable, got: %v", err)
		}
	})

	t.Run("rejected report not assignable", func(t *testing.T) {
		officer := env.seedOfficer(t, "Siaga2")
		report := env.submitReport(t, "Krembangan")
		if _, err := env.reports.Reject(ctx, report.ReportID, "duplicate of #12"); err != nil {
			t.Fatalf("failed rejecting report: %v", err)
		}

		_, err := env.assignments.Assign(ctx, officer.OfficerID, report.ReportID, "")
		if !apperr.Is(err, apperr.CodeReportNotAssignable) {
			t.Errorf("expected report_not_assignable, got: %v", err)
		}
	})

	t.Run("unknown ids", func(t *testing.T) {
		report := env.validatedReport(t, "Wiyung")
		if _, err := env.assignments.Assign(ctx, "ghost", report.ReportID, ""); !apperr.Is(err, apperr.CodeNotFound) {
			t.Errorf("expected not_found for officer, got: %v", err)
		}
		officer := env.seedOfficer(t, "Ada")
		if _, err := env.assignments.Assign(ctx, officer.OfficerID, "ghost", ""); !apperr.Is(err, apperr.CodeNotFound) {
			t.Errorf("expected not_found for report, got: %v", err)
		}
	})
}

// TestAssign_OfficerExclusivity verifies that a busy officer cannot be
// dispatched again and that a retry of the same pair does not duplicate the
// active assignment.
func TestAssign_OfficerExclusivity(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()
	officer := env.seedOfficer(t, "Pak Slamet")
	first := env.validatedReport(t, "Kenjeran")
	second := env.validatedReport(t, "Rungkut")

	if _, err := env.assignments.Assign(ctx, officer.OfficerID, first.ReportID, ""); err != nil {
		t.Fatalf("first assign failed: %v", err)
	}

	_, err := env.assignments.Assign(ctx, officer.OfficerID, second.ReportID, "")
	if !apperr.Is(err, apperr.CodeOfficerUnavailable) {
		t.Errorf("expected officer_unavailable, got: %v", err)
	}

	// Retry of the original pair: the report is no longer validated, so the
	// caller sees a distinct rejection instead of a duplicate row.
	_, err = env.assignments.Assign(ctx, officer.OfficerID, first.ReportID, "")
	if !apperr.Is(err, apperr.CodeOfficerUnavailable) && !apperr.Is(err, apperr.CodeReportNotAssignable) {
		t.Errorf("expected a conflict error on retry, got: %v", err)
	}

	if n := countActiveAssignments(t, env.db, "officer_id", officer.OfficerID); n != 1 {
		t.Errorf("invariant violated: %d active assignments for officer", n)
	}
}

// TestAssign_ReportExclusivity verifies one active officer per report.
func TestAssign_ReportExclusivity(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()
	report := env.validatedReport(t, "Semampir")
	first := env.seedOfficer(t, "Pertama")
	second := env.seedOfficer(t, "Kedua")

	if _, err := env.assignments.Assign(ctx, first.OfficerID, report.ReportID, ""); err != nil {
		t.Fatalf("first assign failed: %v", err)
	}

	_, err := env.assignments.Assign(ctx, second.OfficerID, report.ReportID, "")
	if !apperr.Is(err, apperr.CodeReportNotAssignable) {
		t.Errorf("expected report_not_assignable, got: %v", err)
	}

	if n := countActiveAssignments(t, env.db, "report_id", report.ReportID); n != 1 {
		t.Errorf("invariant violated: %d active assignments for report", n)
	}
}

// TestAssign_ConcurrentSameOfficer races two dispatches of one officer to
// two different validated reports. Exactly one may win.
func TestAssign_ConcurrentSameOfficer(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()
	officer := env.seedOfficer(t, "Pak Slamet")
	reportA := env.validatedReport(t, "Bulak")
	reportB := env.validatedReport(t, "Mulyorejo")

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i, reportID := range []string{reportA.ReportID, reportB.ReportID} {
		wg.Add(1)
		go func(i int, reportID string) {
			defer wg.Done()
			_, errs[i] = env.assignments.Assign(ctx, officer.OfficerID, reportID, "")
		}(i, reportID)
	}
	wg.Wait()

	var ok, unavailable int
	for _, err := range errs {
		switch {
		case err == nil:
			ok++
		case apperr.Is(err, apperr.CodeOfficerUnavailable):
			unavailable++
		default:
			t.Errorf("unexpected error: %v", err)
		}
	}
	if ok != 1 || unavailable != 1 {
		t.Errorf("expected exactly one winner, got %d successes and %d conflicts", ok, unavailable)
	}
	if n := countActiveAssignments(t, env.db, "officer_id", officer.OfficerID); n != 1 {
		t.Errorf("invariant violated: %d active assignments for officer", n)
	}
}

// TestAssign_ConcurrentSameReport races two officers to one report.
func TestAssign_ConcurrentSameReport(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()
	report := env.validatedReport(t, "Jambangan")
	first := env.seedOfficer(t, "Pertama")
	second := env.seedOfficer(t, "Kedua")

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i, officerID := range []string{first.OfficerID, second.OfficerID} {
		wg.Add(1)
		go func(i int, officerID string) {
			defer wg.Done()
			_, errs[i] = env.assignments.Assign(ctx, officerID, report.ReportID, "")
		}(i, officerID)
	}
	wg.Wait()

	var ok, conflicts int
	for _, err := range errs {
		switch {
		case err == nil:
			ok++
		case apperr.Is(err, apperr.CodeReportNotAssignable):
			conflicts++
		default:
			t.Errorf("unexpected error: %v", err)
		}
	}
	if ok != 1 || conflicts != 1 {
		t.Errorf("expected exactly one winner, got %d successes and %d conflicts", ok, conflicts)
	}
	if n := countActiveAssignments(t, env.db, "report_id", report.ReportID); n != 1 {
		t.Errorf("invariant violated: %d active assignments for report", n)
	}
}

// TestAssign_NotificationsFollowCommitOrder races a Validate against an
// Assign that keeps retrying until the report is dispatchable. The assign
// can only commit after the validate committed, so the submitter must see
// "report validated" before "officer dispatched" in every round.
func TestAssign_NotificationsFollowCommitOrder(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()

	for round := 0; round < 5; round++ {
		officer := env.seedOfficer(t, "Petugas")
		report := env.submitReport(t, "Jalan Kertajaya")

		var wg sync.WaitGroup
		wg.Add(2)
		go func() {
			defer wg.Done()
			if _, err := env.reports.Validate(ctx, report.ReportID); err != nil {
				t.Errorf("validate failed: %v", err)
			}
		}()
		go func() {
			defer wg.Done()
			for i := 0; i < 1000; i++ {
				_, err := env.assignments.Assign(ctx, officer.OfficerID, report.ReportID, "")
				if err == nil {
					return
				}
				if !apperr.Is(err, apperr.CodeReportNotAssignable) {
					t.Errorf("unexpected assign error: %v", err)
					return
				}
				time.Sleep(time.Millisecond)
			}
			t.Error("assign never succeeded")
		}()
		wg.Wait()
		env.waitEvents()

		var notifications []models.Notification
		err := env.db.Where("report_id = ?", report.ReportID).
			Order("notification_id ASC").Find(&notifications).Error
		if err != nil {
			t.Fatalf("failed listing notifications: %v", err)
		}
		if len(notifications) != 2 {
			t.Fatalf("round %d: expected 2 notifications, got %d", round, len(notifications))
		}
		if notifications[0].Message != "report validated" || notifications[1].Message != "officer dispatched" {
			t.Errorf("round %d: notifications out of order: %q then %q",
				round, notifications[0].Message, notifications[1].Message)
		}
	}
}

// TestAdvance_MonotonicProgression walks dispatched -> accepted ->
// in_progress and rejects every out-of-order move.
func TestAdvance_MonotonicProgression(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()
	officer := env.seedOfficer(t, "Pak Slamet")
	report := env.validatedReport(t, "Gayungan")
	assignment, err := env.assignments.Assign(ctx, officer.OfficerID, report.ReportID, "")
	if err != nil {
		t.Fatalf("assign failed: %v", err)
	}

	// Skipping a step is rejected.
	if _, err := env.assignments.Advance(ctx, assignment.AssignmentID, models.TaskInProgress); !apperr.Is(err, apperr.CodeInvalidTaskTransition) {
		t.Errorf("expected invalid_task_transition for skipped step, got: %v", err)
	}

	accepted, err := env.assignments.Advance(ctx, assignment.AssignmentID, models.TaskAccepted)
	if err != nil {
		t.Fatalf("advance to accepted failed: %v", err)
	}
	if accepted.TaskStatus != models.TaskAccepted {
		t.Errorf("expected accepted, got: %s", accepted.TaskStatus)
	}

	// Backward move is rejected.
	if _, err := env.assignments.Advance(ctx, assignment.AssignmentID, models.TaskDispatched); !apperr.Is(err, apperr.CodeInvalidTaskTransition) {
		t.Errorf("expected invalid_task_transition for backward move, got: %v", err)
	}

	inProgress, err := env.assignments.Advance(ctx, assignment.AssignmentID, models.TaskInProgress)
	if err != nil {
		t.Fatalf("advance to in_progress failed: %v", err)
	}
	if inProgress.TaskStatus != models.TaskInProgress {
		t.Errorf("expected in_progress, got: %s", inProgress.TaskStatus)
	}

	// Advancing past the ladder is rejected.
	if _, err := env.assignments.Advance(ctx, assignment.AssignmentID, models.TaskCompleted); !apperr.Is(err, apperr.CodeInvalidTaskTransition) {
		t.Errorf("expected invalid_task_transition past in_progress, got: %v", err)
	}
}

// TestComplete_FinishesReportAndKeepsHistory verifies the paired completion
// of assignment and report, and that the history row survives.
func TestComplete_FinishesReportAndKeepsHistory(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()
	officer := env.seedOfficer(t, "Pak Slamet")
	report := env.validatedReport(t, "Dukuh Pakis")
	assignment, err := env.assignments.Assign(ctx, officer.OfficerID, report.ReportID, "")
	if err != nil {
		t.Fatalf("assign failed: %v", err)
	}

	// Completion requires in_progress work.
	if _, err := env.assignments.Complete(ctx, assignment.AssignmentID); !apperr.Is(err, apperr.CodeInvalidTaskTransition) {
		t.Errorf("expected invalid_task_transition before in_progress, got: %v", err)
	}

	if _, err := env.assignments.Advance(ctx, assignment.AssignmentID, models.TaskAccepted); err != nil {
		t.Fatalf("advance failed: %v", err)
	}
	if _, err := env.assignments.Advance(ctx, assignment.AssignmentID, models.TaskInProgress); err != nil {
		t.Fatalf("advance failed: %v", err)
	}

	completed, err := env.assignments.Complete(ctx, assignment.AssignmentID)
	if err != nil {
		t.Fatalf("complete failed: %v", err)
	}
	if completed.Active {
		t.Error("completed assignment must be inactive")
	}
	if completed.CompletedAt == nil {
		t.Error("completed_at must be set")
	}

	updated, err := env.reports.GetReport(ctx, report.ReportID)
	if err != nil {
		t.Fatalf("failed reloading report: %v", err)
	}
	if updated.Status != models.StatusCompleted {
		t.Errorf("expected report completed, got: %s", updated.Status)
	}

	var history []models.Assignment
	if err := env.db.Where("report_id = ?", report.ReportID).Find(&history).Error; err != nil {
		t.Fatalf("failed loading assignment history: %v", err)
	}
	if len(history) != 1 || history[0].TaskStatus != models.TaskCompleted {
		t.Errorf("history row missing or wrong: %+v", history)
	}

	// Officer is free again.
	if _, err := env.assignments.ActiveForOfficer(ctx, officer.OfficerID); !apperr.Is(err, apperr.CodeNotFound) {
		t.Errorf("expected not_found after completion, got: %v", err)
	}
}

// TestRelease_FreesOfficerAndReport verifies release semantics and the
// immediate re-dispatch to a different officer.
func TestRelease_FreesOfficerAndReport(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()
	officer := env.seedOfficer(t, "Pak Slamet")
	replacement := env.seedOfficer(t, "Bu Sri")
	report := env.validatedReport(t, "Asemrowo")

	assignment, err := env.assignments.Assign(ctx, officer.OfficerID, report.ReportID, "")
	if err != nil {
		t.Fatalf("assign failed: %v", err)
	}

	released, err := env.assignments.Release(ctx, assignment.AssignmentID, "officer reassigned")
	if err != nil {
		t.Fatalf("release failed: %v", err)
	}
	if released.Active || released.TaskStatus != models.TaskReleased {
		t.Errorf("release did not settle the assignment: %+v", released)
	}

	updated, err := env.reports.GetReport(ctx, report.ReportID)
	if err != nil {
		t.Fatalf("failed reloading report: %v", err)
	}
	if updated.Status != models.StatusValidated {
		t.Errorf("expected report back to validated, got: %s", updated.Status)
	}

	// Released assignments are history, not re-releasable.
	if _, err := env.assignments.Release(ctx, assignment.AssignmentID, ""); !apperr.Is(err, apperr.CodeInvalidTaskTransition) {
		t.Errorf("expected invalid_task_transition, got: %v", err)
	}

	// The report immediately re-enters the dispatch pool.
	next, err := env.assignments.Assign(ctx, replacement.OfficerID, report.ReportID, "")
	if err != nil {
		t.Fatalf("re-dispatch failed: %v", err)
	}
	if next.OfficerID != replacement.OfficerID {
		t.Errorf("unexpected officer on re-dispatch: %s", next.OfficerID)
	}
	final, err := env.reports.GetReport(ctx, report.ReportID)
	if err != nil {
		t.Fatalf("failed reloading report: %v", err)
	}
	if final.Status != models.StatusInProgress {
		t.Errorf("expected report in_progress after re-dispatch, got: %s", final.Status)
	}
}

// TestActiveLookups verifies the helpers reflect live assignment state.
func TestActiveLookups(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()
	officer := env.seedOfficer(t, "Pak Slamet")
	report := env.validatedReport(t, "Simokerto")

	if _, err := env.assignments.ActiveForOfficer(ctx, officer.OfficerID); !apperr.Is(err, apperr.CodeNotFound) {
		t.Errorf("expected not_found before assign, got: %v", err)
	}

	created, err := env.assignments.Assign(ctx, officer.OfficerID, report.ReportID, "")
	if err != nil {
		t.Fatalf("assign failed: %v", err)
	}

	byOfficer, err := env.assignments.ActiveForOfficer(ctx, officer.OfficerID)
	if err != nil {
		t.Fatalf("lookup by officer failed: %v", err)
	}
	byReport, err := env.assignments.ActiveForReport(ctx, report.ReportID)
	if err != nil {
		t.Fatalf("lookup by report failed: %v", err)
	}
	if byOfficer.AssignmentID != created.AssignmentID || byReport.AssignmentID != created.AssignmentID {
		t.Error("lookups must return the live assignment")
	}
}
