package services

import (
	"context"
	"testing"

	"github.com/Iwakk225/SIP-FAS-sub000/internal/apperr"
	"github.com/Iwakk225/SIP-FAS-sub000/internal/models"
)

// TestCreateOfficer_StartsActive checks the directory entry point.
func TestCreateOfficer_StartsActive(t *testing.T) {
	env := setupTestEnv(t)

	officer := env.seedOfficer(t, "Pak Slamet")
	if officer.AccountStatus != models.OfficerActive {
		t.Errorf("expected new officer to be active, got: %s", officer.AccountStatus)
	}

	if _, err := env.officers.CreateOfficer(context.Background(), &models.OfficerRequest{Name: "  "}); !apperr.Is(err, apperr.CodeValidation) {
		t.Errorf("expected validation error for blank name, got: %v", err)
	}
}

// TestSetAccountStatus_BlockedByActiveAssignment enforces that an inactive
// officer may hold no active assignment.
func TestSetAccountStatus_BlockedByActiveAssignment(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()
	officer := env.seedOfficer(t, "Pak Slamet")
	report := env.validatedReport(t, "Lakarsantri")

	assignment, err := env.assignments.Assign(ctx, officer.OfficerID, report.ReportID, "")
	if err != nil {
		t.Fatalf("assign failed: %v", err)
	}

	_, err = env.officers.SetAccountStatus(ctx, officer.OfficerID, models.OfficerInactive)
	if !apperr.Is(err, apperr.CodeOfficerUnavailable) {
		t.Errorf("expected officer_unavailable while assigned, got: %v", err)
	}

	if _, err := env.assignments.Release(ctx, assignment.AssignmentID, ""); err != nil {
		t.Fatalf("release failed: %v", err)
	}

	deactivated, err := env.officers.SetAccountStatus(ctx, officer.OfficerID, models.OfficerInactive)
	if err != nil {
		t.Fatalf("deactivation after release failed: %v", err)
	}
	if deactivated.AccountStatus != models.OfficerInactive {
		t.Errorf("expected inactive, got: %s", deactivated.AccountStatus)
	}
}

// TestSetAccountStatus_Validation rejects unknown states and unknown ids.
func TestSetAccountStatus_Validation(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()

	if _, err := env.officers.SetAccountStatus(ctx, "ghost", models.OfficerInactive); !apperr.Is(err, apperr.CodeNotFound) {
		t.Errorf("expected not_found, got: %v", err)
	}

	officer := env.seedOfficer(t, "Pak Slamet")
	if _, err := env.officers.SetAccountStatus(ctx, officer.OfficerID, "suspended"); !apperr.Is(err, apperr.CodeValidation) {
		t.Errorf("expected validation error, got: %v", err)
	}
}
