package services

import (
	"context"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/Iwakk225/SIP-FAS-sub000/internal/logger"
	"github.com/Iwakk225/SIP-FAS-sub000/internal/models"
)

// setupTestDB opens an in-memory SQLite and migrates every engine model.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("could not open test DB: %v", err)
	}
	// A second pooled connection would get its own empty :memory: database.
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("could not access test DB pool: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	err = db.AutoMigrate(
		&models.Report{},
		&models.Officer{},
		&models.Assignment{},
		&models.Notification{},
	)
	if err != nil {
		t.Fatalf("model migration failed: %v", err)
	}
	return db
}

// testEnv wires the engine the way cmd/server does, on a test database.
type testEnv struct {
	db            *gorm.DB
	events        *StatusDispatcher
	reports       ReportService
	assignments   AssignmentService
	notifications NotificationService
	officers      OfficerService
}

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db := setupTestDB(t)
	log := logger.NewNopLogger()

	events := NewStatusDispatcher(log, 64)
	events.Subscribe(NewNotificationDeriver(db, log))
	events.Start()
	t.Cleanup(events.Close)

	return &testEnv{
		db:            db,
		events:        events,
		reports:       NewReportService(db, events, log),
		assignments:   NewAssignmentService(db, events, log),
		notifications: NewNotificationService(db),
		officers:      NewOfficerService(db),
	}
}

// waitEvents blocks until every published status event has been delivered.
func (e *testEnv) waitEvents() {
	e.events.pending.Wait()
}

// submitReport seeds a pending report through the intake path.
func (e *testEnv) submitReport(t *testing.T, location string) *models.Report {
	t.Helper()
	report, err := e.reports.Submit(context.Background(), &models.ReportRequest{
		Title:        "Lampu jalan mati",
		Location:     location,
		Description:  "lampu penerangan jalan umum padam",
		ReporterID:   "user-1",
		ReporterName: "Budi",
	})
	if err != nil {
		t.Fatalf("expected no error submitting report, got: %v", err)
	}
	return report
}

// validatedReport seeds a report already confirmed for dispatch.
func (e *testEnv) validatedReport(t *testing.T, location string) *models.Report {
	t.Helper()
	report := e.submitReport(t, location)
	validated, err := e.reports.Validate(context.Background(), report.ReportID)
	if err != nil {
		t.Fatalf("expected no error validating report, got: %v", err)
	}
	return validated
}

// seedOfficer creates an active officer.
func (e *testEnv) seedOfficer(t *testing.T, name string) *models.Officer {
	t.Helper()
	officer, err := e.officers.CreateOfficer(context.Background(), &models.OfficerRequest{
		Name:  name,
		Phone: "081234567890",
	})
	if err != nil {
		t.Fatalf("expected no error creating officer, got: %v", err)
	}
	return officer
}

// countActiveAssignments counts rows with the active flag set for the
// given column/id pair.
func countActiveAssignments(t *testing.T, db *gorm.DB, column, id string) int64 {
	t.Helper()
	var n int64
	err := db.Model(&models.Assignment{}).
		Where(column+" = ? AND active = ?", id, true).
		Count(&n).Error
	if err != nil {
		t.Fatalf("failed counting active assignments: %v", err)
	}
	return n
}
