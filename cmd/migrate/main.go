package main

import (
	"database/sql"
	"fmt"
	"log"

	_ "github.com/lib/pq"

	"github.com/Iwakk225/SIP-FAS-sub000/internal/config"
)

// statements carries the postgres schema. The partial unique indexes are
// the store-level backstop for the exclusivity invariants: at most one
// active assignment per officer and per report.
var statements = []string{
	`CREATE TABLE IF NOT EXISTS reports (
		report_id        VARCHAR(36) PRIMARY KEY,
		title            VARCHAR(255) NOT NULL,
		location         VARCHAR(255) NOT NULL,
		description      TEXT,
		category         VARCHAR(100),
		reporter_id      VARCHAR(36) NOT NULL,
		reporter_name    VARCHAR(255) NOT NULL,
		reporter_contact VARCHAR(255),
		photo_url        VARCHAR(512),
		status           VARCHAR(20) NOT NULL,
		reject_reason    VARCHAR(255),
		created_at       TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at       TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_reports_status ON reports (status)`,
	`CREATE INDEX IF NOT EXISTS idx_reports_reporter ON reports (reporter_id)`,

	`CREATE TABLE IF NOT EXISTS officers (
		officer_id     VARCHAR(36) PRIMARY KEY,
		name           VARCHAR(255) NOT NULL,
		address        VARCHAR(255),
		phone          VARCHAR(32),
		account_status VARCHAR(20) NOT NULL,
		created_at     TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at     TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,

	`CREATE TABLE IF NOT EXISTS assignments (
		assignment_id VARCHAR(36) PRIMARY KEY,
		officer_id    VARCHAR(36) NOT NULL REFERENCES officers (officer_id),
		report_id     VARCHAR(36) NOT NULL REFERENCES reports (report_id),
		task_status   VARCHAR(20) NOT NULL,
		active        BOOLEAN NOT NULL,
		dispatched_at TIMESTAMPTZ NOT NULL,
		completed_at  TIMESTAMPTZ,
		notes         VARCHAR(512),
		created_at    TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at    TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS uniq_active_assignment_per_officer
		ON assignments (officer_id) WHERE active`,
	`CREATE UNIQUE INDEX IF NOT EXISTS uniq_active_assignment_per_report
		ON assignments (report_id) WHERE active`,

	`CREATE TABLE IF NOT EXISTS notifications (
		notification_id SERIAL PRIMARY KEY,
		user_id         VARCHAR(36) NOT NULL,
		report_id       VARCHAR(36) NOT NULL,
		message         VARCHAR(512) NOT NULL,
		read            BOOLEAN NOT NULL DEFAULT FALSE,
		created_at      TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at      TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_notifications_user ON notifications (user_id)`,
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("failed loading config:", err)
	}

	connStr := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBSSLMode,
	)
	db, err := sql.Open("postgres", connStr)
	if err != nil {
		log.Fatal("failed connecting to database:", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("failed closing connection: %v", err)
		}
	}()

	for i, stmt := range statements {
		if _, err := db.Exec(stmt); err != nil {
			log.Fatalf("statement %d failed: %v", i, err)
		}
	}

	log.Println("schema up to date")
}
