package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate applies the schema. Every statement is safe to re-run.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// ALTER TABLE ADD COLUMN has no IF NOT EXISTS form.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS app_flags (
		key        TEXT PRIMARY KEY,
		value      TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS report_runs (
		id           TEXT PRIMARY KEY,
		request_id   TEXT NOT NULL,
		requested_at TEXT NOT NULL,
		module_ids   TEXT NOT NULL,
		outcome      TEXT NOT NULL CHECK(outcome IN ('success','failure')),
		message      TEXT NOT NULL DEFAULT '',
		tier_count   INTEGER NOT NULL DEFAULT 0
	)`,
	`CREATE INDEX IF NOT EXISTS idx_report_runs_requested ON report_runs(requested_at)`,
	// latency was not recorded by the first schema
	`ALTER TABLE report_runs ADD COLUMN latency_ms INTEGER NOT NULL DEFAULT 0`,
}
