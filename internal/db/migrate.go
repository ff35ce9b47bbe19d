package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations. Statements are idempotent and re-run on every open.
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
	`CREATE TABLE IF NOT EXISTS preferences (
		key        TEXT PRIMARY KEY,
		value      TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS discovery_sessions (
		id                 TEXT PRIMARY KEY,
		conversation_id    TEXT NOT NULL,
		name               TEXT NOT NULL DEFAULT '',
		email              TEXT NOT NULL DEFAULT '',
		complexity         TEXT NOT NULL
		                   CHECK(complexity IN ('simple','standard','complex')),
		lead_score         INTEGER NOT NULL DEFAULT 0,
		estimated_effort   TEXT NOT NULL DEFAULT '',
		business_impact    TEXT NOT NULL DEFAULT '',
		submitted          INTEGER NOT NULL DEFAULT 0,
		data_json          TEXT NOT NULL,
		started_at         TEXT NOT NULL,
		completed_at       TEXT NOT NULL,
		duration_sec       INTEGER NOT NULL DEFAULT 0
	)`,

	`ALTER TABLE discovery_sessions ADD COLUMN submission_message TEXT NOT NULL DEFAULT ''`,

	`CREATE INDEX IF NOT EXISTS idx_discovery_completed ON discovery_sessions(completed_at)`,
	`CREATE INDEX IF NOT EXISTS idx_discovery_conversation ON discovery_sessions(conversation_id)`,
}
