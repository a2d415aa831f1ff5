package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate creates the workout schema. Every statement is safe to re-run:
// tables and indexes are created only if absent and added columns tolerate
// "duplicate column name". Existing rows are never dropped or rewritten.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

// Tables lists the schema tables in creation order.
var Tables = []string{"sessions", "exercise_sets", "warmups", "finishers"}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS sessions (
		id           TEXT PRIMARY KEY,
		performed_at TEXT NOT NULL,
		type         TEXT NOT NULL,
		notes        TEXT NOT NULL DEFAULT ''
	)`,

	`CREATE INDEX IF NOT EXISTS idx_sessions_performed ON sessions(performed_at)`,
	`CREATE INDEX IF NOT EXISTS idx_sessions_type ON sessions(type)`,

	`CREATE TABLE IF NOT EXISTS exercise_sets (
		id         INTEGER PRIMARY KEY AUTOINCREMENT,
		session_id TEXT NOT NULL REFERENCES sessions(id),
		name       TEXT NOT NULL,
		weight     REAL NOT NULL CHECK(weight >= 0),
		reps       INTEGER NOT NULL CHECK(reps >= 0)
	)`,

	`CREATE INDEX IF NOT EXISTS idx_exercise_sets_session ON exercise_sets(session_id)`,
	`CREATE INDEX IF NOT EXISTS idx_exercise_sets_name ON exercise_sets(name)`,

	`CREATE TABLE IF NOT EXISTS warmups (
		id         INTEGER PRIMARY KEY AUTOINCREMENT,
		session_id TEXT NOT NULL REFERENCES sessions(id),
		activity   TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_warmups_session ON warmups(session_id)`,

	`CREATE TABLE IF NOT EXISTS finishers (
		id           INTEGER PRIMARY KEY AUTOINCREMENT,
		session_id   TEXT NOT NULL REFERENCES sessions(id),
		activity     TEXT NOT NULL,
		duration_min INTEGER NOT NULL CHECK(duration_min >= 1)
	)`,

	`CREATE INDEX IF NOT EXISTS idx_finishers_session ON finishers(session_id)`,

	// Warm-up duration and notes were collected by the entry form but had no column.
	`ALTER TABLE warmups ADD COLUMN duration_min INTEGER`,
	`ALTER TABLE warmups ADD COLUMN notes TEXT NOT NULL DEFAULT ''`,
	`ALTER TABLE finishers ADD COLUMN notes TEXT NOT NULL DEFAULT ''`,
}
