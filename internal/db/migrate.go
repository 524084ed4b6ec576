package db

import (
	"database/sql"
	"fmt"
)

// migrations are plain DDL accepted by both SQLite and Postgres. Dates are
// stored as YYYY-MM-DD text and timestamps as RFC3339 text on both.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS projects (
		id          TEXT PRIMARY KEY,
		short_id    TEXT NOT NULL,
		name        TEXT NOT NULL,
		start_date  TEXT NOT NULL,
		created_at  TEXT NOT NULL,
		updated_at  TEXT NOT NULL
	)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_projects_short_id ON projects(short_id)`,
	`CREATE TABLE IF NOT EXISTS schedule_tasks (
		id               TEXT PRIMARY KEY,
		project_id       TEXT NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
		name             TEXT NOT NULL DEFAULT '',
		start_date       TEXT NOT NULL,
		end_date         TEXT NOT NULL,
		duration         INTEGER NOT NULL DEFAULT 0 CHECK(duration >= 0),
		progress         INTEGER NOT NULL DEFAULT 0 CHECK(progress BETWEEN 0 AND 100),
		predecessor      TEXT,
		hierarchy_number TEXT,
		resources        TEXT,
		created_at       TEXT NOT NULL,
		updated_at       TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_schedule_tasks_project ON schedule_tasks(project_id)`,
	`CREATE INDEX IF NOT EXISTS idx_schedule_tasks_hierarchy ON schedule_tasks(project_id, hierarchy_number)`,
}

// Migrate runs all schema migrations.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}
