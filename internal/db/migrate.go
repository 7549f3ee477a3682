package db

import (
	"database/sql"
	"fmt"
)

// migrations are idempotent schema statements, applied in order.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS estimates (
		id             TEXT PRIMARY KEY,
		raw_input      TEXT NOT NULL,
		total_calories INTEGER NOT NULL,
		created_at     TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS estimate_items (
		estimate_id TEXT NOT NULL REFERENCES estimates(id) ON DELETE CASCADE,
		position    INTEGER NOT NULL,
		label       TEXT NOT NULL,
		calories    INTEGER NOT NULL,
		matched     INTEGER NOT NULL DEFAULT 1,
		PRIMARY KEY (estimate_id, position)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_estimates_created ON estimates(created_at)`,
	`CREATE INDEX IF NOT EXISTS idx_estimate_items_estimate ON estimate_items(estimate_id)`,
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
