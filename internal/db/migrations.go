package db

import (
	"context"
	"fmt"
)

// schemaVersion is the user_version written once all migrations ran.
const schemaVersion = 1

// migrations[i] upgrades a database from user_version i to i+1.
var migrations = []string{
	// v1: timestamps written by older builds carried a " +0000 UTC" suffix
	// that SQLite date functions cannot read.
	`UPDATE insight_runs
	 SET generated_at = SUBSTR(generated_at, 1, 19)
	 WHERE length(generated_at) > 19 AND generated_at LIKE '% UTC'`,
}

// migrate applies pending migrations and records the new schema version.
func (db *DB) migrate() error {
	var version int
	if err := db.QueryRowContext(context.Background(), "PRAGMA user_version").Scan(&version); err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}

	for i := version; i < len(migrations); i++ {
		if _, err := db.ExecContext(context.Background(), migrations[i]); err != nil {
			return fmt.Errorf("failed to apply migration %d: %w", i+1, err)
		}
	}

	if version < schemaVersion {
		if _, err := db.ExecContext(context.Background(), fmt.Sprintf("PRAGMA user_version = %d", schemaVersion)); err != nil {
			return fmt.Errorf("failed to write schema version: %w", err)
		}
	}

	return nil
}

// SchemaVersion returns the stored schema version.
func (db *DB) SchemaVersion() (int, error) {
	var version int
	err := db.QueryRowContext(context.Background(), "PRAGMA user_version").Scan(&version)
	return version, err
}
