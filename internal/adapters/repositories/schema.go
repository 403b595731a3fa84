package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// Initialize the input tables. The DDL is portable between SQLite and Postgres.
func InitSchema(ctx context.Context, db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createPackagesQuery := `
	CREATE TABLE IF NOT EXISTS packages (
		package_id INTEGER PRIMARY KEY,
		street TEXT NOT NULL,
		city TEXT NOT NULL,
		state TEXT NOT NULL,
		zipcode TEXT NOT NULL,
		deadline TEXT NOT NULL,
		mass INTEGER NOT NULL,
		note TEXT NOT NULL DEFAULT ''
	);
	`

	createLocationsQuery := `
	CREATE TABLE IF NOT EXISTS locations (
		position INTEGER PRIMARY KEY,
		name TEXT NOT NULL,
		address TEXT NOT NULL UNIQUE
	);
	`

	createDistancesQuery := `
	CREATE TABLE IF NOT EXISTS distances (
		from_position INTEGER NOT NULL,
		to_position INTEGER NOT NULL,
		miles DOUBLE PRECISION NOT NULL,
		PRIMARY KEY (from_position, to_position)
	);
	`

	statements := []string{
		createPackagesQuery,
		createLocationsQuery,
		createDistancesQuery,
	}

	for i, stmt := range statements {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}
