package db

import (
	"database/sql"
	"fmt"
	"strings"
	"time"
)

// DriverFor picks the database/sql driver for a connection string:
// pgx for postgres URLs, sqlite for anything else (a file path or :memory:).
// The caller must import the driver package.
func DriverFor(databaseURL string) string {
	u := strings.ToLower(strings.TrimSpace(databaseURL))
	if strings.HasPrefix(u, "postgres://") || strings.HasPrefix(u, "postgresql://") {
		return "pgx"
	}
	return "sqlite"
}

func Open(driver, databaseURL string) (*sql.DB, error) {
	db, err := sql.Open(driver, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("openDB: open %s database: %w", driver, err)
	}

	switch driver {
	case "pgx":
		db.SetMaxOpenConns(10)
		db.SetMaxIdleConns(10)
		db.SetConnMaxLifetime(30 * time.Minute)
	default:
		// SQLite serializes writers, and each :memory: connection is its own database.
		db.SetMaxOpenConns(1)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("openDB: verify %s connection: %w", driver, err)
	}

	return db, nil
}
