package repositories

import (
	"context"
	"database/sql"
	"delivery-dispatch-service/internal/domain"
	"fmt"
	"strconv"
	"strings"
)

// SeedPackages upserts package records.
func SeedPackages(ctx context.Context, db *sql.DB, dialect Dialect, records []domain.PackageRecord) error {
	type row struct {
		id   int
		mass int
		rec  domain.PackageRecord
	}

	rows := make([]row, 0, len(records))
	for i, rec := range records {
		id, err := strconv.Atoi(strings.TrimSpace(rec.ID))
		if err != nil || id <= 0 {
			return fmt.Errorf("seed packages: invalid package id at row %d: %q", i+1, rec.ID)
		}
		mass, err := strconv.Atoi(strings.TrimSpace(rec.Mass))
		if err != nil {
			return fmt.Errorf("seed packages: package_id=%d: mass %q: %w", id, rec.Mass, err)
		}
		rows = append(rows, row{id: id, mass: mass, rec: rec})
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("seed packages: begin tx: %w", err)
	}
	defer tx.Rollback()

	query := dialect.Rebind(`
	INSERT INTO packages (
		package_id,
		street,
		city,
		state,
		zipcode,
		deadline,
		mass,
		note
	)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT (package_id) DO UPDATE SET
		street = excluded.street,
		city = excluded.city,
		state = excluded.state,
		zipcode = excluded.zipcode,
		deadline = excluded.deadline,
		mass = excluded.mass,
		note = excluded.note;
	`)
	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return fmt.Errorf("seed packages: prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, r := range rows {
		_, err := stmt.ExecContext(ctx,
			r.id,
			strings.TrimSpace(r.rec.Street),
			strings.TrimSpace(r.rec.City),
			strings.TrimSpace(r.rec.State),
			strings.TrimSpace(r.rec.Zipcode),
			strings.TrimSpace(r.rec.Deadline),
			r.mass,
			strings.TrimSpace(r.rec.Note),
		)
		if err != nil {
			return fmt.Errorf("seed packages: insert package_id=%d: %w", r.id, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed packages: commit tx: %w", err)
	}

	return nil
}

// SeedLocations replaces the distance table with records.
// Row i's distances to rows 0..i are stored; blank cells are skipped.
func SeedLocations(ctx context.Context, db *sql.DB, dialect Dialect, records []domain.LocationRecord) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("seed locations: begin tx: %w", err)
	}
	defer tx.Rollback()

	for _, q := range []string{"DELETE FROM distances;", "DELETE FROM locations;"} {
		if _, err := tx.ExecContext(ctx, q); err != nil {
			return fmt.Errorf("seed locations: clear tables: %w", err)
		}
	}

	insertLocation, err := tx.PrepareContext(ctx, dialect.Rebind(
		`INSERT INTO locations (position, name, address) VALUES (?, ?, ?);`,
	))
	if err != nil {
		return fmt.Errorf("seed locations: prepare location insert: %w", err)
	}
	defer insertLocation.Close()

	insertDistance, err := tx.PrepareContext(ctx, dialect.Rebind(
		`INSERT INTO distances (from_position, to_position, miles) VALUES (?, ?, ?);`,
	))
	if err != nil {
		return fmt.Errorf("seed locations: prepare distance insert: %w", err)
	}
	defer insertDistance.Close()

	for i, rec := range records {
		place := domain.NewPlace(rec.Name, rec.Address)
		if place.Address == "" {
			return fmt.Errorf("seed locations: row %d: empty address", i+1)
		}
		if _, err := insertLocation.ExecContext(ctx, i, place.Name, place.Address); err != nil {
			return fmt.Errorf("seed locations: insert %q: %w", place.Address, err)
		}

		for j, cell := range rec.Distances {
			if j > i {
				break
			}
			cell = strings.TrimSpace(cell)
			if cell == "" {
				continue
			}
			miles, err := strconv.ParseFloat(cell, 64)
			if err != nil {
				return fmt.Errorf("seed locations: row %d column %d: %w", i+1, j+1, err)
			}
			if _, err := insertDistance.ExecContext(ctx, i, j, miles); err != nil {
				return fmt.Errorf("seed locations: insert distance %d -> %d: %w", i, j, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed locations: commit tx: %w", err)
	}

	return nil
}
