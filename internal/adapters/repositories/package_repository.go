package repositories

import (
	"context"
	"database/sql"
	"delivery-dispatch-service/internal/domain"
	"errors"
	"fmt"
	"strconv"
)

// SQL-backed implementation of the PackageSource port.
type SQLPackageRepository struct {
	DB      *sql.DB
	Dialect Dialect
}

func NewSQLPackageRepository(db *sql.DB, dialect Dialect) *SQLPackageRepository {
	return &SQLPackageRepository{DB: db, Dialect: dialect}
}

// Return all package records ordered by id.
func (s *SQLPackageRepository) ListPackages(ctx context.Context) ([]domain.PackageRecord, error) {
	if s.DB == nil {
		return nil, errors.New("sql package repository: DB is nil")
	}

	query := `
	SELECT
		package_id,
		street,
		city,
		state,
		zipcode,
		deadline,
		mass,
		note
	FROM packages
	ORDER BY package_id;
	`
	rows, err := s.DB.QueryContext(ctx, s.Dialect.Rebind(query))
	if err != nil {
		return nil, fmt.Errorf("list packages: query packages table: %w", err)
	}
	defer rows.Close()

	records := make([]domain.PackageRecord, 0, 64)
	for rows.Next() {
		var id, mass int
		var rec domain.PackageRecord
		err := rows.Scan(&id, &rec.Street, &rec.City, &rec.State, &rec.Zipcode, &rec.Deadline, &mass, &rec.Note)
		if err != nil {
			return nil, fmt.Errorf("list packages: scan row: %w", err)
		}
		rec.ID = strconv.Itoa(id)
		rec.Mass = strconv.Itoa(mass)
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list packages: row iteration: %w", err)
	}

	return records, nil
}
