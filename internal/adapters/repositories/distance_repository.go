package repositories

import (
	"context"
	"database/sql"
	"delivery-dispatch-service/internal/domain"
	"errors"
	"fmt"
	"strconv"
)

// SQL-backed implementation of the DistanceSource port.
type SQLDistanceRepository struct {
	DB      *sql.DB
	Dialect Dialect
}

func NewSQLDistanceRepository(db *sql.DB, dialect Dialect) *SQLDistanceRepository {
	return &SQLDistanceRepository{DB: db, Dialect: dialect}
}

// Return the distance table rows in position order, each carrying its distances
// to the rows declared before it. Missing pairs are returned as blank cells.
func (s *SQLDistanceRepository) ListLocations(ctx context.Context) ([]domain.LocationRecord, error) {
	if s.DB == nil {
		return nil, errors.New("sql distance repository: DB is nil")
	}

	rows, err := s.DB.QueryContext(ctx, `
	SELECT position, name, address
	FROM locations
	ORDER BY position;
	`)
	if err != nil {
		return nil, fmt.Errorf("list locations: query locations table: %w", err)
	}
	defer rows.Close()

	var records []domain.LocationRecord
	index := make(map[int]int)
	for rows.Next() {
		var pos int
		var rec domain.LocationRecord
		if err := rows.Scan(&pos, &rec.Name, &rec.Address); err != nil {
			return nil, fmt.Errorf("list locations: scan location: %w", err)
		}
		index[pos] = len(records)
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list locations: location iteration: %w", err)
	}

	for i := range records {
		records[i].Distances = make([]string, i+1)
	}

	drows, err := s.DB.QueryContext(ctx, `
	SELECT from_position, to_position, miles
	FROM distances;
	`)
	if err != nil {
		return nil, fmt.Errorf("list locations: query distances table: %w", err)
	}
	defer drows.Close()

	for drows.Next() {
		var from, to int
		var miles float64
		if err := drows.Scan(&from, &to, &miles); err != nil {
			return nil, fmt.Errorf("list locations: scan distance: %w", err)
		}

		i, okFrom := index[from]
		j, okTo := index[to]
		if !okFrom || !okTo {
			return nil, fmt.Errorf("list locations: distance %d -> %d references unknown location", from, to)
		}
		if j > i {
			i, j = j, i
		}
		records[i].Distances[j] = strconv.FormatFloat(miles, 'f', -1, 64)
	}
	if err := drows.Err(); err != nil {
		return nil, fmt.Errorf("list locations: distance iteration: %w", err)
	}

	return records, nil
}
