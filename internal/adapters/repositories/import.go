package repositories

import (
	"context"
	"database/sql"
	"delivery-dispatch-service/internal/ports"
	"fmt"
)

// Import creates the schema and copies every record from the sources into db.
func Import(
	ctx context.Context,
	db *sql.DB,
	dialect Dialect,
	packages ports.PackageSource,
	locations ports.DistanceSource,
) (int, int, error) {
	if err := InitSchema(ctx, db); err != nil {
		return 0, 0, fmt.Errorf("import: %w", err)
	}

	pkgs, err := packages.ListPackages(ctx)
	if err != nil {
		return 0, 0, fmt.Errorf("import: list packages: %w", err)
	}
	locs, err := locations.ListLocations(ctx)
	if err != nil {
		return 0, 0, fmt.Errorf("import: list locations: %w", err)
	}

	if err := SeedPackages(ctx, db, dialect, pkgs); err != nil {
		return 0, 0, fmt.Errorf("import: %w", err)
	}
	if err := SeedLocations(ctx, db, dialect, locs); err != nil {
		return 0, 0, fmt.Errorf("import: %w", err)
	}

	return len(pkgs), len(locs), nil
}
