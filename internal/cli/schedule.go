package cli

import (
	"context"
	"database/sql"
	"delivery-dispatch-service/internal/adapters/files"
	"delivery-dispatch-service/internal/adapters/repositories"
	"delivery-dispatch-service/internal/config"
	"delivery-dispatch-service/internal/platform/db"
	"delivery-dispatch-service/internal/platform/metrics"
	"delivery-dispatch-service/internal/ports"
	"delivery-dispatch-service/internal/services"
	"fmt"
)

// sources returns the package and distance sources selected by the flags.
// The returned close func must be called when done.
func sources() (ports.PackageSource, ports.DistanceSource, func(), error) {
	if flagDB == "" {
		return files.NewPackageFile(flagPackages), files.NewDistanceFile(flagDistances), func() {}, nil
	}

	driver := db.DriverFor(flagDB)
	conn, err := db.Open(driver, flagDB)
	if err != nil {
		return nil, nil, nil, err
	}
	dialect := repositories.DialectFor(driver)
	return repositories.NewSQLPackageRepository(conn, dialect),
		repositories.NewSQLDistanceRepository(conn, dialect),
		func() { closeDB(conn) },
		nil
}

func closeDB(conn *sql.DB) {
	if err := conn.Close(); err != nil {
		logger.Warn("close database", "err", err)
	}
}

// schedule runs a full scheduling pass with the configured inputs.
func schedule(ctx context.Context) (*services.Result, error) {
	cfg, err := config.LoadDispatch(flagConfig)
	if err != nil {
		return nil, err
	}

	pkgs, dists, closeFn, err := sources()
	if err != nil {
		return nil, err
	}
	defer closeFn()

	var m *metrics.Metrics
	if flagMetricsFile != "" {
		m = metrics.New()
	}

	res, err := services.PlanDeliveries(ctx, services.PlanDeliveriesRequest{
		Config:  cfg,
		Logger:  logger,
		Metrics: m,
	}, pkgs, dists)
	if err != nil {
		return nil, err
	}

	if m != nil {
		if err := m.WriteTextfile(flagMetricsFile); err != nil {
			return nil, fmt.Errorf("write metrics: %w", err)
		}
		logger.Info("metrics written", "path", flagMetricsFile)
	}

	return res, nil
}
