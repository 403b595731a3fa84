package services

import (
	"context"
	"delivery-dispatch-service/internal/config"
	"delivery-dispatch-service/internal/domain"
	"delivery-dispatch-service/internal/platform/logging"
	"delivery-dispatch-service/internal/platform/metrics"
	"delivery-dispatch-service/internal/platform/obs"
	"delivery-dispatch-service/internal/ports"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
)

type PlanDeliveriesRequest struct {
	Config  config.Dispatch
	Logger  *slog.Logger
	Metrics *metrics.Metrics
}

// PlanDeliveries loads the package records and distance table from their sources,
// builds the run inputs and schedules them.
func PlanDeliveries(
	ctx context.Context,
	req PlanDeliveriesRequest,
	packageSource ports.PackageSource,
	distanceSource ports.DistanceSource,
) (_ *Result, err error) {
	logger := req.Logger
	if logger == nil {
		logger = logging.Discard()
	}
	if obs.RunID(ctx) == "" {
		ctx = obs.WithRunID(ctx, uuid.NewString())
	}
	defer obs.Time(ctx, logger, "services.PlanDeliveries")(&err)

	if packageSource == nil || distanceSource == nil {
		return nil, errors.New("plan deliveries: package and distance sources are required")
	}

	if err := req.Config.Validate(); err != nil {
		return nil, fmt.Errorf("plan deliveries: config: %w", err)
	}
	spec, err := req.Config.TruckSpec()
	if err != nil {
		return nil, fmt.Errorf("plan deliveries: %w", err)
	}
	intake, err := req.Config.Intake()
	if err != nil {
		return nil, fmt.Errorf("plan deliveries: %w", err)
	}

	locations, err := distanceSource.ListLocations(ctx)
	if err != nil {
		return nil, fmt.Errorf("plan deliveries: list locations: %w", err)
	}
	graph, err := domain.BuildGraph(locations)
	if err != nil {
		return nil, fmt.Errorf("plan deliveries: %w", err)
	}

	records, err := packageSource.ListPackages(ctx)
	if err != nil {
		return nil, fmt.Errorf("plan deliveries: list packages: %w", err)
	}

	packages := make([]*domain.Package, 0, len(records))
	for i, rec := range records {
		p, err := domain.NewPackage(rec, intake)
		if err != nil {
			return nil, fmt.Errorf("plan deliveries: record %d: %w: %w", i+1, ErrInvalidInput, err)
		}
		packages = append(packages, p)
	}

	logger.Info("inputs loaded", "packages", len(packages), "locations", len(locations))

	s, err := New(packages, graph, Options{
		Trucks:  req.Config.Trucks,
		Truck:   spec,
		Logger:  logger,
		Metrics: req.Metrics,
	})
	if err != nil {
		return nil, fmt.Errorf("plan deliveries: %w", err)
	}

	res, err := s.Run(ctx)
	if err != nil {
		return nil, fmt.Errorf("plan deliveries: %w", err)
	}
	return res, nil
}
