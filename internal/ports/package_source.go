package ports

import (
	"context"
	"delivery-dispatch-service/internal/domain"
)

// Port: a boundary for retrieving raw package records from a data source.
type PackageSource interface {
	// Retrieve every package record for the run, in source order.
	ListPackages(ctx context.Context) ([]domain.PackageRecord, error)
}
