package ports

import (
	"context"
	"delivery-dispatch-service/internal/domain"
)

// Port: a boundary for retrieving the distance table.
type DistanceSource interface {
	// Retrieve the distance table rows in declaration order.
	// Row i carries the distances to rows 0..i.
	ListLocations(ctx context.Context) ([]domain.LocationRecord, error)
}
