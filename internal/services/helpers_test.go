package services

import (
	"delivery-dispatch-service/internal/domain"
	"math"
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"
)

const (
	streetA = "1 Alpha St"
	zipA    = "84001"
	streetB = "2 Beta St"
	zipB    = "84002"
	streetC = "3 Gamma St"
	zipC    = "84003"
	streetD = "410 S State St"
	zipD    = "84111"
)

// lineGraph places HUB, A, B, C and D on a line 4.5 miles apart (15 minutes at 18 mph).
func lineGraph(t *testing.T) *domain.DistanceGraph {
	t.Helper()

	addresses := []string{
		domain.HubAddress,
		streetA + " (" + zipA + ")",
		streetB + " (" + zipB + ")",
		streetC + " (" + zipC + ")",
		streetD + " (" + zipD + ")",
	}

	records := make([]domain.LocationRecord, 0, len(addresses))
	for i, addr := range addresses {
		row := make([]string, 0, i+1)
		for j := 0; j <= i; j++ {
			row = append(row, strconv.FormatFloat(math.Abs(float64(i-j))*4.5, 'f', -1, 64))
		}
		records = append(records, domain.LocationRecord{Name: "Place " + strconv.Itoa(i), Address: addr, Distances: row})
	}

	g, err := domain.BuildGraph(records)
	require.NoError(t, err)
	return g
}

func newPackage(t *testing.T, id int, street, zip, deadline, note string) *domain.Package {
	t.Helper()
	p, err := domain.NewPackage(domain.PackageRecord{
		ID:       strconv.Itoa(id),
		Street:   street,
		City:     "Salt Lake City",
		State:    "UT",
		Zipcode:  zip,
		Deadline: deadline,
		Mass:     "2",
		Note:     note,
	}, domain.DefaultIntake())
	require.NoError(t, err)
	return p
}

// mixedFixture exercises every note directive on the line graph.
func mixedFixture(t *testing.T) []*domain.Package {
	t.Helper()
	return []*domain.Package{
		newPackage(t, 1, streetD, zipD, "10:00 am", ""),
		newPackage(t, 2, streetA, zipA, "10:30 am", ""),
		newPackage(t, 3, streetB, zipB, "EOD", ""),
		newPackage(t, 4, streetC, zipC, "EOD", "Delayed on flight---will not arrive to depot until 9:05 am"),
		newPackage(t, 5, streetB, zipB, "10:30 am", "Can only be on truck 2"),
		newPackage(t, 6, streetA, zipA, "EOD", "Must be delivered with 7"),
		newPackage(t, 7, streetC, zipC, "EOD", ""),
		newPackage(t, 8, "300 State St", "84103", "EOD", "Wrong address listed"),
		newPackage(t, 9, streetD, zipD, "EOD", "Can only be on truck 2"),
		newPackage(t, 10, streetB, zipB, "EOD", "Must be delivered with 6, 11"),
		newPackage(t, 11, streetA, zipA, "EOD", ""),
		newPackage(t, 12, streetC, zipC, "10:30 am", ""),
	}
}

func oneTruck(capacity int) Options {
	opts := DefaultOptions()
	opts.Trucks = 1
	opts.Truck.Capacity = capacity
	return opts
}

func deliveredAt(t *testing.T, p *domain.Package) domain.Minutes {
	t.Helper()
	at, ok := p.DeliveredAt()
	if !ok {
		t.Fatalf("package %d not delivered, status %s", p.PackageID, p.Status())
	}
	return at
}
