package services

import (
	"context"
	"delivery-dispatch-service/internal/domain"
	"delivery-dispatch-service/internal/platform/obs"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunFillsFleetNearestFirst(t *testing.T) {
	pkgs := []*domain.Package{
		newPackage(t, 1, streetA, zipA, "EOD", ""),
		newPackage(t, 2, streetB, zipB, "EOD", ""),
		newPackage(t, 3, streetC, zipC, "EOD", ""),
	}

	res, err := Run(context.Background(), pkgs, lineGraph(t))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(res.Trucks) != 2 {
		t.Fatalf("trucks = %d, want 2", len(res.Trucks))
	}
	if got := res.Trucks[0].MilesTraveled(); got != 27 {
		t.Fatalf("truck 1 miles = %v, want 27", got)
	}
	if got := res.Trucks[1].MilesTraveled(); got != 18 {
		t.Fatalf("truck 2 miles = %v, want 18", got)
	}
	if got := res.TotalMiles(); got != 45 {
		t.Fatalf("total miles = %v, want 45", got)
	}

	want := map[int]struct {
		truck int
		at    domain.Minutes
	}{
		1: {truck: 1, at: 495},
		2: {truck: 2, at: 510},
		3: {truck: 1, at: 525},
	}
	for id, w := range want {
		p, err := res.Package(id)
		require.NoError(t, err)
		if p.TruckID() != w.truck {
			t.Fatalf("package %d truck = %d, want %d", id, p.TruckID(), w.truck)
		}
		if got := deliveredAt(t, p); got != w.at {
			t.Fatalf("package %d delivered at %v, want %v", id, got, w.at)
		}
	}
}

func TestRunHonorsRequiredTruck(t *testing.T) {
	pkgs := []*domain.Package{
		newPackage(t, 1, streetA, zipA, "EOD", "Can only be on truck 2"),
		newPackage(t, 2, streetD, zipD, "EOD", ""),
	}

	res, err := Run(context.Background(), pkgs, lineGraph(t))
	require.NoError(t, err)

	pinned, err := res.Package(1)
	require.NoError(t, err)
	assert.Equal(t, 2, pinned.TruckID())

	other, err := res.Package(2)
	require.NoError(t, err)
	assert.Equal(t, 1, other.TruckID())
}

func TestRunCorrectsWrongAddressAtCorrectionTime(t *testing.T) {
	pkgs := []*domain.Package{
		newPackage(t, 1, "300 State St", "84103", "EOD", "Wrong address listed"),
		newPackage(t, 2, streetA, zipA, "EOD", ""),
	}

	res, err := Run(context.Background(), pkgs, lineGraph(t))
	require.NoError(t, err)

	p, err := res.Package(1)
	require.NoError(t, err)

	assert.False(t, p.HasWrongAddress())
	assert.Equal(t, "410 S State St (84111)", p.Address)
	assert.Equal(t, 2, p.TruckID())

	loaded, ok := p.LoadedAt()
	require.True(t, ok)
	assert.Equal(t, domain.Minutes(620), loaded)
	assert.Equal(t, domain.Minutes(680), deliveredAt(t, p))

	// Truck 1 idled from 8:30 after its first trip.
	assert.Equal(t, domain.Minutes(620), res.Trucks[0].Clock())
}

func TestRunCoLoadsSameAddress(t *testing.T) {
	pkgs := []*domain.Package{
		newPackage(t, 1, streetC, zipC, "10:30 am", ""),
		newPackage(t, 2, streetC, zipC, "EOD", ""),
		newPackage(t, 3, streetD, zipD, "10:30 am", ""),
		newPackage(t, 4, streetA, zipA, "EOD", ""),
	}

	s, err := New(pkgs, lineGraph(t), oneTruck(domain.DefaultTruckCapacity))
	require.NoError(t, err)
	res, err := s.Run(context.Background())
	require.NoError(t, err)

	truck := res.Trucks[0]
	routes := truck.Routes()
	require.Len(t, routes, 2)

	first := routes[0]
	require.Len(t, first.Stops, 2)
	assert.Equal(t, []int{1, 2}, first.Stops[0].PackageIDs)
	assert.Equal(t, []int{3}, first.Stops[1].PackageIDs)
	assert.Equal(t, 36.0, first.TotalMiles)

	p2, _ := res.Package(2)
	assert.Equal(t, 1, p2.Trip())
	assert.Equal(t, domain.Minutes(525), deliveredAt(t, p2))

	p3, _ := res.Package(3)
	assert.Equal(t, domain.Minutes(540), deliveredAt(t, p3))

	p4, _ := res.Package(4)
	assert.Equal(t, 2, p4.Trip())
	assert.Equal(t, domain.Minutes(615), deliveredAt(t, p4))
	assert.Equal(t, 45.0, truck.MilesTraveled())
}

func TestRunDefersPriorityClosureThatDoesNotFit(t *testing.T) {
	pkgs := []*domain.Package{
		newPackage(t, 1, streetA, zipA, "9:00 am", ""),
		newPackage(t, 2, streetB, zipB, "10:30 am", "Must be delivered with 3"),
		newPackage(t, 3, streetC, zipC, "EOD", ""),
		newPackage(t, 4, streetD, zipD, "EOD", ""),
	}

	s, err := New(pkgs, lineGraph(t), oneTruck(2))
	require.NoError(t, err)
	res, err := s.Run(context.Background())
	require.NoError(t, err)

	routes := res.Trucks[0].Routes()
	require.Len(t, routes, 3)
	assert.Equal(t, 1, routes[0].PackageCount())
	assert.Equal(t, 2, routes[1].PackageCount())
	assert.Equal(t, 1, routes[2].PackageCount())

	want := map[int]struct {
		trip int
		at   domain.Minutes
	}{
		1: {trip: 1, at: 495},
		2: {trip: 2, at: 540},
		3: {trip: 2, at: 555},
		4: {trip: 3, at: 660},
	}
	for id, w := range want {
		p, err := res.Package(id)
		require.NoError(t, err)
		if p.Trip() != w.trip {
			t.Fatalf("package %d trip = %d, want %d", id, p.Trip(), w.trip)
		}
		if got := deliveredAt(t, p); got != w.at {
			t.Fatalf("package %d delivered at %v, want %v", id, got, w.at)
		}
	}
	assert.Equal(t, 72.0, res.Trucks[0].MilesTraveled())
}

func TestRunSameAddressClosureNeedsSpareCapacity(t *testing.T) {
	fixture := func() []*domain.Package {
		return []*domain.Package{
			newPackage(t, 1, streetA, zipA, "9:00 am", ""),
			newPackage(t, 2, streetA, zipA, "EOD", "Must be delivered with 3, 4"),
			newPackage(t, 3, streetB, zipB, "EOD", ""),
			newPackage(t, 4, streetC, zipC, "EOD", ""),
		}
	}

	tests := []struct {
		name     string
		capacity int
		trips    map[int]int
	}{
		{name: "closure larger than spare slots", capacity: 3, trips: map[int]int{1: 1, 2: 2, 3: 2, 4: 2}},
		{name: "closure fits", capacity: 4, trips: map[int]int{1: 1, 2: 1, 3: 1, 4: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := New(fixture(), lineGraph(t), oneTruck(tt.capacity))
			require.NoError(t, err)
			res, err := s.Run(context.Background())
			require.NoError(t, err)

			for id, trip := range tt.trips {
				p, err := res.Package(id)
				require.NoError(t, err)
				assert.Equal(t, trip, p.Trip(), "package %d", id)
			}
		})
	}
}

func TestRunDeliversDependenciesTogether(t *testing.T) {
	pkgs := []*domain.Package{
		newPackage(t, 1, streetA, zipA, "EOD", "Must be delivered with 3"),
		newPackage(t, 2, streetB, zipB, "EOD", ""),
		newPackage(t, 3, streetD, zipD, "EOD", ""),
		newPackage(t, 4, streetC, zipC, "EOD", "Must be delivered with 1"),
	}

	res, err := Run(context.Background(), pkgs, lineGraph(t))
	require.NoError(t, err)

	p1, _ := res.Package(1)
	for _, id := range []int{3, 4} {
		p, _ := res.Package(id)
		if p.TruckID() != p1.TruckID() || p.Trip() != p1.Trip() {
			t.Fatalf("package %d on truck %d trip %d, want truck %d trip %d",
				id, p.TruckID(), p.Trip(), p1.TruckID(), p1.Trip())
		}
	}

	p3, _ := res.Package(3)
	p4, _ := res.Package(4)
	assert.Equal(t, domain.Minutes(495), deliveredAt(t, p1))
	assert.Equal(t, domain.Minutes(525), deliveredAt(t, p4))
	assert.Equal(t, domain.Minutes(540), deliveredAt(t, p3))
}

func TestRunRespectsCapacity(t *testing.T) {
	pkgs := []*domain.Package{
		newPackage(t, 1, streetA, zipA, "EOD", ""),
		newPackage(t, 2, streetB, zipB, "EOD", ""),
		newPackage(t, 3, streetC, zipC, "EOD", ""),
		newPackage(t, 4, streetD, zipD, "EOD", ""),
		newPackage(t, 5, streetA, zipA, "EOD", ""),
	}

	s, err := New(pkgs, lineGraph(t), oneTruck(2))
	require.NoError(t, err)
	res, err := s.Run(context.Background())
	require.NoError(t, err)

	routes := res.Trucks[0].Routes()
	if len(routes) != 3 {
		t.Fatalf("routes = %d, want 3", len(routes))
	}
	for _, r := range routes {
		if r.PackageCount() > 2 {
			t.Fatalf("trip %d carried %d packages, capacity 2", r.Trip, r.PackageCount())
		}
	}
	assert.Equal(t, []int{1, 5}, routes[0].Stops[0].PackageIDs)
	assert.Equal(t, 72.0, res.TotalMiles())
}

func TestRunMixedFixtureProperties(t *testing.T) {
	res, err := Run(context.Background(), mixedFixture(t), lineGraph(t))
	require.NoError(t, err)

	for _, p := range res.Packages {
		require.True(t, p.IsDelivered(), "package %d", p.PackageID)

		loaded, _ := p.LoadedAt()
		delivered := deliveredAt(t, p)
		if p.AvailableAt() > loaded || loaded > delivered {
			t.Fatalf("package %d: available %v, loaded %v, delivered %v", p.PackageID, p.AvailableAt(), loaded, delivered)
		}

		if truck, ok := p.RequiredTruck(); ok && p.TruckID() != truck {
			t.Fatalf("package %d delivered by truck %d, requires %d", p.PackageID, p.TruckID(), truck)
		}

		if p.HasDeadline() && !p.DeliveredOnTime() {
			t.Fatalf("package %d delivered at %v, deadline %v", p.PackageID, delivered, p.Deadline)
		}

		for _, d := range p.Dependencies() {
			if d.TruckID() != p.TruckID() || d.Trip() != p.Trip() {
				t.Fatalf("package %d and dependency %d delivered on different trips", p.PackageID, d.PackageID)
			}
		}
	}

	for _, truck := range res.Trucks {
		for _, r := range truck.Routes() {
			if r.PackageCount() > domain.DefaultTruckCapacity {
				t.Fatalf("truck %d trip %d carried %d packages", truck.TruckID, r.Trip, r.PackageCount())
			}
		}
	}

	p8, _ := res.Package(8)
	assert.Equal(t, domain.Minutes(720), deliveredAt(t, p8))
	assert.Equal(t, 2, p8.TruckID())
}

func TestRunIsDeterministic(t *testing.T) {
	first, err := Run(context.Background(), mixedFixture(t), lineGraph(t))
	require.NoError(t, err)
	second, err := Run(context.Background(), mixedFixture(t), lineGraph(t))
	require.NoError(t, err)

	assert.NotEqual(t, first.RunID, second.RunID)
	for i := range first.Trucks {
		assert.Equal(t, first.Trucks[i].MilesTraveled(), second.Trucks[i].MilesTraveled())
	}
	for i := range first.Packages {
		a, b := first.Packages[i], second.Packages[i]
		assert.Equal(t, deliveredAt(t, a), deliveredAt(t, b), "package %d", a.PackageID)
		assert.Equal(t, a.TruckID(), b.TruckID(), "package %d", a.PackageID)
	}
}

func TestRunKeepsCallerRunID(t *testing.T) {
	ctx := obs.WithRunID(context.Background(), "run-42")

	res, err := Run(ctx, mixedFixture(t), lineGraph(t))
	require.NoError(t, err)
	assert.Equal(t, "run-42", res.RunID)
}

func TestRunStopsOnCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Run(ctx, mixedFixture(t), lineGraph(t))
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
}

func TestResultPackageNotFound(t *testing.T) {
	res, err := Run(context.Background(), []*domain.Package{newPackage(t, 1, streetA, zipA, "EOD", "")}, lineGraph(t))
	require.NoError(t, err)

	_, err = res.Package(99)
	assert.ErrorIs(t, err, domain.ErrPackageNotFound)
}

func TestWaitForNextAvailability(t *testing.T) {
	pkgs := []*domain.Package{
		newPackage(t, 1, streetC, zipC, "EOD", "Delayed on flight---will not arrive to depot until 9:05 am"),
	}
	s, err := New(pkgs, lineGraph(t), DefaultOptions())
	require.NoError(t, err)

	require.NoError(t, s.waitForNextAvailability(context.Background()))
	for _, truck := range s.trucks {
		assert.Equal(t, domain.Minutes(545), truck.Clock())
	}
}

func TestWaitForNextAvailabilityStalled(t *testing.T) {
	s, err := New([]*domain.Package{newPackage(t, 1, streetA, zipA, "EOD", "")}, lineGraph(t), DefaultOptions())
	require.NoError(t, err)

	err = s.waitForNextAvailability(context.Background())
	assert.ErrorIs(t, err, ErrStalled)
}

func TestNewRejectsInvalidInput(t *testing.T) {
	tests := []struct {
		name     string
		packages func(t *testing.T) []*domain.Package
		opts     Options
	}{
		{
			name: "duplicate id",
			packages: func(t *testing.T) []*domain.Package {
				return []*domain.Package{
					newPackage(t, 1, streetA, zipA, "EOD", ""),
					newPackage(t, 1, streetB, zipB, "EOD", ""),
				}
			},
			opts: DefaultOptions(),
		},
		{
			name: "unknown dependency",
			packages: func(t *testing.T) []*domain.Package {
				return []*domain.Package{newPackage(t, 1, streetA, zipA, "EOD", "Must be delivered with 9")}
			},
			opts: DefaultOptions(),
		},
		{
			name: "truck outside fleet",
			packages: func(t *testing.T) []*domain.Package {
				return []*domain.Package{newPackage(t, 1, streetA, zipA, "EOD", "Can only be on truck 3")}
			},
			opts: DefaultOptions(),
		},
		{
			name: "address not in graph",
			packages: func(t *testing.T) []*domain.Package {
				return []*domain.Package{newPackage(t, 1, "9 Nowhere Rd", "84999", "EOD", "")}
			},
			opts: DefaultOptions(),
		},
		{
			name: "closure exceeds capacity",
			packages: func(t *testing.T) []*domain.Package {
				return []*domain.Package{
					newPackage(t, 1, streetA, zipA, "EOD", "Must be delivered with 2, 3"),
					newPackage(t, 2, streetB, zipB, "EOD", ""),
					newPackage(t, 3, streetC, zipC, "EOD", ""),
				}
			},
			opts: oneTruck(2),
		},
		{
			name: "conflicting pins",
			packages: func(t *testing.T) []*domain.Package {
				return []*domain.Package{
					newPackage(t, 1, streetA, zipA, "EOD", "Can only be on truck 1"),
					newPackage(t, 2, streetB, zipB, "EOD", "Can only be on truck 2"),
					newPackage(t, 3, streetC, zipC, "EOD", "Must be delivered with 1, 2"),
				}
			},
			opts: DefaultOptions(),
		},
		{
			name: "hub not in graph",
			packages: func(t *testing.T) []*domain.Package {
				return []*domain.Package{newPackage(t, 1, streetA, zipA, "EOD", "")}
			},
			opts: func() Options {
				o := DefaultOptions()
				o.Truck.Hub = domain.LocationOf("Nowhere")
				return o
			}(),
		},
		{
			name: "empty fleet",
			packages: func(t *testing.T) []*domain.Package {
				return []*domain.Package{newPackage(t, 1, streetA, zipA, "EOD", "")}
			},
			opts: Options{Truck: domain.DefaultTruckSpec()},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.packages(t), lineGraph(t), tt.opts)
			if !errors.Is(err, ErrInvalidInput) {
				t.Fatalf("err = %v, want ErrInvalidInput", err)
			}
		})
	}
}
