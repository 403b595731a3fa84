package domain

import (
	"fmt"
	"slices"
)

const (
	DefaultTruckCapacity = 16
	DefaultSpeedMPH      = 18.0
)

// TruckSpec holds the fixed characteristics shared by every truck in a fleet.
type TruckSpec struct {
	Capacity   int
	SpeedMPH   float64
	StartOfDay Minutes
	Hub        Location
}

func DefaultTruckSpec() TruckSpec {
	return TruckSpec{
		Capacity:   DefaultTruckCapacity,
		SpeedMPH:   DefaultSpeedMPH,
		StartOfDay: DefaultStartOfDay,
		Hub:        LocationOf(HubAddress),
	}
}

// DistanceLookup answers the fixed distance between two locations.
type DistanceLookup interface {
	DistanceBetween(from, to Location) (float64, error)
}

// Delivery truck aggregate holding loaded packages and executing routes.
//
// The simulated clock is derived from distance: start of day plus travel time at the
// average speed, plus any time spent idle at the hub.
type Truck struct {
	TruckID  int
	Capacity int
	SpeedMPH float64
	Start    Minutes
	Hub      Location
	Packages []*Package

	milesTraveled float64
	idle          Minutes
	trip          int
	routes        []RoutePlan
}

func NewTruck(id int, spec TruckSpec) *Truck {
	return &Truck{
		TruckID:  id,
		Capacity: spec.Capacity,
		SpeedMPH: spec.SpeedMPH,
		Start:    spec.StartOfDay,
		Hub:      spec.Hub,
	}
}

// Load a single package onto the truck.
func (t *Truck) Load(pkg *Package) error {
	if len(t.Packages) >= t.Capacity {
		return fmt.Errorf("load truck: truck %d, package %d (capacity=%d): %w",
			t.TruckID, pkg.PackageID, t.Capacity, ErrTruckFull)
	}
	if err := pkg.MarkEnRoute(t); err != nil {
		return fmt.Errorf("load truck: truck %d: %w", t.TruckID, err)
	}
	t.Packages = append(t.Packages, pkg)
	return nil
}

func (t *Truck) CapacityRemaining() int { return t.Capacity - len(t.Packages) }

func (t *Truck) IsFull() bool { return len(t.Packages) >= t.Capacity }

func (t *Truck) IsEmpty() bool { return len(t.Packages) == 0 }

// CurrentLocation is the address of the last loaded package, or the hub when empty.
func (t *Truck) CurrentLocation() Location {
	if t.IsEmpty() {
		return t.Hub
	}
	return t.Packages[len(t.Packages)-1].Location
}

func (t *Truck) MilesTraveled() float64 { return t.milesTraveled }

// Clock returns the truck's current simulated time.
func (t *Truck) Clock() Minutes {
	return t.Start + t.idle + Minutes(t.milesTraveled/t.SpeedMPH*60)
}

// Trip returns the number of routes the truck has started.
func (t *Truck) Trip() int { return t.trip }

// Routes returns the completed trips in order.
func (t *Truck) Routes() []RoutePlan { return slices.Clone(t.routes) }

// WaitUntil idles an empty truck at the hub until the given time.
// It reports whether the clock moved.
func (t *Truck) WaitUntil(at Minutes) (bool, error) {
	if !t.IsEmpty() {
		return false, fmt.Errorf("wait truck %d: %d packages loaded", t.TruckID, len(t.Packages))
	}
	now := t.Clock()
	if at <= now {
		return false, nil
	}
	t.idle += at - now
	return true, nil
}

// RunRoute delivers every loaded package in load order, then returns to the hub.
// Load order alone determines mileage and delivery times.
func (t *Truck) RunRoute(graph DistanceLookup) error {
	if t.IsEmpty() {
		return nil
	}

	t.trip++
	plan := RoutePlan{
		TruckID:  t.TruckID,
		Trip:     t.trip,
		DepartAt: t.Clock(),
	}

	current := t.Hub
	for _, pkg := range t.Packages {
		d, err := graph.DistanceBetween(current, pkg.Location)
		if err != nil {
			return fmt.Errorf("run route: truck %d: %w", t.TruckID, err)
		}
		t.milesTraveled += d
		plan.TotalMiles += d

		if err := pkg.MarkDelivered(t); err != nil {
			return fmt.Errorf("run route: truck %d: %w", t.TruckID, err)
		}

		if n := len(plan.Stops); n > 0 && plan.Stops[n-1].Location == pkg.Location {
			plan.Stops[n-1].PackageIDs = append(plan.Stops[n-1].PackageIDs, pkg.PackageID)
		} else {
			plan.Stops = append(plan.Stops, RouteStop{
				Address:    pkg.Address,
				Location:   pkg.Location,
				ArriveAt:   t.Clock(),
				Miles:      d,
				PackageIDs: []int{pkg.PackageID},
			})
		}
		current = pkg.Location
	}

	back, err := graph.DistanceBetween(current, t.Hub)
	if err != nil {
		return fmt.Errorf("run route: truck %d: return leg: %w", t.TruckID, err)
	}
	t.milesTraveled += back
	plan.TotalMiles += back
	plan.ReturnAt = t.Clock()

	t.Packages = nil
	t.routes = append(t.routes, plan)
	return nil
}
