package domain

// Represents a single stop in an executed route.
// A RouteStop corresponds to arriving at one address at a simulated time and
// delivering every package loaded consecutively for that address.
type RouteStop struct {
	Address    string
	Location   Location
	ArriveAt   Minutes
	Miles      float64
	PackageIDs []int
}

// Represents one trip of a truck: leaving the hub, delivering in load order, and returning.
// It is a record of what happened and is not modified after the trip completes.
type RoutePlan struct {
	TruckID    int
	Trip       int
	DepartAt   Minutes
	ReturnAt   Minutes
	Stops      []RouteStop
	TotalMiles float64
}

// PackageCount returns the number of packages delivered on the trip.
func (r RoutePlan) PackageCount() int {
	n := 0
	for _, s := range r.Stops {
		n += len(s.PackageIDs)
	}
	return n
}
