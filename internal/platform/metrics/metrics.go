package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the collectors for one scheduling run on a dedicated registry.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	Registry *prometheus.Registry

	// PackagesLoaded counts loads by dispatch phase.
	PackagesLoaded *prometheus.CounterVec
	// RoutesRun counts completed trips by truck.
	RoutesRun *prometheus.CounterVec
	// TruckMiles is the cumulative mileage per truck.
	TruckMiles *prometheus.GaugeVec
	// RouteMiles records the length of each trip.
	RouteMiles prometheus.Histogram
	// AddressCorrections counts wrong-address packages given their corrected address.
	AddressCorrections prometheus.Counter
	// IdleWaits counts rounds where trucks idled at the hub.
	IdleWaits prometheus.Counter
}

func New() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		PackagesLoaded: prometheus.NewCounterVec(
			prometheus.CounterOpts{Name: "dispatch_packages_loaded_total", Help: "Packages loaded onto trucks by phase."},
			[]string{"phase"},
		),
		RoutesRun: prometheus.NewCounterVec(
			prometheus.CounterOpts{Name: "dispatch_routes_total", Help: "Routes executed by truck."},
			[]string{"truck"},
		),
		TruckMiles: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{Name: "dispatch_truck_miles", Help: "Cumulative miles traveled by truck."},
			[]string{"truck"},
		),
		RouteMiles: prometheus.NewHistogram(
			prometheus.HistogramOpts{Name: "dispatch_route_miles", Help: "Miles per executed route.", Buckets: []float64{5, 10, 20, 30, 40, 60, 80}},
		),
		AddressCorrections: prometheus.NewCounter(
			prometheus.CounterOpts{Name: "dispatch_address_corrections_total", Help: "Wrong-address packages corrected."},
		),
		IdleWaits: prometheus.NewCounter(
			prometheus.CounterOpts{Name: "dispatch_idle_waits_total", Help: "Rounds where trucks idled at the hub waiting for packages."},
		),
	}

	m.Registry.MustRegister(
		m.PackagesLoaded,
		m.RoutesRun,
		m.TruckMiles,
		m.RouteMiles,
		m.AddressCorrections,
		m.IdleWaits,
	)
	return m
}

func (m *Metrics) ObserveLoad(phase string) {
	if m == nil {
		return
	}
	m.PackagesLoaded.WithLabelValues(phase).Inc()
}

func (m *Metrics) ObserveRoute(truckID int, routeMiles, totalMiles float64) {
	if m == nil {
		return
	}
	truck := strconv.Itoa(truckID)
	m.RoutesRun.WithLabelValues(truck).Inc()
	m.TruckMiles.WithLabelValues(truck).Set(totalMiles)
	m.RouteMiles.Observe(routeMiles)
}

func (m *Metrics) ObserveCorrection() {
	if m == nil {
		return
	}
	m.AddressCorrections.Inc()
}

func (m *Metrics) ObserveWait() {
	if m == nil {
		return
	}
	m.IdleWaits.Inc()
}

// WriteTextfile writes the registry in the Prometheus text format.
func (m *Metrics) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, m.Registry)
}
