package services

import (
	"cmp"
	"context"
	"delivery-dispatch-service/internal/domain"
	"delivery-dispatch-service/internal/platform/logging"
	"delivery-dispatch-service/internal/platform/metrics"
	"delivery-dispatch-service/internal/platform/obs"
	"fmt"
	"log/slog"
	"slices"

	"github.com/google/uuid"
)

// DefaultTrucks is the fleet size used when no configuration is given.
const DefaultTrucks = 2

// Options configures a scheduling run.
type Options struct {
	Trucks  int
	Truck   domain.TruckSpec
	Logger  *slog.Logger
	Metrics *metrics.Metrics
}

func DefaultOptions() Options {
	return Options{
		Trucks: DefaultTrucks,
		Truck:  domain.DefaultTruckSpec(),
	}
}

// Scheduler owns the packages, trucks and distance graph for the lifetime of one run.
// It is not safe for concurrent use and must not be reused after Run returns.
type Scheduler struct {
	graph *domain.DistanceGraph

	packages   []*domain.Package
	byID       map[int]*domain.Package
	byAddress  map[domain.Location][]*domain.Package
	dependents map[int][]*domain.Package
	pending    []*domain.Package // wrong-address packages not yet corrected

	trucks []*domain.Truck // by id
	fleet  []*domain.Truck // dispatch order, re-sorted by mileage each priority attempt

	// progress counts loads and address corrections; a round that leaves it unchanged is stalled.
	progress int

	logger  *slog.Logger
	metrics *metrics.Metrics
}

// New ingests the packages and validates them against the graph and fleet.
func New(packages []*domain.Package, graph *domain.DistanceGraph, opts Options) (*Scheduler, error) {
	if graph == nil {
		return nil, fmt.Errorf("new scheduler: graph is nil: %w", ErrInvalidInput)
	}
	if opts.Trucks <= 0 {
		return nil, fmt.Errorf("new scheduler: fleet size %d: %w", opts.Trucks, ErrInvalidInput)
	}
	if opts.Truck.Capacity <= 0 || opts.Truck.SpeedMPH <= 0 {
		return nil, fmt.Errorf("new scheduler: truck capacity %d, speed %v: %w",
			opts.Truck.Capacity, opts.Truck.SpeedMPH, ErrInvalidInput)
	}
	if !graph.HasVertex(opts.Truck.Hub) {
		return nil, fmt.Errorf("new scheduler: hub %q not in distance graph: %w", opts.Truck.Hub, ErrInvalidInput)
	}

	logger := opts.Logger
	if logger == nil {
		logger = logging.Discard()
	}

	s := &Scheduler{
		graph:   graph,
		logger:  logger,
		metrics: opts.Metrics,
	}

	for i := range opts.Trucks {
		s.trucks = append(s.trucks, domain.NewTruck(i+1, opts.Truck))
	}
	s.fleet = slices.Clone(s.trucks)

	if err := s.ingest(packages); err != nil {
		return nil, fmt.Errorf("new scheduler: %w", err)
	}
	if err := s.validate(); err != nil {
		return nil, fmt.Errorf("new scheduler: %w", err)
	}

	return s, nil
}

// Run dispatches trucks until every package is delivered.
// The run id is taken from ctx when the caller already assigned one.
func (s *Scheduler) Run(ctx context.Context) (_ *Result, err error) {
	runID := obs.RunID(ctx)
	if runID == "" {
		runID = uuid.NewString()
		ctx = obs.WithRunID(ctx, runID)
	}
	defer obs.Time(ctx, s.logger, "scheduler.Run")(&err)

	s.logger.Info("scheduling run started",
		"run_id", runID, "packages", len(s.packages), "trucks", len(s.trucks))

	for round := 1; !s.allDelivered(); round++ {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("run: round %d: %w", round, err)
		}

		before := s.progress

		if err := s.priorityPhase(ctx); err != nil {
			return nil, fmt.Errorf("run: round %d: priority phase: %w", round, err)
		}
		if s.allDelivered() {
			break
		}

		if err := s.generalRound(ctx); err != nil {
			return nil, fmt.Errorf("run: round %d: general phase: %w", round, err)
		}

		if s.progress == before && !s.allDelivered() {
			if err := s.waitForNextAvailability(ctx); err != nil {
				return nil, fmt.Errorf("run: round %d: %w", round, err)
			}
		}
	}

	res := &Result{
		RunID:    runID,
		Packages: slices.Clone(s.packages),
		Trucks:   slices.Clone(s.trucks),
	}
	s.logger.Info("scheduling run finished", "run_id", runID, "total_miles", res.TotalMiles())
	return res, nil
}

// Run schedules packages over graph with the default fleet: two trucks of capacity 16
// leaving the hub at 8:00 am and averaging 18 mph.
func Run(ctx context.Context, packages []*domain.Package, graph *domain.DistanceGraph) (*Result, error) {
	s, err := New(packages, graph, DefaultOptions())
	if err != nil {
		return nil, err
	}
	return s.Run(ctx)
}

func (s *Scheduler) allDelivered() bool {
	for _, p := range s.packages {
		if !p.IsDelivered() {
			return false
		}
	}
	return true
}

func (s *Scheduler) fleetEmpty() bool {
	for _, t := range s.fleet {
		if !t.IsEmpty() {
			return false
		}
	}
	return true
}

// sortFleetByMileage orders the fleet so the least-traveled truck loads first.
// The order is stable and persists until the next sort.
func (s *Scheduler) sortFleetByMileage() {
	slices.SortStableFunc(s.fleet, func(a, b *domain.Truck) int {
		return cmp.Compare(a.MilesTraveled(), b.MilesTraveled())
	})
}

// Result is the outcome of a completed run.
type Result struct {
	RunID    string
	Packages []*domain.Package // ordered by id
	Trucks   []*domain.Truck   // ordered by id
}

// TotalMiles is the combined mileage of the fleet.
func (r *Result) TotalMiles() float64 {
	total := 0.0
	for _, t := range r.Trucks {
		total += t.MilesTraveled()
	}
	return total
}

// Package returns the package with the given id.
func (r *Result) Package(id int) (*domain.Package, error) {
	i, found := slices.BinarySearchFunc(r.Packages, id, func(p *domain.Package, id int) int {
		return cmp.Compare(p.PackageID, id)
	})
	if !found {
		return nil, fmt.Errorf("package %d: %w", id, domain.ErrPackageNotFound)
	}
	return r.Packages[i], nil
}
