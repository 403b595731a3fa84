package services

import (
	"delivery-dispatch-service/internal/domain"
	"fmt"
	"math"
)

// nearestPackage returns the accepted candidate closest to from, or nil when none is accepted.
//
// Candidates are scanned in order and only a strictly shorter distance replaces the
// current best, so the first minimum found wins ties.
func (s *Scheduler) nearestPackage(
	from domain.Location,
	candidates []*domain.Package,
	accept func(*domain.Package) bool,
) (*domain.Package, error) {
	var best *domain.Package
	minMiles := math.Inf(1)

	for _, p := range candidates {
		if accept != nil && !accept(p) {
			continue
		}
		d, err := s.graph.DistanceBetween(from, p.Location)
		if err != nil {
			return nil, fmt.Errorf("nearest package: package %d: %w", p.PackageID, err)
		}
		if d < minMiles {
			minMiles = d
			best = p
		}
	}

	return best, nil
}

// pendingClosure returns the members of p's dependency closure still waiting at the hub.
func pendingClosure(p *domain.Package) []*domain.Package {
	closure := p.Closure()
	out := closure[:0]
	for _, member := range closure {
		if member.Status() == domain.StatusAtHub {
			out = append(out, member)
		}
	}
	return out
}

// loadNearestFirst loads every package in group onto truck, each time taking the one
// nearest the truck's current location. Packages that already left the hub are skipped.
// onLoad runs after each load and may load further packages.
func (s *Scheduler) loadNearestFirst(
	truck *domain.Truck,
	group []*domain.Package,
	phase string,
	onLoad func(loaded *domain.Package, remaining []*domain.Package) error,
) error {
	remaining := make([]*domain.Package, 0, len(group))
	for _, p := range group {
		if p.Status() == domain.StatusAtHub {
			remaining = append(remaining, p)
		}
	}

	for len(remaining) > 0 {
		next, err := s.nearestPackage(truck.CurrentLocation(), remaining, nil)
		if err != nil {
			return fmt.Errorf("load nearest first: truck %d: %w", truck.TruckID, err)
		}

		if err := s.load(truck, next, phase); err != nil {
			return err
		}

		remaining = removePackage(remaining, next)
		if onLoad != nil {
			if err := onLoad(next, remaining); err != nil {
				return err
			}
		}

		// onLoad may have loaded other members.
		kept := remaining[:0]
		for _, p := range remaining {
			if p.Status() == domain.StatusAtHub {
				kept = append(kept, p)
			}
		}
		remaining = kept
	}

	return nil
}

func (s *Scheduler) load(truck *domain.Truck, p *domain.Package, phase string) error {
	if err := truck.Load(p); err != nil {
		return fmt.Errorf("load package %d: %w", p.PackageID, err)
	}
	s.progress++
	s.metrics.ObserveLoad(phase)
	s.logger.Debug("package loaded",
		"phase", phase, "package_id", p.PackageID, "truck_id", truck.TruckID,
		"address", p.Address, "clock", truck.Clock().String())
	return nil
}

func removePackage(list []*domain.Package, p *domain.Package) []*domain.Package {
	out := list[:0]
	for _, q := range list {
		if q != p {
			out = append(out, q)
		}
	}
	return out
}
