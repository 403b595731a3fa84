package services

import (
	"context"
	"delivery-dispatch-service/internal/domain"
	"fmt"
)

const (
	phasePriority = "priority"
	phaseAffinity = "affinity"
	phaseGeneral  = "general"
)

// priorityPhase loads deadline packages and runs routes until an attempt leaves every truck empty.
func (s *Scheduler) priorityPhase(ctx context.Context) error {
	for attempt := 1; ; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		if err := s.loadPriority(); err != nil {
			return fmt.Errorf("attempt %d: %w", attempt, err)
		}
		if s.fleetEmpty() {
			return nil
		}

		if err := s.dispatch(ctx); err != nil {
			return fmt.Errorf("attempt %d: %w", attempt, err)
		}
	}
}

// loadPriority fills each truck, least-traveled first, with the nearest deadline packages
// it can take. A package whose closure does not fit is left for a later attempt.
func (s *Scheduler) loadPriority() error {
	s.sortFleetByMileage()

	for _, truck := range s.fleet {
		skipped := make(map[*domain.Package]struct{})
		accept := func(p *domain.Package) bool {
			if _, ok := skipped[p]; ok {
				return false
			}
			return p.IsPriority(truck.Clock()) && p.IsAvailableFor(truck)
		}

		for !truck.IsFull() {
			pkg, err := s.nearestPackage(truck.CurrentLocation(), s.packages, accept)
			if err != nil {
				return fmt.Errorf("load priority: truck %d: %w", truck.TruckID, err)
			}
			if pkg == nil {
				break
			}

			closure := pendingClosure(pkg)
			if len(closure) > truck.CapacityRemaining() {
				skipped[pkg] = struct{}{}
				continue
			}

			affinity := func(loaded *domain.Package, remaining []*domain.Package) error {
				return s.loadSameAddress(truck, loaded, len(remaining))
			}
			if err := s.loadNearestFirst(truck, closure, phasePriority, affinity); err != nil {
				return fmt.Errorf("load priority: %w", err)
			}
		}
	}

	return nil
}

// loadSameAddress co-loads packages delivered to the same address as loaded while capacity
// allows, keeping reserve slots free for the rest of the group being loaded.
// Each co-loaded package brings its whole closure, or is not loaded at all.
func (s *Scheduler) loadSameAddress(truck *domain.Truck, loaded *domain.Package, reserve int) error {
	for _, p := range s.byAddress[loaded.Location] {
		if truck.CapacityRemaining() <= reserve {
			return nil
		}
		if p == loaded || !p.IsAvailableFor(truck) {
			continue
		}

		closure := pendingClosure(p)
		if len(closure) > truck.CapacityRemaining()-reserve {
			continue
		}

		if err := s.load(truck, p, phaseAffinity); err != nil {
			return fmt.Errorf("load same address: %w", err)
		}
		rest := removePackage(closure, p)
		if err := s.loadNearestFirst(truck, rest, phaseAffinity, nil); err != nil {
			return fmt.Errorf("load same address: %w", err)
		}
	}
	return nil
}
