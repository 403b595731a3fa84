package services

import (
	"context"
	"delivery-dispatch-service/internal/domain"
	"fmt"
)

// generalRound fills the fleet round-robin until no truck can take another package,
// then runs every route.
func (s *Scheduler) generalRound(ctx context.Context) error {
	if err := s.fillFleet(); err != nil {
		return err
	}
	return s.dispatch(ctx)
}

// fillFleet repeats nearest-package passes over the fleet until a pass loads nothing.
// In each pass every non-full truck takes at most one package together with its closure.
func (s *Scheduler) fillFleet() error {
	for pass := 1; ; pass++ {
		loaded := false

		for _, truck := range s.fleet {
			if truck.IsFull() {
				continue
			}

			accept := func(p *domain.Package) bool {
				if !p.IsAvailableFor(truck) {
					return false
				}
				return len(pendingClosure(p)) <= truck.CapacityRemaining()
			}

			pkg, err := s.nearestPackage(truck.CurrentLocation(), s.packages, accept)
			if err != nil {
				return fmt.Errorf("fill fleet: pass %d: truck %d: %w", pass, truck.TruckID, err)
			}
			if pkg == nil {
				continue
			}

			if err := s.loadNearestFirst(truck, pendingClosure(pkg), phaseGeneral, nil); err != nil {
				return fmt.Errorf("fill fleet: pass %d: %w", pass, err)
			}
			loaded = true
		}

		if !loaded {
			return nil
		}
	}
}
