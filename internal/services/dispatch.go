package services

import (
	"context"
	"delivery-dispatch-service/internal/domain"
	"delivery-dispatch-service/internal/platform/obs"
	"fmt"
	"math"
)

// dispatch runs every truck's route in fleet order. After each route, wrong-address
// packages whose correction is known by that truck's clock are corrected.
func (s *Scheduler) dispatch(ctx context.Context) error {
	for _, truck := range s.fleet {
		if err := ctx.Err(); err != nil {
			return err
		}

		if !truck.IsEmpty() {
			before := truck.MilesTraveled()
			if err := truck.RunRoute(s.graph); err != nil {
				return fmt.Errorf("dispatch: %w", err)
			}

			routeMiles := truck.MilesTraveled() - before
			s.metrics.ObserveRoute(truck.TruckID, routeMiles, truck.MilesTraveled())
			s.logger.Info("route complete",
				"truck_id", truck.TruckID, "trip", truck.Trip(),
				"miles", routeMiles, "return_at", truck.Clock().String())
		}

		s.applyCorrections(truck.Clock())
	}
	return nil
}

// applyCorrections restores the address of every pending package correctable at t.
func (s *Scheduler) applyCorrections(t domain.Minutes) {
	kept := s.pending[:0]
	for _, p := range s.pending {
		if !p.CorrectAddressAvailable(t) {
			kept = append(kept, p)
			continue
		}

		p.UpdateAddress()
		s.byAddress[p.Location] = append(s.byAddress[p.Location], p)
		s.progress++
		s.metrics.ObserveCorrection()
		s.logger.Info("address corrected",
			"package_id", p.PackageID, "address", p.Address, "at", t.String())
	}
	s.pending = kept
}

// waitForNextAvailability idles trucks at the hub until the earliest time an undelivered
// package becomes available to one of them. It fails with ErrStalled when no such time exists.
func (s *Scheduler) waitForNextAvailability(ctx context.Context) error {
	earliestClock := domain.Minutes(math.Inf(1))
	for _, t := range s.fleet {
		earliestClock = min(earliestClock, t.Clock())
	}

	next := domain.Minutes(math.Inf(1))
	var stuck []int
	for _, p := range s.packages {
		if p.IsDelivered() {
			continue
		}
		stuck = append(stuck, p.PackageID)
		if at := p.AvailableAt(); at > earliestClock {
			next = min(next, at)
		}
	}

	if math.IsInf(float64(next), 1) {
		return fmt.Errorf("wait for next availability: packages %v cannot be loaded: %w", stuck, ErrStalled)
	}

	for _, t := range s.fleet {
		moved, err := t.WaitUntil(next)
		if err != nil {
			return fmt.Errorf("wait for next availability: %w", err)
		}
		if moved {
			s.logger.Debug("truck idle at hub", "truck_id", t.TruckID, "until", next.String())
		}
	}

	s.metrics.ObserveWait()
	s.logger.Info("fleet waiting for packages", "run_id", obs.RunID(ctx), "until", next.String(), "undelivered", len(stuck))
	return nil
}
