package services

import (
	"cmp"
	"delivery-dispatch-service/internal/domain"
	"fmt"
	"slices"
)

// ingest indexes packages by id and address, then resolves the symmetric dependency sets.
func (s *Scheduler) ingest(packages []*domain.Package) error {
	s.packages = slices.Clone(packages)
	slices.SortStableFunc(s.packages, func(a, b *domain.Package) int {
		return cmp.Compare(a.PackageID, b.PackageID)
	})

	s.byID = make(map[int]*domain.Package, len(s.packages))
	s.byAddress = make(map[domain.Location][]*domain.Package)
	s.dependents = make(map[int][]*domain.Package)

	for _, p := range s.packages {
		if p == nil {
			return fmt.Errorf("ingest: nil package: %w", ErrInvalidInput)
		}
		if _, dup := s.byID[p.PackageID]; dup {
			return fmt.Errorf("ingest: duplicate package id %d: %w", p.PackageID, ErrInvalidInput)
		}
		s.byID[p.PackageID] = p

		if p.HasWrongAddress() {
			s.pending = append(s.pending, p)
			continue
		}
		s.byAddress[p.Location] = append(s.byAddress[p.Location], p)
	}

	for _, p := range s.packages {
		for _, id := range p.DependencyIDs() {
			if _, ok := s.byID[id]; !ok {
				return fmt.Errorf("ingest: package %d depends on unknown package %d: %w",
					p.PackageID, id, ErrInvalidInput)
			}
			s.dependents[id] = append(s.dependents[id], p)
		}
	}

	// Named dependencies first, then every package that names this one.
	for _, p := range s.packages {
		for _, id := range p.DependencyIDs() {
			p.LinkDependency(s.byID[id])
		}
	}
	for _, p := range s.packages {
		for _, d := range s.dependents[p.PackageID] {
			p.LinkDependency(d)
		}
	}

	return nil
}

// validate rejects inputs the scheduler could never complete.
func (s *Scheduler) validate() error {
	fleetSize := len(s.trucks)
	capacity := s.trucks[0].Capacity

	for _, p := range s.packages {
		if truck, ok := p.RequiredTruck(); ok && (truck < 1 || truck > fleetSize) {
			return fmt.Errorf("validate: package %d requires truck %d, fleet has %d: %w",
				p.PackageID, truck, fleetSize, ErrInvalidInput)
		}

		loc := p.Location
		if p.HasWrongAddress() {
			corrected, _ := p.CorrectedAddress()
			loc = domain.LocationOf(corrected)
		}
		if !s.graph.HasVertex(loc) {
			return fmt.Errorf("validate: package %d address %q not in distance graph: %w",
				p.PackageID, loc, ErrInvalidInput)
		}

		closure := p.Closure()
		if len(closure) > capacity {
			return fmt.Errorf("validate: package %d must travel with %d packages, truck capacity is %d: %w",
				p.PackageID, len(closure), capacity, ErrInvalidInput)
		}

		pin := 0
		for _, member := range closure {
			truck, ok := member.RequiredTruck()
			if !ok {
				continue
			}
			if pin != 0 && pin != truck {
				return fmt.Errorf("validate: package %d must travel with packages pinned to trucks %d and %d: %w",
					p.PackageID, pin, truck, ErrInvalidInput)
			}
			pin = truck
		}
	}

	return nil
}
