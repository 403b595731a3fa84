package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// DistanceGraph stores the fixed, symmetric distance in miles between every pair of places.
// The input is a dense matrix, so distances are looked up directly and never searched.
type DistanceGraph struct {
	places []Place
	index  map[Location]int
	edges  map[Location]map[Location]float64
}

func NewDistanceGraph() *DistanceGraph {
	return &DistanceGraph{
		index: make(map[Location]int),
		edges: make(map[Location]map[Location]float64),
	}
}

// AddVertex registers a place. Registering the same location twice is a no-op.
func (g *DistanceGraph) AddVertex(p Place) {
	if _, ok := g.index[p.Key]; ok {
		return
	}
	g.index[p.Key] = len(g.places)
	g.places = append(g.places, p)
	g.edges[p.Key] = make(map[Location]float64)
}

// HasVertex reports whether the location was registered.
func (g *DistanceGraph) HasVertex(loc Location) bool {
	_, ok := g.index[loc]
	return ok
}

// AddEdge records the distance between a and b in both directions.
func (g *DistanceGraph) AddEdge(a, b Location, miles float64) error {
	if !g.HasVertex(a) {
		return fmt.Errorf("add edge: %q: %w", a, ErrLocationNotFound)
	}
	if !g.HasVertex(b) {
		return fmt.Errorf("add edge: %q: %w", b, ErrLocationNotFound)
	}
	if miles < 0 {
		return fmt.Errorf("add edge: %q -> %q: negative distance %v", a, b, miles)
	}

	g.edges[a][b] = miles
	g.edges[b][a] = miles
	return nil
}

// DistanceBetween returns the recorded distance between two locations.
func (g *DistanceGraph) DistanceBetween(from, to Location) (float64, error) {
	row, ok := g.edges[from]
	if !ok {
		return 0, fmt.Errorf("distance between %q and %q: %q: %w", from, to, from, ErrLocationNotFound)
	}
	if from == to {
		return 0, nil
	}

	d, ok := row[to]
	if !ok {
		return 0, fmt.Errorf("distance between %q and %q: %q: %w", from, to, to, ErrLocationNotFound)
	}
	return d, nil
}

// Places returns the registered places in declaration order.
func (g *DistanceGraph) Places() []Place {
	out := make([]Place, len(g.places))
	copy(out, g.places)
	return out
}

// One row of the distance table: a place and its distances to the places declared before it.
type LocationRecord struct {
	Name      string
	Address   string
	Distances []string
}

// BuildGraph creates a graph from distance table rows.
//
// Row i carries the distances to rows 0..i. Rows of a full matrix are accepted; entries past
// the diagonal are ignored since the matrix is symmetric. Blank cells are skipped.
func BuildGraph(records []LocationRecord) (*DistanceGraph, error) {
	g := NewDistanceGraph()
	declared := make([]Place, 0, len(records))

	for i, rec := range records {
		place := NewPlace(rec.Name, rec.Address)
		if place.Key == "" {
			return nil, fmt.Errorf("build graph: row %d: empty address", i+1)
		}
		if g.HasVertex(place.Key) {
			return nil, fmt.Errorf("build graph: row %d: duplicate address %q", i+1, place.Address)
		}
		g.AddVertex(place)
		declared = append(declared, place)

		for j, cell := range rec.Distances {
			if j >= len(declared) {
				break
			}

			cell = strings.TrimSpace(cell)
			if cell == "" {
				continue
			}

			miles, err := strconv.ParseFloat(cell, 64)
			if err != nil {
				return nil, fmt.Errorf("build graph: row %d column %d: %w", i+1, j+1, err)
			}
			if err := g.AddEdge(place.Key, declared[j].Key, miles); err != nil {
				return nil, fmt.Errorf("build graph: row %d: %w", i+1, err)
			}
		}
	}

	return g, nil
}
