package report

import (
	"delivery-dispatch-service/internal/domain"
	"fmt"
	"io"
	"strings"
)

// StatusAt describes where a package stood at time t of a completed run.
func StatusAt(p *domain.Package, t domain.Minutes) string {
	if corrected, at := p.CorrectedAddress(); corrected != "" && t < at {
		return "address pending"
	}
	if t < p.AvailableAt() {
		return "delayed"
	}

	loaded, ok := p.LoadedAt()
	if !ok || t < loaded {
		return "at hub"
	}

	delivered, ok := p.DeliveredAt()
	if !ok || t < delivered {
		return fmt.Sprintf("en route on truck %d", p.TruckID())
	}

	verdict := "on time"
	if !p.DeliveredOnTime() {
		verdict = "late"
	}
	return fmt.Sprintf("delivered at %s %s", delivered, verdict)
}

// addressAt is the address known at time t; wrong-address packages show none until corrected.
func addressAt(p *domain.Package, t domain.Minutes) string {
	if corrected, at := p.CorrectedAddress(); corrected != "" && t < at {
		return "(unknown)"
	}
	return p.Address
}

// Line is a one-line summary of a package at time t.
func Line(p *domain.Package, t domain.Minutes) string {
	return fmt.Sprintf("%3d | %-45s | due %-5s | %s",
		p.PackageID, addressAt(p, t), p.Deadline, StatusAt(p, t))
}

// WritePackage writes the full tracking detail of a package at time t.
func WritePackage(w io.Writer, p *domain.Package, t domain.Minutes) error {
	lines := []string{
		fmt.Sprintf("Package ID: %d", p.PackageID),
		fmt.Sprintf("Current status: %s", StatusAt(p, t)),
		fmt.Sprintf("Package due by: %s", p.Deadline),
		fmt.Sprintf("Package weight: %d", p.Mass),
		"Delivery address:",
		addressAt(p, t),
	}
	// A corrected address is only known as street and zip, so it has no city line.
	if p.City != "" {
		lines = append(lines, fmt.Sprintf("%s, %s %s", p.City, p.State, p.Zipcode))
	}
	if p.Note != "" {
		lines = append(lines, fmt.Sprintf("Note: %s", p.Note))
	}

	_, err := fmt.Fprintln(w, strings.Join(lines, "\n")+"\n")
	return err
}

// WriteTrucks writes mileage and trip history for each truck.
func WriteTrucks(w io.Writer, trucks []*domain.Truck) error {
	total := 0.0
	for _, t := range trucks {
		total += t.MilesTraveled()
		if _, err := fmt.Fprintf(w, "Truck %d traveled %.1f miles, back at hub %s\n",
			t.TruckID, t.MilesTraveled(), t.Clock()); err != nil {
			return err
		}
		for _, r := range t.Routes() {
			if _, err := fmt.Fprintf(w, "  trip %d: %s-%s, %d packages, %d stops, %.1f miles\n",
				r.Trip, r.DepartAt, r.ReturnAt, r.PackageCount(), len(r.Stops), r.TotalMiles); err != nil {
				return err
			}
		}
	}
	_, err := fmt.Fprintf(w, "Total: %.1f miles\n", total)
	return err
}
