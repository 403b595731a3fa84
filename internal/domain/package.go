package domain

import (
	"fmt"
	"regexp"
	"slices"
	"strconv"
	"strings"
)

// Status is the delivery state of a package. Transitions only move forward.
type Status int

const (
	StatusAtHub Status = iota
	StatusEnRoute
	StatusDelivered
)

func (s Status) String() string {
	switch s {
	case StatusAtHub:
		return "AT_HUB"
	case StatusEnRoute:
		return "EN_ROUTE"
	case StatusDelivered:
		return "DELIVERED"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// DefaultCorrectedAddress replaces the address of wrong-address packages once the correction is known.
const DefaultCorrectedAddress = "410 S State St (84111)"

// One row of the package file, before any parsing.
type PackageRecord struct {
	ID       string
	Street   string
	City     string
	State    string
	Zipcode  string
	Deadline string
	Mass     string
	Note     string
}

// Intake holds the rules applied when a package is created from its record.
type Intake struct {
	StartOfDay       Minutes
	CorrectionTime   Minutes
	CorrectedAddress string
}

func DefaultIntake() Intake {
	return Intake{
		StartOfDay:       DefaultStartOfDay,
		CorrectionTime:   DefaultCorrectionTime,
		CorrectedAddress: DefaultCorrectedAddress,
	}
}

var (
	noteTimePattern  = regexp.MustCompile(`(?i)\d?\d:\d\d\s*[ap]m`)
	noteTruckPattern = regexp.MustCompile(`(?i)truck\s+(\d+)`)
	noteWithPattern  = regexp.MustCompile(`(?i)delivered with`)
	notePackageIDs   = regexp.MustCompile(`\d+`)
)

// Represents a single shipment handled during one scheduling run.
//
// Identity fields are fixed at construction. Delivery state is only changed through
// MarkEnRoute and MarkDelivered, which enforce the AT_HUB -> EN_ROUTE -> DELIVERED order.
type Package struct {
	PackageID int
	Street    string
	City      string
	State     string
	Zipcode   string
	Address   string
	Location  Location
	Mass      int
	Deadline  Minutes
	Note      string

	status        Status
	availableAt   Minutes
	requiredTruck int
	dependencyIDs []int
	dependencies  []*Package
	wrongAddress  bool
	correctedAt   Minutes
	corrected     string

	loadedAt    Minutes
	deliveredAt Minutes
	truckID     int
	trip        int
}

// NewPackage parses a package record and its note.
func NewPackage(rec PackageRecord, in Intake) (*Package, error) {
	id, err := strconv.Atoi(strings.TrimSpace(rec.ID))
	if err != nil || id <= 0 {
		return nil, fmt.Errorf("new package: invalid id %q", rec.ID)
	}

	deadline, err := ParseClock(rec.Deadline)
	if err != nil {
		return nil, fmt.Errorf("new package %d: deadline: %w", id, err)
	}

	mass, err := strconv.Atoi(strings.TrimSpace(rec.Mass))
	if err != nil {
		return nil, fmt.Errorf("new package %d: mass %q: %w", id, rec.Mass, err)
	}

	p := &Package{
		PackageID:   id,
		Street:      strings.TrimSpace(rec.Street),
		City:        strings.TrimSpace(rec.City),
		State:       strings.TrimSpace(rec.State),
		Zipcode:     strings.TrimSpace(rec.Zipcode),
		Mass:        mass,
		Deadline:    deadline,
		Note:        strings.TrimSpace(rec.Note),
		status:      StatusAtHub,
		availableAt: in.StartOfDay,
	}
	p.Address = NormalizeAddress(fmt.Sprintf("%s (%s)", p.Street, p.Zipcode))
	p.Location = LocationOf(p.Address)

	if err := p.parseNote(in); err != nil {
		return nil, fmt.Errorf("new package %d: %w", id, err)
	}

	return p, nil
}

// parseNote applies the first directive that matches the note.
func (p *Package) parseNote(in Intake) error {
	note := p.Note
	switch {
	case note == "":
	case noteTimePattern.MatchString(note):
		at, err := ParseClock(noteTimePattern.FindString(note))
		if err != nil {
			return fmt.Errorf("note: %w", err)
		}
		p.availableAt = at
	case noteTruckPattern.MatchString(note):
		n, err := strconv.Atoi(noteTruckPattern.FindStringSubmatch(note)[1])
		if err != nil {
			return fmt.Errorf("note: truck number: %w", err)
		}
		p.requiredTruck = n
	case noteWithPattern.MatchString(note):
		for _, raw := range notePackageIDs.FindAllString(note, -1) {
			n, err := strconv.Atoi(raw)
			if err != nil {
				return fmt.Errorf("note: package id %q: %w", raw, err)
			}
			if n == p.PackageID || slices.Contains(p.dependencyIDs, n) {
				continue
			}
			p.dependencyIDs = append(p.dependencyIDs, n)
		}
	default:
		p.Street, p.City, p.State, p.Zipcode = "", "", "", ""
		p.Address = ""
		p.Location = ""
		p.wrongAddress = true
		p.availableAt = in.CorrectionTime
		p.correctedAt = in.CorrectionTime
		p.corrected = NormalizeAddress(in.CorrectedAddress)
	}
	return nil
}

func (p *Package) Status() Status { return p.status }

func (p *Package) AvailableAt() Minutes { return p.availableAt }

// RequiredTruck returns the truck the package is pinned to, if any.
func (p *Package) RequiredTruck() (int, bool) { return p.requiredTruck, p.requiredTruck != 0 }

// DependencyIDs returns the package ids named by the note.
func (p *Package) DependencyIDs() []int { return slices.Clone(p.dependencyIDs) }

// Dependencies returns the packages linked to this one, ordered by id.
func (p *Package) Dependencies() []*Package { return slices.Clone(p.dependencies) }

func (p *Package) HasWrongAddress() bool { return p.wrongAddress }

// CorrectedAddress returns the address a wrong-address package receives and when it becomes known.
func (p *Package) CorrectedAddress() (string, Minutes) { return p.corrected, p.correctedAt }

// LoadedAt returns the time the package was loaded, once it has left the hub.
func (p *Package) LoadedAt() (Minutes, bool) { return p.loadedAt, p.status != StatusAtHub }

// DeliveredAt returns the delivery time, once delivered.
func (p *Package) DeliveredAt() (Minutes, bool) { return p.deliveredAt, p.status == StatusDelivered }

// TruckID returns the truck carrying or having delivered the package, or 0.
func (p *Package) TruckID() int { return p.truckID }

// Trip returns the delivering truck's trip number, or 0 before delivery.
func (p *Package) Trip() int { return p.trip }

func (p *Package) IsDelivered() bool { return p.status == StatusDelivered }

func (p *Package) HasDeadline() bool { return p.Deadline < EndOfDay }

// DeliveredOnTime reports whether the package was delivered before its deadline.
func (p *Package) DeliveredOnTime() bool {
	return p.status == StatusDelivered && p.deliveredAt < p.Deadline
}

// LinkDependency records a symmetric co-delivery requirement between p and other.
func (p *Package) LinkDependency(other *Package) {
	if other == nil || other == p {
		return
	}
	p.addDependency(other)
	other.addDependency(p)
}

func (p *Package) addDependency(other *Package) {
	i, found := slices.BinarySearchFunc(p.dependencies, other.PackageID, func(d *Package, id int) int {
		return d.PackageID - id
	})
	if found {
		return
	}
	p.dependencies = slices.Insert(p.dependencies, i, other)
}

// Closure returns the package and every package transitively linked to it, ordered by id.
func (p *Package) Closure() []*Package {
	seen := map[*Package]struct{}{p: {}}
	out := []*Package{p}
	for i := 0; i < len(out); i++ {
		for _, d := range out[i].dependencies {
			if _, ok := seen[d]; ok {
				continue
			}
			seen[d] = struct{}{}
			out = append(out, d)
		}
	}

	slices.SortFunc(out, func(a, b *Package) int { return a.PackageID - b.PackageID })
	return out
}

// IsPriority reports whether the package is waiting at the hub with a timed deadline
// and is already available at time t.
func (p *Package) IsPriority(t Minutes) bool {
	return p.status == StatusAtHub && p.Deadline < EndOfDay && p.availableAt <= t
}

// IsAvailableFor reports whether the package and everything it must travel with
// could be loaded onto truck right now.
func (p *Package) IsAvailableFor(truck *Truck) bool {
	visited := map[*Package]struct{}{p: {}}
	stack := []*Package{p}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if !cur.loadableOnto(truck) {
			return false
		}

		for _, d := range cur.dependencies {
			if _, ok := visited[d]; ok {
				continue
			}
			visited[d] = struct{}{}
			stack = append(stack, d)
		}
	}
	return true
}

func (p *Package) loadableOnto(truck *Truck) bool {
	if p.wrongAddress {
		return false
	}
	if p.availableAt > truck.Clock() {
		return false
	}
	if p.status != StatusAtHub {
		return false
	}
	if p.requiredTruck != 0 && p.requiredTruck != truck.TruckID {
		return false
	}
	return true
}

// MarkEnRoute records that the package was loaded onto truck.
func (p *Package) MarkEnRoute(truck *Truck) error {
	if p.status != StatusAtHub {
		return fmt.Errorf("mark package %d en route: status %s: %w", p.PackageID, p.status, ErrInvalidTransition)
	}
	if p.requiredTruck != 0 && p.requiredTruck != truck.TruckID {
		return fmt.Errorf(
			"mark package %d en route: requires truck %d, got truck %d: %w",
			p.PackageID, p.requiredTruck, truck.TruckID, ErrWrongTruck,
		)
	}
	if p.wrongAddress {
		return fmt.Errorf("mark package %d en route: %w", p.PackageID, ErrAddressPending)
	}

	p.loadedAt = truck.Clock()
	p.truckID = truck.TruckID
	p.status = StatusEnRoute
	return nil
}

// MarkDelivered records that truck delivered the package at its current clock.
func (p *Package) MarkDelivered(truck *Truck) error {
	if p.status != StatusEnRoute {
		return fmt.Errorf("mark package %d delivered: status %s: %w", p.PackageID, p.status, ErrInvalidTransition)
	}
	if p.truckID != truck.TruckID {
		return fmt.Errorf(
			"mark package %d delivered: loaded on truck %d, delivered by truck %d: %w",
			p.PackageID, p.truckID, truck.TruckID, ErrInvalidTransition,
		)
	}

	p.deliveredAt = truck.Clock()
	p.trip = truck.Trip()
	p.status = StatusDelivered
	return nil
}

// CorrectAddressAvailable reports whether a wrong-address package can be corrected at time t.
func (p *Package) CorrectAddressAvailable(t Minutes) bool {
	return p.wrongAddress && p.correctedAt <= t
}

// UpdateAddress applies the corrected address. Calling it again is a no-op.
func (p *Package) UpdateAddress() {
	if !p.wrongAddress {
		return
	}
	p.wrongAddress = false
	p.Address = p.corrected
	p.Location = LocationOf(p.corrected)
}
