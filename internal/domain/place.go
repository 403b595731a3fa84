package domain

import (
	"regexp"
	"strings"
)

// Location is the canonical key for a physical place.
// Places and raw address strings that refer to the same address produce the same Location.
type Location string

// HubAddress is the address used for the hub in distance tables unless configured otherwise.
const HubAddress = "HUB"

var directionPattern = regexp.MustCompile(`(?i)\b(north|south|east|west)\b`)

// NormalizeAddress produces the display form of an address: trimmed, single-spaced,
// with directional words abbreviated to N/S/E/W.
func NormalizeAddress(address string) string {
	abbreviated := directionPattern.ReplaceAllStringFunc(address, func(w string) string {
		return strings.ToUpper(w[:1])
	})
	return strings.Join(strings.Fields(abbreviated), " ")
}

// LocationOf returns the canonical key for a raw address string.
func LocationOf(address string) Location {
	return Location(strings.ToUpper(NormalizeAddress(address)))
}

// Immutable named location in the distance table.
type Place struct {
	Name    string
	Address string
	Key     Location
}

func NewPlace(name, address string) Place {
	normalized := NormalizeAddress(address)
	return Place{
		Name:    strings.TrimSpace(name),
		Address: normalized,
		Key:     LocationOf(normalized),
	}
}

func (p Place) String() string { return p.Address }
