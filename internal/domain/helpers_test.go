package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// testGraph builds HUB, A, B with HUB-A=9, HUB-B=18, A-B=4.5.
func testGraph(t *testing.T) *DistanceGraph {
	t.Helper()
	g, err := BuildGraph([]LocationRecord{
		{Name: "Hub", Address: HubAddress, Distances: []string{"0"}},
		{Name: "Alpha", Address: "1 Alpha St (84001)", Distances: []string{"9", "0"}},
		{Name: "Beta", Address: "2 Beta St (84002)", Distances: []string{"18", "4.5", "0"}},
	})
	require.NoError(t, err)
	return g
}

func newTestPackage(t *testing.T, id, street, zip, deadline, note string) *Package {
	t.Helper()
	p, err := NewPackage(PackageRecord{
		ID:       id,
		Street:   street,
		City:     "Salt Lake City",
		State:    "UT",
		Zipcode:  zip,
		Deadline: deadline,
		Mass:     "5",
		Note:     note,
	}, DefaultIntake())
	require.NoError(t, err)
	return p
}
