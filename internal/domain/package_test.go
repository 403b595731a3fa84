package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPackageNoteDirectives(t *testing.T) {
	t.Run("empty note", func(t *testing.T) {
		p := newTestPackage(t, "1", "1 Alpha St", "84001", "10:30 am", "")
		assert.Equal(t, DefaultStartOfDay, p.AvailableAt())
		assert.Equal(t, "1 Alpha St (84001)", p.Address)
		assert.Equal(t, StatusAtHub, p.Status())
		assert.True(t, p.HasDeadline())
	})

	t.Run("delayed", func(t *testing.T) {
		p := newTestPackage(t, "6", "1 Alpha St", "84001", "10:30 am",
			"Delayed on flight---will not arrive to depot until 9:05 am")
		assert.Equal(t, Minutes(545), p.AvailableAt())
	})

	t.Run("pinned truck", func(t *testing.T) {
		p := newTestPackage(t, "3", "1 Alpha St", "84001", "EOD", "Can only be on truck 2")
		id, ok := p.RequiredTruck()
		assert.True(t, ok)
		assert.Equal(t, 2, id)
		assert.False(t, p.HasDeadline())
	})

	t.Run("delivered with", func(t *testing.T) {
		p := newTestPackage(t, "14", "1 Alpha St", "84001", "10:30 am", "Must be delivered with 15, 19")
		assert.Equal(t, []int{15, 19}, p.DependencyIDs())
	})

	t.Run("first directive wins", func(t *testing.T) {
		p := newTestPackage(t, "2", "1 Alpha St", "84001", "EOD", "On truck 2 after 9:05 am")
		assert.Equal(t, Minutes(545), p.AvailableAt())
		_, ok := p.RequiredTruck()
		assert.False(t, ok)
	})

	t.Run("wrong address", func(t *testing.T) {
		p := newTestPackage(t, "9", "300 State St", "84103", "EOD", "Wrong address listed")
		assert.True(t, p.HasWrongAddress())
		assert.Empty(t, p.Address)
		assert.Empty(t, p.Street)
		assert.Equal(t, DefaultCorrectionTime, p.AvailableAt())

		addr, at := p.CorrectedAddress()
		assert.Equal(t, DefaultCorrectedAddress, addr)
		assert.Equal(t, DefaultCorrectionTime, at)
	})
}

func TestNewPackageRejectsBadRecords(t *testing.T) {
	base := PackageRecord{ID: "1", Street: "1 Alpha St", Zipcode: "84001", Deadline: "EOD", Mass: "2"}

	bad := base
	bad.ID = "x"
	_, err := NewPackage(bad, DefaultIntake())
	assert.Error(t, err)

	bad = base
	bad.Deadline = "tomorrow"
	_, err = NewPackage(bad, DefaultIntake())
	assert.Error(t, err)

	bad = base
	bad.Mass = "heavy"
	_, err = NewPackage(bad, DefaultIntake())
	assert.Error(t, err)
}

func TestPackageIsPriority(t *testing.T) {
	timed := newTestPackage(t, "1", "1 Alpha St", "84001", "10:30 am", "")
	eod := newTestPackage(t, "2", "1 Alpha St", "84001", "EOD", "")
	delayed := newTestPackage(t, "3", "1 Alpha St", "84001", "10:30 am", "arrives 9:05 am")

	assert.True(t, timed.IsPriority(480))
	assert.False(t, eod.IsPriority(480))
	assert.False(t, delayed.IsPriority(480))
	assert.True(t, delayed.IsPriority(545))
}

func TestPackageIsAvailableForFollowsDependencyCycle(t *testing.T) {
	spec := DefaultTruckSpec()
	truck1 := NewTruck(1, spec)
	truck2 := NewTruck(2, spec)

	a := newTestPackage(t, "1", "1 Alpha St", "84001", "EOD", "")
	b := newTestPackage(t, "2", "1 Alpha St", "84001", "EOD", "")
	c := newTestPackage(t, "3", "2 Beta St", "84002", "EOD", "Can only be on truck 2")
	a.LinkDependency(b)
	b.LinkDependency(c)
	c.LinkDependency(a)

	assert.False(t, a.IsAvailableFor(truck1), "pinned dependency blocks truck 1")
	assert.True(t, a.IsAvailableFor(truck2))
	assert.True(t, b.IsAvailableFor(truck2))

	assert.Equal(t, []*Package{a, b, c}, b.Closure())
	assert.Equal(t, []*Package{b, c}, a.Dependencies())
}

func TestPackageIsAvailableForRespectsClockAndAddress(t *testing.T) {
	truck := NewTruck(1, DefaultTruckSpec())
	delayed := newTestPackage(t, "1", "1 Alpha St", "84001", "EOD", "9:05 am")
	wrong := newTestPackage(t, "2", "1 Alpha St", "84001", "EOD", "Wrong address listed")

	assert.False(t, delayed.IsAvailableFor(truck))
	_, err := truck.WaitUntil(545)
	require.NoError(t, err)
	assert.True(t, delayed.IsAvailableFor(truck))

	_, err = truck.WaitUntil(DefaultCorrectionTime)
	require.NoError(t, err)
	assert.False(t, wrong.IsAvailableFor(truck), "wrong address stays ineligible until corrected")
	wrong.UpdateAddress()
	assert.True(t, wrong.IsAvailableFor(truck))
}

func TestPackageTransitions(t *testing.T) {
	g := testGraph(t)
	truck := NewTruck(1, DefaultTruckSpec())
	p := newTestPackage(t, "1", "1 Alpha St", "84001", "EOD", "")

	err := p.MarkDelivered(truck)
	assert.ErrorIs(t, err, ErrInvalidTransition, "cannot skip EN_ROUTE")

	require.NoError(t, truck.Load(p))
	assert.Equal(t, StatusEnRoute, p.Status())
	assert.Equal(t, 1, p.TruckID())

	err = p.MarkEnRoute(truck)
	assert.ErrorIs(t, err, ErrInvalidTransition)

	require.NoError(t, truck.RunRoute(g))
	assert.Equal(t, StatusDelivered, p.Status())

	err = p.MarkDelivered(truck)
	assert.ErrorIs(t, err, ErrInvalidTransition)

	loaded, ok := p.LoadedAt()
	require.True(t, ok)
	delivered, ok := p.DeliveredAt()
	require.True(t, ok)
	assert.Equal(t, DefaultStartOfDay, loaded)
	assert.Equal(t, Minutes(510), delivered)
	assert.Equal(t, 1, p.Trip())
}

func TestPackageMarkEnRouteRejectsWrongTruck(t *testing.T) {
	p := newTestPackage(t, "1", "1 Alpha St", "84001", "EOD", "Can only be on truck 2")
	err := p.MarkEnRoute(NewTruck(1, DefaultTruckSpec()))
	assert.ErrorIs(t, err, ErrWrongTruck)
	assert.Equal(t, StatusAtHub, p.Status())
}

func TestPackageMarkEnRouteRejectsPendingAddress(t *testing.T) {
	p := newTestPackage(t, "1", "1 Alpha St", "84001", "EOD", "Wrong address listed")
	err := p.MarkEnRoute(NewTruck(1, DefaultTruckSpec()))
	assert.ErrorIs(t, err, ErrAddressPending)
}

func TestPackageAddressCorrection(t *testing.T) {
	p := newTestPackage(t, "9", "300 State St", "84103", "EOD", "Wrong address listed")

	assert.False(t, p.CorrectAddressAvailable(DefaultCorrectionTime-0.01))
	assert.True(t, p.CorrectAddressAvailable(DefaultCorrectionTime))

	p.UpdateAddress()
	assert.False(t, p.HasWrongAddress())
	assert.Equal(t, DefaultCorrectedAddress, p.Address)
	assert.Equal(t, LocationOf(DefaultCorrectedAddress), p.Location)
	assert.False(t, p.CorrectAddressAvailable(EndOfDay))

	p.UpdateAddress()
	assert.Equal(t, DefaultCorrectedAddress, p.Address)
}
