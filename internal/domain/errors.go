package domain

import "errors"

var (
	// ErrTruckFull is returned when a package is loaded onto a truck with no remaining capacity.
	ErrTruckFull = errors.New("truck is at full capacity")

	// ErrInvalidTransition is returned when a package is moved out of order through its lifecycle.
	ErrInvalidTransition = errors.New("invalid package status transition")

	// ErrWrongTruck is returned when a package pinned to one truck is loaded onto another.
	ErrWrongTruck = errors.New("package is pinned to a different truck")

	// ErrAddressPending is returned when a wrong-address package is loaded before its correction.
	ErrAddressPending = errors.New("package address has not been corrected")

	// ErrLocationNotFound is returned for distance lookups on an unregistered location.
	ErrLocationNotFound = errors.New("location not found")

	// ErrPackageNotFound is returned when a package id is not part of the run.
	ErrPackageNotFound = errors.New("package not found")
)
