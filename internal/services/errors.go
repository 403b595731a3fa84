package services

import "errors"

var (
	// ErrInvalidInput is returned when the package set or distance table cannot be scheduled as given.
	ErrInvalidInput = errors.New("invalid scheduling input")

	// ErrStalled is returned when undelivered packages remain but no truck can ever load them.
	ErrStalled = errors.New("scheduling stalled")
)
