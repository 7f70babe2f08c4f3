package errors

import "errors"

var (
	ErrNotFound = errors.New("appointment not found")

	ErrInvalidID = errors.New("invalid appointment ID format")

	// ErrAlreadySent is returned when marking an appointment whose reminder
	// flag is already set.
	ErrAlreadySent = errors.New("reminder already sent for appointment")
)
