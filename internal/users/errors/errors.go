package errors

import "errors"

var (
	ErrNotFound = errors.New("user profile not found")

	ErrInvalidEmail = errors.New("invalid email address")
)
