package domain

import "errors"

// Sentinel errors shared across services. Repositories translate driver
// errors into these; controllers map them to HTTP status codes.
var (
	ErrNotFound     = errors.New("not found")
	ErrForbidden    = errors.New("forbidden")
	ErrInvalidInput = errors.New("invalid input")
)
