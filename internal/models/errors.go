package models

import "errors"

// Domain error kinds. The API layer maps these onto HTTP statuses; nothing
// in the state layer panics or throws.
var (
	// ErrNotFound means a lookup by id matched nothing.
	ErrNotFound = errors.New("not found")

	// ErrValidation means required input was missing or malformed.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidTransition means an order status change would regress the
	// lifecycle or skip into an unreachable state.
	ErrInvalidTransition = errors.New("invalid status transition")
)
