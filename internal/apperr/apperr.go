package apperr

import "errors"

var (
	// ErrNotFound is a generic sentinel for missing resources.
	ErrNotFound = errors.New("not found")
	// ErrInvalidArgument is a generic sentinel for invalid input.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrUpstream marks failures of an external AI/weather call.
	ErrUpstream = errors.New("upstream unavailable")
	// ErrDuplicate maps unique-constraint violations on daily rows.
	ErrDuplicate = errors.New("duplicate row")
)
