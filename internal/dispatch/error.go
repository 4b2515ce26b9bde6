package dispatch

import "errors"

var (
	// ErrNotAdmitted is an error that occurs when a submission's context
	// expires before the work was admitted into the worker pool.
	ErrNotAdmitted = errors.New("operation was not admitted for dispatch")
)
