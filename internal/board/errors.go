package board

import "errors"

var (
	ErrValidation = errors.New("validation error")
	ErrForbidden  = errors.New("forbidden operation")
	ErrNotFound   = errors.New("not found")
	// ErrStorage marks a failed write to the local store. The in-memory change
	// is kept; only the first failure in a row is returned to callers.
	ErrStorage  = errors.New("storage unavailable")
	ErrCanceled = errors.New("operation canceled")
)
