package store

import "errors"

// Backend failure taxonomy. Conflict errors mean the caller's cached view
// was stale and must be refreshed before retrying; ErrUnavailable covers
// transient transport failures that left no state behind.
var (
	ErrNotFound              = errors.New("not found")
	ErrPlayerAlreadyAssigned = errors.New("player already assigned")
	ErrInsufficientBudget    = errors.New("insufficient budget")
	ErrInvalidRequest        = errors.New("invalid request")
	ErrUnavailable           = errors.New("auction backend unavailable")
)

// IsConflict reports whether err means the backend rejected the operation
// because the caller's local state had gone stale.
func IsConflict(err error) bool {
	return errors.Is(err, ErrPlayerAlreadyAssigned) || errors.Is(err, ErrInsufficientBudget)
}
