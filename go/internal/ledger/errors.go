package ledger

import "errors"

// Validation failures caught locally, before any request reaches the
// backend.
var (
	ErrNoTeamSelected     = errors.New("no team selected")
	ErrInvalidBidAmount   = errors.New("bid amount must be a positive number")
	ErrInsufficientBudget = errors.New("insufficient budget")
)
