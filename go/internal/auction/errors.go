package auction

import "errors"

// Session-level failures. All are scoped to a single operation and leave
// the session resumable.
var (
	ErrNoTournamentSelected = errors.New("select a tournament")
	ErrNoUnassignedPlayers  = errors.New("no unassigned players in this tournament")
	ErrNotInProgress        = errors.New("auction has not been started")
	ErrNoCurrentPlayer      = errors.New("no player is up for bidding")
	ErrAssignmentInFlight   = errors.New("an assignment is already in progress")
)
