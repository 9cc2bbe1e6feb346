package auction

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/jaganpon/auction/go/internal/ledger"
	"github.com/jaganpon/auction/go/internal/models"
	"github.com/jaganpon/auction/go/internal/store"
)

// Engine executes the single state transition "assign player P to team T
// for amount A". Every precondition is checked locally before any network
// effect; on success the backend response is authoritative and the caller
// receives the refreshed tournament state, on failure nothing local has
// changed.
type Engine struct {
	store Store
}

// NewEngine creates an assignment engine over the given backend.
func NewEngine(st Store) *Engine {
	return &Engine{store: st}
}

// Assign validates the bid against the local ledger, submits it as one
// atomic request and refetches the authoritative state. The returned error
// satisfies store.IsConflict when the local view was stale; callers must
// then refresh before the next attempt.
func (e *Engine) Assign(ctx context.Context, l *ledger.Ledger, player models.Player, teamID uuid.UUID, amount decimal.Decimal) (*AssignmentResult, error) {
	team, err := l.ValidateBid(teamID, amount)
	if err != nil {
		return nil, err
	}

	req := store.AssignPlayerRequest{
		TournamentID: player.TournamentID,
		TeamID:       team.ID,
		EmpID:        player.EmpID,
		BidAmount:    amount,
	}
	assigned, err := e.store.AssignPlayer(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("failed to assign player %s: %w", player.EmpID, err)
	}

	// Commit confirmed; the backend is now the only truth worth having.
	tournament, err := e.store.GetTournament(ctx, player.TournamentID)
	if err != nil {
		return nil, fmt.Errorf("assignment committed but refresh failed: %w", err)
	}
	summary, err := e.store.GetAuctionStatus(ctx, player.TournamentID)
	if err != nil {
		return nil, fmt.Errorf("assignment committed but status refresh failed: %w", err)
	}

	result := &AssignmentResult{
		Player:     *assigned,
		BidAmount:  amount,
		Tournament: tournament,
		Summary:    summary,
	}
	if fresh := tournament.TeamByID(team.ID); fresh != nil {
		result.Team = *fresh
	} else {
		result.Team = *team
	}

	log.Info().
		Str("tournament_id", player.TournamentID.String()).
		Str("emp_id", player.EmpID).
		Str("team", result.Team.Name).
		Str("bid_amount", amount.String()).
		Str("remaining_budget", result.Team.RemainingBudget.String()).
		Msg("player assigned")
	return result, nil
}
