package ledger

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jaganpon/auction/go/internal/models"
)

// Ledger is the local view of team budgets used to validate a bid before
// the backend is asked to commit it. It is rebuilt wholesale from backend
// data and never debited speculatively; the backend response is the only
// thing that changes a budget.
type Ledger struct {
	teams []models.Team
}

// New builds a ledger over the given teams. The slice is copied.
func New(teams []models.Team) *Ledger {
	l := &Ledger{teams: make([]models.Team, len(teams))}
	copy(l.teams, teams)
	return l
}

// Teams returns the teams in backend order.
func (l *Ledger) Teams() []models.Team {
	out := make([]models.Team, len(l.teams))
	copy(out, l.teams)
	return out
}

// Team returns the team with the given id, or nil.
func (l *Ledger) Team(id uuid.UUID) *models.Team {
	for i := range l.teams {
		if l.teams[i].ID == id {
			return &l.teams[i]
		}
	}
	return nil
}

// CanAfford reports whether amount is a positive bid within the team's
// remaining budget.
func CanAfford(team *models.Team, amount decimal.Decimal) bool {
	return amount.IsPositive() && amount.LessThanOrEqual(team.RemainingBudget)
}

// ValidateBid performs every local check for assigning a bid to a team:
// the team must exist, the amount must be a positive number, and the team
// must be able to afford it. The returned error quotes the exact remaining
// budget on an insufficient-budget failure.
func (l *Ledger) ValidateBid(teamID uuid.UUID, amount decimal.Decimal) (*models.Team, error) {
	if teamID == uuid.Nil {
		return nil, ErrNoTeamSelected
	}
	team := l.Team(teamID)
	if team == nil {
		return nil, fmt.Errorf("%w: team %s not in tournament", ErrNoTeamSelected, teamID)
	}
	if !amount.IsPositive() {
		return nil, ErrInvalidBidAmount
	}
	if !CanAfford(team, amount) {
		return team, fmt.Errorf("%w: %s has only ₹%s remaining",
			ErrInsufficientBudget, team.Name, team.RemainingBudget.String())
	}
	return team, nil
}

// CheckInvariant verifies that every team's remaining budget equals its
// total budget minus the sum of its players' bids and is not negative.
// It is used by tests and by the in-memory backend's self checks.
func CheckInvariant(teams []models.Team) error {
	for i := range teams {
		team := &teams[i]
		spent := decimal.Zero
		for _, p := range team.Players {
			spent = spent.Add(p.BidAmount)
		}
		want := team.TotalBudget.Sub(spent)
		if !team.RemainingBudget.Equal(want) {
			return fmt.Errorf("team %s: remaining budget %s, want %s",
				team.Name, team.RemainingBudget, want)
		}
		if team.RemainingBudget.IsNegative() {
			return fmt.Errorf("team %s: remaining budget %s is negative",
				team.Name, team.RemainingBudget)
		}
	}
	return nil
}
