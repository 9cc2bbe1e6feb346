package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Team represents a bidding team in a tournament. RemainingBudget only
// decreases through committed assignments; it is never debited before the
// backend confirms a sale.
type Team struct {
	ID              uuid.UUID       `json:"id"`
	TournamentID    uuid.UUID       `json:"tournament_id"`
	Name            string          `json:"name"`
	TotalBudget     decimal.Decimal `json:"total_budget"`
	RemainingBudget decimal.Decimal `json:"remaining_budget"`
	Players         []Player        `json:"players"`
	CreatedAt       time.Time       `json:"created_at"`
}

// SpentBudget returns how much of the total budget has been committed.
func (t *Team) SpentBudget() decimal.Decimal {
	return t.TotalBudget.Sub(t.RemainingBudget)
}
