// Package store defines the consumed contract of the auction backend: the
// request payloads and error taxonomy shared by every implementation. The
// backend is the source of truth for tournaments, teams, players and
// budgets; callers treat its responses as authoritative.
package store

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jaganpon/auction/go/internal/models"
)

// AssignPlayerRequest is the single atomic assignment operation: sell
// player EmpID to team TeamID for BidAmount within tournament TournamentID.
type AssignPlayerRequest struct {
	TournamentID uuid.UUID       `json:"tournament_id"`
	TeamID       uuid.UUID       `json:"team_id"`
	EmpID        string          `json:"emp_id"`
	BidAmount    decimal.Decimal `json:"bid_amount"`
}

// CreateTournamentRequest creates an empty tournament.
type CreateTournamentRequest struct {
	Name string `json:"name"`
}

// CreateTeamRequest adds a team with its starting budget to a tournament.
type CreateTeamRequest struct {
	TournamentID uuid.UUID       `json:"tournament_id"`
	Name         string          `json:"name"`
	TotalBudget  decimal.Decimal `json:"total_budget"`
}

// UpdateTeamRequest edits a team. Nil fields are left unchanged.
type UpdateTeamRequest struct {
	Name        *string          `json:"name,omitempty"`
	TotalBudget *decimal.Decimal `json:"total_budget,omitempty"`
}

// CreatePlayerRequest registers an unassigned player in a tournament.
type CreatePlayerRequest struct {
	TournamentID  uuid.UUID         `json:"tournament_id"`
	EmpID         string            `json:"emp_id"`
	Name          string            `json:"name"`
	Type          models.PlayerType `json:"type"`
	ImageFilename string            `json:"image_filename,omitempty"`
}
