package auction

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jaganpon/auction/go/internal/models"
	"github.com/jaganpon/auction/go/internal/store"
)

// Store defines what the auction session needs from the backend.
type Store interface {
	GetTournament(ctx context.Context, id uuid.UUID) (*models.Tournament, error)
	GetPlayers(ctx context.Context, tournamentID uuid.UUID) ([]models.Player, error)
	GetAuctionStatus(ctx context.Context, tournamentID uuid.UUID) (*models.AuctionSummary, error)
	AssignPlayer(ctx context.Context, req store.AssignPlayerRequest) (*models.Player, error)
}

// DrawPolicy selects how the next player is presented for bidding.
type DrawPolicy string

const (
	// DrawPolicyOrdered walks an explicit sequence with shuffle and reset
	// support.
	DrawPolicyOrdered DrawPolicy = "ORDERED"
	// DrawPolicyRandom picks uniformly at random from the unassigned pool
	// on every draw.
	DrawPolicyRandom DrawPolicy = "RANDOM"
)

// AssignmentResult reports a committed assignment together with the fresh
// backend state that confirmed it.
type AssignmentResult struct {
	Player     models.Player          `json:"player"`
	Team       models.Team            `json:"team"`
	BidAmount  decimal.Decimal        `json:"bid_amount"`
	Tournament *models.Tournament     `json:"-"`
	Summary    *models.AuctionSummary `json:"summary"`
}

// PendingBid is the scratch state for the bid currently being entered.
// It is never persisted and is discarded on draw advance, tournament
// change or session end.
type PendingBid struct {
	TeamID uuid.UUID `json:"team_id"`
	Amount string    `json:"amount"`
}

// View is a read-only snapshot of the session for transports.
type View struct {
	TournamentID   uuid.UUID              `json:"tournament_id"`
	TournamentName string                 `json:"tournament_name"`
	Status         models.SessionStatus   `json:"status"`
	Policy         DrawPolicy             `json:"policy"`
	Filter         string                 `json:"filter"`
	CurrentPlayer  *models.Player         `json:"current_player,omitempty"`
	Teams          []models.Team          `json:"teams"`
	Summary        *models.AuctionSummary `json:"summary,omitempty"`
	PoolRemaining  int                    `json:"pool_remaining"`
	Pending        *PendingBid            `json:"pending,omitempty"`
	StartedAt      *time.Time             `json:"started_at,omitempty"`
	CompletedAt    *time.Time             `json:"completed_at,omitempty"`
}
