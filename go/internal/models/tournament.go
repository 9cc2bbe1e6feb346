package models

import (
	"time"

	"github.com/google/uuid"
)

// Tournament represents one auction tournament with its teams and flat
// player list. Every assigned player references a team in the same
// tournament.
type Tournament struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Teams     []Team    `json:"teams"`
	Players   []Player  `json:"players"`
	CreatedAt time.Time `json:"created_at"`
}

// TeamByID returns the team with the given id, or nil if the tournament has
// no such team.
func (t *Tournament) TeamByID(id uuid.UUID) *Team {
	for i := range t.Teams {
		if t.Teams[i].ID == id {
			return &t.Teams[i]
		}
	}
	return nil
}

// PlayerByEmpID returns the player with the given employee id, or nil.
func (t *Tournament) PlayerByEmpID(empID string) *Player {
	for i := range t.Players {
		if t.Players[i].EmpID == empID {
			return &t.Players[i]
		}
	}
	return nil
}

// AuctionSummary is the denormalized per-tournament auction progress
// reported by the backend.
type AuctionSummary struct {
	TotalPlayers     int `json:"total_players"`
	AssignedPlayers  int `json:"assigned_players"`
	RemainingPlayers int `json:"remaining_players"`
}

// SessionStatus defines the lifecycle state of an auction session.
type SessionStatus string

const (
	SessionStatusNotStarted SessionStatus = "NOT_STARTED"
	SessionStatusInProgress SessionStatus = "IN_PROGRESS"
	SessionStatusComplete   SessionStatus = "COMPLETE"
)
