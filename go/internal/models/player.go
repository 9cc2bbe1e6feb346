package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PlayerType defines the role of a player. The set is closed.
type PlayerType string

const (
	PlayerTypeBatsman      PlayerType = "Batsman"
	PlayerTypeBowler       PlayerType = "Bowler"
	PlayerTypeAllRounder   PlayerType = "All-Rounder"
	PlayerTypeWicketKeeper PlayerType = "Wicket-Keeper"
)

// PlayerTypes lists every valid player type in display order.
var PlayerTypes = []PlayerType{
	PlayerTypeBatsman,
	PlayerTypeBowler,
	PlayerTypeAllRounder,
	PlayerTypeWicketKeeper,
}

// ParsePlayerType matches a type string case-insensitively against the
// closed set.
func ParsePlayerType(s string) (PlayerType, bool) {
	for _, t := range PlayerTypes {
		if strings.EqualFold(string(t), s) {
			return t, true
		}
	}
	return "", false
}

// Player represents a player registered for one tournament's auction.
// EmpID is unique within the tournament. TeamID is nil and BidAmount zero
// until the player is sold; IsAssigned holds exactly when TeamID is set and
// BidAmount is positive.
type Player struct {
	EmpID         string          `json:"emp_id"`
	TournamentID  uuid.UUID       `json:"tournament_id"`
	Name          string          `json:"name"`
	Type          PlayerType      `json:"type"`
	IsAssigned    bool            `json:"is_assigned"`
	TeamID        *uuid.UUID      `json:"team_id,omitempty"`
	BidAmount     decimal.Decimal `json:"bid_amount"`
	ImageFilename string          `json:"image_filename,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
}
