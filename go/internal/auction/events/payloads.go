package events

import (
	"encoding/json"
	"time"
)

// Event payload types shared between the auction session and the gateway.

// EventType identifies an auction event on the bus.
type EventType string

const (
	EventTypeAuctionStarted   EventType = "AuctionStarted"
	EventTypePlayerPresented  EventType = "PlayerPresented"
	EventTypePlayerAssigned   EventType = "PlayerAssigned"
	EventTypeAuctionEnded     EventType = "AuctionEnded"
	EventTypeAuctionCompleted EventType = "AuctionCompleted"
)

// Event is the envelope carried on the bus for every auction event.
type Event struct {
	ID           string          `json:"id"`
	TournamentID string          `json:"tournament_id"`
	Type         EventType       `json:"type"`
	Timestamp    time.Time       `json:"timestamp"`
	Data         json.RawMessage `json:"data"`
}

// AuctionStartedPayload is the payload for an AuctionStarted event.
type AuctionStartedPayload struct {
	TournamentID   string    `json:"tournament_id"`
	TournamentName string    `json:"tournament_name"`
	StartedAt      time.Time `json:"started_at"`
	PoolSize       int       `json:"pool_size"`
}

// PlayerPresentedPayload is the payload for a PlayerPresented event.
type PlayerPresentedPayload struct {
	EmpID       string    `json:"emp_id"`
	PlayerName  string    `json:"player_name"`
	PlayerType  string    `json:"player_type"`
	PresentedAt time.Time `json:"presented_at"`
	Remaining   int       `json:"remaining"`
}

// PlayerAssignedPayload is the payload for a PlayerAssigned event.
type PlayerAssignedPayload struct {
	EmpID           string    `json:"emp_id"`
	PlayerName      string    `json:"player_name"`
	TeamID          string    `json:"team_id"`
	TeamName        string    `json:"team_name"`
	BidAmount       string    `json:"bid_amount"`
	RemainingBudget string    `json:"remaining_budget"`
	AssignedAt      time.Time `json:"assigned_at"`
	PoolRemaining   int       `json:"pool_remaining"`
}

// AuctionEndedPayload is the payload for an AuctionEnded event, emitted when
// the operator ends the session before the pool is empty.
type AuctionEndedPayload struct {
	TournamentID string    `json:"tournament_id"`
	EndedAt      time.Time `json:"ended_at"`
	Unsold       int       `json:"unsold"`
}

// AuctionCompletedPayload is the payload for an AuctionCompleted event.
type AuctionCompletedPayload struct {
	TournamentID string    `json:"tournament_id"`
	CompletedAt  time.Time `json:"completed_at"`
	TotalPlayers int       `json:"total_players"`
}

// ParsePayload parses an event envelope into its typed payload.
func ParsePayload(event *Event) (interface{}, error) {
	switch event.Type {
	case EventTypeAuctionStarted:
		var payload AuctionStartedPayload
		if err := json.Unmarshal(event.Data, &payload); err != nil {
			return nil, err
		}
		return payload, nil
	case EventTypePlayerPresented:
		var payload PlayerPresentedPayload
		if err := json.Unmarshal(event.Data, &payload); err != nil {
			return nil, err
		}
		return payload, nil
	case EventTypePlayerAssigned:
		var payload PlayerAssignedPayload
		if err := json.Unmarshal(event.Data, &payload); err != nil {
			return nil, err
		}
		return payload, nil
	case EventTypeAuctionEnded:
		var payload AuctionEndedPayload
		if err := json.Unmarshal(event.Data, &payload); err != nil {
			return nil, err
		}
		return payload, nil
	case EventTypeAuctionCompleted:
		var payload AuctionCompletedPayload
		if err := json.Unmarshal(event.Data, &payload); err != nil {
			return nil, err
		}
		return payload, nil
	default:
		return nil, nil // Unknown event type
	}
}
