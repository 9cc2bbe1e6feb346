package auctionapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/jaganpon/auction/go/internal/models"
	"github.com/jaganpon/auction/go/internal/store"
)

// GetPlayers fetches the full player list for a tournament, assigned and
// unassigned alike.
func (c *Client) GetPlayers(ctx context.Context, tournamentID uuid.UUID) ([]models.Player, error) {
	body, err := c.Get(ctx, fmt.Sprintf("%s/%s/players", TournamentsEndpoint, tournamentID))
	if err != nil {
		return nil, mapError(err)
	}

	var players []models.Player
	if err := json.Unmarshal(body, &players); err != nil {
		return nil, fmt.Errorf("failed to unmarshal players: %w", err)
	}
	return players, nil
}

// CreatePlayer registers a player in the tournament pool.
func (c *Client) CreatePlayer(ctx context.Context, req store.CreatePlayerRequest) (*models.Player, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	body, err := c.Post(ctx, fmt.Sprintf("%s/%s/players", TournamentsEndpoint, req.TournamentID), bytes.NewReader(payload))
	if err != nil {
		return nil, mapError(err)
	}

	var player models.Player
	if err := json.Unmarshal(body, &player); err != nil {
		return nil, fmt.Errorf("failed to unmarshal player: %w", err)
	}
	return &player, nil
}

// DeletePlayer removes a player. The backend refunds any committed bid to
// the owning team.
func (c *Client) DeletePlayer(ctx context.Context, tournamentID uuid.UUID, empID string) error {
	if _, err := c.Delete(ctx, fmt.Sprintf("%s/%s/players/%s", TournamentsEndpoint, tournamentID, empID)); err != nil {
		return mapError(err)
	}
	return nil
}
