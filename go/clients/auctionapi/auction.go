package auctionapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/jaganpon/auction/go/internal/models"
	"github.com/jaganpon/auction/go/internal/store"
)

type assignResponse struct {
	Player  models.Player          `json:"player"`
	Team    models.Team            `json:"team"`
	Summary *models.AuctionSummary `json:"summary,omitempty"`
}

// AssignPlayer commits a bid. The backend performs the budget check and the
// debit atomically; conflicts come back as ErrPlayerAlreadyAssigned or
// ErrInsufficientBudget with the backend detail preserved.
func (c *Client) AssignPlayer(ctx context.Context, req store.AssignPlayerRequest) (*models.Player, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	body, err := c.Post(ctx, AuctionAssignEndpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, mapError(err)
	}

	var resp assignResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to unmarshal assignment: %w", err)
	}
	return &resp.Player, nil
}

// Health pings the backend. Used at startup to fail fast on a bad base URL
// or token.
func (c *Client) Health(ctx context.Context) error {
	if _, err := c.Get(ctx, HealthEndpoint); err != nil {
		return mapError(err)
	}
	return nil
}
