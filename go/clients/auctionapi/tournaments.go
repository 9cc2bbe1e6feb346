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

// ListTournaments fetches every tournament with its teams and flat player
// list embedded.
func (c *Client) ListTournaments(ctx context.Context) ([]models.Tournament, error) {
	body, err := c.Get(ctx, TournamentsEndpoint)
	if err != nil {
		return nil, mapError(err)
	}

	var tournaments []models.Tournament
	if err := json.Unmarshal(body, &tournaments); err != nil {
		return nil, fmt.Errorf("failed to unmarshal tournaments: %w", err)
	}
	return tournaments, nil
}

// GetTournament fetches one tournament by id.
func (c *Client) GetTournament(ctx context.Context, id uuid.UUID) (*models.Tournament, error) {
	body, err := c.Get(ctx, fmt.Sprintf("%s/%s", TournamentsEndpoint, id))
	if err != nil {
		return nil, mapError(err)
	}

	var tournament models.Tournament
	if err := json.Unmarshal(body, &tournament); err != nil {
		return nil, fmt.Errorf("failed to unmarshal tournament: %w", err)
	}
	return &tournament, nil
}

// GetAuctionStatus fetches the assignment progress summary.
func (c *Client) GetAuctionStatus(ctx context.Context, tournamentID uuid.UUID) (*models.AuctionSummary, error) {
	body, err := c.Get(ctx, fmt.Sprintf("%s/%s/auction/status", TournamentsEndpoint, tournamentID))
	if err != nil {
		return nil, mapError(err)
	}

	var summary models.AuctionSummary
	if err := json.Unmarshal(body, &summary); err != nil {
		return nil, fmt.Errorf("failed to unmarshal auction status: %w", err)
	}
	return &summary, nil
}

// CreateTournament creates an empty tournament.
func (c *Client) CreateTournament(ctx context.Context, req store.CreateTournamentRequest) (*models.Tournament, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	body, err := c.Post(ctx, TournamentsEndpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, mapError(err)
	}

	var tournament models.Tournament
	if err := json.Unmarshal(body, &tournament); err != nil {
		return nil, fmt.Errorf("failed to unmarshal tournament: %w", err)
	}
	return &tournament, nil
}

// CreateTeam adds a team to a tournament.
func (c *Client) CreateTeam(ctx context.Context, req store.CreateTeamRequest) (*models.Team, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	body, err := c.Post(ctx, fmt.Sprintf("%s/%s/teams", TournamentsEndpoint, req.TournamentID), bytes.NewReader(payload))
	if err != nil {
		return nil, mapError(err)
	}

	var team models.Team
	if err := json.Unmarshal(body, &team); err != nil {
		return nil, fmt.Errorf("failed to unmarshal team: %w", err)
	}
	return &team, nil
}

// UpdateTeam edits a team.
func (c *Client) UpdateTeam(ctx context.Context, tournamentID, teamID uuid.UUID, req store.UpdateTeamRequest) (*models.Team, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	body, err := c.Put(ctx, fmt.Sprintf("%s/%s/teams/%s", TournamentsEndpoint, tournamentID, teamID), bytes.NewReader(payload))
	if err != nil {
		return nil, mapError(err)
	}

	var team models.Team
	if err := json.Unmarshal(body, &team); err != nil {
		return nil, fmt.Errorf("failed to unmarshal team: %w", err)
	}
	return &team, nil
}

// DeleteTeam removes a team with an empty roster.
func (c *Client) DeleteTeam(ctx context.Context, tournamentID, teamID uuid.UUID) error {
	if _, err := c.Delete(ctx, fmt.Sprintf("%s/%s/teams/%s", TournamentsEndpoint, tournamentID, teamID)); err != nil {
		return mapError(err)
	}
	return nil
}
