package tournament

import (
	"context"
	"fmt"
	"log"

	"github.com/google/uuid"

	"github.com/jaganpon/auction/go/internal/models"
	"github.com/jaganpon/auction/go/internal/store"
)

// Repository defines what the tournament app layer needs from the backend.
type Repository interface {
	ListTournaments(ctx context.Context) ([]models.Tournament, error)
	GetTournament(ctx context.Context, id uuid.UUID) (*models.Tournament, error)
	GetPlayers(ctx context.Context, tournamentID uuid.UUID) ([]models.Player, error)
	GetAuctionStatus(ctx context.Context, tournamentID uuid.UUID) (*models.AuctionSummary, error)
	CreateTournament(ctx context.Context, req store.CreateTournamentRequest) (*models.Tournament, error)
	CreateTeam(ctx context.Context, req store.CreateTeamRequest) (*models.Team, error)
	UpdateTeam(ctx context.Context, tournamentID, teamID uuid.UUID, req store.UpdateTeamRequest) (*models.Team, error)
	DeleteTeam(ctx context.Context, tournamentID, teamID uuid.UUID) error
	CreatePlayer(ctx context.Context, req store.CreatePlayerRequest) (*models.Player, error)
	DeletePlayer(ctx context.Context, tournamentID uuid.UUID, empID string) error
}

// App handles tournament administration business logic.
type App struct {
	repo Repository
}

// NewApp creates a new tournament App.
func NewApp(repo Repository) *App {
	return &App{repo: repo}
}

// ListTournaments retrieves all tournaments with teams and players embedded.
func (a *App) ListTournaments(ctx context.Context) ([]models.Tournament, error) {
	tournaments, err := a.repo.ListTournaments(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list tournaments: %w", err)
	}
	return tournaments, nil
}

// GetTournament retrieves a tournament by ID.
func (a *App) GetTournament(ctx context.Context, id uuid.UUID) (*models.Tournament, error) {
	tournament, err := a.repo.GetTournament(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get tournament: %w", err)
	}
	return tournament, nil
}

// GetPlayers retrieves the flat player list for a tournament.
func (a *App) GetPlayers(ctx context.Context, tournamentID uuid.UUID) ([]models.Player, error) {
	players, err := a.repo.GetPlayers(ctx, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("failed to get players: %w", err)
	}
	return players, nil
}

// GetAuctionStatus retrieves the assignment progress summary.
func (a *App) GetAuctionStatus(ctx context.Context, tournamentID uuid.UUID) (*models.AuctionSummary, error) {
	summary, err := a.repo.GetAuctionStatus(ctx, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("failed to get auction status: %w", err)
	}
	return summary, nil
}

// CreateTournament creates a new tournament with validation.
func (a *App) CreateTournament(ctx context.Context, req store.CreateTournamentRequest) (*models.Tournament, error) {
	if req.Name == "" {
		return nil, fmt.Errorf("%w: tournament name is required", store.ErrInvalidRequest)
	}

	tournament, err := a.repo.CreateTournament(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("failed to create tournament: %w", err)
	}

	log.Printf("Created tournament: %s (%s)", tournament.Name, tournament.ID)
	return tournament, nil
}

// CreateTeam adds a team to a tournament with validation.
func (a *App) CreateTeam(ctx context.Context, req store.CreateTeamRequest) (*models.Team, error) {
	if req.Name == "" {
		return nil, fmt.Errorf("%w: team name is required", store.ErrInvalidRequest)
	}
	if !req.TotalBudget.IsPositive() {
		return nil, fmt.Errorf("%w: total budget must be positive", store.ErrInvalidRequest)
	}

	team, err := a.repo.CreateTeam(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("failed to create team: %w", err)
	}

	log.Printf("Created team %s in tournament %s with budget %s", team.Name, req.TournamentID, team.TotalBudget)
	return team, nil
}

// UpdateTeam edits a team's name or, before any player is assigned to it,
// its total budget. The budget guard is also enforced by the backend; it
// is checked here so the failure is reported before any network effect.
func (a *App) UpdateTeam(ctx context.Context, tournamentID, teamID uuid.UUID, req store.UpdateTeamRequest) (*models.Team, error) {
	current, err := a.repo.GetTournament(ctx, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("tournament not found: %w", err)
	}
	team := current.TeamByID(teamID)
	if team == nil {
		return nil, fmt.Errorf("team %s: %w", teamID, store.ErrNotFound)
	}
	if req.TotalBudget != nil && !req.TotalBudget.Equal(team.TotalBudget) && len(team.Players) > 0 {
		return nil, fmt.Errorf("%w: cannot change total budget after players are assigned", store.ErrInvalidRequest)
	}

	updated, err := a.repo.UpdateTeam(ctx, tournamentID, teamID, req)
	if err != nil {
		return nil, fmt.Errorf("failed to update team: %w", err)
	}
	return updated, nil
}

// DeleteTeam removes a team with an empty roster.
func (a *App) DeleteTeam(ctx context.Context, tournamentID, teamID uuid.UUID) error {
	if err := a.repo.DeleteTeam(ctx, tournamentID, teamID); err != nil {
		return fmt.Errorf("failed to delete team: %w", err)
	}

	log.Printf("Deleted team %s from tournament %s", teamID, tournamentID)
	return nil
}

// CreatePlayer registers an unassigned player with validation.
func (a *App) CreatePlayer(ctx context.Context, req store.CreatePlayerRequest) (*models.Player, error) {
	if req.EmpID == "" {
		return nil, fmt.Errorf("%w: employee id is required", store.ErrInvalidRequest)
	}
	if req.Name == "" {
		return nil, fmt.Errorf("%w: player name is required", store.ErrInvalidRequest)
	}
	if _, ok := models.ParsePlayerType(string(req.Type)); !ok {
		return nil, fmt.Errorf("%w: unknown player type %q", store.ErrInvalidRequest, req.Type)
	}

	player, err := a.repo.CreatePlayer(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("failed to create player: %w", err)
	}

	log.Printf("Created player %s (%s) in tournament %s", player.Name, player.EmpID, req.TournamentID)
	return player, nil
}

// DeletePlayer removes a player from a tournament. The backend refunds an
// assigned player's bid to the owning team as part of the delete.
func (a *App) DeletePlayer(ctx context.Context, tournamentID uuid.UUID, empID string) error {
	if err := a.repo.DeletePlayer(ctx, tournamentID, empID); err != nil {
		return fmt.Errorf("failed to delete player: %w", err)
	}

	log.Printf("Deleted player %s from tournament %s", empID, tournamentID)
	return nil
}
