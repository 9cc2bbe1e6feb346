// Package memory is the in-memory implementation of the auction backend
// contract. It backs the local/offline auction variant and the test suite,
// and enforces the same invariants the remote service does: a player sells
// at most once, budget debits are atomic, and money never goes negative.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/shopspring/decimal"

	"github.com/jaganpon/auction/go/internal/models"
	"github.com/jaganpon/auction/go/internal/store"
)

// Store holds all tournaments behind one mutex, so every assignment is
// serialized exactly as the consumed contract requires.
type Store struct {
	mu          sync.Mutex
	tournaments map[uuid.UUID]*models.Tournament
	clock       clockwork.Clock
}

// NewStore creates an empty in-memory backend.
func NewStore() *Store {
	return NewStoreWithClock(clockwork.NewRealClock())
}

// NewStoreWithClock is NewStore with an injectable clock for tests.
func NewStoreWithClock(clock clockwork.Clock) *Store {
	return &Store{
		tournaments: make(map[uuid.UUID]*models.Tournament),
		clock:       clock,
	}
}

// ListTournaments returns every tournament with teams and players embedded,
// oldest first.
func (s *Store) ListTournaments(ctx context.Context) ([]models.Tournament, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.Tournament, 0, len(s.tournaments))
	for _, t := range s.tournaments {
		out = append(out, *copyTournament(t))
	}
	sortTournaments(out)
	return out, nil
}

// GetTournament returns one tournament by id.
func (s *Store) GetTournament(ctx context.Context, id uuid.UUID) (*models.Tournament, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.tournaments[id]
	if !ok {
		return nil, fmt.Errorf("tournament %s: %w", id, store.ErrNotFound)
	}
	return copyTournament(t), nil
}

// GetPlayers returns the flat player list of a tournament.
func (s *Store) GetPlayers(ctx context.Context, tournamentID uuid.UUID) ([]models.Player, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.tournaments[tournamentID]
	if !ok {
		return nil, fmt.Errorf("tournament %s: %w", tournamentID, store.ErrNotFound)
	}
	players := make([]models.Player, len(t.Players))
	copy(players, t.Players)
	return players, nil
}

// GetAuctionStatus returns the assignment progress summary, computed from
// the flat player list so it can never disagree with it.
func (s *Store) GetAuctionStatus(ctx context.Context, tournamentID uuid.UUID) (*models.AuctionSummary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.tournaments[tournamentID]
	if !ok {
		return nil, fmt.Errorf("tournament %s: %w", tournamentID, store.ErrNotFound)
	}
	summary := &models.AuctionSummary{TotalPlayers: len(t.Players)}
	for _, p := range t.Players {
		if p.IsAssigned {
			summary.AssignedPlayers++
		}
	}
	summary.RemainingPlayers = summary.TotalPlayers - summary.AssignedPlayers
	return summary, nil
}

// AssignPlayer atomically sells a player to a team. The player must be
// unassigned, the team must afford the bid, and all ids must belong to the
// tournament; nothing is mutated when any check fails.
func (s *Store) AssignPlayer(ctx context.Context, req store.AssignPlayerRequest) (*models.Player, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.tournaments[req.TournamentID]
	if !ok {
		return nil, fmt.Errorf("tournament %s: %w", req.TournamentID, store.ErrNotFound)
	}
	player := t.PlayerByEmpID(req.EmpID)
	if player == nil {
		return nil, fmt.Errorf("player %s: %w", req.EmpID, store.ErrNotFound)
	}
	team := t.TeamByID(req.TeamID)
	if team == nil {
		return nil, fmt.Errorf("team %s: %w", req.TeamID, store.ErrNotFound)
	}
	if !req.BidAmount.IsPositive() {
		return nil, fmt.Errorf("%w: bid amount must be positive", store.ErrInvalidRequest)
	}
	if player.IsAssigned {
		return nil, fmt.Errorf("player %s: %w", req.EmpID, store.ErrPlayerAlreadyAssigned)
	}
	if req.BidAmount.GreaterThan(team.RemainingBudget) {
		return nil, fmt.Errorf("%w: %s has only ₹%s remaining",
			store.ErrInsufficientBudget, team.Name, team.RemainingBudget)
	}

	teamID := team.ID
	player.IsAssigned = true
	player.TeamID = &teamID
	player.BidAmount = req.BidAmount
	team.RemainingBudget = team.RemainingBudget.Sub(req.BidAmount)
	team.Players = append(team.Players, *player)
	return copyPlayer(player), nil
}

// CreateTournament creates an empty tournament.
func (s *Store) CreateTournament(ctx context.Context, req store.CreateTournamentRequest) (*models.Tournament, error) {
	if req.Name == "" {
		return nil, fmt.Errorf("%w: tournament name is required", store.ErrInvalidRequest)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	t := &models.Tournament{
		ID:        uuid.New(),
		Name:      req.Name,
		CreatedAt: s.clock.Now(),
	}
	s.tournaments[t.ID] = t
	return copyTournament(t), nil
}

// CreateTeam adds a team with its starting budget to a tournament. Team
// names are unique within a tournament.
func (s *Store) CreateTeam(ctx context.Context, req store.CreateTeamRequest) (*models.Team, error) {
	if req.Name == "" {
		return nil, fmt.Errorf("%w: team name is required", store.ErrInvalidRequest)
	}
	if req.TotalBudget.IsNegative() || req.TotalBudget.IsZero() {
		return nil, fmt.Errorf("%w: total budget must be positive", store.ErrInvalidRequest)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.tournaments[req.TournamentID]
	if !ok {
		return nil, fmt.Errorf("tournament %s: %w", req.TournamentID, store.ErrNotFound)
	}
	for i := range t.Teams {
		if t.Teams[i].Name == req.Name {
			return nil, fmt.Errorf("%w: team %q already exists", store.ErrInvalidRequest, req.Name)
		}
	}

	team := models.Team{
		ID:              uuid.New(),
		TournamentID:    t.ID,
		Name:            req.Name,
		TotalBudget:     req.TotalBudget,
		RemainingBudget: req.TotalBudget,
		Players:         []models.Player{},
		CreatedAt:       s.clock.Now(),
	}
	t.Teams = append(t.Teams, team)
	return copyTeam(&team), nil
}

// UpdateTeam edits a team's name and, while the team has no assigned
// players yet, its total budget. Budget edits are rejected once the team
// owns players so the ledger invariant cannot be broken.
func (s *Store) UpdateTeam(ctx context.Context, tournamentID, teamID uuid.UUID, req store.UpdateTeamRequest) (*models.Team, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.tournaments[tournamentID]
	if !ok {
		return nil, fmt.Errorf("tournament %s: %w", tournamentID, store.ErrNotFound)
	}
	team := t.TeamByID(teamID)
	if team == nil {
		return nil, fmt.Errorf("team %s: %w", teamID, store.ErrNotFound)
	}

	if req.Name != nil {
		if *req.Name == "" {
			return nil, fmt.Errorf("%w: team name is required", store.ErrInvalidRequest)
		}
		team.Name = *req.Name
	}
	if req.TotalBudget != nil && !req.TotalBudget.Equal(team.TotalBudget) {
		if len(team.Players) > 0 {
			return nil, fmt.Errorf("%w: cannot change total budget after players are assigned",
				store.ErrInvalidRequest)
		}
		if !req.TotalBudget.IsPositive() {
			return nil, fmt.Errorf("%w: total budget must be positive", store.ErrInvalidRequest)
		}
		team.TotalBudget = *req.TotalBudget
		team.RemainingBudget = *req.TotalBudget
	}
	return copyTeam(team), nil
}

// DeleteTeam removes a team that has no players on its roster.
func (s *Store) DeleteTeam(ctx context.Context, tournamentID, teamID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.tournaments[tournamentID]
	if !ok {
		return fmt.Errorf("tournament %s: %w", tournamentID, store.ErrNotFound)
	}
	for i := range t.Teams {
		if t.Teams[i].ID != teamID {
			continue
		}
		if len(t.Teams[i].Players) > 0 {
			return fmt.Errorf("%w: team %s still has %d players",
				store.ErrInvalidRequest, t.Teams[i].Name, len(t.Teams[i].Players))
		}
		t.Teams = append(t.Teams[:i], t.Teams[i+1:]...)
		return nil
	}
	return fmt.Errorf("team %s: %w", teamID, store.ErrNotFound)
}

// CreatePlayer registers an unassigned player. Employee ids are unique
// within a tournament.
func (s *Store) CreatePlayer(ctx context.Context, req store.CreatePlayerRequest) (*models.Player, error) {
	if req.EmpID == "" || req.Name == "" {
		return nil, fmt.Errorf("%w: employee id and name are required", store.ErrInvalidRequest)
	}
	playerType, ok := models.ParsePlayerType(string(req.Type))
	if !ok {
		return nil, fmt.Errorf("%w: unknown player type %q", store.ErrInvalidRequest, req.Type)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.tournaments[req.TournamentID]
	if !ok {
		return nil, fmt.Errorf("tournament %s: %w", req.TournamentID, store.ErrNotFound)
	}
	if t.PlayerByEmpID(req.EmpID) != nil {
		return nil, fmt.Errorf("%w: player %s already exists", store.ErrInvalidRequest, req.EmpID)
	}

	player := models.Player{
		EmpID:         req.EmpID,
		TournamentID:  t.ID,
		Name:          req.Name,
		Type:          playerType,
		BidAmount:     decimal.Zero,
		ImageFilename: req.ImageFilename,
		CreatedAt:     s.clock.Now(),
	}
	t.Players = append(t.Players, player)
	return copyPlayer(&player), nil
}

// DeletePlayer removes a player from the tournament. Deleting an assigned
// player refunds the bid to the owning team and drops the player from that
// team's roster, keeping the ledger invariant intact.
func (s *Store) DeletePlayer(ctx context.Context, tournamentID uuid.UUID, empID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.tournaments[tournamentID]
	if !ok {
		return fmt.Errorf("tournament %s: %w", tournamentID, store.ErrNotFound)
	}
	player := t.PlayerByEmpID(empID)
	if player == nil {
		return fmt.Errorf("player %s: %w", empID, store.ErrNotFound)
	}

	if player.IsAssigned && player.TeamID != nil {
		if team := t.TeamByID(*player.TeamID); team != nil {
			team.RemainingBudget = team.RemainingBudget.Add(player.BidAmount)
			for i := range team.Players {
				if team.Players[i].EmpID == empID {
					team.Players = append(team.Players[:i], team.Players[i+1:]...)
					break
				}
			}
		}
	}

	for i := range t.Players {
		if t.Players[i].EmpID == empID {
			t.Players = append(t.Players[:i], t.Players[i+1:]...)
			break
		}
	}
	return nil
}

func copyTournament(t *models.Tournament) *models.Tournament {
	out := *t
	out.Teams = make([]models.Team, len(t.Teams))
	for i := range t.Teams {
		out.Teams[i] = *copyTeam(&t.Teams[i])
	}
	out.Players = make([]models.Player, len(t.Players))
	copy(out.Players, t.Players)
	return &out
}

func copyTeam(team *models.Team) *models.Team {
	out := *team
	out.Players = make([]models.Player, len(team.Players))
	copy(out.Players, team.Players)
	return &out
}

func copyPlayer(p *models.Player) *models.Player {
	out := *p
	return &out
}

func sortTournaments(ts []models.Tournament) {
	sort.Slice(ts, func(i, j int) bool {
		if ts[i].CreatedAt.Equal(ts[j].CreatedAt) {
			return ts[i].ID.String() < ts[j].ID.String()
		}
		return ts[i].CreatedAt.Before(ts[j].CreatedAt)
	})
}
