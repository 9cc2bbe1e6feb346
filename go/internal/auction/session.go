package auction

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/jaganpon/auction/go/internal/auction/events"
	"github.com/jaganpon/auction/go/internal/draw"
	"github.com/jaganpon/auction/go/internal/ledger"
	"github.com/jaganpon/auction/go/internal/models"
	"github.com/jaganpon/auction/go/internal/roster"
	"github.com/jaganpon/auction/go/internal/store"
)

// Session orchestrates one auction run for a tournament: it owns the
// ephemeral draw order, the pending-bid scratch state and the lifecycle
// NotStarted -> InProgress -> Complete. Tournament data and budgets are
// read-through views of the backend; only the draw order and scratch state
// are locally authoritative.
type Session struct {
	engine    *Engine
	store     Store
	publisher events.Publisher
	clock     clockwork.Clock
	policy    DrawPolicy

	mu          sync.Mutex
	assigning   bool
	status      models.SessionStatus
	tournament  *models.Tournament
	ledger      *ledger.Ledger
	summary     *models.AuctionSummary
	selector    *draw.Selector
	pending     *PendingBid
	startedAt   *time.Time
	completedAt *time.Time
}

// NewSession creates a session over the given backend. A nil publisher
// disables event fan-out; a nil clock means wall-clock time.
func NewSession(st Store, publisher events.Publisher, policy DrawPolicy, clock clockwork.Clock) *Session {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Session{
		engine:    NewEngine(st),
		store:     st,
		publisher: publisher,
		clock:     clock,
		policy:    policy,
		status:    models.SessionStatusNotStarted,
	}
}

// Status returns the current lifecycle state.
func (s *Session) Status() models.SessionStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// SelectTournament loads a tournament and forces the session back to
// NotStarted, discarding any in-progress draw order and scratch state.
func (s *Session) SelectTournament(ctx context.Context, tournamentID uuid.UUID) (*models.Tournament, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.assigning {
		return nil, ErrAssignmentInFlight
	}

	tournament, err := s.store.GetTournament(ctx, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("failed to load tournament: %w", err)
	}
	summary, err := s.store.GetAuctionStatus(ctx, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("failed to load auction status: %w", err)
	}

	s.tournament = tournament
	s.summary = summary
	s.ledger = ledger.New(tournament.Teams)
	s.selector = nil
	s.pending = nil
	s.startedAt = nil
	s.completedAt = nil
	s.status = models.SessionStatusNotStarted
	return tournament, nil
}

// Start begins the auction. It requires a selected tournament with at
// least one unassigned player; otherwise the start is rejected with the
// specific guard that failed.
func (s *Session) Start(ctx context.Context) (*models.Player, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.assigning {
		return nil, ErrAssignmentInFlight
	}
	if s.tournament == nil {
		return nil, ErrNoTournamentSelected
	}

	pool := roster.Unassigned(s.tournament.Players)
	if len(pool) == 0 {
		return nil, ErrNoUnassignedPlayers
	}

	s.selector = draw.NewSelector(pool)
	s.ledger = ledger.New(s.tournament.Teams)
	s.pending = nil
	now := s.clock.Now()
	s.startedAt = &now
	s.completedAt = nil
	s.status = models.SessionStatusInProgress

	if s.policy == DrawPolicyRandom {
		s.selector.DrawRandom()
	}

	s.publish(ctx, events.EventTypeAuctionStarted, events.AuctionStartedPayload{
		TournamentID:   s.tournament.ID.String(),
		TournamentName: s.tournament.Name,
		StartedAt:      now,
		PoolSize:       len(pool),
	})

	player, _ := s.selector.Current()
	log.Info().
		Str("tournament_id", s.tournament.ID.String()).
		Int("pool_size", len(pool)).
		Str("policy", string(s.policy)).
		Msg("auction started")
	return &player, nil
}

// Current returns the player currently up for bidding.
func (s *Session) Current() (models.Player, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.status != models.SessionStatusInProgress || s.selector == nil {
		return models.Player{}, false
	}
	return s.selector.Current()
}

// Next advances the draw and discards the pending bid. Exhausting the
// whole pool completes the session; exhausting only the filtered view
// leaves the session in progress with no current player, so the operator
// can widen the filter.
func (s *Session) Next(ctx context.Context) (*models.Player, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.assigning {
		return nil, ErrAssignmentInFlight
	}
	if s.status != models.SessionStatusInProgress {
		return nil, ErrNotInProgress
	}

	s.pending = nil

	var player models.Player
	var ok bool
	if s.policy == DrawPolicyRandom {
		player, ok = s.selector.DrawRandom()
	} else {
		player, ok = s.selector.Advance()
	}
	if !ok {
		if s.selector.Exhausted() {
			s.complete(ctx)
			return nil, nil
		}
		return nil, nil
	}

	s.publish(ctx, events.EventTypePlayerPresented, events.PlayerPresentedPayload{
		EmpID:       player.EmpID,
		PlayerName:  player.Name,
		PlayerType:  string(player.Type),
		PresentedAt: s.clock.Now(),
		Remaining:   s.selector.Remaining(),
	})
	return &player, nil
}

// Shuffle permutes the draw order and moves the pointer to the front.
func (s *Session) Shuffle() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.assigning {
		return ErrAssignmentInFlight
	}
	if s.status != models.SessionStatusInProgress {
		return ErrNotInProgress
	}
	s.selector.Shuffle()
	s.pending = nil
	return nil
}

// ResetOrder restores the originally captured draw order and clears the
// type filter.
func (s *Session) ResetOrder() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.assigning {
		return ErrAssignmentInFlight
	}
	if s.status != models.SessionStatusInProgress {
		return ErrNotInProgress
	}
	s.selector.Reset()
	s.pending = nil
	return nil
}

// SetFilter re-scopes the draw to one player type; "all" clears it.
func (s *Session) SetFilter(playerType string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.assigning {
		return ErrAssignmentInFlight
	}
	if s.status != models.SessionStatusInProgress {
		return ErrNotInProgress
	}
	s.selector.SetFilter(playerType)
	s.pending = nil
	return nil
}

// SetPendingBid records the operator's scratch bid entry.
func (s *Session) SetPendingBid(teamID uuid.UUID, amount string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.status != models.SessionStatusInProgress {
		return ErrNotInProgress
	}
	s.pending = &PendingBid{TeamID: teamID, Amount: amount}
	return nil
}

// Assign commits the current player to a team for the given bid amount.
// Validation failures never reach the network. A conflict rejection means
// the local view was stale: the session refreshes itself fully before
// returning the error. Submissions are strictly sequential; a second
// attempt while one is in flight is rejected outright.
func (s *Session) Assign(ctx context.Context, teamID uuid.UUID, amount string) (*AssignmentResult, error) {
	s.mu.Lock()
	if s.assigning {
		s.mu.Unlock()
		return nil, ErrAssignmentInFlight
	}
	if s.status != models.SessionStatusInProgress {
		s.mu.Unlock()
		return nil, ErrNotInProgress
	}
	player, ok := s.selector.Current()
	if !ok {
		s.mu.Unlock()
		return nil, ErrNoCurrentPlayer
	}

	bid, err := decimal.NewFromString(amount)
	if err != nil {
		s.mu.Unlock()
		return nil, fmt.Errorf("%w: %q", ledger.ErrInvalidBidAmount, amount)
	}

	l := s.ledger
	s.assigning = true
	s.mu.Unlock()

	result, err := s.engine.Assign(ctx, l, player, teamID, bid)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.assigning = false

	if err != nil {
		if store.IsConflict(err) {
			// The backend knows something we do not; resync before the
			// operator can try again.
			if refreshErr := s.refreshLocked(ctx); refreshErr != nil {
				log.Error().Err(refreshErr).Msg("refresh after conflict failed")
			}
		}
		return nil, err
	}

	s.applyResultLocked(result)
	s.publish(ctx, events.EventTypePlayerAssigned, events.PlayerAssignedPayload{
		EmpID:           result.Player.EmpID,
		PlayerName:      result.Player.Name,
		TeamID:          result.Team.ID.String(),
		TeamName:        result.Team.Name,
		BidAmount:       result.BidAmount.String(),
		RemainingBudget: result.Team.RemainingBudget.String(),
		AssignedAt:      s.clock.Now(),
		PoolRemaining:   s.selector.Remaining(),
	})

	if s.selector.Exhausted() {
		s.complete(ctx)
	} else if s.policy == DrawPolicyRandom {
		s.selector.DrawRandom()
	}
	return result, nil
}

// End stops the auction early, keeping all committed assignments but
// discarding the draw order and scratch state.
func (s *Session) End(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.assigning {
		return ErrAssignmentInFlight
	}
	if s.status == models.SessionStatusNotStarted {
		return ErrNotInProgress
	}

	unsold := 0
	if s.selector != nil {
		unsold = s.selector.Remaining()
	}
	s.publish(ctx, events.EventTypeAuctionEnded, events.AuctionEndedPayload{
		TournamentID: s.tournament.ID.String(),
		EndedAt:      s.clock.Now(),
		Unsold:       unsold,
	})

	s.selector = nil
	s.pending = nil
	s.startedAt = nil
	s.completedAt = nil
	s.status = models.SessionStatusNotStarted
	log.Info().Str("tournament_id", s.tournament.ID.String()).Msg("auction ended by operator")
	return nil
}

// Refresh re-reads tournament, budgets and summary from the backend and
// rebuilds the draw pool from the authoritative unassigned set.
func (s *Session) Refresh(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.assigning {
		return ErrAssignmentInFlight
	}
	if s.tournament == nil {
		return ErrNoTournamentSelected
	}
	return s.refreshLocked(ctx)
}

// View returns a snapshot for transports and the gateway.
func (s *Session) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()

	v := View{
		Status: s.status,
		Policy: s.policy,
		Filter: roster.TypeAll,
	}
	if s.tournament != nil {
		v.TournamentID = s.tournament.ID
		v.TournamentName = s.tournament.Name
		v.Teams = s.ledger.Teams()
		v.Summary = s.summary
	}
	if s.selector != nil {
		v.Filter = s.selector.Filter()
		v.PoolRemaining = s.selector.Remaining()
		if p, ok := s.selector.Current(); ok && s.status == models.SessionStatusInProgress {
			player := p
			v.CurrentPlayer = &player
		}
	}
	v.Pending = s.pending
	v.StartedAt = s.startedAt
	v.CompletedAt = s.completedAt
	return v
}

func (s *Session) applyResultLocked(result *AssignmentResult) {
	s.tournament = result.Tournament
	s.summary = result.Summary
	s.ledger = ledger.New(result.Tournament.Teams)
	s.selector.Remove(result.Player.EmpID)
	s.pending = nil
}

func (s *Session) refreshLocked(ctx context.Context) error {
	tournament, err := s.store.GetTournament(ctx, s.tournament.ID)
	if err != nil {
		return fmt.Errorf("failed to refresh tournament: %w", err)
	}
	summary, err := s.store.GetAuctionStatus(ctx, s.tournament.ID)
	if err != nil {
		return fmt.Errorf("failed to refresh auction status: %w", err)
	}

	s.tournament = tournament
	s.summary = summary
	s.ledger = ledger.New(tournament.Teams)

	if s.status == models.SessionStatusInProgress {
		filter := s.selector.Filter()
		s.selector = draw.NewSelector(roster.Unassigned(tournament.Players))
		s.selector.SetFilter(filter)
		s.pending = nil
		if s.selector.Exhausted() {
			s.complete(ctx)
		} else if s.policy == DrawPolicyRandom {
			s.selector.DrawRandom()
		}
	}
	return nil
}

// complete is called with the lock held once zero unassigned players
// remain.
func (s *Session) complete(ctx context.Context) {
	now := s.clock.Now()
	s.completedAt = &now
	s.status = models.SessionStatusComplete
	s.pending = nil

	total := 0
	if s.summary != nil {
		total = s.summary.TotalPlayers
	}
	s.publish(ctx, events.EventTypeAuctionCompleted, events.AuctionCompletedPayload{
		TournamentID: s.tournament.ID.String(),
		CompletedAt:  now,
		TotalPlayers: total,
	})
	log.Info().Str("tournament_id", s.tournament.ID.String()).Msg("auction complete")
}

func (s *Session) publish(ctx context.Context, eventType events.EventType, payload interface{}) {
	if s.tournament == nil {
		return
	}
	event, err := events.NewEvent(s.tournament.ID.String(), eventType, payload, s.clock.Now())
	if err != nil {
		log.Warn().Err(err).Str("type", string(eventType)).Msg("failed to build event")
		return
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		// Fan-out is best effort; the assignment itself already committed.
		log.Warn().Err(err).Str("type", string(eventType)).Msg("failed to publish event")
	}
}
