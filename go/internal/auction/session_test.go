package auction

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/peterldowns/testy/assert"
	"github.com/peterldowns/testy/check"
	"github.com/shopspring/decimal"

	"github.com/jaganpon/auction/go/internal/ledger"
	"github.com/jaganpon/auction/go/internal/models"
	"github.com/jaganpon/auction/go/internal/store"
	"github.com/jaganpon/auction/go/internal/store/memory"
)

func seedBackend(t *testing.T) (*memory.Store, *models.Tournament) {
	t.Helper()
	ctx := context.Background()
	st := memory.NewStore()

	tournament, err := st.CreateTournament(ctx, store.CreateTournamentRequest{Name: "Premier Cup"})
	assert.Nil(t, err)
	_, err = st.CreateTeam(ctx, store.CreateTeamRequest{
		TournamentID: tournament.ID, Name: "Team A", TotalBudget: decimal.NewFromInt(100),
	})
	assert.Nil(t, err)
	_, err = st.CreateTeam(ctx, store.CreateTeamRequest{
		TournamentID: tournament.ID, Name: "Team B", TotalBudget: decimal.NewFromInt(50),
	})
	assert.Nil(t, err)
	for _, empID := range []string{"P1", "P2", "P3"} {
		_, err = st.CreatePlayer(ctx, store.CreatePlayerRequest{
			TournamentID: tournament.ID, EmpID: empID, Name: "Player " + empID,
			Type: models.PlayerTypeBatsman,
		})
		assert.Nil(t, err)
	}

	full, err := st.GetTournament(context.Background(), tournament.ID)
	assert.Nil(t, err)
	return st, full
}

func teamNamed(t *testing.T, v View, name string) models.Team {
	t.Helper()
	for _, team := range v.Teams {
		if team.Name == name {
			return team
		}
	}
	t.Fatalf("no team named %s", name)
	return models.Team{}
}

func startedSession(t *testing.T, st *memory.Store, tournamentID uuid.UUID) *Session {
	t.Helper()
	s := NewSession(st, nil, DrawPolicyOrdered, clockwork.NewFakeClock())
	_, err := s.SelectTournament(context.Background(), tournamentID)
	assert.Nil(t, err)
	_, err = s.Start(context.Background())
	assert.Nil(t, err)
	return s
}

func TestStart_Guards(t *testing.T) {
	ctx := context.Background()
	st, tournament := seedBackend(t)

	s := NewSession(st, nil, DrawPolicyOrdered, nil)
	_, err := s.Start(ctx)
	check.True(t, errors.Is(err, ErrNoTournamentSelected))

	// A tournament with no players cannot start.
	empty, err := st.CreateTournament(ctx, store.CreateTournamentRequest{Name: "Empty"})
	assert.Nil(t, err)
	_, err = s.SelectTournament(ctx, empty.ID)
	assert.Nil(t, err)
	_, err = s.Start(ctx)
	check.True(t, errors.Is(err, ErrNoUnassignedPlayers))

	_, err = s.SelectTournament(ctx, tournament.ID)
	assert.Nil(t, err)
	player, err := s.Start(ctx)
	assert.Nil(t, err)
	check.NotNil(t, player)
	check.Equal(t, models.SessionStatusInProgress, s.Status())
}

func TestAssign_FullScenario(t *testing.T) {
	ctx := context.Background()
	st, tournament := seedBackend(t)
	s := startedSession(t, st, tournament.ID)

	teamA := tournament.TeamByID(tournament.Teams[0].ID)
	teamB := tournament.TeamByID(tournament.Teams[1].ID)

	// P1 -> A for 60.
	result, err := s.Assign(ctx, teamA.ID, "60")
	assert.Nil(t, err)
	check.Equal(t, "P1", result.Player.EmpID)
	check.True(t, result.Team.RemainingBudget.Equal(decimal.NewFromInt(40)))

	// P2 -> A for 50: rejected locally, budget quoted, nothing changes.
	_, err = s.Assign(ctx, teamA.ID, "50")
	assert.True(t, errors.Is(err, ledger.ErrInsufficientBudget))
	check.True(t, strings.Contains(err.Error(), "40"))
	check.True(t, teamNamed(t, s.View(), "Team A").RemainingBudget.Equal(decimal.NewFromInt(40)))
	check.Equal(t, models.SessionStatusInProgress, s.Status())

	// P2 -> B for 50.
	result, err = s.Assign(ctx, teamB.ID, "50")
	assert.Nil(t, err)
	check.True(t, result.Team.RemainingBudget.IsZero())

	// P3 -> A for 40 empties the pool and completes the session.
	result, err = s.Assign(ctx, teamA.ID, "40")
	assert.Nil(t, err)
	check.True(t, result.Team.RemainingBudget.IsZero())
	check.Equal(t, models.SessionStatusComplete, s.Status())
	check.Equal(t, 0, result.Summary.RemainingPlayers)

	// Complete offers no further draws or assignments.
	_, err = s.Next(ctx)
	check.True(t, errors.Is(err, ErrNotInProgress))
	_, err = s.Assign(ctx, teamA.ID, "10")
	check.True(t, errors.Is(err, ErrNotInProgress))
}

func TestAssign_ValidationErrors(t *testing.T) {
	ctx := context.Background()
	st, tournament := seedBackend(t)
	s := startedSession(t, st, tournament.ID)
	teamA := tournament.Teams[0]

	_, err := s.Assign(ctx, uuid.Nil, "10")
	check.True(t, errors.Is(err, ledger.ErrNoTeamSelected))

	_, err = s.Assign(ctx, teamA.ID, "not-a-number")
	check.True(t, errors.Is(err, ledger.ErrInvalidBidAmount))

	_, err = s.Assign(ctx, teamA.ID, "-5")
	check.True(t, errors.Is(err, ledger.ErrInvalidBidAmount))

	_, err = s.Assign(ctx, teamA.ID, "0")
	check.True(t, errors.Is(err, ledger.ErrInvalidBidAmount))

	// None of the rejected attempts consumed the current player.
	p, ok := s.Current()
	check.True(t, ok)
	check.Equal(t, "P1", p.EmpID)
}

func TestAssign_ConflictTriggersRefresh(t *testing.T) {
	ctx := context.Background()
	st, tournament := seedBackend(t)
	teamA := tournament.Teams[0]

	stale := startedSession(t, st, tournament.ID)
	other := startedSession(t, st, tournament.ID)

	// Another operator sells P1 first.
	_, err := other.Assign(ctx, teamA.ID, "30")
	assert.Nil(t, err)

	// The stale session still points at P1; its attempt must be rejected
	// and its local view refreshed.
	p, ok := stale.Current()
	assert.True(t, ok)
	check.Equal(t, "P1", p.EmpID)

	_, err = stale.Assign(ctx, teamA.ID, "20")
	assert.True(t, errors.Is(err, store.ErrPlayerAlreadyAssigned))

	// After the forced refresh P1 is gone from the pool and the ledger
	// reflects the other session's debit.
	v := stale.View()
	check.Equal(t, 2, v.PoolRemaining)
	check.True(t, teamNamed(t, v, "Team A").RemainingBudget.Equal(decimal.NewFromInt(70)))
	p, ok = stale.Current()
	assert.True(t, ok)
	check.NotEqual(t, "P1", p.EmpID)
}

func TestAssign_TransientErrorLeavesStateUntouched(t *testing.T) {
	ctx := context.Background()
	st, tournament := seedBackend(t)
	flaky := &failingStore{Store: st}
	teamA := tournament.Teams[0]

	s := NewSession(flaky, nil, DrawPolicyOrdered, nil)
	_, err := s.SelectTournament(ctx, tournament.ID)
	assert.Nil(t, err)
	_, err = s.Start(ctx)
	assert.Nil(t, err)

	flaky.fail = true
	_, err = s.Assign(ctx, teamA.ID, "30")
	assert.True(t, errors.Is(err, store.ErrUnavailable))

	// No partial debit, no partial assignment, controls usable again.
	v := s.View()
	check.True(t, teamNamed(t, v, "Team A").RemainingBudget.Equal(decimal.NewFromInt(100)))
	check.Equal(t, 3, v.PoolRemaining)
	check.Equal(t, models.SessionStatusInProgress, s.Status())

	flaky.fail = false
	result, err := s.Assign(ctx, teamA.ID, "30")
	assert.Nil(t, err)
	check.Equal(t, "P1", result.Player.EmpID)
}

func TestAssign_SequentialSubmissions(t *testing.T) {
	ctx := context.Background()
	st, tournament := seedBackend(t)
	slow := &slowStore{Store: st, release: make(chan struct{}), entered: make(chan struct{})}
	teamA := tournament.Teams[0]

	s := NewSession(slow, nil, DrawPolicyOrdered, nil)
	_, err := s.SelectTournament(ctx, tournament.ID)
	assert.Nil(t, err)
	_, err = s.Start(ctx)
	assert.Nil(t, err)

	done := make(chan error, 1)
	go func() {
		_, err := s.Assign(ctx, teamA.ID, "30")
		done <- err
	}()
	<-slow.entered

	// A second attempt while the first is in flight is rejected outright.
	_, err = s.Assign(ctx, teamA.ID, "30")
	check.True(t, errors.Is(err, ErrAssignmentInFlight))
	check.True(t, errors.Is(s.Shuffle(), ErrAssignmentInFlight))

	close(slow.release)
	assert.Nil(t, <-done)
}

func TestNext_SkipAdvancesWithoutAssigning(t *testing.T) {
	ctx := context.Background()
	st, tournament := seedBackend(t)
	s := startedSession(t, st, tournament.ID)

	p, ok := s.Current()
	assert.True(t, ok)
	check.Equal(t, "P1", p.EmpID)

	next, err := s.Next(ctx)
	assert.Nil(t, err)
	assert.NotNil(t, next)
	check.Equal(t, "P2", next.EmpID)

	// Skipping never shrinks the pool.
	check.Equal(t, 3, s.View().PoolRemaining)
}

func TestNext_ExhaustingPoolCompletes(t *testing.T) {
	ctx := context.Background()
	st, tournament := seedBackend(t)
	teamA := tournament.Teams[0]
	s := startedSession(t, st, tournament.ID)

	// Selling every player one by one must land in Complete.
	for _, bid := range []string{"10", "10", "10"} {
		_, err := s.Assign(ctx, teamA.ID, bid)
		assert.Nil(t, err)
	}
	check.Equal(t, models.SessionStatusComplete, s.Status())
}

func TestSelectTournament_ResetsInProgressSession(t *testing.T) {
	ctx := context.Background()
	st, tournament := seedBackend(t)
	s := startedSession(t, st, tournament.ID)

	other, err := st.CreateTournament(ctx, store.CreateTournamentRequest{Name: "Second Cup"})
	assert.Nil(t, err)

	_, err = s.SelectTournament(ctx, other.ID)
	assert.Nil(t, err)
	check.Equal(t, models.SessionStatusNotStarted, s.Status())
	_, ok := s.Current()
	check.False(t, ok)
}

func TestEnd_KeepsCommittedAssignments(t *testing.T) {
	ctx := context.Background()
	st, tournament := seedBackend(t)
	teamA := tournament.Teams[0]
	s := startedSession(t, st, tournament.ID)

	_, err := s.Assign(ctx, teamA.ID, "25")
	assert.Nil(t, err)

	assert.Nil(t, s.End(ctx))
	check.Equal(t, models.SessionStatusNotStarted, s.Status())

	status, err := st.GetAuctionStatus(ctx, tournament.ID)
	assert.Nil(t, err)
	check.Equal(t, 1, status.AssignedPlayers)
}

func TestFilter_ExhaustedFilterDoesNotComplete(t *testing.T) {
	ctx := context.Background()
	st, tournament := seedBackend(t)
	_, err := st.CreatePlayer(ctx, store.CreatePlayerRequest{
		TournamentID: tournament.ID, EmpID: "B1", Name: "Lone Bowler",
		Type: models.PlayerTypeBowler,
	})
	assert.Nil(t, err)

	s := startedSession(t, st, tournament.ID)
	assert.Nil(t, s.SetFilter("bowler"))

	p, ok := s.Current()
	assert.True(t, ok)
	check.Equal(t, "B1", p.EmpID)

	// Advancing past the only bowler leaves the session in progress with
	// no current player; batsmen are still unsold.
	next, err := s.Next(ctx)
	assert.Nil(t, err)
	check.Nil(t, next)
	check.Equal(t, models.SessionStatusInProgress, s.Status())

	assert.Nil(t, s.SetFilter("all"))
	_, ok = s.Current()
	check.True(t, ok)
}

func TestRandomPolicy_DrawsFromPool(t *testing.T) {
	ctx := context.Background()
	st, tournament := seedBackend(t)
	teamA := tournament.Teams[0]

	s := NewSession(st, nil, DrawPolicyRandom, nil)
	_, err := s.SelectTournament(ctx, tournament.ID)
	assert.Nil(t, err)
	first, err := s.Start(ctx)
	assert.Nil(t, err)
	check.NotNil(t, first)

	// Assigning auto-draws the next random player until the pool empties.
	for i := 0; i < 3; i++ {
		_, ok := s.Current()
		assert.True(t, ok)
		_, err = s.Assign(ctx, teamA.ID, "10")
		assert.Nil(t, err)
	}
	check.Equal(t, models.SessionStatusComplete, s.Status())
}

// failingStore wraps the in-memory backend and fails assignment calls with
// a transport error on demand.
type failingStore struct {
	*memory.Store
	fail bool
}

func (f *failingStore) AssignPlayer(ctx context.Context, req store.AssignPlayerRequest) (*models.Player, error) {
	if f.fail {
		return nil, store.ErrUnavailable
	}
	return f.Store.AssignPlayer(ctx, req)
}

// slowStore blocks assignment calls until released, to exercise the
// in-flight guard.
type slowStore struct {
	*memory.Store
	release chan struct{}
	entered chan struct{}
	once    sync.Once
}

func (s *slowStore) AssignPlayer(ctx context.Context, req store.AssignPlayerRequest) (*models.Player, error) {
	s.once.Do(func() { close(s.entered) })
	<-s.release
	return s.Store.AssignPlayer(ctx, req)
}
