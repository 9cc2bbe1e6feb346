package tournament

import (
	"context"
	"errors"
	"testing"

	"github.com/peterldowns/testy/assert"
	"github.com/peterldowns/testy/check"
	"github.com/shopspring/decimal"

	"github.com/jaganpon/auction/go/internal/models"
	"github.com/jaganpon/auction/go/internal/store"
	"github.com/jaganpon/auction/go/internal/store/memory"
)

func newApp(t *testing.T) (*App, *memory.Store) {
	t.Helper()
	st := memory.NewStore()
	return NewApp(st), st
}

func TestCreateTournament_Validation(t *testing.T) {
	ctx := context.Background()
	app, _ := newApp(t)

	_, err := app.CreateTournament(ctx, store.CreateTournamentRequest{})
	check.True(t, errors.Is(err, store.ErrInvalidRequest))

	tournament, err := app.CreateTournament(ctx, store.CreateTournamentRequest{Name: "Premier Cup"})
	assert.Nil(t, err)
	check.Equal(t, "Premier Cup", tournament.Name)
}

func TestCreateTeam_Validation(t *testing.T) {
	ctx := context.Background()
	app, _ := newApp(t)
	tournament, err := app.CreateTournament(ctx, store.CreateTournamentRequest{Name: "Premier Cup"})
	assert.Nil(t, err)

	_, err = app.CreateTeam(ctx, store.CreateTeamRequest{TournamentID: tournament.ID, Name: "Titans"})
	check.True(t, errors.Is(err, store.ErrInvalidRequest))

	team, err := app.CreateTeam(ctx, store.CreateTeamRequest{
		TournamentID: tournament.ID, Name: "Titans", TotalBudget: decimal.NewFromInt(100),
	})
	assert.Nil(t, err)
	check.True(t, team.RemainingBudget.Equal(decimal.NewFromInt(100)))
}

func TestUpdateTeam_BudgetGuard(t *testing.T) {
	ctx := context.Background()
	app, st := newApp(t)
	tournament, err := app.CreateTournament(ctx, store.CreateTournamentRequest{Name: "Premier Cup"})
	assert.Nil(t, err)
	team, err := app.CreateTeam(ctx, store.CreateTeamRequest{
		TournamentID: tournament.ID, Name: "Titans", TotalBudget: decimal.NewFromInt(100),
	})
	assert.Nil(t, err)
	_, err = app.CreatePlayer(ctx, store.CreatePlayerRequest{
		TournamentID: tournament.ID, EmpID: "P1", Name: "First Player", Type: models.PlayerTypeBatsman,
	})
	assert.Nil(t, err)

	_, err = st.AssignPlayer(ctx, store.AssignPlayerRequest{
		TournamentID: tournament.ID, TeamID: team.ID, EmpID: "P1",
		BidAmount: decimal.NewFromInt(40),
	})
	assert.Nil(t, err)

	budget := decimal.NewFromInt(500)
	_, err = app.UpdateTeam(ctx, tournament.ID, team.ID, store.UpdateTeamRequest{TotalBudget: &budget})
	check.True(t, errors.Is(err, store.ErrInvalidRequest))

	name := "Giants"
	updated, err := app.UpdateTeam(ctx, tournament.ID, team.ID, store.UpdateTeamRequest{Name: &name})
	assert.Nil(t, err)
	check.Equal(t, "Giants", updated.Name)
}

func TestCreatePlayer_TypeValidation(t *testing.T) {
	ctx := context.Background()
	app, _ := newApp(t)
	tournament, err := app.CreateTournament(ctx, store.CreateTournamentRequest{Name: "Premier Cup"})
	assert.Nil(t, err)

	_, err = app.CreatePlayer(ctx, store.CreatePlayerRequest{
		TournamentID: tournament.ID, EmpID: "P1", Name: "First Player", Type: "Coach",
	})
	check.True(t, errors.Is(err, store.ErrInvalidRequest))

	// Types match case-insensitively against the closed set.
	player, err := app.CreatePlayer(ctx, store.CreatePlayerRequest{
		TournamentID: tournament.ID, EmpID: "P1", Name: "First Player", Type: "batsman",
	})
	assert.Nil(t, err)
	check.NotNil(t, player)
}
