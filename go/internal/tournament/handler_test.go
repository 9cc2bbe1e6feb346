package tournament

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/peterldowns/testy/assert"
	"github.com/peterldowns/testy/check"
	"github.com/shopspring/decimal"

	"github.com/jaganpon/auction/go/internal/models"
	"github.com/jaganpon/auction/go/internal/store"
	"github.com/jaganpon/auction/go/internal/store/memory"
)

func newAdminServer(t *testing.T) *httptest.Server {
	t.Helper()
	st := memory.NewStore()
	mux := http.NewServeMux()
	NewHandler(NewApp(st), st).RegisterRoutes(mux)
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func doJSON(t *testing.T, method, url string, payload interface{}) *http.Response {
	t.Helper()
	var body bytes.Buffer
	if payload != nil {
		assert.Nil(t, json.NewEncoder(&body).Encode(payload))
	}
	req, err := http.NewRequest(method, url, &body)
	assert.Nil(t, err)
	resp, err := http.DefaultClient.Do(req)
	assert.Nil(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestHandler_AdminLifecycle(t *testing.T) {
	srv := newAdminServer(t)

	resp := doJSON(t, http.MethodPost, srv.URL+"/api/tournaments", map[string]string{"name": "Premier Cup"})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	var tournament models.Tournament
	assert.Nil(t, json.NewDecoder(resp.Body).Decode(&tournament))

	base := srv.URL + "/api/tournaments/" + tournament.ID.String()

	resp = doJSON(t, http.MethodPost, base+"/teams", map[string]interface{}{
		"name": "Titans", "total_budget": "100",
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	var team models.Team
	assert.Nil(t, json.NewDecoder(resp.Body).Decode(&team))
	check.True(t, team.RemainingBudget.Equal(decimal.NewFromInt(100)))

	resp = doJSON(t, http.MethodPost, base+"/players", map[string]string{
		"emp_id": "P1", "name": "First Player", "type": "Batsman",
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = doJSON(t, http.MethodPost, srv.URL+"/api/auction/assign", store.AssignPlayerRequest{
		TournamentID: tournament.ID, TeamID: team.ID, EmpID: "P1",
		BidAmount: decimal.NewFromInt(60),
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var assigned struct {
		Player  models.Player          `json:"player"`
		Team    *models.Team           `json:"team"`
		Summary *models.AuctionSummary `json:"summary"`
	}
	assert.Nil(t, json.NewDecoder(resp.Body).Decode(&assigned))
	check.True(t, assigned.Player.IsAssigned)
	assert.NotNil(t, assigned.Team)
	check.True(t, assigned.Team.RemainingBudget.Equal(decimal.NewFromInt(40)))
	assert.NotNil(t, assigned.Summary)
	check.Equal(t, 1, assigned.Summary.AssignedPlayers)

	resp = doJSON(t, http.MethodGet, base+"/auction/status", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var summary models.AuctionSummary
	assert.Nil(t, json.NewDecoder(resp.Body).Decode(&summary))
	check.Equal(t, 0, summary.RemainingPlayers)
}

func TestHandler_DeleteTeamWithRosterRejected(t *testing.T) {
	srv := newAdminServer(t)

	resp := doJSON(t, http.MethodPost, srv.URL+"/api/tournaments", map[string]string{"name": "Premier Cup"})
	var tournament models.Tournament
	assert.Nil(t, json.NewDecoder(resp.Body).Decode(&tournament))
	base := srv.URL + "/api/tournaments/" + tournament.ID.String()

	resp = doJSON(t, http.MethodPost, base+"/teams", map[string]interface{}{
		"name": "Titans", "total_budget": "100",
	})
	var team models.Team
	assert.Nil(t, json.NewDecoder(resp.Body).Decode(&team))

	doJSON(t, http.MethodPost, base+"/players", map[string]string{
		"emp_id": "P1", "name": "First Player", "type": "Bowler",
	})
	doJSON(t, http.MethodPost, srv.URL+"/api/auction/assign", store.AssignPlayerRequest{
		TournamentID: tournament.ID, TeamID: team.ID, EmpID: "P1",
		BidAmount: decimal.NewFromInt(10),
	})

	resp = doJSON(t, http.MethodDelete, base+"/teams/"+team.ID.String(), nil)
	check.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// Deleting the assigned player refunds the bid and frees the team.
	resp = doJSON(t, http.MethodDelete, base+"/players/P1", nil)
	check.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp = doJSON(t, http.MethodDelete, base+"/teams/"+team.ID.String(), nil)
	check.Equal(t, http.StatusNoContent, resp.StatusCode)
}

func TestHandler_UnknownTournament(t *testing.T) {
	srv := newAdminServer(t)

	resp := doJSON(t, http.MethodGet, srv.URL+"/api/tournaments/00000000-0000-0000-0000-000000000001", nil)
	check.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = doJSON(t, http.MethodGet, srv.URL+"/api/tournaments/not-a-uuid", nil)
	check.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
