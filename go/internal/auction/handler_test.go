package auction

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/peterldowns/testy/assert"
	"github.com/peterldowns/testy/check"

	"github.com/jaganpon/auction/go/internal/models"
)

func newTestServer(t *testing.T) (*httptest.Server, *Session, *models.Tournament) {
	t.Helper()
	st, tournament := seedBackend(t)
	session := NewSession(st, nil, DrawPolicyOrdered, nil)

	mux := http.NewServeMux()
	NewHandler(session).RegisterRoutes(mux)
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv, session, tournament
}

func postJSON(t *testing.T, srv *httptest.Server, path string, payload interface{}) *http.Response {
	t.Helper()
	body, err := json.Marshal(payload)
	assert.Nil(t, err)
	resp, err := http.Post(srv.URL+path, "application/json", bytes.NewReader(body))
	assert.Nil(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decodeView(t *testing.T, resp *http.Response) View {
	t.Helper()
	var v View
	assert.Nil(t, json.NewDecoder(resp.Body).Decode(&v))
	return v
}

func TestHandler_FullAuctionFlow(t *testing.T) {
	srv, _, tournament := newTestServer(t)

	resp := postJSON(t, srv, "/api/session/tournament", map[string]string{
		"tournament_id": tournament.ID.String(),
	})
	check.Equal(t, http.StatusOK, resp.StatusCode)

	resp = postJSON(t, srv, "/api/session/start", nil)
	check.Equal(t, http.StatusOK, resp.StatusCode)
	v := decodeView(t, resp)
	check.Equal(t, models.SessionStatusInProgress, v.Status)
	assert.NotNil(t, v.CurrentPlayer)
	check.Equal(t, "P1", v.CurrentPlayer.EmpID)

	teamA := teamNamed(t, v, "Team A")
	resp = postJSON(t, srv, "/api/session/assign", map[string]string{
		"team_id": teamA.ID.String(),
		"amount":  "60",
	})
	check.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err := http.Get(srv.URL + "/api/session")
	assert.Nil(t, err)
	defer resp.Body.Close()
	v = decodeView(t, resp)
	check.Equal(t, 2, v.PoolRemaining)
	check.Equal(t, "40", teamNamed(t, v, "Team A").RemainingBudget.String())
}

func TestHandler_AssignInsufficientBudget(t *testing.T) {
	srv, session, tournament := newTestServer(t)
	ctx := context.Background()

	_, err := session.SelectTournament(ctx, tournament.ID)
	assert.Nil(t, err)
	_, err = session.Start(ctx)
	assert.Nil(t, err)

	teamB := teamNamed(t, session.View(), "Team B")
	resp := postJSON(t, srv, "/api/session/assign", map[string]string{
		"team_id": teamB.ID.String(),
		"amount":  "75",
	})
	check.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var body map[string]string
	assert.Nil(t, json.NewDecoder(resp.Body).Decode(&body))
	check.True(t, strings.Contains(body["detail"], "Team B has only ₹50 remaining"))
}

func TestHandler_StartWithoutTournament(t *testing.T) {
	srv, _, _ := newTestServer(t)

	resp := postJSON(t, srv, "/api/session/start", nil)
	check.Equal(t, http.StatusConflict, resp.StatusCode)

	var body map[string]string
	assert.Nil(t, json.NewDecoder(resp.Body).Decode(&body))
	check.True(t, strings.Contains(body["detail"], "select a tournament"))
}

func TestHandler_SelectUnknownTournament(t *testing.T) {
	srv, _, _ := newTestServer(t)

	resp := postJSON(t, srv, "/api/session/tournament", map[string]string{
		"tournament_id": uuid.NewString(),
	})
	check.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestHandler_ShuffleBeforeStart(t *testing.T) {
	srv, _, tournament := newTestServer(t)

	resp := postJSON(t, srv, "/api/session/tournament", map[string]string{
		"tournament_id": tournament.ID.String(),
	})
	check.Equal(t, http.StatusOK, resp.StatusCode)

	resp = postJSON(t, srv, "/api/session/shuffle", nil)
	check.Equal(t, http.StatusConflict, resp.StatusCode)
}
