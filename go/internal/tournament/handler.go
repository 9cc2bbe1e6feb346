package tournament

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/jaganpon/auction/go/internal/models"
	"github.com/jaganpon/auction/go/internal/store"
)

// Assigner commits a bid directly against the store. It is wired only when
// this process owns the authoritative store and therefore serves the raw
// backend assign endpoint itself.
type Assigner interface {
	AssignPlayer(ctx context.Context, req store.AssignPlayerRequest) (*models.Player, error)
}

// Handler exposes tournament administration over JSON HTTP. When the service
// runs against the in-memory store this surface doubles as the backend API
// that remote consoles consume.
type Handler struct {
	app      *App
	assigner Assigner
}

// NewHandler creates a new tournament HTTP handler. assigner may be nil when
// assignment commits go through a remote backend instead.
func NewHandler(app *App, assigner Assigner) *Handler {
	return &Handler{app: app, assigner: assigner}
}

// RegisterRoutes registers tournament admin routes with an HTTP mux.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	if h.assigner != nil {
		mux.HandleFunc("POST /api/auction/assign", h.handleAssignPlayer)
	}
	mux.HandleFunc("GET /api/tournaments", h.handleListTournaments)
	mux.HandleFunc("POST /api/tournaments", h.handleCreateTournament)
	mux.HandleFunc("GET /api/tournaments/{id}", h.handleGetTournament)
	mux.HandleFunc("GET /api/tournaments/{id}/players", h.handleGetPlayers)
	mux.HandleFunc("POST /api/tournaments/{id}/players", h.handleCreatePlayer)
	mux.HandleFunc("DELETE /api/tournaments/{id}/players/{empId}", h.handleDeletePlayer)
	mux.HandleFunc("GET /api/tournaments/{id}/auction/status", h.handleGetAuctionStatus)
	mux.HandleFunc("POST /api/tournaments/{id}/teams", h.handleCreateTeam)
	mux.HandleFunc("PUT /api/tournaments/{id}/teams/{teamId}", h.handleUpdateTeam)
	mux.HandleFunc("DELETE /api/tournaments/{id}/teams/{teamId}", h.handleDeleteTeam)
}

func (h *Handler) handleListTournaments(w http.ResponseWriter, r *http.Request) {
	tournaments, err := h.app.ListTournaments(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, tournaments)
}

func (h *Handler) handleCreateTournament(w http.ResponseWriter, r *http.Request) {
	var req store.CreateTournamentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeDetail(w, http.StatusBadRequest, "invalid request body")
		return
	}

	tournament, err := h.app.CreateTournament(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, tournament)
}

func (h *Handler) handleGetTournament(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	tournament, err := h.app.GetTournament(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, tournament)
}

func (h *Handler) handleGetPlayers(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	players, err := h.app.GetPlayers(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, players)
}

func (h *Handler) handleCreatePlayer(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	var req store.CreatePlayerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeDetail(w, http.StatusBadRequest, "invalid request body")
		return
	}
	req.TournamentID = id

	player, err := h.app.CreatePlayer(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, player)
}

func (h *Handler) handleDeletePlayer(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	empID := r.PathValue("empId")

	if err := h.app.DeletePlayer(r.Context(), id, empID); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleGetAuctionStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	summary, err := h.app.GetAuctionStatus(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

func (h *Handler) handleCreateTeam(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	var req store.CreateTeamRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeDetail(w, http.StatusBadRequest, "invalid request body")
		return
	}
	req.TournamentID = id

	team, err := h.app.CreateTeam(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, team)
}

func (h *Handler) handleUpdateTeam(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	teamID, ok := pathUUID(w, r, "teamId")
	if !ok {
		return
	}

	var req store.UpdateTeamRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeDetail(w, http.StatusBadRequest, "invalid request body")
		return
	}

	team, err := h.app.UpdateTeam(r.Context(), id, teamID, req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, team)
}

func (h *Handler) handleDeleteTeam(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	teamID, ok := pathUUID(w, r, "teamId")
	if !ok {
		return
	}

	if err := h.app.DeleteTeam(r.Context(), id, teamID); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleAssignPlayer(w http.ResponseWriter, r *http.Request) {
	var req store.AssignPlayerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeDetail(w, http.StatusBadRequest, "invalid request body")
		return
	}

	player, err := h.assigner.AssignPlayer(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}

	resp := struct {
		Player  *models.Player         `json:"player"`
		Team    *models.Team           `json:"team,omitempty"`
		Summary *models.AuctionSummary `json:"summary,omitempty"`
	}{Player: player}

	// Best effort enrichment; the committed assignment already succeeded.
	if tournament, err := h.app.GetTournament(r.Context(), req.TournamentID); err == nil {
		resp.Team = tournament.TeamByID(req.TeamID)
	}
	if summary, err := h.app.GetAuctionStatus(r.Context(), req.TournamentID); err == nil {
		resp.Summary = summary
	}

	writeJSON(w, http.StatusOK, resp)
}

func pathUUID(w http.ResponseWriter, r *http.Request, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(r.PathValue(name))
	if err != nil {
		writeDetail(w, http.StatusBadRequest, "invalid "+name+" format")
		return uuid.Nil, false
	}
	return id, true
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Error().Err(err).Msg("failed to encode response")
	}
}

// writeDetail sends an error in the backend's {"detail": ...} shape.
func writeDetail(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, map[string]string{"detail": detail})
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		writeDetail(w, http.StatusNotFound, err.Error())
	case errors.Is(err, store.ErrPlayerAlreadyAssigned):
		writeDetail(w, http.StatusConflict, err.Error())
	case errors.Is(err, store.ErrInsufficientBudget), errors.Is(err, store.ErrInvalidRequest):
		writeDetail(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, store.ErrUnavailable):
		writeDetail(w, http.StatusBadGateway, err.Error())
	default:
		log.Error().Err(err).Msg("unhandled tournament handler error")
		writeDetail(w, http.StatusInternalServerError, "internal server error")
	}
}
