package auction

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/jaganpon/auction/go/internal/ledger"
	"github.com/jaganpon/auction/go/internal/store"
)

// Handler exposes the operator's auction console over JSON HTTP. Every route
// acts on the single live session.
type Handler struct {
	session *Session
}

// NewHandler creates a new session HTTP handler.
func NewHandler(session *Session) *Handler {
	return &Handler{session: session}
}

// RegisterRoutes registers session routes with an HTTP mux.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/session", h.handleView)
	mux.HandleFunc("POST /api/session/tournament", h.handleSelectTournament)
	mux.HandleFunc("POST /api/session/start", h.handleStart)
	mux.HandleFunc("GET /api/session/current", h.handleCurrent)
	mux.HandleFunc("POST /api/session/next", h.handleNext)
	mux.HandleFunc("POST /api/session/shuffle", h.handleShuffle)
	mux.HandleFunc("POST /api/session/reset", h.handleResetOrder)
	mux.HandleFunc("POST /api/session/filter", h.handleSetFilter)
	mux.HandleFunc("POST /api/session/bid", h.handleSetPendingBid)
	mux.HandleFunc("POST /api/session/assign", h.handleAssign)
	mux.HandleFunc("POST /api/session/end", h.handleEnd)
	mux.HandleFunc("POST /api/session/refresh", h.handleRefresh)
}

func (h *Handler) handleView(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, h.session.View())
}

func (h *Handler) handleSelectTournament(w http.ResponseWriter, r *http.Request) {
	var req struct {
		TournamentID uuid.UUID `json:"tournament_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeDetail(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if _, err := h.session.SelectTournament(r.Context(), req.TournamentID); err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, h.session.View())
}

func (h *Handler) handleStart(w http.ResponseWriter, r *http.Request) {
	if _, err := h.session.Start(r.Context()); err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, h.session.View())
}

func (h *Handler) handleCurrent(w http.ResponseWriter, r *http.Request) {
	player, ok := h.session.Current()
	if !ok {
		h.writeError(w, ErrNoCurrentPlayer)
		return
	}
	h.writeJSON(w, http.StatusOK, player)
}

func (h *Handler) handleNext(w http.ResponseWriter, r *http.Request) {
	if _, err := h.session.Next(r.Context()); err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, h.session.View())
}

func (h *Handler) handleShuffle(w http.ResponseWriter, r *http.Request) {
	if err := h.session.Shuffle(); err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, h.session.View())
}

func (h *Handler) handleResetOrder(w http.ResponseWriter, r *http.Request) {
	if err := h.session.ResetOrder(); err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, h.session.View())
}

func (h *Handler) handleSetFilter(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Type string `json:"type"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeDetail(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.session.SetFilter(req.Type); err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, h.session.View())
}

func (h *Handler) handleSetPendingBid(w http.ResponseWriter, r *http.Request) {
	var req struct {
		TeamID uuid.UUID `json:"team_id"`
		Amount string    `json:"amount"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeDetail(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.session.SetPendingBid(req.TeamID, req.Amount); err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, h.session.View())
}

func (h *Handler) handleAssign(w http.ResponseWriter, r *http.Request) {
	var req struct {
		TeamID uuid.UUID `json:"team_id"`
		Amount string    `json:"amount"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeDetail(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.session.Assign(r.Context(), req.TeamID, req.Amount)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, result)
}

func (h *Handler) handleEnd(w http.ResponseWriter, r *http.Request) {
	if err := h.session.End(r.Context()); err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, h.session.View())
}

func (h *Handler) handleRefresh(w http.ResponseWriter, r *http.Request) {
	if err := h.session.Refresh(r.Context()); err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, h.session.View())
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Error().Err(err).Msg("failed to encode response")
	}
}

func (h *Handler) writeDetail(w http.ResponseWriter, status int, detail string) {
	h.writeJSON(w, status, map[string]string{"detail": detail})
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ledger.ErrNoTeamSelected),
		errors.Is(err, ledger.ErrInvalidBidAmount),
		errors.Is(err, ledger.ErrInsufficientBudget):
		h.writeDetail(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, ErrNoTournamentSelected),
		errors.Is(err, ErrNoUnassignedPlayers),
		errors.Is(err, ErrNotInProgress),
		errors.Is(err, ErrNoCurrentPlayer):
		h.writeDetail(w, http.StatusConflict, err.Error())
	case errors.Is(err, ErrAssignmentInFlight):
		h.writeDetail(w, http.StatusTooManyRequests, err.Error())
	case errors.Is(err, store.ErrNotFound):
		h.writeDetail(w, http.StatusNotFound, err.Error())
	case errors.Is(err, store.ErrPlayerAlreadyAssigned):
		h.writeDetail(w, http.StatusConflict, err.Error())
	case errors.Is(err, store.ErrInsufficientBudget), errors.Is(err, store.ErrInvalidRequest):
		h.writeDetail(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, store.ErrUnavailable):
		h.writeDetail(w, http.StatusBadGateway, err.Error())
	default:
		log.Error().Err(err).Msg("unhandled session handler error")
		h.writeDetail(w, http.StatusInternalServerError, "internal server error")
	}
}
