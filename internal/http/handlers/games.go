package handlers

import (
	nethttp "net/http"
	"strings"
	"time"

	appplayers "github.com/preston-bernstein/nfl-broadcast-service/internal/app/players"
	domaingames "github.com/preston-bernstein/nfl-broadcast-service/internal/domain/games"
)

const defaultSummaryTemperature = 0.7

type scheduleResponse struct {
	Date   string             `json:"date,omitempty"`
	Season string             `json:"season,omitempty"`
	Games  []domaingames.Game `json:"games"`
}

type rosterResponse struct {
	ScoreID int                `json:"scoreId"`
	Players []appplayers.Entry `json:"players"`
}

type summaryRequest struct {
	Temperature *float64 `json:"temperature"`
}

// Schedule lists games for ?date=YYYY-MM-DD, or for ?season= (default season when both are absent).
func (h *Handler) Schedule(w nethttp.ResponseWriter, r *nethttp.Request) {
	date := strings.TrimSpace(r.URL.Query().Get("date"))
	season := strings.TrimSpace(r.URL.Query().Get("season"))

	list, err := h.games.Schedule(r.Context(), date, season)
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}
	resp := scheduleResponse{Date: date, Games: list}
	if date == "" {
		resp.Season = season
	}
	writeJSON(w, nethttp.StatusOK, resp, h.logger)
}

// Today lists the current slate, keyed by the provider's Eastern date.
func (h *Handler) Today(w nethttp.ResponseWriter, r *nethttp.Request) {
	date, list, err := h.games.Today(r.Context())
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, scheduleResponse{Date: date, Games: list}, h.logger)
}

// CurrentTime reports the provider clock, which runs in the past during replays.
func (h *Handler) CurrentTime(w nethttp.ResponseWriter, r *nethttp.Request) {
	now, err := h.games.CurrentTime(r.Context())
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, map[string]time.Time{"now": now}, h.logger)
}

// GameByID returns a freshly fetched game.
func (h *Handler) GameByID(w nethttp.ResponseWriter, r *nethttp.Request) {
	scoreID, ok := pathScoreID(r)
	if !ok {
		writeError(w, r, nethttp.StatusBadRequest, "invalid game id", h.logger)
		return
	}
	game, err := h.games.Game(r.Context(), scoreID)
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, game, h.logger)
}

// Roster lists both teams' players for the selector, optionally filtered by ?q=.
func (h *Handler) Roster(w nethttp.ResponseWriter, r *nethttp.Request) {
	scoreID, ok := pathScoreID(r)
	if !ok {
		writeError(w, r, nethttp.StatusBadRequest, "invalid game id", h.logger)
		return
	}
	game, err := h.games.Game(r.Context(), scoreID)
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}
	entries := appplayers.Filter(h.players.Roster(r.Context(), game), r.URL.Query().Get("q"))
	writeJSON(w, nethttp.StatusOK, rosterResponse{ScoreID: scoreID, Players: entries}, h.logger)
}

// Summary generates an on-demand summary of the game's current phase.
func (h *Handler) Summary(w nethttp.ResponseWriter, r *nethttp.Request) {
	scoreID, ok := pathScoreID(r)
	if !ok {
		writeError(w, r, nethttp.StatusBadRequest, "invalid game id", h.logger)
		return
	}
	var req summaryRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, nethttp.StatusBadRequest, "invalid request body", h.logger)
		return
	}
	temperature := defaultSummaryTemperature
	if req.Temperature != nil {
		temperature = *req.Temperature
	}
	summary, err := h.games.Summary(r.Context(), scoreID, temperature)
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, summary, h.logger)
}
