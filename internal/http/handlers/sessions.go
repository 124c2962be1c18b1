package handlers

import (
	nethttp "net/http"

	appplayers "github.com/preston-bernstein/nfl-broadcast-service/internal/app/players"
	"github.com/preston-bernstein/nfl-broadcast-service/internal/broadcast"
	"github.com/preston-bernstein/nfl-broadcast-service/internal/feed"
	"github.com/preston-bernstein/nfl-broadcast-service/internal/logging"
	"github.com/preston-bernstein/nfl-broadcast-service/internal/playcontext"
)

type startRequest struct {
	ScoreID int `json:"scoreId"`
}

// preferencesRequest patches a session's preferences. Nil fields keep their current value.
// Players are display names from the roster of ScoreID, or of the session's game when ScoreID is zero.
type preferencesRequest struct {
	ScoreID     int                       `json:"scoreId"`
	Players     []string                  `json:"players"`
	Tone        *string                   `json:"tone"`
	Temperature *float64                  `json:"temperature"`
	Image       *playcontext.ImageResults `json:"image"`
}

type preferencesResponse struct {
	Session        broadcast.Snapshot `json:"session"`
	UnknownPlayers []string           `json:"unknownPlayers,omitempty"`
}

type messagesResponse struct {
	SessionID string              `json:"sessionId"`
	Messages  []broadcast.Message `json:"messages"`
}

// CreateSession registers a new idle broadcast session.
func (h *Handler) CreateSession(w nethttp.ResponseWriter, r *nethttp.Request) {
	snap, err := h.sessions.Create(r.Context())
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}
	writeJSON(w, nethttp.StatusCreated, snap, h.logger)
}

// GetSession returns a session's state, selected game and watermark.
func (h *Handler) GetSession(w nethttp.ResponseWriter, r *nethttp.Request) {
	snap, err := h.sessions.Get(r.PathValue("id"))
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, snap, h.logger)
}

// UpdatePreferences applies priority players, tone, temperature and image results from the next narrated play.
func (h *Handler) UpdatePreferences(w nethttp.ResponseWriter, r *nethttp.Request) {
	id := r.PathValue("id")
	var req preferencesRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, nethttp.StatusBadRequest, "invalid request body", h.logger)
		return
	}
	patch := playcontext.PreferencesPatch{
		Tone:        req.Tone,
		Temperature: req.Temperature,
		Image:       req.Image,
	}

	var unknown []string
	if req.Players != nil {
		patch.PriorityPlayers = map[string]int{}
	}
	if len(req.Players) > 0 {
		scoreID := req.ScoreID
		if scoreID == 0 {
			current, err := h.sessions.Get(id)
			if err != nil {
				writeServiceError(w, r, err, h.logger)
				return
			}
			scoreID = current.ScoreID
		}
		if scoreID == 0 {
			writeError(w, r, nethttp.StatusConflict, "select a game before choosing players", h.logger)
			return
		}
		game, err := h.games.Game(r.Context(), scoreID)
		if err != nil {
			writeServiceError(w, r, err, h.logger)
			return
		}
		patch.PriorityPlayers, unknown = appplayers.Priority(h.players.Roster(r.Context(), game), req.Players)
	}

	snap, err := h.sessions.PatchPreferences(id, patch)
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}
	if len(unknown) > 0 {
		logging.Warn(loggerFromContext(r, h.logger), "priority players not on roster",
			logging.FieldSessionID, id,
			logging.FieldCount, len(unknown),
		)
	}
	writeJSON(w, nethttp.StatusOK, preferencesResponse{Session: snap, UnknownPlayers: unknown}, h.logger)
}

// StartSession scopes the session to a game and starts broadcasting it.
func (h *Handler) StartSession(w nethttp.ResponseWriter, r *nethttp.Request) {
	var req startRequest
	if err := decodeJSON(r, &req); err != nil || req.ScoreID <= 0 {
		writeError(w, r, nethttp.StatusBadRequest, "scoreId is required", h.logger)
		return
	}
	snap, err := h.sessions.Start(r.Context(), r.PathValue("id"), req.ScoreID)
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, snap, h.logger)
}

// StopSession returns a session to idle. Stopping an idle session is a no-op.
func (h *Handler) StopSession(w nethttp.ResponseWriter, r *nethttp.Request) {
	snap, err := h.sessions.Stop(r.PathValue("id"))
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, snap, h.logger)
}

// Messages returns the session's ordered message log after ?after=<id>.
func (h *Handler) Messages(w nethttp.ResponseWriter, r *nethttp.Request) {
	after, ok := queryInt(r, "after")
	if !ok {
		writeError(w, r, nethttp.StatusBadRequest, "invalid after", h.logger)
		return
	}
	id := r.PathValue("id")
	msgs, err := h.sessions.Messages(id, after)
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, messagesResponse{SessionID: id, Messages: msgs}, h.logger)
}

// Stream upgrades to a WebSocket and pushes the session's messages after ?after=<id>, in order.
func (h *Handler) Stream(w nethttp.ResponseWriter, r *nethttp.Request) {
	after, ok := queryInt(r, "after")
	if !ok {
		writeError(w, r, nethttp.StatusBadRequest, "invalid after", h.logger)
		return
	}
	id := r.PathValue("id")
	if _, err := h.sessions.Get(id); err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}

	// Subscribe before reading the backlog so nothing published in between is lost.
	sub := h.hub.Subscribe(id)
	backlog, err := h.sessions.Messages(id, after)
	if err != nil {
		sub.Close()
		writeServiceError(w, r, err, h.logger)
		return
	}

	logger := loggerFromContext(r, h.logger)
	conn, err := feed.Upgrader.Upgrade(w, r, nil)
	if err != nil {
		sub.Close()
		logging.Warn(logger, "stream upgrade failed", logging.FieldSessionID, id, logging.FieldError, err)
		return
	}
	logging.Info(logger, "stream opened", logging.FieldSessionID, id, logging.FieldCount, len(backlog))
	if err := feed.Stream(r.Context(), conn, sub, backlog); err != nil {
		logging.Warn(logger, "stream closed with error", logging.FieldSessionID, id, logging.FieldError, err)
		return
	}
	logging.Info(logger, "stream closed", logging.FieldSessionID, id)
}

// DeleteSession stops and discards a session, closing its streams.
func (h *Handler) DeleteSession(w nethttp.ResponseWriter, r *nethttp.Request) {
	id := r.PathValue("id")
	if err := h.sessions.Delete(r.Context(), id); err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}
	h.hub.CloseSession(id)
	w.WriteHeader(nethttp.StatusNoContent)
}
