package handlers

import (
	"log/slog"
	nethttp "net/http"
	"strconv"

	"github.com/preston-bernstein/nfl-broadcast-service/internal/app/broadcasts"
	appgames "github.com/preston-bernstein/nfl-broadcast-service/internal/app/games"
	appplayers "github.com/preston-bernstein/nfl-broadcast-service/internal/app/players"
	"github.com/preston-bernstein/nfl-broadcast-service/internal/feed"
	"github.com/preston-bernstein/nfl-broadcast-service/internal/poller"
)

// Handler wires HTTP routes to the game, player and broadcast services.
type Handler struct {
	games    *appgames.Service
	players  *appplayers.Service
	sessions *broadcasts.Service
	hub      *feed.Hub
	logger   *slog.Logger
	statusFn func() poller.Status
}

// NewHandler constructs a Handler. statusFn may be nil, in which case the service is always ready.
func NewHandler(games *appgames.Service, players *appplayers.Service, sessions *broadcasts.Service, hub *feed.Hub, logger *slog.Logger, statusFn func() poller.Status) *Handler {
	return &Handler{
		games:    games,
		players:  players,
		sessions: sessions,
		hub:      hub,
		logger:   logger,
		statusFn: statusFn,
	}
}

// Health reports the service health.
func (h *Handler) Health(w nethttp.ResponseWriter, r *nethttp.Request) {
	if err := r.Context().Err(); err != nil {
		writeError(w, r, nethttp.StatusServiceUnavailable, "shutting down", h.logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, map[string]string{"status": "ok"}, h.logger)
}

// Ready reports readiness for traffic (e.g., for Kubernetes probes).
func (h *Handler) Ready(w nethttp.ResponseWriter, r *nethttp.Request) {
	if h.statusFn == nil {
		writeJSON(w, nethttp.StatusOK, map[string]string{"status": "ready"}, h.logger)
		return
	}
	status := h.statusFn()
	if status.IsReady() {
		writeJSON(w, nethttp.StatusOK, map[string]string{"status": "ready"}, h.logger)
		return
	}
	msg := status.LastError
	if msg == "" {
		msg = "not ready"
	}
	writeError(w, r, nethttp.StatusServiceUnavailable, msg, h.logger)
}

func pathScoreID(r *nethttp.Request) (int, bool) {
	id, err := strconv.Atoi(r.PathValue("scoreID"))
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func queryInt(r *nethttp.Request, key string) (int, bool) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return 0, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}
