package handlers

import (
	"crypto/subtle"
	"log/slog"
	"net/http"
	"strings"

	"github.com/preston-bernstein/nfl-broadcast-service/internal/app/broadcasts"
	appgames "github.com/preston-bernstein/nfl-broadcast-service/internal/app/games"
	"github.com/preston-bernstein/nfl-broadcast-service/internal/http/requestutil"
	"github.com/preston-bernstein/nfl-broadcast-service/internal/logging"
	"github.com/preston-bernstein/nfl-broadcast-service/internal/timeutil"
)

// AdminHandler exposes operator endpoints guarded by ADMIN_TOKEN.
// With no token configured every admin request is refused.
type AdminHandler struct {
	sessions *broadcasts.Service
	games    *appgames.Service
	token    string
	logger   *slog.Logger
}

// NewAdminHandler constructs an AdminHandler.
func NewAdminHandler(sessions *broadcasts.Service, games *appgames.Service, token string, logger *slog.Logger) *AdminHandler {
	return &AdminHandler{
		sessions: sessions,
		games:    games,
		token:    token,
		logger:   logger,
	}
}

// ListSessions returns a snapshot of every session.
func (h *AdminHandler) ListSessions(w http.ResponseWriter, r *http.Request) {
	if !h.guard(w, r) {
		return
	}
	list := h.sessions.List()
	writeJSON(w, http.StatusOK, map[string]any{
		"sessions": list,
		"running":  h.sessions.Running(),
	}, h.logger)
}

// StopSessions returns every running session to idle.
func (h *AdminHandler) StopSessions(w http.ResponseWriter, r *http.Request) {
	if !h.guard(w, r) {
		return
	}
	logger := loggerFromContext(r, h.logger)
	n := h.sessions.StopAll(r.Context())
	logging.Info(logger, "admin stopped sessions", logging.FieldCount, n)
	writeJSON(w, http.StatusOK, map[string]any{"stopped": n, "status": "ok"}, logger)
}

// RefreshSlate reloads the stored slate for ?date= (defaults to today's Eastern date).
func (h *AdminHandler) RefreshSlate(w http.ResponseWriter, r *http.Request) {
	if !h.guard(w, r) {
		return
	}
	logger := loggerFromContext(r, h.logger)
	date := strings.TrimSpace(r.URL.Query().Get("date"))
	if date == "" {
		date = h.games.TodayDate(r.Context())
	}
	if _, err := timeutil.ParseDate(date); err != nil {
		logging.Warn(logger, "admin slate invalid date", logging.FieldDate, date)
		writeError(w, r, http.StatusBadRequest, "invalid date format", logger)
		return
	}
	n, err := h.games.RefreshSlate(r.Context(), date)
	if err != nil {
		logging.Warn(logger, "admin slate refresh failed", logging.FieldDate, date, logging.FieldError, err)
		writeServiceError(w, r, err, logger)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"date":   date,
		"games":  n,
		"status": "ok",
	}, logger)
}

func (h *AdminHandler) guard(w http.ResponseWriter, r *http.Request) bool {
	if h.authorize(r) {
		return true
	}
	logging.Warn(h.logger, "admin unauthorized",
		logging.FieldPath, r.URL.Path,
		"client_ip", requestutil.ClientIP(r),
	)
	writeError(w, r, http.StatusUnauthorized, "unauthorized", h.logger)
	return false
}

func (h *AdminHandler) authorize(r *http.Request) bool {
	if h.token == "" {
		return false
	}
	token := requestutil.BearerToken(r)
	return subtle.ConstantTimeCompare([]byte(token), []byte(h.token)) == 1
}
