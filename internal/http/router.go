package http

import (
	nethttp "net/http"

	"github.com/preston-bernstein/nfl-broadcast-service/internal/http/handlers"
)

// NewRouter registers HTTP routes on a ServeMux. admin may be nil to leave the admin routes off.
func NewRouter(h *handlers.Handler, admin *handlers.AdminHandler) nethttp.Handler {
	mux := nethttp.NewServeMux()
	mux.HandleFunc("GET /health", h.Health)
	mux.HandleFunc("GET /ready", h.Ready)
	mux.HandleFunc("GET /time", h.CurrentTime)
	mux.HandleFunc("GET /schedule", h.Schedule)

	mux.HandleFunc("GET /games/today", h.Today)
	mux.HandleFunc("GET /games/{scoreID}", h.GameByID)
	mux.HandleFunc("GET /games/{scoreID}/roster", h.Roster)
	mux.HandleFunc("POST /games/{scoreID}/summary", h.Summary)

	mux.HandleFunc("POST /sessions", h.CreateSession)
	mux.HandleFunc("GET /sessions/{id}", h.GetSession)
	mux.HandleFunc("DELETE /sessions/{id}", h.DeleteSession)
	mux.HandleFunc("PUT /sessions/{id}/preferences", h.UpdatePreferences)
	mux.HandleFunc("POST /sessions/{id}/start", h.StartSession)
	mux.HandleFunc("POST /sessions/{id}/stop", h.StopSession)
	mux.HandleFunc("GET /sessions/{id}/messages", h.Messages)
	mux.HandleFunc("GET /sessions/{id}/stream", h.Stream)

	if admin != nil {
		mux.HandleFunc("GET /admin/sessions", admin.ListSessions)
		mux.HandleFunc("POST /admin/sessions/stop", admin.StopSessions)
		mux.HandleFunc("POST /admin/slate/refresh", admin.RefreshSlate)
	}
	return mux
}
