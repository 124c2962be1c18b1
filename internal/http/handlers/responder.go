package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"math"
	"net/http"
	"strconv"

	"github.com/preston-bernstein/nfl-broadcast-service/internal/app/broadcasts"
	appgames "github.com/preston-bernstein/nfl-broadcast-service/internal/app/games"
	"github.com/preston-bernstein/nfl-broadcast-service/internal/broadcast"
	"github.com/preston-bernstein/nfl-broadcast-service/internal/http/middleware"
	"github.com/preston-bernstein/nfl-broadcast-service/internal/logging"
	"github.com/preston-bernstein/nfl-broadcast-service/internal/providers"
)

const maxBodyBytes = 1 << 20

func writeJSON(w http.ResponseWriter, status int, payload any, logger *slog.Logger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil && logger != nil {
		logger.Error("failed to encode response", "err", err)
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, message string, logger *slog.Logger) {
	reqID := middleware.RequestIDFromContext(r.Context())
	if reqID == "" {
		reqID = r.Header.Get("X-Request-ID")
	}
	body := map[string]string{"error": message}
	if reqID != "" {
		body["requestId"] = reqID
	}
	writeJSON(w, status, body, logger)
}

// writeServiceError maps service and provider errors to a status and a client-safe message.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error, logger *slog.Logger) {
	status, message := statusFor(err)
	if rl, ok := providers.AsRateLimitError(err); ok && rl.RetryAfter > 0 {
		w.Header().Set("Retry-After", strconv.Itoa(int(math.Ceil(rl.RetryAfter.Seconds()))))
	}
	if status >= http.StatusInternalServerError {
		logging.Error(loggerFromContext(r, logger), "request failed", err, logging.FieldStatusCode, status)
	}
	writeError(w, r, status, message, logger)
}

func statusFor(err error) (int, string) {
	if _, ok := providers.AsRateLimitError(err); ok {
		return http.StatusTooManyRequests, "provider rate limited"
	}
	switch {
	case errors.Is(err, broadcasts.ErrSessionNotFound):
		return http.StatusNotFound, "session not found"
	case errors.Is(err, appgames.ErrGameNotFound), errors.Is(err, providers.ErrNotFound):
		return http.StatusNotFound, "game not found"
	case errors.Is(err, appgames.ErrInvalidDate),
		errors.Is(err, appgames.ErrInvalidTemperature),
		errors.Is(err, broadcasts.ErrInvalidPreferences):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, broadcast.ErrAlreadyRunning):
		return http.StatusConflict, "session is already running"
	case errors.Is(err, broadcast.ErrGameNotInProgress):
		return http.StatusConflict, "game is not in progress"
	case errors.Is(err, broadcast.ErrNoPlays):
		return http.StatusConflict, "no plays available for this game yet"
	case errors.Is(err, broadcast.ErrInterrupted):
		return http.StatusConflict, "session changed while starting"
	case errors.Is(err, broadcasts.ErrShuttingDown):
		return http.StatusServiceUnavailable, "shutting down"
	case errors.Is(err, broadcast.ErrPlaysUnavailable):
		return http.StatusBadGateway, "unable to load plays for this game"
	default:
		return http.StatusBadGateway, "provider unavailable"
	}
}

// decodeJSON reads an optional JSON body into dst. An empty body leaves dst untouched.
func decodeJSON(r *http.Request, dst any) error {
	if r.Body == nil {
		return nil
	}
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	if err := dec.Decode(dst); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

func loggerFromContext(r *http.Request, fallback *slog.Logger) *slog.Logger {
	if r == nil {
		return fallback
	}
	return logging.FromContext(r.Context(), fallback)
}
