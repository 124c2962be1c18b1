package metrics

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupDisabledReturnsNoHandler(t *testing.T) {
	rec, handler, shutdown, err := Setup(context.Background(), TelemetryConfig{Enabled: false})
	require.NoError(t, err)
	assert.NotNil(t, rec)
	assert.Nil(t, handler)
	assert.NotNil(t, shutdown)
}

func TestSetupEnabledInitializesRecorderAndHandler(t *testing.T) {
	rec, handler, shutdown, err := Setup(context.Background(), TelemetryConfig{
		Enabled:     true,
		ServiceName: "nfl-broadcast-service",
	})
	require.NoError(t, err)
	require.NotNil(t, rec)
	require.NotNil(t, handler)
	require.NotNil(t, shutdown)

	rec.RecordHTTPRequest("GET", "/health", 200, time.Millisecond)
	rec.RecordBroadcastCycle(time.Millisecond, nil)
	rec.RecordNarration("gpt-4o-mini", time.Millisecond, true)
	rec.RecordLookupFailure("props")
	rec.RecordProviderAttempt("sportsdataio", time.Millisecond, nil)
	rec.RecordRateLimit("sportsdataio", time.Second)
	rec.SessionStarted()

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "narrations")

	require.NoError(t, shutdown(context.Background()))
}
