package handlers

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/preston-bernstein/nfl-broadcast-service/internal/poller"
	"github.com/preston-bernstein/nfl-broadcast-service/internal/teststubs"
	"github.com/preston-bernstein/nfl-broadcast-service/internal/testutil"
)

func newTestHandler(t *testing.T, provider *teststubs.StubProvider) (*Handler, *testutil.Services) {
	t.Helper()
	svc := testutil.NewServices(t, provider)
	return NewHandler(svc.Games, svc.Players, svc.Sessions, svc.Hub, nil, nil), svc
}

// call invokes fn with path values applied, as the router would.
func call(fn http.HandlerFunc, method, target, body string, pathValues map[string]string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	for k, v := range pathValues {
		req.SetPathValue(k, v)
	}
	return testutil.ServeRequest(fn, req)
}

func TestHealth(t *testing.T) {
	h, _ := newTestHandler(t, &teststubs.StubProvider{})

	rr := call(h.Health, http.MethodGet, "/health", "", nil)
	testutil.AssertStatus(t, rr, http.StatusOK)

	var resp map[string]string
	testutil.DecodeJSON(t, rr, &resp)
	assert.Equal(t, "ok", resp["status"])
}

func TestHealthShuttingDownReturnsServiceUnavailable(t *testing.T) {
	h, _ := newTestHandler(t, &teststubs.StubProvider{})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	ctx, cancel := context.WithCancel(req.Context())
	cancel()
	rr := testutil.ServeRequest(http.HandlerFunc(h.Health), req.WithContext(ctx))

	testutil.AssertStatus(t, rr, http.StatusServiceUnavailable)
	var resp map[string]string
	testutil.DecodeJSON(t, rr, &resp)
	assert.Equal(t, "shutting down", resp["error"])
}

func TestReadyWithoutStatusFn(t *testing.T) {
	h, _ := newTestHandler(t, &teststubs.StubProvider{})

	rr := call(h.Ready, http.MethodGet, "/ready", "", nil)
	testutil.AssertStatus(t, rr, http.StatusOK)
}

func TestReadyReflectsPollerStatus(t *testing.T) {
	h, _ := newTestHandler(t, &teststubs.StubProvider{})

	h.statusFn = func() poller.Status {
		return poller.Status{LastSuccess: time.Now()}
	}
	testutil.AssertStatus(t, call(h.Ready, http.MethodGet, "/ready", "", nil), http.StatusOK)

	h.statusFn = func() poller.Status {
		return poller.Status{ConsecutiveFailures: 1, LastError: "upstream timeout"}
	}
	rr := call(h.Ready, http.MethodGet, "/ready", "", nil)
	testutil.AssertStatus(t, rr, http.StatusServiceUnavailable)
	var resp map[string]string
	testutil.DecodeJSON(t, rr, &resp)
	assert.Equal(t, "upstream timeout", resp["error"])

	h.statusFn = func() poller.Status { return poller.Status{} }
	rr = call(h.Ready, http.MethodGet, "/ready", "", nil)
	testutil.DecodeJSON(t, rr, &resp)
	assert.Equal(t, "not ready", resp["error"])
}

func TestPathScoreID(t *testing.T) {
	for raw, want := range map[string]bool{"18001": true, "0": false, "-4": false, "abc": false, "": false} {
		req := httptest.NewRequest(http.MethodGet, "/games/x", nil)
		req.SetPathValue("scoreID", raw)
		_, ok := pathScoreID(req)
		require.Equal(t, want, ok, raw)
	}
}

func TestQueryInt(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/x?after=5&bad=x&neg=-1", nil)
	n, ok := queryInt(req, "after")
	assert.True(t, ok)
	assert.Equal(t, 5, n)
	_, ok = queryInt(req, "bad")
	assert.False(t, ok)
	_, ok = queryInt(req, "neg")
	assert.False(t, ok)
	n, ok = queryInt(req, "missing")
	assert.True(t, ok)
	assert.Zero(t, n)
}
