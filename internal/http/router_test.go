package http

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/preston-bernstein/nfl-broadcast-service/internal/broadcast"
	"github.com/preston-bernstein/nfl-broadcast-service/internal/http/handlers"
	"github.com/preston-bernstein/nfl-broadcast-service/internal/testutil"
)

func newTestRouter(t *testing.T) (http.Handler, *testutil.Services) {
	t.Helper()
	svc := testutil.NewServices(t, testutil.LiveProvider(18001, testutil.SamplePlay(1, "Kickoff")))
	h := handlers.NewHandler(svc.Games, svc.Players, svc.Sessions, svc.Hub, nil, nil)
	admin := handlers.NewAdminHandler(svc.Sessions, svc.Games, "secret", nil)
	return NewRouter(h, admin), svc
}

func TestRouterRoutesKnownPaths(t *testing.T) {
	router, _ := newTestRouter(t)

	cases := []struct {
		method string
		path   string
		want   int
	}{
		{http.MethodGet, "/health", http.StatusOK},
		{http.MethodGet, "/ready", http.StatusOK},
		{http.MethodGet, "/time", http.StatusOK},
		{http.MethodGet, "/schedule?date=2024-09-08", http.StatusOK},
		{http.MethodGet, "/games/today", http.StatusOK},
		{http.MethodGet, "/games/18001", http.StatusOK},
		{http.MethodGet, "/games/18001/roster", http.StatusOK},
		{http.MethodPost, "/games/18001/summary", http.StatusOK},
		{http.MethodGet, "/games/abc", http.StatusBadRequest},
		{http.MethodGet, "/sessions/missing", http.StatusNotFound},
		{http.MethodGet, "/admin/sessions", http.StatusUnauthorized},
	}

	for _, tc := range cases {
		rr := testutil.Serve(router, tc.method, tc.path, nil)
		if rr.Code != tc.want {
			t.Fatalf("%s %s expected status %d, got %d", tc.method, tc.path, tc.want, rr.Code)
		}
	}
}

func TestRouterSessionLifecycle(t *testing.T) {
	router, _ := newTestRouter(t)

	rr := testutil.Serve(router, http.MethodPost, "/sessions", nil)
	testutil.AssertStatus(t, rr, http.StatusCreated)
	var snap broadcast.Snapshot
	testutil.DecodeJSON(t, rr, &snap)

	base := "/sessions/" + snap.ID
	rr = testutil.Serve(router, http.MethodPut, base+"/preferences", strings.NewReader(`{"scoreId": 18001, "players": ["Josh Allen (QB, BUF)"]}`))
	testutil.AssertStatus(t, rr, http.StatusOK)

	rr = testutil.Serve(router, http.MethodPost, base+"/start", strings.NewReader(`{"scoreId": 18001}`))
	testutil.AssertStatus(t, rr, http.StatusOK)

	rr = testutil.Serve(router, http.MethodGet, base+"/messages", nil)
	testutil.AssertStatus(t, rr, http.StatusOK)

	rr = testutil.Serve(router, http.MethodPost, base+"/stop", nil)
	testutil.AssertStatus(t, rr, http.StatusOK)

	rr = testutil.Serve(router, http.MethodDelete, base, nil)
	testutil.AssertStatus(t, rr, http.StatusNoContent)

	rr = testutil.Serve(router, http.MethodGet, base, nil)
	testutil.AssertStatus(t, rr, http.StatusNotFound)
}

func TestRouterWithoutAdmin(t *testing.T) {
	svc := testutil.NewServices(t, testutil.LiveProvider(18001))
	router := NewRouter(handlers.NewHandler(svc.Games, svc.Players, svc.Sessions, svc.Hub, nil, nil), nil)

	rr := testutil.Serve(router, http.MethodGet, "/admin/sessions", nil)
	testutil.AssertStatus(t, rr, http.StatusNotFound)
}

func TestRouterUnknownRouteReturns404(t *testing.T) {
	router, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/does-not-exist", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown route, got %d", rr.Code)
	}
}

func TestRouterWrongMethodReturns405(t *testing.T) {
	router, _ := newTestRouter(t)

	rr := testutil.Serve(router, http.MethodPost, "/health", nil)
	testutil.AssertStatus(t, rr, http.StatusMethodNotAllowed)
}
