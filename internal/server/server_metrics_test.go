package server

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/preston-bernstein/nfl-broadcast-service/internal/config"
	"github.com/preston-bernstein/nfl-broadcast-service/internal/metrics"
	"github.com/preston-bernstein/nfl-broadcast-service/internal/testutil"
)

// metricsSetupSuccess allows us to force a handler to test buildMetrics success path.
func metricsSetupSuccess(ctx context.Context, cfg metrics.TelemetryConfig) (*metrics.Recorder, http.Handler, func(context.Context) error, error) {
	rec := metrics.NewRecorder()
	return rec, http.NewServeMux(), func(context.Context) error { return nil }, nil
}

func TestBuildMetricsSuccessPathSetsServerAndShutdown(t *testing.T) {
	orig := metricsSetup
	defer func() { metricsSetup = orig }()
	metricsSetup = metricsSetupSuccess

	rec, srv, stop := buildMetrics(config.Config{
		Metrics: config.MetricsConfig{
			Enabled: true,
			Port:    "9999",
		},
	}, nil, nil)

	if rec == nil || srv == nil || stop == nil {
		t.Fatalf("expected recorder, server, and shutdown to be set on success")
	}
	if srv.Addr() != ":9999" {
		t.Fatalf("expected metrics server on :9999, got %s", srv.Addr())
	}
}

func TestNewServerWithMetricsHandlesSetupFailure(t *testing.T) {
	origSetup := metricsSetup
	defer func() { metricsSetup = origSetup }()

	metricsSetup = func(ctx context.Context, cfg metrics.TelemetryConfig) (*metrics.Recorder, http.Handler, func(context.Context) error, error) {
		return nil, nil, nil, errors.New("fail")
	}

	cfg := testConfig()
	cfg.Metrics = config.MetricsConfig{Enabled: true}

	srv := newServerWithMetrics(cfg, nil, testutil.LiveProvider(18001), nil)
	t.Cleanup(srv.gracefulShutdown)
	if srv.metrics == nil {
		t.Fatalf("expected fallback metrics recorder even on setup failure")
	}
	if srv.metricsServer != nil {
		t.Fatalf("expected no metrics server after setup failure")
	}
}

func TestNewServerWithMetricsDisabledSkipsSetup(t *testing.T) {
	cfg := testConfig()
	cfg.Metrics = config.MetricsConfig{Enabled: false}

	srv := newServerWithMetrics(cfg, nil, testutil.LiveProvider(18001), nil)
	t.Cleanup(srv.gracefulShutdown)
	if srv.metrics == nil {
		t.Fatalf("expected recorder to be set even when metrics disabled")
	}
	if srv.metricsServer != nil {
		t.Fatalf("expected no metrics server when disabled")
	}
}

func TestNewServerWithMetricsUsesInjectedRecorder(t *testing.T) {
	rec, shutdown := testutil.NewRecorderWithShutdown()
	cfg := testConfig()
	cfg.Metrics = config.MetricsConfig{Enabled: true}

	srv := newServerWithMetrics(cfg, nil, testutil.LiveProvider(18001), rec)
	t.Cleanup(srv.gracefulShutdown)
	if srv.metrics != rec {
		t.Fatalf("expected injected recorder to be used")
	}
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("expected injected shutdown to succeed, got %v", err)
	}
}

func TestRecorderSeesBroadcastCycles(t *testing.T) {
	rec := metrics.NewRecorder()
	srv := newServerWithMetrics(testConfig(), nil, testutil.LiveProvider(18001, testutil.SamplePlay(1, "Kickoff")), rec)
	t.Cleanup(srv.gracefulShutdown)

	snap, err := srv.broadcastService.Create(context.Background())
	if err != nil {
		t.Fatalf("create session: %v", err)
	}
	if _, err := srv.broadcastService.Start(context.Background(), snap.ID, 18001); err != nil {
		t.Fatalf("start session: %v", err)
	}
	if got := rec.ProviderCalls("stub"); got == 0 {
		t.Fatalf("expected provider calls recorded under the configured name")
	}
	if rec.Broadcast().ActiveSessions != 1 {
		t.Fatalf("expected one active session, got %d", rec.Broadcast().ActiveSessions)
	}
}
