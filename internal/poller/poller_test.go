package poller

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	domaingames "github.com/preston-bernstein/nfl-broadcast-service/internal/domain/games"
	"github.com/preston-bernstein/nfl-broadcast-service/internal/metrics"
	"github.com/preston-bernstein/nfl-broadcast-service/internal/teststubs"
)

func TestPollerFetchesAndWritesSlate(t *testing.T) {
	g := domaingames.Game{
		ScoreID:  18001,
		HomeTeam: "BUF",
		AwayTeam: "ARI",
		Date:     time.Date(2024, 9, 8, 17, 0, 0, 0, time.UTC),
	}

	provider := &teststubs.StubProvider{Games: []domaingames.Game{g}}
	writer := &teststubs.StubSlateWriter{Notify: make(chan struct{})}

	p := New(provider, writer, nil, nil, 10*time.Millisecond)
	p.now = func() time.Time { return time.Date(2024, 9, 8, 16, 0, 0, 0, time.UTC) }

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	p.Start(ctx)

	select {
	case <-writer.Notify:
	case <-time.After(500 * time.Millisecond):
		t.Fatal("timed out waiting for initial fetch")
	}

	cancel()
	_ = p.Stop(context.Background())

	list, ok := writer.Slate("2024-09-08")
	if !ok {
		t.Fatalf("expected slate written for 2024-09-08")
	}
	if len(list) != 1 || list[0].ScoreID != 18001 {
		t.Fatalf("unexpected slate: %+v", list)
	}
	if p.Status().LastDate != "2024-09-08" {
		t.Fatalf("expected last date recorded, got %q", p.Status().LastDate)
	}
}

func TestPollerFollowsProviderClock(t *testing.T) {
	replay := time.Date(2023, 12, 3, 18, 0, 0, 0, time.UTC)
	provider := &teststubs.StubProvider{Now: &replay}
	writer := &teststubs.StubSlateWriter{}

	p := New(provider, writer, nil, nil, time.Hour)
	p.now = func() time.Time { return time.Date(2024, 9, 8, 16, 0, 0, 0, time.UTC) }
	p.fetchOnce(context.Background())

	if _, ok := writer.Slate("2023-12-03"); !ok {
		t.Fatalf("expected slate keyed by the replay date")
	}
}

func TestPollerUsesEasternDate(t *testing.T) {
	provider := &teststubs.StubProvider{}
	writer := &teststubs.StubSlateWriter{}

	p := New(provider, writer, nil, nil, time.Hour)
	// Late Sunday night kickoff in New York is already Monday in UTC.
	p.now = func() time.Time { return time.Date(2024, 9, 9, 3, 30, 0, 0, time.UTC) }
	p.fetchOnce(context.Background())

	if _, ok := writer.Slate("2024-09-08"); !ok {
		t.Fatalf("expected slate keyed by the Eastern date")
	}
}

func TestPollerStopsOnContextCancel(t *testing.T) {
	provider := &teststubs.StubProvider{}
	writer := &teststubs.StubSlateWriter{Notify: make(chan struct{})}

	p := New(provider, writer, nil, nil, 5*time.Millisecond)
	ctx, cancel := context.WithCancel(context.Background())

	p.Start(ctx)

	select {
	case <-writer.Notify:
	case <-time.After(500 * time.Millisecond):
		t.Fatal("timed out waiting for initial fetch")
	}

	cancel()
	_ = p.Stop(context.Background())
	time.Sleep(10 * time.Millisecond)

	callsAfterStop := provider.ScheduleCalls.Load()
	time.Sleep(20 * time.Millisecond)
	if provider.ScheduleCalls.Load() != callsAfterStop {
		t.Fatalf("expected no additional fetches after stop; before=%d after=%d", callsAfterStop, provider.ScheduleCalls.Load())
	}
}

func TestPollerStopIsIdempotent(t *testing.T) {
	p := New(&teststubs.StubProvider{}, &teststubs.StubSlateWriter{}, nil, nil, time.Hour)

	if err := p.Stop(context.Background()); err != nil {
		t.Fatalf("first stop returned error: %v", err)
	}
	if err := p.Stop(context.Background()); err != nil {
		t.Fatalf("second stop returned error: %v", err)
	}
}

func TestPollerStartIsIdempotent(t *testing.T) {
	p := New(&teststubs.StubProvider{}, &teststubs.StubSlateWriter{}, nil, nil, time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	p.Start(ctx)
	p.Start(ctx) // should no-op

	if err := p.Stop(context.Background()); err != nil {
		t.Fatalf("stop returned error: %v", err)
	}
}

func TestPollerDefaultsInterval(t *testing.T) {
	p := New(&teststubs.StubProvider{}, &teststubs.StubSlateWriter{}, nil, nil, 0)
	if p.interval != defaultInterval {
		t.Fatalf("expected default interval %s, got %s", defaultInterval, p.interval)
	}
}

func TestPollerStartReturnsWhenAlreadyStarted(t *testing.T) {
	p := New(&teststubs.StubProvider{}, &teststubs.StubSlateWriter{}, nil, nil, time.Hour)
	p.started = true
	p.Start(context.Background())
	if p.ticker != nil {
		t.Fatalf("expected ticker not to be created when already started")
	}
}

func TestPollerStatusTracksFailuresAndSuccess(t *testing.T) {
	provider := &teststubs.StubProvider{Err: errors.New("boom")}
	recorder := metrics.NewRecorder()

	p := New(provider, &teststubs.StubSlateWriter{}, nil, recorder, time.Millisecond)
	ctx := context.Background()

	p.fetchOnce(ctx)
	status := p.Status()
	if status.ConsecutiveFailures != 1 {
		t.Fatalf("expected 1 failure, got %d", status.ConsecutiveFailures)
	}
	if status.LastError == "" {
		t.Fatalf("expected last error recorded")
	}
	if !status.LastSuccess.IsZero() {
		t.Fatalf("expected no success recorded yet")
	}
	if status.IsReady() {
		t.Fatalf("expected not ready after failure")
	}
	if got := recorder.Broadcast().LookupFailures["slate"]; got != 1 {
		t.Fatalf("expected slate failure metric, got %d", got)
	}

	provider.Err = nil
	p.fetchOnce(ctx)
	status = p.Status()
	if status.ConsecutiveFailures != 0 {
		t.Fatalf("expected failures reset, got %d", status.ConsecutiveFailures)
	}
	if status.LastSuccess.IsZero() {
		t.Fatalf("expected success timestamp")
	}
	if !status.IsReady() {
		t.Fatalf("expected ready after success")
	}
}

func TestPollerNotReadyAfterRepeatedFailures(t *testing.T) {
	status := Status{LastSuccess: time.Now(), ConsecutiveFailures: 3}
	if status.IsReady() {
		t.Fatalf("expected not ready after three failures")
	}
}

func TestPollerLogsOnErrorAndSuccess(t *testing.T) {
	provider := &teststubs.StubProvider{Err: errors.New("fail")}
	logger := slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))

	p := New(provider, &teststubs.StubSlateWriter{}, logger, nil, time.Second)
	p.fetchOnce(context.Background())

	provider.Err = nil
	provider.Games = []domaingames.Game{{ScoreID: 1}}
	p.fetchOnce(context.Background())
}

func TestPollerNilWriterDoesNotPanic(t *testing.T) {
	provider := &teststubs.StubProvider{Games: []domaingames.Game{{ScoreID: 1}}}
	p := New(provider, nil, nil, nil, time.Minute)
	p.fetchOnce(context.Background())
	if p.Status().ConsecutiveFailures != 0 {
		t.Fatalf("expected success without a writer")
	}
}

func BenchmarkPollerFetchOnce(b *testing.B) {
	provider := &teststubs.StubProvider{
		Games: []domaingames.Game{{ScoreID: 18001, HomeTeam: "BUF", AwayTeam: "ARI"}},
	}
	p := New(provider, &teststubs.StubSlateWriter{}, nil, nil, time.Second)
	ctx := context.Background()

	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		p.fetchOnce(ctx)
	}
}
