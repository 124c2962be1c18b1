package poller

import (
	"context"
	"log/slog"
	"sync"
	"time"

	domaingames "github.com/preston-bernstein/nfl-broadcast-service/internal/domain/games"
	"github.com/preston-bernstein/nfl-broadcast-service/internal/logging"
	"github.com/preston-bernstein/nfl-broadcast-service/internal/metrics"
	"github.com/preston-bernstein/nfl-broadcast-service/internal/providers"
	"github.com/preston-bernstein/nfl-broadcast-service/internal/timeutil"
)

const defaultInterval = 5 * time.Minute

// Source is what the poller reads from the provider.
type Source interface {
	FetchGamesByDate(ctx context.Context, date string) ([]domaingames.Game, error)
	FetchCurrentTime(ctx context.Context) (*time.Time, error)
}

// SlateWriter receives each refreshed slate.
type SlateWriter interface {
	ReplaceSlate(date string, games []domaingames.Game)
}

// Poller refreshes today's slate of games on an interval.
type Poller struct {
	source   Source
	writer   SlateWriter
	logger   *slog.Logger
	metrics  *metrics.Recorder
	interval time.Duration
	now      func() time.Time
	loc      *time.Location

	ticker   *time.Ticker
	done     chan struct{}
	stopOnce sync.Once
	startMu  sync.Mutex
	started  bool

	statusMu sync.RWMutex
	status   Status
}

// Status describes the recent health of the poller loop.
type Status struct {
	ConsecutiveFailures int
	LastError           string
	LastDate            string
	LastAttempt         time.Time
	LastSuccess         time.Time
}

// IsReady reports whether the poller has had a recent success and is not failing repeatedly.
func (s Status) IsReady() bool {
	if s.LastSuccess.IsZero() {
		return false
	}
	return s.ConsecutiveFailures < 3
}

// New constructs a Poller with sane defaults.
func New(source Source, writer SlateWriter, logger *slog.Logger, recorder *metrics.Recorder, interval time.Duration) *Poller {
	if interval <= 0 {
		interval = defaultInterval
	}
	return &Poller{
		source:   source,
		writer:   writer,
		logger:   logger,
		metrics:  recorder,
		interval: interval,
		now:      time.Now,
		loc:      providers.EasternOrUTC(),
		done:     make(chan struct{}),
	}
}

// Start begins polling until the context is cancelled or Stop is called.
func (p *Poller) Start(ctx context.Context) {
	p.startMu.Lock()
	if p.started {
		p.startMu.Unlock()
		return
	}
	p.started = true
	p.startMu.Unlock()

	p.ticker = time.NewTicker(p.interval)

	go func() {
		logging.Info(p.logger, "slate poller started", logging.FieldDurationMS, p.interval.Milliseconds())
		// Warm today's slate on boot.
		p.fetchOnce(ctx)

		for {
			select {
			case <-ctx.Done():
				p.stopTicker()
				logging.Info(p.logger, "slate poller stopped")
				return
			case <-p.done:
				p.stopTicker()
				logging.Info(p.logger, "slate poller stopped")
				return
			case <-p.ticker.C:
				p.fetchOnce(ctx)
			}
		}
	}()
}

// Stop halts the polling loop.
func (p *Poller) Stop(ctx context.Context) error {
	_ = ctx
	p.stopOnce.Do(func() {
		close(p.done)
		p.stopTicker()
	})
	return nil
}

func (p *Poller) fetchOnce(ctx context.Context) {
	start := p.now()
	p.recordAttempt(start)
	today := p.today(ctx)
	games, err := p.source.FetchGamesByDate(ctx, today)
	if err != nil {
		p.metrics.RecordLookupFailure("slate")
		logging.Error(p.logger, "slate refresh failed", err,
			logging.FieldDate, today,
			logging.FieldDurationMS, time.Since(start).Milliseconds(),
		)
		p.recordFailure(err, start)
		return
	}

	if p.writer != nil {
		p.writer.ReplaceSlate(today, games)
	}
	p.recordSuccess(today, start)
	logging.Info(p.logger, "slate refreshed",
		logging.FieldDate, today,
		logging.FieldCount, len(games),
		logging.FieldDurationMS, time.Since(start).Milliseconds(),
	)
}

// today follows the provider clock so replay feeds poll their simulated date.
func (p *Poller) today(ctx context.Context) string {
	now := p.now()
	if clock, err := p.source.FetchCurrentTime(ctx); err == nil && clock != nil {
		now = *clock
	}
	return timeutil.FormatDate(now.In(p.loc))
}

func (p *Poller) stopTicker() {
	if p.ticker != nil {
		p.ticker.Stop()
	}
}

func (p *Poller) recordAttempt(at time.Time) {
	p.statusMu.Lock()
	defer p.statusMu.Unlock()
	p.status.LastAttempt = at
}

func (p *Poller) recordSuccess(date string, at time.Time) {
	p.statusMu.Lock()
	defer p.statusMu.Unlock()
	p.status.ConsecutiveFailures = 0
	p.status.LastError = ""
	p.status.LastDate = date
	p.status.LastSuccess = at
}

func (p *Poller) recordFailure(err error, at time.Time) {
	p.statusMu.Lock()
	defer p.statusMu.Unlock()
	p.status.ConsecutiveFailures++
	if err != nil {
		p.status.LastError = err.Error()
	}
	p.status.LastAttempt = at
}

// Status returns a snapshot of the poller's recent health.
func (p *Poller) Status() Status {
	p.statusMu.RLock()
	defer p.statusMu.RUnlock()
	return p.status
}
