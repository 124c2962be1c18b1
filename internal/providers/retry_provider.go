package providers

import (
	"context"
	"errors"
	"log/slog"
	"math/rand"
	"sync"
	"time"

	"github.com/preston-bernstein/nfl-broadcast-service/internal/domain/betting"
	"github.com/preston-bernstein/nfl-broadcast-service/internal/domain/games"
	"github.com/preston-bernstein/nfl-broadcast-service/internal/domain/players"
	"github.com/preston-bernstein/nfl-broadcast-service/internal/logging"
	"github.com/preston-bernstein/nfl-broadcast-service/internal/metrics"
)

const (
	defaultRetryAttempts = 3
	defaultBackoff       = 200 * time.Millisecond
)

type backoffFunc func(attempt int) time.Duration

// retryingProvider wraps a SportsProvider with retry/backoff behavior.
type retryingProvider struct {
	inner        SportsProvider
	logger       *slog.Logger
	metrics      *metrics.Recorder
	providerName string
	maxAttempts  int
	backoffFn    backoffFunc

	rngMu sync.Mutex
	rng   *rand.Rand
}

// NewRetryingProvider wraps the given provider with retries. If maxAttempts/backoff are <= 0, defaults are used.
func NewRetryingProvider(inner SportsProvider, logger *slog.Logger, recorder *metrics.Recorder, name string, maxAttempts int, backoff time.Duration) SportsProvider {
	return NewRetryingProviderWithRNG(inner, logger, recorder, name, nil, maxAttempts, backoff)
}

// NewRetryingProviderWithRNG is NewRetryingProvider with an injectable jitter source.
func NewRetryingProviderWithRNG(inner SportsProvider, logger *slog.Logger, recorder *metrics.Recorder, name string, rng *rand.Rand, maxAttempts int, backoff time.Duration) SportsProvider {
	if maxAttempts <= 0 {
		maxAttempts = defaultRetryAttempts
	}
	if backoff <= 0 {
		backoff = defaultBackoff
	}
	if name == "" {
		name = "provider"
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &retryingProvider{
		inner:        inner,
		logger:       logger,
		metrics:      recorder,
		providerName: name,
		maxAttempts:  maxAttempts,
		rng:          rng,
		backoffFn: func(attempt int) time.Duration {
			return time.Duration(attempt) * backoff
		},
	}
}

func (r *retryingProvider) FetchSchedule(ctx context.Context, season string) ([]games.Game, error) {
	return withRetry(ctx, r, "schedule", func(ctx context.Context) ([]games.Game, error) {
		return r.inner.FetchSchedule(ctx, season)
	})
}

func (r *retryingProvider) FetchGamesByDate(ctx context.Context, date string) ([]games.Game, error) {
	return withRetry(ctx, r, "games_by_date", func(ctx context.Context) ([]games.Game, error) {
		return r.inner.FetchGamesByDate(ctx, date)
	})
}

func (r *retryingProvider) FetchGame(ctx context.Context, scoreID int) (games.Game, error) {
	return withRetry(ctx, r, "game", func(ctx context.Context) (games.Game, error) {
		return r.inner.FetchGame(ctx, scoreID)
	})
}

func (r *retryingProvider) FetchPlayByPlay(ctx context.Context, scoreID int) (games.PlayByPlay, error) {
	return withRetry(ctx, r, "play_by_play", func(ctx context.Context) (games.PlayByPlay, error) {
		return r.inner.FetchPlayByPlay(ctx, scoreID)
	})
}

func (r *retryingProvider) FetchRoster(ctx context.Context, team string) ([]players.Player, error) {
	return withRetry(ctx, r, "roster", func(ctx context.Context) ([]players.Player, error) {
		return r.inner.FetchRoster(ctx, team)
	})
}

func (r *retryingProvider) FetchBoxScores(ctx context.Context, scoreID int, playerIDs []int) (map[int]players.StatLine, error) {
	return withRetry(ctx, r, "box_scores", func(ctx context.Context) (map[int]players.StatLine, error) {
		return r.inner.FetchBoxScores(ctx, scoreID, playerIDs)
	})
}

func (r *retryingProvider) FetchSeasonStats(ctx context.Context, season string, playerIDs []int) (map[int]players.StatLine, error) {
	return withRetry(ctx, r, "season_stats", func(ctx context.Context) (map[int]players.StatLine, error) {
		return r.inner.FetchSeasonStats(ctx, season, playerIDs)
	})
}

func (r *retryingProvider) FetchPlayerProps(ctx context.Context, scoreID int, playerIDs []int) ([]betting.PlayerProp, error) {
	return withRetry(ctx, r, "player_props", func(ctx context.Context) ([]betting.PlayerProp, error) {
		return r.inner.FetchPlayerProps(ctx, scoreID, playerIDs)
	})
}

func (r *retryingProvider) FetchLatestOdds(ctx context.Context, scoreID int) ([]betting.GameOdds, error) {
	return withRetry(ctx, r, "odds", func(ctx context.Context) ([]betting.GameOdds, error) {
		return r.inner.FetchLatestOdds(ctx, scoreID)
	})
}

func (r *retryingProvider) FetchCurrentTime(ctx context.Context) (*time.Time, error) {
	return withRetry(ctx, r, "current_time", func(ctx context.Context) (*time.Time, error) {
		return r.inner.FetchCurrentTime(ctx)
	})
}

func withRetry[T any](ctx context.Context, r *retryingProvider, op string, call func(context.Context) (T, error)) (T, error) {
	var zero T
	if r.inner == nil {
		return zero, ErrProviderUnavailable
	}

	var lastErr error
	for attempt := 1; attempt <= r.maxAttempts; attempt++ {
		start := time.Now()
		result, err := call(ctx)
		r.metrics.RecordProviderAttempt(r.providerName, time.Since(start), err)
		if err == nil {
			return result, nil
		}
		lastErr = err

		if rlErr, ok := AsRateLimitError(err); ok {
			r.metrics.RecordRateLimit(r.providerName, rlErr.RetryAfter)
		}
		if !retryable(err) || attempt == r.maxAttempts {
			break
		}

		delay := r.computeDelay(err, attempt)
		r.logWarn(ctx, "provider fetch retry",
			logging.FieldLookup, op,
			"attempt", attempt,
			"max_attempts", r.maxAttempts,
			"delay_ms", delay.Milliseconds(),
			logging.FieldError, err,
		)

		select {
		case <-ctx.Done():
			return zero, ctx.Err()
		case <-time.After(delay):
		}
	}

	r.logWarn(ctx, "provider fetch failed", logging.FieldLookup, op, "attempts", r.maxAttempts, logging.FieldError, lastErr)
	return zero, lastErr
}

// computeDelay honours Retry-After when the provider sent one, otherwise jitters the backoff into [base/2, base].
func (r *retryingProvider) computeDelay(err error, attempt int) time.Duration {
	if rlErr, ok := AsRateLimitError(err); ok && rlErr.RetryAfter > 0 {
		return rlErr.RetryAfter
	}
	base := r.backoffFn(attempt)
	if base <= 1 {
		return base
	}
	half := base / 2
	r.rngMu.Lock()
	jitter := time.Duration(r.rng.Int63n(int64(half) + 1))
	r.rngMu.Unlock()
	return half + jitter
}

// retryable rejects failures that a second attempt cannot fix.
func retryable(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	if errors.Is(err, ErrProviderUnavailable) || errors.Is(err, ErrNotFound) || IsDataShape(err) {
		return false
	}
	return true
}

func (r *retryingProvider) logWarn(ctx context.Context, msg string, args ...any) {
	logWithProvider(ctx, logging.FromContext(ctx, r.logger), slog.LevelWarn, r.providerName, msg, args...)
}
