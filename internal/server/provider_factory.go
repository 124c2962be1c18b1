package server

import (
	"log/slog"

	"github.com/preston-bernstein/nfl-broadcast-service/internal/config"
	"github.com/preston-bernstein/nfl-broadcast-service/internal/logging"
	"github.com/preston-bernstein/nfl-broadcast-service/internal/metrics"
	"github.com/preston-bernstein/nfl-broadcast-service/internal/providers"
)

// newRedisCache is a var so tests can build the cached chain without a live Redis.
var newRedisCache = func(url string) (providers.Cache, func() error, error) {
	cache, err := providers.NewRedisCacheFromURL(url)
	if err != nil {
		return nil, nil, err
	}
	return cache, cache.Close, nil
}

// providerFactory assembles the provider with shared wrappers (rate limit, retry, cache).
type providerFactory struct {
	logger  *slog.Logger
	metrics *metrics.Recorder
}

// builtProvider is the decorated provider plus anything that must be closed on shutdown.
type builtProvider struct {
	provider providers.SportsProvider
	closers  []func() error
}

func newProviderFactory(logger *slog.Logger, metrics *metrics.Recorder) providerFactory {
	return providerFactory{logger: logger, metrics: metrics}
}

func (f providerFactory) build(cfg config.Config) builtProvider {
	base := selectProvider(cfg, f.logger)
	name := normalizeProviderName(cfg.Provider, base)

	// One limiter shared by every session, so the upstream quota holds regardless of session count.
	limited := providers.NewRateLimitedProvider(base, cfg.SportsData.RateLimit, cfg.SportsData.RateBurst, f.logger)
	provider := providers.NewRetryingProvider(limited, f.logger, f.metrics, name, cfg.SportsData.RetryAttempts, 0)

	out := builtProvider{provider: provider}
	if !cfg.Cache.Enabled() {
		return out
	}
	cache, closeFn, err := newRedisCache(cfg.Cache.RedisURL)
	if err != nil {
		logging.Warn(f.logger, "redis cache unavailable, continuing uncached",
			logging.FieldProvider, name,
			logging.FieldError, err,
		)
		return out
	}
	out.provider = providers.NewCachingProvider(provider, cache, cfg.Cache.TTL, f.logger)
	if closeFn != nil {
		out.closers = append(out.closers, closeFn)
	}
	return out
}
