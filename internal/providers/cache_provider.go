package providers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/preston-bernstein/nfl-broadcast-service/internal/domain/games"
	"github.com/preston-bernstein/nfl-broadcast-service/internal/domain/players"
	"github.com/preston-bernstein/nfl-broadcast-service/internal/logging"
)

const (
	cachingName     = "cache"
	cacheKeyPrefix  = "nfl-broadcast:"
	defaultCacheTTL = 6 * time.Hour
)

// ErrCacheMiss is returned by Cache.Get when the key is absent.
var ErrCacheMiss = errors.New("cache miss")

// Cache is the byte store behind the caching provider.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// RedisCache stores cached lookups in Redis.
type RedisCache struct {
	client *redis.Client
}

// NewRedisCache wraps an existing client.
func NewRedisCache(client *redis.Client) *RedisCache {
	return &RedisCache{client: client}
}

// NewRedisCacheFromURL parses a redis:// URL and builds a client for it.
func NewRedisCacheFromURL(rawURL string) (*RedisCache, error) {
	opts, err := redis.ParseURL(rawURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	return NewRedisCache(redis.NewClient(opts)), nil
}

func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrCacheMiss
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get cache: %w", err)
	}
	return data, nil
}

func (c *RedisCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := c.client.Set(ctx, key, value, ttl).Err(); err != nil {
		return fmt.Errorf("failed to set cache: %w", err)
	}
	return nil
}

// Ping checks connectivity.
func (c *RedisCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// Close releases the underlying connection pool.
func (c *RedisCache) Close() error {
	return c.client.Close()
}

// cachingProvider serves slow-changing lookups (schedule, roster, season stats) from the cache.
// Live lookups pass straight through to the embedded provider.
type cachingProvider struct {
	SportsProvider
	cache  Cache
	ttl    time.Duration
	logger *slog.Logger
}

// NewCachingProvider wraps next with a read-through cache. Cache failures degrade to upstream calls.
func NewCachingProvider(next SportsProvider, cache Cache, ttl time.Duration, logger *slog.Logger) SportsProvider {
	if cache == nil {
		return next
	}
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}
	return &cachingProvider{SportsProvider: next, cache: cache, ttl: ttl, logger: logger}
}

func (p *cachingProvider) FetchSchedule(ctx context.Context, season string) ([]games.Game, error) {
	return cached(ctx, p, "schedule:"+season, func(ctx context.Context) ([]games.Game, error) {
		return p.SportsProvider.FetchSchedule(ctx, season)
	})
}

func (p *cachingProvider) FetchRoster(ctx context.Context, team string) ([]players.Player, error) {
	return cached(ctx, p, "roster:"+strings.ToUpper(team), func(ctx context.Context) ([]players.Player, error) {
		return p.SportsProvider.FetchRoster(ctx, team)
	})
}

func (p *cachingProvider) FetchSeasonStats(ctx context.Context, season string, playerIDs []int) (map[int]players.StatLine, error) {
	key := "season_stats:" + season + ":" + idsKey(playerIDs)
	return cached(ctx, p, key, func(ctx context.Context) (map[int]players.StatLine, error) {
		return p.SportsProvider.FetchSeasonStats(ctx, season, playerIDs)
	})
}

func cached[T any](ctx context.Context, p *cachingProvider, key string, fetch func(context.Context) (T, error)) (T, error) {
	key = cacheKeyPrefix + key
	logger := logging.FromContext(ctx, p.logger)

	if data, err := p.cache.Get(ctx, key); err == nil {
		var hit T
		if jsonErr := json.Unmarshal(data, &hit); jsonErr == nil {
			logWithProvider(ctx, logger, slog.LevelDebug, cachingName, "cache hit", "key", key)
			return hit, nil
		}
	} else if !errors.Is(err, ErrCacheMiss) {
		logWithProvider(ctx, logger, slog.LevelWarn, cachingName, "cache read failed", "key", key, logging.FieldError, err)
	}

	result, err := fetch(ctx)
	if err != nil {
		return result, err
	}

	data, err := json.Marshal(result)
	if err == nil {
		err = p.cache.Set(ctx, key, data, p.ttl)
	}
	if err != nil {
		logWithProvider(ctx, logger, slog.LevelWarn, cachingName, "cache write failed", "key", key, logging.FieldError, err)
	}
	return result, nil
}

func idsKey(ids []int) string {
	sorted := append([]int(nil), ids...)
	sort.Ints(sorted)
	parts := make([]string, len(sorted))
	for i, id := range sorted {
		parts[i] = strconv.Itoa(id)
	}
	return strings.Join(parts, ",")
}
