package config

import "time"

// CacheConfig enables the Redis read-through cache for slow-changing lookups.
type CacheConfig struct {
	RedisURL string
	TTL      time.Duration
}

// Enabled reports whether a Redis URL was configured.
func (c CacheConfig) Enabled() bool {
	return c.RedisURL != ""
}

func loadCache() CacheConfig {
	return CacheConfig{
		RedisURL: envOrDefault(envRedisURL, ""),
		TTL:      durationEnvOrDefault(envCacheTTL, defaultCacheTTL),
	}
}
