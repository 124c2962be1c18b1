package config

// Config holds runtime configuration for the server.
type Config struct {
	Port         string
	Provider     string
	SportsData   SportsDataConfig
	LLM          LLMConfig
	Broadcast    BroadcastConfig
	Cache        CacheConfig
	SlackWebhook string
	AdminToken   string
	SlatePoll    Duration
	Metrics      MetricsConfig
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	return Config{
		Port:         envOrDefault(envPort, defaultPort),
		Provider:     envOrDefault(envProvider, defaultProvider),
		SportsData:   loadSportsData(),
		LLM:          loadLLM(),
		Broadcast:    loadBroadcast(),
		Cache:        loadCache(),
		SlackWebhook: envOrDefault(envSlackWebhook, ""),
		AdminToken:   envOrDefault(envAdminToken, ""),
		SlatePoll:    durationEnvOrDefault(envSlatePoll, defaultSlatePoll),
		Metrics:      loadMetrics(),
	}
}
