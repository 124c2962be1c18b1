package config

import "time"

const (
	envPort         = "PORT"
	envProvider     = "PROVIDER"
	envMetricsPort  = "METRICS_PORT"
	envMetricsOn    = "METRICS_ENABLED"
	envOtelEndpoint = "OTEL_EXPORTER_OTLP_ENDPOINT"
	envOtelService  = "OTEL_SERVICE_NAME"
	envOtelInsecure = "OTEL_EXPORTER_OTLP_INSECURE"

	envSdioBaseURL   = "SPORTSDATA_BASE_URL"
	envSdioReplayURL = "SPORTSDATA_REPLAY_URL"
	envSdioAPIKey    = "SPORTSDATA_API_KEY"
	envSdioSeason    = "SPORTSDATA_SEASON"
	envRateLimit     = "PROVIDER_RATE_LIMIT"
	envRateBurst     = "PROVIDER_RATE_BURST"
	envRetryAttempts = "PROVIDER_RETRY_ATTEMPTS"

	envLLMProvider  = "LLM_PROVIDER"
	envOpenAIKey    = "OPENAI_API_KEY"
	envOpenAIURL    = "OPENAI_BASE_URL"
	envOpenAIModel  = "OPENAI_MODEL"
	envLLMMaxTokens = "LLM_MAX_TOKENS"
	envLLMTimeout   = "LLM_TIMEOUT"
	envPromptsFile  = "PROMPTS_FILE"

	envPollInterval   = "BROADCAST_POLL_INTERVAL"
	envPriorityMarker = "PRIORITY_MARKER"
	envTemperature    = "DEFAULT_TEMPERATURE"

	envRedisURL = "REDIS_URL"
	envCacheTTL = "CACHE_TTL"

	envSlackWebhook = "SLACK_WEBHOOK_URL"
	envAdminToken   = "ADMIN_TOKEN"
	envSlatePoll    = "SLATE_POLL_INTERVAL"

	defaultPort        = "4000"
	defaultProvider    = "fixture"
	defaultMetricsPort = "9090"

	defaultSdioBaseURL   = "https://api.sportsdata.io/v3/nfl"
	defaultSdioReplayURL = "https://replay.sportsdata.io"
	defaultSdioSeason    = "2024REG"
	// SportsDataIO trial keys throttle hard; two calls a second leaves headroom for a full context assembly.
	defaultRateLimit     = 2.0
	defaultRateBurst     = 4
	defaultRetryAttempts = 3

	defaultLLMProvider  = "echo"
	defaultOpenAIModel  = "gpt-4o-mini"
	defaultLLMMaxTokens = 350
	defaultLLMTimeout   = 30 * Duration(time.Second)

	defaultPollInterval   = 15 * Duration(time.Second)
	defaultPriorityMarker = "**"
	defaultTemperature    = 0.7

	defaultCacheTTL  = 6 * Duration(time.Hour)
	defaultSlatePoll = 5 * Duration(time.Minute)
)
