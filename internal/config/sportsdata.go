package config

// SportsDataConfig controls how we talk to the SportsDataIO NFL API.
type SportsDataConfig struct {
	BaseURL       string
	ReplayURL     string
	APIKey        string
	Season        string
	RateLimit     float64 // requests per second across all lookups
	RateBurst     int
	RetryAttempts int
}

func loadSportsData() SportsDataConfig {
	return SportsDataConfig{
		BaseURL:       envOrDefault(envSdioBaseURL, defaultSdioBaseURL),
		ReplayURL:     envOrDefault(envSdioReplayURL, defaultSdioReplayURL),
		APIKey:        envOrDefault(envSdioAPIKey, ""),
		Season:        envOrDefault(envSdioSeason, defaultSdioSeason),
		RateLimit:     floatEnvOrDefault(envRateLimit, defaultRateLimit),
		RateBurst:     intEnvOrDefault(envRateBurst, defaultRateBurst),
		RetryAttempts: intEnvOrDefault(envRetryAttempts, defaultRetryAttempts),
	}
}
