package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{
		envPort, envProvider, envSdioBaseURL, envSdioAPIKey, envSdioSeason,
		envLLMProvider, envOpenAIModel, envLLMMaxTokens, envPollInterval,
		envPriorityMarker, envTemperature, envRateLimit, envRedisURL, envCacheTTL, envSlackWebhook,
		envAdminToken, envSlatePoll,
	} {
		t.Setenv(key, "")
	}

	cfg := Load()

	assert.Equal(t, defaultPort, cfg.Port)
	assert.Equal(t, "fixture", cfg.Provider)
	assert.Equal(t, defaultSdioBaseURL, cfg.SportsData.BaseURL)
	assert.Equal(t, "2024REG", cfg.SportsData.Season)
	assert.Equal(t, 2.0, cfg.SportsData.RateLimit)
	assert.Equal(t, "echo", cfg.LLM.Provider)
	assert.Equal(t, "gpt-4o-mini", cfg.LLM.Model)
	assert.Equal(t, 350, cfg.LLM.MaxTokens)
	assert.Equal(t, 15*time.Second, cfg.Broadcast.PollInterval)
	assert.Equal(t, "**", cfg.Broadcast.PriorityMarker)
	assert.Equal(t, 0.7, cfg.Broadcast.DefaultTemperature)
	assert.False(t, cfg.Cache.Enabled())
	assert.Equal(t, 6*time.Hour, cfg.Cache.TTL)
	assert.Empty(t, cfg.SlackWebhook)
	assert.Empty(t, cfg.AdminToken)
	assert.Equal(t, 5*time.Minute, cfg.SlatePoll)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv(envPort, "8081")
	t.Setenv(envProvider, "sportsdataio")
	t.Setenv(envSdioAPIKey, "key")
	t.Setenv(envSdioSeason, "2023POST")
	t.Setenv(envRateLimit, "0.5")
	t.Setenv(envLLMProvider, "openai")
	t.Setenv(envOpenAIModel, "gpt-4o")
	t.Setenv(envLLMTimeout, "5s")
	t.Setenv(envPollInterval, "3s")
	t.Setenv(envPriorityMarker, "__")
	t.Setenv(envRedisURL, "redis://localhost:6379/0")
	t.Setenv(envSlackWebhook, "https://hooks.slack.test/x")
	t.Setenv(envAdminToken, "secret")
	t.Setenv(envSlatePoll, "1m")

	cfg := Load()

	assert.Equal(t, "8081", cfg.Port)
	assert.Equal(t, "sportsdataio", cfg.Provider)
	assert.Equal(t, "key", cfg.SportsData.APIKey)
	assert.Equal(t, "2023POST", cfg.SportsData.Season)
	assert.Equal(t, 0.5, cfg.SportsData.RateLimit)
	assert.Equal(t, "openai", cfg.LLM.Provider)
	assert.Equal(t, "gpt-4o", cfg.LLM.Model)
	assert.Equal(t, 5*time.Second, cfg.LLM.Timeout)
	assert.Equal(t, 3*time.Second, cfg.Broadcast.PollInterval)
	assert.Equal(t, "__", cfg.Broadcast.PriorityMarker)
	assert.True(t, cfg.Cache.Enabled())
	assert.Equal(t, "https://hooks.slack.test/x", cfg.SlackWebhook)
	assert.Equal(t, "secret", cfg.AdminToken)
	assert.Equal(t, time.Minute, cfg.SlatePoll)
}

func TestLoadIgnoresInvalidNumbers(t *testing.T) {
	t.Setenv(envLLMMaxTokens, "lots")
	t.Setenv(envPollInterval, "-1s")
	t.Setenv(envRateLimit, "-3")

	cfg := Load()

	assert.Equal(t, defaultLLMMaxTokens, cfg.LLM.MaxTokens)
	assert.Equal(t, defaultPollInterval, cfg.Broadcast.PollInterval)
	assert.Equal(t, defaultRateLimit, cfg.SportsData.RateLimit)
}
