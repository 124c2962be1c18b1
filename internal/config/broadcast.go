package config

import "time"

// BroadcastConfig controls the per-session polling loop and narration output.
type BroadcastConfig struct {
	PollInterval       time.Duration
	PriorityMarker     string
	DefaultTemperature float64
}

func loadBroadcast() BroadcastConfig {
	return BroadcastConfig{
		PollInterval:       durationEnvOrDefault(envPollInterval, defaultPollInterval),
		PriorityMarker:     envOrDefault(envPriorityMarker, defaultPriorityMarker),
		DefaultTemperature: floatEnvOrDefault(envTemperature, defaultTemperature),
	}
}
