package config

import "time"

// LLMConfig selects and tunes the language-model backend.
type LLMConfig struct {
	Provider    string
	APIKey      string
	BaseURL     string
	Model       string
	MaxTokens   int
	Timeout     time.Duration
	PromptsFile string
}

func loadLLM() LLMConfig {
	return LLMConfig{
		Provider:    envOrDefault(envLLMProvider, defaultLLMProvider),
		APIKey:      envOrDefault(envOpenAIKey, ""),
		BaseURL:     envOrDefault(envOpenAIURL, ""),
		Model:       envOrDefault(envOpenAIModel, defaultOpenAIModel),
		MaxTokens:   intEnvOrDefault(envLLMMaxTokens, defaultLLMMaxTokens),
		Timeout:     durationEnvOrDefault(envLLMTimeout, defaultLLMTimeout),
		PromptsFile: envOrDefault(envPromptsFile, ""),
	}
}
