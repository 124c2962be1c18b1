package server

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/preston-bernstein/nfl-broadcast-service/internal/config"
	"github.com/preston-bernstein/nfl-broadcast-service/internal/llm"
)

func TestSelectCompleter(t *testing.T) {
	cases := []struct {
		name  string
		cfg   config.LLMConfig
		model string
	}{
		{name: "default echo", cfg: config.LLMConfig{}, model: "echo"},
		{name: "explicit echo", cfg: config.LLMConfig{Provider: "ECHO"}, model: "echo"},
		{name: "openai without key", cfg: config.LLMConfig{Provider: "openai"}, model: "echo"},
		{name: "openai", cfg: config.LLMConfig{Provider: "openai", APIKey: "k", Model: "gpt-4o-mini", Timeout: time.Second}, model: "gpt-4o-mini"},
		{name: "unknown", cfg: config.LLMConfig{Provider: "mystery"}, model: "echo"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := selectCompleter(tc.cfg, nil)
			assert.Equal(t, tc.model, llm.ModelName(c))
		})
	}
}

func TestBuildNarrationSurvivesMissingPromptFile(t *testing.T) {
	cfg := config.Config{LLM: config.LLMConfig{PromptsFile: "/does/not/exist.yaml"}}
	narr := buildNarration(cfg, nil, nil)
	assert.NotNil(t, narr.narrator)
	assert.NotNil(t, narr.summarizer)
}
