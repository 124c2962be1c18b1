package llm

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"github.com/sony/gobreaker"

	"github.com/preston-bernstein/nfl-broadcast-service/internal/logging"
)

const (
	DefaultModel     = "gpt-4o-mini"
	DefaultMaxTokens = 350

	defaultTimeout      = 30 * time.Second
	defaultTripAfter    = 3
	defaultOpenDuration = 30 * time.Second
)

// OpenAIConfig controls the chat-completions client.
type OpenAIConfig struct {
	APIKey     string
	BaseURL    string
	Model      string
	MaxTokens  int
	Timeout    time.Duration
	HTTPClient *http.Client

	// TripAfter consecutive failures open the breaker for OpenDuration.
	TripAfter    uint32
	OpenDuration time.Duration
}

// OpenAIClient completes prompts through the OpenAI chat API behind a circuit breaker.
type OpenAIClient struct {
	client    *openai.Client
	breaker   *gobreaker.CircuitBreaker
	model     string
	maxTokens int
	timeout   time.Duration
	logger    *slog.Logger
}

// NewOpenAIClient builds a client; zero config values fall back to package defaults.
func NewOpenAIClient(cfg OpenAIConfig, logger *slog.Logger) *OpenAIClient {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if base := strings.TrimSpace(cfg.BaseURL); base != "" {
		clientCfg.BaseURL = strings.TrimSuffix(base, "/")
	}
	if cfg.HTTPClient != nil {
		clientCfg.HTTPClient = cfg.HTTPClient
	}

	model := cfg.Model
	if model == "" {
		model = DefaultModel
	}
	maxTokens := cfg.MaxTokens
	if maxTokens <= 0 {
		maxTokens = DefaultMaxTokens
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	tripAfter := cfg.TripAfter
	if tripAfter == 0 {
		tripAfter = defaultTripAfter
	}
	openFor := cfg.OpenDuration
	if openFor <= 0 {
		openFor = defaultOpenDuration
	}

	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "openai",
		MaxRequests: 1,
		Timeout:     openFor,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= tripAfter
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logging.Warn(logger, "llm circuit breaker state changed",
				"circuit", name,
				"from_state", from.String(),
				"to_state", to.String(),
			)
		},
	})

	return &OpenAIClient{
		client:    openai.NewClientWithConfig(clientCfg),
		breaker:   breaker,
		model:     model,
		maxTokens: maxTokens,
		timeout:   timeout,
		logger:    logger,
	}
}

// Model reports the configured model name.
func (c *OpenAIClient) Model() string {
	return c.model
}

// State exposes the breaker state for readiness checks.
func (c *OpenAIClient) State() gobreaker.State {
	return c.breaker.State()
}

// Complete sends one chat completion. Temperature is passed through unvalidated.
func (c *OpenAIClient) Complete(ctx context.Context, system, user string, temperature float64) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	result, err := c.breaker.Execute(func() (interface{}, error) {
		return c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
			Model:       c.model,
			MaxTokens:   c.maxTokens,
			Temperature: float32(temperature),
			Messages: []openai.ChatCompletionMessage{
				{Role: openai.ChatMessageRoleSystem, Content: system},
				{Role: openai.ChatMessageRoleUser, Content: user},
			},
		})
	})
	if err != nil {
		return "", fmt.Errorf("openai completion: %w", err)
	}

	resp := result.(openai.ChatCompletionResponse)
	if len(resp.Choices) == 0 {
		return "", ErrEmptyCompletion
	}
	text := strings.TrimSpace(resp.Choices[0].Message.Content)
	if text == "" {
		return "", ErrEmptyCompletion
	}
	return text, nil
}
