package server

import (
	"log/slog"
	"strings"

	"github.com/preston-bernstein/nfl-broadcast-service/internal/config"
	"github.com/preston-bernstein/nfl-broadcast-service/internal/llm"
	"github.com/preston-bernstein/nfl-broadcast-service/internal/logging"
	"github.com/preston-bernstein/nfl-broadcast-service/internal/metrics"
	"github.com/preston-bernstein/nfl-broadcast-service/internal/narration"
)

func selectCompleter(cfg config.LLMConfig, logger *slog.Logger) llm.Completer {
	switch strings.ToLower(cfg.Provider) {
	case "echo", "":
		return llm.Echo{}
	case "openai":
		if cfg.APIKey == "" {
			logging.Warn(logger, "OPENAI_API_KEY not set, narrating with echo")
			return llm.Echo{}
		}
		return llm.NewOpenAIClient(llm.OpenAIConfig{
			APIKey:    cfg.APIKey,
			BaseURL:   cfg.BaseURL,
			Model:     cfg.Model,
			MaxTokens: cfg.MaxTokens,
			Timeout:   cfg.Timeout,
		}, logger)
	default:
		logging.Warn(logger, "unknown llm provider, falling back to echo", logging.FieldModel, cfg.Provider)
		return llm.Echo{}
	}
}

// narrationComponents share one completer and one template set.
type narrationComponents struct {
	narrator   *narration.Narrator
	summarizer *narration.Summarizer
}

func buildNarration(cfg config.Config, logger *slog.Logger, recorder *metrics.Recorder) narrationComponents {
	completer := selectCompleter(cfg.LLM, logger)
	templates, err := narration.LoadTemplates(cfg.LLM.PromptsFile)
	if err != nil {
		logging.Warn(logger, "prompt file unusable, using built-in prompts", logging.FieldError, err)
	}
	highlighter := narration.NewHighlighter(cfg.Broadcast.PriorityMarker)
	logging.Info(logger, "narration configured", logging.FieldModel, llm.ModelName(completer))
	return narrationComponents{
		narrator:   narration.NewNarrator(completer, templates, highlighter, logger, recorder),
		summarizer: narration.NewSummarizer(completer, templates, logger, recorder),
	}
}
