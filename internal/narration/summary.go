package narration

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/preston-bernstein/nfl-broadcast-service/internal/domain/games"
	"github.com/preston-bernstein/nfl-broadcast-service/internal/llm"
	"github.com/preston-bernstein/nfl-broadcast-service/internal/logging"
	"github.com/preston-bernstein/nfl-broadcast-service/internal/metrics"
)

// SummaryFailureText replaces a summary the model could not produce.
const SummaryFailureText = "Error generating game summary."

// Summarizer writes on-demand game summaries.
type Summarizer struct {
	completer llm.Completer
	templates Templates
	logger    *slog.Logger
	metrics   *metrics.Recorder
}

// NewSummarizer builds a summarizer over completer.
func NewSummarizer(completer llm.Completer, templates Templates, logger *slog.Logger, recorder *metrics.Recorder) *Summarizer {
	return &Summarizer{completer: completer, templates: templates, logger: logger, metrics: recorder}
}

// Summarize returns the data excerpt shown to the user and the model's narrative.
// It never fails; on model error the narrative is SummaryFailureText.
func (s *Summarizer) Summarize(ctx context.Context, game games.Game, temperature float64) (string, string) {
	details, instructions := s.excerpt(game)
	user := Render(s.templates.Summary.User, map[string]string{
		"instructions": instructions,
		"details":      details,
		"phase":        string(game.Phase()),
	})
	model := llm.ModelName(s.completer)

	start := time.Now()
	text, err := s.completer.Complete(ctx, s.templates.Summary.System, user, temperature)
	text = strings.TrimSpace(text)
	if err == nil && text == "" {
		err = llm.ErrEmptyCompletion
	}
	s.metrics.RecordNarration(model, time.Since(start), err != nil)
	if err != nil {
		logging.Warn(logging.FromContext(ctx, s.logger), "game summary failed",
			logging.FieldModel, model,
			logging.FieldScoreID, game.ScoreID,
			logging.FieldError, err,
		)
		return details, SummaryFailureText
	}
	return details, text
}

func (s *Summarizer) excerpt(game games.Game) (string, string) {
	switch game.Phase() {
	case games.PhaseNotStarted:
		return toJSON(game), s.templates.Summary.Pregame
	case games.PhaseInProgress:
		return Details(game), s.templates.Summary.InProgress
	default:
		return Details(game), s.templates.Summary.Final
	}
}

// Details renders the bullet excerpt used once a game has started.
func Details(g games.Game) string {
	lines := []string{
		fmt.Sprintf("- **Teams**: %s vs %s", g.AwayTeam, g.HomeTeam),
		fmt.Sprintf("- **Score**: %d - %d", g.Score.Away, g.Score.Home),
		fmt.Sprintf("- **Quarter**: %s", g.Quarter),
		fmt.Sprintf("- **Time Remaining**: %s", g.TimeRemaining),
		fmt.Sprintf("- **Current Possession**: %s", g.Possession),
		fmt.Sprintf("- **Last Play**: %s", g.LastPlay),
		fmt.Sprintf("- **Stadium**: %s", stadiumLine(g.Stadium)),
	}
	return strings.Join(lines, "\n")
}

func stadiumLine(s games.Stadium) string {
	parts := make([]string, 0, 3)
	for _, p := range []string{s.Name, s.City, s.State} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ", ")
}
