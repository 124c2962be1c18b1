package narration

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"time"

	"github.com/preston-bernstein/nfl-broadcast-service/internal/llm"
	"github.com/preston-bernstein/nfl-broadcast-service/internal/logging"
	"github.com/preston-bernstein/nfl-broadcast-service/internal/metrics"
	"github.com/preston-bernstein/nfl-broadcast-service/internal/playcontext"
)

// FailureText replaces a narration the model could not produce.
const FailureText = "Error generating broadcast."

const noImage = "none"

// Narrator turns a PlayContext into broadcast text.
type Narrator struct {
	completer   llm.Completer
	templates   Templates
	highlighter Highlighter
	logger      *slog.Logger
	metrics     *metrics.Recorder
}

// NewNarrator builds a narrator that marks priority players with highlighter.
func NewNarrator(completer llm.Completer, templates Templates, highlighter Highlighter, logger *slog.Logger, recorder *metrics.Recorder) *Narrator {
	if highlighter.Prefix == "" && highlighter.Suffix == "" {
		highlighter = NewHighlighter(DefaultMarker)
	}
	return &Narrator{
		completer:   completer,
		templates:   templates,
		highlighter: highlighter,
		logger:      logger,
		metrics:     recorder,
	}
}

// Narrate never fails. Model errors, timeouts and blank replies yield FailureText.
func (n *Narrator) Narrate(ctx context.Context, pc playcontext.PlayContext, temperature float64) string {
	user := Render(n.templates.Broadcast.User, PromptValues(pc))
	model := llm.ModelName(n.completer)

	start := time.Now()
	text, err := n.completer.Complete(ctx, n.templates.Broadcast.System, user, temperature)
	text = strings.TrimSpace(text)
	if err == nil && text == "" {
		err = llm.ErrEmptyCompletion
	}
	n.metrics.RecordNarration(model, time.Since(start), err != nil)
	if err != nil {
		logging.Warn(logging.FromContext(ctx, n.logger), "narration failed",
			logging.FieldModel, model,
			logging.FieldScoreID, pc.Game.ScoreID,
			logging.FieldSequence, pc.Play.SequenceValue(),
			logging.FieldError, err,
		)
		return FailureText
	}
	return n.highlighter.Highlight(text, pc.Preferences.PriorityPlayers)
}

// PromptValues serializes each context field for the user template.
func PromptValues(pc playcontext.PlayContext) map[string]string {
	image := noImage
	if pc.Image != nil {
		image = toJSON(pc.Image)
	}
	tone := strings.TrimSpace(pc.Preferences.Tone)
	if tone == "" {
		tone = "neutral"
	}
	return map[string]string{
		"game":         toJSON(pc.Game),
		"play":         toJSON(pc.Play),
		"box_scores":   toJSON(pc.BoxScores),
		"season_stats": toJSON(pc.SeasonStats),
		"odds":         toJSON(pc.Odds),
		"props":        toJSON(pc.Props),
		"preferences":  toJSON(preferenceView(pc.Preferences)),
		"tone":         tone,
		"image":        image,
	}
}

// preferenceView drops fields the model should not see twice (image is rendered separately and scoped).
func preferenceView(p playcontext.Preferences) map[string]any {
	return map[string]any{
		"players": bareNames(p.PriorityPlayers),
		"tone":    p.Tone,
	}
}

func toJSON(v any) string {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "{}"
	}
	return string(data)
}
