package llm

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEchoReplaysPlayDescription(t *testing.T) {
	user := "Play:\n{\n  \"playId\": 1,\n  \"description\": \"Josh Allen pass to \\\"Kincaid\\\" for 38 yards\"\n}\nBox scores: {}"

	text, err := Echo{}.Complete(context.Background(), "sys", user, 0.7)
	require.NoError(t, err)
	assert.Equal(t, `Josh Allen pass to "Kincaid" for 38 yards`, text)
}

func TestEchoFallsBackToCollapsedText(t *testing.T) {
	text, err := Echo{Prefix: "[echo]"}.Complete(context.Background(), "", "  summarize\n\n the   game ", 0)
	require.NoError(t, err)
	assert.Equal(t, "[echo] summarize the game", text)
}

func TestEchoTruncatesLongContent(t *testing.T) {
	text, err := Echo{}.Complete(context.Background(), "", strings.Repeat("word ", 200), 0)
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(text, "..."))
	assert.LessOrEqual(t, len([]rune(text)), echoMaxRunes+3)
}

func TestEchoEmptyInputIsEmptyCompletion(t *testing.T) {
	_, err := Echo{}.Complete(context.Background(), "", "   ", 0)
	assert.ErrorIs(t, err, ErrEmptyCompletion)
}

func TestEchoRespectsCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Echo{}.Complete(ctx, "", "x", 0)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, "echo", ModelName(Echo{}))
}
