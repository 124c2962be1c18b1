package narration

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHighlightWrapsPriorityNameOnce(t *testing.T) {
	out := Highlight("Allen finds Diggs downfield", map[string]int{"Allen": 1})

	assert.Equal(t, "**Allen** finds Diggs downfield", out)
	assert.Equal(t, 1, strings.Count(out, "**Allen**"))
	assert.NotContains(t, out, "**Diggs**")
}

func TestHighlightStripsDisplaySuffix(t *testing.T) {
	out := Highlight("Josh Allen keeps it himself", map[string]int{"Josh Allen (QB, BUF)": 17})
	assert.Equal(t, "**Josh Allen** keeps it himself", out)
}

func TestHighlightWrapsEveryOccurrence(t *testing.T) {
	out := Highlight("Cook left, Cook right", map[string]int{"James Cook (RB, BUF)": 4, "Cook": 4})
	assert.Equal(t, "Cook left, Cook right", strings.ReplaceAll(out, "**", ""))
	assert.Equal(t, 2, strings.Count(out, "**Cook**"))
}

func TestHighlightLongestNameFirstAvoidsDoubleWrap(t *testing.T) {
	priority := map[string]int{
		"Marvin Harrison Jr. (WR, ARI)": 18,
		"Marvin Harrison":               99,
	}
	out := Highlight("Marvin Harrison Jr. hauls it in", priority)

	assert.Equal(t, "**Marvin Harrison Jr.** hauls it in", out)
}

func TestHighlightCustomMarker(t *testing.T) {
	h := Highlighter{Prefix: "<b>", Suffix: "</b>"}
	assert.Equal(t, "<b>Diggs</b> again", h.Highlight("Diggs again", map[string]int{"Diggs": 2}))
}

func TestHighlightNoPriorityOrEmptyText(t *testing.T) {
	assert.Equal(t, "plain", Highlight("plain", nil))
	assert.Equal(t, "", Highlight("", map[string]int{"Allen": 1}))
	assert.Equal(t, "plain", Highlight("plain", map[string]int{" (QB, BUF)": 1}))
}

func TestNewHighlighterDefaultsMarker(t *testing.T) {
	h := NewHighlighter("")
	assert.Equal(t, DefaultMarker, h.Prefix)
	assert.Equal(t, DefaultMarker, h.Suffix)
}
