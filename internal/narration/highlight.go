package narration

import (
	"sort"
	"strings"

	"github.com/preston-bernstein/nfl-broadcast-service/internal/domain/players"
)

// DefaultMarker wraps priority names in markdown bold.
const DefaultMarker = "**"

// Highlighter wraps priority player names found in narration text.
type Highlighter struct {
	Prefix string
	Suffix string
}

// NewHighlighter uses marker on both sides; an empty marker falls back to DefaultMarker.
func NewHighlighter(marker string) Highlighter {
	if marker == "" {
		marker = DefaultMarker
	}
	return Highlighter{Prefix: marker, Suffix: marker}
}

// Highlight wraps every bare priority name in text using the default marker.
func Highlight(text string, priority map[string]int) string {
	return NewHighlighter(DefaultMarker).Highlight(text, priority)
}

type segment struct {
	text   string
	marked bool
}

// Highlight wraps each distinct bare name, longest first. Text already wrapped for a longer
// name is not searched again, so "Josh Allen Jr." never yields a nested "Josh Allen" marker.
func (h Highlighter) Highlight(text string, priority map[string]int) string {
	names := bareNames(priority)
	if text == "" || len(names) == 0 {
		return text
	}

	segments := []segment{{text: text}}
	for _, name := range names {
		next := make([]segment, 0, len(segments))
		for _, seg := range segments {
			if seg.marked || !strings.Contains(seg.text, name) {
				next = append(next, seg)
				continue
			}
			parts := strings.Split(seg.text, name)
			for i, part := range parts {
				if i > 0 {
					next = append(next, segment{text: name, marked: true})
				}
				if part != "" {
					next = append(next, segment{text: part})
				}
			}
		}
		segments = next
	}

	var b strings.Builder
	for _, seg := range segments {
		if seg.marked {
			b.WriteString(h.Prefix)
			b.WriteString(seg.text)
			b.WriteString(h.Suffix)
			continue
		}
		b.WriteString(seg.text)
	}
	return b.String()
}

// bareNames returns distinct non-empty bare names, longest first then alphabetical.
func bareNames(priority map[string]int) []string {
	seen := make(map[string]struct{}, len(priority))
	names := make([]string, 0, len(priority))
	for display := range priority {
		name := players.BareName(display)
		if name == "" {
			continue
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if len(names[i]) != len(names[j]) {
			return len(names[i]) > len(names[j])
		}
		return names[i] < names[j]
	})
	return names
}
