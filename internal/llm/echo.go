package llm

import (
	"context"
	"encoding/json"
	"regexp"
	"strings"
	"unicode/utf8"
)

const echoMaxRunes = 280

var descriptionField = regexp.MustCompile(`"description":\s*("(?:[^"\\]|\\.)*")`)

// Echo is an offline Completer for local runs. It replays the first play description found in the prompt.
type Echo struct {
	Prefix string
}

// Model reports the pseudo model name.
func (Echo) Model() string {
	return "echo"
}

// Complete never calls out; it returns a compact rendition of user.
func (e Echo) Complete(ctx context.Context, system, user string, temperature float64) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	text := extractDescription(user)
	if text == "" {
		text = strings.Join(strings.Fields(user), " ")
	}
	text = truncateRunes(text, echoMaxRunes)
	if text == "" {
		return "", ErrEmptyCompletion
	}
	if e.Prefix != "" {
		text = e.Prefix + " " + text
	}
	return text, nil
}

func extractDescription(user string) string {
	m := descriptionField.FindStringSubmatch(user)
	if len(m) < 2 {
		return ""
	}
	var out string
	if err := json.Unmarshal([]byte(m[1]), &out); err != nil {
		return ""
	}
	return strings.TrimSpace(out)
}

func truncateRunes(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	runes := []rune(s)
	return strings.TrimSpace(string(runes[:max])) + "..."
}
