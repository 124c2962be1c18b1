package narration

import (
	_ "embed"
	"fmt"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"
)

//go:embed prompts.yaml
var defaultPrompts []byte

// Prompt is a system/user template pair.
type Prompt struct {
	System string `yaml:"system"`
	User   string `yaml:"user"`
}

// SummaryPrompt adds the phase-specific instructions spliced into {{instructions}}.
type SummaryPrompt struct {
	Prompt     `yaml:",inline"`
	Pregame    string `yaml:"pregame"`
	InProgress string `yaml:"in_progress"`
	Final      string `yaml:"final"`
}

// Templates holds every operator-editable prompt.
type Templates struct {
	Broadcast Prompt        `yaml:"broadcast"`
	Summary   SummaryPrompt `yaml:"summary"`
}

// DefaultTemplates returns the built-in prompts.
func DefaultTemplates() Templates {
	var t Templates
	if err := yaml.Unmarshal(defaultPrompts, &t); err != nil {
		panic(fmt.Sprintf("narration: built-in prompts are invalid: %v", err))
	}
	return t
}

// LoadTemplates reads a YAML prompt file. Keys missing from the file keep their built-in value.
func LoadTemplates(path string) (Templates, error) {
	t := DefaultTemplates()
	if path == "" {
		return t, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return t, fmt.Errorf("read prompts: %w", err)
	}
	var override Templates
	if err := yaml.Unmarshal(data, &override); err != nil {
		return t, fmt.Errorf("parse prompts %s: %w", path, err)
	}
	t.merge(override)
	return t, nil
}

func (t *Templates) merge(o Templates) {
	setIf(&t.Broadcast.System, o.Broadcast.System)
	setIf(&t.Broadcast.User, o.Broadcast.User)
	setIf(&t.Summary.System, o.Summary.System)
	setIf(&t.Summary.User, o.Summary.User)
	setIf(&t.Summary.Pregame, o.Summary.Pregame)
	setIf(&t.Summary.InProgress, o.Summary.InProgress)
	setIf(&t.Summary.Final, o.Summary.Final)
}

func setIf(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

var placeholder = regexp.MustCompile(`\{\{\s*([a-zA-Z_]+)\s*\}\}`)

// Render substitutes {{name}} placeholders in one pass. Unknown names are left untouched
// and substituted values are never re-expanded.
func Render(template string, values map[string]string) string {
	return placeholder.ReplaceAllStringFunc(template, func(match string) string {
		name := placeholder.FindStringSubmatch(match)[1]
		if v, ok := values[name]; ok {
			return v
		}
		return match
	})
}
