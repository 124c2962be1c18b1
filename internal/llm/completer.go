package llm

import (
	"context"
	"errors"
)

// ErrEmptyCompletion is returned when the model replies with no usable text.
var ErrEmptyCompletion = errors.New("empty completion")

// Completer turns a system prompt and user content into model text.
type Completer interface {
	Complete(ctx context.Context, system, user string, temperature float64) (string, error)
}

// Named is implemented by completers that report which model they call.
type Named interface {
	Model() string
}

// ModelName returns c's model when it reports one.
func ModelName(c Completer) string {
	if n, ok := c.(Named); ok {
		return n.Model()
	}
	return "unknown"
}
