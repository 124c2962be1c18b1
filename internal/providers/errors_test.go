package providers

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/preston-bernstein/nfl-broadcast-service/internal/domain/games"
)

func TestRateLimitErrorString(t *testing.T) {
	err := &RateLimitError{Provider: "p", StatusCode: 429, Message: "rate limited"}
	assert.Equal(t, "rate limited (status=429)", err.Error())

	rl, ok := AsRateLimitError(fmt.Errorf("wrapped: %w", err))
	require.True(t, ok)
	assert.Same(t, err, rl)

	assert.Equal(t, "provider rate limited", (&RateLimitError{}).Error())
}

func TestAsRateLimitErrorRejectsOtherErrors(t *testing.T) {
	_, ok := AsRateLimitError(errors.New("boom"))
	assert.False(t, ok)
}

func TestDataShapeErrorUnwraps(t *testing.T) {
	err := fmt.Errorf("fetch: %w", &DataShapeError{Entity: "play", Err: games.ErrMissingField})

	assert.True(t, IsDataShape(err))
	assert.ErrorIs(t, err, games.ErrMissingField)
	assert.Contains(t, err.Error(), "unexpected play shape")
	assert.False(t, IsDataShape(errors.New("other")))
}
