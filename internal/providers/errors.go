package providers

import (
	"errors"
	"fmt"
	"time"
)

// ErrProviderUnavailable is returned when no upstream provider is configured.
var ErrProviderUnavailable = errors.New("provider unavailable")

// ErrNotFound is returned when the upstream has no record for the requested id.
var ErrNotFound = errors.New("not found")

// RateLimitError captures rate limit responses from upstream providers.
type RateLimitError struct {
	Provider   string
	StatusCode int
	RetryAfter time.Duration
	Remaining  string
	Message    string
}

func (e *RateLimitError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = "provider rate limited"
	}
	if e.StatusCode > 0 {
		return fmt.Sprintf("%s (status=%d)", msg, e.StatusCode)
	}
	return msg
}

// AsRateLimitError attempts to unwrap an error into a RateLimitError.
func AsRateLimitError(err error) (*RateLimitError, bool) {
	var rlErr *RateLimitError
	if errors.As(err, &rlErr) {
		return rlErr, true
	}
	return nil, false
}

// DataShapeError reports an upstream record that failed validation at the provider boundary.
type DataShapeError struct {
	Entity string
	Err    error
}

func (e *DataShapeError) Error() string {
	return fmt.Sprintf("unexpected %s shape: %v", e.Entity, e.Err)
}

func (e *DataShapeError) Unwrap() error {
	return e.Err
}

// IsDataShape reports whether err wraps a DataShapeError.
func IsDataShape(err error) bool {
	var shapeErr *DataShapeError
	return errors.As(err, &shapeErr)
}
