package broadcast

import (
	"context"
	"strings"
	"time"

	"github.com/preston-bernstein/nfl-broadcast-service/internal/domain/games"
	"github.com/preston-bernstein/nfl-broadcast-service/internal/timeutil"
)

// Kind classifies an emitted message.
type Kind string

const (
	KindUpdate  Kind = "update"
	KindError   Kind = "error"
	KindWarning Kind = "warning"
)

// Message is one entry in a session's ordered output.
// Sequence is set only for updates and names the narrated play.
type Message struct {
	ID        int       `json:"id"`
	Kind      Kind      `json:"kind"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
	Sequence  *int      `json:"sequence,omitempty"`
}

// Sink receives every message a session emits, in order.
// Publish must not block for long; the broadcast loop waits on it.
type Sink interface {
	Publish(ctx context.Context, sessionID string, msg Message)
}

// FormatUpdate renders "[15:04:05] Q3 08:12 — narration".
func FormatUpdate(at time.Time, play games.Play, narration string) string {
	var b strings.Builder
	b.WriteString("[")
	b.WriteString(timeutil.FormatClock(at))
	b.WriteString("]")
	if q := quarterLabel(play.Quarter); q != "" {
		b.WriteString(" ")
		b.WriteString(q)
	}
	if clock := strings.TrimSpace(play.TimeRemaining); clock != "" {
		b.WriteString(" ")
		b.WriteString(clock)
	}
	b.WriteString(" — ")
	b.WriteString(narration)
	return b.String()
}

func quarterLabel(q string) string {
	q = strings.TrimSpace(q)
	switch {
	case q == "":
		return ""
	case q[0] >= '0' && q[0] <= '9':
		return "Q" + q
	default:
		return strings.ToUpper(q)
	}
}
