package feed

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/slack-go/slack"

	"github.com/preston-bernstein/nfl-broadcast-service/internal/broadcast"
	"github.com/preston-bernstein/nfl-broadcast-service/internal/logging"
)

const slackTimeout = 5 * time.Second

// SlackSink mirrors broadcast messages into a Slack channel through an incoming webhook.
type SlackSink struct {
	webhookURL string
	client     *http.Client
	logger     *slog.Logger
	kinds      map[broadcast.Kind]bool
}

// NewSlackSink posts updates and errors to webhookURL. A nil client uses one with a short timeout.
func NewSlackSink(webhookURL string, client *http.Client, logger *slog.Logger) *SlackSink {
	if client == nil {
		client = &http.Client{Timeout: slackTimeout}
	}
	return &SlackSink{
		webhookURL: webhookURL,
		client:     client,
		logger:     logger,
		kinds: map[broadcast.Kind]bool{
			broadcast.KindUpdate: true,
			broadcast.KindError:  true,
		},
	}
}

// Publish implements broadcast.Sink. Delivery failures are logged and dropped.
func (s *SlackSink) Publish(ctx context.Context, sessionID string, msg broadcast.Message) {
	if !s.kinds[msg.Kind] {
		return
	}
	ctx, cancel := context.WithTimeout(ctx, slackTimeout)
	defer cancel()

	payload := &slack.WebhookMessage{Text: slackText(sessionID, msg)}
	if err := slack.PostWebhookCustomHTTPContext(ctx, s.webhookURL, s.client, payload); err != nil {
		logging.Warn(logging.FromContext(ctx, s.logger), "slack delivery failed",
			logging.FieldSessionID, sessionID,
			logging.FieldError, err,
		)
	}
}

func slackText(sessionID string, msg broadcast.Message) string {
	short := sessionID
	if len(short) > 8 {
		short = short[:8]
	}
	if msg.Kind == broadcast.KindError {
		return fmt.Sprintf(":warning: `%s` %s", short, msg.Text)
	}
	return fmt.Sprintf("`%s` %s", short, msg.Text)
}
