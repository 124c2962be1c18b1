package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/preston-bernstein/nfl-broadcast-service/internal/app/broadcasts"
	appgames "github.com/preston-bernstein/nfl-broadcast-service/internal/app/games"
	appplayers "github.com/preston-bernstein/nfl-broadcast-service/internal/app/players"
	"github.com/preston-bernstein/nfl-broadcast-service/internal/broadcast"
	domaingames "github.com/preston-bernstein/nfl-broadcast-service/internal/domain/games"
	"github.com/preston-bernstein/nfl-broadcast-service/internal/feed"
	"github.com/preston-bernstein/nfl-broadcast-service/internal/narration"
	"github.com/preston-bernstein/nfl-broadcast-service/internal/playcontext"
	"github.com/preston-bernstein/nfl-broadcast-service/internal/store"
	"github.com/preston-bernstein/nfl-broadcast-service/internal/teststubs"
)

// Services bundles the application services wired against one stub provider and completer.
type Services struct {
	Provider  *teststubs.StubProvider
	Completer *teststubs.StubCompleter
	Hub       *feed.Hub
	Games     *appgames.Service
	Players   *appplayers.Service
	Sessions  *broadcasts.Service
}

// LiveProvider serves SampleGame(scoreID), SampleRoster and the given plays.
func LiveProvider(scoreID int, plays ...domaingames.Play) *teststubs.StubProvider {
	return &teststubs.StubProvider{
		Game:   SampleGame(scoreID),
		Games:  []domaingames.Game{SampleGame(scoreID)},
		Roster: SampleRoster(),
		Plays:  plays,
	}
}

// NewServices wires real services over provider. Sessions poll hourly so tests drive them explicitly,
// and every session is stopped when the test ends.
func NewServices(t *testing.T, provider *teststubs.StubProvider) *Services {
	t.Helper()
	completer := &teststubs.StubCompleter{Reply: "What a play!"}
	hub := feed.NewHub(16, nil)
	templates := narration.DefaultTemplates()
	assembler := playcontext.NewAssembler(provider, "2024REG", nil, nil)
	narrator := narration.NewNarrator(completer, templates, narration.NewHighlighter("**"), nil, nil)

	sessions := broadcasts.NewService(store.NewSessionStore(), provider, assembler, narrator, broadcast.Options{
		Interval: time.Hour,
		Sinks:    []broadcast.Sink{hub},
	})
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = sessions.Shutdown(ctx)
		hub.CloseAll()
	})

	return &Services{
		Provider:  provider,
		Completer: completer,
		Hub:       hub,
		Games:     appgames.NewService(provider, narration.NewSummarizer(completer, templates, nil, nil), "2024REG", nil),
		Players:   appplayers.NewService(provider, nil),
		Sessions:  sessions,
	}
}
