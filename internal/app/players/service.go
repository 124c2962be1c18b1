package players

import (
	"context"
	"log/slog"
	"sort"
	"strings"

	domaingames "github.com/preston-bernstein/nfl-broadcast-service/internal/domain/games"
	"github.com/preston-bernstein/nfl-broadcast-service/internal/domain/players"
	"github.com/preston-bernstein/nfl-broadcast-service/internal/logging"
)

// RosterSource fetches one team's players.
type RosterSource interface {
	FetchRoster(ctx context.Context, team string) ([]players.Player, error)
}

// Entry is one selectable player.
type Entry struct {
	PlayerID    int    `json:"playerId"`
	DisplayName string `json:"displayName"`
	Position    string `json:"position"`
	Team        string `json:"team"`
}

// Service builds the player selector for a game.
type Service struct {
	source RosterSource
	logger *slog.Logger
}

// NewService constructs a Service over source.
func NewService(source RosterSource, logger *slog.Logger) *Service {
	return &Service{source: source, logger: logger}
}

// Roster returns both teams' players labelled "Name (Position, Team)", home team first.
// A team whose roster cannot be fetched is logged and left out.
func (s *Service) Roster(ctx context.Context, game domaingames.Game) []Entry {
	entries := []Entry{}
	for _, team := range []string{game.HomeTeam, game.AwayTeam} {
		if team == "" {
			continue
		}
		list, err := s.source.FetchRoster(ctx, team)
		if err != nil {
			logging.Warn(logging.FromContext(ctx, s.logger), "roster lookup failed",
				logging.FieldScoreID, game.ScoreID,
				logging.FieldError, err,
			)
			continue
		}
		for _, p := range list {
			if p.PlayerID == 0 || strings.TrimSpace(p.Name) == "" {
				continue
			}
			entries = append(entries, Entry{
				PlayerID:    p.PlayerID,
				DisplayName: p.DisplayName(),
				Position:    p.Position,
				Team:        p.Team,
			})
		}
	}
	return entries
}

// Filter keeps entries whose display name contains query, ignoring case. An empty query keeps all.
func Filter(entries []Entry, query string) []Entry {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return entries
	}
	out := []Entry{}
	for _, e := range entries {
		if strings.Contains(strings.ToLower(e.DisplayName), query) {
			out = append(out, e)
		}
	}
	return out
}

// Priority converts selected display names into the id map used for narration preferences.
// Names not on the roster are returned separately, sorted.
func Priority(entries []Entry, selected []string) (map[string]int, []string) {
	byName := make(map[string]int, len(entries))
	for _, e := range entries {
		byName[e.DisplayName] = e.PlayerID
	}
	priority := make(map[string]int, len(selected))
	var unknown []string
	for _, name := range selected {
		id, ok := byName[name]
		if !ok {
			unknown = append(unknown, name)
			continue
		}
		priority[name] = id
	}
	sort.Strings(unknown)
	return priority, unknown
}

// AsRoster returns entries as display name to player id.
func AsRoster(entries []Entry) players.Roster {
	roster := make(players.Roster, len(entries))
	for _, e := range entries {
		roster[e.DisplayName] = e.PlayerID
	}
	return roster
}
