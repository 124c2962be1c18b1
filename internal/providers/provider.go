package providers

import (
	"context"
	"time"

	"github.com/preston-bernstein/nfl-broadcast-service/internal/domain/betting"
	"github.com/preston-bernstein/nfl-broadcast-service/internal/domain/games"
	"github.com/preston-bernstein/nfl-broadcast-service/internal/domain/players"
)

// GameProvider fetches schedules, single games and play-by-play.
// The date parameter, when provided, is a YYYY-MM-DD string. Season is a provider season key such as "2024REG".
type GameProvider interface {
	FetchSchedule(ctx context.Context, season string) ([]games.Game, error)
	FetchGamesByDate(ctx context.Context, date string) ([]games.Game, error)
	FetchGame(ctx context.Context, scoreID int) (games.Game, error)
	FetchPlayByPlay(ctx context.Context, scoreID int) (games.PlayByPlay, error)
}

// PlayerProvider fetches rosters and per-player stat rows keyed by player id.
type PlayerProvider interface {
	FetchRoster(ctx context.Context, team string) ([]players.Player, error)
	FetchBoxScores(ctx context.Context, scoreID int, playerIDs []int) (map[int]players.StatLine, error)
	FetchSeasonStats(ctx context.Context, season string, playerIDs []int) (map[int]players.StatLine, error)
}

// BettingProvider fetches game lines and player props.
type BettingProvider interface {
	FetchPlayerProps(ctx context.Context, scoreID int, playerIDs []int) ([]betting.PlayerProp, error)
	FetchLatestOdds(ctx context.Context, scoreID int) ([]betting.GameOdds, error)
}

// Clock reports the provider's notion of "now". Replay feeds return the simulated time.
type Clock interface {
	FetchCurrentTime(ctx context.Context) (*time.Time, error)
}

// SportsProvider combines all provider capabilities.
type SportsProvider interface {
	GameProvider
	PlayerProvider
	BettingProvider
	Clock
}
