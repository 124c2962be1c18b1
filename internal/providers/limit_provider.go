package providers

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/time/rate"

	"github.com/preston-bernstein/nfl-broadcast-service/internal/domain/betting"
	"github.com/preston-bernstein/nfl-broadcast-service/internal/domain/games"
	"github.com/preston-bernstein/nfl-broadcast-service/internal/domain/players"
)

const rateLimitedName = "rate-limited"

// rateLimitedProvider shares one token bucket across every lookup so a context assembly cannot burst past upstream quotas.
type rateLimitedProvider struct {
	next    SportsProvider
	limiter *rate.Limiter
	logger  *slog.Logger
}

// NewRateLimitedProvider returns a SportsProvider allowing perSecond calls with the given burst.
// Calls block until a token is available or ctx is done.
func NewRateLimitedProvider(next SportsProvider, perSecond float64, burst int, logger *slog.Logger) SportsProvider {
	limit := rate.Limit(perSecond)
	if perSecond <= 0 {
		limit = rate.Every(time.Second)
	}
	if burst <= 0 {
		burst = 1
	}
	return &rateLimitedProvider{
		next:    next,
		limiter: rate.NewLimiter(limit, burst),
		logger:  logger,
	}
}

func (p *rateLimitedProvider) wait(ctx context.Context, op string) error {
	if p == nil || p.next == nil {
		if p != nil {
			logWithProvider(ctx, p.logger, slog.LevelWarn, rateLimitedName, "provider unavailable")
		}
		return ErrProviderUnavailable
	}
	if err := p.limiter.Wait(ctx); err != nil {
		logWithProvider(ctx, p.logger, slog.LevelWarn, rateLimitedName, "rate-limited fetch canceled", "lookup", op)
		return err
	}
	logWithProvider(ctx, p.logger, slog.LevelDebug, rateLimitedName, "rate-limited provider fetch", "lookup", op)
	return nil
}

func (p *rateLimitedProvider) FetchSchedule(ctx context.Context, season string) ([]games.Game, error) {
	if err := p.wait(ctx, "schedule"); err != nil {
		return nil, err
	}
	return p.next.FetchSchedule(ctx, season)
}

func (p *rateLimitedProvider) FetchGamesByDate(ctx context.Context, date string) ([]games.Game, error) {
	if err := p.wait(ctx, "games_by_date"); err != nil {
		return nil, err
	}
	return p.next.FetchGamesByDate(ctx, date)
}

func (p *rateLimitedProvider) FetchGame(ctx context.Context, scoreID int) (games.Game, error) {
	if err := p.wait(ctx, "game"); err != nil {
		return games.Game{}, err
	}
	return p.next.FetchGame(ctx, scoreID)
}

func (p *rateLimitedProvider) FetchPlayByPlay(ctx context.Context, scoreID int) (games.PlayByPlay, error) {
	if err := p.wait(ctx, "play_by_play"); err != nil {
		return games.PlayByPlay{}, err
	}
	return p.next.FetchPlayByPlay(ctx, scoreID)
}

func (p *rateLimitedProvider) FetchRoster(ctx context.Context, team string) ([]players.Player, error) {
	if err := p.wait(ctx, "roster"); err != nil {
		return nil, err
	}
	return p.next.FetchRoster(ctx, team)
}

func (p *rateLimitedProvider) FetchBoxScores(ctx context.Context, scoreID int, playerIDs []int) (map[int]players.StatLine, error) {
	if err := p.wait(ctx, "box_scores"); err != nil {
		return nil, err
	}
	return p.next.FetchBoxScores(ctx, scoreID, playerIDs)
}

func (p *rateLimitedProvider) FetchSeasonStats(ctx context.Context, season string, playerIDs []int) (map[int]players.StatLine, error) {
	if err := p.wait(ctx, "season_stats"); err != nil {
		return nil, err
	}
	return p.next.FetchSeasonStats(ctx, season, playerIDs)
}

func (p *rateLimitedProvider) FetchPlayerProps(ctx context.Context, scoreID int, playerIDs []int) ([]betting.PlayerProp, error) {
	if err := p.wait(ctx, "player_props"); err != nil {
		return nil, err
	}
	return p.next.FetchPlayerProps(ctx, scoreID, playerIDs)
}

func (p *rateLimitedProvider) FetchLatestOdds(ctx context.Context, scoreID int) ([]betting.GameOdds, error) {
	if err := p.wait(ctx, "odds"); err != nil {
		return nil, err
	}
	return p.next.FetchLatestOdds(ctx, scoreID)
}

func (p *rateLimitedProvider) FetchCurrentTime(ctx context.Context) (*time.Time, error) {
	if err := p.wait(ctx, "current_time"); err != nil {
		return nil, err
	}
	return p.next.FetchCurrentTime(ctx)
}
