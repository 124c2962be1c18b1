package playcontext

import (
	"context"
	"log/slog"
	"strconv"

	"github.com/preston-bernstein/nfl-broadcast-service/internal/domain/betting"
	"github.com/preston-bernstein/nfl-broadcast-service/internal/domain/games"
	"github.com/preston-bernstein/nfl-broadcast-service/internal/domain/players"
	"github.com/preston-bernstein/nfl-broadcast-service/internal/logging"
	"github.com/preston-bernstein/nfl-broadcast-service/internal/metrics"
	"github.com/preston-bernstein/nfl-broadcast-service/internal/providers"
)

// Lookups are the provider calls the assembler needs.
type Lookups interface {
	providers.PlayerProvider
	providers.BettingProvider
}

// Assembler gathers stats, odds and preferences for one play.
type Assembler struct {
	lookups Lookups
	season  string
	logger  *slog.Logger
	metrics *metrics.Recorder
}

// NewAssembler builds an assembler. An empty season falls back to the game's season year.
func NewAssembler(lookups Lookups, season string, logger *slog.Logger, recorder *metrics.Recorder) *Assembler {
	return &Assembler{lookups: lookups, season: season, logger: logger, metrics: recorder}
}

// Assemble never fails: each lookup that errors is logged and left empty.
// Lookups run sequentially as box scores, season stats, props, odds. Player-scoped lookups are skipped when nobody is involved.
func (a *Assembler) Assemble(ctx context.Context, game games.Game, play games.Play, involved IDSet, prefs Preferences) PlayContext {
	ids := involved.Sorted()
	pc := PlayContext{
		Game:            game,
		Play:            play,
		BoxScores:       map[int]players.StatLine{},
		SeasonStats:     map[int]players.StatLine{},
		Odds:            []betting.GameOdds{},
		Props:           []betting.PlayerProp{},
		Preferences:     prefs,
		InvolvedPlayers: ids,
	}

	if len(ids) > 0 {
		if box, err := a.lookups.FetchBoxScores(ctx, game.ScoreID, ids); err != nil {
			a.lookupFailed(ctx, "box_scores", game.ScoreID, err)
		} else if box != nil {
			pc.BoxScores = box
		}

		if season, err := a.lookups.FetchSeasonStats(ctx, a.seasonFor(game), ids); err != nil {
			a.lookupFailed(ctx, "season_stats", game.ScoreID, err)
		} else if season != nil {
			pc.SeasonStats = season
		}

		if props, err := a.lookups.FetchPlayerProps(ctx, game.ScoreID, ids); err != nil {
			a.lookupFailed(ctx, "player_props", game.ScoreID, err)
		} else if props != nil {
			pc.Props = props
		}
	}

	if odds, err := a.lookups.FetchLatestOdds(ctx, game.ScoreID); err != nil {
		a.lookupFailed(ctx, "odds", game.ScoreID, err)
	} else if odds != nil {
		pc.Odds = odds
	}

	pc.Image = scopeImage(prefs.Image, involved)
	return pc
}

func (a *Assembler) seasonFor(game games.Game) string {
	if a.season != "" {
		return a.season
	}
	return strconv.Itoa(game.Season)
}

func (a *Assembler) lookupFailed(ctx context.Context, lookup string, scoreID int, err error) {
	a.metrics.RecordLookupFailure(lookup)
	logging.Warn(logging.FromContext(ctx, a.logger), "context lookup failed",
		logging.FieldLookup, lookup,
		logging.FieldScoreID, scoreID,
		logging.FieldError, err,
	)
}

// scopeImage keeps image context only when it names a player involved in the play.
func scopeImage(img *ImageResults, involved IDSet) *ImageResults {
	if img == nil {
		return nil
	}
	for _, id := range img.Players {
		if involved.Has(id) {
			return img
		}
	}
	return nil
}
