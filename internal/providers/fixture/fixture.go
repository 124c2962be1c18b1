package fixture

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/preston-bernstein/nfl-broadcast-service/internal/domain/betting"
	"github.com/preston-bernstein/nfl-broadcast-service/internal/domain/games"
	"github.com/preston-bernstein/nfl-broadcast-service/internal/domain/players"
	"github.com/preston-bernstein/nfl-broadcast-service/internal/providers"
)

const (
	// LiveScoreID is the scripted in-progress game.
	LiveScoreID  = 18001
	FinalScoreID = 18002
	UpcomingID   = 18003

	initialPlays = 3
)

// Provider replays a scripted game day. The live game's play list grows by one play per FetchPlayByPlay call.
type Provider struct {
	now func() time.Time

	mu       sync.Mutex
	revealed map[int]int
}

// New creates a fixture provider with a time source.
func New() *Provider {
	return &Provider{
		now:      time.Now,
		revealed: make(map[int]int),
	}
}

// FetchSchedule returns the scripted games regardless of season.
func (p *Provider) FetchSchedule(ctx context.Context, season string) ([]games.Game, error) {
	return p.games(), nil
}

// FetchGamesByDate returns the scripted games dated to the requested day.
func (p *Provider) FetchGamesByDate(ctx context.Context, date string) ([]games.Game, error) {
	day := p.now().UTC().Truncate(24 * time.Hour)
	if date != "" {
		if parsed, err := time.Parse("2006-01-02", date); err == nil {
			day = parsed.UTC()
		}
	}
	list := p.games()
	for i := range list {
		list[i].Date = day.Add(time.Duration(17+i) * time.Hour)
	}
	return list, nil
}

// FetchGame returns one scripted game; the live game reflects the plays revealed so far.
func (p *Provider) FetchGame(ctx context.Context, scoreID int) (games.Game, error) {
	for _, g := range p.games() {
		if g.ScoreID == scoreID {
			return g, nil
		}
	}
	return games.Game{}, fmt.Errorf("fixture: game %d: %w", scoreID, providers.ErrNotFound)
}

// FetchRoster returns the scripted roster for a team code.
func (p *Provider) FetchRoster(ctx context.Context, team string) ([]players.Player, error) {
	var out []players.Player
	for _, pl := range roster {
		if strings.EqualFold(pl.Team, team) {
			out = append(out, pl)
		}
	}
	return out, nil
}

// FetchPlayByPlay reveals one more live play per call.
func (p *Provider) FetchPlayByPlay(ctx context.Context, scoreID int) (games.PlayByPlay, error) {
	if scoreID == LiveScoreID {
		p.advance()
	}
	game, err := p.FetchGame(ctx, scoreID)
	if err != nil {
		return games.PlayByPlay{}, err
	}
	switch scoreID {
	case LiveScoreID:
		return games.PlayByPlay{Game: game, Plays: clonePlays(livePlays[:p.revealedCount()])}, nil
	case FinalScoreID:
		return games.PlayByPlay{Game: game, Plays: clonePlays(livePlays)}, nil
	default:
		return games.PlayByPlay{Game: game, Plays: []games.Play{}}, nil
	}
}

func (p *Provider) advance() {
	p.mu.Lock()
	defer p.mu.Unlock()
	switch n := p.revealed[LiveScoreID]; {
	case n == 0:
		p.revealed[LiveScoreID] = initialPlays
	case n < len(livePlays):
		p.revealed[LiveScoreID] = n + 1
	}
}

func (p *Provider) revealedCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	if n := p.revealed[LiveScoreID]; n > 0 {
		return n
	}
	return initialPlays
}

// FetchBoxScores returns scripted in-game stat rows.
func (p *Provider) FetchBoxScores(ctx context.Context, scoreID int, playerIDs []int) (map[int]players.StatLine, error) {
	return pick(boxScores, playerIDs), nil
}

// FetchSeasonStats returns scripted season totals.
func (p *Provider) FetchSeasonStats(ctx context.Context, season string, playerIDs []int) (map[int]players.StatLine, error) {
	return pick(seasonStats, playerIDs), nil
}

// FetchPlayerProps returns scripted prop markets for the requested players.
func (p *Provider) FetchPlayerProps(ctx context.Context, scoreID int, playerIDs []int) ([]betting.PlayerProp, error) {
	wanted := make(map[int]struct{}, len(playerIDs))
	for _, id := range playerIDs {
		wanted[id] = struct{}{}
	}
	out := make([]betting.PlayerProp, 0)
	for _, prop := range props {
		if _, ok := wanted[prop.PlayerID]; ok {
			out = append(out, prop)
		}
	}
	return out, nil
}

// FetchLatestOdds returns one scripted line per sportsbook.
func (p *Provider) FetchLatestOdds(ctx context.Context, scoreID int) ([]betting.GameOdds, error) {
	created := p.now().UTC().Truncate(time.Minute)
	return []betting.GameOdds{
		{Sportsbook: "DraftKings", HomeMoneyLine: intPtr(-240), AwayMoneyLine: intPtr(195), HomePointSpread: floatPtr(-5.5), OverUnder: floatPtr(47.5), Created: created},
		{Sportsbook: "FanDuel", HomeMoneyLine: intPtr(-230), AwayMoneyLine: intPtr(190), HomePointSpread: floatPtr(-5.0), OverUnder: floatPtr(48.0), Created: created},
	}, nil
}

// FetchCurrentTime returns the provider clock.
func (p *Provider) FetchCurrentTime(ctx context.Context) (*time.Time, error) {
	now := p.now()
	return &now, nil
}

func (p *Provider) games() []games.Game {
	kickoff := p.now().UTC().Truncate(time.Hour)

	live := games.Game{
		ScoreID:      LiveScoreID,
		GameKey:      "202410101",
		Season:       2024,
		Week:         1,
		HomeTeam:     "BUF",
		AwayTeam:     "ARI",
		HasStarted:   true,
		IsInProgress: true,
		Date:         kickoff.Add(-2 * time.Hour),
		Channel:      "CBS",
		Stadium:      games.Stadium{Name: "Highmark Stadium", City: "Orchard Park", State: "NY"},
		Weather:      games.Weather{TempLow: intPtr(61), TempHigh: intPtr(68), WindSpeed: intPtr(9), Forecast: "Partly cloudy"},
		PointSpread:  floatPtr(-6.5),
		OverUnder:    floatPtr(47.5),
	}
	applyPlays(&live, livePlays[:p.revealedCount()])

	final := games.Game{
		ScoreID:     FinalScoreID,
		GameKey:     "202410102",
		Season:      2024,
		Week:        1,
		HomeTeam:    "KC",
		AwayTeam:    "BAL",
		Score:       games.Score{Home: 27, Away: 20},
		Quarter:     "F",
		HasStarted:  true,
		IsOver:      true,
		LastPlay:    "Patrick Mahomes kneels to end the game.",
		Date:        kickoff.Add(-26 * time.Hour),
		Channel:     "NBC",
		Stadium:     games.Stadium{Name: "GEHA Field at Arrowhead Stadium", City: "Kansas City", State: "MO"},
		PointSpread: floatPtr(-3),
		OverUnder:   floatPtr(46.5),
	}

	upcoming := games.Game{
		ScoreID:     UpcomingID,
		GameKey:     "202410103",
		Season:      2024,
		Week:        1,
		HomeTeam:    "PHI",
		AwayTeam:    "GB",
		Date:        kickoff.Add(5 * time.Hour),
		Channel:     "Peacock",
		Stadium:     games.Stadium{Name: "Arena Corinthians", City: "Sao Paulo", State: "SP"},
		Weather:     games.Weather{TempLow: intPtr(58), TempHigh: intPtr(64), Humidity: intPtr(72), WindSpeed: intPtr(5), Forecast: "Clear"},
		PointSpread: floatPtr(-2.5),
		OverUnder:   floatPtr(48.5),
	}

	return []games.Game{live, final, upcoming}
}

func applyPlays(g *games.Game, plays []games.Play) {
	if len(plays) == 0 {
		return
	}
	last := plays[len(plays)-1]
	g.Quarter = last.Quarter
	g.TimeRemaining = last.TimeRemaining
	g.Possession = last.Team
	g.LastPlay = last.Description
	for _, pl := range plays {
		if pl.IsScoringPlay {
			points := 7
			if strings.Contains(pl.Description, "field goal") {
				points = 3
			}
			if pl.Team == g.HomeTeam {
				g.Score.Home += points
			} else {
				g.Score.Away += points
			}
		}
	}
}

func clonePlays(src []games.Play) []games.Play {
	out := make([]games.Play, len(src))
	for i, pl := range src {
		if pl.Sequence != nil {
			pl.Sequence = games.Seq(*pl.Sequence)
		}
		out[i] = pl
	}
	return out
}

func pick(src map[int]players.StatLine, ids []int) map[int]players.StatLine {
	out := make(map[int]players.StatLine, len(ids))
	for _, id := range ids {
		if line, ok := src[id]; ok {
			out[id] = line
		}
	}
	return out
}

func intPtr(v int) *int { return &v }

func floatPtr(v float64) *float64 { return &v }
