package sportsdataio

import (
	"fmt"
	"strings"
	"time"

	"github.com/preston-bernstein/nfl-broadcast-service/internal/domain/betting"
	"github.com/preston-bernstein/nfl-broadcast-service/internal/domain/games"
	"github.com/preston-bernstein/nfl-broadcast-service/internal/domain/players"
	"github.com/preston-bernstein/nfl-broadcast-service/internal/providers"
)

func mapGame(s scoreResponse, loc *time.Location) (games.Game, error) {
	g := games.Game{
		ScoreID:       s.ScoreID,
		GameKey:       s.GameKey,
		Season:        s.Season,
		Week:          s.Week,
		HomeTeam:      s.HomeTeam,
		AwayTeam:      s.AwayTeam,
		Score:         games.Score{Home: intOrZero(s.HomeScore), Away: intOrZero(s.AwayScore)},
		Quarter:       s.Quarter,
		TimeRemaining: s.TimeRemaining,
		Possession:    s.Possession,
		HasStarted:    s.HasStarted,
		IsInProgress:  s.IsInProgress,
		IsOver:        s.IsOver,
		LastPlay:      strings.TrimSpace(s.LastPlay),
		Date:          parseTimestamp(s.Date, loc),
		Channel:       s.Channel,
		Weather: games.Weather{
			TempLow:   s.ForecastTempLow,
			TempHigh:  s.ForecastTempHigh,
			WindSpeed: s.ForecastWindSpeed,
			Forecast:  s.ForecastDescription,
		},
		PointSpread: s.PointSpread,
		OverUnder:   s.OverUnder,
	}
	if s.StadiumDetails != nil {
		g.Stadium = games.Stadium{Name: s.StadiumDetails.Name, City: s.StadiumDetails.City, State: s.StadiumDetails.State}
	}
	if err := g.Validate(); err != nil {
		return games.Game{}, &providers.DataShapeError{Entity: "game", Err: err}
	}
	return g, nil
}

func mapGames(list []scoreResponse, loc *time.Location) ([]games.Game, error) {
	out := make([]games.Game, 0, len(list))
	for _, s := range list {
		g, err := mapGame(s, loc)
		if err != nil {
			return nil, err
		}
		out = append(out, g)
	}
	return out, nil
}

func mapPlay(p playResponse, loc *time.Location) (games.Play, error) {
	play := games.Play{
		PlayID:            p.PlayID,
		Sequence:          p.Sequence,
		Quarter:           p.QuarterName,
		Down:              p.Down,
		Distance:          p.Distance,
		YardLine:          p.YardLine,
		YardLineTerritory: p.YardLineTerritory,
		Team:              p.Team,
		Opponent:          p.Opponent,
		Description:       strings.TrimSpace(p.Description),
		TimeRemaining:     formatClock(p.TimeRemainingMinutes, p.TimeRemainingSeconds),
		Type:              p.Type,
		IsScoringPlay:     p.IsScoringPlay,
		Updated:           parseTimestamp(p.Updated, loc),
	}
	if err := play.Validate(); err != nil {
		return games.Play{}, &providers.DataShapeError{Entity: "play", Err: err}
	}
	return play, nil
}

func mapPlayByPlay(resp playByPlayResponse, loc *time.Location) (games.PlayByPlay, error) {
	if resp.Score == nil {
		return games.PlayByPlay{}, &providers.DataShapeError{Entity: "play-by-play", Err: fmt.Errorf("score: %w", games.ErrMissingField)}
	}
	game, err := mapGame(*resp.Score, loc)
	if err != nil {
		return games.PlayByPlay{}, err
	}
	plays := make([]games.Play, 0, len(resp.Plays))
	for _, p := range resp.Plays {
		play, err := mapPlay(p, loc)
		if err != nil {
			return games.PlayByPlay{}, err
		}
		plays = append(plays, play)
	}
	return games.PlayByPlay{Game: game, Plays: plays}, nil
}

func mapPlayer(p playerResponse) players.Player {
	return players.Player{
		PlayerID: p.PlayerID,
		Name:     strings.TrimSpace(p.Name),
		Position: p.Position,
		Team:     p.Team,
		Status:   p.Status,
		Number:   p.Number,
	}
}

// statLines indexes loose stat rows by PlayerID, keeping only the requested ids.
func statLines(rows []map[string]any, playerIDs []int) map[int]players.StatLine {
	wanted := make(map[int]struct{}, len(playerIDs))
	for _, id := range playerIDs {
		wanted[id] = struct{}{}
	}
	out := make(map[int]players.StatLine, len(playerIDs))
	for _, row := range rows {
		id, ok := playerID(row)
		if !ok {
			continue
		}
		if _, ok := wanted[id]; !ok {
			continue
		}
		out[id] = players.StatLine(row)
	}
	return out
}

func playerID(row map[string]any) (int, bool) {
	switch v := row["PlayerID"].(type) {
	case float64:
		return int(v), v != 0
	case int:
		return v, v != 0
	default:
		return 0, false
	}
}

func mapProps(list []playerPropResponse, playerIDs []int) []betting.PlayerProp {
	wanted := make(map[int]struct{}, len(playerIDs))
	for _, id := range playerIDs {
		wanted[id] = struct{}{}
	}
	out := make([]betting.PlayerProp, 0)
	for _, p := range list {
		if _, ok := wanted[p.PlayerID]; !ok {
			continue
		}
		out = append(out, betting.PlayerProp{
			PlayerID:    p.PlayerID,
			Name:        p.Name,
			Team:        p.Team,
			Description: p.Description,
			OverUnder:   p.OverUnder,
			OverPayout:  p.OverPayout,
			UnderPayout: p.UnderPayout,
			Sportsbook:  p.Sportsbook,
		})
	}
	return out
}

// latestOdds keeps the newest line per sportsbook, preferring live lines over pregame ones.
func latestOdds(list []gameOddsResponse, loc *time.Location) []betting.GameOdds {
	latest := make(map[string]betting.GameOdds)
	order := make([]string, 0)
	for _, game := range list {
		lines := game.LiveOdds
		if len(lines) == 0 {
			lines = game.PregameOdds
		}
		for _, o := range lines {
			odds := betting.GameOdds{
				Sportsbook:      o.Sportsbook,
				HomeMoneyLine:   o.HomeMoneyLine,
				AwayMoneyLine:   o.AwayMoneyLine,
				HomePointSpread: o.HomePointSpread,
				OverUnder:       o.OverUnder,
				Created:         parseTimestamp(o.Created, loc),
			}
			prev, seen := latest[o.Sportsbook]
			if !seen {
				order = append(order, o.Sportsbook)
			}
			if !seen || odds.Created.After(prev.Created) {
				latest[o.Sportsbook] = odds
			}
		}
	}
	out := make([]betting.GameOdds, 0, len(order))
	for _, book := range order {
		out = append(out, latest[book])
	}
	return out
}

func parseTimestamp(raw string, loc *time.Location) time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}
	}
	if t, err := time.ParseInLocation(timestampLayout, raw, loc); err == nil {
		return t
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t
	}
	return time.Time{}
}

func formatClock(minutes, seconds *int) string {
	if minutes == nil || seconds == nil {
		return ""
	}
	return fmt.Sprintf("%02d:%02d", *minutes, *seconds)
}

func intOrZero(v *int) int {
	if v == nil {
		return 0
	}
	return *v
}
