package sportsdataio

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/preston-bernstein/nfl-broadcast-service/internal/providers"
)

const scoreJSON = `{
	"ScoreID": 18001, "GameKey": "202410120", "Season": 2024, "Week": 1,
	"Date": "2024-09-08T16:25:00", "HomeTeam": "BUF", "AwayTeam": "ARI",
	"HomeScore": 17, "AwayScore": 14, "Quarter": "3", "TimeRemaining": "08:12",
	"Possession": "BUF", "HasStarted": true, "IsInProgress": true, "IsOver": false,
	"Channel": "CBS", "PointSpread": -6.5, "OverUnder": 47.5,
	"StadiumDetails": {"Name": "Highmark Stadium", "City": "Orchard Park", "State": "NY"}
}`

func newTestServer(t *testing.T, routes map[string]string) (*httptest.Server, *[]*http.Request) {
	t.Helper()
	var seen []*http.Request
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = append(seen, r)
		body, ok := routes[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv, &seen
}

func TestFetchPlayByPlaySendsKeyAndMapsPlays(t *testing.T) {
	srv, seen := newTestServer(t, map[string]string{
		"/pbp/json/PlayByPlay/18001": `{"Score": ` + scoreJSON + `, "Plays": [
			{"PlayID": 1, "Sequence": 3, "QuarterName": "3", "TimeRemainingMinutes": 8, "TimeRemainingSeconds": 12,
			 "Down": 3, "Distance": 7, "YardLine": 35, "YardLineTerritory": "BUF", "Team": "BUF", "Opponent": "ARI",
			 "Description": " Josh Allen pass deep right to Stefon Diggs for 42 yards ", "Type": "PassCompleted"},
			{"PlayID": 2, "Sequence": null, "Description": "Timeout"}
		]}`,
	})
	client := NewClient(Config{BaseURL: srv.URL + "/", APIKey: "secret"})

	pbp, err := client.FetchPlayByPlay(context.Background(), 18001)
	require.NoError(t, err)

	require.Len(t, *seen, 1)
	assert.Equal(t, "secret", (*seen)[0].Header.Get(apiKeyHeader))
	assert.Equal(t, 18001, pbp.Game.ScoreID)
	assert.Equal(t, 17, pbp.Game.Score.Home)
	assert.Equal(t, "Highmark Stadium", pbp.Game.Stadium.Name)
	require.Len(t, pbp.Plays, 2)
	assert.Equal(t, 3, pbp.Plays[0].SequenceValue())
	assert.Equal(t, "08:12", pbp.Plays[0].TimeRemaining)
	assert.Equal(t, "Josh Allen pass deep right to Stefon Diggs for 42 yards", pbp.Plays[0].Description)
	assert.Equal(t, "3rd & 7 at BUF 35", pbp.Plays[0].Situation())
	assert.False(t, pbp.Plays[1].HasSequence())
}

func TestFetchPlayByPlayRejectsMalformedPlays(t *testing.T) {
	srv, _ := newTestServer(t, map[string]string{
		"/pbp/json/PlayByPlay/18001": `{"Score": ` + scoreJSON + `, "Plays": [{"PlayID": 0, "Sequence": 1}]}`,
	})
	client := NewClient(Config{BaseURL: srv.URL})

	_, err := client.FetchPlayByPlay(context.Background(), 18001)
	require.Error(t, err)
	assert.True(t, providers.IsDataShape(err))
}

func TestFetchScheduleSkipsByeWeeks(t *testing.T) {
	srv, _ := newTestServer(t, map[string]string{
		"/scores/json/Schedules/2024REG": `[` + scoreJSON + `, {"ScoreID": 0, "HomeTeam": "BYE", "AwayTeam": "KC"}]`,
	})
	client := NewClient(Config{BaseURL: srv.URL})

	list, err := client.FetchSchedule(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "ARI @ BUF", list[0].Matchup())
	assert.Equal(t, 16, list[0].Date.Hour())
}

func TestFetchGamesByDateFormatsRequestDate(t *testing.T) {
	srv, seen := newTestServer(t, map[string]string{
		"/scores/json/ScoresByDate/2024-SEP-08": `[` + scoreJSON + `]`,
	})
	client := NewClient(Config{BaseURL: srv.URL})

	list, err := client.FetchGamesByDate(context.Background(), "2024-09-08")
	require.NoError(t, err)
	assert.Len(t, list, 1)
	assert.Equal(t, "/scores/json/ScoresByDate/2024-SEP-08", (*seen)[0].URL.Path)
}

func TestFetchBoxScoresFiltersRequestedPlayers(t *testing.T) {
	srv, _ := newTestServer(t, map[string]string{
		"/stats/json/BoxScoreByScoreIDV3/18001": `{"Score": ` + scoreJSON + `, "PlayerGames": [
			{"PlayerID": 7, "Name": "Josh Allen", "PassingYards": 212},
			{"PlayerID": 8, "Name": "Stefon Diggs", "ReceivingYards": 88},
			{"Name": "no id"}
		]}`,
	})
	client := NewClient(Config{BaseURL: srv.URL})

	stats, err := client.FetchBoxScores(context.Background(), 18001, []int{7})
	require.NoError(t, err)
	require.Len(t, stats, 1)
	assert.Equal(t, 212.0, stats[7]["PassingYards"])

	game, err := client.FetchGame(context.Background(), 18001)
	require.NoError(t, err)
	assert.True(t, game.IsInProgress)
}

func TestFetchRosterAndProps(t *testing.T) {
	srv, _ := newTestServer(t, map[string]string{
		"/scores/json/Players/BUF": `[{"PlayerID": 7, "Name": "Josh Allen", "Position": "QB", "Team": "BUF", "Number": 17}]`,
		"/odds/json/BettingPlayerPropsByScoreID/18001": `[
			{"PlayerID": 7, "Name": "Josh Allen", "Description": "Passing Yards", "OverUnder": 265.5, "OverPayout": -115},
			{"PlayerID": 99, "Name": "Someone Else", "Description": "Rushing Yards"}
		]`,
	})
	client := NewClient(Config{BaseURL: srv.URL})

	roster, err := client.FetchRoster(context.Background(), "buf")
	require.NoError(t, err)
	require.Len(t, roster, 1)
	assert.Equal(t, "Josh Allen (QB, BUF)", roster[0].DisplayName())

	props, err := client.FetchPlayerProps(context.Background(), 18001, []int{7})
	require.NoError(t, err)
	require.Len(t, props, 1)
	assert.Equal(t, "Passing Yards", props[0].Description)
}

func TestFetchLatestOddsPicksNewestPerBook(t *testing.T) {
	srv, _ := newTestServer(t, map[string]string{
		"/odds/json/LiveGameOddsByScoreID/18001": `[{"ScoreId": 18001, "LiveOdds": [
			{"Sportsbook": "DraftKings", "HomePointSpread": -6.5, "Created": "2024-09-08T17:00:00"},
			{"Sportsbook": "DraftKings", "HomePointSpread": -3.5, "Created": "2024-09-08T18:00:00"},
			{"Sportsbook": "FanDuel", "HomePointSpread": -4.0, "Created": "2024-09-08T17:30:00"}
		]}]`,
	})
	client := NewClient(Config{BaseURL: srv.URL})

	odds, err := client.FetchLatestOdds(context.Background(), 18001)
	require.NoError(t, err)
	require.Len(t, odds, 2)
	assert.Equal(t, "DraftKings", odds[0].Sportsbook)
	assert.Equal(t, -3.5, *odds[0].HomePointSpread)
	assert.Equal(t, "FanDuel", odds[1].Sportsbook)
}

func TestFetchCurrentTimeUsesReplayMetadata(t *testing.T) {
	srv, _ := newTestServer(t, map[string]string{
		"/api/metadata": `{"CurrentTime": "2024-09-08T17:45:00"}`,
	})
	client := NewClient(Config{BaseURL: srv.URL, ReplayURL: srv.URL})

	now, err := client.FetchCurrentTime(context.Background())
	require.NoError(t, err)
	require.NotNil(t, now)
	assert.Equal(t, 17, now.Hour())
	assert.Equal(t, 45, now.Minute())
}

func TestFetchCurrentTimeWithoutReplayUsesClock(t *testing.T) {
	client := NewClient(Config{})
	fixed := time.Date(2024, 9, 8, 20, 0, 0, 0, time.UTC)
	client.now = func() time.Time { return fixed }

	now, err := client.FetchCurrentTime(context.Background())
	require.NoError(t, err)
	require.NotNil(t, now)
	assert.True(t, now.Equal(fixed))
}

func TestRateLimitResponseReturnsRateLimitError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Retry-After", "2")
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte("slow down"))
	}))
	defer srv.Close()
	client := NewClient(Config{BaseURL: srv.URL})

	_, err := client.FetchLatestOdds(context.Background(), 1)
	rlErr, ok := providers.AsRateLimitError(err)
	require.True(t, ok)
	assert.Equal(t, 2*time.Second, rlErr.RetryAfter)
	assert.Equal(t, "slow down", rlErr.Message)
}

func TestNonOKStatusReturnsError(t *testing.T) {
	srv, _ := newTestServer(t, map[string]string{})
	client := NewClient(Config{BaseURL: srv.URL})

	_, err := client.FetchRoster(context.Background(), "KC")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected status 404")
}

func TestMalformedBodyIsDataShapeError(t *testing.T) {
	srv, _ := newTestServer(t, map[string]string{"/scores/json/Players/KC": `{not json`})
	client := NewClient(Config{BaseURL: srv.URL})

	_, err := client.FetchRoster(context.Background(), "KC")
	assert.True(t, providers.IsDataShape(err))
}

func TestFetchGameNullScoreIsNotFound(t *testing.T) {
	srv, _ := newTestServer(t, map[string]string{"/stats/json/BoxScoreByScoreIDV3/424242": `null`})
	client := NewClient(Config{BaseURL: srv.URL})

	_, err := client.FetchGame(context.Background(), 424242)
	assert.ErrorIs(t, err, providers.ErrNotFound)
}

func TestMissingRouteIsNotFound(t *testing.T) {
	srv, _ := newTestServer(t, map[string]string{})
	client := NewClient(Config{BaseURL: srv.URL})

	_, err := client.FetchGame(context.Background(), 1)
	assert.ErrorIs(t, err, providers.ErrNotFound)
}
