package sportsdataio

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/preston-bernstein/nfl-broadcast-service/internal/domain/games"
	"github.com/preston-bernstein/nfl-broadcast-service/internal/providers"
)

func TestMapGameRequiresTeams(t *testing.T) {
	_, err := mapGame(scoreResponse{ScoreID: 1, HomeTeam: "KC"}, time.UTC)
	require.Error(t, err)
	assert.True(t, providers.IsDataShape(err))
	assert.ErrorIs(t, err, games.ErrMissingField)
}

func TestMapGameDefaultsMissingScores(t *testing.T) {
	g, err := mapGame(scoreResponse{ScoreID: 1, HomeTeam: "KC", AwayTeam: "BAL", LastPlay: "  kneel  "}, time.UTC)
	require.NoError(t, err)
	assert.Equal(t, games.Score{}, g.Score)
	assert.Equal(t, "kneel", g.LastPlay)
	assert.Equal(t, games.Stadium{}, g.Stadium)
	assert.Equal(t, games.PhaseNotStarted, g.Phase())
}

func TestMapPlayByPlayRequiresScore(t *testing.T) {
	_, err := mapPlayByPlay(playByPlayResponse{}, time.UTC)
	assert.True(t, providers.IsDataShape(err))
}

func TestFormatClock(t *testing.T) {
	m, s := 2, 5
	assert.Equal(t, "02:05", formatClock(&m, &s))
	assert.Empty(t, formatClock(nil, &s))
}

func TestParseTimestamp(t *testing.T) {
	ts := parseTimestamp("2024-09-08T13:00:00", time.UTC)
	assert.Equal(t, 13, ts.Hour())

	rfc := parseTimestamp("2024-09-08T13:00:00Z", time.UTC)
	assert.False(t, rfc.IsZero())

	assert.True(t, parseTimestamp("garbage", time.UTC).IsZero())
	assert.True(t, parseTimestamp("", time.UTC).IsZero())
}

func TestStatLinesIgnoresRowsWithoutIDs(t *testing.T) {
	rows := []map[string]any{{"PlayerID": 7.0, "Yards": 10.0}, {"PlayerID": "x"}, {"PlayerID": 8}}
	out := statLines(rows, []int{7, 8, 9})
	assert.Len(t, out, 2)
	assert.Contains(t, out, 7)
	assert.Contains(t, out, 8)
}

func TestLatestOddsFallsBackToPregame(t *testing.T) {
	spread := -2.5
	out := latestOdds([]gameOddsResponse{{PregameOdds: []oddResponse{{Sportsbook: "Caesars", HomePointSpread: &spread}}}}, time.UTC)
	require.Len(t, out, 1)
	assert.Equal(t, "Caesars", out[0].Sportsbook)
}
