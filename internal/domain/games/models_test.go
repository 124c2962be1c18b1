package games

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGamePhase(t *testing.T) {
	cases := []struct {
		name string
		game Game
		want Phase
	}{
		{"not_started", Game{}, PhaseNotStarted},
		{"in_progress", Game{HasStarted: true, IsInProgress: true}, PhaseInProgress},
		{"final", Game{HasStarted: true, IsOver: true}, PhaseFinal},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.game.Phase())
		})
	}
}

func TestGameValidate(t *testing.T) {
	require.NoError(t, Game{ScoreID: 1, HomeTeam: "BUF", AwayTeam: "KC"}.Validate())

	err := Game{HomeTeam: "BUF", AwayTeam: "KC"}.Validate()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMissingField))

	err = Game{ScoreID: 1, AwayTeam: "KC"}.Validate()
	assert.ErrorIs(t, err, ErrMissingField)
	assert.Contains(t, err.Error(), "homeTeam")
}

func TestGameMatchup(t *testing.T) {
	assert.Equal(t, "KC @ BUF", Game{HomeTeam: "BUF", AwayTeam: "KC"}.Matchup())
}

func TestPlaySituation(t *testing.T) {
	p := Play{Down: 3, Distance: 7, YardLine: 35, YardLineTerritory: "BUF"}
	assert.Equal(t, "3rd & 7 at BUF 35", p.Situation())
	assert.Equal(t, "1st & 10 at 25", Play{Down: 1, Distance: 10, YardLine: 25}.Situation())
	assert.Empty(t, Play{}.Situation())
}

func TestPlaySequenceHelpers(t *testing.T) {
	assert.False(t, Play{}.HasSequence())
	assert.Equal(t, 0, Play{}.SequenceValue())

	p := Play{Sequence: Seq(9)}
	assert.True(t, p.HasSequence())
	assert.Equal(t, 9, p.SequenceValue())
}

func TestPlayValidate(t *testing.T) {
	assert.ErrorIs(t, Play{}.Validate(), ErrMissingField)
	assert.NoError(t, Play{PlayID: 3}.Validate())
}
