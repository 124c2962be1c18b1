package testutil

import (
	"time"

	domaingames "github.com/preston-bernstein/nfl-broadcast-service/internal/domain/games"
	"github.com/preston-bernstein/nfl-broadcast-service/internal/domain/players"
)

// SampleGame returns an in-progress ARI at BUF game with the provided score id.
func SampleGame(scoreID int) domaingames.Game {
	return domaingames.Game{
		ScoreID:       scoreID,
		GameKey:       "202410101",
		Season:        2024,
		Week:          1,
		HomeTeam:      "BUF",
		AwayTeam:      "ARI",
		Score:         domaingames.Score{Home: 7, Away: 10},
		Quarter:       "2",
		TimeRemaining: "08:12",
		Possession:    "BUF",
		HasStarted:    true,
		IsInProgress:  true,
		Date:          time.Date(2024, 9, 8, 13, 0, 0, 0, time.UTC),
		Channel:       "CBS",
		Stadium:       domaingames.Stadium{Name: "Highmark Stadium", City: "Orchard Park", State: "NY"},
	}
}

// SamplePlay returns a BUF play with the given sequence and description.
func SamplePlay(sequence int, description string) domaingames.Play {
	return domaingames.Play{
		PlayID:        sequence * 10,
		Sequence:      domaingames.Seq(sequence),
		Quarter:       "2",
		Down:          1,
		Distance:      10,
		YardLine:      25,
		Team:          "BUF",
		Opponent:      "ARI",
		Description:   description,
		TimeRemaining: "08:12",
		Type:          "Pass",
	}
}

// SampleRoster returns a two-player roster per team, keyed by team code.
func SampleRoster() map[string][]players.Player {
	return map[string][]players.Player{
		"BUF": {
			{PlayerID: 19801, Name: "Josh Allen", Position: "QB", Team: "BUF"},
			{PlayerID: 21203, Name: "James Cook", Position: "RB", Team: "BUF"},
		},
		"ARI": {
			{PlayerID: 22564, Name: "Kyler Murray", Position: "QB", Team: "ARI"},
			{PlayerID: 25001, Name: "Marvin Harrison Jr.", Position: "WR", Team: "ARI"},
		},
	}
}
