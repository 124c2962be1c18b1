package fixture

import (
	"github.com/preston-bernstein/nfl-broadcast-service/internal/domain/betting"
	"github.com/preston-bernstein/nfl-broadcast-service/internal/domain/games"
	"github.com/preston-bernstein/nfl-broadcast-service/internal/domain/players"
)

const (
	joshAllen     = 19801
	jamesCook     = 22947
	khalilShakir  = 23214
	daltonKincaid = 24030
	kylerMurray   = 20889
	jamesConner   = 18983
	marvinHarr    = 25094
	treyMcBride   = 23114
)

var roster = []players.Player{
	{PlayerID: joshAllen, Name: "Josh Allen", Position: "QB", Team: "BUF", Number: 17},
	{PlayerID: jamesCook, Name: "James Cook", Position: "RB", Team: "BUF", Number: 4},
	{PlayerID: khalilShakir, Name: "Khalil Shakir", Position: "WR", Team: "BUF", Number: 10},
	{PlayerID: daltonKincaid, Name: "Dalton Kincaid", Position: "TE", Team: "BUF", Number: 86},
	{PlayerID: kylerMurray, Name: "Kyler Murray", Position: "QB", Team: "ARI", Number: 1},
	{PlayerID: jamesConner, Name: "James Conner", Position: "RB", Team: "ARI", Number: 6},
	{PlayerID: marvinHarr, Name: "Marvin Harrison Jr.", Position: "WR", Team: "ARI", Number: 18},
	{PlayerID: treyMcBride, Name: "Trey McBride", Position: "TE", Team: "ARI", Number: 85},
}

var livePlays = []games.Play{
	{PlayID: 900101, Sequence: games.Seq(1), Quarter: "1", TimeRemaining: "15:00", Team: "ARI", Opponent: "BUF", Type: "Kickoff",
		Description: "Tyler Bass kicks 65 yards from BUF 35 to end zone, Touchback."},
	{PlayID: 900102, Sequence: games.Seq(2), Quarter: "1", TimeRemaining: "14:55", Down: 1, Distance: 10, YardLine: 30, YardLineTerritory: "ARI", Team: "ARI", Opponent: "BUF", Type: "Rush",
		Description: "James Conner up the middle to ARI 36 for 6 yards."},
	{PlayID: 900103, Sequence: games.Seq(3), Quarter: "1", TimeRemaining: "14:20", Down: 2, Distance: 4, YardLine: 36, YardLineTerritory: "ARI", Team: "ARI", Opponent: "BUF", Type: "PassCompleted",
		Description: "Kyler Murray pass short right to Marvin Harrison Jr. to BUF 48 for 16 yards."},
	{PlayID: 900104, Sequence: games.Seq(4), Quarter: "1", TimeRemaining: "13:41", Down: 1, Distance: 10, YardLine: 48, YardLineTerritory: "BUF", Team: "ARI", Opponent: "BUF", Type: "PassCompleted",
		Description: "Kyler Murray pass deep middle to Trey McBride for 48 yards, TOUCHDOWN.", IsScoringPlay: true},
	{PlayID: 900105, Sequence: games.Seq(5), Quarter: "1", TimeRemaining: "13:36", Team: "BUF", Opponent: "ARI", Type: "Kickoff",
		Description: "Chad Ryland kicks 65 yards from ARI 35 to end zone, Touchback."},
	{PlayID: 900106, Sequence: games.Seq(6), Quarter: "1", TimeRemaining: "13:30", Down: 1, Distance: 10, YardLine: 30, YardLineTerritory: "BUF", Team: "BUF", Opponent: "ARI", Type: "Rush",
		Description: "James Cook left end to BUF 41 for 11 yards."},
	{PlayID: 900107, Sequence: games.Seq(7), Quarter: "1", TimeRemaining: "12:52", Down: 1, Distance: 10, YardLine: 41, YardLineTerritory: "BUF", Team: "BUF", Opponent: "ARI", Type: "PassCompleted",
		Description: "Josh Allen pass short left to Khalil Shakir to ARI 45 for 14 yards."},
	{PlayID: 900108, Sequence: games.Seq(8), Quarter: "1", TimeRemaining: "12:10", Down: 3, Distance: 7, YardLine: 38, YardLineTerritory: "ARI", Team: "BUF", Opponent: "ARI", Type: "PassCompleted",
		Description: "Josh Allen pass deep right to Dalton Kincaid for 38 yards, TOUCHDOWN.", IsScoringPlay: true},
	{PlayID: 900109, Sequence: games.Seq(9), Quarter: "1", TimeRemaining: "07:44", Down: 4, Distance: 3, YardLine: 27, YardLineTerritory: "BUF", Team: "ARI", Opponent: "BUF", Type: "FieldGoal",
		Description: "Chad Ryland 45 yard field goal is GOOD.", IsScoringPlay: true},
	{PlayID: 900110, Sequence: games.Seq(10), Quarter: "2", TimeRemaining: "14:31", Down: 2, Distance: 6, YardLine: 47, YardLineTerritory: "BUF", Team: "BUF", Opponent: "ARI", Type: "Rush",
		Description: "Josh Allen scrambles right end to ARI 41 for 12 yards."},
}

var boxScores = map[int]players.StatLine{
	joshAllen:     {"PlayerID": float64(joshAllen), "Name": "Josh Allen", "PassingCompletions": 2.0, "PassingAttempts": 3.0, "PassingYards": 52.0, "PassingTouchdowns": 1.0, "RushingYards": 12.0},
	jamesCook:     {"PlayerID": float64(jamesCook), "Name": "James Cook", "RushingAttempts": 1.0, "RushingYards": 11.0},
	khalilShakir:  {"PlayerID": float64(khalilShakir), "Name": "Khalil Shakir", "Receptions": 1.0, "ReceivingYards": 14.0},
	daltonKincaid: {"PlayerID": float64(daltonKincaid), "Name": "Dalton Kincaid", "Receptions": 1.0, "ReceivingYards": 38.0, "ReceivingTouchdowns": 1.0},
	kylerMurray:   {"PlayerID": float64(kylerMurray), "Name": "Kyler Murray", "PassingCompletions": 2.0, "PassingAttempts": 2.0, "PassingYards": 64.0, "PassingTouchdowns": 1.0},
	jamesConner:   {"PlayerID": float64(jamesConner), "Name": "James Conner", "RushingAttempts": 1.0, "RushingYards": 6.0},
	marvinHarr:    {"PlayerID": float64(marvinHarr), "Name": "Marvin Harrison Jr.", "Receptions": 1.0, "ReceivingYards": 16.0},
	treyMcBride:   {"PlayerID": float64(treyMcBride), "Name": "Trey McBride", "Receptions": 1.0, "ReceivingYards": 48.0, "ReceivingTouchdowns": 1.0},
}

var seasonStats = map[int]players.StatLine{
	joshAllen:     {"PlayerID": float64(joshAllen), "Name": "Josh Allen", "PassingYards": 3731.0, "PassingTouchdowns": 28.0, "RushingTouchdowns": 12.0},
	jamesCook:     {"PlayerID": float64(jamesCook), "Name": "James Cook", "RushingYards": 1009.0, "RushingTouchdowns": 16.0},
	khalilShakir:  {"PlayerID": float64(khalilShakir), "Name": "Khalil Shakir", "Receptions": 76.0, "ReceivingYards": 821.0},
	daltonKincaid: {"PlayerID": float64(daltonKincaid), "Name": "Dalton Kincaid", "Receptions": 44.0, "ReceivingYards": 448.0},
	kylerMurray:   {"PlayerID": float64(kylerMurray), "Name": "Kyler Murray", "PassingYards": 3851.0, "PassingTouchdowns": 21.0},
	jamesConner:   {"PlayerID": float64(jamesConner), "Name": "James Conner", "RushingYards": 1094.0, "RushingTouchdowns": 8.0},
	marvinHarr:    {"PlayerID": float64(marvinHarr), "Name": "Marvin Harrison Jr.", "Receptions": 62.0, "ReceivingYards": 885.0},
	treyMcBride:   {"PlayerID": float64(treyMcBride), "Name": "Trey McBride", "Receptions": 111.0, "ReceivingYards": 1146.0},
}

var props = []betting.PlayerProp{
	{PlayerID: joshAllen, Name: "Josh Allen", Team: "BUF", Description: "Passing Yards", OverUnder: floatPtr(245.5), OverPayout: intPtr(-115), UnderPayout: intPtr(-105), Sportsbook: "DraftKings"},
	{PlayerID: jamesCook, Name: "James Cook", Team: "BUF", Description: "Rushing Yards", OverUnder: floatPtr(62.5), OverPayout: intPtr(-110), UnderPayout: intPtr(-110), Sportsbook: "DraftKings"},
	{PlayerID: kylerMurray, Name: "Kyler Murray", Team: "ARI", Description: "Passing Yards", OverUnder: floatPtr(225.5), OverPayout: intPtr(-112), UnderPayout: intPtr(-108), Sportsbook: "FanDuel"},
	{PlayerID: treyMcBride, Name: "Trey McBride", Team: "ARI", Description: "Receiving Yards", OverUnder: floatPtr(58.5), OverPayout: intPtr(-120), UnderPayout: intPtr(100), Sportsbook: "FanDuel"},
}
