package betting

import "time"

// GameOdds is one sportsbook's game-level line at a point in time.
type GameOdds struct {
	Sportsbook      string    `json:"sportsbook"`
	HomeMoneyLine   *int      `json:"homeMoneyLine,omitempty"`
	AwayMoneyLine   *int      `json:"awayMoneyLine,omitempty"`
	HomePointSpread *float64  `json:"homePointSpread,omitempty"`
	OverUnder       *float64  `json:"overUnder,omitempty"`
	Created         time.Time `json:"created"`
}

// PlayerProp is a player-scoped betting market.
type PlayerProp struct {
	PlayerID    int      `json:"playerId"`
	Name        string   `json:"name"`
	Team        string   `json:"team"`
	Description string   `json:"description"`
	OverUnder   *float64 `json:"overUnder,omitempty"`
	OverPayout  *int     `json:"overPayout,omitempty"`
	UnderPayout *int     `json:"underPayout,omitempty"`
	Sportsbook  string   `json:"sportsbook,omitempty"`
}
