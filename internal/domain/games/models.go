package games

import (
	"errors"
	"fmt"
	"time"
)

// Phase is the coarse lifecycle state used to pick summary instructions.
type Phase string

const (
	PhaseNotStarted Phase = "NOT_STARTED"
	PhaseInProgress Phase = "IN_PROGRESS"
	PhaseFinal      Phase = "FINAL"
)

// ErrMissingField marks a provider record that lacks a required field.
var ErrMissingField = errors.New("missing required field")

// Score captures home and away points.
type Score struct {
	Home int `json:"home"`
	Away int `json:"away"`
}

// Stadium is the venue metadata shown in pregame summaries.
type Stadium struct {
	Name  string `json:"name"`
	City  string `json:"city"`
	State string `json:"state"`
}

// Weather is the forecast published ahead of kickoff. Fields are nil when the provider omits them.
type Weather struct {
	TempLow   *int   `json:"tempLow,omitempty"`
	TempHigh  *int   `json:"tempHigh,omitempty"`
	Humidity  *int   `json:"humidity,omitempty"`
	WindSpeed *int   `json:"windSpeed,omitempty"`
	Forecast  string `json:"forecast,omitempty"`
}

// Game is the canonical game shape used by the broadcast pipeline.
type Game struct {
	ScoreID       int       `json:"scoreId"`
	GameKey       string    `json:"gameKey"`
	Season        int       `json:"season"`
	Week          int       `json:"week"`
	HomeTeam      string    `json:"homeTeam"`
	AwayTeam      string    `json:"awayTeam"`
	Score         Score     `json:"score"`
	Quarter       string    `json:"quarter"`
	TimeRemaining string    `json:"timeRemaining"`
	Possession    string    `json:"possession"`
	HasStarted    bool      `json:"hasStarted"`
	IsInProgress  bool      `json:"isInProgress"`
	IsOver        bool      `json:"isOver"`
	LastPlay      string    `json:"lastPlay,omitempty"`
	Date          time.Time `json:"date"`
	Channel       string    `json:"channel,omitempty"`
	Stadium       Stadium   `json:"stadium"`
	Weather       Weather   `json:"weather"`
	PointSpread   *float64  `json:"pointSpread,omitempty"`
	OverUnder     *float64  `json:"overUnder,omitempty"`
}

// Phase classifies the game from its started / in-progress flags.
func (g Game) Phase() Phase {
	switch {
	case !g.HasStarted:
		return PhaseNotStarted
	case g.IsInProgress:
		return PhaseInProgress
	default:
		return PhaseFinal
	}
}

// Matchup renders "AWAY @ HOME".
func (g Game) Matchup() string {
	return fmt.Sprintf("%s @ %s", g.AwayTeam, g.HomeTeam)
}

// Validate reports the first missing required field.
func (g Game) Validate() error {
	switch {
	case g.ScoreID == 0:
		return fmt.Errorf("game: scoreId: %w", ErrMissingField)
	case g.HomeTeam == "":
		return fmt.Errorf("game %d: homeTeam: %w", g.ScoreID, ErrMissingField)
	case g.AwayTeam == "":
		return fmt.Errorf("game %d: awayTeam: %w", g.ScoreID, ErrMissingField)
	}
	return nil
}
