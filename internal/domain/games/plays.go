package games

import (
	"fmt"
	"time"
)

// Play is one sequence-numbered event within a game.
// Sequence is nil when the provider has not assigned an ordering yet.
type Play struct {
	PlayID            int       `json:"playId"`
	Sequence          *int      `json:"sequence"`
	Quarter           string    `json:"quarter"`
	Down              int       `json:"down"`
	Distance          int       `json:"distance"`
	YardLine          int       `json:"yardLine"`
	YardLineTerritory string    `json:"yardLineTerritory"`
	Team              string    `json:"team"`
	Opponent          string    `json:"opponent"`
	Description       string    `json:"description"`
	TimeRemaining     string    `json:"timeRemaining"`
	Type              string    `json:"type"`
	IsScoringPlay     bool      `json:"isScoringPlay"`
	Updated           time.Time `json:"updated"`
}

// HasSequence reports whether the play can be ordered.
func (p Play) HasSequence() bool {
	return p.Sequence != nil
}

// SequenceValue returns the sequence or zero when absent.
func (p Play) SequenceValue() int {
	if p.Sequence == nil {
		return 0
	}
	return *p.Sequence
}

// Situation renders down, distance and field position, e.g. "3rd & 7 at BUF 35".
func (p Play) Situation() string {
	if p.Down <= 0 {
		return ""
	}
	spot := fmt.Sprintf("%d", p.YardLine)
	if p.YardLineTerritory != "" {
		spot = p.YardLineTerritory + " " + spot
	}
	return fmt.Sprintf("%s & %d at %s", ordinal(p.Down), p.Distance, spot)
}

// Validate reports the first missing required field.
func (p Play) Validate() error {
	if p.PlayID == 0 {
		return fmt.Errorf("play: playId: %w", ErrMissingField)
	}
	return nil
}

// PlayByPlay is the game snapshot returned alongside its full play list.
type PlayByPlay struct {
	Game  Game   `json:"game"`
	Plays []Play `json:"plays"`
}

// Seq is a convenience for building plays with a sequence number.
func Seq(n int) *int {
	return &n
}

func ordinal(n int) string {
	switch n {
	case 1:
		return "1st"
	case 2:
		return "2nd"
	case 3:
		return "3rd"
	default:
		return fmt.Sprintf("%dth", n)
	}
}
