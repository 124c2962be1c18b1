package playcontext

import (
	"sort"

	"github.com/preston-bernstein/nfl-broadcast-service/internal/domain/betting"
	"github.com/preston-bernstein/nfl-broadcast-service/internal/domain/games"
	"github.com/preston-bernstein/nfl-broadcast-service/internal/domain/players"
)

// ImageResults is the outcome of a user-supplied image analysis.
type ImageResults struct {
	Players     map[string]int `json:"players"`
	Label       string         `json:"label,omitempty"`
	Description string         `json:"description,omitempty"`
}

// Preferences are the user's narration settings.
type Preferences struct {
	PriorityPlayers map[string]int `json:"priorityPlayers"`
	Tone            string         `json:"tone"`
	Temperature     float64        `json:"temperature"`
	Image           *ImageResults  `json:"image,omitempty"`
}

// Clone returns a deep copy so callers can hand preferences across goroutines.
func (p Preferences) Clone() Preferences {
	out := p
	out.PriorityPlayers = cloneNames(p.PriorityPlayers)
	if p.Image != nil {
		img := *p.Image
		img.Players = cloneNames(p.Image.Players)
		out.Image = &img
	}
	return out
}

// PreferencesPatch changes some preferences. Nil fields keep their current value and an
// empty, non-nil PriorityPlayers clears them.
type PreferencesPatch struct {
	PriorityPlayers map[string]int
	Tone            *string
	Temperature     *float64
	Image           *ImageResults
}

// Apply returns a copy of p with the patch merged in.
func (patch PreferencesPatch) Apply(p Preferences) Preferences {
	out := p.Clone()
	if patch.PriorityPlayers != nil {
		out.PriorityPlayers = cloneNames(patch.PriorityPlayers)
	}
	if patch.Tone != nil {
		out.Tone = *patch.Tone
	}
	if patch.Temperature != nil {
		out.Temperature = *patch.Temperature
	}
	if patch.Image != nil {
		out.Image = Preferences{Image: patch.Image}.Clone().Image
	}
	return out
}

// PlayContext is everything the narrator is told about one play.
type PlayContext struct {
	Game            games.Game               `json:"game"`
	Play            games.Play               `json:"play"`
	BoxScores       map[int]players.StatLine `json:"boxScores"`
	SeasonStats     map[int]players.StatLine `json:"seasonStats"`
	Odds            []betting.GameOdds       `json:"odds"`
	Props           []betting.PlayerProp     `json:"props"`
	Preferences     Preferences              `json:"preferences"`
	Image           *ImageResults            `json:"image"`
	InvolvedPlayers []int                    `json:"involvedPlayers"`
}

// IDSet is a set of player ids.
type IDSet map[int]struct{}

// NewIDSet builds a set from ids.
func NewIDSet(ids ...int) IDSet {
	set := make(IDSet, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}

// Has reports membership.
func (s IDSet) Has(id int) bool {
	_, ok := s[id]
	return ok
}

// Sorted returns the ids in ascending order.
func (s IDSet) Sorted() []int {
	out := make([]int, 0, len(s))
	for id := range s {
		out = append(out, id)
	}
	sort.Ints(out)
	return out
}

func cloneNames(src map[string]int) map[string]int {
	if src == nil {
		return nil
	}
	out := make(map[string]int, len(src))
	for k, v := range src {
		out[k] = v
	}
	return out
}
