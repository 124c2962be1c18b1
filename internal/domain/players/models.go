package players

import (
	"fmt"
	"strings"
)

// Player represents a roster entry. Read-only for the broadcast pipeline.
type Player struct {
	PlayerID int    `json:"playerId"`
	Name     string `json:"name"`
	Position string `json:"position"`
	Team     string `json:"team"`
	Status   string `json:"status,omitempty"`
	Number   int    `json:"number,omitempty"`
}

// DisplayName is the selector label, e.g. "Josh Allen (QB, BUF)".
func (p Player) DisplayName() string {
	if p.Position == "" && p.Team == "" {
		return p.Name
	}
	return fmt.Sprintf("%s (%s, %s)", p.Name, p.Position, p.Team)
}

// StatLine holds one provider stat row (box score or season totals).
type StatLine map[string]any

// Roster maps display names to player ids.
type Roster map[string]int

// NewRoster builds a Roster keyed by DisplayName.
func NewRoster(list []Player) Roster {
	roster := make(Roster, len(list))
	for _, p := range list {
		if p.PlayerID == 0 || strings.TrimSpace(p.Name) == "" {
			continue
		}
		roster[p.DisplayName()] = p.PlayerID
	}
	return roster
}

// BareName strips a trailing parenthetical suffix such as " (QB, BUF)".
func BareName(display string) string {
	name := strings.TrimSpace(display)
	if strings.HasSuffix(name, ")") {
		if idx := strings.LastIndex(name, " ("); idx >= 0 {
			name = name[:idx]
		}
	}
	return strings.TrimSpace(name)
}
