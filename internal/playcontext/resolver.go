package playcontext

import (
	"strings"

	"github.com/preston-bernstein/nfl-broadcast-service/internal/domain/games"
	"github.com/preston-bernstein/nfl-broadcast-service/internal/domain/players"
)

// Resolve returns the roster ids whose bare name appears verbatim in the play description.
// Matching is case-sensitive substring search, so shared names can produce false positives.
func Resolve(play games.Play, roster players.Roster) IDSet {
	involved := make(IDSet)
	if play.Description == "" {
		return involved
	}
	for display, id := range roster {
		name := players.BareName(display)
		if name == "" {
			continue
		}
		if strings.Contains(play.Description, name) {
			involved[id] = struct{}{}
		}
	}
	return involved
}
