package broadcast

import (
	"sort"

	"github.com/preston-bernstein/nfl-broadcast-service/internal/domain/games"
)

// NewPlays returns the plays sequenced after watermark, ascending.
// A nil watermark means no baseline has been set, so nothing is new.
// Plays without a sequence are never returned. Input is not modified.
func NewPlays(all []games.Play, watermark *int) []games.Play {
	if watermark == nil {
		return []games.Play{}
	}
	mark := *watermark
	out := make([]games.Play, 0, len(all))
	for _, p := range all {
		if p.HasSequence() && *p.Sequence > mark {
			out = append(out, p)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return *out[i].Sequence < *out[j].Sequence
	})
	return out
}

// MaxSequence reports the highest sequence among plays.
func MaxSequence(plays []games.Play) (int, bool) {
	best, found := 0, false
	for _, p := range plays {
		if !p.HasSequence() {
			continue
		}
		if !found || *p.Sequence > best {
			best, found = *p.Sequence, true
		}
	}
	return best, found
}

// LatestPlay returns the first play carrying the highest sequence.
func LatestPlay(plays []games.Play) (games.Play, bool) {
	idx := -1
	for i, p := range plays {
		if !p.HasSequence() {
			continue
		}
		if idx < 0 || *p.Sequence > *plays[idx].Sequence {
			idx = i
		}
	}
	if idx < 0 {
		return games.Play{}, false
	}
	return plays[idx], true
}
