package broadcast

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/preston-bernstein/nfl-broadcast-service/internal/domain/games"
)

func TestFormatUpdate(t *testing.T) {
	at := time.Date(2024, 9, 8, 14, 5, 9, 0, time.UTC)

	cases := []struct {
		name string
		play games.Play
		want string
	}{
		{"numbered quarter", games.Play{Quarter: "3", TimeRemaining: "08:12"}, "[14:05:09] Q3 08:12 — Touchdown!"},
		{"overtime", games.Play{Quarter: "ot", TimeRemaining: "09:40"}, "[14:05:09] OT 09:40 — Touchdown!"},
		{"no clock", games.Play{}, "[14:05:09] — Touchdown!"},
		{"quarter only", games.Play{Quarter: "4"}, "[14:05:09] Q4 — Touchdown!"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, FormatUpdate(at, tc.play, "Touchdown!"))
		})
	}
}
