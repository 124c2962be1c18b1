package store

import (
	"sort"
	"sync"

	"github.com/preston-bernstein/nfl-broadcast-service/internal/domain/games"
)

// GameStore keeps a thread-safe copy of one day's slate of games in memory.
type GameStore struct {
	mu    sync.RWMutex
	date  string
	games map[int]games.Game
}

// NewGameStore constructs an empty GameStore.
func NewGameStore() *GameStore {
	return &GameStore{
		games: make(map[int]games.Game),
	}
}

// Slate returns the stored date and a copy of its games ordered by kickoff.
func (s *GameStore) Slate() (string, []games.Game) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]games.Game, 0, len(s.games))
	for _, g := range s.games {
		result = append(result, g)
	}
	sort.Slice(result, func(i, j int) bool {
		if !result[i].Date.Equal(result[j].Date) {
			return result[i].Date.Before(result[j].Date)
		}
		return result[i].ScoreID < result[j].ScoreID
	})
	return s.date, result
}

// GetGame retrieves a stored game by score ID.
func (s *GameStore) GetGame(scoreID int) (games.Game, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	g, ok := s.games[scoreID]
	return g, ok
}

// SetSlate replaces the stored slate with date's games.
func (s *GameStore) SetSlate(date string, list []games.Game) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.date = date
	s.games = make(map[int]games.Game, len(list))
	for _, g := range list {
		s.games[g.ScoreID] = g
	}
}
