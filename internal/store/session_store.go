package store

import (
	"sort"
	"sync"

	"github.com/preston-bernstein/nfl-broadcast-service/internal/broadcast"
)

// SessionStore keeps broadcast sessions in memory, keyed by session ID.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]*broadcast.Session
}

// NewSessionStore constructs an empty SessionStore.
func NewSessionStore() *SessionStore {
	return &SessionStore{
		sessions: make(map[string]*broadcast.Session),
	}
}

// Put stores s under its ID, replacing any previous session with that ID.
func (s *SessionStore) Put(session *broadcast.Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[session.ID()] = session
}

// Get retrieves a session by ID.
func (s *SessionStore) Get(id string) (*broadcast.Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.sessions[id]
	return session, ok
}

// Delete removes and returns the session with id.
func (s *SessionStore) Delete(id string) (*broadcast.Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, ok := s.sessions[id]
	if ok {
		delete(s.sessions, id)
	}
	return session, ok
}

// List returns the stored sessions ordered by ID.
func (s *SessionStore) List() []*broadcast.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*broadcast.Session, 0, len(s.sessions))
	for _, session := range s.sessions {
		result = append(result, session)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].ID() < result[j].ID()
	})
	return result
}

// Len reports how many sessions are stored.
func (s *SessionStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
