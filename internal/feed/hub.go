package feed

import (
	"context"
	"log/slog"
	"sync"

	"github.com/preston-bernstein/nfl-broadcast-service/internal/broadcast"
	"github.com/preston-bernstein/nfl-broadcast-service/internal/logging"
)

const defaultBuffer = 64

// Hub fans session messages out to live subscribers, usually WebSocket clients.
// A subscriber that falls a full buffer behind is dropped rather than stalling the broadcast.
type Hub struct {
	buffer int
	logger *slog.Logger

	mu   sync.RWMutex
	subs map[string]map[*Subscription]struct{}
}

// Subscription receives one session's messages on C until closed.
type Subscription struct {
	C <-chan broadcast.Message

	ch        chan broadcast.Message
	hub       *Hub
	sessionID string
	once      sync.Once
}

// NewHub builds a hub with the given per-subscriber buffer; zero picks a default.
func NewHub(buffer int, logger *slog.Logger) *Hub {
	if buffer <= 0 {
		buffer = defaultBuffer
	}
	return &Hub{
		buffer: buffer,
		logger: logger,
		subs:   make(map[string]map[*Subscription]struct{}),
	}
}

// Subscribe registers a subscriber for sessionID.
func (h *Hub) Subscribe(sessionID string) *Subscription {
	ch := make(chan broadcast.Message, h.buffer)
	sub := &Subscription{C: ch, ch: ch, hub: h, sessionID: sessionID}

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.subs[sessionID] == nil {
		h.subs[sessionID] = make(map[*Subscription]struct{})
	}
	h.subs[sessionID][sub] = struct{}{}
	return sub
}

// Close unregisters the subscription and closes C. Safe to call more than once.
func (s *Subscription) Close() {
	s.hub.remove(s)
}

// Publish implements broadcast.Sink.
func (h *Hub) Publish(ctx context.Context, sessionID string, msg broadcast.Message) {
	h.mu.RLock()
	var slow []*Subscription
	for sub := range h.subs[sessionID] {
		select {
		case sub.ch <- msg:
		default:
			slow = append(slow, sub)
		}
	}
	h.mu.RUnlock()

	for _, sub := range slow {
		logging.Warn(logging.FromContext(ctx, h.logger), "dropping slow stream subscriber",
			logging.FieldSessionID, sessionID,
		)
		h.remove(sub)
	}
}

// Count reports the live subscribers for sessionID.
func (h *Hub) Count(sessionID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs[sessionID])
}

// CloseSession drops every subscriber of sessionID.
func (h *Hub) CloseSession(sessionID string) {
	h.mu.RLock()
	subs := make([]*Subscription, 0, len(h.subs[sessionID]))
	for sub := range h.subs[sessionID] {
		subs = append(subs, sub)
	}
	h.mu.RUnlock()

	for _, sub := range subs {
		h.remove(sub)
	}
}

// CloseAll drops every subscriber of every session.
func (h *Hub) CloseAll() {
	h.mu.RLock()
	ids := make([]string, 0, len(h.subs))
	for id := range h.subs {
		ids = append(ids, id)
	}
	h.mu.RUnlock()

	for _, id := range ids {
		h.CloseSession(id)
	}
}

func (h *Hub) remove(sub *Subscription) {
	sub.once.Do(func() {
		h.mu.Lock()
		if set, ok := h.subs[sub.sessionID]; ok {
			delete(set, sub)
			if len(set) == 0 {
				delete(h.subs, sub.sessionID)
			}
		}
		h.mu.Unlock()
		close(sub.ch)
	})
}
