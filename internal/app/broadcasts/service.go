package broadcasts

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/preston-bernstein/nfl-broadcast-service/internal/broadcast"
	domaingames "github.com/preston-bernstein/nfl-broadcast-service/internal/domain/games"
	"github.com/preston-bernstein/nfl-broadcast-service/internal/logging"
	"github.com/preston-bernstein/nfl-broadcast-service/internal/playcontext"
	"github.com/preston-bernstein/nfl-broadcast-service/internal/providers"
	"github.com/preston-bernstein/nfl-broadcast-service/internal/store"
)

var (
	// ErrSessionNotFound is returned for unknown session IDs.
	ErrSessionNotFound = errors.New("session not found")
	// ErrInvalidPreferences is returned when preferences fail validation.
	ErrInvalidPreferences = errors.New("invalid preferences")
	// ErrShuttingDown is returned by Create once Shutdown has begun.
	ErrShuttingDown = errors.New("broadcast service is shutting down")
)

// Provider is what the service needs from the sports-data provider.
type Provider interface {
	broadcast.PlaySource
	FetchGame(ctx context.Context, scoreID int) (domaingames.Game, error)
}

// Service creates and drives per-user broadcast sessions.
type Service struct {
	store     *store.SessionStore
	provider  Provider
	assembler broadcast.ContextAssembler
	narrator  broadcast.Narrator
	opts      broadcast.Options
	logger    *slog.Logger
	newID     func() string

	closeMu sync.RWMutex
	closed  bool
}

// NewService builds a Service. opts is applied to every session it creates.
func NewService(sessions *store.SessionStore, provider Provider, assembler broadcast.ContextAssembler, narrator broadcast.Narrator, opts broadcast.Options) *Service {
	return &Service{
		store:     sessions,
		provider:  provider,
		assembler: assembler,
		narrator:  narrator,
		opts:      opts,
		logger:    opts.Logger,
		newID:     uuid.NewString,
	}
}

// Create registers a new idle session.
func (s *Service) Create(ctx context.Context) (broadcast.Snapshot, error) {
	s.closeMu.RLock()
	defer s.closeMu.RUnlock()
	if s.closed {
		return broadcast.Snapshot{}, ErrShuttingDown
	}

	session := broadcast.NewSession(s.newID(), s.provider, s.assembler, s.narrator, s.opts)
	s.store.Put(session)
	logging.Info(logging.FromContext(ctx, s.logger), "broadcast session created",
		logging.FieldSessionID, session.ID(),
	)
	return session.Snapshot(), nil
}

// Get returns a snapshot of one session.
func (s *Service) Get(id string) (broadcast.Snapshot, error) {
	session, err := s.lookup(id)
	if err != nil {
		return broadcast.Snapshot{}, err
	}
	return session.Snapshot(), nil
}

// Session returns the live session for id.
func (s *Service) Session(id string) (*broadcast.Session, error) {
	return s.lookup(id)
}

// List returns snapshots of every session.
func (s *Service) List() []broadcast.Snapshot {
	sessions := s.store.List()
	out := make([]broadcast.Snapshot, 0, len(sessions))
	for _, session := range sessions {
		out = append(out, session.Snapshot())
	}
	return out
}

// Start fetches the game fresh, scopes the session to it and starts broadcasting.
func (s *Service) Start(ctx context.Context, id string, scoreID int) (broadcast.Snapshot, error) {
	s.closeMu.RLock()
	defer s.closeMu.RUnlock()
	if s.closed {
		return broadcast.Snapshot{}, ErrShuttingDown
	}

	session, err := s.lookup(id)
	if err != nil {
		return broadcast.Snapshot{}, err
	}
	game, err := s.provider.FetchGame(ctx, scoreID)
	if err != nil {
		logging.Warn(logging.FromContext(ctx, s.logger), "broadcast start game lookup failed",
			logging.FieldSessionID, id,
			logging.FieldScoreID, scoreID,
			logging.FieldError, err,
		)
		if errors.Is(err, providers.ErrNotFound) {
			session.ReportError(ctx, "Game not found.")
			return broadcast.Snapshot{}, fmt.Errorf("game %d: %w", scoreID, err)
		}
		session.ReportError(ctx, "Unable to load this game.")
		return broadcast.Snapshot{}, fmt.Errorf("%w: %w", broadcast.ErrPlaysUnavailable, err)
	}
	session.SelectGame(scoreID)
	if err := session.Start(ctx, game); err != nil {
		return session.Snapshot(), err
	}
	return session.Snapshot(), nil
}

// Stop returns a session to idle.
func (s *Service) Stop(id string) (broadcast.Snapshot, error) {
	session, err := s.lookup(id)
	if err != nil {
		return broadcast.Snapshot{}, err
	}
	session.Stop()
	return session.Snapshot(), nil
}

// UpdatePreferences validates and applies p from the session's next narrated play.
func (s *Service) UpdatePreferences(id string, p playcontext.Preferences) (broadcast.Snapshot, error) {
	if err := ValidatePreferences(p); err != nil {
		return broadcast.Snapshot{}, err
	}
	session, err := s.lookup(id)
	if err != nil {
		return broadcast.Snapshot{}, err
	}
	p.Tone = strings.TrimSpace(p.Tone)
	session.UpdatePreferences(p)
	return session.Snapshot(), nil
}

// PatchPreferences validates the fields patch sets and merges them into the session's
// preferences atomically, so concurrent patches to different fields all survive.
func (s *Service) PatchPreferences(id string, patch playcontext.PreferencesPatch) (broadcast.Snapshot, error) {
	if patch.Temperature != nil {
		if err := validateTemperature(*patch.Temperature); err != nil {
			return broadcast.Snapshot{}, err
		}
	}
	if err := validatePriority(patch.PriorityPlayers); err != nil {
		return broadcast.Snapshot{}, err
	}
	session, err := s.lookup(id)
	if err != nil {
		return broadcast.Snapshot{}, err
	}
	if patch.Tone != nil {
		tone := strings.TrimSpace(*patch.Tone)
		patch.Tone = &tone
	}
	session.PatchPreferences(patch)
	return session.Snapshot(), nil
}

// Messages returns the session's messages with ID greater than after.
func (s *Service) Messages(id string, after int) ([]broadcast.Message, error) {
	session, err := s.lookup(id)
	if err != nil {
		return nil, err
	}
	return session.Messages(after), nil
}

// StopAll returns every running session to idle and reports how many were stopped.
func (s *Service) StopAll(ctx context.Context) int {
	n := 0
	for _, session := range s.store.List() {
		if session.State() != broadcast.StateRunning {
			continue
		}
		session.Stop()
		n++
	}
	logging.Info(logging.FromContext(ctx, s.logger), "broadcast sessions stopped",
		logging.FieldCount, n,
	)
	return n
}

// Delete stops a session and discards it.
func (s *Service) Delete(ctx context.Context, id string) error {
	session, ok := s.store.Delete(id)
	if !ok {
		return ErrSessionNotFound
	}
	session.Stop()
	logging.Info(logging.FromContext(ctx, s.logger), "broadcast session deleted",
		logging.FieldSessionID, id,
	)
	return nil
}

// Shutdown refuses new sessions, stops every running one and waits for their loops.
func (s *Service) Shutdown(ctx context.Context) error {
	s.closeMu.Lock()
	s.closed = true
	s.closeMu.Unlock()

	var errs []error
	for _, session := range s.store.List() {
		if err := session.StopAndWait(ctx); err != nil {
			errs = append(errs, fmt.Errorf("session %s: %w", session.ID(), err))
		}
	}
	return errors.Join(errs...)
}

// Running counts sessions currently broadcasting.
func (s *Service) Running() int {
	n := 0
	for _, session := range s.store.List() {
		if session.State() == broadcast.StateRunning {
			n++
		}
	}
	return n
}

// ValidatePreferences bounds temperature to 0.0 through 1.0 and rejects unusable priority entries.
func ValidatePreferences(p playcontext.Preferences) error {
	if err := validateTemperature(p.Temperature); err != nil {
		return err
	}
	return validatePriority(p.PriorityPlayers)
}

func validateTemperature(t float64) error {
	if t < 0 || t > 1 {
		return fmt.Errorf("%w: temperature must be between 0.0 and 1.0", ErrInvalidPreferences)
	}
	return nil
}

func validatePriority(priority map[string]int) error {
	var bad []string
	for name, id := range priority {
		if strings.TrimSpace(name) == "" || id <= 0 {
			bad = append(bad, fmt.Sprintf("%q", name))
		}
	}
	if len(bad) > 0 {
		sort.Strings(bad)
		return fmt.Errorf("%w: priority players %s", ErrInvalidPreferences, strings.Join(bad, ", "))
	}
	return nil
}

func (s *Service) lookup(id string) (*broadcast.Session, error) {
	session, ok := s.store.Get(id)
	if !ok {
		return nil, ErrSessionNotFound
	}
	return session, nil
}
