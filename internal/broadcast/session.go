package broadcast

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/preston-bernstein/nfl-broadcast-service/internal/domain/games"
	"github.com/preston-bernstein/nfl-broadcast-service/internal/domain/players"
	"github.com/preston-bernstein/nfl-broadcast-service/internal/logging"
	"github.com/preston-bernstein/nfl-broadcast-service/internal/metrics"
	"github.com/preston-bernstein/nfl-broadcast-service/internal/playcontext"
	"github.com/preston-bernstein/nfl-broadcast-service/internal/providers"
)

const (
	defaultInterval    = 15 * time.Second
	defaultTemperature = 0.7
	maxMessages        = 500
)

var (
	ErrGameNotInProgress = errors.New("broadcast: game is not in progress")
	ErrAlreadyRunning    = errors.New("broadcast: session already running")
	ErrNoPlays           = errors.New("broadcast: no plays available")
	ErrPlaysUnavailable  = errors.New("broadcast: plays unavailable")
	ErrInterrupted       = errors.New("broadcast: stopped before start completed")
)

// State is the session lifecycle state.
type State string

const (
	StateIdle    State = "idle"
	StateRunning State = "running"
)

// PlaySource supplies the play list and rosters for the selected game.
type PlaySource interface {
	FetchPlayByPlay(ctx context.Context, scoreID int) (games.PlayByPlay, error)
	FetchRoster(ctx context.Context, team string) ([]players.Player, error)
}

// ContextAssembler builds the narration context for one play.
type ContextAssembler interface {
	Assemble(ctx context.Context, game games.Game, play games.Play, involved playcontext.IDSet, prefs playcontext.Preferences) playcontext.PlayContext
}

// Narrator turns a play context into broadcast text. It never fails.
type Narrator interface {
	Narrate(ctx context.Context, pc playcontext.PlayContext, temperature float64) string
}

// Options tune a session. Zero values pick defaults.
type Options struct {
	Interval           time.Duration
	DefaultTemperature float64
	Sinks              []Sink
	Logger             *slog.Logger
	Metrics            *metrics.Recorder
	Now                func() time.Time
}

// Status describes the recent health of the poll loop.
type Status struct {
	Cycles              int       `json:"cycles"`
	ConsecutiveFailures int       `json:"consecutiveFailures"`
	LastError           string    `json:"lastError,omitempty"`
	LastAttempt         time.Time `json:"lastAttempt"`
	LastSuccess         time.Time `json:"lastSuccess"`
}

// Snapshot is a point-in-time copy of a session.
type Snapshot struct {
	ID          string                  `json:"id"`
	State       State                   `json:"state"`
	ScoreID     int                     `json:"scoreId"`
	Watermark   *int                    `json:"watermark"`
	Preferences playcontext.Preferences `json:"preferences"`
	Status      Status                  `json:"status"`
	Messages    int                     `json:"messages"`
}

// Session is one user's broadcast of one game.
// All state is guarded by mu; emitMu keeps sink delivery in log order.
type Session struct {
	id        string
	source    PlaySource
	assembler ContextAssembler
	narrator  Narrator
	sinks     []Sink
	logger    *slog.Logger
	metrics   *metrics.Recorder
	interval  time.Duration
	now       func() time.Time

	startMu sync.Mutex
	emitMu  sync.Mutex

	mu        sync.Mutex
	state     State
	scoreID   int
	watermark *int
	prefs     playcontext.Preferences
	messages  []Message
	nextID    int
	gen       int
	run       *run
	last      *run
	status    Status

	// rosterComplete is set once both teams of the selected game have loaded.
	roster         players.Roster
	rosterComplete bool
}

// run is one poll loop. done is closed once to request a stop; finished closes when the goroutine exits.
type run struct {
	done     chan struct{}
	stopOnce sync.Once
	finished chan struct{}
}

func newRun() *run {
	return &run{done: make(chan struct{}), finished: make(chan struct{})}
}

func (r *run) stop() {
	r.stopOnce.Do(func() { close(r.done) })
}

func (r *run) stopped() bool {
	select {
	case <-r.done:
		return true
	default:
		return false
	}
}

// NewSession builds an idle session with no game selected.
func NewSession(id string, source PlaySource, assembler ContextAssembler, narrator Narrator, opts Options) *Session {
	if opts.Interval <= 0 {
		opts.Interval = defaultInterval
	}
	if opts.DefaultTemperature == 0 {
		opts.DefaultTemperature = defaultTemperature
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	logger := opts.Logger
	if logger != nil {
		logger = logger.With(logging.FieldSessionID, id)
	}
	return &Session{
		id:        id,
		source:    source,
		assembler: assembler,
		narrator:  narrator,
		sinks:     opts.Sinks,
		logger:    logger,
		metrics:   opts.Metrics,
		interval:  opts.Interval,
		now:       opts.Now,
		state:     StateIdle,
		prefs:     playcontext.Preferences{Temperature: opts.DefaultTemperature},
	}
}

// ID returns the session identifier.
func (s *Session) ID() string {
	return s.id
}

// State returns the current lifecycle state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Watermark returns a copy of the last narrated sequence, or nil before the first start.
func (s *Session) Watermark() *int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return copyInt(s.watermark)
}

// Preferences returns a copy of the current preferences.
func (s *Session) Preferences() playcontext.Preferences {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.prefs.Clone()
}

// Messages returns the emitted messages with ID greater than after, oldest first.
func (s *Session) Messages(after int) []Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Message, 0, len(s.messages))
	for _, m := range s.messages {
		if m.ID > after {
			out = append(out, m)
		}
	}
	return out
}

// Status returns the poll loop health.
func (s *Session) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// Snapshot returns a copy of the session for display.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot{
		ID:          s.id,
		State:       s.state,
		ScoreID:     s.scoreID,
		Watermark:   copyInt(s.watermark),
		Preferences: s.prefs.Clone(),
		Status:      s.status,
		Messages:    len(s.messages),
	}
}

// SelectGame scopes the session to scoreID. Choosing a different game stops any
// running broadcast and clears the watermark and roster.
func (s *Session) SelectGame(scoreID int) {
	s.mu.Lock()
	if s.scoreID == scoreID {
		s.mu.Unlock()
		return
	}
	r, wasRunning := s.haltLocked()
	s.scoreID = scoreID
	s.watermark = nil
	s.roster = nil
	s.rosterComplete = false
	s.mu.Unlock()

	s.afterHalt(r, wasRunning, "game changed")
}

// UpdatePreferences replaces the preferences used from the next narrated play on.
func (s *Session) UpdatePreferences(p playcontext.Preferences) {
	s.mu.Lock()
	s.prefs = p.Clone()
	s.mu.Unlock()
}

// PatchPreferences merges patch into the current preferences in one step.
func (s *Session) PatchPreferences(patch playcontext.PreferencesPatch) {
	s.mu.Lock()
	s.prefs = patch.Apply(s.prefs)
	s.mu.Unlock()
}

// ReportError appends an error message to the log and fans it out without changing state.
func (s *Session) ReportError(ctx context.Context, text string) {
	s.emit(ctx, nil, KindError, text, nil)
}

// SetRoster replaces the roster used to resolve players mentioned in plays.
func (s *Session) SetRoster(roster players.Roster) {
	s.mu.Lock()
	s.roster = roster
	s.rosterComplete = true
	s.mu.Unlock()
}

// Start begins broadcasting game. It narrates the latest play, sets the watermark to its
// sequence and launches the poll loop. Failures emit an error message and leave the session idle.
func (s *Session) Start(ctx context.Context, game games.Game) error {
	s.startMu.Lock()
	defer s.startMu.Unlock()

	s.mu.Lock()
	if s.state == StateRunning {
		s.mu.Unlock()
		return ErrAlreadyRunning
	}
	if s.scoreID != game.ScoreID {
		s.scoreID = game.ScoreID
		s.watermark = nil
		s.roster = nil
		s.rosterComplete = false
	}
	gen := s.gen
	s.mu.Unlock()

	if !game.IsInProgress {
		s.emit(ctx, nil, KindError, "Game is not in progress.", nil)
		return ErrGameNotInProgress
	}

	pbp, err := s.source.FetchPlayByPlay(ctx, game.ScoreID)
	if err != nil {
		logging.Warn(logging.FromContext(ctx, s.logger), "broadcast start fetch failed",
			logging.FieldScoreID, game.ScoreID,
			logging.FieldError, err,
		)
		s.emit(ctx, nil, KindError, "Unable to load plays for this game.", nil)
		return fmt.Errorf("%w: %w", ErrPlaysUnavailable, err)
	}
	latest, ok := LatestPlay(pbp.Plays)
	if !ok {
		s.emit(ctx, nil, KindError, "No plays available for this game yet.", nil)
		return ErrNoPlays
	}
	if pbp.Game.ScoreID == game.ScoreID {
		game = pbp.Game
	}
	s.ensureRoster(ctx, game, true)

	r := newRun()
	s.mu.Lock()
	if s.gen != gen {
		s.mu.Unlock()
		return ErrInterrupted
	}
	s.state = StateRunning
	s.run = r
	s.last = r
	s.watermark = copyInt(latest.Sequence)
	s.status = Status{}
	s.mu.Unlock()

	s.metrics.SessionStarted()
	logging.Info(s.logger, "broadcast started",
		logging.FieldScoreID, game.ScoreID,
		logging.FieldWatermark, latest.SequenceValue(),
	)

	loopCtx := context.WithoutCancel(ctx)
	if !s.narratePlay(loopCtx, r, game, latest) {
		close(r.finished)
		return ErrInterrupted
	}
	go s.loop(loopCtx, r, game)
	return nil
}

// Stop returns the session to idle. The loop observes it before the next play or cycle.
// Stop is idempotent.
func (s *Session) Stop() {
	s.mu.Lock()
	r, wasRunning := s.haltLocked()
	s.mu.Unlock()

	s.afterHalt(r, wasRunning, "stopped")
}

// Wait blocks until the most recent poll loop has exited, or ctx is done.
func (s *Session) Wait(ctx context.Context) error {
	s.mu.Lock()
	r := s.last
	s.mu.Unlock()
	if r == nil {
		return nil
	}
	select {
	case <-r.finished:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// StopAndWait stops the session and waits for its loop to exit.
func (s *Session) StopAndWait(ctx context.Context) error {
	s.mu.Lock()
	r, wasRunning := s.haltLocked()
	s.mu.Unlock()

	s.afterHalt(r, wasRunning, "stopped")
	return s.Wait(ctx)
}

// haltLocked must be called with s.mu held.
func (s *Session) haltLocked() (*run, bool) {
	r := s.run
	wasRunning := s.state == StateRunning
	s.run = nil
	s.state = StateIdle
	s.gen++
	return r, wasRunning
}

func (s *Session) afterHalt(r *run, wasRunning bool, reason string) {
	if r != nil {
		r.stop()
	}
	if wasRunning {
		s.metrics.SessionStopped()
		logging.Info(s.logger, "broadcast stopped", "reason", reason)
	}
}

func (s *Session) loop(ctx context.Context, r *run, game games.Game) {
	defer close(r.finished)

	timer := time.NewTimer(s.interval)
	defer timer.Stop()

	for {
		select {
		case <-r.done:
			return
		case <-timer.C:
		}

		next, ok := s.cycle(ctx, r, game)
		if !ok {
			return
		}
		game = next
		timer.Reset(s.interval)
	}
}

// cycle polls once and narrates every new play. It reports false when the loop must exit.
func (s *Session) cycle(ctx context.Context, r *run, game games.Game) (games.Game, bool) {
	start := s.now()
	s.recordAttempt(start)

	pbp, err := s.source.FetchPlayByPlay(ctx, game.ScoreID)
	if err != nil {
		s.metrics.RecordBroadcastCycle(time.Since(start), err)
		s.recordFailure(err, start)
		if providers.IsDataShape(err) {
			logging.Warn(s.logger, "play list malformed; treating as no new plays",
				logging.FieldScoreID, game.ScoreID,
				logging.FieldError, err,
			)
			return game, !r.stopped()
		}
		logging.Error(s.logger, "broadcast poll failed", err, logging.FieldScoreID, game.ScoreID)
		s.terminate(ctx, r, "Lost connection to the play-by-play feed. Broadcast stopped.")
		return game, false
	}
	if pbp.Game.ScoreID == game.ScoreID {
		game = pbp.Game
	}
	s.ensureRoster(ctx, game, false)

	fresh := NewPlays(pbp.Plays, s.Watermark())
	for _, p := range fresh {
		if r.stopped() {
			return game, false
		}
		if !s.narratePlay(ctx, r, game, p) {
			return game, false
		}
	}

	s.metrics.RecordBroadcastCycle(time.Since(start), nil)
	s.recordSuccess(start)
	logging.Debug(s.logger, "broadcast cycle complete",
		logging.FieldScoreID, game.ScoreID,
		logging.FieldCount, len(fresh),
	)
	return game, !r.stopped()
}

// narratePlay emits the update for p and advances the watermark to its sequence.
// It reports false when r was stopped before the update could be committed.
func (s *Session) narratePlay(ctx context.Context, r *run, game games.Game, p games.Play) bool {
	s.mu.Lock()
	prefs := s.prefs.Clone()
	roster := s.roster
	s.mu.Unlock()

	involved := playcontext.Resolve(p, roster)
	pc := s.assembler.Assemble(ctx, game, p, involved, prefs)
	text := s.narrator.Narrate(ctx, pc, prefs.Temperature)

	return s.emit(ctx, r, KindUpdate, FormatUpdate(s.now(), p, text), p.Sequence)
}

// emit appends a message and fans it out. With a non-nil run the message is dropped unless
// that run is still current, and seq (when set) becomes the new watermark.
func (s *Session) emit(ctx context.Context, r *run, kind Kind, text string, seq *int) bool {
	s.emitMu.Lock()
	defer s.emitMu.Unlock()

	s.mu.Lock()
	if r != nil && s.run != r {
		s.mu.Unlock()
		return false
	}
	msg := s.appendLocked(kind, text, seq)
	if r != nil && seq != nil {
		s.watermark = copyInt(seq)
	}
	s.mu.Unlock()

	s.publish(ctx, msg)
	return true
}

// terminate emits an error and returns to idle, provided r is still current.
func (s *Session) terminate(ctx context.Context, r *run, text string) {
	s.emitMu.Lock()
	defer s.emitMu.Unlock()

	s.mu.Lock()
	if s.run != r {
		s.mu.Unlock()
		return
	}
	msg := s.appendLocked(KindError, text, nil)
	_, wasRunning := s.haltLocked()
	s.mu.Unlock()

	s.publish(ctx, msg)
	s.afterHalt(nil, wasRunning, "feed failure")
}

// appendLocked must be called with s.mu held.
func (s *Session) appendLocked(kind Kind, text string, seq *int) Message {
	s.nextID++
	msg := Message{
		ID:        s.nextID,
		Kind:      kind,
		Text:      text,
		Timestamp: s.now(),
		Sequence:  copyInt(seq),
	}
	s.messages = append(s.messages, msg)
	if len(s.messages) > maxMessages {
		s.messages = append([]Message(nil), s.messages[len(s.messages)-maxMessages:]...)
	}
	return msg
}

func (s *Session) publish(ctx context.Context, msg Message) {
	for _, sink := range s.sinks {
		sink.Publish(ctx, s.id, msg)
	}
}

// ensureRoster loads both teams of game until both have succeeded. The poll loop retries it
// every cycle; only the first attempt (announce) warns subscribers about missing teams.
func (s *Session) ensureRoster(ctx context.Context, game games.Game, announce bool) {
	s.mu.Lock()
	complete := s.rosterComplete
	s.mu.Unlock()
	if complete {
		return
	}

	var all []players.Player
	var missing []string
	for _, team := range []string{game.AwayTeam, game.HomeTeam} {
		if team == "" {
			continue
		}
		list, err := s.source.FetchRoster(ctx, team)
		if err != nil {
			if announce {
				logging.Warn(logging.FromContext(ctx, s.logger), "roster lookup failed",
					logging.FieldScoreID, game.ScoreID,
					logging.FieldError, err,
				)
			}
			missing = append(missing, team)
			continue
		}
		all = append(all, list...)
	}
	if announce && len(missing) > 0 {
		s.emit(ctx, nil, KindWarning, fmt.Sprintf("Roster unavailable for %s; player details may be missing.", strings.Join(missing, ", ")), nil)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.scoreID != game.ScoreID {
		return
	}
	if len(all) > 0 || len(s.roster) == 0 {
		s.roster = players.NewRoster(all)
	}
	s.rosterComplete = len(missing) == 0
	if !announce && s.rosterComplete {
		logging.Info(s.logger, "roster loaded", logging.FieldScoreID, game.ScoreID, logging.FieldCount, len(all))
	}
}

func (s *Session) recordAttempt(at time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status.LastAttempt = at
}

func (s *Session) recordSuccess(at time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status.Cycles++
	s.status.ConsecutiveFailures = 0
	s.status.LastError = ""
	s.status.LastSuccess = at
}

func (s *Session) recordFailure(err error, at time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status.Cycles++
	s.status.ConsecutiveFailures++
	if err != nil {
		s.status.LastError = err.Error()
	}
	s.status.LastAttempt = at
}

func copyInt(v *int) *int {
	if v == nil {
		return nil
	}
	out := *v
	return &out
}
