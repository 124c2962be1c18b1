package teststubs

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/preston-bernstein/nfl-broadcast-service/internal/domain/betting"
	"github.com/preston-bernstein/nfl-broadcast-service/internal/domain/games"
	"github.com/preston-bernstein/nfl-broadcast-service/internal/domain/players"
)

var errRosterUnavailable = errors.New("roster unavailable")

// StubProvider is a test double for providers.SportsProvider.
// Each method counts its calls and appends its lookup name to Log in call order.
type StubProvider struct {
	Games       []games.Game
	Game        games.Game
	Roster      map[string][]players.Player
	BoxScores   map[int]players.StatLine
	SeasonStats map[int]players.StatLine
	Props       []betting.PlayerProp
	Odds        []betting.GameOdds
	Now         *time.Time

	// PlayScript, when set, is served one entry per FetchPlayByPlay call; the last entry repeats.
	PlayScript [][]games.Play
	Plays      []games.Play

	Err     error
	PlayErr error
	// PlayErrAfter fails FetchPlayByPlay with PlayErr once this many calls have succeeded (0 = always when PlayErr set).
	PlayErrAfter int32
	BoxErr       error
	SeasonErr    error
	PropsErr     error
	OddsErr      error
	// RosterFailures fails that many FetchRoster calls before Roster is served.
	RosterFailures atomic.Int32

	Calls         atomic.Int32
	ScheduleCalls atomic.Int32
	GameCalls     atomic.Int32
	RosterCalls   atomic.Int32
	PlayCalls     atomic.Int32
	BoxCalls      atomic.Int32
	SeasonCalls   atomic.Int32
	PropsCalls    atomic.Int32
	OddsCalls     atomic.Int32
	TimeCalls     atomic.Int32

	// Notify is closed on the first FetchPlayByPlay call.
	Notify chan struct{}

	mu  sync.Mutex
	log []string
}

// Log returns lookups in the order they were made.
func (s *StubProvider) Log() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.log))
	copy(out, s.log)
	return out
}

func (s *StubProvider) record(name string, counter *atomic.Int32) {
	s.Calls.Add(1)
	counter.Add(1)
	s.mu.Lock()
	s.log = append(s.log, name)
	s.mu.Unlock()
}

func (s *StubProvider) FetchSchedule(ctx context.Context, season string) ([]games.Game, error) {
	s.record("schedule", &s.ScheduleCalls)
	return s.Games, s.Err
}

func (s *StubProvider) FetchGamesByDate(ctx context.Context, date string) ([]games.Game, error) {
	s.record("games_by_date", &s.ScheduleCalls)
	return s.Games, s.Err
}

func (s *StubProvider) FetchGame(ctx context.Context, scoreID int) (games.Game, error) {
	s.record("game", &s.GameCalls)
	if s.Err != nil {
		return games.Game{}, s.Err
	}
	if s.Game.ScoreID == scoreID {
		return s.Game, nil
	}
	for _, g := range s.Games {
		if g.ScoreID == scoreID {
			return g, nil
		}
	}
	return s.Game, nil
}

func (s *StubProvider) FetchRoster(ctx context.Context, team string) ([]players.Player, error) {
	s.record("roster", &s.RosterCalls)
	for {
		n := s.RosterFailures.Load()
		if n <= 0 {
			break
		}
		if s.RosterFailures.CompareAndSwap(n, n-1) {
			return nil, errRosterUnavailable
		}
	}
	return s.Roster[team], s.Err
}

func (s *StubProvider) FetchPlayByPlay(ctx context.Context, scoreID int) (games.PlayByPlay, error) {
	s.record("play_by_play", &s.PlayCalls)
	if s.Notify != nil {
		select {
		case <-s.Notify:
		default:
			close(s.Notify)
		}
	}
	n := s.PlayCalls.Load()
	if s.PlayErr != nil && n > s.PlayErrAfter {
		return games.PlayByPlay{}, s.PlayErr
	}
	plays := s.Plays
	if len(s.PlayScript) > 0 {
		idx := int(n) - 1
		if idx >= len(s.PlayScript) {
			idx = len(s.PlayScript) - 1
		}
		plays = s.PlayScript[idx]
	}
	return games.PlayByPlay{Game: s.Game, Plays: plays}, nil
}

func (s *StubProvider) FetchBoxScores(ctx context.Context, scoreID int, playerIDs []int) (map[int]players.StatLine, error) {
	s.record("box_scores", &s.BoxCalls)
	return pick(s.BoxScores, playerIDs), s.BoxErr
}

func (s *StubProvider) FetchSeasonStats(ctx context.Context, season string, playerIDs []int) (map[int]players.StatLine, error) {
	s.record("season_stats", &s.SeasonCalls)
	return pick(s.SeasonStats, playerIDs), s.SeasonErr
}

func (s *StubProvider) FetchPlayerProps(ctx context.Context, scoreID int, playerIDs []int) ([]betting.PlayerProp, error) {
	s.record("player_props", &s.PropsCalls)
	return s.Props, s.PropsErr
}

func (s *StubProvider) FetchLatestOdds(ctx context.Context, scoreID int) ([]betting.GameOdds, error) {
	s.record("odds", &s.OddsCalls)
	return s.Odds, s.OddsErr
}

func (s *StubProvider) FetchCurrentTime(ctx context.Context) (*time.Time, error) {
	s.record("current_time", &s.TimeCalls)
	return s.Now, s.Err
}

func pick(src map[int]players.StatLine, ids []int) map[int]players.StatLine {
	if src == nil {
		return nil
	}
	out := make(map[int]players.StatLine, len(ids))
	for _, id := range ids {
		if line, ok := src[id]; ok {
			out[id] = line
		}
	}
	return out
}

// CompleterCall captures one Complete invocation.
type CompleterCall struct {
	System      string
	User        string
	Temperature float64
}

// StubCompleter is a test double for llm.Completer.
type StubCompleter struct {
	Reply string
	// Replies, when set, are returned in order; the last one repeats.
	Replies []string
	Err     error

	Calls atomic.Int32

	mu      sync.Mutex
	history []CompleterCall
}

// Complete returns the configured reply and records the prompt.
func (s *StubCompleter) Complete(ctx context.Context, system, user string, temperature float64) (string, error) {
	n := s.Calls.Add(1)
	s.mu.Lock()
	s.history = append(s.history, CompleterCall{System: system, User: user, Temperature: temperature})
	s.mu.Unlock()
	if s.Err != nil {
		return "", s.Err
	}
	if len(s.Replies) > 0 {
		idx := int(n) - 1
		if idx >= len(s.Replies) {
			idx = len(s.Replies) - 1
		}
		return s.Replies[idx], nil
	}
	return s.Reply, nil
}

// History returns every recorded call.
func (s *StubCompleter) History() []CompleterCall {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]CompleterCall, len(s.history))
	copy(out, s.history)
	return out
}

// LastCall returns the most recent call, if any.
func (s *StubCompleter) LastCall() (CompleterCall, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.history) == 0 {
		return CompleterCall{}, false
	}
	return s.history[len(s.history)-1], true
}

// StubSlateWriter records each slate it receives, keyed by date.
type StubSlateWriter struct {
	// Notify is closed on the first write.
	Notify chan struct{}

	mu      sync.Mutex
	written map[string][]games.Game
	writes  int
}

func (w *StubSlateWriter) ReplaceSlate(date string, list []games.Game) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.written == nil {
		w.written = make(map[string][]games.Game)
	}
	w.written[date] = append([]games.Game(nil), list...)
	w.writes++
	if w.Notify != nil && w.writes == 1 {
		close(w.Notify)
	}
}

// Slate returns what was last written for date.
func (w *StubSlateWriter) Slate(date string) ([]games.Game, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	list, ok := w.written[date]
	return list, ok
}

// Writes counts ReplaceSlate calls.
func (w *StubSlateWriter) Writes() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.writes
}
