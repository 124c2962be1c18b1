package games

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	domaingames "github.com/preston-bernstein/nfl-broadcast-service/internal/domain/games"
	"github.com/preston-bernstein/nfl-broadcast-service/internal/logging"
	"github.com/preston-bernstein/nfl-broadcast-service/internal/providers"
	"github.com/preston-bernstein/nfl-broadcast-service/internal/store"
	"github.com/preston-bernstein/nfl-broadcast-service/internal/timeutil"
)

var (
	// ErrGameNotFound is returned when the provider has no game for the requested id.
	ErrGameNotFound = errors.New("game not found")
	// ErrInvalidDate is returned for dates not in YYYY-MM-DD form.
	ErrInvalidDate = errors.New("invalid date format (expected YYYY-MM-DD)")
	// ErrInvalidTemperature is returned for temperatures outside 0.0 to 1.0.
	ErrInvalidTemperature = errors.New("temperature must be between 0.0 and 1.0")
)

// Summarizer writes a game summary. It never fails.
type Summarizer interface {
	Summarize(ctx context.Context, game domaingames.Game, temperature float64) (string, string)
}

// Summary is the on-demand game summary response.
type Summary struct {
	ScoreID int               `json:"scoreId"`
	Phase   domaingames.Phase `json:"phase"`
	Details string            `json:"details"`
	Summary string            `json:"summary"`
}

// Service answers game lookups for the selection UI.
type Service struct {
	provider   providers.SportsProvider
	summarizer Summarizer
	season     string
	logger     *slog.Logger
	now        func() time.Time
	loc        *time.Location
	slate      *store.GameStore
}

// NewService constructs a Service. season is used when a schedule request names none.
func NewService(provider providers.SportsProvider, summarizer Summarizer, season string, logger *slog.Logger) *Service {
	return &Service{
		provider:   provider,
		summarizer: summarizer,
		season:     season,
		logger:     logger,
		now:        time.Now,
		loc:        providers.EasternOrUTC(),
		slate:      store.NewGameStore(),
	}
}

// ReplaceSlate stores the refreshed games for date.
func (s *Service) ReplaceSlate(date string, list []domaingames.Game) {
	s.slate.SetSlate(date, list)
}

// TodayDate is the provider clock's date in Eastern time, falling back to the local clock.
func (s *Service) TodayDate(ctx context.Context) string {
	now, err := s.CurrentTime(ctx)
	if err != nil {
		now = s.now()
	}
	return timeutil.FormatDate(now.In(s.loc))
}

// RefreshSlate fetches date's games from the provider and stores them as the slate.
func (s *Service) RefreshSlate(ctx context.Context, date string) (int, error) {
	if _, err := timeutil.ParseDate(date); err != nil {
		return 0, ErrInvalidDate
	}
	list, err := s.provider.FetchGamesByDate(ctx, date)
	if err != nil {
		return 0, err
	}
	s.ReplaceSlate(date, list)
	logging.Info(logging.FromContext(ctx, s.logger), "slate refreshed",
		logging.FieldDate, date,
		logging.FieldCount, len(list),
	)
	return len(list), nil
}

// Today returns the slate for the provider's current Eastern date.
func (s *Service) Today(ctx context.Context) (string, []domaingames.Game, error) {
	today := s.TodayDate(ctx)
	list, err := s.Schedule(ctx, today, "")
	return today, list, err
}

// Schedule returns the games for date, or for the whole season when date is empty.
func (s *Service) Schedule(ctx context.Context, date, season string) ([]domaingames.Game, error) {
	if date != "" {
		if _, err := timeutil.ParseDate(date); err != nil {
			return nil, ErrInvalidDate
		}
		if stored, list := s.slate.Slate(); stored == date && len(list) > 0 {
			return list, nil
		}
		list, err := s.provider.FetchGamesByDate(ctx, date)
		if err != nil {
			return nil, err
		}
		return sortByKickoff(list), nil
	}
	if season == "" {
		season = s.season
	}
	list, err := s.provider.FetchSchedule(ctx, season)
	if err != nil {
		return nil, err
	}
	return sortByKickoff(list), nil
}

// Game returns a fresh copy of one game.
func (s *Service) Game(ctx context.Context, scoreID int) (domaingames.Game, error) {
	game, err := s.provider.FetchGame(ctx, scoreID)
	if errors.Is(err, providers.ErrNotFound) {
		return domaingames.Game{}, fmt.Errorf("%w: %d", ErrGameNotFound, scoreID)
	}
	return game, err
}

// CurrentTime returns the provider's clock, which runs in the past during replays.
func (s *Service) CurrentTime(ctx context.Context) (time.Time, error) {
	now, err := s.provider.FetchCurrentTime(ctx)
	if err != nil {
		return time.Time{}, err
	}
	if now == nil {
		return s.now(), nil
	}
	return *now, nil
}

// Summary fetches the game fresh and summarizes its current phase.
func (s *Service) Summary(ctx context.Context, scoreID int, temperature float64) (Summary, error) {
	if temperature < 0 || temperature > 1 {
		return Summary{}, ErrInvalidTemperature
	}
	game, err := s.Game(ctx, scoreID)
	if err != nil {
		return Summary{}, err
	}
	details, text := s.summarizer.Summarize(ctx, game, temperature)
	logging.Info(logging.FromContext(ctx, s.logger), "game summary generated",
		logging.FieldScoreID, game.ScoreID,
		"phase", game.Phase(),
	)
	return Summary{
		ScoreID: game.ScoreID,
		Phase:   game.Phase(),
		Details: details,
		Summary: text,
	}, nil
}

func sortByKickoff(list []domaingames.Game) []domaingames.Game {
	out := append([]domaingames.Game(nil), list...)
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.Before(out[j].Date)
		}
		return out[i].ScoreID < out[j].ScoreID
	})
	if out == nil {
		out = []domaingames.Game{}
	}
	return out
}
