package games

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domaingames "github.com/preston-bernstein/nfl-broadcast-service/internal/domain/games"
	"github.com/preston-bernstein/nfl-broadcast-service/internal/narration"
	"github.com/preston-bernstein/nfl-broadcast-service/internal/providers"
	"github.com/preston-bernstein/nfl-broadcast-service/internal/teststubs"
)

type stubSummarizer struct {
	calls int
	game  domaingames.Game
	temp  float64
}

func (s *stubSummarizer) Summarize(ctx context.Context, game domaingames.Game, temperature float64) (string, string) {
	s.calls++
	s.game = game
	s.temp = temperature
	return "details", "summary"
}

func kickoff(hour int) time.Time {
	return time.Date(2024, 9, 8, hour, 0, 0, 0, time.UTC)
}

func TestServiceScheduleByDateSortsByKickoff(t *testing.T) {
	provider := &teststubs.StubProvider{Games: []domaingames.Game{
		{ScoreID: 3, Date: kickoff(20)},
		{ScoreID: 2, Date: kickoff(13)},
		{ScoreID: 1, Date: kickoff(13)},
	}}
	svc := NewService(provider, &stubSummarizer{}, "2024REG", nil)

	list, err := svc.Schedule(context.Background(), "2024-09-08", "")

	require.NoError(t, err)
	assert.Equal(t, []string{"games_by_date"}, provider.Log())
	require.Len(t, list, 3)
	assert.Equal(t, []int{1, 2, 3}, []int{list[0].ScoreID, list[1].ScoreID, list[2].ScoreID})
	assert.Equal(t, 3, provider.Games[0].ScoreID, "provider slice untouched")
}

func TestServiceScheduleWithoutDateUsesSeason(t *testing.T) {
	provider := &teststubs.StubProvider{}
	svc := NewService(provider, &stubSummarizer{}, "2024REG", nil)

	list, err := svc.Schedule(context.Background(), "", "")

	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Equal(t, []string{"schedule"}, provider.Log())
}

func TestServiceScheduleRejectsBadDate(t *testing.T) {
	provider := &teststubs.StubProvider{}
	svc := NewService(provider, &stubSummarizer{}, "", nil)

	_, err := svc.Schedule(context.Background(), "09/08/2024", "")

	assert.ErrorIs(t, err, ErrInvalidDate)
	assert.Zero(t, provider.Calls.Load())
}

func TestServiceGameMapsNotFound(t *testing.T) {
	provider := &teststubs.StubProvider{Err: providers.ErrNotFound}
	svc := NewService(provider, &stubSummarizer{}, "", nil)

	_, err := svc.Game(context.Background(), 42)

	assert.ErrorIs(t, err, ErrGameNotFound)
}

func TestServiceCurrentTimeFallsBackToClock(t *testing.T) {
	fixed := time.Date(2024, 9, 8, 17, 30, 0, 0, time.UTC)
	svc := NewService(&teststubs.StubProvider{}, &stubSummarizer{}, "", nil)
	svc.now = func() time.Time { return fixed }

	got, err := svc.CurrentTime(context.Background())
	require.NoError(t, err)
	assert.Equal(t, fixed, got)

	replay := time.Date(2023, 12, 3, 13, 2, 0, 0, time.UTC)
	svc = NewService(&teststubs.StubProvider{Now: &replay}, &stubSummarizer{}, "", nil)
	got, err = svc.CurrentTime(context.Background())
	require.NoError(t, err)
	assert.Equal(t, replay, got)
}

func TestServiceSummaryFetchesGameFresh(t *testing.T) {
	game := domaingames.Game{ScoreID: 18002, HomeTeam: "KC", AwayTeam: "BAL", HasStarted: true}
	provider := &teststubs.StubProvider{Game: game}
	sum := &stubSummarizer{}
	svc := NewService(provider, sum, "", nil)

	got, err := svc.Summary(context.Background(), 18002, 0.3)

	require.NoError(t, err)
	assert.Equal(t, Summary{ScoreID: 18002, Phase: domaingames.PhaseFinal, Details: "details", Summary: "summary"}, got)
	assert.Equal(t, int32(1), provider.GameCalls.Load())
	assert.Equal(t, 0.3, sum.temp)
}

func TestServiceSummaryValidatesTemperature(t *testing.T) {
	svc := NewService(&teststubs.StubProvider{}, &stubSummarizer{}, "", nil)

	_, err := svc.Summary(context.Background(), 1, 1.5)
	assert.ErrorIs(t, err, ErrInvalidTemperature)
}

func TestServiceSummaryWithNarrationFailureStillAnswers(t *testing.T) {
	game := domaingames.Game{ScoreID: 18001, HomeTeam: "BUF", AwayTeam: "ARI", HasStarted: true, IsInProgress: true}
	completer := &teststubs.StubCompleter{Err: errors.New("model down")}
	summarizer := narration.NewSummarizer(completer, narration.DefaultTemplates(), nil, nil)
	svc := NewService(&teststubs.StubProvider{Game: game}, summarizer, "", nil)

	got, err := svc.Summary(context.Background(), 18001, 0.7)

	require.NoError(t, err)
	assert.Equal(t, narration.SummaryFailureText, got.Summary)
	assert.Contains(t, got.Details, "- **Teams**: ARI vs BUF")
}

func TestServiceScheduleServesRefreshedSlate(t *testing.T) {
	provider := &teststubs.StubProvider{}
	svc := NewService(provider, &stubSummarizer{}, "", nil)
	svc.ReplaceSlate("2024-09-08", []domaingames.Game{{ScoreID: 9, Date: kickoff(20)}, {ScoreID: 4, Date: kickoff(13)}})

	list, err := svc.Schedule(context.Background(), "2024-09-08", "")

	require.NoError(t, err)
	assert.Zero(t, provider.Calls.Load(), "slate hit should skip the provider")
	require.Len(t, list, 2)
	assert.Equal(t, 4, list[0].ScoreID)

	_, err = svc.Schedule(context.Background(), "2024-09-09", "")
	require.NoError(t, err)
	assert.Equal(t, []string{"games_by_date"}, provider.Log())
}

func TestServiceTodayUsesEasternDate(t *testing.T) {
	provider := &teststubs.StubProvider{}
	svc := NewService(provider, &stubSummarizer{}, "", nil)
	// 02:00 UTC on the 9th is still the evening of the 8th in New York.
	svc.now = func() time.Time { return time.Date(2024, 9, 9, 2, 0, 0, 0, time.UTC) }
	svc.ReplaceSlate("2024-09-08", []domaingames.Game{{ScoreID: 1}})

	date, list, err := svc.Today(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "2024-09-08", date)
	require.Len(t, list, 1)
	assert.Zero(t, provider.ScheduleCalls.Load(), "slate hit should skip the schedule lookup")
	assert.EqualValues(t, 1, provider.TimeCalls.Load())
}

func TestServiceRefreshSlate(t *testing.T) {
	provider := &teststubs.StubProvider{Games: []domaingames.Game{{ScoreID: 1}, {ScoreID: 2}}}
	svc := NewService(provider, &stubSummarizer{}, "", nil)

	n, err := svc.RefreshSlate(context.Background(), "2024-09-08")
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	_, err = svc.Schedule(context.Background(), "2024-09-08", "")
	require.NoError(t, err)
	assert.Equal(t, int32(1), provider.ScheduleCalls.Load(), "schedule served from the refreshed slate")

	_, err = svc.RefreshSlate(context.Background(), "tomorrow")
	assert.ErrorIs(t, err, ErrInvalidDate)
}
