package sportsdataio

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/preston-bernstein/nfl-broadcast-service/internal/domain/betting"
	"github.com/preston-bernstein/nfl-broadcast-service/internal/domain/games"
	"github.com/preston-bernstein/nfl-broadcast-service/internal/domain/players"
	"github.com/preston-bernstein/nfl-broadcast-service/internal/providers"
)

// Config controls how the SportsDataIO client reaches the upstream API.
type Config struct {
	BaseURL    string
	ReplayURL  string // optional; enables the replay clock lookup
	APIKey     string
	Season     string
	HTTPClient *http.Client
}

// Client fetches NFL data from SportsDataIO and maps it to domain models.
type Client struct {
	baseURL    string
	replayURL  string
	apiKey     string
	season     string
	httpClient httpDoer
	now        func() time.Time
	loc        *time.Location
}

// NewClient constructs a SportsDataIO client with the provided configuration.
func NewClient(cfg Config) *Client {
	season := strings.TrimSpace(cfg.Season)
	if season == "" {
		season = defaultSeason
	}
	replay := strings.TrimSpace(cfg.ReplayURL)
	if replay != "" {
		replay = normalizeBaseURL(replay, "")
	}
	return &Client{
		baseURL:    normalizeBaseURL(cfg.BaseURL, defaultBaseURL),
		replayURL:  replay,
		apiKey:     cfg.APIKey,
		season:     season,
		httpClient: resolveHTTPClient(cfg.HTTPClient),
		now:        time.Now,
		loc:        providers.EasternOrUTC(),
	}
}

// FetchSchedule returns every game in a season; an empty season uses the configured default.
func (c *Client) FetchSchedule(ctx context.Context, season string) ([]games.Game, error) {
	if season == "" {
		season = c.season
	}
	var payload []scoreResponse
	if err := c.getJSON(ctx, c.baseURL, "/scores/json/Schedules/"+url.PathEscape(season), &payload); err != nil {
		return nil, err
	}
	// Schedules include BYE rows with no ScoreID.
	filtered := payload[:0]
	for _, s := range payload {
		if s.ScoreID != 0 {
			filtered = append(filtered, s)
		}
	}
	return mapGames(filtered, c.loc)
}

// FetchGamesByDate returns games on a YYYY-MM-DD date; empty means today in Eastern time.
func (c *Client) FetchGamesByDate(ctx context.Context, date string) ([]games.Game, error) {
	var payload []scoreResponse
	if err := c.getJSON(ctx, c.baseURL, "/scores/json/ScoresByDate/"+c.resolveDate(date), &payload); err != nil {
		return nil, err
	}
	return mapGames(payload, c.loc)
}

// FetchGame returns the current state of one game.
func (c *Client) FetchGame(ctx context.Context, scoreID int) (games.Game, error) {
	box, err := c.boxScore(ctx, scoreID)
	if err != nil {
		return games.Game{}, err
	}
	if box.Score == nil {
		return games.Game{}, fmt.Errorf("%s: game %d: %w", providerName, scoreID, providers.ErrNotFound)
	}
	return mapGame(*box.Score, c.loc)
}

// FetchRoster returns the active players of a team.
func (c *Client) FetchRoster(ctx context.Context, team string) ([]players.Player, error) {
	var payload []playerResponse
	if err := c.getJSON(ctx, c.baseURL, "/scores/json/Players/"+url.PathEscape(strings.ToUpper(team)), &payload); err != nil {
		return nil, err
	}
	out := make([]players.Player, 0, len(payload))
	for _, p := range payload {
		out = append(out, mapPlayer(p))
	}
	return out, nil
}

// FetchPlayByPlay returns the game snapshot with every play recorded so far.
func (c *Client) FetchPlayByPlay(ctx context.Context, scoreID int) (games.PlayByPlay, error) {
	var payload playByPlayResponse
	if err := c.getJSON(ctx, c.baseURL, "/pbp/json/PlayByPlay/"+strconv.Itoa(scoreID), &payload); err != nil {
		return games.PlayByPlay{}, err
	}
	return mapPlayByPlay(payload, c.loc)
}

// FetchBoxScores returns in-game stat rows for the requested players.
func (c *Client) FetchBoxScores(ctx context.Context, scoreID int, playerIDs []int) (map[int]players.StatLine, error) {
	box, err := c.boxScore(ctx, scoreID)
	if err != nil {
		return nil, err
	}
	return statLines(box.PlayerGames, playerIDs), nil
}

// FetchSeasonStats returns season totals for the requested players.
func (c *Client) FetchSeasonStats(ctx context.Context, season string, playerIDs []int) (map[int]players.StatLine, error) {
	if season == "" {
		season = c.season
	}
	var payload []map[string]any
	if err := c.getJSON(ctx, c.baseURL, "/stats/json/PlayerSeasonStats/"+url.PathEscape(season), &payload); err != nil {
		return nil, err
	}
	return statLines(payload, playerIDs), nil
}

// FetchPlayerProps returns prop markets for the requested players in one game.
func (c *Client) FetchPlayerProps(ctx context.Context, scoreID int, playerIDs []int) ([]betting.PlayerProp, error) {
	var payload []playerPropResponse
	if err := c.getJSON(ctx, c.baseURL, "/odds/json/BettingPlayerPropsByScoreID/"+strconv.Itoa(scoreID), &payload); err != nil {
		return nil, err
	}
	return mapProps(payload, playerIDs), nil
}

// FetchLatestOdds returns the newest line per sportsbook.
func (c *Client) FetchLatestOdds(ctx context.Context, scoreID int) ([]betting.GameOdds, error) {
	var payload []gameOddsResponse
	if err := c.getJSON(ctx, c.baseURL, "/odds/json/LiveGameOddsByScoreID/"+strconv.Itoa(scoreID), &payload); err != nil {
		return nil, err
	}
	return latestOdds(payload, c.loc), nil
}

// FetchCurrentTime returns the replay clock when a replay URL is configured, else wall time.
func (c *Client) FetchCurrentTime(ctx context.Context) (*time.Time, error) {
	if c.replayURL == "" {
		now := c.now().In(c.loc)
		return &now, nil
	}
	var payload metadataResponse
	if err := c.getJSON(ctx, c.replayURL, "/api/metadata", &payload); err != nil {
		return nil, err
	}
	t := parseTimestamp(payload.CurrentTime, c.loc)
	if t.IsZero() {
		return nil, nil
	}
	return &t, nil
}

func (c *Client) boxScore(ctx context.Context, scoreID int) (boxScoreResponse, error) {
	var payload boxScoreResponse
	err := c.getJSON(ctx, c.baseURL, "/stats/json/BoxScoreByScoreIDV3/"+strconv.Itoa(scoreID), &payload)
	return payload, err
}

func (c *Client) getJSON(ctx context.Context, base, path string, dest any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, base+path, nil)
	if err != nil {
		return err
	}
	if c.apiKey != "" {
		req.Header.Set(apiKeyHeader, c.apiKey)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &providers.RateLimitError{
			Provider:   providerName,
			StatusCode: resp.StatusCode,
			RetryAfter: parseRetryAfter(resp.Header.Get("Retry-After"), c.now()),
			Remaining:  resp.Header.Get("X-RateLimit-Remaining"),
			Message:    strings.TrimSpace(string(body)),
		}
	}
	if resp.StatusCode == http.StatusNotFound {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return fmt.Errorf("%s: unexpected status %d: %s: %w", providerName, resp.StatusCode, strings.TrimSpace(string(body)), providers.ErrNotFound)
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return fmt.Errorf("%s: unexpected status %d: %s", providerName, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return &providers.DataShapeError{Entity: path, Err: fmt.Errorf("decode: %w", err)}
	}
	return nil
}

func (c *Client) resolveDate(date string) string {
	if date != "" {
		if parsed, err := time.Parse(inputDate, date); err == nil {
			return strings.ToUpper(parsed.Format(requestDate))
		}
	}
	return strings.ToUpper(c.now().In(c.loc).Format(requestDate))
}
