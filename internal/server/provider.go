package server

import (
	"log/slog"

	"github.com/preston-bernstein/nfl-broadcast-service/internal/config"
	"github.com/preston-bernstein/nfl-broadcast-service/internal/logging"
	"github.com/preston-bernstein/nfl-broadcast-service/internal/providers"
	"github.com/preston-bernstein/nfl-broadcast-service/internal/providers/fixture"
	"github.com/preston-bernstein/nfl-broadcast-service/internal/providers/sportsdataio"
)

func selectProvider(cfg config.Config, logger *slog.Logger) providers.SportsProvider {
	switch cfg.Provider {
	case "fixture", "":
		return fixture.New()
	case "sportsdataio":
		return sportsdataio.NewClient(sportsdataio.Config{
			BaseURL:   cfg.SportsData.BaseURL,
			ReplayURL: cfg.SportsData.ReplayURL,
			APIKey:    cfg.SportsData.APIKey,
			Season:    cfg.SportsData.Season,
		})
	default:
		logging.Warn(logger, "unknown provider, falling back to fixture", logging.FieldProvider, cfg.Provider)
		return fixture.New()
	}
}
