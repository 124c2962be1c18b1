package server

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/preston-bernstein/nfl-broadcast-service/internal/app/broadcasts"
	"github.com/preston-bernstein/nfl-broadcast-service/internal/app/games"
	"github.com/preston-bernstein/nfl-broadcast-service/internal/app/players"
	"github.com/preston-bernstein/nfl-broadcast-service/internal/broadcast"
	"github.com/preston-bernstein/nfl-broadcast-service/internal/config"
	"github.com/preston-bernstein/nfl-broadcast-service/internal/feed"
	httpserver "github.com/preston-bernstein/nfl-broadcast-service/internal/http"
	"github.com/preston-bernstein/nfl-broadcast-service/internal/http/handlers"
	"github.com/preston-bernstein/nfl-broadcast-service/internal/http/middleware"
	"github.com/preston-bernstein/nfl-broadcast-service/internal/logging"
	"github.com/preston-bernstein/nfl-broadcast-service/internal/metrics"
	"github.com/preston-bernstein/nfl-broadcast-service/internal/playcontext"
	"github.com/preston-bernstein/nfl-broadcast-service/internal/poller"
	"github.com/preston-bernstein/nfl-broadcast-service/internal/providers"
	"github.com/preston-bernstein/nfl-broadcast-service/internal/store"
)

const hubBuffer = 64

var metricsSetup = metrics.Setup

type Server struct {
	cfg              config.Config
	logger           *slog.Logger
	metrics          *metrics.Recorder
	gamesService     *games.Service
	playersService   *players.Service
	broadcastService *broadcasts.Service
	hub              *feed.Hub
	httpServer       httpServer
	metricsServer    httpServer
	poller           Poller
	metricsStop      func(context.Context) error
	closers          []func() error
}

// New constructs a server with the configured provider, language model and slate poller.
func New(cfg config.Config, logger *slog.Logger) *Server {
	return newServerWithMetrics(cfg, logger, nil, nil)
}

func newServerWithProvider(cfg config.Config, logger *slog.Logger, provider providers.SportsProvider) *Server {
	return newServerWithMetrics(cfg, logger, provider, nil)
}

func newServerWithMetrics(cfg config.Config, logger *slog.Logger, provider providers.SportsProvider, recorder *metrics.Recorder) *Server {
	recorder, metricsSrv, metricsShutdown := buildMetrics(cfg, logger, recorder)

	var closers []func() error
	if provider == nil {
		built := newProviderFactory(logger, recorder).build(cfg)
		provider = built.provider
		closers = built.closers
	} else {
		provider = providers.NewRetryingProvider(provider, logger, recorder, normalizeProviderName(cfg.Provider, provider), cfg.SportsData.RetryAttempts, 0)
	}

	svc := buildServices(cfg, logger, provider, recorder)
	plr := poller.New(provider, svc.games, logger, recorder, cfg.SlatePoll)
	httpSrv := buildHTTPServer(cfg, svc, logger, recorder, plr)

	return &Server{
		cfg:              cfg,
		logger:           logger,
		metrics:          recorder,
		gamesService:     svc.games,
		playersService:   svc.players,
		broadcastService: svc.broadcasts,
		hub:              svc.hub,
		httpServer:       httpSrv,
		metricsServer:    metricsSrv,
		poller:           plr,
		metricsStop:      metricsShutdown,
		closers:          closers,
	}
}

// newServerWithDeps is used for testing to inject custom components.
func newServerWithDeps(cfg config.Config, logger *slog.Logger, broadcastSvc *broadcasts.Service, hub *feed.Hub, httpSrv httpServer, plr Poller) *Server {
	return &Server{
		cfg:              cfg,
		logger:           logger,
		broadcastService: broadcastSvc,
		hub:              hub,
		httpServer:       httpSrv,
		poller:           plr,
	}
}

type services struct {
	games      *games.Service
	players    *players.Service
	broadcasts *broadcasts.Service
	hub        *feed.Hub
}

func buildServices(cfg config.Config, logger *slog.Logger, provider providers.SportsProvider, recorder *metrics.Recorder) services {
	season := cfg.SportsData.Season
	narr := buildNarration(cfg, logger, recorder)
	assembler := playcontext.NewAssembler(provider, season, logger, recorder)

	hub := feed.NewHub(hubBuffer, logger)
	sinks := []broadcast.Sink{hub}
	if cfg.SlackWebhook != "" {
		sinks = append(sinks, feed.NewSlackSink(cfg.SlackWebhook, nil, logger))
	}

	sessions := broadcasts.NewService(store.NewSessionStore(), provider, assembler, narr.narrator, broadcast.Options{
		Interval:           cfg.Broadcast.PollInterval,
		DefaultTemperature: cfg.Broadcast.DefaultTemperature,
		Sinks:              sinks,
		Logger:             logger,
		Metrics:            recorder,
	})

	return services{
		games:      games.NewService(provider, narr.summarizer, season, logger),
		players:    players.NewService(provider, logger),
		broadcasts: sessions,
		hub:        hub,
	}
}

func buildHTTPServer(cfg config.Config, svc services, logger *slog.Logger, recorder *metrics.Recorder, plr Poller) httpServer {
	var statusFn func() poller.Status
	if plr != nil {
		statusFn = plr.Status
	}
	if logger == nil {
		logger = logging.NewLogger(logging.Config{})
	}

	handler := handlers.NewHandler(svc.games, svc.players, svc.broadcasts, svc.hub, logger, statusFn)
	var admin *handlers.AdminHandler
	if cfg.AdminToken != "" {
		admin = handlers.NewAdminHandler(svc.broadcasts, svc.games, cfg.AdminToken, logger)
	}
	router := httpserver.NewRouter(handler, admin)
	wrapped := middleware.LoggingMiddleware(logger, recorder, router)

	// No WriteTimeout: it would cut long-lived websocket streams.
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           wrapped,
		ReadHeaderTimeout: readHeaderTimeout,
		ReadTimeout:       readTimeout,
		IdleTimeout:       idleTimeout,
	}

	return netHTTPServer{srv: srv}
}

// Run starts the poller and HTTP server, then waits for context cancellation to shut down gracefully.
func (s *Server) Run(ctx context.Context, stop context.CancelFunc) {
	s.startMetrics()
	s.startServer(stop)
	s.poller.Start(ctx)

	<-ctx.Done()
	logging.Info(s.logger, "shutdown signal received")

	s.gracefulShutdown()
}

func (s *Server) startServer(stop context.CancelFunc) {
	logging.Info(s.logger, "http server starting", "addr", s.httpServer.Addr())
	launchServer("http", s.httpServer, s.logger, func(err error) {
		if stop != nil {
			stop()
		}
	})
}

func (s *Server) startMetrics() {
	if s.metricsServer == nil {
		return
	}
	logging.Info(s.logger, "metrics server starting", "addr", s.metricsServer.Addr())
	launchServer("metrics", s.metricsServer, s.logger, nil)
}

func (s *Server) gracefulShutdown() {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if s.metricsStop != nil {
		if err := s.metricsStop(shutdownCtx); err != nil {
			logging.Warn(s.logger, "metrics shutdown failed", logging.FieldError, err)
		}
	}

	if s.metricsServer != nil {
		if err := s.metricsServer.Shutdown(shutdownCtx); err != nil {
			logging.Warn(s.logger, "metrics server shutdown failed", logging.FieldError, err)
		}
	}

	if err := s.poller.Stop(shutdownCtx); err != nil {
		logging.Error(s.logger, "failed to stop poller", err)
	}

	// Sessions stop before the HTTP server so stream handlers see their subscriptions close.
	if s.broadcastService != nil {
		if err := s.broadcastService.Shutdown(shutdownCtx); err != nil {
			logging.Warn(s.logger, "broadcast sessions did not stop cleanly", logging.FieldError, err)
		}
	}
	if s.hub != nil {
		s.hub.CloseAll()
	}

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		logging.Error(s.logger, "graceful shutdown failed", err)
	}

	for _, closeFn := range s.closers {
		if err := closeFn(); err != nil {
			logging.Warn(s.logger, "close failed", logging.FieldError, err)
		}
	}

	logging.Info(s.logger, "shutdown complete")
}

func buildMetrics(cfg config.Config, logger *slog.Logger, recorder *metrics.Recorder) (*metrics.Recorder, httpServer, func(context.Context) error) {
	if recorder != nil {
		return recorder, nil, nil
	}

	recCfg := metrics.TelemetryConfig{
		Enabled:      cfg.Metrics.Enabled,
		Port:         cfg.Metrics.Port,
		ServiceName:  cfg.Metrics.ServiceName,
		OtlpEndpoint: cfg.Metrics.OtlpEndpoint,
		OtlpInsecure: cfg.Metrics.OtlpInsecure,
	}

	rec, handler, shutdown, err := metricsSetup(context.Background(), recCfg)
	if err != nil {
		logging.Warn(logger, "metrics setup failed, continuing without telemetry", logging.FieldError, err)
		return metrics.NewRecorder(), nil, nil
	}

	var metricsSrv httpServer
	if handler != nil && recCfg.Enabled {
		metricsSrv = netHTTPServer{
			srv: &http.Server{
				Addr:              ":" + recCfg.Port,
				Handler:           handler,
				ReadHeaderTimeout: readHeaderTimeout,
			},
		}
	}

	return rec, metricsSrv, shutdown
}

func launchServer(name string, srv httpServer, logger *slog.Logger, onError func(error)) {
	go func() {
		logging.Info(logger, "starting "+name+" server", "addr", srv.Addr())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logging.Warn(logger, name+" server failed", logging.FieldError, err)
			if onError != nil {
				onError(err)
			}
		}
	}()
}

// Handler exposes the HTTP handler (useful for tests).
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler()
}
