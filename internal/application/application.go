package application

import (
	"errors"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/eugenenazirov/apiconfig/internal/api"
	"github.com/eugenenazirov/apiconfig/internal/config"
	"github.com/eugenenazirov/apiconfig/internal/env"
)

// App encapsulates the application dependencies and HTTP server.
type App struct {
	apiConfig *config.APIConfig
	handler   *api.Handler
	router    http.Handler
	logger    *zap.Logger
	server    *http.Server
}

// New wires the runtime-config service around resolver.
func New(cfg config.Config, resolver *env.Resolver, logger *zap.Logger) *App {
	apiCfg := config.NewAPIConfig(resolver)
	handler := api.NewHandler(apiCfg)
	router := api.NewRouter(handler, logger,
		api.WithLogging(cfg.EnableRequestLogging),
		api.WithRateLimit(cfg.RateLimitRPS, cfg.RateLimitBurst),
	)

	return &App{
		apiConfig: apiCfg,
		handler:   handler,
		router:    router,
		logger:    logger,
		server:    NewServer(cfg, router),
	}
}

// NewServer creates and configures an HTTP server from the provided configuration.
func NewServer(cfg config.Config, handler http.Handler) *http.Server {
	addr := cfg.Port
	if !strings.Contains(addr, ":") {
		addr = ":" + addr
	}

	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
	}
}

// Start starts the HTTP server in a goroutine and logs the listening address
// together with the settings resolved at startup.
func (a *App) Start() {
	settings := a.apiConfig.Snapshot()
	a.logger.Info("server listening",
		zap.String("addr", a.server.Addr),
		zap.String("mode", settings.Mode),
		zap.Bool("production", settings.IsProduction()),
		zap.String("base_url", settings.BaseURL),
		zap.String("request_base", settings.RequestBase()),
		zap.Bool("request_proxy", settings.IsRequestProxy),
	)

	go func() {
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.logger.Fatal("server error", zap.Error(err))
		}
	}()
}

// Server returns the HTTP server instance for shutdown handling.
func (a *App) Server() *http.Server {
	return a.server
}

// Handler returns the root HTTP handler.
func (a *App) Handler() http.Handler {
	return a.router
}
