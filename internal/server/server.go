// Package server defines the application container that composes the
// app's shared dependencies and owns the HTTP server lifecycle:
// configuration, logger plus optional New Relic wrapper, database pool,
// translator, the user-error interceptor, and the http.Server.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/text/language"

	"github.com/rvandam/usererr/internal/config"
	"github.com/rvandam/usererr/internal/database"
	"github.com/rvandam/usererr/internal/i18n"
	loggerPkg "github.com/rvandam/usererr/internal/logger"
	"github.com/rvandam/usererr/internal/sqlerr"
)

// Server is the application container that holds shared resources. It
// is not the HTTP server itself; the internal http.Server is configured
// in SetupHTTPServer and started in Start.
type Server struct {
	// Config holds all environment/config values for the app.
	Config *config.Config

	// Logger is the application's main structured logger.
	Logger *zerolog.Logger

	// LoggerService optionally holds the New Relic application instance.
	LoggerService *loggerPkg.LoggerService

	// DB holds the PostgreSQL pool wrapper.
	DB *database.Database

	// Translator renders user-error message keys into localized text.
	Translator *i18n.Translator

	// Interceptor recognizes database-raised user errors and converts
	// them into localized HTTP errors.
	Interceptor *sqlerr.Interceptor

	httpServer *http.Server
}

// New constructs a Server and initializes core dependencies: the
// PostgreSQL pool with optional New Relic tracing, the translator with
// any configured catalog directory, and the user-error interceptor.
// It does not start the HTTP server; that is SetupHTTPServer + Start.
func New(cfg *config.Config, logger *zerolog.Logger, loggerService *loggerPkg.LoggerService) (*Server, error) {
	db, err := database.New(cfg, logger, loggerService)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	translator, err := newTranslator(cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize translator: %w", err)
	}

	interceptor := sqlerr.NewInterceptor(sqlerr.InterceptorConfig{
		Prefix: cfg.UserError.Prefix,
		Codes:  cfg.UserError.Codes,
	}, translator)

	return &Server{
		Config:        cfg,
		Logger:        logger,
		LoggerService: loggerService,
		DB:            db,
		Translator:    translator,
		Interceptor:   interceptor,
	}, nil
}

// newTranslator builds the translator from the built-in catalog, then
// overlays any JSON catalogs found in the configured directory.
func newTranslator(cfg *config.Config, logger *zerolog.Logger) (*i18n.Translator, error) {
	fallback, err := language.Parse(cfg.I18n.DefaultLocale)
	if err != nil {
		return nil, fmt.Errorf("invalid default locale %q: %w", cfg.I18n.DefaultLocale, err)
	}

	translator := i18n.NewDefaultTranslator(fallback)

	if dir := cfg.I18n.CatalogDir; dir != "" {
		if err := translator.LoadDir(dir); err != nil {
			return nil, fmt.Errorf("failed to load catalogs from %s: %w", dir, err)
		}
		logger.Info().Str("dir", dir).Msg("loaded translation catalogs")
	}

	return translator, nil
}

// SetupHTTPServer configures the internal net/http server with the
// given router as handler. Timeouts come from config, in seconds.
func (s *Server) SetupHTTPServer(handler http.Handler) {
	s.httpServer = &http.Server{
		Addr:         ":" + s.Config.Server.Port,
		Handler:      handler,
		ReadTimeout:  time.Duration(s.Config.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(s.Config.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(s.Config.Server.IdleTimeout) * time.Second,
	}
}

// Start runs the HTTP server. It blocks until the server stops or
// errors; graceful shutdown is triggered by calling Shutdown.
func (s *Server) Start() error {
	if s.httpServer == nil {
		return errors.New("HTTP server not initialized")
	}

	s.Logger.Info().
		Str("port", s.Config.Server.Port).
		Str("env", s.Config.Primary.Env).
		Msg("starting server")

	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the HTTP server, waiting for inflight
// requests until the context deadline, then closes the database pool.
func (s *Server) Shutdown(ctx context.Context) error {
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown HTTP server: %w", err)
	}

	if err := s.DB.Close(); err != nil {
		return fmt.Errorf("failed to close database connection: %w", err)
	}

	return nil
}
