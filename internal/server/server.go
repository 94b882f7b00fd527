// Package server provides the HTTP server of the formsync API: read access
// to the imported templates and a remote-controlled import wizard.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/agentstation/formsync/internal/server/handlers"
	"github.com/agentstation/formsync/pkg/constants"
	"github.com/agentstation/formsync/pkg/logging"
	"github.com/agentstation/formsync/pkg/records"
	"github.com/agentstation/formsync/pkg/wizard"
)

// Server holds the HTTP server state and dependencies.
type Server struct {
	handlers  *handlers.Handlers
	logger    *zerolog.Logger
	config    Config
	startTime time.Time
}

// New creates a new server instance with the given configuration.
func New(store records.Store, fetcher wizard.Fetcher, logger *zerolog.Logger, cfg Config) *Server {
	if logger == nil {
		logger = logging.Default()
	}
	cfg = cfg.withDefaults()
	sessions := handlers.NewSessionsWithTTL(cfg.SessionTTL, constants.WizardSessionCleanup)
	return &Server{
		handlers:  handlers.New(store, fetcher, sessions, logger),
		logger:    logger,
		config:    cfg,
		startTime: time.Now(),
	}
}

// Handler returns the configured http.Handler with middleware chain applied.
func (s *Server) Handler() http.Handler {
	return s.setupRouter()
}

// Config returns the effective configuration.
func (s *Server) Config() Config {
	return s.config
}

// Sessions returns the wizard sessions started through the API.
func (s *Server) Sessions() *handlers.Sessions {
	return s.handlers.Sessions()
}

// StartTime returns the server start time for uptime calculations.
func (s *Server) StartTime() time.Time {
	return s.startTime
}

// ListenAndServe listens on the configured address and serves until ctx is
// done, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.config.Addr)
	if err != nil {
		return fmt.Errorf("listening on %s: %w", s.config.Addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln until ctx is done. In-flight requests get
// ShutdownTimeout to finish.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:      s.Handler(),
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
		IdleTimeout:  s.config.IdleTimeout,
		BaseContext: func(net.Listener) context.Context {
			return logging.WithLogger(context.Background(), s.logger)
		},
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info().
			Str("addr", ln.Addr().String()).
			Str("prefix", s.config.PathPrefix).
			Msg("HTTP server listening")
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serving HTTP: %w", err)
	case <-ctx.Done():
	}

	s.logger.Info().Msg("Shutting down HTTP server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.config.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		s.logger.Warn().Err(err).Msg("HTTP server shutdown timed out")
		return fmt.Errorf("shutting down HTTP server: %w", err)
	}

	s.logger.Info().Msg("HTTP server stopped")
	return nil
}
