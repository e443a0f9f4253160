package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/estatecore/backend/internal/bootstrap"
	"github.com/estatecore/backend/internal/config"
)

// Server holds the state for the HTTP server
type Server struct {
	config *config.Config
	router *gin.Engine
	dbPool *pgxpool.Pool
	deps   *bootstrap.Dependencies
	logger zerolog.Logger
	http   *http.Server
}

// NewServer creates and initializes a new server instance
func NewServer() (*Server, error) {
	cfg, lgr, err := bootstrap.LoadConfigAndSetupLogger()
	if err != nil {
		return nil, fmt.Errorf("failed to load config or setup logger: %w", err)
	}

	dbPool, err := bootstrap.SetupDatabase(cfg, lgr)
	if err != nil {
		return nil, fmt.Errorf("failed to setup database: %w", err)
	}

	deps, err := bootstrap.BuildDependencies(cfg, dbPool, lgr)
	if err != nil {
		dbPool.Close()
		return nil, fmt.Errorf("failed to setup dependencies: %w", err)
	}

	router := bootstrap.SetupRouter(cfg, deps, lgr)

	return &Server{
		config: cfg,
		router: router,
		dbPool: dbPool,
		deps:   deps,
		logger: lgr,
	}, nil
}

// Run starts the HTTP server and the background workers, then blocks until
// a shutdown signal or a fatal server error.
func (s *Server) Run() error {
	s.deps.Scheduler.Start()

	s.http = &http.Server{
		Addr:         ":" + s.config.Server.Port,
		Handler:      s.router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info().Str("addr", s.http.Addr).Msg("HTTP server listening")
		serverErrors <- s.http.ListenAndServe()
	}()

	osSignals := make(chan os.Signal, 1)
	signal.Notify(osSignals, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("error starting server: %w", err)
		}
	case sig := <-osSignals:
		s.logger.Info().Str("signal", sig.String()).Msg("Received OS signal, initiating shutdown")
	}

	return s.Shutdown(context.Background())
}

// Shutdown gracefully stops the server and closes resources. The email
// dispatcher is drained before the database pool closes so queued
// notifications still go out.
func (s *Server) Shutdown(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()

	shutdownError := false

	if s.http != nil {
		s.logger.Info().Msg("Shutting down HTTP server")
		if err := s.http.Shutdown(ctx); err != nil {
			s.logger.Error().Err(err).Msg("HTTP server shutdown error")
			shutdownError = true
		}
	}

	if s.deps.Scheduler != nil {
		s.deps.Scheduler.Stop()
	}

	if s.deps.Dispatcher != nil {
		s.logger.Info().Msg("Draining email queue")
		s.deps.Dispatcher.Close()
	}

	if s.deps.ListingCache != nil {
		if err := s.deps.ListingCache.Close(); err != nil {
			s.logger.Error().Err(err).Msg("Redis close error")
			shutdownError = true
		}
	}

	if s.dbPool != nil {
		s.logger.Info().Msg("Closing database connection pool")
		s.dbPool.Close()
	}

	s.logger.Info().Msg("Server shutdown complete")
	if shutdownError {
		return errors.New("server shutdown completed with errors")
	}
	return nil
}
