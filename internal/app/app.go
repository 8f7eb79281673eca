// Package app wires configuration, logging, storage, fetching and transport
// into the running HTTP service.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"predstats/internal/config"
	"predstats/internal/fetch"
	"predstats/internal/infrastructure"
	"predstats/internal/report"
	"predstats/internal/store"
	transport "predstats/internal/transport/http"
)

// Application is the assembled service container.
type Application struct {
	Config  *config.Config
	Logger  *slog.Logger
	Store   *store.Store
	Builder *report.Builder
	Server  *http.Server
}

// New loads configuration and builds an application with all collaborators
// wired together.
func New() (*Application, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load configuration: %w", err)
	}
	return NewWithConfig(cfg)
}

// NewWithConfig builds an application from an already-loaded configuration.
func NewWithConfig(cfg *config.Config) (*Application, error) {
	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("initialize logger: %w", err)
	}

	runStore, err := store.Open(cfg.Store.Path, logger)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	fetcher := fetch.NewClient(cfg.Fetch, logger)
	builder := report.NewBuilder(fetcher, cfg.Report, logger)

	router := transport.NewRouter(transport.RouterConfig{
		Service:       builder,
		Runs:          runStore,
		DefaultSource: cfg.Fetch.SourceURL,
		Logger:        logger,
	})

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	return &Application{
		Config:  cfg,
		Logger:  logger,
		Store:   runStore,
		Builder: builder,
		Server:  server,
	}, nil
}

// Run starts the HTTP server and blocks until shutdown completes. SIGINT and
// SIGTERM trigger a graceful shutdown bounded by the configured timeout.
func (a *Application) Run() error {
	errCh := make(chan error, 1)
	go func() {
		a.Logger.Info("server listening",
			slog.String("addr", a.Server.Addr),
			slog.String("version", transport.Version))
		if err := a.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		a.close()
		return fmt.Errorf("server failed: %w", err)
	case sig := <-sigCh:
		a.Logger.Info("shutting down", slog.String("signal", sig.String()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), a.Config.Server.ShutdownTimeout)
	defer cancel()

	if err := a.Server.Shutdown(ctx); err != nil {
		a.close()
		return fmt.Errorf("graceful shutdown: %w", err)
	}

	a.close()
	a.Logger.Info("shutdown complete")
	return nil
}

// close releases the application's resources.
func (a *Application) close() {
	if err := a.Store.Close(); err != nil {
		a.Logger.Error("failed to close store", slog.String("error", err.Error()))
	}
	infrastructure.CloseLogger()
}
