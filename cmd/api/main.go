package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"recall-notes-backend/internal/config"
	"recall-notes-backend/internal/di"
	"recall-notes-backend/internal/infrastructure/observability"

	"go.uber.org/zap"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Load configuration
	loader := config.NewLoader(os.Getenv("CONFIG_FILE"))
	cfg, err := loader.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize dependency container
	container, err := di.InitializeContainer(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize container: %v", err)
	}
	logger := container.Logger
	defer func() { _ = logger.Sync() }()

	if cfg.Tracing.Enabled {
		tp, err := observability.InitTracing(ctx, cfg.Tracing.ServiceName, string(cfg.Environment), cfg.Tracing.Endpoint)
		if err != nil {
			logger.Warn("Tracing disabled", zap.Error(err))
		} else {
			defer func() {
				if err := tp.Shutdown(context.Background()); err != nil {
					logger.Error("Tracer shutdown error", zap.Error(err))
				}
			}()
		}
	}

	if loader.Path() != "" && cfg.IsDevelopment() {
		watcher, err := config.NewWatcher(loader, cfg, logger)
		if err != nil {
			logger.Warn("Configuration hot reloading unavailable", zap.Error(err))
		} else {
			watcher.OnChange(container.ApplyConfig)
			defer watcher.Stop()
		}
	}

	srv := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      container.Router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("Starting server",
			zap.String("address", cfg.Server.Address),
			zap.Strings("config_sources", cfg.LoadedFrom),
			zap.String("openfda_url", cfg.OpenFDA.BaseURL),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Wait for interrupt signal or a listener failure
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	select {
	case sig := <-sigChan:
		logger.Info("Shutting down server...", zap.Stringer("signal", sig))
	case err := <-serverErr:
		logger.Error("Server failed", zap.Error(err))
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(ctx, cfg.Server.ShutdownTimeout)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server shutdown error", zap.Error(err))
	}

	logger.Info("Server stopped")
}
