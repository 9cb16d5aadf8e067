// Package bootstrap handles application initialization and lifecycle
// management for the goleads service.
package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jonesrussell/goleads/internal/logger"
)

const (
	version         = "dev"
	shutdownTimeout = 15 * time.Second
)

// Start initializes and runs the service until interrupted.
func Start() error {
	// Phase 1: config and logger
	cfg, err := LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	log, err := CreateLogger(cfg)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	// Phase 2: database
	db, err := SetupDatabase(cfg, log)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer func() {
		if closeErr := db.Close(); closeErr != nil {
			log.Error("Failed to close database", logger.Error(closeErr))
		}
	}()

	// Phase 3: optional redis event publisher
	publisher := SetupEventPublisher(cfg, log)

	// Phase 4: domain wiring (catalog, inference, scraper, reconciler,
	// notifier, scheduler, HTTP router)
	app := BuildApplication(cfg, db, publisher, log)

	// Phase 5: scheduler
	if cfg.Scheduler.Enabled {
		if schedErr := app.Scheduler.Start(cfg.Scheduler); schedErr != nil {
			return fmt.Errorf("failed to start scheduler: %w", schedErr)
		}
		defer app.Scheduler.Stop()
	} else {
		log.Info("Crawl scheduler disabled by configuration")
	}

	// Phase 6: HTTP server with graceful shutdown
	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      app.Router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("Starting HTTP server",
			logger.String("host", cfg.Server.Host),
			logger.Int("port", cfg.Server.Port),
			logger.String("version", version),
		)
		if serveErr := server.ListenAndServe(); serveErr != nil && !errors.Is(serveErr, http.ErrServerClosed) {
			errCh <- serveErr
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case serveErr := <-errCh:
		return fmt.Errorf("server error: %w", serveErr)
	case sig := <-quit:
		log.Info("Shutting down", logger.String("signal", sig.String()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if shutdownErr := server.Shutdown(ctx); shutdownErr != nil {
		return fmt.Errorf("server shutdown: %w", shutdownErr)
	}

	log.Info("Server exited")
	return nil
}
