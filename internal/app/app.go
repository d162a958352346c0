package app

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/caffeicsatyam/ocean-pulse-api/internal/config"
	"github.com/caffeicsatyam/ocean-pulse-api/internal/detector"
	"github.com/caffeicsatyam/ocean-pulse-api/internal/events"
	"github.com/caffeicsatyam/ocean-pulse-api/internal/logger"
	"github.com/caffeicsatyam/ocean-pulse-api/internal/routes"
	"github.com/caffeicsatyam/ocean-pulse-api/internal/storage"
)

type App struct {
	config  *config.Config
	logger  *logger.Logger
	storage *storage.Service
	pool    *detector.Pool
	hub     *events.Hub
	janitor *storage.Janitor
}

// New wires the whole service. Any error here must abort startup; there is
// no partial-degraded mode.
func New() (*App, error) {
	cfg := config.Load()
	log := logger.New(cfg.LogDirectory)

	store, err := storage.New(cfg.UploadDirectory, cfg.OutputDirectory)
	if err != nil {
		return nil, err
	}

	pool, err := detector.NewPool(cfg.DetectorWorkers, cfg.ModelPath, cfg.ClassNamesPath, log)
	if err != nil {
		return nil, err
	}

	hub := events.NewHub(log)
	janitor := storage.NewJanitor(
		store,
		time.Duration(cfg.RetentionTTL)*time.Hour,
		time.Duration(cfg.JanitorInterval)*time.Minute,
		log,
	)

	return &App{
		config:  cfg,
		logger:  log,
		storage: store,
		pool:    pool,
		hub:     hub,
		janitor: janitor,
	}, nil
}

// Run starts the background services and the HTTP server, then blocks until
// a shutdown signal arrives.
func (a *App) Run() error {
	go a.hub.Run()
	go a.janitor.Run()

	handler := routes.SetupRoutes(a.storage, a.pool, a.hub, a.config, a.logger)

	// No read/write timeouts: large uploads and long inferences are
	// legitimate. Only idle connections and slow headers are bounded.
	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", a.config.Port),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("Marine debris detection server listening on :%d", a.config.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case <-done:
	}

	a.logger.Info("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		a.logger.Error("Error shutting down HTTP server: %v", err)
		return err
	}

	a.logger.Info("HTTP server gracefully stopped")
	return nil
}

// Close releases the loaded model instances.
func (a *App) Close() {
	a.pool.Close()
}
