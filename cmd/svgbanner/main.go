package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"

	"svgbanner/internal/config"
	"svgbanner/internal/http/server"
	"svgbanner/internal/infra/icons"
	"svgbanner/internal/infra/logging"
)

func main() {
	cfg := config.Load()
	logging.InitLogger(
		cfg.Logger.File,
		cfg.Logger.MaxSizeMB,
		cfg.Logger.MaxBackups,
		cfg.Logger.MaxAgeDays,
		cfg.Logger.Compress,
		cfg.Logger.Level,
	)

	repo := icons.New(cfg.Icons.Dir, icons.WithMaxBytes(cfg.Icons.MaxBytes))
	if !repo.Ready() {
		logging.Warn("Icon directory not found, banners will fail until it exists", "dir", repo.Dir())
	}

	app := server.New(server.Deps{Config: cfg, Icons: repo})

	idleConnsClosed := make(chan struct{})
	startServer(app, cfg, idleConnsClosed)
	<-idleConnsClosed
}

// startServer starts the Fiber app and blocks until a shutdown signal arrives
// or the listener fails.
func startServer(app *fiber.App, cfg config.Config, idleConnsClosed chan struct{}) {
	listenErr := make(chan error, 1)
	go func() {
		logging.Info("Server listening", "addr", cfg.Addr(), "icons_dir", cfg.Icons.Dir)
		if err := app.Listen(cfg.Addr()); err != nil {
			listenErr <- err
		}
	}()

	// Listen for OS termination signals
	sigint := make(chan os.Signal, 1)
	signal.Notify(sigint, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigint)

	select {
	case <-sigint:
		logging.Warn("Shutdown signal received, closing server...")
	case err := <-listenErr:
		logging.Error("Server error", "error", err)
	}

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		logging.Error("Server forced to shutdown", "error", err)
	}

	close(idleConnsClosed)
	logging.Info("Server stopped cleanly")
}
