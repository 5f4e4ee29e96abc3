// Package server builds the Fiber application serving banners.
package server

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/monitor"

	"svgbanner/internal/banner"
	"svgbanner/internal/config"
	"svgbanner/internal/http/handlers"
	"svgbanner/internal/http/middleware"
	"svgbanner/internal/infra/icons"
	"svgbanner/internal/infra/logging"
)

// Deps holds what the app needs. Icons defaults to a repository over
// Config.Icons.Dir.
type Deps struct {
	Config config.Config
	Icons  *icons.Repository
}

// New creates and configures a new Fiber app instance.
func New(deps Deps) *fiber.App {
	cfg := deps.Config
	repo := deps.Icons
	if repo == nil {
		repo = icons.New(cfg.Icons.Dir, icons.WithMaxBytes(cfg.Icons.MaxBytes))
	}

	app := fiber.New(fiber.Config{
		Prefork:               cfg.Server.Prefork,
		DisableStartupMessage: true,
		ReadTimeout:           cfg.Server.ReadTimeout,
		WriteTimeout:          cfg.Server.WriteTimeout,
		ErrorHandler:          errorHandler,
	})

	middleware.Register(app, cfg, repo.Ready)
	registerRoutes(app, cfg, repo)

	// Anything unmatched is a 404.
	app.Use(func(c *fiber.Ctx) error {
		return fiber.ErrNotFound
	})

	return app
}

func registerRoutes(app *fiber.App, cfg config.Config, repo *icons.Repository) {
	svc := handlers.NewBannerService(banner.NewRenderer(repo), repo)

	app.Get("/banner/:title/:text", svc.HandleBanner)
	app.Get("/list_icons", svc.HandleListIcons)

	if cfg.Server.EnableMonitor {
		app.Get("/ops/monitor", monitor.New(monitor.Config{Title: "svgbanner"}))
	}
}

// errorHandler logs the failure and answers with the bare status code.
func errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	msg := err.Error()

	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
		msg = fe.Message
	}

	kv := []any{"path", c.Path(), "status", code, "message", msg, "request_id", c.GetRespHeader(fiber.HeaderXRequestID)}
	if code >= fiber.StatusInternalServerError {
		logging.Error("Request failed", kv...)
	} else {
		logging.Warn("Request failed", kv...)
	}

	c.Response().ResetBody()
	c.Status(code)
	return nil
}
