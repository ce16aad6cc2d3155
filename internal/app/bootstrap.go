package app

import (
	"fmt"
	"strings"

	"eventsphere/internal/aggregator"
	"eventsphere/internal/config"
	"eventsphere/internal/delivery/http/middleware"
	"eventsphere/internal/delivery/http/routes"
	"eventsphere/internal/ws"

	"github.com/gofiber/fiber/v3"
)

type App struct {
	Fiber     *fiber.App
	Container *Container
}

func New(cfg config.Config, c *Container) *App {
	f := fiber.New(fiber.Config{AppName: cfg.App.AppName})

	registerGlobalMiddleware(f, c)

	pipeline := BuildPipeline(cfg, c.DB, c.Logger, aggregator.WithNotify(ws.NotifySourceCompleted))
	routes.Register(f, cfg, routes.Deps{
		DB:       c.DB,
		Cache:    c.Cache,
		Hub:      c.Hub,
		Pipeline: pipeline,
		Logger:   c.Logger,
	})

	return &App{Fiber: f, Container: c}
}

func Bootstrap(cfg config.Config, c *Container) (*App, func() error, error) {
	app := New(cfg, c)
	return app, c.Close, nil
}

func registerGlobalMiddleware(app *fiber.App, c *Container) {
	if app == nil {
		return
	}

	errMw := middleware.NewErrorMiddleware()
	app.Use(errMw.Middleware())

	accessMw := middleware.NewAccessLogMiddleware(c.Logger)
	app.Use(accessMw.Middleware())
}

func ListenAddr(port string) (string, error) {
	p := strings.TrimSpace(port)
	if p == "" {
		return "", fmt.Errorf("empty HTTP port")
	}
	if strings.HasPrefix(p, ":") {
		return p, nil
	}
	return ":" + p, nil
}
