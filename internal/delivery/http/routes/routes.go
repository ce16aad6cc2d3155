package routes

import (
	"log"

	"eventsphere/internal/aggregator"
	"eventsphere/internal/config"
	"eventsphere/internal/database"
	"eventsphere/internal/infrastructure/cache"
	"eventsphere/internal/pkg/response"
	"eventsphere/internal/ws"

	"github.com/gofiber/fiber/v3"
)

// Deps carries the shared infrastructure handed down to route groups.
type Deps struct {
	DB       database.DB
	Cache    *cache.Redis
	Hub      *ws.Hub
	Pipeline *aggregator.Pipeline
	Logger   *log.Logger
}

func Register(app *fiber.App, cfg config.Config, deps Deps) {
	if app == nil {
		return
	}

	app.Get("/health", func(c fiber.Ctx) error {
		return response.Success(c, fiber.StatusOK, response.MessageOK, nil)
	})

	api := app.Group("/api")
	RegisterV1(api.Group("/v1"), cfg, deps)
}
