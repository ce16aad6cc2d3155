package routes

import (
	"eventsphere/internal/config"
	v1 "eventsphere/internal/delivery/http/routes/v1"

	"github.com/gofiber/fiber/v3"
)

func RegisterV1(r fiber.Router, cfg config.Config, deps Deps) {
	if r == nil {
		return
	}

	v1.Register(r, cfg, v1.Deps{
		DB:       deps.DB,
		Cache:    deps.Cache,
		Hub:      deps.Hub,
		Pipeline: deps.Pipeline,
		Logger:   deps.Logger,
	})
}
