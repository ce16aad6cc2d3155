package v1

import (
	"log"

	"eventsphere/internal/aggregator"
	"eventsphere/internal/config"
	"eventsphere/internal/database"
	"eventsphere/internal/delivery/http/handler"
	"eventsphere/internal/delivery/http/middleware"
	"eventsphere/internal/infrastructure/cache"
	"eventsphere/internal/pkg/jwt"
	"eventsphere/internal/repository"
	"eventsphere/internal/usecase"
	"eventsphere/internal/ws"

	"github.com/gofiber/fiber/v3"
)

type Deps struct {
	DB       database.DB
	Cache    *cache.Redis
	Hub      *ws.Hub
	Pipeline *aggregator.Pipeline
	Logger   *log.Logger
}

func Register(r fiber.Router, cfg config.Config, deps Deps) {
	if r == nil {
		return
	}

	verifier := jwt.NewHMACVerifier(cfg.JWT.AdminSecret)
	adminMw := middleware.NewAdminMiddleware(verifier)

	eventRepo := repository.NewPostgresEventRepository(deps.DB)
	sourceRepo := repository.NewPostgresSourceRepository(deps.DB)
	runRepo := repository.NewPostgresRunRepository(deps.DB)

	eventUC := usecase.NewEventUsecase(eventRepo, deps.Cache, deps.Logger)
	aggUC := usecase.NewAggregationUsecase(
		deps.Pipeline,
		eventRepo,
		runRepo,
		sourceRepo,
		deps.DB,
		deps.Cache,
		cfg.Aggregation.RetentionDays,
		deps.Logger,
	)

	eventHandler := handler.NewEventHandler(eventUC)
	aggHandler := handler.NewAggregationHandler(aggUC)
	wsHandler := ws.NewHandler(deps.Hub, deps.Logger)

	eventsGroup := r.Group("/events")
	eventsGroup.Get("/", eventHandler.HandleListEvents)
	eventsGroup.Get("/:id", eventHandler.HandleGetEvent)

	protected := r.Group("/aggregation", adminMw.Middleware())
	protected.Post("/run", aggHandler.HandleRun)
	protected.Get("/status", aggHandler.HandleStatus)
	protected.Post("/purge", aggHandler.HandlePurge)
	protected.Get("/ws", wsHandler.HandleAggregationWS)
}
