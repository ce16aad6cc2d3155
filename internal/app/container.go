package app

import (
	"context"
	"log"
	"time"

	"eventsphere/internal/config"
	"eventsphere/internal/database"
	dbpostgres "eventsphere/internal/database/postgres"
	"eventsphere/internal/infrastructure/cache"
	"eventsphere/internal/ws"
)

type Container struct {
	Config config.Config
	DB     database.DB
	Cache  *cache.Redis
	Hub    *ws.Hub
	Logger *log.Logger
}

func NewContainer(cfg config.Config, logger *log.Logger) (*Container, error) {
	if logger == nil {
		logger = log.Default()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := dbpostgres.Connect(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}

	hub := ws.NewHub(logger)
	go hub.Run()
	ws.SetDefaultHub(hub)

	return &Container{
		Config: cfg,
		DB:     db,
		Cache:  cache.NewRedis(logger),
		Hub:    hub,
		Logger: logger,
	}, nil
}

func (c *Container) Close() error {
	if c == nil {
		return nil
	}
	if c.DB == nil {
		return nil
	}
	return c.DB.Close()
}
