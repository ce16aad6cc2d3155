package main

import (
	"context"
	"flag"
	"log"
	"os/signal"
	"syscall"
	"time"

	"eventsphere/internal/app"
	"eventsphere/internal/config"
	"eventsphere/internal/database/migration"
)

func main() {
	timeout := flag.Duration("timeout", 10*time.Minute, "overall run timeout")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	c, err := app.NewContainer(cfg, log.Default())
	if err != nil {
		log.Fatalf("failed to init container: %v", err)
	}
	defer func() {
		_ = c.Close()
	}()

	migCtx, migCancel := context.WithTimeout(context.Background(), 2*time.Minute)
	r := migration.Runner{Dir: "migrations"}
	if err := r.Run(migCtx, c.DB.SQLDB()); err != nil {
		migCancel()
		log.Fatalf("migration failed: %v", err)
	}
	migCancel()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, *timeout)
	defer cancel()

	pipeline := app.BuildPipeline(cfg, c.DB, c.Logger)
	results, err := pipeline.Run(ctx)
	if err != nil && len(results) == 0 {
		log.Fatalf("aggregation run failed: %v", err)
	}
	if err != nil {
		log.Printf("aggregation run stopped early: %v", err)
	}

	var found, added, updated int
	for _, res := range results {
		found += res.EventsFound
		added += res.EventsAdded
		updated += res.EventsUpdated
		log.Printf(
			"source=%s success=%t found=%d added=%d updated=%d duration_ms=%d errors=%d",
			res.Source, res.Success, res.EventsFound, res.EventsAdded, res.EventsUpdated, res.DurationMS, len(res.Errors),
		)
	}
	log.Printf("run complete sources=%d found=%d added=%d updated=%d", len(results), found, added, updated)
}
