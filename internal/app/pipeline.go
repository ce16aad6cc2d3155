package app

import (
	"log"

	"eventsphere/internal/aggregator"
	"eventsphere/internal/config"
	"eventsphere/internal/database"
	"eventsphere/internal/repository"
	"eventsphere/internal/source"
)

// BuildPipeline assembles the aggregation pipeline from the configured source
// list. Unknown source ids are skipped with a log line rather than failing
// the whole run.
func BuildPipeline(cfg config.Config, db database.DB, logger *log.Logger, opts ...aggregator.PipelineOption) *aggregator.Pipeline {
	if logger == nil {
		logger = log.Default()
	}

	adapters := make([]aggregator.SourceAdapter, 0, len(cfg.Aggregation.EnabledSources))
	for _, id := range cfg.Aggregation.EnabledSources {
		switch id {
		case "ticketmaster":
			adapters = append(adapters, source.NewTicketmaster(cfg.Aggregation.TicketmasterAPIKey))
		case "insider":
			adapters = append(adapters, source.NewInsider(cfg.Aggregation.InsiderBaseURL))
		case "bookmyshow":
			adapters = append(adapters, source.NewBookMyShow())
		default:
			logger.Printf("pipeline=aggregation status=unknown_source source=%s", id)
		}
	}

	return aggregator.NewPipeline(
		adapters,
		repository.NewPostgresEventRepository(db),
		repository.NewPostgresSourceRepository(db),
		repository.NewPostgresRunRepository(db),
		db,
		cfg.Aggregation.SourceDelay,
		logger,
		opts...,
	)
}
