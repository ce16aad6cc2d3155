package repository

import (
	"context"
	"time"

	"eventsphere/internal/aggregator"
	"eventsphere/internal/database"
	"eventsphere/internal/domain/event"
)

type PostgresSourceRepository struct {
	db database.DB
}

func NewPostgresSourceRepository(db database.DB) *PostgresSourceRepository {
	return &PostgresSourceRepository{db: db}
}

var _ aggregator.SourceRegistry = (*PostgresSourceRepository)(nil)

// Upsert registers a source, refreshing its descriptive fields. Stats and the
// enabled flag are owned by other paths and left untouched on conflict.
func (r *PostgresSourceRepository) Upsert(ctx context.Context, src event.Source) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO event_sources (id, name, base_url, enabled, rate_limit)
		 VALUES ($1, $2, $3, $4, $5)
		 ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			base_url = EXCLUDED.base_url,
			rate_limit = EXCLUDED.rate_limit`,
		src.ID, src.Name, src.BaseURL, src.Enabled, src.RateLimit,
	)
	return err
}

func (r *PostgresSourceRepository) UpdateStats(ctx context.Context, id string, lastScrape time.Time, addedDelta int, successRate int) error {
	_, err := r.db.Exec(ctx,
		`UPDATE event_sources SET
			last_scrape_time = $2,
			total_events = total_events + $3,
			success_rate = $4
		 WHERE id = $1`,
		id, lastScrape, addedDelta, successRate,
	)
	return err
}

func (r *PostgresSourceRepository) List(ctx context.Context) ([]event.Source, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, name, base_url, enabled, rate_limit, last_scrape_time, total_events, success_rate
		 FROM event_sources ORDER BY id`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]event.Source, 0)
	for rows.Next() {
		var s event.Source
		if err := rows.Scan(&s.ID, &s.Name, &s.BaseURL, &s.Enabled, &s.RateLimit, &s.LastScrapeTime, &s.TotalEvents, &s.SuccessRate); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
