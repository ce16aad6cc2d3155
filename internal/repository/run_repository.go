package repository

import (
	"context"
	"encoding/json"

	"eventsphere/internal/aggregator"
	"eventsphere/internal/database"
	"eventsphere/internal/domain/event"

	"github.com/google/uuid"
)

type PostgresRunRepository struct {
	db database.DB
}

func NewPostgresRunRepository(db database.DB) *PostgresRunRepository {
	return &PostgresRunRepository{db: db}
}

var _ aggregator.RunLog = (*PostgresRunRepository)(nil)

func (r *PostgresRunRepository) Insert(ctx context.Context, res event.ScrapeResult) error {
	errs, err := json.Marshal(res.Errors)
	if err != nil {
		return err
	}
	_, err = r.db.Exec(ctx,
		`INSERT INTO scrape_results (id, source, success, events_found, events_added, events_updated, errors, duration_ms, timestamp)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)`,
		uuid.New(), res.Source, res.Success, res.EventsFound, res.EventsAdded, res.EventsUpdated, errs, res.DurationMS, res.Timestamp,
	)
	return err
}

// LatestPerSource returns the most recent run-log row for each source.
func (r *PostgresRunRepository) LatestPerSource(ctx context.Context) ([]event.ScrapeResult, error) {
	rows, err := r.db.Query(ctx,
		`SELECT DISTINCT ON (source) source, success, events_found, events_added, events_updated, errors, duration_ms, timestamp
		 FROM scrape_results
		 ORDER BY source, timestamp DESC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectResults(rows)
}

func (r *PostgresRunRepository) ListRecent(ctx context.Context, limit int) ([]event.ScrapeResult, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	rows, err := r.db.Query(ctx,
		`SELECT source, success, events_found, events_added, events_updated, errors, duration_ms, timestamp
		 FROM scrape_results
		 ORDER BY timestamp DESC
		 LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectResults(rows)
}

func collectResults(rows database.Rows) ([]event.ScrapeResult, error) {
	out := make([]event.ScrapeResult, 0)
	for rows.Next() {
		var res event.ScrapeResult
		var errs []byte
		if err := rows.Scan(&res.Source, &res.Success, &res.EventsFound, &res.EventsAdded, &res.EventsUpdated, &errs, &res.DurationMS, &res.Timestamp); err != nil {
			return nil, err
		}
		if len(errs) > 0 {
			if err := json.Unmarshal(errs, &res.Errors); err != nil {
				return nil, err
			}
		}
		if res.Errors == nil {
			res.Errors = []string{}
		}
		out = append(out, res)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
