package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"eventsphere/internal/aggregator"
	"eventsphere/internal/database"
	"eventsphere/internal/domain/event"

	"github.com/jackc/pgx/v5"
)

const eventColumns = `id, title, description, detailed_description, date, time,
	venue_name, venue_address, city, state, image_url, price, is_free,
	latitude, longitude, category, organizer, tags,
	source_id, source_name, source_url, original_id, last_updated, is_verified, aggregation_score`

type EventFilter struct {
	City     string
	Category string
	Date     string
	Limit    int
	Offset   int
}

type PostgresEventRepository struct {
	db database.DB
}

func NewPostgresEventRepository(db database.DB) *PostgresEventRepository {
	return &PostgresEventRepository{db: db}
}

var _ aggregator.EventStore = (*PostgresEventRepository)(nil)

func (r *PostgresEventRepository) GetByID(ctx context.Context, id string) (*event.Canonical, error) {
	row := r.db.QueryRow(ctx, `SELECT `+eventColumns+` FROM events WHERE id = $1`, id)
	ev, err := scanEvent(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) || errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return ev, nil
}

// FindMatch is the fuzzy same-event lookup: the title prefix must appear in
// the stored title (case-insensitive), dates must be equal, and either the
// venue's first word appears in the stored venue or the city matches.
func (r *PostgresEventRepository) FindMatch(ctx context.Context, q aggregator.FuzzyQuery) (*event.Canonical, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+eventColumns+` FROM events
		 WHERE date = $1
		   AND position($2 in lower(title)) > 0
		   AND (($3 <> '' AND position($3 in lower(venue_name)) > 0)
		     OR ($4 <> '' AND lower(city) = lower($4)))
		 LIMIT 1`,
		q.Date, q.TitlePrefix, q.VenuePrefix, q.City,
	)
	ev, err := scanEvent(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) || errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return ev, nil
}

func (r *PostgresEventRepository) Insert(ctx context.Context, ev event.Canonical) error {
	tags, err := json.Marshal(ev.Tags)
	if err != nil {
		return err
	}
	_, err = r.db.Exec(ctx,
		`INSERT INTO events (`+eventColumns+`)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20,$21,$22,$23,$24,$25)`,
		ev.ID, ev.Title, ev.Description, ev.DetailedDescription, ev.Date, ev.Time,
		ev.VenueName, ev.VenueAddress, ev.City, ev.State, ev.ImageURL, ev.Price, ev.IsFree,
		ev.Latitude, ev.Longitude, ev.Category, ev.Organizer, tags,
		ev.SourceID, ev.SourceName, ev.SourceURL, ev.OriginalID, ev.LastUpdated, ev.IsVerified, ev.AggregationScore,
	)
	return err
}

func (r *PostgresEventRepository) Update(ctx context.Context, ev event.Canonical) error {
	tags, err := json.Marshal(ev.Tags)
	if err != nil {
		return err
	}
	_, err = r.db.Exec(ctx,
		`UPDATE events SET
			title = $2, description = $3, detailed_description = $4, date = $5, time = $6,
			venue_name = $7, venue_address = $8, city = $9, state = $10, image_url = $11,
			price = $12, is_free = $13, latitude = $14, longitude = $15, category = $16,
			organizer = $17, tags = $18, source_id = $19, source_name = $20, source_url = $21,
			original_id = $22, last_updated = $23, is_verified = $24, aggregation_score = $25
		 WHERE id = $1`,
		ev.ID, ev.Title, ev.Description, ev.DetailedDescription, ev.Date, ev.Time,
		ev.VenueName, ev.VenueAddress, ev.City, ev.State, ev.ImageURL, ev.Price, ev.IsFree,
		ev.Latitude, ev.Longitude, ev.Category, ev.Organizer, tags,
		ev.SourceID, ev.SourceName, ev.SourceURL, ev.OriginalID, ev.LastUpdated, ev.IsVerified, ev.AggregationScore,
	)
	return err
}

func (r *PostgresEventRepository) ListEvents(ctx context.Context, f EventFilter) ([]event.Canonical, error) {
	limit := f.Limit
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	offset := f.Offset
	if offset < 0 {
		offset = 0
	}

	rows, err := r.db.Query(ctx,
		`SELECT `+eventColumns+` FROM events
		 WHERE ($1 = '' OR lower(city) = lower($1))
		   AND ($2 = '' OR category = $2)
		   AND ($3 = '' OR date = $3)
		 ORDER BY date, time, id
		 LIMIT $4 OFFSET $5`,
		f.City, f.Category, f.Date, limit, offset,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]event.Canonical, 0)
	for rows.Next() {
		ev, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *ev)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresEventRepository) CountEvents(ctx context.Context) (int, error) {
	var n int
	row := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM events`)
	if err := row.Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

func (r *PostgresEventRepository) CountBySource(ctx context.Context) ([]event.SourceCount, error) {
	rows, err := r.db.Query(ctx, `SELECT source_id, COUNT(*) FROM events GROUP BY source_id ORDER BY source_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]event.SourceCount, 0)
	for rows.Next() {
		var c event.SourceCount
		if err := rows.Scan(&c.SourceID, &c.Count); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresEventRepository) CountByCategory(ctx context.Context) ([]event.CategoryCount, error) {
	rows, err := r.db.Query(ctx, `SELECT category, COUNT(*) FROM events GROUP BY category ORDER BY category`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]event.CategoryCount, 0)
	for rows.Next() {
		var c event.CategoryCount
		if err := rows.Scan(&c.Category, &c.Count); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// PurgeOlderThan removes past-dated pipeline events. Curated rows (no source
// id) are never purged.
func (r *PostgresEventRepository) PurgeOlderThan(ctx context.Context, date string) (int64, error) {
	return r.db.Exec(ctx, `DELETE FROM events WHERE date < $1 AND source_id <> ''`, date)
}

type scanner interface {
	Scan(dest ...any) error
}

func scanEvent(s scanner) (*event.Canonical, error) {
	var ev event.Canonical
	var tags []byte
	err := s.Scan(
		&ev.ID, &ev.Title, &ev.Description, &ev.DetailedDescription, &ev.Date, &ev.Time,
		&ev.VenueName, &ev.VenueAddress, &ev.City, &ev.State, &ev.ImageURL, &ev.Price, &ev.IsFree,
		&ev.Latitude, &ev.Longitude, &ev.Category, &ev.Organizer, &tags,
		&ev.SourceID, &ev.SourceName, &ev.SourceURL, &ev.OriginalID, &ev.LastUpdated, &ev.IsVerified, &ev.AggregationScore,
	)
	if err != nil {
		return nil, err
	}
	if len(tags) > 0 {
		if err := json.Unmarshal(tags, &ev.Tags); err != nil {
			return nil, err
		}
	}
	return &ev, nil
}
