package seeder

import (
	"context"
	"fmt"

	"eventsphere/internal/database"
)

// CuratedEventsSeeder inserts the editorially curated launch events. Curated
// rows carry an empty source_id, which keeps them out of the retention purge.
type CuratedEventsSeeder struct{}

func (CuratedEventsSeeder) Name() string { return "curated_events" }

func (CuratedEventsSeeder) Run(ctx context.Context, db database.DB) error {
	if err := EnsureTableColumns(ctx, db, "events", "id", "title", "date", "city", "category", "source_id"); err != nil {
		return err
	}

	tx, err := db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(context.Background())
	}()

	items := []struct {
		ID       string
		Title    string
		Desc     string
		Date     string
		Time     string
		Venue    string
		City     string
		State    string
		Category string
		Price    float64
	}{
		{
			ID: "curated-sunburn-goa", Title: "Sunburn Festival Goa",
			Desc:  "India's biggest electronic dance music festival returns to the Goa coastline.",
			Date:  "2026-12-28", Time: "16:00", Venue: "Vagator Beach",
			City: "Goa", State: "Goa", Category: "music", Price: 3500,
		},
		{
			ID: "curated-comic-con-mumbai", Title: "Comic Con Mumbai",
			Desc:  "Comics, cosplay, gaming and pop culture under one roof.",
			Date:  "2026-11-14", Time: "11:00", Venue: "Jio World Convention Centre",
			City: "Mumbai", State: "Maharashtra", Category: "arts", Price: 899,
		},
		{
			ID: "curated-bengaluru-tech-summit", Title: "Bengaluru Tech Summit",
			Desc:  "Asia's largest technology summit with keynotes, exhibitions and startup showcases.",
			Date:  "2026-11-19", Time: "09:00", Venue: "Bangalore Palace",
			City: "Bengaluru", State: "Karnataka", Category: "technology", Price: 0,
		},
	}

	for _, it := range items {
		_, err := tx.Exec(
			ctx,
			`INSERT INTO events (id, title, description, date, time, venue_name, city, state, category, price, is_free, organizer)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, 'EventSphere Editorial')
			 ON CONFLICT (id) DO NOTHING`,
			it.ID, it.Title, it.Desc, it.Date, it.Time, it.Venue, it.City, it.State, it.Category, it.Price, it.Price == 0,
		)
		if err != nil {
			return err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}
