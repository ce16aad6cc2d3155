package aggregator

import (
	"context"
	"time"

	"eventsphere/internal/domain/event"
)

// FuzzyQuery describes the store's same-event search: title prefix as a
// case-insensitive substring, exact date, and venue-prefix OR city.
type FuzzyQuery struct {
	TitlePrefix string
	Date        string
	VenuePrefix string
	City        string
}

// EventStore is the queryable store the merge engine writes through.
// GetByID and FindMatch return nil without error when nothing matches.
type EventStore interface {
	GetByID(ctx context.Context, id string) (*event.Canonical, error)
	FindMatch(ctx context.Context, q FuzzyQuery) (*event.Canonical, error)
	Insert(ctx context.Context, ev event.Canonical) error
	Update(ctx context.Context, ev event.Canonical) error
}

// SourceRegistry persists the per-source registry rows.
type SourceRegistry interface {
	Upsert(ctx context.Context, src event.Source) error
	UpdateStats(ctx context.Context, id string, lastScrape time.Time, addedDelta int, successRate int) error
}

// RunLog is the append-only run history.
type RunLog interface {
	Insert(ctx context.Context, res event.ScrapeResult) error
}

// Pinger is the store connectivity probe checked before a run starts.
type Pinger interface {
	Ping(ctx context.Context) error
}
