package event

import (
	"time"
)

// RawRecord is the provider-shaped event a source adapter emits. Adapters
// convert their own wire formats into this one shape so the normalizer never
// branches on source type. Raw records live for a single run and are never
// persisted.
type RawRecord struct {
	ID          string
	Title       string
	Description string

	Date string
	Time string

	Venue   string
	Address string
	City    string
	State   string

	Price  string
	IsFree *bool

	ImageURL  string
	SourceURL string
	Organizer string
	Category  string
	Tags      []string

	Latitude  *float64
	Longitude *float64
}

// Canonical is the normalized, scored event shape persisted by the merge
// engine. ID is derived as "{sourceID}_{originalID}" and is unique per
// (source, original id) pair; collisions are updates, not new rows.
type Canonical struct {
	ID                  string   `json:"id"`
	Title               string   `json:"title"`
	Description         string   `json:"description"`
	DetailedDescription string   `json:"detailedDescription"`
	Date                string   `json:"date"`
	Time                string   `json:"time"`
	VenueName           string   `json:"venueName"`
	VenueAddress        string   `json:"venueAddress"`
	City                string   `json:"city"`
	State               string   `json:"state"`
	ImageURL            string   `json:"imageUrl"`
	Price               float64  `json:"price"`
	IsFree              bool     `json:"isFree"`
	Latitude            *float64 `json:"latitude,omitempty"`
	Longitude           *float64 `json:"longitude,omitempty"`
	Category            string   `json:"category"`
	Organizer           string   `json:"organizer"`
	Tags                []string `json:"tags"`

	SourceID         string    `json:"sourceId"`
	SourceName       string    `json:"sourceName"`
	SourceURL        string    `json:"sourceUrl"`
	OriginalID       string    `json:"originalId"`
	LastUpdated      time.Time `json:"lastUpdated"`
	IsVerified       bool      `json:"isVerified"`
	AggregationScore int       `json:"aggregationScore"`
}

// Source is a registry row for a third-party provider (or mock generator).
type Source struct {
	ID             string     `json:"id"`
	Name           string     `json:"name"`
	BaseURL        string     `json:"baseUrl"`
	Enabled        bool       `json:"enabled"`
	RateLimit      int        `json:"rateLimit"`
	LastScrapeTime *time.Time `json:"lastScrapeTime,omitempty"`
	TotalEvents    int        `json:"totalEvents"`
	SuccessRate    int        `json:"successRate"`
}

// ScrapeResult is one append-only run-log row per source per pipeline run.
// Never mutated after creation.
type ScrapeResult struct {
	Source        string    `json:"source"`
	Success       bool      `json:"success"`
	EventsFound   int       `json:"eventsFound"`
	EventsAdded   int       `json:"eventsAdded"`
	EventsUpdated int       `json:"eventsUpdated"`
	Errors        []string  `json:"errors"`
	DurationMS    int64     `json:"duration"`
	Timestamp     time.Time `json:"timestamp"`
}

// CategoryCount is an aggregate count grouped by category.
type CategoryCount struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
}

// SourceCount is an aggregate count grouped by source.
type SourceCount struct {
	SourceID string `json:"sourceId"`
	Count    int    `json:"count"`
}
