package source

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"eventsphere/internal/domain/event"
)

// Ticketmaster pulls events from the Discovery API. It is the most
// authoritative source, so its events carry isVerified. When no API key is
// configured the adapter degrades to the deterministic generator: still a
// successful fetch, with an informational note recorded for transparency.
type Ticketmaster struct {
	client  *http.Client
	apiKey  string
	apiBase string
	now     func() time.Time
}

func NewTicketmaster(apiKey string) *Ticketmaster {
	return &Ticketmaster{
		client: &http.Client{
			Timeout: 25 * time.Second,
		},
		apiKey:  strings.TrimSpace(apiKey),
		apiBase: "https://app.ticketmaster.com",
		now:     time.Now,
	}
}

func (s *Ticketmaster) ID() string      { return "ticketmaster" }
func (s *Ticketmaster) Name() string    { return "Ticketmaster" }
func (s *Ticketmaster) BaseURL() string { return s.apiBase }
func (s *Ticketmaster) RateLimit() int  { return 5 }
func (s *Ticketmaster) Verified() bool  { return true }

type tmResponse struct {
	Embedded struct {
		Events []tmEvent `json:"events"`
	} `json:"_embedded"`
}

type tmEvent struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	URL  string `json:"url"`
	Info string `json:"info"`
	Dates struct {
		Start struct {
			LocalDate string `json:"localDate"`
			LocalTime string `json:"localTime"`
		} `json:"start"`
	} `json:"dates"`
	Images []struct {
		URL string `json:"url"`
	} `json:"images"`
	PriceRanges []struct {
		Min float64 `json:"min"`
	} `json:"priceRanges"`
	Classifications []struct {
		Segment struct {
			Name string `json:"name"`
		} `json:"segment"`
	} `json:"classifications"`
	Embedded struct {
		Venues []struct {
			Name string `json:"name"`
			City struct {
				Name string `json:"name"`
			} `json:"city"`
			State struct {
				Name string `json:"name"`
			} `json:"state"`
			Address struct {
				Line1 string `json:"line1"`
			} `json:"address"`
			Location struct {
				Latitude  string `json:"latitude"`
				Longitude string `json:"longitude"`
			} `json:"location"`
		} `json:"venues"`
	} `json:"_embedded"`
}

func (s *Ticketmaster) Fetch(ctx context.Context) ([]event.RawRecord, []string, error) {
	if s == nil {
		return nil, nil, fmt.Errorf("nil adapter")
	}
	if s.apiKey == "" {
		recs := generateRecords(s.ID(), s.now().UTC(), 10)
		return recs, []string{"ticketmaster api key not configured, serving generated sample data"}, nil
	}

	q := url.Values{}
	q.Set("apikey", s.apiKey)
	q.Set("countryCode", "IN")
	q.Set("size", "50")
	endpoint := fmt.Sprintf("%s/discovery/v2/events.json?%s", strings.TrimRight(s.apiBase, "/"), q.Encode())

	body, err := httpGetWithRetry(ctx, s.client, endpoint, 3)
	if err != nil {
		return nil, nil, fmt.Errorf("ticketmaster fetch: %w", err)
	}

	var out tmResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, nil, fmt.Errorf("ticketmaster decode: %w", err)
	}

	recs := make([]event.RawRecord, 0, len(out.Embedded.Events))
	for _, it := range out.Embedded.Events {
		if strings.TrimSpace(it.ID) == "" {
			continue
		}
		recs = append(recs, convertTicketmaster(it))
	}
	return recs, nil, nil
}

// convertTicketmaster maps the provider wire shape onto the one internal raw
// record shape at the boundary, so the normalizer never sees provider types.
func convertTicketmaster(it tmEvent) event.RawRecord {
	rec := event.RawRecord{
		ID:          it.ID,
		Title:       strings.TrimSpace(it.Name),
		Description: strings.TrimSpace(it.Info),
		Date:        it.Dates.Start.LocalDate,
		Time:        it.Dates.Start.LocalTime,
		SourceURL:   strings.TrimSpace(it.URL),
	}
	if len(it.Images) > 0 {
		rec.ImageURL = strings.TrimSpace(it.Images[0].URL)
	}
	if len(it.PriceRanges) > 0 {
		rec.Price = fmt.Sprintf("%g", it.PriceRanges[0].Min)
	}
	if len(it.Classifications) > 0 {
		rec.Category = strings.TrimSpace(it.Classifications[0].Segment.Name)
	}
	if len(it.Embedded.Venues) > 0 {
		v := it.Embedded.Venues[0]
		rec.Venue = strings.TrimSpace(v.Name)
		rec.Address = strings.TrimSpace(v.Address.Line1)
		rec.City = strings.TrimSpace(v.City.Name)
		rec.State = strings.TrimSpace(v.State.Name)
		if lat := parseCoord(v.Location.Latitude); lat != nil {
			if lon := parseCoord(v.Location.Longitude); lon != nil {
				rec.Latitude = lat
				rec.Longitude = lon
			}
		}
	}
	return rec
}

func parseCoord(s string) *float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &v
}
