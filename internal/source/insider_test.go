package source

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

const insiderFixture = `<html><body>
<div class="event-card" data-event-id="in-42" data-category="comedy">
	<a href="/event/in-42"><img src="https://img.example.com/in-42.jpg"/></a>
	<h3>Standup Night Live</h3>
	<p class="event-desc">Two hours of standup from the city's best comics.</p>
	<span class="event-date">2026-04-05</span>
	<span class="event-time">20:00</span>
	<span class="event-venue">The Habitat</span>
	<span class="event-city">Mumbai</span>
	<span class="event-price">Rs. 299</span>
</div>
<div class="event-card">
	<h3>Card without an id is skipped</h3>
</div>
</body></html>`

func TestInsider_FetchParsesCards(t *testing.T) {
	var gotPath, gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotUA = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(insiderFixture))
	}))
	defer srv.Close()

	s := NewInsider(srv.URL)
	recs, notes, err := s.Fetch(context.Background())
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if gotPath != "/all-events" {
		t.Fatalf("expected /all-events, got %q", gotPath)
	}
	if gotUA != userAgent {
		t.Fatalf("expected custom user agent, got %q", gotUA)
	}
	if len(notes) != 0 {
		t.Fatalf("expected no notes, got %v", notes)
	}
	if len(recs) != 1 {
		t.Fatalf("expected 1 record (card without id skipped), got %d", len(recs))
	}

	rec := recs[0]
	if rec.ID != "in-42" || rec.Title != "Standup Night Live" {
		t.Fatalf("unexpected identity fields: %+v", rec)
	}
	if rec.Date != "2026-04-05" || rec.Time != "20:00" {
		t.Fatalf("unexpected schedule fields: %+v", rec)
	}
	if rec.Venue != "The Habitat" || rec.City != "Mumbai" {
		t.Fatalf("unexpected venue fields: %+v", rec)
	}
	if rec.Price != "Rs. 299" {
		t.Fatalf("unexpected price %q", rec.Price)
	}
	if rec.Category != "comedy" {
		t.Fatalf("unexpected category %q", rec.Category)
	}
	if rec.ImageURL != "https://img.example.com/in-42.jpg" {
		t.Fatalf("unexpected image %q", rec.ImageURL)
	}
	if !strings.HasPrefix(rec.SourceURL, srv.URL) || !strings.HasSuffix(rec.SourceURL, "/event/in-42") {
		t.Fatalf("expected absolute source url, got %q", rec.SourceURL)
	}
}

func TestInsider_FetchUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	s := NewInsider(srv.URL)
	_, _, err := s.Fetch(context.Background())
	if err == nil {
		t.Fatalf("expected error from failing upstream")
	}
}

func TestInsider_DefaultBaseURL(t *testing.T) {
	s := NewInsider("")
	if s.BaseURL() != "https://insider.in" {
		t.Fatalf("unexpected default base url %q", s.BaseURL())
	}
	if s.allowedHost != "insider.in" {
		t.Fatalf("unexpected allowed host %q", s.allowedHost)
	}
}
