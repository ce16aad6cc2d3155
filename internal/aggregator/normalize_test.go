package aggregator

import (
	"testing"
	"time"

	"eventsphere/internal/domain/event"
)

var testSource = event.Source{
	ID:      "srcA",
	Name:    "Source A",
	BaseURL: "https://source-a.example.com",
}

var testNow = time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)

func TestNormalize_IDAndSourceFields(t *testing.T) {
	ev := Normalize(event.RawRecord{ID: "e1", Title: "Some Gathering"}, testSource, testNow)

	if ev.ID != "srcA_e1" {
		t.Fatalf("expected id srcA_e1, got %q", ev.ID)
	}
	if ev.OriginalID != "e1" {
		t.Fatalf("expected originalId e1, got %q", ev.OriginalID)
	}
	if ev.SourceID != "srcA" || ev.SourceName != "Source A" {
		t.Fatalf("unexpected source fields: %q %q", ev.SourceID, ev.SourceName)
	}
	if ev.SourceURL != "https://source-a.example.com" {
		t.Fatalf("expected base url fallback, got %q", ev.SourceURL)
	}
	if ev.Organizer != "Source A" {
		t.Fatalf("expected organizer fallback to source name, got %q", ev.Organizer)
	}
	if !ev.LastUpdated.Equal(testNow) {
		t.Fatalf("expected lastUpdated %v, got %v", testNow, ev.LastUpdated)
	}
}

func TestNormalize_DateAndTimeDefaults(t *testing.T) {
	ev := Normalize(event.RawRecord{ID: "e1"}, testSource, testNow)
	if ev.Date != "2026-03-14" {
		t.Fatalf("expected run date fallback, got %q", ev.Date)
	}
	if ev.Time != "18:00" {
		t.Fatalf("expected default time 18:00, got %q", ev.Time)
	}

	ev = Normalize(event.RawRecord{ID: "e1", Date: "garbage", Time: "whenever"}, testSource, testNow)
	if ev.Date != "2026-03-14" {
		t.Fatalf("expected run date fallback for unparsable date, got %q", ev.Date)
	}
	if ev.Time != "18:00" {
		t.Fatalf("expected default time for unparsable time, got %q", ev.Time)
	}
}

func TestNormalize_DateAndTimeFormats(t *testing.T) {
	cases := []struct {
		rawDate  string
		rawTime  string
		wantDate string
		wantTime string
	}{
		{"2026-05-01", "19:30", "2026-05-01", "19:30"},
		{"2026/05/01", "7:30 PM", "2026-05-01", "19:30"},
		{"01-05-2026", "19:30:45", "2026-05-01", "19:30"},
		{"May 1, 2026", "7:30pm", "2026-05-01", "19:30"},
	}
	for _, tc := range cases {
		ev := Normalize(event.RawRecord{ID: "e1", Date: tc.rawDate, Time: tc.rawTime}, testSource, testNow)
		if ev.Date != tc.wantDate {
			t.Fatalf("date %q: expected %q, got %q", tc.rawDate, tc.wantDate, ev.Date)
		}
		if ev.Time != tc.wantTime {
			t.Fatalf("time %q: expected %q, got %q", tc.rawTime, tc.wantTime, ev.Time)
		}
	}
}

func TestNormalize_CityAliasStateAndCoords(t *testing.T) {
	ev := Normalize(event.RawRecord{ID: "e1", City: "Bangalore"}, testSource, testNow)
	if ev.City != "Bengaluru" {
		t.Fatalf("expected alias Bengaluru, got %q", ev.City)
	}
	if ev.State != "Karnataka" {
		t.Fatalf("expected inferred state Karnataka, got %q", ev.State)
	}
	if ev.Latitude == nil || ev.Longitude == nil {
		t.Fatalf("expected city coordinates to be filled")
	}

	ev = Normalize(event.RawRecord{ID: "e1", City: "Springfield"}, testSource, testNow)
	if ev.City != "Springfield" {
		t.Fatalf("unknown city should pass through, got %q", ev.City)
	}
	if ev.State != "Unknown" {
		t.Fatalf("expected state Unknown for unknown city, got %q", ev.State)
	}
}

func TestNormalize_ExplicitCoordsWin(t *testing.T) {
	lat, lon := 10.5, 20.5
	ev := Normalize(event.RawRecord{ID: "e1", City: "Mumbai", Latitude: &lat, Longitude: &lon}, testSource, testNow)
	if ev.Latitude == nil || *ev.Latitude != 10.5 {
		t.Fatalf("expected explicit latitude to win, got %v", ev.Latitude)
	}
	if ev.Longitude == nil || *ev.Longitude != 20.5 {
		t.Fatalf("expected explicit longitude to win, got %v", ev.Longitude)
	}
}

func TestNormalize_CategoryKeywordOrder(t *testing.T) {
	// Text matching both music and technology resolves to music, the earlier
	// bucket in the fixed order.
	ev := Normalize(event.RawRecord{ID: "e1", Title: "Tech Concert Expo"}, testSource, testNow)
	if ev.Category != "music" {
		t.Fatalf("expected music to win the tie-break, got %q", ev.Category)
	}

	ev = Normalize(event.RawRecord{ID: "e1", Title: "Quarterly Review"}, testSource, testNow)
	if ev.Category != "business" {
		t.Fatalf("expected default category business, got %q", ev.Category)
	}

	ev = Normalize(event.RawRecord{ID: "e1", Category: "yoga"}, testSource, testNow)
	if ev.Category != "wellness" {
		t.Fatalf("expected wellness from explicit hint, got %q", ev.Category)
	}
}

func TestNormalize_PriceCoercion(t *testing.T) {
	cases := []struct {
		raw  string
		want float64
	}{
		{"", 0},
		{"500", 500},
		{"Rs. 500", 500},
		{"₹1,200.50", 1200.50},
		{"free", 0},
	}
	for _, tc := range cases {
		ev := Normalize(event.RawRecord{ID: "e1", Price: tc.raw}, testSource, testNow)
		if ev.Price != tc.want {
			t.Fatalf("price %q: expected %v, got %v", tc.raw, tc.want, ev.Price)
		}
	}
}

func TestNormalize_IsFree(t *testing.T) {
	ev := Normalize(event.RawRecord{ID: "e1", Price: "0"}, testSource, testNow)
	if !ev.IsFree {
		t.Fatalf("zero price should imply free")
	}

	ev = Normalize(event.RawRecord{ID: "e1", Price: "500"}, testSource, testNow)
	if ev.IsFree {
		t.Fatalf("priced event should not be free")
	}

	paidButFree := true
	ev = Normalize(event.RawRecord{ID: "e1", Price: "500", IsFree: &paidButFree}, testSource, testNow)
	if !ev.IsFree {
		t.Fatalf("explicit isFree should override price")
	}
}

func TestNormalize_Tags(t *testing.T) {
	ev := Normalize(event.RawRecord{
		ID:       "e1",
		Category: "music",
		Tags:     []string{"Live", "live", "outdoor", "weekend", "extra", "overflow"},
	}, testSource, testNow)

	if len(ev.Tags) != 5 {
		t.Fatalf("expected 5 tags max, got %d: %v", len(ev.Tags), ev.Tags)
	}
	if ev.Tags[0] != "music" {
		t.Fatalf("expected category as first tag, got %q", ev.Tags[0])
	}
	if ev.Tags[1] != "free" {
		t.Fatalf("expected free tag for free event, got %q", ev.Tags[1])
	}
	seen := map[string]int{}
	for _, tag := range ev.Tags {
		seen[tag]++
	}
	if seen["live"] != 1 {
		t.Fatalf("expected case-insensitive dedup, got %v", ev.Tags)
	}
}

func TestNormalize_ImageFallback(t *testing.T) {
	ev := Normalize(event.RawRecord{ID: "e1", Category: "music"}, testSource, testNow)
	if ev.ImageURL != categoryImages["music"] {
		t.Fatalf("expected stock image fallback, got %q", ev.ImageURL)
	}

	ev = Normalize(event.RawRecord{ID: "e1", Category: "music", ImageURL: "https://cdn.example.com/x.jpg"}, testSource, testNow)
	if ev.ImageURL != "https://cdn.example.com/x.jpg" {
		t.Fatalf("explicit image should win, got %q", ev.ImageURL)
	}
}
