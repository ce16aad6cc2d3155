package aggregator

import (
	"strings"
	"testing"

	"eventsphere/internal/domain/event"
)

func TestScore_EmptyEvent(t *testing.T) {
	// Only the price signal fires on an empty event: a zero price still counts
	// as a defined price.
	got := Score(event.Canonical{})
	if got != 10 {
		t.Fatalf("expected 10 for empty event, got %d", got)
	}
}

func TestScore_FullEvent(t *testing.T) {
	lat, lon := 19.0, 72.8
	ev := event.Canonical{
		Title:        "City Jazz Night",
		Description:  strings.Repeat("x", 51),
		VenueName:    "Blue Note",
		VenueAddress: "12 FC Road",
		ImageURL:     "https://cdn.example.com/x.jpg",
		Price:        500,
		Latitude:     &lat,
		Longitude:    &lon,
	}
	if got := Score(ev); got != 100 {
		t.Fatalf("expected 100 for complete event, got %d", got)
	}
}

func TestScore_DescriptionThreshold(t *testing.T) {
	short := Score(event.Canonical{Description: strings.Repeat("x", 50)})
	long := Score(event.Canonical{Description: strings.Repeat("x", 51)})
	if long-short != 20 {
		t.Fatalf("expected description bonus at 51 chars, got short=%d long=%d", short, long)
	}
}

func TestScore_Monotonic(t *testing.T) {
	ev := event.Canonical{}
	prev := Score(ev)

	ev.Title = "Some Gathering"
	if s := Score(ev); s < prev {
		t.Fatalf("adding title lowered score: %d -> %d", prev, s)
	} else {
		prev = s
	}

	ev.VenueName = "Town Hall"
	if s := Score(ev); s < prev {
		t.Fatalf("adding venue lowered score: %d -> %d", prev, s)
	} else {
		prev = s
	}

	lat, lon := 1.0, 2.0
	ev.Latitude, ev.Longitude = &lat, &lon
	if s := Score(ev); s < prev {
		t.Fatalf("adding coords lowered score: %d -> %d", prev, s)
	}
}

func TestScore_PartialCoordsDoNotCount(t *testing.T) {
	lat := 19.0
	with := Score(event.Canonical{Latitude: &lat})
	without := Score(event.Canonical{})
	if with != without {
		t.Fatalf("latitude alone should not score: %d vs %d", with, without)
	}
}
