package source

import (
	"reflect"
	"testing"
	"time"
)

func TestGenerateRecords_DeterministicPerDay(t *testing.T) {
	day := time.Date(2026, 4, 1, 15, 0, 0, 0, time.UTC)

	a := generateRecords("bookmyshow", day, 12)
	b := generateRecords("bookmyshow", day, 12)
	if len(a) != 12 || len(b) != 12 {
		t.Fatalf("expected 12 records, got %d and %d", len(a), len(b))
	}
	for i := range a {
		if !reflect.DeepEqual(a[i], b[i]) {
			t.Fatalf("record %d differs between identical runs:\n%+v\n%+v", i, a[i], b[i])
		}
	}

	// Same moment, different source: ids repeat but content diverges.
	c := generateRecords("ticketmaster", day, 12)
	same := 0
	for i := range a {
		if a[i].Title == c[i].Title && a[i].City == c[i].City {
			same++
		}
	}
	if same == len(a) {
		t.Fatalf("expected different sources to generate different content")
	}
}

func TestGenerateRecords_StableIDs(t *testing.T) {
	day := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
	recs := generateRecords("bookmyshow", day, 3)

	want := []string{"gen-20260401-000", "gen-20260401-001", "gen-20260401-002"}
	for i, rec := range recs {
		if rec.ID != want[i] {
			t.Fatalf("expected id %q, got %q", want[i], rec.ID)
		}
	}
}

func TestGenerateRecords_FutureDates(t *testing.T) {
	day := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
	for _, rec := range generateRecords("insider", day, 20) {
		d, err := time.Parse("2006-01-02", rec.Date)
		if err != nil {
			t.Fatalf("unparsable generated date %q: %v", rec.Date, err)
		}
		if !d.After(day) {
			t.Fatalf("generated date %s is not after the run day", rec.Date)
		}
	}
}
