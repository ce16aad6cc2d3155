package source

import (
	"fmt"
	"hash/fnv"
	"math/rand"
	"time"

	"eventsphere/internal/domain/event"
)

var sampleCities = []string{"Mumbai", "Delhi", "Bengaluru", "Hyderabad", "Chennai", "Pune", "Kolkata"}

var sampleVenues = map[string][]string{
	"Mumbai":    {"Phoenix Marketcity Arena", "NCPA Theatre", "Antisocial Khar"},
	"Delhi":     {"Jawaharlal Nehru Stadium", "Siri Fort Auditorium", "The Piano Man"},
	"Bengaluru": {"UB City Amphitheatre", "Indiranagar Social", "Good Shepherd Auditorium"},
	"Hyderabad": {"Hitex Exhibition Centre", "Shilpakala Vedika", "Heart Cup Coffee"},
	"Chennai":   {"Music Academy", "Phoenix Marketcity Chennai", "YMCA Grounds"},
	"Pune":      {"Blue Note", "Shaniwar Wada Grounds", "Phoenix Mall of the Millennium"},
	"Kolkata":   {"Science City Auditorium", "Nazrul Mancha", "Princeton Club"},
}

var sampleEvents = []struct {
	Title    string
	Category string
	Desc     string
}{
	{"Indie Music Night", "music", "An evening of live indie music featuring upcoming artists from across the country."},
	{"Startup Pitch Summit", "technology", "Early-stage founders pitch to a panel of investors, followed by networking."},
	{"Street Food Carnival", "food", "Regional street food stalls, tasting sessions and live cooking counters."},
	{"Standup Comedy Open Mic", "comedy", "New and seasoned comics try fresh material in an intimate setting."},
	{"Contemporary Art Walk", "arts", "A guided exhibition walk through contemporary installations and galleries."},
	{"City Marathon Meetup", "sports", "Training run and meetup for the upcoming city marathon, all paces welcome."},
	{"Sunrise Yoga Session", "wellness", "Outdoor yoga and meditation session for all experience levels."},
	{"Business Networking Mixer", "business", "Casual mixer for professionals and entrepreneurs across industries."},
}

// generateRecords is the deterministic substitute generator used by adapters
// in fallback mode and by the pure-mock sources. Output is stable for a given
// (sourceID, day) pair so consecutive runs on the same day are idempotent.
func generateRecords(sourceID string, day time.Time, n int) []event.RawRecord {
	h := fnv.New64a()
	_, _ = h.Write([]byte(sourceID + day.UTC().Format("2006-01-02")))
	rng := rand.New(rand.NewSource(int64(h.Sum64())))

	out := make([]event.RawRecord, 0, n)
	for i := 0; i < n; i++ {
		tpl := sampleEvents[rng.Intn(len(sampleEvents))]
		city := sampleCities[rng.Intn(len(sampleCities))]
		venues := sampleVenues[city]
		venue := venues[rng.Intn(len(venues))]
		date := day.UTC().AddDate(0, 0, 1+rng.Intn(21))

		rec := event.RawRecord{
			ID:          fmt.Sprintf("gen-%s-%03d", day.UTC().Format("20060102"), i),
			Title:       fmt.Sprintf("%s %s", city, tpl.Title),
			Description: tpl.Desc,
			Date:        date.Format("2006-01-02"),
			Venue:       venue,
			City:        city,
			Category:    tpl.Category,
			SourceURL:   fmt.Sprintf("https://example.com/%s/events/%d", sourceID, i),
		}

		switch rng.Intn(3) {
		case 0:
			rec.Time = fmt.Sprintf("%02d:00", 17+rng.Intn(5))
		case 1:
			rec.Time = fmt.Sprintf("%d:30 PM", 5+rng.Intn(4))
		}
		switch rng.Intn(4) {
		case 0:
			// free event, price left absent
		case 1:
			rec.Price = fmt.Sprintf("%d", 100*(2+rng.Intn(15)))
		default:
			rec.Price = fmt.Sprintf("Rs. %d", 100*(2+rng.Intn(15)))
		}
		if rng.Intn(2) == 0 {
			rec.Address = fmt.Sprintf("%s, %s", venue, city)
		}
		out = append(out, rec)
	}
	return out
}
