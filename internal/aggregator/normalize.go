package aggregator

import (
	"strconv"
	"strings"
	"time"

	"eventsphere/internal/domain/event"
)

const defaultEventTime = "18:00"

var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006/01/02",
	"02-01-2006",
	"02 Jan 2006",
	"Jan 2, 2006",
	"January 2, 2006",
}

var timeLayouts = []string{
	"15:04",
	"15:04:05",
	"3:04 PM",
	"3:04PM",
	"3 PM",
}

// cityAliases maps lowercased spellings to the canonical city name. Unknown
// cities pass through unchanged.
var cityAliases = map[string]string{
	"bangalore": "Bengaluru",
	"bengaluru": "Bengaluru",
	"bombay":    "Mumbai",
	"mumbai":    "Mumbai",
	"delhi":     "Delhi",
	"new delhi": "Delhi",
	"gurgaon":   "Gurugram",
	"gurugram":  "Gurugram",
	"calcutta":  "Kolkata",
	"kolkata":   "Kolkata",
	"madras":    "Chennai",
	"chennai":   "Chennai",
	"hyderabad": "Hyderabad",
	"pune":      "Pune",
	"poona":     "Pune",
	"ahmedabad": "Ahmedabad",
	"jaipur":    "Jaipur",
	"goa":       "Goa",
}

var cityStates = map[string]string{
	"Bengaluru": "Karnataka",
	"Mumbai":    "Maharashtra",
	"Pune":      "Maharashtra",
	"Delhi":     "Delhi",
	"Gurugram":  "Haryana",
	"Kolkata":   "West Bengal",
	"Chennai":   "Tamil Nadu",
	"Hyderabad": "Telangana",
	"Ahmedabad": "Gujarat",
	"Jaipur":    "Rajasthan",
	"Goa":       "Goa",
}

type geo struct {
	lat float64
	lon float64
}

var cityCoords = map[string]geo{
	"Bengaluru": {12.9716, 77.5946},
	"Mumbai":    {19.0760, 72.8777},
	"Pune":      {18.5204, 73.8567},
	"Delhi":     {28.6139, 77.2090},
	"Gurugram":  {28.4595, 77.0266},
	"Kolkata":   {22.5726, 88.3639},
	"Chennai":   {13.0827, 80.2707},
	"Hyderabad": {17.3850, 78.4867},
	"Ahmedabad": {23.0225, 72.5714},
	"Jaipur":    {26.9124, 75.7873},
	"Goa":       {15.2993, 74.1240},
}

// categoryOrder is the fixed tie-break for keyword inference: ambiguous text
// matching several buckets always resolves to the earliest one.
var categoryOrder = []string{
	"music", "technology", "food", "business", "comedy", "arts", "sports", "wellness",
}

var categoryKeywords = map[string][]string{
	"music":      {"music", "concert", "gig", "dj", "band", "jazz", "rock", "edm", "festival"},
	"technology": {"tech", "developer", "startup", "hackathon", "coding", "software", "ai", "data"},
	"food":       {"food", "dining", "tasting", "culinary", "brunch", "cuisine", "chef"},
	"business":   {"business", "networking", "conference", "summit", "entrepreneur", "marketing"},
	"comedy":     {"comedy", "standup", "stand-up", "improv", "open mic"},
	"arts":       {"art", "theatre", "theater", "exhibition", "gallery", "dance", "painting"},
	"sports":     {"sports", "cricket", "football", "marathon", "yoga run", "tournament", "match"},
	"wellness":   {"wellness", "yoga", "meditation", "fitness", "mindfulness", "health"},
}

const defaultCategory = "business"

var categoryImages = map[string]string{
	"music":      "https://images.eventsphere.in/stock/music.jpg",
	"technology": "https://images.eventsphere.in/stock/technology.jpg",
	"food":       "https://images.eventsphere.in/stock/food.jpg",
	"business":   "https://images.eventsphere.in/stock/business.jpg",
	"comedy":     "https://images.eventsphere.in/stock/comedy.jpg",
	"arts":       "https://images.eventsphere.in/stock/arts.jpg",
	"sports":     "https://images.eventsphere.in/stock/sports.jpg",
	"wellness":   "https://images.eventsphere.in/stock/wellness.jpg",
}

const maxTags = 5

// Normalize converts a raw provider record into the canonical event shape.
// Pure: deterministic given identical inputs and a fixed now. The aggregation
// score is not set here; it is recomputed by Score on every pass.
func Normalize(raw event.RawRecord, src event.Source, now time.Time) event.Canonical {
	title := strings.TrimSpace(raw.Title)
	desc := strings.TrimSpace(raw.Description)

	city := canonicalCity(raw.City)
	state := strings.TrimSpace(raw.State)
	if state == "" {
		state = cityStates[city]
	}
	if state == "" {
		state = "Unknown"
	}

	category := inferCategory(raw.Category, title, desc)

	price := coercePrice(raw.Price)
	isFree := price == 0
	if raw.IsFree != nil {
		isFree = *raw.IsFree
	}

	imageURL := strings.TrimSpace(raw.ImageURL)
	if imageURL == "" {
		imageURL = categoryImages[category]
	}

	lat, lon := raw.Latitude, raw.Longitude
	if lat == nil || lon == nil {
		if g, ok := cityCoords[city]; ok {
			glat, glon := g.lat, g.lon
			lat, lon = &glat, &glon
		}
	}

	organizer := strings.TrimSpace(raw.Organizer)
	if organizer == "" {
		organizer = src.Name
	}

	sourceURL := strings.TrimSpace(raw.SourceURL)
	if sourceURL == "" {
		sourceURL = src.BaseURL
	}

	return event.Canonical{
		ID:                  src.ID + "_" + strings.TrimSpace(raw.ID),
		Title:               title,
		Description:         desc,
		DetailedDescription: desc,
		Date:                normalizeDate(raw.Date, now),
		Time:                normalizeTime(raw.Time),
		VenueName:           strings.TrimSpace(raw.Venue),
		VenueAddress:        strings.TrimSpace(raw.Address),
		City:                city,
		State:               state,
		ImageURL:            imageURL,
		Price:               price,
		IsFree:              isFree,
		Latitude:            lat,
		Longitude:           lon,
		Category:            category,
		Organizer:           organizer,
		Tags:                buildTags(raw.Tags, category, isFree),
		SourceID:            src.ID,
		SourceName:          src.Name,
		SourceURL:           sourceURL,
		OriginalID:          strings.TrimSpace(raw.ID),
		LastUpdated:         now.UTC(),
	}
}

func normalizeDate(s string, now time.Time) string {
	s = strings.TrimSpace(s)
	if s != "" {
		for _, layout := range dateLayouts {
			if t, err := time.Parse(layout, s); err == nil {
				return t.Format("2006-01-02")
			}
		}
	}
	return now.UTC().Format("2006-01-02")
}

func normalizeTime(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return defaultEventTime
	}
	up := strings.ToUpper(s)
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, up); err == nil {
			return t.Format("15:04")
		}
	}
	return defaultEventTime
}

func canonicalCity(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	if c, ok := cityAliases[strings.ToLower(s)]; ok {
		return c
	}
	return s
}

func inferCategory(explicit, title, desc string) string {
	text := strings.ToLower(strings.TrimSpace(explicit) + " " + title + " " + desc)
	for _, cat := range categoryOrder {
		for _, kw := range categoryKeywords[cat] {
			if strings.Contains(text, kw) {
				return cat
			}
		}
	}
	return defaultCategory
}

// coercePrice strips everything but digits and dots before parsing.
// Unparsable input is treated as 0.
func coercePrice(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	var b strings.Builder
	for _, r := range s {
		if (r >= '0' && r <= '9') || r == '.' {
			b.WriteRune(r)
		}
	}
	cleaned := b.String()
	if cleaned == "" {
		return 0
	}
	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil || v < 0 {
		return 0
	}
	return v
}

func buildTags(explicit []string, category string, isFree bool) []string {
	seen := make(map[string]struct{}, maxTags)
	out := make([]string, 0, maxTags)
	add := func(tag string) {
		tag = strings.ToLower(strings.TrimSpace(tag))
		if tag == "" {
			return
		}
		if _, ok := seen[tag]; ok {
			return
		}
		if len(out) >= maxTags {
			return
		}
		seen[tag] = struct{}{}
		out = append(out, tag)
	}

	add(category)
	if isFree {
		add("free")
	}
	for _, t := range explicit {
		add(t)
	}
	return out
}
