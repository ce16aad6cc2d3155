package aggregator

import (
	"strings"

	"eventsphere/internal/domain/event"
)

// Score computes the 0-100 completeness score used as the sole tie-break
// signal for merge decisions. Additive: adding a field never lowers it.
func Score(ev event.Canonical) int {
	score := 0
	if strings.TrimSpace(ev.Title) != "" {
		score += 20
	}
	if len(ev.Description) > 50 {
		score += 20
	}
	if strings.TrimSpace(ev.VenueName) != "" {
		score += 15
	}
	if strings.TrimSpace(ev.VenueAddress) != "" {
		score += 15
	}
	if strings.TrimSpace(ev.ImageURL) != "" {
		score += 10
	}
	// Price counts when defined, free events included.
	if ev.Price >= 0 {
		score += 10
	}
	if ev.Latitude != nil && ev.Longitude != nil {
		score += 10
	}
	if score > 100 {
		score = 100
	}
	return score
}
