package ws

import (
	"encoding/json"
	"sync/atomic"
	"time"

	"eventsphere/internal/domain/event"
)

type SourceCompletedEvent struct {
	Type          string `json:"type"`
	Source        string `json:"source"`
	Success       bool   `json:"success"`
	EventsFound   int    `json:"eventsFound"`
	EventsAdded   int    `json:"eventsAdded"`
	EventsUpdated int    `json:"eventsUpdated"`
	Timestamp     string `json:"timestamp"`
}

var defaultHub atomic.Pointer[Hub]

func SetDefaultHub(h *Hub) {
	defaultHub.Store(h)
}

// NotifySourceCompleted pushes a progress frame after each source finishes
// inside an aggregation run. No-op when no hub is installed.
func NotifySourceCompleted(res event.ScrapeResult) {
	h := defaultHub.Load()
	if h == nil {
		return
	}
	if res.Source == "" {
		return
	}

	evt := SourceCompletedEvent{
		Type:          "source_completed",
		Source:        res.Source,
		Success:       res.Success,
		EventsFound:   res.EventsFound,
		EventsAdded:   res.EventsAdded,
		EventsUpdated: res.EventsUpdated,
		Timestamp:     time.Now().UTC().Format(time.RFC3339),
	}
	b, err := json.Marshal(evt)
	if err != nil {
		return
	}

	h.Broadcast(b)
}
