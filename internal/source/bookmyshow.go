package source

import (
	"context"
	"time"

	"eventsphere/internal/domain/event"
)

// BookMyShow is a purely computational source: it emits deterministic sample
// data shaped like the provider's catalog. Same fetch contract as the real
// adapters, which keeps the orchestrator indifferent to how data is produced.
type BookMyShow struct {
	now func() time.Time
}

func NewBookMyShow() *BookMyShow {
	return &BookMyShow{now: time.Now}
}

func (s *BookMyShow) ID() string      { return "bookmyshow" }
func (s *BookMyShow) Name() string    { return "BookMyShow" }
func (s *BookMyShow) BaseURL() string { return "https://in.bookmyshow.com" }
func (s *BookMyShow) RateLimit() int  { return 10 }
func (s *BookMyShow) Verified() bool  { return false }

func (s *BookMyShow) Fetch(ctx context.Context) ([]event.RawRecord, []string, error) {
	if ctx.Err() != nil {
		return nil, nil, ctx.Err()
	}
	return generateRecords(s.ID(), s.now().UTC(), 12), nil, nil
}
