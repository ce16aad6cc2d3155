package aggregator

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"eventsphere/internal/domain/event"
)

// ErrStoreUnavailable is returned when the connectivity probe fails before
// any source is attempted.
var ErrStoreUnavailable = errors.New("store unavailable")

// SourceAdapter produces raw records for one provider. Fetch returns the
// records, informational notes (e.g. a degraded-mode entry when a credential
// is absent and a substitute generator served the data), and an error only
// when no data could be produced at all.
type SourceAdapter interface {
	ID() string
	Name() string
	BaseURL() string
	RateLimit() int
	Verified() bool
	Fetch(ctx context.Context) ([]event.RawRecord, []string, error)
}

// Pipeline runs all enabled sources sequentially, in registration order.
// Sequential on purpose: sources share a courtesy rate-limit budget and the
// single-threaded model keeps merge decisions free of write races.
type Pipeline struct {
	adapters []SourceAdapter
	events   EventStore
	sources  SourceRegistry
	runs     RunLog
	probe    Pinger
	engine   *Engine

	delay  time.Duration
	now    func() time.Time
	logger *log.Logger
	notify func(event.ScrapeResult)
}

type PipelineOption func(*Pipeline)

// WithNotify registers a callback invoked with each per-source result as it
// is produced, e.g. to broadcast run progress.
func WithNotify(fn func(event.ScrapeResult)) PipelineOption {
	return func(p *Pipeline) { p.notify = fn }
}

func WithClock(now func() time.Time) PipelineOption {
	return func(p *Pipeline) { p.now = now }
}

func NewPipeline(
	adapters []SourceAdapter,
	events EventStore,
	sources SourceRegistry,
	runs RunLog,
	probe Pinger,
	delay time.Duration,
	logger *log.Logger,
	opts ...PipelineOption,
) *Pipeline {
	if logger == nil {
		logger = log.Default()
	}
	p := &Pipeline{
		adapters: adapters,
		events:   events,
		sources:  sources,
		runs:     runs,
		probe:    probe,
		engine:   NewEngine(events),
		delay:    delay,
		now:      time.Now,
		logger:   logger,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Run executes one full pass. It fails fast only when the store probe fails;
// every other failure is contained in that source's ScrapeResult. Cancelling
// the context stops the run between sources, with results accumulated so far
// already persisted.
func (p *Pipeline) Run(ctx context.Context) ([]event.ScrapeResult, error) {
	if p == nil {
		return nil, fmt.Errorf("nil pipeline")
	}

	if p.probe != nil {
		probeCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		err := p.probe.Ping(probeCtx)
		cancel()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
		}
	}

	for _, a := range p.adapters {
		src := event.Source{
			ID:        a.ID(),
			Name:      a.Name(),
			BaseURL:   a.BaseURL(),
			Enabled:   true,
			RateLimit: a.RateLimit(),
		}
		if err := p.sources.Upsert(ctx, src); err != nil {
			p.logger.Printf("pipeline=aggregation source=%s status=registry_upsert_error err=%v", a.ID(), err)
		}
	}

	results := make([]event.ScrapeResult, 0, len(p.adapters))
	for i, a := range p.adapters {
		if i > 0 && p.delay > 0 {
			select {
			case <-ctx.Done():
				return results, ctx.Err()
			case <-time.After(p.delay):
			}
		}
		if ctx.Err() != nil {
			return results, ctx.Err()
		}

		res := p.runSource(ctx, a)
		results = append(results, res)

		// Run-log and registry writes are best-effort: they must never
		// fail the aggregation outcome itself.
		if err := p.runs.Insert(ctx, res); err != nil {
			p.logger.Printf("pipeline=aggregation source=%s status=runlog_error err=%v", a.ID(), err)
		}
		rate := 0
		if res.Success {
			rate = 100
		}
		if err := p.sources.UpdateStats(ctx, a.ID(), res.Timestamp, res.EventsAdded, rate); err != nil {
			p.logger.Printf("pipeline=aggregation source=%s status=registry_stats_error err=%v", a.ID(), err)
		}

		if p.notify != nil {
			p.notify(res)
		}
	}

	return results, nil
}

func (p *Pipeline) runSource(ctx context.Context, a SourceAdapter) event.ScrapeResult {
	start := p.now().UTC()
	res := event.ScrapeResult{
		Source:    a.ID(),
		Success:   true,
		Errors:    []string{},
		Timestamp: start,
	}

	p.logger.Printf("pipeline=aggregation source=%s status=started", a.ID())

	raws, notes, err := a.Fetch(ctx)
	res.Errors = append(res.Errors, notes...)
	if err != nil {
		res.Success = false
		res.Errors = append(res.Errors, err.Error())
		res.DurationMS = p.now().UTC().Sub(start).Milliseconds()
		p.logger.Printf("pipeline=aggregation source=%s status=fetch_error err=%v", a.ID(), err)
		return res
	}

	res.EventsFound = len(raws)

	src := event.Source{
		ID:      a.ID(),
		Name:    a.Name(),
		BaseURL: a.BaseURL(),
	}
	for _, raw := range raws {
		ev := Normalize(raw, src, start)
		ev.IsVerified = a.Verified()
		ev.AggregationScore = Score(ev)

		outcome, err := p.engine.Merge(ctx, ev)
		if err != nil {
			// One bad record must not abort the rest of the source.
			res.Errors = append(res.Errors, fmt.Sprintf("merge %s: %v", ev.ID, err))
			p.logger.Printf("pipeline=aggregation source=%s status=merge_error event=%s err=%v", a.ID(), ev.ID, err)
			continue
		}
		switch outcome {
		case OutcomeInserted:
			res.EventsAdded++
		case OutcomeUpdated:
			res.EventsUpdated++
		}
	}

	res.DurationMS = p.now().UTC().Sub(start).Milliseconds()
	p.logger.Printf(
		"pipeline=aggregation source=%s status=finished found=%d added=%d updated=%d duration_ms=%d",
		a.ID(), res.EventsFound, res.EventsAdded, res.EventsUpdated, res.DurationMS,
	)
	return res
}
