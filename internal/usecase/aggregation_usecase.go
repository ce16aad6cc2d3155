package usecase

import (
	"context"
	"log"
	"sync"
	"time"

	"eventsphere/internal/domain/event"
	"eventsphere/internal/infrastructure/cache"
)

type RunSummary struct {
	TotalFound   int             `json:"totalFound"`
	TotalAdded   int             `json:"totalAdded"`
	TotalUpdated int             `json:"totalUpdated"`
	Sources      []SourceSummary `json:"sources"`
}

type SourceSummary struct {
	Source  string `json:"source"`
	Success bool   `json:"success"`
	Found   int    `json:"found"`
	Added   int    `json:"added"`
	Updated int    `json:"updated"`
}

type RunReport struct {
	Results []event.ScrapeResult `json:"results"`
	Summary RunSummary           `json:"summary"`
}

type AggregationStatus struct {
	LastRuns        []event.ScrapeResult  `json:"lastRuns"`
	Sources         []event.Source        `json:"sources"`
	TotalEvents     int                   `json:"totalEvents"`
	BySource        []event.SourceCount   `json:"bySource"`
	ByCategory      []event.CategoryCount `json:"byCategory"`
	DatabaseHealthy bool                  `json:"databaseHealthy"`
	CacheHealthy    bool                  `json:"cacheHealthy"`
	ServerTime      time.Time             `json:"serverTime"`
}

type AggregationUsecase interface {
	Run(ctx context.Context) (*RunReport, error)
	GetStatus(ctx context.Context) (*AggregationStatus, error)
	Purge(ctx context.Context) (int64, error)
}

type pipelineRunner interface {
	Run(ctx context.Context) ([]event.ScrapeResult, error)
}

type EventStatsRepository interface {
	CountEvents(ctx context.Context) (int, error)
	CountBySource(ctx context.Context) ([]event.SourceCount, error)
	CountByCategory(ctx context.Context) ([]event.CategoryCount, error)
	PurgeOlderThan(ctx context.Context, date string) (int64, error)
}

type RunHistoryRepository interface {
	LatestPerSource(ctx context.Context) ([]event.ScrapeResult, error)
}

type SourceListRepository interface {
	List(ctx context.Context) ([]event.Source, error)
}

type Aggregation struct {
	pipeline pipelineRunner
	stats    EventStatsRepository
	runs     RunHistoryRepository
	sources  SourceListRepository
	db       interface{ Ping(ctx context.Context) error }
	cache    *cache.Redis

	retentionDays int
	now           func() time.Time
	logger        *log.Logger

	// Serializes concurrently triggered runs; the pipeline itself is
	// deliberately single-threaded.
	mu sync.Mutex
}

func NewAggregationUsecase(
	pipeline pipelineRunner,
	stats EventStatsRepository,
	runs RunHistoryRepository,
	sources SourceListRepository,
	db interface{ Ping(ctx context.Context) error },
	redis *cache.Redis,
	retentionDays int,
	logger *log.Logger,
) *Aggregation {
	if logger == nil {
		logger = log.Default()
	}
	if retentionDays <= 0 {
		retentionDays = 30
	}
	return &Aggregation{
		pipeline:      pipeline,
		stats:         stats,
		runs:          runs,
		sources:       sources,
		db:            db,
		cache:         redis,
		retentionDays: retentionDays,
		now:           time.Now,
		logger:        logger,
	}
}

func (u *Aggregation) Run(ctx context.Context) (*RunReport, error) {
	u.mu.Lock()
	defer u.mu.Unlock()

	results, err := u.pipeline.Run(ctx)
	if err != nil && len(results) == 0 {
		return nil, err
	}
	if err != nil {
		// Cancelled between sources: accumulated results were persisted,
		// report what we have.
		u.logger.Printf("usecase=aggregation status=partial_run err=%v", err)
	}

	if u.cache != nil {
		if err := u.cache.InvalidateAggregates(ctx); err != nil {
			u.logger.Printf("usecase=aggregation status=cache_invalidate_error err=%v", err)
		}
	}

	return &RunReport{Results: results, Summary: summarize(results)}, nil
}

func (u *Aggregation) GetStatus(ctx context.Context) (*AggregationStatus, error) {
	lastRuns, err := u.runs.LatestPerSource(ctx)
	if err != nil {
		return nil, err
	}
	sources, err := u.sources.List(ctx)
	if err != nil {
		return nil, err
	}
	total, err := u.stats.CountEvents(ctx)
	if err != nil {
		return nil, err
	}
	bySource, err := u.stats.CountBySource(ctx)
	if err != nil {
		return nil, err
	}
	byCategory, err := u.stats.CountByCategory(ctx)
	if err != nil {
		return nil, err
	}

	databaseHealthy := false
	if u.db != nil {
		pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
		err := u.db.Ping(pingCtx)
		cancel()
		databaseHealthy = err == nil
	}

	cacheHealthy := false
	if u.cache != nil {
		pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
		err := u.cache.Ping(pingCtx)
		cancel()
		cacheHealthy = err == nil
	}

	return &AggregationStatus{
		LastRuns:        lastRuns,
		Sources:         sources,
		TotalEvents:     total,
		BySource:        bySource,
		ByCategory:      byCategory,
		DatabaseHealthy: databaseHealthy,
		CacheHealthy:    cacheHealthy,
		ServerTime:      u.now().UTC(),
	}, nil
}

// Purge drops pipeline events dated before the retention window.
func (u *Aggregation) Purge(ctx context.Context) (int64, error) {
	cutoff := u.now().UTC().AddDate(0, 0, -u.retentionDays).Format("2006-01-02")
	n, err := u.stats.PurgeOlderThan(ctx, cutoff)
	if err != nil {
		return 0, err
	}
	if n > 0 && u.cache != nil {
		if err := u.cache.InvalidateAggregates(ctx); err != nil {
			u.logger.Printf("usecase=aggregation status=cache_invalidate_error err=%v", err)
		}
	}
	u.logger.Printf("usecase=aggregation status=purged cutoff=%s removed=%d", cutoff, n)
	return n, nil
}

func summarize(results []event.ScrapeResult) RunSummary {
	s := RunSummary{Sources: make([]SourceSummary, 0, len(results))}
	for _, r := range results {
		s.TotalFound += r.EventsFound
		s.TotalAdded += r.EventsAdded
		s.TotalUpdated += r.EventsUpdated
		s.Sources = append(s.Sources, SourceSummary{
			Source:  r.Source,
			Success: r.Success,
			Found:   r.EventsFound,
			Added:   r.EventsAdded,
			Updated: r.EventsUpdated,
		})
	}
	return s
}

var _ AggregationUsecase = (*Aggregation)(nil)
