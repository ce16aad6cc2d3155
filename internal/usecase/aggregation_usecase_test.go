package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"eventsphere/internal/domain/event"
)

type mockPipeline struct {
	results []event.ScrapeResult
	err     error
	calls   int
}

func (m *mockPipeline) Run(context.Context) ([]event.ScrapeResult, error) {
	m.calls++
	return m.results, m.err
}

type mockStatsRepo struct {
	total      int
	purged     int64
	purgeErr   error
	lastCutoff string
}

func (m *mockStatsRepo) CountEvents(context.Context) (int, error) { return m.total, nil }
func (m *mockStatsRepo) CountBySource(context.Context) ([]event.SourceCount, error) {
	return []event.SourceCount{{SourceID: "srcA", Count: m.total}}, nil
}
func (m *mockStatsRepo) CountByCategory(context.Context) ([]event.CategoryCount, error) {
	return []event.CategoryCount{{Category: "music", Count: m.total}}, nil
}
func (m *mockStatsRepo) PurgeOlderThan(_ context.Context, date string) (int64, error) {
	m.lastCutoff = date
	return m.purged, m.purgeErr
}

type mockRunHistory struct {
	rows []event.ScrapeResult
}

func (m *mockRunHistory) LatestPerSource(context.Context) ([]event.ScrapeResult, error) {
	return m.rows, nil
}

type mockSourceList struct {
	rows []event.Source
}

func (m *mockSourceList) List(context.Context) ([]event.Source, error) { return m.rows, nil }

type mockPinger struct{ err error }

func (m mockPinger) Ping(context.Context) error { return m.err }

func TestAggregation_Run_Summary(t *testing.T) {
	pipe := &mockPipeline{results: []event.ScrapeResult{
		{Source: "srcA", Success: true, EventsFound: 10, EventsAdded: 7, EventsUpdated: 2},
		{Source: "srcB", Success: false, EventsFound: 0},
	}}
	uc := NewAggregationUsecase(pipe, &mockStatsRepo{}, &mockRunHistory{}, &mockSourceList{}, mockPinger{}, nil, 30, nil)

	report, err := uc.Run(context.Background())
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if pipe.calls != 1 {
		t.Fatalf("expected one pipeline run, got %d", pipe.calls)
	}
	if report.Summary.TotalFound != 10 || report.Summary.TotalAdded != 7 || report.Summary.TotalUpdated != 2 {
		t.Fatalf("unexpected summary: %+v", report.Summary)
	}
	if len(report.Summary.Sources) != 2 {
		t.Fatalf("expected 2 source summaries, got %d", len(report.Summary.Sources))
	}
	if report.Summary.Sources[1].Success {
		t.Fatalf("expected srcB failure to be reflected")
	}
}

func TestAggregation_Run_FailureWithNoResults(t *testing.T) {
	pipe := &mockPipeline{err: errors.New("store down")}
	uc := NewAggregationUsecase(pipe, &mockStatsRepo{}, &mockRunHistory{}, &mockSourceList{}, mockPinger{}, nil, 30, nil)

	if _, err := uc.Run(context.Background()); err == nil {
		t.Fatalf("expected error when the pipeline produced nothing")
	}
}

func TestAggregation_Run_PartialResultsStillReported(t *testing.T) {
	pipe := &mockPipeline{
		results: []event.ScrapeResult{{Source: "srcA", Success: true, EventsFound: 3, EventsAdded: 3}},
		err:     context.Canceled,
	}
	uc := NewAggregationUsecase(pipe, &mockStatsRepo{}, &mockRunHistory{}, &mockSourceList{}, mockPinger{}, nil, 30, nil)

	report, err := uc.Run(context.Background())
	if err != nil {
		t.Fatalf("partial run should not error: %v", err)
	}
	if len(report.Results) != 1 || report.Summary.TotalAdded != 3 {
		t.Fatalf("unexpected partial report: %+v", report)
	}
}

func TestAggregation_GetStatus(t *testing.T) {
	uc := NewAggregationUsecase(
		&mockPipeline{},
		&mockStatsRepo{total: 42},
		&mockRunHistory{rows: []event.ScrapeResult{{Source: "srcA", Success: true}}},
		&mockSourceList{rows: []event.Source{{ID: "srcA"}}},
		mockPinger{},
		nil,
		30,
		nil,
	)

	status, err := uc.GetStatus(context.Background())
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if status.TotalEvents != 42 {
		t.Fatalf("expected 42 events, got %d", status.TotalEvents)
	}
	if !status.DatabaseHealthy {
		t.Fatalf("expected healthy database")
	}
	if status.CacheHealthy {
		t.Fatalf("nil cache must report unhealthy")
	}
	if len(status.LastRuns) != 1 || len(status.Sources) != 1 {
		t.Fatalf("unexpected status payload: %+v", status)
	}
}

func TestAggregation_GetStatus_DatabaseDown(t *testing.T) {
	uc := NewAggregationUsecase(
		&mockPipeline{}, &mockStatsRepo{}, &mockRunHistory{}, &mockSourceList{},
		mockPinger{err: errors.New("refused")}, nil, 30, nil,
	)

	status, err := uc.GetStatus(context.Background())
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if status.DatabaseHealthy {
		t.Fatalf("expected unhealthy database")
	}
}

func TestAggregation_Purge_Cutoff(t *testing.T) {
	stats := &mockStatsRepo{purged: 5}
	uc := NewAggregationUsecase(&mockPipeline{}, stats, &mockRunHistory{}, &mockSourceList{}, mockPinger{}, nil, 30, nil)
	uc.now = func() time.Time { return time.Date(2026, 4, 30, 12, 0, 0, 0, time.UTC) }

	n, err := uc.Purge(context.Background())
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if n != 5 {
		t.Fatalf("expected 5 removed, got %d", n)
	}
	if stats.lastCutoff != "2026-03-31" {
		t.Fatalf("expected cutoff 2026-03-31, got %q", stats.lastCutoff)
	}
}
