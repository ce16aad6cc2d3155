package usecase

import (
	"context"
	"errors"
	"testing"

	"eventsphere/internal/domain/event"
	"eventsphere/internal/repository"
)

type mockEventRepo struct {
	items      []event.Canonical
	byID       map[string]event.Canonical
	lastFilter repository.EventFilter
	err        error
}

func (m *mockEventRepo) ListEvents(_ context.Context, f repository.EventFilter) ([]event.Canonical, error) {
	m.lastFilter = f
	return m.items, m.err
}

func (m *mockEventRepo) GetByID(_ context.Context, id string) (*event.Canonical, error) {
	if m.err != nil {
		return nil, m.err
	}
	if ev, ok := m.byID[id]; ok {
		return &ev, nil
	}
	return nil, nil
}

func TestEvents_ListEvents_InvalidInput(t *testing.T) {
	uc := NewEventUsecase(&mockEventRepo{}, nil, nil)
	if _, err := uc.ListEvents(context.Background(), EventListParams{Limit: -1}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if _, err := uc.ListEvents(context.Background(), EventListParams{Offset: -1}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestEvents_ListEvents_NormalizesFilter(t *testing.T) {
	repo := &mockEventRepo{items: []event.Canonical{{ID: "srcA_e1"}}}
	uc := NewEventUsecase(repo, nil, nil)

	items, err := uc.ListEvents(context.Background(), EventListParams{City: " Pune ", Category: " Music "})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(items))
	}
	if repo.lastFilter.City != "Pune" {
		t.Fatalf("expected trimmed city, got %q", repo.lastFilter.City)
	}
	if repo.lastFilter.Category != "music" {
		t.Fatalf("expected lowercased category, got %q", repo.lastFilter.Category)
	}
	if repo.lastFilter.Limit != 20 {
		t.Fatalf("expected default limit 20, got %d", repo.lastFilter.Limit)
	}
}

func TestEvents_GetEvent(t *testing.T) {
	repo := &mockEventRepo{byID: map[string]event.Canonical{
		"srcA_e1": {ID: "srcA_e1", Title: "City Jazz Night"},
	}}
	uc := NewEventUsecase(repo, nil, nil)

	ev, err := uc.GetEvent(context.Background(), "srcA_e1")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if ev.Title != "City Jazz Night" {
		t.Fatalf("unexpected event: %+v", ev)
	}

	if _, err := uc.GetEvent(context.Background(), "missing"); !errors.Is(err, ErrEventNotFound) {
		t.Fatalf("expected ErrEventNotFound, got %v", err)
	}
	if _, err := uc.GetEvent(context.Background(), "  "); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for blank id, got %v", err)
	}
}
