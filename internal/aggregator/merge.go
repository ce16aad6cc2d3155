package aggregator

import (
	"context"
	"fmt"
	"strings"

	"eventsphere/internal/domain/event"
)

type Outcome string

const (
	OutcomeInserted  Outcome = "inserted"
	OutcomeUpdated   Outcome = "updated"
	OutcomeDuplicate Outcome = "duplicate"
)

// Engine decides, for each normalized event, whether the store gains a new
// row, an existing row is overwritten, or the candidate is discarded.
type Engine struct {
	store EventStore
}

func NewEngine(store EventStore) *Engine {
	return &Engine{store: store}
}

// Merge applies the three-way contract. Exact-id matches handle idempotent
// re-runs of one source; the fuzzy path handles the same real event reported
// by two sources under different source-local ids. A fuzzy-matched update
// keeps the existing row's id, never the candidate's.
func (e *Engine) Merge(ctx context.Context, ev event.Canonical) (Outcome, error) {
	if e == nil || e.store == nil {
		return OutcomeDuplicate, fmt.Errorf("nil engine/store")
	}

	existing, err := e.store.GetByID(ctx, ev.ID)
	if err != nil {
		return OutcomeDuplicate, err
	}
	if existing != nil {
		if ev.AggregationScore > existing.AggregationScore {
			if err := e.store.Update(ctx, ev); err != nil {
				return OutcomeDuplicate, err
			}
			return OutcomeUpdated, nil
		}
		return OutcomeDuplicate, nil
	}

	if q, ok := fuzzyQueryFor(ev); ok {
		match, err := e.store.FindMatch(ctx, q)
		if err != nil {
			return OutcomeDuplicate, err
		}
		if match != nil {
			if ev.AggregationScore > match.AggregationScore {
				ev.ID = match.ID
				if err := e.store.Update(ctx, ev); err != nil {
					return OutcomeDuplicate, err
				}
				return OutcomeUpdated, nil
			}
			return OutcomeDuplicate, nil
		}
	}

	if err := e.store.Insert(ctx, ev); err != nil {
		return OutcomeDuplicate, err
	}
	return OutcomeInserted, nil
}

func fuzzyQueryFor(ev event.Canonical) (FuzzyQuery, bool) {
	prefix := titlePrefix(ev.Title)
	if prefix == "" || ev.Date == "" {
		return FuzzyQuery{}, false
	}
	venue := firstWord(ev.VenueName)
	city := strings.TrimSpace(ev.City)
	if venue == "" && city == "" {
		return FuzzyQuery{}, false
	}
	return FuzzyQuery{
		TitlePrefix: prefix,
		Date:        ev.Date,
		VenuePrefix: venue,
		City:        city,
	}, true
}

// titlePrefix is the first three words of the title, lowercased.
func titlePrefix(title string) string {
	words := strings.Fields(strings.ToLower(strings.TrimSpace(title)))
	if len(words) == 0 {
		return ""
	}
	if len(words) > 3 {
		words = words[:3]
	}
	return strings.Join(words, " ")
}

func firstWord(s string) string {
	words := strings.Fields(strings.ToLower(strings.TrimSpace(s)))
	if len(words) == 0 {
		return ""
	}
	return words[0]
}
