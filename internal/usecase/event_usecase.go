package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"eventsphere/internal/domain/event"
	"eventsphere/internal/infrastructure/cache"
	"eventsphere/internal/repository"
)

var (
	ErrInvalidInput  = errors.New("invalid input")
	ErrEventNotFound = errors.New("event not found")
)

type EventListParams struct {
	City     string
	Category string
	Date     string
	Limit    int
	Offset   int
}

type EventUsecase interface {
	ListEvents(ctx context.Context, params EventListParams) ([]event.Canonical, error)
	GetEvent(ctx context.Context, id string) (*event.Canonical, error)
}

type EventBrowseRepository interface {
	ListEvents(ctx context.Context, f repository.EventFilter) ([]event.Canonical, error)
	GetByID(ctx context.Context, id string) (*event.Canonical, error)
}

type Events struct {
	repo   EventBrowseRepository
	cache  *cache.Redis
	logger *log.Logger
}

func NewEventUsecase(repo EventBrowseRepository, redis *cache.Redis, logger *log.Logger) *Events {
	if logger == nil {
		logger = log.Default()
	}
	return &Events{repo: repo, cache: redis, logger: logger}
}

func (u *Events) ListEvents(ctx context.Context, params EventListParams) ([]event.Canonical, error) {
	if params.Limit < 0 || params.Offset < 0 {
		return nil, ErrInvalidInput
	}
	if params.Limit == 0 {
		params.Limit = 20
	}

	key := listCacheKey(params)
	if u.cache != nil {
		var cached []event.Canonical
		if ok, err := u.cache.GetJSON(ctx, key, &cached); err == nil && ok {
			return cached, nil
		}
	}

	out, err := u.repo.ListEvents(ctx, repository.EventFilter{
		City:     strings.TrimSpace(params.City),
		Category: strings.ToLower(strings.TrimSpace(params.Category)),
		Date:     strings.TrimSpace(params.Date),
		Limit:    params.Limit,
		Offset:   params.Offset,
	})
	if err != nil {
		return nil, err
	}

	if u.cache != nil {
		if err := u.cache.SetJSON(ctx, key, out, 0); err != nil {
			u.logger.Printf("usecase=events status=cache_set_error key=%s err=%v", key, err)
		}
	}
	return out, nil
}

func (u *Events) GetEvent(ctx context.Context, id string) (*event.Canonical, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, ErrInvalidInput
	}
	ev, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if ev == nil {
		return nil, ErrEventNotFound
	}
	return ev, nil
}

func listCacheKey(p EventListParams) string {
	return fmt.Sprintf(
		"events:list:city=%s:cat=%s:date=%s:limit=%d:offset=%d",
		strings.ToLower(strings.TrimSpace(p.City)),
		strings.ToLower(strings.TrimSpace(p.Category)),
		strings.TrimSpace(p.Date),
		p.Limit,
		p.Offset,
	)
}

var _ EventUsecase = (*Events)(nil)
