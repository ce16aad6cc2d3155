package handler

import (
	"errors"
	"strconv"

	"eventsphere/internal/delivery/http/middleware"
	"eventsphere/internal/pkg/response"
	"eventsphere/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type EventHandler struct {
	uc usecase.EventUsecase
}

func NewEventHandler(uc usecase.EventUsecase) *EventHandler {
	return &EventHandler{uc: uc}
}

func (h *EventHandler) HandleListEvents(c fiber.Ctx) error {
	limit, err := parseQueryIntStrict(c, "limit", 20)
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}
	offset, err := parseQueryIntStrict(c, "offset", 0)
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	items, err := h.uc.ListEvents(c.Context(), usecase.EventListParams{
		City:     c.Query("city"),
		Category: c.Query("category"),
		Date:     c.Query("date"),
		Limit:    limit,
		Offset:   offset,
	})
	if err != nil {
		return mapEventUsecaseError(err)
	}

	return response.Success(c, fiber.StatusOK, "success", items)
}

func (h *EventHandler) HandleGetEvent(c fiber.Ctx) error {
	ev, err := h.uc.GetEvent(c.Context(), c.Params("id"))
	if err != nil {
		return mapEventUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "success", ev)
}

func parseQueryIntStrict(c fiber.Ctx, key string, defaultVal int) (int, error) {
	s := c.Query(key)
	if s == "" {
		return defaultVal, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	return v, nil
}

func mapEventUsecaseError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	case errors.Is(err, usecase.ErrEventNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Event not found", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
