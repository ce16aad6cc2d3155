package handler

import (
	"errors"

	"eventsphere/internal/aggregator"
	"eventsphere/internal/pkg/response"
	"eventsphere/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type AggregationHandler struct {
	uc usecase.AggregationUsecase
}

func NewAggregationHandler(uc usecase.AggregationUsecase) *AggregationHandler {
	return &AggregationHandler{uc: uc}
}

func (h *AggregationHandler) HandleRun(c fiber.Ctx) error {
	report, err := h.uc.Run(c.Context())
	if err != nil {
		if errors.Is(err, aggregator.ErrStoreUnavailable) {
			return response.Error(c, fiber.StatusServiceUnavailable, "event store unavailable", nil)
		}
		return response.Error(c, fiber.StatusInternalServerError, "aggregation run failed", nil)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, report)
}

func (h *AggregationHandler) HandleStatus(c fiber.Ctx) error {
	status, err := h.uc.GetStatus(c.Context())
	if err != nil {
		return response.Error(c, fiber.StatusInternalServerError, "failed to get aggregation status", nil)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, status)
}

func (h *AggregationHandler) HandlePurge(c fiber.Ctx) error {
	removed, err := h.uc.Purge(c.Context())
	if err != nil {
		return response.Error(c, fiber.StatusInternalServerError, "purge failed", nil)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, fiber.Map{"removed": removed})
}
