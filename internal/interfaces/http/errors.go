package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/IsaacXimenes/all-markets-view-58c5a94f-sub003/internal/application/dto"
	"github.com/IsaacXimenes/all-markets-view-58c5a94f-sub003/internal/domain"
)

// respondError traduz erros de domínio para status HTTP e código estável.
// Conflitos de concorrência levam Retry=true: o cliente pode repetir a chamada.
func respondError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: err.Error()})
	case errors.Is(err, domain.ErrInsufficientQuantity):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INSUFFICIENT_QUANTITY", Message: err.Error()})
	case errors.Is(err, domain.ErrItemNotAvailable):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "ITEM_NOT_AVAILABLE", Message: err.Error()})
	case errors.Is(err, domain.ErrWrongLocation):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "WRONG_LOCATION", Message: err.Error()})
	case errors.Is(err, domain.ErrLotState):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "LOT_STATE", Message: err.Error()})
	case errors.Is(err, domain.ErrConcurrencyConflict):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CONCURRENCY_CONFLICT", Message: err.Error(), Retry: true})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "erro interno"})
	}
}
