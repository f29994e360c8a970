package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/bloodstock/blood-stock-service/internal/application/dto"
	"github.com/bloodstock/blood-stock-service/internal/domain"
)

// Códigos de error del envelope uniforme.
const (
	CodeValidation        = "VALIDATION_ERROR"
	CodeStockNotFound     = "STOCK_NOT_FOUND"
	CodeInsufficientStock = "INSUFFICIENT_STOCK"
	CodeRateLimitExceeded = "RATE_LIMIT_EXCEEDED"
	CodeUnauthorized      = "UNAUTHORIZED"
	CodeNotFound          = "NOT_FOUND"
	CodeDuplicate         = "DUPLICATE"
	CodeInternal          = "INTERNAL_ERROR"
	CodeUnavailable       = "SERVICE_UNAVAILABLE"
)

// writeError responde el envelope uniforme {statusCode, code, message,
// details?, traceId}.
func writeError(c *fiber.Ctx, status int, code, message string, details any) error {
	return c.Status(status).JSON(dto.ErrorResponse{
		StatusCode: status,
		Code:       code,
		Message:    message,
		Details:    details,
		TraceID:    GetTraceID(c),
	})
}

// mapDomainError traduce errores de dominio al envelope HTTP. Los resultados
// de negocio llevan detalle legible por máquina; las fallas de infraestructura
// se responden genéricas, sin filtrar detalle interno.
func mapDomainError(c *fiber.Ctx, err error) error {
	var notFound *domain.StockNotFoundError
	if errors.As(err, &notFound) {
		return writeError(c, fiber.StatusNotFound, CodeStockNotFound,
			"stock no encontrado", fiber.Map{"stockId": notFound.StockID})
	}
	var insufficient *domain.InsufficientStockError
	if errors.As(err, &insufficient) {
		return writeError(c, fiber.StatusConflict, CodeInsufficientStock,
			"stock insuficiente para la salida solicitada", fiber.Map{
				"stockId":   insufficient.StockID,
				"requested": insufficient.Requested,
				"available": insufficient.Available,
			})
	}
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return writeError(c, fiber.StatusBadRequest, CodeValidation, "datos inválidos", nil)
	case errors.Is(err, domain.ErrNotFound):
		return writeError(c, fiber.StatusNotFound, CodeNotFound, "recurso no encontrado", nil)
	case errors.Is(err, domain.ErrDuplicate):
		return writeError(c, fiber.StatusConflict, CodeDuplicate, "el recurso ya existe", nil)
	case errors.Is(err, domain.ErrEmailAlreadyExists):
		return writeError(c, fiber.StatusConflict, CodeDuplicate, "el email ya está registrado", nil)
	case errors.Is(err, domain.ErrUserNotFound), errors.Is(err, domain.ErrUnauthorized):
		return writeError(c, fiber.StatusUnauthorized, CodeUnauthorized, "credenciales inválidas", nil)
	}
	return writeError(c, fiber.StatusInternalServerError, CodeInternal, "error interno", nil)
}
