package http

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/merchbydz/backoffice/internal/application/dto"
	"github.com/merchbydz/backoffice/internal/domain"
)

// writeError traduce los errores de dominio a status HTTP y dto.ErrorResponse.
// Los errores no clasificados se registran y se devuelven como INTERNAL sin detalle.
func writeError(c *fiber.Ctx, err error) error {
	status, code := fiber.StatusInternalServerError, "INTERNAL"
	switch {
	case errors.Is(err, domain.ErrNotFound):
		status, code = fiber.StatusNotFound, "NOT_FOUND"
	case errors.Is(err, domain.ErrInvalidStatus):
		status, code = fiber.StatusBadRequest, "INVALID_STATUS"
	case errors.Is(err, domain.ErrInvalidChannel):
		status, code = fiber.StatusBadRequest, "INVALID_CHANNEL"
	case errors.Is(err, domain.ErrInvalidCategory):
		status, code = fiber.StatusBadRequest, "INVALID_CATEGORY"
	case errors.Is(err, domain.ErrInvalidInput):
		status, code = fiber.StatusBadRequest, "VALIDATION"
	case errors.Is(err, domain.ErrInsufficientStock):
		status, code = fiber.StatusConflict, "INSUFFICIENT_STOCK"
	case errors.Is(err, domain.ErrUnauthorized):
		status, code = fiber.StatusUnauthorized, "UNAUTHORIZED"
	case errors.Is(err, domain.ErrTooManyAttempts):
		status, code = fiber.StatusTooManyRequests, "TOO_MANY_ATTEMPTS"
	case errors.Is(err, domain.ErrUnavailable):
		status, code = fiber.StatusServiceUnavailable, "UNAVAILABLE"
	case errors.Is(err, context.DeadlineExceeded):
		status, code = fiber.StatusGatewayTimeout, "TIMEOUT"
	}

	msg := err.Error()
	if status == fiber.StatusInternalServerError {
		log.Error().Err(err).Str("method", c.Method()).Str("path", c.Path()).Msg("error interno")
		msg = "error interno del servidor"
	}
	return c.Status(status).JSON(dto.ErrorResponse{Code: code, Message: msg})
}

func badBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo de la petición inválido"})
}
