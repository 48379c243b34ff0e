package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventarios-api/internal/application/dto"
	"github.com/jhoicas/inventarios-api/internal/domain"
	"github.com/jhoicas/inventarios-api/pkg/logger"
)

// errorStatus orden de evaluación: el primer sentinel que coincide decide el status.
var errorStatus = []struct {
	err    error
	status int
	code   string
}{
	{domain.ErrNotFound, fiber.StatusNotFound, "NOT_FOUND"},
	{domain.ErrUserNotFound, fiber.StatusNotFound, "NOT_FOUND"},
	{domain.ErrInvalidChangeType, fiber.StatusBadRequest, "INVALID_CHANGE_TYPE"},
	{domain.ErrNotRevertible, fiber.StatusBadRequest, "NOT_REVERTIBLE"},
	{domain.ErrInvalidInput, fiber.StatusBadRequest, "VALIDATION"},
	{domain.ErrDuplicate, fiber.StatusConflict, "DUPLICATE"},
	{domain.ErrHasDependents, fiber.StatusConflict, "HAS_DEPENDENTS"},
	{domain.ErrInvalidState, fiber.StatusConflict, "INVALID_STATE"},
	{domain.ErrAlreadyPurged, fiber.StatusConflict, "ALREADY_PURGED"},
	{domain.ErrConflict, fiber.StatusConflict, "CONFLICT"},
	{domain.ErrUnauthorized, fiber.StatusUnauthorized, "UNAUTHORIZED"},
	{domain.ErrForbidden, fiber.StatusForbidden, "FORBIDDEN"},
}

// ErrorHandler convierte los errores devueltos por los handlers en dto.ErrorResponse.
// Los errores sin clasificar responden 500 con mensaje genérico y la causa en details.
func ErrorHandler(log *logger.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status, body := mapError(err)
		if status >= fiber.StatusInternalServerError {
			log.Error().Err(err).Str("method", c.Method()).Str("path", c.Path()).Msg("error interno")
		}
		return c.Status(status).JSON(body)
	}
}

func mapError(err error) (int, dto.ErrorResponse) {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return fe.Code, dto.ErrorResponse{Code: fiberCode(fe.Code), Message: fe.Message}
	}

	status, body := fiber.StatusInternalServerError, dto.ErrorResponse{Code: "INTERNAL", Message: "error interno del servidor"}
	for _, e := range errorStatus {
		if errors.Is(err, e.err) {
			status, body = e.status, dto.ErrorResponse{Code: e.code, Message: err.Error()}
			break
		}
	}
	if status == fiber.StatusInternalServerError {
		body.Details = err.Error()
		return status, body
	}

	var field *domain.FieldError
	if errors.As(err, &field) {
		body.Field = field.Field
	}
	var reactivable *domain.ReactivableError
	if errors.As(err, &reactivable) {
		body.ID = reactivable.ID
		body.Code = "REACTIVABLE"
	}
	var coded *domain.CodedError
	if errors.As(err, &coded) {
		body.Code = coded.Code
	}
	return status, body
}

func fiberCode(status int) string {
	switch status {
	case fiber.StatusNotFound:
		return "NOT_FOUND"
	case fiber.StatusMethodNotAllowed:
		return "METHOD_NOT_ALLOWED"
	case fiber.StatusRequestEntityTooLarge:
		return "BODY_TOO_LARGE"
	case fiber.StatusTooManyRequests:
		return "RATE_LIMITED"
	}
	if status >= fiber.StatusInternalServerError {
		return "INTERNAL"
	}
	return "BAD_REQUEST"
}
