package http

import (
	"errors"
	"fmt"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/inventarios-api/internal/domain"
)

func TestMapError(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
		code   string
		field  string
		id     int64
	}{
		{"no encontrado", fmt.Errorf("área 4: %w", domain.ErrNotFound), fiber.StatusNotFound, "NOT_FOUND", "", 0},
		{"validación con campo", domain.NewFieldError("name", domain.ErrInvalidInput), fiber.StatusBadRequest, "VALIDATION", "name", 0},
		{"duplicado", domain.NewFieldError("serial_number", domain.ErrDuplicate), fiber.StatusConflict, "DUPLICATE", "serial_number", 0},
		{"reactivable", &domain.ReactivableError{ID: 9, Err: domain.ErrDuplicate}, fiber.StatusConflict, "REACTIVABLE", "", 9},
		{"código propio", &domain.CodedError{Code: "DEPT_HAS_EQUIPMENTS", Err: domain.ErrHasDependents}, fiber.StatusConflict, "DEPT_HAS_EQUIPMENTS", "", 0},
		{"tipo de cambio", domain.ErrInvalidChangeType, fiber.StatusBadRequest, "INVALID_CHANGE_TYPE", "", 0},
		{"ya purgado", domain.ErrAlreadyPurged, fiber.StatusConflict, "ALREADY_PURGED", "", 0},
		{"credenciales", domain.ErrUnauthorized, fiber.StatusUnauthorized, "UNAUTHORIZED", "", 0},
		{"inactivo", domain.ErrForbidden, fiber.StatusForbidden, "FORBIDDEN", "", 0},
		{"fiber", fiber.ErrRequestEntityTooLarge, fiber.StatusRequestEntityTooLarge, "BODY_TOO_LARGE", "", 0},
		{"desconocido", errors.New("conexión rechazada"), fiber.StatusInternalServerError, "INTERNAL", "", 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			status, body := mapError(tc.err)
			assert.Equal(t, tc.status, status)
			assert.Equal(t, tc.code, body.Code)
			assert.Equal(t, tc.field, body.Field)
			assert.Equal(t, tc.id, body.ID)
		})
	}
}

func TestMapError_InternoConDetalle(t *testing.T) {
	status, body := mapError(errors.New("pq: password authentication failed"))
	assert.Equal(t, 500, status)
	assert.Equal(t, "INTERNAL", body.Code)
	assert.NotContains(t, body.Message, "password")
	assert.Equal(t, "pq: password authentication failed", body.Details)

	_, body = mapError(domain.ErrNotFound)
	assert.Empty(t, body.Details)
}
