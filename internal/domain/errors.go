package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrUserNotFound      = errors.New("usuario no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrDuplicate         = errors.New("recurso duplicado")
	ErrUnauthorized      = errors.New("no autorizado")
	ErrForbidden         = errors.New("acceso denegado")
	ErrConflict          = errors.New("conflicto con el estado actual")
	ErrHasDependents     = errors.New("el recurso tiene registros dependientes")
	ErrInvalidState      = errors.New("el equipo no está en el estado esperado")
	ErrInvalidChangeType = errors.New("tipo de movimiento no restaurable")
	ErrNotRevertible     = errors.New("solo se pueden revertir modificaciones")
	ErrAlreadyPurged     = errors.New("el objeto ya fue eliminado permanentemente")
)

// FieldError indica qué campo provocó el error (p. ej. nombre o abreviatura duplicada).
type FieldError struct {
	Field string
	Err   error
}

func (e *FieldError) Error() string { return fmt.Sprintf("%s: %v", e.Field, e.Err) }
func (e *FieldError) Unwrap() error { return e.Err }

// NewFieldError envuelve err con el campo que lo causó.
func NewFieldError(field string, err error) error {
	return &FieldError{Field: field, Err: err}
}

// ReactivableError indica que existe un registro dado de baja con el mismo nombre
// que puede reactivarse en lugar de crear uno nuevo.
type ReactivableError struct {
	ID  int64
	Err error
}

func (e *ReactivableError) Error() string {
	return fmt.Sprintf("%v (registro inactivo %d reactivable)", e.Err, e.ID)
}
func (e *ReactivableError) Unwrap() error { return e.Err }

// CodedError asocia un código estable para el cliente (p. ej. DEPT_HAS_EQUIPMENTS).
type CodedError struct {
	Code string
	Err  error
}

func (e *CodedError) Error() string { return e.Err.Error() }
func (e *CodedError) Unwrap() error { return e.Err }
