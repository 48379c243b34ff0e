package postgres

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jhoicas/inventarios-api/internal/domain"
)

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	return pgCode(err) == "23505"
}

// isForeignKeyViolation verifica si un error es una violación de llave foránea (23503).
func isForeignKeyViolation(err error) bool {
	return pgCode(err) == "23503"
}

func pgCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

// constraintName devuelve el constraint violado ("" si no es un error de PostgreSQL).
func constraintName(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.ConstraintName
	}
	return ""
}

// mapWriteErr traduce errores de escritura a errores de dominio.
// fields asocia nombres de constraint con el campo que se reporta al cliente.
func mapWriteErr(op string, err error, fields map[string]string) error {
	switch {
	case err == nil:
		return nil
	case isUniqueViolation(err):
		if field, ok := fields[constraintName(err)]; ok {
			return domain.NewFieldError(field, domain.ErrDuplicate)
		}
		return fmt.Errorf("%s: %w", op, domain.ErrDuplicate)
	case isForeignKeyViolation(err):
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && strings.HasPrefix(pgErr.Message, "update or delete") {
			return fmt.Errorf("%s: %w", op, domain.ErrHasDependents)
		}
		return fmt.Errorf("%s: referencia inexistente: %w", op, domain.ErrInvalidInput)
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
}

// notFound convierte pgx.ErrNoRows en domain.ErrNotFound.
func notFound(op string, err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%s: %w", op, domain.ErrNotFound)
	}
	return fmt.Errorf("%s: %w", op, err)
}
