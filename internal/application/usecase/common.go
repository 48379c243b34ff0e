package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/jhoicas/inventarios-api/internal/application/history"
	"github.com/jhoicas/inventarios-api/internal/domain"
	"github.com/jhoicas/inventarios-api/internal/domain/entity"
	"github.com/jhoicas/inventarios-api/internal/domain/repository"
)

// duplicateName traduce un nombre ya registrado al error que espera el cliente:
// activo -> FieldError(name), dado de baja -> ReactivableError con su id.
func duplicateName(status int, id int64) error {
	if status == entity.StatusInactive {
		return &domain.ReactivableError{
			ID:  id,
			Err: fmt.Errorf("%w: existe un registro eliminado con ese nombre", domain.ErrDuplicate),
		}
	}
	return domain.NewFieldError("name", domain.ErrDuplicate)
}

// reactivate vuelve a status 1 una fila dada de baja; si ya está activa es un conflicto.
func reactivate(ctx context.Context, s repository.Store, table string, id, userID int64) error {
	snap, err := s.Rows().Snapshot(ctx, table, id)
	if err != nil {
		return err
	}
	if status, _ := snap["status"].(int64); status == entity.StatusActive {
		return fmt.Errorf("%w: el registro ya está activo", domain.ErrConflict)
	}
	return history.Reactivate(ctx, s, table, id, userID)
}

func isNotFound(err error) bool {
	return errors.Is(err, domain.ErrNotFound)
}
