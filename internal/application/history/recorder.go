// Package history registra la bitácora de movimientos y deshace cambios a partir de ella.
package history

import (
	"context"
	"fmt"

	"github.com/jhoicas/inventarios-api/internal/domain/movement"
	"github.com/jhoicas/inventarios-api/internal/domain/repository"
)

// Record agrega un movimiento. Los snapshots se proyectan sobre la lista blanca de la tabla,
// así que columnas como password_id nunca llegan a before_info/after_info.
// Debe llamarse con el mismo Store (transacción) que hizo la mutación: si falla,
// la mutación se descarta con el rollback.
func Record(
	ctx context.Context,
	movements repository.MovementRepository,
	table string,
	kind movement.ChangeType,
	objectID, userID int64,
	before, after movement.Snapshot,
) (*movement.Movement, error) {
	t, err := movement.Lookup(table)
	if err != nil {
		return nil, err
	}
	if before, err = t.Project(before); err != nil {
		return nil, err
	}
	if after, err = t.Project(after); err != nil {
		return nil, err
	}

	m := &movement.Movement{
		Table:      table,
		ChangeType: kind,
		ObjectID:   objectID,
		UserID:     userID,
		Before:     before,
		After:      after,
	}
	if err := m.CheckSnapshots(); err != nil {
		return nil, err
	}
	if err := movements.Create(ctx, m); err != nil {
		return nil, fmt.Errorf("registrar movimiento %s/%d: %w", table, objectID, err)
	}
	return m, nil
}

// RecordCreate registra la creación de la fila id leyendo su estado actual.
func RecordCreate(ctx context.Context, s repository.Store, table string, id, userID int64) error {
	after, err := s.Rows().Snapshot(ctx, table, id)
	if err != nil {
		return err
	}
	_, err = Record(ctx, s.Movements(), table, movement.Create, id, userID, nil, after)
	return err
}

// Track toma el snapshot de la fila, ejecuta fn y registra el movimiento kind con
// el estado anterior y el posterior (nulo para delete y hard-delete).
func Track(
	ctx context.Context,
	s repository.Store,
	table string,
	kind movement.ChangeType,
	id, userID int64,
	fn func() error,
) error {
	before, err := s.Rows().Snapshot(ctx, table, id)
	if err != nil {
		return err
	}
	if err := fn(); err != nil {
		return err
	}

	var after movement.Snapshot
	if kind != movement.Delete && kind != movement.HardDelete {
		if after, err = s.Rows().Snapshot(ctx, table, id); err != nil {
			return err
		}
	}
	_, err = Record(ctx, s.Movements(), table, kind, id, userID, before, after)
	return err
}

// SoftDelete baja lógica (status = 0) registrada como movimiento delete.
func SoftDelete(ctx context.Context, s repository.Store, table string, id, userID int64) error {
	return Track(ctx, s, table, movement.Delete, id, userID, func() error {
		return s.Rows().SetStatus(ctx, table, id, 0)
	})
}

// Reactivate vuelve a status = 1 y lo registra como restauración.
func Reactivate(ctx context.Context, s repository.Store, table string, id, userID int64) error {
	return Track(ctx, s, table, movement.Restore, id, userID, func() error {
		return s.Rows().SetStatus(ctx, table, id, 1)
	})
}
