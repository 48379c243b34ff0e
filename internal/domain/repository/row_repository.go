package repository

import (
	"context"

	"github.com/jhoicas/inventarios-api/internal/domain/movement"
)

// RowRepository acceso genérico por id a las filas de tablas auditadas.
// La tabla debe existir en movement.Lookup; solo se leen y escriben sus columnas permitidas.
type RowRepository interface {
	// Snapshot lee la fila (sin importar status). domain.ErrNotFound si no existe.
	Snapshot(ctx context.Context, table string, id int64) (movement.Snapshot, error)
	// Apply escribe los valores del snapshot sobre la fila. domain.ErrNotFound si no existe.
	Apply(ctx context.Context, table string, id int64, s movement.Snapshot) error
	// Delete elimina físicamente la fila; false si no existía.
	Delete(ctx context.Context, table string, id int64) (bool, error)
	// SetStatus baja lógica (0) o reactivación (1). domain.ErrNotFound si no existe.
	SetStatus(ctx context.Context, table string, id int64, status int) error
}
