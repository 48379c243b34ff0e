package repository

import (
	"context"

	"github.com/jhoicas/inventarios-api/internal/domain/movement"
)

// MovementFilter filtros del historial; valores cero no filtran.
type MovementFilter struct {
	Table      string
	ObjectID   int64
	ChangeType movement.ChangeType
	Limit      int
	Offset     int
}

// MovementRepository persistencia de la bitácora de movimientos.
// Los movimientos nunca se actualizan: solo se insertan o se eliminan.
type MovementRepository interface {
	Create(ctx context.Context, m *movement.Movement) error
	GetByID(ctx context.Context, id int64) (*movement.Movement, error)
	// List devuelve los movimientos más recientes primero, con el nombre del usuario.
	List(ctx context.Context, f MovementFilter) ([]*movement.Movement, error)
	// DeleteForObject elimina los movimientos del objeto con alguno de los tipos dados.
	DeleteForObject(ctx context.Context, table string, objectID int64, kinds []movement.ChangeType) (int64, error)
}
