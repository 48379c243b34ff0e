package movement

import (
	"fmt"

	"github.com/jhoicas/inventarios-api/internal/domain"
)

// Action operación solicitada sobre un movimiento del historial.
type Action int

const (
	// ActionRestore deshace el movimiento (create, update o delete).
	ActionRestore Action = iota + 1
	// ActionRevert deshace únicamente una modificación.
	ActionRevert
	// ActionPurge elimina físicamente la fila afectada.
	ActionPurge
)

func (a Action) String() string {
	switch a {
	case ActionRestore:
		return "restore"
	case ActionRevert:
		return "revert"
	case ActionPurge:
		return "delete-permanent"
	default:
		return fmt.Sprintf("Action(%d)", int(a))
	}
}

// Plan pasos concretos que el motor ejecuta dentro de una sola transacción.
type Plan struct {
	// DeleteRow borra físicamente la fila objetivo.
	DeleteRow bool
	// Apply se escribe sobre la fila objetivo (UPDATE campo a campo).
	Apply Snapshot
	// Emit tipo del nuevo movimiento a registrar; 0 si no se registra ninguno.
	Emit ChangeType
	// Purge tipos de movimiento del mismo objeto que se eliminan al final.
	Purge []ChangeType
}

// PlanUndo decide qué hacer con un movimiento según su tipo y la acción pedida.
// Las combinaciones no permitidas devuelven un error de dominio explícito.
func PlanUndo(m *Movement, action Action) (Plan, error) {
	switch action {
	case ActionRestore:
		return planRestore(m)
	case ActionRevert:
		if m.ChangeType != Update {
			return Plan{}, fmt.Errorf("%w: movimiento %d es %s", domain.ErrNotRevertible, m.ID, m.ChangeType)
		}
		return planRestore(m)
	case ActionPurge:
		return planPurge(m)
	default:
		return Plan{}, fmt.Errorf("%w: acción %d", domain.ErrInvalidInput, int(action))
	}
}

func planRestore(m *Movement) (Plan, error) {
	switch m.ChangeType {
	case Create:
		// El objeto no existía antes: se elimina junto con su rastro de creación.
		return Plan{DeleteRow: true, Purge: []ChangeType{Create}}, nil
	case Update, Delete:
		if len(m.Before) == 0 {
			return Plan{}, fmt.Errorf("%w: movimiento %d sin before_info", domain.ErrInvalidInput, m.ID)
		}
		return Plan{Apply: m.Before, Emit: Restore, Purge: []ChangeType{Update, Delete}}, nil
	default:
		return Plan{}, fmt.Errorf("%w: movimiento %d es %s", domain.ErrInvalidChangeType, m.ID, m.ChangeType)
	}
}

func planPurge(m *Movement) (Plan, error) {
	if m.ChangeType == HardDelete {
		return Plan{}, fmt.Errorf("%w: movimiento %d", domain.ErrAlreadyPurged, m.ID)
	}
	return Plan{DeleteRow: true, Emit: HardDelete, Purge: []ChangeType{Update, Delete}}, nil
}
