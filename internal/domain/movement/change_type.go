// Package movement modela la bitácora de cambios (movimientos) y las reglas
// para deshacerlos: restaurar, revertir o eliminar definitivamente.
package movement

import (
	"fmt"
	"time"

	"github.com/jhoicas/inventarios-api/internal/domain"
)

// ChangeType tipo de cambio registrado en un movimiento.
type ChangeType int16

const (
	Create     ChangeType = 1
	Update     ChangeType = 2
	Delete     ChangeType = 3 // baja lógica (status = 0)
	HardDelete ChangeType = 4
	Restore    ChangeType = 5 // restauración o reversión
)

// Valid indica si el valor pertenece a la enumeración.
func (c ChangeType) Valid() bool {
	return c >= Create && c <= Restore
}

func (c ChangeType) String() string {
	switch c {
	case Create:
		return "create"
	case Update:
		return "update"
	case Delete:
		return "delete"
	case HardDelete:
		return "hard-delete"
	case Restore:
		return "restore"
	default:
		return fmt.Sprintf("ChangeType(%d)", int16(c))
	}
}

// ParseChangeType convierte el entero almacenado en un ChangeType válido.
func ParseChangeType(n int) (ChangeType, error) {
	c := ChangeType(n)
	if !c.Valid() {
		return 0, fmt.Errorf("%w: change_type %d", domain.ErrInvalidInput, n)
	}
	return c, nil
}

// Movement registro de auditoría de una mutación sobre una fila.
type Movement struct {
	ID         int64
	Table      string
	ChangeType ChangeType
	ObjectID   int64
	UserID     int64 // 0 = sin usuario
	Before     Snapshot
	After      Snapshot
	Time       time.Time
	UserName   string // solo lectura (join con users)
}

// CheckSnapshots valida qué snapshots exige cada tipo de cambio y limpia los que no aplican.
//   - create: after obligatorio, before nulo
//   - update/restore: ambos obligatorios
//   - delete/hard-delete: before obligatorio, after nulo
func (m *Movement) CheckSnapshots() error {
	switch m.ChangeType {
	case Create:
		if m.After == nil {
			return fmt.Errorf("%w: create sin after_info", domain.ErrInvalidInput)
		}
		m.Before = nil
	case Update, Restore:
		if m.Before == nil || m.After == nil {
			return fmt.Errorf("%w: %s requiere before_info y after_info", domain.ErrInvalidInput, m.ChangeType)
		}
	case Delete, HardDelete:
		if m.Before == nil {
			return fmt.Errorf("%w: %s sin before_info", domain.ErrInvalidInput, m.ChangeType)
		}
		m.After = nil
	default:
		return fmt.Errorf("%w: change_type %d", domain.ErrInvalidInput, m.ChangeType)
	}
	return nil
}
