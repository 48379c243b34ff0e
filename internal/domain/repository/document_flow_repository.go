package repository

import (
	"context"
	"time"

	"github.com/jhoicas/inventarios-api/internal/domain/entity"
)

// ResponsivaRepository puerto de persistencia para Responsiva.
type ResponsivaRepository interface {
	List(ctx context.Context) ([]*entity.Responsiva, error)
	// GetByID incluye nombres de área/departamento y los equipos.
	GetByID(ctx context.Context, id int64) (*entity.Responsiva, error)
	Create(ctx context.Context, r *entity.Responsiva) error
	AddDevice(ctx context.Context, responsivaID, deviceID int64) error
	DeviceIDs(ctx context.Context, responsivaID int64) ([]int64, error)
	// ActiveForDevice id de la responsiva activa que contiene al equipo (0 si ninguna).
	ActiveForDevice(ctx context.Context, deviceID int64) (int64, error)
}

// BajaRepository puerto de persistencia para Baja.
type BajaRepository interface {
	List(ctx context.Context) ([]*entity.Baja, error)
	GetByID(ctx context.Context, id int64) (*entity.Baja, error)
	Create(ctx context.Context, b *entity.Baja) error
	IDsByDevice(ctx context.Context, deviceID int64) ([]int64, error)
}

// MantenimientoRepository puerto de persistencia para Mantenimiento.
type MantenimientoRepository interface {
	List(ctx context.Context) ([]*entity.Mantenimiento, error)
	GetByID(ctx context.Context, id int64) (*entity.Mantenimiento, error)
	Create(ctx context.Context, m *entity.Mantenimiento) error
}

// BackupScheduleRepository configuración del respaldo automático (una sola activa).
type BackupScheduleRepository interface {
	// GetActive devuelve domain.ErrNotFound si no hay configuración.
	GetActive(ctx context.Context) (*entity.BackupSchedule, error)
	// Replace desactiva la configuración vigente e inserta la nueva como activa.
	Replace(ctx context.Context, s *entity.BackupSchedule) error
	MarkRun(ctx context.Context, id int64, at time.Time) error
}
