package repository

import (
	"context"

	"github.com/jhoicas/inventarios-api/internal/domain/entity"
)

// DeviceRepository puerto de persistencia para Device.
type DeviceRepository interface {
	// List equipos activos de categorías tipo equipo.
	List(ctx context.Context) ([]*entity.Device, error)
	GetByID(ctx context.Context, id int64) (*entity.Device, error)
	// GetForUpdate bloquea la fila (SELECT ... FOR UPDATE) sin importar status.
	GetForUpdate(ctx context.Context, id int64) (*entity.Device, error)
	Create(ctx context.Context, d *entity.Device) error
	Update(ctx context.Context, d *entity.Device) error
	// SetFunc cambia el estado operativo; markUsed además pone is_new en false.
	SetFunc(ctx context.Context, id int64, f entity.DeviceFunc, markUsed bool) error

	CustomValues(ctx context.Context, deviceID int64) ([]entity.CustomValue, error)
	UpsertCustomValue(ctx context.Context, deviceID, fieldID int64, value string) error
	// Location ubicación según la responsiva activa; nil si no hay.
	Location(ctx context.Context, deviceID int64) (*entity.DeviceLocation, error)

	ListByCategory(ctx context.Context, categoryID int64) ([]*entity.Device, error)
	// ListByDepartment equipos asignados al departamento por responsivas activas.
	ListByDepartment(ctx context.Context, departmentID int64) ([]*entity.Device, error)
}

// AccessoryRepository puerto de persistencia para Accessory.
type AccessoryRepository interface {
	List(ctx context.Context) ([]*entity.Accessory, error)
	GetByID(ctx context.Context, id int64) (*entity.Accessory, error)
	ExistsActiveName(ctx context.Context, name string) (bool, error)
	Create(ctx context.Context, a *entity.Accessory) error
	Update(ctx context.Context, a *entity.Accessory) error
}
