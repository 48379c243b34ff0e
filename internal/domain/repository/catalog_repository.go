package repository

import (
	"context"

	"github.com/jhoicas/inventarios-api/internal/domain/entity"
)

// DepartmentRepository puerto de persistencia para Department.
type DepartmentRepository interface {
	List(ctx context.Context) ([]*entity.Department, error)
	GetByID(ctx context.Context, id int64) (*entity.Department, error)
	// Create y Update devuelven domain.FieldError(domain.ErrDuplicate) ante nombre o abreviatura repetidos.
	Create(ctx context.Context, d *entity.Department) error
	Update(ctx context.Context, d *entity.Department) error
	// CountAssignedDevices equipos asignados al departamento mediante responsivas activas.
	CountAssignedDevices(ctx context.Context, id int64) (int64, error)
}

// FloorRepository puerto de persistencia para Floor.
type FloorRepository interface {
	List(ctx context.Context) ([]*entity.Floor, error)
	GetByID(ctx context.Context, id int64) (*entity.Floor, error)
	// FindByName busca sin importar status, mayúsculas ni espacios; nil si no existe.
	FindByName(ctx context.Context, name string) (*entity.Floor, error)
	Create(ctx context.Context, f *entity.Floor) error
	Update(ctx context.Context, f *entity.Floor) error
	CountActiveAreas(ctx context.Context, id int64) (int64, error)
}

// AreaRepository puerto de persistencia para Area.
type AreaRepository interface {
	List(ctx context.Context) ([]*entity.Area, error)
	GetByID(ctx context.Context, id int64) (*entity.Area, error)
	FindByName(ctx context.Context, name string) (*entity.Area, error)
	Create(ctx context.Context, a *entity.Area) error
	Update(ctx context.Context, a *entity.Area) error
	CountAssignedDevices(ctx context.Context, id int64) (int64, error)
}

// CategoryRepository puerto de persistencia para Category y sus campos personalizados.
type CategoryRepository interface {
	List(ctx context.Context, typ *entity.CategoryType) ([]*entity.Category, error)
	GetByID(ctx context.Context, id int64) (*entity.Category, error)
	// GetAny devuelve la categoría aunque esté dada de baja.
	GetAny(ctx context.Context, id int64) (*entity.Category, error)
	FindByName(ctx context.Context, name string) (*entity.Category, error)
	Create(ctx context.Context, c *entity.Category) error
	Update(ctx context.Context, c *entity.Category) error
	// CountItems equipos + accesorios de la categoría (solo activos si activeOnly).
	CountItems(ctx context.Context, id int64, activeOnly bool) (int64, error)

	CreateField(ctx context.Context, f *entity.CustomField) error
	ListFields(ctx context.Context, categoryID int64) ([]*entity.CustomField, error)
	GetField(ctx context.Context, id int64) (*entity.CustomField, error)
	CountFieldValues(ctx context.Context, fieldID int64) (int64, error)
}
