package repository

import (
	"context"

	"github.com/jhoicas/inventarios-api/internal/domain/entity"
)

// ReportRepository consultas agregadas de solo lectura.
type ReportRepository interface {
	DeviceSummary(ctx context.Context) (*entity.DeviceSummary, error)
	DeviceRows(ctx context.Context, f entity.DeviceReportFilter) ([]entity.DeviceReportRow, error)
	AccessorySummary(ctx context.Context) (*entity.AccessorySummary, error)
	// AccessoryRows accesorios activos; sin categorías devuelve todos.
	AccessoryRows(ctx context.Context, categoryIDs []int64) ([]entity.AccessoryReportRow, error)
}

// SearchRepository búsqueda global por texto.
type SearchRepository interface {
	Search(ctx context.Context, q string, limit int) ([]entity.SearchResult, error)
}

// LocationRepository árbol piso → área → equipos asignados.
type LocationRepository interface {
	Tree(ctx context.Context, departmentID int64) ([]*entity.FloorLocation, error)
}

// DatabaseRepository operaciones de mantenimiento sobre toda la base.
type DatabaseRepository interface {
	// Restore vacía todas las tablas de la aplicación y ejecuta el script en una sola transacción.
	Restore(ctx context.Context, script string) error
}
