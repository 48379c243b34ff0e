package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/inventarios-api/internal/domain/entity"
	"github.com/jhoicas/inventarios-api/internal/domain/repository"
)

var _ repository.LocationRepository = (*LocationRepo)(nil)

// LocationRepo árbol de ubicaciones de equipos asignados.
type LocationRepo struct {
	q Querier
}

// NewLocationRepository construye el adaptador de ubicaciones.
func NewLocationRepository(q Querier) *LocationRepo {
	return &LocationRepo{q: q}
}

// Tree pisos → áreas → equipos asignados por responsivas activas.
// departmentID 0 no filtra. Cada equipo lleva el último mantenimiento de su responsiva.
func (r *LocationRepo) Tree(ctx context.Context, departmentID int64) ([]*entity.FloorLocation, error) {
	rows, err := r.q.Query(ctx, `
		SELECT f.id, f.name, f.description, a.id, a.name, a.description,
		       d.id, d.brand, d.model, d.serial_number, d.category_id, COALESCE(c.name, ''),
		       rs.responsable, COALESCE(dep.name, ''), rs.folio, rs.id,
		       m.fecha, m.completo
		FROM responsivas rs
		JOIN responsiva_equipos re ON re.id_responsiva = rs.id
		JOIN devices d ON d.id = re.id_device AND d.status = 1
		LEFT JOIN categories c ON c.id = d.category_id
		JOIN areas a ON a.id = rs.id_area
		JOIN floors f ON f.id = a.id_floor
		LEFT JOIN departments dep ON dep.id = rs.id_departamento
		LEFT JOIN LATERAL (
			SELECT mt.fecha, mt.completo FROM mantenimientos mt
			WHERE mt.responsiva_id = rs.id
			ORDER BY mt.fecha DESC, mt.id DESC LIMIT 1
		) m ON TRUE
		WHERE rs.status = 1 AND ($1::bigint = 0 OR rs.id_departamento = $1)
		ORDER BY f.name, f.id, a.name, a.id, d.id`, departmentID)
	if err != nil {
		return nil, fmt.Errorf("location tree: %w", err)
	}
	defer rows.Close()

	var floors []*entity.FloorLocation
	var floor *entity.FloorLocation
	for rows.Next() {
		var f entity.Floor
		var a entity.Area
		var d entity.LocatedDevice
		var fecha *time.Time
		var completo *bool
		if err := rows.Scan(&f.ID, &f.Name, &f.Description, &a.ID, &a.Name, &a.Description,
			&d.ID, &d.Brand, &d.Model, &d.SerialNumber, &d.CategoryID, &d.Category,
			&d.Responsable, &d.Departamento, &d.Folio, &d.ResponsivaID, &fecha, &completo); err != nil {
			return nil, fmt.Errorf("scan location: %w", err)
		}
		d.UltimoMant = fecha
		d.UltimoMantCompleto = completo

		if floor == nil || floor.ID != f.ID {
			f.Status = entity.StatusActive
			floor = &entity.FloorLocation{Floor: f}
			floors = append(floors, floor)
		}
		n := len(floor.Areas)
		if n == 0 || floor.Areas[n-1].ID != a.ID {
			a.FloorID = f.ID
			a.FloorName = f.Name
			a.Status = entity.StatusActive
			floor.Areas = append(floor.Areas, entity.AreaLocation{Area: a})
			n++
		}
		floor.Areas[n-1].Devices = append(floor.Areas[n-1].Devices, d)
	}
	return floors, rows.Err()
}
