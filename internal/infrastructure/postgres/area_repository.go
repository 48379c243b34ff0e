package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/inventarios-api/internal/domain/entity"
	"github.com/jhoicas/inventarios-api/internal/domain/repository"
)

var _ repository.AreaRepository = (*AreaRepo)(nil)

var areaUniqueFields = map[string]string{"areas_name_key": "name"}

// AreaRepo implementación de AreaRepository.
type AreaRepo struct {
	q Querier
}

// NewAreaRepository construye el adaptador de áreas.
func NewAreaRepository(q Querier) *AreaRepo {
	return &AreaRepo{q: q}
}

const areaSelect = `
	SELECT a.id, a.name, a.description, a.id_floor, COALESCE(f.name, ''), a.status
	FROM areas a
	LEFT JOIN floors f ON f.id = a.id_floor`

// List áreas activas con el nombre de su piso.
func (r *AreaRepo) List(ctx context.Context) ([]*entity.Area, error) {
	rows, err := r.q.Query(ctx, areaSelect+` WHERE a.status = 1 ORDER BY f.name, a.name`)
	if err != nil {
		return nil, fmt.Errorf("list areas: %w", err)
	}
	defer rows.Close()

	var list []*entity.Area
	for rows.Next() {
		a, err := scanArea(rows)
		if err != nil {
			return nil, fmt.Errorf("scan area: %w", err)
		}
		list = append(list, a)
	}
	return list, rows.Err()
}

// GetByID área activa por id.
func (r *AreaRepo) GetByID(ctx context.Context, id int64) (*entity.Area, error) {
	a, err := scanArea(r.q.QueryRow(ctx, areaSelect+` WHERE a.id = $1 AND a.status = 1`, id))
	if err != nil {
		return nil, notFound("get area", err)
	}
	return a, nil
}

// FindByName incluye áreas inactivas.
func (r *AreaRepo) FindByName(ctx context.Context, name string) (*entity.Area, error) {
	a, err := scanArea(r.q.QueryRow(ctx, areaSelect+` WHERE LOWER(TRIM(a.name)) = LOWER(TRIM($1))`, name))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find area: %w", err)
	}
	return a, nil
}

// Create inserta un área activa.
func (r *AreaRepo) Create(ctx context.Context, a *entity.Area) error {
	err := r.q.QueryRow(ctx,
		`INSERT INTO areas (name, description, id_floor, status) VALUES ($1, $2, $3, 1) RETURNING id, status`,
		a.Name, a.Description, a.FloorID).Scan(&a.ID, &a.Status)
	return mapWriteErr("insert area", err, areaUniqueFields)
}

// Update actualiza nombre, descripción y piso.
func (r *AreaRepo) Update(ctx context.Context, a *entity.Area) error {
	cmd, err := r.q.Exec(ctx, `UPDATE areas SET name = $2, description = $3, id_floor = $4 WHERE id = $1`,
		a.ID, a.Name, a.Description, a.FloorID)
	if err != nil {
		return mapWriteErr("update area", err, areaUniqueFields)
	}
	if cmd.RowsAffected() == 0 {
		return notFound("update area", pgx.ErrNoRows)
	}
	return nil
}

// CountAssignedDevices equipos asignados en el área por responsivas activas.
func (r *AreaRepo) CountAssignedDevices(ctx context.Context, id int64) (int64, error) {
	var n int64
	err := r.q.QueryRow(ctx, `
		SELECT COUNT(DISTINCT re.id_device)
		FROM responsivas rs
		JOIN responsiva_equipos re ON re.id_responsiva = rs.id
		JOIN devices d ON d.id = re.id_device
		WHERE rs.id_area = $1 AND rs.status = 1 AND d.func = 'asignado'`, id).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count area devices: %w", err)
	}
	return n, nil
}

func scanArea(row pgx.Row) (*entity.Area, error) {
	var a entity.Area
	if err := row.Scan(&a.ID, &a.Name, &a.Description, &a.FloorID, &a.FloorName, &a.Status); err != nil {
		return nil, err
	}
	return &a, nil
}
