package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/inventarios-api/internal/domain/entity"
	"github.com/jhoicas/inventarios-api/internal/domain/repository"
)

var _ repository.FloorRepository = (*FloorRepo)(nil)

var floorUniqueFields = map[string]string{"floors_name_key": "name"}

// FloorRepo implementación de FloorRepository.
type FloorRepo struct {
	q Querier
}

// NewFloorRepository construye el adaptador de pisos.
func NewFloorRepository(q Querier) *FloorRepo {
	return &FloorRepo{q: q}
}

// List pisos activos.
func (r *FloorRepo) List(ctx context.Context) ([]*entity.Floor, error) {
	rows, err := r.q.Query(ctx, `SELECT id, name, description, status FROM floors WHERE status = 1 ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list floors: %w", err)
	}
	defer rows.Close()

	var list []*entity.Floor
	for rows.Next() {
		f, err := scanFloor(rows)
		if err != nil {
			return nil, fmt.Errorf("scan floor: %w", err)
		}
		list = append(list, f)
	}
	return list, rows.Err()
}

// GetByID piso activo por id.
func (r *FloorRepo) GetByID(ctx context.Context, id int64) (*entity.Floor, error) {
	f, err := scanFloor(r.q.QueryRow(ctx,
		`SELECT id, name, description, status FROM floors WHERE id = $1 AND status = 1`, id))
	if err != nil {
		return nil, notFound("get floor", err)
	}
	return f, nil
}

// FindByName búsqueda exacta sin distinguir mayúsculas; incluye pisos inactivos.
func (r *FloorRepo) FindByName(ctx context.Context, name string) (*entity.Floor, error) {
	f, err := scanFloor(r.q.QueryRow(ctx,
		`SELECT id, name, description, status FROM floors WHERE LOWER(TRIM(name)) = LOWER(TRIM($1))`, name))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find floor: %w", err)
	}
	return f, nil
}

// Create inserta un piso activo.
func (r *FloorRepo) Create(ctx context.Context, f *entity.Floor) error {
	err := r.q.QueryRow(ctx,
		`INSERT INTO floors (name, description, status) VALUES ($1, $2, 1) RETURNING id, status`,
		f.Name, f.Description).Scan(&f.ID, &f.Status)
	return mapWriteErr("insert floor", err, floorUniqueFields)
}

// Update actualiza nombre y descripción.
func (r *FloorRepo) Update(ctx context.Context, f *entity.Floor) error {
	cmd, err := r.q.Exec(ctx, `UPDATE floors SET name = $2, description = $3 WHERE id = $1`,
		f.ID, f.Name, f.Description)
	if err != nil {
		return mapWriteErr("update floor", err, floorUniqueFields)
	}
	if cmd.RowsAffected() == 0 {
		return notFound("update floor", pgx.ErrNoRows)
	}
	return nil
}

// CountActiveAreas áreas activas del piso.
func (r *FloorRepo) CountActiveAreas(ctx context.Context, id int64) (int64, error) {
	var n int64
	if err := r.q.QueryRow(ctx,
		`SELECT COUNT(*) FROM areas WHERE id_floor = $1 AND status = 1`, id).Scan(&n); err != nil {
		return 0, fmt.Errorf("count floor areas: %w", err)
	}
	return n, nil
}

func scanFloor(row pgx.Row) (*entity.Floor, error) {
	var f entity.Floor
	if err := row.Scan(&f.ID, &f.Name, &f.Description, &f.Status); err != nil {
		return nil, err
	}
	return &f, nil
}
