package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/inventarios-api/internal/domain/entity"
	"github.com/jhoicas/inventarios-api/internal/domain/repository"
)

var _ repository.ResponsivaRepository = (*ResponsivaRepo)(nil)

// ResponsivaRepo implementación de ResponsivaRepository.
type ResponsivaRepo struct {
	q Querier
}

// NewResponsivaRepository construye el adaptador de responsivas.
func NewResponsivaRepository(q Querier) *ResponsivaRepo {
	return &ResponsivaRepo{q: q}
}

const responsivaSelect = `
	SELECT r.id, r.folio, r.fecha, r.responsable, r.id_area, r.id_departamento,
	       COALESCE(r.user_id, 0), r.status, COALESCE(a.name, ''), COALESCE(d.name, '')
	FROM responsivas r
	LEFT JOIN areas a ON a.id = r.id_area
	LEFT JOIN departments d ON d.id = r.id_departamento`

// List responsivas activas, más recientes primero.
func (r *ResponsivaRepo) List(ctx context.Context) ([]*entity.Responsiva, error) {
	rows, err := r.q.Query(ctx, responsivaSelect+` WHERE r.status = 1 ORDER BY r.fecha DESC, r.id DESC`)
	if err != nil {
		return nil, fmt.Errorf("list responsivas: %w", err)
	}
	defer rows.Close()

	var list []*entity.Responsiva
	for rows.Next() {
		rs, err := scanResponsiva(rows)
		if err != nil {
			return nil, fmt.Errorf("scan responsiva: %w", err)
		}
		list = append(list, rs)
	}
	return list, rows.Err()
}

// GetByID responsiva con sus equipos.
func (r *ResponsivaRepo) GetByID(ctx context.Context, id int64) (*entity.Responsiva, error) {
	rs, err := scanResponsiva(r.q.QueryRow(ctx, responsivaSelect+` WHERE r.id = $1`, id))
	if err != nil {
		return nil, notFound("get responsiva", err)
	}

	rows, err := r.q.Query(ctx, `
		SELECT dv.id, dv.brand, dv.model, dv.serial_number, COALESCE(c.name, '')
		FROM responsiva_equipos re
		JOIN devices dv ON dv.id = re.id_device
		LEFT JOIN categories c ON c.id = dv.category_id
		WHERE re.id_responsiva = $1
		ORDER BY re.id`, id)
	if err != nil {
		return nil, fmt.Errorf("responsiva devices: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var d entity.ResponsivaDevice
		if err := rows.Scan(&d.ID, &d.Brand, &d.Model, &d.SerialNumber, &d.Category); err != nil {
			return nil, fmt.Errorf("scan responsiva device: %w", err)
		}
		rs.Devices = append(rs.Devices, d)
	}
	return rs, rows.Err()
}

// Create inserta la responsiva; el folio ya debe venir asignado.
func (r *ResponsivaRepo) Create(ctx context.Context, rs *entity.Responsiva) error {
	err := r.q.QueryRow(ctx, `
		INSERT INTO responsivas (folio, fecha, responsable, id_area, id_departamento, user_id, status)
		VALUES ($1, $2, $3, $4, $5, $6, 1) RETURNING id, status`,
		rs.Folio, rs.Fecha, rs.Responsable, rs.AreaID, rs.DepartmentID, nullableID(rs.UserID),
	).Scan(&rs.ID, &rs.Status)
	return mapWriteErr("insert responsiva", err, map[string]string{"responsivas_folio_key": "folio"})
}

// AddDevice vincula un equipo a la responsiva.
func (r *ResponsivaRepo) AddDevice(ctx context.Context, responsivaID, deviceID int64) error {
	_, err := r.q.Exec(ctx,
		`INSERT INTO responsiva_equipos (id_responsiva, id_device) VALUES ($1, $2)`, responsivaID, deviceID)
	return mapWriteErr("add responsiva device", err, nil)
}

// DeviceIDs equipos vinculados a la responsiva.
func (r *ResponsivaRepo) DeviceIDs(ctx context.Context, responsivaID int64) ([]int64, error) {
	rows, err := r.q.Query(ctx,
		`SELECT id_device FROM responsiva_equipos WHERE id_responsiva = $1 ORDER BY id`, responsivaID)
	if err != nil {
		return nil, fmt.Errorf("responsiva device ids: %w", err)
	}
	return pgx.CollectRows(rows, pgx.RowTo[int64])
}

// ActiveForDevice id de la responsiva activa del equipo, 0 si no tiene.
func (r *ResponsivaRepo) ActiveForDevice(ctx context.Context, deviceID int64) (int64, error) {
	var id int64
	err := r.q.QueryRow(ctx, `
		SELECT rs.id FROM responsiva_equipos re
		JOIN responsivas rs ON rs.id = re.id_responsiva
		WHERE re.id_device = $1 AND rs.status = 1
		ORDER BY rs.id DESC LIMIT 1`, deviceID).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("active responsiva: %w", err)
	}
	return id, nil
}

func scanResponsiva(row pgx.Row) (*entity.Responsiva, error) {
	var rs entity.Responsiva
	if err := row.Scan(&rs.ID, &rs.Folio, &rs.Fecha, &rs.Responsable, &rs.AreaID, &rs.DepartmentID,
		&rs.UserID, &rs.Status, &rs.AreaName, &rs.DepartmentName); err != nil {
		return nil, err
	}
	return &rs, nil
}

// nullableID guarda NULL en llaves foráneas opcionales cuando el id es 0.
func nullableID(id int64) *int64 {
	if id == 0 {
		return nil
	}
	return &id
}
