package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/inventarios-api/internal/domain/entity"
	"github.com/jhoicas/inventarios-api/internal/domain/repository"
)

var _ repository.DepartmentRepository = (*DepartmentRepo)(nil)

var departmentUniqueFields = map[string]string{
	"departments_name_key":         "name",
	"departments_abbreviation_key": "abbreviation",
}

// DepartmentRepo implementación del puerto DepartmentRepository sobre PostgreSQL.
type DepartmentRepo struct {
	q Querier
}

// NewDepartmentRepository construye el adaptador de persistencia para departamentos.
func NewDepartmentRepository(q Querier) *DepartmentRepo {
	return &DepartmentRepo{q: q}
}

const departmentColumns = `id, name, abbreviation, description, department_head, status`

// List departamentos activos, más recientes primero.
func (r *DepartmentRepo) List(ctx context.Context) ([]*entity.Department, error) {
	rows, err := r.q.Query(ctx, `SELECT `+departmentColumns+` FROM departments WHERE status = 1 ORDER BY id DESC`)
	if err != nil {
		return nil, fmt.Errorf("list departments: %w", err)
	}
	defer rows.Close()

	var list []*entity.Department
	for rows.Next() {
		d, err := scanDepartment(rows)
		if err != nil {
			return nil, fmt.Errorf("scan department: %w", err)
		}
		list = append(list, d)
	}
	return list, rows.Err()
}

// GetByID obtiene un departamento activo.
func (r *DepartmentRepo) GetByID(ctx context.Context, id int64) (*entity.Department, error) {
	d, err := scanDepartment(r.q.QueryRow(ctx,
		`SELECT `+departmentColumns+` FROM departments WHERE id = $1 AND status = 1`, id))
	if err != nil {
		return nil, notFound("get department", err)
	}
	return d, nil
}

// Create persiste un nuevo departamento activo.
func (r *DepartmentRepo) Create(ctx context.Context, d *entity.Department) error {
	err := r.q.QueryRow(ctx, `
		INSERT INTO departments (name, abbreviation, description, department_head, status)
		VALUES ($1, $2, $3, $4, 1)
		RETURNING id, status`,
		d.Name, d.Abbreviation, d.Description, d.DepartmentHead,
	).Scan(&d.ID, &d.Status)
	return mapWriteErr("insert department", err, departmentUniqueFields)
}

// Update actualiza los datos editables.
func (r *DepartmentRepo) Update(ctx context.Context, d *entity.Department) error {
	cmd, err := r.q.Exec(ctx, `
		UPDATE departments SET name = $2, abbreviation = $3, description = $4, department_head = $5
		WHERE id = $1`,
		d.ID, d.Name, d.Abbreviation, d.Description, d.DepartmentHead,
	)
	if err != nil {
		return mapWriteErr("update department", err, departmentUniqueFields)
	}
	if cmd.RowsAffected() == 0 {
		return notFound("update department", pgx.ErrNoRows)
	}
	return nil
}

// CountAssignedDevices cuenta equipos distintos asignados al departamento por responsivas activas.
func (r *DepartmentRepo) CountAssignedDevices(ctx context.Context, id int64) (int64, error) {
	var n int64
	err := r.q.QueryRow(ctx, `
		SELECT COUNT(DISTINCT re.id_device)
		FROM responsivas rs
		JOIN responsiva_equipos re ON re.id_responsiva = rs.id
		JOIN devices d ON d.id = re.id_device
		WHERE rs.id_departamento = $1 AND rs.status = 1 AND d.func = 'asignado'`, id).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count department devices: %w", err)
	}
	return n, nil
}

func scanDepartment(row pgx.Row) (*entity.Department, error) {
	var d entity.Department
	if err := row.Scan(&d.ID, &d.Name, &d.Abbreviation, &d.Description, &d.DepartmentHead, &d.Status); err != nil {
		return nil, err
	}
	return &d, nil
}
