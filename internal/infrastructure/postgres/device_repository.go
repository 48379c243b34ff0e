package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/inventarios-api/internal/domain/entity"
	"github.com/jhoicas/inventarios-api/internal/domain/repository"
)

var _ repository.DeviceRepository = (*DeviceRepo)(nil)

// DeviceRepo implementación de DeviceRepository.
type DeviceRepo struct {
	q Querier
}

// NewDeviceRepository construye el adaptador de equipos.
func NewDeviceRepository(q Querier) *DeviceRepo {
	return &DeviceRepo{q: q}
}

const deviceSelect = `
	SELECT d.id, d.brand, d.model, d.serial_number, d.category_id, d.group_id, d.status,
	       d.details, d.is_new, d.func, COALESCE(c.name, ''), g.group_number
	FROM devices d
	JOIN categories c ON c.id = d.category_id
	LEFT JOIN device_groups g ON g.id = d.group_id`

// List equipos activos de categorías tipo equipo.
func (r *DeviceRepo) List(ctx context.Context) ([]*entity.Device, error) {
	return r.list(ctx, deviceSelect+` WHERE d.status = 1 AND c.type = 0 ORDER BY d.id DESC`)
}

// GetByID equipo activo por id.
func (r *DeviceRepo) GetByID(ctx context.Context, id int64) (*entity.Device, error) {
	d, err := scanDevice(r.q.QueryRow(ctx, deviceSelect+` WHERE d.id = $1 AND d.status = 1`, id))
	if err != nil {
		return nil, notFound("get device", err)
	}
	return d, nil
}

// GetForUpdate bloquea la fila del equipo hasta el fin de la transacción.
func (r *DeviceRepo) GetForUpdate(ctx context.Context, id int64) (*entity.Device, error) {
	d, err := scanDevice(r.q.QueryRow(ctx, deviceSelect+` WHERE d.id = $1 FOR UPDATE OF d`, id))
	if err != nil {
		return nil, notFound("lock device", err)
	}
	return d, nil
}

// Create inserta el equipo en resguardo.
func (r *DeviceRepo) Create(ctx context.Context, d *entity.Device) error {
	if d.Func == "" {
		d.Func = entity.FuncResguardo
	}
	err := r.q.QueryRow(ctx, `
		INSERT INTO devices (brand, model, serial_number, category_id, group_id, status, details, is_new, func)
		VALUES ($1, $2, $3, $4, $5, 1, $6, $7, $8)
		RETURNING id, status`,
		d.Brand, d.Model, d.SerialNumber, d.CategoryID, d.GroupID, d.Details, d.IsNew, string(d.Func),
	).Scan(&d.ID, &d.Status)
	return mapWriteErr("insert device", err, nil)
}

// Update actualiza los datos capturables; func y status cambian por sus propios flujos.
func (r *DeviceRepo) Update(ctx context.Context, d *entity.Device) error {
	cmd, err := r.q.Exec(ctx, `
		UPDATE devices
		SET brand = $2, model = $3, serial_number = $4, category_id = $5, group_id = $6, details = $7, is_new = $8
		WHERE id = $1`,
		d.ID, d.Brand, d.Model, d.SerialNumber, d.CategoryID, d.GroupID, d.Details, d.IsNew,
	)
	if err != nil {
		return mapWriteErr("update device", err, nil)
	}
	if cmd.RowsAffected() == 0 {
		return notFound("update device", pgx.ErrNoRows)
	}
	return nil
}

// SetFunc cambia el estado operativo del equipo.
func (r *DeviceRepo) SetFunc(ctx context.Context, id int64, f entity.DeviceFunc, markUsed bool) error {
	query := `UPDATE devices SET func = $2 WHERE id = $1`
	if markUsed {
		query = `UPDATE devices SET func = $2, is_new = FALSE WHERE id = $1`
	}
	cmd, err := r.q.Exec(ctx, query, id, string(f))
	if err != nil {
		return fmt.Errorf("set device func: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return notFound("set device func", pgx.ErrNoRows)
	}
	return nil
}

// CustomValues valores de campos personalizados activos del equipo.
func (r *DeviceRepo) CustomValues(ctx context.Context, deviceID int64) ([]entity.CustomValue, error) {
	rows, err := r.q.Query(ctx, `
		SELECT cf.id, cf.name, cf.data_type, v.value
		FROM device_custom_values v
		JOIN custom_fields cf ON cf.id = v.custom_field_id
		WHERE v.device_id = $1 AND cf.status = 1
		ORDER BY cf.id`, deviceID)
	if err != nil {
		return nil, fmt.Errorf("device custom values: %w", err)
	}
	defer rows.Close()

	var list []entity.CustomValue
	for rows.Next() {
		var v entity.CustomValue
		if err := rows.Scan(&v.CustomFieldID, &v.Name, &v.DataType, &v.Value); err != nil {
			return nil, fmt.Errorf("scan custom value: %w", err)
		}
		list = append(list, v)
	}
	return list, rows.Err()
}

// UpsertCustomValue inserta o reemplaza el valor del campo para el equipo.
func (r *DeviceRepo) UpsertCustomValue(ctx context.Context, deviceID, fieldID int64, value string) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO device_custom_values (device_id, custom_field_id, value)
		VALUES ($1, $2, $3)
		ON CONFLICT (device_id, custom_field_id) DO UPDATE SET value = EXCLUDED.value`,
		deviceID, fieldID, value)
	return mapWriteErr("upsert custom value", err, nil)
}

// Location área, piso, departamento y responsable de la responsiva activa del equipo.
func (r *DeviceRepo) Location(ctx context.Context, deviceID int64) (*entity.DeviceLocation, error) {
	var l entity.DeviceLocation
	err := r.q.QueryRow(ctx, `
		SELECT a.name, f.name, dep.name, rs.responsable
		FROM responsiva_equipos re
		JOIN responsivas rs ON rs.id = re.id_responsiva
		JOIN areas a ON a.id = rs.id_area
		JOIN floors f ON f.id = a.id_floor
		JOIN departments dep ON dep.id = rs.id_departamento
		WHERE re.id_device = $1 AND rs.status = 1
		ORDER BY rs.fecha DESC, rs.id DESC
		LIMIT 1`, deviceID).Scan(&l.Area, &l.Piso, &l.Departamento, &l.Responsable)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("device location: %w", err)
	}
	return &l, nil
}

// ListByCategory equipos activos de la categoría.
func (r *DeviceRepo) ListByCategory(ctx context.Context, categoryID int64) ([]*entity.Device, error) {
	return r.list(ctx, deviceSelect+` WHERE d.status = 1 AND d.category_id = $1 ORDER BY d.id DESC`, categoryID)
}

// ListByDepartment equipos asignados al departamento.
func (r *DeviceRepo) ListByDepartment(ctx context.Context, departmentID int64) ([]*entity.Device, error) {
	return r.list(ctx, deviceSelect+`
		WHERE d.status = 1 AND d.func = 'asignado'
		  AND EXISTS (
			SELECT 1 FROM responsiva_equipos re
			JOIN responsivas rs ON rs.id = re.id_responsiva
			WHERE re.id_device = d.id AND rs.status = 1 AND rs.id_departamento = $1)
		ORDER BY d.id DESC`, departmentID)
}

func (r *DeviceRepo) list(ctx context.Context, query string, args ...any) ([]*entity.Device, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list devices: %w", err)
	}
	defer rows.Close()

	var list []*entity.Device
	for rows.Next() {
		d, err := scanDevice(rows)
		if err != nil {
			return nil, fmt.Errorf("scan device: %w", err)
		}
		list = append(list, d)
	}
	return list, rows.Err()
}

func scanDevice(row pgx.Row) (*entity.Device, error) {
	var d entity.Device
	var fn string
	if err := row.Scan(&d.ID, &d.Brand, &d.Model, &d.SerialNumber, &d.CategoryID, &d.GroupID,
		&d.Status, &d.Details, &d.IsNew, &fn, &d.CategoryName, &d.GroupNumber); err != nil {
		return nil, err
	}
	d.Func = entity.DeviceFunc(fn)
	return &d, nil
}
