package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/inventarios-api/internal/domain/entity"
	"github.com/jhoicas/inventarios-api/internal/domain/repository"
)

var _ repository.BajaRepository = (*BajaRepo)(nil)

// BajaRepo implementación de BajaRepository.
type BajaRepo struct {
	q Querier
}

// NewBajaRepository construye el adaptador de bajas.
func NewBajaRepository(q Querier) *BajaRepo {
	return &BajaRepo{q: q}
}

const bajaSelect = `
	SELECT b.id, b.folio, b.fecha, b.motivo, b.detectado_por, b.observaciones, b.id_device,
	       COALESCE(b.user_id, 0), b.id_departamento, COALESCE(dep.name, ''),
	       COALESCE(dv.brand, ''), COALESCE(dv.model, ''), COALESCE(dv.serial_number, ''),
	       COALESCE(c.name, ''), COALESCE(u.username, '')
	FROM bajas b
	LEFT JOIN devices dv ON dv.id = b.id_device
	LEFT JOIN categories c ON c.id = dv.category_id
	LEFT JOIN departments dep ON dep.id = b.id_departamento
	LEFT JOIN users u ON u.id = b.user_id`

// List bajas, más recientes primero.
func (r *BajaRepo) List(ctx context.Context) ([]*entity.Baja, error) {
	rows, err := r.q.Query(ctx, bajaSelect+` ORDER BY b.fecha DESC, b.id DESC`)
	if err != nil {
		return nil, fmt.Errorf("list bajas: %w", err)
	}
	defer rows.Close()

	var list []*entity.Baja
	for rows.Next() {
		b, err := scanBaja(rows)
		if err != nil {
			return nil, fmt.Errorf("scan baja: %w", err)
		}
		list = append(list, b)
	}
	return list, rows.Err()
}

// GetByID baja con datos del equipo.
func (r *BajaRepo) GetByID(ctx context.Context, id int64) (*entity.Baja, error) {
	b, err := scanBaja(r.q.QueryRow(ctx, bajaSelect+` WHERE b.id = $1`, id))
	if err != nil {
		return nil, notFound("get baja", err)
	}
	return b, nil
}

// Create inserta la baja; el folio ya debe venir asignado.
func (r *BajaRepo) Create(ctx context.Context, b *entity.Baja) error {
	err := r.q.QueryRow(ctx, `
		INSERT INTO bajas (folio, fecha, motivo, detectado_por, observaciones, id_device, user_id, id_departamento)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING id`,
		b.Folio, b.Fecha, b.Motivo, b.DetectadoPor, b.Observaciones, b.DeviceID, nullableID(b.UserID), b.DepartmentID,
	).Scan(&b.ID)
	return mapWriteErr("insert baja", err, map[string]string{"bajas_folio_key": "folio"})
}

// IDsByDevice bajas registradas para el equipo.
func (r *BajaRepo) IDsByDevice(ctx context.Context, deviceID int64) ([]int64, error) {
	rows, err := r.q.Query(ctx, `SELECT id FROM bajas WHERE id_device = $1 ORDER BY id`, deviceID)
	if err != nil {
		return nil, fmt.Errorf("bajas by device: %w", err)
	}
	return pgx.CollectRows(rows, pgx.RowTo[int64])
}

func scanBaja(row pgx.Row) (*entity.Baja, error) {
	var b entity.Baja
	if err := row.Scan(&b.ID, &b.Folio, &b.Fecha, &b.Motivo, &b.DetectadoPor, &b.Observaciones, &b.DeviceID,
		&b.UserID, &b.DepartmentID, &b.DepartmentName, &b.Brand, &b.Model, &b.SerialNumber,
		&b.Category, &b.Username); err != nil {
		return nil, err
	}
	return &b, nil
}
