package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/inventarios-api/internal/domain/entity"
	"github.com/jhoicas/inventarios-api/internal/domain/repository"
)

var _ repository.MantenimientoRepository = (*MantenimientoRepo)(nil)

// MantenimientoRepo implementación de MantenimientoRepository.
type MantenimientoRepo struct {
	q Querier
}

// NewMantenimientoRepository construye el adaptador de mantenimientos.
func NewMantenimientoRepository(q Querier) *MantenimientoRepo {
	return &MantenimientoRepo{q: q}
}

const mantenimientoSelect = `
	SELECT m.id, m.folio, m.fecha, m.descripcion_falla, m.descripcion_solucion, COALESCE(m.user_id, 0),
	       m.responsiva_id, m.completo, COALESCE(rs.responsable, ''), COALESCE(dep.name, ''),
	       COALESCE(u.username, '')
	FROM mantenimientos m
	LEFT JOIN responsivas rs ON rs.id = m.responsiva_id
	LEFT JOIN departments dep ON dep.id = rs.id_departamento
	LEFT JOIN users u ON u.id = m.user_id`

// List mantenimientos, más recientes primero.
func (r *MantenimientoRepo) List(ctx context.Context) ([]*entity.Mantenimiento, error) {
	rows, err := r.q.Query(ctx, mantenimientoSelect+` ORDER BY m.fecha DESC, m.id DESC`)
	if err != nil {
		return nil, fmt.Errorf("list mantenimientos: %w", err)
	}
	defer rows.Close()

	var list []*entity.Mantenimiento
	for rows.Next() {
		m, err := scanMantenimiento(rows)
		if err != nil {
			return nil, fmt.Errorf("scan mantenimiento: %w", err)
		}
		list = append(list, m)
	}
	return list, rows.Err()
}

// GetByID mantenimiento con responsable y departamento de su responsiva.
func (r *MantenimientoRepo) GetByID(ctx context.Context, id int64) (*entity.Mantenimiento, error) {
	m, err := scanMantenimiento(r.q.QueryRow(ctx, mantenimientoSelect+` WHERE m.id = $1`, id))
	if err != nil {
		return nil, notFound("get mantenimiento", err)
	}
	return m, nil
}

// Create inserta el mantenimiento; el folio ya debe venir asignado.
func (r *MantenimientoRepo) Create(ctx context.Context, m *entity.Mantenimiento) error {
	err := r.q.QueryRow(ctx, `
		INSERT INTO mantenimientos (folio, fecha, descripcion_falla, descripcion_solucion, user_id, responsiva_id, completo)
		VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`,
		m.Folio, m.Fecha, m.DescripcionFalla, m.DescripcionSolucion, nullableID(m.UserID), m.ResponsivaID, m.Completo,
	).Scan(&m.ID)
	return mapWriteErr("insert mantenimiento", err, map[string]string{"mantenimientos_folio_key": "folio"})
}

func scanMantenimiento(row pgx.Row) (*entity.Mantenimiento, error) {
	var m entity.Mantenimiento
	if err := row.Scan(&m.ID, &m.Folio, &m.Fecha, &m.DescripcionFalla, &m.DescripcionSolucion, &m.UserID,
		&m.ResponsivaID, &m.Completo, &m.Responsable, &m.Departamento, &m.Username); err != nil {
		return nil, err
	}
	return &m, nil
}
