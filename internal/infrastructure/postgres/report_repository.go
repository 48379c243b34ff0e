package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/inventarios-api/internal/domain/entity"
	"github.com/jhoicas/inventarios-api/internal/domain/repository"
)

var _ repository.ReportRepository = (*ReportRepo)(nil)

// ReportRepo consultas agregadas de equipos y accesorios.
type ReportRepo struct {
	q Querier
}

// NewReportRepository construye el adaptador de reportes.
func NewReportRepository(q Querier) *ReportRepo {
	return &ReportRepo{q: q}
}

// DeviceSummary totales por estado operativo, condición y categoría.
func (r *ReportRepo) DeviceSummary(ctx context.Context) (*entity.DeviceSummary, error) {
	var s entity.DeviceSummary
	err := r.q.QueryRow(ctx, `
		SELECT COUNT(*),
		       COUNT(*) FILTER (WHERE d.func = 'asignado'),
		       COUNT(*) FILTER (WHERE d.func = 'resguardo'),
		       COUNT(*) FILTER (WHERE d.func = 'baja'),
		       COUNT(*) FILTER (WHERE d.is_new),
		       COUNT(*) FILTER (WHERE NOT d.is_new)
		FROM devices d
		JOIN categories c ON c.id = d.category_id AND c.type = 0
		WHERE d.status = 1`).
		Scan(&s.Total, &s.Asignado, &s.Resguardo, &s.Baja, &s.Nuevos, &s.Usados)
	if err != nil {
		return nil, fmt.Errorf("device summary: %w", err)
	}

	s.Categories, err = r.categoryCounts(ctx, `
		SELECT c.id, c.name, COUNT(d.id)
		FROM categories c
		LEFT JOIN devices d ON d.category_id = c.id AND d.status = 1
		WHERE c.type = 0 AND c.status = 1
		GROUP BY c.id, c.name
		ORDER BY c.name`)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// DeviceRows filas del reporte de equipos; los filtros vacíos no restringen.
func (r *ReportRepo) DeviceRows(ctx context.Context, f entity.DeviceReportFilter) ([]entity.DeviceReportRow, error) {
	var where []string
	var args []any
	add := func(cond string, v any) {
		args = append(args, v)
		where = append(where, fmt.Sprintf(cond, len(args)))
	}
	where = append(where, "c.type = 0")
	if len(f.CategoryIDs) > 0 {
		add("d.category_id = ANY($%d)", f.CategoryIDs)
	}
	if len(f.Status) > 0 {
		add("d.status = ANY($%d)", f.Status)
	} else {
		where = append(where, "d.status = 1")
	}
	if len(f.IsNew) > 0 {
		add("d.is_new = ANY($%d)", f.IsNew)
	}
	if len(f.Funcs) > 0 {
		funcs := make([]string, len(f.Funcs))
		for i, fn := range f.Funcs {
			funcs[i] = string(fn)
		}
		add("d.func = ANY($%d)", funcs)
	}

	rows, err := r.q.Query(ctx, `
		SELECT d.id, d.brand, d.model, d.serial_number, c.name, d.status, d.is_new, d.func
		FROM devices d
		JOIN categories c ON c.id = d.category_id
		WHERE `+strings.Join(where, " AND ")+`
		ORDER BY c.name, d.brand, d.model, d.id`, args...)
	if err != nil {
		return nil, fmt.Errorf("device rows: %w", err)
	}
	defer rows.Close()

	var list []entity.DeviceReportRow
	for rows.Next() {
		var row entity.DeviceReportRow
		var fn string
		if err := rows.Scan(&row.ID, &row.Brand, &row.Model, &row.SerialNumber, &row.Category,
			&row.Status, &row.IsNew, &fn); err != nil {
			return nil, fmt.Errorf("scan device row: %w", err)
		}
		row.Func = entity.DeviceFunc(fn)
		list = append(list, row)
	}
	return list, rows.Err()
}

// AccessorySummary existencia total y por categoría, con la mayor y la menor.
func (r *ReportRepo) AccessorySummary(ctx context.Context) (*entity.AccessorySummary, error) {
	cats, err := r.categoryCounts(ctx, `
		SELECT c.id, c.name, COALESCE(SUM(a.total), 0)
		FROM categories c
		LEFT JOIN accessories a ON a.category_id = c.id AND a.status = 1
		WHERE c.type = 1 AND c.status = 1
		GROUP BY c.id, c.name
		ORDER BY c.name`)
	if err != nil {
		return nil, err
	}

	s := &entity.AccessorySummary{Categorias: cats}
	for i := range cats {
		c := &cats[i]
		s.Total += c.Total
		if s.CategoriaMayor == nil || c.Total > s.CategoriaMayor.Total {
			s.CategoriaMayor = c
		}
		if s.CategoriaMenor == nil || c.Total < s.CategoriaMenor.Total {
			s.CategoriaMenor = c
		}
	}
	return s, nil
}

// AccessoryRows accesorios activos de las categorías indicadas (todas si está vacío).
func (r *ReportRepo) AccessoryRows(ctx context.Context, categoryIDs []int64) ([]entity.AccessoryReportRow, error) {
	query := `
		SELECT a.brand, a.product_name, a.total, COALESCE(c.name, '')
		FROM accessories a
		LEFT JOIN categories c ON c.id = a.category_id
		WHERE a.status = 1`
	var args []any
	if len(categoryIDs) > 0 {
		query += ` AND a.category_id = ANY($1)`
		args = append(args, categoryIDs)
	}
	query += ` ORDER BY c.name, a.product_name`

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("accessory rows: %w", err)
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (entity.AccessoryReportRow, error) {
		var a entity.AccessoryReportRow
		err := row.Scan(&a.Brand, &a.ProductName, &a.Total, &a.Category)
		return a, err
	})
}

func (r *ReportRepo) categoryCounts(ctx context.Context, query string) ([]entity.CategoryCount, error) {
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("category counts: %w", err)
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (entity.CategoryCount, error) {
		var c entity.CategoryCount
		err := row.Scan(&c.ID, &c.Name, &c.Total)
		return c, err
	})
}
