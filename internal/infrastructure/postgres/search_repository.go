package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/inventarios-api/internal/domain/entity"
	"github.com/jhoicas/inventarios-api/internal/domain/repository"
)

var _ repository.SearchRepository = (*SearchRepo)(nil)

// SearchRepo búsqueda global con ILIKE sobre los catálogos activos.
type SearchRepo struct {
	q Querier
}

// NewSearchRepository construye el adaptador de búsqueda.
func NewSearchRepository(q Querier) *SearchRepo {
	return &SearchRepo{q: q}
}

// Search busca q en equipos (incluidos valores personalizados), categorías,
// departamentos, pisos, áreas y accesorios.
func (r *SearchRepo) Search(ctx context.Context, q string, limit int) ([]entity.SearchResult, error) {
	pattern := "%" + escapeLike(strings.TrimSpace(q)) + "%"
	rows, err := r.q.Query(ctx, `
		SELECT * FROM (
			SELECT 'device' AS type, d.id, d.brand || ' ' || d.model AS title, d.serial_number AS detail
			FROM devices d
			WHERE d.status = 1 AND (
				d.brand ILIKE $1 OR d.model ILIKE $1 OR d.serial_number ILIKE $1 OR d.details ILIKE $1
				OR EXISTS (SELECT 1 FROM device_custom_values v WHERE v.device_id = d.id AND v.value ILIKE $1))
			UNION ALL
			SELECT 'category', c.id, c.name, c.description FROM categories c
			WHERE c.status = 1 AND (c.name ILIKE $1 OR c.description ILIKE $1)
			UNION ALL
			SELECT 'department', dp.id, dp.name, dp.abbreviation FROM departments dp
			WHERE dp.status = 1 AND (dp.name ILIKE $1 OR dp.abbreviation ILIKE $1 OR dp.department_head ILIKE $1)
			UNION ALL
			SELECT 'floor', f.id, f.name, f.description FROM floors f
			WHERE f.status = 1 AND f.name ILIKE $1
			UNION ALL
			SELECT 'area', a.id, a.name, a.description FROM areas a
			WHERE a.status = 1 AND a.name ILIKE $1
			UNION ALL
			SELECT 'accessory', ac.id, ac.product_name, ac.brand FROM accessories ac
			WHERE ac.status = 1 AND (ac.product_name ILIKE $1 OR ac.brand ILIKE $1)
		) s
		ORDER BY s.type, s.title
		LIMIT $2`, pattern, limit)
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (entity.SearchResult, error) {
		var s entity.SearchResult
		err := row.Scan(&s.Type, &s.ID, &s.Title, &s.Detail)
		return s, err
	})
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
