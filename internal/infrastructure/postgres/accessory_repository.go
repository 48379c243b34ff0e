package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/inventarios-api/internal/domain/entity"
	"github.com/jhoicas/inventarios-api/internal/domain/repository"
)

var _ repository.AccessoryRepository = (*AccessoryRepo)(nil)

// AccessoryRepo implementación de AccessoryRepository.
type AccessoryRepo struct {
	q Querier
}

// NewAccessoryRepository construye el adaptador de accesorios.
func NewAccessoryRepository(q Querier) *AccessoryRepo {
	return &AccessoryRepo{q: q}
}

const accessorySelect = `
	SELECT a.id, a.brand, a.product_name, a.total, a.category_id, a.details, a.status, COALESCE(c.name, '')
	FROM accessories a
	LEFT JOIN categories c ON c.id = a.category_id`

// List accesorios activos.
func (r *AccessoryRepo) List(ctx context.Context) ([]*entity.Accessory, error) {
	rows, err := r.q.Query(ctx, accessorySelect+` WHERE a.status = 1 ORDER BY a.id DESC`)
	if err != nil {
		return nil, fmt.Errorf("list accessories: %w", err)
	}
	defer rows.Close()

	var list []*entity.Accessory
	for rows.Next() {
		a, err := scanAccessory(rows)
		if err != nil {
			return nil, fmt.Errorf("scan accessory: %w", err)
		}
		list = append(list, a)
	}
	return list, rows.Err()
}

// GetByID accesorio activo.
func (r *AccessoryRepo) GetByID(ctx context.Context, id int64) (*entity.Accessory, error) {
	a, err := scanAccessory(r.q.QueryRow(ctx, accessorySelect+` WHERE a.id = $1 AND a.status = 1`, id))
	if err != nil {
		return nil, notFound("get accessory", err)
	}
	return a, nil
}

// ExistsActiveName indica si ya hay un accesorio activo con ese nombre de producto.
func (r *AccessoryRepo) ExistsActiveName(ctx context.Context, name string) (bool, error) {
	var exists bool
	err := r.q.QueryRow(ctx, `
		SELECT EXISTS (SELECT 1 FROM accessories WHERE LOWER(TRIM(product_name)) = LOWER(TRIM($1)) AND status = 1)`,
		name).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check accessory name: %w", err)
	}
	return exists, nil
}

// Create inserta un accesorio activo.
func (r *AccessoryRepo) Create(ctx context.Context, a *entity.Accessory) error {
	err := r.q.QueryRow(ctx, `
		INSERT INTO accessories (brand, product_name, total, category_id, details, status)
		VALUES ($1, $2, $3, $4, $5, 1) RETURNING id, status`,
		a.Brand, a.ProductName, a.Total, a.CategoryID, a.Details).Scan(&a.ID, &a.Status)
	return mapWriteErr("insert accessory", err, nil)
}

// Update actualiza datos y existencia.
func (r *AccessoryRepo) Update(ctx context.Context, a *entity.Accessory) error {
	cmd, err := r.q.Exec(ctx, `
		UPDATE accessories SET brand = $2, product_name = $3, total = $4, category_id = $5, details = $6
		WHERE id = $1`,
		a.ID, a.Brand, a.ProductName, a.Total, a.CategoryID, a.Details)
	if err != nil {
		return mapWriteErr("update accessory", err, nil)
	}
	if cmd.RowsAffected() == 0 {
		return notFound("update accessory", pgx.ErrNoRows)
	}
	return nil
}

func scanAccessory(row pgx.Row) (*entity.Accessory, error) {
	var a entity.Accessory
	if err := row.Scan(&a.ID, &a.Brand, &a.ProductName, &a.Total, &a.CategoryID, &a.Details,
		&a.Status, &a.CategoryName); err != nil {
		return nil, err
	}
	return &a, nil
}
