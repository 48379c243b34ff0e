package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/inventarios-api/internal/domain/entity"
	"github.com/jhoicas/inventarios-api/internal/domain/repository"
)

var _ repository.CategoryRepository = (*CategoryRepo)(nil)

var categoryUniqueFields = map[string]string{"categories_name_key": "name"}

// CategoryRepo implementación de CategoryRepository (categorías y campos personalizados).
type CategoryRepo struct {
	q Querier
}

// NewCategoryRepository construye el adaptador de categorías.
func NewCategoryRepository(q Querier) *CategoryRepo {
	return &CategoryRepo{q: q}
}

const categoryColumns = `id, name, description, type, status`

// List categorías activas; typ filtra por equipo/accesorio.
func (r *CategoryRepo) List(ctx context.Context, typ *entity.CategoryType) ([]*entity.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories WHERE status = 1`
	var args []any
	if typ != nil {
		query += ` AND type = $1`
		args = append(args, int(*typ))
	}
	query += ` ORDER BY name`

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	var list []*entity.Category
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		list = append(list, c)
	}
	return list, rows.Err()
}

// GetByID categoría activa.
func (r *CategoryRepo) GetByID(ctx context.Context, id int64) (*entity.Category, error) {
	c, err := scanCategory(r.q.QueryRow(ctx,
		`SELECT `+categoryColumns+` FROM categories WHERE id = $1 AND status = 1`, id))
	if err != nil {
		return nil, notFound("get category", err)
	}
	return c, nil
}

// GetAny categoría sin importar status.
func (r *CategoryRepo) GetAny(ctx context.Context, id int64) (*entity.Category, error) {
	c, err := scanCategory(r.q.QueryRow(ctx, `SELECT `+categoryColumns+` FROM categories WHERE id = $1`, id))
	if err != nil {
		return nil, notFound("get category", err)
	}
	return c, nil
}

// FindByName incluye categorías inactivas; nil si no existe.
func (r *CategoryRepo) FindByName(ctx context.Context, name string) (*entity.Category, error) {
	c, err := scanCategory(r.q.QueryRow(ctx,
		`SELECT `+categoryColumns+` FROM categories WHERE LOWER(TRIM(name)) = LOWER(TRIM($1))`, name))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find category: %w", err)
	}
	return c, nil
}

// Create inserta una categoría activa.
func (r *CategoryRepo) Create(ctx context.Context, c *entity.Category) error {
	err := r.q.QueryRow(ctx,
		`INSERT INTO categories (name, description, type, status) VALUES ($1, $2, $3, 1) RETURNING id, status`,
		c.Name, c.Description, int(c.Type)).Scan(&c.ID, &c.Status)
	return mapWriteErr("insert category", err, categoryUniqueFields)
}

// Update actualiza nombre, descripción y tipo.
func (r *CategoryRepo) Update(ctx context.Context, c *entity.Category) error {
	cmd, err := r.q.Exec(ctx, `UPDATE categories SET name = $2, description = $3, type = $4 WHERE id = $1`,
		c.ID, c.Name, c.Description, int(c.Type))
	if err != nil {
		return mapWriteErr("update category", err, categoryUniqueFields)
	}
	if cmd.RowsAffected() == 0 {
		return notFound("update category", pgx.ErrNoRows)
	}
	return nil
}

// CountItems equipos y accesorios que referencian la categoría.
func (r *CategoryRepo) CountItems(ctx context.Context, id int64, activeOnly bool) (int64, error) {
	status := ""
	if activeOnly {
		status = " AND status = 1"
	}
	var n int64
	err := r.q.QueryRow(ctx, `
		SELECT (SELECT COUNT(*) FROM devices WHERE category_id = $1`+status+`)
		     + (SELECT COUNT(*) FROM accessories WHERE category_id = $1`+status+`)`, id).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count category items: %w", err)
	}
	return n, nil
}

// CreateField inserta un campo personalizado activo.
func (r *CategoryRepo) CreateField(ctx context.Context, f *entity.CustomField) error {
	err := r.q.QueryRow(ctx, `
		INSERT INTO custom_fields (name, data_type, category_id, required, status)
		VALUES ($1, $2, $3, $4, 1) RETURNING id, status`,
		f.Name, f.DataType, f.CategoryID, f.Required).Scan(&f.ID, &f.Status)
	return mapWriteErr("insert custom field", err, nil)
}

// ListFields campos activos de la categoría.
func (r *CategoryRepo) ListFields(ctx context.Context, categoryID int64) ([]*entity.CustomField, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, name, data_type, category_id, required, status
		FROM custom_fields WHERE category_id = $1 AND status = 1 ORDER BY id`, categoryID)
	if err != nil {
		return nil, fmt.Errorf("list custom fields: %w", err)
	}
	defer rows.Close()

	var list []*entity.CustomField
	for rows.Next() {
		f, err := scanField(rows)
		if err != nil {
			return nil, fmt.Errorf("scan custom field: %w", err)
		}
		list = append(list, f)
	}
	return list, rows.Err()
}

// GetField campo activo por id.
func (r *CategoryRepo) GetField(ctx context.Context, id int64) (*entity.CustomField, error) {
	f, err := scanField(r.q.QueryRow(ctx, `
		SELECT id, name, data_type, category_id, required, status
		FROM custom_fields WHERE id = $1 AND status = 1`, id))
	if err != nil {
		return nil, notFound("get custom field", err)
	}
	return f, nil
}

// CountFieldValues valores capturados para el campo.
func (r *CategoryRepo) CountFieldValues(ctx context.Context, fieldID int64) (int64, error) {
	var n int64
	if err := r.q.QueryRow(ctx,
		`SELECT COUNT(*) FROM device_custom_values WHERE custom_field_id = $1`, fieldID).Scan(&n); err != nil {
		return 0, fmt.Errorf("count field values: %w", err)
	}
	return n, nil
}

func scanCategory(row pgx.Row) (*entity.Category, error) {
	var c entity.Category
	var typ int
	if err := row.Scan(&c.ID, &c.Name, &c.Description, &typ, &c.Status); err != nil {
		return nil, err
	}
	c.Type = entity.CategoryType(typ)
	return &c, nil
}

func scanField(row pgx.Row) (*entity.CustomField, error) {
	var f entity.CustomField
	if err := row.Scan(&f.ID, &f.Name, &f.DataType, &f.CategoryID, &f.Required, &f.Status); err != nil {
		return nil, err
	}
	return &f, nil
}
