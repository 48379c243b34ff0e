package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/inventarios-api/internal/domain"
	"github.com/jhoicas/inventarios-api/internal/domain/movement"
	"github.com/jhoicas/inventarios-api/internal/domain/repository"
)

var _ repository.RowRepository = (*RowRepo)(nil)

// RowRepo acceso genérico a filas de tablas auditadas. Los nombres de tabla y columna
// salen siempre de movement.Lookup y se escapan con pgx.Identifier.
type RowRepo struct {
	q Querier
}

// NewRowRepository construye el adaptador genérico de filas.
func NewRowRepository(q Querier) *RowRepo {
	return &RowRepo{q: q}
}

// Snapshot lee la fila con las columnas permitidas de su tabla.
func (r *RowRepo) Snapshot(ctx context.Context, table string, id int64) (movement.Snapshot, error) {
	t, err := movement.Lookup(table)
	if err != nil {
		return nil, err
	}
	names := t.ColumnNames()
	quoted := make([]string, len(names))
	for i, n := range names {
		quoted[i] = pgx.Identifier{n}.Sanitize()
	}
	query := fmt.Sprintf("SELECT %s FROM %s WHERE id = $1",
		strings.Join(quoted, ", "), pgx.Identifier{t.Name}.Sanitize())

	rows, err := r.q.Query(ctx, query, id)
	if err != nil {
		return nil, fmt.Errorf("snapshot %s: %w", table, err)
	}
	row, err := pgx.CollectExactlyOneRow(rows, pgx.RowToMap)
	if err != nil {
		return nil, notFound("snapshot "+table, err)
	}
	return t.Project(row)
}

// Apply escribe el snapshot campo a campo; las columnas ausentes no se tocan.
func (r *RowRepo) Apply(ctx context.Context, table string, id int64, s movement.Snapshot) error {
	t, err := movement.Lookup(table)
	if err != nil {
		return err
	}
	names, values := t.Assignments(s)
	if len(names) == 0 {
		return fmt.Errorf("apply %s: snapshot sin columnas: %w", table, domain.ErrInvalidInput)
	}
	sets := make([]string, len(names))
	for i, n := range names {
		sets[i] = fmt.Sprintf("%s = $%d", pgx.Identifier{n}.Sanitize(), i+1)
	}
	query := fmt.Sprintf("UPDATE %s SET %s WHERE id = $%d",
		pgx.Identifier{t.Name}.Sanitize(), strings.Join(sets, ", "), len(names)+1)

	cmd, err := r.q.Exec(ctx, query, append(values, id)...)
	if err != nil {
		return mapWriteErr("apply "+table, err, nil)
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("apply %s %d: %w", table, id, domain.ErrNotFound)
	}
	return nil
}

// Delete elimina físicamente la fila.
func (r *RowRepo) Delete(ctx context.Context, table string, id int64) (bool, error) {
	t, err := movement.Lookup(table)
	if err != nil {
		return false, err
	}
	cmd, err := r.q.Exec(ctx,
		fmt.Sprintf("DELETE FROM %s WHERE id = $1", pgx.Identifier{t.Name}.Sanitize()), id)
	if err != nil {
		return false, mapWriteErr("delete "+table, err, nil)
	}
	return cmd.RowsAffected() > 0, nil
}

// SetStatus cambia la columna status (solo tablas con baja lógica).
func (r *RowRepo) SetStatus(ctx context.Context, table string, id int64, status int) error {
	t, err := movement.Lookup(table)
	if err != nil {
		return err
	}
	if !hasColumn(t, "status") {
		return fmt.Errorf("%w: %s no tiene baja lógica", domain.ErrInvalidInput, table)
	}
	cmd, err := r.q.Exec(ctx,
		fmt.Sprintf("UPDATE %s SET status = $1 WHERE id = $2", pgx.Identifier{t.Name}.Sanitize()), status, id)
	if err != nil {
		return fmt.Errorf("set status %s: %w", table, err)
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("set status %s %d: %w", table, id, domain.ErrNotFound)
	}
	return nil
}

func hasColumn(t movement.Table, name string) bool {
	for _, c := range t.Columns {
		if c.Name == name {
			return true
		}
	}
	return false
}
