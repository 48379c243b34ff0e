package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/inventarios-api/internal/domain/folio"
	"github.com/jhoicas/inventarios-api/internal/domain/movement"
	"github.com/jhoicas/inventarios-api/internal/domain/repository"
)

var _ repository.FolioRepository = (*FolioRepo)(nil)

// FolioRepo asigna folios bajo pg_advisory_xact_lock: PostgreSQL no permite
// FOR UPDATE junto con MAX(), así que la serie se serializa con un candado
// transaccional que se libera en el commit o rollback.
type FolioRepo struct {
	q Querier
}

// NewFolioRepository construye el asignador de folios.
func NewFolioRepository(q Querier) *FolioRepo {
	return &FolioRepo{q: q}
}

// Next bloquea la serie y devuelve el folio siguiente al mayor existente.
func (r *FolioRepo) Next(ctx context.Context, table string, series folio.Series) (string, error) {
	t, err := movement.Lookup(table)
	if err != nil {
		return "", err
	}
	if _, err := r.q.Exec(ctx, `SELECT pg_advisory_xact_lock($1)`, series.LockKey()); err != nil {
		return "", fmt.Errorf("lock folio %s: %w", series.Prefix, err)
	}

	query := fmt.Sprintf(`
		SELECT COALESCE(MAX(CAST(SUBSTRING(folio FROM $1) AS INTEGER)), 0)
		FROM %s
		WHERE folio ~ $2`, pgx.Identifier{t.Name}.Sanitize())
	var max int
	prefixLen := len(series.Prefix) + 1
	pattern := "^" + series.Prefix + "[0-9]+$"
	if err := r.q.QueryRow(ctx, query, prefixLen, pattern).Scan(&max); err != nil {
		return "", fmt.Errorf("max folio %s: %w", series.Prefix, err)
	}
	return series.Next(max), nil
}
