package repository

import (
	"context"

	"github.com/jhoicas/inventarios-api/internal/domain/folio"
)

// FolioRepository asigna folios consecutivos. Debe usarse dentro de una transacción:
// la serie queda bloqueada hasta el commit o rollback.
type FolioRepository interface {
	Next(ctx context.Context, table string, series folio.Series) (string, error)
}
