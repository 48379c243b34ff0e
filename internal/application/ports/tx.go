package ports

import (
	"context"

	"github.com/jhoicas/inventarios-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando un Store atado a esa tx.
// Si fn devuelve error (o el commit falla) no queda ningún cambio aplicado.
type TxRunner interface {
	Run(ctx context.Context, fn func(s repository.Store) error) error
}
