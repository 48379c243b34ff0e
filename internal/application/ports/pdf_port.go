package ports

import (
	"context"

	"github.com/jhoicas/inventarios-api/internal/domain/entity"
)

// DocumentPDFGenerator genera los formatos impresos de responsivas, bajas y mantenimientos.
type DocumentPDFGenerator interface {
	ResponsivaPDF(ctx context.Context, r *entity.Responsiva) ([]byte, error)
	BajaPDF(ctx context.Context, b *entity.Baja) ([]byte, error)
	MantenimientoPDF(ctx context.Context, m *entity.Mantenimiento) ([]byte, error)
}
