package repository

import (
	"context"

	"github.com/jhoicas/inventarios-api/internal/domain/entity"
)

// DocumentKind dueño de un documento escaneado; coincide con el subdirectorio de uploads.
type DocumentKind string

const (
	DocumentsResponsiva DocumentKind = "responsivas"
	DocumentsBaja       DocumentKind = "bajas"
)

// DocumentRepository documentos asociados a responsivas y bajas.
type DocumentRepository interface {
	Add(ctx context.Context, kind DocumentKind, d *entity.Document) error
	List(ctx context.Context, kind DocumentKind, ownerID int64) ([]*entity.Document, error)
	Get(ctx context.Context, kind DocumentKind, ownerID, docID int64) (*entity.Document, error)
	Delete(ctx context.Context, kind DocumentKind, docID int64) error
	// DeleteByOwner elimina los registros y devuelve los nombres almacenados.
	DeleteByOwner(ctx context.Context, kind DocumentKind, ownerID int64) ([]string, error)
}
