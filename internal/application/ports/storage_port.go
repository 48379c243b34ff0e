package ports

import (
	"context"
	"io"
)

// FileStorage guarda archivos subidos bajo un subdirectorio (responsivas, bajas, formats).
type FileStorage interface {
	// Save escribe el contenido y devuelve el nombre con el que quedó almacenado.
	Save(ctx context.Context, dir, originalName string, r io.Reader) (string, error)
	// Open abre un archivo almacenado; domain.ErrNotFound si no existe.
	Open(ctx context.Context, dir, name string) (io.ReadCloser, error)
	Remove(ctx context.Context, dir, name string) error
}
