// Package storage guarda archivos subidos en el sistema de archivos local.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/jhoicas/inventarios-api/internal/application/ports"
	"github.com/jhoicas/inventarios-api/internal/domain"
	"github.com/jhoicas/inventarios-api/pkg/textnorm"
)

var _ ports.FileStorage = (*LocalStorage)(nil)

// LocalStorage guarda bajo root/<dir>/<uuid>-<nombre-seguro>.
type LocalStorage struct {
	root string
}

// NewLocalStorage construye el almacenamiento; root se crea si no existe.
func NewLocalStorage(root string) (*LocalStorage, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("storage root: %w", err)
	}
	return &LocalStorage{root: root}, nil
}

// Root directorio base (para servir /uploads como estático).
func (s *LocalStorage) Root() string { return s.root }

// Save escribe r en un archivo nuevo y devuelve el nombre almacenado.
func (s *LocalStorage) Save(_ context.Context, dir, originalName string, r io.Reader) (string, error) {
	base, err := s.dir(dir)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(base, 0o755); err != nil {
		return "", fmt.Errorf("storage dir: %w", err)
	}

	name := uuid.NewString() + "-" + textnorm.SafeFileName(originalName)
	path := filepath.Join(base, name)
	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		return "", fmt.Errorf("storage create: %w", err)
	}
	if _, err := io.Copy(f, r); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return "", fmt.Errorf("storage write: %w", err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(path)
		return "", fmt.Errorf("storage close: %w", err)
	}
	return name, nil
}

// Open abre un archivo almacenado. Rechaza nombres con rutas.
func (s *LocalStorage) Open(_ context.Context, dir, name string) (io.ReadCloser, error) {
	path, err := s.file(dir, name)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("archivo %q: %w", name, domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("storage open: %w", err)
	}
	return f, nil
}

// Remove borra el archivo; no falla si ya no existe.
func (s *LocalStorage) Remove(_ context.Context, dir, name string) error {
	path, err := s.file(dir, name)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("storage remove: %w", err)
	}
	return nil
}

func (s *LocalStorage) dir(dir string) (string, error) {
	if dir == "" || !fs.ValidPath(dir) {
		return "", fmt.Errorf("directorio %q: %w", dir, domain.ErrInvalidInput)
	}
	return filepath.Join(s.root, filepath.FromSlash(dir)), nil
}

// file valida que name sea un nombre simple (sin separadores ni "..").
func (s *LocalStorage) file(dir, name string) (string, error) {
	base, err := s.dir(dir)
	if err != nil {
		return "", err
	}
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return "", fmt.Errorf("nombre de archivo %q: %w", name, domain.ErrInvalidInput)
	}
	return filepath.Join(base, name), nil
}
