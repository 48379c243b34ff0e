package documents

import (
	"context"
	"io"

	"github.com/stretchr/testify/mock"

	"github.com/jhoicas/inventarios-api/internal/domain/entity"
)

type MockPDFGenerator struct {
	mock.Mock
}

func (m *MockPDFGenerator) ResponsivaPDF(ctx context.Context, r *entity.Responsiva) ([]byte, error) {
	args := m.Called(ctx, r)
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockPDFGenerator) BajaPDF(ctx context.Context, b *entity.Baja) ([]byte, error) {
	args := m.Called(ctx, b)
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockPDFGenerator) MantenimientoPDF(ctx context.Context, mt *entity.Mantenimiento) ([]byte, error) {
	args := m.Called(ctx, mt)
	return args.Get(0).([]byte), args.Error(1)
}

type MockFileStorage struct {
	mock.Mock
	saved []byte
}

func (m *MockFileStorage) Save(ctx context.Context, dir, originalName string, r io.Reader) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	m.saved = data
	args := m.Called(ctx, dir, originalName)
	return args.String(0), args.Error(1)
}

func (m *MockFileStorage) Open(ctx context.Context, dir, name string) (io.ReadCloser, error) {
	args := m.Called(ctx, dir, name)
	rc, _ := args.Get(0).(io.ReadCloser)
	return rc, args.Error(1)
}

func (m *MockFileStorage) Remove(ctx context.Context, dir, name string) error {
	args := m.Called(ctx, dir, name)
	return args.Error(0)
}
