package storage

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventarios-api/internal/domain"
)

func TestLocalStorage_SaveOpenRemove(t *testing.T) {
	ctx := context.Background()
	s, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	name, err := s.Save(ctx, "bajas", "Acta Baja (firmada).PDF", strings.NewReader("%PDF-1.4"))
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(name, "-acta-baja-firmada.pdf"), name)

	rc, err := s.Open(ctx, "bajas", name)
	require.NoError(t, err)
	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	require.NoError(t, rc.Close())
	assert.Equal(t, "%PDF-1.4", string(data))

	require.NoError(t, s.Remove(ctx, "bajas", name))
	_, err = s.Open(ctx, "bajas", name)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	// Borrar dos veces no es error.
	assert.NoError(t, s.Remove(ctx, "bajas", name))
}

func TestLocalStorage_RejectsTraversal(t *testing.T) {
	ctx := context.Background()
	s, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	for _, name := range []string{"../secreto", "..", "a/b.pdf", `a\b.pdf`, ""} {
		_, err := s.Open(ctx, "formats", name)
		assert.ErrorIs(t, err, domain.ErrInvalidInput, name)
	}
	_, err = s.Save(ctx, "../fuera", "x.pdf", strings.NewReader(""))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
