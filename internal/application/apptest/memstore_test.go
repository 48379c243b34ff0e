package apptest

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventarios-api/internal/domain/movement"
	"github.com/jhoicas/inventarios-api/internal/domain/repository"
)

func TestRun_SerializaTransacciones(t *testing.T) {
	db := NewDB()
	ctx := context.Background()
	entered := make(chan struct{})
	release := make(chan struct{})

	var floor int64
	first := make(chan error, 1)
	go func() {
		first <- db.Run(ctx, func(repository.Store) error {
			close(entered)
			<-release
			floor = db.Insert(movement.TableFloors, map[string]any{"name": "Planta baja"})
			return nil
		})
	}()
	<-entered

	second := make(chan error, 1)
	go func() {
		second <- db.Run(ctx, func(repository.Store) error { return errors.New("falla") })
	}()
	select {
	case <-second:
		t.Fatal("la segunda transacción corrió antes de que terminara la primera")
	case <-time.After(50 * time.Millisecond):
	}

	close(release)
	require.NoError(t, <-first)
	require.Error(t, <-second)
	assert.Equal(t, "Planta baja", db.Row(movement.TableFloors, floor)["name"], "el rollback no borra lo confirmado")
}

func TestRun_RollbackRestauraEstado(t *testing.T) {
	db := NewDB()
	err := db.Run(context.Background(), func(repository.Store) error {
		db.Insert(movement.TableFloors, map[string]any{"name": "Sótano"})
		return errors.New("falla")
	})
	require.Error(t, err)
	assert.Nil(t, db.Row(movement.TableFloors, 1))
}
