package postgres_test

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventarios-api/internal/application/documents"
	"github.com/jhoicas/inventarios-api/internal/application/dto"
	"github.com/jhoicas/inventarios-api/internal/domain"
	"github.com/jhoicas/inventarios-api/internal/domain/entity"
	"github.com/jhoicas/inventarios-api/internal/infrastructure/postgres"
	"github.com/jhoicas/inventarios-api/pkg/logger"
)

// Requiere una base desechable: TEST_DATABASE_URL=postgres://... go test ./internal/infrastructure/postgres/
func testPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL no definido")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	pool, err := pgxpool.New(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(pool.Close)
	_, err = postgres.Migrate(ctx, pool)
	require.NoError(t, err)
	return pool
}

type stubPDF struct{}

func (stubPDF) ResponsivaPDF(context.Context, *entity.Responsiva) ([]byte, error) {
	return []byte("%PDF"), nil
}
func (stubPDF) BajaPDF(context.Context, *entity.Baja) ([]byte, error) { return []byte("%PDF"), nil }
func (stubPDF) MantenimientoPDF(context.Context, *entity.Mantenimiento) ([]byte, error) {
	return []byte("%PDF"), nil
}

func seedDevices(t *testing.T, pool *pgxpool.Pool, n int) []int64 {
	t.Helper()
	ctx := context.Background()
	var cat int64
	err := pool.QueryRow(ctx, `INSERT INTO categories (name) VALUES ($1) RETURNING id`,
		fmt.Sprintf("Integración %d", time.Now().UnixNano())).Scan(&cat)
	require.NoError(t, err)

	ids := make([]int64, 0, n)
	for i := 0; i < n; i++ {
		var id int64
		err := pool.QueryRow(ctx, `
			INSERT INTO devices (brand, model, serial_number, category_id, func)
			VALUES ('HP', 'E24', $1, $2, 'resguardo') RETURNING id`,
			fmt.Sprintf("INT-%d-%d", cat, i), cat).Scan(&id)
		require.NoError(t, err)
		ids = append(ids, id)
	}

	t.Cleanup(func() {
		ctx := context.Background()
		_, _ = pool.Exec(ctx, `
			DELETE FROM movements WHERE (affected_table = 'bajas' AND object_id IN (SELECT id FROM bajas WHERE id_device = ANY($1)))
			OR (affected_table = 'devices' AND object_id = ANY($1))`, ids)
		_, _ = pool.Exec(ctx, `DELETE FROM bajas WHERE id_device = ANY($1)`, ids)
		_, _ = pool.Exec(ctx, `DELETE FROM devices WHERE id = ANY($1)`, ids)
		_, _ = pool.Exec(ctx, `DELETE FROM categories WHERE id = $1`, cat)
	})
	return ids
}

// Dos bajas por equipo en paralelo: FOR UPDATE deja pasar una y el candado de folio
// evita que dos equipos distintos reciban el mismo BAJA-n.
func TestBaja_ConcurrenteContraPostgres(t *testing.T) {
	pool := testPool(t)
	devices := seedDevices(t, pool, 3)
	uc := documents.NewBajaUseCase(postgres.NewStore(pool), postgres.NewTxRunner(pool), stubPDF{}, nil, logger.Nop())

	type result struct {
		device int64
		folio  string
		err    error
	}
	results := make(chan result, 2*len(devices))
	start := make(chan struct{})
	var wg sync.WaitGroup
	for _, id := range devices {
		for i := 0; i < 2; i++ {
			wg.Add(1)
			go func(id int64) {
				defer wg.Done()
				<-start
				out, _, err := uc.Create(context.Background(), 0, dto.BajaRequest{DeviceID: id, Motivo: "prueba concurrente"})
				r := result{device: id, err: err}
				if out != nil {
					r.folio = out.Folio
				}
				results <- r
			}(id)
		}
	}
	close(start)
	wg.Wait()
	close(results)

	okPerDevice := map[int64]int{}
	folios := map[string]bool{}
	for r := range results {
		if r.err != nil {
			assert.True(t, errors.Is(r.err, domain.ErrInvalidState), "equipo %d: %v", r.device, r.err)
			continue
		}
		okPerDevice[r.device]++
		assert.False(t, folios[r.folio], "folio repetido %s", r.folio)
		folios[r.folio] = true
	}
	for _, id := range devices {
		assert.Equal(t, 1, okPerDevice[id], "equipo %d", id)
	}
	assert.Len(t, folios, len(devices))
}
