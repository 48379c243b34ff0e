package postgres

import (
	"bufio"
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jhoicas/inventarios-api/internal/domain/repository"
)

var _ repository.DatabaseRepository = (*DatabaseRepo)(nil)

// appTables tablas que se vacían antes de restaurar un respaldo de datos.
// backup_config no se respalda ni se vacía: la programación sobrevive a la restauración.
var appTables = []string{
	"movements", "mantenimientos", "baja_documentos", "bajas",
	"responsiva_documentos", "responsiva_equipos", "responsivas", "device_custom_values",
	"devices", "device_groups", "custom_fields", "accessories", "categories", "areas",
	"floors", "departments", "users", "passwords",
}

// DatabaseRepo restauración completa de datos.
type DatabaseRepo struct {
	pool *pgxpool.Pool
}

// NewDatabaseRepository construye el adaptador; necesita el pool para abrir su propia transacción.
func NewDatabaseRepository(pool *pgxpool.Pool) *DatabaseRepo {
	return &DatabaseRepo{pool: pool}
}

// Restore vacía las tablas y ejecuta el script de datos en una sola transacción.
func (r *DatabaseRepo) Restore(ctx context.Context, script string) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin restore: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, "TRUNCATE TABLE "+strings.Join(appTables, ", ")+" RESTART IDENTITY CASCADE"); err != nil {
		return fmt.Errorf("truncate: %w", err)
	}
	if body := stripMetaCommands(script); strings.TrimSpace(body) != "" {
		if _, err := tx.Exec(ctx, body); err != nil {
			return fmt.Errorf("execute script: %w", err)
		}
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit restore: %w", err)
	}
	return nil
}

// stripMetaCommands quita las líneas de meta-comandos de psql (\connect, \restrict, ...),
// que el servidor no entiende.
func stripMetaCommands(script string) string {
	var b strings.Builder
	sc := bufio.NewScanner(strings.NewReader(script))
	sc.Buffer(make([]byte, 0, 64*1024), 64*1024*1024)
	for sc.Scan() {
		line := sc.Text()
		if strings.HasPrefix(strings.TrimSpace(line), `\`) {
			continue
		}
		b.WriteString(line)
		b.WriteByte('\n')
	}
	return b.String()
}
