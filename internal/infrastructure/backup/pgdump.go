// Package backup implementa el respaldo de datos con pg_dump y su programación con cron.
package backup

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strconv"
	"strings"

	"github.com/klauspost/compress/gzip"

	"github.com/jhoicas/inventarios-api/internal/application/ports"
	"github.com/jhoicas/inventarios-api/pkg/config"
)

var _ ports.DatabaseDumper = (*PgDumper)(nil)

// PgDumper genera respaldos de solo datos con pg_dump comprimidos en gzip.
type PgDumper struct {
	binary string
	db     config.DBConfig
}

// NewPgDumper construye el dumper; binary vacío usa "pg_dump" del PATH.
func NewPgDumper(binary string, db config.DBConfig) *PgDumper {
	if binary == "" {
		binary = "pg_dump"
	}
	return &PgDumper{binary: binary, db: db}
}

// Dump ejecuta pg_dump --data-only --inserts y escribe la salida comprimida en w.
func (d *PgDumper) Dump(ctx context.Context, w io.Writer) error {
	cmd := exec.CommandContext(ctx, d.binary, d.args()...)
	cmd.Env = append(os.Environ(), d.env()...)

	var stderr strings.Builder
	cmd.Stderr = &stderr

	zw, err := gzip.NewWriterLevel(w, gzip.BestCompression)
	if err != nil {
		return fmt.Errorf("gzip: %w", err)
	}
	cmd.Stdout = zw

	if err := cmd.Run(); err != nil {
		_ = zw.Close()
		return fmt.Errorf("pg_dump: %w: %s", err, strings.TrimSpace(stderr.String()))
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("gzip close: %w", err)
	}
	return nil
}

func (d *PgDumper) args() []string {
	args := []string{"--data-only", "--inserts", "--no-owner", "--no-privileges", "--exclude-table=backup_config"}
	if d.db.DatabaseURL != "" {
		return append(args, "--dbname="+d.db.DatabaseURL)
	}
	return append(args,
		"--host="+d.db.Host,
		"--port="+strconv.Itoa(d.db.Port),
		"--username="+d.db.User,
		d.db.DBName,
	)
}

// env pasa la contraseña por PGPASSWORD para no exponerla en la línea de comandos.
func (d *PgDumper) env() []string {
	if d.db.DatabaseURL != "" {
		return nil
	}
	var env []string
	if d.db.Password != "" {
		env = append(env, "PGPASSWORD="+d.db.Password)
	}
	if d.db.SSLMode != "" {
		env = append(env, "PGSSLMODE="+d.db.SSLMode)
	}
	return env
}
