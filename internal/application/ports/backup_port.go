package ports

import (
	"context"
	"io"
	"time"
)

// DatabaseDumper genera respaldos de solo datos de la base.
type DatabaseDumper interface {
	// Dump escribe el respaldo comprimido (gzip) en w.
	Dump(ctx context.Context, w io.Writer) error
}

// BackupScheduler reprograma el respaldo automático.
type BackupScheduler interface {
	// Reschedule cancela la tarea vigente e instala la nueva expresión cron.
	Reschedule(spec string) error
	// Next próxima ejecución; cero si no hay tarea.
	Next() time.Time
}
