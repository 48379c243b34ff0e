package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/inventarios-api/internal/domain/entity"
	"github.com/jhoicas/inventarios-api/internal/domain/repository"
)

var _ repository.BackupScheduleRepository = (*BackupScheduleRepo)(nil)

// BackupScheduleRepo implementación de BackupScheduleRepository sobre backup_config.
type BackupScheduleRepo struct {
	q Querier
}

// NewBackupScheduleRepository construye el adaptador de configuración de respaldos.
func NewBackupScheduleRepository(q Querier) *BackupScheduleRepo {
	return &BackupScheduleRepo{q: q}
}

// GetActive configuración vigente.
func (r *BackupScheduleRepo) GetActive(ctx context.Context) (*entity.BackupSchedule, error) {
	var s entity.BackupSchedule
	var dia, mes *string
	var diaMes *int
	err := r.q.QueryRow(ctx, `
		SELECT id, tipo, dia_semana, dia_mes, mes_anual, hora, status, ultimo_respaldo
		FROM backup_config WHERE status = 1 ORDER BY id DESC LIMIT 1`).
		Scan(&s.ID, &s.Tipo, &dia, &diaMes, &mes, &s.Hora, &s.Status, &s.UltimoRespaldo)
	if err != nil {
		return nil, notFound("get backup config", err)
	}
	if dia != nil {
		s.DiaSemana = *dia
	}
	if diaMes != nil {
		s.DiaMes = *diaMes
	}
	if mes != nil {
		s.MesAnual = *mes
	}
	return &s, nil
}

// Replace desactiva la configuración vigente e inserta la nueva.
// Debe ejecutarse dentro de una transacción.
func (r *BackupScheduleRepo) Replace(ctx context.Context, s *entity.BackupSchedule) error {
	if _, err := r.q.Exec(ctx, `UPDATE backup_config SET status = 0 WHERE status = 1`); err != nil {
		return fmt.Errorf("deactivate backup config: %w", err)
	}
	err := r.q.QueryRow(ctx, `
		INSERT INTO backup_config (tipo, dia_semana, dia_mes, mes_anual, hora, status)
		VALUES ($1, $2, $3, $4, $5, 1) RETURNING id, status`,
		s.Tipo, emptyToNil(s.DiaSemana), zeroToNil(s.DiaMes), emptyToNil(s.MesAnual), s.Hora,
	).Scan(&s.ID, &s.Status)
	if err != nil {
		return fmt.Errorf("insert backup config: %w", err)
	}
	return nil
}

// MarkRun registra la hora del último respaldo automático.
func (r *BackupScheduleRepo) MarkRun(ctx context.Context, id int64, at time.Time) error {
	cmd, err := r.q.Exec(ctx, `UPDATE backup_config SET ultimo_respaldo = $2 WHERE id = $1`, id, at)
	if err != nil {
		return fmt.Errorf("mark backup run: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return notFound("mark backup run", pgx.ErrNoRows)
	}
	return nil
}

func emptyToNil(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func zeroToNil(n int) *int {
	if n == 0 {
		return nil
	}
	return &n
}
