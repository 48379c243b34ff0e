// Package backup respaldo y restauración de datos y programación del respaldo automático.
package backup

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/klauspost/compress/gzip"

	"github.com/jhoicas/inventarios-api/internal/application/dto"
	"github.com/jhoicas/inventarios-api/internal/application/ports"
	"github.com/jhoicas/inventarios-api/internal/domain"
	schedule "github.com/jhoicas/inventarios-api/internal/domain/backup"
	"github.com/jhoicas/inventarios-api/internal/domain/entity"
	"github.com/jhoicas/inventarios-api/internal/domain/repository"
	"github.com/jhoicas/inventarios-api/pkg/logger"
)

// ContentTypeGzip tipo de contenido de los respaldos exportados.
const ContentTypeGzip = "application/gzip"

// MaxRestoreSize tamaño máximo del script SQL ya descomprimido.
const MaxRestoreSize = 512 << 20

// Options rutas y zona horaria del respaldo.
type Options struct {
	BackupsDir string
	Location   *time.Location
}

// Service exporta, restaura y programa respaldos.
type Service struct {
	store     repository.Store
	tx        ports.TxRunner
	db        repository.DatabaseRepository
	dumper    ports.DatabaseDumper
	scheduler ports.BackupScheduler
	opts      Options
	log       *logger.Logger
	now       func() time.Time
}

// NewService construye el servicio. scheduler puede asignarse después con SetScheduler
// porque el planificador necesita a su vez RunScheduled como tarea.
func NewService(store repository.Store, tx ports.TxRunner, db repository.DatabaseRepository, dumper ports.DatabaseDumper, opts Options, log *logger.Logger) *Service {
	if opts.Location == nil {
		opts.Location = time.Local
	}
	return &Service{store: store, tx: tx, db: db, dumper: dumper, opts: opts, log: log, now: time.Now}
}

// SetScheduler conecta el planificador de la tarea automática.
func (s *Service) SetScheduler(scheduler ports.BackupScheduler) {
	s.scheduler = scheduler
}

// GetConfig configuración activa; domain.ErrNotFound si nunca se ha guardado.
func (s *Service) GetConfig(ctx context.Context) (*dto.BackupConfigResponse, error) {
	cfg, err := s.store.BackupSchedules().GetActive(ctx)
	if err != nil {
		return nil, err
	}
	spec, err := schedule.CronSpec(*cfg)
	if err != nil {
		return nil, err
	}
	return s.toResponse(cfg, spec), nil
}

// SaveConfig reemplaza la configuración activa y reprograma la tarea.
func (s *Service) SaveConfig(ctx context.Context, in dto.BackupConfigRequest) (*dto.BackupConfigResponse, error) {
	cfg := &entity.BackupSchedule{
		Tipo:      strings.ToLower(strings.TrimSpace(in.Tipo)),
		DiaSemana: strings.TrimSpace(in.DiaSemana),
		DiaMes:    in.DiaMes,
		MesAnual:  strings.TrimSpace(in.MesAnual),
		Hora:      strings.TrimSpace(in.Hora),
	}
	switch cfg.Tipo {
	case entity.BackupDaily:
		cfg.DiaSemana, cfg.DiaMes, cfg.MesAnual = "", 0, ""
	case entity.BackupWeekly:
		cfg.DiaMes, cfg.MesAnual = 0, ""
	case entity.BackupMonthly:
		cfg.DiaSemana, cfg.MesAnual = "", ""
	case entity.BackupYearly:
		cfg.DiaSemana, cfg.DiaMes = "", 0
	}
	spec, err := schedule.CronSpec(*cfg)
	if err != nil {
		return nil, err
	}

	err = s.tx.Run(ctx, func(st repository.Store) error {
		return st.BackupSchedules().Replace(ctx, cfg)
	})
	if err != nil {
		return nil, err
	}
	if s.scheduler != nil {
		if err := s.scheduler.Reschedule(spec); err != nil {
			return nil, err
		}
	}
	s.log.Info().Str("tipo", cfg.Tipo).Str("cron", spec).Msg("configuración de respaldo guardada")
	return s.toResponse(cfg, spec), nil
}

// Load programa la tarea con la configuración activa al arrancar.
func (s *Service) Load(ctx context.Context) error {
	cfg, err := s.store.BackupSchedules().GetActive(ctx)
	if errors.Is(err, domain.ErrNotFound) {
		s.log.Info().Msg("sin configuración de respaldo automático")
		return nil
	}
	if err != nil {
		return err
	}
	spec, err := schedule.CronSpec(*cfg)
	if err != nil {
		return err
	}
	if s.scheduler == nil {
		return nil
	}
	return s.scheduler.Reschedule(spec)
}

// Export respaldo de solo datos comprimido, listo para descargar.
func (s *Service) Export(ctx context.Context) (*dto.ExportFile, error) {
	var buf bytes.Buffer
	if err := s.dumper.Dump(ctx, &buf); err != nil {
		return nil, err
	}
	return &dto.ExportFile{
		Name:        s.fileName(),
		ContentType: ContentTypeGzip,
		Content:     buf.Bytes(),
	}, nil
}

// Restore acepta un script .sql o un .gz con el script comprimido. Las tablas de la
// aplicación se vacían y el script se ejecuta en una sola transacción.
func (s *Service) Restore(ctx context.Context, filename string, r io.Reader) error {
	var src io.Reader
	switch ext := strings.ToLower(filepath.Ext(filename)); ext {
	case ".gz":
		zr, err := gzip.NewReader(r)
		if err != nil {
			return domain.NewFieldError("file", fmt.Errorf("%w: gzip inválido", domain.ErrInvalidInput))
		}
		defer zr.Close()
		src = zr
	case ".sql":
		src = r
	default:
		return domain.NewFieldError("file", fmt.Errorf("%w: se esperaba .sql o .gz", domain.ErrInvalidInput))
	}

	script, err := io.ReadAll(io.LimitReader(src, MaxRestoreSize+1))
	if err != nil {
		return domain.NewFieldError("file", fmt.Errorf("%w: %v", domain.ErrInvalidInput, err))
	}
	if len(script) > MaxRestoreSize {
		return domain.NewFieldError("file", fmt.Errorf("%w: el respaldo excede el tamaño permitido", domain.ErrInvalidInput))
	}
	if len(bytes.TrimSpace(script)) == 0 {
		return domain.NewFieldError("file", fmt.Errorf("%w: respaldo vacío", domain.ErrInvalidInput))
	}
	if err := s.db.Restore(ctx, string(script)); err != nil {
		return err
	}
	s.log.Warn().Str("file", filename).Int("bytes", len(script)).Msg("base de datos restaurada")
	return nil
}

// RunScheduled tarea del planificador: escribe BKP-YYYY-MM-DD.sql.gz en el directorio
// de respaldos y marca la fecha en la configuración activa.
func (s *Service) RunScheduled(ctx context.Context) error {
	if err := os.MkdirAll(s.opts.BackupsDir, 0o755); err != nil {
		return fmt.Errorf("backups dir: %w", err)
	}
	final := filepath.Join(s.opts.BackupsDir, s.fileName())
	tmp, err := os.CreateTemp(s.opts.BackupsDir, ".bkp-*.tmp")
	if err != nil {
		return fmt.Errorf("backup temp: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := s.dumper.Dump(ctx, tmp); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("backup close: %w", err)
	}
	if err := os.Rename(tmp.Name(), final); err != nil {
		return fmt.Errorf("backup rename: %w", err)
	}

	cfg, err := s.store.BackupSchedules().GetActive(ctx)
	if err != nil {
		return err
	}
	if err := s.store.BackupSchedules().MarkRun(ctx, cfg.ID, s.now()); err != nil {
		return err
	}
	s.log.Info().Str("file", final).Msg("respaldo automático escrito")
	return nil
}

func (s *Service) fileName() string {
	return schedule.FileName(s.now().In(s.opts.Location).Format("2006-01-02"))
}

func (s *Service) toResponse(cfg *entity.BackupSchedule, spec string) *dto.BackupConfigResponse {
	resp := &dto.BackupConfigResponse{
		ID:             cfg.ID,
		Tipo:           cfg.Tipo,
		DiaSemana:      cfg.DiaSemana,
		DiaMes:         cfg.DiaMes,
		MesAnual:       cfg.MesAnual,
		Hora:           cfg.Hora,
		Cron:           spec,
		UltimoRespaldo: cfg.UltimoRespaldo,
	}
	if s.scheduler != nil {
		if next := s.scheduler.Next(); !next.IsZero() {
			resp.ProximaEjecucion = &next
		}
	}
	return resp
}
