package backup

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/jhoicas/inventarios-api/internal/application/ports"
	"github.com/jhoicas/inventarios-api/pkg/logger"
)

var _ ports.BackupScheduler = (*Scheduler)(nil)

// Job tarea que ejecuta el respaldo programado.
type Job func(ctx context.Context) error

// Scheduler mantiene una única tarea cron de respaldo.
// Reschedule cancela la vigente e instala la nueva bajo el mismo candado.
type Scheduler struct {
	mu      sync.Mutex
	cron    *cron.Cron
	entry   cron.EntryID
	spec    string
	job     Job
	timeout time.Duration
	log     *logger.Logger
}

// NewScheduler crea el planificador en la zona horaria indicada y lo arranca sin tareas.
func NewScheduler(loc *time.Location, job Job, timeout time.Duration, log *logger.Logger) *Scheduler {
	cl := cronLogger{log: log}
	s := &Scheduler{
		cron: cron.New(
			cron.WithLocation(loc),
			cron.WithLogger(cl),
			cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)),
		),
		job:     job,
		timeout: timeout,
		log:     log,
	}
	s.cron.Start()
	return s
}

// Reschedule reemplaza la tarea vigente por una con la expresión spec (5 campos).
func (s *Scheduler) Reschedule(spec string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	id, err := s.cron.AddFunc(spec, s.run)
	if err != nil {
		return fmt.Errorf("cron %q: %w", spec, err)
	}
	if s.entry != 0 {
		s.cron.Remove(s.entry)
	}
	s.entry = id
	s.spec = spec
	s.log.Info().Str("spec", spec).Time("next", s.cron.Entry(id).Next).Msg("respaldo automático programado")
	return nil
}

// Spec expresión vigente ("" si no hay tarea).
func (s *Scheduler) Spec() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.spec
}

// Next próxima ejecución (cero si no hay tarea).
func (s *Scheduler) Next() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.entry == 0 {
		return time.Time{}
	}
	return s.cron.Entry(s.entry).Next
}

// Stop detiene el planificador y espera a que termine un respaldo en curso o a que ctx expire.
func (s *Scheduler) Stop(ctx context.Context) error {
	done := s.cron.Stop()
	select {
	case <-done.Done():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Scheduler) run() {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	start := time.Now()
	if err := s.job(ctx); err != nil {
		s.log.Error().Err(err).Msg("respaldo automático fallido")
		return
	}
	s.log.Info().Dur("duration", time.Since(start)).Msg("respaldo automático completado")
}

// cronLogger adapta logger.Logger a cron.Logger.
type cronLogger struct {
	log *logger.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...any) {
	l.log.Debug().Fields(keysAndValues).Msg(msg)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...any) {
	l.log.Error().Err(err).Fields(keysAndValues).Msg(msg)
}
