package backup

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventarios-api/pkg/logger"
)

func newTestScheduler(t *testing.T, job Job) *Scheduler {
	t.Helper()
	loc, err := time.LoadLocation("America/Mexico_City")
	require.NoError(t, err)
	s := NewScheduler(loc, job, time.Minute, logger.Nop())
	t.Cleanup(func() { _ = s.Stop(context.Background()) })
	return s
}

func TestScheduler_RescheduleKeepsSingleEntry(t *testing.T) {
	s := newTestScheduler(t, func(context.Context) error { return nil })

	require.NoError(t, s.Reschedule("0 2 * * *"))
	require.NoError(t, s.Reschedule("30 3 * * 1"))

	assert.Len(t, s.cron.Entries(), 1)
	assert.Equal(t, "30 3 * * 1", s.Spec())

	next := s.Next()
	require.False(t, next.IsZero())
	assert.Equal(t, time.Monday, next.Weekday())
	assert.Equal(t, 3, next.Hour())
	assert.Equal(t, 30, next.Minute())
	assert.Equal(t, "America/Mexico_City", next.Location().String())
}

func TestScheduler_InvalidSpecKeepsPrevious(t *testing.T) {
	s := newTestScheduler(t, func(context.Context) error { return nil })

	require.NoError(t, s.Reschedule("0 2 * * *"))
	err := s.Reschedule("no es cron")
	require.Error(t, err)

	assert.Len(t, s.cron.Entries(), 1)
	assert.Equal(t, "0 2 * * *", s.Spec())
}

func TestScheduler_NoEntry(t *testing.T) {
	s := newTestScheduler(t, func(context.Context) error { return nil })
	assert.True(t, s.Next().IsZero())
	assert.Empty(t, s.Spec())
}

func TestScheduler_RunInvokesJob(t *testing.T) {
	called := make(chan struct{}, 1)
	s := newTestScheduler(t, func(ctx context.Context) error {
		_, hasDeadline := ctx.Deadline()
		assert.True(t, hasDeadline)
		called <- struct{}{}
		return nil
	})

	s.run()
	select {
	case <-called:
	default:
		t.Fatal("la tarea no se ejecutó")
	}
}

func TestPgDumper_Args(t *testing.T) {
	d := NewPgDumper("", configFixture())
	assert.Equal(t, "pg_dump", d.binary)
	assert.Contains(t, d.args(), "--data-only")
	assert.Contains(t, d.args(), "--inserts")
	assert.Equal(t, "inventarios", d.args()[len(d.args())-1])
	assert.Contains(t, d.env(), "PGPASSWORD=secret")
	for _, a := range d.args() {
		assert.NotContains(t, a, "secret")
	}
}
