package history

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventarios-api/internal/application/apptest"
	"github.com/jhoicas/inventarios-api/internal/application/dto"
	"github.com/jhoicas/inventarios-api/internal/domain"
	"github.com/jhoicas/inventarios-api/internal/domain/movement"
	"github.com/jhoicas/inventarios-api/pkg/logger"
)

const actor int64 = 7

type fixture struct {
	db     *apptest.DB
	st     *apptest.Store
	svc    *Service
	deptID int64
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := apptest.NewDB()
	st := db.Store()
	f := &fixture{db: db, st: st, svc: NewService(st, db, logger.Nop())}
	f.deptID = db.Insert(movement.TableDepartments, map[string]any{
		"name": "Sistemas", "abbreviation": "SIS", "department_head": "Ana",
	})
	require.NoError(t, RecordCreate(context.Background(), st, movement.TableDepartments, f.deptID, actor))
	return f
}

func (f *fixture) rename(t *testing.T, name string) *movement.Movement {
	t.Helper()
	ctx := context.Background()
	err := Track(ctx, f.st, movement.TableDepartments, movement.Update, f.deptID, actor, func() error {
		return f.st.Rows().Apply(ctx, movement.TableDepartments, f.deptID, movement.Snapshot{"name": name})
	})
	require.NoError(t, err)
	return f.last()
}

func (f *fixture) last() *movement.Movement {
	all := f.db.AllMovements()
	return all[len(all)-1]
}

func kinds(ms []*movement.Movement) []movement.ChangeType {
	out := make([]movement.ChangeType, 0, len(ms))
	for _, m := range ms {
		out = append(out, m.ChangeType)
	}
	return out
}

func TestRecord_ProyectaYValida(t *testing.T) {
	f := newFixture(t)
	create := f.db.AllMovements()[0]
	assert.Equal(t, movement.Create, create.ChangeType)
	assert.Nil(t, create.Before)
	assert.Equal(t, "Sistemas", create.After["name"])

	_, err := Record(context.Background(), f.st.Movements(), movement.TableDepartments,
		movement.Update, f.deptID, actor, nil, movement.Snapshot{"id": f.deptID})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = Record(context.Background(), f.st.Movements(), "passwords",
		movement.Create, 1, actor, nil, movement.Snapshot{"id": int64(1)})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRestore_Modificacion(t *testing.T) {
	f := newFixture(t)
	f.rename(t, "TI")
	upd := f.rename(t, "Informática")

	resp, err := f.svc.Restore(context.Background(), upd.ID, actor)
	require.NoError(t, err)

	assert.Equal(t, "TI", f.db.Row(movement.TableDepartments, f.deptID)["name"])
	assert.Equal(t, "restore", resp.Action)
	assert.Equal(t, int64(2), resp.Purged)
	assert.Equal(t, "TI", resp.Restored["name"])
	assert.Equal(t, []movement.ChangeType{movement.Create, movement.Restore}, kinds(f.db.AllMovements()))

	restore := f.last()
	assert.Equal(t, resp.MovementID, restore.ID)
	assert.Equal(t, "Informática", restore.Before["name"])
	assert.Equal(t, "TI", restore.After["name"])
}

func TestRestore_BajaLogica(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, SoftDelete(context.Background(), f.st, movement.TableDepartments, f.deptID, actor))
	del := f.last()
	assert.Equal(t, movement.Delete, del.ChangeType)
	assert.Nil(t, del.After)
	assert.Equal(t, int64(0), f.db.Row(movement.TableDepartments, f.deptID)["status"])

	_, err := f.svc.Restore(context.Background(), del.ID, actor)
	require.NoError(t, err)
	assert.Equal(t, int64(1), f.db.Row(movement.TableDepartments, f.deptID)["status"])
	assert.Equal(t, []movement.ChangeType{movement.Create, movement.Restore}, kinds(f.db.AllMovements()))
}

func TestRestore_Creacion(t *testing.T) {
	f := newFixture(t)
	create := f.db.AllMovements()[0]

	resp, err := f.svc.Restore(context.Background(), create.ID, actor)
	require.NoError(t, err)

	assert.Nil(t, f.db.Row(movement.TableDepartments, f.deptID))
	assert.Empty(t, f.db.AllMovements())
	assert.Equal(t, int64(1), resp.Purged)
	assert.Zero(t, resp.MovementID)
}

func TestRevert_SoloModificaciones(t *testing.T) {
	f := newFixture(t)
	create := f.db.AllMovements()[0]

	_, err := f.svc.Revert(context.Background(), create.ID, actor)
	assert.ErrorIs(t, err, domain.ErrNotRevertible)

	upd := f.rename(t, "TI")
	resp, err := f.svc.Revert(context.Background(), upd.ID, actor)
	require.NoError(t, err)
	assert.Equal(t, "revert", resp.Action)
	assert.Equal(t, "Sistemas", f.db.Row(movement.TableDepartments, f.deptID)["name"])
}

func TestRestore_TipoNoRestaurable(t *testing.T) {
	f := newFixture(t)
	upd := f.rename(t, "TI")
	_, err := f.svc.Restore(context.Background(), upd.ID, actor)
	require.NoError(t, err)

	_, err = f.svc.Restore(context.Background(), f.last().ID, actor)
	assert.ErrorIs(t, err, domain.ErrInvalidChangeType)
}

func TestDeletePermanent(t *testing.T) {
	f := newFixture(t)
	upd := f.rename(t, "TI")

	resp, err := f.svc.DeletePermanent(context.Background(), upd.ID, actor)
	require.NoError(t, err)

	assert.Nil(t, f.db.Row(movement.TableDepartments, f.deptID))
	assert.Equal(t, []movement.ChangeType{movement.Create, movement.HardDelete}, kinds(f.db.AllMovements()))
	hard := f.last()
	assert.Equal(t, "TI", hard.Before["name"])
	assert.Nil(t, hard.After)
	assert.Equal(t, resp.MovementID, hard.ID)

	_, err = f.svc.DeletePermanent(context.Background(), hard.ID, actor)
	assert.ErrorIs(t, err, domain.ErrAlreadyPurged)
}

func TestDeletePermanent_FilaYaEliminada(t *testing.T) {
	f := newFixture(t)
	upd := f.rename(t, "TI")
	_, err := f.st.Rows().Delete(context.Background(), movement.TableDepartments, f.deptID)
	require.NoError(t, err)

	_, err = f.svc.DeletePermanent(context.Background(), upd.ID, actor)
	require.NoError(t, err)
	assert.Equal(t, "TI", f.last().Before["name"])
}

func TestRestore_FilaInexistenteNoDejaCambios(t *testing.T) {
	f := newFixture(t)
	upd := f.rename(t, "TI")
	_, err := f.st.Rows().Delete(context.Background(), movement.TableDepartments, f.deptID)
	require.NoError(t, err)
	before := kinds(f.db.AllMovements())

	_, err = f.svc.Restore(context.Background(), upd.ID, actor)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, before, kinds(f.db.AllMovements()))
}

func TestRestore_MovimientoInexistente(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.Restore(context.Background(), 999, actor)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestList(t *testing.T) {
	f := newFixture(t)
	f.rename(t, "TI")
	f.rename(t, "Informática")

	list, err := f.svc.List(context.Background(), dto.HistoryFilter{Table: movement.TableDepartments})
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "update", list[0].ChangeTypeName)
	assert.Equal(t, "create", list[2].ChangeTypeName)

	list, err = f.svc.List(context.Background(), dto.HistoryFilter{ChangeType: int(movement.Update), Limit: 1})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Informática", list[0].AfterInfo["name"])

	_, err = f.svc.List(context.Background(), dto.HistoryFilter{Table: "passwords"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = f.svc.List(context.Background(), dto.HistoryFilter{ChangeType: 9})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestList_SinLimiteDevuelveTodo(t *testing.T) {
	f := newFixture(t)
	for i := 0; i < 250; i++ {
		f.rename(t, fmt.Sprintf("Sistemas %d", i))
	}

	list, err := f.svc.List(context.Background(), dto.HistoryFilter{})
	require.NoError(t, err)
	assert.Len(t, list, 251)
	assert.Equal(t, "create", list[250].ChangeTypeName)

	list, err = f.svc.List(context.Background(), dto.HistoryFilter{Limit: 10, Offset: 245})
	require.NoError(t, err)
	assert.Len(t, list, 6)
}
