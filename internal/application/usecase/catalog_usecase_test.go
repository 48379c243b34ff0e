package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventarios-api/internal/application/apptest"
	"github.com/jhoicas/inventarios-api/internal/application/dto"
	"github.com/jhoicas/inventarios-api/internal/domain"
	"github.com/jhoicas/inventarios-api/internal/domain/entity"
	"github.com/jhoicas/inventarios-api/internal/domain/movement"
)

const actor int64 = 3

func seedAssignment(db *apptest.DB, deptID int64, fn string) int64 {
	floor := db.Insert(movement.TableFloors, map[string]any{"name": "PB"})
	area := db.Insert(movement.TableAreas, map[string]any{"name": "Recepción", "id_floor": floor})
	cat := db.Insert(movement.TableCategories, map[string]any{"name": "Laptop", "type": 0})
	dev := db.Insert(movement.TableDevices, map[string]any{
		"brand": "Dell", "model": "Latitude", "serial_number": "SN-1", "category_id": cat, "func": fn,
	})
	resp := db.Insert(movement.TableResponsivas, map[string]any{
		"folio": "SIS-134", "fecha": time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), "responsable": "Luis",
		"id_area": area, "id_departamento": deptID,
	})
	db.Link(resp, dev)
	return dev
}

func TestDepartment_CreateRegistraMovimiento(t *testing.T) {
	db := apptest.NewDB()
	uc := NewDepartmentUseCase(db.Store(), db)

	out, err := uc.Create(context.Background(), actor, dto.DepartmentRequest{Name: "  Compras ", Abbreviation: "COM"})
	require.NoError(t, err)
	assert.Equal(t, "Compras", out.Name)
	assert.Equal(t, 1, out.Status)

	ms := db.AllMovements()
	require.Len(t, ms, 1)
	assert.Equal(t, movement.Create, ms[0].ChangeType)
	assert.Equal(t, out.ID, ms[0].ObjectID)
	assert.Equal(t, actor, ms[0].UserID)
}

func TestDepartment_UpdateGuardaAntesYDespues(t *testing.T) {
	db := apptest.NewDB()
	id := db.Insert(movement.TableDepartments, map[string]any{"name": "Compras", "abbreviation": "COM"})
	uc := NewDepartmentUseCase(db.Store(), db)

	_, err := uc.Update(context.Background(), actor, id, dto.DepartmentRequest{Name: "Adquisiciones", Abbreviation: "ADQ"})
	require.NoError(t, err)

	ms := db.AllMovements()
	require.Len(t, ms, 1)
	assert.Equal(t, "Compras", ms[0].Before["name"])
	assert.Equal(t, "Adquisiciones", ms[0].After["name"])
}

func TestDepartment_DeleteConEquiposAsignados(t *testing.T) {
	db := apptest.NewDB()
	dept := db.Insert(movement.TableDepartments, map[string]any{"name": "Sistemas", "abbreviation": "SIS"})
	seedAssignment(db, dept, "asignado")
	uc := NewDepartmentUseCase(db.Store(), db)

	n, err := uc.CountEquipments(context.Background(), dept)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	err = uc.Delete(context.Background(), actor, dept)
	var coded *domain.CodedError
	require.True(t, errors.As(err, &coded))
	assert.Equal(t, CodeDeptHasEquipments, coded.Code)
	assert.ErrorIs(t, err, domain.ErrHasDependents)
	assert.Equal(t, int64(1), db.Row(movement.TableDepartments, dept)["status"])
	assert.Empty(t, db.AllMovements())
}

func TestDepartment_DeleteSinEquipos(t *testing.T) {
	db := apptest.NewDB()
	dept := db.Insert(movement.TableDepartments, map[string]any{"name": "Sistemas", "abbreviation": "SIS"})
	seedAssignment(db, dept, "resguardo")
	uc := NewDepartmentUseCase(db.Store(), db)

	require.NoError(t, uc.Delete(context.Background(), actor, dept))
	assert.Equal(t, int64(0), db.Row(movement.TableDepartments, dept)["status"])

	ms := db.AllMovements()
	require.Len(t, ms, 1)
	assert.Equal(t, movement.Delete, ms[0].ChangeType)

	_, err := uc.Get(context.Background(), dept)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestFloor_Restore(t *testing.T) {
	db := apptest.NewDB()
	id := db.Insert(movement.TableFloors, map[string]any{"name": "Piso 2", "status": 0})
	uc := NewFloorUseCase(db.Store(), db)

	require.NoError(t, uc.Restore(context.Background(), actor, id))
	assert.Equal(t, int64(1), db.Row(movement.TableFloors, id)["status"])
	assert.Equal(t, movement.Restore, db.AllMovements()[0].ChangeType)

	err := uc.Restore(context.Background(), actor, id)
	assert.ErrorIs(t, err, domain.ErrConflict)

	err = uc.Restore(context.Background(), actor, 404)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDevice_DeleteAsignadoSeRechaza(t *testing.T) {
	db := apptest.NewDB()
	dept := db.Insert(movement.TableDepartments, map[string]any{"name": "Sistemas", "abbreviation": "SIS"})
	dev := seedAssignment(db, dept, "asignado")
	uc := NewDeviceUseCase(db.Store(), db)

	err := uc.Delete(context.Background(), actor, dev)
	assert.ErrorIs(t, err, domain.ErrInvalidState)
	assert.Equal(t, int64(1), db.Row(movement.TableDevices, dev)["status"])
}

func TestDuplicateName(t *testing.T) {
	err := duplicateName(0, 12)
	var re *domain.ReactivableError
	require.True(t, errors.As(err, &re))
	assert.Equal(t, int64(12), re.ID)
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	err = duplicateName(1, 12)
	var fe *domain.FieldError
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, "name", fe.Field)
}

func TestCheckCustomValues(t *testing.T) {
	fields := []*entity.CustomField{
		{ID: 1, Name: "RAM", Required: true},
		{ID: 2, Name: "Disco"},
	}

	assert.NoError(t, checkCustomValues(fields, []dto.CustomValueInput{{CustomFieldID: 1, Value: "16 GB"}}, true))
	assert.ErrorIs(t, checkCustomValues(fields, []dto.CustomValueInput{{CustomFieldID: 2, Value: "512"}}, true), domain.ErrInvalidInput)
	assert.NoError(t, checkCustomValues(fields, nil, false))
	assert.ErrorIs(t, checkCustomValues(fields, []dto.CustomValueInput{{CustomFieldID: 9, Value: "x"}}, false), domain.ErrInvalidInput)
}
