package movement

import (
	"errors"
	"testing"
	"time"

	"github.com/jhoicas/inventarios-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlanUndo(t *testing.T) {
	before := Snapshot{"id": int64(7), "description": "anterior"}

	tests := []struct {
		name    string
		kind    ChangeType
		action  Action
		want    Plan
		wantErr error
	}{
		{"restaurar creación borra la fila", Create, ActionRestore,
			Plan{DeleteRow: true, Purge: []ChangeType{Create}}, nil},
		{"restaurar modificación aplica before", Update, ActionRestore,
			Plan{Apply: before, Emit: Restore, Purge: []ChangeType{Update, Delete}}, nil},
		{"restaurar baja lógica aplica before", Delete, ActionRestore,
			Plan{Apply: before, Emit: Restore, Purge: []ChangeType{Update, Delete}}, nil},
		{"restaurar hard-delete no permitido", HardDelete, ActionRestore, Plan{}, domain.ErrInvalidChangeType},
		{"restaurar una restauración no permitido", Restore, ActionRestore, Plan{}, domain.ErrInvalidChangeType},
		{"revertir modificación", Update, ActionRevert,
			Plan{Apply: before, Emit: Restore, Purge: []ChangeType{Update, Delete}}, nil},
		{"revertir creación no permitido", Create, ActionRevert, Plan{}, domain.ErrNotRevertible},
		{"revertir baja lógica no permitido", Delete, ActionRevert, Plan{}, domain.ErrNotRevertible},
		{"purgar creación", Create, ActionPurge,
			Plan{DeleteRow: true, Emit: HardDelete, Purge: []ChangeType{Update, Delete}}, nil},
		{"purgar modificación", Update, ActionPurge,
			Plan{DeleteRow: true, Emit: HardDelete, Purge: []ChangeType{Update, Delete}}, nil},
		{"purgar dos veces no permitido", HardDelete, ActionPurge, Plan{}, domain.ErrAlreadyPurged},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := &Movement{ID: 1, ChangeType: tt.kind, ObjectID: 7}
			if tt.kind != Create {
				m.Before = before
			}
			got, err := PlanUndo(m, tt.action)
			if tt.wantErr != nil {
				assert.True(t, errors.Is(err, tt.wantErr), "error: %v", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPlanUndo_ModificacionSinBefore(t *testing.T) {
	_, err := PlanUndo(&Movement{ID: 3, ChangeType: Update}, ActionRestore)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCheckSnapshots(t *testing.T) {
	snap := Snapshot{"id": int64(1)}

	m := &Movement{ChangeType: Create, Before: snap, After: snap}
	require.NoError(t, m.CheckSnapshots())
	assert.Nil(t, m.Before)

	m = &Movement{ChangeType: Delete, Before: snap, After: snap}
	require.NoError(t, m.CheckSnapshots())
	assert.Nil(t, m.After)

	assert.Error(t, (&Movement{ChangeType: Create}).CheckSnapshots())
	assert.Error(t, (&Movement{ChangeType: Update, Before: snap}).CheckSnapshots())
	assert.Error(t, (&Movement{ChangeType: HardDelete}).CheckSnapshots())
	assert.Error(t, (&Movement{ChangeType: 9, Before: snap, After: snap}).CheckSnapshots())
}

func TestProject_ListaBlanca(t *testing.T) {
	users, err := Lookup(TableUsers)
	require.NoError(t, err)

	snap, err := users.Project(map[string]any{
		"id":          int32(4),
		"username":    "mlopez",
		"role":        int16(2),
		"password_id": int64(9),
		"status":      int16(1),
	})
	require.NoError(t, err)

	assert.Equal(t, Snapshot{"id": int64(4), "username": "mlopez", "role": int64(2), "status": int64(1)}, snap)
	assert.NotContains(t, snap, "password_id")
}

func TestDecode_TiposPorColumna(t *testing.T) {
	resp, err := Lookup(TableResponsivas)
	require.NoError(t, err)

	snap, err := resp.Decode([]byte(`{"id":3,"folio":"SIS-134","fecha":"2025-03-01T00:00:00Z","status":1,"extra":"x"}`))
	require.NoError(t, err)

	assert.Equal(t, int64(3), snap["id"])
	assert.Equal(t, "SIS-134", snap["folio"])
	assert.Equal(t, time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), snap["fecha"])
	assert.NotContains(t, snap, "extra")

	empty, err := resp.Decode([]byte("null"))
	require.NoError(t, err)
	assert.Nil(t, empty)
}

func TestDecode_ValorInvalido(t *testing.T) {
	dev, err := Lookup(TableDevices)
	require.NoError(t, err)

	_, err = dev.Decode([]byte(`{"category_id":"no-numero"}`))
	assert.Error(t, err)
}

func TestAssignments_OmiteID(t *testing.T) {
	dept, err := Lookup(TableDepartments)
	require.NoError(t, err)

	names, values := dept.Assignments(Snapshot{"id": int64(1), "status": int64(1), "name": "IT"})
	assert.Equal(t, []string{"name", "status"}, names)
	assert.Equal(t, []any{"IT", int64(1)}, values)
}

func TestLookup_TablaDesconocida(t *testing.T) {
	_, err := Lookup("passwords")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.NotContains(t, Tables(), "passwords")
}
