package documents

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventarios-api/internal/application/apptest"
	"github.com/jhoicas/inventarios-api/internal/application/dto"
	"github.com/jhoicas/inventarios-api/internal/domain"
	"github.com/jhoicas/inventarios-api/internal/domain/entity"
	"github.com/jhoicas/inventarios-api/internal/domain/movement"
	"github.com/jhoicas/inventarios-api/internal/domain/repository"
	"github.com/jhoicas/inventarios-api/pkg/logger"
)

const actor int64 = 5

type seed struct {
	db      *apptest.DB
	area    int64
	dept    int64
	devices []int64
}

func newSeed(funcs ...entity.DeviceFunc) *seed {
	db := apptest.NewDB()
	s := &seed{db: db}
	floor := db.Insert(movement.TableFloors, map[string]any{"name": "Planta alta"})
	s.area = db.Insert(movement.TableAreas, map[string]any{"name": "Contabilidad", "id_floor": floor})
	s.dept = db.Insert(movement.TableDepartments, map[string]any{"name": "Finanzas", "abbreviation": "FIN"})
	cat := db.Insert(movement.TableCategories, map[string]any{"name": "Monitor", "type": 0})
	for i, f := range funcs {
		s.devices = append(s.devices, db.Insert(movement.TableDevices, map[string]any{
			"brand": "HP", "model": "E24", "serial_number": "MX-" + string(rune('A'+i)),
			"category_id": cat, "func": string(f), "is_new": true,
		}))
	}
	return s
}

func (s *seed) device(id int64) movement.Snapshot {
	return s.db.Row(movement.TableDevices, id)
}

func countKind(ms []*movement.Movement, table string, kind movement.ChangeType) int {
	n := 0
	for _, m := range ms {
		if m.Table == table && m.ChangeType == kind {
			n++
		}
	}
	return n
}

// ─── Responsivas ────────────────────────────────────────────────────────────

func newResponsivaUC(s *seed, pdf *MockPDFGenerator, files *MockFileStorage) *ResponsivaUseCase {
	return NewResponsivaUseCase(s.db.Store(), s.db, pdf, files, logger.Nop())
}

func TestResponsiva_CreateAsignaEquipos(t *testing.T) {
	s := newSeed(entity.FuncResguardo, entity.FuncResguardo)
	uc := newResponsivaUC(s, new(MockPDFGenerator), new(MockFileStorage))

	out, err := uc.Create(context.Background(), actor, dto.ResponsivaRequest{
		Fecha: "2025-05-02", Responsable: "Marta Ruiz", AreaID: s.area, DepartmentID: s.dept,
		DeviceIDs: []int64{s.devices[0], s.devices[1], s.devices[0]},
	})
	require.NoError(t, err)

	assert.Equal(t, "SIS-134", out.Folio)
	assert.Equal(t, "Contabilidad", out.AreaName)
	assert.Equal(t, "Finanzas", out.DepartmentName)
	assert.Len(t, out.Devices, 2)
	for _, id := range s.devices {
		assert.Equal(t, "asignado", s.device(id)["func"])
		assert.Equal(t, false, s.device(id)["is_new"])
	}

	ms := s.db.AllMovements()
	assert.Equal(t, 1, countKind(ms, movement.TableResponsivas, movement.Create))
	assert.Equal(t, 2, countKind(ms, movement.TableDevices, movement.Update))

	second, err := uc.Create(context.Background(), actor, dto.ResponsivaRequest{
		Responsable: "Otra", AreaID: s.area, DepartmentID: s.dept, DeviceIDs: []int64{s.devices[0]},
	})
	require.Error(t, err)
	assert.Nil(t, second)
}

func TestResponsiva_CreateEquipoNoDisponibleRevierteTodo(t *testing.T) {
	s := newSeed(entity.FuncResguardo, entity.FuncBaja)
	uc := newResponsivaUC(s, new(MockPDFGenerator), new(MockFileStorage))

	_, err := uc.Create(context.Background(), actor, dto.ResponsivaRequest{
		Responsable: "Marta", AreaID: s.area, DepartmentID: s.dept, DeviceIDs: s.devices,
	})
	var coded *domain.CodedError
	require.True(t, errors.As(err, &coded))
	assert.Equal(t, CodeDeviceNotAvailable, coded.Code)
	assert.ErrorIs(t, err, domain.ErrInvalidState)

	assert.Equal(t, "resguardo", s.device(s.devices[0])["func"])
	assert.Equal(t, true, s.device(s.devices[0])["is_new"])
	assert.Empty(t, s.db.AllMovements())
	assert.Nil(t, s.db.Row(movement.TableResponsivas, 1))
}

func TestResponsiva_CreateReferenciasInvalidas(t *testing.T) {
	s := newSeed(entity.FuncResguardo)
	uc := newResponsivaUC(s, new(MockPDFGenerator), new(MockFileStorage))

	_, err := uc.Create(context.Background(), actor, dto.ResponsivaRequest{
		Responsable: "Marta", AreaID: 99, DepartmentID: s.dept, DeviceIDs: s.devices,
	})
	var fe *domain.FieldError
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, "id_area", fe.Field)

	_, err = uc.Create(context.Background(), actor, dto.ResponsivaRequest{
		Responsable: "Marta", AreaID: s.area, DepartmentID: s.dept, DeviceIDs: []int64{404},
	})
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, "devices", fe.Field)
}

func TestResponsiva_CancelRegresaEquipos(t *testing.T) {
	s := newSeed(entity.FuncResguardo)
	uc := newResponsivaUC(s, new(MockPDFGenerator), new(MockFileStorage))
	out, err := uc.Create(context.Background(), actor, dto.ResponsivaRequest{
		Responsable: "Marta", AreaID: s.area, DepartmentID: s.dept, DeviceIDs: s.devices,
	})
	require.NoError(t, err)

	require.NoError(t, uc.Cancel(context.Background(), actor, out.ID))
	assert.Equal(t, "resguardo", s.device(s.devices[0])["func"])
	assert.Equal(t, int64(0), s.db.Row(movement.TableResponsivas, out.ID)["status"])
	assert.Equal(t, 1, countKind(s.db.AllMovements(), movement.TableResponsivas, movement.Delete))

	assert.ErrorIs(t, uc.Cancel(context.Background(), actor, out.ID), domain.ErrConflict)
}

func TestResponsiva_HardDelete(t *testing.T) {
	s := newSeed(entity.FuncResguardo)
	files := new(MockFileStorage)
	uc := newResponsivaUC(s, new(MockPDFGenerator), files)
	out, err := uc.Create(context.Background(), actor, dto.ResponsivaRequest{
		Responsable: "Marta", AreaID: s.area, DepartmentID: s.dept, DeviceIDs: s.devices,
	})
	require.NoError(t, err)

	files.On("Save", mock.Anything, "responsivas", "firma.jpg").Return("abc-firma.jpg", nil).Once()
	_, err = uc.UploadDocument(context.Background(), actor, out.ID, "firma.jpg", strings.NewReader("jpg"))
	require.NoError(t, err)

	files.On("Remove", mock.Anything, "responsivas", "abc-firma.jpg").Return(nil).Once()
	require.NoError(t, uc.HardDelete(context.Background(), actor, out.ID))

	assert.Nil(t, s.db.Row(movement.TableResponsivas, out.ID))
	assert.Equal(t, "resguardo", s.device(s.devices[0])["func"])
	assert.Equal(t, 1, countKind(s.db.AllMovements(), movement.TableResponsivas, movement.HardDelete))
	files.AssertExpectations(t)
}

func TestResponsiva_PDF(t *testing.T) {
	s := newSeed(entity.FuncResguardo)
	pdf := new(MockPDFGenerator)
	uc := newResponsivaUC(s, pdf, new(MockFileStorage))
	out, err := uc.Create(context.Background(), actor, dto.ResponsivaRequest{
		Responsable: "Marta", AreaID: s.area, DepartmentID: s.dept, DeviceIDs: s.devices,
	})
	require.NoError(t, err)

	pdf.On("ResponsivaPDF", mock.Anything, mock.MatchedBy(func(r *entity.Responsiva) bool {
		return r.Folio == "SIS-134" && len(r.Devices) == 1
	})).Return([]byte("%PDF-1.4"), nil)

	file, err := uc.PDF(context.Background(), out.ID)
	require.NoError(t, err)
	assert.Equal(t, "responsiva_SIS-134.pdf", file.Name)
	pdf.AssertExpectations(t)
}

// ─── Bajas ──────────────────────────────────────────────────────────────────

func newBajaUC(s *seed, pdf *MockPDFGenerator, files *MockFileStorage) *BajaUseCase {
	uc := NewBajaUseCase(s.db.Store(), s.db, pdf, files, logger.Nop())
	uc.now = func() time.Time { return time.Date(2025, 6, 10, 15, 0, 0, 0, time.UTC) }
	return uc
}

func TestBaja_Create(t *testing.T) {
	s := newSeed(entity.FuncResguardo)
	pdf := new(MockPDFGenerator)
	pdf.On("BajaPDF", mock.Anything, mock.AnythingOfType("*entity.Baja")).Return([]byte("%PDF-baja"), nil)
	uc := newBajaUC(s, pdf, new(MockFileStorage))

	out, file, err := uc.Create(context.Background(), actor, dto.BajaRequest{
		DeviceID: s.devices[0], Motivo: "Pantalla dañada", DepartmentID: &s.dept,
	})
	require.NoError(t, err)

	assert.Equal(t, "BAJA-141", out.Folio)
	assert.Equal(t, time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC), out.Fecha)
	assert.Equal(t, "Finanzas", out.DepartmentName)
	assert.Equal(t, "baja_BAJA-141.pdf", file.Name)
	assert.Equal(t, []byte("%PDF-baja"), file.Content)
	assert.Equal(t, "baja", s.device(s.devices[0])["func"])

	_, _, err = uc.Create(context.Background(), actor, dto.BajaRequest{DeviceID: s.devices[0], Motivo: "otra vez"})
	assert.ErrorIs(t, err, domain.ErrInvalidState)
	assert.Equal(t, 1, countKind(s.db.AllMovements(), movement.TableBajas, movement.Create))
}

func TestBaja_CreateConcurrenteMismoEquipo(t *testing.T) {
	s := newSeed(entity.FuncResguardo)
	pdf := new(MockPDFGenerator)
	pdf.On("BajaPDF", mock.Anything, mock.Anything).Return([]byte("%PDF"), nil)
	uc := newBajaUC(s, pdf, new(MockFileStorage))

	const workers = 2
	start := make(chan struct{})
	errs := make([]error, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			<-start
			_, _, errs[i] = uc.Create(context.Background(), actor, dto.BajaRequest{
				DeviceID: s.devices[0], Motivo: fmt.Sprintf("intento %d", i),
			})
		}(i)
	}
	close(start)
	wg.Wait()

	var ok, rechazadas int
	for _, err := range errs {
		switch {
		case err == nil:
			ok++
		case errors.Is(err, domain.ErrInvalidState):
			rechazadas++
		default:
			t.Errorf("error inesperado: %v", err)
		}
	}
	assert.Equal(t, 1, ok)
	assert.Equal(t, 1, rechazadas)
	assert.Equal(t, 1, countKind(s.db.AllMovements(), movement.TableBajas, movement.Create))
	assert.Equal(t, "baja", s.device(s.devices[0])["func"])
}

func TestBaja_CreateEquipoInexistenteOAsignado(t *testing.T) {
	s := newSeed(entity.FuncAsignado)
	uc := newBajaUC(s, new(MockPDFGenerator), new(MockFileStorage))

	_, _, err := uc.Create(context.Background(), actor, dto.BajaRequest{DeviceID: 404, Motivo: "x"})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, _, err = uc.Create(context.Background(), actor, dto.BajaRequest{DeviceID: s.devices[0], Motivo: "x"})
	var coded *domain.CodedError
	require.True(t, errors.As(err, &coded))
	assert.Equal(t, CodeDeviceNotAvailable, coded.Code)
	assert.Empty(t, s.db.AllMovements())
}

func TestBaja_DeleteByDevice(t *testing.T) {
	s := newSeed(entity.FuncResguardo)
	pdf := new(MockPDFGenerator)
	pdf.On("BajaPDF", mock.Anything, mock.Anything).Return([]byte("%PDF"), nil)
	uc := newBajaUC(s, pdf, new(MockFileStorage))
	out, _, err := uc.Create(context.Background(), actor, dto.BajaRequest{DeviceID: s.devices[0], Motivo: "x"})
	require.NoError(t, err)

	require.NoError(t, uc.DeleteByDevice(context.Background(), actor, s.devices[0]))
	assert.Equal(t, "resguardo", s.device(s.devices[0])["func"])
	assert.Nil(t, s.db.Row(movement.TableBajas, out.ID))
	assert.Equal(t, 1, countKind(s.db.AllMovements(), movement.TableBajas, movement.HardDelete))

	err = uc.DeleteByDevice(context.Background(), actor, s.devices[0])
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestBaja_UploadSoloPDF(t *testing.T) {
	s := newSeed(entity.FuncResguardo)
	pdf := new(MockPDFGenerator)
	pdf.On("BajaPDF", mock.Anything, mock.Anything).Return([]byte("%PDF"), nil)
	files := new(MockFileStorage)
	uc := newBajaUC(s, pdf, files)
	out, _, err := uc.Create(context.Background(), actor, dto.BajaRequest{DeviceID: s.devices[0], Motivo: "x"})
	require.NoError(t, err)

	_, err = uc.UploadDocument(context.Background(), actor, out.ID, "acta.png", strings.NewReader("%PDF-1.7"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = uc.UploadDocument(context.Background(), actor, out.ID, "acta.pdf", strings.NewReader("GIF89a"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	files.On("Save", mock.Anything, "bajas", "acta.pdf").Return("u1-acta.pdf", nil).Once()
	doc, err := uc.UploadDocument(context.Background(), actor, out.ID, "acta.pdf", strings.NewReader("%PDF-1.7 contenido"))
	require.NoError(t, err)
	assert.Equal(t, "/uploads/bajas/u1-acta.pdf", doc.URL)
	assert.Equal(t, []byte("%PDF-1.7 contenido"), files.saved)

	docs, err := uc.Documents(context.Background(), out.ID)
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "acta.pdf", docs[0].NombreArchivo)
	files.AssertExpectations(t)
}

func TestBaja_UploadExcedeTamano(t *testing.T) {
	s := newSeed(entity.FuncResguardo)
	pdf := new(MockPDFGenerator)
	pdf.On("BajaPDF", mock.Anything, mock.Anything).Return([]byte("%PDF"), nil)
	files := new(MockFileStorage)
	uc := newBajaUC(s, pdf, files)
	out, _, err := uc.Create(context.Background(), actor, dto.BajaRequest{DeviceID: s.devices[0], Motivo: "x"})
	require.NoError(t, err)

	big := append([]byte("%PDF-"), bytes.Repeat([]byte{'0'}, MaxBajaDocumentSize)...)
	files.On("Save", mock.Anything, "bajas", "grande.pdf").Return("u2-grande.pdf", nil).Once()
	files.On("Remove", mock.Anything, "bajas", "u2-grande.pdf").Return(nil).Once()

	_, err = uc.UploadDocument(context.Background(), actor, out.ID, "grande.pdf", bytes.NewReader(big))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	docs, err := s.db.Store().Documents().List(context.Background(), repository.DocumentsBaja, out.ID)
	require.NoError(t, err)
	assert.Empty(t, docs)
	files.AssertExpectations(t)
}

// ─── Mantenimientos ─────────────────────────────────────────────────────────

func TestMantenimiento_Create(t *testing.T) {
	s := newSeed(entity.FuncResguardo)
	ruc := newResponsivaUC(s, new(MockPDFGenerator), new(MockFileStorage))
	resp, err := ruc.Create(context.Background(), actor, dto.ResponsivaRequest{
		Responsable: "Marta", AreaID: s.area, DepartmentID: s.dept, DeviceIDs: s.devices,
	})
	require.NoError(t, err)

	pdf := new(MockPDFGenerator)
	pdf.On("MantenimientoPDF", mock.Anything, mock.Anything).Return([]byte("%PDF-man"), nil)
	uc := NewMantenimientoUseCase(s.db.Store(), s.db, pdf, logger.Nop())

	out, file, err := uc.Create(context.Background(), actor, dto.MantenimientoRequest{
		Fecha: "2025-07-01", ResponsivaID: resp.ID, Hardware: true, Software: true,
		DeviceStatuses: []dto.DeviceStatusInput{{ID: s.devices[0], Estado: "completo"}},
	})
	require.NoError(t, err)
	assert.Equal(t, "MAN-141", out.Folio)
	assert.True(t, out.Completo)
	assert.Equal(t, "Marta", out.Responsable)
	assert.Equal(t, "mantenimiento_MAN-141.pdf", file.Name)

	incompleto := dto.Flag(false)
	out, _, err = uc.Create(context.Background(), actor, dto.MantenimientoRequest{
		Fecha: "2025-07-02", ResponsivaID: resp.ID, Hardware: true, Software: true, Completo: &incompleto,
	})
	require.NoError(t, err)
	assert.Equal(t, "MAN-142", out.Folio)
	assert.False(t, out.Completo)

	uc.now = func() time.Time { return time.Date(2025, 7, 3, 18, 30, 0, 0, time.UTC) }
	out, _, err = uc.Create(context.Background(), actor, dto.MantenimientoRequest{ResponsivaID: resp.ID})
	require.NoError(t, err)
	assert.Equal(t, "MAN-143", out.Folio)
	assert.Equal(t, time.Date(2025, 7, 3, 0, 0, 0, 0, time.UTC), out.Fecha)

	_, _, err = uc.Create(context.Background(), actor, dto.MantenimientoRequest{Fecha: "2025-07-02", ResponsivaID: 404})
	var fe *domain.FieldError
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, "responsiva_id", fe.Field)
}
