package usecase

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventarios-api/internal/application/dto"
	"github.com/jhoicas/inventarios-api/internal/domain/entity"
)

// ── Mocks ──────────────────────────────────────────────────────────────────

type MockReportRepository struct {
	mock.Mock
}

func (m *MockReportRepository) DeviceSummary(ctx context.Context) (*entity.DeviceSummary, error) {
	args := m.Called(ctx)
	s, _ := args.Get(0).(*entity.DeviceSummary)
	return s, args.Error(1)
}

func (m *MockReportRepository) DeviceRows(ctx context.Context, f entity.DeviceReportFilter) ([]entity.DeviceReportRow, error) {
	args := m.Called(ctx, f)
	rows, _ := args.Get(0).([]entity.DeviceReportRow)
	return rows, args.Error(1)
}

func (m *MockReportRepository) AccessorySummary(ctx context.Context) (*entity.AccessorySummary, error) {
	args := m.Called(ctx)
	s, _ := args.Get(0).(*entity.AccessorySummary)
	return s, args.Error(1)
}

func (m *MockReportRepository) AccessoryRows(ctx context.Context, categoryIDs []int64) ([]entity.AccessoryReportRow, error) {
	args := m.Called(ctx, categoryIDs)
	rows, _ := args.Get(0).([]entity.AccessoryReportRow)
	return rows, args.Error(1)
}

type MockExporter struct {
	mock.Mock
}

func (m *MockExporter) DevicesCSV(rows []entity.DeviceReportRow) ([]byte, error) {
	args := m.Called(rows)
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockExporter) DevicesExcel(rows []entity.DeviceReportRow) ([]byte, error) {
	args := m.Called(rows)
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockExporter) AccessoriesCSV(rows []entity.AccessoryReportRow) ([]byte, error) {
	args := m.Called(rows)
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockExporter) AccessoriesExcel(rows []entity.AccessoryReportRow) ([]byte, error) {
	args := m.Called(rows)
	return args.Get(0).([]byte), args.Error(1)
}

func newReportUC(repo *MockReportRepository, exp *MockExporter) *ReportUseCase {
	uc := NewReportUseCase(repo, exp)
	uc.now = func() time.Time { return time.Date(2025, 6, 1, 15, 4, 0, 0, time.UTC) }
	return uc
}

// ── Tests ──────────────────────────────────────────────────────────────────

func TestReport_DeviceCSV(t *testing.T) {
	repo, exp := new(MockReportRepository), new(MockExporter)
	uc := newReportUC(repo, exp)
	rows := []entity.DeviceReportRow{{ID: 1, Brand: "HP", Func: entity.FuncResguardo}}

	want := entity.DeviceReportFilter{
		CategoryIDs: []int64{3},
		Funcs:       []entity.DeviceFunc{entity.FuncAsignado, entity.FuncBaja},
	}
	repo.On("DeviceRows", mock.Anything, want).Return(rows, nil)
	exp.On("DevicesCSV", rows).Return([]byte("id,marca\n"), nil)

	f, err := uc.DeviceCSV(context.Background(), dto.DeviceReportRequest{
		Categories: []int64{3},
		Func:       []string{"asignado", "baja"},
	})
	require.NoError(t, err)
	assert.Equal(t, "reporte_equipos_2025-06-01.csv", f.Name)
	assert.Equal(t, ContentTypeCSV, f.ContentType)
	assert.Equal(t, []byte("id,marca\n"), f.Content)
	repo.AssertExpectations(t)
	exp.AssertExpectations(t)
}

func TestReport_AccessoryExcel(t *testing.T) {
	repo, exp := new(MockReportRepository), new(MockExporter)
	uc := newReportUC(repo, exp)
	rows := []entity.AccessoryReportRow{{Brand: "Logitech", ProductName: "Mouse", Total: 4, Category: "Mouse"}}

	repo.On("AccessoryRows", mock.Anything, []int64(nil)).Return(rows, nil)
	exp.On("AccessoriesExcel", rows).Return([]byte("PK"), nil)

	f, err := uc.AccessoryExcel(context.Background(), dto.AccessoryReportRequest{})
	require.NoError(t, err)
	assert.Equal(t, "reporte_accesorios_2025-06-01.xlsx", f.Name)
	assert.Equal(t, ContentTypeXLSX, f.ContentType)
}

func TestReport_AccessoryCategoriasPorCualquierLlave(t *testing.T) {
	repo := new(MockReportRepository)
	uc := newReportUC(repo, new(MockExporter))
	repo.On("AccessoryRows", mock.Anything, []int64{4}).Return([]entity.AccessoryReportRow{}, nil).Twice()

	_, err := uc.AccessoryList(context.Background(), dto.AccessoryReportRequest{Categories: []int64{4}})
	require.NoError(t, err)
	_, err = uc.AccessoryList(context.Background(), dto.AccessoryReportRequest{CategoryIDs: []int64{4}})
	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestReport_AllAccessories(t *testing.T) {
	repo := new(MockReportRepository)
	uc := newReportUC(repo, new(MockExporter))
	repo.On("AccessoryRows", mock.Anything, []int64(nil)).Return([]entity.AccessoryReportRow{
		{Brand: "Logitech", ProductName: "Mouse", Total: 4, Category: "Mouse"},
	}, nil)

	out, err := uc.AllAccessories(context.Background())
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "Mouse", out[0].ProductName)
}

func TestReport_FiltrosEscalares(t *testing.T) {
	repo := new(MockReportRepository)
	uc := newReportUC(repo, new(MockExporter))
	want := entity.DeviceReportFilter{IsNew: []bool{true}}
	repo.On("DeviceRows", mock.Anything, want).Return([]entity.DeviceReportRow{}, nil)

	_, err := uc.DeviceList(context.Background(), dto.DeviceReportRequest{
		IsNew: dto.OneOrMany[dto.Flag]{true},
		Func:  dto.OneOrMany[string]{""},
	})
	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestReport_ExportErrorDelRepositorio(t *testing.T) {
	repo, exp := new(MockReportRepository), new(MockExporter)
	uc := newReportUC(repo, exp)
	boom := errors.New("conexión perdida")
	repo.On("DeviceRows", mock.Anything, mock.Anything).Return(nil, boom)

	f, err := uc.DeviceExcel(context.Background(), dto.DeviceReportRequest{})
	assert.ErrorIs(t, err, boom)
	assert.Nil(t, f)
	exp.AssertNotCalled(t, "DevicesExcel", mock.Anything)
}

func TestReport_DeviceList(t *testing.T) {
	repo := new(MockReportRepository)
	uc := newReportUC(repo, new(MockExporter))
	repo.On("DeviceRows", mock.Anything, entity.DeviceReportFilter{}).Return([]entity.DeviceReportRow{
		{ID: 9, Brand: "Dell", Model: "Optiplex", SerialNumber: "SN-1", Category: "CPU", Status: entity.StatusActive, IsNew: true, Func: entity.FuncAsignado},
	}, nil)

	out, err := uc.DeviceList(context.Background(), dto.DeviceReportRequest{})
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "asignado", out[0].Func)
	assert.True(t, out[0].IsNew)
}

func TestReport_AccessorySummary(t *testing.T) {
	t.Run("sin accesorios", func(t *testing.T) {
		repo := new(MockReportRepository)
		uc := newReportUC(repo, new(MockExporter))
		repo.On("AccessorySummary", mock.Anything).Return(&entity.AccessorySummary{}, nil)

		out, err := uc.AccessorySummary(context.Background())
		require.NoError(t, err)
		assert.Zero(t, out.Total)
		assert.NotNil(t, out.Categorias)
		assert.Equal(t, "N/A", out.CategoriaMayor)
		assert.Equal(t, "N/A", out.CategoriaMenor)
	})

	t.Run("con mayor y menor", func(t *testing.T) {
		repo := new(MockReportRepository)
		uc := newReportUC(repo, new(MockExporter))
		mayor := entity.CategoryCount{ID: 1, Name: "Mouse", Total: 10}
		menor := entity.CategoryCount{ID: 2, Name: "Cable", Total: 1}
		repo.On("AccessorySummary", mock.Anything).Return(&entity.AccessorySummary{
			Total:          11,
			Categorias:     []entity.CategoryCount{mayor, menor},
			CategoriaMayor: &mayor,
			CategoriaMenor: &menor,
		}, nil)

		out, err := uc.AccessorySummary(context.Background())
		require.NoError(t, err)
		assert.EqualValues(t, 11, out.Total)
		assert.Len(t, out.Categorias, 2)
		assert.Equal(t, "Mouse", out.CategoriaMayor)
		assert.Equal(t, "Cable", out.CategoriaMenor)
	})
}

// ── Búsqueda, ubicaciones y formatos ───────────────────────────────────────

type MockSearchRepository struct {
	mock.Mock
}

func (m *MockSearchRepository) Search(ctx context.Context, q string, limit int) ([]entity.SearchResult, error) {
	args := m.Called(ctx, q, limit)
	list, _ := args.Get(0).([]entity.SearchResult)
	return list, args.Error(1)
}

type MockLocationRepository struct {
	mock.Mock
}

func (m *MockLocationRepository) Tree(ctx context.Context, departmentID int64) ([]*entity.FloorLocation, error) {
	args := m.Called(ctx, departmentID)
	list, _ := args.Get(0).([]*entity.FloorLocation)
	return list, args.Error(1)
}

type MockFileStorage struct {
	mock.Mock
}

func (m *MockFileStorage) Save(ctx context.Context, dir, originalName string, r io.Reader) (string, error) {
	args := m.Called(ctx, dir, originalName)
	return args.String(0), args.Error(1)
}

func (m *MockFileStorage) Open(ctx context.Context, dir, name string) (io.ReadCloser, error) {
	args := m.Called(ctx, dir, name)
	rc, _ := args.Get(0).(io.ReadCloser)
	return rc, args.Error(1)
}

func (m *MockFileStorage) Remove(ctx context.Context, dir, name string) error {
	return m.Called(ctx, dir, name).Error(0)
}

func TestSearch_ConsultaCorta(t *testing.T) {
	repo := new(MockSearchRepository)
	uc := NewSearchUseCase(repo)

	for _, q := range []string{"", " ", "a", " ñ "} {
		out, err := uc.Search(context.Background(), q)
		require.NoError(t, err)
		assert.NotNil(t, out)
		assert.Empty(t, out)
	}
	repo.AssertNotCalled(t, "Search", mock.Anything, mock.Anything, mock.Anything)
}

func TestSearch_Resultados(t *testing.T) {
	repo := new(MockSearchRepository)
	uc := NewSearchUseCase(repo)
	repo.On("Search", mock.Anything, "dell", searchLimit).Return([]entity.SearchResult{
		{Type: "device", ID: 4, Title: "Dell Latitude", Detail: "SN-4"},
	}, nil)

	out, err := uc.Search(context.Background(), "  dell ")
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "device", out[0].Type)
	assert.EqualValues(t, 4, out[0].ID)
}

func TestLocation_Tree(t *testing.T) {
	repo := new(MockLocationRepository)
	uc := NewLocationUseCase(repo)
	fecha := time.Date(2025, 2, 10, 0, 0, 0, 0, time.UTC)
	completo := true
	repo.On("Tree", mock.Anything, int64(3)).Return([]*entity.FloorLocation{
		{
			Floor: entity.Floor{ID: 1, Name: "Planta baja"},
			Areas: []entity.AreaLocation{
				{Area: entity.Area{ID: 5, Name: "Caja"}, Devices: []entity.LocatedDevice{
					{ID: 8, Brand: "HP", Responsable: "Ana", Folio: "SIS-140", ResponsivaID: 2, UltimoMant: &fecha, UltimoMantCompleto: &completo},
				}},
				{Area: entity.Area{ID: 6, Name: "Archivo"}},
			},
		},
	}, nil)

	out, err := uc.Tree(context.Background(), 3)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "Planta baja", out[0].Name)
	require.Len(t, out[0].Areas, 2)
	require.Len(t, out[0].Areas[0].Devices, 1)
	d := out[0].Areas[0].Devices[0]
	assert.Equal(t, "SIS-140", d.Folio)
	assert.Equal(t, &fecha, d.UltimoMant)
	assert.NotNil(t, out[0].Areas[1].Devices, "áreas sin equipos serializan lista vacía")
}

func TestFormat_Open(t *testing.T) {
	files := new(MockFileStorage)
	uc := NewFormatUseCase(files)
	files.On("Open", mock.Anything, ".", "resguardo.docx").
		Return(io.NopCloser(strings.NewReader("doc")), nil)

	rc, err := uc.Open(context.Background(), "resguardo.docx")
	require.NoError(t, err)
	defer rc.Close()
	b, _ := io.ReadAll(rc)
	assert.Equal(t, "doc", string(b))
	files.AssertExpectations(t)
}
