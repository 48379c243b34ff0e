package usecase

import (
	"context"
	"time"

	"github.com/jhoicas/inventarios-api/internal/application/dto"
	"github.com/jhoicas/inventarios-api/internal/application/ports"
	"github.com/jhoicas/inventarios-api/internal/domain/entity"
	"github.com/jhoicas/inventarios-api/internal/domain/repository"
)

// Tipos de contenido de las exportaciones.
const (
	ContentTypeCSV  = "text/csv; charset=utf-8"
	ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

const noCategory = "N/A"

// ReportUseCase resúmenes, listados filtrados y exportaciones de equipos y accesorios.
type ReportUseCase struct {
	repo     repository.ReportRepository
	exporter ports.ReportExporter
	now      func() time.Time
}

// NewReportUseCase construye el caso de uso.
func NewReportUseCase(repo repository.ReportRepository, exporter ports.ReportExporter) *ReportUseCase {
	return &ReportUseCase{repo: repo, exporter: exporter, now: time.Now}
}

// DeviceSummary totales por estado, condición y categoría.
func (uc *ReportUseCase) DeviceSummary(ctx context.Context) (*dto.DeviceSummaryResponse, error) {
	s, err := uc.repo.DeviceSummary(ctx)
	if err != nil {
		return nil, err
	}
	return &dto.DeviceSummaryResponse{
		Total:      s.Total,
		Asignado:   s.Asignado,
		Resguardo:  s.Resguardo,
		Baja:       s.Baja,
		Nuevos:     s.Nuevos,
		Usados:     s.Usados,
		Categories: toCategoryCounts(s.Categories),
	}, nil
}

// DeviceList filas del reporte de equipos.
func (uc *ReportUseCase) DeviceList(ctx context.Context, in dto.DeviceReportRequest) ([]dto.DeviceReportRowResponse, error) {
	rows, err := uc.repo.DeviceRows(ctx, toDeviceFilter(in))
	if err != nil {
		return nil, err
	}
	out := make([]dto.DeviceReportRowResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.DeviceReportRowResponse{
			ID:           r.ID,
			Brand:        r.Brand,
			Model:        r.Model,
			SerialNumber: r.SerialNumber,
			Category:     r.Category,
			Status:       r.Status,
			IsNew:        r.IsNew,
			Func:         string(r.Func),
		})
	}
	return out, nil
}

// DeviceCSV exportación CSV del reporte de equipos.
func (uc *ReportUseCase) DeviceCSV(ctx context.Context, in dto.DeviceReportRequest) (*dto.ExportFile, error) {
	rows, err := uc.repo.DeviceRows(ctx, toDeviceFilter(in))
	if err != nil {
		return nil, err
	}
	content, err := uc.exporter.DevicesCSV(rows)
	if err != nil {
		return nil, err
	}
	return uc.file("reporte_equipos", ".csv", ContentTypeCSV, content), nil
}

// DeviceExcel exportación Excel del reporte de equipos.
func (uc *ReportUseCase) DeviceExcel(ctx context.Context, in dto.DeviceReportRequest) (*dto.ExportFile, error) {
	rows, err := uc.repo.DeviceRows(ctx, toDeviceFilter(in))
	if err != nil {
		return nil, err
	}
	content, err := uc.exporter.DevicesExcel(rows)
	if err != nil {
		return nil, err
	}
	return uc.file("reporte_equipos", ".xlsx", ContentTypeXLSX, content), nil
}

// AccessorySummary total, conteo por categoría y categorías mayor y menor.
func (uc *ReportUseCase) AccessorySummary(ctx context.Context) (*dto.AccessorySummaryResponse, error) {
	s, err := uc.repo.AccessorySummary(ctx)
	if err != nil {
		return nil, err
	}
	return &dto.AccessorySummaryResponse{
		Total:          s.Total,
		Categorias:     toCategoryCounts(s.Categorias),
		CategoriaMayor: categoryName(s.CategoriaMayor),
		CategoriaMenor: categoryName(s.CategoriaMenor),
	}, nil
}

// AccessoryList accesorios activos de las categorías pedidas (todas si viene vacío).
func (uc *ReportUseCase) AccessoryList(ctx context.Context, in dto.AccessoryReportRequest) ([]dto.AccessoryReportRowResponse, error) {
	return uc.accessoryRows(ctx, in.IDs())
}

// AllAccessories todos los accesorios activos con su categoría.
func (uc *ReportUseCase) AllAccessories(ctx context.Context) ([]dto.AccessoryReportRowResponse, error) {
	return uc.accessoryRows(ctx, nil)
}

func (uc *ReportUseCase) accessoryRows(ctx context.Context, categoryIDs []int64) ([]dto.AccessoryReportRowResponse, error) {
	rows, err := uc.repo.AccessoryRows(ctx, categoryIDs)
	if err != nil {
		return nil, err
	}
	out := make([]dto.AccessoryReportRowResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.AccessoryReportRowResponse{
			Brand:       r.Brand,
			ProductName: r.ProductName,
			Total:       r.Total,
			Category:    r.Category,
		})
	}
	return out, nil
}

// AccessoryCSV exportación CSV con renglón de Totales.
func (uc *ReportUseCase) AccessoryCSV(ctx context.Context, in dto.AccessoryReportRequest) (*dto.ExportFile, error) {
	rows, err := uc.repo.AccessoryRows(ctx, in.IDs())
	if err != nil {
		return nil, err
	}
	content, err := uc.exporter.AccessoriesCSV(rows)
	if err != nil {
		return nil, err
	}
	return uc.file("reporte_accesorios", ".csv", ContentTypeCSV, content), nil
}

// AccessoryExcel exportación Excel con renglón de Totales.
func (uc *ReportUseCase) AccessoryExcel(ctx context.Context, in dto.AccessoryReportRequest) (*dto.ExportFile, error) {
	rows, err := uc.repo.AccessoryRows(ctx, in.IDs())
	if err != nil {
		return nil, err
	}
	content, err := uc.exporter.AccessoriesExcel(rows)
	if err != nil {
		return nil, err
	}
	return uc.file("reporte_accesorios", ".xlsx", ContentTypeXLSX, content), nil
}

func (uc *ReportUseCase) file(prefix, ext, contentType string, content []byte) *dto.ExportFile {
	return &dto.ExportFile{
		Name:        prefix + "_" + uc.now().Format("2006-01-02") + ext,
		ContentType: contentType,
		Content:     content,
	}
}

func toDeviceFilter(in dto.DeviceReportRequest) entity.DeviceReportFilter {
	f := entity.DeviceReportFilter{
		CategoryIDs: in.Categories,
		Status:      in.Status,
	}
	for _, v := range in.IsNew {
		f.IsNew = append(f.IsNew, bool(v))
	}
	for _, fn := range in.Func {
		if fn != "" {
			f.Funcs = append(f.Funcs, entity.DeviceFunc(fn))
		}
	}
	return f
}

func toCategoryCounts(list []entity.CategoryCount) []dto.CategoryCountResponse {
	out := make([]dto.CategoryCountResponse, 0, len(list))
	for _, c := range list {
		out = append(out, dto.CategoryCountResponse{ID: c.ID, Name: c.Name, Total: c.Total})
	}
	return out
}

// categoryName "N/A" cuando no hay accesorios.
func categoryName(c *entity.CategoryCount) string {
	if c == nil {
		return noCategory
	}
	return c.Name
}
