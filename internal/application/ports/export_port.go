package ports

import (
	"github.com/jhoicas/inventarios-api/internal/domain/entity"
)

// ReportExporter serializa los reportes a CSV y a Excel con las mismas filas y totales.
type ReportExporter interface {
	DevicesCSV(rows []entity.DeviceReportRow) ([]byte, error)
	DevicesExcel(rows []entity.DeviceReportRow) ([]byte, error)
	AccessoriesCSV(rows []entity.AccessoryReportRow) ([]byte, error)
	AccessoriesExcel(rows []entity.AccessoryReportRow) ([]byte, error)
}
