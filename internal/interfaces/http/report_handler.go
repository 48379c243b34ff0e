package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventarios-api/internal/application/dto"
	"github.com/jhoicas/inventarios-api/internal/application/usecase"
)

// ReportHandler maneja /api/reports.
type ReportHandler struct {
	uc *usecase.ReportUseCase
}

func NewReportHandler(uc *usecase.ReportUseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// DeviceSummary godoc
// @Summary      Resumen de equipos
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.DeviceSummaryResponse
// @Router       /api/reports/devices-summary [get]
func (h *ReportHandler) DeviceSummary(c *fiber.Ctx) error {
	out, err := h.uc.DeviceSummary(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// DeviceList godoc
// @Summary      Listado filtrado de equipos
// @Tags         reports
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.DeviceReportRequest  true  "Filtros"
// @Success      200   {object}  dto.DeviceListResponse
// @Router       /api/reports/devices-list [post]
func (h *ReportHandler) DeviceList(c *fiber.Ctx) error {
	var in dto.DeviceReportRequest
	if err := bindJSON(c, &in); err != nil {
		return err
	}
	out, err := h.uc.DeviceList(c.UserContext(), in)
	if err != nil {
		return err
	}
	return c.JSON(dto.DeviceListResponse{Devices: out})
}

// DeviceCSV godoc
// @Summary      Exportar equipos a CSV
// @Tags         reports
// @Security     Bearer
// @Accept       json
// @Produce      text/csv
// @Param        body  body  dto.DeviceReportRequest  true  "Filtros"
// @Success      200
// @Router       /api/reports/devices-export/csv [post]
func (h *ReportHandler) DeviceCSV(c *fiber.Ctx) error {
	var in dto.DeviceReportRequest
	if err := bindJSON(c, &in); err != nil {
		return err
	}
	file, err := h.uc.DeviceCSV(c.UserContext(), in)
	if err != nil {
		return err
	}
	return sendExport(c, file)
}

// DeviceExcel godoc
// @Summary      Exportar equipos a Excel
// @Tags         reports
// @Security     Bearer
// @Accept       json
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        body  body  dto.DeviceReportRequest  true  "Filtros"
// @Success      200
// @Router       /api/reports/devices-export/excel [post]
func (h *ReportHandler) DeviceExcel(c *fiber.Ctx) error {
	var in dto.DeviceReportRequest
	if err := bindJSON(c, &in); err != nil {
		return err
	}
	file, err := h.uc.DeviceExcel(c.UserContext(), in)
	if err != nil {
		return err
	}
	return sendExport(c, file)
}

// AccessorySummary godoc
// @Summary      Resumen de accesorios
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.AccessorySummaryResponse
// @Router       /api/reports/accessories-summary [get]
func (h *ReportHandler) AccessorySummary(c *fiber.Ctx) error {
	out, err := h.uc.AccessorySummary(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// AccessoryList godoc
// @Summary      Listado de accesorios por categoría
// @Tags         reports
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AccessoryReportRequest  true  "Filtro"
// @Success      200   {object}  dto.AccessoryListResponse
// @Router       /api/reports/accessories-list [post]
func (h *ReportHandler) AccessoryList(c *fiber.Ctx) error {
	var in dto.AccessoryReportRequest
	if err := bindJSON(c, &in); err != nil {
		return err
	}
	out, err := h.uc.AccessoryList(c.UserContext(), in)
	if err != nil {
		return err
	}
	return c.JSON(dto.AccessoryListResponse{Accessories: out})
}

// AllAccessories godoc
// @Summary      Todos los accesorios activos
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.AccessoryReportRowResponse
// @Router       /api/reports/all-accessories [get]
func (h *ReportHandler) AllAccessories(c *fiber.Ctx) error {
	out, err := h.uc.AllAccessories(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// AccessoryCSV godoc
// @Summary      Exportar accesorios a CSV
// @Tags         reports
// @Security     Bearer
// @Accept       json
// @Produce      text/csv
// @Param        body  body  dto.AccessoryReportRequest  true  "Filtro"
// @Success      200
// @Router       /api/reports/accessories-export/csv [post]
func (h *ReportHandler) AccessoryCSV(c *fiber.Ctx) error {
	var in dto.AccessoryReportRequest
	if err := bindJSON(c, &in); err != nil {
		return err
	}
	file, err := h.uc.AccessoryCSV(c.UserContext(), in)
	if err != nil {
		return err
	}
	return sendExport(c, file)
}

// AccessoryExcel godoc
// @Summary      Exportar accesorios a Excel con fila de totales
// @Tags         reports
// @Security     Bearer
// @Accept       json
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        body  body  dto.AccessoryReportRequest  true  "Filtro"
// @Success      200
// @Router       /api/reports/accessories-export/excel [post]
func (h *ReportHandler) AccessoryExcel(c *fiber.Ctx) error {
	var in dto.AccessoryReportRequest
	if err := bindJSON(c, &in); err != nil {
		return err
	}
	file, err := h.uc.AccessoryExcel(c.UserContext(), in)
	if err != nil {
		return err
	}
	return sendExport(c, file)
}
