package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventarios-api/internal/application/dto"
	"github.com/jhoicas/inventarios-api/internal/application/usecase"
)

// DeviceHandler maneja /api/devices.
type DeviceHandler struct {
	uc *usecase.DeviceUseCase
}

func NewDeviceHandler(uc *usecase.DeviceUseCase) *DeviceHandler {
	return &DeviceHandler{uc: uc}
}

// List godoc
// @Summary      Listar equipos activos
// @Tags         devices
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.DeviceResponse
// @Router       /api/devices [get]
func (h *DeviceHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Get godoc
// @Summary      Obtener equipo con valores personalizados y ubicación
// @Tags         devices
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID del equipo"
// @Success      200  {object}  dto.DeviceDetailResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/devices/{id} [get]
func (h *DeviceHandler) Get(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	out, err := h.uc.Get(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// ByCategory godoc
// @Summary      Equipos de una categoría
// @Tags         devices
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID de la categoría"
// @Success      200  {array}  dto.DeviceResponse
// @Router       /api/devices/category/{id} [get]
func (h *DeviceHandler) ByCategory(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	out, err := h.uc.ByCategory(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// ByDepartment godoc
// @Summary      Equipos asignados a un departamento
// @Tags         devices
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID del departamento"
// @Success      200  {array}  dto.DeviceResponse
// @Router       /api/devices/por-departamento/{id} [get]
func (h *DeviceHandler) ByDepartment(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	out, err := h.uc.ByDepartment(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// CustomFields godoc
// @Summary      Campos personalizados para capturar un equipo
// @Tags         devices
// @Security     Bearer
// @Produce      json
// @Param        categoryId  path  int  true  "ID de la categoría"
// @Success      200  {array}  dto.CustomFieldResponse
// @Failure      400  {object}  dto.ErrorResponse  "la categoría no es de equipos"
// @Router       /api/devices/custom-fields/{categoryId} [get]
func (h *DeviceHandler) CustomFields(c *fiber.Ctx) error {
	id, err := paramID(c, "categoryId")
	if err != nil {
		return err
	}
	out, err := h.uc.CustomFields(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Registrar equipo
// @Description  El equipo nace en resguardo; los valores personalizados se guardan en la misma transacción.
// @Tags         devices
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.DeviceRequest  true  "Datos del equipo"
// @Success      201   {object}  dto.DeviceDetailResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/devices [post]
func (h *DeviceHandler) Create(c *fiber.Ctx) error {
	var in dto.DeviceRequest
	if err := bindJSON(c, &in); err != nil {
		return err
	}
	out, err := h.uc.Create(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update godoc
// @Summary      Actualizar equipo
// @Tags         devices
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int                true  "ID del equipo"
// @Param        body  body  dto.DeviceRequest  true  "Datos del equipo"
// @Success      200   {object}  dto.DeviceDetailResponse
// @Router       /api/devices/{id} [put]
func (h *DeviceHandler) Update(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	var in dto.DeviceRequest
	if err := bindJSON(c, &in); err != nil {
		return err
	}
	out, err := h.uc.Update(c.UserContext(), GetUserID(c), id, in)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Dar de baja lógica un equipo
// @Description  Un equipo asignado no puede eliminarse (409).
// @Tags         devices
// @Security     Bearer
// @Param        id   path  int  true  "ID del equipo"
// @Success      200  {object}  dto.MessageResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/devices/{id} [delete]
func (h *DeviceHandler) Delete(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	if err := h.uc.Delete(c.UserContext(), GetUserID(c), id); err != nil {
		return err
	}
	return c.JSON(dto.MessageResponse{Message: "equipo eliminado"})
}

// AccessoryHandler maneja /api/accessories.
type AccessoryHandler struct {
	uc      *usecase.AccessoryUseCase
	reports *usecase.ReportUseCase
}

func NewAccessoryHandler(uc *usecase.AccessoryUseCase, reports *usecase.ReportUseCase) *AccessoryHandler {
	return &AccessoryHandler{uc: uc, reports: reports}
}

// List godoc
// @Summary      Listar accesorios activos
// @Tags         accessories
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.AccessoryResponse
// @Router       /api/accessories [get]
func (h *AccessoryHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Get godoc
// @Summary      Obtener accesorio
// @Tags         accessories
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID del accesorio"
// @Success      200  {object}  dto.AccessoryResponse
// @Router       /api/accessories/{id} [get]
func (h *AccessoryHandler) Get(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	out, err := h.uc.Get(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// CheckName godoc
// @Summary      Verificar nombre de producto
// @Tags         accessories
// @Security     Bearer
// @Produce      json
// @Param        name  path  string  true  "Nombre del producto"
// @Success      200   {object}  dto.CheckNameResponse
// @Router       /api/accessories/check-name/{name} [get]
func (h *AccessoryHandler) CheckName(c *fiber.Ctx) error {
	out, err := h.uc.CheckName(c.UserContext(), pathString(c, "name"))
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Categories godoc
// @Summary      Categorías de accesorios
// @Tags         accessories
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.CategoryResponse
// @Router       /api/accessories/categories [get]
func (h *AccessoryHandler) Categories(c *fiber.Ctx) error {
	out, err := h.uc.Categories(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Registrar accesorio
// @Tags         accessories
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AccessoryRequest  true  "Datos del accesorio"
// @Success      201   {object}  dto.AccessoryResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/accessories [post]
func (h *AccessoryHandler) Create(c *fiber.Ctx) error {
	var in dto.AccessoryRequest
	if err := bindJSON(c, &in); err != nil {
		return err
	}
	out, err := h.uc.Create(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update godoc
// @Summary      Actualizar accesorio
// @Tags         accessories
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int                   true  "ID del accesorio"
// @Param        body  body  dto.AccessoryRequest  true  "Datos del accesorio"
// @Success      200   {object}  dto.AccessoryResponse
// @Router       /api/accessories/{id} [put]
func (h *AccessoryHandler) Update(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	var in dto.AccessoryRequest
	if err := bindJSON(c, &in); err != nil {
		return err
	}
	out, err := h.uc.Update(c.UserContext(), GetUserID(c), id, in)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Dar de baja accesorio
// @Tags         accessories
// @Security     Bearer
// @Param        id   path  int  true  "ID del accesorio"
// @Success      200  {object}  dto.MessageResponse
// @Router       /api/accessories/{id} [delete]
func (h *AccessoryHandler) Delete(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	if err := h.uc.Delete(c.UserContext(), GetUserID(c), id); err != nil {
		return err
	}
	return c.JSON(dto.MessageResponse{Message: "accesorio eliminado"})
}

// ExportCSV godoc
// @Summary      Exportar accesorios a CSV
// @Tags         accessories
// @Security     Bearer
// @Accept       json
// @Produce      text/csv
// @Param        body  body  dto.AccessoryReportRequest  true  "category_ids"
// @Success      200
// @Router       /api/accessories/export/csv [post]
func (h *AccessoryHandler) ExportCSV(c *fiber.Ctx) error {
	var in dto.AccessoryReportRequest
	if err := bindJSON(c, &in); err != nil {
		return err
	}
	file, err := h.reports.AccessoryCSV(c.UserContext(), in)
	if err != nil {
		return err
	}
	return sendExport(c, file)
}

// ExportExcel godoc
// @Summary      Exportar accesorios a Excel
// @Tags         accessories
// @Security     Bearer
// @Accept       json
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        body  body  dto.AccessoryReportRequest  true  "category_ids"
// @Success      200
// @Router       /api/accessories/export/excel [post]
func (h *AccessoryHandler) ExportExcel(c *fiber.Ctx) error {
	var in dto.AccessoryReportRequest
	if err := bindJSON(c, &in); err != nil {
		return err
	}
	file, err := h.reports.AccessoryExcel(c.UserContext(), in)
	if err != nil {
		return err
	}
	return sendExport(c, file)
}
