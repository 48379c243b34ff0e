package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventarios-api/internal/application/documents"
	"github.com/jhoicas/inventarios-api/internal/application/dto"
)

// MantenimientoHandler maneja /api/mantenimientos.
type MantenimientoHandler struct {
	uc *documents.MantenimientoUseCase
}

func NewMantenimientoHandler(uc *documents.MantenimientoUseCase) *MantenimientoHandler {
	return &MantenimientoHandler{uc: uc}
}

// List godoc
// @Summary      Listar mantenimientos
// @Tags         mantenimientos
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.MantenimientoResponse
// @Router       /api/mantenimientos [get]
func (h *MantenimientoHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Get godoc
// @Summary      Obtener mantenimiento
// @Tags         mantenimientos
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID del mantenimiento"
// @Success      200  {object}  dto.MantenimientoResponse
// @Router       /api/mantenimientos/{id} [get]
func (h *MantenimientoHandler) Get(c *fiber.Ctx) error {
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

// Create godoc
// @Summary      Registrar mantenimiento
// @Description  Responde el PDF; folio y bandera completo viajan en X-Folio y X-Completo.
// @Tags         mantenimientos
// @Security     Bearer
// @Accept       json
// @Produce      application/pdf
// @Param        body  body  dto.MantenimientoRequest  true  "Datos del mantenimiento"
// @Success      201
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/mantenimientos [post]
func (h *MantenimientoHandler) Create(c *fiber.Ctx) error {
	var in dto.MantenimientoRequest
	if err := bindJSON(c, &in); err != nil {
		return err
	}
	out, file, err := h.uc.Create(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return err
	}
	c.Set("X-Folio", out.Folio)
	c.Set("X-Completo", strconv.FormatBool(out.Completo))
	c.Status(fiber.StatusCreated)
	return sendPDF(c, file)
}

// PDF godoc
// @Summary      Descargar PDF del mantenimiento
// @Tags         mantenimientos
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path  int  true  "ID del mantenimiento"
// @Success      200
// @Router       /api/mantenimientos/pdf/{id} [get]
func (h *MantenimientoHandler) PDF(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	file, err := h.uc.PDF(c.UserContext(), id)
	if err != nil {
		return err
	}
	return sendPDF(c, file)
}
