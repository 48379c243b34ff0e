package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventarios-api/internal/application/dto"
	"github.com/jhoicas/inventarios-api/internal/application/usecase"
)

// FloorHandler maneja /api/floors.
type FloorHandler struct {
	uc *usecase.FloorUseCase
}

func NewFloorHandler(uc *usecase.FloorUseCase) *FloorHandler {
	return &FloorHandler{uc: uc}
}

// List godoc
// @Summary      Listar pisos activos
// @Tags         floors
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.FloorResponse
// @Router       /api/floors [get]
func (h *FloorHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Get godoc
// @Summary      Obtener piso
// @Tags         floors
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID del piso"
// @Success      200  {object}  dto.FloorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/floors/{id} [get]
func (h *FloorHandler) Get(c *fiber.Ctx) error {
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
// @Summary      Crear piso
// @Description  Si existe un piso dado de baja con el mismo nombre responde 409 con su id para reactivarlo.
// @Tags         floors
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.FloorRequest  true  "Datos del piso"
// @Success      201   {object}  dto.FloorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/floors [post]
func (h *FloorHandler) Create(c *fiber.Ctx) error {
	var in dto.FloorRequest
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
// @Summary      Actualizar piso
// @Tags         floors
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int               true  "ID del piso"
// @Param        body  body  dto.FloorRequest  true  "Datos del piso"
// @Success      200   {object}  dto.FloorResponse
// @Router       /api/floors/{id} [put]
func (h *FloorHandler) Update(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	var in dto.FloorRequest
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
// @Summary      Dar de baja piso
// @Description  Falla con 409 si el piso tiene áreas activas.
// @Tags         floors
// @Security     Bearer
// @Param        id   path  int  true  "ID del piso"
// @Success      200  {object}  dto.MessageResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/floors/{id} [delete]
func (h *FloorHandler) Delete(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	if err := h.uc.Delete(c.UserContext(), GetUserID(c), id); err != nil {
		return err
	}
	return c.JSON(dto.MessageResponse{Message: "piso eliminado"})
}

// Restore godoc
// @Summary      Reactivar piso
// @Tags         floors
// @Security     Bearer
// @Param        id   path  int  true  "ID del piso"
// @Success      200  {object}  dto.MessageResponse
// @Failure      409  {object}  dto.ErrorResponse  "ya estaba activo"
// @Router       /api/floors/restore/{id} [put]
func (h *FloorHandler) Restore(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	if err := h.uc.Restore(c.UserContext(), GetUserID(c), id); err != nil {
		return err
	}
	return c.JSON(dto.MessageResponse{Message: "piso reactivado"})
}

// AreaHandler maneja /api/areas.
type AreaHandler struct {
	uc *usecase.AreaUseCase
}

func NewAreaHandler(uc *usecase.AreaUseCase) *AreaHandler {
	return &AreaHandler{uc: uc}
}

// List godoc
// @Summary      Listar áreas activas con su piso
// @Tags         areas
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.AreaResponse
// @Router       /api/areas [get]
func (h *AreaHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Get godoc
// @Summary      Obtener área
// @Tags         areas
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID del área"
// @Success      200  {object}  dto.AreaResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/areas/{id} [get]
func (h *AreaHandler) Get(c *fiber.Ctx) error {
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
// @Summary      Verificar si un nombre de área ya existe
// @Tags         areas
// @Security     Bearer
// @Produce      json
// @Param        name  path  string  true  "Nombre"
// @Success      200   {object}  dto.CheckNameResponse
// @Router       /api/areas/check-name/{name} [get]
func (h *AreaHandler) CheckName(c *fiber.Ctx) error {
	out, err := h.uc.CheckName(c.UserContext(), pathString(c, "name"))
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Crear área
// @Tags         areas
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AreaRequest  true  "Datos del área"
// @Success      201   {object}  dto.AreaResponse
// @Failure      400   {object}  dto.ErrorResponse  "piso inexistente (field id_floor)"
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/areas [post]
func (h *AreaHandler) Create(c *fiber.Ctx) error {
	var in dto.AreaRequest
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
// @Summary      Actualizar área
// @Tags         areas
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int              true  "ID del área"
// @Param        body  body  dto.AreaRequest  true  "Datos del área"
// @Success      200   {object}  dto.AreaResponse
// @Router       /api/areas/{id} [put]
func (h *AreaHandler) Update(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	var in dto.AreaRequest
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
// @Summary      Dar de baja área
// @Description  Falla con 409 si hay equipos asignados en el área.
// @Tags         areas
// @Security     Bearer
// @Param        id   path  int  true  "ID del área"
// @Success      200  {object}  dto.MessageResponse
// @Router       /api/areas/{id} [delete]
func (h *AreaHandler) Delete(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	if err := h.uc.Delete(c.UserContext(), GetUserID(c), id); err != nil {
		return err
	}
	return c.JSON(dto.MessageResponse{Message: "área eliminada"})
}

// Restore godoc
// @Summary      Reactivar área
// @Tags         areas
// @Security     Bearer
// @Param        id   path  int  true  "ID del área"
// @Success      200  {object}  dto.MessageResponse
// @Router       /api/areas/restablecer/{id} [put]
func (h *AreaHandler) Restore(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	if err := h.uc.Restore(c.UserContext(), GetUserID(c), id); err != nil {
		return err
	}
	return c.JSON(dto.MessageResponse{Message: "área reactivada"})
}
