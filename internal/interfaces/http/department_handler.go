package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventarios-api/internal/application/dto"
	"github.com/jhoicas/inventarios-api/internal/application/usecase"
)

// DepartmentHandler maneja /api/departments.
type DepartmentHandler struct {
	uc *usecase.DepartmentUseCase
}

// NewDepartmentHandler construye el handler.
func NewDepartmentHandler(uc *usecase.DepartmentUseCase) *DepartmentHandler {
	return &DepartmentHandler{uc: uc}
}

// List godoc
// @Summary      Listar departamentos activos
// @Tags         departments
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.DepartmentResponse
// @Router       /api/departments [get]
func (h *DepartmentHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Get godoc
// @Summary      Obtener departamento
// @Tags         departments
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID del departamento"
// @Success      200  {object}  dto.DepartmentResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/departments/{id} [get]
func (h *DepartmentHandler) Get(c *fiber.Ctx) error {
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
// @Summary      Crear departamento
// @Tags         departments
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.DepartmentRequest  true  "Datos del departamento"
// @Success      201   {object}  dto.DepartmentResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse  "name o abbreviation duplicado (field)"
// @Router       /api/departments [post]
func (h *DepartmentHandler) Create(c *fiber.Ctx) error {
	var in dto.DepartmentRequest
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
// @Summary      Actualizar departamento
// @Tags         departments
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int                    true  "ID del departamento"
// @Param        body  body  dto.DepartmentRequest  true  "Datos del departamento"
// @Success      200   {object}  dto.DepartmentResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/departments/{id} [put]
func (h *DepartmentHandler) Update(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	var in dto.DepartmentRequest
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
// @Summary      Dar de baja departamento
// @Description  Falla con 409 DEPT_HAS_EQUIPMENTS si tiene equipos asignados.
// @Tags         departments
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID del departamento"
// @Success      200  {object}  dto.MessageResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/departments/{id} [delete]
func (h *DepartmentHandler) Delete(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	if err := h.uc.Delete(c.UserContext(), GetUserID(c), id); err != nil {
		return err
	}
	return c.JSON(dto.MessageResponse{Message: "departamento eliminado"})
}

// CountEquipments godoc
// @Summary      Equipos asignados al departamento
// @Tags         departments
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID del departamento"
// @Success      200  {object}  dto.CountResponse
// @Router       /api/departments/{id}/equipments/count [get]
func (h *DepartmentHandler) CountEquipments(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	n, err := h.uc.CountEquipments(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(dto.CountResponse{Count: n})
}

// HasEquipments godoc
// @Summary      Indica si el departamento tiene equipos asignados
// @Tags         departments
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID del departamento"
// @Success      200  {object}  dto.HasResponse
// @Router       /api/departments/{id}/equipments/has [get]
func (h *DepartmentHandler) HasEquipments(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	n, err := h.uc.CountEquipments(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(dto.HasResponse{Has: n > 0})
}
