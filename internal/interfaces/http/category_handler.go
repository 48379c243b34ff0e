package http

import (
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventarios-api/internal/application/dto"
	"github.com/jhoicas/inventarios-api/internal/application/usecase"
	"github.com/jhoicas/inventarios-api/internal/domain"
)

// CategoryHandler maneja /api/categories y sus campos personalizados.
type CategoryHandler struct {
	uc *usecase.CategoryUseCase
}

func NewCategoryHandler(uc *usecase.CategoryUseCase) *CategoryHandler {
	return &CategoryHandler{uc: uc}
}

// List godoc
// @Summary      Listar categorías activas
// @Tags         categories
// @Security     Bearer
// @Produce      json
// @Param        type  query  int  false  "0 equipos, 1 accesorios"
// @Success      200   {array}  dto.CategoryResponse
// @Router       /api/categories [get]
func (h *CategoryHandler) List(c *fiber.Ctx) error {
	var typ *int
	if raw := c.Query("type"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return domain.NewFieldError("type", fmt.Errorf("%w: type debe ser 0 o 1", domain.ErrInvalidInput))
		}
		typ = &n
	}
	out, err := h.uc.List(c.UserContext(), typ)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Get godoc
// @Summary      Obtener categoría
// @Tags         categories
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID de la categoría"
// @Success      200  {object}  dto.CategoryResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/categories/{id} [get]
func (h *CategoryHandler) Get(c *fiber.Ctx) error {
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
// @Summary      Crear categoría
// @Tags         categories
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CategoryRequest  true  "Datos de la categoría"
// @Success      201   {object}  dto.CategoryResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/categories [post]
func (h *CategoryHandler) Create(c *fiber.Ctx) error {
	var in dto.CategoryRequest
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
// @Summary      Actualizar categoría
// @Description  El tipo no puede cambiar mientras existan equipos o accesorios de la categoría.
// @Tags         categories
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int                  true  "ID de la categoría"
// @Param        body  body  dto.CategoryRequest  true  "Datos de la categoría"
// @Success      200   {object}  dto.CategoryResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/categories/{id} [put]
func (h *CategoryHandler) Update(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	var in dto.CategoryRequest
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
// @Summary      Dar de baja categoría
// @Tags         categories
// @Security     Bearer
// @Param        id   path  int  true  "ID de la categoría"
// @Success      200  {object}  dto.MessageResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/categories/{id} [delete]
func (h *CategoryHandler) Delete(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	if err := h.uc.Delete(c.UserContext(), GetUserID(c), id); err != nil {
		return err
	}
	return c.JSON(dto.MessageResponse{Message: "categoría eliminada"})
}

// Restore godoc
// @Summary      Reactivar categoría
// @Tags         categories
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID de la categoría"
// @Success      200  {object}  dto.CategoryResponse
// @Router       /api/categories/restore/{id} [patch]
func (h *CategoryHandler) Restore(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	out, err := h.uc.Restore(c.UserContext(), GetUserID(c), id)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// AddField godoc
// @Summary      Agregar campo personalizado a una categoría de equipos
// @Tags         categories
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CustomFieldRequest  true  "Campo"
// @Success      201   {object}  dto.CustomFieldResponse
// @Router       /api/categories/addField [post]
func (h *CategoryHandler) AddField(c *fiber.Ctx) error {
	var in dto.CustomFieldRequest
	if err := bindJSON(c, &in); err != nil {
		return err
	}
	out, err := h.uc.AddField(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListFields godoc
// @Summary      Campos personalizados de una categoría
// @Tags         categories
// @Security     Bearer
// @Produce      json
// @Param        categoryId  path  int  true  "ID de la categoría"
// @Success      200  {array}  dto.CustomFieldResponse
// @Router       /api/categories/fields/{categoryId} [get]
func (h *CategoryHandler) ListFields(c *fiber.Ctx) error {
	id, err := paramID(c, "categoryId")
	if err != nil {
		return err
	}
	out, err := h.uc.ListFields(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// DeleteField godoc
// @Summary      Eliminar campo personalizado
// @Description  Falla con 409 FIELD_HAS_VALUES si algún equipo tiene valor capturado.
// @Tags         categories
// @Security     Bearer
// @Param        fieldId  path  int  true  "ID del campo"
// @Success      200  {object}  dto.MessageResponse
// @Router       /api/categories/fields/{fieldId} [delete]
func (h *CategoryHandler) DeleteField(c *fiber.Ctx) error {
	id, err := paramID(c, "fieldId")
	if err != nil {
		return err
	}
	if err := h.uc.DeleteField(c.UserContext(), GetUserID(c), id); err != nil {
		return err
	}
	return c.JSON(dto.MessageResponse{Message: "campo eliminado"})
}
