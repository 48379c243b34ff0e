package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventarios-api/internal/application/dto"
	"github.com/jhoicas/inventarios-api/internal/application/history"
)

// HistoryHandler maneja /api/history: bitácora y deshacer cambios.
type HistoryHandler struct {
	svc *history.Service
}

func NewHistoryHandler(svc *history.Service) *HistoryHandler {
	return &HistoryHandler{svc: svc}
}

// List godoc
// @Summary      Historial de movimientos (más recientes primero)
// @Tags         history
// @Security     Bearer
// @Produce      json
// @Param        table        query  string  false  "Tabla afectada"
// @Param        object_id    query  int     false  "ID del objeto"
// @Param        change_type  query  int     false  "1 alta, 2 modificación, 3 baja, 4 eliminación, 5 restauración"
// @Param        limit        query  int     false  "Límite (0 o ausente: sin límite)"  default(0)
// @Param        offset       query  int     false  "Offset"  default(0)
// @Success      200  {array}  dto.MovementResponse
// @Router       /api/history [get]
func (h *HistoryHandler) List(c *fiber.Ctx) error {
	var in dto.HistoryFilter
	if err := bindQuery(c, &in); err != nil {
		return err
	}
	out, err := h.svc.List(c.UserContext(), in)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Get godoc
// @Summary      Obtener un movimiento
// @Tags         history
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID del movimiento"
// @Success      200  {object}  dto.MovementResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/history/{id} [get]
func (h *HistoryHandler) Get(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	out, err := h.svc.Get(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Restore godoc
// @Summary      Restaurar el objeto al estado previo del movimiento
// @Description  Alta: elimina el objeto. Modificación o baja: aplica before_info. Eliminación y restauración no se restauran.
// @Tags         history
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID del movimiento"
// @Success      200  {object}  dto.UndoResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/history/restore/{id} [post]
func (h *HistoryHandler) Restore(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	out, err := h.svc.Restore(c.UserContext(), id, GetUserID(c))
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Revert godoc
// @Summary      Revertir una modificación
// @Tags         history
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID del movimiento"
// @Success      200  {object}  dto.UndoResponse
// @Failure      400  {object}  dto.ErrorResponse  "el movimiento no es una modificación"
// @Router       /api/history/revert/{id} [post]
func (h *HistoryHandler) Revert(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	out, err := h.svc.Revert(c.UserContext(), id, GetUserID(c))
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// DeletePermanent godoc
// @Summary      Eliminar definitivamente el objeto del movimiento
// @Tags         history
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID del movimiento"
// @Success      200  {object}  dto.UndoResponse
// @Failure      409  {object}  dto.ErrorResponse  "ya eliminado o con registros dependientes"
// @Router       /api/history/delete-permanent/{id} [delete]
func (h *HistoryHandler) DeletePermanent(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	out, err := h.svc.DeletePermanent(c.UserContext(), id, GetUserID(c))
	if err != nil {
		return err
	}
	return c.JSON(out)
}
