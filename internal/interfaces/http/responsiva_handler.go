package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventarios-api/internal/application/documents"
	"github.com/jhoicas/inventarios-api/internal/application/dto"
)

// ResponsivaHandler maneja /api/responsivas.
type ResponsivaHandler struct {
	uc *documents.ResponsivaUseCase
}

func NewResponsivaHandler(uc *documents.ResponsivaUseCase) *ResponsivaHandler {
	return &ResponsivaHandler{uc: uc}
}

// List godoc
// @Summary      Listar responsivas activas
// @Tags         responsivas
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.ResponsivaResponse
// @Router       /api/responsivas [get]
func (h *ResponsivaHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Get godoc
// @Summary      Obtener responsiva con sus equipos
// @Tags         responsivas
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID de la responsiva"
// @Success      200  {object}  dto.ResponsivaResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/responsivas/{id} [get]
func (h *ResponsivaHandler) Get(c *fiber.Ctx) error {
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

// Preview godoc
// @Summary      Vista previa en PDF (no guarda nada)
// @Tags         responsivas
// @Security     Bearer
// @Accept       json
// @Produce      application/pdf
// @Param        body  body  dto.ResponsivaRequest  true  "Datos de la responsiva"
// @Success      200
// @Router       /api/responsivas/preview [post]
func (h *ResponsivaHandler) Preview(c *fiber.Ctx) error {
	var in dto.ResponsivaRequest
	if err := bindJSON(c, &in); err != nil {
		return err
	}
	file, err := h.uc.Preview(c.UserContext(), in)
	if err != nil {
		return err
	}
	return sendPDF(c, file)
}

// Create godoc
// @Summary      Crear responsiva
// @Description  Asigna folio SIS-n y pasa los equipos de resguardo a asignado.
// @Tags         responsivas
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ResponsivaRequest  true  "Datos de la responsiva"
// @Success      201   {object}  dto.ResponsivaResponse
// @Failure      409   {object}  dto.ErrorResponse  "DEVICE_NOT_AVAILABLE"
// @Router       /api/responsivas [post]
func (h *ResponsivaHandler) Create(c *fiber.Ctx) error {
	var in dto.ResponsivaRequest
	if err := bindJSON(c, &in); err != nil {
		return err
	}
	out, err := h.uc.Create(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// PDF godoc
// @Summary      Descargar PDF de la responsiva
// @Tags         responsivas
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path  int  true  "ID de la responsiva"
// @Success      200
// @Router       /api/responsivas/pdf/{id} [get]
func (h *ResponsivaHandler) PDF(c *fiber.Ctx) error {
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

// Cancel godoc
// @Summary      Cancelar responsiva
// @Description  Baja lógica; los equipos regresan a resguardo.
// @Tags         responsivas
// @Security     Bearer
// @Param        id   path  int  true  "ID de la responsiva"
// @Success      200  {object}  dto.MessageResponse
// @Router       /api/responsivas/{id} [delete]
func (h *ResponsivaHandler) Cancel(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	if err := h.uc.Cancel(c.UserContext(), GetUserID(c), id); err != nil {
		return err
	}
	return c.JSON(dto.MessageResponse{Message: "responsiva cancelada"})
}

// HardDelete godoc
// @Summary      Eliminar definitivamente la responsiva y sus documentos
// @Tags         responsivas
// @Security     Bearer
// @Param        id   path  int  true  "ID de la responsiva"
// @Success      200  {object}  dto.MessageResponse
// @Failure      409  {object}  dto.ErrorResponse  "tiene mantenimientos"
// @Router       /api/responsivas/delete/{id} [delete]
func (h *ResponsivaHandler) HardDelete(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	if err := h.uc.HardDelete(c.UserContext(), GetUserID(c), id); err != nil {
		return err
	}
	return c.JSON(dto.MessageResponse{Message: "responsiva eliminada"})
}

// UploadDocument godoc
// @Summary      Adjuntar documento escaneado
// @Tags         responsivas
// @Security     Bearer
// @Accept       multipart/form-data
// @Produce      json
// @Param        id    path      int   true  "ID de la responsiva"
// @Param        file  formData  file  true  "Archivo"
// @Success      201   {object}  dto.DocumentResponse
// @Router       /api/responsivas/{id}/documento [post]
func (h *ResponsivaHandler) UploadDocument(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	name, f, err := formFile(c)
	if err != nil {
		return err
	}
	defer f.Close()
	out, err := h.uc.UploadDocument(c.UserContext(), GetUserID(c), id, name, f)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Documents godoc
// @Summary      Documentos de la responsiva
// @Tags         responsivas
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID de la responsiva"
// @Success      200  {array}  dto.DocumentResponse
// @Router       /api/responsivas/{id}/documentos [get]
func (h *ResponsivaHandler) Documents(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	out, err := h.uc.Documents(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// DeleteDocument godoc
// @Summary      Eliminar documento de la responsiva
// @Tags         responsivas
// @Security     Bearer
// @Param        id     path  int  true  "ID de la responsiva"
// @Param        docId  path  int  true  "ID del documento"
// @Success      200  {object}  dto.MessageResponse
// @Router       /api/responsivas/{id}/documentos/{docId} [delete]
func (h *ResponsivaHandler) DeleteDocument(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	docID, err := paramID(c, "docId")
	if err != nil {
		return err
	}
	if err := h.uc.DeleteDocument(c.UserContext(), id, docID); err != nil {
		return err
	}
	return c.JSON(dto.MessageResponse{Message: "documento eliminado"})
}
