package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventarios-api/internal/application/documents"
	"github.com/jhoicas/inventarios-api/internal/application/dto"
)

// BajaHandler maneja /api/bajas.
type BajaHandler struct {
	uc *documents.BajaUseCase
}

func NewBajaHandler(uc *documents.BajaUseCase) *BajaHandler {
	return &BajaHandler{uc: uc}
}

// List godoc
// @Summary      Listar bajas
// @Tags         bajas
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.BajaResponse
// @Router       /api/bajas [get]
func (h *BajaHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Get godoc
// @Summary      Obtener baja
// @Tags         bajas
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID de la baja"
// @Success      200  {object}  dto.BajaResponse
// @Router       /api/bajas/{id} [get]
func (h *BajaHandler) Get(c *fiber.Ctx) error {
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

// Detail godoc
// @Summary      Baja con sus documentos escaneados
// @Tags         bajas
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID de la baja"
// @Success      200  {object}  dto.BajaDetailResponse
// @Router       /api/bajas/{id}/detalle [get]
func (h *BajaHandler) Detail(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	out, err := h.uc.Detail(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Registrar baja de un equipo en resguardo
// @Description  Responde el PDF de la baja; el folio viaja también en X-Folio.
// @Tags         bajas
// @Security     Bearer
// @Accept       json
// @Produce      application/pdf
// @Param        body  body  dto.BajaRequest  true  "Datos de la baja"
// @Success      201
// @Failure      404  {object}  dto.ErrorResponse  "equipo inexistente"
// @Failure      409  {object}  dto.ErrorResponse  "el equipo no está en resguardo"
// @Router       /api/bajas [post]
func (h *BajaHandler) Create(c *fiber.Ctx) error {
	var in dto.BajaRequest
	if err := bindJSON(c, &in); err != nil {
		return err
	}
	out, file, err := h.uc.Create(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return err
	}
	c.Set("X-Folio", out.Folio)
	c.Set("X-Baja-ID", strconv.FormatInt(out.ID, 10))
	c.Status(fiber.StatusCreated)
	return sendPDF(c, file)
}

// PDF godoc
// @Summary      Descargar PDF de la baja
// @Tags         bajas
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path  int  true  "ID de la baja"
// @Success      200
// @Router       /api/bajas/pdf/{id} [get]
func (h *BajaHandler) PDF(c *fiber.Ctx) error {
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

// DeleteByDevice godoc
// @Summary      Eliminar las bajas de un equipo
// @Description  El equipo regresa a resguardo.
// @Tags         bajas
// @Security     Bearer
// @Param        id   path  int  true  "ID del equipo"
// @Success      200  {object}  dto.MessageResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/bajas/por-dispositivo/{id} [delete]
func (h *BajaHandler) DeleteByDevice(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	if err := h.uc.DeleteByDevice(c.UserContext(), GetUserID(c), id); err != nil {
		return err
	}
	return c.JSON(dto.MessageResponse{Message: "baja eliminada"})
}

// UploadDocument godoc
// @Summary      Adjuntar PDF escaneado (máximo 10 MB)
// @Tags         bajas
// @Security     Bearer
// @Accept       multipart/form-data
// @Produce      json
// @Param        id    path      int   true  "ID de la baja"
// @Param        file  formData  file  true  "PDF"
// @Success      201   {object}  dto.DocumentResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/bajas/{id}/documento [post]
func (h *BajaHandler) UploadDocument(c *fiber.Ctx) error {
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
// @Summary      Documentos de la baja
// @Tags         bajas
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID de la baja"
// @Success      200  {array}  dto.DocumentResponse
// @Router       /api/bajas/{id}/documentos [get]
func (h *BajaHandler) Documents(c *fiber.Ctx) error {
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
// @Summary      Eliminar documento de la baja
// @Tags         bajas
// @Security     Bearer
// @Param        id     path  int  true  "ID de la baja"
// @Param        docId  path  int  true  "ID del documento"
// @Success      200  {object}  dto.MessageResponse
// @Router       /api/bajas/{id}/documentos/{docId} [delete]
func (h *BajaHandler) DeleteDocument(c *fiber.Ctx) error {
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

// Download godoc
// @Summary      Descargar documento escaneado por nombre almacenado
// @Tags         bajas
// @Security     Bearer
// @Produce      application/pdf
// @Param        nombre  path  string  true  "Nombre almacenado"
// @Success      200
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/bajas/descargar/{nombre} [get]
func (h *BajaHandler) Download(c *fiber.Ctx) error {
	name := pathString(c, "nombre")
	r, err := h.uc.Download(c.UserContext(), name)
	if err != nil {
		return err
	}
	c.Set(fiber.HeaderContentType, contentTypePDF)
	return sendStream(c, name, r)
}
