package http

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventarios-api/internal/application/usecase"
	"github.com/jhoicas/inventarios-api/internal/domain"
)

// LookupHandler agrupa búsqueda global, árbol de ubicaciones y formatos en blanco.
type LookupHandler struct {
	search    *usecase.SearchUseCase
	locations *usecase.LocationUseCase
	formats   *usecase.FormatUseCase
}

func NewLookupHandler(search *usecase.SearchUseCase, locations *usecase.LocationUseCase, formats *usecase.FormatUseCase) *LookupHandler {
	return &LookupHandler{search: search, locations: locations, formats: formats}
}

// Search godoc
// @Summary      Búsqueda global
// @Description  Busca en equipos (incluidos valores personalizados), categorías, departamentos, áreas y pisos.
// @Tags         lookup
// @Security     Bearer
// @Produce      json
// @Param        q   query  string  true  "Texto a buscar"
// @Success      200  {array}  dto.SearchResultResponse
// @Router       /api/search [get]
func (h *LookupHandler) Search(c *fiber.Ctx) error {
	out, err := h.search.Search(c.UserContext(), strings.TrimSpace(c.Query("q")))
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Locations godoc
// @Summary      Árbol pisos, áreas y equipos
// @Tags         lookup
// @Security     Bearer
// @Produce      json
// @Param        department_id  query  int  false  "Filtra por departamento"
// @Success      200  {array}  dto.FloorLocationResponse
// @Router       /api/locations [get]
func (h *LookupHandler) Locations(c *fiber.Ctx) error {
	var departmentID int64
	if raw := c.Query("department_id"); raw != "" {
		v, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || v <= 0 {
			return domain.NewFieldError("department_id", domain.ErrInvalidInput)
		}
		departmentID = v
	}
	out, err := h.locations.Tree(c.UserContext(), departmentID)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Format godoc
// @Summary      Descargar formato en blanco
// @Tags         lookup
// @Security     Bearer
// @Produce      application/octet-stream
// @Param        filename  path  string  true  "Nombre del formato"
// @Success      200
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/formats/{filename} [get]
func (h *LookupHandler) Format(c *fiber.Ctx) error {
	name := pathString(c, "filename")
	r, err := h.formats.Open(c.UserContext(), name)
	if err != nil {
		return err
	}
	return sendStream(c, name, r)
}
