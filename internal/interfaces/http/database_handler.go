package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventarios-api/internal/application/backup"
	"github.com/jhoicas/inventarios-api/internal/application/dto"
)

// DatabaseHandler maneja /api/database y /api/backup-config.
type DatabaseHandler struct {
	svc *backup.Service
}

func NewDatabaseHandler(svc *backup.Service) *DatabaseHandler {
	return &DatabaseHandler{svc: svc}
}

// Export godoc
// @Summary      Exportar datos de la base (gzip)
// @Tags         database
// @Security     Bearer
// @Produce      application/gzip
// @Success      200
// @Router       /api/database/export [get]
func (h *DatabaseHandler) Export(c *fiber.Ctx) error {
	file, err := h.svc.Export(c.UserContext())
	if err != nil {
		return err
	}
	return sendExport(c, file)
}

// Restore godoc
// @Summary      Restaurar datos desde .sql o .gz
// @Description  Vacía todas las tablas de datos y ejecuta el script en una sola transacción.
// @Tags         database
// @Security     Bearer
// @Accept       multipart/form-data
// @Produce      json
// @Param        file  formData  file  true  "Respaldo .sql o .gz"
// @Success      200   {object}  dto.MessageResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/database/restore [post]
func (h *DatabaseHandler) Restore(c *fiber.Ctx) error {
	name, f, err := formFile(c)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := h.svc.Restore(c.UserContext(), name, f); err != nil {
		return err
	}
	return c.JSON(dto.MessageResponse{Message: "base de datos restaurada"})
}

// GetConfig godoc
// @Summary      Configuración activa de respaldos automáticos
// @Tags         database
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.BackupConfigResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/backup-config [get]
func (h *DatabaseHandler) GetConfig(c *fiber.Ctx) error {
	out, err := h.svc.GetConfig(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// SaveConfig godoc
// @Summary      Guardar configuración de respaldos y reprogramar
// @Tags         database
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.BackupConfigRequest  true  "Configuración"
// @Success      200   {object}  dto.BackupConfigResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/backup-config [post]
func (h *DatabaseHandler) SaveConfig(c *fiber.Ctx) error {
	var in dto.BackupConfigRequest
	if err := bindJSON(c, &in); err != nil {
		return err
	}
	out, err := h.svc.SaveConfig(c.UserContext(), in)
	if err != nil {
		return err
	}
	return c.JSON(out)
}
