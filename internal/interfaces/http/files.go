package http

import (
	"fmt"
	"io"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventarios-api/internal/application/dto"
	"github.com/jhoicas/inventarios-api/internal/domain"
)

const contentTypePDF = "application/pdf"

// sendExport responde un archivo generado como descarga.
func sendExport(c *fiber.Ctx, f *dto.ExportFile) error {
	return sendAttachment(c, f.Name, f.ContentType, f.Content)
}

func sendPDF(c *fiber.Ctx, f *dto.PDFFile) error {
	return sendAttachment(c, f.Name, contentTypePDF, f.Content)
}

func sendAttachment(c *fiber.Ctx, name, contentType string, content []byte) error {
	c.Attachment(name)
	c.Set(fiber.HeaderContentType, contentType)
	return c.Send(content)
}

// sendStream responde un archivo abierto; fasthttp lo cierra al terminar de enviarlo.
func sendStream(c *fiber.Ctx, name string, r io.ReadCloser) error {
	c.Attachment(name)
	return c.SendStream(r)
}

// formFile abre el archivo multipart del campo "file"; el llamador lo cierra.
func formFile(c *fiber.Ctx) (string, io.ReadCloser, error) {
	fh, err := c.FormFile("file")
	if err != nil {
		return "", nil, domain.NewFieldError("file", fmt.Errorf("%w: archivo requerido", domain.ErrInvalidInput))
	}
	f, err := fh.Open()
	if err != nil {
		return "", nil, fmt.Errorf("abrir archivo subido: %w", err)
	}
	return fh.Filename, f, nil
}
