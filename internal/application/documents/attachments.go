// Package documents flujos de responsivas, bajas y mantenimientos: folio, cambio de
// estado de los equipos, bitácora, PDF y archivos escaneados.
package documents

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/jhoicas/inventarios-api/internal/application/dto"
	"github.com/jhoicas/inventarios-api/internal/application/ports"
	"github.com/jhoicas/inventarios-api/internal/domain"
	"github.com/jhoicas/inventarios-api/internal/domain/entity"
	"github.com/jhoicas/inventarios-api/internal/domain/repository"
	"github.com/jhoicas/inventarios-api/pkg/logger"
)

const dateLayout = "2006-01-02"

var pdfMagic = []byte("%PDF-")

// attachments archivos escaneados de un tipo de documento (responsivas o bajas).
type attachments struct {
	kind    repository.DocumentKind
	store   repository.Store
	files   ports.FileStorage
	maxSize int64 // 0 = sin límite
	pdfOnly bool
	log     *logger.Logger
}

// upload guarda el archivo y su registro; si el registro falla el archivo se elimina.
func (a *attachments) upload(ctx context.Context, userID, ownerID int64, name string, r io.Reader) (*dto.DocumentResponse, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domain.NewFieldError("file", domain.ErrInvalidInput)
	}
	if a.maxSize > 0 {
		r = io.LimitReader(r, a.maxSize+1)
	}
	br := bufio.NewReader(r)
	if a.pdfOnly {
		head, _ := br.Peek(len(pdfMagic))
		if !strings.EqualFold(path.Ext(name), ".pdf") || !bytes.Equal(head, pdfMagic) {
			return nil, domain.NewFieldError("file", fmt.Errorf("%w: solo se aceptan archivos PDF", domain.ErrInvalidInput))
		}
	}

	counter := &countingReader{r: br}
	stored, err := a.files.Save(ctx, string(a.kind), name, counter)
	if err != nil {
		return nil, err
	}
	if a.maxSize > 0 && counter.n > a.maxSize {
		a.remove(ctx, stored)
		return nil, domain.NewFieldError("file",
			fmt.Errorf("%w: el archivo excede %d MB", domain.ErrInvalidInput, a.maxSize>>20))
	}

	doc := &entity.Document{OwnerID: ownerID, OriginalName: name, StoredName: stored, UserID: userID}
	if err := a.store.Documents().Add(ctx, a.kind, doc); err != nil {
		a.remove(ctx, stored)
		return nil, err
	}
	resp := a.toResponse(doc)
	return &resp, nil
}

func (a *attachments) list(ctx context.Context, ownerID int64) ([]dto.DocumentResponse, error) {
	docs, err := a.store.Documents().List(ctx, a.kind, ownerID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.DocumentResponse, 0, len(docs))
	for _, d := range docs {
		out = append(out, a.toResponse(d))
	}
	return out, nil
}

// delete borra el registro y después el archivo.
func (a *attachments) delete(ctx context.Context, ownerID, docID int64) error {
	doc, err := a.store.Documents().Get(ctx, a.kind, ownerID, docID)
	if err != nil {
		return err
	}
	if err := a.store.Documents().Delete(ctx, a.kind, doc.ID); err != nil {
		return err
	}
	a.remove(ctx, doc.StoredName)
	return nil
}

func (a *attachments) open(ctx context.Context, stored string) (io.ReadCloser, error) {
	return a.files.Open(ctx, string(a.kind), stored)
}

// removeAll elimina del disco archivos cuyos registros ya no existen.
func (a *attachments) removeAll(ctx context.Context, stored []string) {
	for _, name := range stored {
		a.remove(ctx, name)
	}
}

func (a *attachments) remove(ctx context.Context, stored string) {
	if err := a.files.Remove(ctx, string(a.kind), stored); err != nil {
		a.log.Warn().Err(err).Str("kind", string(a.kind)).Str("file", stored).Msg("no se pudo eliminar el archivo")
	}
}

func (a *attachments) toResponse(d *entity.Document) dto.DocumentResponse {
	return dto.DocumentResponse{
		ID:            d.ID,
		OwnerID:       d.OwnerID,
		NombreArchivo: d.OriginalName,
		RutaArchivo:   d.StoredName,
		URL:           "/uploads/" + string(a.kind) + "/" + d.StoredName,
		UserID:        d.UserID,
		FechaSubida:   d.UploadedAt,
	}
}

type countingReader struct {
	r io.Reader
	n int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += int64(n)
	return n, err
}

// parseDate fecha YYYY-MM-DD; vacía toma el día actual.
func parseDate(field, s string, now time.Time) (time.Time, error) {
	if s == "" {
		y, m, d := now.Date()
		return time.Date(y, m, d, 0, 0, 0, 0, time.UTC), nil
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, domain.NewFieldError(field, domain.ErrInvalidInput)
	}
	return t, nil
}

func isNotFound(err error) bool {
	return errors.Is(err, domain.ErrNotFound)
}
