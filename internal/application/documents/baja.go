package documents

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/jhoicas/inventarios-api/internal/application/dto"
	"github.com/jhoicas/inventarios-api/internal/application/history"
	"github.com/jhoicas/inventarios-api/internal/application/ports"
	"github.com/jhoicas/inventarios-api/internal/domain"
	"github.com/jhoicas/inventarios-api/internal/domain/entity"
	"github.com/jhoicas/inventarios-api/internal/domain/folio"
	"github.com/jhoicas/inventarios-api/internal/domain/movement"
	"github.com/jhoicas/inventarios-api/internal/domain/repository"
	"github.com/jhoicas/inventarios-api/pkg/logger"
)

// MaxBajaDocumentSize tamaño máximo de un PDF escaneado de baja.
const MaxBajaDocumentSize = 10 << 20

// BajaUseCase retiro definitivo de equipos.
type BajaUseCase struct {
	store repository.Store
	tx    ports.TxRunner
	pdf   ports.DocumentPDFGenerator
	docs  *attachments
	log   *logger.Logger
	now   func() time.Time
}

// NewBajaUseCase construye el caso de uso; files guarda bajo uploads/bajas.
func NewBajaUseCase(store repository.Store, tx ports.TxRunner, pdf ports.DocumentPDFGenerator, files ports.FileStorage, log *logger.Logger) *BajaUseCase {
	return &BajaUseCase{
		store: store,
		tx:    tx,
		pdf:   pdf,
		docs: &attachments{
			kind:    repository.DocumentsBaja,
			store:   store,
			files:   files,
			maxSize: MaxBajaDocumentSize,
			pdfOnly: true,
			log:     log,
		},
		log: log,
		now: time.Now,
	}
}

func (uc *BajaUseCase) List(ctx context.Context) ([]dto.BajaResponse, error) {
	list, err := uc.store.Bajas().List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.BajaResponse, 0, len(list))
	for _, b := range list {
		out = append(out, toBajaResponse(b))
	}
	return out, nil
}

func (uc *BajaUseCase) Get(ctx context.Context, id int64) (*dto.BajaResponse, error) {
	b, err := uc.store.Bajas().GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := toBajaResponse(b)
	return &resp, nil
}

// Detail baja con sus documentos escaneados.
func (uc *BajaUseCase) Detail(ctx context.Context, id int64) (*dto.BajaDetailResponse, error) {
	b, err := uc.store.Bajas().GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	docs, err := uc.docs.list(ctx, id)
	if err != nil {
		return nil, err
	}
	return &dto.BajaDetailResponse{BajaResponse: toBajaResponse(b), Documentos: docs}, nil
}

// Create registra la baja con folio BAJA-n y devuelve el PDF generado.
// El equipo se bloquea (FOR UPDATE) para que dos bajas simultáneas no lo retiren dos veces.
func (uc *BajaUseCase) Create(ctx context.Context, userID int64, in dto.BajaRequest) (*dto.BajaResponse, *dto.PDFFile, error) {
	fecha, err := parseDate("fecha", in.Fecha, uc.now())
	if err != nil {
		return nil, nil, err
	}
	var id int64
	err = uc.tx.Run(ctx, func(s repository.Store) error {
		// ── 1. Bloquear el equipo y validar estado ──────────────────────────
		d, err := s.Devices().GetForUpdate(ctx, in.DeviceID)
		if err != nil {
			return err
		}
		if d.Status != entity.StatusActive {
			return fmt.Errorf("equipo %d: %w", d.ID, domain.ErrNotFound)
		}
		if !d.Func.CanDecommission() {
			return notAvailable(d)
		}
		if in.DepartmentID != nil {
			if _, err := s.Departments().GetByID(ctx, *in.DepartmentID); err != nil {
				return refErr("id_departamento", err)
			}
		}

		// ── 2. Folio y registro ──────────────────────────────────────────────
		b := &entity.Baja{
			Fecha:         fecha,
			Motivo:        strings.TrimSpace(in.Motivo),
			DetectadoPor:  strings.TrimSpace(in.DetectadoPor),
			Observaciones: in.Observaciones,
			DeviceID:      d.ID,
			UserID:        userID,
			DepartmentID:  in.DepartmentID,
		}
		if b.Folio, err = s.Folios().Next(ctx, movement.TableBajas, folio.Baja); err != nil {
			return err
		}
		if err := s.Bajas().Create(ctx, b); err != nil {
			return err
		}
		if err := history.RecordCreate(ctx, s, movement.TableBajas, b.ID, userID); err != nil {
			return err
		}

		// ── 3. Equipo: resguardo -> baja ─────────────────────────────────────
		id = b.ID
		return setDeviceFunc(ctx, s, d.ID, userID, entity.FuncBaja, false)
	})
	if err != nil {
		return nil, nil, err
	}
	uc.log.Info().Int64("baja_id", id).Int64("device_id", in.DeviceID).Int64("user_id", userID).Msg("baja registrada")

	b, err := uc.store.Bajas().GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	file, err := uc.render(ctx, b)
	if err != nil {
		return nil, nil, err
	}
	resp := toBajaResponse(b)
	return &resp, file, nil
}

// PDF formato de una baja existente.
func (uc *BajaUseCase) PDF(ctx context.Context, id int64) (*dto.PDFFile, error) {
	b, err := uc.store.Bajas().GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return uc.render(ctx, b)
}

// DeleteByDevice elimina las bajas del equipo (con sus documentos) y lo regresa a resguardo.
func (uc *BajaUseCase) DeleteByDevice(ctx context.Context, userID, deviceID int64) error {
	var stored []string
	err := uc.tx.Run(ctx, func(s repository.Store) error {
		d, err := s.Devices().GetForUpdate(ctx, deviceID)
		if err != nil {
			return err
		}
		ids, err := s.Bajas().IDsByDevice(ctx, deviceID)
		if err != nil {
			return err
		}
		if len(ids) == 0 {
			return fmt.Errorf("bajas del equipo %d: %w", deviceID, domain.ErrNotFound)
		}
		for _, id := range ids {
			names, err := s.Documents().DeleteByOwner(ctx, repository.DocumentsBaja, id)
			if err != nil {
				return err
			}
			stored = append(stored, names...)
			err = history.Track(ctx, s, movement.TableBajas, movement.HardDelete, id, userID, func() error {
				_, err := s.Rows().Delete(ctx, movement.TableBajas, id)
				return err
			})
			if err != nil {
				return err
			}
		}
		if d.Func != entity.FuncBaja {
			return nil
		}
		return setDeviceFunc(ctx, s, deviceID, userID, entity.FuncResguardo, false)
	})
	if err != nil {
		return err
	}
	uc.docs.removeAll(ctx, stored)
	return nil
}

// UploadDocument adjunta un PDF escaneado (máximo 10 MB).
func (uc *BajaUseCase) UploadDocument(ctx context.Context, userID, id int64, name string, r io.Reader) (*dto.DocumentResponse, error) {
	if _, err := uc.store.Bajas().GetByID(ctx, id); err != nil {
		return nil, err
	}
	return uc.docs.upload(ctx, userID, id, name, r)
}

func (uc *BajaUseCase) Documents(ctx context.Context, id int64) ([]dto.DocumentResponse, error) {
	return uc.docs.list(ctx, id)
}

func (uc *BajaUseCase) DeleteDocument(ctx context.Context, id, docID int64) error {
	return uc.docs.delete(ctx, id, docID)
}

// Download abre un documento de baja por su nombre almacenado.
func (uc *BajaUseCase) Download(ctx context.Context, stored string) (io.ReadCloser, error) {
	return uc.docs.open(ctx, stored)
}

func (uc *BajaUseCase) render(ctx context.Context, b *entity.Baja) (*dto.PDFFile, error) {
	content, err := uc.pdf.BajaPDF(ctx, b)
	if err != nil {
		return nil, err
	}
	return &dto.PDFFile{Name: "baja_" + b.Folio + ".pdf", Content: content}, nil
}

func toBajaResponse(b *entity.Baja) dto.BajaResponse {
	return dto.BajaResponse{
		ID:             b.ID,
		Folio:          b.Folio,
		Fecha:          b.Fecha,
		Motivo:         b.Motivo,
		DetectadoPor:   b.DetectadoPor,
		Observaciones:  b.Observaciones,
		DeviceID:       b.DeviceID,
		UserID:         b.UserID,
		Username:       b.Username,
		DepartmentID:   b.DepartmentID,
		DepartmentName: b.DepartmentName,
		Brand:          b.Brand,
		Model:          b.Model,
		SerialNumber:   b.SerialNumber,
		Category:       b.Category,
	}
}
