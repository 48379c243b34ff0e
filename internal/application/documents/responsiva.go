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

// CodeDeviceNotAvailable el equipo no está en resguardo y no puede asignarse ni darse de baja.
const CodeDeviceNotAvailable = "DEVICE_NOT_AVAILABLE"

// ResponsivaUseCase asignación de equipos mediante responsivas.
type ResponsivaUseCase struct {
	store repository.Store
	tx    ports.TxRunner
	pdf   ports.DocumentPDFGenerator
	docs  *attachments
	log   *logger.Logger
	now   func() time.Time
}

// NewResponsivaUseCase construye el caso de uso; files guarda bajo uploads/responsivas.
func NewResponsivaUseCase(store repository.Store, tx ports.TxRunner, pdf ports.DocumentPDFGenerator, files ports.FileStorage, log *logger.Logger) *ResponsivaUseCase {
	return &ResponsivaUseCase{
		store: store,
		tx:    tx,
		pdf:   pdf,
		docs:  &attachments{kind: repository.DocumentsResponsiva, store: store, files: files, log: log},
		log:   log,
		now:   time.Now,
	}
}

// List responsivas activas.
func (uc *ResponsivaUseCase) List(ctx context.Context) ([]dto.ResponsivaResponse, error) {
	list, err := uc.store.Responsivas().List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ResponsivaResponse, 0, len(list))
	for _, r := range list {
		out = append(out, toResponsivaResponse(r))
	}
	return out, nil
}

// Get responsiva con sus equipos.
func (uc *ResponsivaUseCase) Get(ctx context.Context, id int64) (*dto.ResponsivaResponse, error) {
	r, err := uc.store.Responsivas().GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := toResponsivaResponse(r)
	return &resp, nil
}

// Preview genera el PDF sin guardar nada ni asignar folio.
func (uc *ResponsivaUseCase) Preview(ctx context.Context, in dto.ResponsivaRequest) (*dto.PDFFile, error) {
	r, err := uc.build(ctx, uc.store, in)
	if err != nil {
		return nil, err
	}
	for _, id := range uniqueIDs(in.DeviceIDs) {
		d, err := uc.store.Devices().GetByID(ctx, id)
		if err != nil {
			return nil, deviceInputErr(err)
		}
		r.Devices = append(r.Devices, toResponsivaDevice(d))
	}
	content, err := uc.pdf.ResponsivaPDF(ctx, r)
	if err != nil {
		return nil, err
	}
	return &dto.PDFFile{Name: "responsiva_preview.pdf", Content: content}, nil
}

// Create asigna folio SIS-n, registra la responsiva y pasa cada equipo de resguardo
// a asignado (ya no nuevo). Todo ocurre en una transacción.
func (uc *ResponsivaUseCase) Create(ctx context.Context, userID int64, in dto.ResponsivaRequest) (*dto.ResponsivaResponse, error) {
	var id int64
	err := uc.tx.Run(ctx, func(s repository.Store) error {
		// ── 1. Validar área, departamento y fecha ───────────────────────────
		r, err := uc.build(ctx, s, in)
		if err != nil {
			return err
		}
		r.UserID = userID

		// ── 2. Folio consecutivo (serie bloqueada hasta el commit) ──────────
		if r.Folio, err = s.Folios().Next(ctx, movement.TableResponsivas, folio.Responsiva); err != nil {
			return err
		}
		if err := s.Responsivas().Create(ctx, r); err != nil {
			return err
		}
		if err := history.RecordCreate(ctx, s, movement.TableResponsivas, r.ID, userID); err != nil {
			return err
		}

		// ── 3. Equipos: resguardo -> asignado ───────────────────────────────
		for _, deviceID := range uniqueIDs(in.DeviceIDs) {
			d, err := s.Devices().GetForUpdate(ctx, deviceID)
			if err != nil {
				return deviceInputErr(err)
			}
			if d.Status != entity.StatusActive {
				return deviceInputErr(domain.ErrNotFound)
			}
			if !d.Func.CanAssign() {
				return notAvailable(d)
			}
			if err := setDeviceFunc(ctx, s, d.ID, userID, entity.FuncAsignado, true); err != nil {
				return err
			}
			if err := s.Responsivas().AddDevice(ctx, r.ID, d.ID); err != nil {
				return err
			}
		}
		id = r.ID
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Int64("responsiva_id", id).Int64("user_id", userID).Int("devices", len(in.DeviceIDs)).Msg("responsiva creada")
	return uc.Get(ctx, id)
}

// PDF formato de una responsiva existente.
func (uc *ResponsivaUseCase) PDF(ctx context.Context, id int64) (*dto.PDFFile, error) {
	r, err := uc.store.Responsivas().GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	content, err := uc.pdf.ResponsivaPDF(ctx, r)
	if err != nil {
		return nil, err
	}
	return &dto.PDFFile{Name: "responsiva_" + r.Folio + ".pdf", Content: content}, nil
}

// Cancel da de baja lógica la responsiva y regresa sus equipos a resguardo.
func (uc *ResponsivaUseCase) Cancel(ctx context.Context, userID, id int64) error {
	return uc.tx.Run(ctx, func(s repository.Store) error {
		r, err := s.Responsivas().GetByID(ctx, id)
		if err != nil {
			return err
		}
		if r.Status != entity.StatusActive {
			return fmt.Errorf("%w: la responsiva %s ya está cancelada", domain.ErrConflict, r.Folio)
		}
		if err := uc.release(ctx, s, id, userID); err != nil {
			return err
		}
		return history.SoftDelete(ctx, s, movement.TableResponsivas, id, userID)
	})
}

// HardDelete elimina la responsiva, sus documentos y su relación con equipos.
// Si seguía activa, los equipos vuelven a resguardo.
func (uc *ResponsivaUseCase) HardDelete(ctx context.Context, userID, id int64) error {
	var stored []string
	err := uc.tx.Run(ctx, func(s repository.Store) error {
		r, err := s.Responsivas().GetByID(ctx, id)
		if err != nil {
			return err
		}
		if r.Status == entity.StatusActive {
			if err := uc.release(ctx, s, id, userID); err != nil {
				return err
			}
		}
		if stored, err = s.Documents().DeleteByOwner(ctx, repository.DocumentsResponsiva, id); err != nil {
			return err
		}
		return history.Track(ctx, s, movement.TableResponsivas, movement.HardDelete, id, userID, func() error {
			_, err := s.Rows().Delete(ctx, movement.TableResponsivas, id)
			return err
		})
	})
	if err != nil {
		return err
	}
	uc.docs.removeAll(ctx, stored)
	return nil
}

// UploadDocument adjunta un archivo escaneado a la responsiva.
func (uc *ResponsivaUseCase) UploadDocument(ctx context.Context, userID, id int64, name string, r io.Reader) (*dto.DocumentResponse, error) {
	if _, err := uc.store.Responsivas().GetByID(ctx, id); err != nil {
		return nil, err
	}
	return uc.docs.upload(ctx, userID, id, name, r)
}

func (uc *ResponsivaUseCase) Documents(ctx context.Context, id int64) ([]dto.DocumentResponse, error) {
	return uc.docs.list(ctx, id)
}

func (uc *ResponsivaUseCase) DeleteDocument(ctx context.Context, id, docID int64) error {
	return uc.docs.delete(ctx, id, docID)
}

// release regresa a resguardo los equipos asignados por la responsiva.
func (uc *ResponsivaUseCase) release(ctx context.Context, s repository.Store, responsivaID, userID int64) error {
	ids, err := s.Responsivas().DeviceIDs(ctx, responsivaID)
	if err != nil {
		return err
	}
	for _, deviceID := range ids {
		d, err := s.Devices().GetForUpdate(ctx, deviceID)
		if err != nil {
			return err
		}
		if d.Func != entity.FuncAsignado {
			continue
		}
		if err := setDeviceFunc(ctx, s, deviceID, userID, entity.FuncResguardo, false); err != nil {
			return err
		}
	}
	return nil
}

// build valida la petición y arma la responsiva sin folio.
func (uc *ResponsivaUseCase) build(ctx context.Context, s repository.Store, in dto.ResponsivaRequest) (*entity.Responsiva, error) {
	fecha, err := parseDate("fecha", in.Fecha, uc.now())
	if err != nil {
		return nil, err
	}
	area, err := s.Areas().GetByID(ctx, in.AreaID)
	if err != nil {
		return nil, refErr("id_area", err)
	}
	dept, err := s.Departments().GetByID(ctx, in.DepartmentID)
	if err != nil {
		return nil, refErr("id_departamento", err)
	}
	return &entity.Responsiva{
		Fecha:          fecha,
		Responsable:    strings.TrimSpace(in.Responsable),
		AreaID:         area.ID,
		AreaName:       area.Name,
		DepartmentID:   dept.ID,
		DepartmentName: dept.Name,
	}, nil
}

// setDeviceFunc cambia el estado operativo del equipo y lo registra como modificación.
func setDeviceFunc(ctx context.Context, s repository.Store, deviceID, userID int64, f entity.DeviceFunc, markUsed bool) error {
	return history.Track(ctx, s, movement.TableDevices, movement.Update, deviceID, userID, func() error {
		return s.Devices().SetFunc(ctx, deviceID, f, markUsed)
	})
}

func notAvailable(d *entity.Device) error {
	return &domain.CodedError{
		Code: CodeDeviceNotAvailable,
		Err:  fmt.Errorf("%w: el equipo %s está en %s", domain.ErrInvalidState, d.SerialNumber, d.Func),
	}
}

// deviceInputErr un equipo inexistente en la petición es un error del campo devices.
func deviceInputErr(err error) error {
	return refErr("devices", err)
}

func refErr(field string, err error) error {
	if isNotFound(err) {
		return domain.NewFieldError(field, err)
	}
	return err
}

func uniqueIDs(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func toResponsivaDevice(d *entity.Device) entity.ResponsivaDevice {
	return entity.ResponsivaDevice{
		ID:           d.ID,
		Brand:        d.Brand,
		Model:        d.Model,
		SerialNumber: d.SerialNumber,
		Category:     d.CategoryName,
	}
}

func toResponsivaResponse(r *entity.Responsiva) dto.ResponsivaResponse {
	resp := dto.ResponsivaResponse{
		ID:             r.ID,
		Folio:          r.Folio,
		Fecha:          r.Fecha,
		Responsable:    r.Responsable,
		AreaID:         r.AreaID,
		AreaName:       r.AreaName,
		DepartmentID:   r.DepartmentID,
		DepartmentName: r.DepartmentName,
		UserID:         r.UserID,
		Status:         r.Status,
	}
	for _, d := range r.Devices {
		resp.Devices = append(resp.Devices, dto.ResponsivaDeviceResponse{
			ID:           d.ID,
			Brand:        d.Brand,
			Model:        d.Model,
			SerialNumber: d.SerialNumber,
			Category:     d.Category,
		})
	}
	return resp
}
