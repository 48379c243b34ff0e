package documents

import (
	"context"
	"strings"
	"time"

	"github.com/jhoicas/inventarios-api/internal/application/dto"
	"github.com/jhoicas/inventarios-api/internal/application/history"
	"github.com/jhoicas/inventarios-api/internal/application/ports"
	"github.com/jhoicas/inventarios-api/internal/domain/entity"
	"github.com/jhoicas/inventarios-api/internal/domain/folio"
	"github.com/jhoicas/inventarios-api/internal/domain/movement"
	"github.com/jhoicas/inventarios-api/internal/domain/repository"
	"github.com/jhoicas/inventarios-api/pkg/logger"
)

// MantenimientoUseCase captura de mantenimientos sobre los equipos de una responsiva.
type MantenimientoUseCase struct {
	store repository.Store
	tx    ports.TxRunner
	pdf   ports.DocumentPDFGenerator
	log   *logger.Logger
	now   func() time.Time
}

// NewMantenimientoUseCase construye el caso de uso.
func NewMantenimientoUseCase(store repository.Store, tx ports.TxRunner, pdf ports.DocumentPDFGenerator, log *logger.Logger) *MantenimientoUseCase {
	return &MantenimientoUseCase{store: store, tx: tx, pdf: pdf, log: log, now: time.Now}
}

func (uc *MantenimientoUseCase) List(ctx context.Context) ([]dto.MantenimientoResponse, error) {
	list, err := uc.store.Mantenimientos().List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.MantenimientoResponse, 0, len(list))
	for _, m := range list {
		out = append(out, toMantenimientoResponse(m))
	}
	return out, nil
}

func (uc *MantenimientoUseCase) Get(ctx context.Context, id int64) (*dto.MantenimientoResponse, error) {
	m, err := uc.store.Mantenimientos().GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := toMantenimientoResponse(m)
	return &resp, nil
}

// Create registra el mantenimiento con folio MAN-n y devuelve su PDF.
func (uc *MantenimientoUseCase) Create(ctx context.Context, userID int64, in dto.MantenimientoRequest) (*dto.MantenimientoResponse, *dto.PDFFile, error) {
	fecha, err := parseDate("fecha", in.Fecha, uc.now())
	if err != nil {
		return nil, nil, err
	}
	statuses := make([]string, 0, len(in.DeviceStatuses))
	for _, ds := range in.DeviceStatuses {
		statuses = append(statuses, ds.Estado)
	}
	m := &entity.Mantenimiento{
		Fecha:               fecha,
		DescripcionFalla:    strings.TrimSpace(in.DescripcionFalla),
		DescripcionSolucion: strings.TrimSpace(in.DescripcionSolucion),
		UserID:              userID,
		ResponsivaID:        in.ResponsivaID,
		Completo:            entity.ResolveCompleto(in.Completo.BoolPtr(), bool(in.Hardware), bool(in.Software), statuses),
	}

	err = uc.tx.Run(ctx, func(s repository.Store) error {
		if _, err := s.Responsivas().GetByID(ctx, m.ResponsivaID); err != nil {
			return refErr("responsiva_id", err)
		}
		var err error
		if m.Folio, err = s.Folios().Next(ctx, movement.TableMantenimientos, folio.Mantenimiento); err != nil {
			return err
		}
		if err := s.Mantenimientos().Create(ctx, m); err != nil {
			return err
		}
		return history.RecordCreate(ctx, s, movement.TableMantenimientos, m.ID, userID)
	})
	if err != nil {
		return nil, nil, err
	}
	uc.log.Info().Int64("mantenimiento_id", m.ID).Bool("completo", m.Completo).Msg("mantenimiento registrado")

	saved, err := uc.store.Mantenimientos().GetByID(ctx, m.ID)
	if err != nil {
		return nil, nil, err
	}
	file, err := uc.render(ctx, saved)
	if err != nil {
		return nil, nil, err
	}
	resp := toMantenimientoResponse(saved)
	return &resp, file, nil
}

// PDF formato de un mantenimiento existente.
func (uc *MantenimientoUseCase) PDF(ctx context.Context, id int64) (*dto.PDFFile, error) {
	m, err := uc.store.Mantenimientos().GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return uc.render(ctx, m)
}

func (uc *MantenimientoUseCase) render(ctx context.Context, m *entity.Mantenimiento) (*dto.PDFFile, error) {
	content, err := uc.pdf.MantenimientoPDF(ctx, m)
	if err != nil {
		return nil, err
	}
	return &dto.PDFFile{Name: "mantenimiento_" + m.Folio + ".pdf", Content: content}, nil
}

func toMantenimientoResponse(m *entity.Mantenimiento) dto.MantenimientoResponse {
	return dto.MantenimientoResponse{
		ID:                  m.ID,
		Folio:               m.Folio,
		Fecha:               m.Fecha,
		DescripcionFalla:    m.DescripcionFalla,
		DescripcionSolucion: m.DescripcionSolucion,
		UserID:              m.UserID,
		Username:            m.Username,
		ResponsivaID:        m.ResponsivaID,
		Responsable:         m.Responsable,
		Departamento:        m.Departamento,
		Completo:            m.Completo,
	}
}
