package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/jhoicas/inventarios-api/internal/application/dto"
	"github.com/jhoicas/inventarios-api/internal/application/history"
	"github.com/jhoicas/inventarios-api/internal/application/ports"
	"github.com/jhoicas/inventarios-api/internal/domain"
	"github.com/jhoicas/inventarios-api/internal/domain/entity"
	"github.com/jhoicas/inventarios-api/internal/domain/movement"
	"github.com/jhoicas/inventarios-api/internal/domain/repository"
)

// CodeFloorHasAreas el piso tiene áreas activas y no puede eliminarse.
const CodeFloorHasAreas = "FLOOR_HAS_AREAS"

// FloorUseCase casos de uso CRUD para pisos.
type FloorUseCase struct {
	store repository.Store
	tx    ports.TxRunner
}

// NewFloorUseCase construye el caso de uso.
func NewFloorUseCase(store repository.Store, tx ports.TxRunner) *FloorUseCase {
	return &FloorUseCase{store: store, tx: tx}
}

// List pisos activos.
func (uc *FloorUseCase) List(ctx context.Context) ([]dto.FloorResponse, error) {
	list, err := uc.store.Floors().List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.FloorResponse, 0, len(list))
	for _, f := range list {
		out = append(out, toFloorResponse(f))
	}
	return out, nil
}

// Get piso activo.
func (uc *FloorUseCase) Get(ctx context.Context, id int64) (*dto.FloorResponse, error) {
	f, err := uc.store.Floors().GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := toFloorResponse(f)
	return &resp, nil
}

// Create crea el piso. Si existe uno con el mismo nombre dado de baja devuelve
// domain.ReactivableError con su id.
func (uc *FloorUseCase) Create(ctx context.Context, userID int64, in dto.FloorRequest) (*dto.FloorResponse, error) {
	f := &entity.Floor{Name: strings.TrimSpace(in.Name), Description: in.Description}
	err := uc.tx.Run(ctx, func(s repository.Store) error {
		existing, err := s.Floors().FindByName(ctx, f.Name)
		if err != nil {
			return err
		}
		if existing != nil {
			return duplicateName(existing.Status, existing.ID)
		}
		if err := s.Floors().Create(ctx, f); err != nil {
			return err
		}
		return history.RecordCreate(ctx, s, movement.TableFloors, f.ID, userID)
	})
	if err != nil {
		return nil, err
	}
	resp := toFloorResponse(f)
	return &resp, nil
}

// Update reemplaza nombre y descripción.
func (uc *FloorUseCase) Update(ctx context.Context, userID, id int64, in dto.FloorRequest) (*dto.FloorResponse, error) {
	var f *entity.Floor
	err := uc.tx.Run(ctx, func(s repository.Store) error {
		var err error
		if f, err = s.Floors().GetByID(ctx, id); err != nil {
			return err
		}
		f.Name = strings.TrimSpace(in.Name)
		f.Description = in.Description
		return history.Track(ctx, s, movement.TableFloors, movement.Update, id, userID, func() error {
			return s.Floors().Update(ctx, f)
		})
	})
	if err != nil {
		return nil, err
	}
	resp := toFloorResponse(f)
	return &resp, nil
}

// Delete baja lógica; se rechaza mientras el piso tenga áreas activas.
func (uc *FloorUseCase) Delete(ctx context.Context, userID, id int64) error {
	return uc.tx.Run(ctx, func(s repository.Store) error {
		if _, err := s.Floors().GetByID(ctx, id); err != nil {
			return err
		}
		n, err := s.Floors().CountActiveAreas(ctx, id)
		if err != nil {
			return err
		}
		if n > 0 {
			return &domain.CodedError{
				Code: CodeFloorHasAreas,
				Err:  fmt.Errorf("%w: el piso tiene %d áreas asignadas", domain.ErrHasDependents, n),
			}
		}
		return history.SoftDelete(ctx, s, movement.TableFloors, id, userID)
	})
}

// Restore reactiva un piso dado de baja.
func (uc *FloorUseCase) Restore(ctx context.Context, userID, id int64) error {
	return uc.tx.Run(ctx, func(s repository.Store) error {
		return reactivate(ctx, s, movement.TableFloors, id, userID)
	})
}

func toFloorResponse(f *entity.Floor) dto.FloorResponse {
	return dto.FloorResponse{ID: f.ID, Name: f.Name, Description: f.Description, Status: f.Status}
}
