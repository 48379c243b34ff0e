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

// CodeAreaHasEquipments el área tiene equipos asignados.
const CodeAreaHasEquipments = "AREA_HAS_EQUIPMENTS"

// AreaUseCase casos de uso CRUD para áreas.
type AreaUseCase struct {
	store repository.Store
	tx    ports.TxRunner
}

// NewAreaUseCase construye el caso de uso.
func NewAreaUseCase(store repository.Store, tx ports.TxRunner) *AreaUseCase {
	return &AreaUseCase{store: store, tx: tx}
}

// List áreas activas con el nombre de su piso.
func (uc *AreaUseCase) List(ctx context.Context) ([]dto.AreaResponse, error) {
	list, err := uc.store.Areas().List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.AreaResponse, 0, len(list))
	for _, a := range list {
		out = append(out, toAreaResponse(a))
	}
	return out, nil
}

// Get área activa.
func (uc *AreaUseCase) Get(ctx context.Context, id int64) (*dto.AreaResponse, error) {
	a, err := uc.store.Areas().GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := toAreaResponse(a)
	return &resp, nil
}

// CheckName indica si ya existe un área activa con ese nombre.
func (uc *AreaUseCase) CheckName(ctx context.Context, name string) (*dto.CheckNameResponse, error) {
	a, err := uc.store.Areas().FindByName(ctx, strings.TrimSpace(name))
	if err != nil {
		return nil, err
	}
	return &dto.CheckNameResponse{Exists: a != nil && a.Status == entity.StatusActive}, nil
}

// Create crea el área en un piso activo.
func (uc *AreaUseCase) Create(ctx context.Context, userID int64, in dto.AreaRequest) (*dto.AreaResponse, error) {
	a := &entity.Area{Name: strings.TrimSpace(in.Name), Description: in.Description, FloorID: in.FloorID}
	err := uc.tx.Run(ctx, func(s repository.Store) error {
		if err := uc.checkFloor(ctx, s, a); err != nil {
			return err
		}
		existing, err := s.Areas().FindByName(ctx, a.Name)
		if err != nil {
			return err
		}
		if existing != nil {
			return duplicateName(existing.Status, existing.ID)
		}
		if err := s.Areas().Create(ctx, a); err != nil {
			return err
		}
		return history.RecordCreate(ctx, s, movement.TableAreas, a.ID, userID)
	})
	if err != nil {
		return nil, err
	}
	resp := toAreaResponse(a)
	return &resp, nil
}

// Update reemplaza nombre, descripción y piso.
func (uc *AreaUseCase) Update(ctx context.Context, userID, id int64, in dto.AreaRequest) (*dto.AreaResponse, error) {
	var a *entity.Area
	err := uc.tx.Run(ctx, func(s repository.Store) error {
		var err error
		if a, err = s.Areas().GetByID(ctx, id); err != nil {
			return err
		}
		a.Name = strings.TrimSpace(in.Name)
		a.Description = in.Description
		a.FloorID = in.FloorID
		if err := uc.checkFloor(ctx, s, a); err != nil {
			return err
		}
		return history.Track(ctx, s, movement.TableAreas, movement.Update, id, userID, func() error {
			return s.Areas().Update(ctx, a)
		})
	})
	if err != nil {
		return nil, err
	}
	resp := toAreaResponse(a)
	return &resp, nil
}

// Delete baja lógica; se rechaza mientras haya equipos asignados al área.
func (uc *AreaUseCase) Delete(ctx context.Context, userID, id int64) error {
	return uc.tx.Run(ctx, func(s repository.Store) error {
		if _, err := s.Areas().GetByID(ctx, id); err != nil {
			return err
		}
		n, err := s.Areas().CountAssignedDevices(ctx, id)
		if err != nil {
			return err
		}
		if n > 0 {
			return &domain.CodedError{
				Code: CodeAreaHasEquipments,
				Err:  fmt.Errorf("%w: el área tiene %d equipos asignados", domain.ErrHasDependents, n),
			}
		}
		return history.SoftDelete(ctx, s, movement.TableAreas, id, userID)
	})
}

// Restore reactiva un área dada de baja.
func (uc *AreaUseCase) Restore(ctx context.Context, userID, id int64) error {
	return uc.tx.Run(ctx, func(s repository.Store) error {
		return reactivate(ctx, s, movement.TableAreas, id, userID)
	})
}

// checkFloor valida el piso y completa FloorName para la respuesta.
func (uc *AreaUseCase) checkFloor(ctx context.Context, s repository.Store, a *entity.Area) error {
	f, err := s.Floors().GetByID(ctx, a.FloorID)
	if err != nil {
		if isNotFound(err) {
			return domain.NewFieldError("id_floor", domain.ErrInvalidInput)
		}
		return err
	}
	a.FloorName = f.Name
	return nil
}

func toAreaResponse(a *entity.Area) dto.AreaResponse {
	return dto.AreaResponse{
		ID:          a.ID,
		Name:        a.Name,
		Description: a.Description,
		FloorID:     a.FloorID,
		FloorName:   a.FloorName,
		Status:      a.Status,
	}
}
