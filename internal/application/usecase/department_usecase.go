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

// CodeDeptHasEquipments el departamento tiene equipos asignados y no puede eliminarse.
const CodeDeptHasEquipments = "DEPT_HAS_EQUIPMENTS"

// DepartmentUseCase casos de uso CRUD para departamentos.
type DepartmentUseCase struct {
	store repository.Store
	tx    ports.TxRunner
}

// NewDepartmentUseCase construye el caso de uso.
func NewDepartmentUseCase(store repository.Store, tx ports.TxRunner) *DepartmentUseCase {
	return &DepartmentUseCase{store: store, tx: tx}
}

// List departamentos activos.
func (uc *DepartmentUseCase) List(ctx context.Context) ([]dto.DepartmentResponse, error) {
	list, err := uc.store.Departments().List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.DepartmentResponse, 0, len(list))
	for _, d := range list {
		out = append(out, toDepartmentResponse(d))
	}
	return out, nil
}

// Get departamento activo por id.
func (uc *DepartmentUseCase) Get(ctx context.Context, id int64) (*dto.DepartmentResponse, error) {
	d, err := uc.store.Departments().GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := toDepartmentResponse(d)
	return &resp, nil
}

// Create crea el departamento y registra el movimiento en la misma transacción.
func (uc *DepartmentUseCase) Create(ctx context.Context, userID int64, in dto.DepartmentRequest) (*dto.DepartmentResponse, error) {
	d := &entity.Department{
		Name:           strings.TrimSpace(in.Name),
		Abbreviation:   strings.TrimSpace(in.Abbreviation),
		Description:    in.Description,
		DepartmentHead: strings.TrimSpace(in.DepartmentHead),
	}
	err := uc.tx.Run(ctx, func(s repository.Store) error {
		if err := s.Departments().Create(ctx, d); err != nil {
			return err
		}
		return history.RecordCreate(ctx, s, movement.TableDepartments, d.ID, userID)
	})
	if err != nil {
		return nil, err
	}
	resp := toDepartmentResponse(d)
	return &resp, nil
}

// Update reemplaza los datos editables.
func (uc *DepartmentUseCase) Update(ctx context.Context, userID, id int64, in dto.DepartmentRequest) (*dto.DepartmentResponse, error) {
	var d *entity.Department
	err := uc.tx.Run(ctx, func(s repository.Store) error {
		var err error
		if d, err = s.Departments().GetByID(ctx, id); err != nil {
			return err
		}
		d.Name = strings.TrimSpace(in.Name)
		d.Abbreviation = strings.TrimSpace(in.Abbreviation)
		d.Description = in.Description
		d.DepartmentHead = strings.TrimSpace(in.DepartmentHead)
		return history.Track(ctx, s, movement.TableDepartments, movement.Update, id, userID, func() error {
			return s.Departments().Update(ctx, d)
		})
	})
	if err != nil {
		return nil, err
	}
	resp := toDepartmentResponse(d)
	return &resp, nil
}

// Delete baja lógica. Se rechaza con DEPT_HAS_EQUIPMENTS si hay equipos asignados.
func (uc *DepartmentUseCase) Delete(ctx context.Context, userID, id int64) error {
	return uc.tx.Run(ctx, func(s repository.Store) error {
		if _, err := s.Departments().GetByID(ctx, id); err != nil {
			return err
		}
		n, err := s.Departments().CountAssignedDevices(ctx, id)
		if err != nil {
			return err
		}
		if n > 0 {
			return &domain.CodedError{
				Code: CodeDeptHasEquipments,
				Err:  fmt.Errorf("%w: el departamento tiene %d equipos asignados", domain.ErrHasDependents, n),
			}
		}
		return history.SoftDelete(ctx, s, movement.TableDepartments, id, userID)
	})
}

// CountEquipments equipos asignados al departamento mediante responsivas activas.
func (uc *DepartmentUseCase) CountEquipments(ctx context.Context, id int64) (int64, error) {
	return uc.store.Departments().CountAssignedDevices(ctx, id)
}

func toDepartmentResponse(d *entity.Department) dto.DepartmentResponse {
	return dto.DepartmentResponse{
		ID:             d.ID,
		Name:           d.Name,
		Abbreviation:   d.Abbreviation,
		Description:    d.Description,
		DepartmentHead: d.DepartmentHead,
		Status:         d.Status,
	}
}
