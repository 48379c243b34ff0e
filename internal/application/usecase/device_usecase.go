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

// DeviceUseCase alta, edición y consulta de equipos.
// El estado operativo (func) no se edita aquí: lo cambian responsivas y bajas.
type DeviceUseCase struct {
	store repository.Store
	tx    ports.TxRunner
}

// NewDeviceUseCase construye el caso de uso.
func NewDeviceUseCase(store repository.Store, tx ports.TxRunner) *DeviceUseCase {
	return &DeviceUseCase{store: store, tx: tx}
}

// List equipos activos.
func (uc *DeviceUseCase) List(ctx context.Context) ([]dto.DeviceResponse, error) {
	return toDeviceResponses(uc.store.Devices().List(ctx))
}

// ByCategory equipos activos de una categoría.
func (uc *DeviceUseCase) ByCategory(ctx context.Context, categoryID int64) ([]dto.DeviceResponse, error) {
	return toDeviceResponses(uc.store.Devices().ListByCategory(ctx, categoryID))
}

// ByDepartment equipos asignados a un departamento.
func (uc *DeviceUseCase) ByDepartment(ctx context.Context, departmentID int64) ([]dto.DeviceResponse, error) {
	return toDeviceResponses(uc.store.Devices().ListByDepartment(ctx, departmentID))
}

// Get detalle con campos personalizados y, si está asignado, su ubicación.
func (uc *DeviceUseCase) Get(ctx context.Context, id int64) (*dto.DeviceDetailResponse, error) {
	d, err := uc.store.Devices().GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	values, err := uc.store.Devices().CustomValues(ctx, id)
	if err != nil {
		return nil, err
	}
	detail := &entity.DeviceDetail{Device: *d, CustomFields: values}
	if d.Func == entity.FuncAsignado {
		if detail.Ubicacion, err = uc.store.Devices().Location(ctx, id); err != nil {
			return nil, err
		}
	}
	return toDeviceDetailResponse(detail), nil
}

// CustomFields campos que se capturan para los equipos de la categoría.
// Una categoría de accesorios es una entrada inválida.
func (uc *DeviceUseCase) CustomFields(ctx context.Context, categoryID int64) ([]dto.CustomFieldResponse, error) {
	c, err := uc.store.Categories().GetByID(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	if c.Type != entity.CategoryDevice {
		return nil, fmt.Errorf("%w: la categoría %d no es de equipos", domain.ErrInvalidInput, categoryID)
	}
	fields, err := uc.store.Categories().ListFields(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CustomFieldResponse, 0, len(fields))
	for _, f := range fields {
		out = append(out, toCustomFieldResponse(f))
	}
	return out, nil
}

// Create registra el equipo en resguardo junto con sus valores personalizados.
func (uc *DeviceUseCase) Create(ctx context.Context, userID int64, in dto.DeviceRequest) (*dto.DeviceDetailResponse, error) {
	d := &entity.Device{
		Brand:        strings.TrimSpace(in.Brand),
		Model:        strings.TrimSpace(in.Model),
		SerialNumber: strings.TrimSpace(in.SerialNumber),
		CategoryID:   in.CategoryID,
		GroupID:      in.GroupID,
		Details:      in.Details,
		IsNew:        in.IsNew == nil || bool(*in.IsNew),
		Func:         entity.FuncResguardo,
	}
	err := uc.tx.Run(ctx, func(s repository.Store) error {
		fields, err := deviceFields(ctx, s, d.CategoryID)
		if err != nil {
			return err
		}
		if err := checkCustomValues(fields, in.CustomValues, true); err != nil {
			return err
		}
		if err := s.Devices().Create(ctx, d); err != nil {
			return err
		}
		if err := saveCustomValues(ctx, s, d.ID, in.CustomValues); err != nil {
			return err
		}
		return history.RecordCreate(ctx, s, movement.TableDevices, d.ID, userID)
	})
	if err != nil {
		return nil, err
	}
	return uc.Get(ctx, d.ID)
}

// Update modifica los datos capturables y los valores personalizados en una sola transacción.
func (uc *DeviceUseCase) Update(ctx context.Context, userID, id int64, in dto.DeviceRequest) (*dto.DeviceDetailResponse, error) {
	err := uc.tx.Run(ctx, func(s repository.Store) error {
		d, err := s.Devices().GetByID(ctx, id)
		if err != nil {
			return err
		}
		fields, err := deviceFields(ctx, s, in.CategoryID)
		if err != nil {
			return err
		}
		if err := checkCustomValues(fields, in.CustomValues, in.CategoryID != d.CategoryID); err != nil {
			return err
		}
		d.Brand = strings.TrimSpace(in.Brand)
		d.Model = strings.TrimSpace(in.Model)
		d.SerialNumber = strings.TrimSpace(in.SerialNumber)
		d.CategoryID = in.CategoryID
		d.GroupID = in.GroupID
		d.Details = in.Details
		if in.IsNew != nil {
			d.IsNew = bool(*in.IsNew)
		}
		return history.Track(ctx, s, movement.TableDevices, movement.Update, id, userID, func() error {
			if err := s.Devices().Update(ctx, d); err != nil {
				return err
			}
			return saveCustomValues(ctx, s, id, in.CustomValues)
		})
	})
	if err != nil {
		return nil, err
	}
	return uc.Get(ctx, id)
}

// Delete baja lógica del registro. Un equipo asignado debe liberarse antes
// cancelando su responsiva.
func (uc *DeviceUseCase) Delete(ctx context.Context, userID, id int64) error {
	return uc.tx.Run(ctx, func(s repository.Store) error {
		d, err := s.Devices().GetByID(ctx, id)
		if err != nil {
			return err
		}
		if d.Func == entity.FuncAsignado {
			return fmt.Errorf("%w: el equipo está asignado", domain.ErrInvalidState)
		}
		return history.SoftDelete(ctx, s, movement.TableDevices, id, userID)
	})
}

// deviceFields valida que la categoría sea de equipos y devuelve sus campos activos.
func deviceFields(ctx context.Context, s repository.Store, categoryID int64) ([]*entity.CustomField, error) {
	c, err := s.Categories().GetByID(ctx, categoryID)
	if err != nil {
		if isNotFound(err) {
			return nil, domain.NewFieldError("category_id", domain.ErrInvalidInput)
		}
		return nil, err
	}
	if c.Type != entity.CategoryDevice {
		return nil, domain.NewFieldError("category_id", domain.ErrInvalidInput)
	}
	return s.Categories().ListFields(ctx, categoryID)
}

// checkCustomValues cada valor debe corresponder a un campo de la categoría;
// con requireAll los campos obligatorios deben venir con valor.
func checkCustomValues(fields []*entity.CustomField, values []dto.CustomValueInput, requireAll bool) error {
	known := make(map[int64]*entity.CustomField, len(fields))
	for _, f := range fields {
		known[f.ID] = f
	}
	given := make(map[int64]string, len(values))
	for _, v := range values {
		if _, ok := known[v.CustomFieldID]; !ok {
			return domain.NewFieldError("custom_values",
				fmt.Errorf("%w: el campo %d no pertenece a la categoría", domain.ErrInvalidInput, v.CustomFieldID))
		}
		given[v.CustomFieldID] = strings.TrimSpace(v.Value)
	}
	if !requireAll {
		return nil
	}
	for _, f := range fields {
		if f.Required && given[f.ID] == "" {
			return domain.NewFieldError("custom_values",
				fmt.Errorf("%w: %s es obligatorio", domain.ErrInvalidInput, f.Name))
		}
	}
	return nil
}

func saveCustomValues(ctx context.Context, s repository.Store, deviceID int64, values []dto.CustomValueInput) error {
	for _, v := range values {
		if err := s.Devices().UpsertCustomValue(ctx, deviceID, v.CustomFieldID, strings.TrimSpace(v.Value)); err != nil {
			return err
		}
	}
	return nil
}

func toDeviceResponses(list []*entity.Device, err error) ([]dto.DeviceResponse, error) {
	if err != nil {
		return nil, err
	}
	out := make([]dto.DeviceResponse, 0, len(list))
	for _, d := range list {
		out = append(out, toDeviceResponse(d))
	}
	return out, nil
}

func toDeviceResponse(d *entity.Device) dto.DeviceResponse {
	return dto.DeviceResponse{
		ID:           d.ID,
		Brand:        d.Brand,
		Model:        d.Model,
		SerialNumber: d.SerialNumber,
		CategoryID:   d.CategoryID,
		CategoryName: d.CategoryName,
		GroupID:      d.GroupID,
		GroupNumber:  d.GroupNumber,
		Status:       d.Status,
		Details:      d.Details,
		IsNew:        d.IsNew,
		Func:         string(d.Func),
	}
}

func toDeviceDetailResponse(d *entity.DeviceDetail) *dto.DeviceDetailResponse {
	resp := &dto.DeviceDetailResponse{
		DeviceResponse: toDeviceResponse(&d.Device),
		CustomFields:   make([]dto.CustomValueResponse, 0, len(d.CustomFields)),
	}
	for _, v := range d.CustomFields {
		resp.CustomFields = append(resp.CustomFields, dto.CustomValueResponse{
			CustomFieldID: v.CustomFieldID,
			Name:          v.Name,
			DataType:      v.DataType,
			Value:         v.Value,
		})
	}
	if u := d.Ubicacion; u != nil {
		resp.Ubicacion = &dto.DeviceLocationResponse{
			Area:         u.Area,
			Piso:         u.Piso,
			Departamento: u.Departamento,
			Responsable:  u.Responsable,
		}
	}
	return resp
}
