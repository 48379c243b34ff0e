package usecase

import (
	"context"
	"strings"

	"github.com/jhoicas/inventarios-api/internal/application/dto"
	"github.com/jhoicas/inventarios-api/internal/application/history"
	"github.com/jhoicas/inventarios-api/internal/application/ports"
	"github.com/jhoicas/inventarios-api/internal/domain"
	"github.com/jhoicas/inventarios-api/internal/domain/entity"
	"github.com/jhoicas/inventarios-api/internal/domain/movement"
	"github.com/jhoicas/inventarios-api/internal/domain/repository"
)

// AccessoryUseCase CRUD de accesorios.
type AccessoryUseCase struct {
	store repository.Store
	tx    ports.TxRunner
}

// NewAccessoryUseCase construye el caso de uso.
func NewAccessoryUseCase(store repository.Store, tx ports.TxRunner) *AccessoryUseCase {
	return &AccessoryUseCase{store: store, tx: tx}
}

func (uc *AccessoryUseCase) List(ctx context.Context) ([]dto.AccessoryResponse, error) {
	list, err := uc.store.Accessories().List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.AccessoryResponse, 0, len(list))
	for _, a := range list {
		out = append(out, toAccessoryResponse(a))
	}
	return out, nil
}

func (uc *AccessoryUseCase) Get(ctx context.Context, id int64) (*dto.AccessoryResponse, error) {
	a, err := uc.store.Accessories().GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := toAccessoryResponse(a)
	return &resp, nil
}

// CheckName indica si ya hay un accesorio activo con ese nombre de producto.
func (uc *AccessoryUseCase) CheckName(ctx context.Context, name string) (*dto.CheckNameResponse, error) {
	exists, err := uc.store.Accessories().ExistsActiveName(ctx, name)
	if err != nil {
		return nil, err
	}
	return &dto.CheckNameResponse{Exists: exists}, nil
}

// Categories categorías activas de accesorios.
func (uc *AccessoryUseCase) Categories(ctx context.Context) ([]dto.CategoryResponse, error) {
	typ := entity.CategoryAccessory
	list, err := uc.store.Categories().List(ctx, &typ)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CategoryResponse, 0, len(list))
	for _, c := range list {
		out = append(out, toCategoryResponse(c))
	}
	return out, nil
}

func (uc *AccessoryUseCase) Create(ctx context.Context, userID int64, in dto.AccessoryRequest) (*dto.AccessoryResponse, error) {
	a := &entity.Accessory{
		Brand:       strings.TrimSpace(in.Brand),
		ProductName: strings.TrimSpace(in.ProductName),
		Total:       in.Total,
		CategoryID:  in.CategoryID,
		Details:     in.Details,
	}
	err := uc.tx.Run(ctx, func(s repository.Store) error {
		exists, err := s.Accessories().ExistsActiveName(ctx, a.ProductName)
		if err != nil {
			return err
		}
		if exists {
			return domain.NewFieldError("product_name", domain.ErrDuplicate)
		}
		if a.CategoryName, err = accessoryCategory(ctx, s, a.CategoryID); err != nil {
			return err
		}
		if err := s.Accessories().Create(ctx, a); err != nil {
			return err
		}
		return history.RecordCreate(ctx, s, movement.TableAccessories, a.ID, userID)
	})
	if err != nil {
		return nil, err
	}
	resp := toAccessoryResponse(a)
	return &resp, nil
}

func (uc *AccessoryUseCase) Update(ctx context.Context, userID, id int64, in dto.AccessoryRequest) (*dto.AccessoryResponse, error) {
	var a *entity.Accessory
	err := uc.tx.Run(ctx, func(s repository.Store) error {
		var err error
		if a, err = s.Accessories().GetByID(ctx, id); err != nil {
			return err
		}
		if a.CategoryName, err = accessoryCategory(ctx, s, in.CategoryID); err != nil {
			return err
		}
		a.Brand = strings.TrimSpace(in.Brand)
		a.ProductName = strings.TrimSpace(in.ProductName)
		a.Total = in.Total
		a.CategoryID = in.CategoryID
		a.Details = in.Details
		return history.Track(ctx, s, movement.TableAccessories, movement.Update, id, userID, func() error {
			return s.Accessories().Update(ctx, a)
		})
	})
	if err != nil {
		return nil, err
	}
	resp := toAccessoryResponse(a)
	return &resp, nil
}

func (uc *AccessoryUseCase) Delete(ctx context.Context, userID, id int64) error {
	return uc.tx.Run(ctx, func(s repository.Store) error {
		if _, err := s.Accessories().GetByID(ctx, id); err != nil {
			return err
		}
		return history.SoftDelete(ctx, s, movement.TableAccessories, id, userID)
	})
}

func accessoryCategory(ctx context.Context, s repository.Store, categoryID int64) (string, error) {
	c, err := s.Categories().GetByID(ctx, categoryID)
	if err != nil {
		if isNotFound(err) {
			return "", domain.NewFieldError("category_id", domain.ErrInvalidInput)
		}
		return "", err
	}
	if c.Type != entity.CategoryAccessory {
		return "", domain.NewFieldError("category_id", domain.ErrInvalidInput)
	}
	return c.Name, nil
}

func toAccessoryResponse(a *entity.Accessory) dto.AccessoryResponse {
	return dto.AccessoryResponse{
		ID:           a.ID,
		Brand:        a.Brand,
		ProductName:  a.ProductName,
		Total:        a.Total,
		CategoryID:   a.CategoryID,
		CategoryName: a.CategoryName,
		Details:      a.Details,
		Status:       a.Status,
	}
}
