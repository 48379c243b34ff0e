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

// Códigos de error de categorías.
const (
	CodeCategoryHasItems   = "CATEGORY_HAS_ITEMS"
	CodeCategoryTypeLocked = "CATEGORY_TYPE_LOCKED"
	CodeFieldHasValues     = "FIELD_HAS_VALUES"
	defaultCustomFieldType = "text"
)

// CategoryUseCase categorías de equipos y accesorios y sus campos personalizados.
type CategoryUseCase struct {
	store repository.Store
	tx    ports.TxRunner
}

// NewCategoryUseCase construye el caso de uso.
func NewCategoryUseCase(store repository.Store, tx ports.TxRunner) *CategoryUseCase {
	return &CategoryUseCase{store: store, tx: tx}
}

// List categorías activas; typ filtra por equipos (0) o accesorios (1).
func (uc *CategoryUseCase) List(ctx context.Context, typ *int) ([]dto.CategoryResponse, error) {
	var filter *entity.CategoryType
	if typ != nil {
		t := entity.CategoryType(*typ)
		if !t.Valid() {
			return nil, domain.NewFieldError("type", domain.ErrInvalidInput)
		}
		filter = &t
	}
	list, err := uc.store.Categories().List(ctx, filter)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CategoryResponse, 0, len(list))
	for _, c := range list {
		out = append(out, toCategoryResponse(c))
	}
	return out, nil
}

// Get categoría activa.
func (uc *CategoryUseCase) Get(ctx context.Context, id int64) (*dto.CategoryResponse, error) {
	c, err := uc.store.Categories().GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := toCategoryResponse(c)
	return &resp, nil
}

// Create crea la categoría; un nombre de una categoría dada de baja es reactivable.
func (uc *CategoryUseCase) Create(ctx context.Context, userID int64, in dto.CategoryRequest) (*dto.CategoryResponse, error) {
	c := &entity.Category{
		Name:        strings.TrimSpace(in.Name),
		Description: in.Description,
		Type:        entity.CategoryType(*in.Type),
	}
	err := uc.tx.Run(ctx, func(s repository.Store) error {
		existing, err := s.Categories().FindByName(ctx, c.Name)
		if err != nil {
			return err
		}
		if existing != nil {
			return duplicateName(existing.Status, existing.ID)
		}
		if err := s.Categories().Create(ctx, c); err != nil {
			return err
		}
		return history.RecordCreate(ctx, s, movement.TableCategories, c.ID, userID)
	})
	if err != nil {
		return nil, err
	}
	resp := toCategoryResponse(c)
	return &resp, nil
}

// Update modifica la categoría. El tipo solo puede cambiar si ningún equipo o
// accesorio (activo o no) la referencia.
func (uc *CategoryUseCase) Update(ctx context.Context, userID, id int64, in dto.CategoryRequest) (*dto.CategoryResponse, error) {
	var c *entity.Category
	err := uc.tx.Run(ctx, func(s repository.Store) error {
		var err error
		if c, err = s.Categories().GetByID(ctx, id); err != nil {
			return err
		}
		newType := entity.CategoryType(*in.Type)
		if newType != c.Type {
			n, err := s.Categories().CountItems(ctx, id, false)
			if err != nil {
				return err
			}
			if n > 0 {
				return &domain.CodedError{
					Code: CodeCategoryTypeLocked,
					Err:  fmt.Errorf("%w: %d registros usan la categoría, no se puede cambiar su tipo", domain.ErrConflict, n),
				}
			}
		}
		c.Name = strings.TrimSpace(in.Name)
		c.Description = in.Description
		c.Type = newType
		return history.Track(ctx, s, movement.TableCategories, movement.Update, id, userID, func() error {
			return s.Categories().Update(ctx, c)
		})
	})
	if err != nil {
		return nil, err
	}
	resp := toCategoryResponse(c)
	return &resp, nil
}

// Delete baja lógica; se rechaza mientras existan equipos o accesorios activos en ella.
func (uc *CategoryUseCase) Delete(ctx context.Context, userID, id int64) error {
	return uc.tx.Run(ctx, func(s repository.Store) error {
		if _, err := s.Categories().GetByID(ctx, id); err != nil {
			return err
		}
		n, err := s.Categories().CountItems(ctx, id, true)
		if err != nil {
			return err
		}
		if n > 0 {
			return &domain.CodedError{
				Code: CodeCategoryHasItems,
				Err:  fmt.Errorf("%w: la categoría tiene %d registros activos", domain.ErrHasDependents, n),
			}
		}
		return history.SoftDelete(ctx, s, movement.TableCategories, id, userID)
	})
}

// Restore reactiva una categoría dada de baja.
func (uc *CategoryUseCase) Restore(ctx context.Context, userID, id int64) (*dto.CategoryResponse, error) {
	var c *entity.Category
	err := uc.tx.Run(ctx, func(s repository.Store) error {
		if err := reactivate(ctx, s, movement.TableCategories, id, userID); err != nil {
			return err
		}
		var err error
		c, err = s.Categories().GetAny(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	resp := toCategoryResponse(c)
	return &resp, nil
}

// AddField agrega un campo personalizado a una categoría de equipos.
func (uc *CategoryUseCase) AddField(ctx context.Context, userID int64, in dto.CustomFieldRequest) (*dto.CustomFieldResponse, error) {
	f := &entity.CustomField{
		Name:       strings.TrimSpace(in.Name),
		DataType:   in.DataType,
		CategoryID: in.CategoryID,
		Required:   bool(in.Required),
	}
	if f.DataType == "" {
		f.DataType = defaultCustomFieldType
	}
	err := uc.tx.Run(ctx, func(s repository.Store) error {
		c, err := s.Categories().GetByID(ctx, f.CategoryID)
		if err != nil {
			if isNotFound(err) {
				return domain.NewFieldError("category_id", domain.ErrInvalidInput)
			}
			return err
		}
		if c.Type != entity.CategoryDevice {
			return fmt.Errorf("%w: solo las categorías de equipos admiten campos personalizados", domain.ErrInvalidInput)
		}
		if err := s.Categories().CreateField(ctx, f); err != nil {
			return err
		}
		return history.RecordCreate(ctx, s, movement.TableCustomFields, f.ID, userID)
	})
	if err != nil {
		return nil, err
	}
	resp := toCustomFieldResponse(f)
	return &resp, nil
}

// ListFields campos activos de la categoría.
func (uc *CategoryUseCase) ListFields(ctx context.Context, categoryID int64) ([]dto.CustomFieldResponse, error) {
	list, err := uc.store.Categories().ListFields(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CustomFieldResponse, 0, len(list))
	for _, f := range list {
		out = append(out, toCustomFieldResponse(f))
	}
	return out, nil
}

// DeleteField da de baja un campo; se rechaza si algún equipo tiene valor capturado.
func (uc *CategoryUseCase) DeleteField(ctx context.Context, userID, fieldID int64) error {
	return uc.tx.Run(ctx, func(s repository.Store) error {
		if _, err := s.Categories().GetField(ctx, fieldID); err != nil {
			return err
		}
		n, err := s.Categories().CountFieldValues(ctx, fieldID)
		if err != nil {
			return err
		}
		if n > 0 {
			return &domain.CodedError{
				Code: CodeFieldHasValues,
				Err:  fmt.Errorf("%w: %d equipos tienen valor en este campo", domain.ErrHasDependents, n),
			}
		}
		return history.SoftDelete(ctx, s, movement.TableCustomFields, fieldID, userID)
	})
}

func toCategoryResponse(c *entity.Category) dto.CategoryResponse {
	return dto.CategoryResponse{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		Type:        int(c.Type),
		Status:      c.Status,
	}
}

func toCustomFieldResponse(f *entity.CustomField) dto.CustomFieldResponse {
	return dto.CustomFieldResponse{
		ID:         f.ID,
		Name:       f.Name,
		DataType:   f.DataType,
		CategoryID: f.CategoryID,
		Required:   f.Required,
		Status:     f.Status,
	}
}
