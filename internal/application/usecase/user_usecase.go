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
	"golang.org/x/crypto/bcrypt"
)

// ProtectedUserID el administrador inicial; no puede eliminarse.
const ProtectedUserID int64 = 1

// UserUseCase administración de usuarios. La contraseña se guarda con bcrypt.
type UserUseCase struct {
	store repository.Store
	tx    ports.TxRunner
}

// NewUserUseCase construye el caso de uso.
func NewUserUseCase(store repository.Store, tx ports.TxRunner) *UserUseCase {
	return &UserUseCase{store: store, tx: tx}
}

func (uc *UserUseCase) List(ctx context.Context) ([]dto.UserResponse, error) {
	list, err := uc.store.Users().List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.UserResponse, 0, len(list))
	for _, u := range list {
		out = append(out, ToUserResponse(u))
	}
	return out, nil
}

func (uc *UserUseCase) Get(ctx context.Context, id int64) (*dto.UserResponse, error) {
	u, err := uc.store.Users().GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToUserResponse(u)
	return &resp, nil
}

// Create registra el usuario; un username repetido es un conflicto sobre el campo username.
func (uc *UserUseCase) Create(ctx context.Context, actorID int64, in dto.CreateUserRequest) (*dto.UserResponse, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	u := &entity.User{
		Name:     strings.TrimSpace(in.Name),
		LastName: strings.TrimSpace(in.LastName),
		Username: strings.TrimSpace(in.Username),
		Role:     int(in.Role),
	}
	err = uc.tx.Run(ctx, func(s repository.Store) error {
		if err := checkUsername(ctx, s, u.Username, 0); err != nil {
			return err
		}
		if err := s.Users().Create(ctx, u, string(hash)); err != nil {
			return err
		}
		return history.RecordCreate(ctx, s, movement.TableUsers, u.ID, actorID)
	})
	if err != nil {
		return nil, err
	}
	resp := ToUserResponse(u)
	return &resp, nil
}

// Update modifica datos y rol; la contraseña solo cambia si viene en la petición.
func (uc *UserUseCase) Update(ctx context.Context, actorID, id int64, in dto.UpdateUserRequest) (*dto.UserResponse, error) {
	var hash []byte
	if in.Password != "" {
		var err error
		if hash, err = bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost); err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
	}
	var u *entity.User
	err := uc.tx.Run(ctx, func(s repository.Store) error {
		var err error
		if u, err = s.Users().GetByID(ctx, id); err != nil {
			return err
		}
		u.Name = strings.TrimSpace(in.Name)
		u.LastName = strings.TrimSpace(in.LastName)
		u.Username = strings.TrimSpace(in.Username)
		u.Role = int(in.Role)
		if err := checkUsername(ctx, s, u.Username, id); err != nil {
			return err
		}
		return history.Track(ctx, s, movement.TableUsers, movement.Update, id, actorID, func() error {
			if err := s.Users().Update(ctx, u); err != nil {
				return err
			}
			if hash == nil {
				return nil
			}
			return s.Users().UpdatePassword(ctx, id, string(hash))
		})
	})
	if err != nil {
		return nil, err
	}
	resp := ToUserResponse(u)
	return &resp, nil
}

// Delete baja lógica. El administrador inicial está protegido.
func (uc *UserUseCase) Delete(ctx context.Context, actorID, id int64) error {
	if id == ProtectedUserID {
		return fmt.Errorf("%w: el administrador principal no puede eliminarse", domain.ErrForbidden)
	}
	return uc.tx.Run(ctx, func(s repository.Store) error {
		if _, err := s.Users().GetByID(ctx, id); err != nil {
			return err
		}
		return history.SoftDelete(ctx, s, movement.TableUsers, id, actorID)
	})
}

func checkUsername(ctx context.Context, s repository.Store, username string, excludeID int64) error {
	exists, err := s.Users().ExistsUsername(ctx, username, excludeID)
	if err != nil {
		return err
	}
	if exists {
		return domain.NewFieldError("username", domain.ErrDuplicate)
	}
	return nil
}

// ToUserResponse mapea la entidad sin datos de contraseña.
func ToUserResponse(u *entity.User) dto.UserResponse {
	return dto.UserResponse{
		ID:       u.ID,
		Name:     u.Name,
		LastName: u.LastName,
		Username: u.Username,
		Role:     u.Role,
		Status:   u.Status,
	}
}
