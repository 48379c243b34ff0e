package repository

import (
	"context"

	"github.com/jhoicas/inventarios-api/internal/domain/entity"
)

// UserRepository puerto de persistencia para User y su contraseña.
type UserRepository interface {
	List(ctx context.Context) ([]*entity.User, error)
	GetByID(ctx context.Context, id int64) (*entity.User, error)
	// GetByUsername incluye PasswordHash; devuelve domain.ErrUserNotFound si no existe.
	GetByUsername(ctx context.Context, username string) (*entity.User, error)
	// ExistsUsername ignora al usuario excludeID (0 = ninguno).
	ExistsUsername(ctx context.Context, username string, excludeID int64) (bool, error)
	// Create guarda primero la contraseña y después el usuario.
	Create(ctx context.Context, u *entity.User, passwordHash string) error
	Update(ctx context.Context, u *entity.User) error
	UpdatePassword(ctx context.Context, userID int64, passwordHash string) error
}
