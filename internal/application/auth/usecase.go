package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jhoicas/inventarios-api/internal/application/dto"
	"github.com/jhoicas/inventarios-api/internal/domain"
	"github.com/jhoicas/inventarios-api/internal/domain/entity"
	"github.com/jhoicas/inventarios-api/internal/domain/repository"
	"github.com/jhoicas/inventarios-api/pkg/jwt"
	"golang.org/x/crypto/bcrypt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase login y alta del administrador inicial.
type AuthUseCase struct {
	users  repository.UserRepository
	jwtCfg JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(users repository.UserRepository, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{users: users, jwtCfg: jwtCfg}
}

// Login verifica usuario y contraseña y emite el JWT con id y rol.
// Usuario inexistente y contraseña incorrecta devuelven el mismo error.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := uc.users.GetByUsername(ctx, strings.TrimSpace(in.Username))
	if errors.Is(err, domain.ErrUserNotFound) {
		return nil, domain.ErrUnauthorized
	}
	if err != nil {
		return nil, err
	}
	if user.PasswordHash == "" {
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	if user.Status != entity.StatusActive {
		return nil, domain.ErrForbidden
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token:    token,
		ID:       user.ID,
		Username: user.Username,
		Role:     user.Role,
	}, nil
}

// BootstrapAdmin crea el administrador si el username aún no existe.
// Devuelve true cuando lo creó.
func (uc *AuthUseCase) BootstrapAdmin(ctx context.Context, username, password string) (bool, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return false, fmt.Errorf("%w: usuario y contraseña del administrador son obligatorios", domain.ErrInvalidInput)
	}
	exists, err := uc.users.ExistsUsername(ctx, username, 0)
	if err != nil {
		return false, err
	}
	if exists {
		return false, nil
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return false, fmt.Errorf("hash password: %w", err)
	}
	admin := &entity.User{Name: "Administrador", Username: username, Role: entity.RoleAdmin}
	if err := uc.users.Create(ctx, admin, string(hash)); err != nil {
		return false, err
	}
	return true, nil
}
