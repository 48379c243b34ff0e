package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/inventarios-api/internal/application/dto"
	"github.com/jhoicas/inventarios-api/internal/domain"
	"github.com/jhoicas/inventarios-api/internal/domain/entity"
	"github.com/jhoicas/inventarios-api/internal/domain/repository"
	"github.com/jhoicas/inventarios-api/pkg/jwt"
)

type MockUserRepository struct {
	mock.Mock
	repository.UserRepository
}

func (m *MockUserRepository) GetByUsername(ctx context.Context, username string) (*entity.User, error) {
	args := m.Called(ctx, username)
	u, _ := args.Get(0).(*entity.User)
	return u, args.Error(1)
}

func (m *MockUserRepository) ExistsUsername(ctx context.Context, username string, excludeID int64) (bool, error) {
	args := m.Called(ctx, username, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) Create(ctx context.Context, u *entity.User, passwordHash string) error {
	args := m.Called(ctx, u, passwordHash)
	return args.Error(0)
}

var testJWT = JWTConfig{Secret: "secreto-de-prueba", ExpMinutes: 60, Issuer: "inventarios-api"}

func hashed(t *testing.T, password string) string {
	t.Helper()
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(h)
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	users := new(MockUserRepository)
	users.On("GetByUsername", ctx, "ana").Return(&entity.User{
		ID: 7, Name: "Ana", Username: "ana", Role: 2, Status: entity.StatusActive,
		PasswordHash: hashed(t, "s3creta"),
	}, nil)
	users.On("GetByUsername", ctx, "inactivo").Return(&entity.User{
		ID: 8, Username: "inactivo", Role: 2, Status: entity.StatusInactive,
		PasswordHash: hashed(t, "s3creta"),
	}, nil)
	users.On("GetByUsername", ctx, "nadie").Return(nil, domain.ErrUserNotFound)
	uc := NewAuthUseCase(users, testJWT)

	out, err := uc.Login(ctx, dto.LoginRequest{Username: " ana ", Password: "s3creta"})
	require.NoError(t, err)
	assert.Equal(t, "ana", out.Username)
	id, role, err := jwt.Parse(testJWT.Secret, out.Token)
	require.NoError(t, err)
	assert.Equal(t, int64(7), id)
	assert.Equal(t, 2, role)

	_, err = uc.Login(ctx, dto.LoginRequest{Username: "ana", Password: "otra"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	_, err = uc.Login(ctx, dto.LoginRequest{Username: "nadie", Password: "s3creta"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	_, err = uc.Login(ctx, dto.LoginRequest{Username: "inactivo", Password: "s3creta"})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestBootstrapAdmin(t *testing.T) {
	ctx := context.Background()
	users := new(MockUserRepository)
	users.On("ExistsUsername", ctx, "admin", int64(0)).Return(false, nil).Once()
	users.On("Create", ctx, mock.MatchedBy(func(u *entity.User) bool {
		return u.Username == "admin" && u.Role == entity.RoleAdmin
	}), mock.MatchedBy(func(hash string) bool {
		return bcrypt.CompareHashAndPassword([]byte(hash), []byte("admin123")) == nil
	})).Return(nil).Once()
	uc := NewAuthUseCase(users, testJWT)

	created, err := uc.BootstrapAdmin(ctx, "admin", "admin123")
	require.NoError(t, err)
	assert.True(t, created)

	users.On("ExistsUsername", ctx, "admin", int64(0)).Return(true, nil).Once()
	created, err = uc.BootstrapAdmin(ctx, "admin", "admin123")
	require.NoError(t, err)
	assert.False(t, created)

	_, err = uc.BootstrapAdmin(ctx, "", "x")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	users.AssertExpectations(t)
}
