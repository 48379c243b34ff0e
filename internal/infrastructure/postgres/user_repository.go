package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/inventarios-api/internal/domain"
	"github.com/jhoicas/inventarios-api/internal/domain/entity"
	"github.com/jhoicas/inventarios-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

var userUniqueFields = map[string]string{"users_username_key": "username"}

// UserRepo implementación de UserRepository (users + passwords).
type UserRepo struct {
	q Querier
}

// NewUserRepository construye el adaptador de usuarios.
func NewUserRepository(q Querier) *UserRepo {
	return &UserRepo{q: q}
}

const userColumns = `u.id, u.name, u.last_name, u.username, u.role, u.password_id, u.status`

// List usuarios activos (sin contraseña).
func (r *UserRepo) List(ctx context.Context) ([]*entity.User, error) {
	rows, err := r.q.Query(ctx, `SELECT `+userColumns+` FROM users u WHERE u.status = 1 ORDER BY u.id`)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	var list []*entity.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		list = append(list, u)
	}
	return list, rows.Err()
}

// GetByID usuario activo por id.
func (r *UserRepo) GetByID(ctx context.Context, id int64) (*entity.User, error) {
	u, err := scanUser(r.q.QueryRow(ctx, `SELECT `+userColumns+` FROM users u WHERE u.id = $1 AND u.status = 1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("get user %d: %w", id, domain.ErrUserNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	return u, nil
}

// GetByUsername usuario con su hash de contraseña (para login).
func (r *UserRepo) GetByUsername(ctx context.Context, username string) (*entity.User, error) {
	var u entity.User
	var hash *string
	err := r.q.QueryRow(ctx, `
		SELECT `+userColumns+`, p.password_hash
		FROM users u
		LEFT JOIN passwords p ON p.id = u.password_id
		WHERE u.username = $1`, username).
		Scan(&u.ID, &u.Name, &u.LastName, &u.Username, &u.Role, &u.PasswordID, &u.Status, &hash)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get user by username: %w", err)
	}
	if hash != nil {
		u.PasswordHash = *hash
	}
	return &u, nil
}

// ExistsUsername ignora al usuario excludeID.
func (r *UserRepo) ExistsUsername(ctx context.Context, username string, excludeID int64) (bool, error) {
	var exists bool
	err := r.q.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM users WHERE username = $1 AND id <> $2)`, username, excludeID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check username: %w", err)
	}
	return exists, nil
}

// Create guarda la contraseña y después el usuario que la referencia.
// Debe ejecutarse dentro de una transacción.
func (r *UserRepo) Create(ctx context.Context, u *entity.User, passwordHash string) error {
	var passwordID int64
	if err := r.q.QueryRow(ctx,
		`INSERT INTO passwords (password_hash) VALUES ($1) RETURNING id`, passwordHash).Scan(&passwordID); err != nil {
		return fmt.Errorf("insert password: %w", err)
	}
	u.PasswordID = &passwordID
	err := r.q.QueryRow(ctx, `
		INSERT INTO users (name, last_name, username, role, password_id, status)
		VALUES ($1, $2, $3, $4, $5, 1) RETURNING id, status`,
		u.Name, u.LastName, u.Username, u.Role, passwordID).Scan(&u.ID, &u.Status)
	return mapWriteErr("insert user", err, userUniqueFields)
}

// Update actualiza datos del usuario (la contraseña va por UpdatePassword).
func (r *UserRepo) Update(ctx context.Context, u *entity.User) error {
	cmd, err := r.q.Exec(ctx,
		`UPDATE users SET name = $2, last_name = $3, username = $4, role = $5 WHERE id = $1`,
		u.ID, u.Name, u.LastName, u.Username, u.Role)
	if err != nil {
		return mapWriteErr("update user", err, userUniqueFields)
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("update user %d: %w", u.ID, domain.ErrUserNotFound)
	}
	return nil
}

// UpdatePassword reemplaza el hash; crea el registro en passwords si el usuario no tenía.
func (r *UserRepo) UpdatePassword(ctx context.Context, userID int64, passwordHash string) error {
	cmd, err := r.q.Exec(ctx, `
		UPDATE passwords SET password_hash = $2
		WHERE id = (SELECT password_id FROM users WHERE id = $1)`, userID, passwordHash)
	if err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	if cmd.RowsAffected() > 0 {
		return nil
	}
	_, err = r.q.Exec(ctx, `
		WITH p AS (INSERT INTO passwords (password_hash) VALUES ($2) RETURNING id)
		UPDATE users SET password_id = (SELECT id FROM p) WHERE id = $1`, userID, passwordHash)
	if err != nil {
		return fmt.Errorf("create password: %w", err)
	}
	return nil
}

func scanUser(row pgx.Row) (*entity.User, error) {
	var u entity.User
	if err := row.Scan(&u.ID, &u.Name, &u.LastName, &u.Username, &u.Role, &u.PasswordID, &u.Status); err != nil {
		return nil, err
	}
	return &u, nil
}
