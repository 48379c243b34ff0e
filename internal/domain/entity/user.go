package entity

// RoleAdmin rol con acceso a usuarios, historial, base de datos y respaldos.
// Los demás roles (2, 3) solo operan el inventario.
const RoleAdmin = 1

// User usuario del sistema. La contraseña vive en la tabla passwords.
type User struct {
	ID           int64
	Name         string
	LastName     string
	Username     string
	Role         int
	PasswordID   *int64
	PasswordHash string // bcrypt; solo se llena en login
	Status       int
}

// IsAdmin indica si el usuario tiene rol administrador.
func (u *User) IsAdmin() bool { return u.Role == RoleAdmin }
