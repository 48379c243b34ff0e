package dto

// CreateUserRequest alta de usuario (la contraseña se hashea en el caso de uso).
type CreateUserRequest struct {
	Name     string `json:"nombre" validate:"required,max=120"`
	LastName string `json:"apellidos" validate:"max=120"`
	Username string `json:"usuario" validate:"required,min=3,max=60"`
	Password string `json:"contrasena" validate:"required,min=6,max=72"`
	Role     Num    `json:"rol" validate:"required,oneof=1 2 3"`
}

// UpdateUserRequest edición de usuario; la contraseña solo cambia si viene.
type UpdateUserRequest struct {
	Name     string `json:"nombre" validate:"required,max=120"`
	LastName string `json:"apellidos" validate:"max=120"`
	Username string `json:"usuario" validate:"required,min=3,max=60"`
	Password string `json:"contrasena" validate:"omitempty,min=6,max=72"`
	Role     Num    `json:"rol" validate:"required,oneof=1 2 3"`
}

// UserResponse salida de un usuario (sin contraseña).
type UserResponse struct {
	ID       int64  `json:"id"`
	Name     string `json:"nombre"`
	LastName string `json:"apellidos"`
	Username string `json:"usuario"`
	Role     int    `json:"role"`
	Status   int    `json:"status"`
}

// LoginRequest credenciales de acceso.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse token JWT con el id, usuario y rol al mismo nivel.
type LoginResponse struct {
	Token    string `json:"token"`
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Role     int    `json:"role"`
}
