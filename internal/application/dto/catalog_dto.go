package dto

// DepartmentRequest alta o edición de un departamento.
type DepartmentRequest struct {
	Name           string `json:"name" validate:"required,max=120"`
	Abbreviation   string `json:"abbreviation" validate:"required,max=20"`
	Description    string `json:"description" validate:"max=2000"`
	DepartmentHead string `json:"department_head" validate:"max=160"`
}

// DepartmentResponse salida de un departamento.
type DepartmentResponse struct {
	ID             int64  `json:"id"`
	Name           string `json:"name"`
	Abbreviation   string `json:"abbreviation"`
	Description    string `json:"description"`
	DepartmentHead string `json:"department_head"`
	Status         int    `json:"status"`
}

// FloorRequest alta o edición de un piso.
type FloorRequest struct {
	Name        string `json:"name" validate:"required,max=120"`
	Description string `json:"description" validate:"max=2000"`
}

// FloorResponse salida de un piso.
type FloorResponse struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Status      int    `json:"status"`
}

// AreaRequest alta o edición de un área.
type AreaRequest struct {
	Name        string `json:"name" validate:"required,max=120"`
	Description string `json:"description" validate:"max=2000"`
	FloorID     int64  `json:"id_floor" validate:"required,min=1"`
}

// AreaResponse salida de un área con el nombre de su piso.
type AreaResponse struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	FloorID     int64  `json:"id_floor"`
	FloorName   string `json:"floor_name"`
	Status      int    `json:"status"`
}

// CheckNameResponse resultado de la verificación de nombre.
type CheckNameResponse struct {
	Exists bool `json:"exists"`
}

// CategoryRequest alta o edición de una categoría (type 0 equipo, 1 accesorio).
type CategoryRequest struct {
	Name        string `json:"name" validate:"required,max=120"`
	Description string `json:"description" validate:"max=2000"`
	Type        *int   `json:"type" validate:"required,oneof=0 1"`
}

// CategoryResponse salida de una categoría.
type CategoryResponse struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Type        int    `json:"type"`
	Status      int    `json:"status"`
}

// CustomFieldRequest alta de un campo personalizado.
type CustomFieldRequest struct {
	Name       string `json:"name" validate:"required,max=120"`
	DataType   string `json:"data_type" validate:"omitempty,oneof=text number date boolean"`
	CategoryID int64  `json:"category_id" validate:"required,min=1"`
	Required   Flag   `json:"required"`
}

// CustomFieldResponse salida de un campo personalizado.
type CustomFieldResponse struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	DataType   string `json:"data_type"`
	CategoryID int64  `json:"category_id"`
	Required   bool   `json:"required"`
	Status     int    `json:"status"`
}
