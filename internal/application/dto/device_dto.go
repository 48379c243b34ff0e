package dto

import "time"

// CustomValueInput valor capturado para un campo personalizado.
type CustomValueInput struct {
	CustomFieldID int64  `json:"custom_field_id" validate:"required,min=1"`
	Value         string `json:"value" validate:"max=2000"`
}

// DeviceRequest alta o edición de un equipo con sus valores personalizados.
type DeviceRequest struct {
	Brand        string             `json:"brand" validate:"required,max=120"`
	Model        string             `json:"model" validate:"required,max=120"`
	SerialNumber string             `json:"serial_number" validate:"required,max=120"`
	CategoryID   int64              `json:"category_id" validate:"required,min=1"`
	GroupID      *int64             `json:"group_id" validate:"omitempty,min=1"`
	Details      string             `json:"details" validate:"max=4000"`
	IsNew        *Flag              `json:"is_new"`
	CustomValues []CustomValueInput `json:"custom_values" validate:"dive"`
}

// DeviceResponse salida de un equipo.
type DeviceResponse struct {
	ID           int64   `json:"id"`
	Brand        string  `json:"brand"`
	Model        string  `json:"model"`
	SerialNumber string  `json:"serial_number"`
	CategoryID   int64   `json:"category_id"`
	CategoryName string  `json:"category_name"`
	GroupID      *int64  `json:"group_id"`
	GroupNumber  *string `json:"group_number"`
	Status       int     `json:"status"`
	Details      string  `json:"details"`
	IsNew        bool    `json:"is_new"`
	Func         string  `json:"func"`
}

// CustomValueResponse valor de un campo personalizado de un equipo.
type CustomValueResponse struct {
	CustomFieldID int64  `json:"custom_field_id"`
	Name          string `json:"name"`
	DataType      string `json:"data_type"`
	Value         string `json:"value"`
}

// DeviceLocationResponse ubicación de un equipo asignado.
type DeviceLocationResponse struct {
	Area         string `json:"area"`
	Piso         string `json:"piso"`
	Departamento string `json:"departamento"`
	Responsable  string `json:"responsable"`
}

// DeviceDetailResponse equipo con campos personalizados y ubicación.
type DeviceDetailResponse struct {
	DeviceResponse
	CustomFields []CustomValueResponse   `json:"custom_fields"`
	Ubicacion    *DeviceLocationResponse `json:"ubicacion"`
}

// AccessoryRequest alta o edición de un accesorio.
type AccessoryRequest struct {
	Brand       string `json:"brand" validate:"max=120"`
	ProductName string `json:"product_name" validate:"required,max=160"`
	Total       int    `json:"total" validate:"min=0"`
	CategoryID  int64  `json:"category_id" validate:"required,min=1"`
	Details     string `json:"details" validate:"max=4000"`
}

// AccessoryResponse salida de un accesorio.
type AccessoryResponse struct {
	ID           int64  `json:"id"`
	Brand        string `json:"brand"`
	ProductName  string `json:"product_name"`
	Total        int    `json:"total"`
	CategoryID   int64  `json:"category_id"`
	CategoryName string `json:"category_name"`
	Details      string `json:"details"`
	Status       int    `json:"status"`
}

// SearchResultResponse coincidencia de la búsqueda global.
type SearchResultResponse struct {
	Type   string `json:"type"`
	ID     int64  `json:"id"`
	Title  string `json:"title"`
	Detail string `json:"detail"`
}

// LocatedDeviceResponse equipo dentro del árbol de ubicaciones.
type LocatedDeviceResponse struct {
	ID                 int64      `json:"id"`
	Brand              string     `json:"brand"`
	Model              string     `json:"model"`
	SerialNumber       string     `json:"serial_number"`
	CategoryID         int64      `json:"category_id"`
	Category           string     `json:"category"`
	Responsable        string     `json:"responsable"`
	Departamento       string     `json:"departamento"`
	Folio              string     `json:"folio"`
	ResponsivaID       int64      `json:"responsiva_id"`
	UltimoMant         *time.Time `json:"ultimo_mantenimiento"`
	UltimoMantCompleto *bool      `json:"ultimo_mantenimiento_completo"`
}

// AreaLocationResponse área con sus equipos.
type AreaLocationResponse struct {
	ID      int64                   `json:"id"`
	Name    string                  `json:"name"`
	Devices []LocatedDeviceResponse `json:"devices"`
}

// FloorLocationResponse piso con sus áreas.
type FloorLocationResponse struct {
	ID    int64                  `json:"id"`
	Name  string                 `json:"name"`
	Areas []AreaLocationResponse `json:"areas"`
}
