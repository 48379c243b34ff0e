package dto

// DeviceReportRequest filtros del reporte de equipos. Cada filtro acepta un
// valor suelto o una lista; vacío o null no filtra.
type DeviceReportRequest struct {
	Categories []int64           `json:"categories" validate:"dive,min=1"`
	Status     OneOrMany[int]    `json:"status" validate:"dive,oneof=0 1"`
	IsNew      OneOrMany[Flag]   `json:"is_new"`
	Func       OneOrMany[string] `json:"func" validate:"dive,omitempty,oneof=resguardo asignado baja"`
}

// AccessoryReportRequest filtro por categorías de los reportes de accesorios.
// /api/reports manda "categories"; /api/accessories/export manda "category_ids".
type AccessoryReportRequest struct {
	Categories  []int64 `json:"categories" validate:"dive,min=1"`
	CategoryIDs []int64 `json:"category_ids" validate:"dive,min=1"`
}

// IDs categorías pedidas por cualquiera de las dos llaves.
func (r AccessoryReportRequest) IDs() []int64 {
	if len(r.Categories) > 0 {
		return r.Categories
	}
	return r.CategoryIDs
}

// CategoryCountResponse conteo por categoría.
type CategoryCountResponse struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Total int64  `json:"total"`
}

// DeviceSummaryResponse resumen de equipos.
type DeviceSummaryResponse struct {
	Total      int64                   `json:"totalDevices"`
	Asignado   int64                   `json:"asignado"`
	Resguardo  int64                   `json:"resguardo"`
	Baja       int64                   `json:"baja"`
	Nuevos     int64                   `json:"nuevos"`
	Usados     int64                   `json:"usados"`
	Categories []CategoryCountResponse `json:"categories"`
}

// DeviceReportRowResponse fila del reporte de equipos.
type DeviceReportRowResponse struct {
	ID           int64  `json:"id"`
	Brand        string `json:"brand"`
	Model        string `json:"model"`
	SerialNumber string `json:"serial_number"`
	Category     string `json:"category"`
	Status       int    `json:"status"`
	IsNew        bool   `json:"is_new"`
	Func         string `json:"func"`
}

// AccessorySummaryResponse resumen de accesorios.
type AccessorySummaryResponse struct {
	Total          int64                   `json:"total"`
	Categorias     []CategoryCountResponse `json:"categorias"`
	CategoriaMayor string                  `json:"categoria_mayor"`
	CategoriaMenor string                  `json:"categoria_menor"`
}

// DeviceListResponse envoltura de /devices-list.
type DeviceListResponse struct {
	Devices []DeviceReportRowResponse `json:"devices"`
}

// AccessoryReportRowResponse fila del reporte de accesorios.
type AccessoryReportRowResponse struct {
	Brand       string `json:"brand"`
	ProductName string `json:"product_name"`
	Total       int    `json:"total"`
	Category    string `json:"category"`
}

// AccessoryListResponse envoltura de /accessories-list.
type AccessoryListResponse struct {
	Accessories []AccessoryReportRowResponse `json:"accessories"`
}

// ExportFile archivo generado (CSV, Excel o respaldo) listo para descargar.
type ExportFile struct {
	Name        string
	ContentType string
	Content     []byte
}
