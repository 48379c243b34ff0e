package dto

import "time"

// ResponsivaRequest alta de responsiva: equipos en resguardo que se asignan.
type ResponsivaRequest struct {
	Fecha        string `json:"fecha" validate:"omitempty,datetime=2006-01-02"`
	Responsable  string `json:"responsable" validate:"required,max=160"`
	AreaID       int64  `json:"id_area" validate:"required,min=1"`
	DepartmentID int64  `json:"id_departamento" validate:"required,min=1"`
	DeviceIDs    IDList `json:"dispositivos" validate:"required,min=1,dive,min=1"`
}

// ResponsivaDeviceResponse equipo listado en una responsiva.
type ResponsivaDeviceResponse struct {
	ID           int64  `json:"id"`
	Brand        string `json:"brand"`
	Model        string `json:"model"`
	SerialNumber string `json:"serial_number"`
	Category     string `json:"category"`
}

// ResponsivaResponse salida de una responsiva.
type ResponsivaResponse struct {
	ID             int64                      `json:"id"`
	Folio          string                     `json:"folio"`
	Fecha          time.Time                  `json:"fecha"`
	Responsable    string                     `json:"responsable"`
	AreaID         int64                      `json:"id_area"`
	AreaName       string                     `json:"area"`
	DepartmentID   int64                      `json:"id_departamento"`
	DepartmentName string                     `json:"departamento"`
	UserID         int64                      `json:"user_id,omitempty"`
	Status         int                        `json:"status"`
	Devices        []ResponsivaDeviceResponse `json:"devices,omitempty"`
}

// BajaRequest registro de baja de un equipo en resguardo.
type BajaRequest struct {
	DeviceID      int64  `json:"id_device" validate:"required,min=1"`
	Fecha         string `json:"fecha" validate:"omitempty,datetime=2006-01-02"`
	Motivo        string `json:"motivo" validate:"required,max=4000"`
	DetectadoPor  string `json:"detectado_por" validate:"max=160"`
	Observaciones string `json:"observaciones" validate:"max=4000"`
	DepartmentID  *int64 `json:"id_departamento" validate:"omitempty,min=1"`
}

// BajaResponse salida de una baja.
type BajaResponse struct {
	ID             int64     `json:"id"`
	Folio          string    `json:"folio"`
	Fecha          time.Time `json:"fecha"`
	Motivo         string    `json:"motivo"`
	DetectadoPor   string    `json:"detectado_por"`
	Observaciones  string    `json:"observaciones"`
	DeviceID       int64     `json:"id_device"`
	UserID         int64     `json:"user_id,omitempty"`
	Username       string    `json:"username,omitempty"`
	DepartmentID   *int64    `json:"id_departamento"`
	DepartmentName string    `json:"departamento"`
	Brand          string    `json:"brand"`
	Model          string    `json:"model"`
	SerialNumber   string    `json:"serial_number"`
	Category       string    `json:"category_name"`
}

// BajaDetailResponse baja con sus documentos escaneados.
type BajaDetailResponse struct {
	BajaResponse
	Documentos []DocumentResponse `json:"documentos"`
}

// DeviceStatusInput estado reportado de un equipo al capturar un mantenimiento.
type DeviceStatusInput struct {
	ID     int64  `json:"id" validate:"required,min=1"`
	Estado string `json:"estado" validate:"required,oneof=completo pendiente"`
}

// MantenimientoRequest captura de un mantenimiento.
// Completo explícito tiene prioridad; si no viene se calcula con hardware, software y deviceStatuses.
type MantenimientoRequest struct {
	Fecha               string              `json:"fecha" validate:"required,datetime=2006-01-02"`
	DescripcionFalla    string              `json:"descripcion_falla" validate:"max=4000"`
	DescripcionSolucion string              `json:"descripcion_solucion" validate:"max=4000"`
	ResponsivaID        int64               `json:"responsiva_id" validate:"required,min=1"`
	Completo            *Flag               `json:"completo"`
	Hardware            Flag                `json:"hardware"`
	Software            Flag                `json:"software"`
	DeviceStatuses      []DeviceStatusInput `json:"deviceStatuses" validate:"dive"`
}

// MantenimientoResponse salida de un mantenimiento.
type MantenimientoResponse struct {
	ID                  int64     `json:"id"`
	Folio               string    `json:"folio"`
	Fecha               time.Time `json:"fecha"`
	DescripcionFalla    string    `json:"descripcion_falla"`
	DescripcionSolucion string    `json:"descripcion_solucion"`
	UserID              int64     `json:"user_id,omitempty"`
	Username            string    `json:"username,omitempty"`
	ResponsivaID        int64     `json:"responsiva_id"`
	Responsable         string    `json:"responsable"`
	Departamento        string    `json:"departamento"`
	Completo            bool      `json:"completo"`
}

// DocumentResponse documento escaneado asociado a una responsiva o baja.
type DocumentResponse struct {
	ID            int64     `json:"id"`
	OwnerID       int64     `json:"owner_id"`
	NombreArchivo string    `json:"nombre_archivo"`
	RutaArchivo   string    `json:"ruta_archivo"`
	URL           string    `json:"url"`
	UserID        int64     `json:"user_id,omitempty"`
	FechaSubida   time.Time `json:"fecha_subida"`
}

// PDFFile documento PDF generado listo para descargar.
type PDFFile struct {
	Name    string
	Content []byte
}
