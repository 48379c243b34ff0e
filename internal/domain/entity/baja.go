package entity

import "time"

// Baja registro de retiro definitivo de un equipo.
type Baja struct {
	ID            int64
	Folio         string
	Fecha         time.Time
	Motivo        string
	DetectadoPor  string
	Observaciones string
	DeviceID      int64
	UserID        int64
	DepartmentID  *int64

	// Solo lectura (joins)
	DepartmentName string
	Brand          string
	Model          string
	SerialNumber   string
	Category       string
	Username       string
}
