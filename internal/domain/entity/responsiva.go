package entity

import "time"

// Responsiva resguardo firmado que asigna equipos a una persona, área y departamento.
type Responsiva struct {
	ID           int64
	Folio        string
	Fecha        time.Time
	Responsable  string
	AreaID       int64
	DepartmentID int64
	UserID       int64
	Status       int

	AreaName       string // solo lectura
	DepartmentName string // solo lectura
	Devices        []ResponsivaDevice
}

// ResponsivaDevice equipo listado en una responsiva.
type ResponsivaDevice struct {
	ID           int64
	Brand        string
	Model        string
	SerialNumber string
	Category     string
}

// Document archivo escaneado asociado a una responsiva o a una baja.
type Document struct {
	ID           int64
	OwnerID      int64
	OriginalName string
	StoredName   string
	UserID       int64
	UploadedAt   time.Time
}
