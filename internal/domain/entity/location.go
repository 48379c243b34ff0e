package entity

import "time"

// LocatedDevice equipo asignado dentro de un área, con su último mantenimiento.
type LocatedDevice struct {
	ID                 int64
	Brand              string
	Model              string
	SerialNumber       string
	CategoryID         int64
	Category           string
	Responsable        string
	Departamento       string
	Folio              string
	ResponsivaID       int64
	UltimoMant         *time.Time
	UltimoMantCompleto *bool
}

// AreaLocation área con los equipos ubicados en ella.
type AreaLocation struct {
	Area
	Devices []LocatedDevice
}

// FloorLocation piso con sus áreas.
type FloorLocation struct {
	Floor
	Areas []AreaLocation
}
