package entity

import "time"

// Estados por equipo reportados al capturar un mantenimiento.
const (
	MaintenanceDone    = "completo"
	MaintenancePending = "pendiente"
)

// Mantenimiento servicio realizado a los equipos de una responsiva.
type Mantenimiento struct {
	ID                  int64
	Folio               string
	Fecha               time.Time
	DescripcionFalla    string
	DescripcionSolucion string
	UserID              int64
	ResponsivaID        int64
	Completo            bool

	// Solo lectura (joins)
	Responsable  string
	Departamento string
	Username     string
}

// ResolveCompleto decide la bandera completo: si viene explícita se respeta;
// si no, exige hardware y software revisados y todos los equipos en "completo".
func ResolveCompleto(explicit *bool, hardware, software bool, deviceStatuses []string) bool {
	if explicit != nil {
		return *explicit
	}
	if !hardware || !software || len(deviceStatuses) == 0 {
		return false
	}
	for _, s := range deviceStatuses {
		if s != MaintenanceDone {
			return false
		}
	}
	return true
}
