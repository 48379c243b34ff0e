package entity

import "time"

// Tipos de programación de respaldo.
const (
	BackupDaily   = "diario"
	BackupWeekly  = "semanal"
	BackupMonthly = "mensual"
	BackupYearly  = "anual"
)

// BackupSchedule configuración activa del respaldo automático.
type BackupSchedule struct {
	ID             int64
	Tipo           string
	DiaSemana      string // semanal: lunes..domingo
	DiaMes         int    // mensual: 1..31
	MesAnual       string // anual: enero..diciembre (día 1)
	Hora           string // HH:MM
	Status         int
	UltimoRespaldo *time.Time
}
