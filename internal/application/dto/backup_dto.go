package dto

import "time"

// BackupConfigRequest programación del respaldo automático.
type BackupConfigRequest struct {
	Tipo      string `json:"tipo" validate:"required,oneof=diario semanal mensual anual"`
	DiaSemana string `json:"dia_semana" validate:"required_if=Tipo semanal,max=20"`
	DiaMes    int    `json:"dia_mes" validate:"required_if=Tipo mensual,min=0,max=31"`
	MesAnual  string `json:"mes_anual" validate:"required_if=Tipo anual,max=20"`
	Hora      string `json:"hora" validate:"required"`
}

// BackupConfigResponse programación vigente.
type BackupConfigResponse struct {
	ID               int64      `json:"id"`
	Tipo             string     `json:"tipo"`
	DiaSemana        string     `json:"dia_semana,omitempty"`
	DiaMes           int        `json:"dia_mes,omitempty"`
	MesAnual         string     `json:"mes_anual,omitempty"`
	Hora             string     `json:"hora"`
	Cron             string     `json:"cron"`
	ProximaEjecucion *time.Time `json:"proxima_ejecucion,omitempty"`
	UltimoRespaldo   *time.Time `json:"ultimo_respaldo"`
}
