package dto

import "time"

// HistoryFilter filtros del listado del historial (query string).
type HistoryFilter struct {
	Table      string `query:"table"`
	ObjectID   int64  `query:"object_id" validate:"min=0"`
	ChangeType int    `query:"change_type" validate:"min=0,max=5"`
	Limit      int    `query:"limit" validate:"min=0,max=1000"`
	Offset     int    `query:"offset" validate:"min=0"`
}

// MovementResponse un movimiento de la bitácora.
type MovementResponse struct {
	ID             int64          `json:"id"`
	AffectedTable  string         `json:"affected_table"`
	ChangeType     int            `json:"change_type"`
	ChangeTypeName string         `json:"change_type_name"`
	ObjectID       int64          `json:"object_id"`
	UserID         int64          `json:"user_id,omitempty"`
	UserName       string         `json:"user_name,omitempty"`
	BeforeInfo     map[string]any `json:"before_info"`
	AfterInfo      map[string]any `json:"after_info"`
	MovementTime   time.Time      `json:"movement_time"`
}

// UndoResponse resultado de restaurar, revertir o eliminar definitivamente.
type UndoResponse struct {
	Action     string         `json:"action"`
	Table      string         `json:"table"`
	ObjectID   int64          `json:"object_id"`
	MovementID int64          `json:"movement_id,omitempty"`
	Purged     int64          `json:"purged"`
	Restored   map[string]any `json:"restored,omitempty"`
}
