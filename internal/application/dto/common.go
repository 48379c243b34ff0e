package dto

// ErrorResponse cuerpo de error HTTP.
// Field indica el campo en conflicto (nombre, abreviatura, username) e ID el
// registro dado de baja que puede reactivarse.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
	ID      int64  `json:"id,omitempty"`
	// Details causa de un error interno.
	Details string `json:"details,omitempty"`
}

// MessageResponse confirmación simple de una operación.
type MessageResponse struct {
	Message string `json:"message"`
}

// CreatedResponse confirmación con el id generado.
type CreatedResponse struct {
	Message string `json:"message"`
	ID      int64  `json:"id"`
}

// CountResponse conteo simple.
type CountResponse struct {
	Count int64 `json:"count"`
}

// HasResponse existencia simple.
type HasResponse struct {
	Has bool `json:"has"`
}
