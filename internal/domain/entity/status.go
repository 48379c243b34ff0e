package entity

// Valores de la columna status en tablas con baja lógica.
const (
	StatusInactive = 0
	StatusActive   = 1
)
