package entity

// Area área física dentro de un piso.
type Area struct {
	ID          int64
	Name        string
	Description string
	FloorID     int64
	FloorName   string // solo lectura
	Status      int
}
