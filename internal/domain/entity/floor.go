package entity

// Floor piso del edificio.
type Floor struct {
	ID          int64
	Name        string
	Description string
	Status      int
}
