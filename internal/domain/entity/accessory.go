package entity

// Accessory accesorio o consumible contado por existencia total.
type Accessory struct {
	ID           int64
	Brand        string
	ProductName  string
	Total        int
	CategoryID   int64
	Details      string
	Status       int
	CategoryName string // solo lectura
}
