package entity

// CategoryType distingue categorías de equipos y de accesorios.
type CategoryType int

const (
	CategoryDevice    CategoryType = 0
	CategoryAccessory CategoryType = 1
)

// Valid indica si el tipo es conocido.
func (t CategoryType) Valid() bool {
	return t == CategoryDevice || t == CategoryAccessory
}

// Category agrupa equipos o accesorios; las de equipos definen campos personalizados.
type Category struct {
	ID          int64
	Name        string
	Description string
	Type        CategoryType
	Status      int
}

// CustomField campo adicional que se captura para los equipos de una categoría.
type CustomField struct {
	ID         int64
	Name       string
	DataType   string
	CategoryID int64
	Required   bool
	Status     int
}
