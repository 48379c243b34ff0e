package entity

// SearchResult coincidencia de la búsqueda global.
type SearchResult struct {
	Type   string // device, category, department, floor, area, accessory
	ID     int64
	Title  string
	Detail string
}
