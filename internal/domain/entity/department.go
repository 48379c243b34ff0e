package entity

// Department departamento de la organización al que se asignan equipos vía responsivas.
type Department struct {
	ID             int64
	Name           string
	Abbreviation   string
	Description    string
	DepartmentHead string
	Status         int
}
