package entity

// DeviceFunc situación operativa de un equipo.
//
//	resguardo -> asignado (responsiva)
//	asignado  -> resguardo (cancelación de responsiva)
//	resguardo -> baja
//	baja      -> resguardo (eliminación de la baja)
type DeviceFunc string

const (
	FuncResguardo DeviceFunc = "resguardo"
	FuncAsignado  DeviceFunc = "asignado"
	FuncBaja      DeviceFunc = "baja"
)

// Valid indica si el valor es uno de los estados conocidos.
func (f DeviceFunc) Valid() bool {
	switch f {
	case FuncResguardo, FuncAsignado, FuncBaja:
		return true
	}
	return false
}

// CanAssign un equipo solo puede asignarse desde resguardo.
func (f DeviceFunc) CanAssign() bool { return f == FuncResguardo }

// CanDecommission un equipo solo puede darse de baja desde resguardo.
func (f DeviceFunc) CanDecommission() bool { return f == FuncResguardo }

// Device equipo inventariado.
type Device struct {
	ID           int64
	Brand        string
	Model        string
	SerialNumber string
	CategoryID   int64
	GroupID      *int64
	Status       int
	Details      string
	IsNew        bool
	Func         DeviceFunc

	CategoryName string  // solo lectura
	GroupNumber  *string // solo lectura
}

// CustomValue valor de un campo personalizado para un equipo.
type CustomValue struct {
	CustomFieldID int64
	Name          string
	DataType      string
	Value         string
}

// DeviceLocation ubicación de un equipo asignado según su responsiva activa.
type DeviceLocation struct {
	Area         string
	Piso         string
	Departamento string
	Responsable  string
}

// DeviceDetail equipo con sus campos personalizados y, si está asignado, su ubicación.
type DeviceDetail struct {
	Device
	CustomFields []CustomValue
	Ubicacion    *DeviceLocation
}
