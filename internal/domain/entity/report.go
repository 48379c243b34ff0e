package entity

// CategoryCount conteo agregado por categoría.
type CategoryCount struct {
	ID    int64
	Name  string
	Total int64
}

// DeviceSummary resumen general de equipos.
type DeviceSummary struct {
	Total      int64
	Asignado   int64
	Resguardo  int64
	Baja       int64
	Nuevos     int64
	Usados     int64
	Categories []CategoryCount
}

// DeviceReportFilter filtros del reporte de equipos. Slices vacíos no filtran.
type DeviceReportFilter struct {
	CategoryIDs []int64
	Status      []int
	IsNew       []bool
	Funcs       []DeviceFunc
}

// DeviceReportRow fila del reporte/exportación de equipos.
type DeviceReportRow struct {
	ID           int64
	Brand        string
	Model        string
	SerialNumber string
	Category     string
	Status       int
	IsNew        bool
	Func         DeviceFunc
}

// DeviceTotals totales del bloque final de la exportación.
type DeviceTotals struct {
	Total     int
	Activos   int
	Inactivos int
	Nuevos    int
	Usados    int
	Asignado  int
	Resguardo int
	Baja      int
}

// ComputeDeviceTotals calcula los totales a partir de las filas exportadas.
func ComputeDeviceTotals(rows []DeviceReportRow) DeviceTotals {
	t := DeviceTotals{Total: len(rows)}
	for _, r := range rows {
		if r.Status == StatusActive {
			t.Activos++
		} else {
			t.Inactivos++
		}
		if r.IsNew {
			t.Nuevos++
		} else {
			t.Usados++
		}
		switch r.Func {
		case FuncAsignado:
			t.Asignado++
		case FuncResguardo:
			t.Resguardo++
		case FuncBaja:
			t.Baja++
		}
	}
	return t
}

// AccessorySummary resumen general de accesorios.
type AccessorySummary struct {
	Total          int64
	Categorias     []CategoryCount
	CategoriaMayor *CategoryCount
	CategoriaMenor *CategoryCount
}

// AccessoryReportRow fila del reporte/exportación de accesorios.
type AccessoryReportRow struct {
	Brand       string
	ProductName string
	Total       int
	Category    string
}

// SumAccessories suma la existencia total de las filas.
func SumAccessories(rows []AccessoryReportRow) int {
	sum := 0
	for _, r := range rows {
		sum += r.Total
	}
	return sum
}
