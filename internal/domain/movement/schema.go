package movement

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/jhoicas/inventarios-api/internal/domain"
)

// Tablas auditadas.
const (
	TableDepartments    = "departments"
	TableFloors         = "floors"
	TableAreas          = "areas"
	TableCategories     = "categories"
	TableCustomFields   = "custom_fields"
	TableDevices        = "devices"
	TableAccessories    = "accessories"
	TableUsers          = "users"
	TableResponsivas    = "responsivas"
	TableBajas          = "bajas"
	TableMantenimientos = "mantenimientos"
)

// Kind tipo lógico de una columna del snapshot.
type Kind int

const (
	KindInt Kind = iota
	KindText
	KindBool
	KindDate
	KindTime
)

// Column columna permitida en los snapshots de una tabla.
type Column struct {
	Name string
	Kind Kind
}

// Table lista blanca de columnas de una tabla auditada.
// Solo estas columnas se guardan en before_info/after_info y solo estas pueden restaurarse.
type Table struct {
	Name    string
	Columns []Column
}

// Snapshot proyección clave-valor de una fila, restringida a la lista blanca de su tabla.
type Snapshot map[string]any

func cols(spec ...any) []Column {
	out := make([]Column, 0, len(spec)/2)
	for i := 0; i+1 < len(spec); i += 2 {
		out = append(out, Column{Name: spec[i].(string), Kind: spec[i+1].(Kind)})
	}
	return out
}

var schema = map[string]Table{
	TableDepartments: {TableDepartments, cols(
		"id", KindInt, "name", KindText, "abbreviation", KindText, "description", KindText,
		"department_head", KindText, "status", KindInt)},
	TableFloors: {TableFloors, cols(
		"id", KindInt, "name", KindText, "description", KindText, "status", KindInt)},
	TableAreas: {TableAreas, cols(
		"id", KindInt, "name", KindText, "description", KindText, "id_floor", KindInt, "status", KindInt)},
	TableCategories: {TableCategories, cols(
		"id", KindInt, "name", KindText, "description", KindText, "type", KindInt, "status", KindInt)},
	TableCustomFields: {TableCustomFields, cols(
		"id", KindInt, "name", KindText, "data_type", KindText, "category_id", KindInt,
		"required", KindBool, "status", KindInt)},
	TableDevices: {TableDevices, cols(
		"id", KindInt, "brand", KindText, "model", KindText, "serial_number", KindText,
		"category_id", KindInt, "group_id", KindInt, "status", KindInt, "details", KindText,
		"is_new", KindBool, "func", KindText)},
	TableAccessories: {TableAccessories, cols(
		"id", KindInt, "brand", KindText, "product_name", KindText, "total", KindInt,
		"category_id", KindInt, "details", KindText, "status", KindInt)},
	// password_id queda fuera: las credenciales nunca se auditan.
	TableUsers: {TableUsers, cols(
		"id", KindInt, "name", KindText, "last_name", KindText, "username", KindText,
		"role", KindInt, "status", KindInt)},
	TableResponsivas: {TableResponsivas, cols(
		"id", KindInt, "folio", KindText, "fecha", KindDate, "responsable", KindText,
		"id_area", KindInt, "id_departamento", KindInt, "user_id", KindInt, "status", KindInt)},
	TableBajas: {TableBajas, cols(
		"id", KindInt, "folio", KindText, "fecha", KindDate, "motivo", KindText,
		"detectado_por", KindText, "observaciones", KindText, "id_device", KindInt,
		"user_id", KindInt, "id_departamento", KindInt)},
	TableMantenimientos: {TableMantenimientos, cols(
		"id", KindInt, "folio", KindText, "fecha", KindDate, "descripcion_falla", KindText,
		"descripcion_solucion", KindText, "user_id", KindInt, "responsiva_id", KindInt,
		"completo", KindBool)},
}

// Lookup devuelve la definición de una tabla auditada.
func Lookup(name string) (Table, error) {
	t, ok := schema[name]
	if !ok {
		return Table{}, fmt.Errorf("%w: tabla %q no auditada", domain.ErrInvalidInput, name)
	}
	return t, nil
}

// Tables nombres de todas las tablas auditadas, ordenados.
func Tables() []string {
	out := make([]string, 0, len(schema))
	for name := range schema {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// ColumnNames nombres de columna en orden de definición.
func (t Table) ColumnNames() []string {
	out := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		out[i] = c.Name
	}
	return out
}

// Project filtra row a la lista blanca y normaliza cada valor a su tipo lógico.
// Una fila nil produce un snapshot nil.
func (t Table) Project(row map[string]any) (Snapshot, error) {
	if row == nil {
		return nil, nil
	}
	out := make(Snapshot, len(t.Columns))
	for _, c := range t.Columns {
		raw, ok := row[c.Name]
		if !ok {
			continue
		}
		v, err := normalize(c.Kind, raw)
		if err != nil {
			return nil, fmt.Errorf("%s.%s: %w", t.Name, c.Name, err)
		}
		out[c.Name] = v
	}
	return out, nil
}

// Decode interpreta el JSON almacenado en before_info/after_info.
// "null" o vacío producen un snapshot nil.
func (t Table) Decode(raw []byte) (Snapshot, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, nil
	}
	dec := json.NewDecoder(strings.NewReader(string(raw)))
	dec.UseNumber()
	var row map[string]any
	if err := dec.Decode(&row); err != nil {
		return nil, fmt.Errorf("snapshot de %s: %w", t.Name, err)
	}
	return t.Project(row)
}

// Assignments columnas y valores a escribir al restaurar un snapshot.
// La columna id nunca se reescribe; el orden sigue la definición de la tabla.
func (t Table) Assignments(s Snapshot) ([]string, []any) {
	var names []string
	var values []any
	for _, c := range t.Columns {
		if c.Name == "id" {
			continue
		}
		v, ok := s[c.Name]
		if !ok {
			continue
		}
		names = append(names, c.Name)
		values = append(values, v)
	}
	return names, values
}

func normalize(k Kind, v any) (any, error) {
	if v == nil {
		return nil, nil
	}
	switch k {
	case KindInt:
		return toInt(v)
	case KindText:
		switch x := v.(type) {
		case string:
			return x, nil
		case []byte:
			return string(x), nil
		case json.Number:
			return x.String(), nil
		case fmt.Stringer:
			return x.String(), nil
		}
		return fmt.Sprint(v), nil
	case KindBool:
		switch x := v.(type) {
		case bool:
			return x, nil
		case string:
			return strconv.ParseBool(x)
		}
		n, err := toInt(v)
		if err != nil {
			return nil, err
		}
		return n != 0, nil
	case KindDate, KindTime:
		switch x := v.(type) {
		case time.Time:
			return x, nil
		case string:
			return parseTime(x)
		}
	}
	return nil, fmt.Errorf("valor %v (%T) no convertible", v, v)
}

func toInt(v any) (int64, error) {
	switch x := v.(type) {
	case int:
		return int64(x), nil
	case int16:
		return int64(x), nil
	case int32:
		return int64(x), nil
	case int64:
		return x, nil
	case uint8:
		return int64(x), nil
	case bool:
		if x {
			return 1, nil
		}
		return 0, nil
	case float64:
		if x != math.Trunc(x) {
			return 0, fmt.Errorf("%v no es entero", x)
		}
		return int64(x), nil
	case json.Number:
		return x.Int64()
	case string:
		return strconv.ParseInt(strings.TrimSpace(x), 10, 64)
	}
	return 0, fmt.Errorf("valor %v (%T) no es entero", v, v)
}

var timeLayouts = []string{time.RFC3339Nano, "2006-01-02 15:04:05", "2006-01-02"}

func parseTime(s string) (time.Time, error) {
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("fecha %q no reconocida", s)
}
