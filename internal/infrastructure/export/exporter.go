// Package export serializa los reportes de equipos y accesorios a CSV y Excel.
// Ambos formatos comparten columnas y bloque de totales.
package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"

	"github.com/xuri/excelize/v2"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/jhoicas/inventarios-api/internal/application/ports"
	"github.com/jhoicas/inventarios-api/internal/domain/entity"
)

var _ ports.ReportExporter = (*Exporter)(nil)

var (
	deviceHeaders    = []string{"Marca", "Modelo", "Número de serie", "Categoría", "Estatus", "¿Nuevo?"}
	accessoryHeaders = []string{"Marca", "Producto", "Categoría", "Total"}
)

// utf8BOM permite que Excel abra el CSV con acentos correctos.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Exporter implementa ports.ReportExporter.
type Exporter struct{}

// NewExporter construye el exportador.
func NewExporter() *Exporter { return &Exporter{} }

// DevicesCSV filas de equipos seguidas del bloque de totales.
func (e *Exporter) DevicesCSV(rows []entity.DeviceReportRow) ([]byte, error) {
	return writeCSV(deviceTable(rows))
}

// DevicesExcel mismas filas y totales que DevicesCSV en una hoja "Equipos".
func (e *Exporter) DevicesExcel(rows []entity.DeviceReportRow) ([]byte, error) {
	return writeExcel("Equipos", deviceTable(rows))
}

// AccessoriesCSV filas de accesorios con fila de Totales.
func (e *Exporter) AccessoriesCSV(rows []entity.AccessoryReportRow) ([]byte, error) {
	return writeCSV(accessoryTable(rows))
}

// AccessoriesExcel mismas filas que AccessoriesCSV en una hoja "Accesorios".
func (e *Exporter) AccessoriesExcel(rows []entity.AccessoryReportRow) ([]byte, error) {
	return writeExcel("Accesorios", accessoryTable(rows))
}

// table filas ya formateadas; body son los datos y footer los totales.
// numericCol es la columna del cuerpo que Excel recibe como número (-1 ninguna).
type table struct {
	header     []string
	body       [][]string
	footer     [][]string
	numericCol int
}

func deviceTable(rows []entity.DeviceReportRow) table {
	t := table{header: deviceHeaders, numericCol: -1}
	for _, r := range rows {
		t.body = append(t.body, []string{
			r.Brand, r.Model, r.SerialNumber, r.Category, funcLabel(r.Func), condition(r.IsNew),
		})
	}
	tot := entity.ComputeDeviceTotals(rows)
	t.footer = [][]string{
		{"", "", "", "Totales por estatus", "Asignado", strconv.Itoa(tot.Asignado)},
		{"", "", "", "", "Resguardo", strconv.Itoa(tot.Resguardo)},
		{"", "", "", "", "Baja", strconv.Itoa(tot.Baja)},
		{"", "", "", "Totales por condición", "Nuevo", strconv.Itoa(tot.Nuevos)},
		{"", "", "", "", "Usado", strconv.Itoa(tot.Usados)},
		{"", "", "", "Registros totales", "", strconv.Itoa(tot.Total)},
	}
	return t
}

func accessoryTable(rows []entity.AccessoryReportRow) table {
	t := table{header: accessoryHeaders, numericCol: 3}
	for _, r := range rows {
		t.body = append(t.body, []string{r.Brand, r.ProductName, r.Category, strconv.Itoa(r.Total)})
	}
	t.footer = [][]string{{"", "", "Totales", strconv.Itoa(entity.SumAccessories(rows))}}
	return t
}

func writeCSV(t table) ([]byte, error) {
	var buf bytes.Buffer
	buf.Write(utf8BOM)
	w := csv.NewWriter(&buf)
	records := append([][]string{t.header}, t.body...)
	records = append(records, t.footer...)
	if err := w.WriteAll(records); err != nil {
		return nil, fmt.Errorf("export csv: %w", err)
	}
	return buf.Bytes(), nil
}

func writeExcel(sheet string, t table) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
		return nil, fmt.Errorf("export excel: %w", err)
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("export excel: %w", err)
	}

	rowNum := 1
	put := func(values []string, style int, numeric func(i int) bool) error {
		cell, err := excelize.CoordinatesToCellName(1, rowNum)
		if err != nil {
			return err
		}
		row := make([]any, len(values))
		for i, v := range values {
			if n, err := strconv.Atoi(v); err == nil && numeric(i) {
				row[i] = n
			} else {
				row[i] = v
			}
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
		if style != 0 && len(values) > 0 {
			end, _ := excelize.CoordinatesToCellName(len(values), rowNum)
			if err := f.SetCellStyle(sheet, cell, end, style); err != nil {
				return err
			}
		}
		rowNum++
		return nil
	}

	never := func(int) bool { return false }
	always := func(int) bool { return true }
	inBody := func(i int) bool { return i == t.numericCol }

	if err := put(t.header, bold, never); err != nil {
		return nil, fmt.Errorf("export excel: %w", err)
	}
	for _, r := range t.body {
		if err := put(r, 0, inBody); err != nil {
			return nil, fmt.Errorf("export excel: %w", err)
		}
	}
	for _, r := range t.footer {
		if err := put(r, bold, always); err != nil {
			return nil, fmt.Errorf("export excel: %w", err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("export excel: %w", err)
	}
	return buf.Bytes(), nil
}

func condition(isNew bool) string {
	if isNew {
		return "Nuevo"
	}
	return "Usado"
}

// funcLabel "asignado" -> "Asignado".
func funcLabel(f entity.DeviceFunc) string {
	if f == "" {
		return ""
	}
	return cases.Title(language.Spanish).String(string(f))
}
