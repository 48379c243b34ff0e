package export

import (
	"bytes"
	"encoding/csv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/inventarios-api/internal/domain/entity"
)

var sampleDevices = []entity.DeviceReportRow{
	{ID: 1, Brand: "Dell", Model: "Optiplex", SerialNumber: "0042", Category: "CPU", Status: 1, IsNew: true, Func: entity.FuncAsignado},
	{ID: 2, Brand: "HP", Model: "ProDesk, G4", SerialNumber: "SN-2", Category: "CPU", Status: 1, IsNew: false, Func: entity.FuncResguardo},
	{ID: 3, Brand: "Lenovo", Model: "T14", SerialNumber: "SN-3", Category: "Laptop", Status: 1, IsNew: false, Func: entity.FuncBaja},
}

var sampleAccessories = []entity.AccessoryReportRow{
	{Brand: "Logitech", ProductName: "Mouse", Total: 12, Category: "Periféricos"},
	{Brand: "Genius", ProductName: "Teclado", Total: 5, Category: "Periféricos"},
}

func readCSV(t *testing.T, data []byte) [][]string {
	t.Helper()
	require.True(t, bytes.HasPrefix(data, utf8BOM), "el CSV debe iniciar con BOM")
	r := csv.NewReader(bytes.NewReader(data[len(utf8BOM):]))
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	require.NoError(t, err)
	return records
}

func readExcel(t *testing.T, data []byte, sheet string) [][]string {
	t.Helper()
	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows(sheet)
	require.NoError(t, err)
	return rows
}

func TestDevicesExport_CSVAndExcelMatch(t *testing.T) {
	e := NewExporter()

	csvData, err := e.DevicesCSV(sampleDevices)
	require.NoError(t, err)
	xlsData, err := e.DevicesExcel(sampleDevices)
	require.NoError(t, err)

	csvRows := readCSV(t, csvData)
	xlsRows := readExcel(t, xlsData, "Equipos")

	assert.Equal(t, deviceHeaders, csvRows[0])
	assert.Equal(t, deviceHeaders, xlsRows[0])
	require.Len(t, csvRows, len(xlsRows))

	// Excel omite celdas vacías al final de la fila; se comparan por valor.
	for i := range csvRows {
		for j, v := range xlsRows[i] {
			assert.Equal(t, csvRows[i][j], v, "fila %d columna %d", i, j)
		}
	}

	assert.Equal(t, []string{"Dell", "Optiplex", "0042", "CPU", "Asignado", "Nuevo"}, csvRows[1])
	assert.Equal(t, "0042", xlsRows[1][2], "el número de serie no se convierte a número")
	last := csvRows[len(csvRows)-1]
	assert.Equal(t, "Registros totales", last[3])
	assert.Equal(t, "3", last[5])
}

func TestAccessoriesExport_Totals(t *testing.T) {
	e := NewExporter()

	csvData, err := e.AccessoriesCSV(sampleAccessories)
	require.NoError(t, err)
	xlsData, err := e.AccessoriesExcel(sampleAccessories)
	require.NoError(t, err)

	csvRows := readCSV(t, csvData)
	xlsRows := readExcel(t, xlsData, "Accesorios")

	require.Len(t, csvRows, 4)
	require.Len(t, xlsRows, 4)
	assert.Equal(t, []string{"", "", "Totales", "17"}, csvRows[3])
	assert.Equal(t, "17", xlsRows[3][3])
}

func TestDevicesExport_Empty(t *testing.T) {
	csvData, err := NewExporter().DevicesCSV(nil)
	require.NoError(t, err)

	rows := readCSV(t, csvData)
	assert.Equal(t, deviceHeaders, rows[0])
	assert.Equal(t, "0", rows[len(rows)-1][5])
}
