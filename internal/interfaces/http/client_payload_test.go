package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventarios-api/internal/application/dto"
	"github.com/jhoicas/inventarios-api/internal/application/usecase"
	"github.com/jhoicas/inventarios-api/internal/domain/entity"
	"github.com/jhoicas/inventarios-api/internal/infrastructure/export"
	"github.com/jhoicas/inventarios-api/pkg/logger"
)

// bindInto pasa body por bindJSON (parseo + validación) como lo hace cada handler.
func bindInto[T any](t *testing.T, body string) (T, int) {
	t.Helper()
	var got T
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler(logger.Nop())})
	app.Post("/", func(c *fiber.Ctx) error {
		if err := bindJSON(c, &got); err != nil {
			return err
		}
		return c.SendStatus(fiber.StatusNoContent)
	})
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return got, resp.StatusCode
}

// ── Cuerpos tal como los manda el front ────────────────────────────────────

func TestPayload_EquipoConIsNewEntero(t *testing.T) {
	body := `{"brand":"Dell","model":"Latitude","serial_number":"SN-1","category_id":2,
		"group_id":null,"details":"","is_new":0,"custom_values":[{"custom_field_id":5,"value":"16GB"}]}`
	in, status := bindInto[dto.DeviceRequest](t, body)
	require.Equal(t, http.StatusNoContent, status)
	require.NotNil(t, in.IsNew)
	assert.False(t, bool(*in.IsNew))
	require.Len(t, in.CustomValues, 1)

	in, status = bindInto[dto.DeviceRequest](t, strings.Replace(body, `"is_new":0`, `"is_new":1`, 1))
	require.Equal(t, http.StatusNoContent, status)
	assert.True(t, bool(*in.IsNew))

	in, status = bindInto[dto.DeviceRequest](t, strings.Replace(body, `"is_new":0`, `"is_new":true`, 1))
	require.Equal(t, http.StatusNoContent, status)
	assert.True(t, bool(*in.IsNew))

	_, status = bindInto[dto.DeviceRequest](t, strings.Replace(body, `"is_new":0`, `"is_new":"quizá"`, 1))
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestPayload_CampoPersonalizadoRequeridoEntero(t *testing.T) {
	in, status := bindInto[dto.CustomFieldRequest](t, `{"name":"RAM","data_type":"text","required":1,"category_id":3}`)
	require.Equal(t, http.StatusNoContent, status)
	assert.True(t, bool(in.Required))
}

func TestPayload_Mantenimiento(t *testing.T) {
	body := `{"responsiva_id":7,"fecha":"2025-07-01","descripcion_falla":"No enciende",
		"descripcion_solucion":"Cambio de fuente","responsable":"Luis","user_id":1,"completo":1,
		"hardware":true,"software":false,"deviceStatuses":[{"id":4,"estado":"completo"},{"id":5,"estado":"pendiente"}]}`
	in, status := bindInto[dto.MantenimientoRequest](t, body)
	require.Equal(t, http.StatusNoContent, status)
	require.NotNil(t, in.Completo)
	assert.Equal(t, true, *in.Completo.BoolPtr())
	assert.True(t, bool(in.Hardware))
	assert.Len(t, in.DeviceStatuses, 2)

	in, status = bindInto[dto.MantenimientoRequest](t, strings.Replace(body, `"completo":1,`, ``, 1))
	require.Equal(t, http.StatusNoContent, status)
	assert.Nil(t, in.Completo.BoolPtr(), "sin completo se calcula")
}

func TestPayload_FiltrosDeReporteEscalares(t *testing.T) {
	in, status := bindInto[dto.DeviceReportRequest](t, `{"categories":[1,2],"is_new":1,"func":"baja"}`)
	require.Equal(t, http.StatusNoContent, status)
	assert.Equal(t, []int64{1, 2}, in.Categories)
	assert.Equal(t, dto.OneOrMany[dto.Flag]{true}, in.IsNew)
	assert.Equal(t, dto.OneOrMany[string]{"baja"}, in.Func)

	in, status = bindInto[dto.DeviceReportRequest](t, `{"categories":[1],"status":1,"func":""}`)
	require.Equal(t, http.StatusNoContent, status)
	assert.Equal(t, dto.OneOrMany[int]{1}, in.Status)
	assert.Empty(t, in.Func)

	_, status = bindInto[dto.DeviceReportRequest](t, `{"categories":[1],"func":"prestado"}`)
	assert.Equal(t, http.StatusBadRequest, status)

	acc, status := bindInto[dto.AccessoryReportRequest](t, `{"categories":[3,4]}`)
	require.Equal(t, http.StatusNoContent, status)
	assert.Equal(t, []int64{3, 4}, acc.IDs())
}

func TestPayload_UsuarioConLlavesDelFront(t *testing.T) {
	in, status := bindInto[dto.CreateUserRequest](t,
		`{"nombre":"Ana","apellidos":"López","usuario":"alopez","rol":"2","contrasena":"secreto1","userId":1}`)
	require.Equal(t, http.StatusNoContent, status)
	assert.Equal(t, "alopez", in.Username)
	assert.Equal(t, "secreto1", in.Password)
	assert.Equal(t, dto.Num(2), in.Role)

	upd, status := bindInto[dto.UpdateUserRequest](t, `{"nombre":"Ana","apellidos":"López","usuario":"alopez","rol":1,"userId":1}`)
	require.Equal(t, http.StatusNoContent, status)
	assert.Empty(t, upd.Password)
}

func TestPayload_ResponsivaDispositivos(t *testing.T) {
	in, status := bindInto[dto.ResponsivaRequest](t,
		`{"responsable":"Luis","id_area":1,"id_departamento":2,"user_id":1,"dispositivos":[4,5]}`)
	require.Equal(t, http.StatusNoContent, status)
	assert.Equal(t, dto.IDList{4, 5}, in.DeviceIDs)

	// la previsualización manda los equipos completos
	in, status = bindInto[dto.ResponsivaRequest](t,
		`{"responsable":"Luis","id_area":1,"id_departamento":2,"dispositivos":[{"id":4,"brand":"HP","category":"CPU"}]}`)
	require.Equal(t, http.StatusNoContent, status)
	assert.Equal(t, dto.IDList{4}, in.DeviceIDs)

	_, status = bindInto[dto.ResponsivaRequest](t, `{"responsable":"Luis","id_area":1,"id_departamento":2,"dispositivos":[]}`)
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestLoginResponse_CamposAlPrimerNivel(t *testing.T) {
	b, err := json.Marshal(dto.LoginResponse{Token: "t", ID: 5, Username: "ana", Role: 1})
	require.NoError(t, err)
	var m map[string]any
	require.NoError(t, json.Unmarshal(b, &m))
	assert.Equal(t, "t", m["token"])
	assert.EqualValues(t, 5, m["id"])
	assert.Equal(t, "ana", m["username"])
	assert.EqualValues(t, 1, m["role"])
	assert.NotContains(t, m, "user")
}

// ── Envolturas de /api/reports ─────────────────────────────────────────────

type fakeReports struct{}

func (fakeReports) DeviceSummary(context.Context) (*entity.DeviceSummary, error) {
	return &entity.DeviceSummary{Total: 3, Asignado: 1, Resguardo: 2}, nil
}

func (fakeReports) DeviceRows(context.Context, entity.DeviceReportFilter) ([]entity.DeviceReportRow, error) {
	return []entity.DeviceReportRow{{ID: 1, Brand: "Dell", Func: entity.FuncBaja}}, nil
}

func (fakeReports) AccessorySummary(context.Context) (*entity.AccessorySummary, error) {
	return &entity.AccessorySummary{}, nil
}

func (fakeReports) AccessoryRows(context.Context, []int64) ([]entity.AccessoryReportRow, error) {
	return []entity.AccessoryReportRow{{Brand: "Logitech", ProductName: "Mouse", Total: 4, Category: "Mouse"}}, nil
}

func TestReportHandler_Envolturas(t *testing.T) {
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler(logger.Nop())})
	h := NewReportHandler(usecase.NewReportUseCase(fakeReports{}, export.NewExporter()))
	app.Get("/devices-summary", h.DeviceSummary)
	app.Post("/devices-list", h.DeviceList)
	app.Get("/accessories-summary", h.AccessorySummary)
	app.Post("/accessories-list", h.AccessoryList)
	app.Get("/all-accessories", h.AllAccessories)

	get := func(method, path, body string) map[string]any {
		t.Helper()
		req := httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode, path)
		var m map[string]any
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&m))
		return m
	}

	summary := get(http.MethodGet, "/devices-summary", "")
	assert.EqualValues(t, 3, summary["totalDevices"])
	assert.NotContains(t, summary, "total")

	list := get(http.MethodPost, "/devices-list", `{"categories":[1],"is_new":0,"func":"baja"}`)
	devices, ok := list["devices"].([]any)
	require.True(t, ok, "lista dentro de devices")
	assert.Len(t, devices, 1)

	acc := get(http.MethodPost, "/accessories-list", `{"categories":[2]}`)
	accessories, ok := acc["accessories"].([]any)
	require.True(t, ok, "lista dentro de accessories")
	assert.Len(t, accessories, 1)

	accSummary := get(http.MethodGet, "/accessories-summary", "")
	assert.Equal(t, "N/A", accSummary["categoria_mayor"])

	req := httptest.NewRequest(http.MethodGet, "/all-accessories", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	var all []dto.AccessoryReportRowResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&all))
	require.Len(t, all, 1)
	assert.Equal(t, "Mouse", all[0].ProductName)
}
