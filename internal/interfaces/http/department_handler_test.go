package http_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventarios-api/internal/application/apptest"
	"github.com/jhoicas/inventarios-api/internal/application/dto"
	"github.com/jhoicas/inventarios-api/internal/application/usecase"
	"github.com/jhoicas/inventarios-api/internal/domain/entity"
	"github.com/jhoicas/inventarios-api/internal/domain/movement"
	apphttp "github.com/jhoicas/inventarios-api/internal/interfaces/http"
	"github.com/jhoicas/inventarios-api/pkg/logger"
)

// buildDepartmentApp monta las rutas de departamentos sobre la base en memoria,
// con el mismo ErrorHandler que usa el servidor.
func buildDepartmentApp(db *apptest.DB) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: apphttp.ErrorHandler(logger.Nop())})
	h := apphttp.NewDepartmentHandler(usecase.NewDepartmentUseCase(db.Store(), db))
	g := app.Group("/api/departments", apphttp.AuthMiddleware(testJWTSecret))
	g.Get("/", h.List)
	g.Post("/", h.Create)
	g.Get("/:id/equipments/count", h.CountEquipments)
	g.Get("/:id/equipments/has", h.HasEquipments)
	g.Get("/:id", h.Get)
	g.Delete("/:id", h.Delete)
	return app
}

func call(t *testing.T, app *fiber.App, method, path, body string) (*http.Response, dto.ErrorResponse) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", tokenForRole(t, roleAdmin))
	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	var e dto.ErrorResponse
	if resp.StatusCode >= 400 {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&e))
	}
	return resp, e
}

func TestDepartmentHandler_Create(t *testing.T) {
	db := apptest.NewDB()
	app := buildDepartmentApp(db)

	resp, _ := call(t, app, http.MethodPost, "/api/departments", `{"name":"Compras","abbreviation":"COM"}`)
	defer resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var out dto.DepartmentResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, "Compras", out.Name)
	assert.Equal(t, entity.StatusActive, out.Status)

	ms := db.AllMovements()
	require.Len(t, ms, 1)
	assert.Equal(t, testUserID, ms[0].UserID, "el movimiento lleva el usuario del token")
}

func TestDepartmentHandler_Errores(t *testing.T) {
	db := apptest.NewDB()
	db.Insert(movement.TableDepartments, map[string]any{"name": "Compras", "abbreviation": "COM"})
	app := buildDepartmentApp(db)

	t.Run("campo requerido", func(t *testing.T) {
		resp, e := call(t, app, http.MethodPost, "/api/departments", `{"abbreviation":"X"}`)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "VALIDATION", e.Code)
		assert.Equal(t, "name", e.Field)
	})
	t.Run("json inválido", func(t *testing.T) {
		resp, e := call(t, app, http.MethodPost, "/api/departments", `{"name":`)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "VALIDATION", e.Code)
	})
	t.Run("duplicado", func(t *testing.T) {
		resp, e := call(t, app, http.MethodPost, "/api/departments", `{"name":"compras","abbreviation":"C2"}`)
		assert.Equal(t, http.StatusConflict, resp.StatusCode)
		assert.Equal(t, "name", e.Field)
	})
	t.Run("id no numérico", func(t *testing.T) {
		resp, _ := call(t, app, http.MethodGet, "/api/departments/abc", "")
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
	t.Run("inexistente", func(t *testing.T) {
		resp, e := call(t, app, http.MethodGet, "/api/departments/99", "")
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		assert.Equal(t, "NOT_FOUND", e.Code)
	})
}

func TestDepartmentHandler_DeleteConEquipos(t *testing.T) {
	db := apptest.NewDB()
	dept := db.Insert(movement.TableDepartments, map[string]any{"name": "Finanzas", "abbreviation": "FIN"})
	floor := db.Insert(movement.TableFloors, map[string]any{"name": "PB"})
	area := db.Insert(movement.TableAreas, map[string]any{"name": "Caja", "id_floor": floor})
	cat := db.Insert(movement.TableCategories, map[string]any{"name": "Laptop", "type": 0})
	dev := db.Insert(movement.TableDevices, map[string]any{
		"brand": "Dell", "model": "Latitude", "serial_number": "SN-9", "category_id": cat, "func": string(entity.FuncAsignado),
	})
	resp := db.Insert(movement.TableResponsivas, map[string]any{
		"folio": "SIS-134", "fecha": time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), "responsable": "Luis",
		"id_area": area, "id_departamento": dept,
	})
	db.Link(resp, dev)
	app := buildDepartmentApp(db)
	path := "/api/departments/" + strconv.FormatInt(dept, 10)

	r, _ := call(t, app, http.MethodGet, path+"/equipments/count", "")
	var count dto.CountResponse
	require.NoError(t, json.NewDecoder(r.Body).Decode(&count))
	assert.EqualValues(t, 1, count.Count)

	r, e := call(t, app, http.MethodDelete, path, "")
	assert.Equal(t, http.StatusConflict, r.StatusCode)
	assert.Equal(t, usecase.CodeDeptHasEquipments, e.Code)

	r, _ = call(t, app, http.MethodGet, path, "")
	assert.Equal(t, http.StatusOK, r.StatusCode, "el departamento sigue activo")
}

func TestDepartmentHandler_SinToken(t *testing.T) {
	app := buildDepartmentApp(apptest.NewDB())
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/departments", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
