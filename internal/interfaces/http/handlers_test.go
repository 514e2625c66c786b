package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/AgriConnect-api/internal/application/auth"
	"github.com/jhoicas/AgriConnect-api/internal/application/identity"
	"github.com/jhoicas/AgriConnect-api/internal/application/usecase"
	"github.com/jhoicas/AgriConnect-api/internal/application/validation"
	"github.com/jhoicas/AgriConnect-api/internal/infrastructure/memory"
	"github.com/jhoicas/AgriConnect-api/internal/infrastructure/pdf"
	apphttp "github.com/jhoicas/AgriConnect-api/internal/interfaces/http"
)

const (
	adminEmail    = "admin@example.com"
	adminPassword = "Admin@123"
)

// newTestServer aplicación completa sobre el almacén en memoria con los datos semilla.
func newTestServer(t *testing.T) *fiber.App {
	t.Helper()
	ctx := context.Background()
	store := memory.NewSeededStore()
	v := validation.New()
	log := zerolog.Nop()
	jwtCfg := auth.JWTConfig{Secret: testJWTSecret, ExpMinutes: testExpMin, Issuer: testIssuer}

	manager := identity.NewAccountManager(store.Accounts(), store.Roles()).WithHashCost(bcrypt.MinCost)
	require.NoError(t, identity.NewInitializer(manager, identity.SeedConfig{
		AdminEmail: adminEmail, AdminPassword: adminPassword,
	}, log).Run(ctx))

	app := fiber.New()
	app.Use(recover.New())
	apphttp.Router(app, apphttp.RouterDeps{
		RegisterUC:   auth.NewRegisterUseCase(store, v, jwtCfg, log).WithHashCost(bcrypt.MinCost),
		LoginUC:      auth.NewLoginUseCase(manager, jwtCfg),
		NavigationUC: usecase.NewNavigationUseCase(manager),
		FarmerUC:     usecase.NewFarmerUseCase(store.Farmers(), store.Products(), v),
		EmployeeUC:   usecase.NewEmployeeUseCase(store.Farmers(), store.Products(), pdf.NewMarotoPDFGenerator(), v, log),
		AdminUC:      usecase.NewAdminUseCase(manager, store, v),
		Accounts:     manager,
		Sessions:     apphttp.NewSessionStore(apphttp.SessionConfig{}),
		Auth:         testAuth,
		Log:          log,
	})
	return app
}

// client navegador mínimo: guarda cookies y el token anti-falsificación.
type client struct {
	t       *testing.T
	app     *fiber.App
	cookies map[string]string
	csrf    string
}

func newClient(t *testing.T, app *fiber.App) *client {
	c := &client{t: t, app: app, cookies: map[string]string{}}
	resp, body := c.get("/Account/Login")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	c.csrf = body["data"].(map[string]any)["csrf_token"].(string)
	require.NotEmpty(t, c.csrf)
	return c
}

func (c *client) do(req *http.Request) (*http.Response, map[string]any) {
	c.t.Helper()
	for name, value := range c.cookies {
		req.AddCookie(&http.Cookie{Name: name, Value: value})
	}
	resp, err := c.app.Test(req, -1)
	require.NoError(c.t, err)
	for _, ck := range resp.Cookies() {
		if ck.Value == "" || (!ck.Expires.IsZero() && ck.Expires.Unix() <= 0) {
			delete(c.cookies, ck.Name)
			continue
		}
		c.cookies[ck.Name] = ck.Value
	}
	raw, err := io.ReadAll(resp.Body)
	require.NoError(c.t, err)
	resp.Body.Close()
	var body map[string]any
	if strings.HasPrefix(resp.Header.Get(fiber.HeaderContentType), fiber.MIMEApplicationJSON) {
		require.NoError(c.t, json.Unmarshal(raw, &body))
	} else {
		body = map[string]any{"raw": string(raw)}
	}
	return resp, body
}

func (c *client) get(path string) (*http.Response, map[string]any) {
	return c.do(httptest.NewRequest(http.MethodGet, path, nil))
}

func (c *client) post(path string, payload any) (*http.Response, map[string]any) {
	buf, err := json.Marshal(payload)
	require.NoError(c.t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(buf))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	req.Header.Set(apphttp.CSRFHeader, c.csrf)
	return c.do(req)
}

func (c *client) login(email, password string) {
	resp, _ := c.post("/Account/Login", map[string]string{"email": email, "password": password})
	require.Equal(c.t, http.StatusSeeOther, resp.StatusCode)
}

func (c *client) registerFarmer(email string) {
	resp, _ := c.post("/Account/Register", map[string]string{
		"email": email, "password": "Secret#1", "confirm_password": "Secret#1", "role": "Farmer",
		"farmer_first_name": "Ana", "farmer_last_name": "Ruiz",
		"farmer_contact_number": "3001234567", "farmer_address": "Vereda 1",
	})
	require.Equal(c.t, http.StatusSeeOther, resp.StatusCode)
}

func (c *client) registerEmployee(email string) {
	resp, _ := c.post("/Account/Register", map[string]string{
		"email": email, "password": "Secret#1", "confirm_password": "Secret#1", "role": "Employee",
	})
	require.Equal(c.t, http.StatusSeeOther, resp.StatusCode)
}

func data(body map[string]any) map[string]any {
	d, _ := body["data"].(map[string]any)
	return d
}

func flashOf(body map[string]any) map[string]any {
	f, _ := body["flash"].(map[string]any)
	return f
}

func TestRegistro_AgricultorLlegaASuPanel(t *testing.T) {
	app := newTestServer(t)
	c := newClient(t, app)

	resp, body := c.post("/Account/Register?returnUrl=/Farmer/ViewProducts", map[string]string{
		"email": "ana@example.com", "password": "Secret#1", "confirm_password": "Secret#1", "role": "Farmer",
		"farmer_first_name": "Ana", "farmer_last_name": "Ruiz",
		"farmer_contact_number": "3001234567", "farmer_address": "Vereda 1",
	})
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/Farmer/ViewProducts", resp.Header.Get(fiber.HeaderLocation))
	assert.Contains(t, c.cookies, testCookie, "el registro inicia sesión")
	assert.Equal(t, auth.MsgRegistered, body["message"])

	resp, _ = c.get("/")
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, usecase.PathFarmerDashboard, resp.Header.Get(fiber.HeaderLocation))

	resp, body = c.get("/Farmer/Dashboard")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	farmer := data(body)["farmer"].(map[string]any)
	assert.Equal(t, "Ana Ruiz", farmer["full_name"])
	assert.Equal(t, auth.MsgRegistered, flashOf(body)["message"], "el flash se muestra una sola vez")

	_, body = c.get("/Farmer/Dashboard")
	assert.Nil(t, flashOf(body))
}

func TestRegistro_SinTokenCSRF_Retorna403(t *testing.T) {
	app := newTestServer(t)
	c := newClient(t, app)
	c.csrf = ""

	resp, body := c.post("/Account/Register", map[string]string{"email": "x@example.com"})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "CSRF", body["code"])
}

func TestRegistro_CamposDeAgricultorRequeridos(t *testing.T) {
	app := newTestServer(t)
	c := newClient(t, app)

	resp, body := c.post("/Account/Register", map[string]string{
		"email": "ana@example.com", "password": "Secret#1", "confirm_password": "Secret#1", "role": "Farmer",
	})
	require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	assert.Equal(t, "VALIDATION", body["code"])
	errs := body["errors"].(map[string]any)
	for _, field := range []string{"farmer_first_name", "farmer_last_name", "farmer_contact_number", "farmer_address"} {
		assert.Contains(t, errs, field)
	}
	form := body["form"].(map[string]any)
	assert.Equal(t, []any{"Farmer", "Employee"}, form["roles"])
	input := form["input"].(map[string]any)
	assert.Equal(t, "ana@example.com", input["email"])
	assert.Empty(t, input["password"], "la contraseña no se devuelve")
	assert.NotContains(t, c.cookies, testCookie)
}

func TestRegistro_ContraseñaDebilReportaTodosLosMotivos(t *testing.T) {
	app := newTestServer(t)
	c := newClient(t, app)

	resp, body := c.post("/Account/Register", map[string]string{
		"email": "emp@example.com", "password": "abcdef", "confirm_password": "abcdef", "role": "Employee",
	})
	require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	assert.Equal(t, "IDENTITY", body["code"])
	assert.Len(t, body["messages"], 3)
}

// Una contraseña que el formulario acepta (80 caracteres) pero bcrypt no: 422, no 500.
func TestRegistro_ContraseñaDe80CaracteresEsErrorDeFormulario(t *testing.T) {
	app := newTestServer(t)
	c := newClient(t, app)
	long := "Aa1#" + strings.Repeat("x", 76)

	resp, body := c.post("/Account/Register", map[string]string{
		"email": "emp@example.com", "password": long, "confirm_password": long, "role": "Employee",
	})
	require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	assert.Equal(t, "IDENTITY", body["code"])
	assert.Len(t, body["messages"], 1)
}

func TestLogin(t *testing.T) {
	app := newTestServer(t)
	c := newClient(t, app)

	resp, body := c.post("/Account/Login", map[string]string{"email": adminEmail, "password": "incorrecta"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "UNAUTHORIZED", body["code"])

	resp, body = c.post("/Account/Login?returnUrl=https://evil.example.com", map[string]string{
		"email": "ADMIN@example.com", "password": adminPassword,
	})
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/", resp.Header.Get(fiber.HeaderLocation))
	assert.NotEmpty(t, body["token"])

	// El administrador no tiene panel propio: ve la página de inicio.
	resp, body = c.get("/")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, data(body)["authenticated"])

	resp, _ = c.post("/Account/Logout", nil)
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.NotContains(t, c.cookies, testCookie)

	resp, body = c.get("/")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, false, data(body)["authenticated"])
	assert.Equal(t, "Sesión cerrada.", flashOf(body)["message"])
}

func TestFarmer_ProductosPropios(t *testing.T) {
	app := newTestServer(t)
	c := newClient(t, app)
	c.registerFarmer("ana@example.com")

	resp, body := c.post("/Farmer/AddProduct", map[string]string{
		"name": "Coffee", "category": "Grains", "production_date": "2024-04-01", "description": "Arábica",
	})
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, apphttp.PathFarmerProducts, resp.Header.Get(fiber.HeaderLocation))

	resp, body = c.get("/Farmer/ViewProducts")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	products := data(body)["products"].([]any)
	require.Len(t, products, 1, "solo aparecen los productos propios")
	coffee := products[0].(map[string]any)
	assert.Equal(t, "Coffee", coffee["name"])
	assert.Equal(t, "success", flashOf(body)["kind"])

	id := int(coffee["id"].(float64))
	path := "/Farmer/EditProduct/" + strconv.Itoa(id)
	resp, _ = c.post(path, map[string]any{
		"id": id, "name": "Coffee Premium", "category": "Grains", "production_date": "2024-04-02",
	})
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)

	resp, body = c.get(path)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Coffee Premium", data(body)["product"].(map[string]any)["name"])

	resp, _ = c.post("/Farmer/DeleteProduct/"+strconv.Itoa(id), nil)
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	resp, _ = c.get(path)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestFarmer_ProductoAjenoRedirigeConError(t *testing.T) {
	app := newTestServer(t)
	c := newClient(t, app)
	c.registerFarmer("ana@example.com")

	// El producto 1 (Corn) es de John.
	resp, _ := c.get("/Farmer/EditProduct/1")
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, apphttp.PathFarmerProducts, resp.Header.Get(fiber.HeaderLocation))

	resp, _ = c.post("/Farmer/DeleteProduct/1", nil)
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)

	_, body := c.get("/Farmer/ViewProducts")
	assert.Equal(t, "error", flashOf(body)["kind"])

	resp, _ = c.get("/Farmer/EditProduct/abc")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestFarmer_ValidacionDeProducto(t *testing.T) {
	app := newTestServer(t)
	c := newClient(t, app)
	c.registerFarmer("ana@example.com")

	resp, body := c.post("/Farmer/AddProduct", map[string]string{"category": "Grains"})
	require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	errs := body["errors"].(map[string]any)
	assert.Contains(t, errs, "name")
	assert.Contains(t, errs, "production_date")
}

func TestAutorizacionPorRol(t *testing.T) {
	app := newTestServer(t)

	anon := newClient(t, app)
	resp, _ := anon.get("/Farmer/Dashboard")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	emp := newClient(t, app)
	emp.registerEmployee("emp@example.com")
	resp, body := emp.get("/Farmer/Dashboard")
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "FORBIDDEN", body["code"])

	resp, _ = emp.get("/Admin/ManageUsers")
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, _ = emp.get("/")
	assert.Equal(t, usecase.PathEmployeeDashboard, resp.Header.Get(fiber.HeaderLocation))
}

func TestEmployee_AgricultoresYFiltro(t *testing.T) {
	app := newTestServer(t)
	c := newClient(t, app)
	c.registerEmployee("emp@example.com")

	resp, body := c.get("/Employee/Dashboard")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(2), data(body)["farmers"])

	resp, _ = c.post("/Employee/AddFarmer", map[string]string{
		"first_name": "Luis", "last_name": "Gómez", "contact_number": "3105550000",
		"email": "luis@example.com", "address": "Finca El Roble",
	})
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, apphttp.PathEmployeeFarmers, resp.Header.Get(fiber.HeaderLocation))

	resp, body = c.get("/Employee/ViewFarmers")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, body["data"], 3)
	assert.Contains(t, flashOf(body)["message"], "Luis Gómez")

	resp, body = c.get("/Employee/ViewFarmerProducts/1")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, data(body)["products"], 1)

	resp, _ = c.get("/Employee/ViewFarmerProducts/0")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, body = c.get("/Employee/FilterProducts?toDate=2024-03-01")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	products := data(body)["products"].([]any)
	require.Len(t, products, 1)
	assert.Equal(t, "Corn", products[0].(map[string]any)["name"])
	assert.Equal(t, "John Doe", products[0].(map[string]any)["farmer_name"])

	resp, body = c.post("/Employee/FilterProducts", map[string]string{"category": "Dairy"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, data(body)["products"], 1)

	resp, body = c.get("/Employee/FilterProducts?fromDate=ayer")
	require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	assert.Contains(t, body["errors"], "from_date")
}

func TestEmployee_ExportaPDF(t *testing.T) {
	app := newTestServer(t)
	c := newClient(t, app)
	c.registerEmployee("emp@example.com")

	resp, body := c.get("/Employee/ExportProducts?category=Grains")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get(fiber.HeaderContentType))
	assert.Contains(t, resp.Header.Get(fiber.HeaderContentDisposition), "attachment")
	assert.True(t, strings.HasPrefix(body["raw"].(string), "%PDF"))
}

func TestAdmin_GestionDeRoles(t *testing.T) {
	app := newTestServer(t)

	emp := newClient(t, app)
	emp.registerEmployee("emp@example.com")

	admin := newClient(t, app)
	admin.login(adminEmail, adminPassword)

	resp, body := admin.get("/Admin/ManageUsers")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var empID string
	for _, u := range body["data"].([]any) {
		if u.(map[string]any)["email"] == "emp@example.com" {
			empID = u.(map[string]any)["id"].(string)
		}
	}
	require.NotEmpty(t, empID)

	resp, body = admin.get("/Admin/ManageUserRoles/" + empID)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, data(body)["roles"], 3)

	resp, body = admin.post("/Admin/ManageUserRoles/"+empID, map[string]any{"roles": []string{"Manager"}})
	require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	assert.Contains(t, body["errors"], "roles")

	resp, _ = admin.post("/Admin/ManageUserRoles/"+empID, map[string]any{"roles": []string{"Employee", "Farmer"}})
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)

	// El cambio aplica de inmediato: Farmer tiene prioridad en la navegación.
	resp, _ = emp.get("/")
	assert.Equal(t, usecase.PathFarmerDashboard, resp.Header.Get(fiber.HeaderLocation))

	resp, _ = admin.post("/Admin/EditUser/"+empID, map[string]string{"email": "empleado@example.com"})
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	resp, body = admin.get("/Admin/EditUser/" + empID)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "empleado@example.com", data(body)["user"].(map[string]any)["email"])

	resp, _ = admin.post("/Admin/DeleteUser/"+empID, nil)
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	resp, _ = admin.get("/Admin/DeleteUser/" + empID)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, _ = emp.get("/Employee/Dashboard")
	assert.Equal(t, http.StatusForbidden, resp.StatusCode, "la cuenta borrada ya no tiene roles")
}
