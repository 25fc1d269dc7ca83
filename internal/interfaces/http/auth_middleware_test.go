package http_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/taller-api/internal/application/dto"
	apphttp "github.com/jhoicas/taller-api/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/taller-api/pkg/jwt"
)

const (
	secret    = "secreto-de-pruebas-del-taller"
	userID    = "0b7c3a52-6f0e-4a43-9d7a-1c2e4f5a6b01"
	tenantID  = "0b7c3a52-6f0e-4a43-9d7a-1c2e4f5a6b02"
	orderID   = "0b7c3a52-6f0e-4a43-9d7a-1c2e4f5a6b03"
	allRoles  = "*"
	issuerTst = "taller-api"
)

var roles = []string{pkgjwt.RoleAdmin, pkgjwt.RoleTechnician, pkgjwt.RoleCashier, pkgjwt.RoleCustomer}

// newRouter monta el router real sin casos de uso. Los handlers que llegan a
// ejecutarse fallan con 4xx/5xx, pero nunca con 401/403: eso lo deciden los middlewares.
func newRouter() *fiber.App {
	app := fiber.New()
	app.Use(recover.New())
	apphttp.Router(app, apphttp.RouterDeps{JWTSecret: secret, ServiceName: "taller-api"})
	return app
}

func bearer(t *testing.T, id pkgjwt.Identity) string {
	t.Helper()
	tok, err := pkgjwt.Generate(secret, id, issuerTst, 30)
	require.NoError(t, err)
	return "Bearer " + tok
}

func call(t *testing.T, app *fiber.App, method, path, auth string) (int, dto.ErrorResponse) {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	var body dto.ErrorResponse
	_ = json.NewDecoder(resp.Body).Decode(&body)
	return resp.StatusCode, body
}

func TestRouter_MatrizDeRoles(t *testing.T) {
	app := newRouter()
	cases := []struct {
		method  string
		path    string
		allowed []string
	}{
		{http.MethodGet, "/api/tenants/me", []string{pkgjwt.RoleAdmin, pkgjwt.RoleTechnician, pkgjwt.RoleCashier}},
		{http.MethodPut, "/api/tenants/me", []string{pkgjwt.RoleAdmin}},
		{http.MethodGet, "/api/products", []string{pkgjwt.RoleAdmin, pkgjwt.RoleTechnician, pkgjwt.RoleCashier}},
		{http.MethodPost, "/api/products", []string{pkgjwt.RoleAdmin}},
		{http.MethodPost, "/api/inventory/movements", []string{pkgjwt.RoleAdmin, pkgjwt.RoleTechnician}},
		{http.MethodPost, "/api/inventory/adjust", []string{pkgjwt.RoleAdmin}},
		{http.MethodPost, "/api/service-orders", []string{pkgjwt.RoleAdmin, pkgjwt.RoleTechnician, pkgjwt.RoleCashier}},
		{http.MethodPatch, "/api/service-orders/" + orderID + "/status", []string{pkgjwt.RoleAdmin, pkgjwt.RoleTechnician}},
		{http.MethodPost, "/api/service-orders/" + orderID + "/items", []string{pkgjwt.RoleAdmin, pkgjwt.RoleTechnician}},
		{http.MethodPost, "/api/service-orders/" + orderID + "/payments", []string{pkgjwt.RoleAdmin, pkgjwt.RoleCashier}},
		{http.MethodPost, "/api/sales/checkout", []string{pkgjwt.RoleAdmin, pkgjwt.RoleCashier}},
		{http.MethodPost, "/api/sales/online", []string{pkgjwt.RoleAdmin, pkgjwt.RoleCashier, pkgjwt.RoleCustomer}},
		{http.MethodPatch, "/api/sales/" + orderID + "/status", []string{pkgjwt.RoleAdmin, pkgjwt.RoleCashier}},
		{http.MethodGet, "/api/finance/daily-income", []string{pkgjwt.RoleAdmin}},
		{http.MethodGet, "/api/webhooks", []string{pkgjwt.RoleAdmin}},
		{http.MethodGet, "/api/notifications", []string{allRoles}},
	}
	for _, tc := range cases {
		for _, role := range roles {
			t.Run(tc.method+" "+tc.path+" "+role, func(t *testing.T) {
				status, body := call(t, app, tc.method, tc.path, bearer(t, pkgjwt.Identity{UserID: userID, TenantID: tenantID, Role: role}))
				permitted := tc.allowed[0] == allRoles || contains(tc.allowed, role)
				if permitted {
					assert.NotEqual(t, http.StatusForbidden, status)
					assert.NotEqual(t, http.StatusUnauthorized, status)
					return
				}
				assert.Equal(t, http.StatusForbidden, status)
				assert.Equal(t, "FORBIDDEN", body.Code)
			})
		}
	}
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}

func TestRouter_RolAntesQueValidarIDs(t *testing.T) {
	app := newRouter()
	auth := bearer(t, pkgjwt.Identity{UserID: userID, TenantID: tenantID, Role: pkgjwt.RoleCustomer})

	status, _ := call(t, app, http.MethodPatch, "/api/service-orders/no-es-uuid/status", auth)
	assert.Equal(t, http.StatusForbidden, status, "un cliente no descubre qué ids son válidos")

	auth = bearer(t, pkgjwt.Identity{UserID: userID, TenantID: tenantID, Role: pkgjwt.RoleTechnician})
	status, body := call(t, app, http.MethodPatch, "/api/service-orders/no-es-uuid/status", auth)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "VALIDATION", body.Code)
}

func TestAuthMiddleware_RechazosDelToken(t *testing.T) {
	app := newRouter()
	cases := []struct {
		name string
		auth string
		code string
	}{
		{"sin encabezado", "", "MISSING_TOKEN"},
		{"esquema distinto de Bearer", "Basic dXNlcjpwYXNz", "INVALID_TOKEN"},
		{"firma de otro secreto", "Bearer " + mustToken(t, "otro-secreto", pkgjwt.Identity{UserID: userID, TenantID: tenantID, Role: pkgjwt.RoleAdmin}), "INVALID_TOKEN"},
		{"sin tenant", bearer(t, pkgjwt.Identity{UserID: userID, Role: pkgjwt.RoleAdmin}), "MISSING_TENANT"},
		{"sin rol", bearer(t, pkgjwt.Identity{UserID: userID, TenantID: tenantID}), "MISSING_ROLE"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			status, body := call(t, app, http.MethodGet, "/api/products", tc.auth)
			assert.Equal(t, http.StatusUnauthorized, status)
			assert.Equal(t, tc.code, body.Code)
		})
	}
}

func TestAuthMiddleware_TokenExpirado(t *testing.T) {
	tok, err := pkgjwt.Generate(secret, pkgjwt.Identity{UserID: userID, TenantID: tenantID, Role: pkgjwt.RoleCashier}, issuerTst, -5)
	require.NoError(t, err)

	status, body := call(t, newRouter(), http.MethodPost, "/api/sales/checkout", "Bearer "+tok)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "INVALID_TOKEN", body.Code)
}

func TestRouter_RutasPublicas(t *testing.T) {
	status, _ := call(t, newRouter(), http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, status)
}

func TestAuthMiddleware_DejaIdentidadEnLocals(t *testing.T) {
	app := fiber.New()
	app.Get("/yo", apphttp.AuthMiddleware(secret), apphttp.RequireRole(pkgjwt.RoleTechnician), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"user":   apphttp.GetUserID(c),
			"tenant": apphttp.GetTenantID(c),
			"role":   apphttp.GetRole(c),
		})
	})
	req := httptest.NewRequest(http.MethodGet, "/yo", nil)
	req.Header.Set("Authorization", bearer(t, pkgjwt.Identity{UserID: userID, TenantID: tenantID, Role: pkgjwt.RoleTechnician}))
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	var got map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	assert.Equal(t, map[string]string{"user": userID, "tenant": tenantID, "role": pkgjwt.RoleTechnician}, got)
}

func mustToken(t *testing.T, key string, id pkgjwt.Identity) string {
	t.Helper()
	tok, err := pkgjwt.Generate(key, id, issuerTst, 30)
	require.NoError(t, err)
	return tok
}
