package http_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yakumwamba/lpg-delivery-access/internal/application/dto"
	"github.com/yakumwamba/lpg-delivery-access/pkg/jwt"
)

func TestAdminShell_TokenForjado_AccesoDenegado(t *testing.T) {
	app, _ := buildTestApp(t, appOptions{})

	resp := doRequest(t, app, http.MethodGet, "/admin", "forjado", "")

	require.Equal(t, http.StatusForbidden, resp.StatusCode)
	body := decode[dto.ErrorResponse](t, resp)
	assert.Equal(t, "ACCESS_DENIED", body.Code)
	assert.Equal(t, "/admin/login", body.Login)
}

func TestAdminShell_AdminSinSubrol_AccesoDenegado(t *testing.T) {
	app, _ := buildTestApp(t, appOptions{})

	resp := doRequest(t, app, http.MethodGet, "/admin", testInertToken, "")

	require.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "ACCESS_DENIED", decode[dto.ErrorResponse](t, resp).Code)
}

func TestAdminShell_Admin_RenderizaDashboard(t *testing.T) {
	app, _ := buildTestApp(t, appOptions{})

	resp := doRequest(t, app, http.MethodGet, "/admin", testAdminToken, "")

	require.Equal(t, http.StatusOK, resp.StatusCode)
	page := decode[dto.PageResponse](t, resp)
	assert.Equal(t, "dashboard", page.Page)
	assert.Equal(t, "manager", page.AdminRole)
	// Con subrol asignado todo el menú es visible
	assert.Len(t, page.Nav, 8)
}

func TestAdminShell_Admin_PaginasConAcciones(t *testing.T) {
	app, _ := buildTestApp(t, appOptions{})

	resp := doRequest(t, app, http.MethodGet, "/admin/users", testAdminToken, "")

	require.Equal(t, http.StatusOK, resp.StatusCode)
	page := decode[dto.PageResponse](t, resp)
	assert.Equal(t, "users", page.Page)
	names := make([]string, 0, len(page.Actions))
	for _, a := range page.Actions {
		names = append(names, a.Name)
	}
	assert.Equal(t, []string{"edit", "block", "delete", "export"}, names)
}

func TestAdminShell_Me(t *testing.T) {
	app, _ := buildTestApp(t, appOptions{})

	resp := doRequest(t, app, http.MethodGet, "/admin/me", testAdminToken, "")

	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decode[dto.SessionResponse](t, resp)
	assert.True(t, body.Authenticated)
	assert.True(t, body.IsAdmin)
	assert.Equal(t, "a1", body.User.ID)
	assert.Empty(t, body.Token)
}

func TestAdminShell_CacheEvitaSegundaLlamada(t *testing.T) {
	app, backend := buildTestApp(t, appOptions{})

	doRequest(t, app, http.MethodGet, "/admin", testAdminToken, "")
	doRequest(t, app, http.MethodGet, "/admin/users", testAdminToken, "")

	assert.Equal(t, 1, backend.calls())
}

func TestAdminShell_BackendCaido_503(t *testing.T) {
	app, backend := buildTestApp(t, appOptions{})
	backend.down = true

	resp := doRequest(t, app, http.MethodGet, "/admin", testAdminToken, "")

	require.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	assert.Equal(t, "BACKEND_UNAVAILABLE", decode[dto.ErrorResponse](t, resp).Code)
}

func TestAdminShell_JWTLocal_RechazaSinConsultarBackend(t *testing.T) {
	app, backend := buildTestApp(t, appOptions{jwtSecret: testJWTSecret})

	resp := doRequest(t, app, http.MethodGet, "/admin", "no-es-un-jwt", "")

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Zero(t, backend.calls())
}

func TestAdminShell_JWTLocalValido_ConsultaBackend(t *testing.T) {
	app, backend := buildTestApp(t, appOptions{jwtSecret: testJWTSecret})
	tok, err := jwt.GenerateAdmin(testJWTSecret, "a9", "manager", "", 60)
	require.NoError(t, err)

	resp := doRequest(t, app, http.MethodGet, "/admin", tok, "")

	// El backend falso no conoce el token: lo rechaza igual, pero tuvo que consultarse
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, 1, backend.calls())
}

func TestAdminShell_SinCookie_RedirigeAntes(t *testing.T) {
	app, backend := buildTestApp(t, appOptions{})

	resp := doRequest(t, app, http.MethodGet, "/admin/settings", "", "")

	assert.Equal(t, http.StatusTemporaryRedirect, resp.StatusCode)
	assert.Zero(t, backend.calls())
}
