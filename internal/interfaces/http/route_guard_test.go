package http_test

import (
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apphttp "github.com/yakumwamba/lpg-delivery-access/internal/interfaces/http"
	"github.com/yakumwamba/lpg-delivery-access/pkg/config"
	"github.com/yakumwamba/lpg-delivery-access/pkg/logger"
)

func TestGuardConfig_Decide(t *testing.T) {
	g := testGuard()

	tests := []struct {
		name   string
		path   string
		cookie string
		want   apphttp.GuardOutcome
	}{
		{"fuera del prefijo", "/", "", apphttp.GuardOutside},
		{"prefijo parecido no cuenta", "/administrator", "", apphttp.GuardOutside},
		{"signin público", "/admin/signin", "", apphttp.GuardPublic},
		{"login público", "/admin/login", "", apphttp.GuardPublic},
		{"público con barra final", "/admin/login/", "", apphttp.GuardPublic},
		{"raíz protegida sin cookie", "/admin", "", apphttp.GuardRedirect},
		{"subruta sin cookie", "/admin/users", "", apphttp.GuardRedirect},
		{"subruta con cookie", "/admin/users", "cualquier-cosa", apphttp.GuardPass},
		{"subruta de signin no es pública", "/admin/signin/extra", "", apphttp.GuardRedirect},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := g.Decide(tt.path, tt.cookie)
			assert.Equal(t, tt.want, d.Outcome)
			if tt.want == apphttp.GuardRedirect {
				assert.Equal(t, "/admin/signin", d.Location)
				assert.False(t, d.Allowed())
			} else {
				assert.True(t, d.Allowed())
			}
		})
	}
}

func buildGuardApp() *fiber.App {
	app := fiber.New()
	app.Use(apphttp.RouteGuard(testGuard(), logger.Nop().Zerolog(), nil))
	app.Get("/*", func(c *fiber.Ctx) error { return c.SendString("ok") })
	return app
}

func TestRouteGuard_SinCookie_Redirige(t *testing.T) {
	resp := doRequest(t, buildGuardApp(), http.MethodGet, "/admin/orders", "", "")

	require.Equal(t, http.StatusTemporaryRedirect, resp.StatusCode)
	assert.Equal(t, "/admin/signin", resp.Header.Get("Location"))
}

func TestRouteGuard_ConCookie_NoValidaLaCredencial(t *testing.T) {
	resp := doRequest(t, buildGuardApp(), http.MethodGet, "/admin/orders", "token-forjado", "")

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRouteGuard_RutasPublicasYExternas(t *testing.T) {
	app := buildGuardApp()

	for _, path := range []string{"/admin/signin", "/admin/login", "/", "/health"} {
		resp := doRequest(t, app, http.MethodGet, path, "", "")
		assert.Equal(t, http.StatusOK, resp.StatusCode, path)
	}
}

func TestGuardConfig_SignInPathSiempreEsPublico(t *testing.T) {
	g := apphttp.NewGuardConfig(
		config.GuardConfig{Prefix: "/admin", SignInPath: "/admin/enter", PublicPaths: []string{"/admin/signin", "/admin/login"}},
		config.CookieConfig{Name: testCookieName},
	)
	assert.Contains(t, g.PublicPaths, "/admin/enter")

	d := g.Decide("/admin/users", "")
	require.Equal(t, apphttp.GuardRedirect, d.Outcome)
	assert.Equal(t, "/admin/enter", d.Location)

	// El destino de la redirección no vuelve a redirigir
	assert.Equal(t, apphttp.GuardPublic, g.Decide(d.Location, "").Outcome)

	literal := apphttp.GuardConfig{Prefix: "/admin", SignInPath: "/admin/enter", CookieName: testCookieName}
	assert.Equal(t, apphttp.GuardPublic, literal.Decide("/admin/enter/", "").Outcome)
}
