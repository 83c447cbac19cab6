package http_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"

	"github.com/yakumwamba/lpg-delivery-access/internal/application/auth"
	"github.com/yakumwamba/lpg-delivery-access/internal/domain"
	"github.com/yakumwamba/lpg-delivery-access/internal/domain/entity"
	"github.com/yakumwamba/lpg-delivery-access/internal/infrastructure/cache"
	apphttp "github.com/yakumwamba/lpg-delivery-access/internal/interfaces/http"
	"github.com/yakumwamba/lpg-delivery-access/pkg/config"
	"github.com/yakumwamba/lpg-delivery-access/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	testAdminToken   = "adm-tok"
	testInertToken   = "inert-tok"
	testCookieName   = "authToken"
	testJWTSecret    = "test-secret-key-for-unit-tests"
	testAdminEmail   = "admin@zamgas.com"
	testAdminPass    = "secret"
	testInertEmail   = "inerte@zamgas.com"
	testInactiveUser = "inactivo@zamgas.com"
)

func managerIdentity() entity.Identity {
	return entity.Identity{
		ID: "a1", Email: testAdminEmail, Name: "Ana",
		Role: entity.RoleAdmin, AdminSubrole: entity.SubroleManager,
		Permissions: []string{entity.PermViewUsers},
	}
}

// inertIdentity admin sin subrol: no es admin para el panel.
func inertIdentity() entity.Identity {
	return entity.Identity{ID: "a2", Email: testInertEmail, Role: entity.RoleAdmin, Permissions: []string{entity.PermViewUsers}}
}

// fakeBackend implementa auth.Authenticator e IdentityResolver en memoria.
type fakeBackend struct {
	mu      sync.Mutex
	meCalls int
	down    bool
}

var _ auth.Authenticator = (*fakeBackend)(nil)
var _ apphttp.IdentityResolver = (*fakeBackend)(nil)

func (f *fakeBackend) AdminSignIn(_ context.Context, email, password string) (entity.Identity, string, error) {
	if f.down {
		return entity.Identity{}, "", domain.ErrBackendUnavailable
	}
	switch {
	case email == testAdminEmail && password == testAdminPass:
		return managerIdentity(), testAdminToken, nil
	case email == testInertEmail:
		return inertIdentity(), testInertToken, nil
	case email == testInactiveUser:
		return entity.Identity{}, "", domain.ErrAccountInactive
	}
	return entity.Identity{}, "", domain.ErrInvalidCredentials
}

func (f *fakeBackend) SignIn(_ context.Context, email, _ string) (entity.Identity, string, error) {
	return entity.Identity{ID: "u1", Email: email, Role: entity.RoleCustomer}, "usr-tok", nil
}

func (f *fakeBackend) Me(_ context.Context, token string) (entity.Identity, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.meCalls++
	if f.down {
		return entity.Identity{}, domain.ErrBackendUnavailable
	}
	switch token {
	case testAdminToken:
		return managerIdentity(), nil
	case testInertToken:
		return inertIdentity(), nil
	}
	return entity.Identity{}, domain.ErrInvalidCredentials
}

func (f *fakeBackend) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.meCalls
}

type appOptions struct {
	jwtSecret string
	perMinute int
	metrics   bool
}

func testGuard() apphttp.GuardConfig {
	return apphttp.NewGuardConfig(
		config.GuardConfig{Prefix: "/admin", SignInPath: "/admin/signin", PublicPaths: []string{"/admin/signin", "/admin/login"}},
		config.CookieConfig{Name: testCookieName},
	)
}

// buildTestApp edge completo con backend falso.
func buildTestApp(t *testing.T, opts appOptions) (*fiber.App, *fakeBackend) {
	t.Helper()
	backend := &fakeBackend{}
	log := logger.Nop().Zerolog()

	var m *apphttp.Metrics
	if opts.metrics {
		m = apphttp.NewMetrics()
	}
	sessions := apphttp.NewSessions(apphttp.SessionsDeps{
		Cookie:    config.CookieConfig{Name: testCookieName, MaxAge: 604800},
		JWTSecret: opts.jwtSecret,
		Resolver:  backend,
		Cache:     cache.NewIdentityCache(16, time.Minute),
		Logger:    log,
		Metrics:   m,
	})
	var rl *apphttp.RateLimiter
	if opts.perMinute > 0 {
		rl = apphttp.NewRateLimiter(opts.perMinute, 1, m)
	}

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		Guard:       testGuard(),
		Sessions:    sessions,
		AuthUC:      auth.NewUseCase(backend, log),
		RateLimiter: rl,
		Metrics:     m,
		LoginPath:   "/admin/login",
		Logger:      log,
	})
	return app, backend
}

func doRequest(t *testing.T, app *fiber.App, method, path, cookie, body string) *http.Response {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if cookie != "" {
		req.AddCookie(&http.Cookie{Name: testCookieName, Value: cookie})
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func findCookie(resp *http.Response, name string) *http.Cookie {
	for _, c := range resp.Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}
