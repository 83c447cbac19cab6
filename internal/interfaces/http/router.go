package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/yakumwamba/lpg-delivery-access/internal/application/admin"
	"github.com/yakumwamba/lpg-delivery-access/internal/application/auth"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Guard       GuardConfig
	Sessions    *Sessions
	AuthUC      *auth.UseCase
	RateLimiter *RateLimiter // nil = sin límite
	Metrics     *Metrics     // nil = sin /metrics
	LoginPath   string
	Logger      zerolog.Logger
}

// Router registra las rutas del edge.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})
	if deps.Metrics != nil {
		app.Get("/metrics", deps.Metrics.Handler())
	}

	prefix := deps.Guard.Prefix
	authHandler := NewAuthHandler(deps.AuthUC, deps.Sessions, deps.Guard.CookieName, deps.Logger, deps.Metrics)

	// Antes del perímetro: cerrar sesión sin cookie también responde 204
	app.Post(prefix+"/signout", authHandler.SignOut)

	// Perímetro para todo lo que cae bajo el prefijo protegido
	app.Use(RouteGuard(deps.Guard, deps.Logger, deps.Metrics))

	// Entradas públicas dentro del prefijo
	signIn := []fiber.Handler{authHandler.SignIn}
	if deps.RateLimiter != nil {
		signIn = append([]fiber.Handler{deps.RateLimiter.Middleware()}, signIn...)
	}
	for _, path := range deps.Guard.PublicPaths {
		app.Get(path, authHandler.Form)
		app.Post(path, signIn...)
	}

	// Panel (requiere identidad de admin resuelta)
	panel := app.Group(prefix, AdminShell(deps.Sessions, deps.LoginPath, deps.Logger))
	adminHandler := NewAdminHandler()
	panel.Get("/me", adminHandler.Me)
	for _, p := range admin.Pages() {
		route := strings.TrimPrefix(p.Path, admin.BasePath)
		if route == "" {
			route = "/"
		}
		panel.Get(route, RequirePermissions(p.View, nil, deps.Logger, deps.Metrics), adminHandler.Page(p))
	}
}
