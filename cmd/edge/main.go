package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	_ "github.com/yakumwamba/lpg-delivery-access/docs"
	"github.com/yakumwamba/lpg-delivery-access/internal/application/auth"
	"github.com/yakumwamba/lpg-delivery-access/internal/infrastructure/backend"
	"github.com/yakumwamba/lpg-delivery-access/internal/infrastructure/cache"
	httpRouter "github.com/yakumwamba/lpg-delivery-access/internal/interfaces/http"
	"github.com/yakumwamba/lpg-delivery-access/pkg/config"
	"github.com/yakumwamba/lpg-delivery-access/pkg/logger"
)

// @title        ZamGas Admin Edge
// @version      1.0
// @description  Perímetro del panel de administración: inicio de sesión, resolución de identidad y páginas filtradas por permisos.
// @BasePath     /
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("backend", cfg.Backend.BaseURL).
		Msg("iniciando edge")
	if cfg.JWT.Secret == "" {
		log.Warn().Msg("JWT_SECRET vacío: los tokens solo se validan contra el backend")
	}

	client := backend.NewClient(cfg.Backend)
	metrics := httpRouter.NewMetrics()
	sessions := httpRouter.NewSessions(httpRouter.SessionsDeps{
		Cookie:    cfg.Cookie,
		JWTSecret: cfg.JWT.Secret,
		Resolver:  client,
		Cache:     cache.NewIdentityCache(cfg.Cache.Size, cfg.Cache.TTL),
		Logger:    log.Component("session"),
		Metrics:   metrics,
	})
	authUC := auth.NewUseCase(client, log.Component("auth"))

	limiter := httpRouter.NewRateLimiter(cfg.RateLimit.PerMinute, cfg.RateLimit.Burst, metrics)
	stopSweep := make(chan struct{})
	go limiter.Run(stopSweep)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	mountDocs(app, cfg.App.DocsFile, "ZamGas Admin Edge", log.Component("docs"))

	httpRouter.Router(app, httpRouter.RouterDeps{
		Guard:       httpRouter.NewGuardConfig(cfg.Guard, cfg.Cookie),
		Sessions:    sessions,
		AuthUC:      authUC,
		RateLimiter: limiter,
		Metrics:     metrics,
		LoginPath:   cfg.Guard.Prefix + "/login",
		Logger:      log.Component("http"),
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")
	close(stopSweep)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("edge detenido")
}
