package http

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/yakumwamba/lpg-delivery-access/internal/application/dto"
	"github.com/yakumwamba/lpg-delivery-access/internal/application/session"
	"github.com/yakumwamba/lpg-delivery-access/internal/domain"
	"github.com/yakumwamba/lpg-delivery-access/internal/domain/entity"
	"github.com/yakumwamba/lpg-delivery-access/internal/infrastructure/cache"
	"github.com/yakumwamba/lpg-delivery-access/pkg/config"
	"github.com/yakumwamba/lpg-delivery-access/pkg/jwt"
)

// IdentityResolver resuelve la identidad vigente de un bearer token (backend GET /admin/me).
type IdentityResolver interface {
	Me(ctx context.Context, token string) (entity.Identity, error)
}

// Resultados de resolución (métricas).
const (
	resolvedCache    = "cache"
	resolvedBackend  = "backend"
	resolvedRejected = "rejected"
	resolvedError    = "error"
)

// Sessions arma la sesión de cada request: sink de cookie para escribir y la cookie
// resuelta contra el backend como fuente para Restore.
type Sessions struct {
	cookie    config.CookieConfig
	jwtSecret string
	resolver  IdentityResolver
	cache     *cache.IdentityCache
	log       zerolog.Logger
	metrics   *Metrics
}

// SessionsDeps dependencias de NewSessions. Cache y Metrics pueden ser nil.
type SessionsDeps struct {
	Cookie    config.CookieConfig
	JWTSecret string
	Resolver  IdentityResolver
	Cache     *cache.IdentityCache
	Logger    zerolog.Logger
	Metrics   *Metrics
}

// NewSessions construye la fábrica de sesiones por request.
func NewSessions(d SessionsDeps) *Sessions {
	return &Sessions{
		cookie:    d.Cookie,
		jwtSecret: d.JWTSecret,
		resolver:  d.Resolver,
		cache:     d.Cache,
		log:       d.Logger,
		metrics:   d.Metrics,
	}
}

// For sesión vacía atada al request c.
func (s *Sessions) For(c *fiber.Ctx) *session.Store {
	p := session.NewPersister(s.log, NewCookieSink(c, s.cookie)).
		WithSource(&cookieSource{c: c, sessions: s})
	return session.NewStore(p)
}

// Remember cachea la identidad recién obtenida en el login para no pedir /admin/me en el siguiente request.
func (s *Sessions) Remember(token string, identity entity.Identity) {
	if s.cache != nil && token != "" {
		s.cache.Put(token, identity)
	}
}

// Forget olvida el token (cierre de sesión).
func (s *Sessions) Forget(token string) {
	if s.cache != nil && token != "" {
		s.cache.Evict(token)
	}
}

// resolve found=false cuando el token es inválido, expiró o el backend lo rechaza.
// err solo cuando el backend no responde.
func (s *Sessions) resolve(ctx context.Context, token string) (entity.Identity, bool, error) {
	if s.jwtSecret != "" {
		if _, err := jwt.ParseAdmin(s.jwtSecret, token); err != nil {
			s.metrics.resolution(resolvedRejected)
			s.log.Debug().Err(err).Msg("token rechazado localmente")
			return entity.Identity{}, false, nil
		}
	}
	if s.cache != nil {
		if id, ok := s.cache.Get(token); ok {
			s.metrics.resolution(resolvedCache)
			return id, true, nil
		}
	}
	if s.resolver == nil {
		return entity.Identity{}, false, nil
	}
	id, err := s.resolver.Me(ctx, token)
	switch {
	case errors.Is(err, domain.ErrBackendUnavailable):
		s.metrics.resolution(resolvedError)
		return entity.Identity{}, false, err
	case err != nil:
		s.metrics.resolution(resolvedRejected)
		s.log.Debug().Err(err).Msg("token rechazado por el backend")
		return entity.Identity{}, false, nil
	}
	s.metrics.resolution(resolvedBackend)
	s.Remember(token, id)
	return id, true, nil
}

// cookieSource fuente de Restore en el edge: la cookie del request.
type cookieSource struct {
	c        *fiber.Ctx
	sessions *Sessions
}

func (src *cookieSource) Load(ctx context.Context) (session.Snapshot, bool, error) {
	token := src.c.Cookies(src.sessions.cookie.Name)
	if token == "" {
		return session.Snapshot{}, false, nil
	}
	id, ok, err := src.sessions.resolve(ctx, token)
	if err != nil || !ok {
		return session.Snapshot{}, false, err
	}
	return session.Snapshot{Identity: &id, Credential: token}, true, nil
}

// AdminShell límite de confianza detrás de RouteGuard: la cookie pasó el perímetro pero aquí se
// resuelve la identidad. Sin identidad de admin (subrol asignado) responde 403 ACCESS_DENIED.
func AdminShell(sessions *Sessions, loginPath string, log zerolog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		store := sessions.For(c)
		ok, err := store.Restore(c.UserContext())
		if err != nil {
			log.Warn().Err(err).Str("path", c.Path()).Msg("no se pudo resolver la identidad")
			return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{
				Code:    "BACKEND_UNAVAILABLE",
				Message: "no se pudo verificar la sesión, intente más tarde",
			})
		}
		if !ok || !store.IsAdmin() {
			log.Debug().Str("path", c.Path()).Bool("authenticated", ok).Msg("acceso denegado al panel")
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Code:    "ACCESS_DENIED",
				Message: "se requieren privilegios de administrador",
				Login:   loginPath,
			})
		}
		c.Locals(LocalSession, store)
		return c.Next()
	}
}
