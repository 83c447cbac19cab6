package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/yakumwamba/lpg-delivery-access/internal/application/session"
	"github.com/yakumwamba/lpg-delivery-access/internal/domain/entity"
	"github.com/yakumwamba/lpg-delivery-access/pkg/config"
)

var _ session.Sink = (*CookieSink)(nil)

// CookieSink espejo de la credencial en la cookie que lee RouteGuard.
// HttpOnly queda en false: el cliente web también la lee.
type CookieSink struct {
	c   *fiber.Ctx
	cfg config.CookieConfig
}

// NewCookieSink sink atado a la respuesta del request en curso.
func NewCookieSink(c *fiber.Ctx, cfg config.CookieConfig) *CookieSink {
	return &CookieSink{c: c, cfg: cfg}
}

func (s *CookieSink) Name() string { return "cookie_mirror" }

func (s *CookieSink) Persist(_ context.Context, _ entity.Identity, credential string) error {
	s.c.Cookie(&fiber.Cookie{
		Name:     s.cfg.Name,
		Value:    credential,
		Path:     "/",
		MaxAge:   s.cfg.MaxAge,
		Secure:   s.cfg.Secure,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	return nil
}

// Clear expira la cookie de inmediato.
func (s *CookieSink) Clear(_ context.Context) error {
	s.c.Cookie(&fiber.Cookie{
		Name:     s.cfg.Name,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		Secure:   s.cfg.Secure,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	return nil
}
