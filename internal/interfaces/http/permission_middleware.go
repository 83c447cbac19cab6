package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/yakumwamba/lpg-delivery-access/internal/application/access"
	"github.com/yakumwamba/lpg-delivery-access/internal/application/dto"
)

// RequirePermissions forma HTTP de AccessGate: delega en access.Decide y, si deniega, responde
// con fallback. fallback nil responde 403 FORBIDDEN. Debe usarse DESPUÉS de AdminShell.
func RequirePermissions(q access.Query, fallback fiber.Handler, log zerolog.Logger, m *Metrics) fiber.Handler {
	if fallback == nil {
		fallback = forbidden
	}
	return func(c *fiber.Ctx) error {
		d := access.Decide(GetSnapshot(c), q)
		m.accessDecision(d)
		if d.Granted {
			return c.Next()
		}
		log.Debug().Str("path", c.Path()).Strs("permissions", q.Permissions).Str("mode", q.Mode.String()).Msg("permiso denegado")
		return fallback(c)
	}
}

func forbidden(c *fiber.Ctx) error {
	return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
		Code:    "FORBIDDEN",
		Message: "no tiene permisos para esta sección",
	})
}
