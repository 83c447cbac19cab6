package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/yakumwamba/lpg-delivery-access/internal/application/session"
)

// Locals keys en Fiber.
const (
	LocalSession = "session"
)

// GetSession devuelve la sesión hidratada por AdminShell, o nil.
func GetSession(c *fiber.Ctx) *session.Store {
	s, _ := c.Locals(LocalSession).(*session.Store)
	return s
}

// GetSnapshot copia del estado de la sesión del request; vacío si no hay sesión.
func GetSnapshot(c *fiber.Ctx) session.Snapshot {
	if s := GetSession(c); s != nil {
		return s.Snapshot()
	}
	return session.Snapshot{}
}
