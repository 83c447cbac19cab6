package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/yakumwamba/lpg-delivery-access/internal/application/admin"
	"github.com/yakumwamba/lpg-delivery-access/internal/application/dto"
)

// AdminHandler páginas del panel. Todas van detrás de AdminShell.
type AdminHandler struct{}

// NewAdminHandler construye el handler del panel.
func NewAdminHandler() *AdminHandler { return &AdminHandler{} }

// Me GET /admin/me: sesión resuelta para este request.
// @Summary      Sesión actual
// @Description  Requiere la cookie authToken de un admin con subrol.
// @Tags         admin
// @Produce      json
// @Success      200  {object}  dto.SessionResponse
// @Failure      307  "sin cookie: redirige a /admin/signin"
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /admin/me [get]
func (h *AdminHandler) Me(c *fiber.Ctx) error {
	snap := GetSnapshot(c)
	if snap.Identity == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "sin sesión"})
	}
	return c.JSON(dto.SessionResponse{
		User:          *snap.Identity,
		IsAdmin:       snap.IsAdmin(),
		AdminRole:     snap.AdminRole(),
		Authenticated: snap.IsAuthenticated(),
	})
}

// Page handler que renderiza p con secciones y acciones filtradas por los permisos de la sesión.
// @Summary      Página del panel
// @Description  Secciones y acciones ya filtradas por los permisos de la sesión. Requiere la cookie authToken.
// @Description  El dashboard se sirve en /admin.
// @Tags         admin
// @Produce      json
// @Param        page  path      string  true  "analytics, users, providers, couriers, orders, reports, settings"
// @Success      200   {object}  dto.PageResponse
// @Failure      307   "sin cookie: redirige a /admin/signin"
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /admin/{page} [get]
func (h *AdminHandler) Page(p admin.Page) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(admin.Render(GetSnapshot(c), p))
	}
}
