package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/yakumwamba/lpg-delivery-access/internal/application/auth"
	"github.com/yakumwamba/lpg-delivery-access/internal/application/dto"
	"github.com/yakumwamba/lpg-delivery-access/internal/domain"
	"github.com/yakumwamba/lpg-delivery-access/internal/domain/entity"
)

// AuthHandler inicio y cierre de sesión del panel.
type AuthHandler struct {
	uc       *auth.UseCase
	sessions *Sessions
	cookie   string
	log      zerolog.Logger
	metrics  *Metrics
}

// NewAuthHandler construye el handler de auth.
func NewAuthHandler(uc *auth.UseCase, sessions *Sessions, cookieName string, log zerolog.Logger, m *Metrics) *AuthHandler {
	return &AuthHandler{uc: uc, sessions: sessions, cookie: cookieName, log: log, metrics: m}
}

// Form GET /admin/signin y /admin/login: descriptor del formulario de acceso.
// @Summary      Formulario de acceso
// @Tags         auth
// @Produce      json
// @Success      200  {object}  dto.SignInForm
// @Router       /admin/signin [get]
// @Router       /admin/login [get]
func (h *AuthHandler) Form(c *fiber.Ctx) error {
	return c.JSON(dto.SignInForm{
		Page:   "signin",
		Title:  "ZamGas Admin",
		Action: c.Path(),
		Fields: []string{"email", "password"},
	})
}

// SignIn POST /admin/signin y /admin/login.
// Con éxito escribe la cookie de credencial y devuelve la sesión.
// @Summary      Iniciar sesión
// @Description  audience "admin" (por defecto) o "user". Escribe la cookie authToken.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      dto.SignInRequest  true  "email, password, audience"
// @Success      200   {object}  dto.SessionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      429   {object}  dto.ErrorResponse
// @Failure      502   {object}  dto.ErrorResponse
// @Failure      503   {object}  dto.ErrorResponse
// @Router       /admin/signin [post]
// @Router       /admin/login [post]
func (h *AuthHandler) SignIn(c *fiber.Ctx) error {
	var in dto.SignInRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	audience := in.Audience
	if audience == "" {
		audience = dto.AudienceAdmin
	}

	store := h.sessions.For(c)
	identity, token, err := h.uc.SignIn(c.UserContext(), store, in)
	if err != nil {
		h.metrics.signInAttempt(audience, outcomeOf(err))
		return signInError(c, err)
	}
	h.metrics.signInAttempt(audience, "ok")
	if identity.Role == entity.RoleAdmin {
		h.sessions.Remember(token, *identity)
	}

	snap := store.Snapshot()
	return c.JSON(dto.SessionResponse{
		Token:         token,
		User:          *identity,
		IsAdmin:       snap.IsAdmin(),
		AdminRole:     snap.AdminRole(),
		Authenticated: snap.IsAuthenticated(),
	})
}

// SignOut POST /admin/signout: expira la cookie. Idempotente, también sin cookie.
// @Summary      Cerrar sesión
// @Tags         auth
// @Success      204
// @Router       /admin/signout [post]
func (h *AuthHandler) SignOut(c *fiber.Ctx) error {
	h.sessions.Forget(c.Cookies(h.cookie))
	h.uc.SignOut(c.UserContext(), h.sessions.For(c))
	return c.SendStatus(fiber.StatusNoContent)
}

func outcomeOf(err error) string {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return "invalid_input"
	case errors.Is(err, domain.ErrInvalidCredentials):
		return "invalid_credentials"
	case errors.Is(err, domain.ErrAccountInactive):
		return "inactive"
	case errors.Is(err, domain.ErrBackendUnavailable):
		return "backend_unavailable"
	default:
		return "error"
	}
}

func signInError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	case errors.Is(err, domain.ErrInvalidCredentials):
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "credenciales inválidas"})
	case errors.Is(err, domain.ErrAccountInactive):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "cuenta inactiva o suspendida"})
	case errors.Is(err, domain.ErrBackendUnavailable):
		return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{Code: "BACKEND_UNAVAILABLE", Message: "backend no disponible, intente más tarde"})
	case errors.Is(err, domain.ErrInvalidIdentity):
		return c.Status(fiber.StatusBadGateway).JSON(dto.ErrorResponse{Code: "BACKEND_UNAVAILABLE", Message: "respuesta inválida del backend"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "error interno"})
	}
}
