package backend

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/yakumwamba/lpg-delivery-access/internal/application/auth"
	"github.com/yakumwamba/lpg-delivery-access/internal/application/dto"
	"github.com/yakumwamba/lpg-delivery-access/internal/domain"
	"github.com/yakumwamba/lpg-delivery-access/internal/domain/entity"
	"github.com/yakumwamba/lpg-delivery-access/pkg/config"
)

// Verificar en tiempo de compilación que Client implementa el puerto de autenticación.
var _ auth.Authenticator = (*Client)(nil)

const (
	adminLoginPath = "/admin/login"
	adminMePath    = "/admin/me"
	userSignInPath = "/auth/signin"

	maxBodyPreview = 256
)

// Client adaptador REST del backend de ZamGas (autoridad de login y de identidad).
type Client struct {
	baseURL string
	timeout time.Duration
}

// NewClient construye el cliente. Timeout 0 usa 10 s.
func NewClient(cfg config.BackendConfig) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{baseURL: strings.TrimRight(cfg.BaseURL, "/"), timeout: timeout}
}

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// errorBody formas de error que devuelve el backend.
type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// AdminSignIn POST /admin/login.
func (c *Client) AdminSignIn(ctx context.Context, email, password string) (entity.Identity, string, error) {
	var out dto.AdminLoginResponse
	if err := c.do(ctx, fiber.MethodPost, adminLoginPath, "", credentials{email, password}, &out); err != nil {
		return entity.Identity{}, "", err
	}
	return out.Admin.Identity(), out.Token, nil
}

// SignIn POST /auth/signin (clientes, proveedores, couriers).
func (c *Client) SignIn(ctx context.Context, email, password string) (entity.Identity, string, error) {
	var out dto.UserSignInResponse
	if err := c.do(ctx, fiber.MethodPost, userSignInPath, "", credentials{email, password}, &out); err != nil {
		return entity.Identity{}, "", err
	}
	return out.User.Identity(), out.Token, nil
}

// Me GET /admin/me con el bearer token; resuelve la identidad vigente del admin.
func (c *Client) Me(ctx context.Context, token string) (entity.Identity, error) {
	var out dto.AdminMeResponse
	if err := c.do(ctx, fiber.MethodGet, adminMePath, token, nil, &out); err != nil {
		return entity.Identity{}, err
	}
	if out.Admin.ID == "" {
		return entity.Identity{}, fmt.Errorf("%w: respuesta de /admin/me sin admin", domain.ErrInvalidIdentity)
	}
	return out.Admin.Identity(), nil
}

func (c *Client) do(ctx context.Context, method, path, token string, body, out any) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrBackendUnavailable, err)
	}
	timeout := c.timeout
	if deadline, ok := ctx.Deadline(); ok {
		if left := time.Until(deadline); left < timeout {
			timeout = left
		}
	}

	agent := fiber.AcquireAgent()
	req := agent.Request()
	req.Header.SetMethod(method)
	req.SetRequestURI(c.baseURL + path)
	if err := agent.Parse(); err != nil {
		fiber.ReleaseAgent(agent)
		return fmt.Errorf("%w: %v", domain.ErrBackendUnavailable, err)
	}
	agent.Timeout(timeout)
	agent.Set(fiber.HeaderAccept, fiber.MIMEApplicationJSON)
	if token != "" {
		agent.Set(fiber.HeaderAuthorization, "Bearer "+token)
	}
	if body != nil {
		agent.JSON(body)
	}

	// Bytes libera el agent.
	code, raw, errs := agent.Bytes()
	if len(errs) > 0 {
		return fmt.Errorf("%w: %s %s: %v", domain.ErrBackendUnavailable, method, path, errors.Join(errs...))
	}

	switch {
	case code == http.StatusUnauthorized:
		return fmt.Errorf("%w: %s", domain.ErrInvalidCredentials, message(raw))
	case code == http.StatusForbidden:
		return fmt.Errorf("%w: %s", domain.ErrAccountInactive, message(raw))
	case code >= 500:
		return fmt.Errorf("%w: %s %s HTTP %d", domain.ErrBackendUnavailable, method, path, code)
	case code < 200 || code >= 300:
		return fmt.Errorf("backend %s %s HTTP %d: %s", method, path, code, message(raw))
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("%w: deserializar respuesta de %s: %v", domain.ErrInvalidIdentity, path, err)
	}
	return nil
}

func message(raw []byte) string {
	var eb errorBody
	if err := json.Unmarshal(raw, &eb); err == nil {
		if eb.Error != "" {
			return eb.Error
		}
		if eb.Message != "" {
			return eb.Message
		}
	}
	s := string(raw)
	if len(s) > maxBodyPreview {
		s = s[:maxBodyPreview]
	}
	return s
}
