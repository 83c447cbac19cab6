package dto

import "github.com/yakumwamba/lpg-delivery-access/internal/domain/entity"

// Audiencias de inicio de sesión.
const (
	AudienceAdmin = "admin"
	AudienceUser  = "user"
)

// SignInRequest entrada de inicio de sesión (email + password).
type SignInRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
	// Audience "admin" (por defecto) usa el login de administración; "user" el de clientes/proveedores/couriers.
	Audience string `json:"audience,omitempty" validate:"omitempty,oneof=admin user"`
}

// AdminPayload admin tal como lo devuelve el backend en /admin/login y /admin/me.
type AdminPayload struct {
	ID          string   `json:"id"`
	Email       string   `json:"email"`
	Name        string   `json:"name"`
	AdminRole   string   `json:"admin_role"`
	Permissions []string `json:"permissions"`
}

// Identity convierte el payload de admin en Identity: rol admin y conjunto de permisos siempre presente.
func (a AdminPayload) Identity() entity.Identity {
	perms := a.Permissions
	if perms == nil {
		perms = []string{}
	}
	return entity.Identity{
		ID:           a.ID,
		Email:        a.Email,
		Name:         a.Name,
		Role:         entity.RoleAdmin,
		AdminSubrole: a.AdminRole,
		Permissions:  perms,
	}
}

// AdminLoginResponse respuesta del backend a POST /admin/login.
type AdminLoginResponse struct {
	Token string       `json:"token"`
	Admin AdminPayload `json:"admin"`
}

// AdminMeResponse respuesta del backend a GET /admin/me.
type AdminMeResponse struct {
	Admin AdminPayload `json:"admin"`
}

// UserPayload usuario tal como lo devuelve el backend en /auth/signin.
type UserPayload struct {
	ID          string      `json:"id"`
	Email       string      `json:"email"`
	Name        string      `json:"name"`
	PhoneNumber string      `json:"phone_number"`
	UserType    entity.Role `json:"user_type"`
}

// Identity convierte el payload de usuario en Identity (sin subrol ni permisos).
func (u UserPayload) Identity() entity.Identity {
	return entity.Identity{
		ID:          u.ID,
		Email:       u.Email,
		Name:        u.Name,
		PhoneNumber: u.PhoneNumber,
		Role:        u.UserType,
	}
}

// UserSignInResponse respuesta del backend a POST /auth/signin.
type UserSignInResponse struct {
	Token string      `json:"token"`
	User  UserPayload `json:"user"`
}

// SessionResponse salida del edge tras iniciar sesión o en /admin/me.
type SessionResponse struct {
	Token         string          `json:"token,omitempty"`
	User          entity.Identity `json:"user"`
	IsAdmin       bool            `json:"is_admin"`
	AdminRole     string          `json:"admin_role,omitempty"`
	Authenticated bool            `json:"is_authenticated"`
}

// SignInForm descriptor del formulario de acceso que sirve el edge.
type SignInForm struct {
	Page   string   `json:"page"`
	Title  string   `json:"title"`
	Action string   `json:"action"`
	Fields []string `json:"fields"`
}
