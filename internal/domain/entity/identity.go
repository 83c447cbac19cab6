package entity

import "slices"

// Role rol grueso del principal dentro del marketplace.
type Role string

// Roles válidos para Identity.
const (
	RoleCustomer Role = "customer"
	RoleProvider Role = "provider"
	RoleCourier  Role = "courier"
	RoleAdmin    Role = "admin"
)

// Valid indica si el rol pertenece al conjunto cerrado.
func (r Role) Valid() bool {
	switch r {
	case RoleCustomer, RoleProvider, RoleCourier, RoleAdmin:
		return true
	}
	return false
}

// Subroles de administración conocidos. Cualquier valor no vacío activa el modo admin.
const (
	SubroleSuperAdmin = "super_admin"
	SubroleManager    = "manager"
	SubroleAnalyst    = "analyst"
	SubroleSupport    = "support"
)

// Permisos usados por el panel de administración. El conjunto es abierto:
// los nombres se comparan por igualdad exacta.
const (
	PermViewUsers      = "view_users"
	PermEditUsers      = "edit_users"
	PermDeleteUsers    = "delete_users"
	PermViewProviders  = "view_providers"
	PermEditProviders  = "edit_providers"
	PermViewCouriers   = "view_couriers"
	PermEditCouriers   = "edit_couriers"
	PermViewOrders     = "view_orders"
	PermEditOrders     = "edit_orders"
	PermDeleteOrders   = "delete_orders"
	PermViewAnalytics  = "view_analytics"
	PermEditAnalytics  = "edit_analytics"
	PermViewReports    = "view_reports"
	PermExportData     = "export_data"
	PermManageSettings = "manage_settings"
)

// Identity representa al principal autenticado.
// Permissions == nil significa "sin conjunto de permisos"; un slice vacío es un conjunto vacío.
type Identity struct {
	ID           string   `json:"id" validate:"required"`
	Email        string   `json:"email" validate:"omitempty,email"`
	Name         string   `json:"name"`
	PhoneNumber  string   `json:"phone_number"`
	Role         Role     `json:"user_type" validate:"required,oneof=customer provider courier admin"`
	AdminSubrole string   `json:"admin_role,omitempty"`
	Permissions  []string `json:"admin_permissions"`
}

// Normalized devuelve una copia que respeta el invariante: subrol y permisos solo existen con rol admin.
func (i Identity) Normalized() Identity {
	out := i
	if out.Role != RoleAdmin {
		out.AdminSubrole = ""
		out.Permissions = nil
		return out
	}
	if out.Permissions != nil {
		out.Permissions = slices.Clone(out.Permissions)
	}
	return out
}

// HasPermissionSet indica si la identidad trae un conjunto de permisos (aunque esté vacío).
func (i Identity) HasPermissionSet() bool {
	return i.Permissions != nil
}

// IdentityPatch actualización parcial: solo se aplican los campos no nil.
type IdentityPatch struct {
	Email        *string
	Name         *string
	PhoneNumber  *string
	Role         *Role
	AdminSubrole *string
	Permissions  *[]string
}

// Apply hace un merge superficial del patch sobre una copia de la identidad.
func (p IdentityPatch) Apply(i Identity) Identity {
	out := i
	if p.Email != nil {
		out.Email = *p.Email
	}
	if p.Name != nil {
		out.Name = *p.Name
	}
	if p.PhoneNumber != nil {
		out.PhoneNumber = *p.PhoneNumber
	}
	if p.Role != nil {
		out.Role = *p.Role
	}
	if p.AdminSubrole != nil {
		out.AdminSubrole = *p.AdminSubrole
	}
	if p.Permissions != nil {
		out.Permissions = slices.Clone(*p.Permissions)
	}
	return out
}
