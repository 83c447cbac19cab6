package session

import (
	"slices"

	"github.com/yakumwamba/lpg-delivery-access/internal/domain/entity"
)

// Snapshot vista inmutable de la sesión. Es lo que consume el evaluador de permisos.
type Snapshot struct {
	Identity   *entity.Identity
	Credential string
}

// IsAuthenticated es verdadero solo si hay identidad y credencial.
func (s Snapshot) IsAuthenticated() bool {
	return s.Identity != nil && s.Credential != ""
}

// adminIdentity identidad con rol admin, o nil. Subrol y permisos de otros roles se ignoran
// aunque el snapshot no haya pasado por Normalized.
func (s Snapshot) adminIdentity() *entity.Identity {
	if s.Identity == nil || s.Identity.Role != entity.RoleAdmin {
		return nil
	}
	return s.Identity
}

// permissions conjunto efectivo; ok=false si no hay conjunto.
func (s Snapshot) permissions() ([]string, bool) {
	id := s.adminIdentity()
	if id == nil || !id.HasPermissionSet() {
		return nil, false
	}
	return id.Permissions, true
}

// IsAdmin es verdadero si existe identidad admin con subrol.
// El rol admin sin subrol no cuenta.
func (s Snapshot) IsAdmin() bool {
	return s.AdminRole() != ""
}

// AdminRole devuelve el subrol, o "" si no hay identidad o no es admin.
func (s Snapshot) AdminRole() string {
	id := s.adminIdentity()
	if id == nil {
		return ""
	}
	return id.AdminSubrole
}

// HasPermission sin conjunto de permisos devuelve false.
func (s Snapshot) HasPermission(name string) bool {
	perms, ok := s.permissions()
	return ok && slices.Contains(perms, name)
}

// HasAnyPermission requiere names no vacío y al menos una coincidencia.
func (s Snapshot) HasAnyPermission(names []string) bool {
	perms, ok := s.permissions()
	if !ok {
		return false
	}
	for _, n := range names {
		if slices.Contains(perms, n) {
			return true
		}
	}
	return false
}

// HasAllPermissions: names ⊆ permisos. Sin conjunto de permisos siempre niega, incluso con names vacío.
func (s Snapshot) HasAllPermissions(names []string) bool {
	perms, ok := s.permissions()
	if !ok {
		return false
	}
	for _, n := range names {
		if !slices.Contains(perms, n) {
			return false
		}
	}
	return true
}
