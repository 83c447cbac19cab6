// Package access contiene la única ruta de código que decide admitir o denegar:
// el evaluador de permisos y el contrato de AccessGate construido sobre él.
package access

import "github.com/yakumwamba/lpg-delivery-access/internal/application/session"

// Mode modo de combinación de una consulta. El valor cero es ModeAny (OR).
type Mode int

const (
	ModeAny Mode = iota
	ModeAll
)

func (m Mode) String() string {
	if m == ModeAll {
		return "all"
	}
	return "any"
}

// Query consulta de acceso: nombres de permiso y modo de combinación.
// Una consulta sin nombres no impone requisito.
type Query struct {
	Permissions []string
	Mode        Mode
}

// AnyOf consulta OR. Un nombre suelto y una lista son equivalentes.
func AnyOf(names ...string) Query { return Query{Permissions: names, Mode: ModeAny} }

// AllOf consulta AND.
func AllOf(names ...string) Query { return Query{Permissions: names, Mode: ModeAll} }

// IsEmpty indica que la consulta no tiene requisitos.
func (q Query) IsEmpty() bool { return len(q.Permissions) == 0 }

// Motivos de una decisión (solo para logs y métricas).
const (
	ReasonAdminBypass       = "admin_bypass"
	ReasonNoRequirement     = "no_requirement"
	ReasonPermissionMatch   = "permission_match"
	ReasonPermissionMissing = "permission_missing"
)

// Decision resultado del evaluador.
type Decision struct {
	Granted bool
	Reason  string
}

// Decide evalúa la consulta contra la sesión. Función pura; el orden de los pasos importa:
//  1. cualquier admin (subrol presente) pasa sin mirar permisos;
//  2. consulta vacía pasa;
//  3. any/all sobre el conjunto de permisos.
func Decide(s session.Snapshot, q Query) Decision {
	if s.IsAdmin() {
		return Decision{Granted: true, Reason: ReasonAdminBypass}
	}
	if q.IsEmpty() {
		return Decision{Granted: true, Reason: ReasonNoRequirement}
	}
	var ok bool
	if q.Mode == ModeAll {
		ok = s.HasAllPermissions(q.Permissions)
	} else {
		ok = s.HasAnyPermission(q.Permissions)
	}
	if ok {
		return Decision{Granted: true, Reason: ReasonPermissionMatch}
	}
	return Decision{Granted: false, Reason: ReasonPermissionMissing}
}

// Evaluate atajo booleano de Decide.
func Evaluate(s session.Snapshot, q Query) bool {
	return Decide(s, q).Granted
}
